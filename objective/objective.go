package objective

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/crillab/godnnf/ddnnf"
	"github.com/sirupsen/logrus"
)

// A Func is a linear objective function: an integer weight for each literal
// of a problem. The value of a total model is the sum of the weights of the
// literals it sets. The zero weight is the default for every literal.
//
// Weight of literal l is at index 2*(l-1).
// Weight of literal -l is at index 2*(l-1) + 1.
// So, the vector contains weights of literals 1, -1, 2, -2, etc.
type Func struct {
	weights []int
}

// New returns a new empty (= 0 everywhere) objective function over nbVars
// variables.
func New(nbVars int) *Func {
	return &Func{weights: make([]int, nbVars*2)}
}

// Parse reads an objective function from r: zero or more lines associating
// a literal with an integer weight, e.g "-3 5". Blank lines are ignored;
// malformed lines are warned about and skipped.
func Parse(r io.Reader, nbVars int) (*Func, error) {
	f := New(nbVars)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		lit, weight, err := parseObjLine(fields, nbVars)
		if err != nil {
			logrus.Warnf("ignoring malformed line %q: %v", line, err)
			continue
		}
		f.Set(lit, weight)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not parse objective function: %v", err)
	}
	return f, nil
}

func parseObjLine(fields []string, nbVars int) (lit, weight int, err error) {
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected 2 fields, got %d", len(fields))
	}
	if lit, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("literal not an int")
	}
	if lit == 0 || lit > nbVars || -lit > nbVars {
		return 0, 0, fmt.Errorf("invalid literal %d", lit)
	}
	if weight, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("weight not an int")
	}
	return lit, weight, nil
}

func litIndex(lit int) int {
	if lit > 0 {
		return (lit - 1) * 2
	}
	return (-lit-1)*2 + 1
}

// Set associates a weight with a literal.
func (f *Func) Set(lit, weight int) {
	f.weights[litIndex(lit)] = weight
}

// Get returns the weight associated with a literal.
func (f *Func) Get(lit int) int {
	return f.weights[litIndex(lit)]
}

// NbVars returns the number of variables the function handles.
func (f *Func) NbVars() int {
	return len(f.weights) / 2
}

// MinWeight returns a lower bound on the value of the function over the
// total models that set every literal of lits to true: forced literals are
// scored at their forced polarity, every other variable at its cheaper
// literal.
func (f *Func) MinWeight(lits []int) int {
	assigned := make([]bool, f.NbVars())
	value := 0
	for _, lit := range lits {
		value += f.Get(lit)
		v := lit
		if v < 0 {
			v = -v
		}
		assigned[v-1] = true
	}
	for i, done := range assigned {
		if !done {
			value += min(f.Get(i+1), f.Get(-i-1))
		}
	}
	return value
}

// Optimize computes the minimal value of the function over the models of g,
// together with a model of g reaching that value. The model is nil iff g
// has no model at all.
func (f *Func) Optimize(g *ddnnf.Graph) (value int, model ddnnf.Model) {
	assigns, ok := forcedLits(f, g.Root)
	if !ok {
		return 0, nil
	}
	model = ddnnf.NewModel(f.NbVars())
	assigned := make([]bool, f.NbVars())
	for _, lit := range assigns {
		value += f.Get(lit)
		v := lit
		if v < 0 {
			v = -v
		}
		assigned[v-1] = true
		model.SetBindingFor(v, polarityOf(lit))
	}
	for i, done := range assigned {
		if done {
			continue
		}
		pos, neg := f.Get(i+1), f.Get(-i-1)
		if pos > neg {
			value += neg
			model.SetBindingFor(i+1, ddnnf.False)
		} else {
			value += pos
			model.SetBindingFor(i+1, ddnnf.True)
		}
	}
	return value, model
}

func polarityOf(lit int) ddnnf.Binding {
	if lit > 0 {
		return ddnnf.True
	}
	return ddnnf.False
}

// forcedLits collects the literals forced true along the chosen path of the
// circuit: at each decision node the branch whose full assignment has the
// lower MinWeight is chosen, ties broken by the first branch. ok is false
// iff the subgraph has no model.
func forcedLits(f *Func, n ddnnf.Node) (lits []int, ok bool) {
	if n == ddnnf.TrueNode {
		return nil, true
	}
	if n == ddnnf.FalseNode {
		return nil, false
	}
	switch n := n.(type) {
	case *ddnnf.LitNode:
		return []int{n.Lit}, true
	case *ddnnf.AndNode:
		assigns := append([]int(nil), n.UnitLits...)
		for _, child := range n.Children {
			childAssigns, ok := forcedLits(f, child)
			if !ok {
				return nil, false
			}
			assigns = append(assigns, childAssigns...)
		}
		return assigns, true
	case *ddnnf.OrNode:
		return forcedOrLits(f, n)
	default:
		panic("invalid node type")
	}
}

func forcedOrLits(f *Func, n *ddnnf.OrNode) ([]int, bool) {
	assigns0, ok0 := branchAssigns(f, &n.Branches[0])
	assigns1, ok1 := branchAssigns(f, &n.Branches[1])
	switch {
	case !ok0 && !ok1:
		return nil, false
	case !ok0:
		return assigns1, true
	case !ok1:
		return assigns0, true
	case f.MinWeight(assigns0) <= f.MinWeight(assigns1):
		return assigns0, true
	default:
		return assigns1, true
	}
}

func branchAssigns(f *Func, b *ddnnf.OrBranch) ([]int, bool) {
	childAssigns, ok := forcedLits(f, b.Child)
	if !ok {
		return nil, false
	}
	assigns := append([]int(nil), b.UnitLits...)
	return append(assigns, childAssigns...), true
}
