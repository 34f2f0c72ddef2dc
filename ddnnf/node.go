package ddnnf

import (
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// A Node is a vertex of a d-DNNF circuit. There are five kinds of nodes:
// the shared TrueNode and FalseNode constants, literal nodes, conjunction
// nodes and decision (disjunction) nodes.
//
// Nodes form a directed acyclic graph: children may be shared by several
// parents, and a rewrite of a shared node is observed through every parent.
// Only this package can implement Node.
type Node interface {
	// String renders the node and its descendants as a bracketed debug tree.
	String() string

	// seenVars is the set of variables seen either in that node or in its
	// children.
	seenVars() mapset.Set[int]

	nbDescendants() int
}

// emptySeen is the shared, never-modified variable set of TrueNode and FalseNode.
var emptySeen = mapset.NewThreadUnsafeSet[int]()

type trueConst struct{}

// TrueNode is the top node, shared by all graphs.
var TrueNode Node = trueConst{}

func (trueConst) String() string            { return "[TrueNode]\n" }
func (trueConst) seenVars() mapset.Set[int] { return emptySeen }
func (trueConst) nbDescendants() int        { return 0 }

type falseConst struct{}

// FalseNode is the bottom node, shared by all graphs.
var FalseNode Node = falseConst{}

func (falseConst) String() string            { return "[FalseNode]\n" }
func (falseConst) seenVars() mapset.Set[int] { return emptySeen }
func (falseConst) nbDescendants() int        { return 0 }

// A LitNode holds a single literal.
// It mostly appears during parsing: the parser folds literal children of
// conjunctions into the parent's unit literals.
type LitNode struct {
	Lit  int
	seen mapset.Set[int]
}

// NewLit returns a node holding the given literal.
func NewLit(lit int) *LitNode {
	v := lit
	if v < 0 {
		v = -v
	}
	return &LitNode{Lit: lit, seen: mapset.NewThreadUnsafeSet(v)}
}

func (n *LitNode) String() string {
	return "[LitNode lit=" + strconv.Itoa(n.Lit) + "]\n"
}

func (n *LitNode) seenVars() mapset.Set[int] { return n.seen }

func (n *LitNode) nbDescendants() int { return 0 }

// An AndNode is a decomposable conjunction node. Its unit literals are
// literals it forces to be true; its children, expanded through their own
// unit literals, mention pairwise-disjoint sets of variables.
type AndNode struct {
	UnitLits []int
	Children []Node
	seen     mapset.Set[int]
}

// NewAnd returns a conjunction node over the given unit literals and
// children. Both slices are kept, not copied.
func NewAnd(unitLits []int, children []Node) *AndNode {
	n := &AndNode{UnitLits: unitLits, Children: children, seen: mapset.NewThreadUnsafeSet[int]()}
	for _, lit := range unitLits {
		if lit < 0 {
			lit = -lit
		}
		n.seen.Add(lit)
	}
	for _, child := range children {
		child.seenVars().Each(func(v int) bool {
			n.seen.Add(v)
			return false
		})
	}
	return n
}

func (n *AndNode) String() string {
	var sb strings.Builder
	sb.WriteString("[AndNode\n")
	for _, lit := range n.UnitLits {
		sb.WriteString("[unitLit " + strconv.Itoa(lit) + "]\n")
	}
	for _, child := range n.Children {
		sb.WriteString(child.String())
	}
	sb.WriteString("]\n")
	return sb.String()
}

func (n *AndNode) seenVars() mapset.Set[int] { return n.seen }

func (n *AndNode) nbDescendants() int {
	cpt := len(n.UnitLits)
	for _, child := range n.Children {
		cpt += 1 + child.nbDescendants()
	}
	return cpt
}

// An OrBranch is one of the two branches of an OrNode. Its unit literals
// behave as an implicit conjunction wrapped around the child.
type OrBranch struct {
	UnitLits []int
	Child    Node
}

// An OrNode is a deterministic, binary disjunction node: a decision on a
// variable. One branch asserts the decision variable positively, the other
// negatively, through unit literals carried either on the branches
// themselves or inside their children.
type OrNode struct {
	Variable int
	Branches [2]OrBranch
	seen     mapset.Set[int]
}

// NewOr returns a decision node on the given variable with the given
// branches.
func NewOr(variable int, branches [2]OrBranch) *OrNode {
	n := &OrNode{Variable: variable, Branches: branches, seen: mapset.NewThreadUnsafeSet[int]()}
	for i := range n.Branches {
		b := &n.Branches[i]
		for _, lit := range b.UnitLits {
			if lit < 0 {
				lit = -lit
			}
			n.seen.Add(lit)
		}
		b.Child.seenVars().Each(func(v int) bool {
			n.seen.Add(v)
			return false
		})
	}
	return n
}

func (n *OrNode) String() string {
	var sb strings.Builder
	sb.WriteString("[OrNode\nvar=" + strconv.Itoa(n.Variable) + "\n")
	for i := range n.Branches {
		sb.WriteString("[branch" + strconv.Itoa(i) + "\n")
		for _, lit := range n.Branches[i].UnitLits {
			sb.WriteString("[unitLit " + strconv.Itoa(lit) + "]\n")
		}
		sb.WriteString(n.Branches[i].Child.String())
		sb.WriteString("]\n")
	}
	sb.WriteString("]\n")
	return sb.String()
}

func (n *OrNode) seenVars() mapset.Set[int] { return n.seen }

func (n *OrNode) nbDescendants() int {
	cpt := 0
	for i := range n.Branches {
		b := &n.Branches[i]
		cpt += 1 + len(b.UnitLits)
		if b.Child != TrueNode {
			cpt += 1 + b.Child.nbDescendants()
		}
	}
	return cpt
}
