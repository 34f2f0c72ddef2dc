package ddnnf

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
)

// maxLineSize is the scanner buffer cap: a conjunction over millions of
// children is a single line in the NNF format.
const maxLineSize = 64 * 1024 * 1024

// ParseNNF parses a d-DNNF circuit in the textual NNF format and returns
// the corresponding graph.
//
// The first line must be the header "nnf <nbNodes> <nbEdges> <nbVars>".
// Each following line defines a node over previously defined ones:
//
//	L <literal>                 a literal leaf
//	A <k> <child-line>*k        a conjunction; k = 0 is the canonical true
//	O <var> <k> <child-line>*k  a decision; var = 0, k = 0 is the canonical false
//
// Child references are line indices, starting at 0 on the first line after
// the header. Literal children of a conjunction are folded into the node's
// unit literals. The last line defines the root.
func ParseNNF(r io.Reader) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), maxLineSize)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("could not read NNF header: %v", err)
		}
		return nil, fmt.Errorf("empty NNF input")
	}
	nbVars, nbNodes, err := parseNNFHeader(sc.Text())
	if err != nil {
		return nil, err
	}
	allNodes := make([]Node, 0, nbNodes)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "A":
			err = parseAnd(&allNodes, fields)
		case "O":
			err = parseOr(&allNodes, fields)
		case "L":
			err = parseLit(&allNodes, fields)
		default:
			err = fmt.Errorf("unknown node type %q", fields[0])
		}
		if err != nil {
			return nil, fmt.Errorf("could not parse node %q: %v", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not parse NNF input: %v", err)
	}
	if len(allNodes) == 0 {
		return nil, fmt.Errorf("NNF input defines no node")
	}
	return New(nbVars, allNodes[len(allNodes)-1]), nil
}

func parseNNFHeader(line string) (nbVars, nbNodes int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "nnf" {
		return 0, 0, fmt.Errorf("invalid NNF header %q", line)
	}
	if nbNodes, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("nbNodes not an int: %q", fields[1])
	}
	if nbVars, err = strconv.Atoi(fields[3]); err != nil {
		return 0, 0, fmt.Errorf("nbVars not an int: %q", fields[3])
	}
	return nbVars, nbNodes, nil
}

// childAt resolves a child reference to an already parsed node.
func childAt(allNodes []Node, field string) (Node, error) {
	idx, err := strconv.Atoi(field)
	if err != nil {
		return nil, fmt.Errorf("child index not an int: %q", field)
	}
	if idx < 0 || idx >= len(allNodes) {
		return nil, fmt.Errorf("child index %d refers to an undefined node", idx)
	}
	return allNodes[idx], nil
}

func parseLit(allNodes *[]Node, fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("expected 2 fields, got %d", len(fields))
	}
	lit, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("literal not an int: %q", fields[1])
	}
	if lit == 0 {
		return fmt.Errorf("null literal")
	}
	*allNodes = append(*allNodes, NewLit(lit))
	return nil
}

func parseAnd(allNodes *[]Node, fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("expected at least 2 fields, got %d", len(fields))
	}
	size, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("size not an int: %q", fields[1])
	}
	if size == 0 {
		*allNodes = append(*allNodes, TrueNode)
		return nil
	}
	if len(fields) != size+2 {
		return fmt.Errorf("expected %d children, got %d", size, len(fields)-2)
	}
	var unitLits []int
	var children []Node
	for _, field := range fields[2:] {
		child, err := childAt(*allNodes, field)
		if err != nil {
			return err
		}
		if lit, ok := child.(*LitNode); ok {
			unitLits = append(unitLits, lit.Lit)
		} else {
			children = append(children, child)
		}
	}
	*allNodes = append(*allNodes, NewAnd(unitLits, children))
	return nil
}

func parseOr(allNodes *[]Node, fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("expected at least 3 fields, got %d", len(fields))
	}
	variable, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("decision variable not an int: %q", fields[1])
	}
	if variable == 0 {
		*allNodes = append(*allNodes, FalseNode)
		return nil
	}
	if len(fields) != 5 || fields[2] != "2" {
		return fmt.Errorf("decision node must have exactly 2 children")
	}
	left, err := childAt(*allNodes, fields[3])
	if err != nil {
		return err
	}
	right, err := childAt(*allNodes, fields[4])
	if err != nil {
		return err
	}
	*allNodes = append(*allNodes, NewOr(variable, [2]OrBranch{{Child: left}, {Child: right}}))
	return nil
}

// ParseWeights parses a weights file: zero or more lines associating a
// literal with a real weight, e.g "-3 0.25". Blank lines are ignored.
// Weights may be given in decimal or fraction notation; they are kept
// exact. Literals not mentioned keep the default weight 1.
func ParseWeights(r io.Reader, nbVars int) (WeightVector, error) {
	w := NewWeightVector(nbVars)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("could not parse weight line %q: expected 2 fields, got %d", line, len(fields))
		}
		lit, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("could not parse weight line %q: literal not an int", line)
		}
		if lit == 0 || lit > nbVars || -lit > nbVars {
			return nil, fmt.Errorf("invalid literal %d for problem with %d vars only", lit, nbVars)
		}
		weight, ok := new(big.Rat).SetString(fields[1])
		if !ok {
			return nil, fmt.Errorf("could not parse weight line %q: invalid weight %q", line, fields[1])
		}
		w.SetWeightFor(lit, weight)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not parse weights: %v", err)
	}
	return w, nil
}

// ParseModel parses a model file: a header "model <nbVars>" followed by
// whitespace-separated literals, optionally ended by a 0.
func ParseModel(r io.Reader) (Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), maxLineSize)
	if !sc.Scan() {
		return nil, fmt.Errorf("empty model input")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 2 || fields[0] != "model" {
		return nil, fmt.Errorf("invalid model header %q", sc.Text())
	}
	nbVars, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("nbVars not an int: %q", fields[1])
	}
	m := NewModel(nbVars)
	for sc.Scan() {
		for _, field := range strings.Fields(sc.Text()) {
			lit, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("literal not an int: %q", field)
			}
			if lit == 0 {
				return m, nil
			}
			v := lit
			if v < 0 {
				v = -v
			}
			if v > nbVars {
				return nil, fmt.Errorf("invalid literal %d for model with %d vars only", lit, nbVars)
			}
			m.SetBindingFor(v, polarity(lit))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not parse model: %v", err)
	}
	return m, nil
}
