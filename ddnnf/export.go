package ddnnf

import (
	"bufio"
	"fmt"
	"io"
)

// WriteNNF writes the graph on out in the textual NNF format, the same
// format ParseNNF reads. The output is reproducible: parsing it back yields
// a structurally equivalent graph, modulo canonicalization of the true and
// false nodes to lines 1 and 0.
//
// Node identities must be stable for the duration of the call: the graph
// must not be mutated while exporting.
func (g *Graph) WriteNNF(out io.Writer) error {
	nodeToLine := make(map[Node]int)
	var allNodes []Node
	lineIndex := 2
	indexNodes(g.Root, nodeToLine, &allNodes, &lineIndex)
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "nnf %d %d %d\n", lineIndex, g.Root.nbDescendants(), g.NbVars)
	// Bottom and top must be written as the very first lines, used or not.
	fmt.Fprintln(w, "O 0 0")
	fmt.Fprintln(w, "A 0")
	for _, n := range allNodes {
		if err := printNNF(n, w, nodeToLine); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("could not write NNF output: %v", err)
	}
	return nil
}

// indexNodes assigns an output line to every node reachable from n, in
// post-order, so that the whole DAG can be exported as an NNF file.
// nodeToLine indicates at what line in the output each node will appear.
// allNodes collects the nodes in the order they should be written.
// lineIndex is the line at which the next node will be written; at the root
// it must start at 2, since lines 0 and 1 are reserved for the false and
// true nodes.
func indexNodes(n Node, nodeToLine map[Node]int, allNodes *[]Node, lineIndex *int) {
	if _, ok := nodeToLine[n]; ok {
		return
	}
	switch n := n.(type) {
	case *LitNode:
		nodeToLine[n] = *lineIndex
		*lineIndex++
		*allNodes = append(*allNodes, n)
	case *AndNode:
		for _, child := range n.Children {
			indexNodes(child, nodeToLine, allNodes, lineIndex)
		}
		// One line per unit literal, right before the node's own line.
		*lineIndex += len(n.UnitLits)
		nodeToLine[n] = *lineIndex
		*lineIndex++
		*allNodes = append(*allNodes, n)
	case *OrNode:
		for i := range n.Branches {
			indexNodes(n.Branches[i].Child, nodeToLine, allNodes, lineIndex)
		}
		for i := range n.Branches {
			// One line per unit literal, one for the implicit "and" node.
			*lineIndex += len(n.Branches[i].UnitLits) + 1
		}
		nodeToLine[n] = *lineIndex
		*lineIndex++
		*allNodes = append(*allNodes, n)
	}
}

// lineIndexFor returns the output line of a child node.
// The shared false and true nodes live at the reserved lines 0 and 1.
func lineIndexFor(nodeToLine map[Node]int, n Node) (int, error) {
	switch n.(type) {
	case falseConst:
		return 0, nil
	case trueConst:
		return 1, nil
	default:
		line, ok := nodeToLine[n]
		if !ok {
			return 0, fmt.Errorf("node appears in export but was not indexed")
		}
		return line, nil
	}
}

func printNNF(n Node, w io.Writer, nodeToLine map[Node]int) error {
	switch n := n.(type) {
	case falseConst:
		_, err := fmt.Fprintln(w, "O 0 0")
		return err
	case trueConst:
		_, err := fmt.Fprintln(w, "A 0")
		return err
	case *LitNode:
		_, err := fmt.Fprintf(w, "L %d\n", n.Lit)
		return err
	case *AndNode:
		return printAndNNF(n, w, nodeToLine)
	case *OrNode:
		return printOrNNF(n, w, nodeToLine)
	default:
		panic("invalid node type")
	}
}

func printAndNNF(n *AndNode, w io.Writer, nodeToLine map[Node]int) error {
	line := nodeToLine[n]
	for _, lit := range n.UnitLits {
		fmt.Fprintf(w, "L %d\n", lit)
	}
	fmt.Fprintf(w, "A %d", len(n.UnitLits)+len(n.Children))
	for _, child := range n.Children {
		childLine, err := lineIndexFor(nodeToLine, child)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, " %d", childLine)
	}
	for i := range n.UnitLits {
		fmt.Fprintf(w, " %d", line-len(n.UnitLits)+i)
	}
	_, err := fmt.Fprintln(w)
	return err
}

func printOrNNF(n *OrNode, w io.Writer, nodeToLine map[Node]int) error {
	line := nodeToLine[n]
	nbLines := [2]int{len(n.Branches[0].UnitLits) + 1, len(n.Branches[1].UnitLits) + 1}
	// Line of each branch's implicit "and" node.
	branchLines := [2]int{line - 1, line - nbLines[0] - 1}
	for i := len(n.Branches) - 1; i >= 0; i-- {
		branch := &n.Branches[i]
		branchLine := branchLines[i]
		for _, lit := range branch.UnitLits {
			fmt.Fprintf(w, "L %d\n", lit)
		}
		if branch.Child == TrueNode {
			fmt.Fprintf(w, "A %d", len(branch.UnitLits))
		} else {
			childLine, err := lineIndexFor(nodeToLine, branch.Child)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "A %d %d", len(branch.UnitLits)+1, childLine)
		}
		for j := range branch.UnitLits {
			fmt.Fprintf(w, " %d", branchLine-len(branch.UnitLits)+j)
		}
		fmt.Fprintln(w)
	}
	_, err := fmt.Fprintf(w, "O %d 2 %d %d\n", n.Variable, branchLines[0], branchLines[1])
	return err
}
