package ddnnf

// A Graph is a d-DNNF circuit: a root node, the number of variables of the
// problem it was compiled from, and the current weight of each literal.
//
// A subgraph may omit variables; queries compensate by smoothing, so NbVars
// is authoritative, not the set of variables the root actually mentions.
type Graph struct {
	NbVars int
	Root   Node

	weights WeightVector
}

// New returns a graph over nbVars variables rooted at root, with uniform
// weights.
func New(nbVars int, root Node) *Graph {
	return &Graph{NbVars: nbVars, Root: root, weights: NewWeightVector(nbVars)}
}

// SetWeights replaces the weights of the graph.
func (g *Graph) SetWeights(weights WeightVector) {
	g.weights = weights
}

// Weights returns the graph's current weight vector.
// The returned vector is owned by the graph and must not be modified.
func (g *Graph) Weights() WeightVector {
	return g.weights
}

// NbNodes returns the number of nodes of the graph in its textual NNF
// representation, i.e the number of lines an export would produce,
// including the two reserved false and true lines. Shared subgraphs are
// counted once.
func (g *Graph) NbNodes() int {
	nodeToLine := make(map[Node]int)
	var allNodes []Node
	lineIndex := 2
	indexNodes(g.Root, nodeToLine, &allNodes, &lineIndex)
	return lineIndex
}
