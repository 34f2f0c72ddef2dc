package objective

import "github.com/crillab/godnnf/ddnnf"

// KeepBoundedWeightModels returns a copy of g pruned against bound. A
// subgraph becomes the false node when the MinWeight of the literals it
// forces exceeds bound. A decision node whose two branches both survive
// is collapsed onto the branch with the lower MinWeight, and kept whole
// when both MinWeights are equal.
//
// The result is not an exact filter of the models of g by value: the
// collapse drops the models of the costlier branch even when some of them
// fit the bound, and variables that a kept subgraph leaves unconstrained
// (under a kept true node, or absent from the subgraph) stay free in the
// result, so models above the bound can survive.
//
// g itself is not modified; the result is a rewritten copy. Shared
// subgraphs of g are rewritten once per parent, so the result is a tree.
// If no model of g fits the bound, the result is rooted at the false node.
func (f *Func) KeepBoundedWeightModels(g *ddnnf.Graph, bound int) *ddnnf.Graph {
	_, root := f.keepBounded(g.Root, bound)
	return ddnnf.New(g.NbVars, root)
}

// keepBounded rewrites the subgraph rooted at n, returning the literals
// every surviving model is forced to set together with the replacement
// node. A false replacement means no model of the subgraph fits the bound.
//
// The forced-literal list is a lower-bound certificate for the parent: it
// only needs to prove some model within the bound exists, which is why a
// kept decision node propagates its first branch's literals as
// representative.
func (f *Func) keepBounded(n ddnnf.Node, bound int) ([]int, ddnnf.Node) {
	if n == ddnnf.TrueNode {
		if f.MinWeight(nil) <= bound {
			return nil, ddnnf.TrueNode
		}
		return nil, ddnnf.FalseNode
	}
	if n == ddnnf.FalseNode {
		return nil, ddnnf.FalseNode
	}
	switch n := n.(type) {
	case *ddnnf.LitNode:
		if f.MinWeight([]int{n.Lit}) <= bound {
			return []int{n.Lit}, ddnnf.NewLit(n.Lit)
		}
		return nil, ddnnf.FalseNode
	case *ddnnf.AndNode:
		return f.keepBoundedAnd(n, bound)
	case *ddnnf.OrNode:
		return f.keepBoundedOr(n, bound)
	default:
		panic("invalid node type")
	}
}

func (f *Func) keepBoundedAnd(n *ddnnf.AndNode, bound int) ([]int, ddnnf.Node) {
	assigns := append([]int(nil), n.UnitLits...)
	children := make([]ddnnf.Node, 0, len(n.Children))
	for _, child := range n.Children {
		childAssigns, childNode := f.keepBounded(child, bound)
		if childNode == ddnnf.FalseNode {
			return nil, ddnnf.FalseNode
		}
		assigns = append(assigns, childAssigns...)
		children = append(children, childNode)
	}
	if f.MinWeight(assigns) > bound {
		return nil, ddnnf.FalseNode
	}
	return assigns, ddnnf.NewAnd(append([]int(nil), n.UnitLits...), children)
}

// keepBoundedBranch applies the rewrite to one branch of a decision node,
// treating its unit literals as an implicit conjunction over the child.
func (f *Func) keepBoundedBranch(b *ddnnf.OrBranch, bound int) ([]int, ddnnf.Node) {
	assigns, node := f.keepBounded(b.Child, bound)
	if node == ddnnf.FalseNode {
		return nil, ddnnf.FalseNode
	}
	if len(b.UnitLits) > 0 {
		node = ddnnf.NewAnd(append([]int(nil), b.UnitLits...), []ddnnf.Node{node})
		assigns = append(append([]int(nil), assigns...), b.UnitLits...)
	}
	if f.MinWeight(assigns) > bound {
		return nil, ddnnf.FalseNode
	}
	return assigns, node
}

func (f *Func) keepBoundedOr(n *ddnnf.OrNode, bound int) ([]int, ddnnf.Node) {
	assigns0, node0 := f.keepBoundedBranch(&n.Branches[0], bound)
	assigns1, node1 := f.keepBoundedBranch(&n.Branches[1], bound)
	// Determinism makes the branches disjoint, so when only one survives,
	// or when their bounds differ, the decision collapses onto one branch.
	switch {
	case node0 == ddnnf.FalseNode:
		return assigns1, node1
	case node1 == ddnnf.FalseNode:
		return assigns0, node0
	}
	mw0, mw1 := f.MinWeight(assigns0), f.MinWeight(assigns1)
	switch {
	case mw0 > mw1:
		return assigns1, node1
	case mw1 > mw0:
		return assigns0, node0
	default:
		newOr := ddnnf.NewOr(n.Variable, [2]ddnnf.OrBranch{{Child: node0}, {Child: node1}})
		return assigns0, newOr
	}
}
