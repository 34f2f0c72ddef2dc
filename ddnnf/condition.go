package ddnnf

import mapset "github.com/deckarep/golang-set/v2"

// ConditionTo destructively folds the given partial model into the graph:
// after the call, ModelCount(nil) on the graph answers what
// ModelCount(partialModel) answered before, for any weight vector, and
// subsequent queries need not pass partialModel again.
//
// The graph is rewritten in place. A new conjunction root asserts the bound
// variables as unit literals over the previous root, and the assignment is
// propagated down the DAG: unit literals the model satisfies move to the
// new root, contradicted branches collapse to the false node. Each node,
// shared or not, is visited exactly once. Conditioning twice by the same
// model is a no-op the second time, observationally.
func (g *Graph) ConditionTo(partialModel Model) {
	g.weights.Update(partialModel)
	root := &AndNode{seen: g.Root.seenVars().Clone()}
	for v := 1; v <= g.NbVars; v++ {
		switch partialModel.BindingFor(v) {
		case True:
			root.UnitLits = append(root.UnitLits, v)
			root.seen.Add(v)
		case False:
			root.UnitLits = append(root.UnitLits, -v)
			root.seen.Add(v)
		case Unsat:
			root.UnitLits = append(root.UnitLits, v, -v)
			root.seen.Add(v)
		}
	}
	cache := make(map[Node]struct{})
	root.Children = []Node{conditionChild(g.Root, partialModel)}
	condition(root.Children[0], partialModel, cache)
	g.Root = root
}

// condition propagates a partial assignment down the DAG.
// cache holds the already visited nodes, keyed on identity, so that a node
// shared by several parents is rewritten exactly once.
func condition(n Node, partialModel Model, cache map[Node]struct{}) {
	if _, ok := cache[n]; ok {
		return
	}
	cache[n] = struct{}{}
	switch n := n.(type) {
	case *OrNode:
		conditionOr(n, partialModel, cache)
	case *AndNode:
		conditionAnd(n, partialModel, cache)
	}
}

// conditionChild canonicalizes a literal child whose variable the model
// binds: the new root asserts it now, so it becomes the true node, or the
// false node on contradiction. Other nodes are returned unchanged and
// rewritten in place by condition.
func conditionChild(n Node, partialModel Model) Node {
	lit, ok := n.(*LitNode)
	if !ok {
		return n
	}
	b := bindingForLit(partialModel, lit.Lit)
	if b == Free {
		return n
	}
	if contradicts(b, lit.Lit) {
		return FalseNode
	}
	return TrueNode
}

// conditionUnitLits keeps the unit literals on variables the model leaves
// free; satisfied literals are dropped, as the new root asserts them. ok is
// false when a literal contradicts the model.
func conditionUnitLits(unitLits []int, partialModel Model) (kept []int, ok bool) {
	for _, lit := range unitLits {
		b := bindingForLit(partialModel, lit)
		if b == Free {
			kept = append(kept, lit)
			continue
		}
		if contradicts(b, lit) {
			return nil, false
		}
	}
	return kept, true
}

func conditionOr(n *OrNode, partialModel Model, cache map[Node]struct{}) {
	eraseBoundVars(n.seen, partialModel)
	for i := range n.Branches {
		branch := &n.Branches[i]
		kept, ok := conditionUnitLits(branch.UnitLits, partialModel)
		if !ok {
			branch.Child = FalseNode
			branch.UnitLits = nil
		} else {
			branch.UnitLits = kept
			branch.Child = conditionChild(branch.Child, partialModel)
		}
		condition(branch.Child, partialModel, cache)
	}
}

func conditionAnd(n *AndNode, partialModel Model, cache map[Node]struct{}) {
	eraseBoundVars(n.seen, partialModel)
	kept, ok := conditionUnitLits(n.UnitLits, partialModel)
	if !ok {
		n.Children = []Node{FalseNode}
		n.UnitLits = nil
		return
	}
	n.UnitLits = kept
	for i, child := range n.Children {
		n.Children[i] = conditionChild(child, partialModel)
		condition(n.Children[i], partialModel, cache)
	}
}

func bindingForLit(m Model, lit int) Binding {
	if lit < 0 {
		lit = -lit
	}
	return m.BindingFor(lit)
}

// eraseBoundVars removes from seen every variable the model binds, whether
// the subgraph mentioned it or not. The root-level smoothing in ModelCount
// compensates through NbVars.
func eraseBoundVars(seen mapset.Set[int], partialModel Model) {
	for v := 1; v <= partialModel.NbVars(); v++ {
		if partialModel.BindingFor(v) != Free {
			seen.Remove(v)
		}
	}
}
