package ddnnf

// ValidModel returns a model of the graph extending the given partial model,
// or nil if no such model exists. The result is nil iff
// ModelCount(partialModel) is 0 under weights that forbid no literal.
// A nil partialModel searches among all models.
//
// The search is a single deterministic depth-first descent: by construction
// of a d-DNNF, no backtracking across the branches of a decision node is
// needed.
func (g *Graph) ValidModel(partialModel Model) Model {
	if partialModel == nil {
		partialModel = NewModel(g.NbVars)
	}
	return validModel(g.Root, partialModel)
}

func validModel(n Node, partialModel Model) Model {
	switch n := n.(type) {
	case falseConst:
		return nil
	case trueConst:
		return partialModel.Clone()
	case *LitNode:
		return validLitModel(n.Lit, partialModel)
	case *AndNode:
		return validAndModel(n, partialModel)
	case *OrNode:
		return validOrModel(n, partialModel)
	default:
		panic("invalid node type")
	}
}

func validLitModel(lit int, partialModel Model) Model {
	v := lit
	if v < 0 {
		v = -v
	}
	b := partialModel.BindingFor(v)
	if b == Free {
		m := partialModel.Clone()
		m.SetBindingFor(v, polarity(lit))
		return m
	}
	if contradicts(b, lit) {
		return nil
	}
	return partialModel.Clone()
}

// applyUnitLits asserts each literal into m.
// It returns false if a literal contradicts a binding already in m.
func applyUnitLits(m Model, unitLits []int) bool {
	for _, lit := range unitLits {
		v := lit
		if v < 0 {
			v = -v
		}
		if contradicts(m.BindingFor(v), lit) {
			return false
		}
		m.SetBindingFor(v, polarity(lit))
	}
	return true
}

func validAndModel(n *AndNode, partialModel Model) Model {
	res := partialModel.Clone()
	if !applyUnitLits(res, n.UnitLits) {
		return nil
	}
	for _, child := range n.Children {
		m := validModel(child, res)
		if m == nil || !Mix(res, m, res) {
			return nil
		}
	}
	return res
}

func validOrModel(n *OrNode, partialModel Model) Model {
	for i := range n.Branches {
		branch := &n.Branches[i]
		m := partialModel.Clone()
		if !applyUnitLits(m, branch.UnitLits) {
			continue
		}
		if res := validModel(branch.Child, m); res != nil {
			return res
		}
	}
	return nil
}
