package ddnnf

import "math/big"

// ModelCount returns the weighted number of models of the graph that extend
// the given partial model, as an exact nonnegative rational. A nil
// partialModel counts all models.
//
// The count is the sum, over every total model M extending partialModel and
// accepted by the circuit, of the product of the weights of the literals M
// sets. With uniform weights this is the plain model count.
//
// Subgraphs that omit variables are compensated for: each variable absent
// from a disjunction branch, or from the whole circuit, contributes a free
// binary choice weighted w(v) + w(-v).
func (g *Graph) ModelCount(partialModel Model) *big.Rat {
	weights := g.weights.Clone()
	if partialModel != nil {
		weights.Update(partialModel)
	}
	cache := make(map[Node]*big.Rat)
	mc := new(big.Rat).Set(modelCount(g.Root, weights, cache))
	seen := g.Root.seenVars()
	if seen.Cardinality() == g.NbVars {
		return mc
	}
	factor := big.NewRat(1, 1)
	for v := 1; v <= g.NbVars; v++ {
		if !seen.Contains(v) {
			factor.Mul(factor, weights.WeightForVar(v))
		}
		if factor.Sign() == 0 {
			break
		}
	}
	return mc.Mul(mc, factor)
}

// modelCount counts the models of the subgraph rooted at n under the given
// weights. Counts of already visited nodes are stored into cache, keyed on
// node identity: within one query the weights are fixed, so a node's count
// only depends on its subgraph. Returned values are owned by the cache and
// must not be modified by callers.
func modelCount(n Node, weights WeightVector, cache map[Node]*big.Rat) *big.Rat {
	if mc, ok := cache[n]; ok {
		return mc
	}
	var res *big.Rat
	switch n := n.(type) {
	case falseConst:
		res = new(big.Rat)
	case trueConst:
		res = big.NewRat(1, 1)
	case *LitNode:
		res = new(big.Rat).Set(weights.WeightFor(n.Lit))
	case *AndNode:
		res = countAnd(n, weights, cache)
	case *OrNode:
		res = countOr(n, weights, cache)
	default:
		panic("invalid node type")
	}
	cache[n] = res
	return res
}

func countAnd(n *AndNode, weights WeightVector, cache map[Node]*big.Rat) *big.Rat {
	nb := big.NewRat(1, 1)
	for _, lit := range n.UnitLits {
		nb.Mul(nb, weights.WeightFor(lit))
	}
	if nb.Sign() == 0 {
		return nb
	}
	for _, child := range n.Children {
		nb.Mul(nb, modelCount(child, weights, cache))
		if nb.Sign() == 0 {
			return nb
		}
	}
	return nb
}

func countOr(n *OrNode, weights WeightVector, cache map[Node]*big.Rat) *big.Rat {
	res := new(big.Rat)
	for i := range n.Branches {
		branch := &n.Branches[i]
		local := new(big.Rat).Set(modelCount(branch.Child, weights, cache))
		for _, lit := range branch.UnitLits {
			local.Mul(local, weights.WeightFor(lit))
		}
		if local.Sign() != 0 {
			local.Mul(local, branchSmoothing(n, branch, weights))
		}
		res.Add(res, local)
	}
	return res
}

// branchSmoothing compensates for the variables the disjunction sees but the
// branch does not: each of them is a free binary choice for any model going
// through the branch, weighted w(v) + w(-v).
func branchSmoothing(n *OrNode, branch *OrBranch, weights WeightVector) *big.Rat {
	factor := big.NewRat(1, 1)
	childSeen := branch.Child.seenVars()
	n.seen.Each(func(v int) bool {
		if childSeen.Contains(v) || branchAsserts(branch, v) {
			return false
		}
		factor.Mul(factor, weights.WeightForVar(v))
		return factor.Sign() == 0
	})
	return factor
}

// branchAsserts is true iff one of the branch's unit literals is on v.
func branchAsserts(branch *OrBranch, v int) bool {
	for _, lit := range branch.UnitLits {
		if lit == v || lit == -v {
			return true
		}
	}
	return false
}
