package ddnnf

import "math/big"

// A WeightVector associates an exact rational weight with each literal of a
// graph. The default weight is 1 for every literal; setting a literal's
// weight to 0 forbids that literal.
//
// Weight of literal l is at index 2*(l-1).
// Weight of literal -l is at index 2*(l-1) + 1.
// So, the vector contains weights of literals 1, -1, 2, -2, etc.
type WeightVector []big.Rat

// NewWeightVector returns a uniform weight vector for nbVars variables:
// every literal weighs 1.
func NewWeightVector(nbVars int) WeightVector {
	w := make(WeightVector, nbVars*2)
	for i := range w {
		w[i].SetInt64(1)
	}
	return w
}

func litIndex(lit int) int {
	if lit > 0 {
		return (lit - 1) * 2
	}
	return (-lit-1)*2 + 1
}

// WeightFor returns the weight for the given literal.
// lit must be a valid literal since no checking is done here.
// The returned value is owned by the vector and must not be modified.
func (w WeightVector) WeightFor(lit int) *big.Rat {
	return &w[litIndex(lit)]
}

// WeightForVar returns the weight for the given variable, i.e the sum of the
// weights of its two literals.
func (w WeightVector) WeightForVar(v int) *big.Rat {
	idx := (v - 1) * 2
	return new(big.Rat).Add(&w[idx], &w[idx+1])
}

// SetWeightFor sets the weight for the given literal.
func (w WeightVector) SetWeightFor(lit int, weight *big.Rat) {
	w[litIndex(lit)].Set(weight)
}

// NbVars returns the number of variables the vector holds weights for.
func (w WeightVector) NbVars() int {
	return len(w) / 2
}

// Clone returns an independent copy of w.
func (w WeightVector) Clone() WeightVector {
	w2 := make(WeightVector, len(w))
	for i := range w {
		w2[i].Set(&w[i])
	}
	return w2
}

// Update zeroes the weight of every literal falsified by the partial model:
// the negative literal of a True variable, the positive literal of a False
// one, and both literals of an Unsat one. Free variables are left alone.
// This reduces a partial-model query to a pure weighted-count query.
func (w WeightVector) Update(partialModel Model) {
	for v := 1; v <= w.NbVars(); v++ {
		switch partialModel.BindingFor(v) {
		case True:
			w[litIndex(-v)].SetInt64(0)
		case False:
			w[litIndex(v)].SetInt64(0)
		case Unsat:
			w[litIndex(v)].SetInt64(0)
			w[litIndex(-v)].SetInt64(0)
		}
	}
}
