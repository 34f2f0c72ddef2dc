package ddnnf

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decisionGraph returns the graph of the formula "x1 or not x1" as a single
// decision node over true branches, with nbVars = 1.
func decisionGraph() *Graph {
	root := NewOr(1, [2]OrBranch{
		{UnitLits: []int{1}, Child: TrueNode},
		{UnitLits: []int{-1}, Child: TrueNode},
	})
	return New(1, root)
}

// conjGraph returns the graph of the formula "x1 and x2" over nbVars
// variables.
func conjGraph(nbVars int) *Graph {
	root := NewAnd(nil, []Node{NewLit(1), NewLit(2)})
	return New(nbVars, root)
}

func model(nbVars int, lits ...int) Model {
	m := NewModel(nbVars)
	for _, lit := range lits {
		v := lit
		if v < 0 {
			v = -v
		}
		m.SetBindingFor(v, polarity(lit))
	}
	return m
}

func TestCountLit(t *testing.T) {
	g := New(1, NewLit(1))
	assert.Equal(t, "1", g.ModelCount(nil).RatString())
	assert.Equal(t, "1", g.ModelCount(model(1, 1)).RatString())
	assert.Equal(t, "0", g.ModelCount(model(1, -1)).RatString())
}

func TestCountDecision(t *testing.T) {
	g := decisionGraph()
	assert.Equal(t, "2", g.ModelCount(nil).RatString())
	assert.Equal(t, "1", g.ModelCount(model(1, 1)).RatString())
	assert.Equal(t, "1", g.ModelCount(model(1, -1)).RatString())
}

func TestCountTotalModelIsZeroOrOne(t *testing.T) {
	g := decisionGraph()
	for _, lits := range [][]int{{1}, {-1}} {
		mc := g.ModelCount(model(1, lits...))
		assert.Contains(t, []string{"0", "1"}, mc.RatString())
	}
}

func TestCountUnsatBinding(t *testing.T) {
	g := decisionGraph()
	m := NewModel(1)
	m.SetBindingFor(1, True)
	m.SetBindingFor(1, False)
	require.Equal(t, Unsat, m.BindingFor(1))
	assert.Equal(t, "0", g.ModelCount(m).RatString())
}

// A variable absent from the whole circuit contributes a free binary
// choice.
func TestCountRootSmoothing(t *testing.T) {
	g := conjGraph(3)
	assert.Equal(t, "2", g.ModelCount(nil).RatString())
}

func TestCountWeighted(t *testing.T) {
	g := conjGraph(2)
	w := NewWeightVector(2)
	w.SetWeightFor(1, big.NewRat(3, 10))
	w.SetWeightFor(-1, big.NewRat(7, 10))
	w.SetWeightFor(2, big.NewRat(4, 10))
	w.SetWeightFor(-2, big.NewRat(6, 10))
	g.SetWeights(w)
	assert.Equal(t, "3/25", g.ModelCount(nil).RatString()) // 0.12
}

// Branch-level smoothing: one branch of a decision mentions a variable the
// other does not.
func TestCountBranchSmoothing(t *testing.T) {
	root := NewOr(1, [2]OrBranch{
		{UnitLits: []int{1}, Child: NewLit(2)},
		{UnitLits: []int{-1}, Child: TrueNode},
	})
	g := New(2, root)
	// Branch 1: x1=true, x2=true -> 1 model. Branch 2: x1=false, x2 free -> 2 models.
	assert.Equal(t, "3", g.ModelCount(nil).RatString())
	assert.Equal(t, "2", g.ModelCount(model(2, 2)).RatString())
	assert.Equal(t, "1", g.ModelCount(model(2, 1, 2)).RatString())
}

func TestCountFreeModelPowerOfTwo(t *testing.T) {
	root := NewOr(1, [2]OrBranch{
		{UnitLits: []int{1}, Child: TrueNode},
		{UnitLits: []int{-1}, Child: TrueNode},
	})
	g := New(4, root)
	assert.Equal(t, "16", g.ModelCount(NewModel(4)).RatString())
}

// Adding a dummy fresh variable scales the count by w(v') + w(-v').
func TestCountSmoothingScaling(t *testing.T) {
	mc1 := decisionGraph().ModelCount(nil)
	root := NewOr(1, [2]OrBranch{
		{UnitLits: []int{1}, Child: TrueNode},
		{UnitLits: []int{-1}, Child: TrueNode},
	})
	g2 := New(2, root)
	mc2 := g2.ModelCount(nil)
	assert.Equal(t, new(big.Rat).Mul(mc1, big.NewRat(2, 1)).RatString(), mc2.RatString())
}

// A subgraph shared by both branches of a decision must be counted through
// the memoization cache, not visited twice.
func TestCountSharedSubgraph(t *testing.T) {
	shared := NewAnd([]int{2}, nil)
	root := NewOr(1, [2]OrBranch{
		{UnitLits: []int{1}, Child: shared},
		{UnitLits: []int{-1}, Child: shared},
	})
	g := New(2, root)
	assert.Equal(t, "2", g.ModelCount(nil).RatString())
	assert.Equal(t, "0", g.ModelCount(model(2, -2)).RatString())
}

func TestCountFalseGraph(t *testing.T) {
	g := New(2, FalseNode)
	assert.Equal(t, "0", g.ModelCount(nil).RatString())
}

func TestCountTrueGraph(t *testing.T) {
	g := New(2, TrueNode)
	assert.Equal(t, "4", g.ModelCount(nil).RatString())
}
