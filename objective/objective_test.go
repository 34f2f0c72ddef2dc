package objective

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/godnnf/ddnnf"
)

// decisionGraph returns the graph of the formula "x1 or not x1", nbVars = 1.
func decisionGraph() *ddnnf.Graph {
	root := ddnnf.NewOr(1, [2]ddnnf.OrBranch{
		{UnitLits: []int{1}, Child: ddnnf.TrueNode},
		{UnitLits: []int{-1}, Child: ddnnf.TrueNode},
	})
	return ddnnf.New(1, root)
}

func TestSetGet(t *testing.T) {
	f := New(2)
	assert.Equal(t, 0, f.Get(1))
	f.Set(1, 5)
	f.Set(-1, 2)
	f.Set(-2, -3)
	assert.Equal(t, 5, f.Get(1))
	assert.Equal(t, 2, f.Get(-1))
	assert.Equal(t, 0, f.Get(2))
	assert.Equal(t, -3, f.Get(-2))
	assert.Equal(t, 2, f.NbVars())
}

func TestParse(t *testing.T) {
	const input = "1 5\n-1 2\n\n2 -4\n"
	f, err := Parse(strings.NewReader(input), 2)
	require.NoError(t, err)
	assert.Equal(t, 5, f.Get(1))
	assert.Equal(t, 2, f.Get(-1))
	assert.Equal(t, -4, f.Get(2))
}

// Malformed lines are skipped, not fatal.
func TestParseMalformedLines(t *testing.T) {
	const input = "1 5\nbogus\n3 1\n0 2\n-1 2\n"
	f, err := Parse(strings.NewReader(input), 2)
	require.NoError(t, err)
	assert.Equal(t, 5, f.Get(1))
	assert.Equal(t, 2, f.Get(-1))
}

func TestMinWeight(t *testing.T) {
	f := New(2)
	f.Set(1, 5)
	f.Set(-1, 2)
	f.Set(2, 3)
	f.Set(-2, 7)
	tests := []struct {
		name     string
		lits     []int
		expected int
	}{
		{"no forced lits", nil, 5},
		{"force expensive polarity", []int{1}, 8},
		{"force cheap polarities", []int{-1, 2}, 5},
		{"force both expensive", []int{1, -2}, 12},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, f.MinWeight(test.lits))
		})
	}
}

func TestOptimizeDecision(t *testing.T) {
	f := New(1)
	f.Set(1, 5)
	f.Set(-1, 2)
	value, m := f.Optimize(decisionGraph())
	require.NotNil(t, m)
	assert.Equal(t, 2, value)
	assert.Equal(t, ddnnf.False, m.BindingFor(1))
}

func TestOptimizeFreeVarsPickCheaperLit(t *testing.T) {
	// The circuit only constrains variable 1; variable 2 is scored at its
	// cheaper literal.
	f := New(2)
	f.Set(1, 5)
	f.Set(-1, 2)
	f.Set(2, -1)
	f.Set(-2, 4)
	g := ddnnf.New(2, ddnnf.NewLit(1))
	value, m := f.Optimize(g)
	require.NotNil(t, m)
	assert.Equal(t, 4, value) // 5 for forced x1, -1 for free x2
	assert.Equal(t, ddnnf.True, m.BindingFor(1))
	assert.Equal(t, ddnnf.True, m.BindingFor(2))
}

func TestOptimizeConj(t *testing.T) {
	f := New(2)
	f.Set(1, 3)
	f.Set(2, 4)
	root := ddnnf.NewAnd([]int{1}, []ddnnf.Node{ddnnf.NewLit(2)})
	value, m := f.Optimize(ddnnf.New(2, root))
	require.NotNil(t, m)
	assert.Equal(t, 7, value)
	assert.Equal(t, ddnnf.True, m.BindingFor(1))
	assert.Equal(t, ddnnf.True, m.BindingFor(2))
}

func TestOptimizeInfeasible(t *testing.T) {
	g := ddnnf.New(1, ddnnf.FalseNode)
	_, m := f1().Optimize(g)
	assert.Nil(t, m)
}

// A decision with one dead branch is minimized over the live one.
func TestOptimizeDeadBranch(t *testing.T) {
	f := f1()
	root := ddnnf.NewOr(1, [2]ddnnf.OrBranch{
		{UnitLits: []int{1}, Child: ddnnf.FalseNode},
		{UnitLits: []int{-1}, Child: ddnnf.TrueNode},
	})
	value, m := f.Optimize(ddnnf.New(1, root))
	require.NotNil(t, m)
	assert.Equal(t, 2, value)
	assert.Equal(t, ddnnf.False, m.BindingFor(1))
}

func f1() *Func {
	f := New(1)
	f.Set(1, 5)
	f.Set(-1, 2)
	return f
}

func TestKeepBoundedDecision(t *testing.T) {
	f := f1()
	g := f.KeepBoundedWeightModels(decisionGraph(), 3)
	assert.Equal(t, 1, g.NbVars)
	assert.Equal(t, "1", g.ModelCount(nil).RatString())
	m := g.ValidModel(nil)
	require.NotNil(t, m)
	assert.Equal(t, ddnnf.False, m.BindingFor(1))
}

func TestKeepBoundedKeepsBoth(t *testing.T) {
	// With equal branch bounds the decision node survives.
	f := New(1)
	f.Set(1, 2)
	f.Set(-1, 2)
	g := f.KeepBoundedWeightModels(decisionGraph(), 2)
	assert.Equal(t, "2", g.ModelCount(nil).RatString())
}

func TestKeepBoundedAllTooCostly(t *testing.T) {
	f := f1()
	g := f.KeepBoundedWeightModels(decisionGraph(), 1)
	assert.Equal(t, "0", g.ModelCount(nil).RatString())
	assert.Nil(t, g.ValidModel(nil))
}

func TestKeepBoundedDoesNotTouchOriginal(t *testing.T) {
	f := f1()
	orig := decisionGraph()
	f.KeepBoundedWeightModels(orig, 3)
	assert.Equal(t, "2", orig.ModelCount(nil).RatString())
}

func TestKeepBoundedConj(t *testing.T) {
	f := New(2)
	f.Set(1, 3)
	f.Set(2, 4)
	root := ddnnf.NewAnd([]int{1}, []ddnnf.Node{ddnnf.NewLit(2)})
	g := ddnnf.New(2, root)
	kept := f.KeepBoundedWeightModels(g, 7)
	assert.Equal(t, "1", kept.ModelCount(nil).RatString())
	pruned := f.KeepBoundedWeightModels(g, 6)
	assert.Equal(t, "0", pruned.ModelCount(nil).RatString())
}

// On the decision graph, at the optimal bound, the models surviving the
// rewrite are exactly the ones that fit the bound.
func TestKeepBoundedAtOptimum(t *testing.T) {
	f := f1()
	g := decisionGraph()
	value, m := f.Optimize(g)
	require.NotNil(t, m)
	kept := f.KeepBoundedWeightModels(g, value)
	assert.Equal(t, "1", kept.ModelCount(nil).RatString())
	best := kept.ValidModel(nil)
	require.NotNil(t, best)
	assert.Equal(t, ddnnf.False, best.BindingFor(1))
}

func TestKeepBoundedTrueRoot(t *testing.T) {
	f := f1()
	g := ddnnf.New(1, ddnnf.TrueNode)
	// The true node cannot be restricted per variable: the rewrite keeps it
	// whole when the unconstrained minimum fits the bound.
	assert.Equal(t, "2", f.KeepBoundedWeightModels(g, 2).ModelCount(nil).RatString())
	assert.Equal(t, "0", f.KeepBoundedWeightModels(g, 1).ModelCount(nil).RatString())
}
