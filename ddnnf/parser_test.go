package ddnnf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const decisionNNF = `nnf 7 4 1
O 0 0
A 0
L -1
A 1 2
L 1
A 1 4
O 1 2 5 3
`

func TestParseNNF(t *testing.T) {
	g, err := ParseNNF(strings.NewReader(decisionNNF))
	require.NoError(t, err)
	assert.Equal(t, 1, g.NbVars)
	assert.Equal(t, "2", g.ModelCount(nil).RatString())
	assert.Equal(t, "1", g.ModelCount(model(1, 1)).RatString())
}

// Literal children of a conjunction are folded into its unit literals.
func TestParseNNFFoldsLits(t *testing.T) {
	const input = `nnf 5 2 2
O 0 0
A 0
L 1
L -2
A 2 2 3
`
	g, err := ParseNNF(strings.NewReader(input))
	require.NoError(t, err)
	root, ok := g.Root.(*AndNode)
	require.True(t, ok)
	assert.ElementsMatch(t, []int{1, -2}, root.UnitLits)
	assert.Empty(t, root.Children)
	assert.Equal(t, "1", g.ModelCount(nil).RatString())
}

func TestParseNNFBlankLines(t *testing.T) {
	const input = "nnf 3 0 1\n\nO 0 0\nA 0\n\nL 1\n\n"
	g, err := ParseNNF(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "1", g.ModelCount(nil).RatString())
}

func TestParseNNFErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"invalid header", "cnf 3 0 1\nL 1\n"},
		{"truncated header", "nnf 3 0\nL 1\n"},
		{"unknown node type", "nnf 3 0 1\nO 0 0\nA 0\nX 1\n"},
		{"bad literal", "nnf 3 0 1\nO 0 0\nA 0\nL x\n"},
		{"null literal", "nnf 3 0 1\nO 0 0\nA 0\nL 0\n"},
		{"undefined child", "nnf 4 1 1\nO 0 0\nA 0\nL 1\nA 1 7\n"},
		{"and size mismatch", "nnf 4 1 1\nO 0 0\nA 0\nL 1\nA 2 2\n"},
		{"or arity", "nnf 4 1 1\nO 0 0\nA 0\nL 1\nO 1 3 2 2 2\n"},
		{"no nodes", "nnf 0 0 1\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseNNF(strings.NewReader(test.input))
			assert.Error(t, err)
		})
	}
}

func TestParseWeights(t *testing.T) {
	const input = "1 0.3\n-1 0.7\n\n2 1/4\n"
	w, err := ParseWeights(strings.NewReader(input), 2)
	require.NoError(t, err)
	assert.Equal(t, "3/10", w.WeightFor(1).RatString())
	assert.Equal(t, "7/10", w.WeightFor(-1).RatString())
	assert.Equal(t, "1/4", w.WeightFor(2).RatString())
	assert.Equal(t, "1", w.WeightFor(-2).RatString())
}

func TestParseWeightsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing weight", "1\n"},
		{"literal not an int", "x 0.5\n"},
		{"invalid weight", "1 zero\n"},
		{"literal out of range", "3 0.5\n"},
		{"null literal", "0 0.5\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseWeights(strings.NewReader(test.input), 2)
			assert.Error(t, err)
		})
	}
}

func TestParseModel(t *testing.T) {
	m, err := ParseModel(strings.NewReader("model 3\n1 -3 0\n"))
	require.NoError(t, err)
	assert.Equal(t, True, m.BindingFor(1))
	assert.Equal(t, Free, m.BindingFor(2))
	assert.Equal(t, False, m.BindingFor(3))
}

func TestParseModelErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"invalid header", "mdl 3\n1 0\n"},
		{"nbVars not an int", "model x\n1 0\n"},
		{"literal out of range", "model 2\n3 0\n"},
		{"literal not an int", "model 2\none 0\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseModel(strings.NewReader(test.input))
			assert.Error(t, err)
		})
	}
}
