package targetspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoundsYAML(t *testing.T) {
	doc := []byte(`
zeta: [0, 1]
alpha: [1, 8, int]
scale: [0.5, 2, float]
fruit: [apple, banana, "honeydew melon"]
seed: {type: int, low: -3, high: 9}
version: {type: categorical, categories: ["1", "2", "3"]}
`)

	bounds, err := ParseBounds(doc)
	require.NoError(t, err)

	assert.Equal(t, []Bound{
		{Name: "zeta", Kind: KindFloat, Low: 0, High: 1},
		{Name: "alpha", Kind: KindInt, Low: 1, High: 8},
		{Name: "scale", Kind: KindFloat, Low: 0.5, High: 2},
		{Name: "fruit", Kind: KindCategorical, Categories: []string{"apple", "banana", "honeydew melon"}},
		{Name: "seed", Kind: KindInt, Low: -3, High: 9},
		{Name: "version", Kind: KindCategorical, Categories: []string{"1", "2", "3"}},
	}, bounds)

	// Document order, not alphabetical order, fixes the keys.
	space, err := NewSpace(bounds...)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "scale", "fruit", "seed", "version"}, space.Keys())
	assert.Equal(t, 1+1+1+3+1+3, space.Dim())
}

func TestParseBoundsJSON(t *testing.T) {
	doc := []byte(`{"p1": [0, 5, "int"], "p3": [-1, 3, "int"], "fruit": ["apple", "banana"]}`)

	bounds, err := ParseBounds(doc)
	require.NoError(t, err)
	require.Len(t, bounds, 3)

	assert.Equal(t, IntBound("p1", 0, 5), bounds[0])
	assert.Equal(t, IntBound("p3", -1, 3), bounds[1])
	assert.Equal(t, CategoricalBound("fruit", "apple", "banana"), bounds[2])
}

func TestParseBoundsErrors(t *testing.T) {
	docs := map[string]string{
		"not a mapping":     `[1, 2]`,
		"scalar entry":      `p: 1`,
		"empty entry":       `p: []`,
		"one number":        `p: [1]`,
		"inverted":          `p: [2, 1]`,
		"mixed":             `p: [1, apple]`,
		"unknown marker":    `p: [0, 1, complex]`,
		"categorical mark":  `p: [0, 1, categorical]`,
		"too many numbers":  `p: [0, 1, 2]`,
		"fractional int":    `p: [0.5, 3, int]`,
		"duplicate labels":  `p: [a, b, a]`,
		"single label":      `p: [a]`,
		"duplicate name":    "p: [0, 1]\np: [0, 2]",
		"missing type":      `p: {low: 0, high: 1}`,
		"missing high":      `p: {type: float, low: 0}`,
		"categorical range": `p: {type: categorical, low: 0, high: 1, categories: [a, b]}`,
		"quoted number":     `p: ["0", 1]`,
		"nested label":      `p: [a, [b]]`,
		"infinite":          `p: [0, .inf]`,
		"bad yaml":          `p: [0, 1`,
	}

	for name, doc := range docs {
		_, err := ParseBounds([]byte(doc))
		assert.ErrorIs(t, err, ErrConfiguration, name)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "float", KindFloat.String())
	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "categorical", KindCategorical.String())
	assert.Equal(t, "unknown", Kind(-1).String())
}
