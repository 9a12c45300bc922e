package table

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(ws []float64) float64 {
	s := 0.0
	for _, w := range ws {
		s += w
	}
	return s
}

func TestDecodeShapes(t *testing.T) {
	vocab := []string{"a", "b", "c"}
	data := []byte(`{
		"x": "X",
		"u": ["p", "q"],
		"w": [["m", "n"], [0.25, 0.75]],
		"a": [0.0, 0.5, 0.5]
	}`)
	tbl, err := Decode(data, vocab)
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.Len())

	r, ok := tbl.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, Row{Alternatives: []string{"X"}, Weights: []float64{1}}, r)

	r, _ = tbl.Lookup("u")
	assert.Equal(t, []float64{0.5, 0.5}, r.Weights)

	r, _ = tbl.Lookup("w")
	assert.Equal(t, []string{"m", "n"}, r.Alternatives)
	assert.Equal(t, []float64{0.25, 0.75}, r.Weights)

	r, _ = tbl.Lookup("a")
	assert.Equal(t, vocab, r.Alternatives)

	_, ok = tbl.Lookup("missing")
	assert.False(t, ok)
}

func TestDecodeRejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"weights do not sum to one": `{"a": [["b", "c"], [0.2, 0.2]]}`,
		"negative weight":           `{"a": [["b", "c"], [1.5, -0.5]]}`,
		"length mismatch":           `{"a": [["b", "c"], [1.0]]}`,
		"empty list":                `{"a": []}`,
		"vector without vocab":      `{"a": [0.5, 0.25, 0.25]}`,
		"not an object":             `["a"]`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(data), nil)
			assert.Error(t, err)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	tbl := FromCounts(map[string]map[string]int{
		"cat": {"bat": 3, "cta": 1},
		"dog": {"dgo": 2},
	})
	data, err := tbl.Encode()
	require.NoError(t, err)

	back, err := Decode(data, nil)
	require.NoError(t, err)
	for _, k := range tbl.Keys() {
		want, _ := tbl.Lookup(k)
		got, ok := back.Lookup(k)
		require.True(t, ok, k)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("row %q mismatch (-want +got):\n%s", k, diff)
		}
	}
}

func TestFromCountsNormalizes(t *testing.T) {
	tbl := FromCounts(map[string]map[string]int{
		"cat": {"bat": 3, "cta": 1, "cay": 0},
	})
	r, ok := tbl.Lookup("cat")
	require.True(t, ok)
	assert.Equal(t, []string{"bat", "cta"}, r.Alternatives)
	assert.InDelta(t, 0.75, r.Weights[0], Tolerance)
	assert.InDelta(t, 1.0, sum(r.Weights), Tolerance)
	require.NoError(t, tbl.Validate())
}

func TestFromVectorsUsesVocabularyOrder(t *testing.T) {
	vocab := []string{"a", "b", "c", "d"}
	tbl := FromVectors(map[string]map[string]int{
		"c": {"b": 1},
		"a": {"d": 1, "b": 3},
	}, vocab)

	r, _ := tbl.Lookup("c")
	assert.Equal(t, vocab, r.Alternatives)
	assert.Equal(t, []float64{0, 1, 0, 0}, r.Weights)

	r, _ = tbl.Lookup("a")
	assert.Equal(t, []float64{0, 0.75, 0, 0.25}, r.Weights)
	require.NoError(t, tbl.Validate())
}

func TestChooseFollowsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	row := Row{Alternatives: []string{"never", "rare", "often"}, Weights: []float64{0, 0.1, 0.9}}

	counts := map[string]int{}
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[row.Choose(rng)]++
	}
	assert.Zero(t, counts["never"])
	assert.InDelta(t, 0.9, float64(counts["often"])/draws, 0.02)
	assert.InDelta(t, 0.1, float64(counts["rare"])/draws, 0.02)
}

func TestChooseIsDeterministicForSeed(t *testing.T) {
	row := Uniform("a", "b", "c", "d", "e")
	draw := func() []string {
		rng := rand.New(rand.NewSource(42))
		out := make([]string, 10)
		for i := range out {
			out[i] = row.Choose(rng)
		}
		return out
	}
	assert.Equal(t, draw(), draw())
}

func TestUniformWeightsSumToOne(t *testing.T) {
	for n := 1; n < 12; n++ {
		alts := make([]string, n)
		r := Uniform(alts...)
		assert.LessOrEqual(t, math.Abs(sum(r.Weights)-1), Tolerance)
	}
}

func TestNilTableLookups(t *testing.T) {
	var tbl *Table
	_, ok := tbl.Lookup("a")
	assert.False(t, ok)
	assert.Zero(t, tbl.Len())
	assert.Empty(t, tbl.Keys())
}
