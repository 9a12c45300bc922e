// Package table implements the weighted substitution tables consumed by the
// augmentors and produced by the statistics builder.
package table

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Tolerance is the allowed deviation of a row's weight sum from 1.
const Tolerance = 1e-6

// Row is the weighted set of alternatives for one symbol.
type Row struct {
	Alternatives []string
	Weights      []float64
}

// Uniform returns a row giving every alternative the same weight.
func Uniform(alternatives ...string) Row {
	w := make([]float64, len(alternatives))
	for i := range w {
		w[i] = 1.0 / float64(len(alternatives))
	}
	return Row{Alternatives: alternatives, Weights: w}
}

// Choose draws an alternative according to the row weights.
func (r Row) Choose(rng *rand.Rand) string {
	p := rng.Float64()
	acc := 0.0
	last := -1
	for i, w := range r.Weights {
		if w <= 0 {
			continue
		}
		acc += w
		last = i
		if p < acc {
			return r.Alternatives[i]
		}
	}
	// rounding left p above the accumulated mass
	if last >= 0 {
		return r.Alternatives[last]
	}
	return ""
}

// Validate checks the row invariants.
func (r Row) Validate() error {
	if len(r.Alternatives) == 0 {
		return fmt.Errorf("row has no alternatives")
	}
	if len(r.Alternatives) != len(r.Weights) {
		return fmt.Errorf("row has %d alternatives but %d weights", len(r.Alternatives), len(r.Weights))
	}
	sum := 0.0
	for _, w := range r.Weights {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("row has invalid weight %v", w)
		}
		sum += w
	}
	if math.Abs(sum-1) > Tolerance {
		return fmt.Errorf("row weights sum to %v", sum)
	}
	return nil
}

// Table maps a symbol (char, word or n-gram) to its alternatives. It is never
// mutated after construction and may be shared between goroutines.
type Table struct {
	rows map[string]Row
}

// New validates rows and wraps them in a Table.
func New(rows map[string]Row) (*Table, error) {
	t := &Table{rows: make(map[string]Row, len(rows))}
	for k, r := range rows {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		t.rows[k] = r
	}
	return t, nil
}

// FromCounts normalizes per-key tallies into probabilities. Alternatives are
// ordered by descending count, ties broken lexically.
func FromCounts(counts map[string]map[string]int) *Table {
	t := &Table{rows: make(map[string]Row, len(counts))}
	for key, tally := range counts {
		total := 0
		alts := make([]string, 0, len(tally))
		for alt, n := range tally {
			if n <= 0 {
				continue
			}
			alts = append(alts, alt)
			total += n
		}
		if total == 0 {
			continue
		}
		sort.Slice(alts, func(i, j int) bool {
			if tally[alts[i]] != tally[alts[j]] {
				return tally[alts[i]] > tally[alts[j]]
			}
			return alts[i] < alts[j]
		})
		w := make([]float64, len(alts))
		for i, a := range alts {
			w[i] = float64(tally[a]) / float64(total)
		}
		t.rows[key] = Row{Alternatives: alts, Weights: w}
	}
	return t
}

// FromVectors builds rows whose alternatives are the whole vocabulary in
// order; counts absent from a tally get weight 0.
func FromVectors(counts map[string]map[string]int, vocab []string) *Table {
	t := &Table{rows: make(map[string]Row, len(counts))}
	for key, tally := range counts {
		total := 0
		for _, v := range vocab {
			total += tally[v]
		}
		if total == 0 {
			continue
		}
		alts := make([]string, len(vocab))
		w := make([]float64, len(vocab))
		copy(alts, vocab)
		for i, v := range vocab {
			w[i] = float64(tally[v]) / float64(total)
		}
		t.rows[key] = Row{Alternatives: alts, Weights: w}
	}
	return t
}

// Lookup returns the row for key.
func (t *Table) Lookup(key string) (Row, bool) {
	if t == nil {
		return Row{}, false
	}
	r, ok := t.rows[key]
	return r, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Keys returns the table keys in lexical order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate re-checks every row.
func (t *Table) Validate() error {
	for _, k := range t.Keys() {
		if err := t.rows[k].Validate(); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	return nil
}
