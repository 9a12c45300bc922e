package table

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decode parses a persisted table. Each value may be
//
//   - a string: a single alternative with weight 1,
//   - a list of strings: equally weighted alternatives,
//   - a pair [alternatives, weights],
//   - a list of numbers: weights over vocab, in vocab order.
//
// The last shape needs a non-nil vocab.
func Decode(data []byte, vocab []string) (*Table, error) {
	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode table: %w", err)
	}
	rows := make(map[string]Row, len(raw))
	for key, msg := range raw {
		row, err := decodeRow(msg, vocab)
		if err != nil {
			return nil, fmt.Errorf("decode table key %q: %w", key, err)
		}
		rows[key] = row
	}
	return New(rows)
}

func decodeRow(msg jsoniter.RawMessage, vocab []string) (Row, error) {
	var single string
	if err := json.Unmarshal(msg, &single); err == nil {
		return Row{Alternatives: []string{single}, Weights: []float64{1}}, nil
	}
	var plain []string
	if err := json.Unmarshal(msg, &plain); err == nil {
		if len(plain) == 0 {
			return Row{}, fmt.Errorf("empty alternative list")
		}
		return Uniform(plain...), nil
	}
	var pair []jsoniter.RawMessage
	if err := json.Unmarshal(msg, &pair); err != nil {
		return Row{}, fmt.Errorf("unsupported value: %w", err)
	}
	if len(pair) == 2 {
		var row Row
		if err := json.Unmarshal(pair[0], &row.Alternatives); err == nil {
			if err := json.Unmarshal(pair[1], &row.Weights); err != nil {
				return Row{}, fmt.Errorf("weights: %w", err)
			}
			return row, nil
		}
	}
	var dense []float64
	if err := json.Unmarshal(msg, &dense); err != nil {
		return Row{}, fmt.Errorf("unsupported value shape")
	}
	if len(dense) != len(vocab) {
		return Row{}, fmt.Errorf("weight vector has %d entries, vocabulary has %d", len(dense), len(vocab))
	}
	alts := make([]string, len(vocab))
	copy(alts, vocab)
	return Row{Alternatives: alts, Weights: dense}, nil
}

// Encode writes the table as {key: [alternatives, weights]} with keys sorted.
func (t *Table) Encode() ([]byte, error) {
	out := make(map[string][2]any, t.Len())
	for _, k := range t.Keys() {
		r := t.rows[k]
		out[k] = [2]any{r.Alternatives, r.Weights}
	}
	return json.MarshalIndent(out, "", "  ")
}

// DecodeList parses a flat JSON list of strings (vocabularies, stopwords).
func DecodeList(data []byte) ([]string, error) {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return list, nil
}
