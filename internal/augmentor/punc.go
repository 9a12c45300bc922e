package augmentor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"augmentor/internal/table"
	"augmentor/pkg/options"
)

// PuncAugmentor corrupts punctuation marks only. Positions are chosen among
// the punctuation characters and edits land in the full text.
type PuncAugmentor struct {
	*base
	punc *table.Table
}

func NewPunc(opts ...options.Options) (*PuncAugmentor, error) {
	b, err := newBase("punc", opts)
	if err != nil {
		return nil, err
	}
	p := &PuncAugmentor{base: b, punc: b.bundle.Punc}
	b.logger.Debug("punc table loaded", zap.Int("punc", p.punc.Len()))
	return p, nil
}

func (p *PuncAugmentor) Actions() []PuncAction { return PuncActions() }

// Augment applies action to a clamped share of the punctuation of text.
// Text without punctuation is returned unchanged.
func (p *PuncAugmentor) Augment(text string, action PuncAction) (string, error) {
	if err := checkAction(action, puncActionNames); err != nil {
		return "", err
	}
	if action == PuncRandom {
		all := PuncActions()
		action = all[p.rng.Intn(len(all))]
	}

	units := chars(text)
	var marks []int
	for i, u := range units {
		if p.isPunct(u) {
			marks = append(marks, i)
		}
	}
	if len(marks) == 0 {
		return text, nil
	}

	picks, err := p.selector.Select(len(marks), p.opts.UnitProb, true)
	if err != nil {
		return "", err
	}
	for _, k := range picks {
		idx := marks[k]
		switch action {
		case PuncReplace:
			if row, ok := p.punc.Lookup(units[idx]); ok {
				units[idx] = row.Choose(p.rng)
			}
		case PuncDelete:
			units[idx] = ""
		case PuncMultiply:
			units[idx] = strings.Repeat(units[idx], p.rng.Intn(p.opts.MultNum-1)+1)
		case PuncSwap:
			sw := max(0, idx-1)
			units[sw], units[idx] = units[idx], units[sw]
		}
	}
	return strings.Join(units, ""), nil
}

func (p *PuncAugmentor) AugmentBatch(texts []string, batchRate float64, action PuncAction) ([]string, error) {
	if err := checkAction(action, puncActionNames); err != nil {
		return nil, err
	}
	return p.batch(texts, batchRate, func(s string) (string, error) {
		return p.Augment(s, action)
	})
}

func (p *PuncAugmentor) isPunct(u string) bool {
	if _, ok := p.punc.Lookup(u); ok {
		return true
	}
	r, _ := utf8.DecodeRuneInString(u)
	return unicode.IsPunct(r)
}
