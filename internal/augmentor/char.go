package augmentor

import (
	"strings"

	"go.uber.org/zap"

	"augmentor/internal/table"
	"augmentor/pkg/options"
)

// CharAugmentor corrupts single characters: keyboard typos, case shifts,
// spelling-statistics substitutions, deletions, insertions, repetitions and
// transpositions.
//
// An instance owns its generator and must not be used from several
// goroutines at once.
type CharAugmentor struct {
	*base
	typos *table.Table
	shift *table.Table
	orfo  *table.Table
	vocab []string
}

// NewChar builds a CharAugmentor. With options.WithCorpus the orfo table is
// computed from the corpora instead of being loaded.
func NewChar(opts ...options.Options) (*CharAugmentor, error) {
	b, err := newBase("char", opts)
	if err != nil {
		return nil, err
	}
	c := &CharAugmentor{
		base:  b,
		typos: b.bundle.Typos,
		shift: b.bundle.Shift,
		orfo:  b.bundle.OrfoChars,
		vocab: b.bundle.Vocab,
	}
	stats, ok, err := b.corpusStatistics()
	if err != nil {
		return nil, err
	}
	if ok {
		c.orfo = stats.Chars
	}
	b.logger.Debug("char tables loaded",
		zap.Int("typos", c.typos.Len()),
		zap.Int("orfo", c.orfo.Len()),
		zap.Int("vocab", len(c.vocab)),
		zap.Bool("from_corpus", ok))
	return c, nil
}

// Actions returns the character transforms in their fixed order.
func (c *CharAugmentor) Actions() []CharAction { return CharActions() }

// Augment applies action to a clamped share of the characters of text.
func (c *CharAugmentor) Augment(text string, action CharAction) (string, error) {
	if err := checkAction(action, charActionNames); err != nil {
		return "", err
	}
	if action == CharRandom {
		all := CharActions()
		action = all[c.rng.Intn(len(all))]
	}

	units := chars(text)
	idxs, err := c.selector.Select(len(units), c.opts.UnitProb, true)
	if err != nil {
		return "", err
	}
	for _, idx := range idxs {
		switch action {
		case CharTypo:
			units[idx] = c.substitute(c.typos, units[idx])
		case CharShift:
			units[idx] = c.shiftChar(units[idx])
		case CharOrfo:
			units[idx] = c.substitute(c.orfo, units[idx])
		case CharDelete:
			units[idx] = ""
		case CharInsert:
			if len(c.vocab) > 0 {
				units[idx] += c.vocab[c.rng.Intn(len(c.vocab))]
			}
		case CharMultiply:
			units[idx] = c.multiply(units[idx])
		case CharSwap:
			sw := max(0, idx-1)
			units[sw], units[idx] = units[idx], units[sw]
		}
	}
	return strings.Join(units, ""), nil
}

// AugmentBatch augments a batchRate share of texts with action. The input is
// left untouched.
func (c *CharAugmentor) AugmentBatch(texts []string, batchRate float64, action CharAction) ([]string, error) {
	if err := checkAction(action, charActionNames); err != nil {
		return nil, err
	}
	return c.batch(texts, batchRate, func(s string) (string, error) {
		return c.Augment(s, action)
	})
}

// substitute draws a replacement for ch from t, keyed by the lowercase form.
func (c *CharAugmentor) substitute(t *table.Table, ch string) string {
	lower := c.opts.Language.Lower(ch)
	row, ok := t.Lookup(lower)
	if !ok {
		return ch
	}
	return matchCase(ch, row.Choose(c.rng))
}

func (c *CharAugmentor) shiftChar(ch string) string {
	row, ok := c.shift.Lookup(ch)
	if !ok || len(row.Alternatives) == 0 {
		return ch
	}
	return row.Alternatives[0]
}

// multiply repeats ch between 1 and MultNum-1 times.
func (c *CharAugmentor) multiply(ch string) string {
	if multiplyExempt(ch) {
		return ch
	}
	n := c.rng.Intn(c.opts.MultNum-1) + 1
	return strings.Repeat(ch, n)
}
