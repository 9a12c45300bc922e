// Package augmentor corrupts clean text with human-like errors at the
// character, word and punctuation level.
package augmentor

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"augmentor/internal/augerr"
	"augmentor/internal/resources"
	"augmentor/internal/statistics"
	"augmentor/pkg/options"
)

// base is the state every augmentor shares: validated options, the owned
// generator and the loaded tables.
type base struct {
	opts     options.AugmentOptions
	rng      *rand.Rand
	selector *IndexSelector
	bundle   *resources.Bundle
	logger   *zap.Logger
}

func newBase(kind string, opts []options.Options) (*base, error) {
	o := options.Build(opts...)
	if err := o.Validate(); err != nil {
		return nil, err
	}
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("augmentor", kind))

	bundle := o.Bundle
	if bundle == nil {
		var err error
		if bundle, err = resources.Load(o.Source, o.Language, o.Platform); err != nil {
			return nil, err
		}
	}

	seed := o.Seed
	if !o.Seeded {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(int64(seed)))

	logger.Debug("augmentor ready",
		zap.String("language", string(o.Language)),
		zap.String("platform", string(o.Platform)),
		zap.Float64("unit_prob", o.UnitProb),
		zap.Int("min_aug", o.MinAug),
		zap.Int("max_aug", o.MaxAug),
		zap.Uint64("seed", seed))

	return &base{
		opts:     o,
		rng:      rng,
		selector: NewIndexSelector(rng, o.MinAug, o.MaxAug),
		bundle:   bundle,
		logger:   logger,
	}, nil
}

// corpusStatistics builds the orfo tables from the configured corpora, or
// returns ok=false when none are configured.
func (b *base) corpusStatistics() (stats statistics.Statistics, ok bool, err error) {
	if b.opts.CorrectTextsPath == "" {
		return stats, false, nil
	}
	builder, err := statistics.NewBuilder(b.opts.CorrectTextsPath, b.opts.ErrorTextsPath, b.opts.Language,
		statistics.WithLogger(b.logger),
		statistics.WithVocab(b.bundle.Vocab))
	if err != nil {
		return stats, false, err
	}
	return builder.Compute(), true, nil
}

// batch augments a rate-selected share of texts. The input slice is never
// modified; on error no partial result is returned.
func (b *base) batch(texts []string, rate float64, augment func(string) (string, error)) ([]string, error) {
	if !(rate > 0 && rate <= 1) {
		return nil, augerr.Configf("batch_rate", "must be in (0, 1], got %v", rate)
	}
	out := make([]string, len(texts))
	copy(out, texts)

	idxs, err := b.selector.Select(len(out), rate, false)
	if err != nil {
		return nil, err
	}
	for _, i := range idxs {
		if out[i], err = augment(out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Language and Platform report the tables the augmentor was built with.
func (b *base) Language() resources.Language { return b.opts.Language }
func (b *base) Platform() resources.Platform { return b.opts.Platform }
