package options

import (
	"go.uber.org/zap"

	"augmentor/internal/augerr"
	"augmentor/internal/resources"
)

// DefaultOptions mirror the settings the augmentation tables were tuned on.
var DefaultOptions = AugmentOptions{
	UnitProb: 0.3,
	MinAug:   1,
	MaxAug:   5,
	MultNum:  5,
	Language: resources.Russian,
	Platform: resources.PC,
}

type AugmentOptions struct {
	UnitProb float64 // share of units to corrupt, in (0, 1]
	MinAug   int
	MaxAug   int
	MultNum  int // exclusive upper bound of character repetitions, >= 2
	Seed     uint64
	Seeded   bool // false draws the seed from the clock
	Language resources.Language
	Platform resources.Platform

	// CorrectTextsPath and ErrorTextsPath, when set, make the augmentor
	// derive its orfo tables from parallel corpora instead of loading them.
	CorrectTextsPath string
	ErrorTextsPath   string

	Source resources.Source  // nil means the embedded data set
	Bundle *resources.Bundle // preloaded tables, skips Source
	Logger *zap.Logger
}

// Validate reports the first inconsistent setting as a ConfigError.
func (o AugmentOptions) Validate() error {
	if o.MinAug < 0 {
		return augerr.Configf("min_aug", "must be >= 0, got %d", o.MinAug)
	}
	if o.MinAug > o.MaxAug {
		return augerr.Configf("min_aug", "min_aug %d exceeds max_aug %d", o.MinAug, o.MaxAug)
	}
	if !(o.UnitProb > 0 && o.UnitProb <= 1) {
		return augerr.Configf("unit_prob", "must be in (0, 1], got %v", o.UnitProb)
	}
	if o.MultNum < 2 {
		return augerr.Configf("mult_num", "must be >= 2, got %d", o.MultNum)
	}
	if _, err := resources.ParseLanguage(string(o.Language)); err != nil {
		return err
	}
	if _, err := resources.ParsePlatform(string(o.Platform)); err != nil {
		return err
	}
	if (o.CorrectTextsPath == "") != (o.ErrorTextsPath == "") {
		return augerr.Configf("corpus", "both correct and error corpus paths are required")
	}
	if o.Bundle != nil && (o.Bundle.Language != o.Language || o.Bundle.Platform != o.Platform) {
		return augerr.Configf("bundle", "bundle is for %s/%s, options ask for %s/%s",
			o.Bundle.Language, o.Bundle.Platform, o.Language, o.Platform)
	}
	return nil
}

type Options interface {
	Apply(options *AugmentOptions)
}

type FuncConfig struct {
	ops func(options *AugmentOptions)
}

func (w FuncConfig) Apply(conf *AugmentOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *AugmentOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Build applies opts over DefaultOptions.
func Build(opts ...Options) AugmentOptions {
	o := DefaultOptions
	for _, opt := range opts {
		opt.Apply(&o)
	}
	return o
}

func WithUnitProb(p float64) Options {
	return NewFuncOption(func(options *AugmentOptions) {
		options.UnitProb = p
	})
}

func WithMinAug(n int) Options {
	return NewFuncOption(func(options *AugmentOptions) {
		options.MinAug = n
	})
}

func WithMaxAug(n int) Options {
	return NewFuncOption(func(options *AugmentOptions) {
		options.MaxAug = n
	})
}

func WithMultNum(n int) Options {
	return NewFuncOption(func(options *AugmentOptions) {
		options.MultNum = n
	})
}

// WithRandomSeed fixes the generator seed; two augmentors built with the
// same seed and options produce the same output.
func WithRandomSeed(seed uint64) Options {
	return NewFuncOption(func(options *AugmentOptions) {
		options.Seed = seed
		options.Seeded = true
	})
}

func WithLanguage(l resources.Language) Options {
	return NewFuncOption(func(options *AugmentOptions) {
		options.Language = l
	})
}

func WithPlatform(p resources.Platform) Options {
	return NewFuncOption(func(options *AugmentOptions) {
		options.Platform = p
	})
}

// WithCorpus computes the orfo tables from two line-aligned .txt files.
func WithCorpus(correctPath, errorPath string) Options {
	return NewFuncOption(func(options *AugmentOptions) {
		options.CorrectTextsPath = correctPath
		options.ErrorTextsPath = errorPath
	})
}

func WithSource(src resources.Source) Options {
	return NewFuncOption(func(options *AugmentOptions) {
		options.Source = src
	})
}

// WithBundle reuses tables that were already loaded. The bundle's language
// and platform are adopted.
func WithBundle(b *resources.Bundle) Options {
	return NewFuncOption(func(options *AugmentOptions) {
		options.Bundle = b
		if b != nil {
			options.Language = b.Language
			options.Platform = b.Platform
		}
	})
}

func WithLogger(l *zap.Logger) Options {
	return NewFuncOption(func(options *AugmentOptions) {
		options.Logger = l
	})
}
