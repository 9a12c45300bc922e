package augmentor

import (
	"augmentor/internal/augerr"
	"augmentor/pkg/options"
)

// Level names an augmentor family.
type Level string

const (
	LevelChar Level = "char"
	LevelWord Level = "word"
	LevelPunc Level = "punc"
)

func Levels() []Level { return []Level{LevelChar, LevelWord, LevelPunc} }

// Augmenter is the name-based surface shared by all augmentors, for callers
// that receive actions as text.
type Augmenter interface {
	AugmentNamed(text, action string) (string, error)
	AugmentBatchNamed(texts []string, batchRate float64, action string) ([]string, error)
	ActionNames() []string
}

var (
	_ Augmenter = (*CharAugmentor)(nil)
	_ Augmenter = (*WordAugmentor)(nil)
	_ Augmenter = (*PuncAugmentor)(nil)
)

// New builds the augmentor for level.
func New(level Level, opts ...options.Options) (Augmenter, error) {
	switch level {
	case LevelChar:
		return NewChar(opts...)
	case LevelWord:
		return NewWord(opts...)
	case LevelPunc:
		return NewPunc(opts...)
	}
	return nil, augerr.Configf("level", "unsupported level %q, supported: char, word, punc", level)
}

// ActionNames lists the action names of level without building an augmentor.
func ActionNames(level Level) ([]string, error) {
	switch level {
	case LevelChar:
		return names(CharActions()), nil
	case LevelWord:
		return names(WordActions()), nil
	case LevelPunc:
		return names(PuncActions()), nil
	}
	return nil, augerr.Configf("level", "unsupported level %q, supported: char, word, punc", level)
}

func names[A interface{ String() string }](actions []A) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.String()
	}
	return out
}

func (c *CharAugmentor) ActionNames() []string { return names(c.Actions()) }
func (w *WordAugmentor) ActionNames() []string { return names(w.Actions()) }
func (p *PuncAugmentor) ActionNames() []string { return names(p.Actions()) }

func (c *CharAugmentor) AugmentNamed(text, action string) (string, error) {
	a, err := ParseCharAction(action)
	if err != nil {
		return "", err
	}
	return c.Augment(text, a)
}

func (c *CharAugmentor) AugmentBatchNamed(texts []string, batchRate float64, action string) ([]string, error) {
	a, err := ParseCharAction(action)
	if err != nil {
		return nil, err
	}
	return c.AugmentBatch(texts, batchRate, a)
}

func (w *WordAugmentor) AugmentNamed(text, action string) (string, error) {
	a, err := ParseWordAction(action)
	if err != nil {
		return "", err
	}
	return w.Augment(text, a)
}

func (w *WordAugmentor) AugmentBatchNamed(texts []string, batchRate float64, action string) ([]string, error) {
	a, err := ParseWordAction(action)
	if err != nil {
		return nil, err
	}
	return w.AugmentBatch(texts, batchRate, a)
}

func (p *PuncAugmentor) AugmentNamed(text, action string) (string, error) {
	a, err := ParsePuncAction(action)
	if err != nil {
		return "", err
	}
	return p.Augment(text, a)
}

func (p *PuncAugmentor) AugmentBatchNamed(texts []string, batchRate float64, action string) ([]string, error) {
	a, err := ParsePuncAction(action)
	if err != nil {
		return nil, err
	}
	return p.AugmentBatch(texts, batchRate, a)
}
