package resources

import (
	"errors"
	"fmt"
	"io/fs"

	"augmentor/internal/augerr"
	"augmentor/internal/table"
)

// Bundle is every table one language/platform pair needs. It is read-only
// once loaded and may be shared by augmentors on different goroutines.
type Bundle struct {
	Language Language
	Platform Platform

	Vocab     []string
	Stopwords []string

	Typos      *table.Table
	Shift      *table.Table
	OrfoChars  *table.Table
	OrfoWords  *table.Table
	OrfoNgrams *table.Table
	Emoji      *table.Table
	Punc       *table.Table
}

// Load reads the bundle for lang and platform from src. The typo table is
// derived from the keyboard layout unless src overrides it.
func Load(src Source, lang Language, platform Platform) (*Bundle, error) {
	if src == nil {
		src = Embedded()
	}
	b := &Bundle{Language: lang, Platform: platform}

	var err error
	if b.Vocab, err = readList(src, VocabName(lang)); err != nil {
		return nil, err
	}
	if len(b.Vocab) == 0 {
		return nil, augerr.Configf("vocab", "%s is empty", VocabName(lang))
	}
	if b.Stopwords, err = readList(src, StopwordsName(lang)); err != nil {
		return nil, err
	}

	b.Typos, err = readTable(src, TyposName(lang, platform), nil)
	if errors.Is(err, fs.ErrNotExist) {
		b.Typos, err = TypoTable(lang, platform)
	}
	if err != nil {
		return nil, err
	}

	for _, t := range []struct {
		dst   **table.Table
		name  string
		vocab []string
	}{
		{&b.Shift, ShiftName, nil},
		{&b.OrfoChars, OrfoCharsName(lang, platform), b.Vocab},
		{&b.OrfoWords, OrfoWordsName(lang, platform), nil},
		{&b.OrfoNgrams, OrfoNgramsName(lang, platform), nil},
		{&b.Emoji, EmojiName(lang), nil},
		{&b.Punc, PuncName, nil},
	} {
		if *t.dst, err = readTable(src, t.name, t.vocab); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func readList(src Source, name string) ([]string, error) {
	data, err := src.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	list, err := table.DecodeList(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return list, nil
}

func readTable(src Source, name string, vocab []string) (*table.Table, error) {
	data, err := src.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	t, err := table.Decode(data, vocab)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}
