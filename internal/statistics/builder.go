// Package statistics derives substitution tables from a pair of
// line-aligned corpora: one with correct text, one with the same text
// containing human errors.
package statistics

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hbollon/go-edlib"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"augmentor/internal/augerr"
	"augmentor/internal/resources"
	"augmentor/internal/table"
)

const (
	DefaultMaxDistance = 2
	DefaultNgramSize   = 3
)

// EditPair is a correct word and its misspelling observed at the same
// position of aligned lines.
type EditPair struct {
	Correct   string
	Erroneous string
}

// Statistics is the output of a builder run.
type Statistics struct {
	Chars  *table.Table
	Words  *table.Table
	Ngrams *table.Table
}

type Builder struct {
	lang        resources.Language
	vocab       []string
	maxDistance int
	ngramSize   int
	logger      *zap.Logger

	lines int
	pairs []EditPair
}

type Option func(*Builder)

func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithVocab replaces the language vocabulary used for the char statistic.
func WithVocab(vocab []string) Option {
	return func(b *Builder) { b.vocab = vocab }
}

func WithNgramSize(n int) Option {
	return func(b *Builder) { b.ngramSize = n }
}

func WithMaxDistance(d int) Option {
	return func(b *Builder) { b.maxDistance = d }
}

// NewBuilder validates and reads both corpora and aligns them.
func NewBuilder(correctPath, errorPath string, lang resources.Language, opts ...Option) (*Builder, error) {
	if _, err := resources.ParseLanguage(string(lang)); err != nil {
		return nil, err
	}
	for _, p := range []string{correctPath, errorPath} {
		if err := checkCorpusPath(p); err != nil {
			return nil, err
		}
	}

	var correct, erroneous []string
	var g errgroup.Group
	g.Go(func() (err error) {
		correct, err = readLines(correctPath)
		return err
	})
	g.Go(func() (err error) {
		erroneous, err = readLines(errorPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return FromLines(correct, erroneous, lang, opts...)
}

// FromLines aligns in-memory corpora.
func FromLines(correct, erroneous []string, lang resources.Language, opts ...Option) (*Builder, error) {
	if _, err := resources.ParseLanguage(string(lang)); err != nil {
		return nil, err
	}
	if len(correct) != len(erroneous) {
		return nil, &augerr.CorpusError{Err: fmt.Errorf("%w: %d and %d",
			augerr.ErrCorpusLengthMismatch, len(correct), len(erroneous))}
	}
	b := &Builder{
		lang:        lang,
		maxDistance: DefaultMaxDistance,
		ngramSize:   DefaultNgramSize,
		logger:      zap.NewNop(),
		lines:       len(correct),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.vocab == nil {
		data, err := resources.Embedded().ReadFile(resources.VocabName(lang))
		if err != nil {
			return nil, fmt.Errorf("load vocabulary: %w", err)
		}
		if b.vocab, err = table.DecodeList(data); err != nil {
			return nil, err
		}
	}

	b.pairs = b.align(b.preprocess(correct), b.preprocess(erroneous))
	b.logger.Info("corpora aligned",
		zap.String("language", string(lang)),
		zap.Int("lines", b.lines),
		zap.Int("pairs", len(b.pairs)))
	return b, nil
}

// preprocess keeps only the language's letters, lowercased and single-spaced.
func (b *Builder) preprocess(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.Join(b.lang.Letters(b.lang.Lower(l)), " ")
	}
	return out
}

// align pairs words of differing lines. Lines whose word counts differ are
// skipped: there is no word-level alignment for them.
func (b *Builder) align(correct, erroneous []string) []EditPair {
	var pairs []EditPair
	for i := range correct {
		if correct[i] == erroneous[i] {
			continue
		}
		cw := strings.Fields(correct[i])
		ew := strings.Fields(erroneous[i])
		if len(cw) != len(ew) {
			continue
		}
		for j := range cw {
			if cw[j] != ew[j] && edlib.LevenshteinDistance(cw[j], ew[j]) <= b.maxDistance {
				pairs = append(pairs, EditPair{Correct: cw[j], Erroneous: ew[j]})
			}
		}
	}
	return pairs
}

// Pairs returns the aligned edit pairs in corpus order.
func (b *Builder) Pairs() []EditPair {
	out := make([]EditPair, len(b.pairs))
	copy(out, b.pairs)
	return out
}

func (b *Builder) Lines() int { return b.lines }

func (b *Builder) uniquePairs() []EditPair {
	return mapset.NewThreadUnsafeSet(b.pairs...).ToSlice()
}

// WordStatistic tallies every misspelling of each correct word.
func (b *Builder) WordStatistic() *table.Table {
	counts := make(map[string]map[string]int)
	for _, p := range b.pairs {
		tally(counts, p.Correct, p.Erroneous)
	}
	return table.FromCounts(counts)
}

// CharStatistic tallies position-wise character substitutions of equal
// length pairs. Each row is a weight vector over the whole vocabulary.
func (b *Builder) CharStatistic() *table.Table {
	inVocab := mapset.NewThreadUnsafeSet(b.vocab...)
	counts := make(map[string]map[string]int)
	for _, p := range b.uniquePairs() {
		cr, er := []rune(p.Correct), []rune(p.Erroneous)
		if len(cr) != len(er) {
			continue
		}
		for k := range cr {
			c, e := string(cr[k]), string(er[k])
			if c == e || !inVocab.Contains(c) || !inVocab.Contains(e) {
				continue
			}
			tally(counts, c, e)
		}
	}
	return table.FromVectors(counts, b.vocab)
}

// NgramStatistic tallies differing n-gram windows of equal length pairs.
// n <= 0 uses the builder's n-gram size.
func (b *Builder) NgramStatistic(n int) *table.Table {
	if n <= 0 {
		n = b.ngramSize
	}
	counts := make(map[string]map[string]int)
	for _, p := range b.uniquePairs() {
		cr, er := []rune(p.Correct), []rune(p.Erroneous)
		if len(cr) != len(er) || len(cr) < n {
			continue
		}
		for k := 0; k+n <= len(cr); k++ {
			cg, eg := string(cr[k:k+n]), string(er[k:k+n])
			if cg != eg {
				tally(counts, cg, eg)
			}
		}
	}
	return table.FromCounts(counts)
}

// Compute builds all three tables.
func (b *Builder) Compute() Statistics {
	s := Statistics{
		Chars:  b.CharStatistic(),
		Words:  b.WordStatistic(),
		Ngrams: b.NgramStatistic(0),
	}
	b.logger.Info("statistics computed",
		zap.Int("char_rows", s.Chars.Len()),
		zap.Int("word_rows", s.Words.Len()),
		zap.Int("ngram_rows", s.Ngrams.Len()))
	return s
}

func tally(counts map[string]map[string]int, key, alt string) {
	row, ok := counts[key]
	if !ok {
		row = make(map[string]int)
		counts[key] = row
	}
	row[alt]++
}
