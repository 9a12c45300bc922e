package augmentor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"augmentor/internal/table"
	"augmentor/pkg/options"
)

// ngramSize is the window the ngram transform replaces.
const ngramSize = 3

// WordAugmentor corrupts whole words. It is not safe for concurrent use.
type WordAugmentor struct {
	*base
	orfo      *table.Table
	ngrams    *table.Table
	emoji     *table.Table
	stopwords []string
}

// NewWord builds a WordAugmentor. With options.WithCorpus the word and
// n-gram tables are computed from the corpora.
func NewWord(opts ...options.Options) (*WordAugmentor, error) {
	b, err := newBase("word", opts)
	if err != nil {
		return nil, err
	}
	w := &WordAugmentor{
		base:      b,
		orfo:      b.bundle.OrfoWords,
		ngrams:    b.bundle.OrfoNgrams,
		emoji:     b.bundle.Emoji,
		stopwords: b.bundle.Stopwords,
	}
	stats, ok, err := b.corpusStatistics()
	if err != nil {
		return nil, err
	}
	if ok {
		w.orfo, w.ngrams = stats.Words, stats.Ngrams
	}
	b.logger.Debug("word tables loaded",
		zap.Int("orfo", w.orfo.Len()),
		zap.Int("ngrams", w.ngrams.Len()),
		zap.Int("emoji", w.emoji.Len()),
		zap.Int("stopwords", len(w.stopwords)),
		zap.Bool("from_corpus", ok))
	return w, nil
}

func (w *WordAugmentor) Actions() []WordAction { return WordActions() }

// Augment applies action to a clamped share of the whitespace separated
// words of text and rejoins them with single spaces.
func (w *WordAugmentor) Augment(text string, action WordAction) (string, error) {
	if err := checkAction(action, wordActionNames); err != nil {
		return "", err
	}
	if action == WordRandom {
		all := WordActions()
		action = all[w.rng.Intn(len(all))]
	}

	words := strings.Fields(text)
	idxs, err := w.selector.Select(len(words), w.opts.UnitProb, true)
	if err != nil {
		return "", err
	}
	for _, idx := range idxs {
		switch action {
		case WordReplace:
			words[idx] = w.replaceLeading(replaceTokenRe, words[idx], w.weighted(w.orfo))
		case WordDelete:
			words[idx] = ""
		case WordSwap:
			w.swap(words, idx)
		case WordStopword:
			words[idx] = w.stopword(words[idx])
		case WordReverse:
			words[idx] = flipFirst(words[idx])
		case WordText2Emoji:
			words[idx] = w.replaceLeading(emojiTokenRe, words[idx], w.weighted(w.emoji))
		case WordSplit:
			words[idx] = spaced(words[idx])
		case WordNgram:
			words[idx] = w.ngram(words[idx])
		}
	}
	return normalizeSpaces(strings.Join(words, " ")), nil
}

func (w *WordAugmentor) AugmentBatch(texts []string, batchRate float64, action WordAction) ([]string, error) {
	if err := checkAction(action, wordActionNames); err != nil {
		return nil, err
	}
	return w.batch(texts, batchRate, func(s string) (string, error) {
		return w.Augment(s, action)
	})
}

// weighted returns a lookup drawing from t by the lowercase key.
func (w *WordAugmentor) weighted(t *table.Table) func(string) (string, bool) {
	return func(key string) (string, bool) {
		row, ok := t.Lookup(w.opts.Language.Lower(key))
		if !ok {
			return "", false
		}
		return row.Choose(w.rng), true
	}
}

// replaceLeading tokenizes word with re and swaps the first token for the
// lookup result. The remaining tokens are reattached unchanged; anything re
// does not match is dropped.
func (w *WordAugmentor) replaceLeading(re *regexp.Regexp, word string, lookup func(string) (string, bool)) string {
	tokens := re.FindAllString(word, -1)
	if len(tokens) == 0 {
		return word
	}
	repl, ok := lookup(tokens[0])
	if !ok {
		return word
	}
	tokens[0] = matchCase(tokens[0], repl)
	return strings.Join(tokens, "")
}

// swap exchanges words[idx] with a uniformly chosen other word.
func (w *WordAugmentor) swap(words []string, idx int) {
	if len(words) < 2 {
		return
	}
	j := w.rng.Intn(len(words) - 1)
	if j >= idx {
		j++
	}
	words[idx], words[j] = words[j], words[idx]
}

func (w *WordAugmentor) stopword(word string) string {
	if len(w.stopwords) == 0 {
		return word
	}
	return w.stopwords[w.rng.Intn(len(w.stopwords))] + " " + word
}

// ngram replaces the first occurrence of a random three character window of
// word with an alternative from the n-gram table.
func (w *WordAugmentor) ngram(word string) string {
	n := utf8.RuneCountInString(word)
	if n <= ngramSize {
		return word
	}
	r := []rune(word)
	start := w.rng.Intn(n - ngramSize + 1)
	gram := string(r[start : start+ngramSize])
	row, ok := w.ngrams.Lookup(w.opts.Language.Lower(gram))
	if !ok {
		return word
	}
	return strings.Replace(word, gram, matchCase(gram, row.Choose(w.rng)), 1)
}
