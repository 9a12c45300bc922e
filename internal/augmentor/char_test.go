package augmentor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"unicode/utf8"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"augmentor/internal/augerr"
	"augmentor/internal/resources"
	"augmentor/pkg/options"
)

func newEnglishChar(t *testing.T, opts ...options.Options) *CharAugmentor {
	t.Helper()
	base := []options.Options{
		options.WithLanguage(resources.English),
		options.WithPlatform(resources.PC),
		options.WithLogger(zaptest.NewLogger(t)),
	}
	c, err := NewChar(append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func TestCharGolden(t *testing.T) {
	tests := []struct {
		action CharAction
		want   string
	}{
		{CharDelete, "ello wld"},
		{CharSwap, "hello rwold"},
		{CharMultiply, "hhhello woorrrrld"},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			c := newEnglishChar(t, options.WithRandomSeed(42))
			got, err := c.Augment("hello world", tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCharDeterministicForSeed(t *testing.T) {
	for _, action := range append(CharActions(), CharRandom) {
		var outs []string
		for i := 0; i < 2; i++ {
			c := newEnglishChar(t, options.WithRandomSeed(2024))
			out, err := c.Augment("The quick brown fox jumps over the lazy dog.", action)
			require.NoError(t, err)
			outs = append(outs, out)
		}
		assert.Equal(t, outs[0], outs[1], action.String())
	}
}

func TestCharMultiplyBounds(t *testing.T) {
	c := newEnglishChar(t, options.WithMultNum(3), options.WithRandomSeed(5))
	for i := 0; i < 50; i++ {
		text := faker.Sentence()
		out, err := c.Augment(text, CharMultiply)
		require.NoError(t, err)

		grown := utf8.RuneCountInString(out) - utf8.RuneCountInString(text)
		assert.GreaterOrEqual(t, grown, 0)
		assert.LessOrEqual(t, grown, 5, "each of at most five picks adds at most one copy")
		for _, exempt := range []string{" ", ",", ".", "?", "!", "-"} {
			assert.Equal(t, strings.Count(text, exempt), strings.Count(out, exempt), "%q in %q", exempt, out)
		}
	}

	c = newEnglishChar(t, options.WithUnitProb(1), options.WithMaxAug(5),
		options.WithMultNum(5), options.WithRandomSeed(3))
	for i := 0; i < 50; i++ {
		text := "a\tb\nc d\u00a0e"
		out, err := c.Augment(text, CharMultiply)
		require.NoError(t, err)
		for _, space := range []string{"\t", "\n", " ", "\u00a0"} {
			assert.Equal(t, strings.Count(text, space), strings.Count(out, space), "%q in %q", space, out)
		}
	}
}

func TestCharMultiplySingleChar(t *testing.T) {
	c := newEnglishChar(t, options.WithUnitProb(1), options.WithMultNum(3), options.WithRandomSeed(11))
	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		out, err := c.Augment("a", CharMultiply)
		require.NoError(t, err)
		n := utf8.RuneCountInString(out)
		assert.Contains(t, []int{1, 2}, n, "%q", out)
		assert.Equal(t, strings.Repeat("a", n), out)
		seen[n] = true
	}
	assert.True(t, seen[2], "mult_num 3 should repeat at least once in 100 runs")
}

func TestCharSingleUnit(t *testing.T) {
	c := newEnglishChar(t)

	out, err := c.Augment("a", CharDelete)
	require.NoError(t, err)
	assert.Equal(t, "", out)

	out, err = c.Augment("a", CharInsert)
	require.NoError(t, err)
	assert.Equal(t, 2, utf8.RuneCountInString(out))
	assert.True(t, strings.HasPrefix(out, "a"))

	out, err = c.Augment("a", CharShift)
	require.NoError(t, err)
	assert.Equal(t, "A", out)

	out, err = c.Augment("%", CharTypo)
	require.NoError(t, err)
	assert.Equal(t, "%", out)
}

func TestCharTypoKeepsCase(t *testing.T) {
	c := newEnglishChar(t, options.WithRandomSeed(9))
	for i := 0; i < 20; i++ {
		out, err := c.Augment("a", CharTypo)
		require.NoError(t, err)
		assert.Contains(t, []string{"q", "w", "s", "z"}, out)

		out, err = c.Augment("A", CharTypo)
		require.NoError(t, err)
		assert.Contains(t, []string{"Q", "W", "S", "Z"}, out)
	}
}

func TestCharKeepsCodePoints(t *testing.T) {
	c, err := NewChar(options.WithLanguage(resources.Russian), options.WithRandomSeed(1))
	require.NoError(t, err)

	for _, action := range CharActions() {
		out, err := c.Augment("привет мир", action)
		require.NoError(t, err)
		assert.True(t, utf8.ValidString(out), action.String())
	}

	out, err := c.Augment("привет мир", CharDelete)
	require.NoError(t, err)
	assert.Equal(t, 7, utf8.RuneCountInString(out))
}

func TestCharOrfoFromCorpus(t *testing.T) {
	dir := t.TempDir()
	correct := filepath.Join(dir, "correct.txt")
	broken := filepath.Join(dir, "broken.txt")
	require.NoError(t, os.WriteFile(correct, []byte("cat\n"), 0o644))
	require.NoError(t, os.WriteFile(broken, []byte("bat\n"), 0o644))

	c := newEnglishChar(t, options.WithCorpus(correct, broken))
	out, err := c.Augment("c", CharOrfo)
	require.NoError(t, err)
	assert.Equal(t, "b", out)

	// characters without observed errors stay put
	out, err = c.Augment("x", CharOrfo)
	require.NoError(t, err)
	assert.Equal(t, "x", out)

	_, err = NewChar(options.WithCorpus(correct, filepath.Join(dir, "none.txt")))
	assert.ErrorIs(t, err, augerr.ErrCorpusMissing)
}

func TestCharBatch(t *testing.T) {
	c := newEnglishChar(t, options.WithRandomSeed(11))
	in := []string{"hello world", "hello world", "hello world", "hello world"}
	snapshot := append([]string(nil), in...)

	out, err := c.AugmentBatch(in, 1.0, CharDelete)
	require.NoError(t, err)
	assert.Equal(t, snapshot, in)
	for _, s := range out {
		assert.NotEqual(t, "hello world", s)
	}

	out, err = c.AugmentBatch(in, 0.5, CharDelete)
	require.NoError(t, err)
	changed := 0
	for i := range out {
		if out[i] != in[i] {
			changed++
		}
	}
	assert.Equal(t, 2, changed)

	out, err = c.AugmentBatch([]string{"hello"}, 1.0, CharDelete)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, out)
}

func TestCharErrors(t *testing.T) {
	c := newEnglishChar(t)

	_, err := c.Augment("hello", CharAction(99))
	var ue *augerr.UnsupportedActionError
	assert.True(t, errors.As(err, &ue))

	in := []string{"hello", "world"}
	out, err := c.AugmentBatch(in, 1.0, CharAction(99))
	assert.True(t, errors.As(err, &ue))
	assert.Nil(t, out)
	assert.Equal(t, []string{"hello", "world"}, in)

	_, err = c.AugmentNamed("hello", "teleport")
	assert.True(t, errors.As(err, &ue))

	_, err = c.Augment("", CharDelete)
	var se *augerr.InvalidSampleSizeError
	assert.True(t, errors.As(err, &se))

	_, err = c.AugmentBatch(in, 0, CharDelete)
	var ce *augerr.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "batch_rate", ce.Field)
}

func TestCharConstructionErrors(t *testing.T) {
	c, err := NewChar(options.WithMinAug(6))
	var ce *augerr.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "min_aug", ce.Field)
	assert.Nil(t, c)

	c, err = NewChar(options.WithPlatform("tablet"))
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "platform", ce.Field)
	assert.Nil(t, c)

	empty := resources.Layered{
		resources.FromFS(fstest.MapFS{"eng/vocab.json": {Data: []byte("[]")}}),
		resources.Embedded(),
	}
	c, err = NewChar(options.WithLanguage(resources.English), options.WithSource(empty))
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "vocab", ce.Field)
	assert.Nil(t, c)
}

func TestCharInsertEmptyVocab(t *testing.T) {
	c := newEnglishChar(t, options.WithUnitProb(1), options.WithMaxAug(5))
	c.vocab = nil
	out, err := c.Augment("hello", CharInsert)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}
