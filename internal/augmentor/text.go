package augmentor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// replaceTokenRe splits a whitespace token into its word and the
	// punctuation runs around it.
	replaceTokenRe = regexp.MustCompile(`[а-яА-ЯёЁa-zA-Z0-9']+|[.,!?;]+`)
	emojiTokenRe   = regexp.MustCompile(`[а-яА-ЯёЁa-zA-Z0-9']+|[.,!?;-]+`)
	multiSpaceRe   = regexp.MustCompile(` +`)
)

// chars splits s into single code points.
func chars(s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func isTitle(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)
	return unicode.IsUpper(r[0]) && strings.ToLower(string(r[1:])) == string(r[1:])
}

func isUpper(s string) bool {
	return strings.ToUpper(s) == s && strings.ToLower(s) != s
}

func title(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// matchCase carries the casing of src over to repl, which comes from a
// lowercase table.
func matchCase(src, repl string) string {
	switch {
	case isUpper(src):
		return strings.ToUpper(repl)
	case isTitle(src):
		return title(repl)
	default:
		return repl
	}
}

// flipFirst inverts the case of the first letter only.
func flipFirst(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	if unicode.IsUpper(r) {
		return string(unicode.ToLower(r)) + word[size:]
	}
	return string(unicode.ToUpper(r)) + word[size:]
}

// spaced puts a space between every character of word.
func spaced(word string) string {
	return strings.Join(chars(word), " ")
}

// normalizeSpaces collapses runs of spaces and trims the ends.
func normalizeSpaces(s string) string {
	return multiSpaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// multiplyExempt lists the characters multiply leaves alone: any whitespace
// plus the sentence punctuation.
func multiplyExempt(ch string) bool {
	switch ch {
	case ",", ".", "?", "!", "-":
		return true
	}
	r, _ := utf8.DecodeRuneInString(ch)
	return unicode.IsSpace(r)
}
