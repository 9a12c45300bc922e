// Package resources holds the language and platform specific data the
// augmentors are built from: vocabularies, keyboard layouts and the
// persisted substitution tables.
package resources

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"augmentor/internal/augerr"
)

// Language selects the alphabet, casing rules and tables.
type Language string

const (
	Russian Language = "rus"
	English Language = "eng"
)

// Platform is the source of the error statistics (desktop or touch typing).
// It changes which tables are loaded, never the algorithm.
type Platform string

const (
	PC     Platform = "pc"
	Mobile Platform = "mobile"
)

// Languages returns the supported languages.
func Languages() []Language { return []Language{Russian, English} }

// Platforms returns the supported platforms.
func Platforms() []Platform { return []Platform{PC, Mobile} }

func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToLower(strings.TrimSpace(s))); l {
	case Russian, English:
		return l, nil
	}
	return "", augerr.Configf("language", "unsupported language %q, supported: rus, eng", s)
}

func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(strings.ToLower(strings.TrimSpace(s))); p {
	case PC, Mobile:
		return p, nil
	}
	return "", augerr.Configf("platform", "unsupported platform %q, supported: pc, mobile", s)
}

var (
	rusLetters = regexp.MustCompile(`[а-яё]+`)
	engLetters = regexp.MustCompile(`[a-z]+`)
)

func (l Language) tag() language.Tag {
	if l == Russian {
		return language.Russian
	}
	return language.English
}

// Lower lowercases s using the language's casing rules.
func (l Language) Lower(s string) string { return cases.Lower(l.tag()).String(s) }

// Upper uppercases s using the language's casing rules.
func (l Language) Upper(s string) string { return cases.Upper(l.tag()).String(s) }

// Letters returns the runs of lowercase letters valid for the language.
// The input is expected to be lowercased already.
func (l Language) Letters(s string) []string {
	if l == Russian {
		return rusLetters.FindAllString(s, -1)
	}
	return engLetters.FindAllString(s, -1)
}
