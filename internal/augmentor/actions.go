package augmentor

import (
	"strconv"
	"strings"

	"augmentor/internal/augerr"
)

// CharAction is a character level transform. The zero value picks one of the
// transforms at random on every call.
type CharAction uint8

const (
	CharRandom CharAction = iota
	CharShift
	CharOrfo
	CharTypo
	CharDelete
	CharMultiply
	CharSwap
	CharInsert
)

// WordAction is a word level transform. The zero value picks one at random.
type WordAction uint8

const (
	WordRandom WordAction = iota
	WordReplace
	WordDelete
	WordSwap
	WordStopword
	WordReverse
	WordText2Emoji
	WordSplit
	WordNgram
)

// PuncAction is a punctuation level transform. The zero value picks one at
// random.
type PuncAction uint8

const (
	PuncRandom PuncAction = iota
	PuncReplace
	PuncDelete
	PuncMultiply
	PuncSwap
)

var (
	charActionNames = []string{"", "shift", "orfo", "typo", "delete", "multiply", "swap", "insert"}
	wordActionNames = []string{"", "replace", "delete", "swap", "stopword", "reverse", "text2emoji", "split", "ngram"}
	puncActionNames = []string{"", "replace", "delete", "multiply", "swap"}
)

func (a CharAction) String() string { return actionName(a, charActionNames) }
func (a WordAction) String() string { return actionName(a, wordActionNames) }
func (a PuncAction) String() string { return actionName(a, puncActionNames) }

// ParseCharAction maps a name to its action. An empty name is CharRandom.
func ParseCharAction(s string) (CharAction, error) { return parseAction[CharAction](s, charActionNames) }

func ParseWordAction(s string) (WordAction, error) { return parseAction[WordAction](s, wordActionNames) }

func ParsePuncAction(s string) (PuncAction, error) { return parseAction[PuncAction](s, puncActionNames) }

// CharActions returns the character transforms in their fixed order.
func CharActions() []CharAction { return actionList[CharAction](charActionNames) }

func WordActions() []WordAction { return actionList[WordAction](wordActionNames) }

func PuncActions() []PuncAction { return actionList[PuncAction](puncActionNames) }

func actionName[A ~uint8](a A, names []string) string {
	if a == 0 {
		return "random"
	}
	if int(a) >= len(names) {
		return "unknown"
	}
	return names[a]
}

func parseAction[A ~uint8](s string, names []string) (A, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "random" {
		return 0, nil
	}
	for i := 1; i < len(names); i++ {
		if names[i] == s {
			return A(i), nil
		}
	}
	return 0, &augerr.UnsupportedActionError{Action: s, Available: names[1:]}
}

func actionList[A ~uint8](names []string) []A {
	out := make([]A, 0, len(names)-1)
	for i := 1; i < len(names); i++ {
		out = append(out, A(i))
	}
	return out
}

// checkAction rejects values outside the closed set. Conversions from
// arbitrary integers are the only way to reach them.
func checkAction[A ~uint8](a A, names []string) error {
	if int(a) >= len(names) {
		return &augerr.UnsupportedActionError{Action: strconv.Itoa(int(a)), Available: names[1:]}
	}
	return nil
}
