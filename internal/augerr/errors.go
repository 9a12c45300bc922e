// Package augerr holds the error taxonomy shared by the augmentors and the
// statistics builder.
package augerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCorpusMissing        = errors.New("corpus file does not exist")
	ErrCorpusExtension      = errors.New("corpus file extension must be .txt")
	ErrCorpusLengthMismatch = errors.New("correct and error corpora have different line counts")
)

// ConfigError reports an unusable configuration: unsupported language or
// platform, or inconsistent augmentation bounds.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Configf builds a ConfigError for field.
func Configf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// CorpusError wraps a failure to read or align the statistics corpora.
type CorpusError struct {
	Path string
	Err  error
}

func (e *CorpusError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("corpus: %v", e.Err)
	}
	return fmt.Sprintf("corpus %s: %v", e.Path, e.Err)
}

func (e *CorpusError) Unwrap() error { return e.Err }

// UnsupportedActionError is returned when an action outside the augmentor's
// closed set is requested.
type UnsupportedActionError struct {
	Action    string
	Available []string
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("unsupported action %q, available: %s", e.Action, strings.Join(e.Available, ", "))
}

// InvalidSampleSizeError is returned when more distinct positions are
// requested than the sequence holds.
type InvalidSampleSizeError struct {
	Count      int
	Population int
}

func (e *InvalidSampleSizeError) Error() string {
	return fmt.Sprintf("cannot sample %d distinct positions from %d units", e.Count, e.Population)
}
