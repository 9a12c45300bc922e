package resources

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

//go:embed static
var static embed.FS

// Source provides persisted resources by name, e.g. "rus/pc/orfo_chars.json".
// A missing resource must be reported with an error wrapping fs.ErrNotExist.
type Source interface {
	ReadFile(name string) ([]byte, error)
}

type fsSource struct {
	fsys fs.FS
}

func (s fsSource) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(s.fsys, name)
}

// FromFS serves resources from a file system, e.g. os.DirFS of a directory
// written by the statistics command.
func FromFS(fsys fs.FS) Source { return fsSource{fsys: fsys} }

// Embedded serves the data set compiled into the binary.
func Embedded() Source {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(fmt.Sprintf("resources: embedded data: %v", err))
	}
	return fsSource{fsys: sub}
}

// Layered tries each source in order; a source that does not have the
// resource passes the lookup on.
type Layered []Source

func (l Layered) ReadFile(name string) ([]byte, error) {
	for _, s := range l {
		data, err := s.ReadFile(name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
}

const (
	ShiftName = "shift.json"
	PuncName  = "punc.json"
)

func VocabName(l Language) string     { return path.Join(string(l), "vocab.json") }
func StopwordsName(l Language) string { return path.Join(string(l), "stopwords.json") }
func EmojiName(l Language) string     { return path.Join(string(l), "text2emoji.json") }

func TyposName(l Language, p Platform) string {
	return path.Join(string(l), string(p), "typos_chars.json")
}

func OrfoCharsName(l Language, p Platform) string {
	return path.Join(string(l), string(p), "orfo_chars.json")
}

func OrfoWordsName(l Language, p Platform) string {
	return path.Join(string(l), string(p), "orfo_words.json")
}

func OrfoNgramsName(l Language, p Platform) string {
	return path.Join(string(l), string(p), "orfo_ngrams.json")
}
