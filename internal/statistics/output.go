package statistics

import (
	"fmt"
	"os"
	"path/filepath"

	"augmentor/internal/resources"
	"augmentor/internal/table"
)

// Named pairs each table with the resource name it is loaded from.
func (s Statistics) Named(lang resources.Language, platform resources.Platform) map[string]*table.Table {
	return map[string]*table.Table{
		resources.OrfoCharsName(lang, platform):  s.Chars,
		resources.OrfoWordsName(lang, platform):  s.Words,
		resources.OrfoNgramsName(lang, platform): s.Ngrams,
	}
}

// WriteDir stores the tables under dir using the resource layout, so that
// dir can be used as a resource directory. It returns the written paths.
func (s Statistics) WriteDir(dir string, lang resources.Language, platform resources.Platform) ([]string, error) {
	var written []string
	for name, t := range s.Named(lang, platform) {
		data, err := t.Encode()
		if err != nil {
			return written, fmt.Errorf("encode %s: %w", name, err)
		}
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return written, err
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return written, err
		}
		written = append(written, p)
	}
	return written, nil
}
