package statistics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"

	"augmentor/internal/augerr"
)

const corpusExt = ".txt"

func checkCorpusPath(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return &augerr.CorpusError{Path: path, Err: augerr.ErrCorpusMissing}
	}
	if err != nil {
		return &augerr.CorpusError{Path: path, Err: err}
	}
	if filepath.Ext(path) != corpusExt {
		return &augerr.CorpusError{Path: path, Err: augerr.ErrCorpusExtension}
	}
	return nil
}

// readLines maps the corpus read-only and splits it into lines. A trailing
// newline does not start an extra line.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &augerr.CorpusError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &augerr.CorpusError{Path: path, Err: err}
	}
	if info.Size() == 0 {
		return nil, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, &augerr.CorpusError{Path: path, Err: fmt.Errorf("mmap: %w", err)}
	}
	defer m.Unmap()

	text := strings.TrimSuffix(string(m), "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}
