package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirStore fetches documents from a local directory. Intended for
// development and tests: drop a framework file into the directory and
// reference it by (partial) name, matched case-insensitively.
type DirStore struct {
	dir string
}

// NewDir returns a DirStore rooted at dir.
func NewDir(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// FetchNamedDocument implements Store. File names are matched by
// case-insensitive substring; directory entries are scanned in lexical
// order, first match wins.
func (d *DirStore) FetchNamedDocument(_ context.Context, name string) (string, bool, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("docstore: read dir %q: %w", d.dir, err)
	}
	needle := strings.ToLower(name)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.Contains(strings.ToLower(e.Name()), needle) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(d.dir, e.Name()))
		if err != nil {
			return "", false, fmt.Errorf("docstore: read %q: %w", e.Name(), err)
		}
		return string(data), true, nil
	}
	return "", false, nil
}
