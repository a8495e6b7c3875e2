package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirWriter writes rendered forms into one output directory.
// It implements pipeline.Sink.
type DirWriter struct {
	dir string
}

// NewDirWriter creates dir (and parents) if needed. Calling it on an existing
// directory is a no-op.
func NewDirWriter(dir string) (*DirWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &DirWriter{dir: dir}, nil
}

// Write replaces dir/name with content and returns the written path.
func (w *DirWriter) Write(name, content string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", errors.New("write form: name must be a bare filename")
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write form %s: %w", path, err)
	}
	return path, nil
}
