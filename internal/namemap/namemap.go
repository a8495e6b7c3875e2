// Package namemap loads the optional municipality code → display name file.
//
// The file is tab-separated, one municipality per line:
//
//	# code	name
//	007	San Vicente del Raspeig
//
// Blank lines and lines starting with '#' are ignored, as are lines with fewer
// than two fields. Later duplicates overwrite earlier ones.
package namemap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Load reads the mapping at path. A missing file yields an empty map and no error.
func Load(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("open name map: %w", err)
	}
	defer f.Close()

	names, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read name map %s: %w", path, err)
	}
	return names, nil
}

// Parse reads mapping lines from r. Lines have no length limit.
func Parse(r io.Reader) (map[string]string, error) {
	names := make(map[string]string)

	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		addLine(names, raw)
		if err != nil {
			return names, nil
		}
	}
}

func addLine(names map[string]string, raw string) {
	line := strings.TrimSpace(strings.ToValidUTF8(raw, "\uFFFD"))
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	parts := strings.Split(line, "\t")
	if len(parts) < 2 {
		return
	}
	names[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
}
