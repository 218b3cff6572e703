package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

var ErrNoDocuments = errors.New("no documents matched")

// Expand resolves file arguments, including "**" globs, to the sorted list of
// supported documents they name. A literal path is kept even when its
// extension is unsupported so that Read can report it.
func Expand(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var paths []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			info, err := os.Stat(pattern)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", pattern, err)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("%s is a directory", pattern)
			}
			add(filepath.Clean(pattern))
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, match := range matches {
			if Supported(match) {
				add(match)
			}
		}
	}

	if len(paths) == 0 {
		return nil, ErrNoDocuments
	}
	sort.Strings(paths)

	return paths, nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
