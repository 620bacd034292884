package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// ExpandGlobs resolves report paths and glob patterns into a sorted,
// deduplicated list of files. Directories matched by a glob are dropped.
// A pattern that matches nothing is kept as a literal path so that opening
// it later reports a useful file-not-found error.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	add := func(p string) {
		seen[p] = struct{}{}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && info.IsDir() {
				continue
			}
			add(m)
		}
	}

	files := make([]string, 0, len(seen))
	for p := range seen {
		files = append(files, p)
	}
	slices.Sort(files)
	return files, nil
}
