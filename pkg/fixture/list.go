package fixture

import (
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// List returns the fixture files under the root matching a doublestar
// pattern ("users/*", "**/*.json"). Paths are slash-separated, relative to
// the root and sorted. An empty pattern lists every file.
func (l *Loader) List(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPattern, pattern)
	}
	if err := l.checkRoot(); err != nil {
		return nil, err
	}

	// Regular files only, as ReadPath and Validate accept.
	fsys := os.DirFS(l.root)
	var matches []string
	err := doublestar.GlobWalk(fsys, pattern, func(path string, _ fs.DirEntry) error {
		info, err := fs.Lstat(fsys, path)
		if err != nil {
			//nolint:nilerr // entries that vanish while listing are skipped
			return nil
		}
		if info.Mode().IsRegular() {
			matches = append(matches, path)
		}
		return nil
	}, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing fixtures in %s: %w", l.root, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// checkRoot verifies the root exists and is a directory.
func (l *Loader) checkRoot() error {
	return checkDir(l.root)
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &PathError{Op: "open", Path: dir, Kind: ErrDirectory, Err: err}
		}
		return &PathError{Op: "open", Path: dir, Kind: ErrRead, Err: err}
	}
	if !info.IsDir() {
		return &PathError{Op: "open", Path: dir, Kind: ErrDirectory}
	}
	return nil
}
