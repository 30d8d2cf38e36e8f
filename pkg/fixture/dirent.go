package fixture

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// DirentIsFile reports whether the entry is a regular file.
// Directories, symlinks and device files are not fixtures.
func DirentIsFile(d fs.DirEntry) bool {
	return d.Type().IsRegular()
}

// DirentIncludes reports whether the entry name, with its extension
// stripped, equals text exactly.
func DirentIncludes(text string, d fs.DirEntry) bool {
	return StripExt(d.Name()) == text
}

// Ext returns the extension of the last path element, including the dot.
// A leading dot does not start an extension: Ext(".env") is "".
func Ext(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i:]
}

// StripExt returns the last path element without its extension.
func StripExt(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(Ext(base))]
}

// firstMatch returns the first regular file in entries named name plus
// any extension.
func firstMatch(entries []fs.DirEntry, name string) (fs.DirEntry, bool) {
	for _, entry := range entries {
		if DirentIsFile(entry) && DirentIncludes(name, entry) {
			return entry, true
		}
	}
	return nil, false
}
