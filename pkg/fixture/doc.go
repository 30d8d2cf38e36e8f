// Package fixture loads test fixture files for the mock server.
//
// Fixtures live under a data root (default "data"). A fixture path names a
// logical resource and may omit its extension:
//
//	loader := fixture.New(fixture.WithRoot("data"), fixture.WithLogger(logger))
//
//	// data/users/list.json, data/users/list.yaml or data/users/list.csv
//	content, ok := loader.Read("users/list", "")
//	if !ok {
//	    // a diagnostic has already been logged
//	}
//
// # Resolution
//
// A path with an extension is read directly from the data root. A path
// without one is resolved by listing its directory and picking the first
// regular file whose name, minus its extension, equals the base name.
// Entries are visited in name order, so "a.csv" wins over "a.json".
//
// When the primary path fails and a fallback path is given, the fallback is
// resolved the same way as an extensionless path. Read never returns an
// error: the final failure is logged once and reported through the boolean.
//
// # Content
//
// ".json" files are decoded into generic Go values (map[string]any, []any,
// float64, ...). WithYAML adds ".yaml" and ".yml". Every other extension is
// returned as raw bytes.
//
// The low-level readers (ReadFile, ReadPath, ReadJSONFile) return
// *PathError values that match ErrNotFound, ErrDirectory, ErrParse or
// ErrRead with errors.Is.
package fixture
