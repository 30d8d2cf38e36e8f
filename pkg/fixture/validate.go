package fixture

import (
	"io/fs"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Issue is a problem found with a single fixture file.
type Issue struct {
	// Path is slash-separated and relative to the root.
	Path string
	Err  error
}

// ValidationReport summarizes a Validate run.
type ValidationReport struct {
	// Checked counts files that were decoded.
	Checked int
	// Skipped counts files returned raw, which need no decoding.
	Skipped int
	// Issues are in walk order.
	Issues []Issue
}

// OK reports whether no issues were found.
func (r *ValidationReport) OK() bool {
	return len(r.Issues) == 0
}

// Validate decodes every fixture under the root that has a decoder and,
// when schema is non-nil, checks the decoded value against it. Problems
// with individual files are collected in the report; the returned error is
// reserved for a missing or unreadable root.
func (l *Loader) Validate(schema *Schema) (*ValidationReport, error) {
	if err := l.checkRoot(); err != nil {
		return nil, err
	}

	// One slot per walked file or walk error, filled in walk order so the
	// report does not depend on decode scheduling.
	var (
		paths []string
		errs  []error
	)
	report := &ValidationReport{}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			paths = append(paths, path)
			errs = append(errs, err)
			if d != nil && d.IsDir() && path != l.root {
				return filepath.SkipDir
			}
			//nolint:nilerr // unreadable entries are reported, not fatal
			return nil
		}
		if !DirentIsFile(d) {
			return nil
		}
		if !l.Decodes(Ext(path)) {
			report.Skipped++
			return nil
		}
		report.Checked++
		paths = append(paths, path)
		errs = append(errs, nil)
		return nil
	}
	if err := filepath.WalkDir(l.root, walkFn); err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		if errs[i] != nil {
			continue
		}
		g.Go(func() error {
			errs[i] = l.check(path, schema)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			report.Issues = append(report.Issues, Issue{Path: relTo(l.root, paths[i]), Err: err})
		}
	}
	return report, nil
}

func (l *Loader) check(path string, schema *Schema) error {
	c, err := l.ReadFile(path)
	if err != nil {
		return err
	}
	if schema != nil {
		return schema.Validate(c.Value)
	}
	return nil
}
