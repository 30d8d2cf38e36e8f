package fixture

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/getmockd/fixtures/pkg/logging"
)

// DefaultRoot is the directory fixtures are resolved against.
const DefaultRoot = "data"

// Loader resolves fixture paths under a data root.
// A Loader is immutable once built and safe for concurrent use.
type Loader struct {
	root     string
	logger   *slog.Logger
	decoders map[string]decoder
}

// Option configures a Loader.
type Option func(*Loader)

// WithRoot sets the data root. An empty dir keeps the default.
func WithRoot(dir string) Option {
	return func(l *Loader) {
		if dir != "" {
			l.root = dir
		}
	}
}

// WithLogger sets the logger that receives missing-fixture diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithYAML decodes ".yaml" and ".yml" fixtures instead of returning raw bytes.
func WithYAML() Option {
	return func(l *Loader) {
		d := decoder{kind: KindYAML, decode: DecodeYAML}
		l.decoders[".yaml"] = d
		l.decoders[".yml"] = d
	}
}

// WithDecoder registers fn for files with the extension ext (".csv").
// Content decoded this way has KindCustom.
func WithDecoder(ext string, fn DecodeFunc) Option {
	return func(l *Loader) {
		if fn == nil || !strings.HasPrefix(ext, ".") {
			return
		}
		l.decoders[ext] = decoder{kind: KindCustom, decode: fn}
	}
}

// New creates a Loader. Without WithLogger, diagnostics go to stderr.
func New(opts ...Option) *Loader {
	l := &Loader{
		root:   DefaultRoot,
		logger: logging.New(logging.DefaultConfig()),
		decoders: map[string]decoder{
			".json": {kind: KindJSON, decode: DecodeJSON},
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = logging.Component(l.logger, "fixture")
	return l
}

// Root returns the data root.
func (l *Loader) Root() string {
	return l.root
}

// Decodes reports whether files with the extension ext are decoded.
func (l *Loader) Decodes(ext string) bool {
	_, ok := l.decoders[ext]
	return ok
}

// ReadFile reads the fixture file at path. The path is used as given, not
// joined with the root. Files with a registered extension are decoded;
// anything else is returned raw.
func (l *Loader) ReadFile(path string) (Content, error) {
	d, ok := l.decoders[Ext(path)]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return Content{}, readError("read", path, err)
		}
		return Content{Path: path, Kind: KindRaw, Raw: data}, nil
	}
	return readDecoded(path, d)
}

func readDecoded(path string, d decoder) (Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, readError("read", path, err)
	}
	v, err := d.decode(data)
	if err != nil {
		return Content{}, &PathError{Op: "decode", Path: path, Kind: ErrParse, Err: err}
	}
	return Content{Path: path, Kind: d.kind, Value: v, Raw: data}, nil
}

// ReadPath resolves an extensionless fixture path "<dir>/<name>" by
// listing <root>/<dir> and reading the first regular file whose name
// without extension is <name>.
func (l *Loader) ReadPath(path string) (Content, error) {
	path = strings.TrimRight(path, `/\`)
	dir := filepath.Join(l.root, filepath.Dir(path))
	name := filepath.Base(path)

	if err := checkDir(dir); err != nil {
		return Content{}, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Content{}, &PathError{Op: "readdir", Path: dir, Kind: ErrRead, Err: err}
	}

	entry, ok := firstMatch(entries, name)
	if !ok {
		return Content{}, &PathError{Op: "match", Path: filepath.Join(dir, name), Kind: ErrNotFound}
	}
	return l.ReadFile(filepath.Join(dir, entry.Name()))
}

// Read loads the fixture at path, falling back to fallback when path does
// not resolve. An empty fallback means none. Read never fails loudly: when
// nothing resolves it logs one diagnostic and returns false.
func (l *Loader) Read(path, fallback string) (Content, bool) {
	c, err := l.read(path)
	if err == nil {
		return c, true
	}

	if fallback == "" {
		l.logger.Error("fixture not found, you probably forgot to create the fixture file",
			"path", path, "error", err)
		return Content{}, false
	}

	c, err = l.ReadPath(fallback)
	if err != nil {
		l.logger.Error("fallback fixture not found, you probably forgot to create the fallback fixture file",
			"path", path, "fallback", fallback, "error", err)
		return Content{}, false
	}
	return c, true
}

func (l *Loader) read(path string) (Content, error) {
	if Ext(path) == "" {
		return l.ReadPath(path)
	}
	return l.ReadFile(l.resolve(path))
}

// resolve joins relative paths with the root.
func (l *Loader) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.root, path)
}

var defaultLoader = New()

// Default returns the loader behind the package-level functions.
func Default() *Loader {
	return defaultLoader
}

// ReadFixtureFile reads a fixture file with the default loader.
func ReadFixtureFile(path string) (Content, error) {
	return defaultLoader.ReadFile(path)
}

// ReadFixturePath resolves an extensionless fixture path with the default loader.
func ReadFixturePath(path string) (Content, error) {
	return defaultLoader.ReadPath(path)
}

// ReadFixture reads a fixture with the default loader. See Loader.Read.
func ReadFixture(path, fallback string) (Content, bool) {
	return defaultLoader.Read(path, fallback)
}
