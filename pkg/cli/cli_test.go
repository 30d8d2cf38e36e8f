package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/getmockd/fixtures/pkg/cliconfig"
	"github.com/getmockd/fixtures/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// workspace creates an isolated working directory with the given files and
// no global or env configuration leaking in.
func workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	for _, env := range []string{
		cliconfig.EnvDataDir, cliconfig.EnvConfig, cliconfig.EnvLogLevel,
		cliconfig.EnvLogFormat, cliconfig.EnvLogFile, cliconfig.EnvYAML,
	} {
		t.Setenv(env, "")
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestGet(t *testing.T) {
	t.Run("decodes json by stripped name", func(t *testing.T) {
		workspace(t, map[string]string{"data/users/list.json": `[{"id":1,"name":"ada"}]`})

		stdout, _, code := run(t, "get", "users/list")

		require.Equal(t, 0, code)
		assert.JSONEq(t, `[{"id":1,"name":"ada"}]`, stdout)
	})

	t.Run("prints raw content as-is", func(t *testing.T) {
		workspace(t, map[string]string{"data/notes/readme.txt": "plain text\n"})

		stdout, _, code := run(t, "get", "notes/readme.txt")

		require.Equal(t, 0, code)
		assert.Equal(t, "plain text\n", stdout)
	})

	t.Run("missing fixture exits 2 with one diagnostic", func(t *testing.T) {
		workspace(t, map[string]string{"data/users/list.json": `[]`})

		stdout, stderr, code := run(t, "get", "users/nope")

		assert.Equal(t, ExitNotFound, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "fixture not found, you probably forgot to create the fixture file")
		assert.Contains(t, stderr, "Error: fixture not found: users/nope")
	})

	t.Run("uses fallback", func(t *testing.T) {
		workspace(t, map[string]string{"data/users/default.json": `{"id":0}`})

		stdout, _, code := run(t, "get", "users/42", "--fallback", "users/default")

		require.Equal(t, 0, code)
		assert.JSONEq(t, `{"id":0}`, stdout)
	})

	t.Run("query", func(t *testing.T) {
		workspace(t, map[string]string{"data/users.json": `[{"name":"ada"},{"name":"grace"}]`})

		stdout, _, code := run(t, "get", "users", "-q", "$[*].name")

		require.Equal(t, 0, code)
		assert.JSONEq(t, `["ada","grace"]`, stdout)
	})

	t.Run("query on raw content fails", func(t *testing.T) {
		workspace(t, map[string]string{"data/users.csv": "name\nada\n"})

		_, stderr, code := run(t, "get", "users", "-q", "$[*]")

		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Error:")
	})

	t.Run("json output wraps raw content", func(t *testing.T) {
		workspace(t, map[string]string{"data/users.csv": "name\nada\n"})

		stdout, _, code := run(t, "--json", "get", "users")

		require.Equal(t, 0, code)
		var res getResult
		require.NoError(t, json.Unmarshal([]byte(stdout), &res))
		assert.Equal(t, "raw", res.Kind)
		assert.Equal(t, "name\nada\n", res.Raw)
		assert.Equal(t, filepath.Join("data", "users.csv"), res.Path)
	})

	t.Run("yaml flag decodes yaml", func(t *testing.T) {
		workspace(t, map[string]string{"data/feature.yaml": "enabled: true\n"})

		stdout, _, code := run(t, "--yaml", "get", "feature")

		require.Equal(t, 0, code)
		assert.JSONEq(t, `{"enabled":true}`, stdout)
	})
}

func TestList(t *testing.T) {
	workspace(t, map[string]string{
		"data/users/list.json":  `[]`,
		"data/users/ada.json":   `{}`,
		"data/orders/list.yaml": "[]",
	})

	stdout, _, code := run(t, "list")
	require.Equal(t, 0, code)
	assert.Equal(t, "orders/list.yaml\nusers/ada.json\nusers/list.json\n", stdout)

	stdout, _, code = run(t, "--json", "list", "users/*.json")
	require.Equal(t, 0, code)
	assert.JSONEq(t, `["users/ada.json","users/list.json"]`, stdout)

	stdout, _, code = run(t, "--json", "list", "nothing/**")
	require.Equal(t, 0, code)
	assert.JSONEq(t, `[]`, stdout)

	_, stderr, code := run(t, "--data-dir", "missing", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "directory does not exist")
}

func TestValidate(t *testing.T) {
	t.Run("clean tree", func(t *testing.T) {
		workspace(t, map[string]string{
			"data/users.json": `[]`,
			"data/notes.txt":  "hi",
		})

		stdout, _, code := run(t, "validate")

		require.Equal(t, 0, code)
		assert.Contains(t, stdout, "Checked 1 fixtures in data (1 skipped)")
		assert.Contains(t, stdout, "No issues found")
	})

	t.Run("parse and schema issues", func(t *testing.T) {
		workspace(t, map[string]string{
			"data/broken.json": `{"id":`,
			"data/user.json":   `{"id":"one"}`,
			"schema.json":      `{"type":"object","properties":{"id":{"type":"integer"}}}`,
		})

		stdout, _, code := run(t, "validate", "--schema", "schema.json")

		assert.Equal(t, ExitIssues, code)
		assert.Contains(t, stdout, "Parse (1):")
		assert.Contains(t, stdout, "  broken.json: ")
		assert.Contains(t, stdout, "Schema (1):")
		assert.Contains(t, stdout, "  user.json: ")
	})

	t.Run("json report", func(t *testing.T) {
		workspace(t, map[string]string{"data/broken.json": `nope`})

		stdout, _, code := run(t, "--json", "validate")

		assert.Equal(t, ExitIssues, code)
		var res validateResult
		require.NoError(t, json.Unmarshal([]byte(stdout), &res))
		require.Len(t, res.Issues, 1)
		assert.Equal(t, "broken.json", res.Issues[0].Path)
		assert.Equal(t, "parse", res.Issues[0].Kind)
	})
}

func TestInit(t *testing.T) {
	dir := workspace(t, nil)

	stdout, _, code := run(t, "init", "--middleware", "cors", "--proxy", "/api/**=http://localhost:8080")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Created fixtures.yaml")

	info, err := os.Stat(filepath.Join(dir, "data"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	opts, err := config.LoadFromFile(filepath.Join(dir, "fixtures.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "data", opts.DataDir)
	assert.Equal(t, []string{"cors"}, opts.Middlewares)
	require.Len(t, opts.Proxies, 1)
	assert.Equal(t, "http://localhost:8080", opts.Proxies[0].Target)
	require.NotNil(t, opts.Pagination)

	_, stderr, code := run(t, "init")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "already exists")

	_, stderr, code = run(t, "init", "--force", "--proxy", "no-target")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `expected <key>=<value>, got "no-target"`)
}

func TestConfig_Sources(t *testing.T) {
	workspace(t, map[string]string{
		".fixturesrc.yaml": "logLevel: debug\n",
		"server.yaml":      "dataDir: fixtures\nproxies: []\nthrottlings: []\n",
	})
	t.Setenv(cliconfig.EnvLogFormat, "json")

	stdout, _, code := run(t, "--json", "--config", "server.yaml", "config")
	require.Equal(t, 0, code)

	var res configResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, configEntry{Value: "fixtures", Source: SourceServerOptions}, res.CLI["dataDir"])
	assert.Equal(t, configEntry{Value: "debug", Source: cliconfig.SourceLocal}, res.CLI["logLevel"])
	assert.Equal(t, configEntry{Value: "json", Source: cliconfig.SourceEnv}, res.CLI["logFormat"])
	assert.Equal(t, configEntry{Value: true, Source: cliconfig.SourceFlag}, res.CLI["json"])
	require.NotNil(t, res.Options)
	assert.Equal(t, "fixtures", res.Options.DataDir)

	// A flag beats the server options file.
	stdout, _, code = run(t, "--json", "--config", "server.yaml", "--data-dir", "other", "config")
	require.Equal(t, 0, code)
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, configEntry{Value: "other", Source: cliconfig.SourceFlag}, res.CLI["dataDir"])
}

func TestInvalidConfiguration(t *testing.T) {
	workspace(t, nil)

	_, stderr, code := run(t, "--log-level", "loud", "list")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid configuration")
}

func TestMalformedConfigFilesWarn(t *testing.T) {
	workspace(t, map[string]string{
		"data/users.json":  `[]`,
		".env":             "FIXTURES_DATA_DIR=elsewhere\nbad-line\n",
		".fixturesrc.yaml": "dataDir: [\n",
	})

	stdout, stderr, code := run(t, "list")

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "users.json")
	assert.Contains(t, stderr, "level=WARN")
	assert.Contains(t, stderr, "ignoring config file")
	assert.Contains(t, stderr, ".env")
	assert.Contains(t, stderr, ".fixturesrc.yaml")
}

func TestLogFile(t *testing.T) {
	dir := workspace(t, map[string]string{"data/users.json": `[]`})

	_, _, code := run(t, "--log-file", "fixtures.log", "get", "orders")
	require.Equal(t, ExitNotFound, code)

	data, err := os.ReadFile(filepath.Join(dir, "fixtures.log"))
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "orders", entry["path"])
}

func TestVersion(t *testing.T) {
	stdout, _, code := run(t, "version", "--json")

	require.Equal(t, 0, code)
	assert.JSONEq(t, `{"version":"dev","commit":"none","buildDate":"unknown"}`, stdout)
}

func TestWatch(t *testing.T) {
	dir := workspace(t, map[string]string{"data/users.json": `[]`})

	ctx, cancel := context.WithCancel(context.Background())
	var stdout, stderr syncBuffer
	done := make(chan int, 1)
	go func() {
		done <- Run(ctx, []string{"watch"}, &stdout, &stderr)
	}()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(stderr.String()), []byte("watching fixtures"))
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "orders.json"), []byte(`[]`), 0o644))

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(stdout.String()), []byte("orders.json"))
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWriteRaw_NonTerminalUnchanged(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRaw(&buf, []byte("no newline")))
	assert.Equal(t, "no newline", buf.String())

	f, err := os.CreateTemp(t.TempDir(), "raw")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
	require.NoError(t, writeRaw(f, []byte("x")))
}
