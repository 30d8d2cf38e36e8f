package fixture

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/getmockd/fixtures/pkg/logging"
	"github.com/stretchr/testify/require"
)

// writeFixture writes content to root/rel, creating parent directories.
func writeFixture(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// captureLogger returns a logger writing text entries to the returned buffer.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf}), &buf
}

// newTestLoader creates a loader over a fresh temp root.
func newTestLoader(t *testing.T, opts ...Option) (*Loader, string, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	logger, buf := captureLogger()
	opts = append([]Option{WithRoot(root), WithLogger(logger)}, opts...)
	return New(opts...), root, buf
}
