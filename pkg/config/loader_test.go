package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `dataDir: fixtures
middlewares: [cors, logger]
pagination:
  defaultLimit: 20
  maxLimit: 100
proxies:
  - path: /api/payments/**
    target: ${PAYMENTS_URL:-http://localhost:9000}
    changeOrigin: true
    pathRewrite:
      /api/payments: /v2
throttlings:
  - method: GET
    path: /api/reports/*
    minDelay: 200
    maxDelay: 800
overrides:
  - path: /api/search
    from: POST
    to: GET
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := writeFile(t, "fixtures.yaml", sampleYAML)

	opts, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "fixtures", opts.DataDir)
	assert.Equal(t, []string{"cors", "logger"}, opts.Middlewares)
	require.NotNil(t, opts.Pagination)
	assert.Equal(t, DefaultPageParam, opts.Pagination.PageParam)
	assert.Equal(t, DefaultLimitParam, opts.Pagination.LimitParam)
	assert.Equal(t, 20, opts.Pagination.DefaultLimit)
	assert.Equal(t, 100, opts.Pagination.MaxLimit)

	require.Len(t, opts.Proxies, 1)
	assert.Equal(t, "http://localhost:9000", opts.Proxies[0].Target)
	assert.True(t, opts.Proxies[0].ChangeOrigin)
	assert.Equal(t, map[string]string{"/api/payments": "/v2"}, opts.Proxies[0].PathRewrite)

	require.Len(t, opts.Throttlings, 1)
	assert.Equal(t, Throttling{Method: "GET", Path: "/api/reports/*", MinDelay: 200, MaxDelay: 800}, opts.Throttlings[0])

	assert.Equal(t, []MethodOverride{{Path: "/api/search", From: "POST", To: "GET"}}, opts.Overrides)
}

func TestLoadFromFile_EnvExpansion(t *testing.T) {
	t.Setenv("PAYMENTS_URL", "https://payments.internal")
	path := writeFile(t, "fixtures.yml", sampleYAML)

	opts, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://payments.internal", opts.Proxies[0].Target)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := writeFile(t, "fixtures.json", `{
		"middlewares": ["cors"],
		"proxies": [],
		"throttlings": [{"path": "/slow", "minDelay": 10, "maxDelay": 10}]
	}`)

	opts, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Nil(t, opts.Pagination)
	assert.Empty(t, opts.Proxies)
	assert.NotNil(t, opts.Proxies)
	assert.Nil(t, opts.Overrides)
	assert.Equal(t, 10, opts.Throttlings[0].MaxDelay)
}

func TestLoadFromFile_MissingListsDefaultToEmpty(t *testing.T) {
	path := writeFile(t, "fixtures.yaml", "middlewares: [cors]\n")

	opts, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.NotNil(t, opts.Proxies)
	assert.NotNil(t, opts.Throttlings)
}

func TestLoadFromFile_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := LoadFromFile(t.TempDir())
		assert.ErrorContains(t, err, "is a directory")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := LoadFromFile(writeFile(t, "empty.yaml", "\n  \n"))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := LoadFromFile(writeFile(t, "bad.json", "{ invalid json }"))
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadFromFile(writeFile(t, "bad.yaml", "proxies: [\n"))
		assert.ErrorIs(t, err, ErrInvalidYAML)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := LoadFromFile(writeFile(t, "invalid.yaml", "proxies:\n  - path: /api/**\n    target: ftp://x\n"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "validation failed")

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "proxies[0].target", verr.Field)
	})
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	opts := DefaultServerOptions()
	opts.Middlewares = []string{"cors"}
	opts.Throttlings = []Throttling{{Path: "/slow/**", MinDelay: 5, MaxDelay: 50}}

	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, SaveToFile(path, opts))

			_, err := os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err))

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, opts, loaded)
		})
	}
}

func TestToJSON_Nil(t *testing.T) {
	_, err := ToJSON(nil)
	assert.Error(t, err)
	_, err = ToYAML(nil)
	assert.Error(t, err)
	assert.Error(t, SaveToFile(filepath.Join(t.TempDir(), "x.yaml"), nil))
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FIXTURES_TEST_HOST", "example.com")

	tests := []struct {
		input string
		want  string
	}{
		{"http://${FIXTURES_TEST_HOST}", "http://example.com"},
		{"${FIXTURES_TEST_UNSET:-fallback}", "fallback"},
		{"${FIXTURES_TEST_UNSET}", ""},
		{"${FIXTURES_TEST_HOST:-ignored}", "example.com"},
		{"$FIXTURES_TEST_HOST", "$FIXTURES_TEST_HOST"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandEnvVars(tt.input))
		})
	}
}
