package cliconfig

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDataDir   = "FIXTURES_DATA_DIR"
	EnvConfig    = "FIXTURES_CONFIG"
	EnvLogLevel  = "FIXTURES_LOG_LEVEL"
	EnvLogFormat = "FIXTURES_LOG_FORMAT"
	EnvLogFile   = "FIXTURES_LOG_FILE"
	EnvYAML      = "FIXTURES_YAML"
)

// DotenvFile is read from the current directory by LoadAll.
const DotenvFile = ".env"

// LoadEnvConfig applies the FIXTURES_* variables that are set.
// Unparseable booleans are ignored.
func LoadEnvConfig(cfg *CLIConfig) {
	applyVars(cfg, os.Getenv, SourceEnv)
}

// LoadDotenvConfig applies FIXTURES_* keys from a .env file without
// touching the process environment. A missing file is not an error.
func LoadDotenvConfig(cfg *CLIConfig, path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ConfigError{Path: path, Message: err.Error()}
	}
	applyVars(cfg, func(key string) string { return vars[key] }, SourceDotenv)
	return nil
}

func applyVars(cfg *CLIConfig, lookup func(string) string, source string) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	strs := []struct {
		env string
		key string
		dst *string
	}{
		{EnvDataDir, "dataDir", &cfg.DataDir},
		{EnvConfig, "configFile", &cfg.ConfigFile},
		{EnvLogLevel, "logLevel", &cfg.LogLevel},
		{EnvLogFormat, "logFormat", &cfg.LogFormat},
		{EnvLogFile, "logFile", &cfg.LogFile},
	}
	for _, s := range strs {
		if v := lookup(s.env); v != "" {
			*s.dst = v
			cfg.Sources[s.key] = source
		}
	}

	if v := lookup(EnvYAML); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.YAML = b
			cfg.Sources["yaml"] = source
		}
	}
}
