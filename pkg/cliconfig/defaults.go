package cliconfig

import (
	"fmt"
	"strings"
)

// Defaults.
const (
	DefaultDataDir   = "data"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// NewDefault returns a CLIConfig holding default values.
func NewDefault() *CLIConfig {
	return &CLIConfig{
		DataDir:   DefaultDataDir,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources: map[string]string{
			"dataDir":   SourceDefault,
			"logLevel":  SourceDefault,
			"logFormat": SourceDefault,
			"yaml":      SourceDefault,
			"json":      SourceDefault,
		},
	}
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks the configuration.
func (c *CLIConfig) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("dataDir cannot be empty")
	}
	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("logLevel %q is not one of debug, info, warn, error", c.LogLevel)
	}
	if c.LogFormat != "" && !strings.EqualFold(c.LogFormat, "text") && !strings.EqualFold(c.LogFormat, "json") {
		return fmt.Errorf("logFormat %q is not one of text, json", c.LogFormat)
	}
	return nil
}
