// Package cliconfig provides layered configuration for the fixtures CLI.
//
// Values are resolved with the following precedence (highest first):
//
//  1. Command-line flags
//  2. Environment variables (FIXTURES_* prefix)
//  3. .env file in the current directory (FIXTURES_* keys only)
//  4. Local config file (.fixturesrc.yaml or .fixturesrc.toml in the
//     current directory)
//  5. Global config file ($XDG_CONFIG_HOME/fixtures/config.yaml or .toml)
//  6. Default values
//
// The source of every value is tracked in CLIConfig.Sources so `fixtures
// config` can show where a setting came from.
package cliconfig

// CLIConfig is the complete configuration of the fixtures CLI.
type CLIConfig struct {
	// DataDir is the fixture root.
	DataDir string `yaml:"dataDir" json:"dataDir" toml:"dataDir"`
	// ConfigFile is a server options file (see package config).
	ConfigFile string `yaml:"configFile,omitempty" json:"configFile,omitempty" toml:"configFile"`

	LogLevel  string `yaml:"logLevel" json:"logLevel" toml:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat" toml:"logFormat"`
	// LogFile additionally receives JSON log entries.
	LogFile string `yaml:"logFile,omitempty" json:"logFile,omitempty" toml:"logFile"`

	// YAML decodes .yaml and .yml fixtures.
	YAML bool `yaml:"yaml" json:"yaml" toml:"yaml"`
	// JSON switches command output to JSON.
	JSON bool `yaml:"json" json:"json" toml:"json"`

	// Sources maps a yaml key to where its value came from.
	Sources map[string]string `yaml:"-" json:"-" toml:"-"`
	// SetFields lists keys present in a loaded file, so explicit false
	// booleans can be told apart from missing ones.
	SetFields map[string]bool `yaml:"-" json:"-" toml:"-"`
}

// Config sources.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceDotenv  = "dotenv"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)
