package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// GlobalConfigDir is the directory under the user config dir.
const GlobalConfigDir = "fixtures"

// LocalConfigFileNames are searched in the current directory, in order.
var LocalConfigFileNames = []string{".fixturesrc.yaml", ".fixturesrc.yml", ".fixturesrc.toml"}

// GlobalConfigFileNames are searched in the global config dir, in order.
var GlobalConfigFileNames = []string{"config.yaml", "config.yml", "config.toml"}

// FindLocalConfig returns the local config path, or "" if there is none.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findFirst(cwd, LocalConfigFileNames), nil
}

// FindGlobalConfig returns the global config path, or "" if there is none.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir means no global config
		return "", nil
	}
	return findFirst(filepath.Join(configDir, GlobalConfigDir), GlobalConfigFileNames), nil
}

func findFirst(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigError is a config file error with an optional line number.
type ConfigError struct {
	Path    string
	Line    int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return e.Path + " (line " + strconv.Itoa(e.Line) + "): " + e.Message
	}
	return e.Path + ": " + e.Message
}

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// LoadConfigFile loads a CLIConfig from a YAML or, for .toml files, TOML
// file.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg *CLIConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg, err = parseTOML(path, data)
	} else {
		cfg, err = parseYAML(path, data)
	}
	if err != nil {
		return nil, err
	}
	cfg.Sources = make(map[string]string)
	return cfg, nil
}

func parseYAML(path string, data []byte) (*CLIConfig, error) {
	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		cerr := &ConfigError{Path: path, Message: err.Error()}
		if m := yamlLinePattern.FindStringSubmatch(err.Error()); m != nil {
			cerr.Line, _ = strconv.Atoi(m[1])
		}
		return nil, cerr
	}

	var keys map[string]any
	_ = yaml.Unmarshal(data, &keys)
	cfg.SetFields = make(map[string]bool, len(keys))
	for k := range keys {
		cfg.SetFields[k] = true
	}
	return &cfg, nil
}

func parseTOML(path string, data []byte) (*CLIConfig, error) {
	var cfg CLIConfig
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		cerr := &ConfigError{Path: path, Message: err.Error()}
		var perr toml.ParseError
		if errors.As(err, &perr) {
			cerr.Line = perr.Position.Line
		}
		return nil, cerr
	}

	cfg.SetFields = make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) == 1 {
			cfg.SetFields[key[0]] = true
		}
	}
	return &cfg, nil
}

// LoadAll merges defaults, the global file, the local file, the .env file
// and the environment. Flags are applied by the caller.
//
// A file that fails to load is skipped and its error joined into the
// returned error; cfg is populated from the remaining layers either way.
func LoadAll() (*CLIConfig, error) {
	cfg := NewDefault()
	var errs []error

	if globalPath, err := FindGlobalConfig(); err == nil && globalPath != "" {
		globalCfg, err := LoadConfigFile(globalPath)
		if err != nil {
			errs = append(errs, err)
		} else {
			MergeConfig(cfg, globalCfg, SourceGlobal)
		}
	}

	if localPath, err := FindLocalConfig(); err == nil && localPath != "" {
		localCfg, err := LoadConfigFile(localPath)
		if err != nil {
			errs = append(errs, err)
		} else {
			MergeConfig(cfg, localCfg, SourceLocal)
		}
	}

	if err := LoadDotenvConfig(cfg, DotenvFile); err != nil {
		errs = append(errs, err)
	}
	LoadEnvConfig(cfg)
	return cfg, errors.Join(errs...)
}
