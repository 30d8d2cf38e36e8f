package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/getmockd/fixtures/pkg/cliconfig"
	"github.com/getmockd/fixtures/pkg/config"
	"github.com/getmockd/fixtures/pkg/fixture"
	"github.com/getmockd/fixtures/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// SourceServerOptions marks a value taken from the --config file.
const SourceServerOptions = "serverOptions"

// globalFlags holds the raw persistent flag values. They only take effect
// when the flag was set on the command line.
type globalFlags struct {
	dataDir    string
	configFile string
	logLevel   string
	logFormat  string
	logFile    string
	yaml       bool
	json       bool
}

// app is the state shared by all commands of one invocation.
type app struct {
	flags globalFlags

	cfg     *cliconfig.CLIConfig
	options *config.ServerOptions
	logger  *slog.Logger
	logFile *os.File
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// Execute runs the CLI against the process arguments and standard streams.
func Execute() int {
	return Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fixtures",
		Short: "fixtures loads test fixtures from a data directory",
		Long: `fixtures resolves fixture files under a data root (data/ by default).

A fixture path with an extension names a file directly. A path without one
is matched against file names with their extension stripped, so "users/list"
finds data/users/list.json. JSON fixtures are decoded, YAML fixtures too
when --yaml is set, and anything else is returned as raw bytes.

Configuration can be provided via flags, FIXTURES_* environment variables,
a local .fixturesrc.yaml or a global fixtures/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true, // reported by Run
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.dataDir, "data-dir", "d", cliconfig.DefaultDataDir, "Fixture data root")
	pf.StringVarP(&a.flags.configFile, "config", "c", "", "Server options file (YAML or JSON)")
	pf.StringVar(&a.flags.logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&a.flags.logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	pf.StringVar(&a.flags.logFile, "log-file", "", "Also write JSON logs to this file")
	pf.BoolVar(&a.flags.yaml, "yaml", false, "Decode .yaml and .yml fixtures")
	pf.BoolVar(&a.flags.json, "json", false, "Output command results in JSON format")

	root.AddCommand(
		a.getCmd(),
		a.listCmd(),
		a.validateCmd(),
		a.watchCmd(),
		a.initCmd(),
		a.configCmd(),
		versionCmd(),
	)
	return root
}

// setup resolves the layered configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, loadErr := cliconfig.LoadAll()
	a.applyFlags(cmd, cfg)

	if cfg.ConfigFile != "" {
		opts, err := config.LoadFromFile(cfg.ConfigFile)
		if err != nil {
			return fmt.Errorf("loading %s: %w", cfg.ConfigFile, err)
		}
		a.options = opts
		if src := cfg.Sources["dataDir"]; src != cliconfig.SourceFlag && src != cliconfig.SourceEnv && opts.DataDir != "" {
			cfg.DataDir = opts.DataDir
			cfg.Sources["dataDir"] = SourceServerOptions
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	level := logging.ParseLevel(cfg.LogLevel)
	a.logger = logging.New(logging.Config{
		Level:  level,
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		a.logFile = f
		a.logger = logging.Tee(a.logger, f, level)
	}
	if loadErr != nil {
		a.logger.Warn("ignoring config file", "error", loadErr)
	}
	return nil
}

func (a *app) applyFlags(cmd *cobra.Command, cfg *cliconfig.CLIConfig) {
	flags := cmd.Flags()
	str := func(name, key string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
			cfg.Sources[key] = cliconfig.SourceFlag
		}
	}
	str("data-dir", "dataDir", &cfg.DataDir, a.flags.dataDir)
	str("config", "configFile", &cfg.ConfigFile, a.flags.configFile)
	str("log-level", "logLevel", &cfg.LogLevel, a.flags.logLevel)
	str("log-format", "logFormat", &cfg.LogFormat, a.flags.logFormat)
	str("log-file", "logFile", &cfg.LogFile, a.flags.logFile)

	if flags.Changed("yaml") {
		cfg.YAML = a.flags.yaml
		cfg.Sources["yaml"] = cliconfig.SourceFlag
	}
	if flags.Changed("json") {
		cfg.JSON = a.flags.json
		cfg.Sources["json"] = cliconfig.SourceFlag
	}
}

// loader builds a fixture loader from the resolved configuration.
func (a *app) loader() *fixture.Loader {
	opts := []fixture.Option{
		fixture.WithRoot(a.cfg.DataDir),
		fixture.WithLogger(a.logger),
	}
	if a.cfg.YAML {
		opts = append(opts, fixture.WithYAML())
	}
	return fixture.New(opts...)
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

func versionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Skips config resolution so version works with a broken setup.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := BuildInfo{Version: Version, Commit: Commit, BuildDate: BuildDate}
			if asJSON {
				return printJSON(cmd, info)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "fixtures %s (commit %s, built %s)\n", info.Version, info.Commit, info.BuildDate)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func exitCode(err error) int {
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return 1
}
