package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/getmockd/fixtures/pkg/cli/internal/output"
	"github.com/getmockd/fixtures/pkg/cliconfig"
	"github.com/getmockd/fixtures/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type configEntry struct {
	Value  any    `json:"value"`
	Source string `json:"source"`
}

type configResult struct {
	CLI     map[string]configEntry `json:"cli"`
	Options *config.ServerOptions  `json:"serverOptions,omitempty"`
}

func cliEntries(cfg *cliconfig.CLIConfig) map[string]configEntry {
	source := func(key string) string {
		if s, ok := cfg.Sources[key]; ok {
			return s
		}
		return cliconfig.SourceDefault
	}
	values := map[string]any{
		"dataDir":    cfg.DataDir,
		"configFile": cfg.ConfigFile,
		"logLevel":   cfg.LogLevel,
		"logFormat":  cfg.LogFormat,
		"logFile":    cfg.LogFile,
		"yaml":       cfg.YAML,
		"json":       cfg.JSON,
	}
	entries := make(map[string]configEntry, len(values))
	for k, v := range values {
		entries[k] = configEntry{Value: v, Source: source(k)}
	}
	return entries
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long: `Show every CLI setting with the layer it came from (default, global,
local, env, flag), followed by the validated server options when --config
is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := configResult{CLI: cliEntries(a.cfg), Options: a.options}
			return a.printResult(cmd, res, func(w io.Writer) error {
				return printConfigText(w, res)
			})
		},
	}
}

func printConfigText(w io.Writer, res configResult) error {
	keys := make([]string, 0, len(res.CLI))
	for k := range res.CLI {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := output.Table(w)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	for _, k := range keys {
		e := res.CLI[k]
		fmt.Fprintf(tw, "%s\t%v\t%s\n", k, e.Value, e.Source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if res.Options == nil {
		return nil
	}
	data, err := yaml.Marshal(res.Options)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n# server options")
	_, err = w.Write(data)
	return err
}
