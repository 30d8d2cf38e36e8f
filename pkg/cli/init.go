package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/getmockd/fixtures/pkg/cli/internal/flags"
	"github.com/getmockd/fixtures/pkg/config"
	"github.com/spf13/cobra"
)

type initResult struct {
	File    string `json:"file"`
	DataDir string `json:"dataDir"`
}

func (a *app) initCmd() *cobra.Command {
	var (
		outputPath   string
		force        bool
		noPagination bool
		middlewares  flags.StringSlice
		proxies      flags.Pairs
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter server options file and data root",
		Long: `Write a starter server options file (fixtures.yaml by default) and
create the data root it points at. Existing files are kept unless --force
is given.`,
		Example: `  fixtures init
  fixtures init --middleware cors --proxy '/api/**=http://localhost:8080'
  fixtures init -o server.json --no-pagination`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(outputPath); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", outputPath)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			opts := config.DefaultServerOptions()
			opts.DataDir = a.cfg.DataDir
			opts.Middlewares = []string(middlewares)
			if noPagination {
				opts.Pagination = nil
			}
			for _, p := range proxies {
				opts.Proxies = append(opts.Proxies, config.Proxy{Path: p.Key, Target: p.Value, ChangeOrigin: true})
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			if err := os.MkdirAll(opts.DataDir, 0o755); err != nil {
				return fmt.Errorf("creating data root: %w", err)
			}
			if err := config.SaveToFile(outputPath, opts); err != nil {
				return err
			}
			a.logger.Debug("wrote server options", "file", outputPath, "dataDir", opts.DataDir)

			res := initResult{File: outputPath, DataDir: opts.DataDir}
			return a.printResult(cmd, res, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Created %s\nFixtures go in %s/\n", res.File, res.DataDir)
				return err
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&outputPath, "output", "o", config.DefaultFixturesFile, "File to write (.yaml, .yml or .json)")
	f.BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	f.BoolVar(&noPagination, "no-pagination", false, "Leave pagination unconfigured")
	f.Var(&middlewares, "middleware", "Middleware name (repeatable)")
	f.Var(&proxies, "proxy", "Proxy as <path>=<target> (repeatable)")
	return cmd
}
