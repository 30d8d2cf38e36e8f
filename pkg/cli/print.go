package cli

import (
	"io"

	"github.com/getmockd/fixtures/pkg/cli/internal/output"
	"github.com/spf13/cobra"
)

// printResult outputs a single command result.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to stdout. Human-readable prose must go to stderr or be omitted entirely.
// textFn is called only in text mode.
func (a *app) printResult(cmd *cobra.Command, data any, textFn func(w io.Writer) error) error {
	if a.cfg != nil && a.cfg.JSON {
		return printJSON(cmd, data)
	}
	return textFn(cmd.OutOrStdout())
}

func printJSON(cmd *cobra.Command, v any) error {
	return output.JSON(cmd.OutOrStdout(), v)
}
