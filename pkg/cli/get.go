package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/getmockd/fixtures/pkg/cli/internal/output"
	"github.com/getmockd/fixtures/pkg/fixture"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// getResult is the --json shape of get.
type getResult struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Value any    `json:"value,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

func (a *app) getCmd() *cobra.Command {
	var fallback, query string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Resolve a fixture and print its content",
		Long: `Resolve a fixture and print its content.

Decoded fixtures are printed as indented JSON, raw fixtures as-is. When the
path cannot be resolved and --fallback is given, the fallback path is tried.`,
		Example: `  # Print data/users/list.json
  fixtures get users/list

  # Fall back to a default fixture
  fixtures get users/42 --fallback users/default

  # Extract values with JSONPath
  fixtures get users/list --query '$[*].name'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			content, ok := a.loader().Read(path, fallback)
			if !ok {
				return notFound(path)
			}

			if query != "" {
				results, err := fixture.Query(content, query)
				if err != nil {
					return err
				}
				return printJSON(cmd, results)
			}

			res := getResult{Path: content.Path, Kind: content.Kind.String()}
			if content.Structured() {
				res.Value = content.Value
			} else {
				res.Raw = string(content.Raw)
			}
			return a.printResult(cmd, res, func(w io.Writer) error {
				if content.Structured() {
					return output.JSON(w, content.Value)
				}
				return writeRaw(w, content.Raw)
			})
		},
	}

	cmd.Flags().StringVar(&fallback, "fallback", "", "Fixture path to use when <path> cannot be resolved")
	cmd.Flags().StringVarP(&query, "query", "q", "", "JSONPath expression evaluated against decoded content")
	return cmd
}

// writeRaw writes raw fixture bytes unchanged, except that a missing final
// newline is added when w is a terminal.
func writeRaw(w io.Writer, raw []byte) error {
	if _, err := w.Write(raw); err != nil {
		return err
	}
	if len(raw) > 0 && !bytes.HasSuffix(raw, []byte("\n")) && isTerminal(w) {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
