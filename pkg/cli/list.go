package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [pattern]",
		Short: "List fixture files",
		Long: `List fixture files under the data root.

The optional pattern is a glob relative to the root; ** matches any number
of directories. Without a pattern every file is listed.`,
		Example: `  fixtures list
  fixtures list 'users/*.json'
  fixtures list '**/*.yaml'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}

			paths, err := a.loader().List(pattern)
			if err != nil {
				return err
			}
			if paths == nil {
				paths = []string{}
			}
			return a.printResult(cmd, paths, func(w io.Writer) error {
				for _, p := range paths {
					if _, err := fmt.Fprintln(w, p); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
