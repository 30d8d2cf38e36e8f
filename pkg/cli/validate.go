package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/getmockd/fixtures/pkg/fixture"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// issueKinds is the display order of issue groups.
var issueKinds = []string{"parse", "schema", "read"}

type validateIssue struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type validateResult struct {
	Root    string          `json:"root"`
	Schema  string          `json:"schema,omitempty"`
	Checked int             `json:"checked"`
	Skipped int             `json:"skipped"`
	Issues  []validateIssue `json:"issues"`
}

func issueKind(err error) string {
	switch {
	case errors.Is(err, fixture.ErrSchemaViolation):
		return "schema"
	case errors.Is(err, fixture.ErrParse):
		return "parse"
	default:
		return "read"
	}
}

func (a *app) validateCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every fixture decodes",
		Long: `Decode every fixture under the data root that has a decoder and report
the ones that fail. With --schema, decoded fixtures are also validated
against a JSON Schema (draft 2020-12).

Exits with status 3 when any issue is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var schema *fixture.Schema
			if schemaPath != "" {
				s, err := fixture.CompileSchema(schemaPath)
				if err != nil {
					return err
				}
				schema = s
			}

			loader := a.loader()
			report, err := loader.Validate(schema)
			if err != nil {
				return err
			}

			res := validateResult{
				Root:    loader.Root(),
				Schema:  schemaPath,
				Checked: report.Checked,
				Skipped: report.Skipped,
				Issues:  make([]validateIssue, 0, len(report.Issues)),
			}
			for _, issue := range report.Issues {
				res.Issues = append(res.Issues, validateIssue{
					Path:  issue.Path,
					Kind:  issueKind(issue.Err),
					Error: issue.Err.Error(),
				})
			}

			if err := a.printResult(cmd, res, func(w io.Writer) error {
				return printValidateText(w, res)
			}); err != nil {
				return err
			}
			if !report.OK() {
				return issuesFound(len(report.Issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "JSON Schema file to validate decoded fixtures against")
	return cmd
}

func printValidateText(w io.Writer, res validateResult) error {
	fmt.Fprintf(w, "Checked %d fixtures in %s (%d skipped)\n", res.Checked, res.Root, res.Skipped)
	if len(res.Issues) == 0 {
		_, err := fmt.Fprintln(w, "No issues found")
		return err
	}

	groups := make(map[string][]validateIssue)
	for _, issue := range res.Issues {
		groups[issue.Kind] = append(groups[issue.Kind], issue)
	}
	title := cases.Title(language.English)
	for _, kind := range issueKinds {
		issues := groups[kind]
		if len(issues) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d):\n", title.String(kind), len(issues))
		for _, issue := range issues {
			fmt.Fprintf(w, "  %s: %s\n", issue.Path, issue.Error)
		}
	}
	return nil
}
