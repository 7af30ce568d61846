package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kvesta/mdyml/internal/report"
	"github.com/kvesta/mdyml/pkg/render"
)

func templateCmd(opts *options) *cobra.Command {
	var (
		outfile string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "md-from-template <template> <table-file>",
		Short: "Fill a mustache template with a rendered software table",
		Long: `The table file is available to the template as {{{software_markdown_table}}}.
YAML frontmatter in the template adds further variables.

Examples:
  $ mdyml yml2md software.yml -o table.md
  $ mdyml md-from-template README.mustache table.md -o README.md`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != formatMarkdown && format != formatHTML {
				return fmt.Errorf("unsupported output format %q", format)
			}

			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			data, err := render.TableData(args[1])
			if err != nil {
				return err
			}

			out, err := render.Template(source, data)
			if err != nil {
				return err
			}

			result, err := renderAs(format, []byte(out+"\n"))
			if err != nil {
				return err
			}

			w, err := report.Create(outfile, extensions[format], cmd.OutOrStdout())
			if err != nil {
				return err
			}

			return report.Emit(w, func(out io.Writer) error {
				_, err := out.Write(result)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&outfile, "output", "o", "", "output file location (default stdout)")
	cmd.Flags().StringVar(&format, "format", formatMarkdown, "output format: markdown or html")

	return cmd
}
