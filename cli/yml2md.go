package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kvesta/mdyml/internal/report"
	"github.com/kvesta/mdyml/pkg/docio"
	"github.com/kvesta/mdyml/pkg/record"
	"github.com/kvesta/mdyml/pkg/render"
)

const (
	formatMarkdown = "markdown"
	formatHTML     = "html"
	formatTerminal = "terminal"
)

var extensions = map[string]string{
	formatMarkdown: "md",
	formatHTML:     "html",
	formatTerminal: "txt",
}

func yml2mdCmd(opts *options) *cobra.Command {
	var (
		outfile string
		format  string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "yml2md <file>",
		Short: "Render a software document as a Markdown table",
		Long: `Examples:
  # Markdown table on stdout
  $ mdyml yml2md software.yml

  # HTML page
  $ mdyml yml2md software.yml --format html -o software.html

  # Read the terminal with a status breakdown
  $ mdyml yml2md software.yml --format terminal --summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			ext, ok := extensions[format]
			if !ok {
				return fmt.Errorf("unsupported output format %q", format)
			}

			doc, err := docio.Load(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			var md bytes.Buffer
			if err := report.WriteMarkdown(&md, doc.Software, log.StandardLogger()); err != nil {
				return err
			}

			data, err := renderAs(format, md.Bytes())
			if err != nil {
				return err
			}

			w, err := report.Create(outfile, ext, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			err = report.Emit(w, func(out io.Writer) error {
				_, err := out.Write(data)
				return err
			})
			if err != nil {
				return err
			}

			if summary {
				for i := range doc.Software {
					r := &doc.Software[i]
					r.Status = record.DeriveStatus(r.AffectedVersions, r.PatchedVersions, r.Investigated)
				}
				report.Summary(cmd.ErrOrStderr(), doc.Software)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outfile, "output", "o", "", "output file location (default stdout)")
	cmd.Flags().StringVar(&format, "format", formatMarkdown, "output format: markdown, html or terminal")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a status breakdown to stderr")

	return cmd
}

func renderAs(format string, md []byte) ([]byte, error) {
	switch format {
	case formatHTML:
		return render.HTML(md)
	case formatTerminal:
		out, err := render.Terminal(string(md))
		return []byte(out), err
	}
	return md, nil
}
