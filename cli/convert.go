package cli

import (
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kvesta/mdyml/config"
	"github.com/kvesta/mdyml/internal/convert"
	"github.com/kvesta/mdyml/internal/report"
	"github.com/kvesta/mdyml/internal/store"
	"github.com/kvesta/mdyml/pkg/docio"
	"github.com/kvesta/mdyml/pkg/fetch"
	"github.com/kvesta/mdyml/pkg/model"
)

type outputFlags struct {
	outfile string
	format  string
	db      string
}

func (f *outputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outfile, "output", "o", "", "output file location (default stdout)")
	cmd.Flags().StringVar(&f.format, "format", "", "output format: yaml or json (default from the output file name)")
	cmd.Flags().StringVar(&f.db, "db", "", "also save the records into this sqlite archive")
}

func convertCmd(opts *options) *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a published Markdown software table to YAML",
		Long: `Examples:
  # Convert the current CISA list
  $ mdyml convert cisagov -o cisagov.yml

  # Convert a local copy of the NCSC-NL list to JSON
  $ mdyml convert ncsc-nl -f README.md --format json

  # Convert from stdin
  $ cat SOFTWARE-LIST.md | mdyml convert cisagov -f -`,
		Args: NoArgs,
	}

	for _, name := range convert.Names() {
		convertCmd.AddCommand(sourceCmd(opts, name))
	}

	return convertCmd
}

func sourceCmd(opts *options, name string) *cobra.Command {
	var (
		url  string
		file string
		out  outputFlags
	)

	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("input from the %s software list", name),
		Args:  NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := file
			if src == "" {
				src = url
			}
			if src == "" {
				src = opts.settings.Sources[name]
			}
			if src == "" {
				return fmt.Errorf("no location configured for %s, use --url or --file", name)
			}

			source := convert.Sources(time.Now)[name]

			rc, err := fetch.New(opts.settings.FetchTimeout).Open(cmd.Context(), src)
			if err != nil {
				return err
			}
			defer rc.Close()

			log.Infof("Converting %s list from %s", name, src)

			records, err := convert.Convert(rc, source, log.StandardLogger())
			if err != nil {
				return err
			}

			if err := out.write(cmd, records); err != nil {
				return err
			}

			log.Info(config.Green(fmt.Sprintf("Converted %d %s records", len(records), name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "location of the Markdown list (default from config)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path of a local Markdown list, - for stdin")
	out.bind(cmd)

	return cmd
}

// write emits records as a document and archives them when --db is set.
func (f *outputFlags) write(cmd *cobra.Command, records []model.SoftwareRecord) error {
	format := docio.FormatFor(f.outfile)
	if f.format != "" {
		var err error
		if format, err = docio.ParseFormat(f.format); err != nil {
			return err
		}
	}

	w, err := report.Create(f.outfile, string(format), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	err = report.Emit(w, func(out io.Writer) error {
		return docio.Encode(out, model.NewDocument(records), format)
	})
	if err != nil {
		return err
	}

	if f.db == "" {
		return nil
	}

	archive, err := store.Open(f.db)
	if err != nil {
		return err
	}
	defer archive.Close()

	return archive.Save(records)
}
