package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kvesta/mdyml/config"
	"github.com/kvesta/mdyml/internal/normalize"
	"github.com/kvesta/mdyml/pkg/docio"
	"github.com/kvesta/mdyml/pkg/model"
)

func normalizeCmd(opts *options) *cobra.Command {
	var (
		similarity float64
		out        outputFlags
	)

	cmd := &cobra.Command{
		Use:   "normalize <file>...",
		Short: "Merge, clean and sort software documents",
		Long: `Examples:
  # Merge two converted lists
  $ mdyml normalize cisagov.yml ncsc-nl.yml -o software.yml

  # Merge and archive the result
  $ mdyml normalize cisagov.yml --db software.db`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs := make([]*model.SoftwareDocument, 0, len(args))
			for _, file := range args {
				doc, err := docio.Load(file)
				if err != nil {
					return fmt.Errorf("load %s: %w", file, err)
				}
				docs = append(docs, doc)
			}

			if !cmd.Flags().Changed("similarity") {
				similarity = opts.settings.Similarity
			}

			records, suspicions := normalize.Run(docs, normalize.Options{
				Similarity: similarity,
				Logger:     log.StandardLogger(),
			})

			if err := out.write(cmd, records); err != nil {
				return err
			}

			log.Info(config.Green(fmt.Sprintf("Normalized %d records from %d documents, %d possible duplicate vendors",
				len(records), len(docs), len(suspicions))))
			return nil
		},
	}

	cmd.Flags().Float64Var(&similarity, "similarity", 0.9, "vendor similarity reported as a possible duplicate")
	out.bind(cmd)

	return cmd
}
