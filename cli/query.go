package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kvesta/mdyml/internal/report"
	"github.com/kvesta/mdyml/internal/store"
	"github.com/kvesta/mdyml/pkg/model"
)

func queryCmd(opts *options) *cobra.Command {
	var (
		db     string
		vendor string
		status string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print archived software records",
		Long: `Examples:
  $ mdyml query --db software.db
  $ mdyml query --db software.db --vendor apache
  $ mdyml query --db software.db --status affected`,
		Args: NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if db == "" {
				db = opts.settings.Database
			}
			if db == "" {
				return fmt.Errorf("no archive given, use --db")
			}

			var want model.Status
			if status != "" {
				s, ok := parseStatus(status)
				if !ok {
					return fmt.Errorf("unknown status %q", status)
				}
				want = s
			}

			archive, err := store.Open(db)
			if err != nil {
				return err
			}
			defer archive.Close()

			var records []model.SoftwareRecord

			switch {
			case vendor != "":
				records, err = archive.QueryByVendor(vendor)
				if err == nil && want != "" {
					records = filterStatus(records, want)
				}
			case want != "":
				records, err = archive.QueryByStatus(want)
			default:
				records, err = archive.All()
			}
			if err != nil {
				return err
			}

			return report.ResolveRecords(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "sqlite archive written by convert or normalize")
	cmd.Flags().StringVar(&vendor, "vendor", "", "only this vendor, case-insensitive")
	cmd.Flags().StringVar(&status, "status", "", "only this status: affected, fixed, not affected or unknown")

	return cmd
}

func parseStatus(s string) (model.Status, bool) {
	for _, status := range model.Statuses {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, true
		}
	}
	return "", false
}

func filterStatus(records []model.SoftwareRecord, s model.Status) []model.SoftwareRecord {
	kept := []model.SoftwareRecord{}
	for _, r := range records {
		if r.Status == s {
			kept = append(kept, r)
		}
	}
	return kept
}
