package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/kvesta/mdyml/config"
	"github.com/kvesta/mdyml/pkg/model"
)

// Count tallies records per status.
func Count(records []model.SoftwareRecord) map[model.Status]int {
	counts := map[model.Status]int{}
	for _, r := range records {
		counts[r.Status] += 1
	}
	return counts
}

// Summary prints the coloured status breakdown of records.
func Summary(w io.Writer, records []model.SoftwareRecord) {
	counts := Count(records)

	parts := make([]string, 0, len(model.Statuses))
	for _, s := range model.Statuses {
		parts = append(parts, fmt.Sprintf("%s: %s", s, statusCount(s, counts[s])))
	}

	fmt.Fprintf(w, "\nDetected %s software | %s\n\n",
		config.Yellow(len(records)), strings.Join(parts, " "))
}

func statusCount(s model.Status, n int) string {
	switch s {
	case model.StatusAffected:
		return config.Red(n)
	case model.StatusUnknown:
		return config.Pink(n)
	case model.StatusFixed:
		return config.Yellow(n)
	}
	return config.Green(n)
}

// RankByStatus returns a copy of records with the most urgent status first.
// Records of equal status keep their order.
func RankByStatus(records []model.SoftwareRecord) []model.SoftwareRecord {
	ranked := make([]model.SoftwareRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		return config.StatusMap[ranked[i].Status] > config.StatusMap[ranked[j].Status]
	})

	return ranked
}

// ResolveRecords prints records as a terminal table ranked by status,
// vendors merged.
func ResolveRecords(w io.Writer, records []model.SoftwareRecord) error {
	Summary(w, records)

	if len(records) < 1 {
		return nil
	}

	records = RankByStatus(records)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Vendor", "Product", "Status",
		"Affected / Patched Versions", "Reporter", "Last Updated"})
	table.SetRowLine(true)
	table.SetAutoMergeCellsByColumnIndex([]int{1})

	for i, r := range records {
		versions := fmt.Sprintf("%s / %s",
			joinNonEmpty(r.AffectedVersions, ", "),
			joinNonEmpty(r.PatchedVersions, ", "))

		table.Append([]string{
			strconv.Itoa(i + 1), r.Vendor, r.Product,
			config.Colorize(r.Status), versions, r.Reporter, r.LastUpdated,
		})
	}

	table.Render()

	return nil
}
