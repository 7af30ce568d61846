package report

import (
	"io"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"

	"github.com/kvesta/mdyml/pkg/model"
	"github.com/kvesta/mdyml/pkg/record"
)

const dateLayout = "2006-01-02"

var MarkdownHeaders = []string{
	"Vendor", "Product", "Affected Versions", "Patched Versions", "Status",
	"Vendor Links", "Notes", "References", "Reporter", "Last Updated",
}

// WriteMarkdown writes records as a Markdown table. Status is recomputed from
// the version lists before rendering.
func WriteMarkdown(w io.Writer, records []model.SoftwareRecord, logger log.FieldLogger) error {
	if logger == nil {
		logger = log.StandardLogger()
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(MarkdownHeaders)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	table.AppendBulk(MarkdownRows(records, logger))
	table.Render()

	return nil
}

func MarkdownRows(records []model.SoftwareRecord, logger log.FieldLogger) [][]string {
	rows := make([][]string, 0, len(records))

	for _, r := range records {
		status := record.DeriveStatus(r.AffectedVersions, r.PatchedVersions, r.Investigated)

		rows = append(rows, []string{
			cell(r.Vendor),
			cell(r.Product),
			cell(joinNonEmpty(r.AffectedVersions, ", ")),
			cell(joinNonEmpty(r.PatchedVersions, ", ")),
			cell(string(status)),
			cell(linkCell(r.VendorLink)),
			cell(r.Notes),
			cell(joinNonEmpty(r.References, "; ")),
			cell(r.Reporter),
			cell(dateCell(r.LastUpdated, logger)),
		})
	}

	return rows
}

func linkCell(link string) string {
	if strings.HasPrefix(link, "http") {
		return "[link](" + link + ")"
	}
	return link
}

func dateCell(value string, logger log.FieldLogger) string {
	if value == "" {
		return ""
	}

	t, err := dateparse.ParseAny(value)
	if err != nil {
		logger.Warnf("Unable to parse last updated date %q: %v", value, err)
		return value
	}

	return t.Format(dateLayout)
}

func joinNonEmpty(items []string, sep string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return strings.Join(kept, sep)
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

func cell(s string) string {
	return cellReplacer.Replace(strings.TrimSpace(s))
}
