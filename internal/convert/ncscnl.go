package convert

import (
	"strings"
	"time"

	"github.com/kvesta/mdyml/pkg/model"
	"github.com/kvesta/mdyml/pkg/record"
	"github.com/kvesta/mdyml/pkg/table"
)

const NcscNLName = "ncsc-nl"

var ncscColumns = []string{
	"vendor",
	"product",
	"affected_versions",
	"investigated",
	"notes",
	"vendor_link",
}

// status texts meaning the supplier has looked at the product
var ncscInvestigated = map[string]bool{
	"fix":        true,
	"not vuln":   true,
	"vulnerable": true,
	"workaround": true,
}

// NcscNL reads the NCSC-NL software list, whose header names the supplier
// column "Supplier".
type NcscNL struct {
	now func() time.Time
}

func NewNcscNL(now func() time.Time) *NcscNL {
	if now == nil {
		now = time.Now
	}
	return &NcscNL{now: now}
}

func (n *NcscNL) Name() string {
	return NcscNLName
}

func (n *NcscNL) Columns() []string {
	return ncscColumns
}

func (n *NcscNL) Header() table.HeaderFunc {
	return table.Contains("Supplier")
}

func (n *NcscNL) Map(row table.Row) model.SoftwareRecord {
	f := record.Zip(row, ncscColumns)

	rec := model.SoftwareRecord{
		Vendor:             f["vendor"],
		Product:            f["product"],
		AffectedVersions:   record.SplitList(f["affected_versions"], ","),
		PatchedVersions:    []string{},
		UnaffectedVersions: []string{},
		Investigated:       ncscInvestigated[strings.ToLower(strings.TrimSpace(f["investigated"]))],
		VendorLink:         record.ExtractLink(f["vendor_link"]),
		Notes:              f["notes"],
		References:         []string{},
		Reporter:           NcscNLName,
		LastUpdated:        n.now().UTC().Format(model.TimestampLayout),
	}

	rec.Status = record.DeriveStatus(rec.AffectedVersions, rec.PatchedVersions, rec.Investigated)
	return rec
}
