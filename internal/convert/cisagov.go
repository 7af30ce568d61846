package convert

import (
	"strings"
	"time"

	"github.com/kvesta/mdyml/pkg/model"
	"github.com/kvesta/mdyml/pkg/record"
	"github.com/kvesta/mdyml/pkg/table"
)

const CisagovName = "cisagov"

// update_available is ignored, patched_versions already implies it.
var cisagovColumns = []string{
	"vendor",
	"product",
	"versions",
	"status",
	"update_available",
	"vendor_link",
	"notes",
	"references",
	"last_updated",
}

// Cisagov reads the cisagov software list. The versions column is routed
// into a version list by the status column.
type Cisagov struct {
	now func() time.Time
}

func NewCisagov(now func() time.Time) *Cisagov {
	if now == nil {
		now = time.Now
	}
	return &Cisagov{now: now}
}

func (c *Cisagov) Name() string {
	return CisagovName
}

func (c *Cisagov) Columns() []string {
	return cisagovColumns
}

func (c *Cisagov) Header() table.HeaderFunc {
	return table.ColumnCount(len(cisagovColumns))
}

func (c *Cisagov) Map(row table.Row) model.SoftwareRecord {
	f := record.Zip(row, cisagovColumns)

	rec := model.SoftwareRecord{
		Vendor:             f["vendor"],
		Product:            f["product"],
		AffectedVersions:   []string{},
		PatchedVersions:    []string{},
		UnaffectedVersions: []string{},
		VendorLink:         record.ExtractLink(f["vendor_link"]),
		Notes:              f["notes"],
		References:         record.SplitList(f["references"], ";"),
		Reporter:           CisagovName,
		LastUpdated:        record.ParseTimestamp(f["last_updated"], c.now),
	}

	if versions := record.SplitList(f["versions"], ","); len(versions) > 0 {
		switch strings.ToLower(f["status"]) {
		case "not affected":
			rec.Investigated = true
			rec.UnaffectedVersions = versions
		case "affected":
			rec.Investigated = true
			rec.AffectedVersions = versions
		case "fixed":
			rec.Investigated = true
			rec.PatchedVersions = versions
		default:
			// unknown or missing
			rec.AffectedVersions = versions
		}
	}

	rec.Status = record.DeriveStatus(rec.AffectedVersions, rec.PatchedVersions, rec.Investigated)
	return rec
}
