package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DocumentVersion is written to the version key of every document.
const DocumentVersion = "1.0"

// TimestampLayout is the layout of last_updated values.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

type Status string

const (
	StatusUnknown     Status = "Unknown"
	StatusNotAffected Status = "Not Affected"
	StatusFixed       Status = "Fixed"
	StatusAffected    Status = "Affected"
)

// Statuses lists every status in report order.
var Statuses = []Status{StatusAffected, StatusFixed, StatusNotAffected, StatusUnknown}

// SoftwareRecord describes the vulnerability status of one vendor/product.
type SoftwareRecord struct {
	Vendor             string   `yaml:"vendor" json:"vendor"`
	Product            string   `yaml:"product" json:"product"`
	AffectedVersions   []string `yaml:"affected_versions" json:"affected_versions"`
	PatchedVersions    []string `yaml:"patched_versions" json:"patched_versions"`
	UnaffectedVersions []string `yaml:"unaffected_versions" json:"unaffected_versions"`
	Investigated       bool     `yaml:"investigated" json:"investigated"`
	VendorLink         string   `yaml:"vendor_link" json:"vendor_link"`
	Notes              string   `yaml:"notes" json:"notes"`
	References         []string `yaml:"references" json:"references"`
	Reporter           string   `yaml:"reporter" json:"reporter"`
	LastUpdated        string   `yaml:"last_updated" json:"last_updated"`
	Status             Status   `yaml:"status" json:"status"`
}

// SoftwareDocument is the on-disk shape shared by every tool.
type SoftwareDocument struct {
	Version  string           `yaml:"version" json:"version"`
	Software []SoftwareRecord `yaml:"software" json:"software"`
}

// NewDocument wraps records into a document of the current version.
func NewDocument(records []SoftwareRecord) *SoftwareDocument {
	doc := &SoftwareDocument{
		Version:  DocumentVersion,
		Software: make([]SoftwareRecord, 0, len(records)),
	}
	for _, r := range records {
		doc.Software = append(doc.Software, r.Filled())
	}

	return doc
}

// Filled returns a copy of the record with every list field non-nil, so
// absent lists serialize as [] instead of null.
func (r SoftwareRecord) Filled() SoftwareRecord {
	r.AffectedVersions = nonNil(r.AffectedVersions)
	r.PatchedVersions = nonNil(r.PatchedVersions)
	r.UnaffectedVersions = nonNil(r.UnaffectedVersions)
	r.References = nonNil(r.References)
	return r
}

// Key identifies a record across sources.
func (r SoftwareRecord) Key() string {
	return r.Vendor + "|" + r.Product + "|" + r.Reporter
}

// Validate checks the vendor and the stated status. An empty status is
// allowed.
func (r SoftwareRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Vendor, validation.Required),
		validation.Field(&r.Status, validation.In(StatusUnknown, StatusNotAffected, StatusFixed, StatusAffected)),
	)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
