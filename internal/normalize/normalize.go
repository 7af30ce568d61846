package normalize

import (
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/kvesta/mdyml/pkg/match"
	"github.com/kvesta/mdyml/pkg/model"
	"github.com/kvesta/mdyml/pkg/record"
	"github.com/kvesta/mdyml/pkg/versions"
)

type Options struct {
	// Similarity is the vendor similarity threshold; zero uses
	// match.DefaultThreshold.
	Similarity float64
	Logger     log.FieldLogger
}

// Run munges, normalizes and sorts the software of docs, then reports
// vendors that look like duplicates of their neighbour.
func Run(docs []*model.SoftwareDocument, opts Options) ([]model.SoftwareRecord, []match.Suspicion) {
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}
	if opts.Similarity <= 0 {
		opts.Similarity = match.DefaultThreshold
	}

	records := Sort(Normalize(Munge(docs), opts.Logger))

	suspicions := SimilarVendors(records, opts.Similarity)
	for _, s := range suspicions {
		opts.Logger.WithFields(log.Fields{
			"vendor": s.Name,
			"origin": s.Origin,
			"score":  s.Score,
		}).Warnf("Possible duplicate vendor (%s): %q and %q", s.Types, s.Name, s.Origin)
	}

	return records, suspicions
}

// Munge concatenates the software lists of docs in order.
func Munge(docs []*model.SoftwareDocument) []model.SoftwareRecord {
	records := []model.SoftwareRecord{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		records = append(records, doc.Software...)
	}

	return records
}

// Normalize cleans every record and recomputes its status. Records without a
// vendor or with an unknown stated status are dropped with a warning.
func Normalize(records []model.SoftwareRecord, logger log.FieldLogger) []model.SoftwareRecord {
	if logger == nil {
		logger = log.StandardLogger()
	}

	out := make([]model.SoftwareRecord, 0, len(records))
	for i, r := range records {
		n := clean(r)

		if err := n.Validate(); err != nil {
			logger.WithField("index", i).Warnf("Skipping software %q/%q: %v", n.Vendor, n.Product, err)
			continue
		}

		if n.LastUpdated != "" {
			ts, err := record.FormatTimestamp(n.LastUpdated)
			if err != nil {
				logger.WithField("index", i).Warnf("Keeping unparseable last_updated %q of %q/%q", n.LastUpdated, n.Vendor, n.Product)
			} else {
				n.LastUpdated = ts
			}
		}

		n.Status = record.DeriveStatus(n.AffectedVersions, n.PatchedVersions, n.Investigated)
		out = append(out, n)
	}

	return out
}

// Sort orders records by case-folded vendor and product. The sort is stable.
func Sort(records []model.SoftwareRecord) []model.SoftwareRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return sortKey(records[i]) < sortKey(records[j])
	})

	return records
}

// SimilarVendors compares each vendor with the previous distinct one.
func SimilarVendors(records []model.SoftwareRecord, threshold float64) []match.Suspicion {
	vendors := make([]string, 0, len(records))
	for _, r := range records {
		vendors = append(vendors, r.Vendor)
	}

	return match.Neighbours(vendors, threshold)
}

func sortKey(r model.SoftwareRecord) string {
	return match.Fold(r.Vendor + r.Product)
}

func clean(r model.SoftwareRecord) model.SoftwareRecord {
	n := r
	n.Vendor = strings.TrimSpace(r.Vendor)
	n.Product = strings.TrimSpace(r.Product)
	n.VendorLink = strings.TrimSpace(r.VendorLink)
	n.Notes = strings.TrimSpace(r.Notes)
	n.Reporter = strings.TrimSpace(r.Reporter)
	n.LastUpdated = strings.TrimSpace(r.LastUpdated)
	n.Status = model.Status(strings.TrimSpace(string(r.Status)))

	n.AffectedVersions = versions.Sort(r.AffectedVersions)
	n.PatchedVersions = versions.Sort(r.PatchedVersions)
	n.UnaffectedVersions = versions.Sort(r.UnaffectedVersions)
	n.References = dedupe(r.References)

	return n
}

func dedupe(items []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}

	return out
}
