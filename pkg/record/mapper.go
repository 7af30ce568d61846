package record

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/kvesta/mdyml/pkg/model"
	"github.com/kvesta/mdyml/pkg/table"
)

// MarkdownLink matches an inline link such as [text](https://example.com)
// at the start of a field.
var MarkdownLink = regexp.MustCompile(`^\[(?P<text>.*?)\]\((?P<link>\S*)\)`)

var linkIndex = MarkdownLink.SubexpIndex("link")

var errEmptyTimestamp = errors.New("empty timestamp")

// Zip pairs the cells of row with names by position. Names without a cell
// map to the empty string.
func Zip(row table.Row, names []string) map[string]string {
	fields := make(map[string]string, len(names))
	for i, name := range names {
		if i < len(row.Cells) {
			fields[name] = row.Cells[i]
		} else {
			fields[name] = ""
		}
	}

	return fields
}

// SplitList splits a list-valued field on sep, dropping empty items.
func SplitList(value, sep string) []string {
	items := []string{}
	for _, v := range strings.Split(value, sep) {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		items = append(items, v)
	}

	return items
}

// ExtractLink returns the target of a Markdown link, or value unchanged when
// it does not start with one.
func ExtractLink(value string) string {
	m := MarkdownLink.FindStringSubmatch(value)
	if m == nil {
		return value
	}

	return m[linkIndex]
}

// DeriveStatus classifies a record from its version lists and whether the
// vendor has looked into it.
func DeriveStatus(affected, patched []string, investigated bool) model.Status {
	switch {
	case len(patched) > 0:
		return model.StatusFixed
	case len(affected) > 0:
		return model.StatusAffected
	case investigated:
		return model.StatusNotAffected
	default:
		return model.StatusUnknown
	}
}

// ParseTimestamp normalizes a free-form date. Dates without a zone are taken
// as UTC. Empty or unparseable values yield now.
func ParseTimestamp(value string, now func() time.Time) string {
	if now == nil {
		now = time.Now
	}

	if ts, err := FormatTimestamp(value); err == nil {
		return ts
	}

	return now().UTC().Format(model.TimestampLayout)
}

// FormatTimestamp rewrites a free-form date in model.TimestampLayout, taking
// dates without a zone as UTC.
func FormatTimestamp(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errEmptyTimestamp
	}

	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return "", err
	}

	return t.Format(model.TimestampLayout), nil
}
