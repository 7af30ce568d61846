package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvesta/mdyml/pkg/model"
)

func fixedNow() time.Time {
	return time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC)
}

const nowStamp = "2022-01-02T03:04:05+00:00"

func convertFixture(t *testing.T, name string, src Source) []model.SoftwareRecord {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	logger, _ := test.NewNullLogger()
	records, err := Convert(f, src, logger)
	require.NoError(t, err)

	return records
}

func TestConvertCisagov(t *testing.T) {
	records := convertFixture(t, "cisagov.md", NewCisagov(fixedNow))

	want := []model.SoftwareRecord{
		{
			Vendor:             "1Password",
			Product:            "All products",
			AffectedVersions:   []string{},
			PatchedVersions:    []string{},
			UnaffectedVersions: []string{},
			VendorLink:         "https://1password.community/discussion/comment/624011",
			References:         []string{},
			Reporter:           "cisagov",
			LastUpdated:        "2021-12-21T00:00:00+00:00",
			Status:             model.StatusUnknown,
		},
		{
			Vendor:             "Apache",
			Product:            "Log4j",
			AffectedVersions:   []string{"2.0-beta9", "2.14.1"},
			PatchedVersions:    []string{},
			UnaffectedVersions: []string{},
			Investigated:       true,
			VendorLink:         "https://logging.apache.org/log4j/2.x/security.html",
			Notes:              "Update to 2.17.1",
			References:         []string{"CVE-2021-44228", "CVE-2021-45046"},
			Reporter:           "cisagov",
			LastUpdated:        "2021-12-15T00:00:00+00:00",
			Status:             model.StatusAffected,
		},
		{
			Vendor:             "Elastic & Friends",
			Product:            "Elasticsearch",
			AffectedVersions:   []string{},
			PatchedVersions:    []string{"7.16.1"},
			UnaffectedVersions: []string{},
			Investigated:       true,
			VendorLink:         "https://discuss.elastic.co",
			References:         []string{},
			Reporter:           "cisagov",
			LastUpdated:        nowStamp,
			Status:             model.StatusFixed,
		},
		{
			Vendor:             "VMware",
			Product:            "vCenter",
			AffectedVersions:   []string{"6.5", "6.7"},
			PatchedVersions:    []string{},
			UnaffectedVersions: []string{},
			Notes:              "Investigating",
			References:         []string{},
			Reporter:           "cisagov",
			LastUpdated:        "2021-12-17T00:00:00+00:00",
			Status:             model.StatusAffected,
		},
		{
			Vendor:             "Zoom",
			Product:            "Client",
			AffectedVersions:   []string{},
			PatchedVersions:    []string{},
			UnaffectedVersions: []string{"5.9.0"},
			Investigated:       true,
			References:         []string{},
			Reporter:           "cisagov",
			LastUpdated:        "2021-12-20T00:00:00+00:00",
			Status:             model.StatusNotAffected,
		},
	}

	assert.Equal(t, want, records)
}

func TestConvertNcscNL(t *testing.T) {
	records := convertFixture(t, "ncsc_nl.md", NewNcscNL(fixedNow))

	type summary struct {
		Vendor   string
		Affected []string
		Link     string
		Status   model.Status
	}

	got := []summary{}
	for _, r := range records {
		got = append(got, summary{r.Vendor, r.AffectedVersions, r.VendorLink, r.Status})
		assert.Equal(t, "ncsc-nl", r.Reporter)
		assert.Equal(t, nowStamp, r.LastUpdated)
		assert.Equal(t, []string{}, r.PatchedVersions)
		assert.Equal(t, []string{}, r.References)
	}

	want := []summary{
		{"Apache", []string{"2.0 - 2.14.1"}, "https://logging.apache.org/log4j/2.x/security.html", model.StatusAffected},
		{"Acme", []string{}, "", model.StatusNotAffected},
		{"Nobody", []string{}, "", model.StatusUnknown},
		{"Zulu", []string{"1.0", "1.1"}, "plain-link", model.StatusAffected},
	}

	assert.Equal(t, want, got)
}

func TestConvertNoTable(t *testing.T) {
	logger, hook := test.NewNullLogger()

	records, err := Convert(strings.NewReader("# nothing\n\nhere\n"), NewCisagov(fixedNow), logger)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
	assert.Contains(t, hook.LastEntry().Message, "Converted 0 rows")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"cisagov", "ncsc-nl"}, Names())
}
