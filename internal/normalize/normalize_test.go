package normalize

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvesta/mdyml/pkg/match"
	"github.com/kvesta/mdyml/pkg/model"
)

func TestMunge(t *testing.T) {
	docs := []*model.SoftwareDocument{
		{Software: []model.SoftwareRecord{{Vendor: "B"}, {Vendor: "A"}}},
		nil,
		{Software: []model.SoftwareRecord{{Vendor: "C"}}},
	}

	got := Munge(docs)
	require.Len(t, got, 3)
	assert.Equal(t, "B", got[0].Vendor)
	assert.Equal(t, "C", got[2].Vendor)
	assert.NotNil(t, Munge(nil))
}

func TestNormalize(t *testing.T) {
	logger, hook := test.NewNullLogger()

	in := []model.SoftwareRecord{
		{
			Vendor:           " Apache ",
			Product:          "Log4j ",
			AffectedVersions: []string{"2.14.1", "2.0", "2.14.1", ""},
			PatchedVersions:  []string{"2.17.1"},
			References:       []string{"a", " a", "b"},
			LastUpdated:      "2021-12-15T00:00:00+00:00",
			Status:           model.StatusAffected,
		},
		{
			Vendor:       "Acme",
			Investigated: true,
			Status:       model.StatusUnknown,
		},
		{
			Vendor:  "",
			Product: "orphan product",
		},
		{
			Vendor:      "Bad",
			LastUpdated: "yesterday",
		},
		{
			Vendor: "Typo",
			Status: "Affectd",
		},
	}

	got := Normalize(in, logger)
	require.Len(t, got, 3)

	assert.Equal(t, "Apache", got[0].Vendor)
	assert.Equal(t, "Log4j", got[0].Product)
	assert.Equal(t, []string{"2.0", "2.14.1"}, got[0].AffectedVersions)
	assert.Equal(t, []string{"a", "b"}, got[0].References)
	assert.Equal(t, model.StatusFixed, got[0].Status)

	assert.Equal(t, model.StatusNotAffected, got[1].Status)
	assert.Equal(t, []string{}, got[1].PatchedVersions)
	assert.Equal(t, "", got[1].LastUpdated)

	assert.Equal(t, "Bad", got[2].Vendor)
	assert.Equal(t, "yesterday", got[2].LastUpdated)
	assert.Equal(t, model.StatusUnknown, got[2].Status)

	// orphan and typo dropped, unparseable date kept
	require.Len(t, hook.AllEntries(), 3)
	assert.Contains(t, hook.AllEntries()[0].Message, "Skipping software")
	assert.Contains(t, hook.AllEntries()[1].Message, "yesterday")
	assert.Contains(t, hook.AllEntries()[2].Message, `"Typo"`)

	// input untouched
	assert.Equal(t, model.StatusAffected, in[0].Status)
	assert.Equal(t, " Apache ", in[0].Vendor)
}

func TestNormalizeTimestamps(t *testing.T) {
	logger, hook := test.NewNullLogger()

	tests := []struct {
		name        string
		lastUpdated string
		want        string
	}{
		{
			name:        "dateOnly",
			lastUpdated: "2021-12-15",
			want:        "2021-12-15T00:00:00+00:00",
		},
		{
			name:        "noZone",
			lastUpdated: "2021-12-15T00:00:00",
			want:        "2021-12-15T00:00:00+00:00",
		},
		{
			name:        "withOffset",
			lastUpdated: "2021-12-15T10:30:00+01:00",
			want:        "2021-12-15T10:30:00+01:00",
		},
		{
			name:        "usDate",
			lastUpdated: "12/21/2021",
			want:        "2021-12-21T00:00:00+00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]model.SoftwareRecord{
				{Vendor: "Apache", Product: "Log4j", LastUpdated: tt.lastUpdated},
			}, logger)

			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].LastUpdated)
		})
	}

	assert.Empty(t, hook.AllEntries())
}

func TestSort(t *testing.T) {
	records := []model.SoftwareRecord{
		{Vendor: "zoom", Product: "Client"},
		{Vendor: "Apache", Product: "Tomcat"},
		{Vendor: "apache", Product: "Log4j"},
		{Vendor: "Élan", Product: "X"},
		{Vendor: "Cisco", Product: "a"},
		{Vendor: "CISCO", Product: "A"},
	}

	got := Sort(records)

	names := []string{}
	for _, r := range got {
		names = append(names, r.Vendor+"/"+r.Product)
	}
	assert.Equal(t, []string{"apache/Log4j", "Apache/Tomcat", "Cisco/a", "CISCO/A", "zoom/Client", "Élan/X"}, names)
}

func TestRun(t *testing.T) {
	logger, hook := test.NewNullLogger()

	docs := []*model.SoftwareDocument{
		{Software: []model.SoftwareRecord{{Vendor: "Microsoft", Product: "Teams"}}},
		{Software: []model.SoftwareRecord{{Vendor: "Microsft", Product: "Azure"}, {Vendor: "Adobe"}}},
	}

	records, suspicions := Run(docs, Options{Logger: logger})
	require.Len(t, records, 3)
	assert.Equal(t, "Adobe", records[0].Vendor)
	assert.Equal(t, "Microsft", records[1].Vendor)

	require.Len(t, suspicions, 1)
	assert.Equal(t, match.Confusion, suspicions[0].Types)
	assert.Equal(t, "Microsoft", suspicions[0].Name)
	assert.Equal(t, "Microsft", suspicions[0].Origin)

	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, "Possible duplicate vendor")
}
