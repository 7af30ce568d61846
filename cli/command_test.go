package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvesta/mdyml/config"
	"github.com/kvesta/mdyml/pkg/docio"
)

const cisagovList = "../internal/convert/testdata/cisagov.md"

func init() {
	color.NoColor = true
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
	})

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "mdyml version 1.0.0\n", out)

	_, _, err = run(t, "version", "extra")
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "critical", level: "critical"},
		{name: "upper", level: "DEBUG"},
		{name: "invalid", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "--log-level", tt.level, "version")
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidLogLevel)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "software.db")

	out, stderr, err := run(t, "convert", "cisagov", "-f", cisagovList, "--db", db)
	require.NoError(t, err)

	doc, err := docio.Decode([]byte(out), docio.YAML)
	require.NoError(t, err)
	require.Len(t, doc.Software, 5)
	assert.Equal(t, "1Password", doc.Software[0].Vendor)
	assert.Equal(t, "cisagov", doc.Software[0].Reporter)
	assert.Contains(t, stderr, "Skipping line")

	out, _, err = run(t, "convert", "cisagov", "-f", cisagovList, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"vendor": "Apache"`)

	out, _, err = run(t, "query", "--db", db, "--vendor", "apache")
	require.NoError(t, err)
	assert.Contains(t, out, "Detected 1 software")
	assert.Contains(t, out, "Log4j")

	out, _, err = run(t, "query", "--db", db, "--status", "not affected")
	require.NoError(t, err)
	assert.Contains(t, out, "Zoom")
	assert.NotContains(t, out, "Log4j")

	_, _, err = run(t, "query", "--db", db, "--status", "broken")
	assert.Error(t, err)

	_, _, err = run(t, "convert", "cisagov", "-f", cisagovList, "--format", "toml")
	assert.ErrorIs(t, err, docio.ErrUnsupportedFormat)
}

func TestNormalizeAndRender(t *testing.T) {
	dir := t.TempDir()
	converted := filepath.Join(dir, "cisagov.yml")
	merged := filepath.Join(dir, "software.json")

	_, _, err := run(t, "convert", "cisagov", "-f", cisagovList, "-o", converted)
	require.NoError(t, err)

	_, _, err = run(t, "normalize", converted, converted, "-o", merged)
	require.NoError(t, err)

	doc, err := docio.Load(merged)
	require.NoError(t, err)
	assert.Len(t, doc.Software, 10)

	out, stderr, err := run(t, "yml2md", merged, "--summary")
	require.NoError(t, err)
	assert.Contains(t, out, "| Vendor")
	assert.Contains(t, out, "[link](https://discuss.elastic.co)")
	assert.Contains(t, stderr, "Detected 10 software")

	out, _, err = run(t, "yml2md", converted, "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")

	_, _, err = run(t, "yml2md", converted, "--format", "pdf")
	assert.Error(t, err)

	_, _, err = run(t, "normalize")
	assert.Error(t, err)
}

func TestMarkdownFromTemplate(t *testing.T) {
	dir := t.TempDir()

	tmpl := filepath.Join(dir, "README.mustache")
	require.NoError(t, os.WriteFile(tmpl, []byte("---\ntitle: Software\n---\n# {{title}}\n\n{{{software_markdown_table}}}"), 0644))

	tableFile := filepath.Join(dir, "table.md")
	require.NoError(t, os.WriteFile(tableFile, []byte("| a | b |\n\n"), 0644))

	out, _, err := run(t, "md-from-template", tmpl, tableFile)
	require.NoError(t, err)
	assert.Equal(t, "# Software\n\n| a | b |\n", out)

	_, _, err = run(t, "md-from-template", tmpl)
	assert.Error(t, err)
}
