package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = `| Vendor | Product |
|--------|---------|
| Apache | Log4j   |
`

func TestHTML(t *testing.T) {
	out, err := HTML([]byte("# Software\n\n" + table))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<h1 id="software">Software</h1>`)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<th>Vendor</th>")
	assert.Contains(t, html, "<td>Log4j</td>")
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(table, glamour.WithStandardStyle("notty"), glamour.WithWordWrap(80))
	require.NoError(t, err)

	assert.Contains(t, out, "Vendor")
	assert.Contains(t, out, "Log4j")
}

func TestTemplate(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		data    map[string]interface{}
		want    string
		wantErr bool
	}{
		{
			name:   "table",
			source: "# List\n\n{{{software_markdown_table}}}\n",
			data:   map[string]interface{}{TableKey: "| a | b |"},
			want:   "# List\n\n| a | b |\n",
		},
		{
			name:   "escaped",
			source: "{{software_markdown_table}}",
			data:   map[string]interface{}{TableKey: "<b>"},
			want:   "&lt;b&gt;",
		},
		{
			name:   "frontmatter",
			source: "---\ntitle: Log4j software\nowner: cisagov\n---\n# {{title}} by {{owner}}\n",
			data:   map[string]interface{}{"owner": "ncsc-nl"},
			want:   "# Log4j software by ncsc-nl\n",
		},
		{
			name:   "missingVariable",
			source: "[{{nothing}}]",
			want:   "[]",
		},
		{
			name:    "unclosedTag",
			source:  "{{#section}}never closed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Template([]byte(tt.source), tt.data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.md")
	require.NoError(t, os.WriteFile(path, []byte(table+"\n\n"), 0644))

	data, err := TableData(path)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimRight(table, "\n"), data[TableKey])

	_, err = TableData(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}
