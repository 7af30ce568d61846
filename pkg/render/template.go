package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/cbroglie/mustache"
)

// TableKey is the template variable holding the software table.
const TableKey = "software_markdown_table"

// Template renders a mustache template. Keys from the template's YAML
// frontmatter are available to it, with data taking precedence.
func Template(source []byte, data map[string]interface{}) (string, error) {
	meta := map[string]interface{}{}

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return "", fmt.Errorf("parse frontmatter: %w", err)
	}

	for k, v := range data {
		meta[k] = v
	}

	tmpl, err := mustache.ParseString(string(body))
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	out, err := tmpl.Render(meta)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}

// TableData loads the table file as template data, trailing whitespace
// removed.
func TableData(tableFile string) (map[string]interface{}, error) {
	content, err := os.ReadFile(tableFile)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		TableKey: strings.TrimRight(string(content), " \t\r\n"),
	}, nil
}
