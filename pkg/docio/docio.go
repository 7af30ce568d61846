package docio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/kvesta/mdyml/pkg/model"
)

type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrNoSoftware        = errors.New("document has no software list")
)

// ParseFormat accepts yaml, yml and json in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFor picks a format from a file extension, defaulting to YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// Encode writes doc to w. YAML output carries explicit start and end markers.
func Encode(w io.Writer, doc *model.SoftwareDocument, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)

	case YAML:
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}

		_, err := io.WriteString(w, "...\n")
		return err
	}

	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Decode parses a document. A bare list of records is accepted as well.
func Decode(data []byte, f Format) (*model.SoftwareDocument, error) {
	switch f {
	case JSON:
		return decodeJSON(data)
	case YAML:
		return decodeYAML(data)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Load reads a document from path, or stdin when path is "-".
func Load(path string) (*model.SoftwareDocument, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	doc, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

func decodeYAML(data []byte) (*model.SoftwareDocument, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}

	if len(node.Content) == 0 {
		return nil, ErrNoSoftware
	}

	doc := &model.SoftwareDocument{Version: model.DocumentVersion}
	root := node.Content[0]

	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&doc.Software); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		if err := root.Decode(doc); err != nil {
			return nil, err
		}
		if doc.Software == nil {
			return nil, ErrNoSoftware
		}
	default:
		return nil, ErrNoSoftware
	}

	return doc, nil
}

func decodeJSON(data []byte) (*model.SoftwareDocument, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json")
	}

	doc := &model.SoftwareDocument{Version: model.DocumentVersion}
	result := gjson.ParseBytes(data)

	software := result
	if !result.IsArray() {
		if v := result.Get("version"); v.Exists() {
			doc.Version = v.String()
		}

		software = result.Get("software")
		if !software.IsArray() {
			return nil, ErrNoSoftware
		}
	}

	if err := json.Unmarshal([]byte(software.Raw), &doc.Software); err != nil {
		return nil, err
	}

	return doc, nil
}
