// Package props decodes ordered property bags from JSON and YAML documents.
//
// The top level of a document must be an object (mapping). Its keys become
// props in document order; nested values decode to plain Go values
// (map[string]any, []any, string, float64/int, bool, nil).
package props

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	vangoerrors "github.com/vango-dev/ssr/internal/errors"
	"github.com/vango-dev/ssr/pkg/host"
)

// Format is a props document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath returns the format implied by path's extension. Unknown
// extensions are treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes the props file at path.
func Load(path string) (host.Props, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, vangoerrors.New("E043").WithDetailf("read %s", path).Wrap(err)
	}
	return Decode(data, FormatForPath(path))
}

// Decode decodes data in the given format. Blank input is an empty bag.
func Decode(data []byte, format Format) (host.Props, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return host.Props{}, nil
	}
	switch format {
	case FormatYAML:
		return DecodeYAML(bytes.NewReader(data))
	default:
		return DecodeJSON(bytes.NewReader(data))
	}
}

// DecodeJSON reads one JSON object from r, keeping key order.
func DecodeJSON(r io.Reader) (host.Props, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return host.Props{}, nil
	}
	if err != nil {
		return nil, invalid("json", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, vangoerrors.New("E043").WithDetailf("json: expected an object, got %v", describeToken(tok))
	}

	out := host.Props{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, invalid("json", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, vangoerrors.New("E043").WithDetailf("json: expected a key, got %v", tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, invalid("json", err)
		}
		out = append(out, host.P(key, value))
	}

	if _, err := dec.Token(); err != nil {
		return nil, invalid("json", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, vangoerrors.New("E043").WithDetail("json: unexpected data after the top-level object")
	}
	return out, nil
}

// DecodeYAML reads one YAML mapping from r, keeping key order.
func DecodeYAML(r io.Reader) (host.Props, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return host.Props{}, nil
		}
		return nil, invalid("yaml", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return host.Props{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, vangoerrors.New("E043").WithDetailf("yaml: line %d: expected a mapping, got %s", root.Line, root.Tag)
	}

	out := make(host.Props, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, vangoerrors.New("E043").WithDetailf("yaml: line %d: keys must be scalars", k.Line)
		}

		var value any
		if err := v.Decode(&value); err != nil {
			return nil, invalid("yaml", err)
		}
		out = append(out, host.P(k.Value, value))
	}
	return out, nil
}

func invalid(format string, err error) error {
	return vangoerrors.New("E043").WithDetailf("%s: %v", format, err).Wrap(err)
}

func describeToken(tok any) string {
	switch t := tok.(type) {
	case nil:
		return "null"
	case json.Delim:
		return "'" + string(rune(t)) + "'"
	case string:
		return "a string"
	default:
		return "a scalar"
	}
}
