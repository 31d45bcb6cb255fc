package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a catalog document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from a file extension. JSON is the default.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FormatFromContentType picks the format from an HTTP Content-Type header,
// falling back to the URL path extension.
func FormatFromContentType(contentType, path string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil {
		switch mediaType {
		case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
			return FormatYAML
		case "application/json":
			return FormatJSON
		}
	}
	return FormatFromPath(path)
}

// Decode parses a catalog document. It does not validate.
func Decode(data []byte, format Format) ([]StarSystem, error) {
	var systems []StarSystem

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &systems); err != nil {
			return nil, fmt.Errorf("decode YAML catalog: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&systems); err != nil {
			return nil, fmt.Errorf("decode JSON catalog: %w", err)
		}
	}

	return systems, nil
}

// UnmarshalJSON accepts both "42%" style strings and bare numbers.
func (l *Length) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = Length(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("length must be a string or number: %s", string(b))
	}
	*l = Length(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}
