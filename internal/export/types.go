// Package export writes dynamic views as portable documents and reads them
// back. A document holds the persisted form of one or more views; restoring it
// needs the model the views were built against.
package export

import (
	"path/filepath"
	"strings"

	"c4kit/internal/errors"
	"c4kit/internal/view"
)

// SchemaVersion is written to every document. Documents with another major
// version are rejected on decode.
const SchemaVersion = "1.0.0"

// Format is a document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// compressedSuffix marks zstd-framed documents
const compressedSuffix = ".zst"

// ParseFormat parses a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatTOML:
		return FormatTOML, nil
	}
	return "", errors.Errorf(errors.InvalidFormat, "unknown document format %q; use json, yaml or toml", s)
}

// FormatForPath guesses the format of a document file from its extension. A
// trailing .zst reports the document as compressed.
func FormatForPath(path string) (format Format, compressed bool, err error) {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, compressedSuffix) {
		compressed = true
		name = strings.TrimSuffix(name, compressedSuffix)
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "", compressed, errors.Errorf(errors.InvalidFormat, "cannot tell the document format of %s", path)
	}
	format, err = ParseFormat(ext)
	return format, compressed, err
}

// Extension returns the file extension for a format, including .zst when
// compressed.
func (f Format) Extension(compressed bool) string {
	ext := "." + string(f)
	if compressed {
		ext += compressedSuffix
	}
	return ext
}

// Document is the persisted form of a set of dynamic views
type Document struct {
	Schema    string               `json:"schema" yaml:"schema" toml:"schema"`
	ID        string               `json:"id" yaml:"id" toml:"id"`
	Generated string               `json:"generated" yaml:"generated" toml:"generated"` // RFC 3339
	Workspace string               `json:"workspace,omitempty" yaml:"workspace,omitempty" toml:"workspace,omitempty"`
	Views     []view.DynamicViewIO `json:"views" yaml:"views" toml:"views"`
}

// View returns the persisted view with the given key
func (d *Document) View(key string) (*view.DynamicViewIO, bool) {
	for i := range d.Views {
		if d.Views[i].Key == key {
			return &d.Views[i], true
		}
	}
	return nil, false
}
