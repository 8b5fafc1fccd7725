package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"c4kit/internal/errors"
)

// Encode writes doc to w in the given format, zstd-framed when compress is set.
func Encode(w io.Writer, doc *Document, format Format, compress bool) (err error) {
	if compress {
		zw, zerr := zstd.NewWriter(w)
		if zerr != nil {
			return errors.NewError(errors.InvalidFormat, "failed to start zstd stream", zerr)
		}
		defer func() {
			if cerr := zw.Close(); err == nil && cerr != nil {
				err = errors.NewError(errors.InvalidFormat, "failed to finish zstd stream", cerr)
			}
		}()
		w = zw
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(doc)
	default:
		return errors.Errorf(errors.InvalidFormat, "unknown document format %q", format)
	}
	if err != nil {
		return errors.NewError(errors.InvalidFormat, fmt.Sprintf("failed to encode %s document", format), err)
	}
	return nil
}

// Decode reads a document from r. Unknown fields are rejected, as are
// documents whose schema has a different major version.
func Decode(r io.Reader, format Format, compressed bool) (*Document, error) {
	if compressed {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.NewError(errors.InvalidFormat, "failed to open zstd stream", err)
		}
		defer zr.Close()
		r = zr
	}

	var (
		doc Document
		err error
	)
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(&doc)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown keys %v", undecoded)
			}
		}
	default:
		return nil, errors.Errorf(errors.InvalidFormat, "unknown document format %q", format)
	}
	if err != nil {
		return nil, errors.NewError(errors.InvalidFormat, fmt.Sprintf("failed to decode %s document", format), err)
	}

	if err := checkSchema(doc.Schema); err != nil {
		return nil, err
	}
	return &doc, nil
}

func checkSchema(schema string) error {
	if schema == "" {
		return errors.Errorf(errors.InvalidFormat, "document has no schema version")
	}
	v, err := semver.NewVersion(schema)
	if err != nil {
		return errors.NewError(errors.InvalidFormat, "document schema "+schema+" is not a semantic version", err)
	}
	current := semver.MustParse(SchemaVersion)
	if v.Major() != current.Major() {
		return errors.Errorf(errors.UnsupportedVersion,
			"document schema %s cannot be read; this build reads %d.x", schema, current.Major())
	}
	return nil
}

// WriteFile encodes doc to path. The file is only replaced once encoding
// has succeeded.
func WriteFile(path string, doc *Document, format Format, compress bool) error {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, format, compress); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes the document at path, taking the format and compression
// from its extension.
func ReadFile(path string) (*Document, error) {
	format, compressed, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f, format, compressed)
}
