// Package codec reads and writes character sheets as JSON, YAML and a
// single-row CSV "flat" layout.
//
// Loading always merges the file over a full default record and repairs
// what is missing (see Normalize), so a sparse or older file still yields
// a complete sheet.
package codec

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/pkg/idgen"
)

// Format is an interchange encoding
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Formats lists every supported format
var Formats = []Format{FormatJSON, FormatYAML, FormatCSV}

// fileNameTimeLayout keeps file names free of ':'
const fileNameTimeLayout = "2006-01-02T15-04-05"

// Extension is the file extension written for the format, without a dot
func (f Format) Extension() string {
	return string(f)
}

// ContentType is the MIME type of the encoding
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatCSV:
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// ParseFormat accepts a format name or extension, with or without a dot
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", errors.Unimplementedf("unsupported format: %q", s).WithMeta("format", s)
	}
}

// FormatFromFileName picks the format from a file's extension
func FormatFromFileName(name string) (Format, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		return "", errors.Unimplementedf("unsupported format: %q has no extension", name).WithMeta("file_name", name)
	}
	return ParseFormat(ext)
}

// FileName builds "{name}_{timestamp}.{ext}" with the timestamp in UTC.
// Unnamed sheets are called "Character"; path separators are replaced.
func FileName(c *gurps.Character, f Format, now time.Time) string {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = "Character"
	}
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	return name + "_" + now.UTC().Format(fileNameTimeLayout) + "." + f.Extension()
}

// Encode writes c in the given format
func Encode(c *gurps.Character, f Format) ([]byte, error) {
	if c == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	switch f {
	case FormatJSON:
		return encodeJSON(c)
	case FormatYAML:
		return encodeYAML(c)
	case FormatCSV:
		return encodeFlatRow(c)
	default:
		return nil, errors.Unimplementedf("unsupported format: %q", f).WithMeta("format", string(f))
	}
}

// Decode parses data over a default record. Entry ids are not filled;
// use Load for a repaired record.
func Decode(data []byte, f Format) (*gurps.Character, error) {
	c := gurps.NewDefault()
	// nil marks "flags not present in the file" for Normalize
	c.Overrides = nil

	var err error
	switch f {
	case FormatJSON:
		err = decodeJSON(data, c)
	case FormatYAML:
		err = decodeYAML(data, c)
	case FormatCSV:
		err = decodeFlatRow(data, c)
	default:
		return nil, errors.Unimplementedf("unsupported format: %q", f).WithMeta("format", string(f))
	}
	if err != nil {
		return nil, parseError(f, err)
	}

	return c, nil
}

// Load decodes and normalizes a file in one step
func Load(data []byte, f Format, gen idgen.Generator) (*gurps.Character, error) {
	c, err := Decode(data, f)
	if err != nil {
		return nil, err
	}
	Normalize(c, gen)
	return c, nil
}

func parseError(f Format, cause error) error {
	return errors.WrapWithCodef(cause, errors.CodeInvalidArgument, "invalid %s format", strings.ToUpper(string(f))).
		WithMeta("format", string(f)).
		WithMeta("reason", cause.Error())
}
