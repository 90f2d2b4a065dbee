package intake

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/nexascope/internal/diagnosis"
	"github.com/hpungsan/nexascope/internal/errors"
)

// MaxDocumentBytes caps the size of an answers document.
const MaxDocumentBytes = 64 * 1024

// Format is the encoding of an answers document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses an answers document and validates it against the schema.
func Decode(data []byte, format Format) (RawInput, error) {
	if len(data) > MaxDocumentBytes {
		return RawInput{}, errors.NewInvalidRequest("answers document too large")
	}
	switch format {
	case FormatYAML:
		return DecodeYAML(data)
	case FormatJSON, "":
		return DecodeJSON(data)
	default:
		return RawInput{}, errors.NewInvalidRequest("format must be one of: json, yaml")
	}
}

// DecodeJSON validates a JSON answers document and decodes it.
func DecodeJSON(data []byte) (RawInput, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return RawInput{}, errors.NewInvalidRequest("invalid JSON: " + err.Error())
	}
	if err := ValidateDocument(doc); err != nil {
		return RawInput{}, err
	}

	var raw RawInput
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawInput{}, errors.NewInvalidRequest("invalid answers: " + err.Error())
	}
	return raw, nil
}

// DecodeYAML strictly decodes a YAML answers document (unknown keys are
// rejected) and validates it through the same schema as JSON.
func DecodeYAML(data []byte) (RawInput, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw RawInput
	if err := dec.Decode(&raw); err != nil {
		if stderrors.Is(err, io.EOF) {
			return RawInput{}, errors.NewInvalidRequest("answers document is empty")
		}
		return RawInput{}, errors.NewInvalidRequest("invalid YAML: " + err.Error())
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return RawInput{}, errors.NewInternal(err)
	}
	return DecodeJSON(normalized)
}

// ReadFile reads an answers document from disk; "-" reads stdin.
func ReadFile(path string) (RawInput, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(io.LimitReader(os.Stdin, MaxDocumentBytes+1))
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return RawInput{}, errors.NewInvalidRequest("cannot read answers: " + err.Error())
	}

	format := FormatFromPath(path)
	if path == "-" && looksLikeYAML(data) {
		format = FormatYAML
	}
	return Decode(data, format)
}

// looksLikeYAML reports whether stdin content is not a JSON object.
func looksLikeYAML(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] != '{'
}

// Parse decodes, validates and builds a Snapshot in one step.
func Parse(data []byte, format Format) (diagnosis.Snapshot, error) {
	raw, err := Decode(data, format)
	if err != nil {
		return diagnosis.Snapshot{}, err
	}
	return Build(raw)
}
