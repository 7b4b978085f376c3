package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes structured content into a tree.
type Parser interface {
	// Parse reads the whole of r and returns the decoded tree.
	Parse(r io.Reader) (*Node, error)

	// Extensions lists the file extensions (without dot) the parser handles.
	Extensions() []string
}

// JSON parses JSON documents. Numbers keep their textual form.
type JSON struct {
	// CaseInsensitive lowercases every map key.
	CaseInsensitive bool
}

// Parse implements Parser.
func (p JSON) Parse(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return NewNull(), nil
		}
		return nil, fmt.Errorf("%w: json: %s", ErrInvalidContent, err)
	}
	return FromAny(v, p.CaseInsensitive), nil
}

// Extensions implements Parser.
func (JSON) Extensions() []string { return []string{"json"} }

// YAML parses YAML documents.
type YAML struct {
	// CaseInsensitive lowercases every map key.
	CaseInsensitive bool
}

// Parse implements Parser. Only the first document of a stream is read.
func (p YAML) Parse(r io.Reader) (*Node, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return NewNull(), nil
		}
		return nil, fmt.Errorf("%w: yaml: %s", ErrInvalidContent, err)
	}
	return FromAny(v, p.CaseInsensitive), nil
}

// Extensions implements Parser.
func (YAML) Extensions() []string { return []string{"yaml", "yml"} }

// ForExtension returns the parser for a file extension ("json", ".yaml", "YML").
func ForExtension(ext string, caseInsensitive bool) (Parser, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return JSON{CaseInsensitive: caseInsensitive}, nil
	case "yaml", "yml":
		return YAML{CaseInsensitive: caseInsensitive}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}
