package view

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidFrontmatter is returned when a view's YAML header cannot be parsed.
var ErrInvalidFrontmatter = errors.New("view: invalid frontmatter")

var delimiter = []byte("---")

// splitFrontmatter separates an optional YAML header delimited by "---" lines
// from the markdown body. Content without a header yields empty metadata.
func splitFrontmatter(content []byte) (map[string]any, []byte, error) {
	meta := make(map[string]any)
	if !bytes.HasPrefix(content, delimiter) {
		return meta, content, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, delimiter), "\r\n")
	end := bytes.Index(rest, delimiter)
	if end < 0 {
		return nil, nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	header := rest[:end]
	body := rest[end+len(delimiter):]
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))

	if len(bytes.TrimSpace(header)) > 0 {
		if err := yaml.Unmarshal(header, &meta); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}
	if meta == nil {
		meta = make(map[string]any)
	}
	return meta, body, nil
}
