package provider

import (
	"context"
	"io"
	"path"
	"slices"
	"strings"
)

// Info describes a single entry of the content root.
type Info struct {
	// Name is the base name of the entry.
	Name string
	// IsDir reports whether the entry is a directory.
	IsDir bool
}

// Provider is a read-only view of a content root.
//
// Paths are slash-separated and relative to the root; "" and "." name the root itself.
// Missing paths report an error wrapping ErrNotExist.
type Provider interface {
	// Stat reports whether path exists and whether it is a directory.
	Stat(ctx context.Context, path string) (Info, error)

	// ReadDir lists the immediate entries of the directory at path, sorted by name.
	ReadDir(ctx context.Context, path string) ([]Info, error)

	// Open opens the file at path for reading.
	// The caller is responsible for closing the returned reader.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// Clean normalizes a provider path: forward slashes, no leading slash,
// no "." or ".." segments escaping the root. The root is returned as ".".
func Clean(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	if p == "/" {
		return "."
	}
	return p[1:]
}

// Join joins path elements and cleans the result.
func Join(elem ...string) string {
	return Clean(path.Join(elem...))
}

func sortInfos(infos []Info) []Info {
	slices.SortFunc(infos, func(a, b Info) int {
		return strings.Compare(a.Name, b.Name)
	})
	return infos
}
