package provider

import (
	"context"
	"io"
	"io/fs"
)

// FS serves a content root from an fs.FS: os.DirFS, embed.FS or fstest.MapFS.
type FS struct {
	fsys fs.FS
}

// NewFS wraps fsys as a Provider.
//
// Example:
//
//	p := provider.NewFS(os.DirFS("./content"))
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Stat implements Provider.
func (f *FS) Stat(_ context.Context, p string) (Info, error) {
	p = Clean(p)
	fi, err := fs.Stat(f.fsys, p)
	if err != nil {
		return Info{}, wrapFSError("stat", p, err)
	}
	return Info{Name: fi.Name(), IsDir: fi.IsDir()}, nil
}

// ReadDir implements Provider.
func (f *FS) ReadDir(_ context.Context, p string) ([]Info, error) {
	p = Clean(p)
	entries, err := fs.ReadDir(f.fsys, p)
	if err != nil {
		if fi, serr := fs.Stat(f.fsys, p); serr == nil && !fi.IsDir() {
			return nil, ErrNotDir
		}
		return nil, wrapFSError("readdir", p, err)
	}

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, Info{Name: e.Name(), IsDir: e.IsDir()})
	}
	return sortInfos(infos), nil
}

// Open implements Provider.
func (f *FS) Open(_ context.Context, p string) (io.ReadCloser, error) {
	p = Clean(p)
	file, err := f.fsys.Open(p)
	if err != nil {
		return nil, wrapFSError("open", p, err)
	}
	return file, nil
}

var _ Provider = (*FS)(nil)
