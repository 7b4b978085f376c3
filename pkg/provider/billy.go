package provider

import (
	"context"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
)

// Billy serves a content root from a go-billy filesystem (memfs, osfs, chroot).
type Billy struct {
	bfs billy.Filesystem
}

// NewBilly wraps bfs as a Provider.
//
// Example:
//
//	p := provider.NewBilly(osfs.New("./content"))
func NewBilly(bfs billy.Filesystem) *Billy {
	return &Billy{bfs: bfs}
}

// billyPath returns the relative form used for every billy call.
// memfs keys entries by their cleaned path, so content written with
// relative names is only found through relative lookups.
func billyPath(p string) string {
	return Clean(p)
}

// Stat implements Provider.
func (b *Billy) Stat(_ context.Context, p string) (Info, error) {
	fi, err := b.bfs.Stat(billyPath(p))
	if err != nil {
		return Info{}, wrapFSError("stat", Clean(p), err)
	}
	return Info{Name: fi.Name(), IsDir: fi.IsDir()}, nil
}

// ReadDir implements Provider.
func (b *Billy) ReadDir(_ context.Context, p string) ([]Info, error) {
	bp := billyPath(p)
	fi, err := b.bfs.Stat(bp)
	if err != nil {
		return nil, wrapFSError("readdir", Clean(p), err)
	}
	if !fi.IsDir() {
		return nil, ErrNotDir
	}

	entries, err := b.bfs.ReadDir(bp)
	if err != nil {
		return nil, wrapFSError("readdir", Clean(p), err)
	}

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		// memfs lists the relative root "." as a child of itself.
		if name := e.Name(); name != "." && name != ".." && name != "/" {
			infos = append(infos, Info{Name: name, IsDir: e.IsDir()})
		}
	}
	return sortInfos(infos), nil
}

// Open implements Provider.
func (b *Billy) Open(_ context.Context, p string) (io.ReadCloser, error) {
	bp := billyPath(p)
	if fi, err := b.bfs.Stat(bp); err == nil && fi.IsDir() {
		return nil, wrapFSError("open", Clean(p), os.ErrInvalid)
	}
	f, err := b.bfs.Open(bp)
	if err != nil {
		return nil, wrapFSError("open", Clean(p), err)
	}
	return f, nil
}

var _ Provider = (*Billy)(nil)
