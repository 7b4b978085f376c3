package resource

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/localize/pkg/culture"
	"github.com/dmitrymomot/localize/pkg/logger"
	"github.com/dmitrymomot/localize/pkg/provider"
)

// Source resolves and enumerates culture-specific resources.
// Resolver is the uncached implementation; Cached memoizes it.
type Source interface {
	Resolve(ctx context.Context, dir, name, ext string, requested culture.Expression) (*FileInfo, error)
	Enumerate(ctx context.Context, dir, ext string, requested culture.Expression) ([]FileInfo, error)
}

// Resolver finds the best matching file for a culture by naming convention.
//
// For a language-only request "ll" the candidates are, in order:
//
//	dir/name.ll.ext
//	dir/ll/name.ext
//	dir/name.ll-XX.ext   first by name, any two-letter region
//	dir/ll-XX/name.ext   first by name, any two-letter region
//
// For a language-and-region request "ll-RR":
//
//	dir/name.ll-RR.ext
//	dir/ll-RR/name.ext
//	dir/name.ll.ext      matched culture becomes "ll"
//	dir/ll/name.ext      matched culture becomes "ll"
//
// Exact candidates are probed with the canonical casing ("en-US") and so
// follow the provider's case sensitivity; culture tokens found by listing
// a directory are compared case-insensitively.
type Resolver struct {
	provider provider.Provider
	option   *culture.Option
	logger   *slog.Logger
}

// NewResolver creates a resolver reading from p. The option supplies the
// default culture used as the second fallback tier.
func NewResolver(p provider.Provider, opt *culture.Option, opts ...Option) *Resolver {
	r := &Resolver{
		provider: p,
		option:   opt,
		logger:   logger.NewNope(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve returns the best file for requested, falling back to the default
// culture and then to the culture-neutral dir/name.ext.
// It returns nil, nil when no tier matches.
func (r *Resolver) Resolve(ctx context.Context, dir, name, ext string, requested culture.Expression) (*FileInfo, error) {
	dir, ext = provider.Clean(dir), normalizeExt(ext)

	if !requested.IsZero() {
		info, err := r.Find(ctx, dir, name, ext, requested)
		if err != nil || info != nil {
			return info, err
		}
	}

	if def := r.option.Default(); !def.Equal(requested) {
		r.logger.DebugContext(ctx, "resource: falling back to default culture",
			slog.String("dir", dir),
			slog.String("name", name),
			slog.String("requested", requested.DisplayName()),
			slog.String("default", def.DisplayName()),
		)
		info, err := r.Find(ctx, dir, name, ext, def)
		if err != nil || info != nil {
			return info, err
		}
	}

	fileName := name + "." + ext
	ok, err := r.isFile(ctx, provider.Join(dir, fileName))
	if err != nil || !ok {
		return nil, err
	}

	return &FileInfo{
		RelativePath: provider.Join(dir, fileName),
		FileName:     fileName,
		Name:         name,
		Extension:    ext,
	}, nil
}

// Find runs the four-step search for a single culture, without fallback.
// It returns nil, nil when nothing matches.
func (r *Resolver) Find(ctx context.Context, dir, name, ext string, c culture.Expression) (*FileInfo, error) {
	if c.IsZero() {
		return nil, nil
	}
	dir, ext = provider.Clean(dir), normalizeExt(ext)

	if c.IsAllRegion() {
		return r.findLanguage(ctx, dir, name, ext, c)
	}
	return r.findRegion(ctx, dir, name, ext, c)
}

func (r *Resolver) findLanguage(ctx context.Context, dir, name, ext string, c culture.Expression) (*FileInfo, error) {
	lang := c.Language()

	// name.ll.ext
	if info, err := r.probeFile(ctx, dir, name, ext, lang, c); info != nil || err != nil {
		return info, err
	}

	// ll/name.ext
	if info, err := r.probeDir(ctx, dir, name, ext, lang, c); info != nil || err != nil {
		return info, err
	}

	entries, err := r.readDir(ctx, dir)
	if err != nil || len(entries) == 0 {
		return nil, err
	}

	// name.ll-XX.ext
	for _, e := range entries {
		if e.IsDir {
			continue
		}
		n, token, ok := splitFileName(e.Name, ext)
		if !ok || n != name {
			continue
		}
		if fc, ok := parseToken(token); ok && !fc.IsAllRegion() && fc.Language() == lang {
			return newFileInfo(dir, e.Name, name, ext, fc), nil
		}
	}

	// ll-XX/name.ext
	for _, e := range entries {
		if !e.IsDir {
			continue
		}
		dc, ok := parseToken(e.Name)
		if !ok || dc.IsAllRegion() || dc.Language() != lang {
			continue
		}
		if info, err := r.probeDir(ctx, dir, name, ext, e.Name, dc); info != nil || err != nil {
			return info, err
		}
	}

	return nil, nil
}

func (r *Resolver) findRegion(ctx context.Context, dir, name, ext string, c culture.Expression) (*FileInfo, error) {
	lang := c.RemoveRegion()

	steps := []struct {
		probe   func(context.Context, string, string, string, string, culture.Expression) (*FileInfo, error)
		token   string
		culture culture.Expression
	}{
		{r.probeFile, c.DisplayName(), c},       // name.ll-RR.ext
		{r.probeDir, c.DisplayName(), c},        // ll-RR/name.ext
		{r.probeFile, lang.DisplayName(), lang}, // name.ll.ext
		{r.probeDir, lang.DisplayName(), lang},  // ll/name.ext
	}

	for _, s := range steps {
		if info, err := s.probe(ctx, dir, name, ext, s.token, s.culture); info != nil || err != nil {
			return info, err
		}
	}
	return nil, nil
}

// probeFile checks dir/name.token.ext.
func (r *Resolver) probeFile(ctx context.Context, dir, name, ext, token string, c culture.Expression) (*FileInfo, error) {
	fileName := name + "." + token + "." + ext
	ok, err := r.isFile(ctx, provider.Join(dir, fileName))
	if err != nil || !ok {
		return nil, err
	}
	return newFileInfo(dir, fileName, name, ext, c), nil
}

// probeDir checks dir/token/name.ext.
func (r *Resolver) probeDir(ctx context.Context, dir, name, ext, token string, c culture.Expression) (*FileInfo, error) {
	fileName := name + "." + ext
	ok, err := r.isFile(ctx, provider.Join(dir, token, fileName))
	if err != nil || !ok {
		return nil, err
	}
	return newFileInfo(provider.Join(dir, token), fileName, name, ext, c), nil
}

// isFile reports whether p exists and is not a directory.
// A missing path is not an error.
func (r *Resolver) isFile(ctx context.Context, p string) (bool, error) {
	info, err := r.provider.Stat(ctx, p)
	if err != nil {
		if errors.Is(err, provider.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir, nil
}

// readDir lists dir, treating a missing directory or a file as empty.
func (r *Resolver) readDir(ctx context.Context, dir string) ([]provider.Info, error) {
	entries, err := r.provider.ReadDir(ctx, dir)
	if err != nil {
		if errors.Is(err, provider.ErrNotExist) || errors.Is(err, provider.ErrNotDir) {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}

func newFileInfo(dir, fileName, name, ext string, c culture.Expression) *FileInfo {
	return &FileInfo{
		RelativePath: provider.Join(dir, fileName),
		FileName:     fileName,
		Name:         name,
		Extension:    ext,
		Culture:      c,
	}
}

var _ Source = (*Resolver)(nil)
