package resource

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/localize/pkg/culture"
	"github.com/dmitrymomot/localize/pkg/provider"
)

// Enumerate lists every resource in dir with extension ext available for requested.
//
// Files are collected in passes ordered from most to least specific; a logical
// name already found by an earlier pass is skipped by later ones, so each name
// appears once. For "en-US" the passes are:
//
//	X.en-US.ext   then   en-US/X.ext   then   X.en.ext   then   en/X.ext
//
// and for "en":
//
//	X.en.ext   then   en/X.ext   then   X.en-XX.ext   then   en-XX/X.ext
//
// Culture-neutral files and other cultures are not included.
// A missing dir yields an empty result.
func (r *Resolver) Enumerate(ctx context.Context, dir, ext string, requested culture.Expression) ([]FileInfo, error) {
	dir, ext = provider.Clean(dir), normalizeExt(ext)
	if requested.IsZero() {
		return []FileInfo{}, nil
	}

	entries, err := r.readDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	e := &enumeration{
		resolver: r,
		dir:      dir,
		ext:      ext,
		entries:  entries,
		seen:     make(map[string]struct{}),
		result:   []FileInfo{},
	}

	lang := requested.RemoveRegion()
	anyRegion := func(c culture.Expression) bool {
		return !c.IsAllRegion() && c.Language() == lang.Language()
	}

	first, second := requested.Equal, lang.Equal
	if requested.IsAllRegion() {
		first, second = lang.Equal, anyRegion
	}

	for _, match := range []func(culture.Expression) bool{first, second} {
		e.files(match)
		if err := e.dirs(ctx, match); err != nil {
			return nil, err
		}
	}

	r.logger.DebugContext(ctx, "resource: enumerated",
		slog.String("dir", dir),
		slog.String("ext", ext),
		slog.String("culture", requested.DisplayName()),
		slog.Int("count", len(e.result)),
	)

	return e.result, nil
}

type enumeration struct {
	resolver *Resolver
	dir      string
	ext      string
	entries  []provider.Info
	seen     map[string]struct{}
	result   []FileInfo
}

func (e *enumeration) add(dir, fileName, name string, c culture.Expression) {
	if _, ok := e.seen[name]; ok {
		return
	}
	e.seen[name] = struct{}{}
	e.result = append(e.result, *newFileInfo(dir, fileName, name, e.ext, c))
}

// files collects dir/X.token.ext entries whose token satisfies match.
func (e *enumeration) files(match func(culture.Expression) bool) {
	for _, entry := range e.entries {
		if entry.IsDir {
			continue
		}
		name, token, ok := splitFileName(entry.Name, e.ext)
		if !ok || token == "" {
			continue
		}
		c, ok := parseToken(token)
		if !ok || !match(c) {
			continue
		}
		e.add(e.dir, entry.Name, name, c)
	}
}

// dirs collects dir/token/X.ext entries from culture directories whose token satisfies match.
func (e *enumeration) dirs(ctx context.Context, match func(culture.Expression) bool) error {
	for _, entry := range e.entries {
		if !entry.IsDir {
			continue
		}
		c, ok := parseToken(entry.Name)
		if !ok || !match(c) {
			continue
		}

		sub := provider.Join(e.dir, entry.Name)
		children, err := e.resolver.readDir(ctx, sub)
		if err != nil {
			return err
		}
		for _, child := range children {
			if child.IsDir {
				continue
			}
			// The culture is carried by the directory, so the whole base name is logical.
			name, ok := strings.CutSuffix(child.Name, "."+e.ext)
			if !ok || name == "" {
				continue
			}
			e.add(sub, child.Name, name, c)
		}
	}
	return nil
}
