package codematch

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/localize/pkg/cache"
	"github.com/dmitrymomot/localize/pkg/content"
	"github.com/dmitrymomot/localize/pkg/culture"
	"github.com/dmitrymomot/localize/pkg/provider"
	"github.com/dmitrymomot/localize/pkg/resource"
)

// CodedItem is a value whose display name is looked up by code.
type CodedItem interface {
	Code() string
	DefaultName() string
	SetDisplayName(name string)
}

// Matcher resolves display names of codes from culture-specific string tables.
//
// For each requested culture the matching tables are enumerated, parsed and
// merged once into a culture page; code lookups are then served from the
// page's bounded cache. A table maps codes to objects with a "name" field:
//
//	{"US": {"name": "United States"}, "FR": {"name": "France"}}
type Matcher struct {
	source   resource.Source
	provider provider.Provider
	pages    *cache.Memory[*page]
	opts     *options
}

// page is the merged content of one culture plus its lookup cache.
// It is fully built before it is published and never mutated afterwards.
type page struct {
	tree  *content.Node
	names *cache.Memory[lookup]
}

type lookup struct {
	name  string
	found bool
}

// New creates a matcher enumerating tables through src and reading them from p.
// Pass a *resource.Cached as src to avoid rescanning the content root.
func New(src resource.Source, p provider.Provider, opts ...Option) *Matcher {
	o := newOptions(opts...)
	return &Matcher{
		source:   src,
		provider: p,
		pages:    cache.NewMemory[*page](cache.WithMaxEntries(o.cultures)),
		opts:     o,
	}
}

// DisplayName returns the display name of code for the requested culture,
// or defaultName when no table defines "<code>.name".
// Content errors are logged and resolve to defaultName.
func (m *Matcher) DisplayName(ctx context.Context, requested culture.Expression, code, defaultName string) string {
	pg, err := cache.GetOrSet(ctx, m.pages, requested.DisplayName(), func(ctx context.Context) (*page, error) {
		return m.build(ctx, requested)
	})
	if err != nil {
		m.opts.logger.ErrorContext(ctx, "codematch: failed to build culture page",
			slog.String("culture", requested.DisplayName()),
			slog.String("error", err.Error()),
		)
		return defaultName
	}

	res, _ := cache.GetOrSet(ctx, pg.names, code, func(context.Context) (lookup, error) {
		return m.lookup(pg.tree, code), nil
	})
	if !res.found {
		return defaultName
	}
	return res.name
}

// Match sets the display name of item for the requested culture.
func (m *Matcher) Match(ctx context.Context, requested culture.Expression, item CodedItem) {
	item.SetDisplayName(m.DisplayName(ctx, requested, item.Code(), item.DefaultName()))
}

// MatchAll sets the display names of all items for the requested culture.
func MatchAll[T CodedItem](ctx context.Context, m *Matcher, requested culture.Expression, items []T) {
	for _, item := range items {
		m.Match(ctx, requested, item)
	}
}

// Clear drops the culture page of requested.
func (m *Matcher) Clear(ctx context.Context, requested culture.Expression) error {
	return m.pages.Delete(ctx, requested.DisplayName())
}

// ClearAll drops every culture page.
func (m *Matcher) ClearAll(ctx context.Context) error {
	return m.pages.Clear(ctx)
}

func (m *Matcher) lookup(tree *content.Node, code string) lookup {
	path := code + ".name"

	var (
		node *content.Node
		ok   bool
	)
	if m.opts.caseSensitive {
		node, ok = tree.Lookup(path)
	} else {
		node, ok = tree.LookupFold(path)
	}
	if !ok || node.Kind() != content.Scalar {
		return lookup{}
	}
	return lookup{name: node.Value(), found: true}
}

// build enumerates, parses and merges every table of the requested culture.
// Tables are merged from lowest to highest priority so higher priority values win.
func (m *Matcher) build(ctx context.Context, requested culture.Expression) (*page, error) {
	var files []resource.FileInfo
	for _, ext := range m.opts.extensions {
		list, err := m.source.Enumerate(ctx, m.opts.dir, ext, requested)
		if err != nil {
			return nil, fmt.Errorf("enumerate %s/*.%s: %w", m.opts.dir, ext, err)
		}
		files = append(files, list...)
	}

	tree := content.NewMap(nil)
	for _, f := range slices.Backward(files) {
		node, err := m.parse(ctx, f)
		if err != nil {
			m.opts.logger.WarnContext(ctx, "codematch: skipping string table",
				slog.String("file", f.RelativePath),
				slog.String("culture", requested.DisplayName()),
				slog.String("error", err.Error()),
			)
			continue
		}
		if node.Kind() != content.Map {
			if !node.IsNull() {
				m.opts.logger.WarnContext(ctx, "codematch: string table is not an object",
					slog.String("file", f.RelativePath),
					slog.String("kind", node.Kind().String()),
				)
			}
			continue
		}
		tree = content.Merge(tree, node)
	}

	m.opts.logger.DebugContext(ctx, "codematch: culture page built",
		slog.String("culture", requested.DisplayName()),
		slog.Int("files", len(files)),
	)

	return &page{
		tree:  tree,
		names: cache.NewMemory[lookup](cache.WithMaxEntries(m.opts.pageSize)),
	}, nil
}

func (m *Matcher) parse(ctx context.Context, f resource.FileInfo) (*content.Node, error) {
	p, err := m.parser(f.Extension)
	if err != nil {
		return nil, err
	}

	r, err := m.provider.Open(ctx, f.RelativePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return p.Parse(r)
}

func (m *Matcher) parser(ext string) (content.Parser, error) {
	if p, ok := m.opts.parsers[strings.ToLower(ext)]; ok {
		return p, nil
	}
	return content.ForExtension(ext, !m.opts.caseSensitive)
}
