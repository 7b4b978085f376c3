package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dmitrymomot/localize/pkg/cache"
	"github.com/dmitrymomot/localize/pkg/culture"
	"github.com/dmitrymomot/localize/pkg/provider"
	"github.com/dmitrymomot/localize/pkg/resource"
	"github.com/dmitrymomot/localize/pkg/sanitizer"
)

// ErrRenderFailed wraps markdown conversion and layout failures.
var ErrRenderFailed = errors.New("view: render failed")

// DefaultCacheSize is how many parsed views are kept.
const DefaultCacheSize = 256

const defaultLayout = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Content}}
</body>
</html>
`

// Page is the data passed to the layout. Title is plain text; the layout
// escapes it.
type Page struct {
	Meta    map[string]any
	Lang    string
	Title   string
	Path    string
	Content template.HTML
}

type parsedView struct {
	meta    map[string]any
	content template.HTML
}

// Renderer turns resolved markdown views into HTML pages.
// Parsed views are cached by relative path.
type Renderer struct {
	provider provider.Provider
	md       goldmark.Markdown
	layout   *template.Template
	views    *cache.Memory[*parsedView]
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLayout replaces the default HTML layout. The layout receives a Page.
func WithLayout(t *template.Template) Option {
	return func(r *Renderer) {
		if t != nil {
			r.layout = t
		}
	}
}

// WithCacheSize sets how many parsed views are kept. Default: 256.
func WithCacheSize(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.views = cache.NewMemory[*parsedView](cache.WithMaxEntries(n))
		}
	}
}

// NewRenderer creates a renderer reading views from p.
func NewRenderer(p provider.Provider, opts ...Option) *Renderer {
	r := &Renderer{
		provider: p,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
		layout:   template.Must(template.New("layout").Parse(defaultLayout)),
		views:    cache.NewMemory[*parsedView](cache.WithMaxEntries(DefaultCacheSize)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the page for info. The page language is the culture the view
// was matched for, or requested for a culture-neutral view.
func (r *Renderer) Render(ctx context.Context, w io.Writer, info *resource.FileInfo, requested culture.Expression) error {
	v, err := cache.GetOrSet(ctx, r.views, info.RelativePath, func(ctx context.Context) (*parsedView, error) {
		return r.parse(ctx, info.RelativePath)
	})
	if err != nil {
		return err
	}

	lang := requested
	if info.HasCulture() {
		lang = info.Culture
	}

	title, _ := v.meta["title"].(string)
	if title == "" {
		title = info.Name
	}

	page := Page{
		Meta:    v.meta,
		Lang:    lang.DisplayName(),
		Title:   sanitizer.StripTags(title),
		Path:    info.RelativePath,
		Content: v.content,
	}

	var buf bytes.Buffer
	if err := r.layout.Execute(&buf, page); err != nil {
		return fmt.Errorf("%w: layout: %v", ErrRenderFailed, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// Invalidate drops every parsed view.
func (r *Renderer) Invalidate(ctx context.Context) error {
	return r.views.Clear(ctx)
}

func (r *Renderer) parse(ctx context.Context, p string) (*parsedView, error) {
	rc, err := r.provider.Open(ctx, p)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}

	meta, body, err := splitFrontmatter(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	var out bytes.Buffer
	if err := r.md.Convert(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, p, err)
	}

	return &parsedView{
		meta:    meta,
		content: template.HTML(sanitizer.Content(out.String())), //nolint:gosec // sanitized above
	}, nil
}
