package resource_test

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localize/pkg/cache"
	"github.com/dmitrymomot/localize/pkg/culture"
	"github.com/dmitrymomot/localize/pkg/provider"
	"github.com/dmitrymomot/localize/pkg/resource"
)

// countingProvider records how many times the content root is touched.
type countingProvider struct {
	provider.Provider
	calls atomic.Int64
}

func (c *countingProvider) Stat(ctx context.Context, p string) (provider.Info, error) {
	c.calls.Add(1)
	return c.Provider.Stat(ctx, p)
}

func (c *countingProvider) ReadDir(ctx context.Context, p string) ([]provider.Info, error) {
	c.calls.Add(1)
	return c.Provider.ReadDir(ctx, p)
}

func (c *countingProvider) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	c.calls.Add(1)
	return c.Provider.Open(ctx, p)
}

func newCached(t *testing.T, opts ...resource.CachedOption) (*resource.Cached, *countingProvider) {
	t.Helper()

	p := &countingProvider{Provider: newProvider(
		"Views/page.en-US.html",
		"Views/page.en.html",
		"Views/page.html",
		"Strings/a.en.json",
		"Strings/a.en-US.json",
		"Strings/b.fr.json",
	)}
	opt := culture.MustNewOption("en", []string{"en", "fr"})
	return resource.NewCached(resource.NewResolver(p, opt), opts...), p
}

func TestCached_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("resolves once per culture and key", func(t *testing.T) {
		t.Parallel()

		c, p := newCached(t)
		ctx := context.Background()

		info, err := c.Resolve(ctx, "Views", "page", "html", culture.MustParse("en-US"))
		require.NoError(t, err)
		require.Equal(t, "Views/page.en-US.html", info.RelativePath)

		calls := p.calls.Load()
		require.Positive(t, calls)

		for range 5 {
			info, err = c.Resolve(ctx, "Views", "page", "html", culture.MustParse("en-US"))
			require.NoError(t, err)
			require.Equal(t, "Views/page.en-US.html", info.RelativePath)
		}
		require.Equal(t, calls, p.calls.Load())

		info, err = c.Resolve(ctx, "Views", "page", "html", culture.MustParse("en-GB"))
		require.NoError(t, err)
		require.Equal(t, "Views/page.en.html", info.RelativePath)
		require.Greater(t, p.calls.Load(), calls)
	})

	t.Run("caches not found", func(t *testing.T) {
		t.Parallel()

		c, p := newCached(t)
		ctx := context.Background()

		info, err := c.Resolve(ctx, "Views", "missing", "html", culture.MustParse("fr"))
		require.NoError(t, err)
		require.Nil(t, info)

		calls := p.calls.Load()
		info, err = c.Resolve(ctx, "Views", "missing", "html", culture.MustParse("fr"))
		require.NoError(t, err)
		require.Nil(t, info)
		require.Equal(t, calls, p.calls.Load())
	})

	t.Run("returns copies", func(t *testing.T) {
		t.Parallel()

		c, _ := newCached(t)
		ctx := context.Background()

		info, err := c.Resolve(ctx, "Views", "page", "html", culture.MustParse("en"))
		require.NoError(t, err)
		info.RelativePath = "changed"

		again, err := c.Resolve(ctx, "Views", "page", "html", culture.MustParse("en"))
		require.NoError(t, err)
		require.Equal(t, "Views/page.en.html", again.RelativePath)
	})

	t.Run("concurrent callers", func(t *testing.T) {
		t.Parallel()

		c, _ := newCached(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for range 20 {
			wg.Go(func() {
				info, err := c.Resolve(ctx, "Views", "page", "html", culture.MustParse("en-US"))
				require.NoError(t, err)
				require.Equal(t, "en-US", info.Culture.DisplayName())
			})
		}
		wg.Wait()
	})
}

func TestCached_Enumerate(t *testing.T) {
	t.Parallel()

	c, p := newCached(t)
	ctx := context.Background()

	files, err := c.Enumerate(ctx, "Strings", "json", culture.MustParse("en-US"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "Strings/a.en-US.json", files[0].RelativePath)

	calls := p.calls.Load()
	files[0].RelativePath = "changed"

	files, err = c.Enumerate(ctx, "Strings", "json", culture.MustParse("en-US"))
	require.NoError(t, err)
	require.Equal(t, "Strings/a.en-US.json", files[0].RelativePath)
	require.Equal(t, calls, p.calls.Load())

	files, err = c.Enumerate(ctx, "Strings", "json", culture.MustParse("de"))
	require.NoError(t, err)
	require.NotNil(t, files)
	require.Empty(t, files)
}

func TestCached_Clear(t *testing.T) {
	t.Parallel()

	c, p := newCached(t)
	ctx := context.Background()
	en, fr := culture.MustParse("en"), culture.MustParse("fr")

	warm := func() {
		_, err := c.Resolve(ctx, "Views", "page", "html", en)
		require.NoError(t, err)
		_, err = c.Enumerate(ctx, "Strings", "json", fr)
		require.NoError(t, err)
	}

	warm()
	calls := p.calls.Load()

	require.NoError(t, c.Clear(ctx, en))
	warm()
	afterClear := p.calls.Load()
	require.Greater(t, afterClear, calls, "cleared culture is recomputed")

	warm()
	require.Equal(t, afterClear, p.calls.Load(), "other cultures stay cached")

	require.NoError(t, c.ClearAll(ctx))
	warm()
	require.Greater(t, p.calls.Load(), afterClear)
}

func TestCached_CustomPages(t *testing.T) {
	t.Parallel()

	var created atomic.Int64
	factory := func(string) cache.Cache[*resource.FileInfo] {
		created.Add(1)
		return cache.NewMemory[*resource.FileInfo](cache.WithMaxEntries(1))
	}

	c, _ := newCached(t, resource.WithFilePages(factory), resource.WithCultureCapacity(1))
	ctx := context.Background()

	for _, name := range []string{"en", "en-US", "en"} {
		_, err := c.Resolve(ctx, "Views", "page", "html", culture.MustParse(name))
		require.NoError(t, err)
	}
	require.Equal(t, int64(3), created.Load(), "one culture page is kept, so returning to en rebuilds it")
}
