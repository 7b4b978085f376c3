package cache_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localize/pkg/cache"
)

func TestPaged_Get(t *testing.T) {
	t.Parallel()

	t.Run("computes once per page and key", func(t *testing.T) {
		t.Parallel()

		p := cache.NewPaged(4, cache.MemoryPages[string](8))
		ctx := context.Background()

		var calls atomic.Int64
		compute := func(v string) func(context.Context) (string, error) {
			return func(context.Context) (string, error) {
				calls.Add(1)
				return v, nil
			}
		}

		for range 3 {
			v, err := p.Get(ctx, "en-US", "Views/page.?.html", compute("page.en-US.html"))
			require.NoError(t, err)
			require.Equal(t, "page.en-US.html", v)
		}
		require.Equal(t, int64(1), calls.Load())

		// Same inner key on another page is computed separately.
		v, err := p.Get(ctx, "fr", "Views/page.?.html", compute("page.fr.html"))
		require.NoError(t, err)
		require.Equal(t, "page.fr.html", v)
		require.Equal(t, int64(2), calls.Load())
		require.Equal(t, 2, p.Len())
	})

	t.Run("caches not found results", func(t *testing.T) {
		t.Parallel()

		type info struct{ path string }
		p := cache.NewPaged(4, cache.MemoryPages[*info](8))
		ctx := context.Background()

		var calls atomic.Int64
		for range 3 {
			v, err := p.Get(ctx, "de-DE", "Views/missing.?.html", func(context.Context) (*info, error) {
				calls.Add(1)
				return nil, nil
			})
			require.NoError(t, err)
			require.Nil(t, v)
		}
		require.Equal(t, int64(1), calls.Load())
	})

	t.Run("does not cache errors", func(t *testing.T) {
		t.Parallel()

		p := cache.NewPaged(4, cache.MemoryPages[int](8))
		ctx := context.Background()
		boom := errors.New("boom")

		_, err := p.Get(ctx, "en", "k", func(context.Context) (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)

		v, err := p.Get(ctx, "en", "k", func(context.Context) (int, error) { return 7, nil })
		require.NoError(t, err)
		require.Equal(t, 7, v)
	})

	t.Run("bounds pages and entries", func(t *testing.T) {
		t.Parallel()

		const pages, entries = 3, 5
		var created []*cache.Memory[int]
		var mu sync.Mutex
		p := cache.NewPaged(pages, func(string) cache.Cache[int] {
			m := cache.NewMemory[int](cache.WithMaxEntries(entries))
			mu.Lock()
			created = append(created, m)
			mu.Unlock()
			return m
		})
		ctx := context.Background()

		for c := range 10 {
			for k := range 50 {
				_, err := p.Get(ctx, fmt.Sprintf("c%d", c), fmt.Sprintf("k%d", k), func(context.Context) (int, error) {
					return k, nil
				})
				require.NoError(t, err)
			}
			require.LessOrEqual(t, p.Len(), pages)
		}

		require.Len(t, created, 10)
		for _, m := range created {
			require.LessOrEqual(t, m.Len(), entries)
		}
	})
}

func TestPaged_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := cache.NewPaged(4, cache.MemoryPages[string](8))

	var calls atomic.Int64
	get := func(outer string) {
		_, err := p.Get(ctx, outer, "k", func(context.Context) (string, error) {
			calls.Add(1)
			return outer, nil
		})
		require.NoError(t, err)
	}

	get("en")
	get("fr")
	require.Equal(t, int64(2), calls.Load())

	require.NoError(t, p.Clear(ctx, "en"))
	require.Equal(t, 1, p.Len())

	get("fr")
	require.Equal(t, int64(2), calls.Load(), "other pages are unaffected")
	get("en")
	require.Equal(t, int64(3), calls.Load(), "cleared page is rebuilt")

	require.NoError(t, p.Clear(ctx, "never-created"))

	require.NoError(t, p.ClearAll(ctx))
	require.Zero(t, p.Len())
	get("fr")
	require.Equal(t, int64(4), calls.Load())
}

func TestPaged_Concurrent(t *testing.T) {
	t.Parallel()

	p := cache.NewPaged(8, cache.MemoryPages[int](16))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Go(func() {
			outer := fmt.Sprintf("c%d", i%4)
			v, err := p.Get(ctx, outer, "k", func(context.Context) (int, error) {
				return i % 4, nil
			})
			require.NoError(t, err)
			require.Equal(t, i%4, v)
		})
	}
	wg.Wait()

	require.Equal(t, 4, p.Len())
}
