package cache_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localize/pkg/cache"
)

// --- Memory: Get / Set ---

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrNotFound for missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(context.Background(), "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("stores and overwrites values", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", 1))
		require.NoError(t, c.Set(ctx, "key", 2))

		val, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, 2, val)
		require.Equal(t, 1, c.Len())
	})

	t.Run("nil values are entries", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[*string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "absent", nil))

		has, err := c.Has(ctx, "absent")
		require.NoError(t, err)
		require.True(t, has)

		val, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		require.Nil(t, val)
	})

	t.Run("writes fail after Close", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		ctx := context.Background()
		require.ErrorIs(t, c.Set(ctx, "key", "value"), cache.ErrClosed)
		require.ErrorIs(t, c.Delete(ctx, "key"), cache.ErrClosed)
		require.ErrorIs(t, c.Clear(ctx), cache.ErrClosed)
	})
}

// --- Memory: Delete / Clear ---

func TestMemory_DeleteClear(t *testing.T) {
	t.Parallel()

	t.Run("delete removes existing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value"))
		require.NoError(t, c.Delete(ctx, "key"))
		require.NoError(t, c.Delete(ctx, "missing"))

		_, err := c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("clear removes all entries", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", "1"))
		require.NoError(t, c.Set(ctx, "b", "2"))
		require.NoError(t, c.Clear(ctx))

		require.Zero(t, c.Len())
		has, _ := c.Has(ctx, "a")
		require.False(t, has)
	})
}

// --- Memory: MaxEntries / LRU ---

func TestMemory_MaxEntries(t *testing.T) {
	t.Parallel()

	t.Run("never grows beyond capacity", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(10))
		defer c.Close()

		ctx := context.Background()
		for i := range 1000 {
			require.NoError(t, c.Set(ctx, fmt.Sprintf("key-%d", i), i))
			require.LessOrEqual(t, c.Len(), 10)
		}
		require.Equal(t, 10, c.Len())

		// The most recent keys survive.
		val, err := c.Get(ctx, "key-999")
		require.NoError(t, err)
		require.Equal(t, 999, val)

		_, err = c.Get(ctx, "key-989")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("get marks entry as recently used", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithMaxEntries(2))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", "1"))
		require.NoError(t, c.Set(ctx, "b", "2"))

		_, err := c.Get(ctx, "a")
		require.NoError(t, err)

		// Add "c": evicts "b" (LRU), not "a".
		require.NoError(t, c.Set(ctx, "c", "3"))

		has, _ := c.Has(ctx, "a")
		require.True(t, has, "a should still exist (recently used)")
		has, _ = c.Has(ctx, "b")
		require.False(t, has, "b should have been evicted")

		require.Equal(t, []string{"c", "a"}, c.Keys())
	})

	t.Run("overwrite does not count as new entry", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(2))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", 1))
		require.NoError(t, c.Set(ctx, "b", 2))
		require.NoError(t, c.Set(ctx, "a", 10))

		val, err := c.Get(ctx, "b")
		require.NoError(t, err)
		require.Equal(t, 2, val)
	})

	t.Run("unlimited by default", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		for i := range 500 {
			require.NoError(t, c.Set(ctx, fmt.Sprintf("key-%d", i), i))
		}
		require.Equal(t, 500, c.Len())
	})
}

// --- Memory: Eviction Callback ---

func TestMemory_EvictCallback(t *testing.T) {
	t.Parallel()

	t.Run("called on LRU eviction", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(2))
		defer c.Close()

		evicted := make(map[string]int)
		c.SetEvictCallback(func(key string, value int) {
			evicted[key] = value
		})

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", 1))
		require.NoError(t, c.Set(ctx, "b", 2))
		require.NoError(t, c.Set(ctx, "c", 3))

		require.Equal(t, map[string]int{"a": 1}, evicted)
	})

	t.Run("called on Delete and Clear", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		evicted := make(map[string]int)
		c.SetEvictCallback(func(key string, value int) {
			evicted[key] = value
		})

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", 1))
		require.NoError(t, c.Set(ctx, "b", 2))
		require.NoError(t, c.Delete(ctx, "a"))
		require.Equal(t, map[string]int{"a": 1}, evicted)

		require.NoError(t, c.Clear(ctx))
		require.Equal(t, map[string]int{"a": 1, "b": 2}, evicted)
	})
}

// --- Memory: Concurrent Access ---

func TestMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[int](cache.WithMaxEntries(16))
	defer c.Close()

	ctx := context.Background()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Go(func() {
			_ = c.Set(ctx, fmt.Sprintf("key-%d", i%20), i)
		})
	}
	for i := range 50 {
		wg.Go(func() {
			_, _ = c.Get(ctx, fmt.Sprintf("key-%d", i%20))
		})
	}
	for range 10 {
		wg.Go(func() {
			_ = c.Delete(ctx, "key-1")
		})
	}

	wg.Wait()
	require.LessOrEqual(t, c.Len(), 16)
}

// --- GetOrSet ---

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("returns cached value on hit", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "cached"))

		val, err := cache.GetOrSet(ctx, c, "key", func(_ context.Context) (string, error) {
			t.Fatal("fn should not be called on cache hit")
			return "", nil
		})
		require.NoError(t, err)
		require.Equal(t, "cached", val)
	})

	t.Run("computes once across repeated gets", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		var calls atomic.Int64
		for range 5 {
			val, err := cache.GetOrSet(ctx, c, "key", func(_ context.Context) (string, error) {
				calls.Add(1)
				return "computed", nil
			})
			require.NoError(t, err)
			require.Equal(t, "computed", val)
		}
		require.Equal(t, int64(1), calls.Load())
	})

	t.Run("caches nil results", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[[]string]()
		defer c.Close()

		ctx := context.Background()
		var calls atomic.Int64
		for range 3 {
			val, err := cache.GetOrSet(ctx, c, "empty", func(_ context.Context) ([]string, error) {
				calls.Add(1)
				return nil, nil
			})
			require.NoError(t, err)
			require.Nil(t, val)
		}
		require.Equal(t, int64(1), calls.Load())
	})

	t.Run("returns error from fn without caching", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		testErr := errors.New("compute failed")

		_, err := cache.GetOrSet(ctx, c, "key", func(_ context.Context) (string, error) {
			return "", testErr
		})
		require.ErrorIs(t, err, testErr)

		_, err = c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("same key in different caches is not shared", func(t *testing.T) {
		t.Parallel()

		a := cache.NewMemory[string]()
		b := cache.NewMemory[string]()
		ctx := context.Background()

		va, err := cache.GetOrSet(ctx, a, "key", func(_ context.Context) (string, error) { return "a", nil })
		require.NoError(t, err)
		vb, err := cache.GetOrSet(ctx, b, "key", func(_ context.Context) (string, error) { return "b", nil })
		require.NoError(t, err)

		require.Equal(t, "a", va)
		require.Equal(t, "b", vb)
	})

	t.Run("deduplicates concurrent calls", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		var calls atomic.Int64
		var wg sync.WaitGroup

		for range 10 {
			wg.Go(func() {
				val, err := cache.GetOrSet(ctx, c, "dedup", func(_ context.Context) (int, error) {
					calls.Add(1)
					time.Sleep(10 * time.Millisecond) // Simulate slow computation.
					return 42, nil
				})
				require.NoError(t, err)
				require.Equal(t, 42, val)
			})
		}

		wg.Wait()

		// A late goroutine may miss the flight but then hits the stored value.
		require.LessOrEqual(t, calls.Load(), int64(2),
			"fn should be called at most twice due to singleflight dedup")
	})

	t.Run("cancelled caller does not fail waiters", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		type ctxKey struct{}
		leaderCtx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "leader"))
		started := make(chan struct{})
		release := make(chan struct{})

		fn := func(ctx context.Context) (int, error) {
			close(started)
			<-release
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			require.Equal(t, "leader", ctx.Value(ctxKey{}))
			return 7, nil
		}

		var wg sync.WaitGroup
		wg.Go(func() {
			val, err := cache.GetOrSet(leaderCtx, c, "key", fn)
			require.NoError(t, err)
			require.Equal(t, 7, val)
		})

		<-started
		wg.Go(func() {
			val, err := cache.GetOrSet(context.Background(), c, "key", func(context.Context) (int, error) {
				return 0, errors.New("follower must not compute")
			})
			require.NoError(t, err)
			require.Equal(t, 7, val)
		})

		time.Sleep(10 * time.Millisecond)
		cancel()
		close(release)
		wg.Wait()
	})
}

// --- JSON Marshaler ---

func TestJSONMarshaler(t *testing.T) {
	t.Parallel()

	type info struct {
		Name    string `json:"name"`
		Culture string `json:"culture"`
	}

	m := cache.JSONMarshaler[*info]()

	t.Run("round trips pointers", func(t *testing.T) {
		t.Parallel()

		data, err := m.Marshal(&info{Name: "page", Culture: "en-US"})
		require.NoError(t, err)

		v, err := m.Unmarshal(data)
		require.NoError(t, err)
		require.Equal(t, &info{Name: "page", Culture: "en-US"}, v)
	})

	t.Run("nil encodes as null", func(t *testing.T) {
		t.Parallel()

		data, err := m.Marshal(nil)
		require.NoError(t, err)
		require.Equal(t, "null", string(data))

		v, err := m.Unmarshal(data)
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("wraps decode errors", func(t *testing.T) {
		t.Parallel()

		_, err := m.Unmarshal([]byte("{"))
		require.ErrorIs(t, err, cache.ErrUnmarshal)
	})
}
