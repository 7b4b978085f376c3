package cache

import (
	"container/list"
	"context"
	"sync"
)

// entry holds a cached value with its key.
type entry[V any] struct {
	value V
	key   string
}

// Memory is an in-memory cache bounded by an optional maximum entry count,
// evicting the least recently used entry when the bound is reached.
//
// It uses a hash map for O(1) lookups and a doubly-linked list for O(1)
// LRU eviction ordering. The most recently accessed items are at the
// front of the list; the least recently used are at the back.
type Memory[V any] struct {
	items    map[string]*list.Element
	eviction *list.List
	opts     *memoryOptions
	onEvict  func(key string, value V)
	mu       sync.Mutex
	closed   bool
}

// NewMemory creates a new in-memory cache.
//
// Example:
//
//	c := cache.NewMemory[string](cache.WithMaxEntries(100))
//	defer c.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Memory[V]{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		opts:     o,
	}
}

// SetEvictCallback sets a callback function that is called when items
// are evicted from the cache. This includes LRU eviction, manual deletion,
// and clearing. The callback runs with the cache lock held and must not
// call back into the cache.
func (m *Memory[V]) SetEvictCallback(fn func(key string, value V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Get retrieves a value by key.
// Returns ErrNotFound if the key does not exist.
// Accessing a key marks it as recently used for LRU purposes.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}

	// Move to front: mark as recently used.
	m.eviction.MoveToFront(elem)

	return elem.Value.(*entry[V]).value, nil
}

// Set stores a value. If the cache is at capacity and key is new,
// the least recently used entry is evicted first.
func (m *Memory[V]) Set(_ context.Context, key string, value V) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	// Update existing entry.
	if elem, ok := m.items[key]; ok {
		elem.Value.(*entry[V]).value = value
		m.eviction.MoveToFront(elem)
		return nil
	}

	// Evict LRU entries until there is room for one more.
	for m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		m.evictOldest()
	}

	// Insert new entry at front.
	elem := m.eviction.PushFront(&entry[V]{key: key, value: value})
	m.items[key] = elem

	return nil
}

// Delete removes a key from the cache.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[key]; ok {
		m.removeElement(elem)
	}

	return nil
}

// Has checks whether a key exists. It does not affect LRU order.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.items[key]
	return ok, nil
}

// Len returns the number of entries currently held.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Keys returns the cached keys from most to least recently used.
func (m *Memory[V]) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.items))
	for elem := m.eviction.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*entry[V]).key)
	}
	return keys
}

// Clear removes all entries from the cache.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if m.onEvict != nil {
		for _, elem := range m.items {
			e := elem.Value.(*entry[V])
			m.onEvict(e.key, e.value)
		}
	}

	m.items = make(map[string]*list.Element)
	m.eviction.Init()

	return nil
}

// Close marks the cache as closed. Reads keep working; writes return ErrClosed.
// Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	return nil
}

// evictOldest removes the least recently used entry.
// Caller must hold the mutex.
func (m *Memory[V]) evictOldest() {
	elem := m.eviction.Back()
	if elem != nil {
		m.removeElement(elem)
	}
}

// removeElement removes a specific element and triggers the eviction callback.
// Caller must hold the mutex.
func (m *Memory[V]) removeElement(elem *list.Element) {
	m.eviction.Remove(elem)
	e := elem.Value.(*entry[V])
	delete(m.items, e.key)

	if m.onEvict != nil {
		m.onEvict(e.key, e.value)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
