package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultMaxEntries bounds a Memory cache unless WithMaxEntries says
// otherwise.
const DefaultMaxEntries = 10000

// Memory is an in-process cache with per-entry expiry. When full it evicts
// the least recently used entry.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	lru        *list.List // front is most recently used; values are keys
	maxEntries int
	closed     bool
	done       chan struct{}
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
	elem      *list.Element
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryOption configures Memory.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	cleanupInterval time.Duration
	maxEntries      int
}

// WithCleanupInterval sets how often expired entries are swept.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(c *memoryConfig) {
		if d > 0 {
			c.cleanupInterval = d
		}
	}
}

// WithMaxEntries caps the number of stored entries. A value of zero or less
// removes the cap. Default: DefaultMaxEntries.
func WithMaxEntries(n int) MemoryOption {
	return func(c *memoryConfig) {
		c.maxEntries = n
	}
}

// NewMemory creates a Memory cache and starts its sweeper. Call Close to
// stop it.
func NewMemory(opts ...MemoryOption) *Memory {
	cfg := &memoryConfig{cleanupInterval: time.Minute, maxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Memory{
		entries:    make(map[string]*memoryEntry),
		lru:        list.New(),
		maxEntries: cfg.maxEntries,
		done:       make(chan struct{}),
	}
	go m.cleanupLoop(cfg.cleanupInterval)
	return m
}

// Get returns a copy of the cached value and marks it as recently used.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, false, ErrClosed{}
	}

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(time.Now()) {
		m.removeLocked(key, e)
		return nil, false, nil
	}
	m.lru.MoveToFront(e.elem)

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

// Set stores a copy of value, evicting the least recently used entry if the
// cache is full.
func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed{}
	}

	e := &memoryEntry{value: make([]byte, len(value))}
	copy(e.value, value)
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	if old, ok := m.entries[key]; ok {
		e.elem = old.elem
		m.lru.MoveToFront(e.elem)
	} else {
		e.elem = m.lru.PushFront(key)
	}
	m.entries[key] = e

	for m.maxEntries > 0 && len(m.entries) > m.maxEntries {
		m.evictOldestLocked()
	}
	return nil
}

// Delete removes key.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed{}
	}
	if e, ok := m.entries[key]; ok {
		m.removeLocked(key, e)
	}
	return nil
}

// Close stops the sweeper and drops all entries.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	m.entries = nil
	m.lru.Init()
	return nil
}

// Len returns the number of stored entries, including expired entries not
// yet swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.done:
			return
		}
	}
}

func (m *Memory) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	now := time.Now()
	for key, e := range m.entries {
		if e.expired(now) {
			m.removeLocked(key, e)
		}
	}
}

// evictOldestLocked drops the least recently used entry (must be called
// with the lock held).
func (m *Memory) evictOldestLocked() {
	back := m.lru.Back()
	if back == nil {
		return
	}
	key := back.Value.(string)
	m.removeLocked(key, m.entries[key])
}

func (m *Memory) removeLocked(key string, e *memoryEntry) {
	if e != nil && e.elem != nil {
		m.lru.Remove(e.elem)
	}
	delete(m.entries, key)
}
