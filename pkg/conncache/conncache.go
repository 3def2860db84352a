// Package conncache maintains a bounded pool of live database handles keyed
// by connection string.
//
// Repeated queries against the same database reuse one handle instead of
// reconnecting per request. Concurrent first acquisitions of the same key
// collapse into a single dial. The cache is bounded: when full, the least
// recently used idle handle is evicted, and if every handle is in use the
// acquisition fails with ErrCacheFull.
package conncache

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/driver"
)

var (
	// ErrCacheFull is returned when the cache is at capacity and every
	// handle is checked out.
	ErrCacheFull = errors.New("connection cache full")

	// ErrClosed is returned by Acquire after Shutdown.
	ErrClosed = errors.New("connection cache closed")
)

const defaultMaxClients = 16

// Options configures a Cache.
type Options struct {
	// MaxClients caps the number of cached handles. Zero means 16.
	MaxClients int

	// IdleTimeout is the age past which EvictIdle closes an unused handle.
	// Zero disables age-based eviction.
	IdleTimeout time.Duration

	// Logger for cache events. Nil means discard.
	Logger *slog.Logger
}

// Cache is a bounded, reference-counted cache of database handles.
type Cache struct {
	opts   Options
	logger *slog.Logger
	group  singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
	closed  bool
}

type entry struct {
	key      string
	engine   core.Engine
	db       *sql.DB
	refs     int
	lastUsed time.Time

	// reserved marks the ref pre-counted by dial so a fresh entry is never
	// at refs 0 before its acquirer claims it. The first claim consumes the
	// reservation instead of incrementing.
	reserved bool
}

// Client is a checked-out handle. Callers must Release it when done.
type Client struct {
	db    *sql.DB
	key   string
	cache *Cache
}

// DB returns the underlying handle.
func (c *Client) DB() *sql.DB { return c.db }

// Release returns the handle to the cache.
func (c *Client) Release() { c.cache.release(c.key) }

// New creates a Cache.
func New(opts Options) *Cache {
	if opts.MaxClients <= 0 {
		opts.MaxClients = defaultMaxClients
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cache{
		opts:    opts,
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// Acquire returns a live handle for the connection string, dialing on first
// use. Concurrent acquisitions of the same key share one dial. Failed dials
// are not cached, so the next acquisition retries.
func (c *Cache) Acquire(ctx context.Context, engine core.Engine, connString string) (*Client, error) {
	key := string(engine) + "\x00" + connString

	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return nil, ErrClosed
		}
		if e, ok := c.entries[key]; ok {
			if e.reserved {
				e.reserved = false
			} else {
				e.refs++
			}
			e.lastUsed = time.Now()
			c.mu.Unlock()
			return &Client{db: e.db, key: key, cache: c}, nil
		}
		c.mu.Unlock()

		if _, err, _ := c.group.Do(key, func() (any, error) {
			return c.dial(ctx, engine, connString, key)
		}); err != nil {
			return nil, err
		}
		// The handle is always claimed from the map under the lock, never
		// from the flight result: an entry evicted between the dial and the
		// claim is simply dialed again.
	}
}

// dial opens a connection and inserts it, evicting an idle entry when the
// cache is full.
func (c *Cache) dial(ctx context.Context, engine core.Engine, connString, key string) (*entry, error) {
	c.mu.Lock()
	// A racing Acquire may have inserted between the fast-path check and
	// the singleflight call.
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return e, nil
	}
	c.mu.Unlock()

	db, err := driver.Open(ctx, engine, connString, c.logger)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		_ = db.Close()
		return nil, ErrClosed
	}

	if len(c.entries) >= c.opts.MaxClients {
		if !c.evictOldestIdleLocked() {
			_ = db.Close()
			return nil, ErrCacheFull
		}
	}

	e := &entry{key: key, engine: engine, db: db, refs: 1, reserved: true, lastUsed: time.Now()}
	c.entries[key] = e
	c.logger.Debug("cached connection",
		slog.String("engine", string(engine)), slog.Int("size", len(c.entries)))
	return e, nil
}

func (c *Cache) release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && e.refs > 0 {
		e.refs--
		e.lastUsed = time.Now()
	}
}

// evictOldestIdleLocked closes the least recently used entry with no
// checked-out clients. Returns false when every entry is in use.
func (c *Cache) evictOldestIdleLocked() bool {
	var victim *entry
	for _, e := range c.entries {
		if e.refs > 0 {
			continue
		}
		if victim == nil || e.lastUsed.Before(victim.lastUsed) {
			victim = e
		}
	}
	if victim == nil {
		return false
	}
	delete(c.entries, victim.key)
	_ = victim.db.Close()
	c.logger.Debug("evicted idle connection", slog.String("engine", string(victim.engine)))
	return true
}

// EvictIdle closes handles that have been unused for longer than olderThan.
// A non-positive olderThan falls back to the configured IdleTimeout. Returns
// the number closed.
func (c *Cache) EvictIdle(olderThan time.Duration) int {
	if olderThan <= 0 {
		olderThan = c.opts.IdleTimeout
	}
	if olderThan <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	n := 0
	for key, e := range c.entries {
		if e.refs == 0 && e.lastUsed.Before(cutoff) {
			delete(c.entries, key)
			_ = e.db.Close()
			n++
		}
	}
	if n > 0 {
		c.logger.Debug("evicted idle connections", slog.Int("count", n))
	}
	return n
}

// Len returns the number of cached handles.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Shutdown closes every handle, borrowed ones included, and rejects
// further acquisitions.
func (c *Cache) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	var firstErr error
	for key, e := range c.entries {
		delete(c.entries, key)
		if err := e.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.logger.Debug("connection cache shut down")
	return firstErr
}
