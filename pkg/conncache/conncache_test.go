package conncache

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/driver"
)

// registerMockEngine registers a driver for a test-only engine name that
// opens a fresh sqlmock handle per dial and counts dials.
func registerMockEngine(t *testing.T, name string) (core.Engine, *atomic.Int32) {
	t.Helper()
	engine := core.Engine(name)
	var connects atomic.Int32
	driver.Register(engine, func(ctx context.Context, connString string, logger *slog.Logger) (*sql.DB, error) {
		connects.Add(1)
		db, mock, err := sqlmock.New()
		if err == nil {
			mock.ExpectClose()
		}
		return db, err
	})
	return engine, &connects
}

func TestAcquireMemoizes(t *testing.T) {
	engine, connects := registerMockEngine(t, "cache-memoize")
	cache := New(Options{})
	defer cache.Shutdown(context.Background())

	first, err := cache.Acquire(context.Background(), engine, "conn://a")
	require.NoError(t, err)
	second, err := cache.Acquire(context.Background(), engine, "conn://a")
	require.NoError(t, err)

	assert.Same(t, first.DB(), second.DB())
	assert.Equal(t, int32(1), connects.Load())
	assert.Equal(t, 1, cache.Len())

	first.Release()
	second.Release()
}

func TestAcquireDistinctKeys(t *testing.T) {
	engine, connects := registerMockEngine(t, "cache-distinct")
	cache := New(Options{})
	defer cache.Shutdown(context.Background())

	a, err := cache.Acquire(context.Background(), engine, "conn://a")
	require.NoError(t, err)
	b, err := cache.Acquire(context.Background(), engine, "conn://b")
	require.NoError(t, err)

	assert.NotSame(t, a.DB(), b.DB())
	assert.Equal(t, int32(2), connects.Load())
	assert.Equal(t, 2, cache.Len())
}

func TestConcurrentAcquireSingleDial(t *testing.T) {
	engine, connects := registerMockEngine(t, "cache-flight")
	cache := New(Options{})
	defer cache.Shutdown(context.Background())

	const workers = 16
	var wg sync.WaitGroup
	clients := make([]*Client, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i], errs[i] = cache.Acquire(context.Background(), engine, "conn://shared")
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, clients[0].DB(), clients[i].DB())
	}
	assert.Equal(t, int32(1), connects.Load())
}

func TestFailedConnectNotCached(t *testing.T) {
	engine := core.Engine("cache-fail")
	var attempts atomic.Int32
	driver.Register(engine, func(ctx context.Context, connString string, logger *slog.Logger) (*sql.DB, error) {
		if attempts.Add(1) == 1 {
			return nil, errors.New("connection refused")
		}
		db, _, err := sqlmock.New()
		return db, err
	})

	cache := New(Options{})
	defer cache.Shutdown(context.Background())

	_, err := cache.Acquire(context.Background(), engine, "conn://flaky")
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())

	client, err := cache.Acquire(context.Background(), engine, "conn://flaky")
	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
	client.Release()
}

func TestCapacityEvictsIdle(t *testing.T) {
	engine, _ := registerMockEngine(t, "cache-evict")
	cache := New(Options{MaxClients: 1})
	defer cache.Shutdown(context.Background())

	a, err := cache.Acquire(context.Background(), engine, "conn://a")
	require.NoError(t, err)
	a.Release()

	// a is idle, so the new key evicts it.
	b, err := cache.Acquire(context.Background(), engine, "conn://b")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	// b is still borrowed: no evictable entry left.
	_, err = cache.Acquire(context.Background(), engine, "conn://c")
	assert.ErrorIs(t, err, ErrCacheFull)

	b.Release()
}

func TestFreshDialNotEvictableBeforeClaim(t *testing.T) {
	engine, _ := registerMockEngine(t, "cache-claim")
	cache := New(Options{MaxClients: 1})
	defer cache.Shutdown(context.Background())

	key := string(engine) + "\x00conn://a"
	e, err := cache.dial(context.Background(), engine, "conn://a", key)
	require.NoError(t, err)

	// The dialed entry carries a pre-counted ref, so capacity pressure
	// cannot close it before its acquirer claims it.
	cache.mu.Lock()
	assert.Equal(t, 1, e.refs)
	assert.True(t, e.reserved)
	assert.False(t, cache.evictOldestIdleLocked())
	cache.mu.Unlock()

	// The first claim consumes the reservation instead of incrementing.
	client, err := cache.Acquire(context.Background(), engine, "conn://a")
	require.NoError(t, err)
	cache.mu.Lock()
	assert.Equal(t, 1, e.refs)
	assert.False(t, e.reserved)
	cache.mu.Unlock()

	client.Release()
	cache.mu.Lock()
	assert.Equal(t, 0, e.refs)
	cache.mu.Unlock()
}

func TestAcquireUnderCapacityPressure(t *testing.T) {
	engine, _ := registerMockEngine(t, "cache-pressure")
	cache := New(Options{MaxClients: 1})
	defer cache.Shutdown(context.Background())

	keys := []string{"conn://a", "conn://b"}
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				client, err := cache.Acquire(context.Background(), engine, keys[(w+i)%2])
				if errors.Is(err, ErrCacheFull) {
					continue
				}
				if !assert.NoError(t, err) {
					return
				}
				// Handles handed out must still be open despite evictions
				// on the other key.
				assert.NoError(t, client.DB().Ping())
				client.Release()
			}
		}(w)
	}
	wg.Wait()
}

func TestEvictIdle(t *testing.T) {
	engine, _ := registerMockEngine(t, "cache-idle")
	cache := New(Options{IdleTimeout: time.Millisecond})
	defer cache.Shutdown(context.Background())

	client, err := cache.Acquire(context.Background(), engine, "conn://a")
	require.NoError(t, err)

	// Borrowed entries are never idle-evicted.
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 0, cache.EvictIdle(0))

	client.Release()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, cache.EvictIdle(0))
	assert.Equal(t, 0, cache.Len())
}

func TestShutdown(t *testing.T) {
	engine, _ := registerMockEngine(t, "cache-shutdown")
	cache := New(Options{})

	client, err := cache.Acquire(context.Background(), engine, "conn://a")
	require.NoError(t, err)
	client.Release()

	require.NoError(t, cache.Shutdown(context.Background()))
	assert.Equal(t, 0, cache.Len())

	_, err = cache.Acquire(context.Background(), engine, "conn://a")
	assert.ErrorIs(t, err, ErrClosed)
}
