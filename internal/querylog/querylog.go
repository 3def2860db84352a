// Package querylog keeps an in-memory history of executed statements, one
// bounded ring per connection.
package querylog

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Capacity is the number of entries retained per connection. Older entries
// are overwritten in arrival order.
const Capacity = 200

// Entry is one executed statement.
type Entry struct {
	ID        uuid.UUID
	SQL       string
	Args      []any
	CreatedAt time.Time
	Duration  time.Duration
	Err       string
}

// Log is a per-connection ring buffer of executed statements.
type Log struct {
	mu    sync.Mutex
	rings map[string]*ring
}

type ring struct {
	entries []Entry
	next    int
	full    bool
}

// New creates an empty Log.
func New() *Log {
	return &Log{rings: make(map[string]*ring)}
}

// Record stores an executed statement under the connection key. The SQL is
// collapsed onto one line. The assigned ID is returned.
func (l *Log) Record(connKey string, e Entry) uuid.UUID {
	e.ID = uuid.New()
	e.SQL = oneLine(e.SQL)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.rings[connKey]
	if !ok {
		r = &ring{entries: make([]Entry, Capacity)}
		l.rings[connKey] = r
	}
	r.entries[r.next] = e
	r.next++
	if r.next == Capacity {
		r.next = 0
		r.full = true
	}
	return e.ID
}

// Entries returns the statements recorded for the connection key, newest
// first.
func (l *Log) Entries(connKey string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.rings[connKey]
	if !ok {
		return nil
	}

	n := r.next
	if r.full {
		n = Capacity
	}
	out := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		idx := r.next - 1 - i
		if idx < 0 {
			idx += Capacity
		}
		out = append(out, r.entries[idx])
	}
	return out
}

// Clear drops the history for the connection key.
func (l *Log) Clear(connKey string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.rings, connKey)
}

// oneLine collapses runs of whitespace so multi-line SQL logs as a single
// line.
func oneLine(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
