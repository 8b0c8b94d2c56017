// Package notify provides the bounded notification queue backing user
// facing toasts. The queue is an injected service, not module-level
// state: exporters and importers push into it and the API exposes it.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a notification for display.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a single queue entry.
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultMaxLen caps the queue; pushing beyond it evicts the oldest
// entries first.
const DefaultMaxLen = 50

// DefaultTTL is how long an entry stays visible before self-expiring.
const DefaultTTL = 5 * time.Minute

// Queue is a bounded, self-expiring notification queue. Safe for
// concurrent use.
type Queue struct {
	mu      sync.Mutex
	entries []Notification
	maxLen  int
	ttl     time.Duration
	now     func() time.Time
}

// NewQueue returns a queue with the given capacity and entry TTL.
// Non-positive arguments fall back to the defaults.
func NewQueue(maxLen int, ttl time.Duration) *Queue {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{maxLen: maxLen, ttl: ttl, now: time.Now}
}

// Push appends a notification, evicting the oldest entries if the queue
// is full, and returns the stored entry.
func (q *Queue) Push(level Level, message string) Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.expireLocked()

	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: q.now(),
	}
	q.entries = append(q.entries, n)

	if over := len(q.entries) - q.maxLen; over > 0 {
		q.entries = append(q.entries[:0:0], q.entries[over:]...)
	}

	return n
}

// Dismiss removes the entry with the given id. It reports whether an
// entry was removed.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, n := range q.entries {
		if n.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// DismissAll clears the queue.
func (q *Queue) DismissAll() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = nil
}

// Active returns the unexpired entries, oldest first.
func (q *Queue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.expireLocked()

	out := make([]Notification, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len returns the number of unexpired entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.expireLocked()
	return len(q.entries)
}

// expireLocked drops entries older than the TTL. Must hold q.mu.
func (q *Queue) expireLocked() {
	cutoff := q.now().Add(-q.ttl)
	keep := q.entries[:0]
	for _, n := range q.entries {
		if n.CreatedAt.After(cutoff) {
			keep = append(keep, n)
		}
	}
	q.entries = keep
}
