// Package toast holds the process-wide ephemeral notification queue. The
// queue is rebuilt empty on every run; nothing here persists.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a toast for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// DefaultTTL is how long a toast stays visible without explicit dismissal.
const DefaultTTL = 5 * time.Second

// Toast is one transient user-facing notification.
type Toast struct {
	ID       string
	Message  string
	Severity Severity
}

// Queue is an ordered toast list with auto-expiry. Safe for concurrent use.
type Queue struct {
	timers map[string]*time.Timer
	toasts []Toast
	ttl    time.Duration
	mu     sync.Mutex
}

// NewQueue creates a queue whose entries expire after ttl. A non-positive
// ttl disables auto-expiry, which tests and the TUI (which drives expiry off
// its own tick) rely on.
func NewQueue(ttl time.Duration) *Queue {
	return &Queue{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}
}

// Add appends a toast and returns its identifier. Identifiers are never
// reused, so a stale Remove can't dismiss a newer toast.
func (q *Queue) Add(message string, severity Severity) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := uuid.NewString()
	q.toasts = append(q.toasts, Toast{ID: id, Message: message, Severity: severity})

	if q.ttl > 0 {
		q.timers[id] = time.AfterFunc(q.ttl, func() {
			q.Remove(id)
		})
	}

	return id
}

// Success adds a success toast.
func (q *Queue) Success(message string) string { return q.Add(message, SeveritySuccess) }

// Error adds an error toast.
func (q *Queue) Error(message string) string { return q.Add(message, SeverityError) }

// Warning adds a warning toast.
func (q *Queue) Warning(message string) string { return q.Add(message, SeverityWarning) }

// Remove dismisses the toast with the given id. Removing an unknown id is a
// no-op, not an error: the toast may simply have expired already.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}

	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return
		}
	}
}

// Toasts returns a snapshot in insertion order.
func (q *Queue) Toasts() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Len reports the number of live toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}
