// Package diag keeps a bounded in-memory log of recent engine failures
// for diagnostics endpoints and post-mortems.
package diag

import (
	"sync"
	"time"
)

// Entry is one recorded failure.
type Entry struct {
	At      time.Time `json:"at"`
	Op      string    `json:"op"`
	UserID  string    `json:"userId,omitempty"`
	Message string    `json:"message"`
}

// Recorder accepts failure records. The executor records through this
// interface so tests can substitute their own sink.
type Recorder interface {
	Record(op, userID, message string)
}

// Ring is a fixed-capacity circular buffer of recent failures. Capacity
// is injected at construction; once full, new records overwrite the
// oldest. Safe for concurrent use.
type Ring struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// NewRing creates a ring holding at most capacity entries.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{entries: make([]Entry, capacity)}
}

// Record appends one failure, evicting the oldest when full.
func (r *Ring) Record(op, userID, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = Entry{
		At:      time.Now().UTC(),
		Op:      op,
		UserID:  userID,
		Message: message,
	}
	r.next++
	if r.next == len(r.entries) {
		r.next = 0
		r.full = true
	}
}

// Recent returns the recorded entries, oldest first.
func (r *Ring) Recent() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])
		return out
	}
	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}
