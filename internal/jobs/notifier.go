package jobs

import (
	"sync"

	"github.com/google/uuid"
)

// Notification reports the outcome of one job.
type Notification struct {
	JobID   uuid.UUID
	Kind    Kind
	Source  string
	Dest    string
	Message string
	Err     error
}

// Success reports whether the job completed without error.
func (n Notification) Success() bool {
	return n.Err == nil
}

// Notifier is a bounded queue of notifications. Sends never block.
type Notifier struct {
	mu     sync.Mutex
	ch     chan Notification
	closed bool
}

// NewNotifier creates a notifier holding up to size pending notifications.
func NewNotifier(size int) *Notifier {
	if size < 1 {
		size = 1
	}
	return &Notifier{ch: make(chan Notification, size)}
}

// C is the channel the interactive loop reads from.
func (n *Notifier) C() <-chan Notification {
	return n.ch
}

// Send enqueues note. It returns false when the queue is full or closed.
func (n *Notifier) Send(note Notification) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return false
	}
	select {
	case n.ch <- note:
		return true
	default:
		return false
	}
}

// Close stops further sends. Pending notifications can still be drained.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.closed {
		n.closed = true
		close(n.ch)
	}
}
