// ABOUTME: Ephemeral user notifications shared by every page
// ABOUTME: Provides the Notifier port and a goroutine-safe expiring queue
package toast

import (
	"crypto/rand"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 7 * time.Second

// Type selects the toast styling.
type Type string

const (
	Success Type = "success"
	Danger  Type = "danger"
	Info    Type = "default"
)

// Message is a notification request.
type Message struct {
	Type Type
	Text string
	// Duration overrides the queue lifetime when non-zero.
	Duration time.Duration
}

// Notifier accepts fire-and-forget notifications.
type Notifier interface {
	Notify(msg Message)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Message)

func (f NotifierFunc) Notify(msg Message) { f(msg) }

// Toast is a queued message.
type Toast struct {
	ID        string
	Type      Type
	Text      string
	ExpiresAt time.Time
}

// Queue holds active toasts in arrival order.
type Queue struct {
	mu       sync.Mutex
	toasts   []Toast
	lifetime time.Duration
	now      func() time.Time
	entropy  *ulid.MonotonicEntropy
}

// NewQueue returns a queue whose toasts live for lifetime (DefaultDuration when zero).
func NewQueue(lifetime time.Duration) *Queue {
	if lifetime <= 0 {
		lifetime = DefaultDuration
	}
	return &Queue{
		lifetime: lifetime,
		now:      time.Now,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// Notify enqueues a toast.
func (q *Queue) Notify(msg Message) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	lifetime := q.lifetime
	if msg.Duration > 0 {
		lifetime = msg.Duration
	}
	typ := msg.Type
	if typ == "" {
		typ = Info
	}

	q.toasts = append(q.toasts, Toast{
		ID:        ulid.MustNew(ulid.Timestamp(now), q.entropy).String(),
		Type:      typ,
		Text:      msg.Text,
		ExpiresAt: now.Add(lifetime),
	})
}

// Active returns a copy of the toasts that have not expired, oldest first.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pruneLocked()
	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Dismiss removes a toast by id. Unknown ids are ignored.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	q.toasts = kept
}

// DismissAll clears the queue.
func (q *Queue) DismissAll() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.toasts = nil
}

func (q *Queue) pruneLocked() {
	now := q.now()
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	q.toasts = kept
}

// TickMsg asks the view to re-render so expired toasts disappear.
type TickMsg time.Time

// Tick schedules the next TickMsg one second out.
func Tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
