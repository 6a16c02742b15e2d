package mailbox

import (
	"errors"
	"sync"

	"github.com/Iron-Ham/tabshell/internal/event"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrClosed is returned by Send once the receiving Mailbox has been closed.
var ErrClosed = errors.New("mailbox: closed")

// Labeled is implemented by entries that can describe themselves in
// mailbox.delivered events.
type Labeled interface {
	Labels() (source, message string)
}

// WakeMsg is the bubbletea message produced by WaitCmd when entries are queued.
type WakeMsg struct{}

type queue[E any] struct {
	mu      sync.Mutex
	entries []E
	closed  bool
	wake    chan struct{}
}

// Mailbox is the receiving end of an unbounded FIFO queue. There is exactly
// one Mailbox per queue; any number of Senders may feed it.
type Mailbox[E any] struct {
	q   *queue[E]
	bus *event.Bus
}

// Sender is the sending end of a Mailbox. It is a small value and may be
// copied freely and used from any goroutine. The zero Sender behaves like
// one whose Mailbox is closed.
type Sender[E any] struct {
	q *queue[E]
}

// New creates an open Mailbox.
func New[E any](opts ...Option) *Mailbox[E] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Mailbox[E]{
		q:   &queue[E]{wake: make(chan struct{}, 1)},
		bus: o.bus,
	}
}

// Sender returns a Sender feeding this Mailbox.
func (m *Mailbox[E]) Sender() Sender[E] {
	return Sender[E]{q: m.q}
}

// Send queues e without blocking. It returns ErrClosed if the Mailbox has
// been closed; callers should treat that as fatal since it means the UI
// loop is gone.
func (s Sender[E]) Send(e E) error {
	if s.q == nil {
		return ErrClosed
	}
	s.q.mu.Lock()
	defer s.q.mu.Unlock()
	if s.q.closed {
		return ErrClosed
	}
	s.q.entries = append(s.q.entries, e)
	select {
	case s.q.wake <- struct{}{}:
	default:
	}
	return nil
}

// Drain returns every entry queued since the previous Drain, oldest first.
func (m *Mailbox[E]) Drain() []E {
	m.q.mu.Lock()
	entries := m.q.entries
	m.q.entries = nil
	m.q.mu.Unlock()

	// Publish outside the lock; handlers may send.
	if m.bus != nil {
		for _, e := range entries {
			if l, ok := any(e).(Labeled); ok {
				source, message := l.Labels()
				m.bus.Publish(event.NewMailboxDeliveredEvent(source, message))
			}
		}
	}
	return entries
}

// Len returns the number of queued entries.
func (m *Mailbox[E]) Len() int {
	m.q.mu.Lock()
	defer m.q.mu.Unlock()
	return len(m.q.entries)
}

// Wake returns a channel that receives a value after a Send. Several Sends
// between two receives produce a single wake-up. The channel is closed when
// the Mailbox is closed.
func (m *Mailbox[E]) Wake() <-chan struct{} {
	return m.q.wake
}

// WaitCmd returns a command that blocks until an entry is queued and then
// yields WakeMsg. It yields nil once the Mailbox is closed. The UI re-arms
// it after each wake-up.
func (m *Mailbox[E]) WaitCmd() tea.Cmd {
	wake := m.q.wake
	return func() tea.Msg {
		if _, ok := <-wake; !ok {
			return nil
		}
		return WakeMsg{}
	}
}

// Close stops accepting entries. Entries already queued can still be drained.
// Close is idempotent.
func (m *Mailbox[E]) Close() {
	m.q.mu.Lock()
	defer m.q.mu.Unlock()
	if m.q.closed {
		return
	}
	m.q.closed = true
	close(m.q.wake)
}
