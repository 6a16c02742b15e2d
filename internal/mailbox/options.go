package mailbox

import "github.com/Iron-Ham/tabshell/internal/event"

type options struct {
	bus *event.Bus
}

// Option configures a Mailbox.
type Option func(*options)

// WithBus attaches an event bus to the Mailbox. When set, a
// MailboxDeliveredEvent is published for every drained entry that
// implements Labeled.
func WithBus(bus *event.Bus) Option {
	return func(o *options) {
		o.bus = bus
	}
}
