package mailbox_test

import (
	"testing"

	"github.com/Iron-Ham/tabshell/internal/event"
	"github.com/Iron-Ham/tabshell/internal/mailbox"
)

type labeledEntry struct {
	source  string
	message string
}

func (e labeledEntry) Labels() (string, string) { return e.source, e.message }

func TestMailbox_WithBus_PublishesOnDrain(t *testing.T) {
	bus := event.NewBus()
	mb := mailbox.New[labeledEntry](mailbox.WithBus(bus))

	var got []event.MailboxDeliveredEvent
	subID := bus.Subscribe(event.TypeMailboxDelivered, func(e event.Event) {
		got = append(got, e.(event.MailboxDeliveredEvent))
	})
	defer bus.Unsubscribe(subID)

	if err := mb.Sender().Send(labeledEntry{source: "document:0v1", message: "refresh"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("event should not be published before Drain")
	}

	mb.Drain()

	if len(got) != 1 {
		t.Fatalf("published %d events, want 1", len(got))
	}
	if got[0].Source != "document:0v1" || got[0].Message != "refresh" {
		t.Errorf("event = %+v", got[0])
	}
}

func TestMailbox_WithBus_SkipsUnlabeledEntries(t *testing.T) {
	bus := event.NewBus()
	mb := mailbox.New[int](mailbox.WithBus(bus))

	count := 0
	bus.SubscribeAll(func(event.Event) { count++ })

	_ = mb.Sender().Send(1)
	mb.Drain()

	if count != 0 {
		t.Errorf("published %d events for unlabeled entries, want 0", count)
	}
}

func TestMailbox_NoBus_NoEvent(t *testing.T) {
	mb := mailbox.New[labeledEntry]()
	if err := mb.Sender().Send(labeledEntry{source: "tab:0v1", message: "refresh"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if entries := mb.Drain(); len(entries) != 1 {
		t.Errorf("Drain() returned %d entries, want 1", len(entries))
	}
}
