package mailbox

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMailbox_DrainFIFO(t *testing.T) {
	mb := New[int]()
	send := mb.Sender()

	for i := 0; i < 5; i++ {
		if err := send.Send(i); err != nil {
			t.Fatalf("Send(%d) error = %v", i, err)
		}
	}

	got := mb.Drain()
	if len(got) != 5 {
		t.Fatalf("Drain() returned %d entries, want 5", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Errorf("entry %d = %d, want %d", i, v, i)
		}
	}

	if again := mb.Drain(); len(again) != 0 {
		t.Errorf("second Drain() = %v, want empty", again)
	}
}

func TestMailbox_SenderIsCopyable(t *testing.T) {
	mb := New[string]()
	a := mb.Sender()
	b := a

	_ = a.Send("a")
	_ = b.Send("b")

	if mb.Len() != 2 {
		t.Errorf("Len() = %d, want 2", mb.Len())
	}
}

func TestMailbox_SendAfterClose(t *testing.T) {
	tests := []struct {
		name   string
		sender func() Sender[int]
	}{
		{
			name: "closed mailbox",
			sender: func() Sender[int] {
				mb := New[int]()
				mb.Close()
				return mb.Sender()
			},
		},
		{
			name:   "zero sender",
			sender: func() Sender[int] { return Sender[int]{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sender().Send(1); !errors.Is(err, ErrClosed) {
				t.Errorf("Send() error = %v, want ErrClosed", err)
			}
		})
	}
}

func TestMailbox_CloseKeepsQueuedEntries(t *testing.T) {
	mb := New[int]()
	_ = mb.Sender().Send(7)
	mb.Close()
	mb.Close()

	got := mb.Drain()
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("Drain() after Close = %v, want [7]", got)
	}
}

func TestMailbox_WakeCoalesces(t *testing.T) {
	mb := New[int]()
	send := mb.Sender()
	_ = send.Send(1)
	_ = send.Send(2)

	select {
	case <-mb.Wake():
	default:
		t.Fatal("expected a wake-up after Send")
	}
	select {
	case <-mb.Wake():
		t.Fatal("several sends should produce a single wake-up")
	default:
	}
}

func TestMailbox_WaitCmd(t *testing.T) {
	mb := New[int]()
	cmd := mb.WaitCmd()

	done := make(chan any, 1)
	go func() { done <- cmd() }()

	select {
	case <-done:
		t.Fatal("WaitCmd returned before anything was sent")
	case <-time.After(20 * time.Millisecond):
	}

	_ = mb.Sender().Send(1)

	select {
	case msg := <-done:
		if _, ok := msg.(WakeMsg); !ok {
			t.Errorf("WaitCmd yielded %T, want WakeMsg", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitCmd did not return after Send")
	}
}

func TestMailbox_WaitCmdAfterClose(t *testing.T) {
	mb := New[int]()
	mb.Close()

	if msg := mb.WaitCmd()(); msg != nil {
		t.Errorf("WaitCmd after Close yielded %v, want nil", msg)
	}
}

func TestMailbox_ConcurrentSenders(t *testing.T) {
	mb := New[int]()

	const senders, perSender = 8, 100
	var wg sync.WaitGroup
	for s := 0; s < senders; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			send := mb.Sender()
			for i := 0; i < perSender; i++ {
				if err := send.Send(s*perSender + i); err != nil {
					t.Errorf("Send error = %v", err)
					return
				}
			}
		}(s)
	}
	wg.Wait()

	got := mb.Drain()
	if len(got) != senders*perSender {
		t.Fatalf("Drain() returned %d entries, want %d", len(got), senders*perSender)
	}

	// Entries from a single sender keep their order.
	last := make(map[int]int)
	for _, v := range got {
		s := v / perSender
		if prev, ok := last[s]; ok && v < prev {
			t.Fatalf("sender %d out of order: %d after %d", s, v, prev)
		}
		last[s] = v
	}
}
