package event

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe(TypeTabOpened, func(e Event) {
		called = true
	})

	if id == "" {
		t.Error("Subscribe should return a non-empty ID")
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription, got %d", bus.SubscriptionCount())
	}
	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus()

	var received Event
	bus.Subscribe(TypeDocumentLoaded, func(e Event) {
		received = e
	})

	bus.Publish(NewDocumentLoadedEvent("0v1", "notes.txt"))

	if received == nil {
		t.Fatal("Handler should have received the event")
	}
	loaded, ok := received.(DocumentLoadedEvent)
	if !ok {
		t.Fatalf("Expected DocumentLoadedEvent, got %T", received)
	}
	if loaded.Path != "notes.txt" || loaded.DocumentKey != "0v1" {
		t.Errorf("Unexpected payload: %+v", loaded)
	}
	if loaded.Timestamp().IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus()

	called := false
	bus.Subscribe(TypeTabClosed, func(e Event) { called = true })
	bus.Publish(NewTabOpenedEvent("0v1", "home", "Home"))

	if called {
		t.Error("Handler for a different event type should not be called")
	}
}

func TestBus_OrderSpecificBeforeWildcard(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(e Event) { order = append(order, "wildcard") })
	bus.Subscribe(TypeTabPruned, func(e Event) { order = append(order, "first") })
	bus.Subscribe(TypeTabPruned, func(e Event) { order = append(order, "second") })

	bus.Publish(NewTabPrunedEvent("1v1", "document"))

	want := []string{"first", "second", "wildcard"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("Dispatch order = %v, want %v", order, want)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	tests := []struct {
		name      string
		id        func(b *Bus) string
		wantFound bool
		wantCount int
	}{
		{
			name:      "existing subscription",
			id:        func(b *Bus) string { return b.Subscribe(TypeTabOpened, func(Event) {}) },
			wantFound: true,
			wantCount: 1,
		},
		{
			name:      "unknown id",
			id:        func(*Bus) string { return "sub-999" },
			wantFound: false,
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := NewBus()
			bus.Subscribe(TypeTabClosed, func(Event) {})
			id := tt.id(bus)

			if got := bus.Unsubscribe(id); got != tt.wantFound {
				t.Errorf("Unsubscribe() = %v, want %v", got, tt.wantFound)
			}
			if bus.SubscriptionCount() != tt.wantCount {
				t.Errorf("SubscriptionCount() = %d, want %d", bus.SubscriptionCount(), tt.wantCount)
			}
		})
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(TypeTabOpened, func(Event) {})
	bus.SubscribeAll(func(Event) {})

	bus.Clear()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions after Clear, got %d", bus.SubscriptionCount())
	}
}

func TestBus_HandlerPanicRecovery(t *testing.T) {
	var buf bytes.Buffer
	bus := NewBus(WithPanicLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	secondCalled := false
	bus.Subscribe(TypeWorkspaceSaved, func(Event) { panic("boom") })
	bus.Subscribe(TypeWorkspaceSaved, func(Event) { secondCalled = true })

	bus.Publish(NewWorkspaceSavedEvent("/tmp/state.json", 3))

	if !secondCalled {
		t.Error("Second handler should run after the first one panicked")
	}
	if !strings.Contains(buf.String(), "event handler panicked") {
		t.Errorf("Expected panic to be logged, got %q", buf.String())
	}
}

func TestBus_HandlerMayPublish(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(TypeTabClosed, func(e Event) {
		bus.Publish(NewDocumentRemovedEvent("0v1", "notes.txt"))
	})
	bus.SubscribeAll(func(e Event) { got = append(got, e.EventType()) })

	bus.Publish(NewTabClosedEvent("2v1", "document"))

	if len(got) != 2 || got[0] != TypeDocumentRemoved || got[1] != TypeTabClosed {
		t.Errorf("Observed %v", got)
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.SubscribeAll(func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(NewMailboxDeliveredEvent("document:0v1", "refresh"))
		}()
	}
	wg.Wait()

	if count != 50 {
		t.Errorf("Expected 50 deliveries, got %d", count)
	}
}

func TestBus_ConcurrentSubscribeUnsubscribe(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := bus.Subscribe(TypeDocumentFailed, func(Event) {})
			bus.Publish(NewDocumentFailedEvent("0v1", "missing.txt", "not found"))
			bus.Unsubscribe(id)
		}()
	}
	wg.Wait()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions, got %d", bus.SubscriptionCount())
	}
}

func TestBus_UniqueIDs(t *testing.T) {
	bus := NewBus()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := bus.Subscribe(TypeTabOpened, func(Event) {})
		if seen[id] {
			t.Fatalf("Duplicate subscription ID %q", id)
		}
		seen[id] = true
	}
}
