// Package event provides a pub-sub event bus for decoupled inter-component
// communication in tabshell.
//
// The workspace, the registries and the mailbox publish events describing what
// happened to tabs and documents. Subscribers (the debug logger, tests) observe
// them without the publishers knowing who listens.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// Tabs:
//   - [TabOpenedEvent], [TabClosedEvent], [TabPrunedEvent]
//
// Documents:
//   - [DocumentCreatedEvent], [DocumentLoadedEvent], [DocumentFailedEvent], [DocumentRemovedEvent]
//
// Mailbox and workspace:
//   - [MailboxDeliveredEvent], [WorkspaceRestoredEvent], [WorkspaceSavedEvent]
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Handlers are called synchronously
// on the publishing goroutine and protected against panics; a panicking handler
// does not prevent other handlers from being called.
//
// # Basic Usage
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeDocumentLoaded, func(e event.Event) {
//	    loaded := e.(event.DocumentLoadedEvent)
//	    fmt.Println("loaded", loaded.Path)
//	})
//	bus.SubscribeAll(func(e event.Event) {
//	    logger.Debug("event", "type", e.EventType())
//	})
//	bus.Publish(event.NewDocumentLoadedEvent("0v1", "notes.txt"))
package event
