package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "tab.opened", "document.loaded")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeTabOpened         = "tab.opened"
	TypeTabClosed         = "tab.closed"
	TypeTabPruned         = "tab.pruned"
	TypeDocumentCreated   = "document.created"
	TypeDocumentLoaded    = "document.loaded"
	TypeDocumentFailed    = "document.failed"
	TypeDocumentRemoved   = "document.removed"
	TypeDocumentSaved     = "document.saved"
	TypeMailboxDelivered  = "mailbox.delivered"
	TypeWorkspaceRestored = "workspace.restored"
	TypeWorkspaceSaved    = "workspace.saved"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Tab Events
// -----------------------------------------------------------------------------

// TabOpenedEvent is emitted when a tab is added to the workspace.
type TabOpenedEvent struct {
	baseEvent
	TabKey string // Registry key of the new tab
	Kind   string // "home", "new" or "document"
	Title  string
}

// NewTabOpenedEvent creates a TabOpenedEvent.
func NewTabOpenedEvent(tabKey, kind, title string) TabOpenedEvent {
	return TabOpenedEvent{
		baseEvent: newBaseEvent(TypeTabOpened),
		TabKey:    tabKey,
		Kind:      kind,
		Title:     title,
	}
}

// TabClosedEvent is emitted when a tab is closed through its close hook.
type TabClosedEvent struct {
	baseEvent
	TabKey string
	Kind   string
}

// NewTabClosedEvent creates a TabClosedEvent.
func NewTabClosedEvent(tabKey, kind string) TabClosedEvent {
	return TabClosedEvent{
		baseEvent: newBaseEvent(TypeTabClosed),
		TabKey:    tabKey,
		Kind:      kind,
	}
}

// TabPrunedEvent is emitted when reconciliation drops a tab the layout no
// longer shows.
type TabPrunedEvent struct {
	baseEvent
	TabKey string
	Kind   string
}

// NewTabPrunedEvent creates a TabPrunedEvent.
func NewTabPrunedEvent(tabKey, kind string) TabPrunedEvent {
	return TabPrunedEvent{
		baseEvent: newBaseEvent(TypeTabPruned),
		TabKey:    tabKey,
		Kind:      kind,
	}
}

// -----------------------------------------------------------------------------
// Document Events
// -----------------------------------------------------------------------------

// DocumentCreatedEvent is emitted when a document enters the registry,
// either created empty or opened from a path.
type DocumentCreatedEvent struct {
	baseEvent
	DocumentKey string
	Path        string
	Kind        string // "text" or "image"
	Loading     bool   // Whether content is being loaded in the background
}

// NewDocumentCreatedEvent creates a DocumentCreatedEvent.
func NewDocumentCreatedEvent(documentKey, path, kind string, loading bool) DocumentCreatedEvent {
	return DocumentCreatedEvent{
		baseEvent:   newBaseEvent(TypeDocumentCreated),
		DocumentKey: documentKey,
		Path:        path,
		Kind:        kind,
		Loading:     loading,
	}
}

// DocumentLoadedEvent is emitted when a background load finishes successfully.
type DocumentLoadedEvent struct {
	baseEvent
	DocumentKey string
	Path        string
}

// NewDocumentLoadedEvent creates a DocumentLoadedEvent.
func NewDocumentLoadedEvent(documentKey, path string) DocumentLoadedEvent {
	return DocumentLoadedEvent{
		baseEvent:   newBaseEvent(TypeDocumentLoaded),
		DocumentKey: documentKey,
		Path:        path,
	}
}

// DocumentFailedEvent is emitted when a background load ends in an error.
type DocumentFailedEvent struct {
	baseEvent
	DocumentKey string
	Path        string
	Error       string
}

// NewDocumentFailedEvent creates a DocumentFailedEvent.
func NewDocumentFailedEvent(documentKey, path, errMsg string) DocumentFailedEvent {
	return DocumentFailedEvent{
		baseEvent:   newBaseEvent(TypeDocumentFailed),
		DocumentKey: documentKey,
		Path:        path,
		Error:       errMsg,
	}
}

// DocumentRemovedEvent is emitted when a document leaves the registry.
type DocumentRemovedEvent struct {
	baseEvent
	DocumentKey string
	Path        string
}

// NewDocumentRemovedEvent creates a DocumentRemovedEvent.
func NewDocumentRemovedEvent(documentKey, path string) DocumentRemovedEvent {
	return DocumentRemovedEvent{
		baseEvent:   newBaseEvent(TypeDocumentRemoved),
		DocumentKey: documentKey,
		Path:        path,
	}
}

// DocumentSavedEvent is emitted when a text document is written back to its file.
type DocumentSavedEvent struct {
	baseEvent
	DocumentKey string
	Path        string
}

// NewDocumentSavedEvent creates a DocumentSavedEvent.
func NewDocumentSavedEvent(documentKey, path string) DocumentSavedEvent {
	return DocumentSavedEvent{
		baseEvent:   newBaseEvent(TypeDocumentSaved),
		DocumentKey: documentKey,
		Path:        path,
	}
}

// -----------------------------------------------------------------------------
// Mailbox Events
// -----------------------------------------------------------------------------

// MailboxDeliveredEvent is emitted for every entry handed to the UI loop.
type MailboxDeliveredEvent struct {
	baseEvent
	Source  string // e.g. "tab:0v1" or "document:2v1"
	Message string // e.g. "refresh" or "create-document"
}

// NewMailboxDeliveredEvent creates a MailboxDeliveredEvent.
func NewMailboxDeliveredEvent(source, message string) MailboxDeliveredEvent {
	return MailboxDeliveredEvent{
		baseEvent: newBaseEvent(TypeMailboxDelivered),
		Source:    source,
		Message:   message,
	}
}

// -----------------------------------------------------------------------------
// Workspace Events
// -----------------------------------------------------------------------------

// WorkspaceRestoredEvent is emitted after a persisted workspace is applied.
type WorkspaceRestoredEvent struct {
	baseEvent
	Tabs      int
	Documents int
}

// NewWorkspaceRestoredEvent creates a WorkspaceRestoredEvent.
func NewWorkspaceRestoredEvent(tabs, documents int) WorkspaceRestoredEvent {
	return WorkspaceRestoredEvent{
		baseEvent: newBaseEvent(TypeWorkspaceRestored),
		Tabs:      tabs,
		Documents: documents,
	}
}

// WorkspaceSavedEvent is emitted after the workspace snapshot is written.
type WorkspaceSavedEvent struct {
	baseEvent
	Path string
	Tabs int
}

// NewWorkspaceSavedEvent creates a WorkspaceSavedEvent.
func NewWorkspaceSavedEvent(path string, tabs int) WorkspaceSavedEvent {
	return WorkspaceSavedEvent{
		baseEvent: newBaseEvent(TypeWorkspaceSaved),
		Path:      path,
		Tabs:      tabs,
	}
}
