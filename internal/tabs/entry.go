package tabs

import (
	"github.com/Iron-Ham/tabshell/internal/documents"
	"github.com/Iron-Ham/tabshell/internal/mailbox"
)

// Source identifies who queued an Entry: a TabSource or a DocumentSource.
type Source interface {
	String() string
	source()
}

// TabSource is the source of entries queued by a tab.
type TabSource struct {
	Key TabKey
}

func (s TabSource) String() string { return "tab:" + s.Key.String() }
func (TabSource) source()          {}

// DocumentSource is the source of entries queued by a document's loader.
type DocumentSource struct {
	Key documents.DocumentKey
}

func (s DocumentSource) String() string { return "document:" + s.Key.String() }
func (DocumentSource) source()          {}

// Message is the payload of an Entry: Refresh or CreateDocument.
type Message interface {
	String() string
	message()
}

// Refresh reports that background work finished. The state change already
// happened inside the loader; the entry only forces a redraw.
type Refresh struct{}

func (Refresh) String() string { return "refresh" }
func (Refresh) message()       {}

// CreateDocument asks the workspace to create a document and replace the
// requesting tab with a document tab showing it.
type CreateDocument struct {
	Args documents.CreateArgs
}

func (CreateDocument) String() string { return "create-document" }
func (CreateDocument) message()       {}

// Entry is one item of the workspace mailbox.
type Entry struct {
	Source  Source
	Message Message
}

// Labels implements mailbox.Labeled.
func (e Entry) Labels() (source, message string) {
	if e.Source != nil {
		source = e.Source.String()
	}
	if e.Message != nil {
		message = e.Message.String()
	}
	return source, message
}

// RefreshNotifier returns the notifier handed to document loaders: it queues
// (DocumentSource(key), Refresh) on sender.
func RefreshNotifier(sender mailbox.Sender[Entry]) documents.Notifier {
	return func(key documents.DocumentKey) error {
		return sender.Send(Entry{Source: DocumentSource{Key: key}, Message: Refresh{}})
	}
}
