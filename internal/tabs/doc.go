// Package tabs holds the tabs of the workspace and the messages they
// exchange with it.
//
// A [Tab] is a [HomeTab], a [NewTab] form or a [DocumentTab]. The set is
// closed and the [Registry] dispatches over it with type switches. Tabs are
// addressed by [TabKey]; a document tab refers to its document by
// documents.DocumentKey and resolves it on every render.
//
// Work that finishes outside the UI goroutine, and requests a tab cannot
// carry out itself, reach the workspace as an [Entry] through a
// mailbox.Mailbox.
package tabs
