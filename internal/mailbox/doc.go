// Package mailbox delivers entries from background goroutines and tabs into
// the UI loop.
//
// Loader workers finish on their own goroutines and tabs raise requests while
// they are being updated; neither may touch the registries directly. Both
// queue an entry instead, and the UI loop drains the queue once per frame.
//
// # Main Types
//
//   - [Mailbox]: The single receiving end; drains entries in FIFO order
//   - [Sender]: Cheap, copyable sending end usable from any goroutine
//   - [WakeMsg]: bubbletea message produced when entries are waiting
//
// # Basic Usage
//
//	mb := mailbox.New[Entry]()
//	send := mb.Sender()
//
//	go func() {
//	    // ... background work ...
//	    if err := send.Send(entry); err != nil {
//	        panic(err) // the UI is gone
//	    }
//	}()
//
//	// In the bubbletea program:
//	//   Init:   return mb.WaitCmd()
//	//   Update: case mailbox.WakeMsg: entries := mb.Drain(); return m, mb.WaitCmd()
//
// # Thread Safety
//
// Send never blocks: the queue is unbounded and the wake-up signal is
// coalesced. Drain, Len and Close are safe to call concurrently with Send.
package mailbox
