package documents

import (
	"sync"

	"github.com/Iron-Ham/tabshell/internal/arena"
	"github.com/Iron-Ham/tabshell/internal/event"
	"github.com/Iron-Ham/tabshell/internal/loader"
)

// Registry owns every open document. It is shared between the workspace and
// the tabs; the mutex guards the arena only and is never held while content
// is read or decoded.
type Registry struct {
	mu   sync.Mutex
	docs *arena.Arena[Document]
	bus  *event.Bus
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithBus publishes document lifecycle events to bus.
func WithBus(bus *event.Bus) RegistryOption {
	return func(r *Registry) {
		r.bus = bus
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{docs: arena.New[Document]()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Insert stores d and returns its key.
func (r *Registry) Insert(d Document) DocumentKey {
	return r.InsertWithKey(func(DocumentKey) Document { return d })
}

// InsertWithKey calls factory with the key the document will be stored
// under and stores the result. The factory runs with the registry locked
// and must not call back into it; starting a loader is fine.
func (r *Registry) InsertWithKey(factory func(DocumentKey) Document) DocumentKey {
	var doc Document
	r.mu.Lock()
	k := r.docs.InsertWithKey(func(k arena.Key) Document {
		doc = factory(DocumentKey{k})
		return doc
	})
	r.mu.Unlock()

	key := DocumentKey{k}
	r.publish(event.NewDocumentCreatedEvent(key.String(), doc.Path(), doc.Kind().String(), doc.State() == loader.Loading))
	return key
}

// Get returns the document stored under k.
func (r *Registry) Get(k DocumentKey) (Document, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs.Get(k.Key)
}

// Contains reports whether k resolves to a document.
func (r *Registry) Contains(k DocumentKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs.Contains(k.Key)
}

// Remove deletes the document stored under k. A worker still loading its
// content finishes on its own; its result is dropped with the loader.
func (r *Registry) Remove(k DocumentKey) (Document, bool) {
	r.mu.Lock()
	doc, ok := r.docs.Remove(k.Key)
	r.mu.Unlock()

	if ok {
		r.publish(event.NewDocumentRemovedEvent(k.String(), doc.Path()))
	}
	return doc, ok
}

// Update polls the loader of the document stored under k and reports
// whether it reached a terminal state during this call.
func (r *Registry) Update(k DocumentKey) bool {
	doc, ok := r.Get(k)
	if !ok || !doc.Update() {
		return false
	}
	if err := doc.Err(); err != nil {
		r.publish(event.NewDocumentFailedEvent(k.String(), doc.Path(), err.Error()))
	} else {
		r.publish(event.NewDocumentLoadedEvent(k.String(), doc.Path()))
	}
	return true
}

// Len returns the number of documents.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs.Len()
}

// Keys returns the keys of all documents in slot order.
func (r *Registry) Keys() []DocumentKey {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]DocumentKey, 0, r.docs.Len())
	for k := range r.docs.All() {
		keys = append(keys, DocumentKey{k})
	}
	return keys
}

// KeySpace returns the registry's allocation state as if every document had
// been removed. A registry restored from it never reissues a current key.
func (r *Registry) KeySpace() arena.KeySpace {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs.KeySpace()
}

// RestoreKeySpace replaces the allocation state of an empty registry.
func (r *Registry) RestoreKeySpace(ks arena.KeySpace) error {
	restored, err := arena.FromKeySpace[Document](ks)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.docs.Len() != 0 {
		return ErrRegistryNotEmpty
	}
	r.docs = restored
	return nil
}

func (r *Registry) publish(e event.Event) {
	if r.bus != nil {
		r.bus.Publish(e)
	}
}
