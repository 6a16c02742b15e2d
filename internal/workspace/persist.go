package workspace

import (
	"errors"
	"fmt"

	"github.com/Iron-Ham/tabshell/internal/dock"
	"github.com/Iron-Ham/tabshell/internal/documents"
	"github.com/Iron-Ham/tabshell/internal/event"
	"github.com/Iron-Ham/tabshell/internal/i18n"
	"github.com/Iron-Ham/tabshell/internal/state"
	"github.com/Iron-Ham/tabshell/internal/tabs"
)

// ErrNoStore is returned by Save on a workspace without a state store.
var ErrNoStore = errors.New("workspace: no state store")

// Save writes the tabs, layout, preferences and document key space.
func (w *Workspace) Save() error {
	if w.opts.Store == nil {
		return ErrNoStore
	}
	snap := &state.Snapshot{
		Tabs:         w.tabs,
		Dock:         w.dock,
		Preferences:  w.prefs,
		DocumentKeys: w.docs.KeySpace(),
	}
	if err := w.opts.Store.Save(snap); err != nil {
		w.logger.Error("workspace not saved", "path", w.opts.Store.Path(), "error", err)
		w.toast = w.opts.Translator.Tr(i18n.WorkspaceSaveFailed, err)
		return err
	}
	w.bus.Publish(event.NewWorkspaceSavedEvent(w.opts.Store.Path(), w.tabs.Len()))
	w.toast = w.opts.Translator.Tr(i18n.WorkspaceSaved)
	return nil
}

// SaveDocuments writes every modified text document back to its file and
// returns how many were written. Failures are logged, toasted and joined.
func (w *Workspace) SaveDocuments() (int, error) {
	var (
		saved int
		errs  []error
	)
	for _, k := range w.docs.Keys() {
		doc, ok := w.docs.Get(k)
		if !ok {
			continue
		}
		text, ok := doc.(*documents.TextDocument)
		if !ok || !text.Modified() {
			continue
		}
		log := w.logger.WithDocument(k)
		if err := w.opts.Opener.Save(text); err != nil {
			log.Error("document not saved", "path", text.Path(), "error", err)
			w.toast = w.opts.Translator.Tr(i18n.DocumentSaveFailed, text.Path(), err)
			errs = append(errs, fmt.Errorf("save %s: %w", text.Path(), err))
			continue
		}
		saved++
		w.bus.Publish(event.NewDocumentSavedEvent(k.String(), text.Path()))
		log.Info("document saved", "path", text.Path())
	}
	return saved, errors.Join(errs...)
}

// SaveAll writes modified documents, then the snapshot when there is a
// store. A document failure keeps its toast over the snapshot's.
func (w *Workspace) SaveAll() error {
	saved, docErr := w.SaveDocuments()
	toast := w.toast

	var snapErr error
	if w.opts.Store != nil {
		snapErr = w.Save()
	} else if docErr == nil {
		w.toast = w.opts.Translator.Tr(i18n.DocumentsSaved, saved)
	}
	if docErr != nil {
		w.toast = toast
	}
	return errors.Join(docErr, snapErr)
}

// restore loads the snapshot into the registries. Document content is not
// persisted: every document tab gets a fresh document loading from its
// path, under a key the previous run never issued.
func (w *Workspace) restore() {
	log := w.logger.With("path", w.opts.Store.Path())

	snap := &state.Snapshot{Tabs: w.tabs, Dock: w.dock, Preferences: w.prefs}
	if err := w.opts.Store.Load(snap); err != nil {
		if errors.Is(err, state.ErrNoSnapshot) {
			log.Debug("no snapshot to restore")
		} else {
			log.Warn("snapshot not restored", "error", err)
		}
		w.resetRegistries()
		return
	}
	w.prefs = snap.Preferences

	if err := w.docs.RestoreKeySpace(snap.DocumentKeys); err != nil {
		log.Warn("document key space not restored", "error", err)
	}

	// Collect first, then patch, so the registry is not mutated while it
	// is being iterated.
	refs := w.tabs.DocumentTabs()
	for _, ref := range refs {
		docKey, err := w.opts.Opener.Open(w.docs, ref.Path, tabs.RefreshNotifier(w.mailbox.Sender()))
		if err != nil {
			log.Warn("restored tab has no document", "tab_key", ref.Key.String(), "document_path", ref.Path, "error", err)
			continue
		}
		if tab, ok := w.tabs.Get(ref.Key); ok {
			tab.(*tabs.DocumentTab).SetDocumentKey(docKey)
		}
	}

	// Layout entries without a tab cannot be drawn.
	w.dock.RetainTabs(w.tabs.Contains)

	w.bus.Publish(event.NewWorkspaceRestoredEvent(w.tabs.Len(), w.docs.Len()))
	log.Info("workspace restored", "tabs", w.tabs.Len(), "documents", w.docs.Len())
}

// resetRegistries discards whatever a failed restore decoded.
func (w *Workspace) resetRegistries() {
	w.tabs = tabs.NewRegistry(tabs.WithBus(w.bus))
	w.dock = dock.New[tabs.TabKey](dock.WithStyles(dockStyles(w.ctx.Theme)))
}
