// Package workspace runs the docking workspace: it owns the tab and document
// registries, the dock layout and the mailbox, and keeps them consistent.
//
// The UI calls [Workspace.Frame] once per update before drawing. A frame
// starts the workspace on first use, dispatches every queued mailbox entry
// and reconciles the tab registry against the dock, removing the documents
// of tabs the dock dropped without telling anyone.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Iron-Ham/tabshell/internal/dock"
	"github.com/Iron-Ham/tabshell/internal/documents"
	"github.com/Iron-Ham/tabshell/internal/event"
	"github.com/Iron-Ham/tabshell/internal/i18n"
	"github.com/Iron-Ham/tabshell/internal/loader"
	"github.com/Iron-Ham/tabshell/internal/logging"
	"github.com/Iron-Ham/tabshell/internal/mailbox"
	"github.com/Iron-Ham/tabshell/internal/prefs"
	"github.com/Iron-Ham/tabshell/internal/state"
	"github.com/Iron-Ham/tabshell/internal/tabs"
	"github.com/Iron-Ham/tabshell/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
)

// Phase is the lifecycle phase of a Workspace.
type Phase int

const (
	// Uninitialized workspaces have not restored state or opened files yet.
	Uninitialized Phase = iota
	// Running workspaces have completed startup.
	Running
)

func (p Phase) String() string {
	if p == Running {
		return "running"
	}
	return "uninitialized"
}

// Options configures a Workspace. Opener is required.
type Options struct {
	Opener     *documents.Opener
	Store      *state.Store // nil disables persistence
	Bus        *event.Bus
	Logger     *logging.Logger
	Translator i18n.Translator
	Theme      *styles.Theme

	// Directory receives documents created from New tabs.
	Directory string
	// Restore loads the store's snapshot during startup.
	Restore bool
	// Files are opened as document tabs during startup.
	Files []string
}

// Workspace is driven from the UI goroutine only.
type Workspace struct {
	phase  Phase
	opts   Options
	logger *logging.Logger
	bus    *event.Bus

	prefs   prefs.Preferences
	tabs    *tabs.Registry
	docs    *documents.Registry
	dock    *dock.State[tabs.TabKey]
	mailbox *mailbox.Mailbox[tabs.Entry]
	ctx     *tabs.Context

	toast string
}

// New creates an Uninitialized workspace.
func New(opts Options) (*Workspace, error) {
	if opts.Opener == nil {
		return nil, errors.New("workspace: an opener is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus(event.WithPanicLogger(logger.Slog()))
	}
	if opts.Translator == nil {
		opts.Translator = i18n.New("")
	}
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(nil)
	}

	w := &Workspace{
		opts:    opts,
		logger:  logger,
		bus:     bus,
		prefs:   prefs.Default(),
		tabs:    tabs.NewRegistry(tabs.WithBus(bus)),
		docs:    documents.NewRegistry(documents.WithBus(bus)),
		dock:    dock.New[tabs.TabKey](dock.WithStyles(dockStyles(opts.Theme))),
		mailbox: mailbox.New[tabs.Entry](mailbox.WithBus(bus)),
	}
	w.ctx = &tabs.Context{
		Prefs:      &w.prefs,
		Documents:  w.docs,
		Sender:     w.mailbox.Sender(),
		Logger:     logger,
		Translator: opts.Translator,
		Theme:      opts.Theme,
		Directory:  opts.Directory,
	}

	bus.SubscribeAll(func(e event.Event) {
		logger.Debug("event", "type", e.EventType(), "payload", fmt.Sprintf("%+v", e))
	})
	return w, nil
}

func dockStyles(th *styles.Theme) dock.Styles {
	return dock.Styles{
		TabActive:   th.TabActive,
		TabInactive: th.TabInactive,
		TabBar:      th.TabBar,
		Pane:        th.Pane,
		PaneFocused: th.PaneFocused,
	}
}

// Phase returns the lifecycle phase.
func (w *Workspace) Phase() Phase { return w.phase }

// Tabs returns the tab registry.
func (w *Workspace) Tabs() *tabs.Registry { return w.tabs }

// Documents returns the document registry.
func (w *Workspace) Documents() *documents.Registry { return w.docs }

// Dock returns the layout.
func (w *Workspace) Dock() *dock.State[tabs.TabKey] { return w.dock }

// Mailbox returns the workspace mailbox.
func (w *Workspace) Mailbox() *mailbox.Mailbox[tabs.Entry] { return w.mailbox }

// Prefs returns the live preferences.
func (w *Workspace) Prefs() *prefs.Preferences { return &w.prefs }

// Context returns the context handed to tabs.
func (w *Workspace) Context() *tabs.Context { return w.ctx }

// Toast returns the last user-facing message, if any.
func (w *Workspace) Toast() string { return w.toast }

// ClearToast drops the last user-facing message.
func (w *Workspace) ClearToast() { w.toast = "" }

// SetTheme restyles tabs and the layout.
func (w *Workspace) SetTheme(th *styles.Theme) {
	w.ctx.Theme = th
	w.dock.SetStyles(dockStyles(th))
}

// SetSpinner sets the loading indicator frame shown by loading documents.
func (w *Workspace) SetSpinner(frame string) { w.ctx.Spinner = frame }

// Start restores the saved workspace, shows the Home tab if preferred and
// opens the startup files. It runs once; later calls do nothing.
func (w *Workspace) Start() {
	if w.phase == Running {
		return
	}
	if w.opts.Restore && w.opts.Store != nil {
		w.restore()
	}
	if w.prefs.ShowHomeTabOnStartup {
		w.ShowHome()
	}
	for _, path := range w.opts.Files {
		if err := w.OpenFile(path); err != nil {
			w.logger.Warn("startup file not opened", "path", path, "error", err)
		}
	}
	w.phase = Running
	w.logger.Info("workspace started", "tabs", w.tabs.Len(), "documents", w.docs.Len())
}

// Frame is the per-update step: start if needed, dispatch mailbox entries,
// then reconcile the registry with the dock.
func (w *Workspace) Frame() {
	w.Start()
	for _, e := range w.mailbox.Drain() {
		w.dispatch(e)
	}
	w.reconcile()
}

func (w *Workspace) dispatch(e tabs.Entry) {
	switch msg := e.Message.(type) {
	case tabs.Refresh:
		// The result may trail the entry; Loading keeps polling until it lands.
		if src, ok := e.Source.(tabs.DocumentSource); ok {
			w.docs.Update(src.Key)
		}
	case tabs.CreateDocument:
		src, ok := e.Source.(tabs.TabSource)
		if !ok {
			w.logger.Error("create-document request without a tab source", "source", e.Source)
			return
		}
		w.createDocument(src.Key, msg.Args)
	default:
		w.logger.Error("unknown mailbox message", "source", e.Source, "message", e.Message)
	}
}

// createDocument replaces the requesting tab with a document tab showing a
// newly created document.
func (w *Workspace) createDocument(tabKey tabs.TabKey, args documents.CreateArgs) {
	log := w.logger.WithTab(tabKey)
	if !w.tabs.Contains(tabKey) {
		log.Error("create-document request from a vanished tab dropped", "name", args.Name)
		return
	}

	docKey, err := w.opts.Opener.Create(w.docs, args)
	if err != nil {
		log.Warn("document not created", "name", args.Name, "error", err)
		w.toast = w.opts.Translator.Tr(i18n.CreateFailed, err)
		return
	}
	path := args.Path()
	if !w.tabs.Replace(tabKey, tabs.NewDocumentTab(filepath.Base(path), path, docKey)) {
		log.Error("tab vanished while creating its document")
		w.docs.Remove(docKey)
		return
	}
	log.WithDocument(docKey).Info("document created", "path", path)
}

// reconcile treats the dock as the truth: tabs it no longer holds are
// dropped and their close hooks run, so their documents go with them.
func (w *Workspace) reconcile() {
	pruned := w.tabs.Reconcile(w.dock.Tabs())
	for _, p := range pruned {
		tabs.Release(p.Tab, w.ctx)
		w.logger.WithTab(p.Key).Debug("orphaned tab pruned", "kind", string(p.Tab.Kind()))
	}
}

// ShowHome focuses the Home tab, adding one if there is none.
func (w *Workspace) ShowHome() tabs.TabKey {
	if key, ok := w.tabs.FindHome(); ok {
		if !w.dock.SetActive(key) {
			w.dock.Push(key)
		}
		return key
	}
	key := w.tabs.Add(tabs.NewHomeTab())
	w.dock.Push(key)
	return key
}

// NewDocument adds a "new document" form tab.
func (w *Workspace) NewDocument() tabs.TabKey {
	key := w.tabs.Add(tabs.NewNewTab())
	w.dock.Push(key)
	return key
}

// OpenFile opens path in a new document tab. Unsupported paths are reported
// as a toast and returned as an error; read failures show up in the tab.
func (w *Workspace) OpenFile(path string) error {
	docKey, err := w.opts.Opener.Open(w.docs, path, tabs.RefreshNotifier(w.mailbox.Sender()))
	if err != nil {
		if errors.Is(err, documents.ErrUnsupportedFormat) {
			w.toast = w.opts.Translator.Tr(i18n.OpenUnsupported, path)
		} else {
			w.toast = w.opts.Translator.Tr(i18n.OpenFailed, path, err)
		}
		return err
	}
	key := w.tabs.Add(tabs.NewDocumentTab(filepath.Base(path), path, docKey))
	w.dock.Push(key)
	w.logger.WithTab(key).WithDocument(docKey).Info("document opened", "path", path)
	return nil
}

// CloseActive closes the focused tab through its close hook.
func (w *Workspace) CloseActive() bool {
	key, ok := w.dock.Active()
	if !ok {
		return false
	}
	return w.dock.Close(key, w)
}

// CloseAll drops every tab from the dock. Close hooks are not run here; the
// next frame's reconciliation releases the documents.
func (w *Workspace) CloseAll() {
	w.dock.RetainTabs(func(tabs.TabKey) bool { return false })
}

// Update delivers msg to the focused tab.
func (w *Workspace) Update(msg tea.Msg) tea.Cmd {
	key, ok := w.dock.Active()
	if !ok {
		return nil
	}
	return w.tabs.Update(key, msg, w.ctx)
}

// Render draws the layout into a width x height box.
func (w *Workspace) Render(width, height int) string {
	if w.dock.Len() == 0 {
		return w.ctx.Theme.Muted.Render(w.opts.Translator.Tr(i18n.EmptyWorkspace))
	}
	return w.dock.Render(w, width, height)
}

// Loading polls every document's loader and reports whether any is still
// loading.
func (w *Workspace) Loading() bool {
	for _, k := range w.docs.Keys() {
		w.docs.Update(k)
		if doc, ok := w.docs.Get(k); ok && doc.State() == loader.Loading {
			return true
		}
	}
	return false
}

// Title implements dock.Viewer.
func (w *Workspace) Title(key tabs.TabKey) string {
	return w.tabs.Label(key, w.ctx)
}

// View implements dock.Viewer.
func (w *Workspace) View(key tabs.TabKey, s dock.Surface) string {
	return w.tabs.Render(key, s, w.ctx)
}

// OnClose implements dock.Viewer.
func (w *Workspace) OnClose(key tabs.TabKey) dock.CloseResponse {
	outcome, err := w.tabs.Close(key, w.ctx)
	if err != nil {
		w.logger.WithTab(key).Error("close of an unknown tab", "error", err)
		return dock.Close
	}
	if outcome == tabs.CloseKeep {
		return dock.Keep
	}
	return dock.Close
}

// Shutdown writes modified documents and the snapshot of a running
// workspace. The mailbox stays open: loaders still running may deliver into
// it until the process exits.
func (w *Workspace) Shutdown() error {
	if w.phase != Running {
		return nil
	}
	_, docErr := w.SaveDocuments()
	if w.opts.Store == nil {
		return docErr
	}
	return errors.Join(docErr, w.Save())
}
