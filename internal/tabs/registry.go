package tabs

import (
	"errors"
	"iter"
	"slices"

	"github.com/Iron-Ham/tabshell/internal/arena"
	"github.com/Iron-Ham/tabshell/internal/dock"
	"github.com/Iron-Ham/tabshell/internal/event"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrTabNotFound is returned for keys that do not resolve to a tab.
var ErrTabNotFound = errors.New("tabs: tab not found")

// Pruned is a tab dropped by Reconcile.
type Pruned struct {
	Key TabKey
	Tab Tab
}

// DocumentRef is the key and path of a document tab.
type DocumentRef struct {
	Key  TabKey
	Path string
}

// Registry owns the open tabs. It is used from the UI goroutine only.
type Registry struct {
	tabs  *arena.Arena[record]
	order []TabKey // insertion order
	bus   *event.Bus
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithBus publishes tab lifecycle events to bus.
func WithBus(bus *event.Bus) RegistryOption {
	return func(r *Registry) {
		r.bus = bus
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{tabs: arena.New[record]()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add stores tab and returns its key.
func (r *Registry) Add(tab Tab) TabKey {
	key := TabKey{r.tabs.Insert(record{tab})}
	r.order = append(r.order, key)

	title := ""
	if d, ok := tab.(*DocumentTab); ok {
		title = d.Title
	}
	r.publish(event.NewTabOpenedEvent(key.String(), string(tab.Kind()), title))
	return key
}

// Get returns the tab stored under key.
func (r *Registry) Get(key TabKey) (Tab, bool) {
	rec, ok := r.tabs.Get(key.Key)
	return rec.tab, ok
}

// Contains reports whether key resolves to a tab.
func (r *Registry) Contains(key TabKey) bool {
	return r.tabs.Contains(key.Key)
}

// Replace swaps the tab stored under key for tab, keeping key and its
// position. It reports false if key does not resolve.
func (r *Registry) Replace(key TabKey, tab Tab) bool {
	return r.tabs.Set(key.Key, record{tab})
}

// Len returns the number of tabs.
func (r *Registry) Len() int { return r.tabs.Len() }

// Keys returns every key in insertion order.
func (r *Registry) Keys() []TabKey { return slices.Clone(r.order) }

// All iterates over the tabs in insertion order.
func (r *Registry) All() iter.Seq2[TabKey, Tab] {
	return func(yield func(TabKey, Tab) bool) {
		for _, key := range r.order {
			rec, ok := r.tabs.Get(key.Key)
			if !ok {
				continue
			}
			if !yield(key, rec.tab) {
				return
			}
		}
	}
}

// FindHome returns the first Home tab in insertion order.
func (r *Registry) FindHome() (TabKey, bool) {
	for key, tab := range r.All() {
		if _, ok := tab.(*HomeTab); ok {
			return key, true
		}
	}
	return TabKey{}, false
}

// DocumentTabs returns the key and path of every document tab, collected
// up front so callers can mutate the registry afterwards.
func (r *Registry) DocumentTabs() []DocumentRef {
	var refs []DocumentRef
	for key, tab := range r.All() {
		if d, ok := tab.(*DocumentTab); ok {
			refs = append(refs, DocumentRef{Key: key, Path: d.Path})
		}
	}
	return refs
}

// Label returns the title shown in the tab bar.
func (r *Registry) Label(key TabKey, ctx *Context) string {
	tab, ok := r.Get(key)
	if !ok {
		return "?"
	}
	switch t := tab.(type) {
	case *HomeTab:
		return t.label(ctx)
	case *NewTab:
		return t.label(ctx)
	case *DocumentTab:
		return t.label(ctx)
	}
	return ""
}

// Render draws the tab into s. Unknown keys render nothing.
func (r *Registry) Render(key TabKey, s dock.Surface, ctx *Context) string {
	tab, ok := r.Get(key)
	if !ok {
		return ""
	}
	switch t := tab.(type) {
	case *HomeTab:
		return t.render(s, ctx)
	case *NewTab:
		return t.render(s, ctx)
	case *DocumentTab:
		return t.render(s, ctx)
	}
	return ""
}

// Update delivers msg to the tab.
func (r *Registry) Update(key TabKey, msg tea.Msg, ctx *Context) tea.Cmd {
	tab, ok := r.Get(key)
	if !ok {
		return nil
	}
	switch t := tab.(type) {
	case *HomeTab:
		return t.update(msg, ctx)
	case *NewTab:
		return t.update(key, msg, ctx)
	case *DocumentTab:
		return t.update(msg, ctx)
	}
	return nil
}

// Release runs the close hook of tab: a document tab removes its document
// from ctx.Documents. No variant vetoes.
func Release(tab Tab, ctx *Context) CloseOutcome {
	switch t := tab.(type) {
	case *DocumentTab:
		if ctx != nil && ctx.Documents != nil {
			ctx.Documents.Remove(t.DocumentKey)
		}
	}
	return CloseAllow
}

// Close runs the tab's close hook and, unless it vetoes, removes the tab.
func (r *Registry) Close(key TabKey, ctx *Context) (CloseOutcome, error) {
	tab, ok := r.Get(key)
	if !ok {
		return CloseAllow, ErrTabNotFound
	}
	if outcome := Release(tab, ctx); outcome == CloseKeep {
		return outcome, nil
	}

	r.tabs.Remove(key.Key)
	r.order = slices.DeleteFunc(r.order, func(k TabKey) bool { return k == key })
	r.publish(event.NewTabClosedEvent(key.String(), string(tab.Kind())))
	return CloseAllow, nil
}

// Reconcile drops every tab whose key is not in live and returns what it
// dropped. Close hooks are not run; that is up to the caller. Calling it
// again with the same set drops nothing.
func (r *Registry) Reconcile(live []TabKey) []Pruned {
	keep := make(map[TabKey]struct{}, len(live))
	for _, k := range live {
		keep[k] = struct{}{}
	}

	var pruned []Pruned
	r.order = slices.DeleteFunc(r.order, func(k TabKey) bool {
		if _, ok := keep[k]; ok {
			return false
		}
		if rec, ok := r.tabs.Remove(k.Key); ok {
			pruned = append(pruned, Pruned{Key: k, Tab: rec.tab})
		}
		return true
	})

	for _, p := range pruned {
		r.publish(event.NewTabPrunedEvent(p.Key.String(), string(p.Tab.Kind())))
	}
	return pruned
}

func (r *Registry) publish(e event.Event) {
	if r.bus != nil {
		r.bus.Publish(e)
	}
}
