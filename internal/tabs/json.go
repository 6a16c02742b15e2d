package tabs

import (
	"encoding/json"
	"fmt"

	"github.com/Iron-Ham/tabshell/internal/arena"
	"github.com/Iron-Ham/tabshell/internal/documents"
)

// record is the arena value of a Registry. It persists its tab as a tagged
// envelope.
type record struct {
	tab Tab
}

type envelope struct {
	Kind        Kind                   `json:"kind"`
	Name        string                 `json:"name,omitempty"`
	DocKind     documents.Kind         `json:"document_kind,omitempty"`
	Title       string                 `json:"title,omitempty"`
	Path        string                 `json:"path,omitempty"`
	DocumentKey *documents.DocumentKey `json:"document_key,omitempty"`
}

func (r record) MarshalJSON() ([]byte, error) {
	var env envelope
	switch t := r.tab.(type) {
	case *HomeTab:
		env.Kind = KindHome
	case *NewTab:
		env.Kind = KindNew
		env.Name = t.Name()
		env.DocKind = t.DocumentKind()
	case *DocumentTab:
		key := t.DocumentKey
		env = envelope{Kind: KindDocument, Title: t.Title, Path: t.Path, DocumentKey: &key}
	default:
		return nil, fmt.Errorf("tabs: cannot persist %T", r.tab)
	}
	return json.Marshal(env)
}

func (r *record) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	switch env.Kind {
	case KindHome:
		r.tab = NewHomeTab()
	case KindNew:
		t := NewNewTab()
		t.SetName(env.Name)
		t.SetDocumentKind(env.DocKind)
		r.tab = t
	case KindDocument:
		t := NewDocumentTab(env.Title, env.Path, documents.DocumentKey{})
		if env.DocumentKey != nil {
			t.DocumentKey = *env.DocumentKey
		}
		r.tab = t
	default:
		return fmt.Errorf("tabs: unknown tab kind %q", env.Kind)
	}
	return nil
}

type registryJSON struct {
	Tabs  *arena.Arena[record] `json:"tabs"`
	Order []TabKey             `json:"order"`
}

// MarshalJSON persists the tabs with their keys and insertion order.
// Document content is not included.
func (r *Registry) MarshalJSON() ([]byte, error) {
	order := r.order
	if order == nil {
		order = []TabKey{}
	}
	return json.Marshal(registryJSON{Tabs: r.tabs, Order: order})
}

// UnmarshalJSON restores a registry written by MarshalJSON. Keys saved
// before resolve to the same tabs afterwards. The event bus is kept.
func (r *Registry) UnmarshalJSON(data []byte) error {
	in := registryJSON{Tabs: arena.New[record]()}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	seen := make(map[TabKey]bool, len(in.Order))
	for _, k := range in.Order {
		if seen[k] || !in.Tabs.Contains(k.Key) {
			return fmt.Errorf("tabs: order lists %s which is not a tab", k)
		}
		seen[k] = true
	}
	// Tabs missing from the order go last, in slot order.
	for _, k := range in.Tabs.Keys() {
		if key := (TabKey{k}); !seen[key] {
			in.Order = append(in.Order, key)
		}
	}

	r.tabs = in.Tabs
	r.order = in.Order
	return nil
}
