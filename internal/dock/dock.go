// Package dock is a small docking layout: a row of leaves, each holding an
// ordered list of tabs with one active tab, and one focused leaf.
//
// The layout only knows tab keys. Titles, contents and close decisions come
// from a [Viewer]. Bulk operations such as [State.RetainTabs] drop tabs
// without consulting the Viewer, so owners of per-tab data must reconcile
// against [State.Tabs] rather than rely on [Viewer.OnClose].
package dock

import (
	"encoding/json"
	"errors"
	"slices"
)

// CloseResponse is a Viewer's answer to a close request.
type CloseResponse int

const (
	// Close lets the tab be removed.
	Close CloseResponse = iota
	// Keep vetoes the close.
	Keep
)

// Surface describes the area a tab is drawn into.
type Surface struct {
	Width   int
	Height  int
	Focused bool
}

// Viewer supplies everything the layout needs to know about a tab.
type Viewer[K comparable] interface {
	Title(key K) string
	View(key K, s Surface) string
	OnClose(key K) CloseResponse
}

// Leaf is one pane of the layout.
type Leaf[K comparable] struct {
	Tabs   []K `json:"tabs"`
	Active int `json:"active"`
}

func (l *Leaf[K]) active() (K, bool) {
	if len(l.Tabs) == 0 {
		var zero K
		return zero, false
	}
	return l.Tabs[l.Active], true
}

func (l *Leaf[K]) clamp() {
	if l.Active >= len(l.Tabs) {
		l.Active = len(l.Tabs) - 1
	}
	if l.Active < 0 {
		l.Active = 0
	}
}

// State is the layout. The zero value is not usable; call New.
type State[K comparable] struct {
	leaves  []*Leaf[K]
	focused int
	styles  Styles
}

// New returns a layout with a single empty leaf.
func New[K comparable](opts ...Option) *State[K] {
	s := &State[K]{leaves: []*Leaf[K]{{}}}
	for _, opt := range opts {
		opt(&s.styles)
	}
	return s
}

// Tabs returns every tab in the layout, leaf by leaf.
func (s *State[K]) Tabs() []K {
	var out []K
	for _, l := range s.leaves {
		out = append(out, l.Tabs...)
	}
	return out
}

// Len returns the number of tabs in the layout.
func (s *State[K]) Len() int {
	n := 0
	for _, l := range s.leaves {
		n += len(l.Tabs)
	}
	return n
}

// Leaves returns a copy of the tab lists of every leaf.
func (s *State[K]) Leaves() [][]K {
	out := make([][]K, len(s.leaves))
	for i, l := range s.leaves {
		out[i] = slices.Clone(l.Tabs)
	}
	return out
}

// Focused returns the index of the focused leaf.
func (s *State[K]) Focused() int { return s.focused }

// Find returns the leaf and position of key.
func (s *State[K]) Find(key K) (leaf, index int, ok bool) {
	for li, l := range s.leaves {
		if i := slices.Index(l.Tabs, key); i >= 0 {
			return li, i, true
		}
	}
	return 0, 0, false
}

// Active returns the active tab of the focused leaf.
func (s *State[K]) Active() (K, bool) {
	return s.leaves[s.focused].active()
}

// SetActive focuses the leaf holding key and makes key its active tab.
func (s *State[K]) SetActive(key K) bool {
	li, i, ok := s.Find(key)
	if !ok {
		return false
	}
	s.focused = li
	s.leaves[li].Active = i
	return true
}

// Push appends key to the focused leaf and activates it.
func (s *State[K]) Push(key K) {
	l := s.leaves[s.focused]
	l.Tabs = append(l.Tabs, key)
	l.Active = len(l.Tabs) - 1
}

// Close asks v whether key may close and removes it unless v answers Keep.
func (s *State[K]) Close(key K, v Viewer[K]) bool {
	if _, _, ok := s.Find(key); !ok {
		return false
	}
	if v.OnClose(key) == Keep {
		return false
	}
	return s.Remove(key)
}

// Remove drops key without consulting any Viewer.
func (s *State[K]) Remove(key K) bool {
	li, i, ok := s.Find(key)
	if !ok {
		return false
	}
	l := s.leaves[li]
	l.Tabs = slices.Delete(l.Tabs, i, i+1)
	if i < l.Active {
		l.Active--
	}
	l.clamp()
	s.collapse()
	return true
}

// RetainTabs keeps only the tabs for which keep returns true. The Viewer is
// not told about the tabs that go away.
func (s *State[K]) RetainTabs(keep func(K) bool) {
	for _, l := range s.leaves {
		current, hadActive := l.active()
		l.Tabs = slices.DeleteFunc(l.Tabs, func(k K) bool { return !keep(k) })
		if hadActive {
			if i := slices.Index(l.Tabs, current); i >= 0 {
				l.Active = i
			}
		}
		l.clamp()
	}
	s.collapse()
}

// collapse removes empty leaves, keeping at least one.
func (s *State[K]) collapse() {
	focused := s.leaves[s.focused]
	s.leaves = slices.DeleteFunc(s.leaves, func(l *Leaf[K]) bool { return len(l.Tabs) == 0 })
	if len(s.leaves) == 0 {
		s.leaves = []*Leaf[K]{{}}
		s.focused = 0
		return
	}
	if i := slices.Index(s.leaves, focused); i >= 0 {
		s.focused = i
	} else if s.focused >= len(s.leaves) {
		s.focused = len(s.leaves) - 1
	}
}

// FocusNext moves focus to the next leaf, wrapping around.
func (s *State[K]) FocusNext() {
	s.focused = (s.focused + 1) % len(s.leaves)
}

// FocusPrev moves focus to the previous leaf, wrapping around.
func (s *State[K]) FocusPrev() {
	s.focused = (s.focused + len(s.leaves) - 1) % len(s.leaves)
}

// NextTab activates the next tab of the focused leaf, wrapping around.
func (s *State[K]) NextTab() {
	l := s.leaves[s.focused]
	if len(l.Tabs) > 0 {
		l.Active = (l.Active + 1) % len(l.Tabs)
	}
}

// PrevTab activates the previous tab of the focused leaf, wrapping around.
func (s *State[K]) PrevTab() {
	l := s.leaves[s.focused]
	if len(l.Tabs) > 0 {
		l.Active = (l.Active + len(l.Tabs) - 1) % len(l.Tabs)
	}
}

// SplitActive moves the active tab of the focused leaf into a new leaf to
// its right and focuses it. A leaf with a single tab is not split.
func (s *State[K]) SplitActive() bool {
	l := s.leaves[s.focused]
	key, ok := l.active()
	if !ok || len(l.Tabs) < 2 {
		return false
	}
	l.Tabs = slices.Delete(l.Tabs, l.Active, l.Active+1)
	l.clamp()

	s.leaves = slices.Insert(s.leaves, s.focused+1, &Leaf[K]{Tabs: []K{key}})
	s.focused++
	return true
}

type stateJSON[K comparable] struct {
	Leaves  []*Leaf[K] `json:"leaves"`
	Focused int        `json:"focused"`
}

// ErrInvalidLayout is returned when a persisted layout is inconsistent.
var ErrInvalidLayout = errors.New("dock: invalid layout")

// MarshalJSON persists leaves and focus.
func (s *State[K]) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON[K]{Leaves: s.leaves, Focused: s.focused})
}

// UnmarshalJSON restores a layout written by MarshalJSON. Styles are kept.
func (s *State[K]) UnmarshalJSON(data []byte) error {
	var in stateJSON[K]
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	seen := make(map[K]bool)
	for _, l := range in.Leaves {
		if l == nil {
			return ErrInvalidLayout
		}
		for _, k := range l.Tabs {
			if seen[k] {
				return ErrInvalidLayout
			}
			seen[k] = true
		}
		l.clamp()
	}
	if len(in.Leaves) == 0 {
		in.Leaves = []*Leaf[K]{{}}
	}
	if in.Focused < 0 || in.Focused >= len(in.Leaves) {
		in.Focused = 0
	}
	s.leaves = in.Leaves
	s.focused = in.Focused
	s.collapse()
	return nil
}
