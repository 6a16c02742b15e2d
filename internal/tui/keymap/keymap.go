// Package keymap defines the workspace-level key bindings of the TUI.
//
// Every binding uses a ctrl, alt or function key so that plain keystrokes
// always reach the focused tab.
package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the global bindings. It implements help.KeyMap.
type KeyMap struct {
	Home      key.Binding
	New       key.Binding
	Open      key.Binding
	Close     key.Binding
	CloseAll  key.Binding
	Save      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	Split     key.Binding
	Cancel    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// Default returns the built-in bindings.
func Default() KeyMap {
	return KeyMap{
		Home:      key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "home")),
		New:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),
		Open:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open")),
		Close:     key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close tab")),
		CloseAll:  key.NewBinding(key.WithKeys("alt+w"), key.WithHelp("alt+w", "close all")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		NextTab:   key.NewBinding(key.WithKeys("alt+right", "alt+l"), key.WithHelp("alt+→", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("alt+left", "alt+h"), key.WithHelp("alt+←", "previous tab")),
		FocusNext: key.NewBinding(key.WithKeys("alt+down", "alt+j"), key.WithHelp("alt+↓", "next pane")),
		FocusPrev: key.NewBinding(key.WithKeys("alt+up", "alt+k"), key.WithHelp("alt+↑", "previous pane")),
		Split:     key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "split")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Open, k.Close, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.New, k.Open, k.Save},
		{k.Close, k.CloseAll, k.Split},
		{k.NextTab, k.PrevTab, k.FocusNext, k.FocusPrev},
		{k.Help, k.Quit},
	}
}

// All returns every binding, in FullHelp order.
func (k KeyMap) All() []key.Binding {
	var all []key.Binding
	for _, col := range k.FullHelp() {
		all = append(all, col...)
	}
	return all
}

// Conflicts returns the keys bound to more than one binding.
func (k KeyMap) Conflicts() []string {
	seen := make(map[string]bool)
	var dup []string
	for _, b := range append(k.All(), k.Cancel) {
		for _, s := range b.Keys() {
			if seen[s] {
				dup = append(dup, s)
			}
			seen[s] = true
		}
	}
	return dup
}
