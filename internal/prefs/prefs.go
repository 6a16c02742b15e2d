// Package prefs holds user preferences that are persisted with the workspace.
package prefs

import "encoding/json"

// Preferences are shared by pointer with every tab and mutated only on the
// UI goroutine.
type Preferences struct {
	ShowHomeTabOnStartup bool `json:"show_home_tab_on_startup"`
}

// Default returns the preferences of a fresh install.
func Default() Preferences {
	return Preferences{ShowHomeTabOnStartup: true}
}

// UnmarshalJSON fills fields missing from data with their defaults.
func (p *Preferences) UnmarshalJSON(data []byte) error {
	type plain Preferences
	v := plain(Default())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Preferences(v)
	return nil
}
