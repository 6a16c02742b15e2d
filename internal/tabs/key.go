package tabs

import "github.com/Iron-Ham/tabshell/internal/arena"

// TabKey identifies a tab in a Registry.
type TabKey struct {
	arena.Key
}

// Compare orders tab keys by slot index, then generation.
func (k TabKey) Compare(other TabKey) int {
	return k.Key.Compare(other.Key)
}

// ParseTabKey parses the form produced by TabKey.String.
func ParseTabKey(s string) (TabKey, error) {
	k, err := arena.ParseKey(s)
	if err != nil {
		return TabKey{}, err
	}
	return TabKey{k}, nil
}
