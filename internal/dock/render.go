package dock

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// MaxTitleWidth bounds a single tab title in the tab bar.
const MaxTitleWidth = 24

// Styles controls how Render draws the layout. The zero value draws plain
// text with no borders.
type Styles struct {
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabBar      lipgloss.Style
	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
}

// Option configures a State.
type Option func(*Styles)

// WithStyles sets the styles used by Render.
func WithStyles(st Styles) Option {
	return func(s *Styles) {
		*s = st
	}
}

// SetStyles replaces the styles used by Render.
func (s *State[K]) SetStyles(st Styles) { s.styles = st }

// Render draws every leaf side by side into a width x height box. Only the
// active tab of each leaf is asked for its view.
func (s *State[K]) Render(v Viewer[K], width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	n := len(s.leaves)
	panes := make([]string, 0, n)
	remaining := width
	for i, l := range s.leaves {
		w := remaining / (n - i)
		remaining -= w
		panes = append(panes, s.renderLeaf(v, l, i == s.focused, w, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

func (s *State[K]) renderLeaf(v Viewer[K], l *Leaf[K], focused bool, width, height int) string {
	pane := s.styles.Pane
	if focused {
		pane = s.styles.PaneFocused
	}
	innerW := max(width-pane.GetHorizontalFrameSize(), 1)
	innerH := max(height-pane.GetVerticalFrameSize(), 1)

	bar := s.renderTabBar(v, l, innerW)
	barH := lipgloss.Height(bar)

	var body string
	if key, ok := l.active(); ok {
		body = v.View(key, Surface{Width: innerW, Height: max(innerH-barH, 0), Focused: focused})
	}
	content := lipgloss.JoinVertical(lipgloss.Left, bar, body)
	content = lipgloss.NewStyle().MaxWidth(innerW).MaxHeight(innerH).Render(content)

	return pane.Width(innerW).Height(innerH).Render(content)
}

func (s *State[K]) renderTabBar(v Viewer[K], l *Leaf[K], width int) string {
	titles := make([]string, len(l.Tabs))
	for i, key := range l.Tabs {
		title := ansi.Truncate(v.Title(key), MaxTitleWidth, "…")
		if i == l.Active {
			titles[i] = s.styles.TabActive.Render(title)
		} else {
			titles[i] = s.styles.TabInactive.Render(title)
		}
	}
	bar := ansi.Truncate(strings.Join(titles, " "), width, "…")
	return s.styles.TabBar.Width(width).Render(bar)
}
