package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds every style the workspace renders with. Build one per palette;
// the zero value renders unstyled.
type Theme struct {
	Palette *ColorPalette

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabBar      lipgloss.Style
	Pane        lipgloss.Style
	PaneFocused lipgloss.Style

	Heading lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Field is a form input; FieldFocused the one receiving keys.
	Field        lipgloss.Style
	FieldFocused lipgloss.Style
	Button       lipgloss.Style

	Toolbar lipgloss.Style
	Toast   lipgloss.Style
}

// NewTheme builds the styles for p.
func NewTheme(p *ColorPalette) *Theme {
	if p == nil {
		p = DefaultPalette()
	}
	return &Theme{
		Palette: p,

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Primary).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		TabBar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Border),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		PaneFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary),

		Heading: lipgloss.NewStyle().Bold(true).Foreground(p.Primary).MarginBottom(1),
		Text:    lipgloss.NewStyle().Foreground(p.Text),
		Muted:   lipgloss.NewStyle().Foreground(p.Muted),
		Error:   lipgloss.NewStyle().Foreground(p.Error),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),
		Success: lipgloss.NewStyle().Foreground(p.Secondary),

		Field: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		FieldFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(p.Surface).
			Background(p.Secondary).
			Padding(0, 2),

		Toolbar: lipgloss.NewStyle().Foreground(p.Muted).Background(p.Surface).Padding(0, 1),
		Toast:   lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
	}
}

// Resolve returns the theme to render with: the theme file when one is
// given, otherwise the named built-in theme.
func Resolve(name, themeFile string) (*Theme, error) {
	if themeFile != "" {
		tf, err := LoadThemeFile(themeFile)
		if err != nil {
			return nil, err
		}
		return NewTheme(tf.ToPalette()), nil
	}
	p, ok := PaletteFor(ThemeName(name))
	if !ok {
		return nil, &UnknownThemeError{Name: name}
	}
	return NewTheme(p), nil
}

// UnknownThemeError is returned by Resolve for names that are not built in.
type UnknownThemeError struct {
	Name string
}

func (e *UnknownThemeError) Error() string {
	return "unknown theme: " + e.Name
}
