package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault ThemeName = "default" // Purple/green dark theme
	ThemeMonokai ThemeName = "monokai" // Classic Monokai editor colors
	ThemeDracula ThemeName = "dracula" // Dracula theme colors
	ThemeNord    ThemeName = "nord"    // Nord theme - cool blue-gray
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeMonokai),
		string(ThemeDracula),
		string(ThemeNord),
	}
}

// IsValidTheme checks if a theme name is built in.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (active tab, headings)
	Primary lipgloss.Color
	// Secondary accent color (checked boxes, success toasts)
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	// Muted color (inactive tabs, placeholders, help text)
	Muted   lipgloss.Color
	Surface lipgloss.Color
	Text    lipgloss.Color
	Border  lipgloss.Color
}

// DefaultPalette returns the default purple/green dark palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500
	}
}

// MonokaiPalette returns the Monokai palette.
func MonokaiPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#F92672"), // Monokai pink/magenta
		Secondary: lipgloss.Color("#A6E22E"), // Monokai green
		Warning:   lipgloss.Color("#E6DB74"), // Monokai yellow
		Error:     lipgloss.Color("#F92672"),
		Muted:     lipgloss.Color("#75715E"), // Monokai comment gray
		Surface:   lipgloss.Color("#272822"),
		Text:      lipgloss.Color("#F8F8F2"),
		Border:    lipgloss.Color("#49483E"),
	}
}

// DraculaPalette returns the Dracula palette.
func DraculaPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#BD93F9"), // Dracula purple
		Secondary: lipgloss.Color("#50FA7B"), // Dracula green
		Warning:   lipgloss.Color("#F1FA8C"),
		Error:     lipgloss.Color("#FF5555"),
		Muted:     lipgloss.Color("#6272A4"), // Dracula comment
		Surface:   lipgloss.Color("#282A36"),
		Text:      lipgloss.Color("#F8F8F2"),
		Border:    lipgloss.Color("#44475A"),
	}
}

// NordPalette returns the Nord palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#88C0D0"), // Nord frost (cyan)
		Secondary: lipgloss.Color("#A3BE8C"), // Nord aurora green
		Warning:   lipgloss.Color("#EBCB8B"),
		Error:     lipgloss.Color("#BF616A"),
		Muted:     lipgloss.Color("#4C566A"), // Nord polar night 3
		Surface:   lipgloss.Color("#2E3440"),
		Text:      lipgloss.Color("#ECEFF4"),
		Border:    lipgloss.Color("#3B4252"),
	}
}

// PaletteFor returns the palette of a built-in theme.
func PaletteFor(name ThemeName) (*ColorPalette, bool) {
	switch name {
	case ThemeDefault, "":
		return DefaultPalette(), true
	case ThemeMonokai:
		return MonokaiPalette(), true
	case ThemeDracula:
		return DraculaPalette(), true
	case ThemeNord:
		return NordPalette(), true
	default:
		return nil, false
	}
}
