package styles

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	// Name is the theme's display name (e.g., "Solarized Dark")
	Name   string `yaml:"name"`
	Author string `yaml:"author,omitempty"`
	// Version is the theme file format version (currently "1")
	Version string      `yaml:"version"`
	Colors  ThemeColors `yaml:"colors"`
}

// ThemeColors contains all color definitions for a theme.
// All colors should be hex format (#RRGGBB or #RGB). Only primary, text and
// muted are required; the rest fall back to them.
type ThemeColors struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary,omitempty"`
	Warning   string `yaml:"warning,omitempty"`
	Error     string `yaml:"error,omitempty"`
	Muted     string `yaml:"muted"`
	Surface   string `yaml:"surface,omitempty"`
	Text      string `yaml:"text"`
	Border    string `yaml:"border,omitempty"`
}

var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return ParseThemeFile(data)
}

// ParseThemeFile parses and validates a YAML theme definition.
func ParseThemeFile(data []byte) (*ThemeFile, error) {
	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}
	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %q (supported: 1)", t.Version)
	}

	colors := []struct {
		name     string
		value    string
		required bool
	}{
		{"primary", t.Colors.Primary, true},
		{"text", t.Colors.Text, true},
		{"muted", t.Colors.Muted, true},
		{"secondary", t.Colors.Secondary, false},
		{"warning", t.Colors.Warning, false},
		{"error", t.Colors.Error, false},
		{"surface", t.Colors.Surface, false},
		{"border", t.Colors.Border, false},
	}
	for _, c := range colors {
		if c.value == "" {
			if c.required {
				return fmt.Errorf("color '%s' is required", c.name)
			}
			continue
		}
		if !hexColorRegex.MatchString(c.value) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.name, c.value)
		}
	}
	return nil
}

// ToPalette converts the theme file to a ColorPalette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	c := t.Colors
	return &ColorPalette{
		Primary:   lipgloss.Color(c.Primary),
		Secondary: colorOrDefault(c.Secondary, c.Primary),
		Warning:   colorOrDefault(c.Warning, c.Primary),
		Error:     colorOrDefault(c.Error, c.Primary),
		Muted:     lipgloss.Color(c.Muted),
		Surface:   colorOrDefault(c.Surface, "#000000"),
		Text:      lipgloss.Color(c.Text),
		Border:    colorOrDefault(c.Border, c.Muted),
	}
}

func colorOrDefault(color, defaultColor string) lipgloss.Color {
	if color != "" {
		return lipgloss.Color(color)
	}
	return lipgloss.Color(defaultColor)
}
