package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete tabshell configuration
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	State     StateConfig     `mapstructure:"state" yaml:"state"`
	Documents DocumentsConfig `mapstructure:"documents" yaml:"documents"`
	Loader    LoaderConfig    `mapstructure:"loader" yaml:"loader"`
	TUI       TUIConfig       `mapstructure:"tui" yaml:"tui"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// MaxSizeMB is the log file size above which it is rotated at startup (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// StateConfig controls where the workspace snapshot lives and whether it is
// applied at startup
type StateConfig struct {
	// File is the snapshot path. If empty, defaults to state.json in ConfigDir.
	File string `mapstructure:"file" yaml:"file"`
	// Restore applies the snapshot at startup (default: true)
	Restore bool `mapstructure:"restore" yaml:"restore"`
}

// DocumentsConfig controls how paths map to document kinds and where new
// documents are created
type DocumentsConfig struct {
	// Directory is where documents created from the New tab are placed (default: ".")
	Directory string `mapstructure:"directory" yaml:"directory"`
	// TextPatterns are glob patterns, matched against the file name, of files opened as text
	TextPatterns []string `mapstructure:"text_patterns" yaml:"text_patterns"`
	// ImagePatterns are glob patterns, matched against the file name, of files opened as images
	ImagePatterns []string `mapstructure:"image_patterns" yaml:"image_patterns"`
}

// LoaderConfig controls background content loading
type LoaderConfig struct {
	// SimulatedDelayMs delays every background load, to exercise the loading UI (default: 0)
	SimulatedDelayMs int `mapstructure:"simulated_delay_ms" yaml:"simulated_delay_ms"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is the color theme (default: "default")
	// Options: "default", "monokai", "dracula", "nord"
	Theme string `mapstructure:"theme" yaml:"theme"`
	// ThemeFile is an optional YAML theme file that overrides Theme
	ThemeFile string `mapstructure:"theme_file" yaml:"theme_file"`
	// ShowHelp shows the key binding footer (default: true)
	ShowHelp bool `mapstructure:"show_help" yaml:"show_help"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		State: StateConfig{
			File:    "",
			Restore: true,
		},
		Documents: DocumentsConfig{
			Directory:     ".",
			TextPatterns:  []string{"*.txt", "*.md", "*.log"},
			ImagePatterns: []string{"*.bmp", "*.png", "*.jpg", "*.jpeg", "*.gif"},
		},
		Loader: LoaderConfig{
			SimulatedDelayMs: 0,
		},
		TUI: TUIConfig{
			Theme:    "default",
			ShowHelp: true,
		},
	}
}

// SimulatedDelay returns the configured load delay as a duration
func (c *LoaderConfig) SimulatedDelay() time.Duration {
	return time.Duration(c.SimulatedDelayMs) * time.Millisecond
}

// StateFile returns the snapshot path, resolving the default location
func (c *StateConfig) StateFile() string {
	if c.File != "" {
		return c.File
	}
	return filepath.Join(ConfigDir(), "state.json")
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// State defaults
	viper.SetDefault("state.file", defaults.State.File)
	viper.SetDefault("state.restore", defaults.State.Restore)

	// Documents defaults
	viper.SetDefault("documents.directory", defaults.Documents.Directory)
	viper.SetDefault("documents.text_patterns", defaults.Documents.TextPatterns)
	viper.SetDefault("documents.image_patterns", defaults.Documents.ImagePatterns)

	// Loader defaults
	viper.SetDefault("loader.simulated_delay_ms", defaults.Loader.SimulatedDelayMs)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)
	viper.SetDefault("tui.show_help", defaults.TUI.ShowHelp)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if it
// cannot be loaded
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tabshell")
	}
	// Fall back to ~/.config/tabshell
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tabshell"
	}
	return filepath.Join(home, ".config", "tabshell")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogDir returns the directory debug.log is written to
func LogDir() string {
	return ConfigDir()
}

// BuiltinThemes returns the names of the built-in color themes.
// Must match the palettes in tui/styles (kept separate to avoid an import cycle).
func BuiltinThemes() []string {
	return []string{"default", "monokai", "dracula", "nord"}
}
