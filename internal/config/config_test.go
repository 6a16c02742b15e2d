package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if !cfg.State.Restore {
		t.Error("State.Restore should be true by default")
	}
	if cfg.Documents.Directory != "." {
		t.Errorf("Documents.Directory = %q, want %q", cfg.Documents.Directory, ".")
	}
	if len(cfg.Documents.TextPatterns) != 3 {
		t.Errorf("Documents.TextPatterns = %v, want 3 patterns", cfg.Documents.TextPatterns)
	}
	if len(cfg.Documents.ImagePatterns) != 5 {
		t.Errorf("Documents.ImagePatterns = %v, want 5 patterns", cfg.Documents.ImagePatterns)
	}
	if cfg.Loader.SimulatedDelayMs != 0 {
		t.Errorf("Loader.SimulatedDelayMs = %d, want 0", cfg.Loader.SimulatedDelayMs)
	}
	if cfg.TUI.Theme != "default" {
		t.Errorf("TUI.Theme = %q, want %q", cfg.TUI.Theme, "default")
	}
	if !cfg.TUI.ShowHelp {
		t.Error("TUI.ShowHelp should be true by default")
	}
}

func TestLoaderConfig_SimulatedDelay(t *testing.T) {
	cfg := LoaderConfig{SimulatedDelayMs: 1500}
	if got := cfg.SimulatedDelay(); got != 1500*time.Millisecond {
		t.Errorf("SimulatedDelay() = %v, want 1.5s", got)
	}
}

func TestStateConfig_StateFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	tests := []struct {
		name string
		file string
		want string
	}{
		{name: "default location", file: "", want: filepath.Join("/xdg", "tabshell", "state.json")},
		{name: "explicit path", file: "/tmp/ws.json", want: "/tmp/ws.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := StateConfig{File: tt.file}
			if got := cfg.StateFile(); got != tt.want {
				t.Errorf("StateFile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")

		if got := ConfigDir(); got != filepath.Join("/custom/config", "tabshell") {
			t.Errorf("ConfigDir() = %q", got)
		}
		if got := ConfigFile(); got != filepath.Join("/custom/config", "tabshell", "config.yaml") {
			t.Errorf("ConfigFile() = %q", got)
		}
	})

	t.Run("falls back to home directory", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")

		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory")
		}
		if got := ConfigDir(); got != filepath.Join(home, ".config", "tabshell") {
			t.Errorf("ConfigDir() = %q", got)
		}
	})
}

func newTestViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	defaults := Default()
	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	v.SetDefault("state.restore", defaults.State.Restore)
	v.SetDefault("documents.directory", defaults.Documents.Directory)
	v.SetDefault("documents.text_patterns", defaults.Documents.TextPatterns)
	v.SetDefault("documents.image_patterns", defaults.Documents.ImagePatterns)
	v.SetDefault("tui.theme", defaults.TUI.Theme)
	v.SetDefault("tui.show_help", defaults.TUI.ShowHelp)

	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(yaml)); err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	return v
}

func TestLoadFrom(t *testing.T) {
	v := newTestViper(t, `
logging:
  level: debug
documents:
  directory: /notes
  text_patterns: ["*.txt", "*.org"]
loader:
  simulated_delay_ms: 250
tui:
  theme: nord
`)

	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Documents.Directory != "/notes" {
		t.Errorf("Documents.Directory = %q", cfg.Documents.Directory)
	}
	if len(cfg.Documents.TextPatterns) != 2 || cfg.Documents.TextPatterns[1] != "*.org" {
		t.Errorf("Documents.TextPatterns = %v", cfg.Documents.TextPatterns)
	}
	if len(cfg.Documents.ImagePatterns) != 5 {
		t.Errorf("Documents.ImagePatterns should keep defaults, got %v", cfg.Documents.ImagePatterns)
	}
	if cfg.Loader.SimulatedDelayMs != 250 {
		t.Errorf("Loader.SimulatedDelayMs = %d", cfg.Loader.SimulatedDelayMs)
	}
	if cfg.TUI.Theme != "nord" {
		t.Errorf("TUI.Theme = %q", cfg.TUI.Theme)
	}
	if !cfg.State.Restore {
		t.Error("State.Restore should keep its default")
	}
}

func TestLoadFrom_InvalidConfig(t *testing.T) {
	v := newTestViper(t, `
logging:
  level: loud
tui:
  theme: neon
`)

	_, err := LoadFrom(v)
	if err == nil {
		t.Fatal("expected validation error")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("error type = %T, want ValidationErrors", err)
	}
	if len(verrs) != 2 {
		t.Errorf("got %d validation errors, want 2: %v", len(verrs), verrs)
	}
}
