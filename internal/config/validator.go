package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "documents.text_patterns")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// maxSimulatedDelayMs caps the simulated load delay at one minute.
const maxSimulatedDelayMs = 60_000

// maxPathLength is a conservative limit shared by most filesystems.
const maxPathLength = 4096

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateState()...)
	errors = append(errors, c.validateDocuments()...)
	errors = append(errors, c.validateLoader()...)
	errors = append(errors, c.validateTUI()...)

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}

	const maxLogSizeMB = 1000
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateState validates the StateConfig
func (c *Config) validateState() []ValidationError {
	return validatePath("state.file", c.State.File)
}

// validateDocuments validates the DocumentsConfig
func (c *Config) validateDocuments() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePath("documents.directory", c.Documents.Directory)...)
	errors = append(errors, validatePatterns("documents.text_patterns", c.Documents.TextPatterns)...)
	errors = append(errors, validatePatterns("documents.image_patterns", c.Documents.ImagePatterns)...)

	for _, p := range c.Documents.TextPatterns {
		if slices.Contains(c.Documents.ImagePatterns, p) {
			errors = append(errors, ValidationError{
				Field:   "documents.image_patterns",
				Value:   p,
				Message: "pattern is also listed in documents.text_patterns",
			})
		}
	}

	return errors
}

// validateLoader validates the LoaderConfig
func (c *Config) validateLoader() []ValidationError {
	var errors []ValidationError

	if c.Loader.SimulatedDelayMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "loader.simulated_delay_ms",
			Value:   c.Loader.SimulatedDelayMs,
			Message: "must be non-negative",
		})
	}
	if c.Loader.SimulatedDelayMs > maxSimulatedDelayMs {
		errors = append(errors, ValidationError{
			Field:   "loader.simulated_delay_ms",
			Value:   c.Loader.SimulatedDelayMs,
			Message: fmt.Sprintf("exceeds maximum of %d", maxSimulatedDelayMs),
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	// Theme file takes precedence, so the name is only checked without one.
	if c.TUI.ThemeFile == "" && c.TUI.Theme != "" && !slices.Contains(BuiltinThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(BuiltinThemes(), ", ")),
		})
	}
	errors = append(errors, validatePath("tui.theme_file", c.TUI.ThemeFile)...)

	return errors
}

func validatePath(field, path string) []ValidationError {
	var errors []ValidationError
	if strings.ContainsRune(path, '\x00') {
		errors = append(errors, ValidationError{
			Field:   field,
			Value:   path,
			Message: "path contains invalid null character",
		})
	}
	if len(path) > maxPathLength {
		errors = append(errors, ValidationError{
			Field:   field,
			Value:   path,
			Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
		})
	}
	return errors
}

func validatePatterns(field string, patterns []string) []ValidationError {
	var errors []ValidationError
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   p,
				Message: "pattern must not be empty",
			})
			continue
		}
		if _, err := glob.Compile(p); err != nil {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   p,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
	return errors
}
