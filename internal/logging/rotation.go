package logging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// RotationConfig controls how debug.log is rotated when a logger opens it.
type RotationConfig struct {
	// MaxSizeMB is the size above which the existing file is rotated.
	// A value of 0 disables rotation.
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep (debug.log.1 is newest).
	MaxBackups int
}

// DefaultRotationConfig returns the rotation settings used when the
// configuration does not override them.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// rotateIfOversized shifts path to path.1 (and older backups up by one)
// when it exceeds the configured size. The TUI logs to a single file per
// run, so checking once at open keeps the file bounded across restarts.
func rotateIfOversized(path string, cfg RotationConfig) error {
	if cfg.MaxSizeMB <= 0 {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	if info.Size() <= int64(cfg.MaxSizeMB)*1024*1024 {
		return nil
	}

	if cfg.MaxBackups <= 0 {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove oversized log file: %w", err)
		}
		return nil
	}

	_ = os.Remove(backupPath(path, cfg.MaxBackups))
	for i := cfg.MaxBackups - 1; i >= 1; i-- {
		if _, err := os.Stat(backupPath(path, i)); err == nil {
			_ = os.Rename(backupPath(path, i), backupPath(path, i+1))
		}
	}
	if err := os.Rename(path, backupPath(path, 1)); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return nil
}

func backupPath(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}
