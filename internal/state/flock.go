package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

const lockFileName = "state.lock"

// FileLock provides cross-process mutual exclusion using flock(2). It keeps
// two tabshell processes sharing a config directory from interleaving
// snapshot writes.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a FileLock whose lock file lives in dir.
func NewFileLock(dir string) *FileLock {
	return &FileLock{
		path: filepath.Join(dir, lockFileName),
	}
}

// Lock acquires an exclusive lock, blocking until available. The lock file
// and its directory are created if needed.
func (fl *FileLock) Lock() error {
	f, err := fl.open()
	if err != nil {
		return err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return fmt.Errorf("flock: %w", err)
	}
	fl.file = f
	return nil
}

// TryLock attempts to acquire the lock without blocking. It reports false
// if another holder has it.
func (fl *FileLock) TryLock() (bool, error) {
	f, err := fl.open()
	if err != nil {
		return false, err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return false, nil
		}
		return false, fmt.Errorf("flock: %w", err)
	}
	fl.file = f
	return true, nil
}

// Unlock releases the lock. Unlocking a lock that is not held is a no-op.
func (fl *FileLock) Unlock() error {
	if fl.file == nil {
		return nil
	}
	f := fl.file
	fl.file = nil

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
		_ = f.Close()
		return fmt.Errorf("funlock: %w", err)
	}
	return f.Close()
}

func (fl *FileLock) open() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(fl.path), 0755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	f, err := os.OpenFile(fl.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	return f, nil
}
