// Package state persists the workspace between runs.
//
// A [Snapshot] holds the tab registry, the dock layout, the preferences and
// the document key space. Document content is never saved: restore reopens
// every document tab's path. Snapshots are indented JSON written atomically
// through an afero.Fs.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Iron-Ham/tabshell/internal/arena"
	"github.com/Iron-Ham/tabshell/internal/dock"
	"github.com/Iron-Ham/tabshell/internal/prefs"
	"github.com/Iron-Ham/tabshell/internal/tabs"
	"github.com/spf13/afero"
)

// Version is the snapshot format written by this build.
const Version = 1

var (
	// ErrNoSnapshot is returned when no snapshot has been saved yet.
	ErrNoSnapshot = errors.New("state: no snapshot")
	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("state: unsupported snapshot version")
)

// Snapshot is the persisted workspace.
type Snapshot struct {
	Version      int                      `json:"version"`
	SavedAt      time.Time                `json:"saved_at"`
	Tabs         *tabs.Registry           `json:"tabs"`
	Dock         *dock.State[tabs.TabKey] `json:"dock"`
	Preferences  prefs.Preferences        `json:"preferences"`
	DocumentKeys arena.KeySpace           `json:"document_keys"`
}

// NewSnapshot returns an empty snapshot ready to be loaded into.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Tabs:        tabs.NewRegistry(),
		Dock:        dock.New[tabs.TabKey](),
		Preferences: prefs.Default(),
	}
}

// Store reads and writes a snapshot file.
type Store struct {
	fs   afero.Fs
	path string
	lock *FileLock
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithFileLock guards every Save, Load and Reset with a FileLock next to the
// snapshot. Only meaningful when the Store's filesystem is the OS one.
func WithFileLock() StoreOption {
	return func(s *Store) {
		s.lock = NewFileLock(filepath.Dir(s.path))
	}
}

// NewStore returns a Store for the snapshot at path on fs.
func NewStore(fs afero.Fs, path string, opts ...StoreOption) *Store {
	s := &Store{fs: fs, path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the snapshot file path.
func (s *Store) Path() string { return s.path }

func (s *Store) acquire() (func(), error) {
	if s.lock == nil {
		return func() {}, nil
	}
	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	return func() { _ = s.lock.Unlock() }, nil
}

// Save writes snap, stamping its version and time. The write goes to a
// temporary file that is renamed into place.
func (s *Store) Save(snap *Snapshot) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	snap.Version = Version
	snap.SavedAt = time.Now().UTC()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads the snapshot into into. Fields of into that are set, such as a
// tab registry carrying an event bus, are decoded in place; nil ones are
// allocated.
func (s *Store) Load(into *Snapshot) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNoSnapshot
		}
		return fmt.Errorf("read snapshot: %w", err)
	}

	if into.Tabs == nil {
		into.Tabs = tabs.NewRegistry()
	}
	if into.Dock == nil {
		into.Dock = dock.New[tabs.TabKey]()
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if into.Version > Version || into.Version < 1 {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, into.Version)
	}
	return nil
}

// Reset deletes the snapshot. It returns ErrNoSnapshot if there is none.
func (s *Store) Reset() error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := s.fs.Remove(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNoSnapshot
		}
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

// Summary describes a snapshot for display.
type Summary struct {
	Version   int
	SavedAt   time.Time
	Tabs      int
	Documents []string
	Leaves    int
	ShowHome  bool
}

// Summarize returns a description of snap.
func Summarize(snap *Snapshot) Summary {
	sum := Summary{
		Version:  snap.Version,
		SavedAt:  snap.SavedAt,
		ShowHome: snap.Preferences.ShowHomeTabOnStartup,
	}
	if snap.Tabs != nil {
		sum.Tabs = snap.Tabs.Len()
		for _, ref := range snap.Tabs.DocumentTabs() {
			sum.Documents = append(sum.Documents, ref.Path)
		}
	}
	if snap.Dock != nil {
		sum.Leaves = len(snap.Dock.Leaves())
	}
	return sum
}
