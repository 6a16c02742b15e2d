package state

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Iron-Ham/tabshell/internal/documents"
	"github.com/Iron-Ham/tabshell/internal/loader"
	"github.com/Iron-Ham/tabshell/internal/tabs"
	"github.com/spf13/afero"
)

func sampleSnapshot(t *testing.T) (*Snapshot, []tabs.TabKey) {
	t.Helper()
	snap := NewSnapshot()
	docs := documents.NewRegistry()

	home := snap.Tabs.Add(tabs.NewHomeTab())
	var keys []tabs.TabKey
	keys = append(keys, home)
	for _, p := range []string{"/w/a.txt", "/w/b.png"} {
		dk := docs.Insert(documents.NewTextDocument(p, loader.New("")))
		keys = append(keys, snap.Tabs.Add(tabs.NewDocumentTab(filepath.Base(p), p, dk)))
	}
	for _, k := range keys {
		snap.Dock.Push(k)
	}
	snap.Dock.SplitActive()
	snap.Preferences.ShowHomeTabOnStartup = false
	snap.DocumentKeys = docs.KeySpace()
	return snap, keys
}

func TestStore_SaveLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/cfg/tabshell/state.json")
	snap, keys := sampleSnapshot(t)

	if err := store.Save(snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ok, _ := afero.Exists(fs, "/cfg/tabshell/state.json.tmp"); ok {
		t.Error("temp file left behind")
	}

	got := NewSnapshot()
	if err := store.Load(got); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Version != Version || got.SavedAt.IsZero() {
		t.Errorf("Version = %d SavedAt = %v", got.Version, got.SavedAt)
	}
	if !slices.Equal(got.Tabs.Keys(), keys) {
		t.Errorf("tab keys = %v, want %v", got.Tabs.Keys(), keys)
	}
	if !slices.Equal(got.Dock.Tabs(), snap.Dock.Tabs()) || len(got.Dock.Leaves()) != 2 {
		t.Errorf("dock = %v", got.Dock.Leaves())
	}
	if got.Preferences.ShowHomeTabOnStartup {
		t.Error("preferences not restored")
	}
	if !slices.Equal(got.DocumentKeys.Generations, snap.DocumentKeys.Generations) {
		t.Errorf("document keys = %+v", got.DocumentKeys)
	}

	refs := got.Tabs.DocumentTabs()
	if len(refs) != 2 || refs[0].Path != "/w/a.txt" || refs[1].Path != "/w/b.png" {
		t.Errorf("DocumentTabs() = %+v", refs)
	}
}

func TestStore_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "missing", wantErr: ErrNoSnapshot},
		{name: "future version", content: `{"version": 99}`, wantErr: ErrUnsupportedVersion},
		{name: "zero version", content: `{}`, wantErr: ErrUnsupportedVersion},
		{name: "corrupt", content: `{"version": 1, "tabs": 7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.content != "" {
				if err := afero.WriteFile(fs, "state.json", []byte(tt.content), 0644); err != nil {
					t.Fatal(err)
				}
			}
			err := NewStore(fs, "state.json").Load(NewSnapshot())
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStore_LoadAllocatesMissingFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "state.json")
	snap, _ := sampleSnapshot(t)
	if err := store.Save(snap); err != nil {
		t.Fatal(err)
	}

	var got Snapshot
	if err := store.Load(&got); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Tabs == nil || got.Tabs.Len() != 3 || got.Dock == nil {
		t.Errorf("Load() into a zero snapshot = %+v", got)
	}
}

func TestStore_Reset(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "state.json")
	snap, _ := sampleSnapshot(t)
	if err := store.Save(snap); err != nil {
		t.Fatal(err)
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if err := store.Load(NewSnapshot()); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Load() after Reset error = %v", err)
	}
	if err := store.Reset(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("second Reset() error = %v, want ErrNoSnapshot", err)
	}
}

func TestStore_WithFileLock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")
	store := NewStore(afero.NewOsFs(), path, WithFileLock())
	snap, _ := sampleSnapshot(t)

	if err := store.Save(snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Load(NewSnapshot()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok, _ := afero.Exists(afero.NewOsFs(), filepath.Join(dir, "nested", lockFileName)); !ok {
		t.Error("lock file should be created next to the snapshot")
	}
}

func TestSummarize(t *testing.T) {
	snap, _ := sampleSnapshot(t)
	sum := Summarize(snap)

	if sum.Tabs != 3 || sum.Leaves != 2 || sum.ShowHome {
		t.Errorf("Summarize() = %+v", sum)
	}
	if !slices.Equal(sum.Documents, []string{"/w/a.txt", "/w/b.png"}) {
		t.Errorf("Documents = %v", sum.Documents)
	}
}
