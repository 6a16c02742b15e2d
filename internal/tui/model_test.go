package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/tabshell/internal/documents"
	"github.com/Iron-Ham/tabshell/internal/mailbox"
	"github.com/Iron-Ham/tabshell/internal/tabs"
	"github.com/Iron-Ham/tabshell/internal/workspace"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return newTestModelOn(t, afero.NewMemMapFs())
}

func newTestModelOn(t *testing.T, fs afero.Fs) Model {
	t.Helper()
	opener, err := documents.NewOpener(fs, []string{"*.txt"}, []string{"*.png"})
	if err != nil {
		t.Fatalf("NewOpener() error = %v", err)
	}
	ws, err := workspace.New(workspace.Options{Opener: opener, Directory: "/docs"})
	if err != nil {
		t.Fatalf("workspace.New() error = %v", err)
	}
	m := NewModel(ws, Options{})
	m.Init()
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return got
}

func TestView_BeforeWindowSize(t *testing.T) {
	fs := afero.NewMemMapFs()
	opener, _ := documents.NewOpener(fs, []string{"*.txt"}, nil)
	ws, _ := workspace.New(workspace.Options{Opener: opener})
	m := NewModel(ws, Options{})

	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q before the first size message", got)
	}
}

func TestInit_StartsWorkspace(t *testing.T) {
	m := newTestModel(t)

	if m.Workspace().Phase() != workspace.Running {
		t.Fatalf("Phase() = %v, want running", m.Workspace().Phase())
	}
	view := m.View()
	for _, want := range []string{"Welcome to tabshell", "Close all", "ctrl+n"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestUpdate_Keys(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.KeyMsg
		wantTabs int
		wantDock int
	}{
		{
			name:     "new tab",
			keys:     []tea.KeyMsg{{Type: tea.KeyCtrlN}},
			wantTabs: 2,
			wantDock: 2,
		},
		{
			name:     "close active",
			keys:     []tea.KeyMsg{{Type: tea.KeyCtrlN}, {Type: tea.KeyCtrlW}},
			wantTabs: 1,
			wantDock: 1,
		},
		{
			name:     "close all",
			keys:     []tea.KeyMsg{{Type: tea.KeyCtrlN}, {Type: tea.KeyCtrlN}, {Type: tea.KeyRunes, Runes: []rune{'w'}, Alt: true}},
			wantTabs: 0,
			wantDock: 0,
		},
		{
			name:     "home twice",
			keys:     []tea.KeyMsg{{Type: tea.KeyCtrlG}, {Type: tea.KeyCtrlG}},
			wantTabs: 1,
			wantDock: 1,
		},
		{
			name:     "split",
			keys:     []tea.KeyMsg{{Type: tea.KeyCtrlN}, {Type: tea.KeyRunes, Runes: []rune{'s'}, Alt: true}},
			wantTabs: 2,
			wantDock: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			for _, k := range tt.keys {
				m = send(t, m, k)
			}
			ws := m.Workspace()
			if ws.Tabs().Len() != tt.wantTabs {
				t.Errorf("Tabs().Len() = %d, want %d", ws.Tabs().Len(), tt.wantTabs)
			}
			if ws.Dock().Len() != tt.wantDock {
				t.Errorf("Dock().Len() = %d, want %d", ws.Dock().Len(), tt.wantDock)
			}
		})
	}
}

func TestUpdate_SplitCreatesLeaf(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}, Alt: true})

	if got := len(m.Workspace().Dock().Leaves()); got != 2 {
		t.Errorf("Leaves() = %d, want 2", got)
	}
	before := m.Workspace().Dock().Focused()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown, Alt: true})
	if m.Workspace().Dock().Focused() == before {
		t.Error("alt+down should move focus to the other pane")
	}
}

func TestUpdate_PlainKeysReachActiveTab(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("memo")})

	key, _ := m.Workspace().Dock().Active()
	tab, _ := m.Workspace().Tabs().Get(key)
	form, ok := tab.(*tabs.NewTab)
	if !ok {
		t.Fatalf("active tab is %T", tab)
	}
	if form.Name() != "memo" {
		t.Errorf("Name() = %q, want memo", form.Name())
	}
}

func TestUpdate_WakeRearms(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(mailbox.WakeMsg{})
	if cmd == nil {
		t.Error("WakeMsg should re-arm the mailbox wait")
	}
}

func TestUpdate_ToastExpires(t *testing.T) {
	m := newTestModel(t)
	_ = m.Workspace().OpenFile("/docs/archive.zip")
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if !strings.Contains(m.View(), "Unsupported file") {
		t.Fatalf("View() should show the toast")
	}

	m = send(t, m, toastExpiredMsg{seq: m.toastSeq - 1})
	if m.toast == "" {
		t.Error("a stale expiry should not clear the current toast")
	}
	m = send(t, m, toastExpiredMsg{seq: m.toastSeq})
	if m.toast != "" || m.Workspace().Toast() != "" {
		t.Error("toast should be cleared")
	}
}

func TestUpdate_HelpToggle(t *testing.T) {
	m := newTestModel(t)
	if strings.Contains(m.View(), "previous pane") {
		t.Fatal("full help should start hidden")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if !strings.Contains(m.View(), "previous pane") {
		t.Error("f1 should show the full help")
	}
}

func TestUpdate_PickerCancel(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if !m.picking {
		t.Fatal("ctrl+o should open the picker")
	}
	if !strings.Contains(m.View(), "Open file") {
		t.Error("View() should show the Open dialog")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.picking {
		t.Error("esc should close the picker")
	}
}

func TestUpdate_QuitShutsDown(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if !next.(Model).quitting {
		t.Error("model should be quitting")
	}
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should yield tea.QuitMsg")
	}
	if next.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestUpdate_SaveWritesEditedDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/docs/notes.txt", []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	m := newTestModelOn(t, fs)
	if err := m.Workspace().OpenFile("/docs/notes.txt"); err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for m.Workspace().Loading() {
		if time.Now().After(deadline) {
			t.Fatal("document still loading")
		}
		time.Sleep(time.Millisecond)
	}

	// Drawing seeds the editor with the loaded text.
	if !strings.Contains(m.View(), "hello") {
		t.Fatal("View() should show the loaded text")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	data, err := afero.ReadFile(fs, "/docs/notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello!" {
		t.Errorf("notes.txt = %q, want hello!", data)
	}
	if !strings.Contains(m.View(), "Saved 1 document(s)") {
		t.Error("status line should confirm the save")
	}
}
