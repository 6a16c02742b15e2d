// Package tui is the bubbletea front end of the workspace.
package tui

import (
	"time"

	"github.com/Iron-Ham/tabshell/internal/i18n"
	"github.com/Iron-Ham/tabshell/internal/logging"
	"github.com/Iron-Ham/tabshell/internal/mailbox"
	"github.com/Iron-Ham/tabshell/internal/tui/keymap"
	"github.com/Iron-Ham/tabshell/internal/tui/styles"
	"github.com/Iron-Ham/tabshell/internal/workspace"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 4 * time.Second

// chrome is the number of rows used by the toolbar and the status line.
const chrome = 2

// Options configures a Model.
type Options struct {
	Keys       keymap.KeyMap
	Theme      *styles.Theme
	Translator i18n.Translator
	Logger     *logging.Logger
	ShowHelp   bool
	// PickerDir is the directory the Open dialog starts in.
	PickerDir string
}

type toastExpiredMsg struct{ seq int }

// Model drives a workspace from bubbletea. Workspace state lives behind the
// pointer, so copies of the Model share it.
type Model struct {
	ws      *workspace.Workspace
	keys    keymap.KeyMap
	theme   *styles.Theme
	tr      i18n.Translator
	logger  *logging.Logger
	help    help.Model
	spinner spinner.Model
	picker  filepicker.Model

	width     int
	height    int
	ready     bool
	quitting  bool
	showHelp  bool
	picking   bool
	spinning  bool
	pickerDir string

	toast    string
	toastSeq int
}

// NewModel creates a Model for ws.
func NewModel(ws *workspace.Workspace, opts Options) Model {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(nil)
	}
	if opts.Translator == nil {
		opts.Translator = i18n.New("")
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if len(opts.Keys.Quit.Keys()) == 0 {
		opts.Keys = keymap.Default()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = opts.Theme.Muted

	h := help.New()
	h.ShowAll = opts.ShowHelp

	return Model{
		ws:        ws,
		keys:      opts.Keys,
		theme:     opts.Theme,
		tr:        opts.Translator,
		logger:    opts.Logger,
		help:      h,
		spinner:   spin,
		showHelp:  opts.ShowHelp,
		pickerDir: opts.PickerDir,
	}
}

// Workspace returns the workspace driven by the model.
func (m Model) Workspace() *workspace.Workspace { return m.ws }

// Init runs the first frame and arms the mailbox wake-up.
func (m Model) Init() tea.Cmd {
	m.ws.Frame()
	cmds := []tea.Cmd{m.ws.Mailbox().WaitCmd()}
	if m.ws.Loading() {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and runs a workspace frame after each one.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.picker.Height = max(m.bodyHeight()-2, 1)

	case mailbox.WakeMsg:
		// Re-arm before draining so a later send is never missed.
		cmds = append(cmds, m.ws.Mailbox().WaitCmd())

	case spinner.TickMsg:
		if !m.ws.Loading() {
			m.spinning = false
			m.ws.SetSpinner("")
			break
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.ws.SetSpinner(m.spinner.View())
		cmds = append(cmds, cmd)

	case quitMsg:
		q, cmd := m.quit()
		return q, cmd

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
			m.ws.ClearToast()
		}

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		if m.quitting {
			return m, cmd
		}
		cmds = append(cmds, cmd)

	default:
		if m.picking {
			var cmd tea.Cmd
			m, cmd = m.updatePicker(msg)
			cmds = append(cmds, cmd)
		} else {
			cmds = append(cmds, m.ws.Update(msg))
		}
	}

	m.ws.Frame()
	cmds = append(cmds, m.syncToast(), m.syncSpinner())
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}
	if m.picking {
		if key.Matches(msg, m.keys.Cancel) {
			m.picking = false
			return m, nil
		}
		return m.updatePicker(msg)
	}

	d := m.ws.Dock()
	switch {
	case key.Matches(msg, m.keys.Home):
		m.ws.ShowHome()
	case key.Matches(msg, m.keys.New):
		m.ws.NewDocument()
	case key.Matches(msg, m.keys.Open):
		return m.openPicker()
	case key.Matches(msg, m.keys.Close):
		m.ws.CloseActive()
	case key.Matches(msg, m.keys.CloseAll):
		m.ws.CloseAll()
	case key.Matches(msg, m.keys.Save):
		if err := m.ws.SaveAll(); err != nil {
			m.logger.Warn("save failed", "error", err)
		}
	case key.Matches(msg, m.keys.NextTab):
		d.NextTab()
	case key.Matches(msg, m.keys.PrevTab):
		d.PrevTab()
	case key.Matches(msg, m.keys.FocusNext):
		d.FocusNext()
	case key.Matches(msg, m.keys.FocusPrev):
		d.FocusPrev()
	case key.Matches(msg, m.keys.Split):
		d.SplitActive()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	default:
		return m, m.ws.Update(msg)
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	if err := m.ws.Shutdown(); err != nil {
		m.logger.Error("workspace not saved on quit", "error", err)
	}
	return m, tea.Quit
}

func (m Model) openPicker() (Model, tea.Cmd) {
	fp := filepicker.New()
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowHidden = false
	fp.AutoHeight = false
	fp.Height = max(m.bodyHeight()-2, 1)
	if m.pickerDir != "" {
		fp.CurrentDirectory = m.pickerDir
	}
	m.picker = fp
	m.picking = true
	return m, m.picker.Init()
}

func (m Model) updatePicker(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		m.pickerDir = m.picker.CurrentDirectory
		if err := m.ws.OpenFile(path); err != nil {
			m.logger.Info("file not opened", "path", path, "error", err)
		}
		return m, nil
	}
	return m, cmd
}

// syncToast picks up a new workspace toast and schedules its expiry.
func (m *Model) syncToast() tea.Cmd {
	t := m.ws.Toast()
	if t == "" || t == m.toast {
		return nil
	}
	m.toast = t
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// syncSpinner starts ticking when a document starts loading.
func (m *Model) syncSpinner() tea.Cmd {
	if m.spinning || !m.ws.Loading() {
		return nil
	}
	m.spinning = true
	m.ws.SetSpinner(m.spinner.View())
	return m.spinner.Tick
}

func (m Model) bodyHeight() int {
	h := m.height - chrome
	if m.showHelp {
		h -= len(m.keys.FullHelp()[0])
	}
	return max(h, 1)
}
