package tui

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/tabshell/internal/workspace"
	tea "github.com/charmbracelet/bubbletea"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
}

// New creates a new TUI application
func New(ws *workspace.Workspace, opts Options) *App {
	return &App{model: NewModel(ws, opts)}
}

// Run starts the TUI application and blocks until it exits
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	// Quit through the model on termination so the workspace is saved
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		if _, ok := <-sigChan; ok && a.program != nil {
			a.program.Send(quitMsg{})
		}
	}()

	final, err := a.program.Run()
	if m, ok := final.(Model); ok && !m.quitting {
		// The program ended without a quit key; save anyway.
		if serr := m.ws.Shutdown(); serr != nil {
			m.logger.Error("workspace not saved on exit", "error", serr)
		}
	}
	return err
}

// quitMsg asks the model to shut the workspace down and exit.
type quitMsg struct{}
