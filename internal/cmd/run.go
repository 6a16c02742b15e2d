package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Iron-Ham/tabshell/internal/config"
	"github.com/Iron-Ham/tabshell/internal/documents"
	"github.com/Iron-Ham/tabshell/internal/event"
	"github.com/Iron-Ham/tabshell/internal/i18n"
	"github.com/Iron-Ham/tabshell/internal/logging"
	"github.com/Iron-Ham/tabshell/internal/state"
	"github.com/Iron-Ham/tabshell/internal/tui"
	"github.com/Iron-Ham/tabshell/internal/tui/keymap"
	"github.com/Iron-Ham/tabshell/internal/tui/styles"
	"github.com/Iron-Ham/tabshell/internal/workspace"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when the workspace is started without a terminal.
var ErrNotTerminal = errors.New("tabshell needs an interactive terminal")

func runWorkspace(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if noRestore, _ := cmd.Flags().GetBool("no-restore"); noRestore {
		cfg.State.Restore = false
	}

	sessionID := uuid.NewString()
	logger := CreateLogger(config.LogDir(), cfg).WithSession(sessionID)
	defer func() { _ = logger.Close() }()

	ws, err := newWorkspace(cfg, afero.NewOsFs(), logger, args)
	if err != nil {
		return err
	}

	config.Watch(viper.GetViper(), func(c *config.Config) {
		logger.SetLevel(c.Logging.Level)
		logger.Info("configuration reloaded", "level", logger.Level())
	}, func(err error) {
		logger.Warn("configuration change ignored", "error", err)
	})

	theme, err := styles.Resolve(cfg.TUI.Theme, cfg.TUI.ThemeFile)
	if err != nil {
		logger.Warn("theme not loaded, using default", "error", err)
		theme = styles.NewTheme(nil)
	}
	ws.SetTheme(theme)

	logger.Info("tabshell starting", "files", len(args), "state", cfg.State.StateFile())
	app := tui.New(ws, tui.Options{
		Keys:       keymap.Default(),
		Theme:      theme,
		Translator: i18n.New(""),
		Logger:     logger,
		ShowHelp:   cfg.TUI.ShowHelp,
		PickerDir:  cfg.Documents.Directory,
	})
	return app.Run()
}

// newWorkspace wires the document opener, the snapshot store and the event
// bus into a workspace.
func newWorkspace(cfg *config.Config, fs afero.Fs, logger *logging.Logger, files []string) (*workspace.Workspace, error) {
	opener, err := documents.NewOpener(fs,
		cfg.Documents.TextPatterns,
		cfg.Documents.ImagePatterns,
		documents.WithLoadDelay(cfg.Loader.SimulatedDelay()),
	)
	if err != nil {
		return nil, err
	}

	return workspace.New(workspace.Options{
		Opener:     opener,
		Store:      newStore(cfg, fs),
		Bus:        event.NewBus(event.WithPanicLogger(logger.Slog())),
		Logger:     logger,
		Translator: i18n.New(""),
		Directory:  cfg.Documents.Directory,
		Restore:    cfg.State.Restore,
		Files:      files,
	})
}

func newStore(cfg *config.Config, fs afero.Fs) *state.Store {
	var opts []state.StoreOption
	if _, ok := fs.(*afero.OsFs); ok {
		opts = append(opts, state.WithFileLock())
	}
	return state.NewStore(fs, cfg.State.StateFile(), opts...)
}

// CreateLogger creates a logger if logging is enabled in config.
// Returns a NopLogger if logging is disabled or if creation fails.
func CreateLogger(dir string, cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	rotation := logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}
	logger, err := logging.NewLogger(dir, cfg.Logging.Level, logging.WithRotation(rotation))
	if err != nil {
		// Log creation failure shouldn't prevent the application from starting
		fmt.Fprintf(os.Stderr, "Warning: failed to create logger: %v\n", err)
		return logging.NopLogger()
	}
	return logger
}
