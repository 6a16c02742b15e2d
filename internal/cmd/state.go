package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Iron-Ham/tabshell/internal/config"
	"github.com/Iron-Ham/tabshell/internal/state"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset the saved workspace",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize the saved workspace",
	Args:  cobra.NoArgs,
	RunE:  runStateShow,
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved workspace",
	Long: `Delete the saved workspace. The next start shows a fresh workspace.
Document files are not touched.`,
	Args: cobra.NoArgs,
	RunE: runStateReset,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)
}

// stateFs is the filesystem the state commands use.
var stateFs afero.Fs = afero.NewOsFs()

func stateStore() (*state.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return newStore(cfg, stateFs), nil
}

func runStateShow(cmd *cobra.Command, args []string) error {
	store, err := stateStore()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	snap := state.NewSnapshot()
	if err := store.Load(snap); err != nil {
		if errors.Is(err, state.ErrNoSnapshot) {
			fmt.Fprintf(out, "No saved workspace at %s\n", store.Path())
			return nil
		}
		return err
	}

	sum := state.Summarize(snap)
	fmt.Fprintf(out, "Snapshot: %s\n", store.Path())
	fmt.Fprintf(out, "  version:   %d\n", sum.Version)
	if !sum.SavedAt.IsZero() {
		fmt.Fprintf(out, "  saved at:  %s\n", sum.SavedAt.Local().Format(time.RFC3339))
	}
	fmt.Fprintf(out, "  tabs:      %d\n", sum.Tabs)
	fmt.Fprintf(out, "  panes:     %d\n", sum.Leaves)
	fmt.Fprintf(out, "  show home: %v\n", sum.ShowHome)
	if len(sum.Documents) > 0 {
		fmt.Fprintf(out, "  documents:\n    %s\n", strings.Join(sum.Documents, "\n    "))
	}
	return nil
}

func runStateReset(cmd *cobra.Command, args []string) error {
	store, err := stateStore()
	if err != nil {
		return err
	}
	if err := store.Reset(); err != nil {
		if errors.Is(err, state.ErrNoSnapshot) {
			fmt.Fprintf(cmd.OutOrStdout(), "No saved workspace at %s\n", store.Path())
			return nil
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", store.Path())
	return nil
}
