// Package cli defines dmd's cobra command tree.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	dmderrors "diamond.dev/diamond/internal/errors"
	"diamond.dev/diamond/internal/tui"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dmd",
		Short: "dmd keeps stacks of dependent branches rebased and submitted",
		Long: `dmd records which branch each of your branches was built on, so a whole
stack of dependent branches can be restacked, synced with the remote and
submitted for review in one command.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Write debug output to the console")

	rootCmd.AddCommand(
		newInitCmd(),
		newCreateCmd(),
		newTrackCmd(),
		newUntrackCmd(),
		newRestackCmd(),
		newSyncCmd(),
		newSubmitCmd(),
		newLogCmd(),
		newVersionCmd(version, commit, date),
	)

	return rootCmd
}

// PrintError reports a failed command once, with a hint when one applies
func PrintError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, tui.ColorRed("ERROR: "+err.Error()))

	var tip string
	switch {
	case errors.Is(err, dmderrors.ErrRemoteNotConfigured), errors.Is(err, dmderrors.ErrRootNotConfigured):
		tip = "run 'dmd init' to configure the repository"
	case errors.Is(err, dmderrors.ErrRebaseFailed):
		tip = "resolve the conflicts, run 'git rebase --continue' and re-run the command"
	case errors.Is(err, dmderrors.ErrBranchNotTracked), errors.Is(err, dmderrors.ErrUntrackedParent):
		tip = "run 'dmd track' to track the branch"
	}
	if tip != "" {
		_, _ = fmt.Fprintln(w, tip)
	}
}
