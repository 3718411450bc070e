package cli

import (
	"github.com/spf13/cobra"

	"diamond.dev/diamond/internal/actions"
	"diamond.dev/diamond/internal/cli/helpers"
)

// newSyncCmd creates the sync command
func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull the root branch and the current stack, then restack",
		Long: `Fast-forward the root branch from the remote, then fast-forward each branch
of the current stack and rebase it onto its parent. The first failure stops the sync.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.SyncAction)
		},
	}
}
