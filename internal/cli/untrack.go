package cli

import (
	"github.com/spf13/cobra"

	"diamond.dev/diamond/internal/actions"
	"diamond.dev/diamond/internal/cli/helpers"
	"diamond.dev/diamond/internal/runtime"
)

// newUntrackCmd creates the untrack command
func newUntrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untrack [branch]",
		Short: "Stop tracking a branch",
		Long: `Stop tracking the current (or provided) branch. The git branch is kept.
Branches with tracked children cannot be untracked.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: helpers.CompleteTrackedBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts actions.UntrackOptions
			if len(args) > 0 {
				opts.BranchName = args[0]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.UntrackAction(ctx, opts)
			})
		},
	}
}
