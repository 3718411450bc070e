package cli

import (
	"github.com/spf13/cobra"

	"diamond.dev/diamond/internal/actions"
	"diamond.dev/diamond/internal/cli/helpers"
	"diamond.dev/diamond/internal/runtime"
)

// newTrackCmd creates the track command
func newTrackCmd() *cobra.Command {
	var opts actions.TrackOptions

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Start tracking the current branch",
		Long: `Start tracking the current branch as a child of --parent, or of the root
branch when no parent is given. The parent must be an ancestor of the current branch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.TrackAction(ctx, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Parent, "parent", "p", "", "The tracked branch the current branch was built on")
	_ = cmd.RegisterFlagCompletionFunc("parent", helpers.CompleteTrackedBranches)

	return cmd
}
