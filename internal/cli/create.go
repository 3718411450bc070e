package cli

import (
	"github.com/spf13/cobra"

	"diamond.dev/diamond/internal/actions"
	"diamond.dev/diamond/internal/cli/helpers"
	"diamond.dev/diamond/internal/runtime"
)

// newCreateCmd creates the create command
func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "create <branch>",
		Aliases: []string{"c"},
		Short:   "Create a branch on top of the current branch and track it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.CreateAction(ctx, actions.CreateOptions{BranchName: args[0]})
			})
		},
	}
}
