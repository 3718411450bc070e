package cli

import (
	"github.com/spf13/cobra"

	"diamond.dev/diamond/internal/actions"
	"diamond.dev/diamond/internal/cli/helpers"
)

// newRestackCmd creates the restack command
func newRestackCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "restack",
		Aliases: []string{"r"},
		Short:   "Rebase every branch of the current stack onto its parent",
		Long: `Rebase every branch of the current stack onto its parent, starting closest
to the root. Stops at the first conflict and leaves the rebase for you to resolve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.RestackAction)
		},
	}
}
