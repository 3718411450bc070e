package helpers

import (
	"github.com/spf13/cobra"

	"diamond.dev/diamond/internal/runtime"
)

// CompleteTrackedBranches is a cobra.ValidArgsFunction returning every tracked branch
func CompleteTrackedBranches(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var names []string
	err := Run(cmd, func(ctx *runtime.Context) error {
		branches, err := ctx.Tx.ListBranches(ctx.Context)
		if err != nil {
			return err
		}
		for _, b := range branches {
			names = append(names, b.Name)
		}
		return nil
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
