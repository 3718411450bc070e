// Package helpers provides shared plumbing for dmd's cobra commands.
package helpers

import (
	"github.com/spf13/cobra"

	"diamond.dev/diamond/internal/runtime"
)

// Run opens a runtime context for the repository in the working directory,
// runs fn inside the command's transaction and finishes it
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	debug, _ := cmd.Flags().GetBool("debug")

	ctx, err := runtime.Open(cmd.Context(), runtime.Options{Debug: debug})
	if err != nil {
		return err
	}

	err = fn(ctx)
	if finishErr := ctx.Finish(err); finishErr != nil && err == nil {
		return finishErr
	}
	return err
}
