package actions

import (
	"fmt"

	"diamond.dev/diamond/internal/runtime"
	"diamond.dev/diamond/internal/tui"
)

// UntrackOptions contains options for the untrack command
type UntrackOptions struct {
	// BranchName defaults to the current branch
	BranchName string
}

// UntrackAction stops tracking a branch. The git branch itself is left alone.
func UntrackAction(ctx *runtime.Context, opts UntrackOptions) error {
	branchName := opts.BranchName
	if branchName == "" {
		current, err := ctx.Git.CurrentBranch(ctx.Context)
		if err != nil {
			return fmt.Errorf("failed to get current branch: %w", err)
		}
		branchName = current
	}

	if err := ctx.Tx.DeleteBranch(ctx.Context, branchName); err != nil {
		return err
	}

	ctx.Splog.Info("Stopped tracking %s.", tui.ColorBranchName(branchName, false))
	return nil
}
