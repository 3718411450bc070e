package actions

import (
	"fmt"

	dmderrors "diamond.dev/diamond/internal/errors"
	"diamond.dev/diamond/internal/runtime"
	"diamond.dev/diamond/internal/tui"
	"diamond.dev/diamond/internal/utils"
)

// CreateOptions contains options for the create command
type CreateOptions struct {
	BranchName string
}

// CreateAction creates a branch off the current branch and tracks it as its child
func CreateAction(ctx *runtime.Context, opts CreateOptions) error {
	if err := utils.ValidateBranchName(opts.BranchName); err != nil {
		return err
	}

	parent, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return fmt.Errorf("failed to get current branch: %w", err)
	}

	tracked, err := ctx.Tx.IsTracked(ctx.Context, parent)
	if err != nil {
		return err
	}
	if !tracked {
		return dmderrors.NewUntrackedParentError(parent, opts.BranchName)
	}

	if err := ctx.Git.CreateBranch(ctx.Context, opts.BranchName); err != nil {
		return err
	}

	if err := ctx.Tx.CreateBranch(ctx.Context, parent, opts.BranchName); err != nil {
		return dmderrors.NewUntrackedAfterCreateError(opts.BranchName, parent, err)
	}

	ctx.Splog.Info("Created %s on top of %s.",
		tui.ColorBranchName(opts.BranchName, true), tui.ColorBranchName(parent, false))
	return nil
}
