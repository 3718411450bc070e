package actions

import (
	"fmt"

	dmderrors "diamond.dev/diamond/internal/errors"
	"diamond.dev/diamond/internal/runtime"
	"diamond.dev/diamond/internal/tui"
)

// TrackOptions contains options for the track command
type TrackOptions struct {
	// Parent defaults to the root branch
	Parent string
}

// TrackAction records the current branch as a child of its parent
func TrackAction(ctx *runtime.Context, opts TrackOptions) error {
	current, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return fmt.Errorf("failed to get current branch: %w", err)
	}

	parent := opts.Parent
	if parent == "" {
		parent, err = requireRoot(ctx)
		if err != nil {
			return err
		}
	}
	if parent == current {
		return fmt.Errorf("cannot track %s on top of itself", current)
	}

	isAncestor, err := ctx.Git.IsAncestor(ctx.Context, parent, current)
	if err != nil {
		return fmt.Errorf("failed to compare %s with %s: %w", current, parent, err)
	}
	if !isAncestor {
		return dmderrors.NewNotAnAncestorError(parent, current)
	}

	if err := ctx.Tx.CreateBranch(ctx.Context, parent, current); err != nil {
		return err
	}

	ctx.Splog.Info("Tracked %s on top of %s.",
		tui.ColorBranchName(current, true), tui.ColorBranchName(parent, false))
	return nil
}
