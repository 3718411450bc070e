package actions

import (
	"context"

	"diamond.dev/diamond/internal/git"
	"diamond.dev/diamond/internal/runtime"
	"diamond.dev/diamond/internal/tui"
)

// SyncAction pulls the root branch and every branch of the current stack
// from the remote, rebasing each one onto its parent after the pull
func SyncAction(ctx *runtime.Context) error {
	remote, err := requireRemote(ctx)
	if err != nil {
		return err
	}
	root, err := requireRoot(ctx)
	if err != nil {
		return err
	}

	current, stack, err := currentStack(ctx)
	if err != nil {
		return err
	}

	guard := git.NewBranchGuard(ctx.Git, current)
	return git.WithGuard(ctx.Context, guard, func(goCtx context.Context) error {
		if err := ctx.Git.Pull(goCtx, remote, root); err != nil {
			return err
		}
		ctx.Splog.Info("Pulled %s from %s.", tui.ColorBranchName(root, root == current), remote)

		for _, entry := range stack {
			if err := ctx.Git.Pull(goCtx, remote, entry.Name); err != nil {
				return err
			}
			if err := ctx.Git.Rebase(goCtx, entry.Parent, entry.Name); err != nil {
				return err
			}
			ctx.Splog.Info("Synced %s on %s.",
				tui.ColorBranchName(entry.Name, entry.Name == current),
				tui.ColorBranchName(entry.Parent, entry.Parent == current))
		}
		return nil
	})
}
