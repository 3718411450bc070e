package actions

import (
	"context"

	"diamond.dev/diamond/internal/git"
	"diamond.dev/diamond/internal/runtime"
	"diamond.dev/diamond/internal/tui"
)

// RestackAction rebases every branch of the current stack onto its parent,
// nearest the root first, and returns to the starting branch
func RestackAction(ctx *runtime.Context) error {
	current, stack, err := currentStack(ctx)
	if err != nil {
		return err
	}

	guard := git.NewBranchGuard(ctx.Git, current)
	return git.WithGuard(ctx.Context, guard, func(goCtx context.Context) error {
		for _, entry := range stack {
			if err := ctx.Git.Rebase(goCtx, entry.Parent, entry.Name); err != nil {
				return err
			}
			ctx.Splog.Info("Restacked %s on %s.",
				tui.ColorBranchName(entry.Name, entry.Name == current),
				tui.ColorBranchName(entry.Parent, entry.Parent == current))
		}
		return nil
	})
}
