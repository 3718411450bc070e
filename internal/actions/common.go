package actions

import (
	"fmt"

	dmderrors "diamond.dev/diamond/internal/errors"
	"diamond.dev/diamond/internal/runtime"
	"diamond.dev/diamond/internal/store"
)

func requireRemote(ctx *runtime.Context) (string, error) {
	remote, ok, err := ctx.Tx.GetRemote(ctx.Context)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", dmderrors.ErrRemoteNotConfigured
	}
	return remote, nil
}

func requireRoot(ctx *runtime.Context) (string, error) {
	root, ok, err := ctx.Tx.GetRootBranch(ctx.Context)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", dmderrors.ErrRootNotConfigured
	}
	return root, nil
}

// currentStack returns the checked-out branch and its stack in cascade order
func currentStack(ctx *runtime.Context) (string, []store.StackEntry, error) {
	current, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get current branch: %w", err)
	}

	stack, err := ctx.Tx.GetBranchesInStack(ctx.Context, current)
	if err != nil {
		return "", nil, err
	}
	if len(stack) == 0 {
		tracked, err := ctx.Tx.IsTracked(ctx.Context, current)
		if err != nil {
			return "", nil, err
		}
		if !tracked {
			return "", nil, fmt.Errorf("%s: %w", current, dmderrors.ErrBranchNotTracked)
		}
	}
	return current, stack, nil
}
