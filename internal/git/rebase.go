package git

import (
	"context"

	dmderrors "diamond.dev/diamond/internal/errors"
)

// Rebase rebases branch onto parent. A conflicted rebase is left in progress
// for the user to resolve; it is never aborted here.
func (r *CommandRunner) Rebase(ctx context.Context, parent, branch string) error {
	if _, err := r.Run(ctx, "rebase", parent, branch); err != nil {
		return dmderrors.NewRebaseFailedError(branch, parent, err)
	}
	return nil
}
