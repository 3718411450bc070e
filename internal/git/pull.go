package git

import (
	"context"
	"strings"

	dmderrors "diamond.dev/diamond/internal/errors"
)

// Pull fast-forwards branch from remote. The branch is checked out for the
// duration of the pull and the previous branch is restored afterwards.
func (r *CommandRunner) Pull(ctx context.Context, remote, branch string) error {
	return WithBranch(ctx, r, branch, func(ctx context.Context) error {
		_, err := r.Run(ctx, "pull", "--ff-only", "--no-edit", remote, branch)
		if err == nil {
			return nil
		}
		if isNonFastForward(stderrOf(err)) {
			return dmderrors.NewNonFastForwardError(remote, branch, err)
		}
		return dmderrors.NewCommandFailedError("pull", branch, err)
	})
}

func isNonFastForward(output string) bool {
	output = strings.ToLower(output)
	return strings.Contains(output, "not possible to fast-forward") ||
		strings.Contains(output, "diverging branches")
}
