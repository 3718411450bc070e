package git

import (
	"context"
	"strings"

	dmderrors "diamond.dev/diamond/internal/errors"
)

// PushBranch pushes branch to the same name on remote with --force-with-lease.
// A rejected lease means someone else updated the remote branch.
func (r *CommandRunner) PushBranch(ctx context.Context, remote, branch string) error {
	refspec := branchRefPrefix + branch + ":" + branchRefPrefix + branch
	_, err := r.Run(ctx, "push", "--force-with-lease", remote, refspec)
	if err == nil {
		return nil
	}
	if strings.Contains(stderrOf(err), "stale info") {
		return dmderrors.NewStaleLeaseError(remote, branch, err)
	}
	return dmderrors.NewCommandFailedError("push", branch, err)
}
