package git

import (
	"context"
	"fmt"
	"strings"

	dmderrors "diamond.dev/diamond/internal/errors"
)

const branchRefPrefix = "refs/heads/"

// CurrentBranch returns the checked-out branch, failing on a detached HEAD
func (r *CommandRunner) CurrentBranch(ctx context.Context) (string, error) {
	ref, err := r.Run(ctx, "rev-parse", "--symbolic-full-name", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to read current branch: %w", err)
	}
	return branchFromRef(ref)
}

// branchFromRef strips refs/heads/ from a symbolic ref
func branchFromRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "HEAD" {
		return "", dmderrors.ErrDetachedHead
	}
	name, ok := strings.CutPrefix(ref, branchRefPrefix)
	if !ok || name == "" {
		return "", dmderrors.NewMalformedRefError(ref)
	}
	return name, nil
}

// CreateBranch creates and checks out a new branch
func (r *CommandRunner) CreateBranch(ctx context.Context, name string) error {
	if _, err := r.Run(ctx, "checkout", "-b", name); err != nil {
		return dmderrors.NewCommandFailedError("create branch", name, err)
	}
	return nil
}

// Checkout checks out an existing branch
func (r *CommandRunner) Checkout(ctx context.Context, name string) error {
	if _, err := r.Run(ctx, "checkout", name); err != nil {
		return dmderrors.NewCommandFailedError("checkout", name, err)
	}
	return nil
}

// BranchExists reports whether a local branch exists
func (r *CommandRunner) BranchExists(ctx context.Context, name string) (bool, error) {
	exists, err := r.runPredicate(ctx, "show-ref", "--verify", "--quiet", branchRefPrefix+name)
	if err != nil {
		return false, fmt.Errorf("failed to look up branch %s: %w", name, err)
	}
	return exists, nil
}

// IsAncestor reports whether ancestor is reachable from branch
func (r *CommandRunner) IsAncestor(ctx context.Context, ancestor, branch string) (bool, error) {
	ok, err := r.runPredicate(ctx, "merge-base", "--is-ancestor", ancestor, branch)
	if err != nil {
		return false, dmderrors.NewCommandFailedError("ancestry check against "+ancestor, branch, err)
	}
	return ok, nil
}
