package git

import (
	"context"
	"errors"
	"fmt"

	dmderrors "diamond.dev/diamond/internal/errors"
)

// BranchGuard remembers the branch the working copy started on and moves
// back to it when released. Release happens at most once.
type BranchGuard struct {
	runner   Runner
	original string
	released bool
}

// UsingBranch checks out target and returns a guard that restores the
// branch that was current before. If the checkout fails there is nothing
// to restore and no guard is returned.
func UsingBranch(ctx context.Context, r Runner, target string) (*BranchGuard, error) {
	original, err := r.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.Checkout(ctx, target); err != nil {
		return nil, err
	}
	return NewBranchGuard(r, original), nil
}

// NewBranchGuard anchors a guard at original, which must already be checked out
func NewBranchGuard(r Runner, original string) *BranchGuard {
	return &BranchGuard{runner: r, original: original}
}

// OriginalBranch returns the branch the guard restores
func (g *BranchGuard) OriginalBranch() string {
	return g.original
}

// Released reports whether the guard has already restored its branch
func (g *BranchGuard) Released() bool {
	return g.released
}

// Release checks out the original branch. Calling it twice returns ErrGuardReleased.
func (g *BranchGuard) Release(ctx context.Context) error {
	if g.released {
		return dmderrors.ErrGuardReleased
	}
	g.released = true

	// restoring must still happen after the command context was canceled
	ctx = context.WithoutCancel(ctx)
	if err := g.runner.Checkout(ctx, g.original); err != nil {
		current, currentErr := g.runner.CurrentBranch(ctx)
		if currentErr != nil {
			current = "an unknown branch"
		}
		return dmderrors.NewRestoreFailedError(g.original, current, err)
	}
	return nil
}

// WithGuard runs fn and then releases guard, whether fn returns normally,
// returns an error or panics. A panic is re-raised after the restore; if the
// restore fails too, the re-raised value is an error wrapping the RestoreFailedError.
// If fn already released the guard it is not released again.
func WithGuard(ctx context.Context, guard *BranchGuard, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if !guard.Released() {
				if releaseErr := guard.Release(ctx); releaseErr != nil {
					panic(fmt.Errorf("%v: %w", p, releaseErr))
				}
			}
			panic(p)
		}
	}()

	err = fn(ctx)
	if guard.Released() {
		return err
	}
	if releaseErr := guard.Release(ctx); releaseErr != nil {
		return errors.Join(err, releaseErr)
	}
	return err
}

// WithBranch checks out target, runs fn and restores the previous branch
func WithBranch(ctx context.Context, r Runner, target string, fn func(ctx context.Context) error) error {
	guard, err := UsingBranch(ctx, r, target)
	if err != nil {
		return err
	}
	return WithGuard(ctx, guard, fn)
}
