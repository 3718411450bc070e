package actions

import (
	"fmt"
	"slices"
	"time"

	dmderrors "diamond.dev/diamond/internal/errors"
	"diamond.dev/diamond/internal/runtime"
	"diamond.dev/diamond/internal/tui"
)

// InitOptions contains options for the init command
type InitOptions struct {
	Remote     string
	RootBranch string
	// CommandTimeout is saved to the repository config when set
	CommandTimeout time.Duration
}

// InitAction records the remote and the root branch of the repository
func InitAction(ctx *runtime.Context, opts InitOptions) error {
	if opts.Remote == "" {
		return dmderrors.ErrRemoteNotConfigured
	}
	if opts.RootBranch == "" {
		return dmderrors.ErrRootNotConfigured
	}

	remotes, err := ctx.Git.ListRemotes(ctx.Context)
	if err != nil {
		return fmt.Errorf("failed to list remotes: %w", err)
	}
	if !slices.Contains(remotes, opts.Remote) {
		return fmt.Errorf("remote %s does not exist", opts.Remote)
	}

	exists, err := ctx.Git.BranchExists(ctx.Context, opts.RootBranch)
	if err != nil {
		return fmt.Errorf("failed to check branch %s: %w", opts.RootBranch, err)
	}
	if !exists {
		return fmt.Errorf("branch %s does not exist", opts.RootBranch)
	}

	if err := ctx.Tx.SetRemote(ctx.Context, opts.Remote); err != nil {
		return err
	}
	if err := ctx.Tx.SetRootBranch(ctx.Context, opts.RootBranch); err != nil {
		return err
	}

	if opts.CommandTimeout > 0 && ctx.Config != nil {
		ctx.Config.SetCommandTimeout(opts.CommandTimeout)
		if err := ctx.Config.Save(); err != nil {
			return err
		}
		ctx.Splog.Info("Saved git command timeout of %s to %s.", opts.CommandTimeout, ctx.Config.Path())
	}

	ctx.Splog.Info("Initialized dmd with remote %s and root branch %s.",
		tui.ColorCyan(opts.Remote), tui.ColorBranchName(opts.RootBranch, false))
	return nil
}
