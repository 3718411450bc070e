package actions

import (
	"fmt"

	"diamond.dev/diamond/internal/git"
	"diamond.dev/diamond/internal/github"
	"diamond.dev/diamond/internal/runtime"
	"diamond.dev/diamond/internal/tui"
)

// SubmitAction pushes every branch of the current stack and emits a review
// request for each. The first failed push stops the cascade; branches pushed
// before it stay recorded as submitted.
func SubmitAction(ctx *runtime.Context) error {
	remoteName, err := requireRemote(ctx)
	if err != nil {
		return err
	}

	current, stack, err := currentStack(ctx)
	if err != nil {
		return err
	}

	remote, err := git.ParseRemote(ctx.Context, ctx.Git, remoteName)
	if err != nil {
		return err
	}
	if ctx.Config != nil {
		remote = remote.WithHost(ctx.Config.ReviewHostOverride())
	}

	for _, entry := range stack {
		if err := ctx.Git.PushBranch(ctx.Context, remoteName, entry.Name); err != nil {
			return err
		}
		if err := ctx.Tx.MarkSubmitted(ctx.Context, entry.Name); err != nil {
			return fmt.Errorf("pushed %s but failed to record it: %w", entry.Name, err)
		}
		// pushed branches stay recorded even if a later push fails
		ctx.KeepProgressOnFailure()

		ctx.Splog.Debug("Pushed %s to %s.", tui.ColorBranchName(entry.Name, entry.Name == current), remoteName)
		ctx.Notifier.Notify(ctx.Context, github.ReviewRequest{
			Remote: remote,
			Parent: entry.Parent,
			Branch: entry.Name,
			URL:    remote.ReviewURL(entry.Parent, entry.Name),
		})
	}
	return nil
}
