package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"diamond.dev/diamond/internal/actions"
	"diamond.dev/diamond/internal/cli/helpers"
	"diamond.dev/diamond/internal/runtime"
	"diamond.dev/diamond/internal/tui"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var opts actions.InitOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Configure the remote and root branch of this repository",
		Long: `Configure the remote that stacks are pushed to and the root branch every
stack is built on. Values not given as flags are prompted for in a terminal.
Running init again replaces the root branch as long as it has no tracked children.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if opts.Remote == "" {
					remote, err := promptRemote(ctx)
					if err != nil {
						return err
					}
					opts.Remote = remote
				}
				if opts.RootBranch == "" {
					root, err := promptRootBranch(ctx)
					if err != nil {
						return err
					}
					opts.RootBranch = root
				}
				return actions.InitAction(ctx, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Remote, "remote", "", "Name of the git remote to push stacks to")
	cmd.Flags().StringVar(&opts.RootBranch, "root-branch", "", "Name of the branch every stack is built on")
	cmd.Flags().DurationVar(&opts.CommandTimeout, "command-timeout", 0, "Save a timeout for each git command, e.g. 2m")

	return cmd
}

func promptRemote(ctx *runtime.Context) (string, error) {
	if !tui.IsTTY() {
		return "", fmt.Errorf("--remote is required when not running in a terminal")
	}

	remotes, err := ctx.Git.ListRemotes(ctx.Context)
	if err != nil {
		return "", fmt.Errorf("failed to list remotes: %w", err)
	}
	if len(remotes) == 0 {
		return "", fmt.Errorf("repository has no remotes, add one with 'git remote add'")
	}

	defaultRemote := remotes[0]
	if slices.Contains(remotes, "origin") {
		defaultRemote = "origin"
	}
	return tui.PromptSelect("Which remote should stacks be pushed to?", remotes, defaultRemote)
}

func promptRootBranch(ctx *runtime.Context) (string, error) {
	if !tui.IsTTY() {
		return "", fmt.Errorf("--root-branch is required when not running in a terminal")
	}

	current, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		current = ""
	}
	return tui.PromptTextInput("Root branch:", current)
}
