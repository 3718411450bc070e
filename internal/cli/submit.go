package cli

import (
	"github.com/spf13/cobra"

	"diamond.dev/diamond/internal/actions"
	"diamond.dev/diamond/internal/cli/helpers"
	"diamond.dev/diamond/internal/git"
	"diamond.dev/diamond/internal/github"
	"diamond.dev/diamond/internal/runtime"
)

// newSubmitCmd creates the submit command
func newSubmitCmd() *cobra.Command {
	var openPRs bool

	cmd := &cobra.Command{
		Use:     "submit",
		Aliases: []string{"s"},
		Short:   "Push every branch of the current stack and link each for review",
		Long: `Force push (with lease) every branch of the current stack, starting closest
to the root, and print a review link comparing each branch with its parent.
With --open-prs a pull request is opened for every branch that has none.
The first failed push stops the submit; branches pushed before it stay submitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if openPRs || (ctx.Config != nil && ctx.Config.OpenPullRequests()) {
					if err := addPullRequestNotifier(ctx); err != nil {
						return err
					}
				}
				return actions.SubmitAction(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&openPRs, "open-prs", false, "Open a pull request for every submitted branch that has none")

	return cmd
}

func addPullRequestNotifier(ctx *runtime.Context) error {
	remoteName, ok, err := ctx.Tx.GetRemote(ctx.Context)
	if err != nil || !ok {
		// submit reports the missing remote itself
		return err
	}
	remote, err := git.ParseRemote(ctx.Context, ctx.Git, remoteName)
	if err != nil {
		return err
	}

	token, err := github.GetToken(ctx.Context)
	if err != nil {
		return err
	}
	client, err := github.NewClient(ctx.Context, remote.Host, token, ctx.Config.GitHubAPIBaseURL())
	if err != nil {
		return err
	}

	ctx.Notifier = github.MultiNotifier{
		ctx.Notifier,
		github.NewPullRequestNotifier(client, ctx.Splog, ctx.Config.DraftPullRequests()),
	}
	return nil
}
