package github

import (
	"context"

	"github.com/google/go-github/v62/github"

	"diamond.dev/diamond/internal/tui"
)

// PullRequestNotifier opens a pull request for each submitted branch unless
// one is already open for it
type PullRequestNotifier struct {
	client *github.Client
	splog  *tui.Splog
	draft  bool
}

// NewPullRequestNotifier creates a notifier backed by client
func NewPullRequestNotifier(client *github.Client, splog *tui.Splog, draft bool) *PullRequestNotifier {
	return &PullRequestNotifier{client: client, splog: splog, draft: draft}
}

func (n *PullRequestNotifier) Notify(ctx context.Context, req ReviewRequest) {
	owner, repo := req.Remote.Organization, req.Remote.Repo

	existing, _, err := n.client.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
		State: "open",
		Head:  owner + ":" + req.Branch,
	})
	if err != nil {
		n.splog.Warn("Could not look up pull requests for %s: %v", req.Branch, err)
		return
	}
	if len(existing) > 0 {
		pr := existing[0]
		n.splog.Debug("Pull request %s#%d already open for %s", req.Remote.Slug(), pr.GetNumber(), req.Branch)
		return
	}

	created, _, err := n.client.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title: github.String(req.Branch),
		Head:  github.String(req.Branch),
		Base:  github.String(req.Parent),
		Draft: github.Bool(n.draft),
	})
	if err != nil {
		n.splog.Warn("Could not open a pull request for %s in %s: %v", req.Branch, req.Remote.Slug(), err)
		return
	}
	n.splog.Info("[%s] opened pull request #%d: %s", req.Branch, created.GetNumber(), tui.ColorURL(created.GetHTMLURL()))
}
