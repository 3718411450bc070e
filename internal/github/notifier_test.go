package github_test

import (
	"bytes"
	"context"
	"testing"

	gogithub "github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/require"

	"diamond.dev/diamond/internal/git"
	"diamond.dev/diamond/internal/github"
	"diamond.dev/diamond/internal/tui"
	"diamond.dev/diamond/testhelpers"
)

func newSplog(t *testing.T) (*tui.Splog, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{Writer: &buf})
	require.NoError(t, err)
	return splog, &buf
}

func request(branch, parent string) github.ReviewRequest {
	remote := git.Remote{Host: "github.com", Organization: "owner", Repo: "repo"}
	return github.ReviewRequest{
		Remote: remote,
		Parent: parent,
		Branch: branch,
		URL:    remote.ReviewURL(parent, branch),
	}
}

func TestLinkNotifier(t *testing.T) {
	splog, buf := newSplog(t)

	github.NewLinkNotifier(splog).Notify(context.Background(), request("a", "main"))

	require.Contains(t, buf.String(), "[a] -> ")
	require.Contains(t, buf.String(), "https://github.com/owner/repo/compare/main...a?expand=1")
}

func TestPullRequestNotifier(t *testing.T) {
	ctx := context.Background()

	newNotifier := func(t *testing.T, config *testhelpers.MockGitHubServerConfig) (*github.PullRequestNotifier, *bytes.Buffer) {
		server := testhelpers.NewMockGitHubServer(t, config)
		client, err := github.NewClient(ctx, "github.com", "token", server.URL)
		require.NoError(t, err)
		splog, buf := newSplog(t)
		return github.NewPullRequestNotifier(client, splog, true), buf
	}

	t.Run("opens a draft pull request against the parent", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		notifier, buf := newNotifier(t, config)

		notifier.Notify(ctx, request("b", "a"))

		created := config.Created()
		require.Len(t, created, 1)
		require.Equal(t, "b", created[0].GetHead().GetRef())
		require.Equal(t, "a", created[0].GetBase().GetRef())
		require.True(t, created[0].GetDraft())
		require.Contains(t, buf.String(), "opened pull request #1")
	})

	t.Run("skips branches with an open pull request", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.PRs["b"] = &gogithub.PullRequest{Number: gogithub.Int(7)}
		notifier, _ := newNotifier(t, config)

		notifier.Notify(ctx, request("b", "a"))

		require.Empty(t, config.Created())
	})

	t.Run("failures are warnings", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.FailCreate = 422
		notifier, buf := newNotifier(t, config)

		require.NotPanics(t, func() { notifier.Notify(ctx, request("b", "a")) })
		require.Contains(t, buf.String(), "Could not open a pull request for b in owner/repo")
	})
}

type recordingNotifier struct {
	branches []string
}

func (r *recordingNotifier) Notify(_ context.Context, req github.ReviewRequest) {
	r.branches = append(r.branches, req.Branch)
}

func TestMultiNotifier(t *testing.T) {
	first, second := &recordingNotifier{}, &recordingNotifier{}
	multi := github.MultiNotifier{first, second}

	multi.Notify(context.Background(), request("a", "main"))
	multi.Notify(context.Background(), request("b", "a"))

	require.Equal(t, []string{"a", "b"}, first.branches)
	require.Equal(t, []string{"a", "b"}, second.branches)
}

func TestNewClientEnterpriseHost(t *testing.T) {
	client, err := github.NewClient(context.Background(), "git.example.com", "token", "")
	require.NoError(t, err)
	require.Equal(t, "https://git.example.com/api/v3/", client.BaseURL.String())

	client, err = github.NewClient(context.Background(), "github.com", "token", "")
	require.NoError(t, err)
	require.Equal(t, "https://api.github.com/", client.BaseURL.String())
}
