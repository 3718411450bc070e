package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	dmderrors "diamond.dev/diamond/internal/errors"
	"diamond.dev/diamond/internal/git"
	"diamond.dev/diamond/testhelpers"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected git.Remote
	}{
		{
			name:     "ssh",
			url:      "git@github.com:crockeo/diamond",
			expected: git.Remote{Host: "github.com", Organization: "crockeo", Repo: "diamond"},
		},
		{
			name:     "ssh with .git suffix",
			url:      "git@github.com:crockeo/diamond.git",
			expected: git.Remote{Host: "github.com", Organization: "crockeo", Repo: "diamond"},
		},
		{
			name:     "https",
			url:      "https://github.com/crockeo/diamond",
			expected: git.Remote{Host: "github.com", Organization: "crockeo", Repo: "diamond"},
		},
		{
			name:     "https with .git suffix and newline",
			url:      "https://github.com/crockeo/diamond.git\n",
			expected: git.Remote{Host: "github.com", Organization: "crockeo", Repo: "diamond"},
		},
		{
			name:     "https with trailing slash",
			url:      "https://github.com/crockeo/diamond/",
			expected: git.Remote{Host: "github.com", Organization: "crockeo", Repo: "diamond"},
		},
		{
			name:     "enterprise host with dotted repo",
			url:      "git@git.example.com:platform/api.v2.git",
			expected: git.Remote{Host: "git.example.com", Organization: "platform", Repo: "api.v2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote, err := git.ParseRemoteURL(tt.url)
			require.NoError(t, err)
			require.Equal(t, tt.expected, remote)
		})
	}
}

func TestParseRemoteURLRejectsMalformed(t *testing.T) {
	for _, url := range []string{
		"",
		"/tmp/some/bare.git",
		"https://github.com/only-org",
		"git@github.com:org/repo/extra",
		"ftp://github.com/org/repo",
	} {
		t.Run(url, func(t *testing.T) {
			_, err := git.ParseRemoteURL(url)
			require.ErrorIs(t, err, dmderrors.ErrMalformedRemoteURL)
		})
	}
}

func TestReviewURL(t *testing.T) {
	remote := git.Remote{Host: "github.com", Organization: "crockeo", Repo: "diamond"}
	require.Equal(t,
		"https://github.com/crockeo/diamond/compare/main...feature?expand=1",
		remote.ReviewURL("main", "feature"))

	require.Equal(t,
		"https://review.example.com/crockeo/diamond/compare/a...b?expand=1",
		remote.WithHost("review.example.com").ReviewURL("a", "b"))
	require.Equal(t, remote, remote.WithHost(""))
	require.Equal(t, "crockeo/diamond", remote.Slug())
}

func TestParseRemote(t *testing.T) {
	runner := testhelpers.NewFakeRunner("main")
	runner.Remotes["origin"] = "git@github.com:crockeo/diamond.git"

	remote, err := git.ParseRemote(context.Background(), runner, "origin")
	require.NoError(t, err)
	require.Equal(t, "diamond", remote.Repo)

	_, err = git.ParseRemote(context.Background(), runner, "upstream")
	require.ErrorIs(t, err, dmderrors.ErrCommandFailed)
}
