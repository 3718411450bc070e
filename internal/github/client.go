package github

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// GetToken returns a GitHub token from GITHUB_TOKEN, falling back to the gh CLI
func GetToken(ctx context.Context) (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	output, err := exec.CommandContext(ctx, "gh", "auth", "token").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get GitHub token, set GITHUB_TOKEN or run 'gh auth login': %w", err)
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", fmt.Errorf("empty GitHub token")
	}
	return token, nil
}

// NewClient creates an authenticated API client. apiBaseURL overrides the
// endpoint; otherwise hosts other than github.com are treated as GitHub Enterprise.
func NewClient(ctx context.Context, host, token, apiBaseURL string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	if apiBaseURL == "" && host != "" && host != "github.com" {
		apiBaseURL = fmt.Sprintf("https://%s/api/v3/", host)
	}
	if apiBaseURL == "" {
		return client, nil
	}

	if !strings.HasSuffix(apiBaseURL, "/") {
		apiBaseURL += "/"
	}
	baseURL, err := url.Parse(apiBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GitHub API URL %s: %w", apiBaseURL, err)
	}
	client.BaseURL = baseURL
	client.UploadURL = baseURL
	return client, nil
}
