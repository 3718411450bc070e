package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	dmderrors "diamond.dev/diamond/internal/errors"
)

// remoteURLPattern accepts git@host:org/repo[.git] and https://host/org/repo[.git]
var remoteURLPattern = regexp.MustCompile(`^(?:git@(?P<sshhost>[^:/\s]+):|https://(?P<httpshost>[^/\s]+)/)(?P<organization>[^/\s]+)/(?P<repo>[^/\s]+?)(?:\.git)?/?$`)

// Remote identifies a hosted repository
type Remote struct {
	Host         string
	Organization string
	Repo         string
}

// ParseRemoteURL extracts the host, organization and repository from a remote URL
func ParseRemoteURL(url string) (Remote, error) {
	trimmed := strings.TrimSpace(url)
	match := remoteURLPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return Remote{}, dmderrors.NewMalformedRemoteURLError(url)
	}

	group := func(name string) string {
		return match[remoteURLPattern.SubexpIndex(name)]
	}

	host := group("sshhost")
	if host == "" {
		host = group("httpshost")
	}
	remote := Remote{
		Host:         host,
		Organization: group("organization"),
		Repo:         group("repo"),
	}
	if remote.Repo == "" || remote.Repo == ".git" {
		return Remote{}, dmderrors.NewMalformedRemoteURLError(url)
	}
	return remote, nil
}

// ParseRemote resolves the URL of a named remote and parses it
func ParseRemote(ctx context.Context, r Runner, name string) (Remote, error) {
	url, err := r.RemoteURL(ctx, name)
	if err != nil {
		return Remote{}, err
	}
	return ParseRemoteURL(url)
}

// WithHost returns a copy of the remote pointing at a different web host
func (r Remote) WithHost(host string) Remote {
	if host != "" {
		r.Host = host
	}
	return r
}

// Slug returns organization/repo
func (r Remote) Slug() string {
	return r.Organization + "/" + r.Repo
}

// ReviewURL returns the web link for comparing branch against parent
func (r Remote) ReviewURL(parent, branch string) string {
	return fmt.Sprintf("https://%s/%s/%s/compare/%s...%s?expand=1", r.Host, r.Organization, r.Repo, parent, branch)
}

// RemoteURL returns the configured URL of a remote
func (r *CommandRunner) RemoteURL(ctx context.Context, remote string) (string, error) {
	url, err := r.Run(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", fmt.Errorf("failed to get url of remote %s: %w", remote, err)
	}
	return url, nil
}

// ListRemotes returns the names of all configured remotes
func (r *CommandRunner) ListRemotes(ctx context.Context) ([]string, error) {
	remotes, err := r.runLines(ctx, "remote")
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	return remotes, nil
}
