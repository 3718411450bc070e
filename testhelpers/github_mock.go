package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	mu sync.Mutex
	// PRs maps head branch names to existing open pull requests
	PRs map[string]*github.PullRequest
	// CreatedPRs stores PRs that were created through the API
	CreatedPRs []*github.PullRequest
	// FailCreate makes every create request fail with this status code
	FailCreate int
	// Requests records "METHOD path" for every request served
	Requests []string
	Owner    string
	Repo     string
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		PRs:        make(map[string]*github.PullRequest),
		CreatedPRs: make([]*github.PullRequest, 0),
		Owner:      "owner",
		Repo:       "repo",
	}
}

// Created returns a snapshot of the created pull requests
func (c *MockGitHubServerConfig) Created() []*github.PullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*github.PullRequest{}, c.CreatedPRs...)
}

// NewMockGitHubServer creates an httptest server serving the pull request
// list and create endpoints of the GitHub REST API
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	basePath := "/repos/" + config.Owner + "/" + config.Repo + "/pulls"

	mux := http.NewServeMux()
	mux.HandleFunc(basePath, func(w http.ResponseWriter, r *http.Request) {
		config.mu.Lock()
		defer config.mu.Unlock()
		config.Requests = append(config.Requests, r.Method+" "+r.URL.Path)

		switch r.Method {
		case http.MethodGet:
			// head arrives as "owner:branch"
			head := r.URL.Query().Get("head")
			branchName := strings.TrimPrefix(head, config.Owner+":")

			prs := []*github.PullRequest{}
			if pr, ok := config.PRs[branchName]; ok && head != "" {
				prs = append(prs, pr)
			}
			writeJSON(w, http.StatusOK, prs)

		case http.MethodPost:
			if config.FailCreate != 0 {
				http.Error(w, `{"message":"create failed"}`, config.FailCreate)
				return
			}

			var newPR github.NewPullRequest
			if err := json.NewDecoder(r.Body).Decode(&newPR); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			prNumber := len(config.CreatedPRs) + 1
			pr := &github.PullRequest{
				Number:  github.Int(prNumber),
				Title:   newPR.Title,
				Body:    newPR.Body,
				Head:    &github.PullRequestBranch{Ref: newPR.Head},
				Base:    &github.PullRequestBranch{Ref: newPR.Base},
				Draft:   newPR.Draft,
				HTMLURL: github.String(fmt.Sprintf("https://github.com/%s/%s/pull/%d", config.Owner, config.Repo, prNumber)),
			}
			config.CreatedPRs = append(config.CreatedPRs, pr)
			config.PRs[newPR.GetHead()] = pr
			writeJSON(w, http.StatusCreated, pr)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
