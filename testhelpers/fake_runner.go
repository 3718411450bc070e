package testhelpers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	dmderrors "diamond.dev/diamond/internal/errors"
	"diamond.dev/diamond/internal/git"
)

// FakeRunner is a scripted git.Runner. It tracks the checked-out branch,
// records every mutating call as a short string ("checkout a", "rebase main a",
// "pull origin main", "push origin a", "create a") and fails calls listed in Failures.
type FakeRunner struct {
	Current  string
	Branches map[string]bool
	// Remotes maps remote names to URLs
	Remotes map[string]string
	// NotAncestors lists "ancestor branch" pairs for which IsAncestor is false
	NotAncestors map[string]bool
	// Failures maps a recorded call to the error it returns
	Failures map[string]error
	// FailRestore makes checkouts back to this branch fail once something else is checked out
	FailRestore string
	Calls       []string
}

var _ git.Runner = (*FakeRunner)(nil)

// NewFakeRunner creates a runner positioned on current with the given branches existing
func NewFakeRunner(current string, branches ...string) *FakeRunner {
	r := &FakeRunner{
		Current:      current,
		Branches:     map[string]bool{current: true},
		Remotes:      map[string]string{},
		NotAncestors: map[string]bool{},
		Failures:     map[string]error{},
	}
	for _, b := range branches {
		r.Branches[b] = true
	}
	return r
}

// FailOn scripts call to fail with a command error
func (r *FakeRunner) FailOn(call string) *FakeRunner {
	r.Failures[call] = dmderrors.NewGitCommandError("git", strings.Fields(call), "", "scripted failure", 1, fmt.Errorf("exit status 1"))
	return r
}

// CallsWithPrefix returns the recorded calls starting with prefix, e.g. "rebase"
func (r *FakeRunner) CallsWithPrefix(prefix string) []string {
	var calls []string
	for _, call := range r.Calls {
		if strings.HasPrefix(call, prefix) {
			calls = append(calls, call)
		}
	}
	return calls
}

func (r *FakeRunner) record(call string) error {
	r.Calls = append(r.Calls, call)
	return r.Failures[call]
}

func (r *FakeRunner) CurrentBranch(_ context.Context) (string, error) {
	if r.Current == "" {
		return "", dmderrors.ErrDetachedHead
	}
	return r.Current, nil
}

func (r *FakeRunner) CreateBranch(_ context.Context, name string) error {
	if err := r.record("create " + name); err != nil {
		return dmderrors.NewCommandFailedError("create branch", name, err)
	}
	if r.Branches[name] {
		return dmderrors.NewCommandFailedError("create branch", name, fmt.Errorf("a branch named '%s' already exists", name))
	}
	r.Branches[name] = true
	r.Current = name
	return nil
}

func (r *FakeRunner) Checkout(_ context.Context, name string) error {
	call := "checkout " + name
	if r.FailRestore == name && r.Current != name {
		r.Calls = append(r.Calls, call)
		return dmderrors.NewCommandFailedError("checkout", name, fmt.Errorf("scripted restore failure"))
	}
	if err := r.record(call); err != nil {
		return dmderrors.NewCommandFailedError("checkout", name, err)
	}
	if !r.Branches[name] {
		return dmderrors.NewCommandFailedError("checkout", name, fmt.Errorf("pathspec '%s' did not match", name))
	}
	r.Current = name
	return nil
}

func (r *FakeRunner) Rebase(_ context.Context, parent, branch string) error {
	if err := r.record("rebase " + parent + " " + branch); err != nil {
		return dmderrors.NewRebaseFailedError(branch, parent, err)
	}
	// git leaves the rebased branch checked out
	r.Current = branch
	return nil
}

func (r *FakeRunner) Pull(ctx context.Context, remote, branch string) error {
	return git.WithBranch(ctx, r, branch, func(context.Context) error {
		if err := r.record("pull " + remote + " " + branch); err != nil {
			return dmderrors.NewNonFastForwardError(remote, branch, err)
		}
		return nil
	})
}

func (r *FakeRunner) PushBranch(_ context.Context, remote, branch string) error {
	if err := r.record("push " + remote + " " + branch); err != nil {
		return dmderrors.NewStaleLeaseError(remote, branch, err)
	}
	return nil
}

func (r *FakeRunner) IsAncestor(_ context.Context, ancestor, branch string) (bool, error) {
	if err := r.Failures["is-ancestor "+ancestor+" "+branch]; err != nil {
		return false, err
	}
	return !r.NotAncestors[ancestor+" "+branch], nil
}

func (r *FakeRunner) RemoteURL(_ context.Context, remote string) (string, error) {
	url, ok := r.Remotes[remote]
	if !ok {
		return "", dmderrors.NewGitCommandError("git", []string{"remote", "get-url", remote}, "", "error: No such remote '"+remote+"'", 2, fmt.Errorf("exit status 2"))
	}
	return url, nil
}

func (r *FakeRunner) ListRemotes(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(r.Remotes))
	for name := range r.Remotes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *FakeRunner) BranchExists(_ context.Context, name string) (bool, error) {
	return r.Branches[name], nil
}
