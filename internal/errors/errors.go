// Package errors provides sentinel errors and custom error types for dmd.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrRemoteNotConfigured indicates that no remote has been configured
	ErrRemoteNotConfigured = errors.New("cannot find remote, configure the repository with 'dmd init'")

	// ErrRootNotConfigured indicates that no root branch has been configured
	ErrRootNotConfigured = errors.New("cannot find root branch, configure the repository with 'dmd init'")

	// ErrMultipleRootsDetected indicates that more than one branch has no parent
	ErrMultipleRootsDetected = errors.New("multiple root branches detected")

	// ErrRootBranchHasChildren indicates that the root branch cannot be replaced
	ErrRootBranchHasChildren = errors.New("root branch has children")

	// ErrUntrackedParent indicates that a parent branch is not tracked
	ErrUntrackedParent = errors.New("parent branch is not tracked")

	// ErrBranchAlreadyTracked indicates that a branch is already tracked
	ErrBranchAlreadyTracked = errors.New("branch is already tracked")

	// ErrBranchNotTracked indicates that a branch is not tracked
	ErrBranchNotTracked = errors.New("branch is not tracked")

	// ErrBranchHasChildren indicates that a branch with dependents cannot be removed
	ErrBranchHasChildren = errors.New("branch has children")

	// ErrNotAnAncestor indicates that a requested parent is not an ancestor of the branch
	ErrNotAnAncestor = errors.New("not an ancestor")

	// ErrDetachedHead indicates that HEAD is not on a branch
	ErrDetachedHead = errors.New("HEAD is detached, not on a branch")

	// ErrMalformedRef indicates that a symbolic ref could not be parsed
	ErrMalformedRef = errors.New("malformed git ref")

	// ErrMalformedRemoteURL indicates that a remote URL matches no supported form
	ErrMalformedRemoteURL = errors.New("malformed remote URL")

	// ErrCommandFailed indicates that an external command exited unsuccessfully
	ErrCommandFailed = errors.New("command failed")

	// ErrRebaseFailed indicates that a rebase did not complete
	ErrRebaseFailed = errors.New("rebase failed")

	// ErrNonFastForward indicates that a pull could not be fast-forwarded
	ErrNonFastForward = errors.New("not possible to fast-forward")

	// ErrStaleLease indicates that a force-with-lease push was rejected
	ErrStaleLease = errors.New("stale info")

	// ErrRestoreFailed indicates that the working copy could not be moved back to its original branch
	ErrRestoreFailed = errors.New("failed to restore original branch")

	// ErrGuardReleased indicates that a branch guard was released twice
	ErrGuardReleased = errors.New("branch guard already released")
)

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	// ExitCode is the process exit status, or -1 when the process was
	// terminated by a signal or never started.
	ExitCode int
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("%s command failed: %s", e.Command, e.Command)
	if len(e.Args) > 0 {
		msg += " " + strings.Join(e.Args, " ")
	}
	msg += " " + e.StatusMessage()
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", strings.TrimSpace(e.Stderr))
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", strings.TrimSpace(e.Stdout))
	}
	return msg
}

// StatusMessage describes how the process ended
func (e *GitCommandError) StatusMessage() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("(exit status %d)", e.ExitCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("(no exit status, probably killed by a signal: %v)", e.Err)
	}
	return "(no exit status, probably killed by a signal)"
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrCommandFailed
func (e *GitCommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, exitCode int, err error) *GitCommandError {
	return &GitCommandError{
		Command:  command,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}

// ExitCode extracts the exit status from err, or -1 if err carries none
func ExitCode(err error) int {
	var cmdErr *GitCommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}

// CommandFailedError names the failing sub-operation and branch of a cascade
type CommandFailedError struct {
	Operation  string
	BranchName string
	Err        error
}

func (e *CommandFailedError) Error() string {
	if e.BranchName != "" {
		return fmt.Sprintf("%s of %s failed: %v", e.Operation, e.BranchName, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *CommandFailedError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrCommandFailed
func (e *CommandFailedError) Is(target error) bool {
	return target == ErrCommandFailed
}

// NewCommandFailedError creates a new CommandFailedError
func NewCommandFailedError(operation, branchName string, err error) *CommandFailedError {
	return &CommandFailedError{Operation: operation, BranchName: branchName, Err: err}
}

// RebaseFailedError represents a rebase that stopped on a conflict or failed outright
type RebaseFailedError struct {
	BranchName string
	Onto       string
	Err        error
}

func (e *RebaseFailedError) Error() string {
	return fmt.Sprintf("failed to rebase %s onto %s, resolve the rebase manually and re-run: %v", e.BranchName, e.Onto, e.Err)
}

func (e *RebaseFailedError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrRebaseFailed
func (e *RebaseFailedError) Is(target error) bool {
	return target == ErrRebaseFailed
}

// NewRebaseFailedError creates a new RebaseFailedError
func NewRebaseFailedError(branchName, onto string, err error) *RebaseFailedError {
	return &RebaseFailedError{BranchName: branchName, Onto: onto, Err: err}
}

// NonFastForwardError represents a pull where local and remote have diverged
type NonFastForwardError struct {
	Remote     string
	BranchName string
	Err        error
}

func (e *NonFastForwardError) Error() string {
	return fmt.Sprintf("%s has diverged from %s/%s and cannot be fast-forwarded: %v", e.BranchName, e.Remote, e.BranchName, e.Err)
}

func (e *NonFastForwardError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrNonFastForward
func (e *NonFastForwardError) Is(target error) bool {
	return target == ErrNonFastForward
}

// NewNonFastForwardError creates a new NonFastForwardError
func NewNonFastForwardError(remote, branchName string, err error) *NonFastForwardError {
	return &NonFastForwardError{Remote: remote, BranchName: branchName, Err: err}
}

// StaleLeaseError represents a force-with-lease push rejected because the remote moved
type StaleLeaseError struct {
	Remote     string
	BranchName string
	Err        error
}

func (e *StaleLeaseError) Error() string {
	return fmt.Sprintf("force-with-lease push of %s to %s was rejected because the remote branch changed; run 'dmd sync' to pull in those changes: %v", e.BranchName, e.Remote, e.Err)
}

func (e *StaleLeaseError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrStaleLease
func (e *StaleLeaseError) Is(target error) bool {
	return target == ErrStaleLease
}

// NewStaleLeaseError creates a new StaleLeaseError
func NewStaleLeaseError(remote, branchName string, err error) *StaleLeaseError {
	return &StaleLeaseError{Remote: remote, BranchName: branchName, Err: err}
}

// MalformedRefError represents a HEAD ref that does not name a local branch
type MalformedRefError struct {
	Ref string
}

func (e *MalformedRefError) Error() string {
	return fmt.Sprintf("malformed git ref, expected it to start with refs/heads/: %q", e.Ref)
}

// Is returns true if the target error is ErrMalformedRef
func (e *MalformedRefError) Is(target error) bool {
	return target == ErrMalformedRef
}

// NewMalformedRefError creates a new MalformedRefError
func NewMalformedRefError(ref string) *MalformedRefError {
	return &MalformedRefError{Ref: ref}
}

// MalformedRemoteURLError represents a remote URL that matches no supported form
type MalformedRemoteURLError struct {
	URL string
}

func (e *MalformedRemoteURLError) Error() string {
	return fmt.Sprintf("malformed remote URL: %q", e.URL)
}

// Is returns true if the target error is ErrMalformedRemoteURL
func (e *MalformedRemoteURLError) Is(target error) bool {
	return target == ErrMalformedRemoteURL
}

// NewMalformedRemoteURLError creates a new MalformedRemoteURLError
func NewMalformedRemoteURLError(url string) *MalformedRemoteURLError {
	return &MalformedRemoteURLError{URL: url}
}

// RootBranchHasChildrenError represents an attempt to replace a root that still has dependents
type RootBranchHasChildrenError struct {
	RootBranch  string
	NumChildren int
}

func (e *RootBranchHasChildrenError) Error() string {
	return fmt.Sprintf("cannot change root branch while %s has %d tracked children", e.RootBranch, e.NumChildren)
}

// Is returns true if the target error is ErrRootBranchHasChildren
func (e *RootBranchHasChildrenError) Is(target error) bool {
	return target == ErrRootBranchHasChildren
}

// NewRootBranchHasChildrenError creates a new RootBranchHasChildrenError
func NewRootBranchHasChildrenError(rootBranch string, numChildren int) *RootBranchHasChildrenError {
	return &RootBranchHasChildrenError{RootBranch: rootBranch, NumChildren: numChildren}
}

// UntrackedParentError represents a branch whose requested parent is not tracked
type UntrackedParentError struct {
	ParentBranch string
	BranchName   string
}

func (e *UntrackedParentError) Error() string {
	return fmt.Sprintf("cannot track %s on top of %s: %s is not tracked", e.BranchName, e.ParentBranch, e.ParentBranch)
}

// Is returns true if the target error is ErrUntrackedParent
func (e *UntrackedParentError) Is(target error) bool {
	return target == ErrUntrackedParent
}

// NewUntrackedParentError creates a new UntrackedParentError
func NewUntrackedParentError(parentBranch, branchName string) *UntrackedParentError {
	return &UntrackedParentError{ParentBranch: parentBranch, BranchName: branchName}
}

// BranchAlreadyTrackedError represents an insert of a branch name that already exists
type BranchAlreadyTrackedError struct {
	BranchName string
}

func (e *BranchAlreadyTrackedError) Error() string {
	return fmt.Sprintf("branch %s is already tracked", e.BranchName)
}

// Is returns true if the target error is ErrBranchAlreadyTracked
func (e *BranchAlreadyTrackedError) Is(target error) bool {
	return target == ErrBranchAlreadyTracked
}

// NewBranchAlreadyTrackedError creates a new BranchAlreadyTrackedError
func NewBranchAlreadyTrackedError(branchName string) *BranchAlreadyTrackedError {
	return &BranchAlreadyTrackedError{BranchName: branchName}
}

// BranchHasChildrenError represents a removal of a branch other branches depend on
type BranchHasChildrenError struct {
	BranchName string
	Children   []string
}

func (e *BranchHasChildrenError) Error() string {
	return fmt.Sprintf("cannot untrack %s, it has tracked children: %s", e.BranchName, strings.Join(e.Children, ", "))
}

// Is returns true if the target error is ErrBranchHasChildren
func (e *BranchHasChildrenError) Is(target error) bool {
	return target == ErrBranchHasChildren
}

// NewBranchHasChildrenError creates a new BranchHasChildrenError
func NewBranchHasChildrenError(branchName string, children []string) *BranchHasChildrenError {
	return &BranchHasChildrenError{BranchName: branchName, Children: children}
}

// NotAnAncestorError represents a track request whose parent is not in the branch's history
type NotAnAncestorError struct {
	Parent     string
	BranchName string
}

func (e *NotAnAncestorError) Error() string {
	return fmt.Sprintf("cannot track %s as branching off of %s, because %s is not its ancestor", e.BranchName, e.Parent, e.Parent)
}

// Is returns true if the target error is ErrNotAnAncestor
func (e *NotAnAncestorError) Is(target error) bool {
	return target == ErrNotAnAncestor
}

// NewNotAnAncestorError creates a new NotAnAncestorError
func NewNotAnAncestorError(parent, branchName string) *NotAnAncestorError {
	return &NotAnAncestorError{Parent: parent, BranchName: branchName}
}

// RestoreFailedError represents a checkout guard that could not move the
// working copy back where it started. This leaves the user somewhere other
// than where they began and must always be surfaced.
type RestoreFailedError struct {
	OriginalBranch string
	CurrentBranch  string
	Err            error
}

func (e *RestoreFailedError) Error() string {
	return fmt.Sprintf("CRITICAL: failed to move back to original branch %s (working copy left on %s), run 'git checkout %s': %v",
		e.OriginalBranch, e.CurrentBranch, e.OriginalBranch, e.Err)
}

func (e *RestoreFailedError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrRestoreFailed
func (e *RestoreFailedError) Is(target error) bool {
	return target == ErrRestoreFailed
}

// NewRestoreFailedError creates a new RestoreFailedError
func NewRestoreFailedError(originalBranch, currentBranch string, err error) *RestoreFailedError {
	return &RestoreFailedError{OriginalBranch: originalBranch, CurrentBranch: currentBranch, Err: err}
}

// UntrackedAfterCreateError represents a branch created in git whose
// tracking record could not be written.
type UntrackedAfterCreateError struct {
	BranchName string
	Parent     string
	Err        error
}

func (e *UntrackedAfterCreateError) Error() string {
	return fmt.Sprintf("created branch %s but failed to track it, run 'dmd track --parent %s' to retry: %v", e.BranchName, e.Parent, e.Err)
}

func (e *UntrackedAfterCreateError) Unwrap() error {
	return e.Err
}

// NewUntrackedAfterCreateError creates a new UntrackedAfterCreateError
func NewUntrackedAfterCreateError(branchName, parent string, err error) *UntrackedAfterCreateError {
	return &UntrackedAfterCreateError{BranchName: branchName, Parent: parent, Err: err}
}
