package git

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	dmderrors "diamond.dev/diamond/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// Runner is the set of version-control operations dmd performs
type Runner interface {
	// CurrentBranch returns the short name of the checked-out branch
	CurrentBranch(ctx context.Context) (string, error)
	// CreateBranch creates name at HEAD and checks it out
	CreateBranch(ctx context.Context, name string) error
	Checkout(ctx context.Context, name string) error
	// Rebase replays branch onto parent
	Rebase(ctx context.Context, parent, branch string) error
	// Pull fast-forwards branch from remote, leaving the working copy where it was
	Pull(ctx context.Context, remote, branch string) error
	// PushBranch force-pushes branch to remote, guarded by a lease
	PushBranch(ctx context.Context, remote, branch string) error
	IsAncestor(ctx context.Context, ancestor, branch string) (bool, error)
	RemoteURL(ctx context.Context, remote string) (string, error)
	ListRemotes(ctx context.Context) ([]string, error)
	BranchExists(ctx context.Context, name string) (bool, error)
}

// CommandRunner executes git commands as subprocesses
type CommandRunner struct {
	workingDir string
	timeout    time.Duration
	logger     *slog.Logger
}

var _ Runner = (*CommandRunner)(nil)

// NewCommandRunner creates a CommandRunner rooted at workingDir.
// A zero timeout selects DefaultCommandTimeout; a nil logger discards command logs.
func NewCommandRunner(workingDir string, timeout time.Duration, logger *slog.Logger) *CommandRunner {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CommandRunner{
		workingDir: workingDir,
		timeout:    timeout,
		logger:     logger,
	}
}

// Run executes a git command and returns its trimmed stdout
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the configured one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	// stderr is matched against git's English messages
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug("git "+strings.Join(args, " "),
		"duration", time.Since(start),
		"ok", err == nil,
	)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = ctx.Err()
		}
		return "", dmderrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), exitCode(err), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// exitCode returns the process exit status, or -1 if there is none
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// stderrOf returns the captured stderr of a failed git command
func stderrOf(err error) string {
	var cmdErr *dmderrors.GitCommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Stderr + cmdErr.Stdout
	}
	return ""
}

// runLines executes a git command and splits its output into non-empty lines
func (r *CommandRunner) runLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// runPredicate maps exit status 0 to true and 1 to false; anything else is an error
func (r *CommandRunner) runPredicate(ctx context.Context, args ...string) (bool, error) {
	_, err := r.Run(ctx, args...)
	if err == nil {
		return true, nil
	}
	if dmderrors.ExitCode(err) == 1 {
		return false, nil
	}
	return false, err
}
