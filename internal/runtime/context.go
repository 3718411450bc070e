// Package runtime provides the execution context shared by dmd commands.
//
// A Context bundles the store transaction, the git runner, the logger and
// the repository configuration for one command invocation, so actions take
// a single parameter.
package runtime

import (
	"context"
	"fmt"
	"os"

	"diamond.dev/diamond/internal/config"
	"diamond.dev/diamond/internal/git"
	"diamond.dev/diamond/internal/github"
	"diamond.dev/diamond/internal/store"
	"diamond.dev/diamond/internal/tui"
)

// Context provides access to state, git and output for commands
type Context struct {
	Context  context.Context
	Tx       *store.Tx
	Git      git.Runner
	Splog    *tui.Splog
	Config   *config.Config
	Notifier github.Notifier
	RepoRoot string

	store         *store.Store
	keepOnFailure bool
}

// NewContext creates a context around an open transaction. Used directly by tests.
func NewContext(ctx context.Context, tx *store.Tx, runner git.Runner, splog *tui.Splog) *Context {
	if splog == nil {
		splog = tui.NewSplog()
	}
	return &Context{
		Context:  ctx,
		Tx:       tx,
		Git:      runner,
		Splog:    splog,
		Notifier: github.NewLinkNotifier(splog),
	}
}

// Options configures Open
type Options struct {
	// Dir is any directory inside the repository. Defaults to the working directory.
	Dir   string
	Debug bool
}

// Open discovers the repository, loads its configuration, opens the store
// and begins the command's transaction
func Open(ctx context.Context, opts Options) (*Context, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	repoRoot, err := git.FindRepoRoot(dir)
	if err != nil {
		return nil, err
	}
	gitDir, err := git.GitDir(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(gitDir)
	if err != nil {
		return nil, err
	}

	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{
		LogFilePath: cfg.LogFilePath(),
		Debug:       opts.Debug,
	})
	if err != nil {
		// file logging is best effort
		splog = tui.NewSplog()
		splog.Debug("file logging disabled: %v", err)
	}

	st, err := store.Open(ctx, cfg.DatabaseFile())
	if err != nil {
		_ = splog.Close()
		return nil, err
	}
	splog.Debug("branch graph: %s", st.Path())
	tx, err := st.Begin(ctx)
	if err != nil {
		_ = st.Close()
		_ = splog.Close()
		return nil, err
	}

	runner := git.NewCommandRunner(repoRoot, cfg.Timeout(), splog.Logger())

	c := NewContext(ctx, tx, runner, splog)
	c.Config = cfg
	c.RepoRoot = repoRoot
	c.store = st
	return c, nil
}

// KeepProgressOnFailure makes Finish commit even when the command fails.
// Cascades call it once a step has an external effect that the store must reflect.
func (c *Context) KeepProgressOnFailure() {
	c.keepOnFailure = true
}

// Finish commits the transaction when cmdErr is nil (or progress must be
// kept) and rolls it back otherwise, then releases every resource.
func (c *Context) Finish(cmdErr error) error {
	var err error
	if cmdErr == nil || c.keepOnFailure {
		err = c.Tx.Commit()
	} else {
		err = c.Tx.Rollback()
	}

	if c.store != nil {
		if closeErr := c.store.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close store: %w", closeErr)
		}
	}
	if closeErr := c.Splog.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close log file: %w", closeErr)
	}
	return err
}
