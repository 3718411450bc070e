package actions

import (
	"strings"

	"diamond.dev/diamond/internal/runtime"
	"diamond.dev/diamond/internal/tui"
)

// LogOptions contains options for the log command
type LogOptions struct {
	// All shows every tracked branch instead of the current stack
	All bool
}

// LogAction prints the tracked branches as a tree rooted at the root branch
func LogAction(ctx *runtime.Context, opts LogOptions) error {
	root, err := requireRoot(ctx)
	if err != nil {
		return err
	}

	current, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		// detached HEAD still has a graph to show
		current = ""
	}

	branches, err := ctx.Tx.ListBranches(ctx.Context)
	if err != nil {
		return err
	}

	var include map[string]bool
	if !opts.All && current != "" && current != root {
		stack, err := ctx.Tx.GetBranchesInStack(ctx.Context, current)
		if err != nil {
			return err
		}
		if len(stack) > 0 {
			include = map[string]bool{current: true}
			for _, entry := range stack {
				include[entry.Name] = true
			}
		}
	}

	children := make(map[string][]string)
	for _, b := range branches {
		if b.IsRoot() || (include != nil && !include[b.Name]) {
			continue
		}
		children[b.Parent] = append(children[b.Parent], b.Name)
	}

	renderer := tui.NewStackTreeRenderer(current, root, func(branchName string) []string {
		return children[branchName]
	})
	for _, b := range branches {
		if b.Submitted {
			renderer.SetAnnotation(b.Name, "[submitted]")
		}
	}

	ctx.Splog.Page(strings.Join(renderer.Render(), "\n") + "\n")
	return nil
}
