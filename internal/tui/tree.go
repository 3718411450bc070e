package tui

import "strings"

const (
	// CurrentBranchSymbol marks the checked-out branch in tree views
	CurrentBranchSymbol = "◉"
	// BranchSymbol marks every other branch in tree views
	BranchSymbol = "◯"
)

// StackTreeRenderer renders the tracked branch graph as an indented tree
type StackTreeRenderer struct {
	currentBranch string
	root          string
	getChildren   func(branchName string) []string
	// Annotations are appended after a branch name, e.g. "[submitted]"
	Annotations map[string]string
}

// NewStackTreeRenderer creates a renderer rooted at root
func NewStackTreeRenderer(currentBranch, root string, getChildren func(branchName string) []string) *StackTreeRenderer {
	return &StackTreeRenderer{
		currentBranch: currentBranch,
		root:          root,
		getChildren:   getChildren,
		Annotations:   make(map[string]string),
	}
}

// SetAnnotation sets the trailing label for a branch
func (r *StackTreeRenderer) SetAnnotation(branchName, annotation string) {
	r.Annotations[branchName] = annotation
}

// Render returns one line per branch reachable from the root, depth first
func (r *StackTreeRenderer) Render() []string {
	lines := []string{r.branchLine(r.root)}
	visited := map[string]bool{r.root: true}
	return r.renderChildren(r.root, "", visited, lines)
}

func (r *StackTreeRenderer) renderChildren(branchName, prefix string, visited map[string]bool, lines []string) []string {
	var children []string
	for _, child := range r.getChildren(branchName) {
		// a corrupted graph may contain cycles; never print a branch twice
		if !visited[child] {
			children = append(children, child)
		}
	}

	for i, child := range children {
		visited[child] = true
		last := i == len(children)-1

		connector, nextPrefix := "├─", "│ "
		if last {
			connector, nextPrefix = "└─", "  "
		}

		lines = append(lines, ColorDim(prefix+connector)+r.branchLine(child))
		lines = r.renderChildren(child, prefix+nextPrefix, visited, lines)
	}
	return lines
}

func (r *StackTreeRenderer) branchLine(branchName string) string {
	isCurrent := branchName == r.currentBranch
	symbol := BranchSymbol
	if isCurrent {
		symbol = CurrentBranchSymbol
	}

	var sb strings.Builder
	sb.WriteString(symbol)
	sb.WriteString(" ")
	sb.WriteString(ColorBranchName(branchName, isCurrent))
	if annotation := r.Annotations[branchName]; annotation != "" {
		sb.WriteString(" ")
		sb.WriteString(ColorDim(annotation))
	}
	return sb.String()
}
