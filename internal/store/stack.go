package store

import (
	"context"
	"sort"
)

// StackEntry is a branch together with the parent it is rebased onto
type StackEntry struct {
	Name   string
	Parent string
}

// GetBranchesInStack returns the stack containing name: its ancestors below
// the root, name itself and all of its descendants. Entries are ordered
// nearest-the-root first, so a branch never precedes its parent. Branches
// at the same distance are ordered by name. An untracked branch has an
// empty stack.
func (t *Tx) GetBranchesInStack(ctx context.Context, name string) ([]StackEntry, error) {
	branches, err := t.ListBranches(ctx)
	if err != nil {
		return nil, err
	}
	return resolveStack(branches, name), nil
}

// resolveStack walks the graph held in memory: up through parents, then
// breadth-first through children, tagging each branch with its signed
// distance from name.
func resolveStack(branches []Branch, name string) []StackEntry {
	parents := make(map[string]string, len(branches))
	children := make(map[string][]string)
	tracked := make(map[string]bool, len(branches))
	for _, b := range branches {
		tracked[b.Name] = true
		if b.IsRoot() || b.Parent == b.Name {
			continue
		}
		parents[b.Name] = b.Parent
		children[b.Parent] = append(children[b.Parent], b.Name)
	}
	if !tracked[name] {
		return []StackEntry{}
	}

	depth := map[string]int{name: 0}

	// ancestors get negative depths; the root has no parent entry and is never reached
	depthUp := 0
	for current := name; ; {
		parent, ok := parents[current]
		if !ok {
			break
		}
		if _, seen := depth[parent]; seen {
			break
		}
		depthUp--
		if _, hasParent := parents[parent]; !hasParent {
			break
		}
		depth[parent] = depthUp
		current = parent
	}

	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range children[current] {
			if _, seen := depth[child]; seen {
				continue
			}
			depth[child] = depth[current] + 1
			queue = append(queue, child)
		}
	}

	entries := make([]StackEntry, 0, len(depth))
	for branch := range depth {
		parent, ok := parents[branch]
		if !ok {
			// the root itself, reachable only when name is the root
			continue
		}
		entries = append(entries, StackEntry{Name: branch, Parent: parent})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := depth[entries[i].Name], depth[entries[j].Name]
		if di != dj {
			return di < dj
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
