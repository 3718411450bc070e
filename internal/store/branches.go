package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dmderrors "diamond.dev/diamond/internal/errors"
)

// Branch is one tracked branch. Parent is empty for the root branch.
type Branch struct {
	Name      string
	Parent    string
	Submitted bool
}

// IsRoot reports whether the branch is the root of every stack
func (b Branch) IsRoot() bool {
	return b.Parent == ""
}

// rootBranches returns every branch without a parent
func (t *Tx) rootBranches(ctx context.Context) ([]string, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT name FROM branches WHERE parent IS NULL ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query root branches: %w", err)
	}
	defer rows.Close()

	var roots []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan root branch: %w", err)
		}
		roots = append(roots, name)
	}
	return roots, rows.Err()
}

// GetRootBranch returns the root branch, if one has been configured
func (t *Tx) GetRootBranch(ctx context.Context) (string, bool, error) {
	roots, err := t.rootBranches(ctx)
	if err != nil {
		return "", false, err
	}
	switch len(roots) {
	case 0:
		return "", false, nil
	case 1:
		return roots[0], true, nil
	default:
		return "", false, fmt.Errorf("%w: %v", dmderrors.ErrMultipleRootsDetected, roots)
	}
}

// SetRootBranch makes name the root of the graph. An existing root is
// replaced only while it has no children; otherwise nothing changes.
func (t *Tx) SetRootBranch(ctx context.Context, name string) error {
	return t.savepoint(ctx, "set_root_branch", func() error {
		roots, err := t.rootBranches(ctx)
		if err != nil {
			return err
		}
		if len(roots) > 1 {
			return fmt.Errorf("%w: %v", dmderrors.ErrMultipleRootsDetected, roots)
		}

		if len(roots) == 1 {
			existing := roots[0]
			if existing == name {
				return nil
			}
			children, err := t.GetChildren(ctx, existing)
			if err != nil {
				return err
			}
			if len(children) > 0 {
				return dmderrors.NewRootBranchHasChildrenError(existing, len(children))
			}
			if _, err := t.tx.ExecContext(ctx, `DELETE FROM branches WHERE name = ?`, existing); err != nil {
				return fmt.Errorf("failed to remove previous root branch %s: %w", existing, err)
			}
		}

		tracked, err := t.IsTracked(ctx, name)
		if err != nil {
			return err
		}
		if tracked {
			return dmderrors.NewBranchAlreadyTrackedError(name)
		}
		if _, err := t.tx.ExecContext(ctx, `INSERT INTO branches (name, parent) VALUES (?, NULL)`, name); err != nil {
			return fmt.Errorf("failed to insert root branch %s: %w", name, err)
		}
		return nil
	})
}

// CreateBranch records name as a child of parent. The parent must already be tracked.
func (t *Tx) CreateBranch(ctx context.Context, parent, name string) error {
	parentTracked, err := t.IsTracked(ctx, parent)
	if err != nil {
		return err
	}
	if !parentTracked {
		return dmderrors.NewUntrackedParentError(parent, name)
	}

	tracked, err := t.IsTracked(ctx, name)
	if err != nil {
		return err
	}
	if tracked {
		return dmderrors.NewBranchAlreadyTrackedError(name)
	}

	if _, err := t.tx.ExecContext(ctx, `INSERT INTO branches (name, parent) VALUES (?, ?)`, name, parent); err != nil {
		return fmt.Errorf("failed to track branch %s: %w", name, err)
	}
	return nil
}

// GetBranch returns the record for name, or ErrBranchNotTracked
func (t *Tx) GetBranch(ctx context.Context, name string) (Branch, error) {
	var parent sql.NullString
	var submitted bool
	err := t.tx.QueryRowContext(ctx, `SELECT parent, submitted FROM branches WHERE name = ?`, name).Scan(&parent, &submitted)
	if errors.Is(err, sql.ErrNoRows) {
		return Branch{}, fmt.Errorf("%w: %s", dmderrors.ErrBranchNotTracked, name)
	}
	if err != nil {
		return Branch{}, fmt.Errorf("failed to read branch %s: %w", name, err)
	}
	return Branch{Name: name, Parent: parent.String, Submitted: submitted}, nil
}

// GetParent returns the parent of name; the root branch has an empty parent
func (t *Tx) GetParent(ctx context.Context, name string) (string, error) {
	branch, err := t.GetBranch(ctx, name)
	if err != nil {
		return "", err
	}
	return branch.Parent, nil
}

// IsTracked reports whether name has a row in the graph
func (t *Tx) IsTracked(ctx context.Context, name string) (bool, error) {
	var count int
	if err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM branches WHERE name = ?`, name).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to look up branch %s: %w", name, err)
	}
	return count > 0, nil
}

// GetChildren returns the direct children of name, sorted by name
func (t *Tx) GetChildren(ctx context.Context, name string) ([]string, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT name FROM branches WHERE parent = ? ORDER BY name`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query children of %s: %w", name, err)
	}
	defer rows.Close()

	children := []string{}
	for rows.Next() {
		var child string
		if err := rows.Scan(&child); err != nil {
			return nil, fmt.Errorf("failed to scan child of %s: %w", name, err)
		}
		children = append(children, child)
	}
	return children, rows.Err()
}

// ListBranches returns every tracked branch, sorted by name
func (t *Tx) ListBranches(ctx context.Context) ([]Branch, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT name, parent, submitted FROM branches ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	var branches []Branch
	for rows.Next() {
		var b Branch
		var parent sql.NullString
		if err := rows.Scan(&b.Name, &parent, &b.Submitted); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		b.Parent = parent.String
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// MarkSubmitted records that name has been pushed for review
func (t *Tx) MarkSubmitted(ctx context.Context, name string) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE branches SET submitted = TRUE WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to mark %s submitted: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", dmderrors.ErrBranchNotTracked, name)
	}
	return nil
}

// DeleteBranch stops tracking a leaf branch. The root and branches with
// children cannot be removed.
func (t *Tx) DeleteBranch(ctx context.Context, name string) error {
	branch, err := t.GetBranch(ctx, name)
	if err != nil {
		return err
	}
	if branch.IsRoot() {
		return fmt.Errorf("cannot untrack root branch %s, use 'dmd init --root-branch' to replace it", name)
	}

	children, err := t.GetChildren(ctx, name)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return dmderrors.NewBranchHasChildrenError(name, children)
	}

	if _, err := t.tx.ExecContext(ctx, `DELETE FROM branches WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to untrack %s: %w", name, err)
	}
	return nil
}
