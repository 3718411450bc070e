package store_test

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	dmderrors "diamond.dev/diamond/internal/errors"
	"diamond.dev/diamond/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "diamond.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func beginTx(t *testing.T, s *store.Store) *store.Tx {
	t.Helper()
	tx, err := s.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })
	return tx
}

func TestStackEndToEnd(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	tx := beginTx(t, s)

	require.NoError(t, tx.SetRootBranch(ctx, "main"))
	require.NoError(t, tx.CreateBranch(ctx, "main", "a"))
	require.NoError(t, tx.CreateBranch(ctx, "a", "b"))
	require.NoError(t, tx.CreateBranch(ctx, "b", "c"))

	expected := []store.StackEntry{
		{Name: "a", Parent: "main"},
		{Name: "b", Parent: "a"},
		{Name: "c", Parent: "b"},
	}
	for _, branch := range []string{"a", "b", "c"} {
		t.Run(branch, func(t *testing.T) {
			stack, err := tx.GetBranchesInStack(ctx, branch)
			require.NoError(t, err)
			require.Equal(t, expected, stack)
		})
	}
}

func TestGetBranchesInStack(t *testing.T) {
	ctx := context.Background()

	t.Run("untracked branch has an empty stack", func(t *testing.T) {
		tx := beginTx(t, openStore(t))
		require.NoError(t, tx.SetRootBranch(ctx, "main"))

		stack, err := tx.GetBranchesInStack(ctx, "nope")
		require.NoError(t, err)
		require.Empty(t, stack)
	})

	t.Run("root branch yields every tracked branch", func(t *testing.T) {
		tx := beginTx(t, openStore(t))
		require.NoError(t, tx.SetRootBranch(ctx, "main"))
		require.NoError(t, tx.CreateBranch(ctx, "main", "x"))
		require.NoError(t, tx.CreateBranch(ctx, "main", "a"))
		require.NoError(t, tx.CreateBranch(ctx, "a", "b"))

		stack, err := tx.GetBranchesInStack(ctx, "main")
		require.NoError(t, err)
		require.Equal(t, []store.StackEntry{
			{Name: "a", Parent: "main"},
			{Name: "x", Parent: "main"},
			{Name: "b", Parent: "a"},
		}, stack)
	})

	t.Run("siblings of ancestors are not part of the stack", func(t *testing.T) {
		tx := beginTx(t, openStore(t))
		require.NoError(t, tx.SetRootBranch(ctx, "main"))
		require.NoError(t, tx.CreateBranch(ctx, "main", "a"))
		require.NoError(t, tx.CreateBranch(ctx, "main", "other"))
		require.NoError(t, tx.CreateBranch(ctx, "a", "b"))
		require.NoError(t, tx.CreateBranch(ctx, "a", "sibling"))
		require.NoError(t, tx.CreateBranch(ctx, "b", "c1"))
		require.NoError(t, tx.CreateBranch(ctx, "b", "c2"))

		stack, err := tx.GetBranchesInStack(ctx, "b")
		require.NoError(t, err)
		require.Equal(t, []store.StackEntry{
			{Name: "a", Parent: "main"},
			{Name: "b", Parent: "a"},
			{Name: "c1", Parent: "b"},
			{Name: "c2", Parent: "b"},
		}, stack)
	})
}

// TestGetBranchesInStackRandomTrees checks ordering and membership over generated trees
func TestGetBranchesInStackRandomTrees(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for iteration := 0; iteration < 20; iteration++ {
		tx := beginTx(t, openStore(t))
		require.NoError(t, tx.SetRootBranch(ctx, "main"))

		parents := map[string]string{}
		names := []string{"main"}
		size := 1 + rng.Intn(15)
		for i := 0; i < size; i++ {
			name := fmt.Sprintf("b%02d", i)
			parent := names[rng.Intn(len(names))]
			require.NoError(t, tx.CreateBranch(ctx, parent, name))
			parents[name] = parent
			names = append(names, name)
		}

		isAncestor := func(ancestor, branch string) bool {
			for current := parents[branch]; current != ""; current = parents[current] {
				if current == ancestor {
					return true
				}
			}
			return false
		}

		for _, target := range names[1:] {
			stack, err := tx.GetBranchesInStack(ctx, target)
			require.NoError(t, err)

			expected := map[string]bool{}
			for _, candidate := range names[1:] {
				if candidate == target || isAncestor(candidate, target) || isAncestor(target, candidate) {
					expected[candidate] = true
				}
			}

			position := map[string]int{}
			for i, entry := range stack {
				_, dup := position[entry.Name]
				require.False(t, dup, "branch %s listed twice in stack of %s", entry.Name, target)
				position[entry.Name] = i
				require.Equal(t, parents[entry.Name], entry.Parent)
				require.NotEqual(t, "main", entry.Name)
			}
			require.Len(t, stack, len(expected), "stack of %s", target)

			for _, entry := range stack {
				require.True(t, expected[entry.Name], "unexpected %s in stack of %s", entry.Name, target)
				if parentPos, ok := position[entry.Parent]; ok {
					require.Less(t, parentPos, position[entry.Name], "%s listed before its parent %s", entry.Name, entry.Parent)
				}
			}
		}
	}
}

func TestSetRootBranch(t *testing.T) {
	ctx := context.Background()

	t.Run("sets and replaces a childless root", func(t *testing.T) {
		tx := beginTx(t, openStore(t))

		_, ok, err := tx.GetRootBranch(ctx)
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, tx.SetRootBranch(ctx, "master"))
		require.NoError(t, tx.SetRootBranch(ctx, "main"))

		root, ok, err := tx.GetRootBranch(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "main", root)

		tracked, err := tx.IsTracked(ctx, "master")
		require.NoError(t, err)
		require.False(t, tracked)
	})

	t.Run("same root is a no-op", func(t *testing.T) {
		tx := beginTx(t, openStore(t))
		require.NoError(t, tx.SetRootBranch(ctx, "main"))
		require.NoError(t, tx.CreateBranch(ctx, "main", "a"))

		require.NoError(t, tx.SetRootBranch(ctx, "main"))

		parent, err := tx.GetParent(ctx, "a")
		require.NoError(t, err)
		require.Equal(t, "main", parent)
	})

	t.Run("rejects replacing a root with children", func(t *testing.T) {
		tx := beginTx(t, openStore(t))
		require.NoError(t, tx.SetRootBranch(ctx, "main"))
		require.NoError(t, tx.CreateBranch(ctx, "main", "a"))

		before, err := tx.ListBranches(ctx)
		require.NoError(t, err)

		err = tx.SetRootBranch(ctx, "trunk")
		require.ErrorIs(t, err, dmderrors.ErrRootBranchHasChildren)

		var rootErr *dmderrors.RootBranchHasChildrenError
		require.ErrorAs(t, err, &rootErr)
		require.Equal(t, "main", rootErr.RootBranch)
		require.Equal(t, 1, rootErr.NumChildren)

		after, err := tx.ListBranches(ctx)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("failed replacement keeps the old root", func(t *testing.T) {
		tx := beginTx(t, openStore(t))
		require.NoError(t, tx.SetRootBranch(ctx, "main"))
		require.NoError(t, tx.CreateBranch(ctx, "main", "a"))
		require.NoError(t, tx.SetRootBranch(ctx, "main"))

		// a is tracked as a child, so it cannot become the root
		err := tx.SetRootBranch(ctx, "a")
		require.Error(t, err)

		root, ok, err := tx.GetRootBranch(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "main", root)
	})
}

func TestCreateBranch(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects untracked parent without inserting", func(t *testing.T) {
		tx := beginTx(t, openStore(t))
		require.NoError(t, tx.SetRootBranch(ctx, "main"))

		err := tx.CreateBranch(ctx, "ghost", "a")
		require.ErrorIs(t, err, dmderrors.ErrUntrackedParent)

		tracked, err := tx.IsTracked(ctx, "a")
		require.NoError(t, err)
		require.False(t, tracked)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		tx := beginTx(t, openStore(t))
		require.NoError(t, tx.SetRootBranch(ctx, "main"))
		require.NoError(t, tx.CreateBranch(ctx, "main", "a"))

		err := tx.CreateBranch(ctx, "main", "a")
		require.ErrorIs(t, err, dmderrors.ErrBranchAlreadyTracked)
	})

	t.Run("children are sorted", func(t *testing.T) {
		tx := beginTx(t, openStore(t))
		require.NoError(t, tx.SetRootBranch(ctx, "main"))
		require.NoError(t, tx.CreateBranch(ctx, "main", "b"))
		require.NoError(t, tx.CreateBranch(ctx, "main", "a"))

		children, err := tx.GetChildren(ctx, "main")
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, children)
	})
}

func TestDeleteAndSubmit(t *testing.T) {
	ctx := context.Background()
	tx := beginTx(t, openStore(t))
	require.NoError(t, tx.SetRootBranch(ctx, "main"))
	require.NoError(t, tx.CreateBranch(ctx, "main", "a"))
	require.NoError(t, tx.CreateBranch(ctx, "a", "b"))

	err := tx.DeleteBranch(ctx, "a")
	require.ErrorIs(t, err, dmderrors.ErrBranchHasChildren)

	require.Error(t, tx.DeleteBranch(ctx, "main"))
	require.ErrorIs(t, tx.DeleteBranch(ctx, "nope"), dmderrors.ErrBranchNotTracked)

	require.NoError(t, tx.MarkSubmitted(ctx, "b"))
	branch, err := tx.GetBranch(ctx, "b")
	require.NoError(t, err)
	require.True(t, branch.Submitted)
	require.ErrorIs(t, tx.MarkSubmitted(ctx, "nope"), dmderrors.ErrBranchNotTracked)

	require.NoError(t, tx.DeleteBranch(ctx, "b"))
	tracked, err := tx.IsTracked(ctx, "b")
	require.NoError(t, err)
	require.False(t, tracked)
}

func TestRemote(t *testing.T) {
	ctx := context.Background()
	tx := beginTx(t, openStore(t))

	_, ok, err := tx.GetRemote(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, tx.SetRemote(ctx, "origin"))
	require.NoError(t, tx.SetRemote(ctx, "upstream"))

	remote, ok, err := tx.GetRemote(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "upstream", remote)
}

func TestTransactionDurability(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "diamond.sqlite3")

	s, err := store.Open(ctx, path)
	require.NoError(t, err)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SetRootBranch(ctx, "main"))
	require.NoError(t, tx.Commit())
	require.NoError(t, tx.Rollback(), "rollback after commit is a no-op")

	tx, err = s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateBranch(ctx, "main", "discarded"))
	require.NoError(t, tx.Rollback())
	require.NoError(t, s.Close())

	s, err = store.Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	tx, err = s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	root, ok, err := tx.GetRootBranch(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "main", root)

	tracked, err := tx.IsTracked(ctx, "discarded")
	require.NoError(t, err)
	require.False(t, tracked)
}
