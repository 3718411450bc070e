package actions_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"diamond.dev/diamond/internal/actions"
	dmderrors "diamond.dev/diamond/internal/errors"
	"diamond.dev/diamond/testhelpers"
)

func TestRestackAction(t *testing.T) {
	t.Run("rebases the stack in order and returns to the start branch", func(t *testing.T) {
		runner := testhelpers.NewFakeRunner("b", "main", "a", "c")
		f := newFixture(t, runner).initialized(t, stackABC...)

		require.NoError(t, actions.RestackAction(f.ctx))

		require.Equal(t, []string{"rebase main a", "rebase a b", "rebase b c"}, runner.CallsWithPrefix("rebase"))
		require.Equal(t, "checkout b", runner.Calls[len(runner.Calls)-1])
		require.Equal(t, "b", runner.Current)
		require.Contains(t, f.output.String(), "Restacked c on b (current).")
	})

	t.Run("stops at the first failed rebase", func(t *testing.T) {
		runner := testhelpers.NewFakeRunner("c", "main", "a", "b")
		runner.FailOn("rebase a b")
		f := newFixture(t, runner).initialized(t, stackABC...)

		err := actions.RestackAction(f.ctx)
		require.Error(t, err)
		require.True(t, errors.Is(err, dmderrors.ErrRebaseFailed))

		var rebaseErr *dmderrors.RebaseFailedError
		require.True(t, errors.As(err, &rebaseErr))
		require.Equal(t, "b", rebaseErr.BranchName)
		require.Equal(t, "a", rebaseErr.Onto)

		require.Equal(t, []string{"rebase main a", "rebase a b"}, runner.CallsWithPrefix("rebase"))
		require.Equal(t, "c", runner.Current)
	})

	t.Run("reports a failed restore together with the rebase failure", func(t *testing.T) {
		runner := testhelpers.NewFakeRunner("b", "main", "a", "c")
		runner.FailOn("rebase a b")
		runner.FailRestore = "b"
		f := newFixture(t, runner).initialized(t, stackABC...)

		err := actions.RestackAction(f.ctx)
		require.True(t, errors.Is(err, dmderrors.ErrRebaseFailed))
		require.True(t, errors.Is(err, dmderrors.ErrRestoreFailed))
	})

	t.Run("untracked branch", func(t *testing.T) {
		runner := testhelpers.NewFakeRunner("stray", "main")
		f := newFixture(t, runner).initialized(t)

		err := actions.RestackAction(f.ctx)
		require.True(t, errors.Is(err, dmderrors.ErrBranchNotTracked))
		require.Empty(t, runner.Calls)
	})

	t.Run("root branch restacks every tracked branch", func(t *testing.T) {
		runner := testhelpers.NewFakeRunner("main", "a", "b", "c", "d")
		f := newFixture(t, runner).initialized(t, append(stackABC, [2]string{"d", "main"})...)

		require.NoError(t, actions.RestackAction(f.ctx))
		require.Equal(t, []string{"rebase main a", "rebase main d", "rebase a b", "rebase b c"}, runner.CallsWithPrefix("rebase"))
		require.Equal(t, "main", runner.Current)
	})
}
