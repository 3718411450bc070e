package cli_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"diamond.dev/diamond/testhelpers"
)

// initScene creates a repository with a bare origin and runs dmd init
func initScene(t *testing.T) (*testhelpers.Scene, string) {
	t.Helper()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	bareDir, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "main"))

	output, err := scene.Repo.RunCliCommandAndGetOutput([]string{"init", "--remote", "origin", "--root-branch", "main"})
	require.NoError(t, err)
	require.Contains(t, output, "Initialized dmd with remote origin and root branch main")
	return scene, bareDir
}

func commitOn(t *testing.T, repo *testhelpers.GitRepo, branch, content string) {
	t.Helper()
	require.NoError(t, repo.CheckoutBranch(branch))
	require.NoError(t, repo.CreateChangeAndCommit(content, content))
}

func TestStackWorkflow(t *testing.T) {
	scene, _ := initScene(t)
	repo := scene.Repo

	// main <- a <- b
	require.NoError(t, repo.RunCliCommand([]string{"create", "a"}))
	require.NoError(t, repo.CreateChangeAndCommit("a", "a"))
	require.NoError(t, repo.RunCliCommand([]string{"create", "b"}))
	require.NoError(t, repo.CreateChangeAndCommit("b", "b"))
	testhelpers.ExpectCurrentBranch(t, repo, "b")

	output, err := repo.RunCliCommandAndGetOutput([]string{"log"})
	require.NoError(t, err)
	require.Contains(t, output, "◯ main")
	require.Contains(t, output, "└─◯ a")
	require.Contains(t, output, "└─◉ b (current)")

	commitOn(t, repo, "main", "main2")
	require.NoError(t, repo.CheckoutBranch("b"))

	output, err = repo.RunCliCommandAndGetOutput([]string{"restack"})
	require.NoError(t, err)
	require.Contains(t, output, "Restacked a on main")
	require.Contains(t, output, "Restacked b (current) on a")

	testhelpers.ExpectCurrentBranch(t, repo, "b")
	isAncestor, err := repo.IsAncestor("main", "a")
	require.NoError(t, err)
	require.True(t, isAncestor)
	isAncestor, err = repo.IsAncestor("a", "b")
	require.NoError(t, err)
	require.True(t, isAncestor)
}

func TestInitRequiresFlagsWithoutTerminal(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	output, err := scene.Repo.RunCliCommandAndGetOutput([]string{"init"})
	require.Error(t, err)
	require.Contains(t, output, "--remote is required")
}

func TestCommandsRequireInit(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	output, err := scene.Repo.RunCliCommandAndGetOutput([]string{"track"})
	require.Error(t, err)
	require.Contains(t, output, "cannot find root branch")
	require.Contains(t, output, "dmd init")
}

func TestTrackRejectsNonAncestor(t *testing.T) {
	scene, _ := initScene(t)
	repo := scene.Repo

	require.NoError(t, repo.CreateAndCheckoutBranch("side"))
	require.NoError(t, repo.CreateChangeAndCommit("side", "side"))
	require.NoError(t, repo.RunCliCommand([]string{"track"}))

	require.NoError(t, repo.CheckoutBranch("main"))
	require.NoError(t, repo.CreateAndCheckoutBranch("other"))
	require.NoError(t, repo.CreateChangeAndCommit("other", "other"))

	output, err := repo.RunCliCommandAndGetOutput([]string{"track", "--parent", "side"})
	require.Error(t, err)
	require.Contains(t, output, "side is not its ancestor")

	output, err = repo.RunCliCommandAndGetOutput([]string{"track"})
	require.NoError(t, err, output)
	require.Contains(t, output, "Tracked other (current) on top of main")
}

func TestSync(t *testing.T) {
	scene, _ := initScene(t)
	repo := scene.Repo

	require.NoError(t, repo.RunCliCommand([]string{"create", "a"}))
	require.NoError(t, repo.CreateChangeAndCommit("a", "a"))
	require.NoError(t, repo.PushBranch("origin", "a"))

	commitOn(t, repo, "main", "main2")
	require.NoError(t, repo.CheckoutBranch("a"))

	output, err := repo.RunCliCommandAndGetOutput([]string{"sync"})
	require.NoError(t, err, output)
	require.Contains(t, output, "Pulled main from origin")
	require.Contains(t, output, "Synced a (current) on main")

	testhelpers.ExpectCurrentBranch(t, repo, "a")
	isAncestor, err := repo.IsAncestor("main", "a")
	require.NoError(t, err)
	require.True(t, isAncestor)
}

func TestSubmit(t *testing.T) {
	scene, bareDir := initScene(t)
	repo := scene.Repo

	// review links come from the fetch URL, pushes still go to the local bare repo
	require.NoError(t, repo.RunGitCommand("remote", "set-url", "origin", "git@github.com:owner/repo.git"))
	require.NoError(t, repo.RunGitCommand("config", "url."+bareDir+".pushInsteadOf", "git@github.com:owner/repo.git"))

	require.NoError(t, repo.RunCliCommand([]string{"create", "a"}))
	require.NoError(t, repo.CreateChangeAndCommit("a", "a"))
	require.NoError(t, repo.RunCliCommand([]string{"create", "b"}))
	require.NoError(t, repo.CreateChangeAndCommit("b", "b"))

	output, err := repo.RunCliCommandAndGetOutput([]string{"submit"})
	require.NoError(t, err, output)
	require.Contains(t, output, "[a] -> https://github.com/owner/repo/compare/main...a?expand=1")
	require.Contains(t, output, "[b] -> https://github.com/owner/repo/compare/a...b?expand=1")

	remote := &testhelpers.GitRepo{Dir: bareDir}
	branches, err := remote.GetLocalBranches()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"main", "a", "b"}, branches)

	output, err = repo.RunCliCommandAndGetOutput([]string{"log"})
	require.NoError(t, err)
	require.Contains(t, output, "a [submitted]")
	require.Contains(t, output, "b (current) [submitted]")
}

func TestVersion(t *testing.T) {
	scene := testhelpers.NewScene(t, nil)

	output, err := scene.Repo.RunCliCommandAndGetOutput([]string{"version"})
	require.NoError(t, err)
	require.Contains(t, output, "dmd dev")
}
