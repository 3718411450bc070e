package tui

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// plain output keeps rendered lines comparable
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestStackTreeRenderer(t *testing.T) {
	children := map[string][]string{
		"main": {"a", "x"},
		"a":    {"b"},
	}
	getChildren := func(name string) []string { return children[name] }

	t.Run("renders nested stacks", func(t *testing.T) {
		r := NewStackTreeRenderer("b", "main", getChildren)
		r.SetAnnotation("a", "[submitted]")

		require.Equal(t, []string{
			"◯ main",
			"├─◯ a [submitted]",
			"│ └─◉ b (current)",
			"└─◯ x",
		}, r.Render())
	})

	t.Run("root only", func(t *testing.T) {
		r := NewStackTreeRenderer("main", "main", func(string) []string { return nil })
		require.Equal(t, []string{"◉ main (current)"}, r.Render())
	})

	t.Run("cycles are printed once", func(t *testing.T) {
		cyclic := map[string][]string{"main": {"a"}, "a": {"main", "a"}}
		r := NewStackTreeRenderer("", "main", func(name string) []string { return cyclic[name] })
		require.Equal(t, []string{"◯ main", "└─◯ a"}, r.Render())
	})
}

func TestColorHelpersPlainProfile(t *testing.T) {
	require.Equal(t, "feature (current)", ColorBranchName("feature", true))
	require.Equal(t, "feature", ColorBranchName("feature", false))
	require.Equal(t, "oops", ColorRed("oops"))
}
