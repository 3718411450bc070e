package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeBranchName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple name passes through", input: "feature", expected: "feature"},
		{name: "spaces replaced with hyphens", input: "my feature branch", expected: "my-feature-branch"},
		{name: "special characters replaced", input: "feature!@#$%^&*()", expected: "feature"},
		{name: "underscores preserved", input: "my_feature_branch", expected: "my_feature_branch"},
		{name: "slashes preserved", input: "feature/my-branch", expected: "feature/my-branch"},
		{name: "dots preserved", input: "feature.v1.0", expected: "feature.v1.0"},
		{name: "trailing dots removed", input: "feature...", expected: "feature"},
		{name: "double dots collapsed", input: "a..b", expected: "a.b"},
		{name: "leading slash removed", input: "/feature", expected: "feature"},
		{name: "hyphen runs collapsed", input: "a - b", expected: "a-b"},
		{name: "nothing usable", input: "!!!", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, SanitizeBranchName(tt.input))
		})
	}

	t.Run("long names are truncated", func(t *testing.T) {
		t.Parallel()
		name := SanitizeBranchName(strings.Repeat("a", 300))
		require.Len(t, name, MaxBranchNameByteLength)
	})
}

func TestValidateBranchName(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateBranchName("feature/one"))
	require.EqualError(t, ValidateBranchName(""), "branch name is required")
	require.EqualError(t, ValidateBranchName("my feature"), `invalid branch name "my feature", try "my-feature"`)
	require.EqualError(t, ValidateBranchName("???"), `invalid branch name "???"`)
}
