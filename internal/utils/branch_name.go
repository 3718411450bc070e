package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxBranchNameByteLength keeps refs/heads/<name> under git's 256 byte ref limit
const MaxBranchNameByteLength = 245

var (
	// branchNameReplaceRegex matches runs of characters dmd does not allow in branch names
	branchNameReplaceRegex = regexp.MustCompile(`[^-_/.a-zA-Z0-9]+`)
	trailingRegex          = regexp.MustCompile(`[/.]*$`)
	hyphensRegex           = regexp.MustCompile(`-+`)
)

// SanitizeBranchName turns name into one dmd accepts
func SanitizeBranchName(name string) string {
	name = trailingRegex.ReplaceAllString(name, "")
	name = branchNameReplaceRegex.ReplaceAllString(name, "-")
	name = strings.ReplaceAll(name, "..", ".")
	name = strings.ReplaceAll(name, "//", "/")
	name = hyphensRegex.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-/.")

	if len(name) > MaxBranchNameByteLength {
		name = strings.TrimRight(name[:MaxBranchNameByteLength], "-/.")
	}
	return name
}

// ValidateBranchName rejects names that git or the stack graph cannot hold,
// suggesting a sanitized alternative when there is one
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name is required")
	}
	sanitized := SanitizeBranchName(name)
	if sanitized == name {
		return nil
	}
	if sanitized == "" {
		return fmt.Errorf("invalid branch name %q", name)
	}
	return fmt.Errorf("invalid branch name %q, try %q", name, sanitized)
}
