// Package utils provides small helpers shared by dmd commands, such as
// branch name validation.
package utils
