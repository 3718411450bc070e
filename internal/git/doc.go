// Package git runs the git commands dmd needs and interprets their results.
//
// All mutations of the working copy go through a Runner. CommandRunner shells
// out to the git binary; tests substitute a scripted fake. Operations that
// temporarily move the working copy to another branch use a BranchGuard so
// the user always ends up where they started.
//
// Repository discovery uses go-git and never touches objects.
package git
