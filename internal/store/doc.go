// Package store persists the branch dependency graph for a repository.
//
// It is the single owner of dmd's on-disk state:
//   - the configured remote (repo_info)
//   - every tracked branch and its parent (branches)
//   - the schema revision (migration)
//
// State lives in a SQLite file inside the repository's .git directory.
// Every command runs inside one Tx and commits once at the end, so a crash
// leaves the previously committed graph intact.
package store
