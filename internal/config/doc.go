// Package config manages dmd configuration.
//
// It handles:
//   - The per-repository YAML config file kept in the git directory
//   - Environment overrides for paths, timeouts and logging
//
// Remote and root branch are repository state, not configuration, and are
// owned by the store package.
package config
