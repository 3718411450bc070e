// Package actions provides the business logic behind each dmd command.
//
// Each action corresponds to a dmd command (init, create, track, restack,
// sync, submit, ...) and orchestrates the store transaction, the git runner
// and the notifier carried by runtime.Context.
//
// Key patterns:
//   - Actions accept runtime.Context and an Options struct
//   - Cascades (restack, sync, submit) walk the current stack in order and
//     stop at the first failure
//   - Anything that switches branches runs under a git.BranchGuard
package actions
