// Package tui provides the terminal user interface for dmd.
//
// It handles:
//   - Interactive prompts and selections (using survey and bubbletea)
//   - Structured logging to the console and a rotating log file (Splog)
//   - Terminal styling and colors (using lipgloss)
//   - Stack tree rendering for `dmd log`
package tui
