// Package tui holds the terminal presentation helpers of the fsx CLI:
// interaction-mode detection, lipgloss styles for listings, and a spinner
// shown while long recursive operations run.
package tui
