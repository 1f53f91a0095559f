package tui

import (
	"io/fs"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
	ColorLink      = lipgloss.Color("44")  // Cyan
)

// Styles for CLI output.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	DirectoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SymlinkStyle = lipgloss.NewStyle().
			Foreground(ColorLink)

	ExecutableStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Symbols for visual feedback.
const (
	SymbolCheck      = "✓"
	SymbolCross      = "✗"
	SymbolArrowRight = "→"
	SymbolBullet     = "•"
)

// EntryKind classifies a listed entry for styling.
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDirectory
	EntrySymlink
	EntryExecutable
)

// RenderEntry styles name for its kind. Directories get a trailing slash and
// symlinks an "@", so the kind stays visible without colour.
func RenderEntry(name string, kind EntryKind) string {
	switch kind {
	case EntryDirectory:
		return DirectoryStyle.Render(name + "/")
	case EntrySymlink:
		return SymlinkStyle.Render(name + "@")
	case EntryExecutable:
		return ExecutableStyle.Render(name + "*")
	default:
		return name
	}
}

// RenderBool renders a predicate result as a check or a cross.
func RenderBool(v bool) string {
	if v {
		return SuccessStyle.Render(SymbolCheck)
	}
	return ErrorStyle.Render(SymbolCross)
}

// FormatMode renders permission bits the way ls does, e.g. "-rwxr-xr-x".
func FormatMode(mode fs.FileMode) string {
	return mode.String()
}
