// Package ui handles terminal UI rendering.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("4")   // Blue
	ColorSecondary = lipgloss.Color("8")   // Gray
	ColorSuccess   = lipgloss.Color("2")   // Green
	ColorWarning   = lipgloss.Color("3")   // Yellow
	ColorDanger    = lipgloss.Color("1")   // Red
	ColorMuted     = lipgloss.Color("245") // Light gray
	ColorHighlight = lipgloss.Color("6")   // Cyan
	ColorText      = lipgloss.Color("252") // Light text
)

// Styles
var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMuted)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// Node styles in the tree preview
	ContainerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TextNodeStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	InstanceStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorDanger)

	ConnectorStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	PathStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	InputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	FocusedInputStyle = InputStyle.
				BorderForeground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Symbols
const (
	SymbolCursor    = "›"
	SymbolNotice    = "!"
	SymbolSaved     = "✓"
	SymbolBranch    = "├─ "
	SymbolLast      = "└─ "
	SymbolPipe      = "│  "
	SymbolArrow     = "→"
	SymbolDivider   = "─"
	SymbolContainer = "▢"
	SymbolText      = "T"
	SymbolInstance  = "◇"
	SymbolComponent = "◆"
)
