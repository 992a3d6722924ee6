// Package ui provides rendering functions for the layoutgen terminal UI.
//
// It contains the Render function which takes RenderParams and produces
// the terminal output, the tree preview of a rendered page, and Lipgloss
// style definitions for theming. Rendering is pure and separated from state
// management.
package ui
