package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/henri123lemoine/layoutgen/internal/config"
)

// KeyMap defines all keybindings.
type KeyMap struct {
	// Prompt form
	Generate  key.Binding
	NextField key.Binding
	PrevField key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Result actions
	Save       key.Binding
	Open       key.Binding
	Components key.Binding
	Raw        key.Binding

	// General
	Back key.Binding
	Quit key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "generate"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save snapshot and preview"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open preview"),
		),
		Components: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "components"),
		),
		Raw: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "toggle raw json"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// KeyMapFromConfig creates a KeyMap from config settings.
func KeyMapFromConfig(cfg *config.KeysConfig) KeyMap {
	km := DefaultKeyMap()

	if cfg.Generate != "" {
		km.Generate = key.NewBinding(
			key.WithKeys(parseKeys(cfg.Generate)...),
			key.WithHelp(cfg.Generate, "generate"),
		)
	}
	if cfg.NextField != "" {
		km.NextField = key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextField)...),
			key.WithHelp(cfg.NextField, "next field"),
		)
	}
	if cfg.Save != "" {
		km.Save = key.NewBinding(
			key.WithKeys(parseKeys(cfg.Save)...),
			key.WithHelp(cfg.Save, "save snapshot and preview"),
		)
	}
	if cfg.Open != "" {
		km.Open = key.NewBinding(
			key.WithKeys(parseKeys(cfg.Open)...),
			key.WithHelp(cfg.Open, "open preview"),
		)
	}
	if cfg.Components != "" {
		km.Components = key.NewBinding(
			key.WithKeys(parseKeys(cfg.Components)...),
			key.WithHelp(cfg.Components, "components"),
		)
	}
	if cfg.Raw != "" {
		km.Raw = key.NewBinding(
			key.WithKeys(parseKeys(cfg.Raw)...),
			key.WithHelp(cfg.Raw, "toggle raw json"),
		)
	}
	if cfg.Back != "" {
		km.Back = key.NewBinding(
			key.WithKeys(parseKeys(cfg.Back)...),
			key.WithHelp(cfg.Back, "back"),
		)
	}
	if cfg.Help != "" {
		km.Help = key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help)...),
			key.WithHelp(cfg.Help, "help"),
		)
	}
	if cfg.Quit != "" {
		km.Quit = key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit)...),
			key.WithHelp(cfg.Quit, "quit"),
		)
	}

	return km
}

// parseKeys parses a comma-separated list of keys.
func parseKeys(s string) []string {
	parts := strings.Split(s, ",")
	var keys []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
