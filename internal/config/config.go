// Package config handles layoutgen configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// Config represents layoutgen configuration.
type Config struct {
	Generator  GeneratorConfig   `toml:"generator"`
	Render     RenderConfig      `toml:"render"`
	Output     OutputConfig      `toml:"output"`
	UI         UIConfig          `toml:"ui"`
	Keys       KeysConfig        `toml:"keys"`
	Components []ComponentConfig `toml:"components"`
}

// GeneratorConfig contains settings for the layout generator.
type GeneratorConfig struct {
	// Chat-completions endpoint (OpenAI compatible)
	Endpoint string `toml:"endpoint"`

	Model string `toml:"model"`

	// Name of the environment variable holding the API key
	APIKeyEnv string `toml:"api_key_env"`

	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`

	// Request timeout, as a Go duration ("60s", "2m")
	Timeout string `toml:"timeout"`

	// Longer side of a reference image after downscaling, in pixels
	MaxImageSize int `toml:"max_image_size"`
}

// RenderConfig contains settings for building layouts on the canvas.
type RenderConfig struct {
	// Reuse components already in the library before synthesizing new ones
	UseComponents bool `toml:"use_components"`

	// Build container children in parallel
	Concurrent bool `toml:"concurrent"`

	// Maximum nesting depth of a layout document
	MaxDepth int `toml:"max_depth"`

	// Position of the first root
	OriginX float64 `toml:"origin_x"`
	OriginY float64 `toml:"origin_y"`

	// Horizontal step between the screens of a flow
	ScreenSpacing float64 `toml:"screen_spacing"`

	// Font family used for text and component labels
	FontFamily string `toml:"font_family"`
}

// OutputConfig contains settings for exported results.
type OutputConfig struct {
	// Where the JSON snapshot is written (empty = don't write)
	Snapshot string `toml:"snapshot"`

	// Where the PNG preview is written (empty = don't write)
	PNG string `toml:"png"`

	// Command to open a preview
	// Template variables: {png}, {snapshot}, {source}, {dir}
	OpenCommand string `toml:"open_command"`

	// Preview scale factor
	Scale float64 `toml:"scale"`

	// Preview background color
	Background string `toml:"background"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// Color theme: auto, dark, light
	Theme string `toml:"theme"`

	// Show the generated JSON next to the rendered tree
	ShowRaw bool `toml:"show_raw"`

	// Syntax highlighting style for the generated JSON
	HighlightStyle string `toml:"highlight_style"`
}

// KeysConfig contains keybinding settings.
type KeysConfig struct {
	Generate   string `toml:"generate"`
	NextField  string `toml:"next_field"`
	Save       string `toml:"save"`
	Open       string `toml:"open"`
	Components string `toml:"components"`
	Raw        string `toml:"raw"`
	Back       string `toml:"back"`
	Help       string `toml:"help"`
	Quit       string `toml:"quit"`
}

// ComponentConfig describes a library component placed on the canvas before rendering.
type ComponentConfig struct {
	// Component name, e.g. "Button/Primary / Hover"
	Name string `toml:"name"`

	// Kind whose defaults are used: button, card, header, input
	Kind string `toml:"kind"`

	// Label text (defaults to the name)
	Label string `toml:"label"`

	BackgroundColor string  `toml:"background_color"`
	Color           string  `toml:"color"`
	FontSize        float64 `toml:"font_size"`
	Radius          float64 `toml:"radius"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o",
			APIKeyEnv:    "OPENAI_API_KEY",
			Temperature:  0.2,
			MaxTokens:    800,
			Timeout:      "60s",
			MaxImageSize: 1024,
		},
		Render: RenderConfig{
			UseComponents: false,
			Concurrent:    false,
			MaxDepth:      64,
			OriginX:       100,
			OriginY:       100,
			ScreenSpacing: 500,
			FontFamily:    "Inter",
		},
		Output: OutputConfig{
			Snapshot:    "",
			PNG:         "",
			OpenCommand: "",
			Scale:       1,
			Background:  "#E5E5E5",
		},
		UI: UIConfig{
			Theme:          "auto",
			ShowRaw:        false,
			HighlightStyle: "monokai",
		},
		Keys: KeysConfig{
			Generate:   "ctrl+g",
			NextField:  "tab",
			Save:       "s",
			Open:       "o",
			Components: "c",
			Raw:        "r",
			Back:       "esc",
			Help:       "?",
			Quit:       "q,ctrl+c",
		},
		Components: []ComponentConfig{},
	}
}

// TimeoutDuration returns the generator timeout, or the default if it doesn't parse.
func (g GeneratorConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(g.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// APIKey reads the API key from the configured environment variable.
func (g GeneratorConfig) APIKey() string {
	if g.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(g.APIKeyEnv)
}

// ExpandPath resolves a leading ~ in a configured path.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// GetComponentByName returns the seed component with the given name, or nil if not found.
func (c *Config) GetComponentByName(name string) *ComponentConfig {
	for i := range c.Components {
		if c.Components[i].Name == name {
			return &c.Components[i]
		}
	}
	return nil
}

// ConfigPath returns the path to the config file.
// Uses ~/.config/layoutgen/config.toml (XDG style) on all Unix systems.
func ConfigPath() string {
	// Respect XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "layoutgen", "config.toml")
	}
	// Default to ~/.config on Unix (including macOS)
	if home, err := homedir.Dir(); err == nil && home != "" {
		return filepath.Join(home, ".config", "layoutgen", "config.toml")
	}
	// Fallback to os.UserConfigDir() for Windows
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "layoutgen", "config.toml")
	}
	return filepath.Join(configDir, "layoutgen", "config.toml")
}

// IsFirstRun returns true if no config file exists.
func IsFirstRun() bool {
	_, err := os.Stat(ConfigPath())
	return os.IsNotExist(err)
}

// Load loads configuration from the config file.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	// go-toml/v2 only overwrites fields present in the TOML file,
	// preserving defaults for unspecified fields (including booleans).
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save saves configuration to the config file.
func Save(cfg *Config) error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CreateDefaultConfigFile creates a default config file with comments.
func CreateDefaultConfigFile() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(generateDefaultConfigContent()), 0644)
}

// generateDefaultConfigContent generates a commented config file.
func generateDefaultConfigContent() string {
	var b strings.Builder
	cfg := DefaultConfig()

	b.WriteString("# layoutgen configuration\n\n")

	b.WriteString("[generator]\n")
	b.WriteString("# OpenAI-compatible chat-completions endpoint\n")
	fmt.Fprintf(&b, "endpoint = %q\n", cfg.Generator.Endpoint)
	fmt.Fprintf(&b, "model = %q\n", cfg.Generator.Model)
	b.WriteString("# Environment variable holding the API key\n")
	fmt.Fprintf(&b, "api_key_env = %q\n", cfg.Generator.APIKeyEnv)
	fmt.Fprintf(&b, "temperature = %.1f\n", cfg.Generator.Temperature)
	fmt.Fprintf(&b, "max_tokens = %d\n", cfg.Generator.MaxTokens)
	b.WriteString("# Request timeout (Go duration)\n")
	fmt.Fprintf(&b, "timeout = %q\n", cfg.Generator.Timeout)
	b.WriteString("# Reference images are downscaled to this many pixels on the longer side\n")
	fmt.Fprintf(&b, "max_image_size = %d\n\n", cfg.Generator.MaxImageSize)

	b.WriteString("[render]\n")
	b.WriteString("# Reuse library components (see [[components]]) before synthesizing new ones\n")
	fmt.Fprintf(&b, "use_components = %v\n", cfg.Render.UseComponents)
	b.WriteString("# Build container children in parallel\n")
	fmt.Fprintf(&b, "concurrent = %v\n", cfg.Render.Concurrent)
	b.WriteString("# Maximum nesting depth of a layout\n")
	fmt.Fprintf(&b, "max_depth = %d\n", cfg.Render.MaxDepth)
	b.WriteString("# Where the first screen is placed, and the step between screens of a flow\n")
	fmt.Fprintf(&b, "origin_x = %.1f\n", cfg.Render.OriginX)
	fmt.Fprintf(&b, "origin_y = %.1f\n", cfg.Render.OriginY)
	fmt.Fprintf(&b, "screen_spacing = %.1f\n", cfg.Render.ScreenSpacing)
	b.WriteString("# Font family for text layers (\"Inter\" and \"Go\" are built in)\n")
	fmt.Fprintf(&b, "font_family = %q\n\n", cfg.Render.FontFamily)

	b.WriteString("[output]\n")
	b.WriteString("# Default paths for the JSON snapshot and PNG preview (empty = don't write)\n")
	b.WriteString("# snapshot = \"~/layouts/last.json\"\n")
	b.WriteString("# png = \"~/layouts/last.png\"\n")
	b.WriteString("# Command to open a preview (auto-detected if not set)\n")
	b.WriteString("# Template variables: {png}, {snapshot}, {source}, {dir}\n")
	b.WriteString("# Variables are shell-escaped for safety.\n")
	b.WriteString("# open_command = \"xdg-open {png}\"\n")
	b.WriteString("# Preview scale factor and background\n")
	fmt.Fprintf(&b, "scale = %.1f\n", cfg.Output.Scale)
	fmt.Fprintf(&b, "background = %q\n\n", cfg.Output.Background)

	b.WriteString("[ui]\n")
	b.WriteString("# Color theme: \"auto\", \"dark\", or \"light\"\n")
	fmt.Fprintf(&b, "theme = %q\n", cfg.UI.Theme)
	b.WriteString("# Show the generated JSON next to the rendered tree\n")
	fmt.Fprintf(&b, "show_raw = %v\n", cfg.UI.ShowRaw)
	b.WriteString("# Highlighting style for the generated JSON (any chroma style name)\n")
	fmt.Fprintf(&b, "highlight_style = %q\n\n", cfg.UI.HighlightStyle)

	b.WriteString("[keys]\n")
	b.WriteString("# Keybindings (comma-separated for multiple keys)\n")
	fmt.Fprintf(&b, "# generate = %q\n", cfg.Keys.Generate)
	fmt.Fprintf(&b, "# next_field = %q\n", cfg.Keys.NextField)
	fmt.Fprintf(&b, "# save = %q\n", cfg.Keys.Save)
	fmt.Fprintf(&b, "# open = %q\n", cfg.Keys.Open)
	fmt.Fprintf(&b, "# components = %q\n", cfg.Keys.Components)
	fmt.Fprintf(&b, "# raw = %q\n", cfg.Keys.Raw)
	fmt.Fprintf(&b, "# back = %q\n", cfg.Keys.Back)
	fmt.Fprintf(&b, "# help = %q\n", cfg.Keys.Help)
	fmt.Fprintf(&b, "# quit = %q\n", cfg.Keys.Quit)

	b.WriteString("\n# Library components available to use_components\n")
	b.WriteString("# [[components]]\n")
	b.WriteString("# name = \"Button/Primary\"\n")
	b.WriteString("# kind = \"button\"\n")
	b.WriteString("# background_color = \"#0B5FFF\"\n")
	b.WriteString("#\n")
	b.WriteString("# [[components]]\n")
	b.WriteString("# name = \"Button/Primary / Hover\"\n")
	b.WriteString("# kind = \"button\"\n")
	b.WriteString("# background_color = \"#0847C0\"\n")

	return b.String()
}

var validKinds = map[string]bool{"button": true, "card": true, "header": true, "input": true}

// Validate validates the configuration and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	// Check template variables in the open command
	validVars := []string{"{png}", "{snapshot}", "{source}", "{dir}"}
	for _, v := range extractTemplateVars(c.Output.OpenCommand) {
		found := false
		for _, valid := range validVars {
			if v == valid {
				found = true
				break
			}
		}
		if !found {
			warnings = append(warnings, fmt.Sprintf("Unknown template variable in output.open_command: %s", v))
		}
	}

	if c.Generator.Timeout != "" {
		if d, err := time.ParseDuration(c.Generator.Timeout); err != nil || d <= 0 {
			warnings = append(warnings, fmt.Sprintf("Invalid value for generator.timeout: %s (expected a duration such as 60s)", c.Generator.Timeout))
		}
	}

	if c.Generator.Temperature < 0 || c.Generator.Temperature > 2 {
		warnings = append(warnings, fmt.Sprintf("generator.temperature must be between 0 and 2, got %v", c.Generator.Temperature))
	}

	if c.Generator.MaxTokens < 0 {
		warnings = append(warnings, fmt.Sprintf("generator.max_tokens must not be negative, got %d", c.Generator.MaxTokens))
	}

	if c.Render.MaxDepth < 0 {
		warnings = append(warnings, fmt.Sprintf("render.max_depth must not be negative, got %d", c.Render.MaxDepth))
	}

	if c.Render.ScreenSpacing < 0 {
		warnings = append(warnings, fmt.Sprintf("render.screen_spacing must not be negative, got %v", c.Render.ScreenSpacing))
	}

	if c.Output.Scale < 0 {
		warnings = append(warnings, fmt.Sprintf("output.scale must not be negative, got %v", c.Output.Scale))
	}

	// Check theme value
	if c.UI.Theme != "" &&
		c.UI.Theme != "auto" &&
		c.UI.Theme != "dark" &&
		c.UI.Theme != "light" {
		warnings = append(warnings, fmt.Sprintf("Invalid value for ui.theme: %s (expected auto, dark, or light)", c.UI.Theme))
	}

	// Validate components
	names := make(map[string]bool)
	for i, comp := range c.Components {
		if comp.Name == "" {
			warnings = append(warnings, fmt.Sprintf("Component %d has empty name", i))
		} else if names[comp.Name] {
			warnings = append(warnings, fmt.Sprintf("Duplicate component name: %s", comp.Name))
		}
		names[comp.Name] = true

		if comp.Kind != "" && !validKinds[comp.Kind] {
			warnings = append(warnings, fmt.Sprintf("Component %s: invalid kind '%s' (expected button, card, header, input)", comp.Name, comp.Kind))
		}
		if comp.FontSize < 0 || comp.Radius < 0 {
			warnings = append(warnings, fmt.Sprintf("Component %s: font_size and radius must not be negative", comp.Name))
		}
	}

	return warnings
}

// extractTemplateVars extracts template variables from a string.
func extractTemplateVars(s string) []string {
	re := regexp.MustCompile(`\{[^}]+\}`)
	return re.FindAllString(s, -1)
}
