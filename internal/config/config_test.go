package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/henri123lemoine/layoutgen/internal/layout"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Generator.Model != "gpt-4o" {
		t.Errorf("Expected default model 'gpt-4o', got %q", cfg.Generator.Model)
	}

	if cfg.Generator.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("Expected api key env 'OPENAI_API_KEY', got %q", cfg.Generator.APIKeyEnv)
	}

	if cfg.Render.MaxDepth != 64 {
		t.Errorf("Expected max depth 64, got %d", cfg.Render.MaxDepth)
	}

	if cfg.Render.UseComponents != false {
		t.Error("Expected UseComponents to be false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		wantWarning bool
	}{
		{
			name:        "default config is valid",
			config:      DefaultConfig(),
			wantWarning: false,
		},
		{
			name: "invalid template variable",
			config: &Config{
				Output: OutputConfig{
					OpenCommand: "open {path}",
				},
			},
			wantWarning: true,
		},
		{
			name: "valid template variables",
			config: &Config{
				Output: OutputConfig{
					OpenCommand: "feh {png} --title {source}",
				},
			},
			wantWarning: false,
		},
		{
			name: "invalid timeout",
			config: &Config{
				Generator: GeneratorConfig{
					Timeout: "soon",
				},
			},
			wantWarning: true,
		},
		{
			name: "temperature out of range",
			config: &Config{
				Generator: GeneratorConfig{
					Temperature: 3,
				},
			},
			wantWarning: true,
		},
		{
			name: "negative max depth",
			config: &Config{
				Render: RenderConfig{
					MaxDepth: -1,
				},
			},
			wantWarning: true,
		},
		{
			name: "invalid theme",
			config: &Config{
				UI: UIConfig{
					Theme: "invalid",
				},
			},
			wantWarning: true,
		},
		{
			name: "duplicate component",
			config: &Config{
				Components: []ComponentConfig{
					{Name: "Button/Primary", Kind: "button"},
					{Name: "Button/Primary", Kind: "button"},
				},
			},
			wantWarning: true,
		},
		{
			name: "invalid component kind",
			config: &Config{
				Components: []ComponentConfig{
					{Name: "Hero", Kind: "banner"},
				},
			},
			wantWarning: true,
		},
		{
			name: "unnamed component",
			config: &Config{
				Components: []ComponentConfig{
					{Kind: "card"},
				},
			},
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.Validate()
			hasWarnings := len(warnings) > 0
			if hasWarnings != tt.wantWarning {
				t.Errorf("Validate() hasWarnings = %v, want %v. Warnings: %v", hasWarnings, tt.wantWarning, warnings)
			}
		})
	}
}

func TestLoadPreservesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	// Only specify some values - others should keep defaults
	tomlContent := `[generator]
model = "gpt-4o-mini"

[render]
use_components = true

[[components]]
name = "Button/Primary"
kind = "button"
background_color = "#0B5FFF"
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if cfg.Generator.Model != "gpt-4o-mini" {
		t.Errorf("Expected model 'gpt-4o-mini', got %q", cfg.Generator.Model)
	}

	if !cfg.Render.UseComponents {
		t.Error("Expected UseComponents to be loaded as true")
	}

	// Check that non-specified values keep defaults
	if cfg.Generator.MaxTokens != 800 {
		t.Errorf("Expected default max tokens 800, got %d", cfg.Generator.MaxTokens)
	}

	if cfg.Render.FontFamily != "Inter" {
		t.Errorf("Expected default font family 'Inter', got %q", cfg.Render.FontFamily)
	}

	if comp := cfg.GetComponentByName("Button/Primary"); comp == nil || comp.BackgroundColor != "#0B5FFF" {
		t.Errorf("Expected Button/Primary component, got %+v", comp)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Output.Scale != 1 {
		t.Errorf("Expected default scale 1, got %v", cfg.Output.Scale)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[render\nmax_depth = "), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	if _, err := LoadFromPath(configPath); err == nil {
		t.Error("Expected error for invalid TOML")
	}
}

func TestDefaultConfigContentParses(t *testing.T) {
	content := generateDefaultConfigContent()

	cfg := DefaultConfig()
	if err := toml.Unmarshal([]byte(content), cfg); err != nil {
		t.Fatalf("generated config does not parse: %v", err)
	}
	if warnings := cfg.Validate(); len(warnings) > 0 {
		t.Errorf("generated config has warnings: %v", warnings)
	}
	if !strings.Contains(content, "[generator]") || !strings.Contains(content, "# [[components]]") {
		t.Error("Expected generated config to document generator and components")
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path := ConfigPath()
	if path == "" {
		t.Error("ConfigPath should not return empty string")
	}

	// Should end with layoutgen/config.toml
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected config.toml, got %q", filepath.Base(path))
	}

	dir := filepath.Dir(path)
	if filepath.Base(dir) != "layoutgen" {
		t.Errorf("Expected layoutgen dir, got %q", filepath.Base(dir))
	}
}

func TestConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	expected := filepath.Join("/tmp/xdg", "layoutgen", "config.toml")
	if path := ConfigPath(); path != expected {
		t.Errorf("ConfigPath() = %q, want %q", path, expected)
	}
}

func TestTimeoutDuration(t *testing.T) {
	tests := []struct {
		timeout  string
		expected time.Duration
	}{
		{"30s", 30 * time.Second},
		{"2m", 2 * time.Minute},
		{"", 60 * time.Second},
		{"never", 60 * time.Second},
		{"-5s", 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			got := GeneratorConfig{Timeout: tt.timeout}.TimeoutDuration()
			if got != tt.expected {
				t.Errorf("TimeoutDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("LAYOUTGEN_TEST_KEY", "sk-test")

	g := GeneratorConfig{APIKeyEnv: "LAYOUTGEN_TEST_KEY"}
	if key := g.APIKey(); key != "sk-test" {
		t.Errorf("Expected key from env, got %q", key)
	}

	g.APIKeyEnv = ""
	if key := g.APIKey(); key != "" {
		t.Errorf("Expected no key without env name, got %q", key)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if got := ExpandPath("~/out.png"); got != filepath.Join(home, "out.png") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got := ExpandPath("/abs/out.png"); got != "/abs/out.png" {
		t.Errorf("ExpandPath() = %q, want unchanged", got)
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.UseComponents = true
	cfg.Render.OriginX = 0
	cfg.Render.MaxDepth = 0
	cfg.Render.FontFamily = "Go"

	opts := cfg.RenderOptions()
	if !opts.UseComponents {
		t.Error("Expected UseComponents to carry over")
	}
	if opts.Origin.X != 0 || opts.Origin.Y != 100 {
		t.Errorf("Expected origin (0, 100), got %+v", opts.Origin)
	}
	if opts.MaxDepth != 64 {
		t.Errorf("Expected zero max depth to fall back to 64, got %d", opts.MaxDepth)
	}
	if opts.FontFamily != "Go" {
		t.Errorf("Expected font family Go, got %q", opts.FontFamily)
	}
}

func TestGeneratorOptions(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-abc")

	cfg := DefaultConfig()
	cfg.Generator.Timeout = "5s"
	cfg.Generator.Endpoint = ""

	opts := cfg.GeneratorOptions()
	if opts.APIKey != "sk-abc" {
		t.Errorf("Expected API key from env, got %q", opts.APIKey)
	}
	if opts.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", opts.Timeout)
	}
	if opts.Endpoint == "" {
		t.Error("Expected empty endpoint to keep the default")
	}
	if opts.MaxDepth != cfg.Render.MaxDepth {
		t.Errorf("Expected reply depth bound %d, got %d", cfg.Render.MaxDepth, opts.MaxDepth)
	}
}

func TestSeeds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Components = []ComponentConfig{
		{Name: "Button/Primary", Kind: "button", BackgroundColor: "#111111"},
		{Name: "Mystery", Kind: "banner"},
	}

	seeds := cfg.Seeds()
	if len(seeds) != 2 {
		t.Fatalf("Expected 2 seeds, got %d", len(seeds))
	}
	if seeds[0].Kind != layout.KindButton || seeds[0].Style.BackgroundColor != "#111111" {
		t.Errorf("Unexpected first seed: %+v", seeds[0])
	}
	if seeds[1].Kind != layout.KindUnsupported {
		t.Errorf("Expected unknown kind to be unsupported, got %v", seeds[1].Kind)
	}
}

func TestExtractTemplateVars(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"open {png}", []string{"{png}"}},
		{"no vars here", nil},
		{"{a} {b} {c}", []string{"{a}", "{b}", "{c}"}},
		{"{}", nil}, // Empty braces are not valid template vars
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := extractTemplateVars(tt.input)
			if len(got) != len(tt.expected) {
				t.Errorf("extractTemplateVars(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
