package config

import (
	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/design"
	"github.com/henri123lemoine/layoutgen/internal/generator"
	"github.com/henri123lemoine/layoutgen/internal/layout"
	"github.com/henri123lemoine/layoutgen/internal/raster"
	"github.com/henri123lemoine/layoutgen/internal/render"
)

// RenderOptions returns the render options described by the [render] section.
func (c *Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.UseComponents = c.Render.UseComponents
	opts.Concurrent = c.Render.Concurrent
	if c.Render.MaxDepth > 0 {
		opts.MaxDepth = c.Render.MaxDepth
	}
	opts.Origin = canvas.Point{X: c.Render.OriginX, Y: c.Render.OriginY}
	if c.Render.ScreenSpacing > 0 {
		opts.ScreenSpacing = c.Render.ScreenSpacing
	}
	if c.Render.FontFamily != "" {
		opts.FontFamily = c.Render.FontFamily
	}
	return opts
}

// GeneratorOptions returns the client options described by the [generator] section.
// The API key is read from the environment.
func (c *Config) GeneratorOptions() generator.OpenAIOptions {
	opts := generator.DefaultOpenAIOptions()
	if c.Generator.Endpoint != "" {
		opts.Endpoint = c.Generator.Endpoint
	}
	if c.Generator.Model != "" {
		opts.Model = c.Generator.Model
	}
	opts.APIKey = c.Generator.APIKey()
	opts.Temperature = c.Generator.Temperature
	if c.Generator.MaxTokens > 0 {
		opts.MaxTokens = c.Generator.MaxTokens
	}
	opts.Timeout = c.Generator.TimeoutDuration()
	opts.MaxImageSize = c.Generator.MaxImageSize
	opts.MaxDepth = c.Render.MaxDepth
	return opts
}

// RasterOptions returns the preview options described by the [output] section.
func (c *Config) RasterOptions() raster.Options {
	opts := raster.DefaultOptions()
	if c.Output.Scale > 0 {
		opts.Scale = c.Output.Scale
	}
	if c.Output.Background != "" {
		opts.Background = c.Output.Background
	}
	return opts
}

// Seeds returns the [[components]] entries as library seeds.
func (c *Config) Seeds() []design.Seed {
	seeds := make([]design.Seed, 0, len(c.Components))
	for _, comp := range c.Components {
		seeds = append(seeds, design.Seed{
			Name:  comp.Name,
			Kind:  layout.ParseKind(comp.Kind),
			Label: comp.Label,
			Style: layout.Style{
				BackgroundColor: comp.BackgroundColor,
				Color:           comp.Color,
				FontSize:        comp.FontSize,
				Radius:          comp.Radius,
			},
		})
	}
	return seeds
}
