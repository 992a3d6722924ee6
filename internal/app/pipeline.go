package app

import (
	"context"
	"fmt"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/config"
	"github.com/henri123lemoine/layoutgen/internal/design"
	"github.com/henri123lemoine/layoutgen/internal/layout"
	"github.com/henri123lemoine/layoutgen/internal/render"
	"github.com/henri123lemoine/layoutgen/internal/scene"
)

// RenderLayout renders doc on a fresh scene holding the configured library
// components.
func RenderLayout(ctx context.Context, cfg *config.Config, doc *layout.Document) (*scene.Document, *render.Result, error) {
	sc := scene.New()
	opts := cfg.RenderOptions()

	if seeds := cfg.Seeds(); len(seeds) > 0 {
		font := canvas.FontName{Family: opts.FontFamily, Style: "Regular"}
		if _, err := design.Plant(ctx, sc, font, seeds); err != nil {
			return nil, nil, fmt.Errorf("library components: %w", err)
		}
	}

	res, err := render.Render(ctx, sc, doc, opts)
	if err != nil {
		return nil, nil, err
	}
	return sc, res, nil
}

// ComponentNames lists the components on the page of sc, in page order.
func ComponentNames(sc *scene.Document) []string {
	var names []string
	for _, c := range sc.Components() {
		names = append(names, c.Name())
	}
	return names
}
