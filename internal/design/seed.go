package design

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/layout"
)

// Seed describes a library component placed on the canvas before a render,
// so that variant resolution has something to find.
type Seed struct {
	Name string
	// Kind picks the default geometry and colors. Unknown kinds use button defaults.
	Kind  layout.Kind
	Label string
	Style layout.Style
}

// Plant creates one component per seed on the page of c. Seeds are not
// memoized: planting the same name twice yields two components, and the
// resolver keeps the first.
func Plant(ctx context.Context, c canvas.Canvas, font canvas.FontName, seeds []Seed) ([]canvas.Component, error) {
	out := make([]canvas.Component, 0, len(seeds))
	for _, s := range seeds {
		if s.Name == "" {
			return out, fmt.Errorf("design: seed without a name")
		}
		defaults, ok := DefaultsFor(s.Kind)
		if !ok {
			defaults, _ = DefaultsFor(layout.KindButton)
		}
		style := defaults.Style
		if err := copier.CopyWithOption(&style, &s.Style, copier.Option{IgnoreEmpty: true}); err != nil {
			return out, fmt.Errorf("seed %s: merge style: %w", s.Name, err)
		}
		label := s.Label
		if label == "" {
			label = s.Name
		}

		comp, err := createComponent(ctx, c, font, s.Name, label, defaults, style)
		if err != nil {
			return out, fmt.Errorf("seed %s: %w", s.Name, err)
		}
		c.Page().AppendChild(comp)
		out = append(out, comp)
	}
	return out, nil
}
