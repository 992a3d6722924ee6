package design

import (
	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/layout"
)

// Defaults describes how a synthesized component of one kind looks before any
// node style is applied.
type Defaults struct {
	Style layout.Style

	// Width and Height fix the component size. Zero means hug the label.
	Width  float64
	Height float64

	Mode    canvas.LayoutMode
	Padding canvas.Sides
	Align   canvas.Align
}

var kindDefaults = map[layout.Kind]Defaults{
	layout.KindButton: {
		Style:   layout.Style{BackgroundColor: "#007BFF", Color: "#FFFFFF", FontSize: 16, Radius: 8},
		Mode:    canvas.LayoutHorizontal,
		Padding: canvas.Sides{Top: 12, Right: 24, Bottom: 12, Left: 24},
		Align:   canvas.AlignCenter,
	},
	layout.KindCard: {
		Style:   layout.Style{BackgroundColor: "#F8F9FA", Color: "#212529", FontSize: 16, Radius: 12},
		Width:   300,
		Height:  200,
		Mode:    canvas.LayoutVertical,
		Padding: canvas.Uniform(16),
		Align:   canvas.AlignMin,
	},
	layout.KindHeader: {
		Style:   layout.Style{BackgroundColor: "#007BFF", Color: "#FFFFFF", FontSize: 20},
		Width:   375,
		Height:  64,
		Mode:    canvas.LayoutHorizontal,
		Padding: canvas.Sides{Top: 0, Right: 16, Bottom: 0, Left: 16},
		Align:   canvas.AlignMin,
	},
	layout.KindInput: {
		Style:   layout.Style{BackgroundColor: "#FFFFFF", Color: "#6C757D", FontSize: 14, Radius: 6},
		Width:   280,
		Height:  44,
		Mode:    canvas.LayoutHorizontal,
		Padding: canvas.Sides{Top: 0, Right: 12, Bottom: 0, Left: 12},
		Align:   canvas.AlignMin,
	},
}

// DefaultsFor returns the synthesis defaults of kind.
func DefaultsFor(kind layout.Kind) (Defaults, bool) {
	d, ok := kindDefaults[kind]
	return d, ok
}
