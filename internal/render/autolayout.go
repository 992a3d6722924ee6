package render

import (
	"math"
	"strings"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/layout"
)

const (
	DefaultItemSpacing = 12
	DefaultPadding     = 16
)

// ResolveAutoLayout computes the auto layout of a container node. Undeclared
// properties default to a vertical, MIN-aligned stack with 12 spacing and 16
// padding that hugs its content. Each padding side prefers its own value, then
// the uniform padding, then the default.
func ResolveAutoLayout(n *layout.Node) canvas.AutoLayout {
	al := canvas.AutoLayout{
		Mode:          canvas.LayoutVertical,
		PrimaryAlign:  canvas.AlignMin,
		CounterAlign:  canvas.AlignMin,
		ItemSpacing:   DefaultItemSpacing,
		PrimarySizing: canvas.SizingAuto,
		CounterSizing: canvas.SizingAuto,
	}
	if strings.EqualFold(n.Layout, "horizontal") {
		al.Mode = canvas.LayoutHorizontal
	}
	if a, ok := canvas.ParseAlign(n.PrimaryAxisAlignItems); ok {
		al.PrimaryAlign = a
	}
	if a, ok := canvas.ParseAlign(n.CounterAxisAlignItems); ok && a != canvas.AlignSpaceBetween {
		al.CounterAlign = a
	}
	if n.ItemSpacing != nil {
		al.ItemSpacing = *n.ItemSpacing
	}
	al.Padding = canvas.Sides{
		Top:    side(n.PaddingTop, n.Padding),
		Right:  side(n.PaddingRight, n.Padding),
		Bottom: side(n.PaddingBottom, n.Padding),
		Left:   side(n.PaddingLeft, n.Padding),
	}
	if m, ok := canvas.ParseSizingMode(n.PrimaryAxisSizingMode); ok {
		al.PrimarySizing = m
	}
	if m, ok := canvas.ParseSizingMode(n.CounterAxisSizingMode); ok {
		al.CounterSizing = m
	}
	return al
}

func side(explicit, uniform *float64) float64 {
	switch {
	case explicit != nil:
		return *explicit
	case uniform != nil:
		return *uniform
	}
	return DefaultPadding
}

// ApplyAutoLayout sets the resolved auto layout on c. It must run before
// children are attached.
func ApplyAutoLayout(c canvas.Container, n *layout.Node) {
	c.SetAutoLayout(ResolveAutoLayout(n))
}

// ClampMinSize grows c to the declared minWidth/minHeight. It must run after
// children are attached, since it fixes whatever size the content produced.
func ClampMinSize(c canvas.Container, n *layout.Node) {
	if n.MinWidth == nil && n.MinHeight == nil {
		return
	}
	w, h := c.Size()
	if n.MinWidth != nil {
		w = math.Max(w, *n.MinWidth)
	}
	if n.MinHeight != nil {
		h = math.Max(h, *n.MinHeight)
	}
	c.Resize(w, h)
}
