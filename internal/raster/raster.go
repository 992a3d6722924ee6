// Package raster draws a scene document into an image for previews.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/debug"
	"github.com/henri123lemoine/layoutgen/internal/scene"
)

// Options controls the preview.
type Options struct {
	// Scale multiplies every canvas unit. Zero means 1.
	Scale float64
	// Margin is added around the page bounds, in canvas units.
	Margin     float64
	Background string
	// MaxSide caps the longer image side in pixels; the scale shrinks to fit.
	MaxSide int
}

// DefaultOptions returns the options used by the render command.
func DefaultOptions() Options {
	return Options{Scale: 1, Margin: 40, Background: "#E5E5E5", MaxSide: 8192}
}

const connectorColor = "#1E1E1E"

// Fills a preview cannot read are drawn in these instead.
var (
	fallbackFill = color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF}
	fallbackText = color.RGBA{A: 0xFF}
)

// Render lays out doc and draws its page.
func Render(doc *scene.Document, opts Options) (*image.RGBA, error) {
	doc.Layout()
	bounds := doc.Bounds()

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w := (bounds.W + 2*opts.Margin) * scale
	h := (bounds.H + 2*opts.Margin) * scale
	if opts.MaxSide > 0 {
		if longest := math.Max(w, h); longest > float64(opts.MaxSide) {
			shrink := float64(opts.MaxSide) / longest
			scale *= shrink
			w, h = w*shrink, h*shrink
		}
	}

	p := &painter{
		dst:   image.NewRGBA(image.Rect(0, 0, int(math.Ceil(math.Max(w, 1))), int(math.Ceil(math.Max(h, 1))))),
		fonts: doc.Fonts(),
		scale: scale,
		dx:    opts.Margin - bounds.X,
		dy:    opts.Margin - bounds.Y,
	}
	bg, err := parseColor(opts.Background)
	if err != nil {
		return nil, err
	}
	draw.Draw(p.dst, p.dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	var connectors []*scene.Node
	for _, c := range doc.PageNode().Children() {
		n := c.(*scene.Node)
		if n.Type() == canvas.TypeConnector {
			connectors = append(connectors, n)
			continue
		}
		if err := p.node(n); err != nil {
			return nil, err
		}
	}
	for _, c := range connectors {
		if err := p.connector(c); err != nil {
			return nil, err
		}
	}
	return p.dst, nil
}

// EncodePNG renders doc and writes it as PNG.
func EncodePNG(w io.Writer, doc *scene.Document, opts Options) error {
	img, err := Render(doc, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

type painter struct {
	dst    *image.RGBA
	fonts  *scene.FontLibrary
	scale  float64
	dx, dy float64
}

func (p *painter) x(v float64) float64 { return (v + p.dx) * p.scale }
func (p *painter) y(v float64) float64 { return (v + p.dy) * p.scale }

func (p *painter) node(n *scene.Node) error {
	switch n.Type() {
	case canvas.TypeText:
		return p.text(n)
	case canvas.TypeConnector:
		return p.connector(n)
	}

	b := n.Box()
	if fill := n.Fill(); fill != "" {
		c := nodeColor(n, fill, fallbackFill)
		p.roundedRect(p.x(b.X), p.y(b.Y), b.W*p.scale, b.H*p.scale, n.CornerRadius()*p.scale, c)
	}
	for _, k := range n.Children() {
		if err := p.node(k.(*scene.Node)); err != nil {
			return err
		}
	}
	return nil
}

func (p *painter) text(n *scene.Node) error {
	if n.Characters() == "" {
		return nil
	}
	c := nodeColor(n, n.Fill(), fallbackText)
	b := n.Box()
	return p.label(n.Font(), n.FontSize(), n.Characters(), p.x(b.X), p.y(b.Y), c)
}

// label draws s with its top left corner at (x, y) in pixels.
func (p *painter) label(name canvas.FontName, size float64, s string, x, y float64, c color.Color) error {
	if size <= 0 {
		return nil
	}
	err := p.fonts.WithFace(name, size*p.scale, func(face font.Face) {
		m := face.Metrics()
		d := &font.Drawer{Dst: p.dst, Src: image.NewUniform(c), Face: face}
		baseline := y + float64(m.Ascent)/64
		for _, line := range strings.Split(s, "\n") {
			d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(baseline * 64)}
			d.DrawString(line)
			baseline += float64(m.Height) / 64
		}
	})
	if err != nil {
		return fmt.Errorf("draw text: %w", err)
	}
	return nil
}

func (p *painter) connector(n *scene.Node) error {
	from, to := n.Endpoints()
	c, err := parseColor(connectorColor)
	if err != nil {
		return err
	}
	x1, y1, x2, y2 := p.x(from.X), p.y(from.Y), p.x(to.X), p.y(to.Y)
	p.line(x1, y1, x2, y2, 2*p.scale, c)
	p.arrowHead(x1, y1, x2, y2, 10*p.scale, c)

	if label := n.Label(); label != "" {
		var lw float64
		if w, _, err := p.fonts.Measure(n.Font(), 12, label); err == nil {
			lw = w * p.scale
		}
		mx, my := (x1+x2)/2-lw/2, (y1+y2)/2-18*p.scale
		if err := p.label(n.Font(), 12, label, mx, my, c); err != nil {
			return err
		}
	}
	return nil
}

func (p *painter) fill(path func(r *vector.Rasterizer), c color.Color) {
	size := p.dst.Bounds().Size()
	r := vector.NewRasterizer(size.X, size.Y)
	path(r)
	r.Draw(p.dst, p.dst.Bounds(), image.NewUniform(c), image.Point{})
}

func (p *painter) roundedRect(x, y, w, h, radius float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	radius = math.Min(radius, math.Min(w, h)/2)
	x0, y0, x1, y1 := float32(x), float32(y), float32(x+w), float32(y+h)
	rr := float32(radius)
	p.fill(func(r *vector.Rasterizer) {
		r.MoveTo(x0+rr, y0)
		r.LineTo(x1-rr, y0)
		r.QuadTo(x1, y0, x1, y0+rr)
		r.LineTo(x1, y1-rr)
		r.QuadTo(x1, y1, x1-rr, y1)
		r.LineTo(x0+rr, y1)
		r.QuadTo(x0, y1, x0, y1-rr)
		r.LineTo(x0, y0+rr)
		r.QuadTo(x0, y0, x0+rr, y0)
		r.ClosePath()
	}, c)
}

func (p *painter) line(x1, y1, x2, y2, width float64, c color.Color) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	p.fill(func(r *vector.Rasterizer) {
		r.MoveTo(float32(x1+nx), float32(y1+ny))
		r.LineTo(float32(x2+nx), float32(y2+ny))
		r.LineTo(float32(x2-nx), float32(y2-ny))
		r.LineTo(float32(x1-nx), float32(y1-ny))
		r.ClosePath()
	}, c)
}

func (p *painter) arrowHead(x1, y1, x2, y2, size float64, c color.Color) {
	angle := math.Atan2(y2-y1, x2-x1)
	left := angle + math.Pi*5/6
	right := angle - math.Pi*5/6
	p.fill(func(r *vector.Rasterizer) {
		r.MoveTo(float32(x2), float32(y2))
		r.LineTo(float32(x2+size*math.Cos(left)), float32(y2+size*math.Sin(left)))
		r.LineTo(float32(x2+size*math.Cos(right)), float32(y2+size*math.Sin(right)))
		r.ClosePath()
	}, c)
}

// nodeColor parses the fill of n, degrading an unreadable color to fallback.
func nodeColor(n *scene.Node, fill string, fallback color.Color) color.Color {
	c, err := parseColor(fill)
	if err != nil {
		debug.Event("color fallback", "node", n.ID(), "fill", fill, "err", err)
		return fallback
	}
	return c
}

// parseColor reads a #RRGGBB or #RGB hex color or an SVG color name.
func parseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
