// Package scene is an in-memory design canvas.
//
// A Document implements canvas.Canvas: it hands out node handles, loads fonts
// from a FontLibrary, hugs auto layout frames around their content and can lay
// out absolute geometry for previews and snapshots.
package scene

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
)

// Document is one canvas page plus the resources it needs.
type Document struct {
	fonts  *FontLibrary
	nextID atomic.Int64
	page   *Node

	mu        sync.Mutex
	viewport  []canvas.Node
	selection []canvas.Node
}

// Option configures a Document.
type Option func(*Document)

// WithFonts uses lib instead of the default font library.
func WithFonts(lib *FontLibrary) Option {
	return func(d *Document) {
		d.fonts = lib
	}
}

// New returns an empty document.
func New(opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	if d.fonts == nil {
		d.fonts = NewFontLibrary()
	}
	d.page = d.newNode(canvas.TypePage)
	d.page.name = "Page 1"
	return d
}

var _ canvas.Canvas = (*Document)(nil)

func (d *Document) newNode(typ canvas.NodeType) *Node {
	id := d.nextID.Add(1)
	return &Node{
		doc: d,
		id:  "0:" + strconv.FormatInt(id, 10),
		typ: typ,
	}
}

// Fonts returns the document's font library.
func (d *Document) Fonts() *FontLibrary {
	return d.fonts
}

// CreateFrame returns a detached 100x100 frame.
func (d *Document) CreateFrame() canvas.Container {
	n := d.newNode(canvas.TypeFrame)
	n.name = "Frame"
	n.width, n.height = defaultFrameSize, defaultFrameSize
	n.fill = "#FFFFFF"
	return n
}

// CreateText returns a detached empty text layer in the default font.
func (d *Document) CreateText() canvas.Text {
	n := d.newNode(canvas.TypeText)
	n.name = "Text"
	n.font = DefaultFont
	n.fontSize = defaultFontSize
	n.fill = "#000000"
	return n
}

// CreateComponent returns a detached component.
func (d *Document) CreateComponent() canvas.Component {
	n := d.newNode(canvas.TypeComponent)
	n.name = "Component"
	n.width, n.height = defaultFrameSize, defaultFrameSize
	return n
}

// CreateConnector returns a detached connector.
func (d *Document) CreateConnector() canvas.Connector {
	n := d.newNode(canvas.TypeConnector)
	n.name = "Connector"
	return n
}

// LoadFont loads f from the font library.
func (d *Document) LoadFont(ctx context.Context, f canvas.FontName) error {
	return d.fonts.Load(ctx, f)
}

// Page returns the page node.
func (d *Document) Page() canvas.Container {
	return d.page
}

// PageNode returns the page as a concrete node.
func (d *Document) PageNode() *Node {
	return d.page
}

// Components lists the components placed directly on the page, in order.
func (d *Document) Components() []canvas.Component {
	var out []canvas.Component
	for _, n := range d.page.kids() {
		if n.typ == canvas.TypeComponent {
			out = append(out, n)
		}
	}
	return out
}

// AddComponent places a simple named component on the page, the way a design
// system library would provide it. The label uses the default font, loaded here.
func (d *Document) AddComponent(ctx context.Context, name string) (canvas.Component, error) {
	c := d.CreateComponent()
	c.SetName(name)
	c.SetAutoLayout(canvas.AutoLayout{
		Mode:          canvas.LayoutHorizontal,
		PrimaryAlign:  canvas.AlignCenter,
		CounterAlign:  canvas.AlignCenter,
		Padding:       canvas.Sides{Top: 8, Right: 16, Bottom: 8, Left: 16},
		PrimarySizing: canvas.SizingAuto,
		CounterSizing: canvas.SizingAuto,
	})
	c.SetFill("#E9ECEF")

	if err := d.LoadFont(ctx, DefaultFont); err != nil {
		return nil, err
	}
	label := d.CreateText()
	label.SetName("Label")
	if err := label.SetCharacters(name); err != nil {
		return nil, err
	}
	c.AppendChild(label)
	d.page.AppendChild(c)
	return c, nil
}

// ScrollAndZoomIntoView records the nodes the viewport should frame.
func (d *Document) ScrollAndZoomIntoView(nodes []canvas.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewport = append([]canvas.Node(nil), nodes...)
}

// SetSelection records the selected nodes.
func (d *Document) SetSelection(nodes []canvas.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = append([]canvas.Node(nil), nodes...)
}

// Viewport returns the nodes last brought into view.
func (d *Document) Viewport() []canvas.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]canvas.Node(nil), d.viewport...)
}

// Selection returns the current selection.
func (d *Document) Selection() []canvas.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]canvas.Node(nil), d.selection...)
}
