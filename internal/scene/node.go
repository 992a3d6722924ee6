package scene

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
)

var (
	_ canvas.Component = (*Node)(nil)
	_ canvas.Instance  = (*Node)(nil)
	_ canvas.Text      = (*Node)(nil)
	_ canvas.Connector = (*Node)(nil)
)

// ErrFontNotLoaded mirrors the host refusing text edits before the font is ready.
var ErrFontNotLoaded = errors.New("font not loaded")

const (
	defaultFrameSize = 100
	defaultFontSize  = 12
)

// DefaultFont is the font every new text layer starts with.
var DefaultFont = canvas.FontName{Family: "Inter", Style: "Regular"}

// Node is the in-memory node behind every canvas handle. Which methods are
// meaningful depends on its type.
type Node struct {
	doc  *Document
	id   string
	typ  canvas.NodeType
	name string

	pos         canvas.Point
	width       float64
	height      float64
	fixedText   bool
	constraints canvas.Constraints
	box         Box

	mu       sync.RWMutex
	parent   *Node
	children []*Node

	autoLayout canvas.AutoLayout
	fill       string
	radius     float64

	font       canvas.FontName
	fontSize   float64
	characters string
	textWidth  float64
	textHeight float64

	main *Node

	start *Node
	end   *Node
	label string
}

func (n *Node) ID() string { return n.id }
func (n *Node) Type() canvas.NodeType { return n.typ }
func (n *Node) Name() string { return n.name }
func (n *Node) SetName(name string) { n.name = name }
func (n *Node) Position() canvas.Point { return n.pos }
func (n *Node) SetPosition(p canvas.Point) { n.pos = p }
func (n *Node) Constraints() canvas.Constraints { return n.constraints }
func (n *Node) SetConstraints(c canvas.Constraints) { n.constraints = c }

// Box returns the absolute geometry computed by the last Document.Layout.
func (n *Node) Box() Box { return n.box }

// Parent returns the containing node, or nil for detached nodes.
func (n *Node) Parent() canvas.Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Children returns the children in order.
func (n *Node) Children() []canvas.Node {
	kids := n.kids()
	out := make([]canvas.Node, len(kids))
	for i, k := range kids {
		out[i] = k
	}
	return out
}

func (n *Node) kids() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]*Node(nil), n.children...)
}

// AppendChild moves child under n, detaching it from any previous parent.
func (n *Node) AppendChild(child canvas.Node) {
	c, ok := child.(*Node)
	if !ok {
		panic(fmt.Sprintf("scene: cannot append foreign node %T", child))
	}
	if old := c.parentNode(); old != nil {
		old.removeChild(c)
	}
	n.mu.Lock()
	n.children = append(n.children, c)
	n.mu.Unlock()

	c.mu.Lock()
	c.parent = n
	c.mu.Unlock()
}

func (n *Node) parentNode() *Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent
}

func (n *Node) removeChild(c *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, k := range n.children {
		if k == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *Node) AutoLayout() canvas.AutoLayout { return n.autoLayout }
func (n *Node) SetAutoLayout(al canvas.AutoLayout) { n.autoLayout = al }
func (n *Node) SetFill(hex string) { n.fill = hex }
func (n *Node) Fill() string { return n.fill }
func (n *Node) SetCornerRadius(r float64) { n.radius = r }
func (n *Node) CornerRadius() float64 { return n.radius }
func (n *Node) MainComponent() canvas.Component { return n.mainComponent() }
func (n *Node) Font() canvas.FontName { return n.font }
func (n *Node) Characters() string { return n.characters }
func (n *Node) FontSize() float64 { return n.fontSize }
func (n *Node) Label() string { return n.label }

func (n *Node) mainComponent() canvas.Component {
	if n.main == nil {
		return nil
	}
	return n.main
}

// Size returns the node's current size, hugging content on auto-sized axes.
func (n *Node) Size() (float64, float64) {
	switch n.typ {
	case canvas.TypeText:
		if n.fixedText {
			return n.width, n.height
		}
		return n.textWidth, n.textHeight
	case canvas.TypeConnector:
		return n.connectorSize()
	}

	al := n.autoLayout
	if al.Mode == "" || al.Mode == canvas.LayoutNone {
		return n.width, n.height
	}
	hugW, hugH := n.hugSize()
	w, h := n.width, n.height
	if al.Mode == canvas.LayoutHorizontal {
		if al.PrimarySizing != canvas.SizingFixed {
			w = hugW
		}
		if al.CounterSizing != canvas.SizingFixed {
			h = hugH
		}
	} else {
		if al.PrimarySizing != canvas.SizingFixed {
			h = hugH
		}
		if al.CounterSizing != canvas.SizingFixed {
			w = hugW
		}
	}
	return w, h
}

// Resize fixes the node to w x h. Auto layout axes switch to fixed sizing.
func (n *Node) Resize(w, h float64) {
	n.width, n.height = w, h
	switch {
	case n.typ == canvas.TypeText:
		n.fixedText = true
	case n.autoLayout.Mode != "" && n.autoLayout.Mode != canvas.LayoutNone:
		n.autoLayout.PrimarySizing = canvas.SizingFixed
		n.autoLayout.CounterSizing = canvas.SizingFixed
	}
}

func (n *Node) hugSize() (float64, float64) {
	al := n.autoLayout
	var primary, counter float64
	kids := n.kids()
	for i, c := range kids {
		cw, ch := c.Size()
		if al.Mode == canvas.LayoutVertical {
			cw, ch = ch, cw
		}
		primary += cw
		if i > 0 {
			primary += al.ItemSpacing
		}
		counter = math.Max(counter, ch)
	}
	p := al.Padding
	if al.Mode == canvas.LayoutHorizontal {
		return primary + p.Left + p.Right, counter + p.Top + p.Bottom
	}
	return counter + p.Left + p.Right, primary + p.Top + p.Bottom
}

// SetFont switches the text font. The font must be loaded before characters change.
func (n *Node) SetFont(f canvas.FontName) {
	n.font = f
	n.remeasure()
}

// SetCharacters replaces the text content. It fails when the font is not loaded.
func (n *Node) SetCharacters(s string) error {
	if !n.doc.fonts.IsLoaded(n.font) {
		return fmt.Errorf("set characters on %s: %w: %s", n.id, ErrFontNotLoaded, n.font)
	}
	n.characters = s
	n.remeasure()
	return nil
}

// SetFontSize changes the text size.
func (n *Node) SetFontSize(size float64) {
	n.fontSize = size
	n.remeasure()
}

func (n *Node) remeasure() {
	if n.typ != canvas.TypeText || !n.doc.fonts.IsLoaded(n.font) {
		return
	}
	w, h, err := n.doc.fonts.Measure(n.font, n.fontSize, n.characters)
	if err != nil {
		return
	}
	n.textWidth, n.textHeight = w, h
}

// CreateInstance places a copy of the component. The copy is detached.
func (n *Node) CreateInstance(ctx context.Context) (canvas.Instance, error) {
	if n.typ != canvas.TypeComponent {
		return nil, fmt.Errorf("create instance of %s: not a component", n.id)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inst := n.clone(canvas.TypeInstance)
	inst.main = n
	return inst, nil
}

func (n *Node) clone(typ canvas.NodeType) *Node {
	c := n.doc.newNode(typ)
	c.name = n.name
	c.width, c.height = n.width, n.height
	c.fixedText = n.fixedText
	c.constraints = n.constraints
	c.autoLayout = n.autoLayout
	c.fill = n.fill
	c.radius = n.radius
	c.font = n.font
	c.fontSize = n.fontSize
	c.characters = n.characters
	c.textWidth, c.textHeight = n.textWidth, n.textHeight
	c.main = n.main
	for _, k := range n.kids() {
		c.AppendChild(k.clone(k.typ))
	}
	return c
}

// Connect sets the endpoints of a connector.
func (n *Node) Connect(start, end canvas.Node) {
	n.start, _ = start.(*Node)
	n.end, _ = end.(*Node)
}

func (n *Node) Start() canvas.Node {
	if n.start == nil {
		return nil
	}
	return n.start
}

func (n *Node) End() canvas.Node {
	if n.end == nil {
		return nil
	}
	return n.end
}

// SetLabel sets the connector text, which needs a loaded font like any text layer.
func (n *Node) SetLabel(f canvas.FontName, label string) error {
	if !n.doc.fonts.IsLoaded(f) {
		return fmt.Errorf("label connector %s: %w: %s", n.id, ErrFontNotLoaded, f)
	}
	n.font = f
	n.label = label
	return nil
}

func (n *Node) connectorSize() (float64, float64) {
	if n.start == nil || n.end == nil {
		return 0, 0
	}
	a, b := n.start.pos, n.end.pos
	return math.Abs(b.X - a.X), math.Abs(b.Y - a.Y)
}
