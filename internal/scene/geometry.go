package scene

import (
	"math"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
)

// Box is an absolute rectangle on the page.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Bounds returns the smallest box containing every page child.
func (d *Document) Bounds() Box {
	kids := d.page.kids()
	if len(kids) == 0 {
		return Box{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, k := range kids {
		b := k.box
		minX = math.Min(minX, b.X)
		minY = math.Min(minY, b.Y)
		maxX = math.Max(maxX, b.X+b.W)
		maxY = math.Max(maxY, b.Y+b.H)
	}
	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Layout computes the absolute box of every node on the page.
// Auto layout children are placed by padding, spacing and alignment; a child
// constrained to STRETCH on the counter axis fills the parent's inner size, and
// one constrained to CENTER is centered on it.
func (d *Document) Layout() {
	var connectors []*Node
	for _, k := range d.page.kids() {
		if k.typ == canvas.TypeConnector {
			connectors = append(connectors, k)
			continue
		}
		w, h := k.Size()
		k.place(Box{X: k.pos.X, Y: k.pos.Y, W: w, H: h})
	}
	for _, c := range connectors {
		c.box = c.connectorBox()
	}
}

func (n *Node) place(b Box) {
	n.box = b
	kids := n.kids()
	if len(kids) == 0 {
		return
	}

	al := n.autoLayout
	if al.Mode == "" || al.Mode == canvas.LayoutNone {
		for _, k := range kids {
			w, h := k.Size()
			k.place(Box{X: b.X + k.pos.X, Y: b.Y + k.pos.Y, W: w, H: h})
		}
		return
	}

	p := al.Padding
	horizontal := al.Mode == canvas.LayoutHorizontal
	innerW := b.W - p.Left - p.Right
	innerH := b.H - p.Top - p.Bottom
	innerPrimary, innerCounter := innerH, innerW
	if horizontal {
		innerPrimary, innerCounter = innerW, innerH
	}

	type span struct{ primary, counter float64 }
	spans := make([]span, len(kids))
	var used float64
	for i, k := range kids {
		w, h := k.Size()
		s := span{primary: h, counter: w}
		counterConstraint := k.constraints.Horizontal
		if horizontal {
			s = span{primary: w, counter: h}
			counterConstraint = k.constraints.Vertical
		}
		if counterConstraint == canvas.ConstraintStretch {
			s.counter = innerCounter
		}
		spans[i] = s
		used += s.primary
	}

	gap := al.ItemSpacing
	total := used + gap*float64(len(kids)-1)
	var offset float64
	switch al.PrimaryAlign {
	case canvas.AlignCenter:
		offset = (innerPrimary - total) / 2
	case canvas.AlignMax:
		offset = innerPrimary - total
	case canvas.AlignSpaceBetween:
		if len(kids) > 1 {
			gap = (innerPrimary - used) / float64(len(kids)-1)
		}
	}

	for i, k := range kids {
		s := spans[i]
		counterConstraint := k.constraints.Horizontal
		if horizontal {
			counterConstraint = k.constraints.Vertical
		}
		var cross float64
		switch {
		case counterConstraint == canvas.ConstraintCenter || al.CounterAlign == canvas.AlignCenter:
			cross = (innerCounter - s.counter) / 2
		case counterConstraint == canvas.ConstraintMax || al.CounterAlign == canvas.AlignMax:
			cross = innerCounter - s.counter
		}

		var child Box
		if horizontal {
			child = Box{X: b.X + p.Left + offset, Y: b.Y + p.Top + cross, W: s.primary, H: s.counter}
		} else {
			child = Box{X: b.X + p.Left + cross, Y: b.Y + p.Top + offset, W: s.counter, H: s.primary}
		}
		k.place(child)
		offset += s.primary + gap
	}
}

func (n *Node) connectorBox() Box {
	if n.start == nil || n.end == nil {
		return Box{}
	}
	a, b := n.start.box, n.end.box
	x1, y1 := a.X+a.W, a.Y+a.H/2
	x2, y2 := b.X, b.Y+b.H/2
	return Box{X: math.Min(x1, x2), Y: math.Min(y1, y2), W: math.Abs(x2 - x1), H: math.Abs(y2 - y1)}
}

// Endpoints returns the start and end points of a connector after Layout:
// the middle of the right edge of the start node and of the left edge of the end node.
func (n *Node) Endpoints() (canvas.Point, canvas.Point) {
	if n.start == nil || n.end == nil {
		return canvas.Point{}, canvas.Point{}
	}
	a, b := n.start.box, n.end.box
	return canvas.Point{X: a.X + a.W, Y: a.Y + a.H/2}, canvas.Point{X: b.X, Y: b.Y + b.H/2}
}
