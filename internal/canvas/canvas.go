// Package canvas defines the host design canvas capabilities the renderer depends on.
//
// The renderer never talks to a concrete canvas. It creates nodes, loads fonts and
// sets the viewport through these interfaces; internal/scene provides the in-memory
// implementation used by the CLI and the tests.
package canvas

import "context"

// NodeType identifies the primitive behind a node handle.
type NodeType string

const (
	TypeFrame     NodeType = "FRAME"
	TypeText      NodeType = "TEXT"
	TypeComponent NodeType = "COMPONENT"
	TypeInstance  NodeType = "INSTANCE"
	TypeConnector NodeType = "CONNECTOR"
	TypePage      NodeType = "PAGE"
)

// Point is a position in canvas units.
type Point struct {
	X float64
	Y float64
}

// Node is an opaque handle to a canvas node.
type Node interface {
	ID() string
	Type() NodeType
	Name() string
	SetName(name string)
	Position() Point
	SetPosition(p Point)
	Size() (width, height float64)
	Resize(width, height float64)
	Constraints() Constraints
	SetConstraints(c Constraints)
	Parent() Node
	Children() []Node
}

// Container is a node that holds ordered children and carries auto layout.
type Container interface {
	Node
	AppendChild(child Node)
	AutoLayout() AutoLayout
	SetAutoLayout(al AutoLayout)
	SetFill(hex string)
	SetCornerRadius(r float64)
}

// Text is a text layer. SetCharacters fails when the current font was not loaded.
type Text interface {
	Node
	SetFont(f FontName)
	Font() FontName
	SetCharacters(s string) error
	Characters() string
	SetFontSize(size float64)
	SetFill(hex string)
}

// Component is a reusable definition living on the page.
type Component interface {
	Container
	CreateInstance(ctx context.Context) (Instance, error)
}

// Instance is a placed copy of a component.
type Instance interface {
	Container
	MainComponent() Component
}

// Connector is a directional arrow between two nodes.
type Connector interface {
	Node
	Connect(start, end Node)
	Start() Node
	End() Node
	// SetLabel fails when the connector font was not loaded.
	SetLabel(font FontName, label string) error
	Label() string
}

// Canvas is the host API consumed by the renderer.
type Canvas interface {
	CreateFrame() Container
	CreateText() Text
	CreateComponent() Component
	CreateConnector() Connector

	// LoadFont makes a font usable by text layers. It may suspend.
	LoadFont(ctx context.Context, f FontName) error

	// Page is the root every rendered tree is attached to.
	Page() Container

	// Components lists components on the page in discovery order.
	Components() []Component

	ScrollAndZoomIntoView(nodes []Node)
	SetSelection(nodes []Node)
}

// FontName names a family and style, for example Inter / Regular.
type FontName struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

func (f FontName) String() string {
	return f.Family + " " + f.Style
}

// FirstText returns the first text layer below n in depth-first order.
func FirstText(n Node) Text {
	for _, c := range n.Children() {
		if t, ok := c.(Text); ok && c.Type() == TypeText {
			return t
		}
		if t := FirstText(c); t != nil {
			return t
		}
	}
	return nil
}
