// Package layout describes the declarative UI documents produced by a generator.
package layout

// Kind identifies the variant of a Node.
type Kind int

const (
	// KindUnsupported covers unknown types and nodes that failed schema checks.
	KindUnsupported Kind = iota
	KindScreen
	KindFrame
	KindText
	KindButton
	KindCard
	KindHeader
	KindInput
	KindMultiScreen
)

var kindNames = map[Kind]string{
	KindUnsupported: "unsupported",
	KindScreen:      "screen",
	KindFrame:       "frame",
	KindText:        "text",
	KindButton:      "button",
	KindCard:        "card",
	KindHeader:      "header",
	KindInput:       "input",
	KindMultiScreen: "multi-screen",
}

// ParseKind maps a wire type tag to a Kind. Matching is exact.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if k != KindUnsupported && name == s {
			return k
		}
	}
	return KindUnsupported
}

// String returns the wire tag of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unsupported"
}

// IsContainer reports whether nodes of this kind hold children.
func (k Kind) IsContainer() bool {
	return k == KindScreen || k == KindFrame
}

// IsComponent reports whether nodes of this kind render as component instances.
func (k Kind) IsComponent() bool {
	switch k {
	case KindButton, KindCard, KindHeader, KindInput:
		return true
	}
	return false
}

// Style is the optional visual override bag of a leaf node.
// Zero values mean "not declared".
type Style struct {
	FontSize        float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontWeight      string  `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	Color           string  `json:"color,omitempty" yaml:"color,omitempty"`
	Radius          float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
}

// IsBold reports whether the style asks for a bold weight.
func (s *Style) IsBold() bool {
	return s != nil && s.FontWeight == "bold"
}

// Node is one element of a layout document.
type Node struct {
	// Type is the raw wire tag, kept for diagnostics on unsupported nodes.
	Type string
	Kind Kind

	Name  string
	Label string
	Value string
	State string

	// Container properties
	Layout                string
	Children              []*Node
	// ChildField is the wire field Children were read from, "children" when empty.
	ChildField            string
	MinWidth              *float64
	MinHeight             *float64
	Padding               *float64
	PaddingLeft           *float64
	PaddingRight          *float64
	PaddingTop            *float64
	PaddingBottom         *float64
	ItemSpacing           *float64
	PrimaryAxisAlignItems string
	CounterAxisAlignItems string
	PrimaryAxisSizingMode string
	CounterAxisSizingMode string

	Style *Style

	// Multi-screen properties
	Screens []*Node
	Flows   []string

	// Err is set when the node was degraded during ingestion.
	Err error
}

// LabelOrName returns the text a component node should display or be keyed by.
func (n *Node) LabelOrName() string {
	if n.Label != "" {
		return n.Label
	}
	return n.Name
}

// Document is a parsed generator result.
type Document struct {
	Root *Node
}

// IsMultiScreen reports whether the document describes a flow of screens.
func (d *Document) IsMultiScreen() bool {
	return d != nil && d.Root != nil && d.Root.Kind == KindMultiScreen
}

// Count returns the number of nodes reachable through declared child fields,
// including screens of a multi-screen root but not the multi-screen node itself.
func Count(n *Node) int {
	if n == nil {
		return 0
	}
	if n.Kind == KindMultiScreen {
		total := 0
		for _, s := range n.Screens {
			total += Count(s)
		}
		return total
	}
	total := 1
	for _, c := range n.Children {
		total += Count(c)
	}
	return total
}

// Float returns a pointer to v, for building nodes in code.
func Float(v float64) *float64 {
	return &v
}
