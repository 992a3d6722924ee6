package scene

import (
	"encoding/json"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
)

// Snapshot is a serializable view of a node and its subtree.
type Snapshot struct {
	ID            string              `json:"id"`
	Type          canvas.NodeType     `json:"type"`
	Name          string              `json:"name"`
	Box           Box                 `json:"box"`
	Constraints   *canvas.Constraints `json:"constraints,omitempty"`
	AutoLayout    *canvas.AutoLayout  `json:"autoLayout,omitempty"`
	Fill          string              `json:"fill,omitempty"`
	CornerRadius  float64             `json:"cornerRadius,omitempty"`
	Characters    string              `json:"characters,omitempty"`
	Font          *canvas.FontName    `json:"font,omitempty"`
	FontSize      float64             `json:"fontSize,omitempty"`
	MainComponent string              `json:"mainComponent,omitempty"`
	Start         string              `json:"start,omitempty"`
	End           string              `json:"end,omitempty"`
	Label         string              `json:"label,omitempty"`
	Children      []Snapshot          `json:"children,omitempty"`
}

// Snapshot lays out the document and captures the whole page.
func (d *Document) Snapshot() Snapshot {
	d.Layout()
	return d.page.snapshot()
}

// MarshalJSON encodes the page snapshot.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Snapshot())
}

func (n *Node) snapshot() Snapshot {
	s := Snapshot{
		ID:           n.id,
		Type:         n.typ,
		Name:         n.name,
		Box:          n.box,
		Fill:         n.fill,
		CornerRadius: n.radius,
	}
	if n.constraints != (canvas.Constraints{}) {
		c := n.constraints
		s.Constraints = &c
	}
	if n.autoLayout.Mode != "" && n.autoLayout.Mode != canvas.LayoutNone {
		al := n.autoLayout
		s.AutoLayout = &al
	}
	switch n.typ {
	case canvas.TypeText:
		f := n.font
		s.Font = &f
		s.FontSize = n.fontSize
		s.Characters = n.characters
	case canvas.TypeInstance:
		if n.main != nil {
			s.MainComponent = n.main.name
		}
	case canvas.TypeConnector:
		if n.start != nil && n.end != nil {
			s.Start, s.End = n.start.id, n.end.id
		}
		s.Label = n.label
	}
	for _, k := range n.kids() {
		s.Children = append(s.Children, k.snapshot())
	}
	return s
}

// Walk visits n and every descendant depth-first.
func Walk(n canvas.Node, fn func(canvas.Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}
