package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// wireNode holds the scalar fields shared by every wire format.
type wireNode struct {
	Type                  string   `json:"type" yaml:"type"`
	Name                  string   `json:"name" yaml:"name"`
	Label                 string   `json:"label" yaml:"label"`
	Value                 *string  `json:"value" yaml:"value"`
	State                 string   `json:"state" yaml:"state"`
	Layout                string   `json:"layout" yaml:"layout"`
	MinWidth              *float64 `json:"minWidth" yaml:"minWidth"`
	MinHeight             *float64 `json:"minHeight" yaml:"minHeight"`
	Padding               *float64 `json:"padding" yaml:"padding"`
	PaddingLeft           *float64 `json:"paddingLeft" yaml:"paddingLeft"`
	PaddingRight          *float64 `json:"paddingRight" yaml:"paddingRight"`
	PaddingTop            *float64 `json:"paddingTop" yaml:"paddingTop"`
	PaddingBottom         *float64 `json:"paddingBottom" yaml:"paddingBottom"`
	ItemSpacing           *float64 `json:"itemSpacing" yaml:"itemSpacing"`
	PrimaryAxisAlignItems string   `json:"primaryAxisAlignItems" yaml:"primaryAxisAlignItems"`
	CounterAxisAlignItems string   `json:"counterAxisAlignItems" yaml:"counterAxisAlignItems"`
	PrimaryAxisSizingMode string   `json:"primaryAxisSizingMode" yaml:"primaryAxisSizingMode"`
	CounterAxisSizingMode string   `json:"counterAxisSizingMode" yaml:"counterAxisSizingMode"`
	Style                 *Style   `json:"style" yaml:"style"`
	Flows                 []string `json:"flows" yaml:"flows"`
}

type jsonNode struct {
	wireNode
	Items      []json.RawMessage `json:"items"`
	Components []json.RawMessage `json:"components"`
	Children   []json.RawMessage `json:"children"`
	Screens    []json.RawMessage `json:"screens"`
}

type yamlNode struct {
	wireNode   `yaml:",inline"`
	Items      []yaml.Node `yaml:"items"`
	Components []yaml.Node `yaml:"components"`
	Children   []yaml.Node `yaml:"children"`
	Screens    []yaml.Node `yaml:"screens"`
}

// Parse decodes a JSON layout document no deeper than DefaultMaxDepth.
// Malformed nodes below the root are degraded to unsupported placeholders
// carrying a SchemaError.
func Parse(data []byte) (*Document, error) {
	return ParseDepth(data, DefaultMaxDepth)
}

// ParseDepth is Parse with an explicit depth bound. Decoding stops with
// ErrTooDeep as soon as a node lies deeper than maxDepth.
func ParseDepth(data []byte, maxDepth int) (*Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	d := decoder{maxDepth: depthLimit(maxDepth)}
	root, err := d.decodeJSON(json.RawMessage(data), "$", 1)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root}, nil
}

// ParseYAML decodes a YAML layout document using the same field names as JSON.
func ParseYAML(data []byte) (*Document, error) {
	return ParseYAMLDepth(data, DefaultMaxDepth)
}

// ParseYAMLDepth is ParseYAML with an explicit depth bound.
func ParseYAMLDepth(data []byte, maxDepth int) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("layout: invalid YAML: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotObject
	}
	d := decoder{maxDepth: depthLimit(maxDepth)}
	n, err := d.decodeYAML(root, "$", 1)
	if err != nil {
		return nil, err
	}
	return &Document{Root: n}, nil
}

func depthLimit(maxDepth int) int {
	if maxDepth <= 0 {
		return DefaultMaxDepth
	}
	return maxDepth
}

// decoder walks a document top down. The depth check runs before a node's
// raw bytes are decoded.
type decoder struct {
	maxDepth int
}

func (d decoder) tooDeep(path string, depth int) error {
	if depth > d.maxDepth {
		return fmt.Errorf("%w (%d) at %s", ErrTooDeep, d.maxDepth, path)
	}
	return nil
}

func (d decoder) decodeJSON(raw json.RawMessage, path string, depth int) (*Node, error) {
	if err := d.tooDeep(path, depth); err != nil {
		return nil, err
	}
	var w jsonNode
	if err := json.Unmarshal(raw, &w); err != nil {
		return degraded(path, w.Type, w.Name, "undecodable node", err), nil
	}
	n := build(w.wireNode, path, depth == 1)
	if n.Err != nil {
		return n, nil
	}

	field, children := "items", w.Items
	if children == nil {
		field, children = "components", w.Components
	}
	if children == nil {
		field, children = "children", w.Children
	}
	if children != nil {
		n.ChildField = field
	}
	for i, c := range children {
		child, err := d.decodeJSON(c, childPath(path, field, i), depth+1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	for i, s := range w.Screens {
		screen, err := d.decodeJSON(s, childPath(path, "screens", i), depth+1)
		if err != nil {
			return nil, err
		}
		n.Screens = append(n.Screens, screen)
	}
	return n, nil
}

func (d decoder) decodeYAML(raw *yaml.Node, path string, depth int) (*Node, error) {
	if err := d.tooDeep(path, depth); err != nil {
		return nil, err
	}
	var w yamlNode
	if err := raw.Decode(&w); err != nil {
		return degraded(path, w.Type, w.Name, "undecodable node", err), nil
	}
	n := build(w.wireNode, path, depth == 1)
	if n.Err != nil {
		return n, nil
	}

	field, children := "items", w.Items
	if children == nil {
		field, children = "components", w.Components
	}
	if children == nil {
		field, children = "children", w.Children
	}
	if children != nil {
		n.ChildField = field
	}
	for i := range children {
		child, err := d.decodeYAML(&children[i], childPath(path, field, i), depth+1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	for i := range w.Screens {
		screen, err := d.decodeYAML(&w.Screens[i], childPath(path, "screens", i), depth+1)
		if err != nil {
			return nil, err
		}
		n.Screens = append(n.Screens, screen)
	}
	return n, nil
}

func childPath(path, field string, i int) string {
	return path + "." + field + "[" + strconv.Itoa(i) + "]"
}

// build converts the scalar wire fields and applies node-level schema checks.
func build(w wireNode, path string, root bool) *Node {
	if w.Type == "" {
		return degraded(path, "", w.Name, "missing type", nil)
	}

	n := &Node{
		Type:                  w.Type,
		Kind:                  ParseKind(w.Type),
		Name:                  w.Name,
		Label:                 w.Label,
		State:                 w.State,
		Layout:                w.Layout,
		MinWidth:              w.MinWidth,
		MinHeight:             w.MinHeight,
		Padding:               w.Padding,
		PaddingLeft:           w.PaddingLeft,
		PaddingRight:          w.PaddingRight,
		PaddingTop:            w.PaddingTop,
		PaddingBottom:         w.PaddingBottom,
		ItemSpacing:           w.ItemSpacing,
		PrimaryAxisAlignItems: w.PrimaryAxisAlignItems,
		CounterAxisAlignItems: w.CounterAxisAlignItems,
		PrimaryAxisSizingMode: w.PrimaryAxisSizingMode,
		CounterAxisSizingMode: w.CounterAxisSizingMode,
		Style:                 w.Style,
		Flows:                 w.Flows,
	}
	if w.Value != nil {
		n.Value = *w.Value
	}

	switch {
	case n.Kind == KindText && w.Value == nil:
		return degraded(path, w.Type, w.Name, "text node has no value", nil)
	case n.Kind == KindMultiScreen && !root:
		return degraded(path, w.Type, w.Name, "multi-screen is only valid at the document root", nil)
	}

	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"minWidth", w.MinWidth},
		{"minHeight", w.MinHeight},
		{"padding", w.Padding},
		{"paddingLeft", w.PaddingLeft},
		{"paddingRight", w.PaddingRight},
		{"paddingTop", w.PaddingTop},
		{"paddingBottom", w.PaddingBottom},
		{"itemSpacing", w.ItemSpacing},
	} {
		if f.v != nil && *f.v < 0 {
			return degraded(path, w.Type, w.Name, f.name+" must not be negative", nil)
		}
	}
	return n
}

func degraded(path, typ, name, reason string, err error) *Node {
	return &Node{
		Type: typ,
		Kind: KindUnsupported,
		Name: name,
		Err:  &SchemaError{Path: path, Type: typ, Reason: reason, Err: err},
	}
}
