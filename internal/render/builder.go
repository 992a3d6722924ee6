package render

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/debug"
	"github.com/henri123lemoine/layoutgen/internal/design"
	"github.com/henri123lemoine/layoutgen/internal/layout"
)

const maxSuggestions = 3

// Builder converts layout nodes into detached canvas nodes.
type Builder struct {
	s *Session
}

// NewBuilder returns a builder working in s.
func NewBuilder(s *Session) *Builder {
	return &Builder{s: s}
}

// Build renders n and its subtree at pos. The returned node is not attached.
func (b *Builder) Build(ctx context.Context, n *layout.Node, pos canvas.Point) (canvas.Node, error) {
	return b.build(ctx, n, pos, "$", nil)
}

// build renders n. ancestors holds the nodes on the current path, root first.
func (b *Builder) build(ctx context.Context, n *layout.Node, pos canvas.Point, path string, ancestors []*layout.Node) (canvas.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("render: %s: nil node", path)
	}
	if slices.Contains(ancestors, n) {
		return nil, fmt.Errorf("render: %s: %w", path, layout.ErrCycle)
	}
	if len(ancestors) >= b.s.opts.MaxDepth {
		return nil, fmt.Errorf("render: %s: %w", path, layout.ErrTooDeep)
	}
	b.s.nodes.Add(1)

	if n.Err != nil {
		return b.placeholder(n, pos, path), nil
	}
	switch {
	case n.Kind.IsContainer():
		return b.buildContainer(ctx, n, pos, path, append(slices.Clip(ancestors), n))
	case n.Kind == layout.KindText:
		return b.buildText(ctx, n, pos, path)
	case n.Kind.IsComponent():
		return b.buildComponent(ctx, n, pos, path)
	default:
		return b.placeholder(n, pos, path), nil
	}
}

func (b *Builder) buildContainer(ctx context.Context, n *layout.Node, pos canvas.Point, path string, ancestors []*layout.Node) (canvas.Node, error) {
	frame := b.s.canvas.CreateFrame()
	name := n.Name
	if name == "" {
		name = "Frame"
	}
	frame.SetName(name)
	frame.SetPosition(pos)
	ApplyAutoLayout(frame, n)

	kids, err := b.buildChildren(ctx, n.Children, path, ancestors)
	if err != nil {
		return nil, err
	}
	for i, k := range kids {
		frame.AppendChild(k)
		k.SetConstraints(constraintFor(n.Children[i]))
	}

	ClampMinSize(frame, n)
	return frame, nil
}

// buildChildren builds children in declared order. When concurrent, they are
// built in parallel and still returned in declared order.
func (b *Builder) buildChildren(ctx context.Context, children []*layout.Node, path string, ancestors []*layout.Node) ([]canvas.Node, error) {
	out := make([]canvas.Node, len(children))
	if !b.s.opts.Concurrent {
		for i, c := range children {
			node, err := b.build(ctx, c, canvas.Point{}, childPath(path, i), ancestors)
			if err != nil {
				return nil, err
			}
			out[i] = node
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range children {
		g.Go(func() error {
			node, err := b.build(gctx, c, canvas.Point{}, childPath(path, i), ancestors)
			if err != nil {
				return err
			}
			out[i] = node
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func childPath(path string, i int) string {
	return fmt.Sprintf("%s.children[%d]", path, i)
}

// constraintFor returns the constraint a child gets inside its container.
func constraintFor(n *layout.Node) canvas.Constraints {
	if n.Err == nil && n.Kind == layout.KindText {
		return canvas.Centered
	}
	return canvas.StretchTop
}

func (b *Builder) buildText(ctx context.Context, n *layout.Node, pos canvas.Point, path string) (canvas.Node, error) {
	regular := canvas.FontName{Family: b.s.opts.FontFamily, Style: "Regular"}
	if err := b.s.canvas.LoadFont(ctx, regular); err != nil {
		return nil, &ResourceError{Path: path, Resource: "font " + regular.String(), Err: err}
	}

	text := b.s.canvas.CreateText()
	text.SetPosition(pos)
	text.SetName(textName(n))
	text.SetFont(regular)
	if err := text.SetCharacters(n.Value); err != nil {
		return nil, &ResourceError{Path: path, Resource: "font " + regular.String(), Err: err}
	}

	s := n.Style
	if s == nil {
		return text, nil
	}
	if s.FontSize > 0 {
		text.SetFontSize(s.FontSize)
	}
	if s.IsBold() {
		bold := canvas.FontName{Family: b.s.opts.FontFamily, Style: "Bold"}
		if err := b.s.canvas.LoadFont(ctx, bold); err != nil {
			return nil, &ResourceError{Path: path, Resource: "font " + bold.String(), Err: err}
		}
		text.SetFont(bold)
	}
	if s.Color != "" {
		text.SetFill(s.Color)
	}
	return text, nil
}

func textName(n *layout.Node) string {
	if n.Name != "" {
		return n.Name
	}
	if n.Value != "" {
		return n.Value
	}
	return "Text"
}

func (b *Builder) buildComponent(ctx context.Context, n *layout.Node, pos canvas.Point, path string) (canvas.Node, error) {
	var def *design.Definition
	if b.s.opts.UseComponents {
		def = b.s.resolver.Resolve(n.Kind, n.LabelOrName(), n.State)
		if def != nil && n.State != "" && !design.HasState(def.Name, n.State) {
			b.fallbackNotice(n, def)
		}
	}
	resolved := def != nil

	if def == nil {
		name := n.LabelOrName()
		if name == "" {
			name = design.DefaultName
		}
		var err error
		def, err = b.s.registry.GetOrCreate(ctx, n.Kind, name, n.Style)
		if err != nil {
			return nil, &ResourceError{Path: path, Resource: "component " + n.Kind.String(), Err: err}
		}
	}

	inst, err := def.Component.CreateInstance(ctx)
	if err != nil {
		return nil, &ResourceError{Path: path, Resource: "instance of " + def.Name, Err: err}
	}
	inst.SetPosition(pos)
	inst.SetConstraints(canvas.StretchTop)

	// A library instance shows the node's own text, the same text that keys
	// a synthesized definition.
	if text := n.LabelOrName(); resolved && text != "" {
		if err := b.relabel(ctx, inst, text); err != nil {
			return nil, &ResourceError{Path: path, Resource: "label font", Err: err}
		}
	}

	debug.Event("component", "path", path, "kind", n.Kind.String(), "definition", def.Name, "resolved", resolved)
	return inst, nil
}

// relabel overrides the first text layer of an instance, loading its font first.
func (b *Builder) relabel(ctx context.Context, inst canvas.Instance, label string) error {
	text := canvas.FirstText(inst)
	if text == nil {
		return nil
	}
	if err := b.s.canvas.LoadFont(ctx, text.Font()); err != nil {
		return err
	}
	return text.SetCharacters(label)
}

func (b *Builder) fallbackNotice(n *layout.Node, def *design.Definition) {
	notice := Notice{
		Kind: noticeKind,
		Message: fmt.Sprintf("No %q variant found for %s %q; using %q",
			n.State, n.Kind, n.LabelOrName(), def.Name),
		Suggestions: b.s.resolver.Suggest(n.State, maxSuggestions),
	}
	b.s.notices.add(notice)
	debug.Event("variant fallback", "kind", n.Kind.String(), "state", n.State, "definition", def.Name)
}

// placeholder stands in for nodes that cannot be rendered. It is never an error.
func (b *Builder) placeholder(n *layout.Node, pos canvas.Point, path string) canvas.Node {
	b.s.placeholders.Add(1)

	typ := n.Type
	if typ == "" {
		typ = n.Kind.String()
	}
	frame := b.s.canvas.CreateFrame()
	frame.SetName("Unsupported: " + typ)
	frame.SetPosition(pos)

	if n.Err != nil {
		debug.Event("placeholder", "path", path, "type", typ, "err", n.Err)
	} else {
		debug.Event("placeholder", "path", path, "type", typ)
	}
	return frame
}
