package render

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/layout"
	"github.com/henri123lemoine/layoutgen/internal/scene"
)

func parse(t *testing.T, src string) *layout.Document {
	t.Helper()
	doc, err := layout.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func withComponents(t *testing.T, names ...string) *scene.Document {
	t.Helper()
	doc := scene.New()
	for _, name := range names {
		_, err := doc.AddComponent(context.Background(), name)
		require.NoError(t, err)
	}
	return doc
}

func TestRenderSingleScreen(t *testing.T) {
	doc := scene.New()
	res, err := Render(context.Background(), doc, parse(t, `{
		"type": "screen", "name": "S1", "layout": "horizontal",
		"items": [{"type": "text", "value": "Hi"}]
	}`), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, res.Roots, 1)
	root := res.Roots[0].(canvas.Container)
	assert.Equal(t, "S1", root.Name())
	assert.Equal(t, canvas.Point{X: 100, Y: 100}, root.Position())

	al := root.AutoLayout()
	assert.Equal(t, canvas.LayoutHorizontal, al.Mode)
	assert.Equal(t, canvas.Uniform(16), al.Padding)
	assert.Equal(t, 12.0, al.ItemSpacing)

	kids := root.Children()
	require.Len(t, kids, 1)
	text, ok := kids[0].(canvas.Text)
	require.True(t, ok)
	assert.Equal(t, canvas.TypeText, text.Type())
	assert.Equal(t, "Hi", text.Characters())
	assert.Equal(t, canvas.Centered, text.Constraints())

	assert.Equal(t, []canvas.Node{root}, doc.Page().Children())
	assert.Equal(t, res.Roots, doc.Viewport())
	assert.Equal(t, res.Roots, doc.Selection())
	assert.Equal(t, 2, res.Nodes)
	assert.Empty(t, res.Notices)
}

func TestRenderHoverFallback(t *testing.T) {
	doc := withComponents(t, "Button", "Button/Primary")
	opts := DefaultOptions()
	opts.UseComponents = true

	res, err := Render(context.Background(), doc, parse(t,
		`{"type": "button", "label": "Go", "state": "hover"}`), opts)
	require.NoError(t, err)

	require.Len(t, res.Roots, 1)
	inst, ok := res.Roots[0].(canvas.Instance)
	require.True(t, ok)
	assert.Equal(t, "Button/Primary", inst.MainComponent().Name())
	assert.Equal(t, canvas.StretchTop, inst.Constraints())
	assert.Equal(t, "Go", canvas.FirstText(inst).Characters())

	require.Len(t, res.Notices, 1)
	assert.Equal(t, "notice", res.Notices[0].Kind)
	assert.Contains(t, res.Notices[0].Message, "hover")
	assert.Contains(t, res.Notices[0].Message, "Button/Primary")
	assert.Zero(t, res.Synthesized)
}

func TestRenderStateIsNotMatchedBySubstring(t *testing.T) {
	doc := withComponents(t, "Button")
	opts := DefaultOptions()
	opts.UseComponents = true

	res, err := Render(context.Background(), doc, parse(t,
		`{"type": "button", "label": "Go", "state": "on"}`), opts)
	require.NoError(t, err)
	assert.Equal(t, "Button", res.Roots[0].(canvas.Instance).MainComponent().Name())
	require.Len(t, res.Notices, 1)
	assert.Contains(t, res.Notices[0].Message, `"on"`)
}

func TestRenderRelabelsNameKeyedComponent(t *testing.T) {
	doc := withComponents(t, "Card")
	opts := DefaultOptions()
	opts.UseComponents = true

	res, err := Render(context.Background(), doc, parse(t,
		`{"type": "card", "name": "Profile"}`), opts)
	require.NoError(t, err)
	inst := res.Roots[0].(canvas.Instance)
	assert.Equal(t, "Card", inst.MainComponent().Name())
	assert.Equal(t, "Profile", canvas.FirstText(inst).Characters())
	assert.Equal(t, "Card", canvas.FirstText(inst.MainComponent()).Characters())
}

func TestRenderMatchingStateHasNoNotice(t *testing.T) {
	doc := withComponents(t, "Button", "Button / Hover")
	opts := DefaultOptions()
	opts.UseComponents = true

	res, err := Render(context.Background(), doc, parse(t,
		`{"type": "button", "label": "Go", "state": "HOVER"}`), opts)
	require.NoError(t, err)
	assert.Equal(t, "Button / Hover", res.Roots[0].(canvas.Instance).MainComponent().Name())
	assert.Empty(t, res.Notices)
}

func TestRenderMultiScreen(t *testing.T) {
	doc := scene.New()
	res, err := Render(context.Background(), doc, parse(t, `{
		"type": "multi-screen",
		"screens": [
			{"type": "screen", "name": "A"},
			{"type": "screen", "name": "B"},
			{"type": "screen"}
		],
		"flows": ["next", "skip"]
	}`), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, res.Roots, 3)
	for i, x := range []float64{100, 600, 1100} {
		assert.Equal(t, canvas.Point{X: x, Y: 100}, res.Roots[i].Position())
	}
	assert.Equal(t, "A", res.Roots[0].Name())
	assert.Equal(t, "B", res.Roots[1].Name())
	assert.Equal(t, "Screen 3", res.Roots[2].Name())

	require.Len(t, res.Connectors, 2)
	assert.Equal(t, "next", res.Connectors[0].Label())
	assert.Equal(t, "skip", res.Connectors[1].Label())
	assert.Same(t, res.Roots[0], res.Connectors[0].Start())
	assert.Same(t, res.Roots[1], res.Connectors[0].End())
	assert.Same(t, res.Roots[1], res.Connectors[1].Start())
	assert.Same(t, res.Roots[2], res.Connectors[1].End())

	assert.Equal(t, res.Roots, doc.Selection())
	assert.Len(t, doc.Page().Children(), 5)
}

func TestRenderFlowWithMissingLabels(t *testing.T) {
	res, err := Render(context.Background(), scene.New(), parse(t, `{
		"type": "multi-screen",
		"screens": [{"type": "screen"}, {"type": "screen"}, {"type": "screen"}],
		"flows": ["only"]
	}`), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Connectors, 2)
	assert.Equal(t, "only", res.Connectors[0].Label())
	assert.Empty(t, res.Connectors[1].Label())
}

func TestRenderNodeCountMatchesLayout(t *testing.T) {
	src := `{
		"type": "screen",
		"items": [
			{"type": "text", "value": "Title", "style": {"fontWeight": "bold", "fontSize": 24}},
			{"type": "frame", "layout": "horizontal", "children": [
				{"type": "button", "label": "OK"},
				{"type": "button", "label": "OK"},
				{"type": "carousel"}
			]},
			{"type": "text"},
			{"type": "multi-screen", "screens": []},
			{"type": "card"},
			{"type": "input", "name": "Email"},
			{"type": "header"}
		]
	}`
	ld := parse(t, src)

	for _, concurrent := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Concurrent = concurrent
		res, err := Render(context.Background(), scene.New(), ld, opts)
		require.NoError(t, err)

		assert.Equal(t, layout.Count(ld.Root), res.Nodes)
		assert.Equal(t, 3, res.Placeholders)
		assert.Equal(t, 4, res.Synthesized)
	}
}

func TestRenderConcurrentKeepsOrder(t *testing.T) {
	src := `{"type": "screen", "items": [
		{"type": "text", "value": "0"}, {"type": "button", "label": "1"},
		{"type": "text", "value": "2"}, {"type": "frame", "name": "3"},
		{"type": "text", "value": "4"}, {"type": "card", "name": "5"},
		{"type": "text", "value": "6"}, {"type": "wat"}
	]}`
	opts := DefaultOptions()
	opts.Concurrent = true
	res, err := Render(context.Background(), scene.New(), parse(t, src), opts)
	require.NoError(t, err)

	kids := res.Roots[0].Children()
	require.Len(t, kids, 8)
	want := []string{"0", "Button/1", "2", "3", "4", "Card/5", "6", "Unsupported: wat"}
	for i, k := range kids {
		name := k.Name()
		if inst, ok := k.(canvas.Instance); ok && k.Type() == canvas.TypeInstance {
			name = inst.MainComponent().Name()
		}
		assert.Equal(t, want[i], name, "child %d", i)
	}
	assert.Equal(t, canvas.StretchTop, kids[3].Constraints())
	assert.Equal(t, canvas.StretchTop, kids[7].Constraints())
}

func TestRenderTextStyle(t *testing.T) {
	doc := scene.New()
	res, err := Render(context.Background(), doc, parse(t, `{"type": "text", "value": "Hello",
		"style": {"fontWeight": "bold", "fontSize": 32, "color": "#FF0000"}}`), DefaultOptions())
	require.NoError(t, err)

	text := res.Roots[0].(*scene.Node)
	assert.Equal(t, canvas.FontName{Family: "Inter", Style: "Bold"}, text.Font())
	assert.Equal(t, 32.0, text.FontSize())
	assert.Equal(t, "#FF0000", text.Fill())
	assert.True(t, doc.Fonts().IsLoaded(text.Font()))

	res, err = Render(context.Background(), doc, parse(t, `{"type": "text", "value": "x",
		"style": {"fontWeight": "600"}}`), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Regular", res.Roots[0].(canvas.Text).Font().Style)
}

func TestRenderReusesSynthesizedComponents(t *testing.T) {
	doc := withComponents(t, "Button/Primary")
	res, err := Render(context.Background(), doc, parse(t, `{"type": "frame", "items": [
		{"type": "button", "label": "Go"},
		{"type": "button", "label": "Go", "style": {"backgroundColor": "#000000"}},
		{"type": "button"}
	]}`), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Synthesized)
	kids := res.Roots[0].Children()
	a := kids[0].(canvas.Instance).MainComponent()
	b := kids[1].(canvas.Instance).MainComponent()
	c := kids[2].(canvas.Instance).MainComponent()
	assert.Same(t, a, b)
	assert.Equal(t, "Button/Go", a.Name())
	assert.Equal(t, "Button", c.Name())
	assert.Len(t, doc.Components(), 3)
}

func TestRenderMinSizeClamp(t *testing.T) {
	res, err := Render(context.Background(), scene.New(), parse(t, `{"type": "screen",
		"minWidth": 375, "minHeight": 10,
		"items": [{"type": "text", "value": "Hi"}]}`), DefaultOptions())
	require.NoError(t, err)

	root := res.Roots[0].(canvas.Container)
	w, h := root.Size()
	assert.Equal(t, 375.0, w)
	assert.Greater(t, h, 32.0)
}

func TestRenderFailureAttachesNothing(t *testing.T) {
	doc := scene.New()
	opts := DefaultOptions()
	opts.FontFamily = "Missing"

	_, err := Render(context.Background(), doc, parse(t, `{"type": "screen", "items": [
		{"type": "frame"}, {"type": "text", "value": "boom"}
	]}`), opts)

	var rerr *ResourceError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "$.children[1]", rerr.Path)
	assert.ErrorIs(t, err, scene.ErrFontUnavailable)
	assert.Empty(t, doc.Page().Children())
	assert.Empty(t, doc.Selection())
}

func TestRenderRejectsInvalidTrees(t *testing.T) {
	root := &layout.Node{Type: "screen", Kind: layout.KindScreen}
	root.Children = []*layout.Node{root}
	_, err := Render(context.Background(), scene.New(), &layout.Document{Root: root}, DefaultOptions())
	assert.ErrorIs(t, err, layout.ErrCycle)

	deep := &layout.Node{Type: "frame", Kind: layout.KindFrame}
	top := deep
	for range 5 {
		top = &layout.Node{Type: "frame", Kind: layout.KindFrame, Children: []*layout.Node{top}}
	}
	opts := DefaultOptions()
	opts.MaxDepth = 3
	doc := scene.New()
	_, err = Render(context.Background(), doc, &layout.Document{Root: top}, opts)
	assert.ErrorIs(t, err, layout.ErrTooDeep)
	assert.Empty(t, doc.Page().Children())

	_, err = Render(context.Background(), scene.New(), &layout.Document{}, DefaultOptions())
	assert.Error(t, err)
}

func TestBuilderGuardsPath(t *testing.T) {
	s := NewSession(scene.New(), DefaultOptions())
	b := NewBuilder(s)

	root := &layout.Node{Type: "frame", Kind: layout.KindFrame}
	root.Children = []*layout.Node{{Type: "frame", Kind: layout.KindFrame, Children: []*layout.Node{root}}}
	_, err := b.Build(context.Background(), root, canvas.Point{})
	assert.ErrorIs(t, err, layout.ErrCycle)
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Render(ctx, scene.New(), parse(t, `{"type": "screen"}`), DefaultOptions())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestResolveAutoLayoutPadding(t *testing.T) {
	f := layout.Float
	tests := []struct {
		name string
		node layout.Node
		want canvas.Sides
	}{
		{"defaults", layout.Node{}, canvas.Uniform(16)},
		{"uniform", layout.Node{Padding: f(8)}, canvas.Uniform(8)},
		{"top wins", layout.Node{Padding: f(8), PaddingTop: f(1)}, canvas.Sides{Top: 1, Right: 8, Bottom: 8, Left: 8}},
		{"right wins", layout.Node{Padding: f(8), PaddingRight: f(2)}, canvas.Sides{Top: 8, Right: 2, Bottom: 8, Left: 8}},
		{"bottom wins", layout.Node{Padding: f(8), PaddingBottom: f(3)}, canvas.Sides{Top: 8, Right: 8, Bottom: 3, Left: 8}},
		{"left wins", layout.Node{Padding: f(8), PaddingLeft: f(4)}, canvas.Sides{Top: 8, Right: 8, Bottom: 8, Left: 4}},
		{"side over default", layout.Node{PaddingLeft: f(0)}, canvas.Sides{Top: 16, Right: 16, Bottom: 16, Left: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAutoLayout(&tt.node).Padding)
		})
	}
}

func TestResolveAutoLayoutDeclared(t *testing.T) {
	al := ResolveAutoLayout(&layout.Node{})
	assert.Equal(t, canvas.LayoutVertical, al.Mode)
	assert.Equal(t, canvas.AlignMin, al.PrimaryAlign)
	assert.Equal(t, canvas.AlignMin, al.CounterAlign)
	assert.Equal(t, canvas.SizingAuto, al.PrimarySizing)
	assert.Equal(t, canvas.SizingAuto, al.CounterSizing)

	al = ResolveAutoLayout(&layout.Node{
		Layout:                "horizontal",
		ItemSpacing:           layout.Float(4),
		PrimaryAxisAlignItems: "SPACE_BETWEEN",
		CounterAxisAlignItems: "CENTER",
		PrimaryAxisSizingMode: "FIXED",
	})
	assert.Equal(t, canvas.LayoutHorizontal, al.Mode)
	assert.Equal(t, 4.0, al.ItemSpacing)
	assert.Equal(t, canvas.AlignSpaceBetween, al.PrimaryAlign)
	assert.Equal(t, canvas.AlignCenter, al.CounterAlign)
	assert.Equal(t, canvas.SizingFixed, al.PrimarySizing)
	assert.Equal(t, canvas.SizingAuto, al.CounterSizing)
}

func TestResolveAutoLayoutIgnoresCase(t *testing.T) {
	al := ResolveAutoLayout(&layout.Node{
		PrimaryAxisAlignItems: "center",
		CounterAxisAlignItems: "max",
		PrimaryAxisSizingMode: "fixed",
		CounterAxisSizingMode: "hug",
	})
	assert.Equal(t, canvas.AlignCenter, al.PrimaryAlign)
	assert.Equal(t, canvas.AlignMax, al.CounterAlign)
	assert.Equal(t, canvas.SizingFixed, al.PrimarySizing)
	assert.Equal(t, canvas.SizingAuto, al.CounterSizing)
}
