package layout

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScreen(t *testing.T) {
	doc, err := Parse([]byte(`{
		"type": "screen",
		"name": "S1",
		"layout": "horizontal",
		"paddingLeft": 4,
		"items": [
			{"type": "text", "value": "Hi", "style": {"fontSize": 24, "fontWeight": "bold"}},
			{"type": "button", "label": "Go", "state": "hover"}
		]
	}`))
	require.NoError(t, err)

	root := doc.Root
	assert.Equal(t, KindScreen, root.Kind)
	assert.Equal(t, "S1", root.Name)
	assert.Equal(t, "horizontal", root.Layout)
	require.NotNil(t, root.PaddingLeft)
	assert.Equal(t, 4.0, *root.PaddingLeft)
	assert.Nil(t, root.Padding)
	require.Len(t, root.Children, 2)

	text := root.Children[0]
	assert.Equal(t, KindText, text.Kind)
	assert.Equal(t, "Hi", text.Value)
	assert.True(t, text.Style.IsBold())
	assert.Equal(t, 24.0, text.Style.FontSize)

	button := root.Children[1]
	assert.Equal(t, KindButton, button.Kind)
	assert.Equal(t, "Go", button.LabelOrName())
	assert.Equal(t, "hover", button.State)
}

func TestParseChildFieldPrecedence(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{
			name: "items wins over components",
			json: `{"type":"frame","items":[{"type":"text","value":"a"}],"components":[{"type":"text","value":"b"}]}`,
			want: []string{"a"},
		},
		{
			name: "components wins over children",
			json: `{"type":"frame","components":[{"type":"text","value":"b"}],"children":[{"type":"text","value":"c"}]}`,
			want: []string{"b"},
		},
		{
			name: "children alone",
			json: `{"type":"frame","children":[{"type":"text","value":"c"}]}`,
			want: []string{"c"},
		},
		{
			name: "empty items still wins",
			json: `{"type":"frame","items":[],"children":[{"type":"text","value":"c"}]}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.json))
			require.NoError(t, err)
			var got []string
			for _, c := range doc.Root.Children {
				got = append(got, c.Value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDegradesMalformedNodes(t *testing.T) {
	doc, err := Parse([]byte(`{
		"type": "frame",
		"items": [
			{"type": "text"},
			{"type": "frame", "padding": "wide"},
			{"value": "no type"},
			{"type": "carousel"},
			{"type": "multi-screen", "screens": []},
			{"type": "frame", "itemSpacing": -3},
			{"type": "text", "value": "ok"}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, doc.Root.Children, 7)

	for i, c := range doc.Root.Children[:6] {
		assert.Equal(t, KindUnsupported, c.Kind, "child %d", i)
	}

	var schemaErr *SchemaError
	require.True(t, errors.As(doc.Root.Children[0].Err, &schemaErr))
	assert.Equal(t, "$.items[0]", schemaErr.Path)
	assert.Contains(t, schemaErr.Error(), "no value")

	// an unknown type is unsupported but not malformed
	assert.NoError(t, doc.Root.Children[3].Err)
	assert.Equal(t, "carousel", doc.Root.Children[3].Type)

	assert.Error(t, doc.Root.Children[4].Err)
	assert.Error(t, doc.Root.Children[5].Err)
	assert.Equal(t, KindText, doc.Root.Children[6].Kind)
}

func TestParseMultiScreen(t *testing.T) {
	doc, err := Parse([]byte(`{
		"type": "multi-screen",
		"screens": [{"type":"screen","name":"A"},{"type":"screen"}],
		"flows": ["next"]
	}`))
	require.NoError(t, err)
	assert.True(t, doc.IsMultiScreen())
	require.Len(t, doc.Root.Screens, 2)
	assert.Equal(t, "A", doc.Root.Screens[0].Name)
	assert.Equal(t, []string{"next"}, doc.Root.Flows)
}

func TestParseRejectsNonObject(t *testing.T) {
	for _, in := range []string{`not json`, `[1,2]`, `"screen"`, ``} {
		_, err := Parse([]byte(in))
		assert.ErrorIs(t, err, ErrNotObject, "input %q", in)
	}
}

func TestParseYAML(t *testing.T) {
	doc, err := ParseYAML([]byte(`
type: screen
name: Login
padding: 8
components:
  - type: text
    value: Welcome
  - type: input
    label: Email
  - type: button
    label: Sign in
    style:
      backgroundColor: "#222222"
`))
	require.NoError(t, err)
	require.Len(t, doc.Root.Children, 3)
	assert.Equal(t, 8.0, *doc.Root.Padding)
	assert.Equal(t, KindInput, doc.Root.Children[1].Kind)
	assert.Equal(t, "#222222", doc.Root.Children[2].Style.BackgroundColor)

	_, err = ParseYAML([]byte("- a\n- b\n"))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestCount(t *testing.T) {
	doc, err := Parse([]byte(`{
		"type": "screen",
		"items": [
			{"type": "frame", "items": [{"type":"text","value":"a"},{"type":"button"}]},
			{"type": "unknown-widget"},
			{"type": "text"}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, 6, Count(doc.Root))

	flow, err := Parse([]byte(`{"type":"multi-screen","screens":[{"type":"screen"},{"type":"screen","items":[{"type":"card"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, 3, Count(flow.Root))
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindScreen, KindFrame, KindText, KindButton, KindCard, KindHeader, KindInput, KindMultiScreen} {
		assert.Equal(t, k, ParseKind(k.String()))
	}
	assert.Equal(t, KindUnsupported, ParseKind("Button"))
	assert.True(t, KindFrame.IsContainer())
	assert.True(t, KindInput.IsComponent())
	assert.False(t, KindText.IsComponent())
}

// nestedFrames returns a JSON document of depth frames, each holding the next.
func nestedFrames(depth int) []byte {
	var b strings.Builder
	for i := 0; i < depth; i++ {
		b.WriteString(`{"type":"frame","items":[`)
	}
	for i := 0; i < depth; i++ {
		b.WriteString(`]}`)
	}
	return []byte(b.String())
}

func TestParseDepthBound(t *testing.T) {
	doc, err := ParseDepth(nestedFrames(10), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, Count(doc.Root))

	_, err = ParseDepth(nestedFrames(11), 10)
	assert.ErrorIs(t, err, ErrTooDeep)
	assert.Contains(t, err.Error(), "$.items[0]")

	_, err = Parse(nestedFrames(DefaultMaxDepth + 1))
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestParseDeepDocumentFailsFast(t *testing.T) {
	data := nestedFrames(3000)

	start := time.Now()
	_, err := Parse(data)
	assert.ErrorIs(t, err, ErrTooDeep)
	assert.Less(t, time.Since(start), time.Second)

	// JSON is valid YAML, so the same document exercises the YAML path.
	_, err = ParseYAMLDepth(data, 8)
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestValidatePathUsesWireField(t *testing.T) {
	doc, err := Parse([]byte(`{"type":"screen","components":[{"type":"frame","items":[{"type":"frame"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "components", doc.Root.ChildField)
	assert.Equal(t, "items", doc.Root.Children[0].ChildField)
	assert.Empty(t, doc.Root.Children[0].Children[0].ChildField)

	err = Validate(doc, 2)
	require.ErrorIs(t, err, ErrTooDeep)
	assert.Contains(t, err.Error(), "$.components[0].items[0]")
}
