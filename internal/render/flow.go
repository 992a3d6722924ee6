package render

import (
	"context"
	"fmt"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/layout"
)

// Flow is a row of screens joined by connectors.
type Flow struct {
	Screens    []canvas.Node
	Connectors []canvas.Connector
}

// AssembleFlow builds screens left to right, one ScreenSpacing apart starting
// at the origin, and connects each screen to the next. Connector i is labeled
// flows[i] when present.
func (b *Builder) AssembleFlow(ctx context.Context, screens []*layout.Node, flows []string) (*Flow, error) {
	opts := b.s.opts
	flow := &Flow{Screens: make([]canvas.Node, 0, len(screens))}

	for i, screen := range screens {
		pos := canvas.Point{X: opts.Origin.X + float64(i)*opts.ScreenSpacing, Y: opts.Origin.Y}
		node, err := b.build(ctx, screen, pos, fmt.Sprintf("$.screens[%d]", i), nil)
		if err != nil {
			return nil, err
		}
		if screen.Name == "" {
			node.SetName(fmt.Sprintf("Screen %d", i+1))
		}
		flow.Screens = append(flow.Screens, node)
	}

	if len(flow.Screens) < 2 {
		return flow, nil
	}

	font := canvas.FontName{Family: opts.FontFamily, Style: "Regular"}
	if err := b.s.canvas.LoadFont(ctx, font); err != nil {
		return nil, &ResourceError{Path: "$.flows", Resource: "font " + font.String(), Err: err}
	}
	for i := 0; i+1 < len(flow.Screens); i++ {
		var label string
		if i < len(flows) {
			label = flows[i]
		}
		conn := b.s.canvas.CreateConnector()
		conn.SetName(fmt.Sprintf("%s -> %s", flow.Screens[i].Name(), flow.Screens[i+1].Name()))
		conn.Connect(flow.Screens[i], flow.Screens[i+1])
		if err := conn.SetLabel(font, label); err != nil {
			return nil, &ResourceError{Path: fmt.Sprintf("$.flows[%d]", i), Resource: "font " + font.String(), Err: err}
		}
		flow.Connectors = append(flow.Connectors, conn)
	}
	return flow, nil
}
