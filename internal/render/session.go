// Package render turns layout documents into nodes on a canvas.
//
// Every top-level render runs in its own Session, which owns the component
// registry and resolver for that call. Trees are built detached and attached
// to the page only once the whole document has been built.
package render

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/debug"
	"github.com/henri123lemoine/layoutgen/internal/design"
	"github.com/henri123lemoine/layoutgen/internal/layout"
)

// Options controls a render.
type Options struct {
	// UseComponents reuses components already on the canvas before synthesizing new ones.
	UseComponents bool
	// Concurrent builds the children of a container in parallel.
	Concurrent bool
	MaxDepth   int
	// Origin is where a single root, or the first screen of a flow, is placed.
	Origin canvas.Point
	// ScreenSpacing is the horizontal step between flow screens.
	ScreenSpacing float64
	FontFamily    string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxDepth:      layout.DefaultMaxDepth,
		Origin:        canvas.Point{X: 100, Y: 100},
		ScreenSpacing: 500,
		FontFamily:    "Inter",
	}
}

// Result describes a finished render.
type Result struct {
	Roots      []canvas.Node
	Connectors []canvas.Connector
	Notices    []Notice
	// Nodes counts every node built, placeholders included.
	Nodes        int
	Placeholders int
	Synthesized  int
	Duration     time.Duration
}

// Session is the state of one top-level render.
type Session struct {
	canvas   canvas.Canvas
	opts     Options
	library  *design.Library
	registry *design.Registry
	resolver *design.Resolver

	notices      noticeLog
	nodes        atomic.Int64
	placeholders atomic.Int64
}

// NewSession snapshots the components on c and starts with an empty registry.
func NewSession(c canvas.Canvas, opts Options) *Session {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = layout.DefaultMaxDepth
	}
	if opts.FontFamily == "" {
		opts.FontFamily = DefaultOptions().FontFamily
	}
	lib := design.NewLibrary(c.Components())
	s := &Session{
		canvas:   c,
		opts:     opts,
		library:  lib,
		registry: design.NewRegistry(c, lib, canvas.FontName{Family: opts.FontFamily, Style: "Regular"}),
		resolver: design.NewResolver(lib),
	}
	s.registry.Reset()
	return s
}

// Render builds doc on c in a new session.
func Render(ctx context.Context, c canvas.Canvas, doc *layout.Document, opts Options) (*Result, error) {
	return NewSession(c, opts).Render(ctx, doc)
}

// Render validates doc, builds it detached and attaches the result to the page.
// On error nothing is attached; components synthesized so far stay on the canvas.
func (s *Session) Render(ctx context.Context, doc *layout.Document) (*Result, error) {
	defer debug.Timed("render")()
	start := time.Now()

	if doc == nil || doc.Root == nil {
		return nil, errors.New("render: empty document")
	}
	if err := layout.Validate(doc, s.opts.MaxDepth); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	b := &Builder{s: s}
	res := &Result{}
	if doc.IsMultiScreen() {
		flow, err := b.AssembleFlow(ctx, doc.Root.Screens, doc.Root.Flows)
		if err != nil {
			return nil, err
		}
		res.Roots = flow.Screens
		res.Connectors = flow.Connectors
	} else {
		root, err := b.Build(ctx, doc.Root, s.opts.Origin)
		if err != nil {
			return nil, err
		}
		res.Roots = []canvas.Node{root}
	}

	page := s.canvas.Page()
	for _, r := range res.Roots {
		page.AppendChild(r)
	}
	for _, c := range res.Connectors {
		page.AppendChild(c)
	}
	s.canvas.ScrollAndZoomIntoView(res.Roots)
	s.canvas.SetSelection(res.Roots)

	res.Notices = s.notices.list()
	res.Nodes = int(s.nodes.Load())
	res.Placeholders = int(s.placeholders.Load())
	res.Synthesized = s.registry.Len()
	res.Duration = time.Since(start)

	debug.Event("render finished",
		"roots", len(res.Roots),
		"nodes", res.Nodes,
		"placeholders", res.Placeholders,
		"synthesized", res.Synthesized,
		"notices", len(res.Notices))
	return res, nil
}

// Notices returns the notices emitted so far.
func (s *Session) Notices() []Notice {
	return s.notices.list()
}

// Registry returns the session's component registry.
func (s *Session) Registry() *design.Registry {
	return s.registry
}

// Library returns the session's component name table.
func (s *Session) Library() *design.Library {
	return s.library
}
