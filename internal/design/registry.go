package design

import (
	"context"
	"fmt"
	"sync"

	"github.com/jinzhu/copier"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/layout"
)

// DefaultName is the key name used when a node has neither label nor name.
const DefaultName = ""

// Key identifies a synthesized definition. Equality is exact and case-sensitive.
type Key struct {
	Kind layout.Kind
	Name string
}

func (k Key) String() string {
	return k.Kind.String() + ":" + k.Name
}

// Definition is a component a node can be instantiated from.
type Definition struct {
	Key       Key
	Name      string
	Component canvas.Component
	// Synthesized is true when the registry created the component.
	Synthesized bool
}

// Registry synthesizes component definitions, at most one per key until Reset.
type Registry struct {
	canvas canvas.Canvas
	lib    *Library
	font   canvas.FontName

	mu   sync.Mutex
	defs map[Key]*Definition
}

// NewRegistry returns a registry creating components on c, labeled in font,
// and publishing their names to lib.
func NewRegistry(c canvas.Canvas, lib *Library, font canvas.FontName) *Registry {
	return &Registry{
		canvas: c,
		lib:    lib,
		font:   font,
		defs:   make(map[Key]*Definition),
	}
}

// Reset forgets every memoized definition. Components already created stay on the canvas.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = make(map[Key]*Definition)
}

// Len returns the number of memoized definitions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.defs)
}

// Get returns the memoized definition for key, if any.
func (r *Registry) Get(key Key) (*Definition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.defs[key]
	return d, ok
}

// GetOrCreate returns the definition for (kind, name), synthesizing it on first
// use. Explicit style fields override the kind defaults; a later call with a
// different style returns the first definition unchanged.
func (r *Registry) GetOrCreate(ctx context.Context, kind layout.Kind, name string, style *layout.Style) (*Definition, error) {
	defaults, ok := DefaultsFor(kind)
	if !ok {
		return nil, fmt.Errorf("design: no component defaults for kind %s", kind)
	}
	key := Key{Kind: kind, Name: name}

	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.defs[key]; ok {
		return d, nil
	}
	d, err := r.synthesize(ctx, key, defaults, style)
	if err != nil {
		return nil, fmt.Errorf("synthesize %s: %w", key, err)
	}
	r.defs[key] = d
	return d, nil
}

func (r *Registry) synthesize(ctx context.Context, key Key, defaults Defaults, style *layout.Style) (*Definition, error) {
	merged := defaults.Style
	if style != nil {
		if err := copier.CopyWithOption(&merged, style, copier.Option{IgnoreEmpty: true}); err != nil {
			return nil, fmt.Errorf("merge style: %w", err)
		}
	}

	kindName := cases.Title(language.Und).String(key.Kind.String())
	name, label := kindName, kindName
	if key.Name != DefaultName {
		name, label = kindName+"/"+key.Name, key.Name
	}

	comp, err := createComponent(ctx, r.canvas, r.font, name, label, defaults, merged)
	if err != nil {
		return nil, err
	}
	r.canvas.Page().AppendChild(comp)
	r.lib.add(name, comp)

	return &Definition{
		Key:         key,
		Name:        name,
		Component:   comp,
		Synthesized: true,
	}, nil
}

// createComponent builds a labeled component with the geometry of defaults.
// The caller attaches it to the page.
func createComponent(ctx context.Context, c canvas.Canvas, font canvas.FontName, name, label string, defaults Defaults, style layout.Style) (canvas.Component, error) {
	if err := c.LoadFont(ctx, font); err != nil {
		return nil, err
	}

	comp := c.CreateComponent()
	comp.SetName(name)
	comp.SetAutoLayout(canvas.AutoLayout{
		Mode:          defaults.Mode,
		PrimaryAlign:  defaults.Align,
		CounterAlign:  canvas.AlignCenter,
		Padding:       defaults.Padding,
		PrimarySizing: canvas.SizingAuto,
		CounterSizing: canvas.SizingAuto,
	})
	comp.SetFill(style.BackgroundColor)
	comp.SetCornerRadius(style.Radius)

	text := c.CreateText()
	text.SetName("Label")
	text.SetFont(font)
	if err := text.SetCharacters(label); err != nil {
		return nil, err
	}
	if style.FontSize > 0 {
		text.SetFontSize(style.FontSize)
	}
	text.SetFill(style.Color)
	comp.AppendChild(text)

	if defaults.Width > 0 && defaults.Height > 0 {
		comp.Resize(defaults.Width, defaults.Height)
	}
	return comp, nil
}
