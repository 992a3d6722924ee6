package design

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/layout"
)

// candidates lists, per kind, the base names a design system usually gives its
// components, most preferred first.
var candidates = map[layout.Kind][]string{
	layout.KindButton: {"Button/Primary", "Button", "Button/Default"},
	layout.KindCard:   {"Card", "Card/Default"},
	layout.KindHeader: {"Header", "Header/Default", "Navigation/Header"},
	layout.KindInput:  {"Input", "Input/Default", "TextField"},
}

// Candidates returns the base names tried for kind, in priority order.
func Candidates(kind layout.Kind) []string {
	return append([]string(nil), candidates[kind]...)
}

// Resolver finds existing components for a node. It never writes to the library.
type Resolver struct {
	lib *Library
}

// NewResolver returns a resolver reading lib.
func NewResolver(lib *Library) *Resolver {
	return &Resolver{lib: lib}
}

// Resolve returns the best existing component for (kind, labelOrName, state),
// or nil. For each candidate base name it tries the state-qualified name
// exactly, then the state-qualified name case-insensitively, then the bare
// name. When no candidate matches it falls back to the first registered name
// containing the kind, then the first containing labelOrName.
func (r *Resolver) Resolve(kind layout.Kind, labelOrName, state string) *Definition {
	var qualifiedState string
	if state = strings.TrimSpace(state); state != "" {
		qualifiedState = r.capitalize(state)
	}

	for _, base := range candidates[kind] {
		if qualifiedState != "" {
			qualified := base + " / " + qualifiedState
			if c, ok := r.lib.Lookup(qualified); ok {
				return r.found(kind, qualified, c)
			}
			want := canonical(qualified)
			if name, c, ok := r.lib.First(func(name string) bool {
				return strings.EqualFold(canonical(name), want)
			}); ok {
				return r.found(kind, name, c)
			}
		}
		if c, ok := r.lib.Lookup(base); ok {
			return r.found(kind, base, c)
		}
	}

	if kind.IsComponent() {
		if name, c, ok := r.lib.First(containsFold(kind.String())); ok {
			return r.found(kind, name, c)
		}
	}
	if labelOrName != "" {
		if name, c, ok := r.lib.First(containsFold(labelOrName)); ok {
			return r.found(kind, name, c)
		}
	}
	return nil
}

// Suggest returns up to limit registered names that fuzzy-match pattern, best first.
func (r *Resolver) Suggest(pattern string, limit int) []string {
	if pattern == "" || limit <= 0 {
		return nil
	}
	matches := fuzzy.Find(pattern, r.lib.Names())
	var out []string
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// capitalize title-cases a state, so "hover" and "HOVER" both become "Hover".
// A Caser is stateful, so each call gets its own.
func (r *Resolver) capitalize(state string) string {
	return cases.Title(language.Und).String(state)
}

func (r *Resolver) found(kind layout.Kind, name string, c canvas.Component) *Definition {
	return &Definition{
		Key:       Key{Kind: kind, Name: name},
		Name:      name,
		Component: c,
	}
}

// HasState reports whether one "/" separated segment of a component name is
// state, ignoring case. Variant property segments such as "State=Hover" match
// on their value.
func HasState(name, state string) bool {
	state = strings.TrimSpace(state)
	if state == "" {
		return false
	}
	for _, seg := range strings.Split(canonical(name), " / ") {
		for _, prop := range strings.Split(seg, ",") {
			if _, v, ok := strings.Cut(prop, "="); ok {
				prop = v
			}
			if strings.EqualFold(strings.TrimSpace(prop), state) {
				return true
			}
		}
	}
	return false
}

// canonical normalizes the spacing around "/" separators of a variant name.
func canonical(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, " / ")
}

func containsFold(sub string) func(string) bool {
	sub = strings.ToLower(sub)
	return func(name string) bool {
		return strings.Contains(strings.ToLower(name), sub)
	}
}
