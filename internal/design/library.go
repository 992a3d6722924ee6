// Package design holds the component side of a render: the table of named
// components on the canvas, the resolver that picks an existing variant, and the
// registry that synthesizes missing ones.
package design

import (
	"sync"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
)

// Library is the ordered name table of the components known to a session.
// It is written only by Registry.GetOrCreate and read by Resolver.
type Library struct {
	mu     sync.RWMutex
	names  []string
	byName map[string]canvas.Component
	seen   map[canvas.Component]struct{}
}

// NewLibrary snapshots the given components in discovery order.
// When two components share a name, the first one wins lookups.
func NewLibrary(components []canvas.Component) *Library {
	l := &Library{
		byName: make(map[string]canvas.Component),
		seen:   make(map[canvas.Component]struct{}),
	}
	for _, c := range components {
		l.add(c.Name(), c)
	}
	return l
}

// Names returns the registered names in discovery order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.names...)
}

// Len returns the number of registered names.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.names)
}

// Lookup returns the component registered under exactly name.
func (l *Library) Lookup(name string) (canvas.Component, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.byName[name]
	return c, ok
}

// First returns the first registered name, in discovery order, for which match
// returns true.
func (l *Library) First(match func(name string) bool) (string, canvas.Component, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, name := range l.names {
		if match(name) {
			return name, l.byName[name], true
		}
	}
	return "", nil, false
}

func (l *Library) add(name string, c canvas.Component) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, dup := l.seen[c]; dup {
		return
	}
	l.seen[c] = struct{}{}
	if _, ok := l.byName[name]; ok {
		return
	}
	l.names = append(l.names, name)
	l.byName[name] = c
}
