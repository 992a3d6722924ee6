package layout

import "fmt"

// DefaultMaxDepth bounds nesting when no explicit limit is configured.
const DefaultMaxDepth = 64

// Validate checks that the document is a tree no deeper than maxDepth.
// Documents decoded by Parse are always trees; nodes assembled in code may not be.
func Validate(doc *Document, maxDepth int) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("layout: empty document")
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	v := validator{
		maxDepth: maxDepth,
		onPath:   make(map[*Node]bool),
		seen:     make(map[*Node]bool),
	}
	return v.walk(doc.Root, "$", 1)
}

type validator struct {
	maxDepth int
	onPath   map[*Node]bool
	seen     map[*Node]bool
}

func (v *validator) walk(n *Node, path string, depth int) error {
	if n == nil {
		return fmt.Errorf("layout: nil node at %s", path)
	}
	if v.onPath[n] {
		return fmt.Errorf("%w at %s", ErrCycle, path)
	}
	if v.seen[n] {
		return fmt.Errorf("%w at %s", ErrSharedSubtree, path)
	}
	if depth > v.maxDepth {
		return fmt.Errorf("%w (%d) at %s", ErrTooDeep, v.maxDepth, path)
	}
	v.onPath[n] = true
	v.seen[n] = true
	defer delete(v.onPath, n)

	field := n.ChildField
	if field == "" {
		field = "children"
	}
	for i, c := range n.Children {
		if err := v.walk(c, childPath(path, field, i), depth+1); err != nil {
			return err
		}
	}
	for i, s := range n.Screens {
		if err := v.walk(s, childPath(path, "screens", i), depth+1); err != nil {
			return err
		}
	}
	return nil
}
