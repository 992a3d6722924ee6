package render

import "fmt"

// ResourceError reports a host resource that could not be acquired while
// building a node, such as a font or a component instance. It aborts the render.
type ResourceError struct {
	Path     string
	Resource string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("render: %s: acquire %s: %v", e.Path, e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
