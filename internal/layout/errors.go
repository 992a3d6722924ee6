package layout

import (
	"errors"
	"fmt"
)

// SchemaError describes a node that could not be ingested as declared.
// The node is kept in the tree as an unsupported placeholder.
type SchemaError struct {
	Path   string
	Type   string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("layout: %s", e.Path)
	if e.Type != "" {
		msg += fmt.Sprintf(" (%s)", e.Type)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Ingestion errors. These abort a render before any node is built.
var (
	ErrNotObject     = errors.New("layout: document is not a JSON object")
	ErrCycle         = errors.New("layout: node is its own ancestor")
	ErrSharedSubtree = errors.New("layout: node appears more than once in the tree")
	ErrTooDeep       = errors.New("layout: tree exceeds maximum depth")
)
