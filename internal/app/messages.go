package app

import (
	"github.com/henri123lemoine/layoutgen/internal/generator"
	"github.com/henri123lemoine/layoutgen/internal/render"
	"github.com/henri123lemoine/layoutgen/internal/scene"
)

// Message types for the bubbletea app.

// GeneratedMsg is sent when the generator replies.
type GeneratedMsg struct {
	Run    int
	Result *generator.Result
	Err    error
}

// RenderedMsg is sent when a generated layout has been rendered.
type RenderedMsg struct {
	Run    int
	Doc    *scene.Document
	Result *render.Result
	Err    error
}

// SavedMsg is sent when the snapshot and preview have been written.
type SavedMsg struct {
	Snapshot string
	PNG      string
	Err      error
}

// PreviewOpenedMsg is sent when the preview command has started.
type PreviewOpenedMsg struct {
	Saved *SavedMsg
	Err   error
}
