// Package generator produces layout documents from a prompt, either by asking
// a chat-completions model or by reading a file.
package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/henri123lemoine/layoutgen/internal/layout"
)

// Request is what the user asked for.
type Request struct {
	Prompt string
	// Tokens is free-form design token text, for example a color palette.
	Tokens string
	// Image is an optional reference screenshot.
	Image     []byte
	ImageName string
}

// Generator turns a request into a layout document.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// Result is a generated document plus the raw text it was parsed from.
type Result struct {
	Doc *layout.Document
	Raw string
}

// UpstreamError means the generator could not produce a usable document.
// No tree is built when it occurs.
type UpstreamError struct {
	Op     string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("generator: %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("generator: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// StripFences removes a surrounding Markdown code fence, with or without a
// language tag, from model output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// drop the language tag line
		if tag := strings.TrimSpace(s[:i]); !strings.ContainsAny(tag, "{[") {
			s = s[i+1:]
		}
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseFile parses data as YAML when name has a YAML extension and as JSON
// otherwise. Nodes deeper than maxDepth fail with layout.ErrTooDeep; zero
// means layout.DefaultMaxDepth.
func ParseFile(name string, data []byte, maxDepth int) (*layout.Document, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return layout.ParseYAMLDepth(data, maxDepth)
	default:
		return layout.ParseDepth(data, maxDepth)
	}
}
