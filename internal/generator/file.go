package generator

import (
	"context"
	"os"

	"github.com/mitchellh/go-homedir"
)

// File generates by reading a layout document from disk. The request is ignored.
type File struct {
	Path     string
	MaxDepth int
}

// Generate reads and parses the file.
func (f *File) Generate(ctx context.Context, _ Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := homedir.Expand(f.Path)
	if err != nil {
		return nil, &UpstreamError{Op: "read " + f.Path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &UpstreamError{Op: "read " + f.Path, Err: err}
	}
	doc, err := ParseFile(path, data, f.MaxDepth)
	if err != nil {
		return nil, &UpstreamError{Op: "parse " + f.Path, Err: err}
	}
	return &Result{Doc: doc, Raw: string(data)}, nil
}
