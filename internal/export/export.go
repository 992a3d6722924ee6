// Package export writes render results to disk.
//
// Writes take an exclusive lock on "<path>.lock" and replace the target
// atomically, so a watcher or a second layoutgen process never reads a half
// written file.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/mitchellh/go-homedir"

	"github.com/henri123lemoine/layoutgen/internal/raster"
	"github.com/henri123lemoine/layoutgen/internal/render"
	"github.com/henri123lemoine/layoutgen/internal/scene"
)

// Record is the JSON snapshot of one render.
type Record struct {
	Source     string          `json:"source,omitempty"`
	RenderedAt time.Time       `json:"rendered_at"`
	Nodes      int             `json:"nodes"`
	Notices    []render.Notice `json:"notices,omitempty"`
	Page       scene.Snapshot  `json:"page"`
}

// NewRecord captures doc after a render.
func NewRecord(source string, doc *scene.Document, res *render.Result) Record {
	rec := Record{
		Source:     source,
		RenderedAt: time.Now(),
		Page:       doc.Snapshot(),
	}
	if res != nil {
		rec.Nodes = res.Nodes
		rec.Notices = res.Notices
	}
	return rec
}

// SaveRecord writes rec as indented JSON to path.
func SaveRecord(path string, rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return writeLocked(path, append(data, '\n'))
}

// LoadRecord reads a record written by SaveRecord.
func LoadRecord(path string) (*Record, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	// Acquire shared (read) lock - blocks if a write is in progress
	fileLock := flock.New(path + ".lock")
	if err := fileLock.RLock(); err != nil {
		return nil, err
	}
	defer func() { _ = fileLock.Unlock() }()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &rec, nil
}

// SavePNG draws doc and writes it to path.
func SavePNG(path string, doc *scene.Document, opts raster.Options) error {
	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, doc, opts); err != nil {
		return err
	}
	return writeLocked(path, buf.Bytes())
}

func writeLocked(path string, data []byte) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Acquire exclusive lock - blocks until lock is available
	fileLock := flock.New(path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return err
	}
	defer func() { _ = fileLock.Unlock() }()

	// Write atomically: write to temp file then rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
