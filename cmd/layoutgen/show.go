package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/henri123lemoine/layoutgen/internal/config"
	"github.com/henri123lemoine/layoutgen/internal/export"
	"github.com/henri123lemoine/layoutgen/internal/ui"
)

// runShow prints the tree of a saved snapshot.
func runShow(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	maxLines := fs.Int("lines", 0, "print at most `n` tree lines (0 for all)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	path := cfg.Output.Snapshot
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if fs.NArg() > 1 || path == "" {
		fmt.Fprintln(stderr, "Usage: layoutgen show [flags] [snapshot.json]")
		fs.PrintDefaults()
		return 2
	}

	rec, err := export.LoadRecord(config.ExpandPath(path))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if rec.Source != "" {
		fmt.Fprintf(stdout, "%s (%d nodes, rendered %s)\n", rec.Source, rec.Nodes, rec.RenderedAt.Format("2006-01-02 15:04"))
	}
	for _, line := range ui.TreeLines(rec.Page, *maxLines) {
		fmt.Fprintln(stdout, line)
	}
	for _, n := range rec.Notices {
		fmt.Fprintf(stderr, "notice: %s\n", n)
	}
	return 0
}
