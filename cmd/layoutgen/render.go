package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/henri123lemoine/layoutgen/internal/app"
	"github.com/henri123lemoine/layoutgen/internal/config"
	"github.com/henri123lemoine/layoutgen/internal/exec"
	"github.com/henri123lemoine/layoutgen/internal/export"
	"github.com/henri123lemoine/layoutgen/internal/generator"
	"github.com/henri123lemoine/layoutgen/internal/watch"
)

// outputFlags are shared by render and generate.
type outputFlags struct {
	components bool
	concurrent bool
	snapshot   string
	png        string
	open       bool
	scale      float64
}

func (o *outputFlags) register(fs *flag.FlagSet, cfg *config.Config) {
	fs.BoolVar(&o.components, "components", cfg.Render.UseComponents, "reuse library components before synthesizing new ones")
	fs.BoolVar(&o.concurrent, "concurrent", cfg.Render.Concurrent, "build container children in parallel")
	fs.StringVar(&o.snapshot, "o", cfg.Output.Snapshot, "write the JSON snapshot to `file`")
	fs.StringVar(&o.png, "png", cfg.Output.PNG, "write a PNG preview to `file`")
	fs.BoolVar(&o.open, "open", false, "open the PNG preview after rendering")
	fs.Float64Var(&o.scale, "scale", cfg.Output.Scale, "preview scale factor")
}

func (o *outputFlags) apply(cfg *config.Config) {
	cfg.Render.UseComponents = o.components
	cfg.Render.Concurrent = o.concurrent
	cfg.Output.Snapshot = o.snapshot
	cfg.Output.PNG = o.png
	cfg.Output.Scale = o.scale
	if o.open && cfg.Output.PNG == "" {
		cfg.Output.PNG = app.DefaultPNGPath
	}
}

func runRender(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var out outputFlags
	out.register(fs, cfg)
	watchFile := fs.Bool("watch", false, "render again whenever the file changes")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Usage: layoutgen render [flags] <layout.json>")
		fs.PrintDefaults()
		return 2
	}
	out.apply(cfg)
	path := fs.Arg(0)
	gen := &generator.File{Path: path, MaxDepth: cfg.Render.MaxDepth}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The preview is opened once; later renders refresh the file in place
	openNext := out.open
	once := func() error {
		err := renderOnce(ctx, cfg, gen, generator.Request{}, path, openNext, stdout, stderr)
		if err == nil {
			openNext = false
		}
		return err
	}

	if !*watchFile {
		if err := once(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	w, err := watch.New(path, watch.DefaultDebounce)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = w.Close() }()

	if err := once(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	fmt.Fprintf(stderr, "Watching %s (ctrl+c to stop)\n", path)
	err = w.Run(ctx, func() error {
		if err := once(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runGenerate(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var out outputFlags
	out.register(fs, cfg)
	tokens := fs.String("tokens", "", "design tokens to follow")
	image := fs.String("image", "", "reference image `file`")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	prompt := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if prompt == "" {
		fmt.Fprintln(stderr, "Usage: layoutgen generate [flags] <prompt>")
		fs.PrintDefaults()
		return 2
	}
	out.apply(cfg)

	req := generator.Request{Prompt: prompt, Tokens: *tokens}
	if *image != "" {
		path := config.ExpandPath(*image)
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: reference image: %v\n", err)
			return 1
		}
		req.Image, req.ImageName = data, path
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gen := generator.NewOpenAI(cfg.GeneratorOptions())
	if err := renderOnce(ctx, cfg, gen, req, prompt, out.open, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// renderOnce generates, renders and writes the configured outputs.
func renderOnce(ctx context.Context, cfg *config.Config, gen generator.Generator, req generator.Request, source string, open bool, stdout, stderr io.Writer) error {
	res, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}
	doc, result, err := app.RenderLayout(ctx, cfg, res.Doc)
	if err != nil {
		return err
	}

	for _, n := range result.Notices {
		fmt.Fprintf(stderr, "notice: %s\n", n)
	}
	fmt.Fprintf(stdout, "Rendered %d nodes in %d screen(s)", result.Nodes, len(result.Roots))
	if result.Placeholders > 0 {
		fmt.Fprintf(stdout, ", %d unsupported", result.Placeholders)
	}
	fmt.Fprintf(stdout, " (%s)\n", result.Duration.Round(time.Microsecond))

	target := exec.Target{Source: source}
	if cfg.Output.Snapshot != "" {
		target.Snapshot = config.ExpandPath(cfg.Output.Snapshot)
		if err := export.SaveRecord(target.Snapshot, export.NewRecord(source, doc, result)); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		fmt.Fprintf(stdout, "Wrote %s\n", target.Snapshot)
	}
	if cfg.Output.PNG != "" {
		target.PNG = config.ExpandPath(cfg.Output.PNG)
		if err := export.SavePNG(target.PNG, doc, cfg.RasterOptions()); err != nil {
			return fmt.Errorf("save preview: %w", err)
		}
		fmt.Fprintf(stdout, "Wrote %s\n", target.PNG)
	}
	if open {
		if err := exec.OpenDetached(cfg.Output.OpenCommand, target); err != nil {
			return fmt.Errorf("open preview: %w", err)
		}
	}
	return nil
}
