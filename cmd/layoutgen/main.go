package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/layoutgen/internal/app"
	"github.com/henri123lemoine/layoutgen/internal/config"
	"github.com/henri123lemoine/layoutgen/internal/debug"
	"github.com/henri123lemoine/layoutgen/internal/generator"
)

const usage = `Usage:
  layoutgen [-debug file] [-config file]                 interactive prompt
  layoutgen [global flags] generate [flags] <prompt>     generate and render once
  layoutgen [global flags] render [flags] <layout.json>  render a layout file
  layoutgen [global flags] show [flags] [snapshot.json]  print a saved snapshot
  layoutgen [global flags] init                          write a default config file

Global flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("layoutgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	debugPath := fs.String("debug", "", "write a debug log to `file`")
	configPath := fs.String("config", "", "read configuration from `file` instead of the default location")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *debugPath != "" {
		if err := debug.Enable(config.ExpandPath(*debugPath)); err != nil {
			fmt.Fprintf(stderr, "Error enabling debug log: %v\n", err)
			return 1
		}
		defer debug.Close()
	}

	if fs.Arg(0) == "init" {
		return runInit(stdout, stderr)
	}

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	for _, w := range cfg.Validate() {
		fmt.Fprintf(stderr, "Warning: %s\n", w)
	}

	switch fs.Arg(0) {
	case "":
		return runTUI(cfg, stderr)
	case "render":
		return runRender(cfg, fs.Args()[1:], stdout, stderr)
	case "generate":
		return runGenerate(cfg, fs.Args()[1:], stdout, stderr)
	case "show":
		return runShow(cfg, fs.Args()[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown command %q\n\n", fs.Arg(0))
		fs.Usage()
		return 2
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(config.ExpandPath(path))
}

func runInit(stdout, stderr io.Writer) int {
	if !config.IsFirstRun() {
		fmt.Fprintf(stderr, "Config already exists at %s\n", config.ConfigPath())
		return 1
	}
	if err := config.CreateDefaultConfigFile(); err != nil {
		fmt.Fprintf(stderr, "Error writing config: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Wrote %s\n", config.ConfigPath())
	return 0
}

func runTUI(cfg *config.Config, stderr io.Writer) int {
	gen := generator.NewOpenAI(cfg.GeneratorOptions())

	// Create and run the application
	model := app.New(cfg, gen)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
