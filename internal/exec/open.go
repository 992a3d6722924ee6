// Package exec handles executing external commands.
package exec

import (
	"errors"
	"fmt"
	"os"
	osExec "os/exec"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/henri123lemoine/layoutgen/internal/debug"
)

// Target names the files of one render that a command may refer to.
type Target struct {
	// Source is the layout file, empty for generated layouts.
	Source   string
	Snapshot string
	PNG      string
}

// ErrNoCommand is returned when there is nothing to run.
var ErrNoCommand = errors.New("no open command configured")

// Open runs the open command for a render and waits for it.
func Open(command string, t Target) error {
	cmd, err := buildCommand(command, t)
	if err != nil {
		return err
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	return cmd.Run()
}

// OpenDetached runs the open command without waiting for it.
// This is useful for viewers that should outlive layoutgen.
func OpenDetached(command string, t Target) error {
	cmd, err := buildCommand(command, t)
	if err != nil {
		return err
	}
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	// Start the process but don't wait for it
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func buildCommand(command string, t Target) (*osExec.Cmd, error) {
	if strings.TrimSpace(command) == "" {
		command = GetDefaultOpenCommand()
	}
	if strings.TrimSpace(command) == "" {
		return nil, ErrNoCommand
	}

	expanded := expandTemplate(command, t)
	args, err := shellwords.Parse(expanded)
	if err != nil {
		return nil, fmt.Errorf("parse open command %q: %w", expanded, err)
	}
	if len(args) == 0 {
		return nil, ErrNoCommand
	}
	debug.Event("open", "command", args[0], "args", len(args)-1)
	return osExec.Command(args[0], args[1:]...), nil
}

// expandTemplate expands template variables in the command.
// Values are shell-quoted so paths with spaces stay one argument.
func expandTemplate(command string, t Target) string {
	result := command

	// {png} - Preview image
	result = strings.ReplaceAll(result, "{png}", shellQuote(t.PNG))

	// {snapshot} - JSON snapshot
	result = strings.ReplaceAll(result, "{snapshot}", shellQuote(t.Snapshot))

	// {source} - Layout file that was rendered
	result = strings.ReplaceAll(result, "{source}", shellQuote(t.Source))

	// {dir} - Directory holding the preview
	dir := ""
	if t.PNG != "" {
		dir = filepath.Dir(t.PNG)
	}
	result = strings.ReplaceAll(result, "{dir}", shellQuote(dir))

	return result
}

// shellQuote quotes s for a POSIX shell when it contains special characters.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`!*?[](){};&|<>#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
