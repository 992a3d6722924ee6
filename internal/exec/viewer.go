package exec

import (
	"os"
	osExec "os/exec"
	"runtime"
	"strings"
)

// ViewerBackend opens exported previews with the desktop's default viewer.
type ViewerBackend interface {
	// Name returns the human-readable name (e.g., "open", "xdg-open").
	Name() string

	// DefaultOpenCommand returns the command template used when none is configured.
	DefaultOpenCommand() string
}

type macBackend struct{}

func (m *macBackend) Name() string               { return "open" }
func (m *macBackend) DefaultOpenCommand() string { return "open {png}" }

type xdgBackend struct{}

func (x *xdgBackend) Name() string               { return "xdg-open" }
func (x *xdgBackend) DefaultOpenCommand() string { return "xdg-open {png}" }

type wslBackend struct{}

func (w *wslBackend) Name() string               { return "wslview" }
func (w *wslBackend) DefaultOpenCommand() string { return "wslview {png}" }

type windowsBackend struct{}

func (w *windowsBackend) Name() string               { return "start" }
func (w *windowsBackend) DefaultOpenCommand() string { return `cmd /c start "" {png}` }

// noneBackend is used when no viewer is available (headless servers, CI).
type noneBackend struct{}

func (n *noneBackend) Name() string               { return "" }
func (n *noneBackend) DefaultOpenCommand() string { return "" }

// Backend returns the ViewerBackend for the current environment.
// The backend is cached for the lifetime of the process.
var viewerBackend ViewerBackend

func Backend() ViewerBackend {
	if viewerBackend != nil {
		return viewerBackend
	}

	switch {
	case runtime.GOOS == "darwin":
		viewerBackend = &macBackend{}
	case runtime.GOOS == "windows":
		viewerBackend = &windowsBackend{}
	case os.Getenv("WSL_DISTRO_NAME") != "" && hasCommand("wslview"):
		viewerBackend = &wslBackend{}
	case hasCommand("xdg-open") && (os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""):
		viewerBackend = &xdgBackend{}
	default:
		viewerBackend = &noneBackend{}
	}

	return viewerBackend
}

// ResetBackend resets the cached backend (useful for testing).
func ResetBackend() {
	viewerBackend = nil
}

// GetDefaultOpenCommand returns the viewer's command template.
func GetDefaultOpenCommand() string {
	return Backend().DefaultOpenCommand()
}

// CanOpen reports whether a preview can be opened without configuration.
func CanOpen() bool {
	return strings.TrimSpace(GetDefaultOpenCommand()) != ""
}

func hasCommand(name string) bool {
	_, err := osExec.LookPath(name)
	return err == nil
}
