package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledLogIsNoop(t *testing.T) {
	Close()
	if IsEnabled() {
		t.Fatal("Expected logging to be disabled")
	}
	Log("nothing %d", 1)
	Timed("noop")()
}

func TestEnableWritesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	if err := Enable(path); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	defer Close()

	Log("rendered %d nodes", 3)
	Event("notice", "kind", "button")
	Timed("render")()
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	out := string(data)
	for _, want := range []string{"debug logging enabled", "rendered 3 nodes", "kind=button", "op=render", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log to contain %q, got:\n%s", want, out)
		}
	}
}
