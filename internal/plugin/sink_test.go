package plugin

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ayusman/mudra/internal/action"
)

// writeFakePlugin creates a plugin directory whose executable is a
// shell script emitting the given JSON response.
func writeFakePlugin(t *testing.T, root, name, response string) {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	manifest := `{"name": "` + name + `", "version": "1.0.0", "executable": "run.sh", "actions": ["press", "move", "click"]}`
	if err := os.WriteFile(filepath.Join(dir, "plugin.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	script := "#!/bin/sh\ncat <<'EOF'\n" + response + "\nEOF\n"
	if err := os.WriteFile(filepath.Join(dir, "run.sh"), []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
}

func newTestSink(t *testing.T, keyboardResp, pointerResp string) *Sink {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("skipping shell-script plugin test on Windows")
	}

	root := t.TempDir()
	writeFakePlugin(t, root, KeyboardPlugin, keyboardResp)
	writeFakePlugin(t, root, PointerPlugin, pointerResp)

	mgr := NewManager(root)
	if err := mgr.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	return NewSink(mgr, NewExecutor(5000))
}

func TestSink_Deliver(t *testing.T) {
	sink := newTestSink(t, `{"success":true}`, `{"success":true}`)

	tests := []struct {
		name string
		cmd  action.Command
	}{
		{"key press", action.Press("escape")},
		{"cursor move", action.MoveCursor(960, 540)},
		{"click", action.Click("left")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := sink.Deliver(tt.cmd); err != nil {
				t.Errorf("Deliver(%+v) error = %v", tt.cmd, err)
			}
		})
	}
}

func TestSink_PluginFailureSurfaces(t *testing.T) {
	sink := newTestSink(t,
		`{"success":false,"error":"accessibility permission denied"}`,
		`{"success":true}`,
	)

	err := sink.Deliver(action.Press("space"))
	if err == nil {
		t.Fatal("Deliver() should surface the plugin failure")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("error = %v, want the plugin's message", err)
	}
}

func TestSink_MissingPlugin(t *testing.T) {
	mgr := NewManager(t.TempDir())
	if err := mgr.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	sink := NewSink(mgr, NewExecutor(1000))
	if err := sink.Deliver(action.Press("space")); err == nil {
		t.Fatal("Deliver() should fail when no plugin is installed")
	}
}
