package plugin

import (
	"os"
	"path/filepath"
	"testing"
)

// installPlugin drops a manifest into root the way the stock keyboard
// and pointer plugins are laid out on disk.
func installPlugin(t *testing.T, root, name, manifest string) string {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plugin.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return dir
}

func TestManager_DiscoverStockPlugins(t *testing.T) {
	root := t.TempDir()
	keyboardDir := installPlugin(t, root, KeyboardPlugin,
		`{"name": "keyboard", "version": "1.0.0", "description": "AppleScript key injection", "executable": "keyboard", "actions": ["press"]}`)
	installPlugin(t, root, PointerPlugin,
		`{"name": "pointer", "version": "1.0.0", "description": "robotgo cursor control", "executable": "pointer", "actions": ["move", "click"]}`)

	m := NewManager(root)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if got := len(m.List()); got != 2 {
		t.Fatalf("discovered %d plugins, want 2", got)
	}

	kb, err := m.Get(KeyboardPlugin)
	if err != nil {
		t.Fatalf("Get(keyboard) error = %v", err)
	}
	if kb.Path != keyboardDir {
		t.Errorf("keyboard path = %q, want %q", kb.Path, keyboardDir)
	}
	if kb.Executable != filepath.Join(keyboardDir, "keyboard") {
		t.Errorf("keyboard executable = %q, want it resolved inside the plugin dir", kb.Executable)
	}
	if len(kb.Manifest.Actions) != 1 || kb.Manifest.Actions[0] != "press" {
		t.Errorf("keyboard actions = %v, want [press]", kb.Manifest.Actions)
	}

	ptr, err := m.Get(PointerPlugin)
	if err != nil {
		t.Fatalf("Get(pointer) error = %v", err)
	}
	if len(ptr.Manifest.Actions) != 2 {
		t.Errorf("pointer actions = %v, want [move click]", ptr.Manifest.Actions)
	}
}

func TestManager_DiscoverRescans(t *testing.T) {
	root := t.TempDir()
	installPlugin(t, root, PointerPlugin,
		`{"name": "pointer", "version": "1.0.0", "executable": "pointer", "actions": ["move", "click"]}`)

	m := NewManager(root)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if got := len(m.List()); got != 1 {
		t.Fatalf("discovered %d plugins, want 1", got)
	}

	// Installing the keyboard plugin afterwards is picked up by the
	// next scan.
	installPlugin(t, root, KeyboardPlugin,
		`{"name": "keyboard", "version": "1.0.0", "executable": "keyboard", "actions": ["press"]}`)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if got := len(m.List()); got != 2 {
		t.Fatalf("discovered %d plugins after rescan, want 2", got)
	}
}

func TestManager_DiscoverSkipsBroken(t *testing.T) {
	root := t.TempDir()
	installPlugin(t, root, PointerPlugin,
		`{"name": "pointer", "version": "1.0.0", "executable": "pointer", "actions": ["move", "click"]}`)
	installPlugin(t, root, "broken", `{not valid json`)

	// A bare directory without a manifest is not a plugin either.
	if err := os.MkdirAll(filepath.Join(root, "leftovers"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	m := NewManager(root)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if got := len(m.List()); got != 1 {
		t.Fatalf("discovered %d plugins, want 1 (broken and bare dirs skipped)", got)
	}
	if _, err := m.Get(PointerPlugin); err != nil {
		t.Errorf("Get(pointer) error = %v, the healthy plugin must survive", err)
	}
}

func TestManager_MissingDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "does-not-exist"))

	// A fresh install has no plugin directory yet.
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if got := len(m.List()); got != 0 {
		t.Fatalf("discovered %d plugins, want 0", got)
	}
}

func TestManager_GetNotInstalled(t *testing.T) {
	m := NewManager(t.TempDir())
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if _, err := m.Get(KeyboardPlugin); err != ErrPluginNotFound {
		t.Errorf("Get() error = %v, want ErrPluginNotFound", err)
	}
}
