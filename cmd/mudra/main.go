package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

const listenAddr = ":8080"

func main() {
	fmt.Println("Mudra - Hand Gesture Control")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	mudra := app.New(app.Config{
		Store:     st,
		PluginDir: findPluginDir(dataDir),
	})
	if err := mudra.LoadConfig(); err != nil {
		log.Printf("Failed to load stored config, using defaults: %v", err)
	}
	if err := mudra.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	webDir := findWebDir(dataDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    mudra.Camera(),
		OnConfigChange: func() {
			if err := mudra.LoadConfig(); err != nil {
				log.Printf("Config reload failed: %v", err)
			}
		},
	})

	t := tray.New()
	mudra.OnEvent(func(ev app.Event) {
		srv.Feed().Publish(ev)
		t.SetLastGesture(string(ev.Label))
		t.SetLastAction(ev.LastAction)
	})

	go func() {
		fmt.Printf("Starting server on %s\n", listenAddr)
		if err := srv.ListenAndServe(listenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := mudra.Start(); err != nil {
		log.Printf("Failed to start detection pipeline: %v", err)
	} else {
		mudra.SetEnabled(true)
	}

	t.OnToggle(func(enabled bool) {
		mudra.SetEnabled(enabled)
	})
	t.OnSettings(func() {
		openBrowser("http://localhost" + listenAddr)
	})
	t.OnQuit(func() {
		mudra.Stop()
	})

	// Blocks until Quit is selected from the menu.
	t.Run()
}

// findPluginDir locates the action plugin binaries. A plugins directory
// next to the executable wins; ~/.mudra/plugins is the fallback.
func findPluginDir(dataDir string) string {
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "plugins")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return filepath.Join(dataDir, "plugins")
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the settings UI with the macOS open command.
func openBrowser(url string) {
	if err := exec.Command("open", url).Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
