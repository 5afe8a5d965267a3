// Package plugin provides plugin management and execution capabilities for the mudra gesture control system.
package plugin

import "encoding/json"

// Manifest is the plugin.json contract a plugin directory must carry.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	Actions     []string `json:"actions"`
}

// Request is one command on the plugin's stdin: the action name plus
// action-specific parameters (key for press, coordinates for move,
// button for click).
type Request struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params"`
}

// Response is the plugin's single stdout line answering a Request.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin is a discovered plugin: its manifest, directory and resolved
// executable path.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
