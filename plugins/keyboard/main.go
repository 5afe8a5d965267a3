// Package main provides the keyboard plugin for macOS.
// It injects key presses via AppleScript and handles the volume keys
// through the sound settings, which do not need accessibility access.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// PressParams defines parameters for the press action.
type PressParams struct {
	Key string `json:"key"`
}

// keyCodes maps named keys to macOS virtual key codes. Keys not in
// this table are sent as literal keystrokes.
var keyCodes = map[string]int{
	"escape": 53,
	"space":  49,
	"tab":    48,
	"enter":  36,
	"delete": 51,
	"left":   123,
	"right":  124,
	"down":   125,
	"up":     126,
	"f5":     96,
}

const volumeStep = 10

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	switch req.Action {
	case "press":
		if err := handlePress(req.Params); err != nil {
			writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
			return
		}
	default:
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	// Write success response
	writeSuccessResponse()
}

// handlePress processes a press action.
func handlePress(params json.RawMessage) error {
	var p PressParams
	if err := json.Unmarshal(params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}

	if p.Key == "" {
		return fmt.Errorf("key is required")
	}

	return runAppleScript(buildScript(p.Key))
}

// buildScript generates the AppleScript for a named or literal key.
func buildScript(key string) string {
	switch key {
	case "audio_vol_up":
		return fmt.Sprintf("set volume output volume (output volume of (get volume settings) + %d)", volumeStep)
	case "audio_vol_down":
		return fmt.Sprintf("set volume output volume (output volume of (get volume settings) - %d)", volumeStep)
	}

	if code, ok := keyCodes[key]; ok {
		return fmt.Sprintf(`tell application "System Events" to key code %d`, code)
	}
	return fmt.Sprintf(`tell application "System Events" to keystroke "%s"`, key)
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// runAppleScript executes an AppleScript command and returns any error.
func runAppleScript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}
