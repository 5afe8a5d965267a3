// Package main provides the pointer plugin.
// It drives the system cursor with robotgo: absolute moves and button
// clicks.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-vgo/robotgo"
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

// MoveParams defines parameters for the move action.
type MoveParams struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ClickParams defines parameters for the click action.
type ClickParams struct {
	Button string `json:"button"`
}

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	var err error
	switch req.Action {
	case "move":
		err = handleMove(req.Params)
	case "click":
		err = handleClick(req.Params)
	default:
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	if err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	// Write success response
	writeSuccessResponse()
}

// handleMove processes a move action.
func handleMove(params json.RawMessage) error {
	var p MoveParams
	if err := json.Unmarshal(params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}

	robotgo.Move(p.X, p.Y)
	return nil
}

// handleClick processes a click action.
func handleClick(params json.RawMessage) error {
	var p ClickParams
	if err := json.Unmarshal(params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}

	button := p.Button
	if button == "" {
		button = "left"
	}
	if button != "left" && button != "right" && button != "center" {
		return fmt.Errorf("unknown button: %s", button)
	}

	robotgo.Click(button)
	return nil
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
