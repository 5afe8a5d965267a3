// Package action turns final gesture decisions into abstract input
// commands and hands them to an injection sink. The sink owns OS
// delivery; the dispatcher only decides what to emit.
package action

import "github.com/ayusman/mudra/internal/gesture"

// Kind discriminates the command variants on the sink boundary.
type Kind string

const (
	KindKey        Kind = "key"
	KindMoveCursor Kind = "move_cursor"
	KindClick      Kind = "click"
)

// Command is one abstract input event.
type Command struct {
	Kind   Kind   `json:"kind"`
	Key    string `json:"key,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Button string `json:"button,omitempty"`
}

// Press returns a key-press command.
func Press(key string) Command {
	return Command{Kind: KindKey, Key: key}
}

// Click returns a mouse-click command for "left" or "right".
func Click(button string) Command {
	return Command{Kind: KindClick, Button: button}
}

// MoveCursor returns a cursor-move command in screen coordinates.
func MoveCursor(x, y int) Command {
	return Command{Kind: KindMoveCursor, X: x, Y: y}
}

// Sink delivers commands to the operating system. Implementations must
// report success or failure per command and may retry internally; the
// dispatcher neither knows nor cares how delivery happens.
type Sink interface {
	Deliver(cmd Command) error
}

// Bindings is the replaceable policy table from gesture label to
// command. Labels with no entry emit nothing. MouseControl needs no
// entry: pointer moves are synthesized from landmark positions, not
// looked up.
type Bindings map[gesture.Label]Command

// DefaultBindings returns the stock mapping.
func DefaultBindings() Bindings {
	return Bindings{
		gesture.ClosedFist: Press("escape"),
		gesture.Palm:       Press("space"),
		gesture.ThumbsUp:   Press("audio_vol_up"),
		gesture.ThumbsDown: Press("audio_vol_down"),
		gesture.PointingUp: Press("up"),
		gesture.Victory:    Press("tab"),
		gesture.ZoomIn:     Press("+"),
		gesture.ZoomOut:    Press("-"),
		gesture.MouseClick: Click("left"),
	}
}
