package plugin

import (
	"encoding/json"
	"fmt"

	"github.com/ayusman/mudra/internal/action"
)

// Plugin names the sink routes commands to.
const (
	KeyboardPlugin = "keyboard"
	PointerPlugin  = "pointer"
)

// Sink adapts discovered plugins to the action.Sink boundary: key
// commands go to the keyboard plugin, cursor moves and clicks to the
// pointer plugin. Whatever retry or fallback strategy a plugin uses
// internally stays behind this wall; the dispatcher only sees one
// success-or-failure result per command.
type Sink struct {
	manager  *Manager
	executor *Executor
}

// NewSink creates a plugin-backed action sink.
func NewSink(manager *Manager, executor *Executor) *Sink {
	return &Sink{manager: manager, executor: executor}
}

type keyParams struct {
	Key string `json:"key"`
}

type moveParams struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type clickParams struct {
	Button string `json:"button"`
}

// Deliver implements action.Sink.
func (s *Sink) Deliver(cmd action.Command) error {
	switch cmd.Kind {
	case action.KindKey:
		return s.run(KeyboardPlugin, "press", keyParams{Key: cmd.Key})
	case action.KindMoveCursor:
		return s.run(PointerPlugin, "move", moveParams{X: cmd.X, Y: cmd.Y})
	case action.KindClick:
		return s.run(PointerPlugin, "click", clickParams{Button: cmd.Button})
	default:
		return fmt.Errorf("unknown command kind %q", cmd.Kind)
	}
}

func (s *Sink) run(pluginName, actionName string, params any) error {
	p, err := s.manager.Get(pluginName)
	if err != nil {
		return fmt.Errorf("resolve plugin %s: %w", pluginName, err)
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	resp, err := s.executor.Execute(p, &Request{
		Action: actionName,
		Params: raw,
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("plugin %s: %s", pluginName, resp.Error)
	}
	return nil
}
