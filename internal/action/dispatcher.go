package action

import (
	"log"
	"math"
	"sync"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// Config holds dispatcher tunables.
type Config struct {
	// ScreenWidth and ScreenHeight are the target display dimensions
	// for pointer mapping.
	ScreenWidth  int
	ScreenHeight int

	// Smoothing in [0,1) controls the exponential filter on pointer
	// moves; closer to 1 is smoother and slower.
	Smoothing float64
}

// DefaultConfig returns dispatcher defaults for a 1080p display.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		Smoothing:    0.5,
	}
}

// Dispatcher maps decided gestures to commands and emits them to the
// sink. It owns the smoothed pointer baseline and the one-shot
// injection error notice; a sink failure never halts the pipeline.
type Dispatcher struct {
	sink Sink

	// bindings and config are hot-swapped by configuration reloads
	// while the pipeline dispatches, hence their own lock.
	mu       sync.RWMutex
	bindings Bindings
	config   Config

	lastX, lastY float64
	hasLast      bool

	lastErr  error
	notified bool
	onError  func(error)
}

// NewDispatcher creates a Dispatcher. A nil bindings table falls back
// to DefaultBindings.
func NewDispatcher(sink Sink, bindings Bindings, config Config) *Dispatcher {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Dispatcher{
		sink:     sink,
		bindings: bindings,
		config:   config,
	}
}

// OnError registers the one-shot callback invoked the first time the
// sink reports a delivery failure. Later failures are logged only.
func (d *Dispatcher) OnError(fn func(error)) {
	d.onError = fn
}

// SetBindings replaces the policy table.
func (d *Dispatcher) SetBindings(b Bindings) {
	if b == nil {
		return
	}
	d.mu.Lock()
	d.bindings = b
	d.mu.Unlock()
}

// Config returns the current pointer mapping configuration.
func (d *Dispatcher) Config() Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.config
}

// SetConfig replaces the pointer mapping configuration. An existing
// smoothing baseline carries over; the next move smooths from the
// previous emitted position under the new mapping.
func (d *Dispatcher) SetConfig(c Config) {
	d.mu.Lock()
	d.config = c
	d.mu.Unlock()
}

// Bound reports whether the label maps to a command.
func (d *Dispatcher) Bound(label gesture.Label) bool {
	d.mu.RLock()
	_, ok := d.bindings[label]
	d.mu.RUnlock()
	return ok
}

// Dispatch looks up the label's command and delivers it. It returns
// the command and whether delivery succeeded; unbound labels return
// false without touching the sink.
func (d *Dispatcher) Dispatch(label gesture.Label) (Command, bool) {
	d.mu.RLock()
	cmd, ok := d.bindings[label]
	d.mu.RUnlock()
	if !ok {
		return Command{}, false
	}
	return cmd, d.deliver(cmd)
}

// MovePointer converts the index fingertip's normalized position to a
// mirrored screen position, smooths it against the previous emitted
// position and delivers the move. The first move after a reset emits
// the raw position and seeds the baseline.
func (d *Dispatcher) MovePointer(tip detector.Point3D) (Command, bool) {
	cfg := d.Config()
	rawX := (1 - tip.X) * float64(cfg.ScreenWidth)
	rawY := tip.Y * float64(cfg.ScreenHeight)

	x, y := rawX, rawY
	if d.hasLast {
		x = d.lastX + (rawX-d.lastX)*(1-cfg.Smoothing)
		y = d.lastY + (rawY-d.lastY)*(1-cfg.Smoothing)
	}
	d.lastX, d.lastY = x, y
	d.hasLast = true

	cmd := MoveCursor(int(math.Round(x)), int(math.Round(y)))
	return cmd, d.deliver(cmd)
}

// ResetPointer clears the smoothing baseline so the next pointer
// activation does not glide in from a stale position. Called when the
// pointer gesture ends and on tracking loss.
func (d *Dispatcher) ResetPointer() {
	d.hasLast = false
	d.lastX, d.lastY = 0, 0
}

// Err returns the most recent injection failure, or nil.
func (d *Dispatcher) Err() error {
	return d.lastErr
}

// ClearError resets the error state so a future failure notifies
// again.
func (d *Dispatcher) ClearError() {
	d.lastErr = nil
	d.notified = false
}

func (d *Dispatcher) deliver(cmd Command) bool {
	if d.sink == nil {
		return false
	}
	if err := d.sink.Deliver(cmd); err != nil {
		log.Printf("Input injection failed: %v", err)
		d.lastErr = err
		if !d.notified {
			d.notified = true
			if d.onError != nil {
				d.onError(err)
			}
		}
		return false
	}
	return true
}
