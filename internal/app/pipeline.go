package app

import (
	"fmt"
	"log"
	"time"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// runPipeline is the main detection loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (idleFPS=5)
// 2. On motion detected, switch to active mode (activeFPS=15)
// 3. Run hand detection
// 4. Classify, aggregate, gate and dispatch via Process
// 5. After 2s no motion, switch back to idle mode
func (a *App) runPipeline() {
	// Track whether we're in active mode
	activeMode := false

	// Track the last motion detection time
	lastMotionTime := time.Now()

	// Frame interval based on current FPS
	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				// Switch to active mode if not already
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				// Check if we should switch back to idle mode
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// Skip further processing if not in active mode or no detector
			if !activeMode || a.Detector() == nil {
				frame.Close()
				continue
			}

			// Step 2: Hand detection
			hands, err := a.Detector().Detect(frame)
			frame.Close() // Done with the frame

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			// Step 3: Classification and dispatch. An empty hand list
			// still goes through so tracking loss resets the transient
			// session state.
			a.Process(hands, time.Now())
		}
	}
}

// Process runs one frame's worth of classification, aggregation,
// gating and dispatch, and returns the feedback event. It is invoked
// once per captured frame and runs to completion before the next frame
// is accepted; all session state is confined to this call path.
func (a *App) Process(hands []detector.HandLandmarks, now time.Time) Event {
	a.mu.RLock()
	classifier, aggregator, gate := a.classifier, a.aggregator, a.gate
	a.mu.RUnlock()

	if len(hands) == 0 {
		// Tracking loss: correlation and pointer baselines reset, the
		// cooldown timer deliberately does not.
		aggregator.Reset()
		a.dispatcher.ResetPointer()
		return a.emit(gesture.Unknown, now)
	}

	labels := make([]gesture.Label, len(hands))
	for i := range hands {
		labels[i] = classifier.Classify(&hands[i])
	}

	// Two pinching hands override the individual labels with a zoom
	// intent.
	if zoom, ok := aggregator.Observe(hands, labels); ok {
		a.dispatcher.ResetPointer()
		a.fire(gate, zoom, now)
		return a.emit(zoom, now)
	}

	// The first hand drives pointer control and discrete actions.
	primary := labels[0]
	switch primary {
	case gesture.MouseControl, gesture.MouseClick:
		// Continuous pointer tracking happens every frame regardless of
		// cooldown state.
		a.dispatcher.MovePointer(hands[0].Points[detector.IndexTip])
		if primary == gesture.MouseClick {
			a.fire(gate, primary, now)
		}
	default:
		// Pointer mode ended; the next activation starts from a fresh
		// baseline.
		a.dispatcher.ResetPointer()
		a.fire(gate, primary, now)
	}

	return a.emit(primary, now)
}

// fire dispatches the label's bound command if the gate allows it now.
// Unbound labels never consume the cooldown.
func (a *App) fire(gate *gesture.Gate, label gesture.Label, now time.Time) {
	if label == gesture.Unknown || !a.dispatcher.Bound(label) {
		return
	}
	if !gate.Allow(label, now) {
		return
	}
	if cmd, ok := a.dispatcher.Dispatch(label); ok {
		a.recordAction(label, cmd)
	}
}

func (a *App) recordAction(label gesture.Label, cmd action.Command) {
	var desc string
	switch cmd.Kind {
	case action.KindKey:
		desc = fmt.Sprintf("%s: press %s", label, cmd.Key)
	case action.KindClick:
		desc = fmt.Sprintf("%s: click %s", label, cmd.Button)
	case action.KindMoveCursor:
		desc = fmt.Sprintf("%s: move cursor", label)
	}

	a.mu.Lock()
	a.lastAction = desc
	a.mu.Unlock()
}

// emit builds the per-frame feedback event and hands it to the UI
// callback. Injection errors are surfaced exactly once.
func (a *App) emit(label gesture.Label, now time.Time) Event {
	a.mu.Lock()
	ev := Event{
		Label:      label,
		LastAction: a.lastAction,
		Error:      a.lastError,
		Timestamp:  now.UnixMilli(),
	}
	a.lastError = ""
	fn := a.onEvent
	a.mu.Unlock()

	if fn != nil {
		fn(ev)
	}
	return ev
}
