// Package app wires the mudra pipeline together: camera frames in,
// landmark detection, per-hand classification, cross-hand aggregation,
// cooldown gating and action dispatch out.
package app

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	PluginDir    string
	CameraID     int
	MotionThresh float64

	// Camera overrides the device-backed camera; used by tests and
	// recorded-session playback.
	Camera capture.Camera

	// Thresholds tunes classification and debouncing. A zero Cooldown
	// selects DefaultThresholds.
	Thresholds gesture.Thresholds

	// Dispatch tunes pointer mapping. Zero screen dimensions select
	// action.DefaultConfig.
	Dispatch action.Config

	// Sink overrides the plugin-backed injection sink; used by tests.
	Sink action.Sink
}

// Event is the per-frame feedback handed to UI collaborators: the
// current label, the last dispatched action and any injection error.
type Event struct {
	Label      gesture.Label `json:"label"`
	LastAction string        `json:"last_action,omitempty"`
	Error      string        `json:"error,omitempty"`
	Timestamp  int64         `json:"timestamp"`
}

// App is the main application that orchestrates gesture detection and
// action dispatch.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	aggregator *gesture.Aggregator
	gate       *gesture.Gate
	dispatcher *action.Dispatcher
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor

	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
	onEvent    func(Event)
	lastAction string
	lastError  string
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	thresholds := config.Thresholds
	if thresholds.Cooldown == 0 {
		thresholds = gesture.DefaultThresholds()
	}

	dispatch := config.Dispatch
	if dispatch.ScreenWidth == 0 || dispatch.ScreenHeight == 0 {
		dispatch = action.DefaultConfig()
	}

	camera := config.Camera
	if camera == nil {
		camera = capture.NewCamera(config.CameraID)
	}

	a := &App{
		config:     config,
		camera:     camera,
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: gesture.NewClassifier(thresholds),
		aggregator: gesture.NewAggregator(thresholds.ZoomJitter),
		gate:       gesture.NewGate(thresholds.Cooldown),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(5000), // 5 second timeout for plugin execution
		enabled:    false,
		stopCh:     nil,
	}

	sink := config.Sink
	if sink == nil {
		sink = plugin.NewSink(a.pluginMgr, a.pluginExec)
	}
	a.dispatcher = action.NewDispatcher(sink, action.DefaultBindings(), dispatch)
	a.dispatcher.OnError(func(err error) {
		a.mu.Lock()
		a.lastError = err.Error()
		a.mu.Unlock()
	})

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// OnEvent registers the per-frame feedback callback. The callback runs
// on the pipeline goroutine and must not block.
func (a *App) OnEvent(fn func(Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onEvent = fn
}

// LoadConfig loads bindings and threshold overrides from the store.
func (a *App) LoadConfig() error {
	if a.config.Store == nil {
		return nil
	}

	table, err := a.config.Store.Bindings().Table()
	if err != nil {
		return err
	}
	if len(table) > 0 {
		a.dispatcher.SetBindings(table)
		log.Printf("Loaded %d gesture bindings from database", len(table))
	}

	a.applySettings()
	return nil
}

// applySettings overlays persisted tunables on the current values and
// rebuilds the affected components. The lock spans the read of the
// current thresholds and the swap so concurrent reloads cannot
// interleave.
func (a *App) applySettings() {
	settings := a.config.Store.Settings()

	a.mu.Lock()
	defer a.mu.Unlock()

	t := a.classifier.Thresholds()
	t.Extension = settings.GetFloat("extension_threshold", t.Extension)
	t.YOffset = settings.GetFloat("y_offset_threshold", t.YOffset)
	t.BaseDistance = settings.GetFloat("base_distance_threshold", t.BaseDistance)
	t.PinchDistance = settings.GetFloat("pinch_threshold", t.PinchDistance)
	t.ZoomJitter = settings.GetFloat("zoom_jitter", t.ZoomJitter)
	if ms, err := settings.Get("cooldown_ms"); err == nil {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 {
			t.Cooldown = time.Duration(v) * time.Millisecond
		}
	}

	a.classifier = gesture.NewClassifier(t)
	a.aggregator = gesture.NewAggregator(t.ZoomJitter)
	a.gate = gesture.NewGate(t.Cooldown)

	c := a.dispatcher.Config()
	if s := settings.GetFloat("smoothing", c.Smoothing); s >= 0 && s < 1 {
		c.Smoothing = s
	}
	if w := int(settings.GetFloat("screen_width", float64(c.ScreenWidth))); w > 0 {
		c.ScreenWidth = w
	}
	if h := int(settings.GetFloat("screen_height", float64(c.ScreenHeight))); h > 0 {
		c.ScreenHeight = h
	}
	a.dispatcher.SetConfig(c)
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline, releases resources and clears the
// transient session state. The cooldown timestamp survives so a quick
// restart cannot replay a just-fired action.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	a.aggregator.Reset()
	a.dispatcher.ResetPointer()
	a.lastAction = ""

	log.Println("Detection pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Dispatcher returns the action dispatcher.
func (a *App) Dispatcher() *action.Dispatcher {
	return a.dispatcher
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
