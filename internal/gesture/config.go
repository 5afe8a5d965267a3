package gesture

import "time"

// Thresholds holds the numeric tunables for classification and
// debouncing. The exact values are empirically tuned; nothing in the
// rule cascade hardcodes them.
type Thresholds struct {
	// Extension is the minimum fingertip-to-wrist distance, in
	// normalized units, for a finger to count as extended.
	Extension float64

	// YOffset is the minimum base-to-tip y offset for a finger to
	// count as raised. Positive offsets point up because image
	// coordinates grow downward.
	YOffset float64

	// BaseDistance is the minimum fingertip-to-base distance that
	// confirms true extension rather than lateral drift.
	BaseDistance float64

	// PinchDistance is the maximum thumb-to-index tip distance for a
	// pinch.
	PinchDistance float64

	// ZoomJitter is the minimum change in the two-hand pinch distance
	// treated as intentional movement rather than sensor noise.
	ZoomJitter float64

	// Cooldown is the minimum time between two discrete action
	// dispatches.
	Cooldown time.Duration
}

// DefaultThresholds returns the canonical tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Extension:     0.12,
		YOffset:       0.04,
		BaseDistance:  0.10,
		PinchDistance: 0.06,
		ZoomJitter:    0.04,
		Cooldown:      1200 * time.Millisecond,
	}
}
