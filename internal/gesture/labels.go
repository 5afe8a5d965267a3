// Package gesture implements the pose classification core: a prioritized
// rule cascade over hand landmark geometry, cross-hand aggregation for
// two-hand zoom, and the cooldown gate that rate-limits discrete actions.
package gesture

// Label identifies a recognized hand pose.
type Label string

const (
	// Unknown is the universal fallback when no rule matches.
	Unknown Label = "unknown"

	Palm         Label = "palm"
	ClosedFist   Label = "closed_fist"
	PointingUp   Label = "pointing_up"
	ThumbsUp     Label = "thumbs_up"
	ThumbsDown   Label = "thumbs_down"
	Pinch        Label = "pinch"
	ZoomPinch    Label = "zoom_pinch"
	Victory      Label = "victory"
	ThreeFingers Label = "three_fingers"
	TwoFingers   Label = "two_fingers"
	OneFinger    Label = "one_finger"
	FingerGun    Label = "finger_gun"
	OKSign       Label = "ok_sign"
	MouseControl Label = "mouse_control"
	MouseClick   Label = "mouse_click"

	// ZoomIn and ZoomOut are composite intents produced by the
	// Aggregator from two pinching hands, never by the Classifier.
	ZoomIn  Label = "zoom_in"
	ZoomOut Label = "zoom_out"
)

// Continuous reports whether the label represents an ongoing analog
// control that is re-evaluated every frame and exempt from the cooldown
// gate. Zoom deltas carry their own jitter-floor gating in the
// Aggregator, so they bypass the gate as well.
func (l Label) Continuous() bool {
	switch l {
	case MouseControl, ZoomIn, ZoomOut:
		return true
	}
	return false
}

func (l Label) String() string {
	return string(l)
}
