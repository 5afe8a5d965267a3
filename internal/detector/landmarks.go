// Package detector provides hand detection interfaces and landmark
// types for the mudra pose pipeline.
package detector

import (
	"errors"
	"fmt"
)

// Hand landmark indices following the MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// ErrMalformedFrame is returned when a landmarker delivers fewer than
// 21 points for a hand. Such hands are dropped before classification.
var ErrMalformedFrame = errors.New("malformed landmark frame")

// Point3D is one landmark in normalized frame coordinates. X and Y lie
// in [0,1] relative to the camera frame; Z is relative depth and is not
// used by classification.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks is one hand's immutable per-frame snapshot: exactly 21
// points whose indices are positionally meaningful and never reordered.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// FromPoints builds a HandLandmarks from a landmarker's point list,
// rejecting short frames. Extra points beyond 21 are ignored.
func FromPoints(points []Point3D, handedness string, score float64) (HandLandmarks, error) {
	if len(points) < NumLandmarks {
		return HandLandmarks{}, fmt.Errorf("%w: got %d points, need %d", ErrMalformedFrame, len(points), NumLandmarks)
	}

	h := HandLandmarks{
		Handedness: handedness,
		Score:      score,
	}
	copy(h.Points[:], points[:NumLandmarks])
	return h, nil
}
