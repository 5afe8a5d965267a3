package gesture

import "github.com/ayusman/mudra/internal/detector"

// Aggregator correlates per-hand pinch state across the hands visible
// in a frame to detect the two-hand zoom gesture. It holds the only
// cross-frame state in the classification path: the pinch-midpoint
// distance baseline.
//
// Hand order is not stable across frames, so the aggregator never
// assumes hand identity; it only cares that exactly two hands are
// pinching.
type Aggregator struct {
	jitter   float64
	last     float64
	tracking bool
}

// NewAggregator creates an Aggregator with the given jitter floor.
func NewAggregator(jitter float64) *Aggregator {
	return &Aggregator{jitter: jitter}
}

// pinchMidpoint returns the point halfway between the thumb and index
// tips.
func pinchMidpoint(h *detector.HandLandmarks) detector.Point3D {
	thumbTip := h.Points[detector.ThumbTip]
	indexTip := h.Points[detector.IndexTip]
	return detector.Point3D{
		X: (thumbTip.X + indexTip.X) / 2,
		Y: (thumbTip.Y + indexTip.Y) / 2,
	}
}

// Observe inspects one frame's hands and labels. When exactly two
// hands are pinching it tracks the distance between their pinch
// midpoints; a change beyond the jitter floor yields ZoomIn (hands
// moving apart) or ZoomOut and advances the baseline. Smaller changes
// are absorbed. With fewer than two pinching hands the baseline resets
// so the next two-hand pinch starts fresh rather than reading stale
// data.
func (a *Aggregator) Observe(hands []detector.HandLandmarks, labels []Label) (Label, bool) {
	var midpoints []detector.Point3D
	for i := range hands {
		if i >= len(labels) {
			break
		}
		if labels[i] == Pinch || labels[i] == ZoomPinch {
			midpoints = append(midpoints, pinchMidpoint(&hands[i]))
		}
	}

	if len(midpoints) != 2 {
		a.Reset()
		return Unknown, false
	}

	dist := Distance(midpoints[0], midpoints[1])
	if !a.tracking {
		a.last = dist
		a.tracking = true
		return Unknown, false
	}

	delta := dist - a.last
	if delta > a.jitter {
		a.last = dist
		return ZoomIn, true
	}
	if delta < -a.jitter {
		a.last = dist
		return ZoomOut, true
	}
	return Unknown, false
}

// Reset clears the distance baseline. Called on tracking loss and when
// the pipeline stops.
func (a *Aggregator) Reset() {
	a.last = 0
	a.tracking = false
}
