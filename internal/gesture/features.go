package gesture

import "github.com/ayusman/mudra/internal/detector"

// Finger indices used by the feature set: 0=thumb .. 4=pinky.
const (
	thumb = iota
	index
	middle
	ring
	pinky
	numFingers
)

var (
	fingerTips  = [numFingers]int{detector.ThumbTip, detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}
	fingerBases = [numFingers]int{detector.ThumbMCP, detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP}
)

// features is the per-frame geometric signal set every rule predicate
// reads from. Computing it once keeps the cascade cheap and keeps the
// predicates free of landmark indexing.
type features struct {
	tipWrist [numFingers]float64 // fingertip-to-wrist distance
	fromBase [numFingers]float64 // fingertip-to-base distance
	offset   [numFingers]float64 // base-to-tip y offset

	extended [numFingers]bool // tipWrist above Extension
	raised   [numFingers]bool // offset above YOffset
	longBase [numFingers]bool // fromBase above BaseDistance

	pinch   float64 // thumb tip to index tip distance
	thumbUp bool    // thumb tip above the wrist
}

func computeFeatures(h *detector.HandLandmarks, t Thresholds) features {
	var f features

	wrist := h.Points[detector.Wrist]
	for i := 0; i < numFingers; i++ {
		tip := h.Points[fingerTips[i]]
		base := h.Points[fingerBases[i]]

		f.tipWrist[i] = Distance(tip, wrist)
		f.fromBase[i] = Distance(tip, base)
		f.offset[i] = YOffset(base, tip)

		f.extended[i] = f.tipWrist[i] > t.Extension
		f.raised[i] = f.offset[i] > t.YOffset
		f.longBase[i] = f.fromBase[i] > t.BaseDistance
	}

	f.pinch = Distance(h.Points[detector.ThumbTip], h.Points[detector.IndexTip])
	f.thumbUp = h.Points[detector.ThumbTip].Y < wrist.Y

	return f
}

// allCurled reports whether middle, ring and pinky are all folded into
// the palm. Used to split Pinch from the relaxed ZoomPinch.
func (f *features) allCurled() bool {
	return !f.extended[middle] && !f.extended[ring] && !f.extended[pinky]
}

// allOpen reports whether middle, ring and pinky are all extended.
func (f *features) allOpen() bool {
	return f.extended[middle] && f.extended[ring] && f.extended[pinky]
}

// indexOnly reports whether the index finger is the only raised finger.
func (f *features) indexOnly() bool {
	return f.raised[index] && !f.raised[middle] && !f.raised[ring] && !f.raised[pinky]
}
