package gesture

import "github.com/ayusman/mudra/internal/detector"

// rule pairs a label with its predicate. Rules are evaluated in order
// and the first match wins, so more constrained poses must sit before
// the permissive catch-alls.
type rule struct {
	label Label
	match func(f *features, t Thresholds) bool
}

// defaultRules returns the canonical cascade. Ordering is deliberate:
// the pointer poses precede PointingUp so continuous control wins over
// the generic one-shot trigger, and the pinch family precedes the
// Palm/ClosedFist catch-alls because a pinch pose can satisfy the fist
// threshold. With the full set enabled, MouseControl shadows OneFinger
// and Victory shadows TwoFingers; policies that disable pointer control
// fall through to the counting poses instead.
func defaultRules() []rule {
	return []rule{
		{MouseClick, func(f *features, t Thresholds) bool {
			return f.indexOnly() && f.longBase[index] && f.pinch < t.PinchDistance
		}},
		{MouseControl, func(f *features, t Thresholds) bool {
			return f.indexOnly() && f.longBase[index]
		}},
		{Pinch, func(f *features, t Thresholds) bool {
			return f.pinch < t.PinchDistance && f.allCurled()
		}},
		{OKSign, func(f *features, t Thresholds) bool {
			return f.pinch < t.PinchDistance && f.allOpen()
		}},
		{ZoomPinch, func(f *features, t Thresholds) bool {
			return f.pinch < t.PinchDistance
		}},
		{FingerGun, func(f *features, t Thresholds) bool {
			return f.thumbUp && f.extended[thumb] && f.extended[index] && f.allCurled()
		}},
		{Victory, func(f *features, t Thresholds) bool {
			return f.raised[index] && f.raised[middle] && !f.raised[ring] && !f.raised[pinky]
		}},
		{ThreeFingers, func(f *features, t Thresholds) bool {
			return f.raised[index] && f.raised[middle] && f.raised[ring] && !f.raised[pinky]
		}},
		{TwoFingers, func(f *features, t Thresholds) bool {
			return f.raised[index] && f.raised[middle] && f.longBase[index] && f.longBase[middle] &&
				!f.raised[ring] && !f.raised[pinky]
		}},
		{OneFinger, func(f *features, t Thresholds) bool {
			return f.indexOnly() && f.longBase[index]
		}},
		{ThumbsUp, func(f *features, t Thresholds) bool {
			return f.thumbUp && onlyThumb(f)
		}},
		{ThumbsDown, func(f *features, t Thresholds) bool {
			return !f.thumbUp && onlyThumb(f)
		}},
		{PointingUp, func(f *features, t Thresholds) bool {
			return f.extended[index] && !f.extended[thumb] &&
				!f.extended[middle] && !f.extended[ring] && !f.extended[pinky]
		}},
		{Palm, func(f *features, t Thresholds) bool {
			return f.extended[thumb] && f.extended[index] && f.allOpen()
		}},
		{ClosedFist, func(f *features, t Thresholds) bool {
			return !f.extended[thumb] && !f.extended[index] && f.allCurled()
		}},
	}
}

func onlyThumb(f *features) bool {
	return f.extended[thumb] && !f.extended[index] && f.allCurled()
}

// Classifier maps one hand's landmarks to a Label. It is a pure
// function of its input and thresholds; identical frames always yield
// identical labels.
type Classifier struct {
	thresholds Thresholds
	rules      []rule
}

// NewClassifier creates a Classifier with the canonical rule cascade.
// If labels are given only those rules are kept, preserving the
// canonical order; this is the policy hook for hosts that want a
// narrower gesture set.
func NewClassifier(t Thresholds, labels ...Label) *Classifier {
	rules := defaultRules()
	if len(labels) > 0 {
		enabled := make(map[Label]bool, len(labels))
		for _, l := range labels {
			enabled[l] = true
		}
		kept := rules[:0]
		for _, r := range rules {
			if enabled[r.label] {
				kept = append(kept, r)
			}
		}
		rules = kept
	}
	return &Classifier{thresholds: t, rules: rules}
}

// Thresholds returns the tuning the classifier was built with.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify returns the label for one hand. Unknown is returned when no
// rule matches or the hand is nil; ambiguity is never an error.
func (c *Classifier) Classify(h *detector.HandLandmarks) Label {
	if h == nil {
		return Unknown
	}

	f := computeFeatures(h, c.thresholds)
	for _, r := range c.rules {
		if r.match(&f, c.thresholds) {
			return r.label
		}
	}
	return Unknown
}
