package detector

// Preset landmark builders for tests and the mock detector. Poses are
// assembled from a shared base hand (wrist bottom-center, fingers
// curled into the palm) with per-finger chains swapped between curled
// and extended positions. Coordinates are normalized image coordinates
// with y growing downward.

// chain holds the PIP, DIP and tip positions for one finger (IP and
// tip for the thumb, with an unused third entry).
type chain [3]Point3D

var (
	// Order: thumb (IP, tip), index, middle, ring, pinky.
	curledChains = [5]chain{
		{{X: 0.56, Y: 0.71}, {X: 0.56, Y: 0.74}, {}},
		{{X: 0.53, Y: 0.70}, {X: 0.51, Y: 0.71}, {X: 0.49, Y: 0.71}},
		{{X: 0.48, Y: 0.68}, {X: 0.47, Y: 0.70}, {X: 0.46, Y: 0.71}},
		{{X: 0.44, Y: 0.70}, {X: 0.43, Y: 0.72}, {X: 0.43, Y: 0.73}},
		{{X: 0.39, Y: 0.72}, {X: 0.40, Y: 0.74}, {X: 0.40, Y: 0.75}},
	}

	// Thumb extends to the side, the other fingers point up.
	extendedChains = [5]chain{
		{{X: 0.68, Y: 0.65}, {X: 0.73, Y: 0.60}, {}},
		{{X: 0.57, Y: 0.55}, {X: 0.58, Y: 0.45}, {X: 0.58, Y: 0.35}},
		{{X: 0.50, Y: 0.52}, {X: 0.50, Y: 0.40}, {X: 0.50, Y: 0.28}},
		{{X: 0.43, Y: 0.55}, {X: 0.42, Y: 0.45}, {X: 0.42, Y: 0.35}},
		{{X: 0.37, Y: 0.60}, {X: 0.35, Y: 0.50}, {X: 0.34, Y: 0.42}},
	}

	// thumbUpChain points the thumb vertically, for thumbs-up and
	// finger-gun poses.
	thumbUpChain = chain{{X: 0.58, Y: 0.50}, {X: 0.58, Y: 0.35}, {}}
)

var fingerJoints = [5][3]int{
	{ThumbIP, ThumbTip, -1},
	{IndexPIP, IndexDIP, IndexTip},
	{MiddlePIP, MiddleDIP, MiddleTip},
	{RingPIP, RingDIP, RingTip},
	{PinkyPIP, PinkyDIP, PinkyTip},
}

// basePose returns a right hand, wrist at (0.5, 0.8), all fingers
// curled.
func basePose() HandLandmarks {
	h := HandLandmarks{Handedness: "Right", Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}
	h.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.68}
	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}
	h.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	h.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70}

	for finger := 0; finger < 5; finger++ {
		setChain(&h, finger, curledChains[finger])
	}
	return h
}

func setChain(h *HandLandmarks, finger int, c chain) {
	for j, idx := range fingerJoints[finger] {
		if idx < 0 {
			continue
		}
		h.Points[idx] = c[j]
	}
}

func extend(h *HandLandmarks, fingers ...int) {
	for _, f := range fingers {
		setChain(h, f, extendedChains[f])
	}
}

// Translate returns a copy of h with every point shifted by (dx, dy).
// Useful for placing two hands apart in aggregator tests.
func Translate(h HandLandmarks, dx, dy float64) HandLandmarks {
	for i := range h.Points {
		h.Points[i].X += dx
		h.Points[i].Y += dy
	}
	return h
}

// OpenPalmLandmarks returns a hand with all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	h := basePose()
	extend(&h, 0, 1, 2, 3, 4)
	return h
}

// ClosedFistLandmarks returns a hand with every fingertip near the
// wrist.
func ClosedFistLandmarks() HandLandmarks {
	return basePose()
}

// ThumbsUpLandmarks returns a hand with only the thumb extended,
// pointing above the wrist.
func ThumbsUpLandmarks() HandLandmarks {
	h := basePose()
	setChain(&h, 0, thumbUpChain)
	return h
}

// ThumbsDownLandmarks returns a hand with only the thumb extended,
// pointing below the wrist.
func ThumbsDownLandmarks() HandLandmarks {
	h := basePose()
	setChain(&h, 0, chain{{X: 0.58, Y: 0.86}, {X: 0.58, Y: 0.94}, {}})
	return h
}

// PointingUpLandmarks returns a hand with the index finger half
// extended upward and every other finger curled. The tip clears the
// wrist-distance threshold but stays close to its base, so it reads as
// a point rather than pointer control.
func PointingUpLandmarks() HandLandmarks {
	h := basePose()
	setChain(&h, 1, chain{{X: 0.56, Y: 0.65}, {X: 0.57, Y: 0.62}, {X: 0.58, Y: 0.60}})
	return h
}

// PinchLandmarks returns a hand with thumb and index tips touching and
// the remaining fingers curled into the palm.
func PinchLandmarks() HandLandmarks {
	h := basePose()
	setChain(&h, 0, chain{{X: 0.56, Y: 0.70}, {X: 0.55, Y: 0.68}, {}})
	setChain(&h, 1, chain{{X: 0.54, Y: 0.70}, {X: 0.54, Y: 0.68}, {X: 0.54, Y: 0.66}})
	return h
}

// ZoomPinchLandmarks returns a pinch with the middle finger left
// extended, the relaxed form used for two-hand zoom.
func ZoomPinchLandmarks() HandLandmarks {
	h := PinchLandmarks()
	extend(&h, 2)
	return h
}

// OKSignLandmarks returns a pinch with middle, ring and pinky all
// extended.
func OKSignLandmarks() HandLandmarks {
	h := PinchLandmarks()
	extend(&h, 2, 3, 4)
	return h
}

// VictorySignLandmarks returns a hand with index and middle raised and
// ring and pinky curled.
func VictorySignLandmarks() HandLandmarks {
	h := basePose()
	extend(&h, 1, 2)
	return h
}

// ThreeFingersLandmarks returns a hand with index, middle and ring
// raised and the pinky curled.
func ThreeFingersLandmarks() HandLandmarks {
	h := basePose()
	extend(&h, 1, 2, 3)
	return h
}

// FingerGunLandmarks returns a hand with the thumb up, the index
// extended sideways and the other fingers curled.
func FingerGunLandmarks() HandLandmarks {
	h := basePose()
	setChain(&h, 0, thumbUpChain)
	setChain(&h, 1, chain{{X: 0.62, Y: 0.69}, {X: 0.69, Y: 0.70}, {X: 0.75, Y: 0.70}})
	return h
}

// MouseControlLandmarks returns a hand with only the index raised,
// fully extended from its base: the continuous pointer pose.
func MouseControlLandmarks() HandLandmarks {
	h := basePose()
	extend(&h, 1)
	return h
}

// MouseClickLandmarks returns the pointer pose with the thumb tip
// brought up next to the index tip.
func MouseClickLandmarks() HandLandmarks {
	h := basePose()
	setChain(&h, 1, chain{{X: 0.57, Y: 0.58}, {X: 0.58, Y: 0.50}, {X: 0.58, Y: 0.42}})
	setChain(&h, 0, chain{{X: 0.57, Y: 0.55}, {X: 0.56, Y: 0.44}, {}})
	return h
}
