package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

// solidFrame returns a 640x480 BGR frame filled with one intensity.
func solidFrame(t *testing.T, value float64) *gocv.Mat {
	t.Helper()

	mat := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	if value != 0 {
		mat.SetTo(gocv.NewScalar(value, value, value, 0))
	}
	t.Cleanup(func() { mat.Close() })
	return &mat
}

func TestMotionDetector_FirstFrameSeedsBaseline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv Mat test in short mode")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	// The seeding frame has nothing to diff against: no motion, no
	// change, even for a busy scene.
	detected, changePercent := md.Detect(solidFrame(t, 255))
	if detected {
		t.Error("seeding frame reported motion")
	}
	if changePercent != 0 {
		t.Errorf("seeding frame changePercent = %f, want 0", changePercent)
	}
}

func TestMotionDetector_StillSceneStaysIdle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv Mat test in short mode")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	md.Detect(solidFrame(t, 0))
	detected, changePercent := md.Detect(solidFrame(t, 0))
	if detected {
		t.Errorf("identical frames reported motion, changePercent = %f", changePercent)
	}
}

func TestMotionDetector_HandEnteringWakesUp(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv Mat test in short mode")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	md.Detect(solidFrame(t, 0))

	// Everything changes between frames, well past a 1% threshold.
	detected, changePercent := md.Detect(solidFrame(t, 255))
	if !detected {
		t.Errorf("full-frame change not detected, changePercent = %f", changePercent)
	}
	if changePercent < 50.0 {
		t.Errorf("changePercent = %f, want > 50 for a full-frame change", changePercent)
	}
}

func TestMotionDetector_ThresholdGatesDetection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv Mat test in short mode")
	}

	// With the threshold above any possible change percentage nothing
	// ever wakes the pipeline.
	md := NewMotionDetector(100.0)
	defer md.Close()

	md.Detect(solidFrame(t, 0))
	detected, _ := md.Detect(solidFrame(t, 255))
	if detected {
		t.Error("change below threshold reported motion")
	}
}

func TestMotionDetector_ResetReseeds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv Mat test in short mode")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	md.Detect(solidFrame(t, 0))
	md.Reset()

	// After a reset even a wildly different frame only seeds.
	detected, _ := md.Detect(solidFrame(t, 255))
	if detected {
		t.Error("first frame after Reset reported motion")
	}
}

func TestMotionDetector_SetThreshold(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	md.SetThreshold(5.0)
	if md.threshold != 5.0 {
		t.Errorf("threshold = %f, want 5.0", md.threshold)
	}

	// Non-positive values are ignored rather than disabling detection.
	md.SetThreshold(0)
	md.SetThreshold(-1.0)
	if md.threshold != 5.0 {
		t.Errorf("threshold = %f, want 5.0 after ignored updates", md.threshold)
	}
}

func TestMotionDetector_CloseIsReusable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv Mat test in short mode")
	}

	md := NewMotionDetector(1.0)

	md.Detect(solidFrame(t, 0))
	md.Close()
	md.Close() // second close is harmless

	// Detect after Close re-seeds instead of panicking.
	detected, _ := md.Detect(solidFrame(t, 255))
	if detected {
		t.Error("first frame after Close reported motion")
	}
	md.Close()
}
