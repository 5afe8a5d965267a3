package detector

import (
	"errors"
	"math"
	"testing"
)

func dist2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func TestFromPoints(t *testing.T) {
	t.Run("exact point count", func(t *testing.T) {
		points := make([]Point3D, NumLandmarks)
		points[IndexTip] = Point3D{X: 0.3, Y: 0.4}

		h, err := FromPoints(points, "Left", 0.8)
		if err != nil {
			t.Fatalf("FromPoints() error = %v", err)
		}
		if h.Handedness != "Left" {
			t.Errorf("Handedness = %q, want %q", h.Handedness, "Left")
		}
		if h.Points[IndexTip].X != 0.3 || h.Points[IndexTip].Y != 0.4 {
			t.Errorf("IndexTip = %+v, want {0.3 0.4}", h.Points[IndexTip])
		}
	})

	t.Run("short frame rejected", func(t *testing.T) {
		points := make([]Point3D, NumLandmarks-1)
		_, err := FromPoints(points, "Right", 0.9)
		if !errors.Is(err, ErrMalformedFrame) {
			t.Fatalf("FromPoints() error = %v, want ErrMalformedFrame", err)
		}
	})

	t.Run("extra points ignored", func(t *testing.T) {
		points := make([]Point3D, NumLandmarks+5)
		h, err := FromPoints(points, "Right", 0.9)
		if err != nil {
			t.Fatalf("FromPoints() error = %v", err)
		}
		if len(h.Points) != NumLandmarks {
			t.Errorf("len(Points) = %d, want %d", len(h.Points), NumLandmarks)
		}
	})
}

func TestPosePresets(t *testing.T) {
	t.Run("open palm tips away from wrist", func(t *testing.T) {
		h := OpenPalmLandmarks()
		wrist := h.Points[Wrist]
		for _, tip := range []int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip} {
			if d := dist2D(h.Points[tip], wrist); d < 0.2 {
				t.Errorf("tip %d distance to wrist = %f, want >= 0.2", tip, d)
			}
		}
	})

	t.Run("closed fist tips near wrist", func(t *testing.T) {
		h := ClosedFistLandmarks()
		wrist := h.Points[Wrist]
		for _, tip := range []int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip} {
			if d := dist2D(h.Points[tip], wrist); d > 0.12 {
				t.Errorf("tip %d distance to wrist = %f, want <= 0.12", tip, d)
			}
		}
	})

	t.Run("pinch brings thumb and index together", func(t *testing.T) {
		h := PinchLandmarks()
		if d := dist2D(h.Points[ThumbTip], h.Points[IndexTip]); d > 0.05 {
			t.Errorf("thumb-index distance = %f, want <= 0.05", d)
		}
	})

	t.Run("thumb polarity", func(t *testing.T) {
		up := ThumbsUpLandmarks()
		if up.Points[ThumbTip].Y >= up.Points[Wrist].Y {
			t.Error("thumbs up: thumb tip should sit above the wrist")
		}
		down := ThumbsDownLandmarks()
		if down.Points[ThumbTip].Y <= down.Points[Wrist].Y {
			t.Error("thumbs down: thumb tip should sit below the wrist")
		}
	})
}

func TestTranslate(t *testing.T) {
	h := PinchLandmarks()
	moved := Translate(h, -0.2, 0.1)

	wantX := h.Points[Wrist].X - 0.2
	wantY := h.Points[Wrist].Y + 0.1
	if moved.Points[Wrist].X != wantX || moved.Points[Wrist].Y != wantY {
		t.Errorf("Translate wrist = %+v, want {%f %f}", moved.Points[Wrist], wantX, wantY)
	}

	// Original must be untouched.
	if h.Points[Wrist].X != 0.50 {
		t.Errorf("Translate mutated its input: wrist.X = %f", h.Points[Wrist].X)
	}
}
