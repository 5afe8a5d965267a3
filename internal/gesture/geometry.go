package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Distance returns the Euclidean distance between two landmarks in the
// normalized image plane. Depth is ignored; classification works in 2D.
func Distance(p1, p2 detector.Point3D) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Angle returns the absolute angle in degrees at p2 between the rays
// toward p1 and p3.
func Angle(p1, p2, p3 detector.Point3D) float64 {
	a := math.Atan2(p1.Y-p2.Y, p1.X-p2.X)
	b := math.Atan2(p3.Y-p2.Y, p3.X-p2.X)
	deg := math.Abs((a - b) * 180 / math.Pi)
	if deg > 180 {
		deg = 360 - deg
	}
	return deg
}

// YOffset returns base.Y - tip.Y. A positive result means the tip sits
// above its base on screen, since the y axis grows downward.
func YOffset(base, tip detector.Point3D) float64 {
	return base.Y - tip.Y
}
