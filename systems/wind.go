package systems

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/windfall/config"
)

// WindCurve is a player-drawn polyline that steers nearby tokens until it expires.
// Points are in drawing order. Only the smoothing pass rewrites existing points.
type WindCurve struct {
	Points    []r2.Vec
	CreatedAt time.Duration
	Length    float64       // Total arc length
	Lifetime  time.Duration // Valid once Finalized
	Finalized bool
}

// NewWindCurve starts a curve with a single point.
func NewWindCurve(start r2.Vec, now time.Duration) *WindCurve {
	return &WindCurve{
		Points:    []r2.Vec{start},
		CreatedAt: now,
	}
}

// Last returns the newest point.
func (c *WindCurve) Last() r2.Vec {
	return c.Points[len(c.Points)-1]
}

// RecomputeLength sums the segment lengths.
func (c *WindCurve) RecomputeLength() float64 {
	total := 0.0
	for i := 0; i+1 < len(c.Points); i++ {
		total += distance(c.Points[i], c.Points[i+1])
	}
	c.Length = total
	return total
}

// Finalize freezes the length and derives the lifetime from it.
func (c *WindCurve) Finalize(cfg *config.Config) {
	c.RecomputeLength()
	perPixel := float64(cfg.Wind.LifetimePerPixel)
	c.Lifetime = cfg.Wind.BaseLifetime + time.Duration(c.Length*perPixel)
	c.Finalized = true
}

// Age returns the time since the curve was started.
func (c *WindCurve) Age(now time.Duration) time.Duration {
	return now - c.CreatedAt
}

// Expired reports whether a finalized curve has outlived its lifetime.
// A curve still being drawn never expires.
func (c *WindCurve) Expired(now time.Duration) bool {
	return c.Finalized && c.Age(now) > c.Lifetime
}

// Smooth eases interior points toward the midpoint of their neighbors.
// The two newest points are left untouched; the scan runs newest-first.
func (c *WindCurve) Smooth(factor float64) {
	pts := c.Points
	if len(pts) < 3 {
		return
	}
	for i := len(pts) - 3; i > 0; i-- {
		mid := r2.Scale(0.5, r2.Add(pts[i-1], pts[i+1]))
		pts[i] = r2.Add(pts[i], r2.Scale(factor, r2.Sub(mid, pts[i])))
	}
}

// DynamicStrength returns the propulsion strength, which grows with arc length.
func (c *WindCurve) DynamicStrength(cfg *config.Config) float64 {
	return cfg.Wind.BaseStrength + (c.Length/100)*cfg.Wind.StrengthPer100px
}

// Contact describes where a point meets the curve.
type Contact struct {
	Point     r2.Vec  // Closest point on the polyline
	Distance  float64 // Perpendicular distance to Point
	Segment   int     // Index of the winning segment's first point
	Direction r2.Vec  // Unit tangent of the winning segment
}

// Closest scans every segment and returns the globally closest point.
// ok is false when the curve has no non-degenerate segment.
func (c *WindCurve) Closest(p r2.Vec) (Contact, bool) {
	best := Contact{Distance: math.Inf(1), Segment: -1}
	for i := 0; i+1 < len(c.Points); i++ {
		a, b := c.Points[i], c.Points[i+1]
		pt, _, ok := ClosestPointOnSegment(p, a, b)
		if !ok {
			continue
		}
		d := distance(p, pt)
		if d < best.Distance {
			best = Contact{
				Point:     pt,
				Distance:  d,
				Segment:   i,
				Direction: Normalize(r2.Sub(b, a), r2.Vec{}),
			}
		}
	}
	return best, best.Segment >= 0
}

// CurvatureMultiplier amplifies coupling where the curve turns sharply after seg.
// A straight continuation (or no next segment) yields 1.
func (c *WindCurve) CurvatureMultiplier(seg int, dir r2.Vec, factor float64) float64 {
	if seg < 0 || seg+2 >= len(c.Points) {
		return 1
	}
	next := r2.Sub(c.Points[seg+2], c.Points[seg+1])
	if r2.Norm(next) == 0 {
		return 1
	}
	dot := r2.Dot(dir, Normalize(next, r2.Vec{}))
	return 1 + (1-dot)*factor
}

// Progress returns how far along the curve a segment lies, in [0,1].
func (c *WindCurve) Progress(seg int) float64 {
	if len(c.Points) < 2 {
		return 0
	}
	return float64(seg) / float64(len(c.Points)-1)
}
