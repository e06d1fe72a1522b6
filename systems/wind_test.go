package systems

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/windfall/config"
)

func TestWindCurveLifetime(t *testing.T) {
	cfg := config.Default()
	cfg.Wind.BaseLifetime = 100 * time.Millisecond
	cfg.Wind.LifetimePerPixel = 2 * time.Millisecond

	c := NewWindCurve(r2.Vec{X: 0, Y: 0}, time.Second)
	c.Points = append(c.Points, r2.Vec{X: 30, Y: 40}, r2.Vec{X: 30, Y: 90})
	c.Finalize(cfg)

	if math.Abs(c.Length-100) > eps {
		t.Fatalf("length = %f, want 100", c.Length)
	}
	if want := 300 * time.Millisecond; c.Lifetime != want {
		t.Errorf("lifetime = %v, want %v", c.Lifetime, want)
	}

	tests := []struct {
		now  time.Duration
		want bool
	}{
		{time.Second, false},
		{1300 * time.Millisecond, false},
		{1301 * time.Millisecond, true},
	}
	for _, tc := range tests {
		if got := c.Expired(tc.now); got != tc.want {
			t.Errorf("Expired(%v) = %v, want %v", tc.now, got, tc.want)
		}
	}
}

func TestWindCurveNotExpiredWhileDrawing(t *testing.T) {
	c := NewWindCurve(r2.Vec{}, 0)
	if c.Expired(time.Hour) {
		t.Error("a curve still being drawn must not expire")
	}
}

func TestWindCurveSmooth(t *testing.T) {
	c := NewWindCurve(r2.Vec{X: 0, Y: 0}, 0)
	c.Points = append(c.Points, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 20, Y: 0}, r2.Vec{X: 30, Y: 0})

	c.Smooth(0.5)

	want := []r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 0}, {X: 30, Y: 0}}
	for i, p := range c.Points {
		if !vecNear(p, want[i], eps) {
			t.Errorf("point %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestWindCurveClosest(t *testing.T) {
	c := NewWindCurve(r2.Vec{X: 0, Y: 0}, 0)
	c.Points = append(c.Points,
		r2.Vec{X: 0, Y: 0}, // Zero-length segment is skipped
		r2.Vec{X: 100, Y: 0},
		r2.Vec{X: 100, Y: 100},
	)

	got, ok := c.Closest(r2.Vec{X: 110, Y: 60})
	if !ok {
		t.Fatal("expected a contact")
	}
	if got.Segment != 2 {
		t.Errorf("segment = %d, want 2", got.Segment)
	}
	if !vecNear(got.Point, r2.Vec{X: 100, Y: 60}, eps) || math.Abs(got.Distance-10) > eps {
		t.Errorf("closest = %v at %f, want (100,60) at 10", got.Point, got.Distance)
	}
	if !vecNear(got.Direction, r2.Vec{X: 0, Y: 1}, eps) {
		t.Errorf("direction = %v, want (0,1)", got.Direction)
	}

	if _, ok := NewWindCurve(r2.Vec{}, 0).Closest(r2.Vec{X: 1}); ok {
		t.Error("single-point curve has no contact")
	}
}

func TestWindCurveCurvature(t *testing.T) {
	c := NewWindCurve(r2.Vec{X: 0, Y: 0}, 0)
	c.Points = append(c.Points, r2.Vec{X: 10, Y: 0}, r2.Vec{X: 10, Y: 10})

	tests := []struct {
		name string
		seg  int
		want float64
	}{
		{"right angle", 0, 1 + 60},
		{"last segment", 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := Normalize(r2.Sub(c.Points[tc.seg+1], c.Points[tc.seg]), r2.Vec{})
			if got := c.CurvatureMultiplier(tc.seg, dir, 60); math.Abs(got-tc.want) > eps {
				t.Errorf("multiplier = %f, want %f", got, tc.want)
			}
		})
	}
}
