package renderer

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/windfall/camera"
	"github.com/pthm-cable/windfall/systems"
)

// Stroke width of the wind curve at its start and end.
const (
	windMaxWidth = 12
	windMinWidth = 2
)

// TaperEdges offsets every curve point along its normal by half the local width.
// The width shrinks linearly from maxW at the first point to minW at the last.
func TaperEdges(points []r2.Vec, maxW, minW float64) (top, bottom []r2.Vec) {
	n := len(points)
	if n < 2 {
		return nil, nil
	}
	top = make([]r2.Vec, n)
	bottom = make([]r2.Vec, n)

	for i, p := range points {
		progress := float64(i) / float64(n-1)
		half := (maxW - (maxW-minW)*progress) / 2

		var tangent r2.Vec
		switch i {
		case 0:
			tangent = r2.Sub(points[1], p)
		case n - 1:
			tangent = r2.Sub(p, points[i-1])
		default:
			tangent = r2.Sub(points[i+1], points[i-1])
		}
		tangent = systems.Normalize(tangent, r2.Vec{})
		normal := r2.Vec{X: -tangent.Y, Y: tangent.X}

		top[i] = r2.Add(p, r2.Scale(half, normal))
		bottom[i] = r2.Sub(p, r2.Scale(half, normal))
	}
	return top, bottom
}

// DrawWindCurve draws the curve as a tapered ribbon that fades out over its lifetime.
func DrawWindCurve(cam *camera.Camera, c *systems.WindCurve, now time.Duration) {
	if c == nil || len(c.Points) < 2 {
		return
	}
	top, bottom := TaperEdges(c.Points, windMaxWidth, windMinWidth)

	color := WindFill
	if c.Finalized && c.Lifetime > 0 {
		left := 1 - float32(c.Age(now))/float32(c.Lifetime)
		color = rl.Fade(color, max(0, left)*float32(WindFill.A)/255)
	}

	for i := 0; i+1 < len(top); i++ {
		a, b := screen(cam, top[i]), screen(cam, top[i+1])
		c2, d := screen(cam, bottom[i+1]), screen(cam, bottom[i])
		drawTriangle(a, b, c2, color)
		drawTriangle(a, c2, d, color)
	}
}

// drawTriangle orders the vertices the way raylib expects before drawing.
func drawTriangle(a, b, c rl.Vector2, color rl.Color) {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(a, b, c, color)
}
