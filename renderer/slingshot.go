package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/windfall/camera"
	"github.com/pthm-cable/windfall/components"
)

const (
	arrowHeadLength = 15
	arrowThickness  = 3
)

// ArrowHead returns the two barb endpoints of an arrow from start to end.
func ArrowHead(start, end r2.Vec, length float64) (left, right r2.Vec) {
	angle := math.Atan2(end.Y-start.Y, end.X-start.X)
	left = r2.Vec{
		X: end.X - length*math.Cos(angle-math.Pi/6),
		Y: end.Y - length*math.Sin(angle-math.Pi/6),
	}
	right = r2.Vec{
		X: end.X - length*math.Cos(angle+math.Pi/6),
		Y: end.Y - length*math.Sin(angle+math.Pi/6),
	}
	return left, right
}

// DrawSlingshot draws the aiming arrow of a grabbed token. A zero pull draws nothing.
func DrawSlingshot(cam *camera.Camera, tok components.Token) {
	pull := tok.State.Pull
	if pull == (r2.Vec{}) {
		return
	}
	start := tok.Pos.Vec()
	end := r2.Add(start, pull)
	left, right := ArrowHead(start, end, arrowHeadLength)

	thick := cam.ScaleLength(arrowThickness)
	e := screen(cam, end)
	rl.DrawLineEx(screen(cam, start), e, thick, ArrowColor)
	rl.DrawLineEx(e, screen(cam, left), thick, ArrowColor)
	rl.DrawLineEx(e, screen(cam, right), thick, ArrowColor)
}

// screen maps a playfield point to a raylib vector.
func screen(cam *camera.Camera, p r2.Vec) rl.Vector2 {
	x, y := cam.WorldToScreen(float32(p.X), float32(p.Y))
	return rl.Vector2{X: x, Y: y}
}
