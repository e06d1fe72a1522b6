package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/windfall/camera"
	"github.com/pthm-cable/windfall/components"
)

// DrawToken draws a token disc with its glyph, plus the selection and danger rings.
func DrawToken(cam *camera.Camera, tok components.Token, glyph string) {
	sx, sy := cam.WorldToScreen(float32(tok.Pos.X), float32(tok.Pos.Y))
	center := rl.Vector2{X: sx, Y: sy}
	r := cam.ScaleLength(float32(tok.Body.Radius))

	rl.DrawCircleV(center, r, TierColor(tok.Body.Tier))

	// Glyph scales with the token
	size := int32(max(8, (r-5*cam.Scale)*1.5))
	w := rl.MeasureText(glyph, size)
	rl.DrawText(glyph, int32(sx)-w/2, int32(sy)-size/2, size, SymbolColor)

	switch {
	case tok.State.Selected || tok.State.Grabbed:
		rl.DrawRing(center, r, r+4*cam.Scale, 0, 360, 36, SelectedColor)
	case tok.State.Danger:
		rl.DrawRing(center, r, r+2*cam.Scale, 0, 360, 36, DangerColor)
	}
}
