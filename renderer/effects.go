package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/windfall/camera"
	"github.com/pthm-cable/windfall/systems"
)

// DrawParticles draws merge and pop sparks, fading with remaining life.
func DrawParticles(cam *camera.Camera, particles []systems.EffectParticle) {
	for _, p := range particles {
		c := SymbolColor
		if p.Type == systems.ParticleMerge {
			c = TierColor(p.Tier)
		}
		rl.DrawCircleV(screen(cam, p.Pos), cam.ScaleLength(float32(p.Size)), rl.Fade(c, float32(p.Fade())))
	}
}
