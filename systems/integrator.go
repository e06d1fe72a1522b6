package systems

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/windfall/components"
	"github.com/pthm-cable/windfall/config"
)

// playfieldThreshold is the depth a token must reach before the top wall bounces it.
// Tokens spawn above the screen and would otherwise bounce on entry.
const playfieldThreshold = 50

// IntegrateResult counts what happened during one integration pass.
type IntegrateResult struct {
	Exited     int // Tokens lost through the bottom wall
	Knockbacks int // Top and side wall contacts
	Captured   int // Tokens steered by the wind curve
}

// Integrator advances every free token by one tick.
type Integrator struct{}

// NewIntegrator creates an integrator.
func NewIntegrator() *Integrator {
	return &Integrator{}
}

// Update advances every token and queues the ones that left the playfield.
func (s *Integrator) Update(sc *Scene, cfg *config.Config, batch *Batch) IntegrateResult {
	var res IntegrateResult
	for _, tok := range sc.Tokens.Snapshot() {
		immune := sc.windImmune(tok.Sym.ID)
		out := advance(tok, cfg, sc.Curve, sc.Now, immune)
		if out.captured {
			res.Captured++
		}
		if out.knocked {
			res.Knockbacks++
		}
		if !out.alive {
			batch.Remove(tok.Entity)
			res.Exited++
		}
	}
	return res
}

// Advance moves one token forward by one tick and reports whether it is still alive.
// Grabbed tokens are left untouched. Only a bottom-wall exit kills a token.
// windImmune marks symbol kinds the wind curve never steers.
func Advance(tok components.Token, cfg *config.Config, curve *WindCurve, now time.Duration, windImmune bool) bool {
	return advance(tok, cfg, curve, now, windImmune).alive
}

type advanceOutcome struct {
	alive    bool
	knocked  bool
	captured bool
}

func advance(tok components.Token, cfg *config.Config, curve *WindCurve, now time.Duration, windImmune bool) advanceOutcome {
	out := advanceOutcome{alive: true}
	if tok.State.Grabbed {
		return out
	}

	mf := MassFactor(tok.Body.Radius, cfg.Token.BaseRadius, cfg.Gravity.MassEffect)

	// Immunity refreshed by the wind on the previous tick suppresses gravity now
	if now >= tok.State.GravityImmuneUntil {
		applyGravity(tok, cfg, mf)
	}
	if !windImmune {
		out.captured = applyWind(tok, cfg, curve, now, mf)
	}

	tok.Vel.X *= cfg.Friction
	tok.Vel.Y *= cfg.Friction

	tok.Pos.X += tok.Vel.X
	tok.Pos.Y += tok.Vel.Y

	hit, destroyed := verticalCheck(tok, cfg)
	if destroyed {
		out.alive = false
		return out
	}
	if horizontalCheck(tok, cfg) {
		hit = true
	}
	out.knocked = hit
	return out
}

func applyGravity(tok components.Token, cfg *config.Config, mf float64) {
	if cfg.Gravity.Realistic {
		tok.Vel.Y += cfg.Gravity.Strength * mf
		return
	}
	tok.Pos.Y += cfg.Gravity.Strength * mf
}

// applyWind steers the token along the active curve. Returns true if the curve had influence.
func applyWind(tok components.Token, cfg *config.Config, curve *WindCurve, now time.Duration, mf float64) bool {
	st := tok.State
	if now < st.WindImmuneUntil {
		return false
	}
	if curve == nil || len(curve.Points) < 2 {
		return false
	}

	pos := tok.Pos.Vec()
	c, ok := curve.Closest(pos)
	if !ok {
		return false
	}
	inCapture := st.HasCapture && now < st.CaptureUntil
	if c.Distance >= cfg.Wind.InfluenceRadius && !inCapture {
		return false
	}

	tier := time.Duration(tok.Body.Tier)
	st.GravityImmuneUntil = now + cfg.Gravity.Immunity + cfg.Gravity.ImmunityPerTier*tier

	falloff := max(0, 1-curve.Progress(c.Segment)*cfg.Wind.ForceFalloff)
	curv := curve.CurvatureMultiplier(c.Segment, c.Direction, cfg.Wind.CurvatureFactor)

	coupling := cfg.Wind.CouplingStrength
	if cfg.Wind.ArrivalRampDown && c.Distance < cfg.Wind.ArrivalDistance {
		coupling *= c.Distance / cfg.Wind.ArrivalDistance
	}

	vel := tok.Vel.Vec()
	normal := r2.Sub(c.Point, pos)
	vel = r2.Add(vel, r2.Scale(coupling*falloff*mf*curv, normal))

	along := r2.Dot(vel, c.Direction)
	if along < cfg.Wind.MaxSpeed {
		force := (cfg.Wind.MaxSpeed - along) * curve.DynamicStrength(cfg)
		vel = r2.Add(vel, r2.Scale(force*falloff*mf, c.Direction))
	}
	tok.Vel.Set(vel)

	st.WindCaptured = true
	st.HasCapture = true
	st.CaptureUntil = now + cfg.Wind.CaptureTime
	st.Manipulated = true
	return true
}

// verticalCheck handles top and bottom contact. A bottom contact destroys the token.
func verticalCheck(tok components.Token, cfg *config.Config) (hit, destroyed bool) {
	p, r := tok.Pos, tok.Body.Radius
	if p.Y > playfieldThreshold {
		tok.State.InPlayfield = true
	}

	top := p.Y-r < 0 && tok.State.InPlayfield
	bottom := p.Y+r > cfg.Derived.Height
	if !top && !bottom {
		return false, false
	}

	source := r2.Vec{X: p.X, Y: -r}
	if bottom {
		source.Y = cfg.Derived.Height + r
	}
	knockback(tok, source, cfg.Knockback)
	return true, bottom
}

// horizontalCheck handles side contact. Side walls never destroy.
func horizontalCheck(tok components.Token, cfg *config.Config) bool {
	p, r := tok.Pos, tok.Body.Radius
	left := p.X-r < 0
	right := p.X+r > cfg.Derived.Width
	if !left && !right {
		return false
	}

	source := r2.Vec{X: -r, Y: p.Y}
	if right {
		source.X = cfg.Derived.Width + r
	}
	knockback(tok, source, cfg.Knockback)
	return true
}

// knockback replaces the velocity with a fixed-speed push away from source.
func knockback(tok components.Token, source r2.Vec, speed float64) {
	away := r2.Sub(tok.Pos.Vec(), source)
	if r2.Norm(away) == 0 {
		tok.Vel.Y = -speed
		return
	}
	tok.Vel.Set(r2.Scale(speed, Normalize(away, r2.Vec{})))
}
