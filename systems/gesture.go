package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/windfall/components"
)

// Gesture entry points. The input collaborator calls these between ticks with
// pointer coordinates already in simulation space. A gesture with no valid
// target is a no-op.

// OnPressStart begins a gesture: a click-selection, a slingshot grab, or a new wind curve.
func (sc *Scene) OnPressStart(x, y float64) {
	cfg := sc.cfg
	switch {
	case cfg.Combine.Click:
		sc.clickSelect(x, y)
	case cfg.Slingshot.Enabled:
		sc.grab(x, y)
	default:
		sc.startCurve(r2.Vec{X: x, Y: y})
	}
}

// OnMove updates the pull vector of the grabbed token or extends the curve being drawn.
func (sc *Scene) OnMove(x, y float64) {
	p := r2.Vec{X: x, Y: y}
	if tok, ok := sc.Grabbed(); ok {
		sc.pull(tok, p)
		return
	}
	if !sc.drawing || sc.Curve == nil {
		return
	}
	sc.extendCurve(p)
}

// OnRelease ends the gesture: launches the grabbed token and finalizes the curve.
func (sc *Scene) OnRelease() {
	cfg := sc.cfg
	if tok, ok := sc.Grabbed(); ok {
		tok.Vel.Set(r2.Scale(cfg.Slingshot.Power, tok.State.Pull))
		tok.State.Grabbed = false
		tok.State.Pull = r2.Vec{}
		tok.State.WindImmuneUntil = sc.Now + cfg.Slingshot.WindImmunity
		if sc.OnLaunch != nil {
			sc.OnLaunch(tok)
		}
	}
	sc.hasGrab = false

	if sc.drawing && sc.Curve != nil {
		sc.finalizeCurve(false)
	}
	sc.drawing = false
}

// topmostAt returns the most recently inserted token under the point.
func (sc *Scene) topmostAt(x, y float64) (components.Token, bool) {
	toks := sc.Tokens.Snapshot()
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].Contains(x, y) {
			return toks[i], true
		}
	}
	return components.Token{}, false
}

func (sc *Scene) grab(x, y float64) {
	if sc.hasGrab {
		return
	}
	tok, ok := sc.topmostAt(x, y)
	if !ok {
		return
	}
	tok.State.Grabbed = true
	tok.State.Pull = r2.Vec{}
	tok.Vel.Set(r2.Vec{})
	sc.grabbed = tok.Entity
	sc.hasGrab = true
}

// pull sets the slingshot vector, capped at max_pull.
// In reverse mode the vector points from the token toward the pointer.
func (sc *Scene) pull(tok components.Token, p r2.Vec) {
	center := tok.Pos.Vec()
	d := r2.Sub(center, p)
	if sc.cfg.Slingshot.Reverse {
		d = r2.Sub(p, center)
	}
	n := r2.Norm(d)
	if n == 0 {
		tok.State.Pull = r2.Vec{}
		return
	}
	capped := math.Min(n, sc.cfg.Slingshot.MaxPull)
	tok.State.Pull = r2.Scale(capped/n, d)
}

func (sc *Scene) clickSelect(x, y float64) {
	tok, ok := sc.topmostAt(x, y)
	prev, hasPrev := sc.Selected()
	if hasPrev {
		prev.State.Selected = false
	}
	sc.hasSel = false

	if !ok {
		return
	}
	if !hasPrev {
		tok.State.Selected = true
		sc.selected = tok.Entity
		sc.hasSel = true
		return
	}
	if prev.Entity != tok.Entity {
		sc.combos = append(sc.combos, [2]ecs.Entity{prev.Entity, tok.Entity})
	}
}

// startCurve replaces any active curve and clears every token's capture window.
func (sc *Scene) startCurve(p r2.Vec) {
	sc.Curve = NewWindCurve(p, sc.Now)
	sc.drawing = true
	for _, tok := range sc.Tokens.Snapshot() {
		tok.State.ResetCapture()
	}
}

// extendCurve records p if it is far enough from the last point.
// A sharp turn ends the current curve and starts a new one at p.
func (sc *Scene) extendCurve(p r2.Vec) {
	cfg := sc.cfg
	c := sc.Curve
	if distance(p, c.Last()) <= cfg.Wind.MinPointDistance {
		return
	}

	if sc.snapsAt(p) {
		sc.finalizeCurve(true)
		sc.startCurve(p)
		return
	}

	c.Points = append(c.Points, p)
	c.Smooth(cfg.Wind.Smoothing)
	c.RecomputeLength()
}

// snapsAt reports whether appending p would turn the curve more than max_angle
// relative to the direction over the last few points.
func (sc *Scene) snapsAt(p r2.Vec) bool {
	w := sc.cfg.Wind
	pts := sc.Curve.Points
	if !w.AngleSnapping || len(pts) <= w.AngleLookback {
		return false
	}
	last := pts[len(pts)-1]
	v1 := r2.Sub(last, pts[len(pts)-w.AngleLookback])
	v2 := r2.Sub(p, last)
	angle, ok := AngleBetween(v1, v2)
	return ok && angle > w.MaxAngle
}

func (sc *Scene) finalizeCurve(split bool) {
	sc.Curve.Finalize(sc.cfg)
	if sc.OnCurveFinalized != nil {
		sc.OnCurveFinalized(sc.Curve, split)
	}
}
