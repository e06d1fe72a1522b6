package systems

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/windfall/components"
	"github.com/pthm-cable/windfall/config"
	"github.com/pthm-cable/windfall/symbols"
)

// Outcomes counts pair resolutions for one tick.
type Outcomes struct {
	Destroyed int // Pairs annihilated without a replacement
	Combined  int // Pairs replaced by a child token
	Bounced   int // Elastic bounces
	MaxTier   int // Highest child tier created this tick
}

// Collisions detects overlapping token pairs and resolves them.
// Resolution priority per pair, first match wins: destroy, combine, bounce.
type Collisions struct {
	grid  *SpatialGrid
	pairs []Pair
	moved []float64 // separation distance accumulated per token this tick
}

// NewCollisions creates a collision system.
func NewCollisions() *Collisions {
	return &Collisions{grid: NewSpatialGrid(0)}
}

// Process scans the snapshot once and resolves every overlapping pair.
// Structural changes go into batch; a token queued for removal is skipped
// by every later pair this tick.
func (s *Collisions) Process(toks []components.Token, cfg *config.Config, table *symbols.Table, now time.Duration, batch *Batch) Outcomes {
	var out Outcomes

	s.grid.SetCellSize(cfg.Physics.GridCellSize)
	s.pairs = s.grid.PairsInto(s.pairs[:0], toks)
	slack := s.grid.Slack()

	if cap(s.moved) < len(toks) {
		s.moved = make([]float64, len(toks))
	}
	s.moved = s.moved[:len(toks)]
	clear(s.moved)
	worst := 0.0

	for _, p := range s.pairs {
		da, db, bounced := resolve(toks[p.I], toks[p.J], cfg, table, now, batch, &out)
		if !bounced {
			continue
		}
		s.moved[p.I] += da
		s.moved[p.J] += db
		worst = max(worst, s.moved[p.I], s.moved[p.J])

		// Pairs left out of the candidates need more than slack of combined
		// drift to touch. Keep a 2x margin, then finish with the full scan.
		if 4*worst > slack {
			resolveAfter(toks, p, cfg, table, now, batch, &out)
			break
		}
	}
	return out
}

// resolveAfter resolves every pair that follows p in brute-force scan order.
func resolveAfter(toks []components.Token, p Pair, cfg *config.Config, table *symbols.Table, now time.Duration, batch *Batch, out *Outcomes) {
	for i := p.I; i < len(toks); i++ {
		j0 := i + 1
		if i == p.I {
			j0 = p.J + 1
		}
		for j := j0; j < len(toks); j++ {
			resolve(toks[i], toks[j], cfg, table, now, batch, out)
		}
	}
}

// resolve applies the first matching rule to an overlapping pair: destroy,
// combine, bounce. For a bounce it returns how far each token was pushed apart.
func resolve(a, b components.Token, cfg *config.Config, table *symbols.Table, now time.Duration, batch *Batch, out *Outcomes) (da, db float64, bounced bool) {
	if !colliding(a, b, cfg.Physics.CollisionEpsilon, batch) {
		return 0, 0, false
	}

	if shouldDestroy(a, b, cfg, table) {
		batch.Remove(a.Entity)
		batch.Remove(b.Entity)
		out.Destroyed++
		return 0, 0, false
	}
	if combine(a, b, cfg, table, now, batch, out) {
		return 0, 0, false
	}
	da, db = bounce(a, b)
	out.Bounced++
	return da, db, true
}

// colliding reports whether two live, free tokens overlap.
// Exactly coincident centers are ignored since they have no contact normal.
func colliding(a, b components.Token, epsilon float64, batch *Batch) bool {
	if batch.Removed(a.Entity) || batch.Removed(b.Entity) {
		return false
	}
	if a.State.Grabbed || b.State.Grabbed {
		return false
	}
	d := distance(a.Pos.Vec(), b.Pos.Vec())
	return d < a.Body.Radius+b.Body.Radius && d > epsilon
}

// shouldDestroy reports whether a pair annihilates.
// Equal kinds destroy each other unless a combination mode is on.
// In wildcard mode, two wildcard kinds of the same tier destroy each other.
func shouldDestroy(a, b components.Token, cfg *config.Config, table *symbols.Table) bool {
	cm := cfg.Combine
	if a.Sym.ID == b.Sym.ID && !cm.Wildcard && !cm.SimpleMode && !cm.WindMode {
		return true
	}
	if !cm.Wildcard {
		return false
	}
	da, okA := table.Def(a.Sym.ID)
	db, okB := table.Def(b.Sym.ID)
	return okA && okB && da.Wildcard && db.Wildcard && da.Tier == db.Tier
}

func combine(a, b components.Token, cfg *config.Config, table *symbols.Table, now time.Duration, batch *Batch, out *Outcomes) bool {
	spec, ok := ChildSpec(a, b, cfg, table, now)
	if !ok {
		return false
	}
	batch.Remove(a.Entity)
	batch.Remove(b.Entity)
	batch.Add(spec)
	out.Combined++
	out.MaxTier = max(out.MaxTier, spec.Tier)
	return true
}

// CombinePair queues the combination of two live tokens regardless of contact.
// Returns false when either token is already gone or the kinds have no recipe.
func CombinePair(a, b components.Token, cfg *config.Config, table *symbols.Table, now time.Duration, batch *Batch) bool {
	if a.Entity == b.Entity || batch.Removed(a.Entity) || batch.Removed(b.Entity) {
		return false
	}
	var out Outcomes
	return combine(a, b, cfg, table, now, batch, &out)
}

// ChildSpec builds the token produced by combining a and b.
// Position is the radius-weighted midpoint (or b's position), velocity is the
// radius-weighted average, and gravity is briefly suppressed.
func ChildSpec(a, b components.Token, cfg *config.Config, table *symbols.Table, now time.Duration) (components.Spec, bool) {
	def, ok := table.Combine(a.Sym.ID, b.Sym.ID)
	if !ok {
		return components.Spec{}, false
	}

	ra, rb := a.Body.Radius, b.Body.Radius
	total := ra + rb

	// Each center is weighted by the other's radius
	pos := b.Pos.Vec()
	if cfg.Combine.InMiddle {
		pos = r2.Scale(1/total, r2.Add(r2.Scale(rb, a.Pos.Vec()), r2.Scale(ra, b.Pos.Vec())))
	}
	vel := r2.Scale(1/total, r2.Add(r2.Scale(ra, a.Vel.Vec()), r2.Scale(rb, b.Vel.Vec())))

	return components.Spec{
		X:                  pos.X,
		Y:                  pos.Y,
		VX:                 vel.X,
		VY:                 vel.Y,
		Tier:               def.Tier,
		Radius:             components.RadiusForTier(cfg, def.Tier),
		Symbol:             def.ID,
		GravityImmuneUntil: now + cfg.Gravity.Immunity + cfg.Gravity.ImmunityPerTier*time.Duration(def.Tier),
	}, true
}

// bounce separates two overlapping tokens and exchanges their normal velocities
// as a 1D elastic collision, using radius as mass. Tangential velocity is kept.
// Returns the separation distance applied to a and to b.
func bounce(a, b components.Token) (da, db float64) {
	pa, pb := a.Pos.Vec(), b.Pos.Vec()
	delta := r2.Sub(pa, pb)
	d := r2.Norm(delta)
	if d == 0 {
		return 0, 0
	}
	n := r2.Scale(1/d, delta)
	m1, m2 := a.Body.Radius, b.Body.Radius

	// Heavier tokens move less
	if overlap := m1 + m2 - d; overlap > 0 {
		push := overlap / (m1 + m2)
		da, db = m2*push, m1*push
		a.Pos.Set(r2.Add(pa, r2.Scale(da, n)))
		b.Pos.Set(r2.Sub(pb, r2.Scale(db, n)))
	}

	t := r2.Vec{X: -n.Y, Y: n.X}
	va, vb := a.Vel.Vec(), b.Vel.Vec()
	v1n, v1t := r2.Dot(va, n), r2.Dot(va, t)
	v2n, v2t := r2.Dot(vb, n), r2.Dot(vb, t)

	v1nf := (v1n*(m1-m2) + 2*m2*v2n) / (m1 + m2)
	v2nf := (v2n*(m2-m1) + 2*m1*v1n) / (m1 + m2)

	a.Vel.Set(r2.Add(r2.Scale(v1nf, n), r2.Scale(v1t, t)))
	b.Vel.Set(r2.Add(r2.Scale(v2nf, n), r2.Scale(v2t, t)))
	return da, db
}
