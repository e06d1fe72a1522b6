package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/windfall/components"
	"github.com/pthm-cable/windfall/config"
	"github.com/pthm-cable/windfall/symbols"
)

// Scene is the simulation world: tokens, the active wind curve, the clock and
// gesture state. Everything the tick pipeline touches hangs off it.
type Scene struct {
	World  *ecs.World
	Tokens *Tokens
	Table  *symbols.Table
	Curve  *WindCurve    // Active curve, nil when none
	Now    time.Duration // Simulation clock
	Tick   int32

	// Effects holds merge and pop sparks. They are cosmetic and never touch tokens.
	Effects *ParticleSystem

	// OnCurveFinalized is called for every curve that stops growing.
	// split is true for the old half of an angle-snap split.
	OnCurveFinalized func(c *WindCurve, split bool)
	// OnLaunch is called when a slingshot release sets a token's velocity.
	OnLaunch func(tok components.Token)

	cfg *config.Config // Used by gesture entry points between ticks

	batch      *Batch
	integrator *Integrator
	collisions *Collisions
	spawner    *Spawner
	danger     *DangerHighlighter

	grabbed  ecs.Entity
	hasGrab  bool
	selected ecs.Entity
	hasSel   bool
	combos   [][2]ecs.Entity
	drawing  bool
}

// NewScene creates an empty scene. The symbol table must be loaded first.
func NewScene(cfg *config.Config, table *symbols.Table, seed int64) *Scene {
	world := ecs.NewWorld()
	return &Scene{
		World:      world,
		Tokens:     NewTokens(world),
		Table:      table,
		cfg:        cfg,
		batch:      NewBatch(),
		integrator: NewIntegrator(),
		collisions: NewCollisions(),
		spawner:    NewSpawner(table.TierOne(), seed),
		danger:     NewDangerHighlighter(),
		Effects:    NewParticleSystem(seed),
	}
}

// Spawner returns the scene's spawner.
func (sc *Scene) Spawner() *Spawner {
	return sc.spawner
}

// AddToken creates a token of the given kind at rest.
func (sc *Scene) AddToken(id string, x, y float64) (components.Token, bool) {
	def, ok := sc.Table.Def(id)
	if !ok {
		return components.Token{}, false
	}
	spec := components.Spec{
		X:      x,
		Y:      y,
		Tier:   def.Tier,
		Radius: components.RadiusForTier(sc.cfg, def.Tier),
		Symbol: def.ID,
	}
	return sc.Tokens.Spawn(spec, sc.Now), true
}

// Grabbed returns the token held by the slingshot, if any.
func (sc *Scene) Grabbed() (components.Token, bool) {
	if !sc.hasGrab {
		return components.Token{}, false
	}
	return sc.Tokens.Get(sc.grabbed)
}

// Selected returns the token selected for click-combining, if any.
func (sc *Scene) Selected() (components.Token, bool) {
	if !sc.hasSel {
		return components.Token{}, false
	}
	return sc.Tokens.Get(sc.selected)
}

// TokenAt returns the topmost token under the point, if any.
func (sc *Scene) TokenAt(x, y float64) (components.Token, bool) {
	return sc.topmostAt(x, y)
}

// Drawing reports whether a wind curve is being drawn.
func (sc *Scene) Drawing() bool {
	return sc.drawing
}

// windImmune reports whether the symbol kind ignores the wind curve.
func (sc *Scene) windImmune(id string) bool {
	def, ok := sc.Table.Def(id)
	return ok && def.WindImmune
}

// releaseDangling drops gesture references to tokens that no longer exist.
func (sc *Scene) releaseDangling() {
	if sc.hasGrab && !sc.Tokens.Alive(sc.grabbed) {
		sc.hasGrab = false
	}
	if sc.hasSel && !sc.Tokens.Alive(sc.selected) {
		sc.hasSel = false
	}
}
