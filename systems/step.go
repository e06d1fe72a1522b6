package systems

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/windfall/config"
	"github.com/pthm-cable/windfall/telemetry"
)

// PhaseRecorder receives phase boundaries for timing. telemetry.PerfCollector satisfies it.
type PhaseRecorder interface {
	StartPhase(phase string)
}

type nopRecorder struct{}

func (nopRecorder) StartPhase(string) {}

// TickReport summarizes one step.
type TickReport struct {
	Tick          int32
	Now           time.Duration // Clock at the start of the step
	CurveExpired  bool
	Spawned       int
	Exited        int
	Knockbacks    int
	Captured      int
	ClickCombined int
	Outcomes
	Danger int
	Tokens int // Live tokens after commit
}

// Step advances the scene by one tick.
// Gesture input must be applied before calling Step; the order inside is
// integrate, collide, commit, so collisions never see a token removed earlier this tick.
func (sc *Scene) Step(cfg *config.Config, rec PhaseRecorder) TickReport {
	if rec == nil {
		rec = nopRecorder{}
	}
	sc.cfg = cfg
	rep := TickReport{Tick: sc.Tick, Now: sc.Now}

	if sc.Curve != nil && sc.Curve.Expired(sc.Now) {
		sc.Curve = nil
		rep.CurveExpired = true
	}

	sc.batch.Reset()

	rec.StartPhase(telemetry.PhaseSpawn)
	rep.Spawned = sc.spawner.Update(cfg.Derived.TickDuration, cfg, sc.Table, sc.batch)

	rec.StartPhase(telemetry.PhaseIntegrate)
	ir := sc.integrator.Update(sc, cfg, sc.batch)
	rep.Exited = ir.Exited
	rep.Knockbacks = ir.Knockbacks
	rep.Captured = ir.Captured

	rec.StartPhase(telemetry.PhaseCollide)
	removedBefore, addedBefore := len(sc.batch.Removals()), len(sc.batch.Additions())
	rep.ClickCombined = sc.drainCombos(cfg)
	rep.Outcomes = sc.collisions.Process(sc.Tokens.Snapshot(), cfg, sc.Table, sc.Now, sc.batch)

	rec.StartPhase(telemetry.PhaseCommit)
	sc.emitEffects(removedBefore, addedBefore)
	sc.Tokens.Commit(sc.batch, sc.Now)
	sc.releaseDangling()

	rec.StartPhase(telemetry.PhaseDanger)
	rep.Danger = sc.danger.Update(sc.Tokens.Snapshot(), cfg, sc.Table)

	rep.Tokens = sc.Tokens.Len()
	sc.Tick++
	sc.Now += cfg.Derived.TickDuration
	return rep
}

// emitEffects sparks at every token consumed by a collision and bursts at every
// child. Exits and spawns queued before the collide phase are skipped.
func (sc *Scene) emitEffects(removedFrom, addedFrom int) {
	for _, e := range sc.batch.Removals()[removedFrom:] {
		if tok, ok := sc.Tokens.Get(e); ok {
			sc.Effects.EmitPop(tok.Pos.Vec(), tok.Body.Tier)
		}
	}
	for _, spec := range sc.batch.Additions()[addedFrom:] {
		sc.Effects.EmitMerge(r2.Vec{X: spec.X, Y: spec.Y}, spec.Tier)
	}
	sc.Effects.Update()
}

// drainCombos resolves queued click-combine pairs. Pairs without a recipe are dropped.
func (sc *Scene) drainCombos(cfg *config.Config) int {
	n := 0
	for _, pair := range sc.combos {
		a, okA := sc.Tokens.Get(pair[0])
		b, okB := sc.Tokens.Get(pair[1])
		if !okA || !okB {
			continue
		}
		if CombinePair(a, b, cfg, sc.Table, sc.Now, sc.batch) {
			n++
		}
	}
	sc.combos = sc.combos[:0]
	return n
}

// Counts converts the report into telemetry event counts.
func (r TickReport) Counts() telemetry.TickCounts {
	return telemetry.TickCounts{
		Spawned:       r.Spawned,
		Exited:        r.Exited,
		Destroyed:     r.Destroyed,
		Combined:      r.Combined,
		ClickCombined: r.ClickCombined,
		Bounced:       r.Bounced,
		Knockbacks:    r.Knockbacks,
		Captured:      r.Captured,
		MaxTier:       r.MaxTier,
	}
}
