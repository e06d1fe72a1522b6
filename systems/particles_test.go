package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestParticlesExpire(t *testing.T) {
	ps := NewParticleSystem(1)
	ps.EmitMerge(r2.Vec{X: 100, Y: 100}, 2)
	ps.EmitPop(r2.Vec{X: 200, Y: 100}, 1)

	if ps.Count() < 8+3 {
		t.Fatalf("Count = %d, want at least one merge burst and one pop", ps.Count())
	}
	for _, p := range ps.Particles {
		if p.Fade() != 1 {
			t.Errorf("fresh particle fade = %f, want 1", p.Fade())
		}
	}

	// Longest life is under 70 ticks
	for range 70 {
		ps.Update()
	}
	if ps.Count() != 0 {
		t.Errorf("Count = %d after all lifetimes, want 0", ps.Count())
	}
}

func TestParticlesCapped(t *testing.T) {
	ps := NewParticleSystem(1)
	for range 200 {
		ps.EmitMerge(r2.Vec{}, 1)
	}
	if ps.Count() != 500 {
		t.Errorf("Count = %d, want capped at 500", ps.Count())
	}
}

func TestStepEmitsEffects(t *testing.T) {
	sc, cfg := newTestScene(t)
	cfg.Gravity.Strength = 0
	place(t, sc, "S1_SOLID", 100, 100, 0, 0)
	place(t, sc, "S1_LINES", 110, 100, 0, 0)

	sc.Step(cfg, nil)

	var pops, merges int
	for _, p := range sc.Effects.Particles {
		switch p.Type {
		case ParticlePop:
			pops++
		case ParticleMerge:
			merges++
			if p.Tier != 2 {
				t.Errorf("merge particle tier = %d, want 2", p.Tier)
			}
		}
	}
	if pops == 0 || merges == 0 {
		t.Errorf("pops = %d, merges = %d, want both", pops, merges)
	}
}
