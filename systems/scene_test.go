package systems

import (
	"testing"

	"github.com/pthm-cable/windfall/components"
	"github.com/pthm-cable/windfall/config"
	"github.com/pthm-cable/windfall/symbols"
)

// newTestScene returns a scene with spawning disabled.
func newTestScene(t *testing.T) (*Scene, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Spawn.Interval = 0
	return NewScene(cfg, symbols.Default(), 1), cfg
}

// place adds a token of kind id at (x, y) with velocity (vx, vy).
func place(t *testing.T, sc *Scene, id string, x, y, vx, vy float64) components.Token {
	t.Helper()
	tok, ok := sc.AddToken(id, x, y)
	if !ok {
		t.Fatalf("unknown symbol %q", id)
	}
	tok.Vel.X, tok.Vel.Y = vx, vy
	// Tokens placed mid-screen have already entered the playfield
	tok.State.InPlayfield = y > playfieldThreshold
	return tok
}

func TestAddTokenDerivesRadius(t *testing.T) {
	sc, cfg := newTestScene(t)

	tok := place(t, sc, "S2_SOLID", 100, 100, 0, 0)
	if tok.Body.Tier != 2 {
		t.Errorf("tier = %d, want 2", tok.Body.Tier)
	}
	if want := components.RadiusForTier(cfg, 2); tok.Body.Radius != want {
		t.Errorf("radius = %f, want %f", tok.Body.Radius, want)
	}
	if _, ok := sc.AddToken("NOPE", 0, 0); ok {
		t.Error("unknown kind should not be added")
	}
}

func TestWindImmuneKinds(t *testing.T) {
	sc, _ := newTestScene(t)
	if !sc.windImmune("S3_VOID") {
		t.Error("S3_VOID should ignore wind")
	}
	if sc.windImmune("S1_SOLID") {
		t.Error("S1_SOLID should feel wind")
	}
}
