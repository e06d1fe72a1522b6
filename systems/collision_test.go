package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/windfall/components"
)

func momentum(toks ...components.Token) r2.Vec {
	var p r2.Vec
	for _, t := range toks {
		p = r2.Add(p, r2.Scale(t.Body.Radius, t.Vel.Vec()))
	}
	return p
}

func energy(toks ...components.Token) float64 {
	var e float64
	for _, t := range toks {
		e += 0.5 * t.Body.Radius * r2.Norm2(t.Vel.Vec())
	}
	return e
}

func TestBounceConservesMomentum(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		ax, ay float64
		bx, by float64
		av, bv r2.Vec
	}{
		{"head on", "S1_SOLID", "S2_LINES", 100, 100, 120, 100, r2.Vec{X: 2}, r2.Vec{X: -1}},
		{"glancing", "S1_SOLID", "S2_LINES", 100, 100, 118, 110, r2.Vec{X: 2, Y: 0.5}, r2.Vec{X: -1, Y: 0.3}},
		{"one at rest", "S1_DOTS", "S3_SOLID", 300, 300, 300, 320, r2.Vec{Y: 3}, r2.Vec{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc, cfg := newTestScene(t)
			place(t, sc, tc.a, tc.ax, tc.ay, tc.av.X, tc.av.Y)
			place(t, sc, tc.b, tc.bx, tc.by, tc.bv.X, tc.bv.Y)
			toks := sc.Tokens.Snapshot()

			before := momentum(toks...)
			beforeE := energy(toks...)

			batch := NewBatch()
			out := NewCollisions().Process(toks, cfg, sc.Table, 0, batch)

			if out.Bounced != 1 {
				t.Fatalf("Bounced = %d, want 1", out.Bounced)
			}
			if len(batch.Removals()) != 0 || len(batch.Additions()) != 0 {
				t.Error("bounce must not change the token set")
			}
			if after := momentum(toks...); !vecNear(after, before, 1e-9) {
				t.Errorf("momentum %v -> %v", before, after)
			}
			if afterE := energy(toks...); math.Abs(afterE-beforeE) > 1e-9 {
				t.Errorf("energy %f -> %f", beforeE, afterE)
			}
			if d := distance(toks[0].Pos.Vec(), toks[1].Pos.Vec()); d < toks[0].Body.Radius+toks[1].Body.Radius-1e-9 {
				t.Errorf("tokens still overlap after separation: d = %f", d)
			}
		})
	}
}

func TestCombineYieldsChild(t *testing.T) {
	sc, cfg := newTestScene(t)
	place(t, sc, "S1_SOLID", 100, 100, 2, 0)
	place(t, sc, "S1_LINES", 120, 100, -1, 1)
	toks := sc.Tokens.Snapshot()
	a, b := toks[0], toks[1]
	ra, rb := a.Body.Radius, b.Body.Radius
	wantVel := r2.Scale(1/(ra+rb), r2.Add(r2.Scale(ra, a.Vel.Vec()), r2.Scale(rb, b.Vel.Vec())))
	wantPos := r2.Scale(1/(ra+rb), r2.Add(r2.Scale(rb, a.Pos.Vec()), r2.Scale(ra, b.Pos.Vec())))

	batch := NewBatch()
	out := NewCollisions().Process(toks, cfg, sc.Table, 0, batch)
	if out.Combined != 1 || out.MaxTier != 2 {
		t.Fatalf("outcomes = %+v, want one tier-2 combination", out)
	}

	added := sc.Tokens.Commit(batch, 0)
	if sc.Tokens.Len() != 1 || len(added) != 1 {
		t.Fatalf("tokens = %d, added = %d, want exactly one child", sc.Tokens.Len(), len(added))
	}
	child := added[0]
	if child.Sym.ID != "S2_SOLID" || child.Body.Tier != 2 {
		t.Errorf("child = %s tier %d, want S2_SOLID tier 2", child.Sym.ID, child.Body.Tier)
	}
	if want := components.RadiusForTier(cfg, 2); child.Body.Radius != want {
		t.Errorf("child radius = %f, want %f", child.Body.Radius, want)
	}
	if !vecNear(child.Vel.Vec(), wantVel, eps) {
		t.Errorf("child vel = %v, want %v", child.Vel.Vec(), wantVel)
	}
	if !vecNear(child.Pos.Vec(), wantPos, eps) {
		t.Errorf("child pos = %v, want %v", child.Pos.Vec(), wantPos)
	}
	wantImmune := cfg.Gravity.Immunity + 2*cfg.Gravity.ImmunityPerTier
	if child.State.GravityImmuneUntil != wantImmune {
		t.Errorf("child gravity immunity = %v, want %v", child.State.GravityImmuneUntil, wantImmune)
	}
}

func TestCombineAtSecondPosition(t *testing.T) {
	sc, cfg := newTestScene(t)
	cfg.Combine.InMiddle = false
	place(t, sc, "S1_SOLID", 100, 100, 0, 0)
	place(t, sc, "S1_LINES", 120, 100, 0, 0)
	toks := sc.Tokens.Snapshot()

	spec, ok := ChildSpec(toks[0], toks[1], cfg, sc.Table, 0)
	if !ok {
		t.Fatal("expected a recipe")
	}
	if spec.X != 120 || spec.Y != 100 {
		t.Errorf("child at (%f,%f), want second token's position", spec.X, spec.Y)
	}
}

func TestDestroySameKind(t *testing.T) {
	sc, cfg := newTestScene(t)
	place(t, sc, "S1_SOLID", 100, 100, 0, 0)
	place(t, sc, "S1_SOLID", 110, 100, 0, 0)
	toks := sc.Tokens.Snapshot()

	batch := NewBatch()
	out := NewCollisions().Process(toks, cfg, sc.Table, 0, batch)
	if out.Destroyed != 1 {
		t.Fatalf("Destroyed = %d, want 1", out.Destroyed)
	}
	sc.Tokens.Commit(batch, 0)
	if sc.Tokens.Len() != 0 || len(batch.Additions()) != 0 {
		t.Errorf("tokens = %d, additions = %d, want both gone and none added", sc.Tokens.Len(), len(batch.Additions()))
	}
}

func TestDestroyModes(t *testing.T) {
	tests := []struct {
		name        string
		kind        string
		simple      bool
		wind        bool
		wildcard    bool
		wantDestroy bool
	}{
		{"default same kind", "S1_SOLID", false, false, false, true},
		{"simple mode", "S1_SOLID", true, false, false, false},
		{"wind mode", "S1_SOLID", false, true, false, false},
		{"wildcard mode plain kind", "S1_SOLID", false, false, true, false},
		{"wildcard mode wildcard kind", "S3_VOID", false, false, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc, cfg := newTestScene(t)
			cfg.Combine.SimpleMode = tc.simple
			cfg.Combine.WindMode = tc.wind
			cfg.Combine.Wildcard = tc.wildcard
			place(t, sc, tc.kind, 100, 100, 0, 0)
			place(t, sc, tc.kind, 110, 100, 0, 0)
			toks := sc.Tokens.Snapshot()

			if got := shouldDestroy(toks[0], toks[1], cfg, sc.Table); got != tc.wantDestroy {
				t.Errorf("shouldDestroy = %v, want %v", got, tc.wantDestroy)
			}
		})
	}
}

func TestRemovedTokensSkipped(t *testing.T) {
	sc, cfg := newTestScene(t)
	// All three overlap; every pair has a recipe
	place(t, sc, "S1_SOLID", 100, 100, 0, 0)
	place(t, sc, "S1_LINES", 110, 100, 0, 0)
	place(t, sc, "S1_DOTS", 105, 108, 0, 0)
	toks := sc.Tokens.Snapshot()

	batch := NewBatch()
	out := NewCollisions().Process(toks, cfg, sc.Table, 0, batch)
	if out.Combined != 1 {
		t.Fatalf("Combined = %d, want 1", out.Combined)
	}
	if len(batch.Additions()) != 1 || batch.Additions()[0].Symbol != "S2_SOLID" {
		t.Errorf("additions = %+v, want the first pair's S2_SOLID", batch.Additions())
	}
	if batch.Removed(toks[2].Entity) {
		t.Error("third token should survive the tick")
	}
}

func TestCollisionIgnores(t *testing.T) {
	tests := []struct {
		name   string
		bx, by float64
		grab   bool
	}{
		{"grabbed", 110, 100, true},
		{"coincident centers", 100, 100, false},
		{"just touching", 128, 100, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc, cfg := newTestScene(t)
			place(t, sc, "S1_SOLID", 100, 100, 0, 0)
			place(t, sc, "S1_LINES", tc.bx, tc.by, 0, 0)
			toks := sc.Tokens.Snapshot()
			toks[0].State.Grabbed = tc.grab

			out := NewCollisions().Process(toks, cfg, sc.Table, 0, NewBatch())
			if out != (Outcomes{}) {
				t.Errorf("outcomes = %+v, want none", out)
			}
		})
	}
}

func TestCombinePair(t *testing.T) {
	sc, cfg := newTestScene(t)
	place(t, sc, "S1_SOLID", 100, 100, 0, 0)
	place(t, sc, "S1_LINES", 600, 100, 0, 0)
	place(t, sc, "S2_LINES", 300, 300, 0, 0)
	toks := sc.Tokens.Snapshot()

	batch := NewBatch()
	if CombinePair(toks[0], toks[2], cfg, sc.Table, 0, batch) {
		t.Error("pair without a recipe should not combine")
	}
	if CombinePair(toks[0], toks[0], cfg, sc.Table, 0, batch) {
		t.Error("a token cannot combine with itself")
	}
	if !CombinePair(toks[0], toks[1], cfg, sc.Table, 0, batch) {
		t.Fatal("distant recipe pair should combine")
	}
	if CombinePair(toks[1], toks[0], cfg, sc.Table, 0, batch) {
		t.Error("already consumed tokens should not combine again")
	}
}

// pile places n random tier-1/tier-2 tokens in a size×size box with random velocities.
func pile(t *testing.T, sc *Scene, seed int64, n int, size float64) {
	t.Helper()
	kinds := []string{"S1_SOLID", "S1_LINES", "S1_DOTS", "S2_SOLID", "S2_LINES", "S2_DOTS"}
	rng := rand.New(rand.NewSource(seed))
	for range n {
		kind := kinds[rng.Intn(len(kinds))]
		place(t, sc, kind, 300+rng.Float64()*size, 300+rng.Float64()*size, rng.Float64()*4-2, rng.Float64()*4-2)
	}
}

func TestProcessGridMatchesBruteForce(t *testing.T) {
	tests := []struct {
		name string
		n    int
		size float64
	}{
		{"dense pile", 60, 60},
		{"loose pile", 80, 400},
		{"wide field", 150, 900},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(0); seed < 100; seed++ {
				run := func(cellSize float64) (Outcomes, []r2.Vec) {
					sc, cfg := newTestScene(t)
					cfg.Physics.GridCellSize = cellSize
					pile(t, sc, seed, tc.n, tc.size)
					toks := sc.Tokens.Snapshot()
					out := NewCollisions().Process(toks, cfg, sc.Table, 0, NewBatch())
					pos := make([]r2.Vec, len(toks))
					for i, tok := range toks {
						pos[i] = tok.Pos.Vec()
					}
					return out, pos
				}

				gridOut, gridPos := run(64)
				bruteOut, brutePos := run(0)
				if gridOut != bruteOut {
					t.Fatalf("seed %d: grid %+v, brute force %+v", seed, gridOut, bruteOut)
				}
				for i := range gridPos {
					if gridPos[i] != brutePos[i] {
						t.Fatalf("seed %d: token %d at %v with grid, %v with brute force", seed, i, gridPos[i], brutePos[i])
					}
				}
			}
		})
	}
}

func TestBounceReportsSeparation(t *testing.T) {
	sc, _ := newTestScene(t)
	place(t, sc, "S1_SOLID", 100, 100, 0, 0)
	place(t, sc, "S2_LINES", 110, 100, 0, 0)
	toks := sc.Tokens.Snapshot()
	overlap := toks[0].Body.Radius + toks[1].Body.Radius - 10

	da, db := bounce(toks[0], toks[1])
	if math.Abs(da+db-overlap) > eps {
		t.Errorf("separation %f + %f, want total %f", da, db, overlap)
	}
	if da <= db {
		t.Errorf("lighter token should move further: da = %f, db = %f", da, db)
	}
}
