package game

import (
	"log/slog"
	"strconv"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// logWorldState logs a summary of the tokens on the field.
func (g *Game) logWorldState() {
	var (
		byTier   = make(map[int]int)
		captured int
		immune   int
		speedSum float64
		speedMax float64
		maxTier  int
	)

	toks := g.scene.Tokens.Snapshot()
	for _, tok := range toks {
		byTier[tok.Body.Tier]++
		maxTier = max(maxTier, tok.Body.Tier)

		s := r2.Norm(tok.Vel.Vec())
		speedSum += s
		speedMax = max(speedMax, s)

		if tok.State.WindCaptured {
			captured++
		}
		if g.scene.Now < tok.State.GravityImmuneUntil {
			immune++
		}
	}

	avgSpeed := 0.0
	if len(toks) > 0 {
		avgSpeed = speedSum / float64(len(toks))
	}

	attrs := []any{
		"tick", g.scene.Tick,
		"sim_time", g.scene.Now.Round(time.Millisecond),
		"tokens", len(toks),
		"captured", captured,
		"gravity_immune", immune,
		"avg_speed", avgSpeed,
		"max_speed", speedMax,
		"combined_total", g.combinedTotal,
		"best_tier", g.bestTier,
		"seed", g.rngSeed,
	}
	for tier := 1; tier <= maxTier; tier++ {
		if n := byTier[tier]; n > 0 {
			attrs = append(attrs, slog.Int("tier_"+strconv.Itoa(tier), n))
		}
	}
	if c := g.scene.Curve; c != nil {
		attrs = append(attrs,
			"curve_points", len(c.Points),
			"curve_length", c.Length,
			"curve_finalized", c.Finalized,
		)
	}

	slog.Info("world", attrs...)
}
