package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/windfall/components"
	"github.com/pthm-cable/windfall/systems"
	"github.com/pthm-cable/windfall/telemetry"
)

// recordTick feeds one step's report into the collector and flushes when a window closes.
func (g *Game) recordTick(rep systems.TickReport) {
	g.collector.RecordTick(rep.Counts())
	g.combinedTotal += rep.Combined + rep.ClickCombined
	g.bestTier = max(g.bestTier, rep.MaxTier)

	g.flushTelemetry()
}

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.scene.Tick) {
		return
	}

	speeds, tiers := g.sampleDistributions()
	stats := g.collector.Flush(g.scene.Tick, g.scene.Tokens.Len(), speeds, tiers)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleDistributions collects per-token speeds and tiers.
func (g *Game) sampleDistributions() (speeds, tiers []float64) {
	toks := g.scene.Tokens.Snapshot()
	speeds = make([]float64, 0, len(toks))
	tiers = make([]float64, 0, len(toks))
	for _, tok := range toks {
		speeds = append(speeds, r2.Norm(tok.Vel.Vec()))
		tiers = append(tiers, float64(tok.Body.Tier))
	}
	return speeds, tiers
}

// onCurveFinalized counts a finished curve. Splits also count as curves.
func (g *Game) onCurveFinalized(c *systems.WindCurve, split bool) {
	g.collector.RecordGesture(telemetry.GestureCurve)
	if split {
		g.collector.RecordGesture(telemetry.GestureSplit)
	}
	slog.Debug("curve finalized",
		"points", len(c.Points),
		"length", c.Length,
		"lifetime", c.Lifetime,
		"split", split,
	)
}

// onLaunch counts a slingshot release.
func (g *Game) onLaunch(tok components.Token) {
	g.collector.RecordGesture(telemetry.GestureLaunch)
	slog.Debug("launch",
		"symbol", tok.Sym.ID,
		"vx", tok.Vel.X,
		"vy", tok.Vel.Y,
	)
}
