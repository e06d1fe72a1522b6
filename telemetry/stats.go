package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Token count at window end
	Tokens int `csv:"tokens"`

	// Events during window
	Spawned       int `csv:"spawned"`
	Exited        int `csv:"exited"`
	Destroyed     int `csv:"destroyed_pairs"`
	Combined      int `csv:"combined"`
	ClickCombined int `csv:"click_combined"`
	Bounced       int `csv:"bounces"`
	Knockbacks    int `csv:"wall_hits"`
	Captured      int `csv:"wind_steps"` // Token-ticks under wind influence
	BestTier      int `csv:"best_tier"`  // Highest tier combined this window

	// Gestures
	Curves   int `csv:"curves"`
	Splits   int `csv:"splits"`
	Launches int `csv:"launches"`

	// Distributions (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	TierMean  float64 `csv:"tier_mean"`
	TierMax   float64 `csv:"tier_max"`
}

// ComputeSpeedStats calculates mean and percentiles from speed values.
func ComputeSpeedStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}

// ComputeTierStats calculates the mean and maximum tier on the field.
func ComputeTierStats(tiers []float64) (mean, maxTier float64) {
	if len(tiers) == 0 {
		return 0, 0
	}
	return stat.Mean(tiers, nil), floats.Max(tiers)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("tokens", s.Tokens),
		slog.Int("spawned", s.Spawned),
		slog.Int("exited", s.Exited),
		slog.Int("destroyed_pairs", s.Destroyed),
		slog.Int("combined", s.Combined),
		slog.Int("click_combined", s.ClickCombined),
		slog.Int("bounces", s.Bounced),
		slog.Int("wall_hits", s.Knockbacks),
		slog.Int("wind_steps", s.Captured),
		slog.Int("best_tier", s.BestTier),
		slog.Int("curves", s.Curves),
		slog.Int("splits", s.Splits),
		slog.Int("launches", s.Launches),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("tier_mean", s.TierMean),
		slog.Float64("tier_max", s.TierMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"tokens", s.Tokens,
		"spawned", s.Spawned,
		"exited", s.Exited,
		"combined", s.Combined,
		"destroyed_pairs", s.Destroyed,
		"bounces", s.Bounced,
		"curves", s.Curves,
		"launches", s.Launches,
		"tier_max", s.TierMax,
	)
}
