package telemetry

import "time"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	tick                time.Duration

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	counts   TickCounts
	curves   int
	splits   int
	launches int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// tick: simulated time per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, tick time.Duration) *Collector {
	ticksPerWindow := int32(windowDurationSec / tick.Seconds())
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		tick:                tick,
	}
}

// RecordTick adds one tick's counts to the window.
func (c *Collector) RecordTick(tc TickCounts) {
	c.counts.Spawned += tc.Spawned
	c.counts.Exited += tc.Exited
	c.counts.Destroyed += tc.Destroyed
	c.counts.Combined += tc.Combined
	c.counts.ClickCombined += tc.ClickCombined
	c.counts.Bounced += tc.Bounced
	c.counts.Knockbacks += tc.Knockbacks
	c.counts.Captured += tc.Captured
	c.counts.MaxTier = max(c.counts.MaxTier, tc.MaxTier)
}

// RecordGesture records a completed gesture.
func (c *Collector) RecordGesture(kind GestureKind) {
	switch kind {
	case GestureCurve:
		c.curves++
	case GestureSplit:
		c.splits++
	case GestureLaunch:
		c.launches++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the live token count and per-token speeds and tiers,
// sampled at window end.
func (c *Collector) Flush(currentTick int32, tokens int, speeds, tiers []float64) WindowStats {
	speedMean, speedP50, speedP90 := ComputeSpeedStats(speeds)
	tierMean, tierMax := ComputeTierStats(tiers)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.tick.Seconds(),

		Tokens: tokens,

		Spawned:       c.counts.Spawned,
		Exited:        c.counts.Exited,
		Destroyed:     c.counts.Destroyed,
		Combined:      c.counts.Combined,
		ClickCombined: c.counts.ClickCombined,
		Bounced:       c.counts.Bounced,
		Knockbacks:    c.counts.Knockbacks,
		Captured:      c.counts.Captured,
		BestTier:      c.counts.MaxTier,

		Curves:   c.curves,
		Splits:   c.splits,
		Launches: c.launches,

		SpeedMean: speedMean,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,
		TierMean:  tierMean,
		TierMax:   tierMax,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.counts = TickCounts{}
	c.curves = 0
	c.splits = 0
	c.launches = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
