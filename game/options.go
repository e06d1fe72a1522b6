package game

import "github.com/pthm-cable/windfall/telemetry"

// Options configures a Game beyond the simulation config.
type Options struct {
	Seed           int64
	LogStats       bool    // Log window stats via slog
	StatsWindowSec float64 // Stats window in simulated seconds (0 = use config)
	OutputDir      string  // CSV output directory (empty = disabled)
	Headless       bool    // No raylib calls at all
	StepsPerUpdate int     // Simulation ticks per Update call

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// maxStepsPerUpdate caps the speed control in play mode.
const maxStepsPerUpdate = 10
