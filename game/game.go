// Package game wires the simulation into a headless runner and a raylib front end.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/windfall/camera"
	"github.com/pthm-cable/windfall/config"
	"github.com/pthm-cable/windfall/symbols"
	"github.com/pthm-cable/windfall/systems"
	"github.com/pthm-cable/windfall/telemetry"
	"github.com/pthm-cable/windfall/ui"
)

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	table   *symbols.Table
	scene   *systems.Scene
	rngSeed int64

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Running totals for the HUD
	combinedTotal int
	bestTier      int

	// Rendering, nil when headless
	camera    *camera.Camera
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	phases    *systems.PhaseRegistry
	tuning    *ui.TuningPanel
	inspector *ui.Inspector
	showPerf  bool

	// State
	headless       bool
	paused         bool
	pressed        bool // Pointer gesture in progress
	stepsPerUpdate int

	screenWidth, screenHeight float32
}

// NewGame creates a game around a fresh scene.
// In play mode the raylib window must already be open.
func NewGame(cfg *config.Config, table *symbols.Table, opts Options) (*Game, error) {
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	steps := max(1, opts.StepsPerUpdate)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:            cfg,
		table:          table,
		scene:          systems.NewScene(cfg, table, opts.Seed),
		rngSeed:        opts.Seed,
		collector:      telemetry.NewCollector(statsWindow, cfg.Derived.TickDuration),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		outputManager:  om,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
	}
	g.scene.OnCurveFinalized = g.onCurveFinalized
	g.scene.OnLaunch = g.onLaunch

	if !g.headless {
		g.initRendering()
	}

	slog.Info("game created",
		"seed", opts.Seed,
		"symbols", table.Len(),
		"headless", opts.Headless,
		"output_dir", om.Dir(),
	)
	return g, nil
}

// initRendering creates the camera and UI panels for the current window.
func (g *Game) initRendering() {
	g.screenWidth = float32(rl.GetScreenWidth())
	g.screenHeight = float32(rl.GetScreenHeight())
	g.camera = camera.New(g.screenWidth, g.screenHeight, float32(g.cfg.Derived.Width), float32(g.cfg.Derived.Height))
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 110)
	g.phases = systems.NewPhaseRegistry()
	g.tuning = ui.NewTuningPanel(int32(g.screenWidth)-260, 10, 250)
	g.inspector = ui.NewInspector(10, 110, 220)
}

// Update handles input and runs simulation steps. Paused games only poll input.
func (g *Game) Update() {
	g.perfCollector.StartTick()
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		if i > 0 {
			g.perfCollector.StartTick()
		}
		g.step()
	}
}

// UpdateHeadless runs simulation steps without polling input.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.perfCollector.StartTick()
		g.step()
	}
}

// step runs a single tick of the simulation and records its telemetry.
func (g *Game) step() {
	rep := g.scene.Step(g.cfg, g.perfCollector)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordTick(rep)
	g.perfCollector.EndTick()
}

// Scene returns the simulation scene.
func (g *Game) Scene() *systems.Scene {
	return g.scene
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.scene.Tick
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// TogglePause pauses or resumes the simulation.
// Resuming restarts the spawn timer.
func (g *Game) TogglePause() {
	g.paused = !g.paused
	if !g.paused {
		g.scene.Spawner().Reset()
	}
	slog.Info("pause", "paused", g.paused, "tick", g.scene.Tick)
}

// Unload flushes output and releases resources.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
