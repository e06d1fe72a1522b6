package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/windfall/renderer"
	"github.com/pthm-cable/windfall/ui"
)

const controlsLegend = "[Space] pause  [Tab] tuning  [F3] perf  [<>] speed  [L] log state  [F11] fullscreen"

// Draw renders the game.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	// Playfield
	x, y := g.camera.WorldToScreen(0, 0)
	w := g.camera.ScaleLength(float32(g.cfg.Derived.Width))
	h := g.camera.ScaleLength(float32(g.cfg.Derived.Height))
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), renderer.Background)

	renderer.DrawWindCurve(g.camera, g.scene.Curve, g.scene.Now)
	g.drawTokens()

	g.hud.Draw(ui.HUDData{
		Title:    "Windfall",
		Tokens:   g.scene.Tokens.Len(),
		BestTier: g.bestTier,
		Combined: g.combinedTotal,
		Tick:     g.scene.Tick,
		SimTime:  g.scene.Now,
		Speed:    g.stepsPerUpdate,
		FPS:      rl.GetFPS(),
		Mode:     g.modeLabel(),
		Paused:   g.paused,
	})

	panelY := int32(110)
	if g.showPerf {
		stats := g.perfCollector.Stats()
		g.perfPanel.SetPosition(10, panelY)
		g.perfPanel.Draw(ui.PerfPanelData{PhaseAvg: stats.PhaseAvg, Total: stats.AvgTickDuration}, g.phases.IDs(), g.phases.GetName)
		panelY += 150
	}
	g.drawInspector(panelY)

	if g.tuning.Draw(g.cfg, g.paused) {
		g.TogglePause()
	}
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	rl.EndDrawing()
}

// drawTokens renders every token in insertion order, so later tokens are on top.
func (g *Game) drawTokens() {
	for _, tok := range g.scene.Tokens.Snapshot() {
		glyph := "?"
		if def, ok := g.table.Def(tok.Sym.ID); ok {
			glyph = def.Glyph
		}
		renderer.DrawToken(g.camera, tok, glyph)
	}
	renderer.DrawParticles(g.camera, g.scene.Effects.Particles)
	if tok, ok := g.scene.Grabbed(); ok {
		renderer.DrawSlingshot(g.camera, tok)
	}
}

// drawInspector describes the token under the pointer, if any.
func (g *Game) drawInspector(y int32) {
	mp := rl.GetMousePosition()
	if g.tuning.Contains(mp.X, mp.Y) {
		return
	}
	wx, wy := g.camera.ScreenToWorld(mp.X, mp.Y)
	tok, ok := g.scene.TokenAt(float64(wx), float64(wy))
	if !ok {
		return
	}
	def, _ := g.table.Def(tok.Sym.ID)

	g.inspector.SetPosition(10, y)
	g.inspector.Draw(ui.InspectorData{Token: tok, Symbol: def, Now: g.scene.Now})
}

// modeLabel names the active gesture mode.
func (g *Game) modeLabel() string {
	switch {
	case g.cfg.Combine.Click:
		return "Click to combine"
	case g.cfg.Slingshot.Enabled:
		return "Slingshot"
	default:
		return "Wind"
	}
}
