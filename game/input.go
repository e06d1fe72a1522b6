package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and pointer input.
// Pointer samples are mapped to playfield coordinates before reaching the scene.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.tuning.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyL) {
		g.logWorldState()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < maxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	g.handlePointer()
}

// handlePointer turns mouse (and emulated touch) events into gesture calls.
func (g *Game) handlePointer() {
	mp := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(mp.X, mp.Y)
	x, y := float64(wx), float64(wy)

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		// Clicks on the tuning panel belong to raygui
		if g.tuning.Contains(mp.X, mp.Y) {
			return
		}
		g.pressed = true
		g.scene.OnPressStart(x, y)
	case g.pressed && rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		g.scene.OnMove(x, y)
		g.scene.OnRelease()
		g.pressed = false
	case g.pressed:
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			g.scene.OnMove(x, y)
		}
	}
}

// handleResize refits the playfield when the window size changes.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.tuning.SetPosition(int32(w)-260, 10)
}
