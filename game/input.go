package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard and mouse input in graphical mode.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.speed > 1 {
		g.speed--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.speed < 10 {
		g.speed++
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.cam.Reset()
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		g.selectedKey = ""
	}

	mouse := rl.GetMousePosition()

	// Right-drag pans the camera
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		g.dragging = true
		g.dragLastX = mouse.X
		g.dragLastY = mouse.Y
	}
	if rl.IsMouseButtonReleased(rl.MouseRightButton) {
		g.dragging = false
	}
	if g.dragging {
		g.cam.Pan(g.dragLastX-mouse.X, g.dragLastY-mouse.Y)
		g.dragLastX = mouse.X
		g.dragLastY = mouse.Y
	}

	// Scroll zooms around the cursor
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := float32(1.1)
		if wheel < 0 {
			factor = 1 / 1.1
		}
		g.cam.ZoomAt(factor, mouse.X, mouse.Y)
	}

	// Left click selects the pair under the cursor
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		g.selectAt(mouse.X, mouse.Y)
	}
}

// selectAt hit-tests cells against a screen position, preferring the
// smallest cell so dense clusters remain clickable.
func (g *Game) selectAt(sx, sy float32) {
	wx, wy := g.cam.ScreenToWorld(sx, sy)

	var bestKey string
	var bestRadius float32

	query := g.state.Filter.Query()
	for query.Next() {
		pos, _, body, pair := query.Get()

		dx := pos.X - wx
		dy := pos.Y - wy
		if dx*dx+dy*dy > body.Radius*body.Radius {
			continue
		}
		if bestKey == "" || body.Radius < bestRadius {
			bestKey = pair.Key
			bestRadius = body.Radius
		}
	}

	g.selectedKey = bestKey
}
