package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petri/ui"
)

// Draw renders one frame.
func (g *Game) Draw() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	g.cam.Resize(float32(screenW), float32(screenH))
	g.background.Resize(screenW, screenH)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.background.Draw(float32(g.simTime), g.cam.X, g.cam.Y, g.cam.Zoom)

	g.drawOrgans()
	g.drawCells()
	g.drawSelection()
	g.drawHUD(screenW, screenH)

	rl.EndDrawing()
}

// drawOrgans renders the chain membranes behind the cells.
func (g *Game) drawOrgans() {
	zoom := g.cam.Zoom

	for _, o := range g.state.Organs.All() {
		outer := o.Radius * g.state.Params.OrganWobbleFactor
		if !g.cam.IsVisible(o.X, o.Y, outer) {
			continue
		}

		sx, sy := g.cam.WorldToScreen(o.X, o.Y)
		tint := rl.NewColor(o.Color[0], o.Color[1], o.Color[2], 255)
		g.blobs.DrawOrgan(sx, sy, o.Radius*zoom, o.WobblePhase, tint)

		label := o.Name
		labelW := rl.MeasureText(label, 14)
		rl.DrawText(label, int32(sx)-labelW/2, int32(sy-o.Radius*zoom)-20, 14, rl.Fade(rl.White, 0.7))
	}
}

// drawCells renders every visible pair cell colored by its chain.
func (g *Game) drawCells() {
	zoom := g.cam.Zoom

	query := g.state.Filter.Query()
	for query.Next() {
		pos, _, body, pair := query.Get()

		if !g.cam.IsVisible(pos.X, pos.Y, body.Radius) {
			continue
		}

		o := g.state.Organs.At(int(pair.Chain))
		fill := rl.NewColor(
			lighten(o.Color[0]),
			lighten(o.Color[1]),
			lighten(o.Color[2]),
			230,
		)

		sx, sy := g.cam.WorldToScreen(pos.X, pos.Y)
		g.blobs.DrawCell(sx, sy, body.Radius*zoom, body.WobblePhase, fill)
	}
}

// drawSelection highlights the selected pair, if it is still alive.
func (g *Game) drawSelection() {
	e, ok := g.selectedEntity()
	if !ok {
		return
	}

	pos := g.state.PosMap.Get(e)
	body := g.state.BodyMap.Get(e)
	if pos == nil || body == nil {
		return
	}

	sx, sy := g.cam.WorldToScreen(pos.X, pos.Y)
	g.blobs.DrawSelection(sx, sy, body.Radius*g.cam.Zoom, body.WobblePhase)
}

// drawHUD renders the overlay text and the inspector panel.
func (g *Game) drawHUD(screenW, screenH int32) {
	g.hud.Draw(ui.HUDData{
		Title:        "Petri",
		PairCount:    g.state.PairCount(),
		OrganCount:   g.state.Organs.Len(),
		Creates:      g.lastStats.Creates,
		Removes:      g.lastStats.Removes,
		Tick:         g.tick,
		Speed:        g.speed,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
	})
	g.hud.DrawControls(screenW, screenH,
		"SPACE pause | </> speed | right-drag pan | wheel zoom | click inspect | R reset view")

	e, ok := g.selectedEntity()
	if !ok {
		return
	}
	pair := g.state.PairMap.Get(e)
	body := g.state.BodyMap.Get(e)
	if pair == nil || body == nil {
		return
	}

	o := g.state.Organs.At(int(pair.Chain))
	g.inspector.Draw(screenW, ui.PairInfo{
		Key:          pair.Key,
		ChainName:    o.Name,
		ChainColor:   rl.NewColor(o.Color[0], o.Color[1], o.Color[2], 255),
		LiquidityUSD: pair.LiquidityUSD,
		VolumeUSD:    pair.VolumeUSD,
		Radius:       body.Radius,
		TargetRadius: body.TargetRadius,
		MaxRadius:    g.state.Params.Radius.Max,
		AgeTicks:     g.tick - pair.CreatedTick,
	})
}

// lighten brightens a chain color channel for cell bodies so they stand out
// against the dimmer membrane fill.
func lighten(v uint8) uint8 {
	l := int(v) + 60
	if l > 255 {
		return 255
	}
	return uint8(l)
}
