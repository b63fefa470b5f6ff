// Radius mapping preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/radiuspreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petri/sim"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	plotSize     = 512
	panelWidth   = windowWidth - plotSize - 30
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Radius Mapping Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := sim.RadiusParams{Min: 4, Max: 26, Default: 6}
	volumeUSD := float64(0)

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawCurve(params, volumeUSD)
		drawSamples(params, volumeUSD)

		// Control panel
		panelX := float32(plotSize + 20)
		panelY := float32(10)

		rl.DrawText("Radius Mapping Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Min radius (liquidity floor)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.Min = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "15",
			params.Min, 1, 15,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Min), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Max radius (liquidity ceiling)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.Max = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"10", "60",
			params.Max, 10, 60,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Max), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Default radius (unknown liquidity)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.Default = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "15",
			params.Default, 1, 15,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Default), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		rl.DrawText("24h volume (scales the curve up to 2x)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		volLog := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"off", "10^7",
			float32(math.Log10(math.Max(volumeUSD, 1))), 0, 7,
		)
		if volLog <= 0.01 {
			volumeUSD = 0
		} else {
			volumeUSD = math.Pow(10, float64(volLog))
		}
		rl.DrawText(volumeLabel(volumeUSD), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		mult := sim.VolumeMultiplier(volumeUSD)
		rl.DrawText(fmt.Sprintf("Volume multiplier: %.2fx", mult), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = sim.RadiusParams{Min: 4, Max: 26, Default: 6}
			volumeUSD = 0
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"radius:",
			fmt.Sprintf("  min: %.1f", params.Min),
			fmt.Sprintf("  max: %.1f", params.Max),
			fmt.Sprintf("  default: %.1f", params.Default),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(fmt.Sprintf("radius:\n  min: %.1f\n  max: %.1f\n  default: %.1f",
				params.Min, params.Max, params.Default))
		}

		rl.EndDrawing()
	}
}

// drawCurve plots radius against log10(liquidity) across the mapped range.
func drawCurve(params sim.RadiusParams, volumeUSD float64) {
	rl.DrawRectangleLines(10, 10, plotSize, plotSize, rl.DarkGray)

	const logLo, logHi = 1.0, 8.0
	maxR := float64(params.Max) * 2

	mult := float64(sim.VolumeMultiplier(volumeUSD))

	var prevX, prevY int32
	for px := 0; px <= plotSize; px += 2 {
		logLiq := logLo + (logHi-logLo)*float64(px)/plotSize
		r := float64(sim.LiquidityToRadius(math.Pow(10, logLiq), params)) * mult

		x := int32(10 + px)
		y := int32(10 + plotSize - int(r/maxR*plotSize))

		if px > 0 {
			rl.DrawLine(prevX, prevY, x, y, rl.Blue)
		}
		prevX, prevY = x, y
	}

	// Axis ticks at each decade
	for d := int(logLo); d <= int(logHi); d++ {
		x := int32(10 + float64(d-1)/(logHi-logLo)*plotSize)
		rl.DrawLine(x, 10+plotSize, x, 10+plotSize+5, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("1e%d", d), x-10, 10+plotSize+8, 10, rl.Gray)
	}
	rl.DrawText("liquidity (USD, log scale)", 10+plotSize/2-70, 10+plotSize+24, 14, rl.DarkGray)
}

// drawSamples renders example circles for representative liquidity tiers.
func drawSamples(params sim.RadiusParams, volumeUSD float64) {
	samples := []struct {
		label string
		liq   float64
	}{
		{"$1K", 1e3},
		{"$100K", 1e5},
		{"$10M", 1e7},
	}

	mult := sim.VolumeMultiplier(volumeUSD)
	y := int32(10 + plotSize + 60)
	x := int32(60)
	for _, s := range samples {
		r := sim.LiquidityToRadius(s.liq, params) * mult
		rl.DrawCircle(x, y, r, rl.SkyBlue)
		rl.DrawCircleLines(x, y, r, rl.DarkBlue)
		rl.DrawText(s.label, x-15, y+int32(params.Max*2)+6, 12, rl.DarkGray)
		x += 150
	}
}

func volumeLabel(v float64) string {
	if v <= 0 {
		return "off"
	}
	return fmt.Sprintf("1e%.0f", math.Log10(v))
}
