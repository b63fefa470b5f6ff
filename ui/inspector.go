package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PairInfo holds the display data for a selected trading pair.
type PairInfo struct {
	Key          string
	ChainName    string
	ChainColor   rl.Color
	LiquidityUSD float64
	VolumeUSD    float64
	Radius       float32
	TargetRadius float32
	MaxRadius    float32
	AgeTicks     int32
}

// InspectorPanel shows details for the pair under the cursor selection.
type InspectorPanel struct {
	renderer *Renderer
	width    int32
}

// NewInspectorPanel creates an inspector panel.
func NewInspectorPanel(width int32) *InspectorPanel {
	return &InspectorPanel{renderer: NewRenderer(), width: width}
}

// Draw renders the panel anchored to the top-right corner.
func (p *InspectorPanel) Draw(screenW int32, info PairInfo) {
	r := p.renderer
	padding := r.Theme.Padding
	x := screenW - p.width - 10
	height := r.Theme.LineHeight*7 + padding*3

	r.DrawPanel(x, 10, p.width, height)

	y := int32(10) + padding
	rl.DrawRectangle(x+padding, y+2, 10, 10, info.ChainColor)
	rl.DrawText(info.Key, x+padding+16, y, r.Theme.HeaderFontSize, rl.White)
	y += r.Theme.LineHeight + 4

	y = r.DrawLabelValue(x+padding, y, "Chain", info.ChainName)
	y = r.DrawLabelValue(x+padding, y, "Liquidity", formatUSD(info.LiquidityUSD))
	y = r.DrawLabelValue(x+padding, y, "Volume", formatUSD(info.VolumeUSD))
	y = r.DrawLabelValue(x+padding, y, "Age", fmt.Sprintf("%d ticks", info.AgeTicks))

	if info.MaxRadius > 0 {
		r.DrawBar(x+padding, y, "Size", info.Radius/info.MaxRadius, p.width-padding*2)
	}
}

// formatUSD renders a dollar amount with a compact suffix.
func formatUSD(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
