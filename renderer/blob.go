package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// Outline vertex count per blob; enough that the wobble reads smooth
	blobSegments = 24

	// Fraction of the radius the membrane wobble displaces
	wobbleAmplitude = 0.06

	// Lobes around the circumference
	wobbleLobes = 3
)

// BlobRenderer draws organic wobbling circles for organs and cells. It reuses
// one vertex buffer across all draws in a frame.
type BlobRenderer struct {
	points []rl.Vector2
}

// NewBlobRenderer creates a blob renderer.
func NewBlobRenderer() *BlobRenderer {
	return &BlobRenderer{
		// Fan layout: center, then the rim closed back on itself
		points: make([]rl.Vector2, blobSegments+2),
	}
}

// DrawCell draws a filled cell body at a screen position.
func (b *BlobRenderer) DrawCell(x, y, radius, phase float32, fill rl.Color) {
	if radius <= 0 {
		return
	}
	b.outline(x, y, radius, phase)
	rl.DrawTriangleFan(b.points, fill)
}

// DrawOrgan draws an organ membrane: translucent interior plus a rim.
func (b *BlobRenderer) DrawOrgan(x, y, radius, phase float32, tint rl.Color) {
	if radius <= 0 {
		return
	}
	b.outline(x, y, radius, phase)
	rl.DrawTriangleFan(b.points, rl.Fade(tint, 0.12))
	rl.DrawLineStrip(b.points[1:], rl.Fade(tint, 0.55))
}

// DrawSelection draws a highlight ring around a selected cell.
func (b *BlobRenderer) DrawSelection(x, y, radius, phase float32) {
	b.outline(x, y, radius*1.25, phase)
	rl.DrawLineStrip(b.points[1:], rl.Fade(rl.White, 0.9))
}

// outline fills the shared vertex buffer with a wobble-modulated circle.
// The rim radius is r * (1 + a*sin(lobes*theta + phase)).
func (b *BlobRenderer) outline(x, y, radius, phase float32) {
	b.points[0] = rl.NewVector2(x, y)

	for i := 0; i <= blobSegments; i++ {
		theta := float64(i) / blobSegments * 2 * math.Pi
		r := float64(radius) * (1 + wobbleAmplitude*math.Sin(wobbleLobes*theta+float64(phase)))

		b.points[i+1] = rl.NewVector2(
			x+float32(math.Cos(theta)*r),
			y+float32(math.Sin(theta)*r),
		)
	}
}
