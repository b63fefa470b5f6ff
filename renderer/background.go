// Package renderer draws the world: the noise-field background, organ
// membranes, and pair cells as wobbling blobs.
package renderer

import (
	"github.com/aquilax/go-perlin"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// Screen-space tile size of the background field, in pixels
	backgroundTile = 32

	noiseScale = 0.0012
	noiseSpeed = 0.05
)

// BackgroundRenderer renders a slowly drifting Perlin brightness field so the
// world reads as a fluid medium rather than a flat void.
type BackgroundRenderer struct {
	noise *perlin.Perlin

	screenW, screenH int32
	base             [3]uint8
}

// NewBackgroundRenderer creates a background renderer with a fixed noise seed.
func NewBackgroundRenderer(screenW, screenH int32, baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		noise:   perlin.NewPerlin(2, 2, 3, 1),
		screenW: screenW,
		screenH: screenH,
		base:    [3]uint8{baseR, baseG, baseB},
	}
}

// Resize updates the covered screen area.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw fills the screen with the animated field. cameraX/cameraY/cameraZoom
// anchor the noise in world space so it pans and zooms with the view.
func (b *BackgroundRenderer) Draw(time float32, cameraX, cameraY, cameraZoom float32) {
	if cameraZoom <= 0 {
		cameraZoom = 1
	}

	halfW := float64(b.screenW) / 2
	halfH := float64(b.screenH) / 2
	z := float64(time) * noiseSpeed

	for sy := int32(0); sy < b.screenH; sy += backgroundTile {
		for sx := int32(0); sx < b.screenW; sx += backgroundTile {
			// Tile center in world coordinates
			wx := float64(cameraX) + (float64(sx)+float64(backgroundTile)/2-halfW)/float64(cameraZoom)
			wy := float64(cameraY) + (float64(sy)+float64(backgroundTile)/2-halfH)/float64(cameraZoom)

			n := b.noise.Noise3D(wx*noiseScale, wy*noiseScale, z)
			// [-1, 1] -> gentle brightness modulation around the base color
			f := 1 + 0.25*n

			c := rl.NewColor(scale8(b.base[0], f), scale8(b.base[1], f), scale8(b.base[2], f), 255)
			rl.DrawRectangle(sx, sy, backgroundTile, backgroundTile, c)
		}
	}
}

func scale8(v uint8, f float64) uint8 {
	s := float64(v) * f
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return uint8(s)
}
