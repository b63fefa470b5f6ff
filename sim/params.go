// Package sim implements the real-time physics core: spatial hashing,
// organ/cell dynamics, and the per-frame simulation step.
package sim

import (
	"github.com/pthm-cable/petri/config"
)

// Params holds every tunable the physics core consumes.
// Tests construct Params directly; the binary derives it from config.
type Params struct {
	WorldW, WorldH float32
	GridCellSize   float32

	MaxDT        float32 // delta-time cap in seconds
	ReferenceFPS float32 // velocity unit: world units per reference frame
	Damping      float32
	NoiseAccel   float32
	Epsilon      float32

	// Cell containment and separation
	InnerShrink        float32
	OuterWobble        float32
	CellClearance      float32
	PositionCorrection float32
	Impulse            float32
	CleanupCorrection  float32
	EdgePush           float32
	EaseRate           float32
	StartRadius        float32
	CellWobbleSpeedMin float32
	CellWobbleSpeedMax float32
	MaxPerOrgan        int

	// Organ growth and layout
	OrganBaseRadius     float32
	OrganGrowthPerCell  float32
	OrganWobbleFactor   float32
	OrganClearance      float32
	OrganGravity        float32
	OrganMaxPull        float32
	PackAttempts        int
	OrganWobbleSpeedMin float32
	OrganWobbleSpeedMax float32

	Radius RadiusParams
}

// DefaultParams returns the tuning used by the embedded default config.
func DefaultParams() Params {
	return Params{
		WorldW:       2200,
		WorldH:       1600,
		GridCellSize: 128,

		MaxDT:        0.033,
		ReferenceFPS: 60,
		Damping:      0.92,
		NoiseAccel:   0.28,
		Epsilon:      0.0001,

		InnerShrink:        0.90,
		OuterWobble:        1.12,
		CellClearance:      2.0,
		PositionCorrection: 0.65,
		Impulse:            0.18,
		CleanupCorrection:  0.5,
		EdgePush:           0.05,
		EaseRate:           0.08,
		StartRadius:        2.0,
		CellWobbleSpeedMin: 0.8,
		CellWobbleSpeedMax: 2.4,
		MaxPerOrgan:        250,

		OrganBaseRadius:     90,
		OrganGrowthPerCell:  7,
		OrganWobbleFactor:   1.06,
		OrganClearance:      30,
		OrganGravity:        0.02,
		OrganMaxPull:        2.5,
		PackAttempts:        64,
		OrganWobbleSpeedMin: 0.3,
		OrganWobbleSpeedMax: 0.9,

		Radius: RadiusParams{Min: 4, Max: 26, Default: 6},
	}
}

// ParamsFromConfig builds sim parameters from the loaded configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		WorldW:       cfg.Derived.WorldW32,
		WorldH:       cfg.Derived.WorldH32,
		GridCellSize: float32(cfg.Physics.GridCellSize),

		MaxDT:        float32(cfg.Physics.MaxDT),
		ReferenceFPS: float32(cfg.Physics.ReferenceFPS),
		Damping:      float32(cfg.Physics.Damping),
		NoiseAccel:   float32(cfg.Physics.NoiseAccel),
		Epsilon:      float32(cfg.Physics.Epsilon),

		InnerShrink:        float32(cfg.Cell.InnerShrink),
		OuterWobble:        float32(cfg.Cell.OuterWobble),
		CellClearance:      float32(cfg.Cell.Clearance),
		PositionCorrection: float32(cfg.Cell.PositionCorrection),
		Impulse:            float32(cfg.Cell.Impulse),
		CleanupCorrection:  float32(cfg.Cell.CleanupCorrection),
		EdgePush:           float32(cfg.Cell.EdgePush),
		EaseRate:           float32(cfg.Cell.EaseRate),
		StartRadius:        float32(cfg.Cell.StartRadius),
		CellWobbleSpeedMin: float32(cfg.Cell.WobbleSpeedMin),
		CellWobbleSpeedMax: float32(cfg.Cell.WobbleSpeedMax),
		MaxPerOrgan:        cfg.Cell.MaxPerOrgan,

		OrganBaseRadius:     float32(cfg.Organ.BaseRadius),
		OrganGrowthPerCell:  float32(cfg.Organ.GrowthPerCell),
		OrganWobbleFactor:   float32(cfg.Organ.WobbleFactor),
		OrganClearance:      float32(cfg.Organ.Clearance),
		OrganGravity:        float32(cfg.Organ.Gravity),
		OrganMaxPull:        float32(cfg.Organ.MaxPull),
		PackAttempts:        cfg.Organ.PackAttempts,
		OrganWobbleSpeedMin: float32(cfg.Organ.WobbleSpeedMin),
		OrganWobbleSpeedMax: float32(cfg.Organ.WobbleSpeedMax),

		Radius: RadiusParams{
			Min:     float32(cfg.Radius.Min),
			Max:     float32(cfg.Radius.Max),
			Default: float32(cfg.Radius.Default),
		},
	}
}
