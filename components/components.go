// Package components defines ECS components for tracked trading pairs.
package components

// Position is a pair cell's world position.
type Position struct {
	X, Y float32
}

// Velocity is a pair cell's velocity in world units per reference frame.
type Velocity struct {
	X, Y float32
}

// Body holds the rendered shape state of a pair cell.
// Radius eases toward TargetRadius a fixed fraction per frame; it never snaps.
type Body struct {
	Radius       float32
	TargetRadius float32
	WobblePhase  float32 // monotonically increasing, consumed via trig downstream
	WobbleSpeed  float32 // radians per second
}

// Pair holds the market identity and economics of a tracked pair.
type Pair struct {
	Key          string // pool address or symbol pair, unique across chains
	Chain        uint8  // index into the organ set
	LiquidityUSD float64
	VolumeUSD    float64
	CreatedTick  int32
	UpdatedTick  int32
}
