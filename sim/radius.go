package sim

import "math"

// RadiusParams bounds the liquidity-to-radius mapping.
type RadiusParams struct {
	Min     float32
	Max     float32
	Default float32
}

// Log-scale normalization ranges for the economic inputs.
const (
	liquidityLogMin = 2.0 // $100
	liquidityLogMax = 7.0 // $10M
	volumeLogMin    = 3.0 // $1k
	volumeLogMax    = 6.0 // $1M
)

// LiquidityToRadius maps a pair's liquidity (USD) to a render radius on a
// log10 scale. Liquidity <= 0 yields the default radius; output is always
// within [Min, Max] and monotonic non-decreasing for positive input.
func LiquidityToRadius(liquidityUSD float64, p RadiusParams) float32 {
	if liquidityUSD <= 0 {
		return p.Default
	}
	if liquidityUSD < 1 {
		liquidityUSD = 1
	}
	t := (math.Log10(liquidityUSD) - liquidityLogMin) / (liquidityLogMax - liquidityLogMin)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Min + (p.Max-p.Min)*float32(t)
}

// VolumeMultiplier maps 24h trade volume (USD) to a radius multiplier in
// [1, 2] on a log10 scale. Volume <= 0 yields 1.
func VolumeMultiplier(volumeUSD float64) float32 {
	if volumeUSD <= 0 {
		return 1
	}
	if volumeUSD < 1 {
		volumeUSD = 1
	}
	t := (math.Log10(volumeUSD) - volumeLogMin) / (volumeLogMax - volumeLogMin)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return 1 + float32(t)
}
