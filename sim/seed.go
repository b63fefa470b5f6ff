package sim

import (
	"math"
	"math/rand"
)

// ChainSeed describes one chain to place as an organ at startup.
type ChainSeed struct {
	Key   string
	Name  string
	Color [3]uint8
}

// SeedOrgans places one organ per chain with a packing heuristic: the first
// organ sits at the world center; each subsequent organ is placed adjacent to
// a randomly chosen already-placed organ at a random angle, rejecting
// placements that overlap any existing organ. Once the attempts run out the
// last candidate is accepted and left for the separation pass
// to resolve over the following frames.
func SeedOrgans(chains []ChainSeed, p Params, rng *rand.Rand) *OrganSet {
	set := NewOrganSet()

	for _, chain := range chains {
		o := &Organ{
			Key:         chain.Key,
			Name:        chain.Name,
			Color:       chain.Color,
			Radius:      p.OrganBaseRadius,
			WobblePhase: rng.Float32() * 2 * math.Pi,
			WobbleSpeed: p.OrganWobbleSpeedMin + rng.Float32()*(p.OrganWobbleSpeedMax-p.OrganWobbleSpeedMin),
		}

		if set.Len() == 0 {
			o.X = p.WorldW / 2
			o.Y = p.WorldH / 2
			set.Add(o)
			continue
		}

		placed := set.All()
		attempts := p.PackAttempts
		if attempts < 1 {
			attempts = 1
		}
		for try := 0; try < attempts; try++ {
			anchor := placed[rng.Intn(len(placed))]
			ang := rng.Float64() * 2 * math.Pi
			dist := float64(anchor.Radius + o.Radius + p.OrganClearance)

			o.X = anchor.X + float32(math.Cos(ang)*dist)
			o.Y = anchor.Y + float32(math.Sin(ang)*dist)

			if !overlapsAny(o, placed, p.OrganClearance) {
				break
			}
		}
		set.Add(o)
	}

	return set
}

// overlapsAny reports whether candidate intersects any placed organ closer
// than the clearance allows.
func overlapsAny(candidate *Organ, placed []*Organ, clearance float32) bool {
	for _, o := range placed {
		dx := float64(candidate.X - o.X)
		dy := float64(candidate.Y - o.Y)
		minDist := float64(candidate.Radius + o.Radius + clearance)
		if dx*dx+dy*dy < minDist*minDist*0.98 {
			return true
		}
	}
	return false
}
