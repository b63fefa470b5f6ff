package sim

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/petri/components"
)

// stepCells runs the main per-cell update: containment, neighbor repulsion,
// stochastic drift, damping, integration, re-clamp, radius easing, and wobble
// advancement. The spatial index must be freshly rebuilt before calling.
func (s *State) stepCells(dt float32) {
	p := &s.Params

	// Velocities are in units per reference frame; scale displacement by the
	// actual elapsed time so perceived speed is frame-rate-independent.
	k := dt * p.ReferenceFPS

	query := s.Filter.Query()
	for query.Next() {
		e := query.Entity()
		pos, vel, body, pair := query.Get()
		organ := s.Organs.At(int(pair.Chain))

		s.confine(pos, vel, body, organ, true)
		s.repelNeighbors(e, pos, vel, body)

		// Stochastic drift: bounded uniform perturbation per component
		vel.X += (s.Noise.Float32()*2 - 1) * p.NoiseAccel
		vel.Y += (s.Noise.Float32()*2 - 1) * p.NoiseAccel

		vel.X *= p.Damping
		vel.Y *= p.Damping

		pos.X += vel.X * k
		pos.Y += vel.Y * k

		// Re-clamp position only; velocity is left for natural damping
		s.confine(pos, vel, body, organ, false)

		body.Radius += (body.TargetRadius - body.Radius) * p.EaseRate
		body.WobblePhase += body.WobbleSpeed * dt
	}
}

// confine keeps a cell inside its organ's containment radius. When the cell
// is outside, it is snapped radially onto the boundary; in the pre-integration
// pass (zeroVel) any outward velocity component is also removed and a weaker
// inward force discourages piling at the edge before the boundary is hit.
func (s *State) confine(pos *components.Position, vel *components.Velocity, body *components.Body, organ *Organ, zeroVel bool) {
	p := &s.Params
	limit := organ.ContainmentRadius(body.Radius, p)

	dx := pos.X - organ.X
	dy := pos.Y - organ.Y
	dist := float32(math.Sqrt(float64(dx*dx+dy*dy))) + p.Epsilon
	nx := dx / dist
	ny := dy / dist

	if dist > limit {
		pos.X = organ.X + nx*limit
		pos.Y = organ.Y + ny*limit
		if zeroVel {
			// Inelastic wall: drop the outward component so repeated strikes
			// cannot accumulate energy
			out := vel.X*nx + vel.Y*ny
			if out > 0 {
				vel.X -= out * nx
				vel.Y -= out * ny
			}
		}
	}

	if zeroVel && limit > 0 {
		t := dist / limit
		if t > 1 {
			t = 1
		}
		vel.X -= nx * p.EdgePush * t
		vel.Y -= ny * p.EdgePush * t
	}
}

// repelNeighbors applies the coupled pass-1 separation: a partial positional
// correction plus a velocity impulse along the separating normal, split
// between both cells. Intentional under-correction avoids oscillation.
func (s *State) repelNeighbors(e ecs.Entity, pos *components.Position, vel *components.Velocity, body *components.Body) {
	p := &s.Params

	s.scratch = s.Grid.NeighborsInto(s.scratch[:0], e, pos.X, pos.Y)
	for _, n := range s.scratch {
		npos := s.PosMap.Get(n)
		nbody := s.BodyMap.Get(n)
		if npos == nil || nbody == nil {
			continue
		}

		dx := pos.X - npos.X
		dy := pos.Y - npos.Y
		dist := float32(math.Sqrt(float64(dx*dx+dy*dy))) + p.Epsilon

		minDist := (body.Radius+nbody.Radius)*p.OuterWobble + p.CellClearance
		if dist >= minDist {
			continue
		}

		nx := dx / dist
		ny := dy / dist
		if dist <= p.Epsilon*2 {
			nx, ny = s.randomAxis()
		}

		overlap := minDist - dist
		shift := overlap * p.PositionCorrection * 0.5
		pos.X += nx * shift
		pos.Y += ny * shift
		npos.X -= nx * shift
		npos.Y -= ny * shift

		imp := overlap * p.Impulse
		vel.X += nx * imp
		vel.Y += ny * imp
		if nvel := s.VelMap.Get(n); nvel != nil {
			nvel.X -= nx * imp
			nvel.Y -= ny * imp
		}
	}
}

// cleanupOverlaps is the pass-2 position-only declutter: the same overlap
// test as pass 1 but with no velocity change, correcting residual overlaps
// introduced by simultaneous independent integration. The spatial index must
// be rebuilt after integration and before this pass, and clampContainment
// must run after it: the shifts here ignore organ boundaries.
func (s *State) cleanupOverlaps() {
	p := &s.Params

	query := s.Filter.Query()
	for query.Next() {
		e := query.Entity()
		pos, _, body, _ := query.Get()

		s.scratch = s.Grid.NeighborsInto(s.scratch[:0], e, pos.X, pos.Y)
		for _, n := range s.scratch {
			npos := s.PosMap.Get(n)
			nbody := s.BodyMap.Get(n)
			if npos == nil || nbody == nil {
				continue
			}

			dx := pos.X - npos.X
			dy := pos.Y - npos.Y
			dist := float32(math.Sqrt(float64(dx*dx+dy*dy))) + p.Epsilon

			minDist := (body.Radius+nbody.Radius)*p.OuterWobble + p.CellClearance
			if dist >= minDist {
				continue
			}

			nx := dx / dist
			ny := dy / dist
			if dist <= p.Epsilon*2 {
				nx, ny = s.randomAxis()
			}

			shift := (minDist - dist) * p.CleanupCorrection * 0.5
			pos.X += nx * shift
			pos.Y += ny * shift
			npos.X -= nx * shift
			npos.Y -= ny * shift
		}
	}
}

// clampContainment is the final position-only sweep of a step: any cell the
// pass-2 shifts pushed past its organ boundary is snapped back onto it, so
// containment holds whenever a step completes. Residual overlap introduced by
// the snap resolves over the following frames.
func (s *State) clampContainment() {
	query := s.Filter.Query()
	for query.Next() {
		pos, vel, body, pair := query.Get()
		s.confine(pos, vel, body, s.Organs.At(int(pair.Chain)), false)
	}
}
