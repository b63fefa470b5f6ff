package sim

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/petri/components"
)

// Noise is a source of uniform random values in [0, 1). The drift term in
// cell dynamics is the sole non-determinism in the system; injecting the
// source lets tests supply a seeded generator. *rand.Rand satisfies Noise.
type Noise interface {
	Float32() float32
}

// State owns the live simulation: the ECS world of pair cells, the organ set,
// and the spatial index. It is mutated in place by Step and read by the
// rendering and ingestion collaborators strictly between steps.
type State struct {
	Params Params

	World  *ecs.World
	Mapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Pair,
	]
	Filter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Pair,
	]

	// Individual component mappers for lookups
	PosMap  *ecs.Map1[components.Position]
	VelMap  *ecs.Map1[components.Velocity]
	BodyMap *ecs.Map1[components.Body]
	PairMap *ecs.Map1[components.Pair]

	Organs *OrganSet
	Grid   *Grid
	Noise  Noise

	Tick  int32
	alive int

	// Scratch buffer reused by neighbor queries
	scratch []ecs.Entity
}

// NewState creates a simulation state with an empty entity set.
func NewState(params Params, organs *OrganSet, noise Noise) *State {
	world := ecs.NewWorld()

	return &State{
		Params: params,
		World:  world,
		Mapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Pair,
		](world),
		Filter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Pair,
		](world),
		PosMap:  ecs.NewMap1[components.Position](world),
		VelMap:  ecs.NewMap1[components.Velocity](world),
		BodyMap: ecs.NewMap1[components.Body](world),
		PairMap: ecs.NewMap1[components.Pair](world),
		Organs:  organs,
		Grid:    NewGrid(params.WorldW, params.WorldH, params.GridCellSize),
		Noise:   noise,
	}
}

// SpawnPair creates a cell entity for a newly observed pair. The cell starts
// at the configured small radius and eases toward targetRadius.
func (s *State) SpawnPair(key string, chain uint8, x, y, targetRadius float32, liquidityUSD, volumeUSD float64) ecs.Entity {
	p := &s.Params

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	body := components.Body{
		Radius:       p.StartRadius,
		TargetRadius: targetRadius,
		WobblePhase:  s.Noise.Float32() * 2 * math.Pi,
		WobbleSpeed:  p.CellWobbleSpeedMin + s.Noise.Float32()*(p.CellWobbleSpeedMax-p.CellWobbleSpeedMin),
	}
	pair := components.Pair{
		Key:          key,
		Chain:        chain,
		LiquidityUSD: liquidityUSD,
		VolumeUSD:    volumeUSD,
		CreatedTick:  s.Tick,
		UpdatedTick:  s.Tick,
	}

	e := s.Mapper.NewEntity(&pos, &vel, &body, &pair)
	s.alive++
	return e
}

// RemovePair destroys a cell entity. Must not be called while a query over
// the entity set is being iterated.
func (s *State) RemovePair(e ecs.Entity) {
	s.Mapper.Remove(e)
	s.alive--
}

// PairCount returns the number of live cells.
func (s *State) PairCount() int {
	return s.alive
}

// rebuildGrid repopulates the spatial index from the current entity set.
func (s *State) rebuildGrid() {
	s.Grid.Clear()

	query := s.Filter.Query()
	for query.Next() {
		e := query.Entity()
		pos, _, _, _ := query.Get()
		s.Grid.Insert(e, pos.X, pos.Y)
	}
}

// randomAxis returns a unit vector at a noise-driven angle, used to break
// zero-distance degeneracies deterministically per noise source.
func (s *State) randomAxis() (nx, ny float32) {
	ang := float64(s.Noise.Float32()) * 2 * math.Pi
	return float32(math.Cos(ang)), float32(math.Sin(ang))
}
