package feed

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/petri/sim"
)

// Counters tallies how a batch of events was applied.
type Counters struct {
	Created int
	Updated int
	Removed int
	Evicted int
	Dropped int
}

// Add accumulates another batch's counters.
func (c *Counters) Add(o Counters) {
	c.Created += o.Created
	c.Updated += o.Updated
	c.Removed += o.Removed
	c.Evicted += o.Evicted
	c.Dropped += o.Dropped
}

// Applier mutates the simulation state from market events. It must only run
// between simulation steps; the step never observes a partially applied batch.
type Applier struct {
	state *sim.State
	rng   *rand.Rand

	chainIndex map[string]uint8
	entities   map[string]ecs.Entity
	perChain   []int
}

// NewApplier creates an applier bound to a simulation state.
func NewApplier(state *sim.State, rng *rand.Rand) *Applier {
	a := &Applier{
		state:      state,
		rng:        rng,
		chainIndex: make(map[string]uint8, state.Organs.Len()),
		entities:   make(map[string]ecs.Entity),
		perChain:   make([]int, state.Organs.Len()),
	}
	for i, o := range state.Organs.All() {
		a.chainIndex[o.Key] = uint8(i)
	}
	return a
}

// Apply applies a batch of events in order and returns what happened.
func (a *Applier) Apply(events []Event) Counters {
	var c Counters
	for _, ev := range events {
		switch ev.Type {
		case EventCreate:
			a.applyCreate(ev, &c)
		case EventUpdate:
			a.applyUpdate(ev, &c)
		case EventRemove:
			a.applyRemove(ev, &c)
		default:
			c.Dropped++
		}
	}
	return c
}

// Entity looks up the live entity for a pair key.
func (a *Applier) Entity(key string) (ecs.Entity, bool) {
	e, ok := a.entities[key]
	return e, ok
}

// ChainCount returns how many live pairs an organ currently owns.
func (a *Applier) ChainCount(chain uint8) int {
	if int(chain) >= len(a.perChain) {
		return 0
	}
	return a.perChain[chain]
}

// TargetRadius computes the eased-toward render radius for a pair's current
// economics: the liquidity mapping scaled by the volume multiplier, clamped
// to the configured maximum. The clamp also preserves the spatial grid's
// bucket-size guarantee, which is sized for Radius.Max.
func (a *Applier) TargetRadius(liquidityUSD, volumeUSD float64) float32 {
	p := &a.state.Params
	r := sim.LiquidityToRadius(liquidityUSD, p.Radius) * sim.VolumeMultiplier(volumeUSD)
	if r > p.Radius.Max {
		return p.Radius.Max
	}
	return r
}

func (a *Applier) applyCreate(ev Event, c *Counters) {
	if _, exists := a.entities[ev.Key]; exists {
		// Re-announced pair: fold into an update
		a.applyUpdate(ev, c)
		return
	}

	chain, ok := a.chainIndex[ev.Chain]
	if !ok {
		c.Dropped++
		return
	}

	if a.perChain[chain] >= a.state.Params.MaxPerOrgan {
		a.evictOldest(chain, c)
	}

	organ := a.state.Organs.At(int(chain))
	x, y := a.spawnPoint(organ)
	e := a.state.SpawnPair(ev.Key, chain, x, y, a.TargetRadius(ev.LiquidityUSD, ev.VolumeUSD), ev.LiquidityUSD, ev.VolumeUSD)

	a.entities[ev.Key] = e
	a.perChain[chain]++
	c.Created++
}

func (a *Applier) applyUpdate(ev Event, c *Counters) {
	e, ok := a.entities[ev.Key]
	if !ok {
		c.Dropped++
		return
	}

	pair := a.state.PairMap.Get(e)
	body := a.state.BodyMap.Get(e)
	if pair == nil || body == nil {
		c.Dropped++
		return
	}

	pair.LiquidityUSD = ev.LiquidityUSD
	pair.VolumeUSD = ev.VolumeUSD
	pair.UpdatedTick = a.state.Tick
	body.TargetRadius = a.TargetRadius(ev.LiquidityUSD, ev.VolumeUSD)
	c.Updated++
}

func (a *Applier) applyRemove(ev Event, c *Counters) {
	e, ok := a.entities[ev.Key]
	if !ok {
		c.Dropped++
		return
	}

	if pair := a.state.PairMap.Get(e); pair != nil && int(pair.Chain) < len(a.perChain) {
		a.perChain[pair.Chain]--
	}
	a.state.RemovePair(e)
	delete(a.entities, ev.Key)
	c.Removed++
}

// evictOldest removes the longest-lived pair of an over-full organ. The scan
// completes before any removal; the entity set must not change mid-query.
func (a *Applier) evictOldest(chain uint8, c *Counters) {
	var (
		oldest     ecs.Entity
		oldestKey  string
		oldestTick int32 = math.MaxInt32
		found      bool
	)

	query := a.state.Filter.Query()
	for query.Next() {
		_, _, _, pair := query.Get()
		if pair.Chain != chain {
			continue
		}
		if pair.CreatedTick < oldestTick {
			oldest = query.Entity()
			oldestKey = pair.Key
			oldestTick = pair.CreatedTick
			found = true
		}
	}

	if !found {
		return
	}

	a.state.RemovePair(oldest)
	delete(a.entities, oldestKey)
	a.perChain[chain]--
	c.Evicted++
}

// spawnPoint picks a uniform random point inside the organ's containment
// boundary for a starting-size cell.
func (a *Applier) spawnPoint(organ *sim.Organ) (x, y float32) {
	p := &a.state.Params
	limit := organ.ContainmentRadius(p.StartRadius, p)

	r := float32(math.Sqrt(a.rng.Float64())) * limit
	ang := a.rng.Float64() * 2 * math.Pi
	return organ.X + r*float32(math.Cos(ang)), organ.Y + r*float32(math.Sin(ang))
}
