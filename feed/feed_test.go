package feed

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/petri/config"
	"github.com/pthm-cable/petri/sim"
)

func newTestApplier(t *testing.T, nChains int, seed int64) (*sim.State, *Applier) {
	t.Helper()

	chains := make([]sim.ChainSeed, nChains)
	for i := range chains {
		chains[i] = sim.ChainSeed{Key: string(rune('a' + i)), Name: string(rune('A' + i))}
	}

	p := sim.DefaultParams()
	rng := rand.New(rand.NewSource(seed))
	organs := sim.SeedOrgans(chains, p, rng)
	state := sim.NewState(p, organs, rng)
	return state, NewApplier(state, rng)
}

func TestApplyCreateSpawnsInsideOrgan(t *testing.T) {
	s, a := newTestApplier(t, 2, 42)

	c := a.Apply([]Event{
		{Type: EventCreate, Key: "a:1", Chain: "a", LiquidityUSD: 50_000, VolumeUSD: 10_000},
		{Type: EventCreate, Key: "b:1", Chain: "b", LiquidityUSD: 50_000, VolumeUSD: 10_000},
	})

	if c.Created != 2 {
		t.Fatalf("created = %d, want 2", c.Created)
	}
	if s.PairCount() != 2 {
		t.Fatalf("pair count = %d, want 2", s.PairCount())
	}

	query := s.Filter.Query()
	for query.Next() {
		pos, _, body, pair := query.Get()
		o := s.Organs.At(int(pair.Chain))
		limit := o.ContainmentRadius(body.Radius, &s.Params)
		dx := float64(pos.X - o.X)
		dy := float64(pos.Y - o.Y)
		if dist := math.Sqrt(dx*dx + dy*dy); dist > float64(limit)+0.001 {
			t.Errorf("pair %s spawned outside its organ: dist %.2f, limit %.2f", pair.Key, dist, limit)
		}
		if body.Radius != s.Params.StartRadius {
			t.Errorf("pair %s spawned at radius %v, want start radius %v", pair.Key, body.Radius, s.Params.StartRadius)
		}
	}
}

func TestApplyTargetRadiusFromEconomics(t *testing.T) {
	s, a := newTestApplier(t, 1, 42)

	// Mid-range liquidity, no volume: pure liquidity mapping
	a.Apply([]Event{{Type: EventCreate, Key: "a:1", Chain: "a", LiquidityUSD: math.Pow(10, 4.5)}})

	e, ok := a.Entity("a:1")
	if !ok {
		t.Fatal("created pair not indexed")
	}
	body := s.BodyMap.Get(e)

	want := sim.LiquidityToRadius(math.Pow(10, 4.5), s.Params.Radius)
	if math.Abs(float64(body.TargetRadius-want)) > 0.001 {
		t.Errorf("target radius = %v, want %v", body.TargetRadius, want)
	}

	// A modest volume multiplier scales the target below the cap
	a.Apply([]Event{{Type: EventUpdate, Key: "a:1", LiquidityUSD: math.Pow(10, 4.5), VolumeUSD: math.Pow(10, 3.6)}})
	mult := sim.VolumeMultiplier(math.Pow(10, 3.6))
	if math.Abs(float64(body.TargetRadius-want*mult)) > 0.001 {
		t.Errorf("target radius after volume update = %v, want %v", body.TargetRadius, want*mult)
	}
}

func TestTargetRadiusClampedToMax(t *testing.T) {
	s, a := newTestApplier(t, 1, 42)
	max := s.Params.Radius.Max

	// Mid liquidity at full volume would be 15 * 2 = 30 unclamped
	if got := a.TargetRadius(math.Pow(10, 4.5), 1e7); got != max {
		t.Errorf("target radius = %v, want clamp at %v", got, max)
	}
	// Top of both ranges stays at the cap, never beyond
	if got := a.TargetRadius(1e9, 1e9); got != max {
		t.Errorf("extreme economics target = %v, want %v", got, max)
	}

	a.Apply([]Event{{Type: EventCreate, Key: "a:1", Chain: "a", LiquidityUSD: 1e9, VolumeUSD: 1e9}})
	e, ok := a.Entity("a:1")
	if !ok {
		t.Fatal("created pair not indexed")
	}
	if body := s.BodyMap.Get(e); body.TargetRadius != max {
		t.Errorf("spawned target radius = %v, want %v", body.TargetRadius, max)
	}
}

func TestApplyUnknownChainDropped(t *testing.T) {
	s, a := newTestApplier(t, 1, 42)

	c := a.Apply([]Event{{Type: EventCreate, Key: "x:1", Chain: "nope", LiquidityUSD: 1000}})

	if c.Dropped != 1 || c.Created != 0 {
		t.Errorf("counters = %+v, want 1 dropped, 0 created", c)
	}
	if s.PairCount() != 0 {
		t.Errorf("pair count = %d after dropped event", s.PairCount())
	}
}

func TestApplyUpdateUnknownKeyDropped(t *testing.T) {
	_, a := newTestApplier(t, 1, 42)

	c := a.Apply([]Event{
		{Type: EventUpdate, Key: "ghost", LiquidityUSD: 1000},
		{Type: EventRemove, Key: "ghost"},
	})

	if c.Dropped != 2 {
		t.Errorf("dropped = %d, want 2", c.Dropped)
	}
}

func TestApplyRemove(t *testing.T) {
	s, a := newTestApplier(t, 1, 42)

	a.Apply([]Event{{Type: EventCreate, Key: "a:1", Chain: "a", LiquidityUSD: 1000}})
	c := a.Apply([]Event{{Type: EventRemove, Key: "a:1"}})

	if c.Removed != 1 {
		t.Errorf("removed = %d, want 1", c.Removed)
	}
	if s.PairCount() != 0 {
		t.Errorf("pair count = %d after remove", s.PairCount())
	}
	if _, ok := a.Entity("a:1"); ok {
		t.Error("removed key still indexed")
	}
}

func TestApplyEvictsOldestAtCap(t *testing.T) {
	s, a := newTestApplier(t, 1, 42)
	s.Params.MaxPerOrgan = 3

	a.Apply([]Event{
		{Type: EventCreate, Key: "a:1", Chain: "a", LiquidityUSD: 1000},
		{Type: EventCreate, Key: "a:2", Chain: "a", LiquidityUSD: 1000},
		{Type: EventCreate, Key: "a:3", Chain: "a", LiquidityUSD: 1000},
	})
	s.Step(1.0 / 60.0) // advance the tick so the next create is strictly newer

	c := a.Apply([]Event{{Type: EventCreate, Key: "a:4", Chain: "a", LiquidityUSD: 1000}})

	if c.Evicted != 1 || c.Created != 1 {
		t.Fatalf("counters = %+v, want 1 evicted, 1 created", c)
	}
	if s.PairCount() != 3 {
		t.Errorf("pair count = %d, want cap of 3", s.PairCount())
	}
	// The first key of the batch is the oldest only by insertion order within
	// the same tick; any of the first batch is a valid eviction, the new key
	// must survive.
	if _, ok := a.Entity("a:4"); !ok {
		t.Error("newly created pair was evicted instead of an old one")
	}
}

func TestApplyDuplicateCreateIsUpdate(t *testing.T) {
	s, a := newTestApplier(t, 1, 42)

	a.Apply([]Event{{Type: EventCreate, Key: "a:1", Chain: "a", LiquidityUSD: 1000}})
	c := a.Apply([]Event{{Type: EventCreate, Key: "a:1", Chain: "a", LiquidityUSD: 9e6}})

	if c.Created != 0 || c.Updated != 1 {
		t.Errorf("counters = %+v, want duplicate create folded into update", c)
	}
	if s.PairCount() != 1 {
		t.Errorf("pair count = %d, want 1", s.PairCount())
	}
}

func TestSyntheticRates(t *testing.T) {
	cfg := config.FeedConfig{
		PollMax:            256,
		CreatesPerSec:      6,
		UpdatesPerSec:      40,
		RemovesPerSec:      1.5,
		LiquidityMeanLog10: 4.0,
		LiquiditySigma:     1.0,
		VolumeMeanLog10:    3.5,
		VolumeSigma:        1.0,
	}
	src := NewSynthetic([]string{"a", "b"}, cfg, rand.New(rand.NewSource(7)))

	var creates, updates, removes int
	for i := 0; i < 600; i++ { // 10 simulated seconds at 60 Hz
		events, err := src.Poll(1.0/60.0, cfg.PollMax)
		if err != nil {
			t.Fatalf("poll: %v", err)
		}
		for _, ev := range events {
			switch ev.Type {
			case EventCreate:
				creates++
				if ev.LiquidityUSD <= 0 || ev.VolumeUSD <= 0 {
					t.Fatalf("create with non-positive economics: %+v", ev)
				}
			case EventUpdate:
				updates++
			case EventRemove:
				removes++
			}
		}
	}

	// Rates are exact up to the final fractional carry; updates attempted
	// before the first create exists are dropped, so allow a short ramp.
	if creates < 59 || creates > 61 {
		t.Errorf("creates over 10s = %d, want ~60", creates)
	}
	if updates < 385 || updates > 401 {
		t.Errorf("updates over 10s = %d, want ~400", updates)
	}
	if removes < 14 || removes > 16 {
		t.Errorf("removes over 10s = %d, want ~15", removes)
	}
	if removes >= creates {
		t.Errorf("removes %d should trail creates %d", removes, creates)
	}
}

func TestSyntheticNegativeDeltaEmitsNothing(t *testing.T) {
	cfg := config.FeedConfig{CreatesPerSec: 100}
	src := NewSynthetic([]string{"a"}, cfg, rand.New(rand.NewSource(1)))

	events, err := src.Poll(-1, 256)
	if err != nil || len(events) != 0 {
		t.Errorf("negative delta produced %d events, err %v", len(events), err)
	}
}
