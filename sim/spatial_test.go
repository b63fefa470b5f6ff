package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
)

// testChains builds n placeholder chain seeds.
func testChains(n int) []ChainSeed {
	chains := make([]ChainSeed, n)
	names := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"}
	for i := range chains {
		chains[i] = ChainSeed{Key: names[i%len(names)], Name: names[i%len(names)]}
	}
	return chains
}

// newTestState builds a seeded state with the given params and chain count.
func newTestState(p Params, nChains int, seed int64) *State {
	rng := rand.New(rand.NewSource(seed))
	organs := SeedOrgans(testChains(nChains), p, rng)
	return NewState(p, organs, rng)
}

func TestGridNeighborsMatchBruteForce(t *testing.T) {
	p := DefaultParams()
	s := newTestState(p, 1, 42)
	rng := rand.New(rand.NewSource(7))

	type placed struct {
		e    ecs.Entity
		x, y float32
	}

	// Scatter entities, including some outside the world bounds
	var all []placed
	for i := 0; i < 300; i++ {
		x := rng.Float32()*p.WorldW*1.2 - p.WorldW*0.1
		y := rng.Float32()*p.WorldH*1.2 - p.WorldH*0.1
		e := s.SpawnPair("pair", 0, x, y, 6, 1000, 0)
		all = append(all, placed{e: e, x: x, y: y})
	}

	s.rebuildGrid()

	for _, a := range all {
		got := map[ecs.Entity]bool{}
		for _, n := range s.Grid.NeighborsInto(nil, a.e, a.x, a.y) {
			if n == a.e {
				t.Fatal("neighbor query returned the excluded entity")
			}
			got[n] = true
		}

		// Every entity within one cell width must be returned
		for _, b := range all {
			if b.e == a.e {
				continue
			}
			dx := float64(a.x - b.x)
			dy := float64(a.y - b.y)
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist <= float64(p.GridCellSize) && !got[b.e] {
				t.Fatalf("entity at distance %.1f (cell size %.0f) missing from neighbors", dist, p.GridCellSize)
			}
		}
	}
}

func TestGridClearReuse(t *testing.T) {
	g := NewGrid(500, 500, 100)
	s := newTestState(DefaultParams(), 1, 1)

	e := s.SpawnPair("a", 0, 50, 50, 6, 0, 0)
	other := s.SpawnPair("b", 0, 60, 60, 6, 0, 0)
	g.Insert(e, 50, 50)
	g.Insert(other, 60, 60)

	if n := g.NeighborsInto(nil, e, 50, 50); len(n) != 1 {
		t.Fatalf("expected 1 neighbor, got %d", len(n))
	}

	g.Clear()
	if n := g.NeighborsInto(nil, e, 50, 50); len(n) != 0 {
		t.Fatalf("expected empty grid after Clear, got %d neighbors", len(n))
	}
}

func TestGridClampsOutOfBounds(t *testing.T) {
	g := NewGrid(500, 500, 100)
	s := newTestState(DefaultParams(), 1, 1)

	// Two nearby entities far outside the world must still find each other
	a := s.SpawnPair("a", 0, -900, -900, 6, 0, 0)
	b := s.SpawnPair("b", 0, -920, -910, 6, 0, 0)
	g.Insert(a, -900, -900)
	g.Insert(b, -920, -910)

	if n := g.NeighborsInto(nil, a, -900, -900); len(n) != 1 || n[0] != b {
		t.Fatalf("out-of-bounds neighbors not found: %v", n)
	}
}
