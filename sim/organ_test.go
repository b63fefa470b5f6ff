package sim

import (
	"math"
	"math/rand"
	"testing"
)

func TestSeedOrgansNoOverlap(t *testing.T) {
	p := DefaultParams()

	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		set := SeedOrgans(testChains(6), p, rng)

		if set.Len() != 6 {
			t.Fatalf("expected 6 organs, got %d", set.Len())
		}

		first := set.At(0)
		if first.X != p.WorldW/2 || first.Y != p.WorldH/2 {
			t.Errorf("first organ not at world center: (%v, %v)", first.X, first.Y)
		}

		organs := set.All()
		for i := 0; i < len(organs); i++ {
			for j := i + 1; j < len(organs); j++ {
				a, b := organs[i], organs[j]
				dx := float64(a.X - b.X)
				dy := float64(a.Y - b.Y)
				dist := math.Sqrt(dx*dx + dy*dy)
				minDist := float64(a.Radius+b.Radius) * 0.9
				if dist < minDist {
					t.Errorf("seed %d: organs %s/%s overlap heavily: dist %.1f < %.1f",
						seed, a.Key, b.Key, dist, minDist)
				}
			}
		}
	}
}

func TestOrganGrowthLaw(t *testing.T) {
	p := DefaultParams()
	s := newTestState(p, 2, 42)

	// Uneven membership across two organs
	for i := 0; i < 9; i++ {
		o := s.Organs.At(0)
		s.SpawnPair("a", 0, o.X, o.Y, 6, 1000, 0)
	}
	for i := 0; i < 4; i++ {
		o := s.Organs.At(1)
		s.SpawnPair("b", 1, o.X, o.Y, 6, 1000, 0)
	}

	s.Step(1.0 / 60.0)

	wantA := p.OrganBaseRadius + p.OrganGrowthPerCell*3 // sqrt(9)
	wantB := p.OrganBaseRadius + p.OrganGrowthPerCell*2 // sqrt(4)

	if got := s.Organs.At(0).Radius; math.Abs(float64(got-wantA)) > 0.001 {
		t.Errorf("organ 0 radius = %v, want %v", got, wantA)
	}
	if got := s.Organs.At(1).Radius; math.Abs(float64(got-wantB)) > 0.001 {
		t.Errorf("organ 1 radius = %v, want %v", got, wantB)
	}

	if c := s.Organs.At(0).CellCount; c != 9 {
		t.Errorf("organ 0 count = %d, want 9", c)
	}
	if c := s.Organs.At(1).CellCount; c != 4 {
		t.Errorf("organ 1 count = %d, want 4", c)
	}
}

func TestOrganRecountTracksExternalRemoval(t *testing.T) {
	p := DefaultParams()
	s := newTestState(p, 1, 42)
	o := s.Organs.At(0)

	a := s.SpawnPair("a", 0, o.X, o.Y, 6, 1000, 0)
	s.SpawnPair("b", 0, o.X+10, o.Y, 6, 1000, 0)

	s.Step(1.0 / 60.0)
	if o.CellCount != 2 {
		t.Fatalf("count = %d, want 2", o.CellCount)
	}

	// Out-of-band removal between steps must be observed on the next recount
	s.RemovePair(a)
	s.Step(1.0 / 60.0)
	if o.CellCount != 1 {
		t.Errorf("count after removal = %d, want 1", o.CellCount)
	}
}

func TestOrganGravityCapped(t *testing.T) {
	p := DefaultParams()
	s := newTestState(p, 2, 42)

	// Throw one organ far away; a single step may pull it back at most MaxPull
	far := s.Organs.At(1)
	far.X = s.Organs.At(0).X + 50000
	far.Y = s.Organs.At(0).Y
	beforeX := far.X

	s.stepOrgans(1.0 / 60.0)

	moved := float64(beforeX - far.X)
	if moved <= 0 {
		t.Fatal("distant organ was not pulled toward the centroid")
	}
	if moved > float64(p.OrganMaxPull)+0.001 {
		t.Errorf("centroid pull %.3f exceeds cap %v", moved, p.OrganMaxPull)
	}
}

func TestOrganSeparationSymmetric(t *testing.T) {
	p := DefaultParams()
	s := newTestState(p, 2, 42)

	a := s.Organs.At(0)
	b := s.Organs.At(1)
	a.X, a.Y = 1000, 800
	b.X, b.Y = 1020, 800
	a.Radius, b.Radius = p.OrganBaseRadius, p.OrganBaseRadius

	before := organDistance(a, b)
	s.separateOrgans()
	after := organDistance(a, b)

	if after <= before {
		t.Fatalf("overlapping organs did not separate: %.1f -> %.1f", before, after)
	}

	// Symmetric push: both centers moved by the same amount
	movedA := math.Abs(float64(a.X - 1000))
	movedB := math.Abs(float64(b.X - 1020))
	if math.Abs(movedA-movedB) > 0.01 {
		t.Errorf("asymmetric separation: a moved %.3f, b moved %.3f", movedA, movedB)
	}
}

func organDistance(a, b *Organ) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
