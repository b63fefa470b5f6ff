package sim

import "math"

// Organ is a per-chain cluster that visually and physically bounds its member
// cells. Organs are created once at startup and never destroyed; their
// positions drift under gravity and separation, and their radius is derived
// from the member count every step, never stored authoritatively.
type Organ struct {
	Key   string
	Name  string
	Color [3]uint8

	X, Y        float32
	Radius      float32
	WobblePhase float32
	WobbleSpeed float32

	// CellCount is recomputed from the live entity set each step.
	CellCount int
}

// OrganSet holds the fixed set of organs in insertion order. Physics iterates
// the ordered slice so organ-pair relaxation stays deterministic for a given
// noise source; the key index serves event ingestion lookups.
type OrganSet struct {
	organs []*Organ
	byKey  map[string]*Organ
}

// NewOrganSet creates an empty organ set.
func NewOrganSet() *OrganSet {
	return &OrganSet{byKey: make(map[string]*Organ)}
}

// Add appends an organ. Adding a duplicate key replaces the index entry but
// callers are expected to add each chain exactly once at startup.
func (os *OrganSet) Add(o *Organ) {
	os.organs = append(os.organs, o)
	os.byKey[o.Key] = o
}

// Get returns the organ for a chain key, or nil if unknown.
func (os *OrganSet) Get(key string) *Organ {
	return os.byKey[key]
}

// Index returns the slice position of a chain key, or -1 if unknown.
func (os *OrganSet) Index(key string) int {
	for i, o := range os.organs {
		if o.Key == key {
			return i
		}
	}
	return -1
}

// At returns the organ at slice position i.
func (os *OrganSet) At(i int) *Organ {
	return os.organs[i]
}

// All returns the organs in insertion order.
func (os *OrganSet) All() []*Organ {
	return os.organs
}

// Len returns the number of organs.
func (os *OrganSet) Len() int {
	return len(os.organs)
}

// ContainmentRadius returns the maximum allowed distance of a cell with the
// given radius from this organ's center, never negative.
func (o *Organ) ContainmentRadius(cellRadius float32, p *Params) float32 {
	limit := o.Radius*p.InnerShrink - cellRadius*p.OuterWobble
	if limit < 0 {
		limit = 0
	}
	return limit
}

// stepOrgans recounts membership, applies the growth law, advances wobble,
// and runs one relaxation pass of gravity and separation.
func (s *State) stepOrgans(dt float32) {
	s.recountMembers()

	p := &s.Params
	for _, o := range s.Organs.All() {
		o.Radius = p.OrganBaseRadius + p.OrganGrowthPerCell*float32(math.Sqrt(float64(o.CellCount)))
		o.WobblePhase += o.WobbleSpeed * dt
	}

	s.applyOrganGravity()
	s.separateOrgans()
}

// recountMembers tallies cells per organ by scanning the full live entity set.
// The cached counts are never trusted across steps: the ingestion collaborator
// may have added or removed entities out of band.
func (s *State) recountMembers() {
	organs := s.Organs.All()
	for _, o := range organs {
		o.CellCount = 0
	}

	query := s.Filter.Query()
	for query.Next() {
		_, _, _, pair := query.Get()
		if int(pair.Chain) < len(organs) {
			organs[pair.Chain].CellCount++
		}
	}
}

// applyOrganGravity pulls every organ toward the centroid of all organ
// centers. The pull grows with distance but is capped per step so freshly
// scattered organs cannot pick up unbounded velocity on the first frame.
func (s *State) applyOrganGravity() {
	organs := s.Organs.All()
	n := len(organs)
	if n == 0 {
		return
	}

	p := &s.Params
	var cx, cy float32
	for _, o := range organs {
		cx += o.X
		cy += o.Y
	}
	cx /= float32(n)
	cy /= float32(n)

	for _, o := range organs {
		dx := cx - o.X
		dy := cy - o.Y
		dist := float32(math.Sqrt(float64(dx*dx+dy*dy))) + p.Epsilon

		pull := dist * p.OrganGravity
		if pull > p.OrganMaxPull {
			pull = p.OrganMaxPull
		}
		o.X += dx / dist * pull
		o.Y += dy / dist * pull
	}
}

// separateOrgans pushes overlapping organ pairs apart symmetrically by half
// the overlap. A single relaxation pass per frame: persistent heavy overlap
// resolves gradually across frames rather than in one solve.
func (s *State) separateOrgans() {
	organs := s.Organs.All()
	p := &s.Params

	for i := 0; i < len(organs); i++ {
		for j := i + 1; j < len(organs); j++ {
			a, b := organs[i], organs[j]

			dx := b.X - a.X
			dy := b.Y - a.Y
			dist := float32(math.Sqrt(float64(dx*dx+dy*dy))) + p.Epsilon

			minDist := (a.Radius+b.Radius)*p.OrganWobbleFactor + p.OrganClearance
			if dist >= minDist {
				continue
			}

			nx := dx / dist
			ny := dy / dist
			if dist <= p.Epsilon*2 {
				nx, ny = s.randomAxis()
			}

			half := (minDist - dist) * 0.5
			a.X -= nx * half
			a.Y -= ny * half
			b.X += nx * half
			b.Y += ny * half
		}
	}
}
