package sim

// Step advances the simulation by one frame. dt is the elapsed time in
// seconds; it is capped internally so stalls or tab-backgrounding cannot
// destabilize integration. The sequencing is fixed:
//
//  1. organ recount, growth law, gravity, separation
//  2. spatial index rebuild
//  3. per-cell containment, repulsion pass 1, drift, damping, integration,
//     re-clamp, radius easing, wobble advance
//  4. spatial index rebuild
//  5. repulsion pass 2 (position-only cleanup)
//  6. containment clamp (position-only), so the invariant holds at step end
//
// Step runs to completion synchronously; collaborators mutate the entity set
// only between calls.
func (s *State) Step(dt float32) {
	if dt < 0 {
		dt = 0
	}
	if dt > s.Params.MaxDT {
		dt = s.Params.MaxDT
	}

	s.stepOrgans(dt)

	s.rebuildGrid()
	s.stepCells(dt)

	s.rebuildGrid()
	s.cleanupOverlaps()
	s.clampContainment()

	s.Tick++
}
