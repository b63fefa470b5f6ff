package telemetry

import (
	"sort"
	"time"

	"github.com/axiomhq/hyperloglog"
	"gonum.org/v1/gonum/stat"
)

// Collector accumulates feed and timing events within time windows and
// produces WindowStats. It is not safe for concurrent use; the game loop
// owns it.
type Collector struct {
	windowDurationSec float64

	windowStartTick int32
	windowStartSec  float64
	simTimeSec      float64

	creates int
	updates int
	removes int
	evicted int
	dropped int

	stepMs []float64

	// Distinct pair keys since process start, never reset
	distinct *hyperloglog.Sketch
}

// NewCollector creates a stats collector flushing every windowDurationSec
// simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{
		windowDurationSec: windowDurationSec,
		distinct:          hyperloglog.New14(),
	}
}

// Advance accumulates elapsed simulation time.
func (c *Collector) Advance(dt float64) {
	if dt > 0 {
		c.simTimeSec += dt
	}
}

// RecordEvents tallies one applied feed batch.
func (c *Collector) RecordEvents(creates, updates, removes, evicted, dropped int) {
	c.creates += creates
	c.updates += updates
	c.removes += removes
	c.evicted += evicted
	c.dropped += dropped
}

// RecordPairKey feeds a pair key into the distinct-cardinality estimate.
func (c *Collector) RecordPairKey(key string) {
	c.distinct.Insert([]byte(key))
}

// RecordStepDuration records the wall-clock cost of one simulation step.
func (c *Collector) RecordStepDuration(d time.Duration) {
	c.stepMs = append(c.stepMs, float64(d)/float64(time.Millisecond))
}

// ShouldFlush reports whether the current window has elapsed.
func (c *Collector) ShouldFlush() bool {
	return c.simTimeSec-c.windowStartSec >= c.windowDurationSec
}

// Flush produces a WindowStats and resets the window counters. The caller
// supplies the population snapshot: live pair radii sampled at window end.
func (c *Collector) Flush(currentTick int32, pairCount, organCount int, radii []float64) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      c.simTimeSec,

		PairCount:  pairCount,
		OrganCount: organCount,

		Creates: c.creates,
		Updates: c.updates,
		Removes: c.removes,
		Evicted: c.evicted,
		Dropped: c.dropped,

		DistinctPairs: c.distinct.Estimate(),
	}

	stats.RadiusMean, stats.RadiusStd, stats.RadiusP10, stats.RadiusP50, stats.RadiusP90 = ComputeDistribution(radii)

	if len(c.stepMs) > 0 {
		sorted := make([]float64, len(c.stepMs))
		copy(sorted, c.stepMs)
		sort.Float64s(sorted)

		stats.StepMsMean = stat.Mean(sorted, nil)
		stats.StepMsP95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
		stats.StepMsMax = sorted[len(sorted)-1]
	}

	c.windowStartTick = currentTick
	c.windowStartSec = c.simTimeSec
	c.creates, c.updates, c.removes, c.evicted, c.dropped = 0, 0, 0, 0, 0
	c.stepMs = c.stepMs[:0]

	return stats
}
