// Package telemetry aggregates per-window statistics about the simulation
// and the event feed, for structured logging and CSV output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	PairCount  int `csv:"pairs"`
	OrganCount int `csv:"organs"`

	// Feed events during window
	Creates int `csv:"creates"`
	Updates int `csv:"updates"`
	Removes int `csv:"removes"`
	Evicted int `csv:"evicted"`
	Dropped int `csv:"dropped"`

	// Distinct pair keys observed since start (cardinality estimate)
	DistinctPairs uint64 `csv:"distinct_pairs"`

	// Cell radius distribution (sampled at window end)
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
	RadiusP10  float64 `csv:"radius_p10"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`

	// Step cost during window, milliseconds
	StepMsMean float64 `csv:"step_ms_mean"`
	StepMsP95  float64 `csv:"step_ms_p95"`
	StepMsMax  float64 `csv:"step_ms_max"`
}

// ComputeDistribution calculates mean, std, and percentiles of a sample.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if n > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("pairs", s.PairCount),
		slog.Int("organs", s.OrganCount),
		slog.Int("creates", s.Creates),
		slog.Int("updates", s.Updates),
		slog.Int("removes", s.Removes),
		slog.Int("evicted", s.Evicted),
		slog.Int("dropped", s.Dropped),
		slog.Uint64("distinct_pairs", s.DistinctPairs),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_std", s.RadiusStd),
		slog.Float64("radius_p10", s.RadiusP10),
		slog.Float64("radius_p50", s.RadiusP50),
		slog.Float64("radius_p90", s.RadiusP90),
		slog.Float64("step_ms_mean", s.StepMsMean),
		slog.Float64("step_ms_p95", s.StepMsP95),
		slog.Float64("step_ms_max", s.StepMsMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
