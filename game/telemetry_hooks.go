package game

import "log/slog"

// flushTelemetry flushes the stats window when it has elapsed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}

	g.radiiScratch = g.radiiScratch[:0]
	query := g.state.Filter.Query()
	for query.Next() {
		_, _, body, _ := query.Get()
		g.radiiScratch = append(g.radiiScratch, float64(body.Radius))
	}

	stats := g.collector.Flush(g.tick, g.state.PairCount(), g.state.Organs.Len(), g.radiiScratch)
	g.lastStats = stats

	if g.opts.LogStats {
		stats.LogStats()
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
}
