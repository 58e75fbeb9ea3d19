package game

import (
	"log/slog"
)

// flushInterval returns the ticks between telemetry flushes, 0 for never.
func (g *Game) flushInterval() int64 {
	if n := g.cfg.Telemetry.LogInterval; n > 0 {
		return int64(n)
	}
	if g.outputManager != nil {
		return int64(max(1, g.cfg.Telemetry.PerfWindow))
	}
	return 0
}

// flushTelemetry logs and records perf and field stats every flush interval.
func (g *Game) flushTelemetry() {
	interval := g.flushInterval()
	if interval == 0 || g.tick%interval != 0 || !g.mounted {
		return
	}

	scene := g.scenes[g.active]
	perfStats := g.perf.Stats()
	perfStats.Log(scene.Name())

	if err := g.outputManager.WritePerf(perfStats, g.tick, scene.Name()); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	insp, ok := scene.(Inspector)
	if !ok {
		return
	}
	fieldStats := insp.FieldStats(g.tick)
	fieldStats.Log()
	if err := g.outputManager.WriteField(fieldStats); err != nil {
		slog.Error("failed to write field stats", "error", err)
	}
}
