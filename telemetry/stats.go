package telemetry

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/resumefx/systems"
)

// FieldStats summarizes a particle field at one frame.
type FieldStats struct {
	Frame       int64   `csv:"frame"`
	Particles   int     `csv:"particles"`
	Connections int     `csv:"connections"`
	MeanSpeed   float64 `csv:"mean_speed"`
	MaxSpeed    float64 `csv:"max_speed"`
	SpeedStd    float64 `csv:"speed_std"`
	MeanAge     float64 `csv:"mean_age"` // age / max age
	AgeP50      float64 `csv:"age_p50"`
	AgeP90      float64 `csv:"age_p90"`
	MeanTrail   float64 `csv:"mean_trail"`
}

// ComputeFieldStats summarizes particles. connections is the edge count of
// the last rendered frame.
func ComputeFieldStats(frame int64, particles []systems.Particle, connections int) FieldStats {
	fs := FieldStats{Frame: frame, Particles: len(particles), Connections: connections}
	if len(particles) == 0 {
		return fs
	}

	speeds := make([]float64, len(particles))
	ages := make([]float64, len(particles))
	trails := make([]float64, len(particles))
	for i := range particles {
		p := &particles[i]
		speeds[i] = math.Hypot(float64(p.Vel.X), float64(p.Vel.Y))
		if p.MaxAge > 0 {
			ages[i] = float64(p.Age) / float64(p.MaxAge)
		}
		trails[i] = float64(p.Trail.Len())
	}

	fs.MeanSpeed, fs.SpeedStd = stat.MeanStdDev(speeds, nil)
	fs.MaxSpeed = slices.Max(speeds)
	fs.MeanTrail = stat.Mean(trails, nil)

	slices.Sort(ages)
	fs.MeanAge = stat.Mean(ages, nil)
	fs.AgeP50 = stat.Quantile(0.5, stat.Empirical, ages, nil)
	fs.AgeP90 = stat.Quantile(0.9, stat.Empirical, ages, nil)
	if math.IsNaN(fs.SpeedStd) {
		fs.SpeedStd = 0
	}
	return fs
}

// LogValue implements slog.LogValuer.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", s.Frame),
		slog.Int("particles", s.Particles),
		slog.Int("connections", s.Connections),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Float64("mean_age", s.MeanAge),
		slog.Float64("age_p90", s.AgeP90),
		slog.Float64("mean_trail", s.MeanTrail),
	)
}

// Log writes the stats as one "field" line.
func (s FieldStats) Log() {
	slog.Info("field", "stats", s)
}
