package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/resumefx/systems"
)

func particle(vx, vy float32, age, maxAge int32) systems.Particle {
	return systems.Particle{Vel: systems.Vec2{X: vx, Y: vy}, Age: age, MaxAge: maxAge}
}

func TestComputeFieldStats(t *testing.T) {
	ps := make([]systems.Particle, 10)
	for i := range ps {
		// Speeds 1..10 via a 3-4-5 triangle scaled by (i+1)/5
		k := float32(i+1) / 5
		ps[i] = particle(3*k, 4*k, int32(i+1)*10, 100)
	}
	ps[0].Trail.Push(systems.TrailPoint{X: 1, Y: 1, Opacity: 1})
	ps[0].Trail.Push(systems.TrailPoint{X: 2, Y: 2, Opacity: 1})

	fs := ComputeFieldStats(42, ps, 17)

	if fs.Frame != 42 || fs.Particles != 10 || fs.Connections != 17 {
		t.Errorf("header fields = %+v", fs)
	}
	tests := []struct {
		name      string
		got, want float64
	}{
		{"mean speed", fs.MeanSpeed, 5.5},
		{"max speed", fs.MaxSpeed, 10},
		{"mean age", fs.MeanAge, 0.55},
		{"age p50", fs.AgeP50, 0.5},
		{"age p90", fs.AgeP90, 0.9},
		{"mean trail", fs.MeanTrail, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-5 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
	if fs.SpeedStd <= 0 {
		t.Errorf("speed std = %v, want positive", fs.SpeedStd)
	}
}

func TestComputeFieldStatsEmpty(t *testing.T) {
	fs := ComputeFieldStats(1, nil, 0)
	if fs.MeanSpeed != 0 || fs.AgeP90 != 0 || fs.Particles != 0 {
		t.Errorf("empty stats = %+v", fs)
	}
}

func TestComputeFieldStatsSingle(t *testing.T) {
	fs := ComputeFieldStats(1, []systems.Particle{particle(0.3, 0.4, 5, 0)}, 0)
	if fs.SpeedStd != 0 {
		t.Errorf("single-particle std = %v, want 0", fs.SpeedStd)
	}
	if fs.MeanAge != 0 {
		t.Errorf("zero max age should give age ratio 0, got %v", fs.MeanAge)
	}
}
