package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame.
const (
	PhaseBackground  = "background"
	PhaseTick        = "tick"
	PhaseConnections = "connections"
	PhaseDraw        = "draw"
)

// Phases lists every phase in frame order.
var Phases = []string{PhaseBackground, PhaseTick, PhaseConnections, PhaseDraw}

// PerfSample holds timing data for one frame.
type PerfSample struct {
	Frame  time.Duration
	Phases map[string]time.Duration
}

// PerfCollector times frames and their phases over a rolling window.
type PerfCollector struct {
	window  []PerfSample
	next    int
	filled  int
	current map[string]time.Duration

	frameStart time.Time
	phaseStart time.Time
	phase      string

	// Wall-clock time between Present calls in graphics mode
	lastPresent time.Time
	present     time.Duration
}

// NewPerfCollector creates a collector averaging over size frames.
func NewPerfCollector(size int) *PerfCollector {
	if size < 1 {
		size = 60
	}
	return &PerfCollector{
		window:  make([]PerfSample, size),
		current: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.current = make(map[string]time.Duration, len(Phases))
	p.phase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
		p.phase = ""
	}
}

// EndFrame records the frame into the window.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	p.closePhase(now)
	p.window[p.next] = PerfSample{Frame: now.Sub(p.frameStart), Phases: p.current}
	p.next = (p.next + 1) % len(p.window)
	p.filled = min(p.filled+1, len(p.window))
}

// RecordPresent marks a frame being shown on screen.
func (p *PerfCollector) RecordPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.present = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// Reset drops all samples, e.g. when the scene changes.
func (p *PerfCollector) Reset() {
	clear(p.window)
	p.next, p.filled = 0, 0
	p.phase = ""
}

// Frames returns the number of frames in the window.
func (p *PerfCollector) Frames() int {
	return p.filled
}

// PerfStats aggregates the current window.
type PerfStats struct {
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration
	P95Frame time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average frame, 0-100

	FramesPerSecond float64 // CPU-bound rate from AvgFrame

	PresentInterval time.Duration
	FPS             float64 // displayed rate from PresentInterval
}

// Stats aggregates the samples in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:        make(map[string]time.Duration),
		PhasePct:        make(map[string]float64),
		PresentInterval: p.present,
	}
	if p.present > 0 {
		s.FPS = float64(time.Second) / float64(p.present)
	}
	if p.filled == 0 {
		return s
	}

	frames := make([]float64, p.filled)
	sums := make(map[string]time.Duration)
	for i, sample := range p.window[:p.filled] {
		frames[i] = float64(sample.Frame)
		for ph, d := range sample.Phases {
			sums[ph] += d
		}
	}
	slices.Sort(frames)

	s.AvgFrame = time.Duration(stat.Mean(frames, nil))
	s.MinFrame = time.Duration(frames[0])
	s.MaxFrame = time.Duration(frames[len(frames)-1])
	s.P95Frame = time.Duration(stat.Quantile(0.95, stat.Empirical, frames, nil))

	n := time.Duration(p.filled)
	for ph, sum := range sums {
		avg := sum / n
		s.PhaseAvg[ph] = avg
		if s.AvgFrame > 0 {
			s.PhasePct[ph] = float64(avg) / float64(s.AvgFrame) * 100
		}
	}
	if s.AvgFrame > 0 {
		s.FramesPerSecond = float64(time.Second) / float64(s.AvgFrame)
	}
	return s
}

// Log writes the stats as one "perf" line.
func (s PerfStats) Log(scene string) {
	attrs := []any{
		"scene", scene,
		"avg_frame_us", s.AvgFrame.Microseconds(),
		"p95_frame_us", s.P95Frame.Microseconds(),
		"max_frame_us", s.MaxFrame.Microseconds(),
		"frames_per_sec", int(s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, ph := range Phases {
		if pct, ok := s.PhasePct[ph]; ok && pct > 0.1 {
			attrs = append(attrs, ph+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("p95_frame_us", s.P95Frame.Microseconds()),
		slog.Float64("frames_per_sec", s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, ph := range Phases {
		if pct, ok := s.PhasePct[ph]; ok {
			attrs = append(attrs, slog.Float64(ph+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Frame          int64   `csv:"frame"`
	Scene          string  `csv:"scene"`
	AvgFrameUS     int64   `csv:"avg_frame_us"`
	MinFrameUS     int64   `csv:"min_frame_us"`
	MaxFrameUS     int64   `csv:"max_frame_us"`
	P95FrameUS     int64   `csv:"p95_frame_us"`
	FramesPerSec   float64 `csv:"frames_per_sec"`
	FPS            float64 `csv:"fps"`
	BackgroundPct  float64 `csv:"background_pct"`
	TickPct        float64 `csv:"tick_pct"`
	ConnectionsPct float64 `csv:"connections_pct"`
	DrawPct        float64 `csv:"draw_pct"`
}

// ToCSV flattens the stats for export.
func (s PerfStats) ToCSV(frame int64, scene string) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:          frame,
		Scene:          scene,
		AvgFrameUS:     s.AvgFrame.Microseconds(),
		MinFrameUS:     s.MinFrame.Microseconds(),
		MaxFrameUS:     s.MaxFrame.Microseconds(),
		P95FrameUS:     s.P95Frame.Microseconds(),
		FramesPerSec:   s.FramesPerSecond,
		FPS:            s.FPS,
		BackgroundPct:  s.PhasePct[PhaseBackground],
		TickPct:        s.PhasePct[PhaseTick],
		ConnectionsPct: s.PhasePct[PhaseConnections],
		DrawPct:        s.PhasePct[PhaseDraw],
	}
}
