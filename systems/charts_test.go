package systems

import (
	"math"
	"testing"
	"time"
)

func TestLineChartYMax(t *testing.T) {
	c := NewLineChart(ProfileActivity())
	if got := c.YMax(); got != 198 {
		t.Errorf("YMax = %v, want 198", got)
	}
	if got := NewLineChart(nil).YMax(); got != 0 {
		t.Errorf("empty YMax = %v, want 0", got)
	}
}

func TestLineChartProject(t *testing.T) {
	c := NewLineChart(ProfileActivity())
	r := Rect{X: 40, Y: 20, W: 530, H: 240}
	series := c.Project(r)
	if len(series) != 2 {
		t.Fatalf("series = %d, want 2", len(series))
	}

	views := series[0].Points
	// First and last months sit on the rect edges
	if views[0].X != 40 || math.Abs(float64(views[5].X-570)) > 1e-3 {
		t.Errorf("x range = [%v, %v], want [40, 570]", views[0].X, views[5].X)
	}
	// Max value touches the top
	if math.Abs(float64(views[5].Y-20)) > 1e-3 {
		t.Errorf("max y = %v, want 20", views[5].Y)
	}
	// February is shorter than January, so the x gaps differ
	if d1, d2 := views[1].X-views[0].X, views[2].X-views[1].X; d1 <= d2 {
		t.Errorf("January gap %v should exceed February gap %v", d1, d2)
	}

	apps := series[1].Points
	want := 260 - float32(12.0/198)*240
	if math.Abs(float64(apps[0].Y-want)) > 1e-3 {
		t.Errorf("applications[0].Y = %v, want %v", apps[0].Y, want)
	}
}

func TestRevealPolyline(t *testing.T) {
	pts := []Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}

	tests := []struct {
		frac    float64
		wantLen int
		wantEnd Vec2
	}{
		{0, 0, Vec2{}},
		{0.25, 2, Vec2{X: 5, Y: 0}},
		{0.5, 2, Vec2{X: 10, Y: 0}},
		{0.75, 3, Vec2{X: 10, Y: 5}},
		{1, 3, Vec2{X: 10, Y: 10}},
	}
	for _, tc := range tests {
		got := RevealPolyline(pts, tc.frac)
		if len(got) != tc.wantLen {
			t.Errorf("frac %v: %d points, want %d", tc.frac, len(got), tc.wantLen)
			continue
		}
		if tc.wantLen > 0 && got[len(got)-1] != tc.wantEnd {
			t.Errorf("frac %v: end %v, want %v", tc.frac, got[len(got)-1], tc.wantEnd)
		}
	}
}

func TestRevealPolylineRepeatedPoints(t *testing.T) {
	tests := []struct {
		name string
		pts  []Vec2
		frac float64
	}{
		{"leading repeat", []Vec2{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}}, 0.5},
		{"middle repeat", []Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, 0.5},
		{"all repeated", []Vec2{{X: 3, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 3}}, 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RevealPolyline(tc.pts, tc.frac)
			if len(got) == 0 {
				t.Fatal("no points revealed")
			}
			for i, p := range got {
				if math.IsNaN(float64(p.X)) || math.IsNaN(float64(p.Y)) {
					t.Fatalf("point %d is NaN: %v", i, got)
				}
			}
		})
	}

	got := RevealPolyline([]Vec2{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}}, 0.5)
	if end := got[len(got)-1]; end != (Vec2{X: 5, Y: 0}) {
		t.Errorf("end = %v, want (5, 0)", end)
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		elapsed, delay, duration time.Duration
		want                     float64
	}{
		{0, 0, time.Second, 0},
		{500 * time.Millisecond, 0, time.Second, 0.5},
		{2 * time.Second, 0, time.Second, 1},
		{time.Second, 2 * time.Second, time.Second, 0},
		{time.Second, 0, 0, 1},
	}
	for _, tc := range tests {
		if got := Transition(tc.elapsed, tc.delay, tc.duration); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Transition(%v, %v, %v) = %v, want %v", tc.elapsed, tc.delay, tc.duration, got, tc.want)
		}
	}
}

func TestRadialChartBars(t *testing.T) {
	c := NewRadialChart(SkillDistribution())
	bars := c.Bars(160)
	if len(bars) != 8 {
		t.Fatalf("bars = %d, want 8", len(bars))
	}

	// Bars sit inside the circle in order and never overlap
	for i, b := range bars {
		if b.Start < 0 || b.End > 2*math.Pi || b.End <= b.Start {
			t.Errorf("bar %d angles [%v, %v] invalid", i, b.Start, b.End)
		}
		if i > 0 && b.Start < bars[i-1].End {
			t.Errorf("bar %d overlaps bar %d", i, i-1)
		}
	}
	// Symmetric outer padding
	if math.Abs(bars[0].Start-(2*math.Pi-bars[7].End)) > 1e-9 {
		t.Errorf("outer padding asymmetric: %v vs %v", bars[0].Start, 2*math.Pi-bars[7].End)
	}
	if bars[0].Radius != 136 {
		t.Errorf("JavaScript radius = %v, want 136", bars[0].Radius)
	}
}

func TestRadialChartGrid(t *testing.T) {
	c := NewRadialChart(SkillDistribution())
	radii := c.GridRadii(160)
	want := []float32{32, 64, 96, 128, 160}
	for i := range want {
		if math.Abs(float64(radii[i]-want[i])) > 1e-4 {
			t.Errorf("ring %d = %v, want %v", i, radii[i], want[i])
		}
	}
}

func TestChartsRender(t *testing.T) {
	s := newRecordSurface(600, 400)
	NewRadialChart(SkillDistribution()).Render(s, 200, 200, 160, 0)
	if s.rings != 5 || len(s.sectors) != 0 {
		t.Errorf("at t=0: rings=%d sectors=%d, want 5 and 0", s.rings, len(s.sectors))
	}

	s = newRecordSurface(600, 400)
	NewRadialChart(SkillDistribution()).Render(s, 200, 200, 160, 10*time.Second)
	if len(s.sectors) != 8 {
		t.Errorf("settled sectors = %d, want 8", len(s.sectors))
	}

	s = newRecordSurface(600, 400)
	NewLineChart(ProfileActivity()).Render(s, Rect{W: 530, H: 240}, 10*time.Second)
	// 6 grid lines + 5 segments per series
	if s.lines != 6+10 {
		t.Errorf("lines = %d, want 16", s.lines)
	}
	if s.circles != 12 {
		t.Errorf("dots = %d, want 12", s.circles)
	}
}

func TestNiceStep(t *testing.T) {
	tests := []struct {
		span float64
		n    int
		want float64
	}{
		{198, 5, 50},
		{100, 5, 20},
		{10, 10, 1},
		{1, 4, 0.2},
		{700, 5, 100},
		{400, 5, 100},
		{38, 5, 10},
	}
	for _, tt := range tests {
		if got := NiceStep(tt.span, tt.n); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NiceStep(%v, %d) = %v, want %v", tt.span, tt.n, got, tt.want)
		}
	}
}

func TestLineChartTicks(t *testing.T) {
	c := NewLineChart(ProfileActivity())
	r := Rect{X: 40, Y: 20, W: 530, H: 240}

	xt := c.XTicks(r)
	if len(xt) != 6 || xt[0].Label != "Jan" || xt[5].Label != "Jun" {
		t.Fatalf("x ticks = %+v", xt)
	}
	if xt[0].Pos != 40 {
		t.Errorf("first x tick at %v, want 40", xt[0].Pos)
	}

	yt := c.YTicks(r, 5)
	labels := make([]string, len(yt))
	for i, tk := range yt {
		labels[i] = tk.Label
	}
	want := []string{"0", "50", "100", "150"}
	if len(labels) != len(want) {
		t.Fatalf("y tick labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("y tick %d = %q, want %q", i, labels[i], want[i])
		}
	}
	if yt[0].Pos != 260 {
		t.Errorf("zero tick at %v, want 260", yt[0].Pos)
	}

	if got := NewLineChart(nil).YTicks(r, 5); got != nil {
		t.Errorf("empty chart ticks = %v", got)
	}
}

func TestBarLabelAnchor(t *testing.T) {
	b := Bar{Start: 0, End: 0}
	p := b.LabelAnchor(100, 100, 50)
	if math.Abs(float64(p.X-100)) > 1e-4 || math.Abs(float64(p.Y-36)) > 1e-4 {
		t.Errorf("12 o'clock anchor = %+v, want (100, 36)", p)
	}
	b = Bar{Start: math.Pi / 2, End: math.Pi / 2}
	p = b.LabelAnchor(100, 100, 50)
	if math.Abs(float64(p.X-164)) > 1e-4 || math.Abs(float64(p.Y-100)) > 1e-4 {
		t.Errorf("3 o'clock anchor = %+v, want (164, 100)", p)
	}
}
