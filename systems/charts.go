package systems

import (
	"math"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float32
}

// MonthlyActivity is one month of profile activity.
type MonthlyActivity struct {
	Month        time.Time
	Views        float64
	Applications float64
}

// SkillLevel is one skill's proficiency in [0, 100].
type SkillLevel struct {
	Skill    string
	Value    float64
	Category string
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// ProfileActivity returns the six-month views/applications dataset.
func ProfileActivity() []MonthlyActivity {
	return []MonthlyActivity{
		{Month: month(2024, time.January), Views: 45, Applications: 12},
		{Month: month(2024, time.February), Views: 67, Applications: 18},
		{Month: month(2024, time.March), Views: 89, Applications: 25},
		{Month: month(2024, time.April), Views: 123, Applications: 34},
		{Month: month(2024, time.May), Views: 156, Applications: 42},
		{Month: month(2024, time.June), Views: 198, Applications: 56},
	}
}

// SkillDistribution returns the radial chart dataset.
func SkillDistribution() []SkillLevel {
	return []SkillLevel{
		{Skill: "JavaScript", Value: 85, Category: "Frontend"},
		{Skill: "React", Value: 80, Category: "Frontend"},
		{Skill: "Node.js", Value: 75, Category: "Backend"},
		{Skill: "Python", Value: 70, Category: "Backend"},
		{Skill: "SQL", Value: 65, Category: "Database"},
		{Skill: "AWS", Value: 60, Category: "Cloud"},
		{Skill: "Docker", Value: 55, Category: "DevOps"},
		{Skill: "TypeScript", Value: 78, Category: "Frontend"},
	}
}

var (
	gridColor         = RGBA8(0x37, 0x41, 0x51, 1)
	viewsColor        = RGBA8(0x8b, 0x5c, 0xf6, 1)
	applicationsColor = RGBA8(0x3b, 0x82, 0xf6, 1)

	// category10 is the qualitative palette used for radial bars.
	category10 = []Color{
		RGBA8(0x1f, 0x77, 0xb4, 1), RGBA8(0xff, 0x7f, 0x0e, 1),
		RGBA8(0x2c, 0xa0, 0x2c, 1), RGBA8(0xd6, 0x27, 0x28, 1),
		RGBA8(0x94, 0x67, 0xbd, 1), RGBA8(0x8c, 0x56, 0x4b, 1),
		RGBA8(0xe3, 0x77, 0xc2, 1), RGBA8(0x7f, 0x7f, 0x7f, 1),
		RGBA8(0xbc, 0xbd, 0x22, 1), RGBA8(0x17, 0xbe, 0xcf, 1),
	}
)

// Transition returns the eased progress in [0, 1] of an animation of the
// given duration that starts after delay.
func Transition(elapsed, delay, duration time.Duration) float64 {
	if elapsed <= delay {
		return 0
	}
	if duration <= 0 || elapsed >= delay+duration {
		return 1
	}
	return easeCubicInOut(float64(elapsed-delay) / float64(duration))
}

func easeCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Series is one projected chart line.
type Series struct {
	Name   string
	Color  Color
	Points []Vec2
}

// LineChart plots monthly activity on a time axis.
type LineChart struct {
	data []MonthlyActivity
}

// NewLineChart creates a chart over data, which must be in month order.
func NewLineChart(data []MonthlyActivity) *LineChart {
	return &LineChart{data: data}
}

// YMax returns the top of the y domain: the largest value of any series.
func (c *LineChart) YMax() float64 {
	if len(c.data) == 0 {
		return 0
	}
	views := make([]float64, len(c.data))
	apps := make([]float64, len(c.data))
	for i, d := range c.data {
		views[i], apps[i] = d.Views, d.Applications
	}
	return math.Max(floats.Max(views), floats.Max(apps))
}

// xAt maps a month onto [0, w] by elapsed time between the first and last month.
func (c *LineChart) xAt(t time.Time, w float32) float32 {
	first, last := c.data[0].Month, c.data[len(c.data)-1].Month
	span := last.Sub(first)
	if span <= 0 {
		return 0
	}
	return float32(float64(t.Sub(first)) / float64(span) * float64(w))
}

// Project maps both series into r, y growing downward from the top of r.
func (c *LineChart) Project(r Rect) []Series {
	if len(c.data) == 0 {
		return nil
	}
	ymax := c.YMax()
	y := func(v float64) float32 {
		if ymax == 0 {
			return r.Y + r.H
		}
		return r.Y + r.H - float32(v/ymax)*r.H
	}

	views := Series{Name: "views", Color: viewsColor, Points: make([]Vec2, len(c.data))}
	apps := Series{Name: "applications", Color: applicationsColor, Points: make([]Vec2, len(c.data))}
	for i, d := range c.data {
		x := r.X + c.xAt(d.Month, r.W)
		views.Points[i] = Vec2{X: x, Y: y(d.Views)}
		apps.Points[i] = Vec2{X: x, Y: y(d.Applications)}
	}
	return []Series{views, apps}
}

// RevealPolyline returns the prefix of points covering frac of the total
// length, ending on an interpolated point.
func RevealPolyline(points []Vec2, frac float64) []Vec2 {
	if len(points) < 2 || frac >= 1 {
		return points
	}
	if frac <= 0 {
		return nil
	}
	lengths := make([]float64, len(points)-1)
	for i := range lengths {
		a, b := points[i], points[i+1]
		lengths[i] = float64(distance(a.X, a.Y, b.X, b.Y))
	}
	cum := make([]float64, len(lengths))
	floats.CumSum(cum, lengths)
	target := frac * cum[len(cum)-1]

	out := []Vec2{points[0]}
	prev := 0.0
	for i, end := range cum {
		if target > end {
			out = append(out, points[i+1])
			prev = end
			continue
		}
		if lengths[i] == 0 {
			continue
		}
		k := float32((target - prev) / lengths[i])
		a, b := points[i], points[i+1]
		out = append(out, Vec2{X: a.X + (b.X-a.X)*k, Y: a.Y + (b.Y-a.Y)*k})
		break
	}
	return out
}

// Render draws grid, lines and dots with the draw-in animation at elapsed.
func (c *LineChart) Render(s Surface, r Rect, elapsed time.Duration) {
	for _, d := range c.data {
		x := r.X + c.xAt(d.Month, r.W)
		s.StrokeLine(Vec2{X: x, Y: r.Y}, Vec2{X: x, Y: r.Y + r.H}, 1, gridColor)
	}

	series := c.Project(r)
	lineDelay := []time.Duration{0, 500 * time.Millisecond}
	dotDelay := []time.Duration{2000 * time.Millisecond, 2500 * time.Millisecond}
	for si, sr := range series {
		pts := RevealPolyline(sr.Points, Transition(elapsed, lineDelay[si], 2*time.Second))
		for i := 1; i < len(pts); i++ {
			s.StrokeLine(pts[i-1], pts[i], 3, sr.Color)
		}
		for i, p := range sr.Points {
			delay := dotDelay[si] + time.Duration(i)*200*time.Millisecond
			if rad := float32(4 * Transition(elapsed, delay, time.Second)); rad > 0 {
				s.FillCircle(p.X, p.Y, rad, sr.Color)
			}
		}
	}
}

// GridLevels are the radial chart reference rings.
var GridLevels = []float64{20, 40, 60, 80, 100}

// Bar is one radial bar. Angles are in radians, clockwise from 12 o'clock.
type Bar struct {
	Label      string
	Start, End float64
	Radius     float32
	Color      Color
}

// Mid returns the bar's centre angle.
func (b Bar) Mid() float64 { return (b.Start + b.End) / 2 }

// RadialChart plots skill levels as pie-slice bars around a centre.
type RadialChart struct {
	data []SkillLevel
}

// NewRadialChart creates a chart over data.
func NewRadialChart(data []SkillLevel) *RadialChart {
	return &RadialChart{data: data}
}

// band returns the start angle step and bandwidth of a band scale over the
// full circle with 10% inner and outer padding.
func (c *RadialChart) band() (offset, step, width float64) {
	const padding = 0.1
	n := float64(len(c.data))
	step = 2 * math.Pi / math.Max(1, n-padding+2*padding)
	offset = (2*math.Pi - step*(n-padding)) / 2
	return offset, step, step * (1 - padding)
}

// GridRadii returns the ring radii for GridLevels at the given outer radius.
func (c *RadialChart) GridRadii(radius float32) []float32 {
	out := make([]float32, len(GridLevels))
	for i, lvl := range GridLevels {
		out[i] = float32(lvl/100) * radius
	}
	return out
}

// Bars returns one bar per skill, value scaled linearly from [0, 100] to
// [0, radius].
func (c *RadialChart) Bars(radius float32) []Bar {
	offset, step, width := c.band()
	bars := make([]Bar, len(c.data))
	for i, d := range c.data {
		start := offset + step*float64(i)
		bars[i] = Bar{
			Label:  d.Skill,
			Start:  start,
			End:    start + width,
			Radius: float32(d.Value/100) * radius,
			Color:  category10[i%len(category10)],
		}
	}
	return bars
}

// Render draws rings and bars, each bar growing after a staggered delay.
func (c *RadialChart) Render(s Surface, cx, cy, radius float32, elapsed time.Duration) {
	for _, r := range c.GridRadii(radius) {
		s.StrokeCircle(cx, cy, r, 1, gridColor)
	}
	for i, b := range c.Bars(radius) {
		grow := Transition(elapsed, time.Duration(i)*100*time.Millisecond, 1500*time.Millisecond)
		if grow <= 0 {
			continue
		}
		// 12 o'clock clockwise to +x clockwise
		s.FillSector(cx, cy, b.Radius*float32(grow),
			float32(b.Start-math.Pi/2), float32(b.End-math.Pi/2), b.Color)
	}
}

// Tick is one axis label at a screen position along its axis.
type Tick struct {
	Pos   float32
	Label string
}

// XTicks returns one month abbreviation per data point across r.
func (c *LineChart) XTicks(r Rect) []Tick {
	ticks := make([]Tick, len(c.data))
	for i, d := range c.data {
		ticks[i] = Tick{Pos: r.X + c.xAt(d.Month, r.W), Label: d.Month.Format("Jan")}
	}
	return ticks
}

// YTicks returns round-valued ticks over [0, YMax] mapped into r, aiming
// for about n ticks.
func (c *LineChart) YTicks(r Rect, n int) []Tick {
	ymax := c.YMax()
	if ymax <= 0 || n < 1 {
		return nil
	}
	step := NiceStep(ymax, n)
	var ticks []Tick
	for v := 0.0; v <= ymax+step*1e-9; v += step {
		ticks = append(ticks, Tick{
			Pos:   r.Y + r.H - float32(v/ymax)*r.H,
			Label: strconv.FormatFloat(v, 'f', -1, 64),
		})
	}
	return ticks
}

// NiceStep returns a 1, 2 or 5 times power-of-ten step splitting [0, span]
// into roughly n intervals.
func NiceStep(span float64, n int) float64 {
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch r := raw / mag; {
	case r >= 7.07:
		return 10 * mag
	case r >= 3.16:
		return 5 * mag
	case r >= 1.41:
		return 2 * mag
	}
	return mag
}

// LabelAnchor returns where the bar's label sits: just past the outer
// radius along the bar's centre angle.
func (b Bar) LabelAnchor(cx, cy, radius float32) Vec2 {
	a := b.Mid() - math.Pi/2
	r := float64(radius) + 14
	return Vec2{X: cx + float32(math.Cos(a)*r), Y: cy + float32(math.Sin(a)*r)}
}
