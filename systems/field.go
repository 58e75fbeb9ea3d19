package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/resumefx/config"
)

// TrailCap is the trail buffer size per particle.
const TrailCap = 8

// TrailPoint is one remembered position with the opacity it had then.
type TrailPoint struct {
	X, Y    float32
	Opacity float32
}

// Trail is a fixed-capacity, chronological (oldest first) position history.
// When full, pushing evicts the oldest point.
type Trail struct {
	points [TrailCap]TrailPoint
	n      uint8
	limit  uint8 // 0 = TrailCap
}

func (t *Trail) capacity() int {
	if t.limit == 0 || t.limit > TrailCap {
		return TrailCap
	}
	return int(t.limit)
}

// Push appends p, evicting the oldest point when the trail is full.
func (t *Trail) Push(p TrailPoint) {
	c := t.capacity()
	if int(t.n) < c {
		t.points[t.n] = p
		t.n++
		return
	}
	copy(t.points[:c-1], t.points[1:c])
	t.points[c-1] = p
}

// Len returns the number of stored points.
func (t *Trail) Len() int { return int(t.n) }

// At returns the i-th point, 0 being the oldest.
func (t *Trail) At(i int) TrailPoint { return t.points[i] }

// Reset empties the trail.
func (t *Trail) Reset() { t.n = 0 }

// Particle is one recycled point of the field.
type Particle struct {
	Pos     Vec2
	Vel     Vec2
	Size    float32 // base radius, pulsed at draw time only
	Opacity float32 // base opacity in [0, 1], pulsed at draw time only
	Hue     float32 // fixed at spawn, [0, 360)
	Age     int32
	MaxAge  int32
	Trail   Trail
}

// Pointer is the last known pointer sample. Valid is false until the pointer
// has been seen over the window.
type Pointer struct {
	X, Y  float32
	Valid bool
}

// FieldParams configures a ParticleField.
type FieldParams struct {
	Count              int
	Interactive        bool
	ConnectionDistance float32
	InfluenceRadius    float32
	PointerGain        float32
	BoundaryDamping    float32
	Friction           float32
	SpeedRange         float32
	MaxAgeMin          int32
	MaxAgeSpan         int32
	HueMin             float32
	HueSpan            float32
	TrailLength        int
	FadeAlpha          float64
}

// DefaultFieldParams returns the stock field configuration.
func DefaultFieldParams() FieldParams {
	return FieldParams{
		Count:              80,
		Interactive:        true,
		ConnectionDistance: 120,
		InfluenceRadius:    100,
		PointerGain:        0.01,
		BoundaryDamping:    0.8,
		Friction:           0.999,
		SpeedRange:         0.8,
		MaxAgeMin:          100,
		MaxAgeSpan:         200,
		HueMin:             200,
		HueSpan:            60,
		TrailLength:        TrailCap,
		FadeAlpha:          0.05,
	}
}

// FieldParamsFromConfig converts the field section of cfg.
func FieldParamsFromConfig(cfg *config.Config) FieldParams {
	f := cfg.Field
	return FieldParams{
		Count:              cfg.Derived.ParticleCount,
		Interactive:        f.Interactive,
		ConnectionDistance: cfg.Derived.ConnectionDistance,
		InfluenceRadius:    cfg.Derived.InfluenceRadius,
		PointerGain:        float32(f.PointerGain),
		BoundaryDamping:    float32(f.BoundaryDamping),
		Friction:           float32(f.Friction),
		SpeedRange:         float32(f.SpeedRange),
		MaxAgeMin:          int32(f.MaxAgeMin),
		MaxAgeSpan:         int32(f.MaxAgeSpan),
		HueMin:             float32(f.HueMin),
		HueSpan:            float32(f.HueSpan),
		TrailLength:        f.TrailLength,
		FadeAlpha:          f.FadeAlpha,
	}
}

// ParticleField simulates a fixed population of drifting, pointer-reactive
// particles joined by proximity edges. The population is created on Mount
// and never grows or shrinks; expired particles respawn in place.
type ParticleField struct {
	params    FieldParams
	rng       *rand.Rand
	bounds    Bounds
	particles []Particle
	mounted   bool

	lastConnections int
}

// NewParticleField creates an unmounted field.
func NewParticleField(params FieldParams, rng *rand.Rand) *ParticleField {
	if params.Count < 1 {
		params.Count = 1
	}
	if params.TrailLength > TrailCap {
		params.TrailLength = TrailCap
	}
	return &ParticleField{
		params: params,
		rng:    rng,
	}
}

// Params returns the field configuration.
func (f *ParticleField) Params() FieldParams { return f.params }

// Mount seeds the population inside b. It returns false and leaves the
// field idle while b has not been measured yet.
func (f *ParticleField) Mount(b Bounds) bool {
	if !b.Valid() {
		return false
	}
	if f.mounted {
		f.Resize(b)
		return true
	}

	f.bounds = b
	f.particles = make([]Particle, f.params.Count)
	for i := range f.particles {
		f.spawn(&f.particles[i])
	}
	f.mounted = true
	return true
}

// Unmount discards the population.
func (f *ParticleField) Unmount() {
	f.particles = nil
	f.mounted = false
	f.lastConnections = 0
}

// Mounted reports whether the field is running.
func (f *ParticleField) Mounted() bool { return f.mounted }

// Bounds returns the current viewport.
func (f *ParticleField) Bounds() Bounds { return f.bounds }

// Len returns the population size (0 when unmounted).
func (f *ParticleField) Len() int { return len(f.particles) }

// Particles exposes the live population. Callers must not modify it.
func (f *ParticleField) Particles() []Particle { return f.particles }

// LastConnections returns the edge count of the last rendered frame.
func (f *ParticleField) LastConnections() int { return f.lastConnections }

// Resize adopts new bounds and clamps every particle inside them so a shrunk
// viewport never leaves particles off-canvas.
func (f *ParticleField) Resize(b Bounds) {
	if !b.Valid() {
		return
	}
	f.bounds = b
	for i := range f.particles {
		p := &f.particles[i]
		p.Pos.X = clampFloat(p.Pos.X, 0, b.Width)
		p.Pos.Y = clampFloat(p.Pos.Y, 0, b.Height)
	}
}

// spawn initialises every attribute of p.
func (f *ParticleField) spawn(p *Particle) {
	*p = Particle{
		Size:    float32(math.Max(0.5, f.rng.Float64()*2+0.5)),
		Opacity: f.rng.Float32()*0.8 + 0.2,
		Hue:     f.params.HueMin + f.rng.Float32()*f.params.HueSpan,
		MaxAge:  f.params.MaxAgeMin,
	}
	if f.params.MaxAgeSpan > 0 {
		p.MaxAge += f.rng.Int31n(f.params.MaxAgeSpan)
	}
	if f.params.TrailLength > 0 {
		p.Trail.limit = uint8(f.params.TrailLength)
	}
	f.respawn(p)
}

// respawn recycles p in place: new position and velocity, age zero.
func (f *ParticleField) respawn(p *Particle) {
	p.Age = 0
	p.Pos.X = f.rng.Float32() * f.bounds.Width
	p.Pos.Y = f.rng.Float32() * f.bounds.Height
	p.Vel.X = (f.rng.Float32() - 0.5) * f.params.SpeedRange
	p.Vel.Y = (f.rng.Float32() - 0.5) * f.params.SpeedRange
	p.Trail.Reset()
}

// Tick advances every particle one frame. It does nothing while unmounted.
func (f *ParticleField) Tick(ptr Pointer) {
	if !f.mounted {
		return
	}
	for i := range f.particles {
		f.step(&f.particles[i], ptr)
	}
}

func (f *ParticleField) step(p *Particle, ptr Pointer) {
	p.Age++
	if p.Age > p.MaxAge {
		f.respawn(p)
	}

	if f.params.TrailLength > 0 {
		p.Trail.Push(TrailPoint{X: p.Pos.X, Y: p.Pos.Y, Opacity: p.Opacity})
	}

	if f.params.Interactive && ptr.Valid {
		f.applyPointer(p, ptr)
	}

	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y

	// Wall contact reflects with energy loss
	w, h := f.bounds.Width, f.bounds.Height
	if p.Pos.X <= 0 || p.Pos.X >= w {
		p.Vel.X *= -f.params.BoundaryDamping
		p.Pos.X = clampFloat(p.Pos.X, 0, w)
	}
	if p.Pos.Y <= 0 || p.Pos.Y >= h {
		p.Vel.Y *= -f.params.BoundaryDamping
		p.Pos.Y = clampFloat(p.Pos.Y, 0, h)
	}

	p.Vel.X *= f.params.Friction
	p.Vel.Y *= f.params.Friction
}

// applyPointer pulls p toward the pointer, stronger the closer it is.
func (f *ParticleField) applyPointer(p *Particle, ptr Pointer) {
	r := f.params.InfluenceRadius
	dx := ptr.X - p.Pos.X
	dy := ptr.Y - p.Pos.Y
	d := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if d == 0 || d >= r {
		return
	}
	force := (r - d) / r
	p.Vel.X += dx / d * force * f.params.PointerGain
	p.Vel.Y += dy / d * force * f.params.PointerGain
}

// Pulse returns the draw-time size/opacity modulation for a particle age.
func Pulse(age int32) float32 {
	return sinf(float64(age)*0.05)*0.3 + 0.7
}

// ConnectionOffset returns the cosmetic control-point wobble of an edge of
// length d at wall-clock time nowMs (milliseconds).
func ConnectionOffset(nowMs float64, d float32) float32 {
	return sinf(nowMs*0.001+float64(d)*0.01) * 10
}

// Connection is a pair of particles closer than the connection distance.
type Connection struct {
	A, B     int // indices, A < B
	Distance float32
	Opacity  float32
}

// ForEachConnection calls fn once per unordered pair within the connection
// distance, always with A < B. Cost is O(n²).
func (f *ParticleField) ForEachConnection(fn func(c Connection)) {
	cd := f.params.ConnectionDistance
	ps := f.particles
	for i := 0; i < len(ps); i++ {
		a := &ps[i]
		for j := i + 1; j < len(ps); j++ {
			b := &ps[j]
			d := distance(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y)
			if d >= cd {
				continue
			}
			fn(Connection{A: i, B: j, Distance: d, Opacity: (1 - d/cd) * 0.3})
		}
	}
}

// Render draws the current frame: the fade, every particle with its trail,
// then the connection curves. nowMs drives the edge wobble only.
func (f *ParticleField) Render(s Surface, nowMs float64) {
	f.RenderParticles(s)
	f.RenderConnections(s, nowMs)
}

// RenderParticles applies the fade and draws particles and trails.
func (f *ParticleField) RenderParticles(s Surface) {
	if !f.mounted {
		return
	}
	s.Fade(f.params.FadeAlpha)
	for i := range f.particles {
		drawParticle(s, &f.particles[i])
	}
}

// RenderConnections strokes every connection as a curve bowed by
// ConnectionOffset.
func (f *ParticleField) RenderConnections(s Surface, nowMs float64) {
	if !f.mounted {
		return
	}
	count := 0
	f.ForEachConnection(func(c Connection) {
		a := &f.particles[c.A]
		b := &f.particles[c.B]
		off := ConnectionOffset(nowMs, c.Distance)
		ctrl := Vec2{X: (a.Pos.X+b.Pos.X)/2 + off, Y: (a.Pos.Y+b.Pos.Y)/2 + off}
		hue := float64(a.Hue+b.Hue) / 2
		s.StrokeQuad(a.Pos, ctrl, b.Pos, 1, HSLA(hue, 0.7, 0.6, float64(c.Opacity)))
		count++
	})
	f.lastConnections = count
}

func drawParticle(s Surface, p *Particle) {
	pulse := Pulse(p.Age)
	size := float32(math.Max(0.5, float64(p.Size*pulse)))
	opacity := float64(p.Opacity * pulse)
	hue := float64(p.Hue)

	n := p.Trail.Len()
	for k := 0; k < n; k++ {
		pt := p.Trail.At(k)
		rank := float32(k) / float32(n)
		r := float32(math.Max(0.5, float64(size*rank)))
		s.FillCircle(pt.X, pt.Y, r, HSLA(hue, 0.7, 0.6, float64(pt.Opacity*rank*0.3)))
	}

	// The gradient reaches transparent at twice the disc radius, so the disc
	// edge sits halfway along it.
	g := Gradient{
		{Offset: 0, Color: HSLA(hue, 0.7, 0.7, opacity)},
		{Offset: 1, Color: HSLA(hue, 0.7, 0.5, 0)},
	}
	s.FillRadial(p.Pos.X, p.Pos.Y, size, g.At(0), g.At(0.5))
}
