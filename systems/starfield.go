package systems

import (
	"math"
	"math/rand"
)

// Star is one twinkling point of the starfield.
type Star struct {
	Pos          Vec2
	Size         float32
	Opacity      float32
	TwinkleSpeed float32
	Phase        float32
}

// Twinkle returns the current brightness multiplier in [0.4, 1.0].
func (s *Star) Twinkle() float32 {
	return sinf(float64(s.Phase))*0.3 + 0.7
}

var (
	starColor = RGBA8(147, 51, 234, 1)

	skyGradient = Gradient{
		{Offset: 0, Color: RGBA8(0x1e, 0x1b, 0x4b, 1)},
		{Offset: 0.7, Color: RGBA8(0x31, 0x2e, 0x81, 1)},
		{Offset: 1, Color: RGBA8(0, 0, 0, 1)},
	}
)

// Starfield is a static sky of twinkling stars over an indigo gradient.
type Starfield struct {
	count   int
	band    float32
	rng     *rand.Rand
	bounds  Bounds
	stars   []Star
	mounted bool
}

// NewStarfield creates an unmounted starfield with count stars occupying the
// top band fraction of the viewport.
func NewStarfield(count int, band float32, rng *rand.Rand) *Starfield {
	if count < 0 {
		count = 0
	}
	if band <= 0 || band > 1 {
		band = 0.7
	}
	return &Starfield{count: count, band: band, rng: rng}
}

// Mount scatters the stars. It returns false while b has not been measured.
func (sf *Starfield) Mount(b Bounds) bool {
	if !b.Valid() {
		return false
	}
	if sf.mounted {
		sf.Resize(b)
		return true
	}
	sf.bounds = b
	sf.stars = make([]Star, sf.count)
	for i := range sf.stars {
		sf.stars[i] = Star{
			Pos: Vec2{
				X: sf.rng.Float32() * b.Width,
				Y: sf.rng.Float32() * b.Height * sf.band,
			},
			Size:         sf.rng.Float32()*2 + 0.5,
			Opacity:      sf.rng.Float32()*0.8 + 0.2,
			TwinkleSpeed: sf.rng.Float32()*0.02 + 0.01,
			Phase:        sf.rng.Float32() * 2 * math.Pi,
		}
	}
	sf.mounted = true
	return true
}

// Unmount discards the stars.
func (sf *Starfield) Unmount() {
	sf.stars = nil
	sf.mounted = false
}

// Mounted reports whether the starfield is running.
func (sf *Starfield) Mounted() bool { return sf.mounted }

// Resize rescales star positions proportionally into the new bounds.
func (sf *Starfield) Resize(b Bounds) {
	if !b.Valid() || !sf.bounds.Valid() {
		return
	}
	kx, ky := b.Width/sf.bounds.Width, b.Height/sf.bounds.Height
	for i := range sf.stars {
		sf.stars[i].Pos.X *= kx
		sf.stars[i].Pos.Y *= ky
	}
	sf.bounds = b
}

// Stars exposes the live stars. Callers must not modify them.
func (sf *Starfield) Stars() []Star { return sf.stars }

// Tick advances every star's twinkle phase.
func (sf *Starfield) Tick() {
	for i := range sf.stars {
		sf.stars[i].Phase += sf.stars[i].TwinkleSpeed
	}
}

// Render draws the sky gradient and the stars.
func (sf *Starfield) Render(s Surface) {
	if !sf.mounted {
		return
	}
	s.Clear(Color{A: 1})
	s.FillLinearGradient(0, 0, 0, sf.bounds.Height, skyGradient)

	for i := range sf.stars {
		st := &sf.stars[i]
		a := float64(st.Opacity * st.Twinkle())
		s.FillCircle(st.Pos.X, st.Pos.Y, st.Size, starColor.WithAlpha(a))
		if st.Size > 1.5 {
			s.FillCircle(st.Pos.X, st.Pos.Y, st.Size*1.5, starColor.WithAlpha(a*0.3))
		}
	}
}
