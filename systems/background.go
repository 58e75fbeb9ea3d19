package systems

import (
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/resumefx/config"
)

// BackgroundVariant selects the look of a procedural background.
type BackgroundVariant uint8

const (
	// VariantAurora is a radial gradient with layered waves and drifting orbs.
	VariantAurora BackgroundVariant = iota
	// VariantSmooth is a diagonal gradient with grain and overlay waves.
	VariantSmooth
)

// String returns the variant name.
func (v BackgroundVariant) String() string {
	switch v {
	case VariantAurora:
		return "aurora"
	case VariantSmooth:
		return "smooth"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// BackgroundParams configures a Background.
type BackgroundParams struct {
	TimeStep    float64
	Waves       int
	Orbs        int
	WaveStep    float32 // x sampling step in pixels
	GrainCell   float32 // 0 disables grain
	GrainAmount float64
	Seed        int64
}

// DefaultBackgroundParams returns the stock background configuration.
func DefaultBackgroundParams() BackgroundParams {
	return BackgroundParams{
		TimeStep:    0.01,
		Waves:       3,
		Orbs:        5,
		WaveStep:    10,
		GrainCell:   8,
		GrainAmount: 0.04,
		Seed:        7,
	}
}

// BackgroundParamsFromConfig converts the background section of cfg.
func BackgroundParamsFromConfig(cfg *config.Config) BackgroundParams {
	b := cfg.Background
	return BackgroundParams{
		TimeStep:    b.TimeStep,
		Waves:       b.Waves,
		Orbs:        b.Orbs,
		WaveStep:    float32(b.WaveStep),
		GrainCell:   float32(b.GrainCell),
		GrainAmount: b.GrainAmount,
		Seed:        b.Seed,
	}
}

// Background is a time-driven animated backdrop. Its frame is a pure
// function of the time counter and the viewport size.
type Background struct {
	variant BackgroundVariant
	params  BackgroundParams
	bounds  Bounds
	t       float64
	mounted bool
	noise   opensimplex.Noise

	wave []Vec2 // reused polyline buffer
}

// NewBackground creates an unmounted background.
func NewBackground(variant BackgroundVariant, params BackgroundParams) *Background {
	if params.WaveStep <= 0 {
		params.WaveStep = 10
	}
	return &Background{
		variant: variant,
		params:  params,
		noise:   opensimplex.NewNormalized(params.Seed),
	}
}

// Variant returns the background variant.
func (bg *Background) Variant() BackgroundVariant { return bg.variant }

// Mount starts the animation from t = 0. It returns false while b has not
// been measured.
func (bg *Background) Mount(b Bounds) bool {
	if !b.Valid() {
		return false
	}
	bg.bounds = b
	bg.t = 0
	bg.mounted = true
	return true
}

// Unmount stops the animation. A later Mount restarts from t = 0.
func (bg *Background) Unmount() {
	bg.mounted = false
	bg.t = 0
}

// Mounted reports whether the background is running.
func (bg *Background) Mounted() bool { return bg.mounted }

// Resize adopts new bounds; the time counter is untouched.
func (bg *Background) Resize(b Bounds) {
	if b.Valid() {
		bg.bounds = b
	}
}

// Bounds returns the current viewport.
func (bg *Background) Bounds() Bounds { return bg.bounds }

// Tick advances the time counter by one step.
func (bg *Background) Tick() {
	if !bg.mounted {
		return
	}
	bg.t += bg.params.TimeStep
}

// Time returns the current time counter.
func (bg *Background) Time() float64 { return bg.t }

// SetTime jumps the time counter.
func (bg *Background) SetTime(t float64) { bg.t = t }

// Hues returns the three rotating hues for time t, each in [0, 360).
func Hues(t float64) (h1, h2, h3 float64) {
	return wrapHue(t * 20), wrapHue(t*30 + 120), wrapHue(t*25 + 240)
}

// WaveY returns the y coordinate of wave layer i at x.
func (v BackgroundVariant) WaveY(x float32, i int, t float64, height float32) float32 {
	fx, fi := float64(x), float64(i)
	mid := float64(height) / 2
	switch v {
	case VariantSmooth:
		return float32(mid +
			math.Sin(fx*0.01+t*2+fi*2)*50 +
			math.Sin(fx*0.005+t*1.5+fi*1.5)*30)
	default:
		return float32(mid +
			math.Sin(fx*0.01+t*(2+fi))*(50+fi*20) +
			math.Sin(fx*0.005+t*(1.5+fi*0.5))*(30+fi*10))
	}
}

// Orb returns the centre and radius of orb i at time t.
func Orb(i int, t float64, b Bounds) (Vec2, float32) {
	fi := float64(i)
	w, h := float64(b.Width), float64(b.Height)
	x := w/2 + math.Sin(t*(0.5+fi*0.2))*w*0.3
	y := h/2 + math.Cos(t*(0.3+fi*0.15))*h*0.2
	r := 50 + math.Sin(t*(1+fi*0.3))*20
	return Vec2{X: float32(x), Y: float32(y)}, float32(r)
}

// GrainCell is one square of the grain overlay. Value is in [-1, 1]:
// positive lightens, negative darkens.
type GrainCell struct {
	X, Y, Size float32
	Value      float64
}

// Grain samples the grain overlay for the viewport at time t.
func (bg *Background) Grain(b Bounds, t float64) []GrainCell {
	cell := bg.params.GrainCell
	if cell <= 0 || !b.Valid() {
		return nil
	}
	cols := int(math.Ceil(float64(b.Width / cell)))
	rows := int(math.Ceil(float64(b.Height / cell)))
	cells := make([]GrainCell, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			n := bg.noise.Eval3(float64(c)*0.35, float64(r)*0.35, t*8)
			cells = append(cells, GrainCell{
				X:     float32(c) * cell,
				Y:     float32(r) * cell,
				Size:  cell,
				Value: math.Max(-1, math.Min(1, n*2-1)),
			})
		}
	}
	return cells
}

// Render draws the frame for the current time.
func (bg *Background) Render(s Surface) {
	if !bg.mounted {
		return
	}
	s.Clear(Color{A: 1})
	switch bg.variant {
	case VariantSmooth:
		bg.renderSmooth(s)
	default:
		bg.renderAurora(s)
	}
}

func (bg *Background) renderAurora(s Surface) {
	b, t := bg.bounds, bg.t
	h1, h2, h3 := Hues(t)
	c := b.Center()

	s.FillRadialGradient(c.X, c.Y, float32(math.Max(float64(b.Width), float64(b.Height)))/2, Gradient{
		{Offset: 0, Color: HSLA(h1, 0.7, 0.2, 0.8)},
		{Offset: 0.5, Color: HSLA(h2, 0.6, 0.15, 0.6)},
		{Offset: 1, Color: HSLA(h3, 0.5, 0.1, 0.4)},
	})

	for i := 0; i < bg.params.Waves; i++ {
		hue := h1 + float64(i)*60
		bg.fillWave(s, i, HSLA(hue, 0.8, 0.3, 0.1), HSLA(hue, 0.8, 0.3, 0.05))
	}

	for i := 0; i < bg.params.Orbs; i++ {
		pos, r := Orb(i, t, b)
		hue := h2 + float64(i)*72
		s.FillRadialGradient(pos.X, pos.Y, r, Gradient{
			{Offset: 0, Color: HSLA(hue, 0.9, 0.6, 0.3)},
			{Offset: 0.7, Color: HSLA(hue, 0.9, 0.4, 0.1)},
			{Offset: 1, Color: HSLA(hue, 0.9, 0.2, 0)},
		})
	}
}

func (bg *Background) renderSmooth(s Surface) {
	b, t := bg.bounds, bg.t
	h1, h2, h3 := Hues(t)

	s.FillLinearGradient(0, 0, b.Width, b.Height, Gradient{
		{Offset: 0, Color: HSLA(h1, 0.7, 0.2, 0.8)},
		{Offset: 0.5, Color: HSLA(h2, 0.6, 0.15, 0.9)},
		{Offset: 1, Color: HSLA(h3, 0.8, 0.1, 1)},
	})

	amount := bg.params.GrainAmount
	for _, g := range bg.Grain(b, t) {
		if g.Value >= 0 {
			s.FillRect(g.X, g.Y, g.Size, g.Size, Color{A: g.Value * amount}.lighten())
		} else {
			s.FillRect(g.X, g.Y, g.Size, g.Size, Color{A: -g.Value * amount})
		}
	}

	for i := 0; i < bg.params.Waves; i++ {
		hue := h1 + float64(i)*60
		bg.fillWave(s, i, HSLA(hue, 0.8, 0.5, 0.1), HSLA(hue, 0.8, 0.3, 0.05))
	}
}

// fillWave fills layer i from its crest down to the bottom edge.
func (bg *Background) fillWave(s Surface, i int, top, bottom Color) {
	b := bg.bounds
	bg.wave = bg.wave[:0]
	step := bg.params.WaveStep
	for x := float32(0); x <= b.Width; x += step {
		bg.wave = append(bg.wave, Vec2{X: x, Y: bg.variant.WaveY(x, i, bg.t, b.Height)})
	}
	s.FillArea(bg.wave, b.Height, top, bottom)
}

// lighten turns a transparent black into the same-alpha white.
func (c Color) lighten() Color {
	c.R, c.G, c.B = 1, 1, 1
	return c
}
