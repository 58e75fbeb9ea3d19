package systems

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// Color is a straight-alpha RGB colour with components in [0, 1].
type Color struct {
	colorful.Color
	A float64
}

// HSLA builds a colour from hue (degrees), saturation and lightness in [0, 1]
// and an alpha in [0, 1], matching CSS hsla().
func HSLA(h, s, l, a float64) Color {
	return Color{Color: colorful.Hsl(wrapHue(h), s, l), A: clamp01(a)}
}

// RGBA8 builds a colour from 8-bit channels and an alpha in [0, 1].
func RGBA8(r, g, b uint8, a float64) Color {
	return Color{
		Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255},
		A:     clamp01(a),
	}
}

// WithAlpha returns a copy of c with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Bytes returns the clamped 8-bit channels.
func (c Color) Bytes() (r, g, b, a uint8) {
	r, g, b = c.Clamped().RGB255()
	return r, g, b, uint8(clamp01(c.A)*255 + 0.5)
}

// ColorStop is a gradient stop at Offset in [0, 1].
type ColorStop struct {
	Offset float64
	Color  Color
}

// Gradient is an ordered list of colour stops.
type Gradient []ColorStop

// At interpolates the gradient at t. Colour channels are blended in RGB
// space like a canvas gradient; alpha is blended linearly.
func (g Gradient) At(t float64) Color {
	if len(g) == 0 {
		return Color{}
	}
	if t <= g[0].Offset {
		return g[0].Color
	}
	last := g[len(g)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g); i++ {
		lo, hi := g[i-1], g[i]
		if t > hi.Offset {
			continue
		}
		span := hi.Offset - lo.Offset
		if span <= 0 {
			return hi.Color
		}
		f := (t - lo.Offset) / span
		return Color{
			Color: lo.Color.Color.BlendRgb(hi.Color.Color, f),
			A:     lo.Color.A + (hi.Color.A-lo.Color.A)*f,
		}
	}
	return last.Color
}

// Surface is the 2D drawing target a visual system renders into. It is
// owned by one scene for its mounted lifetime.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() Bounds
	// Fade darkens the whole surface toward transparent black by alpha
	// instead of clearing it.
	Fade(alpha float64)
	// Clear paints the whole surface with c.
	Clear(c Color)
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float32, c Color)
	// FillCircle fills a solid disc.
	FillCircle(x, y, r float32, c Color)
	// FillRadial fills a disc whose colour runs from inner at the centre
	// to outer at radius r.
	FillRadial(x, y, r float32, inner, outer Color)
	// FillRadialGradient fills the full surface with a radial gradient
	// centred on (x, y) reaching the last stop at radius r.
	FillRadialGradient(x, y, r float32, g Gradient)
	// FillLinearGradient fills the full surface with a gradient running
	// from (x0, y0) to (x1, y1).
	FillLinearGradient(x0, y0, x1, y1 float32, g Gradient)
	// FillArea fills the region between a polyline and the baseline y,
	// shading vertically from top at y = 0 to bottom at the baseline.
	FillArea(points []Vec2, baseline float32, top, bottom Color)
	// StrokeQuad strokes a quadratic Bézier curve from p0 to p1 with
	// control point ctrl.
	StrokeQuad(p0, ctrl, p1 Vec2, width float32, c Color)
	// StrokeLine strokes a straight segment.
	StrokeLine(p0, p1 Vec2, width float32, c Color)
	// StrokeCircle strokes a circle outline.
	StrokeCircle(x, y, r, width float32, c Color)
	// FillSector fills a pie slice between two screen angles in radians,
	// measured clockwise from the +x axis.
	FillSector(x, y, r, from, to float32, c Color)
}

// Surface3D is implemented by surfaces that can also draw in perspective.
// Drawing calls are only valid between Begin3D and End3D.
type Surface3D interface {
	Begin3D(cam Camera3D)
	End3D()
	// WireCube strokes the edges of a cube with edge length size.
	WireCube(pose MeshPose, size float64, c Color)
	// WireSphere strokes a latitude/longitude sphere of radius r.
	WireSphere(pose MeshPose, r float64, c Color)
	Line3D(a, b r3.Vec, c Color)
}
