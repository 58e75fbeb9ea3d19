// Package renderer provides raylib-backed drawing for the visual systems.
package renderer

import (
	"image/color"
	"math"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resumefx/systems"
)

// Ring count used to approximate multi-stop radial gradients.
const radialRings = 32

// Strip width in pixels used to rasterize linear gradients.
const gradientStrip = 4

// Surface draws systems output with raylib immediate-mode calls. It must be
// used between BeginDrawing/EndDrawing or BeginTextureMode/EndTextureMode.
type Surface struct {
	width, height float32
}

// NewSurface creates a surface of the given size.
func NewSurface(width, height float32) *Surface {
	return &Surface{width: width, height: height}
}

// SetSize updates the drawable area.
func (s *Surface) SetSize(width, height float32) {
	s.width, s.height = width, height
}

// ToRaylib converts a systems colour to a raylib colour.
func ToRaylib(c systems.Color) color.RGBA {
	r, g, b, a := c.Bytes()
	return rl.NewColor(r, g, b, a)
}

// Size returns the drawable area.
func (s *Surface) Size() systems.Bounds {
	return systems.Bounds{Width: s.width, Height: s.height}
}

// Fade darkens everything drawn so far by alpha.
func (s *Surface) Fade(alpha float64) {
	a := uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))
	rl.DrawRectangleV(rl.Vector2{}, rl.NewVector2(s.width, s.height), rl.NewColor(0, 0, 0, a))
}

// Clear paints the whole surface.
func (s *Surface) Clear(c systems.Color) {
	rl.ClearBackground(ToRaylib(c))
}

// FillRect fills an axis-aligned rectangle.
func (s *Surface) FillRect(x, y, w, h float32, c systems.Color) {
	rl.DrawRectangleV(rl.NewVector2(x, y), rl.NewVector2(w, h), ToRaylib(c))
}

// FillCircle fills a solid disc.
func (s *Surface) FillCircle(x, y, r float32, c systems.Color) {
	rl.DrawCircleV(rl.NewVector2(x, y), r, ToRaylib(c))
}

// FillRadial fills a disc shading from inner at the centre to outer at r.
func (s *Surface) FillRadial(x, y, r float32, inner, outer systems.Color) {
	rl.DrawCircleGradient(int32(x), int32(y), r, ToRaylib(inner), ToRaylib(outer))
}

// FillRadialGradient covers the surface with a radial gradient. Inside r
// the gradient is drawn as non-overlapping rings; beyond r the last stop
// fills out to the farthest corner.
func (s *Surface) FillRadialGradient(x, y, r float32, g systems.Gradient) {
	if len(g) == 0 || r <= 0 {
		return
	}
	center := rl.NewVector2(x, y)
	step := r / radialRings
	for i := 0; i < radialRings; i++ {
		inner := float32(i) * step
		t := (float64(i) + 0.5) / radialRings
		rl.DrawRing(center, inner, inner+step, 0, 360, 64, ToRaylib(g.At(t)))
	}

	far := float32(0)
	for _, c := range [][2]float32{{0, 0}, {s.width, 0}, {0, s.height}, {s.width, s.height}} {
		far = max(far, float32(math.Hypot(float64(c[0]-x), float64(c[1]-y))))
	}
	if far > r {
		rl.DrawRing(center, r, far, 0, 360, 64, ToRaylib(g[len(g)-1].Color))
	}
}

// FillLinearGradient covers the surface with a gradient along the axis
// (x0, y0) → (x1, y1), rasterized as vertical strips. Within a strip the
// gradient parameter is linear in y, so each strip is split at the stop
// offsets and every piece is an exact two-colour vertical gradient.
func (s *Surface) FillLinearGradient(x0, y0, x1, y1 float32, g systems.Gradient) {
	if len(g) == 0 {
		return
	}
	dx, dy := float64(x1-x0), float64(y1-y0)
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		s.FillRect(0, 0, s.width, s.height, g[0].Color)
		return
	}

	// t(x, y) = ((x-x0)*dx + (y-y0)*dy) / l2
	param := func(x, y float64) float64 {
		return ((x-float64(x0))*dx + (y-float64(y0))*dy) / l2
	}

	h := float64(s.height)
	for sx := float32(0); sx < s.width; sx += gradientStrip {
		cx := float64(sx) + gradientStrip/2
		tTop, tBot := param(cx, 0), param(cx, h)

		// Split points in y where t crosses a stop offset
		cuts := []float64{0}
		for _, stop := range g {
			if (stop.Offset > tTop && stop.Offset < tBot) || (stop.Offset < tTop && stop.Offset > tBot) {
				cuts = append(cuts, (stop.Offset-tTop)/(tBot-tTop)*h)
			}
		}
		cuts = append(cuts, h)
		slices.Sort(cuts)

		for i := 1; i < len(cuts); i++ {
			ya, yb := cuts[i-1], cuts[i]
			if yb <= ya {
				continue
			}
			top := ToRaylib(g.At(param(cx, ya)))
			bot := ToRaylib(g.At(param(cx, yb)))
			rl.DrawRectangleGradientV(int32(sx), int32(ya), gradientStrip, int32(math.Ceil(yb-ya)), top, bot)
		}
	}
}

// FillArea fills the region under a polyline down to baseline. The colour
// runs from top at y = 0 to bottom at the baseline.
func (s *Surface) FillArea(points []systems.Vec2, baseline float32, top, bottom systems.Color) {
	if len(points) < 2 || baseline <= 0 {
		return
	}
	grad := systems.Gradient{{Offset: 0, Color: top}, {Offset: 1, Color: bottom}}
	at := func(y float32) color.RGBA {
		return ToRaylib(grad.At(float64(y / baseline)))
	}

	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		low := max(a.Y, b.Y) // lower on screen
		if low < baseline {
			rl.DrawRectangleGradientV(int32(a.X), int32(low), int32(math.Ceil(float64(b.X-a.X))),
				int32(math.Ceil(float64(baseline-low))), at(low), at(baseline))
		}
		// Cap between the segment and the top of the column, counter-clockwise
		capColor := at((a.Y + b.Y) / 2)
		if a.Y < b.Y {
			rl.DrawTriangle(rl.NewVector2(a.X, a.Y), rl.NewVector2(a.X, low), rl.NewVector2(b.X, low), capColor)
		} else if b.Y < a.Y {
			rl.DrawTriangle(rl.NewVector2(b.X, b.Y), rl.NewVector2(a.X, low), rl.NewVector2(b.X, low), capColor)
		}
	}
}

// StrokeQuad strokes a quadratic Bézier curve.
func (s *Surface) StrokeQuad(p0, ctrl, p1 systems.Vec2, width float32, c systems.Color) {
	rl.DrawSplineSegmentBezierQuadratic(
		rl.NewVector2(p0.X, p0.Y),
		rl.NewVector2(ctrl.X, ctrl.Y),
		rl.NewVector2(p1.X, p1.Y),
		width, ToRaylib(c))
}

// StrokeLine strokes a straight segment.
func (s *Surface) StrokeLine(p0, p1 systems.Vec2, width float32, c systems.Color) {
	rl.DrawLineEx(rl.NewVector2(p0.X, p0.Y), rl.NewVector2(p1.X, p1.Y), width, ToRaylib(c))
}

// StrokeCircle strokes a circle outline.
func (s *Surface) StrokeCircle(x, y, r, width float32, c systems.Color) {
	half := width / 2
	rl.DrawRing(rl.NewVector2(x, y), max(0, r-half), r+half, 0, 360, 64, ToRaylib(c))
}

// FillSector fills a pie slice. Angles are radians clockwise from +x.
func (s *Surface) FillSector(x, y, r, from, to float32, c systems.Color) {
	const toDeg = 180 / math.Pi
	rl.DrawCircleSector(rl.NewVector2(x, y), r, from*toDeg, to*toDeg, 32, ToRaylib(c))
}
