package systems

import "math"

// Vec2 is a 2D point or vector in screen pixels.
type Vec2 struct {
	X, Y float32
}

// Bounds defines the viewport a system lives in.
type Bounds struct {
	Width, Height float32
}

// Valid reports whether both dimensions have been measured.
func (b Bounds) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Vec2 {
	return Vec2{X: b.Width / 2, Y: b.Height / 2}
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float64 value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// sinf is math.Sin for float32 callers.
func sinf(v float64) float32 {
	return float32(math.Sin(v))
}

// wrapHue maps any angle in degrees onto [0, 360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
