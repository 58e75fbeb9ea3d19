package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Canvas is an offscreen render target that keeps its pixels between
// frames, so scenes that fade instead of clearing leave trails.
type Canvas struct {
	target      rl.RenderTexture2D
	surface     *Surface
	w, h        int32
	initialized bool
}

// NewCanvas creates a canvas; GPU resources are allocated lazily.
func NewCanvas(w, h int32) *Canvas {
	return &Canvas{
		surface: NewSurface(float32(w), float32(h)),
		w:       w,
		h:       h,
	}
}

// Init allocates the render texture (must be called after raylib window is created).
func (c *Canvas) Init() {
	if c.initialized {
		return
	}
	c.target = rl.LoadRenderTexture(c.w, c.h)
	rl.BeginTextureMode(c.target)
	rl.ClearBackground(rl.Black)
	rl.EndTextureMode()
	c.initialized = true
}

// Resize reallocates the target. Previous contents are discarded.
func (c *Canvas) Resize(w, h int32) {
	if w == c.w && h == c.h {
		return
	}
	c.Unload()
	c.w, c.h = w, h
	c.surface.SetSize(float32(w), float32(h))
}

// Begin redirects drawing into the canvas and returns its surface.
func (c *Canvas) Begin() *Surface {
	if !c.initialized {
		c.Init()
	}
	rl.BeginTextureMode(c.target)
	return c.surface
}

// End restores drawing to the screen.
func (c *Canvas) End() {
	rl.EndTextureMode()
}

// Present draws the canvas to the screen at the origin.
func (c *Canvas) Present() {
	if !c.initialized {
		return
	}
	// Render textures are stored bottom-up
	src := rl.NewRectangle(0, 0, float32(c.w), -float32(c.h))
	rl.DrawTextureRec(c.target.Texture, src, rl.Vector2{}, rl.White)
}

// Unload frees resources.
func (c *Canvas) Unload() {
	if c.initialized {
		rl.UnloadRenderTexture(c.target)
		c.initialized = false
	}
}
