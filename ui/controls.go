package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SceneEntry is one selectable scene in the picker.
type SceneEntry struct {
	Name     string
	KeyLabel string
}

// ScenePanel renders the scene picker with key bindings.
type ScenePanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewScenePanel creates a hidden scene picker.
func NewScenePanel(x, y, width int32) *ScenePanel {
	return &ScenePanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetVisible shows or hides the panel.
func (c *ScenePanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ScenePanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ScenePanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Height returns the panel height for n entries.
func (c *ScenePanel) Height(n int) int32 {
	t := c.renderer.Theme
	return int32(n)*(t.LineHeight+8) + t.Padding*2 + t.LineHeight + 4
}

// Draw renders the picker and returns the index of a clicked entry, or -1.
func (c *ScenePanel) Draw(entries []SceneEntry, active int) int {
	if !c.visible {
		return -1
	}
	r := c.renderer
	t := r.Theme

	r.DrawPanel(c.x, c.y, c.width, c.Height(len(entries)))
	y := r.DrawTitle(c.x+t.Padding, c.y+t.Padding, "Scenes")

	clicked := -1
	inner := c.width - t.Padding*2
	for i, e := range entries {
		bounds := rl.Rectangle{
			X:      float32(c.x + t.Padding),
			Y:      float32(y),
			Width:  float32(inner - 40),
			Height: float32(t.LineHeight + 4),
		}
		label := e.Name
		if i == active {
			label = "> " + label
		}
		if gui.Button(bounds, label) && i != active {
			clicked = i
		}
		r.DrawKeyHint(c.x+c.width-t.Padding, y+3, e.KeyLabel)
		y += t.LineHeight + 8
	}
	return clicked
}
