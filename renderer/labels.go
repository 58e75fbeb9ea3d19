package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resumefx/systems"
)

const (
	labelFont    = 10
	axisFont     = 12
	nodeLabelGap = 25
)

var (
	labelColor = rl.NewColor(243, 244, 246, 255)
	axisColor  = rl.NewColor(156, 163, 175, 255)
)

// drawCentered draws text centred horizontally on x.
func drawCentered(text string, x, y float32, size int32, c rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, int32(x)-w/2, int32(y), size, c)
}

// DrawNodeLabels writes each visible node's name below it.
func DrawNodeLabels(nodes []systems.GraphNode, view systems.View) {
	for i := range nodes {
		n := &nodes[i]
		if !n.Visible {
			continue
		}
		x, y := view.WorldToScreen(float32(n.X), float32(n.Y))
		drawCentered(n.Name, x, y+nodeLabelGap*view.Scale()-labelFont/2, labelFont, labelColor)
	}
}

// DrawLineChartAxes writes month labels under r and value labels left of it.
func DrawLineChartAxes(c *systems.LineChart, r systems.Rect) {
	for _, t := range c.XTicks(r) {
		drawCentered(t.Label, t.Pos, r.Y+r.H+8, axisFont, axisColor)
	}
	for _, t := range c.YTicks(r, 5) {
		w := rl.MeasureText(t.Label, axisFont)
		rl.DrawText(t.Label, int32(r.X)-w-8, int32(t.Pos)-axisFont/2, axisFont, axisColor)
	}
}

// DrawRadialLabels writes each skill name outside its bar.
func DrawRadialLabels(c *systems.RadialChart, cx, cy, radius float32) {
	for _, b := range c.Bars(radius) {
		p := b.LabelAnchor(cx, cy, radius)
		drawCentered(b.Label, p.X, p.Y-labelFont/2, labelFont, labelColor)
	}
}

// DrawChartLegend draws a swatch and name for each series starting at (x, y).
func DrawChartLegend(series []systems.Series, x, y float32) {
	for i, s := range series {
		yy := int32(y) + int32(i)*16
		rl.DrawRectangle(int32(x), yy+2, 10, 10, ToRaylib(s.Color))
		rl.DrawText(s.Name, int32(x)+16, yy, axisFont, axisColor)
	}
}

// Skill label offsets in world units above and below a node.
const skillLabelOffset = 0.6

var levelColor = rl.NewColor(0x4a, 0xde, 0x80, 255)

// DrawSkillLabels writes each skill's name under its node and, once
// unlocked, its level above it.
func DrawSkillLabels(m *systems.MeshScene, b systems.Bounds) {
	cam := m.Camera()
	for _, n := range m.Skills() {
		below := n.Pos
		below.Y -= skillLabelOffset
		if p, _, ok := cam.Project(below, b); ok {
			drawCentered(n.Name, p.X, p.Y-axisFont/2, axisFont, labelColor)
		}
		if !n.Unlocked {
			continue
		}
		above := n.Pos
		above.Y += skillLabelOffset
		if p, _, ok := cam.Project(above, b); ok {
			drawCentered(fmt.Sprintf("%d/%d", n.Level, n.MaxLevel), p.X, p.Y-labelFont/2, labelFont, levelColor)
		}
	}
}
