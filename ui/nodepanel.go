package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resumefx/components"
	"github.com/pthm-cable/resumefx/renderer"
	"github.com/pthm-cable/resumefx/systems"
)

// NodePanel shows details of the selected graph node.
type NodePanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewNodePanel creates a node details panel.
func NewNodePanel(x, y, width int32) *NodePanel {
	return &NodePanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *NodePanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// NodeDetails returns the label/value rows shown for n.
func NodeDetails(n systems.GraphNode, links int) [][2]string {
	rows := [][2]string{{"Type", n.Kind.String()}}
	switch n.Kind {
	case components.KindSkill:
		rows = append(rows, [2]string{"Category", n.Category})
	case components.KindJob:
		rows = append(rows,
			[2]string{"Salary", fmt.Sprintf("$%dk", n.Salary/1000)},
			[2]string{"Demand", fmt.Sprintf("%d%%", n.Demand)},
		)
	}
	rows = append(rows, [2]string{"Links", fmt.Sprintf("%d", links)})
	if n.Pinned {
		rows = append(rows, [2]string{"Pinned", "yes"})
	}
	return rows
}

// Draw renders details for n with its link count.
func (p *NodePanel) Draw(n systems.GraphNode, links int) {
	r := p.renderer
	t := r.Theme
	rows := NodeDetails(n, links)

	height := t.Padding*2 + t.LineHeight + 4 + int32(len(rows))*t.LineHeight
	if n.Kind == components.KindJob {
		height += t.LineHeight + 2
	}
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + t.Padding
	y := p.y + t.Padding
	rl.DrawCircle(x+5, y+8, 5, renderer.ToRaylib(systems.NodeColor(n.Kind)))
	y = r.DrawTitle(x+16, y, n.Name)

	for _, row := range rows {
		y = r.DrawLabelValue(x, y, row[0], row[1])
	}
	if n.Kind == components.KindJob {
		r.DrawBar(x, y, "Demand", float32(n.Demand)/100, p.width-t.Padding*2, MatchColor(n.Demand))
	}
}

// SkillDetails returns the label/value rows shown for a skill tree node.
// requires holds the display names of its prerequisites.
func SkillDetails(n systems.SkillNode, requires []string) [][2]string {
	status := "locked"
	if n.Unlocked {
		status = "unlocked"
	}
	req := "none"
	if len(requires) > 0 {
		req = strings.Join(requires, ", ")
	}
	return [][2]string{
		{"Category", n.Category},
		{"Level", fmt.Sprintf("%d/%d", n.Level, n.MaxLevel)},
		{"Status", status},
		{"Requires", req},
	}
}

// DrawSkill renders details for a skill tree node.
func (p *NodePanel) DrawSkill(n systems.SkillNode, requires []string) {
	r := p.renderer
	t := r.Theme
	rows := SkillDetails(n, requires)

	height := t.Padding*2 + t.LineHeight + 4 + int32(len(rows)+2)*t.LineHeight + 2
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + t.Padding
	y := p.y + t.Padding
	rl.DrawCircle(x+5, y+8, 5, renderer.ToRaylib(n.Color))
	y = r.DrawTitle(x+16, y, n.Name)

	for _, row := range rows {
		y = r.DrawLabelValue(x, y, row[0], row[1])
	}
	y = r.DrawBar(x, y, "Progress", float32(n.Level)/float32(max(n.MaxLevel, 1)), p.width-t.Padding*2, MatchColor(n.Level*100/max(n.MaxLevel, 1)))
	rl.DrawText(n.Description, x, y, t.FontSize, t.MutedColor)
}
