package systems

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/barneshut"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/resumefx/components"
	"github.com/pthm-cable/resumefx/config"
)

// Drag raises the layout temperature toward this target while a node is pinned.
const dragAlphaTarget = 0.3

// GraphParams configures the force layout.
type GraphParams struct {
	Width, Height  float64
	LinkDistance   float64
	ChargeStrength float64 // negative repels
	Theta          float64 // Barnes-Hut opening angle
	VelocityDecay  float64
	AlphaMin       float64
	AlphaTarget    float64
}

// DefaultGraphParams returns the stock layout configuration.
func DefaultGraphParams() GraphParams {
	return GraphParams{
		Width:          800,
		Height:         600,
		LinkDistance:   100,
		ChargeStrength: -300,
		Theta:          0.9,
		VelocityDecay:  0.4,
		AlphaMin:       0.001,
		AlphaTarget:    0,
	}
}

// GraphParamsFromConfig converts the graph section of cfg.
func GraphParamsFromConfig(cfg *config.Config) GraphParams {
	g := cfg.Graph
	return GraphParams{
		Width:          g.Width,
		Height:         g.Height,
		LinkDistance:   g.LinkDistance,
		ChargeStrength: g.ChargeStrength,
		Theta:          g.Theta,
		VelocityDecay:  g.VelocityDecay,
		AlphaMin:       g.AlphaMin,
		AlphaTarget:    g.AlphaTarget,
	}
}

// Link is a resolved edge between two node indices.
type Link struct {
	Source, Target int
	Kind           LinkKind
	Strength       float64
}

// GraphNode is a drawing snapshot of one node.
type GraphNode struct {
	components.Node
	X, Y     float64
	Radius   float32
	Pinned   bool
	Selected bool
}

// body adapts a node position to barneshut.Particle2.
type body struct {
	pos r2.Vec
}

func (b *body) Coord2() r2.Vec { return b.pos }
func (b *body) Mass() float64  { return 1 }

// ForceGraph lays out a small node-link network with a velocity-Verlet
// force simulation. Nodes live as ECS entities; the layout cools from
// alpha 1 toward AlphaTarget and stops once alpha drops below AlphaMin.
type ForceGraph struct {
	params GraphParams
	rng    *rand.Rand

	world   *ecs.World
	mapper  *ecs.Map4[components.Node, components.Position, components.Velocity, components.Pin]
	filter  *ecs.Filter3[components.Position, components.Velocity, components.Pin]
	nodeMap *ecs.Map1[components.Node]
	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	pinMap  *ecs.Map1[components.Pin]

	entities []ecs.Entity
	index    map[string]int
	links    []Link
	strength []float64 // per-link spring stiffness
	bias     []float64 // per-link share of the correction applied to the target

	alpha       float64
	alphaDecay  float64
	alphaTarget float64
	running     bool
	selected    int

	bodies    []*body
	particles []barneshut.Particle2
}

// NewForceGraph builds the graph from a dataset. Every link must reference
// known node ids.
func NewForceGraph(params GraphParams, nodes []NodeSpec, links []LinkSpec, rng *rand.Rand) (*ForceGraph, error) {
	world := ecs.NewWorld()
	g := &ForceGraph{
		params:  params,
		rng:     rng,
		world:   world,
		mapper:  ecs.NewMap4[components.Node, components.Position, components.Velocity, components.Pin](world),
		filter:  ecs.NewFilter3[components.Position, components.Velocity, components.Pin](world),
		nodeMap: ecs.NewMap1[components.Node](world),
		posMap:  ecs.NewMap1[components.Position](world),
		velMap:  ecs.NewMap1[components.Velocity](world),
		pinMap:  ecs.NewMap1[components.Pin](world),
		index:   make(map[string]int, len(nodes)),

		alpha:       1,
		alphaDecay:  1 - math.Pow(params.AlphaMin, 1.0/300),
		alphaTarget: params.AlphaTarget,
		running:     true,
		selected:    -1,
	}

	// Phyllotaxis seeding keeps initial positions distinct and deterministic
	initialAngle := math.Pi * (3 - math.Sqrt(5))
	for i, spec := range nodes {
		if _, dup := g.index[spec.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", spec.ID)
		}
		radius := 10 * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initialAngle
		node := components.Node{
			Index:    i,
			ID:       spec.ID,
			Name:     spec.Name,
			Kind:     spec.Kind,
			Category: spec.Category,
			Salary:   spec.Salary,
			Demand:   spec.Demand,
			Visible:  true,
		}
		pos := components.Position{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
		vel := components.Velocity{}
		pin := components.Pin{}
		g.entities = append(g.entities, g.mapper.NewEntity(&node, &pos, &vel, &pin))
		g.index[spec.ID] = i

		b := &body{pos: r2.Vec{X: pos.X, Y: pos.Y}}
		g.bodies = append(g.bodies, b)
		g.particles = append(g.particles, b)
	}

	degree := make([]int, len(nodes))
	for _, ls := range links {
		s, ok := g.index[ls.Source]
		if !ok {
			return nil, fmt.Errorf("link source %q: unknown node", ls.Source)
		}
		t, ok := g.index[ls.Target]
		if !ok {
			return nil, fmt.Errorf("link target %q: unknown node", ls.Target)
		}
		g.links = append(g.links, Link{Source: s, Target: t, Kind: ls.Kind, Strength: ls.Strength})
		degree[s]++
		degree[t]++
	}
	for _, l := range g.links {
		ds, dt := float64(degree[l.Source]), float64(degree[l.Target])
		g.strength = append(g.strength, 1/math.Min(ds, dt))
		g.bias = append(g.bias, ds/(ds+dt))
	}

	return g, nil
}

// NewCareerGraph builds the graph over the built-in career network.
func NewCareerGraph(params GraphParams, rng *rand.Rand) *ForceGraph {
	nodes, links := CareerNetwork()
	g, err := NewForceGraph(params, nodes, links, rng)
	if err != nil {
		panic(fmt.Sprintf("career network: %v", err))
	}
	return g
}

// Len returns the node count.
func (g *ForceGraph) Len() int { return len(g.entities) }

// Alpha returns the current layout temperature.
func (g *ForceGraph) Alpha() float64 { return g.alpha }

// Running reports whether the layout is still moving.
func (g *ForceGraph) Running() bool { return g.running }

// Params returns the layout configuration.
func (g *ForceGraph) Params() GraphParams { return g.params }

// Step runs one layout iteration and reports whether the layout is still
// running afterwards.
func (g *ForceGraph) Step() bool {
	if !g.running {
		return false
	}
	g.alpha += (g.alphaTarget - g.alpha) * g.alphaDecay

	g.applyLinks()
	g.applyCharge()
	g.applyCenter()
	g.integrate()

	if g.alpha < g.params.AlphaMin {
		g.running = false
	}
	return g.running
}

// Settle steps until the layout stops or maxSteps is reached and returns
// the number of steps taken.
func (g *ForceGraph) Settle(maxSteps int) int {
	n := 0
	for n < maxSteps && g.running {
		g.Step()
		n++
	}
	return n
}

// Reheat restarts a cooled layout at full temperature.
func (g *ForceGraph) Reheat() {
	g.alpha = 1
	g.running = true
}

// applyLinks pulls linked nodes toward the link distance.
func (g *ForceGraph) applyLinks() {
	for i, l := range g.links {
		sp, sv := g.posMap.Get(g.entities[l.Source]), g.velMap.Get(g.entities[l.Source])
		tp, tv := g.posMap.Get(g.entities[l.Target]), g.velMap.Get(g.entities[l.Target])

		x := tp.X + tv.X - sp.X - sv.X
		y := tp.Y + tv.Y - sp.Y - sv.Y
		if x == 0 {
			x = g.jiggle()
		}
		if y == 0 {
			y = g.jiggle()
		}
		d := math.Sqrt(x*x + y*y)
		k := (d - g.params.LinkDistance) / d * g.alpha * g.strength[i]
		x *= k
		y *= k

		b := g.bias[i]
		tv.X -= x * b
		tv.Y -= y * b
		sv.X += x * (1 - b)
		sv.Y += y * (1 - b)
	}
}

// applyCharge applies the many-body repulsion using a Barnes-Hut tree.
func (g *ForceGraph) applyCharge() {
	for i, e := range g.entities {
		p := g.posMap.Get(e)
		g.bodies[i].pos = r2.Vec{X: p.X, Y: p.Y}
	}
	plane, err := barneshut.NewPlane(g.particles)
	if err != nil {
		slog.Warn("charge force skipped", "error", err)
		return
	}
	for i, e := range g.entities {
		f := plane.ForceOn(g.bodies[i], g.params.Theta, g.charge)
		v := g.velMap.Get(e)
		v.X += f.X
		v.Y += f.Y
	}
}

// charge is the inverse-distance many-body force on p1; v points from p1
// toward p2 and m2 counts the nodes aggregated in p2.
func (g *ForceGraph) charge(_, _ barneshut.Particle2, _, m2 float64, v r2.Vec) r2.Vec {
	l := r2.Norm2(v)
	if l == 0 {
		return r2.Vec{}
	}
	if l < 1 {
		l = math.Sqrt(l)
	}
	return r2.Scale(m2*g.params.ChargeStrength*g.alpha/l, v)
}

// applyCenter translates all nodes so their mean sits on the viewport centre.
func (g *ForceGraph) applyCenter() {
	n := float64(len(g.entities))
	if n == 0 {
		return
	}
	var sx, sy float64
	query := g.filter.Query()
	for query.Next() {
		p, _, _ := query.Get()
		sx += p.X
		sy += p.Y
	}
	dx := sx/n - g.params.Width/2
	dy := sy/n - g.params.Height/2

	query = g.filter.Query()
	for query.Next() {
		p, _, _ := query.Get()
		p.X -= dx
		p.Y -= dy
	}
}

// integrate applies velocity decay and moves unpinned nodes.
func (g *ForceGraph) integrate() {
	keep := 1 - g.params.VelocityDecay
	query := g.filter.Query()
	for query.Next() {
		p, v, pin := query.Get()
		if pin.Active {
			p.X, p.Y = pin.X, pin.Y
			v.X, v.Y = 0, 0
			continue
		}
		v.X *= keep
		v.Y *= keep
		p.X += v.X
		p.Y += v.Y
	}
}

func (g *ForceGraph) jiggle() float64 {
	return (g.rng.Float64() - 0.5) * 1e-6
}

func (g *ForceGraph) lookup(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Position returns the layout position of a node.
func (g *ForceGraph) Position(id string) (x, y float64, ok bool) {
	i, ok := g.lookup(id)
	if !ok {
		return 0, 0, false
	}
	p := g.posMap.Get(g.entities[i])
	return p.X, p.Y, true
}

// NodeAt returns the id of the topmost visible node covering (x, y) in
// graph space.
func (g *ForceGraph) NodeAt(x, y float64) (string, bool) {
	for i := len(g.entities) - 1; i >= 0; i-- {
		e := g.entities[i]
		n := g.nodeMap.Get(e)
		if !n.Visible {
			continue
		}
		p := g.posMap.Get(e)
		r := float64(n.Kind.Radius())
		dx, dy := x-p.X, y-p.Y
		if dx*dx+dy*dy <= r*r {
			return n.ID, true
		}
	}
	return "", false
}

// Select marks a node as selected. An unknown id clears the selection.
func (g *ForceGraph) Select(id string) bool {
	i, ok := g.lookup(id)
	if !ok {
		g.selected = -1
		return false
	}
	g.selected = i
	return true
}

// ClearSelection deselects any node.
func (g *ForceGraph) ClearSelection() { g.selected = -1 }

// Selected returns a snapshot of the selected node.
func (g *ForceGraph) Selected() (GraphNode, bool) {
	if g.selected < 0 {
		return GraphNode{}, false
	}
	return g.snapshot(g.selected), true
}

// Pin fixes a node at (x, y) and warms the layout so neighbours follow.
func (g *ForceGraph) Pin(id string, x, y float64) bool {
	i, ok := g.lookup(id)
	if !ok {
		return false
	}
	pin := g.pinMap.Get(g.entities[i])
	pin.Active = true
	pin.X, pin.Y = x, y
	g.alphaTarget = dragAlphaTarget
	g.running = true
	return true
}

// Unpin releases a pinned node and lets the layout cool again.
func (g *ForceGraph) Unpin(id string) bool {
	i, ok := g.lookup(id)
	if !ok {
		return false
	}
	pin := g.pinMap.Get(g.entities[i])
	pin.Active = false
	g.alphaTarget = g.params.AlphaTarget
	return true
}

// Filter sets node visibility: kind is "all" or a node kind name, term is
// a case-insensitive substring of the node name or id. It returns the
// number of visible nodes. Hidden nodes still take part in the layout.
func (g *ForceGraph) Filter(kind, term string) int {
	want, byKind := components.ParseNodeKind(kind)
	term = strings.ToLower(strings.TrimSpace(term))
	visible := 0
	for _, e := range g.entities {
		n := g.nodeMap.Get(e)
		n.Visible = (!byKind || n.Kind == want) &&
			(term == "" ||
				strings.Contains(strings.ToLower(n.Name), term) ||
				strings.Contains(n.ID, term))
		if n.Visible {
			visible++
		}
	}
	return visible
}

func (g *ForceGraph) snapshot(i int) GraphNode {
	e := g.entities[i]
	n := g.nodeMap.Get(e)
	p := g.posMap.Get(e)
	return GraphNode{
		Node:     *n,
		X:        p.X,
		Y:        p.Y,
		Radius:   n.Kind.Radius(),
		Pinned:   g.pinMap.Get(e).Active,
		Selected: i == g.selected,
	}
}

// Nodes returns a snapshot of every node in dataset order.
func (g *ForceGraph) Nodes() []GraphNode {
	out := make([]GraphNode, len(g.entities))
	for i := range g.entities {
		out[i] = g.snapshot(i)
	}
	return out
}

// Links returns the resolved links.
func (g *ForceGraph) Links() []Link { return g.links }

// LinksOf returns the links touching a node.
func (g *ForceGraph) LinksOf(id string) []Link {
	i, ok := g.lookup(id)
	if !ok {
		return nil
	}
	var out []Link
	for _, l := range g.links {
		if l.Source == i || l.Target == i {
			out = append(out, l)
		}
	}
	return out
}

// View maps graph space onto the screen.
type View interface {
	WorldToScreen(wx, wy float32) (sx, sy float32)
	Scale() float32
}

// Render draws visible links then visible nodes through view.
func (g *ForceGraph) Render(s Surface, view View) {
	nodes := g.Nodes()
	scale := view.Scale()

	for _, l := range g.links {
		a, b := &nodes[l.Source], &nodes[l.Target]
		if !a.Visible || !b.Visible {
			continue
		}
		ax, ay := view.WorldToScreen(float32(a.X), float32(a.Y))
		bx, by := view.WorldToScreen(float32(b.X), float32(b.Y))
		s.StrokeLine(Vec2{X: ax, Y: ay}, Vec2{X: bx, Y: by},
			float32(l.Strength*3)*scale, l.Kind.Color().WithAlpha(0.6))
	}

	white := RGBA8(255, 255, 255, 1)
	for i := range nodes {
		n := &nodes[i]
		if !n.Visible {
			continue
		}
		x, y := view.WorldToScreen(float32(n.X), float32(n.Y))
		r := n.Radius * scale
		outline := float32(2)
		if n.Selected {
			outline = 4
		}
		s.FillCircle(x, y, r+outline*scale, white)
		s.FillCircle(x, y, r, NodeColor(n.Kind))
	}
}
