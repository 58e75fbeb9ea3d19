package game

import (
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resumefx/audio"
	"github.com/pthm-cable/resumefx/camera"
	"github.com/pthm-cable/resumefx/renderer"
	"github.com/pthm-cable/resumefx/systems"
	"github.com/pthm-cable/resumefx/telemetry"
	"github.com/pthm-cable/resumefx/ui"
)

// particleScene hosts the interactive particle field.
type particleScene struct {
	deps  sceneDeps
	field *systems.ParticleField
	nowMs float64
}

func newParticleScene(d sceneDeps) *particleScene {
	return &particleScene{deps: d}
}

func (s *particleScene) Name() string { return SceneParticles }

func (s *particleScene) Mount(b systems.Bounds) bool {
	s.field = systems.NewParticleField(systems.FieldParamsFromConfig(s.deps.cfg), s.deps.rng)
	s.nowMs = 0
	return s.field.Mount(b)
}

func (s *particleScene) Unmount() {
	if s.field != nil {
		s.field.Unmount()
		s.field = nil
	}
}

func (s *particleScene) Resize(b systems.Bounds) {
	if s.field != nil {
		s.field.Resize(b)
	}
}

func (s *particleScene) Update(in Input) {
	s.nowMs += float64(in.Dt) / float64(time.Millisecond)
	s.field.Tick(in.Pointer)
}

func (s *particleScene) Draw(surf systems.Surface) {
	s.deps.perf.StartPhase(telemetry.PhaseDraw)
	s.field.RenderParticles(surf)
	s.deps.perf.StartPhase(telemetry.PhaseConnections)
	s.field.RenderConnections(surf, s.nowMs)
}

func (s *particleScene) FieldStats(frame int64) telemetry.FieldStats {
	return telemetry.ComputeFieldStats(frame, s.field.Particles(), s.field.LastConnections())
}

// backgroundScene hosts one procedural background variant.
type backgroundScene struct {
	deps    sceneDeps
	variant systems.BackgroundVariant
	bg      *systems.Background
}

func newBackgroundScene(v systems.BackgroundVariant, d sceneDeps) *backgroundScene {
	return &backgroundScene{deps: d, variant: v}
}

func (s *backgroundScene) Name() string { return s.variant.String() }

func (s *backgroundScene) Mount(b systems.Bounds) bool {
	// A fresh animator restarts the sequence from t = 0
	s.bg = systems.NewBackground(s.variant, systems.BackgroundParamsFromConfig(s.deps.cfg))
	return s.bg.Mount(b)
}

func (s *backgroundScene) Unmount() {
	if s.bg != nil {
		s.bg.Unmount()
		s.bg = nil
	}
}

func (s *backgroundScene) Resize(b systems.Bounds) {
	if s.bg != nil {
		s.bg.Resize(b)
	}
}

func (s *backgroundScene) Update(Input) {
	s.bg.Tick()
}

func (s *backgroundScene) Draw(surf systems.Surface) {
	s.deps.perf.StartPhase(telemetry.PhaseBackground)
	s.bg.Render(surf)
}

// starfieldScene hosts the twinkling starfield.
type starfieldScene struct {
	deps  sceneDeps
	stars *systems.Starfield
}

func newStarfieldScene(d sceneDeps) *starfieldScene {
	return &starfieldScene{deps: d}
}

func (s *starfieldScene) Name() string { return SceneStarfield }

func (s *starfieldScene) Mount(b systems.Bounds) bool {
	sc := s.deps.cfg.Starfield
	s.stars = systems.NewStarfield(sc.Count, float32(sc.Band), s.deps.rng)
	return s.stars.Mount(b)
}

func (s *starfieldScene) Unmount() {
	if s.stars != nil {
		s.stars.Unmount()
		s.stars = nil
	}
}

func (s *starfieldScene) Resize(b systems.Bounds) {
	if s.stars != nil {
		s.stars.Resize(b)
	}
}

func (s *starfieldScene) Update(Input) {
	s.stars.Tick()
}

func (s *starfieldScene) Draw(surf systems.Surface) {
	s.deps.perf.StartPhase(telemetry.PhaseBackground)
	s.stars.Render(surf)
}

// graphFilters is the order the filter key cycles through.
var graphFilters = []string{"all", "skill", "job", "company"}

// labelCull is the world-space margin kept around the view when culling labels.
const labelCull = 60

var graphBackground = systems.RGBA8(0x11, 0x18, 0x27, 1)

// graphScene hosts the career network with drag, pan and zoom.
type graphScene struct {
	deps   sceneDeps
	graph  *systems.ForceGraph
	cam    *camera.Camera
	panel  *ui.NodePanel
	bounds systems.Bounds

	filter   int
	hover    string
	dragging string
	panning  bool
}

func newGraphScene(d sceneDeps) *graphScene {
	return &graphScene{deps: d, panel: ui.NewNodePanel(0, 0, 220)}
}

func (s *graphScene) Name() string { return SceneGraph }

func (s *graphScene) Mount(b systems.Bounds) bool {
	if !b.Valid() {
		return false
	}
	params := systems.GraphParamsFromConfig(s.deps.cfg)
	s.graph = systems.NewCareerGraph(params, s.deps.rng)
	s.cam = camera.New(b.Width, b.Height, float32(params.Width), float32(params.Height))
	s.bounds = b
	s.filter = 0
	s.hover, s.dragging, s.panning = "", "", false
	return true
}

func (s *graphScene) Unmount() {
	s.graph = nil
	s.cam = nil
}

func (s *graphScene) Resize(b systems.Bounds) {
	s.bounds = b
	if s.cam != nil {
		s.cam.Resize(b.Width, b.Height)
	}
}

func (s *graphScene) Update(in Input) {
	switch {
	case in.KeyPressed(rl.KeyF):
		s.filter = (s.filter + 1) % len(graphFilters)
		s.graph.Filter(graphFilters[s.filter], "")
	case in.KeyPressed(rl.KeyR):
		s.graph.Reheat()
	case in.KeyPressed(rl.KeyHome):
		s.cam.Reset()
	}

	if in.Pointer.Valid {
		s.handlePointer(in)
	}
	s.graph.Step()
}

func (s *graphScene) handlePointer(in Input) {
	wx, wy := s.cam.ScreenToWorld(in.Pointer.X, in.Pointer.Y)
	id, hit := s.graph.NodeAt(float64(wx), float64(wy))
	if hit && id != s.hover && s.dragging == "" {
		s.deps.audio.Play(audio.CueHover, audio.UseDefault)
	}
	if !hit {
		id = ""
	}
	s.hover = id

	switch {
	case in.Pressed && hit:
		s.dragging = id
		s.graph.Select(id)
		s.graph.Pin(id, float64(wx), float64(wy))
		s.deps.audio.Play(audio.CueClick, audio.UseDefault)
	case in.Pressed:
		s.panning = true
		s.graph.ClearSelection()
	case in.Down && s.dragging != "":
		s.graph.Pin(s.dragging, float64(wx), float64(wy))
	case in.Down && s.panning:
		s.cam.Pan(in.Delta.X, in.Delta.Y)
	}

	if in.Released {
		if s.dragging != "" {
			s.graph.Unpin(s.dragging)
		}
		s.dragging = ""
		s.panning = false
	}

	if in.Wheel != 0 {
		s.cam.ZoomAt(in.Pointer.X, in.Pointer.Y, 1+in.Wheel*0.1)
	}
}

func (s *graphScene) Draw(surf systems.Surface) {
	s.deps.perf.StartPhase(telemetry.PhaseDraw)
	surf.Clear(graphBackground)
	s.graph.Render(surf, s.cam)
}

func (s *graphScene) DrawOverlay() {
	nodes := s.graph.Nodes()
	onScreen := nodes[:0]
	for _, n := range nodes {
		if s.cam.IsVisible(float32(n.X), float32(n.Y), labelCull) {
			onScreen = append(onScreen, n)
		}
	}
	renderer.DrawNodeLabels(onScreen, s.cam)

	hint := "Filter: " + graphFilters[s.filter] + "  [F] filter  [R] reheat  [Home] reset view"
	rl.DrawText(hint, 10, int32(s.bounds.Height)-45, 12, rl.Gray)

	n, ok := s.graph.Selected()
	if !ok {
		return
	}
	s.panel.SetPosition(int32(s.bounds.Width)-230, 10)
	s.panel.Draw(n, len(s.graph.LinksOf(n.ID)))
}

const chartCaption = "Profile views are up 340% since January. Keep your skills section current."

var chartsBackground = systems.RGBA8(0x0b, 0x10, 0x1e, 1)

// chartsScene hosts the animated line and radial charts.
type chartsScene struct {
	deps    sceneDeps
	line    *systems.LineChart
	radial  *systems.RadialChart
	caption *ui.Typewriter
	bounds  systems.Bounds
	elapsed time.Duration
}

func newChartsScene(d sceneDeps) *chartsScene {
	opts := ui.DefaultTypewriterOptions()
	opts.Delay = 2500 * time.Millisecond
	opts.OnKey = ui.TypewriterSound(d.audio, d.rng)
	opts.OnComplete = func() {
		d.audio.Play(audio.CueSuccess, audio.UseDefault)
	}
	return &chartsScene{
		deps:    d,
		line:    systems.NewLineChart(systems.ProfileActivity()),
		radial:  systems.NewRadialChart(systems.SkillDistribution()),
		caption: ui.NewTypewriter("", opts, d.rng),
	}
}

func (s *chartsScene) Name() string { return SceneCharts }

func (s *chartsScene) Mount(b systems.Bounds) bool {
	if !b.Valid() {
		return false
	}
	s.bounds = b
	s.replay()
	return true
}

func (s *chartsScene) replay() {
	s.elapsed = 0
	s.caption.Reset(chartCaption)
}

func (s *chartsScene) Unmount() {}

func (s *chartsScene) Resize(b systems.Bounds) {
	s.bounds = b
}

func (s *chartsScene) Update(in Input) {
	if in.KeyPressed(rl.KeyR) {
		s.replay()
		return
	}
	s.elapsed += in.Dt
	s.caption.Advance(in.Dt)
}

// lineRect is the line chart plot area: the left half minus axis margins.
func (s *chartsScene) lineRect() systems.Rect {
	return systems.Rect{
		X: 60,
		Y: 100,
		W: s.bounds.Width/2 - 100,
		H: s.bounds.Height - 220,
	}
}

// radialLayout returns the radial chart centre and outer radius.
func (s *chartsScene) radialLayout() (cx, cy, r float32) {
	r = float32(math.Min(float64(s.bounds.Width)*0.18, float64(s.bounds.Height)*0.3))
	return s.bounds.Width * 0.75, s.bounds.Height/2 + 20, r
}

func (s *chartsScene) Draw(surf systems.Surface) {
	s.deps.perf.StartPhase(telemetry.PhaseDraw)
	surf.Clear(chartsBackground)
	s.line.Render(surf, s.lineRect(), s.elapsed)
	cx, cy, r := s.radialLayout()
	s.radial.Render(surf, cx, cy, r, s.elapsed)
}

func (s *chartsScene) DrawOverlay() {
	rect := s.lineRect()
	renderer.DrawLineChartAxes(s.line, rect)
	renderer.DrawChartLegend(s.line.Project(rect), rect.X+rect.W-110, rect.Y-40)

	cx, cy, r := s.radialLayout()
	renderer.DrawRadialLabels(s.radial, cx, cy, r)

	s.caption.Draw(60, int32(s.bounds.Height)-80, 16, rl.RayWhite)
}

// meshScene hosts the floating meshes and the 3D skill tree.
type meshScene struct {
	deps     sceneDeps
	mesh     *systems.MeshScene
	panel    *ui.NodePanel
	bounds   systems.Bounds
	orbiting bool
}

func newMeshScene(d sceneDeps) *meshScene {
	return &meshScene{deps: d, panel: ui.NewNodePanel(0, 0, 260)}
}

func (s *meshScene) Name() string { return SceneMeshes }

func (s *meshScene) Mount(b systems.Bounds) bool {
	s.mesh = systems.NewMeshScene(systems.MeshParamsFromConfig(s.deps.cfg), s.deps.rng)
	s.bounds = b
	s.orbiting = false
	return s.mesh.Mount(b)
}

func (s *meshScene) Unmount() {
	if s.mesh != nil {
		s.mesh.Unmount()
		s.mesh = nil
	}
}

func (s *meshScene) Resize(b systems.Bounds) {
	s.bounds = b
	if s.mesh != nil {
		s.mesh.Resize(b)
	}
}

func (s *meshScene) Update(in Input) {
	if in.KeyPressed(rl.KeyHome) {
		s.mesh.ResetView()
	}
	if in.Pointer.Valid {
		s.handlePointer(in)
	}
	s.mesh.Tick(in.Dt)
}

func (s *meshScene) handlePointer(in Input) {
	i, hit := s.mesh.SkillAt(in.Pointer.X, in.Pointer.Y)
	if !hit {
		i = -1
	}
	if hit && i != s.mesh.Hovered() && !s.orbiting {
		s.deps.audio.Play(audio.CueHover, audio.UseDefault)
	}
	s.mesh.SetHover(i)

	switch {
	case in.Pressed && hit:
		s.mesh.Select(i)
		s.deps.audio.Play(audio.CueClick, audio.UseDefault)
	case in.Pressed:
		s.orbiting = true
		s.mesh.Select(-1)
	case in.Down && s.orbiting:
		s.mesh.Orbit(in.Delta.X, in.Delta.Y)
	}
	if in.Released {
		s.orbiting = false
	}
}

func (s *meshScene) Draw(surf systems.Surface) {
	s.deps.perf.StartPhase(telemetry.PhaseDraw)
	s.mesh.Render(surf)
}

func (s *meshScene) DrawOverlay() {
	renderer.DrawSkillLabels(s.mesh, s.bounds)

	hint := "[Drag] orbit  [Click] select skill  [Home] reset view"
	rl.DrawText(hint, 10, int32(s.bounds.Height)-45, 12, rl.Gray)

	n, ok := s.mesh.Selected()
	if !ok {
		return
	}
	var requires []string
	for _, id := range n.Prerequisites {
		if pre, ok := s.mesh.Skill(id); ok {
			requires = append(requires, pre.Name)
		}
	}
	s.panel.SetPosition(int32(s.bounds.Width)-270, 10)
	s.panel.DrawSkill(n, requires)
}
