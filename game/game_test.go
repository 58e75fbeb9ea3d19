package game

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/resumefx/audio"
	"github.com/pthm-cable/resumefx/config"
	"github.com/pthm-cable/resumefx/systems"
)

func init() {
	config.MustInit("")
}

// recordPlayer captures played cues.
type recordPlayer struct {
	*audio.Silent
	cues []audio.Cue
}

func newRecordPlayer() *recordPlayer {
	return &recordPlayer{Silent: audio.NewSilent(audio.DefaultVolume)}
}

func (p *recordPlayer) Play(c audio.Cue, _ float64) {
	p.cues = append(p.cues, c)
}

func newHeadless(t *testing.T, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessRunsEveryScene(t *testing.T) {
	for _, name := range SceneNames {
		t.Run(name, func(t *testing.T) {
			g := newHeadless(t, Options{Seed: 1, Scene: name})
			if !g.Mounted() {
				t.Fatal("scene did not mount")
			}
			if got := g.Scene().Name(); got != name {
				t.Fatalf("Scene().Name() = %q, want %q", got, name)
			}

			for i := 0; i < 30; i++ {
				g.UpdateHeadless()
			}
			if g.Tick() != 30 {
				t.Errorf("Tick = %d, want 30", g.Tick())
			}

			rs := g.surface.(*recordSurface)
			if rs.calls+rs.clears == 0 {
				t.Error("scene drew nothing")
			}
		})
	}
}

func TestUnknownScene(t *testing.T) {
	_, err := NewGameWithOptions(Options{Headless: true, Scene: "nope"})
	if err == nil {
		t.Fatal("expected error for unknown scene")
	}
}

func TestZeroViewportDoesNotStart(t *testing.T) {
	g := newHeadless(t, Options{Seed: 1, Scene: SceneParticles, Width: 800, Height: 0})
	if g.Mounted() {
		t.Fatal("scene mounted with zero height")
	}

	g.UpdateHeadless()
	ps := g.Scene().(*particleScene)
	if ps.field.Len() != 0 {
		t.Errorf("population = %d before mount, want 0", ps.field.Len())
	}

	g.Resize(800, 600)
	if !g.Mounted() {
		t.Fatal("scene did not mount after resize")
	}
	if ps.field.Len() != 80 {
		t.Errorf("population = %d, want 80", ps.field.Len())
	}
}

func TestResizeClampsParticles(t *testing.T) {
	g := newHeadless(t, Options{Seed: 3, Scene: SceneParticles, Width: 1000, Height: 800})
	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}

	g.Resize(300, 200)
	ps := g.Scene().(*particleScene)
	for i, p := range ps.field.Particles() {
		if p.Pos.X < 0 || p.Pos.X > 300 || p.Pos.Y < 0 || p.Pos.Y > 200 {
			t.Fatalf("particle %d at (%v, %v) outside 300x200", i, p.Pos.X, p.Pos.Y)
		}
	}
	if rs := g.surface.(*recordSurface); rs.bounds.Width != 300 {
		t.Errorf("surface width = %v, want 300", rs.bounds.Width)
	}
}

func TestSwitchSceneUnmountsPrevious(t *testing.T) {
	player := newRecordPlayer()
	g := newHeadless(t, Options{Seed: 1, Scene: SceneParticles, Audio: player})
	ps := g.Scene().(*particleScene)

	graphIdx, _ := SceneIndex(SceneGraph)
	if err := g.SwitchScene(graphIdx); err != nil {
		t.Fatalf("SwitchScene: %v", err)
	}
	if ps.field != nil {
		t.Error("particle scene still holds its field after switching away")
	}
	if g.Scene().Name() != SceneGraph || !g.Mounted() {
		t.Errorf("active = %q mounted=%v", g.Scene().Name(), g.Mounted())
	}
	if !slices.Contains(player.cues, audio.CueWhoosh) {
		t.Error("scene switch did not play whoosh")
	}

	// Switching to the active scene is a no-op
	n := len(player.cues)
	if err := g.SwitchScene(graphIdx); err != nil {
		t.Fatal(err)
	}
	if len(player.cues) != n {
		t.Error("re-selecting the active scene played a cue")
	}

	if err := g.SwitchScene(len(SceneNames)); err == nil {
		t.Error("expected out of range error")
	}
}

func TestNextSceneWraps(t *testing.T) {
	g := newHeadless(t, Options{Seed: 1, Scene: SceneMeshes})
	g.NextScene()
	if got := g.Scene().Name(); got != SceneParticles {
		t.Errorf("after wrap scene = %q, want %q", got, SceneParticles)
	}
	g.NextScene()
	if got := g.Scene().Name(); got != SceneAurora {
		t.Errorf("next scene = %q, want %q", got, SceneAurora)
	}
}

func TestPauseFreezesScene(t *testing.T) {
	g := newHeadless(t, Options{Seed: 5, Scene: SceneParticles})
	g.UpdateHeadless()

	ps := g.Scene().(*particleScene)
	before := slices.Clone(ps.field.Particles())

	g.TogglePause()
	for i := 0; i < 5; i++ {
		g.UpdateHeadless()
	}
	for i, p := range ps.field.Particles() {
		if p.Pos != before[i].Pos || p.Age != before[i].Age {
			t.Fatalf("particle %d changed while paused", i)
		}
	}

	g.TogglePause()
	g.UpdateHeadless()
	if ps.field.Particles()[0].Age == before[0].Age {
		t.Error("particle did not age after resume")
	}
}

func TestMuteAndVolume(t *testing.T) {
	g := newHeadless(t, Options{Seed: 1, Audio: audio.NewSilent(0.3)})

	if !g.ToggleMute() {
		t.Error("first ToggleMute should mute")
	}
	if g.ToggleMute() {
		t.Error("second ToggleMute should unmute")
	}

	g.AdjustVolume(volumeStep)
	if v := g.Audio().Volume(); math.Abs(v-0.4) > 1e-9 {
		t.Errorf("volume = %v, want 0.4", v)
	}
	for i := 0; i < 10; i++ {
		g.AdjustVolume(volumeStep)
	}
	if v := g.Audio().Volume(); v != 1 {
		t.Errorf("volume = %v, want clamp to 1", v)
	}
	for i := 0; i < 20; i++ {
		g.AdjustVolume(-volumeStep)
	}
	if v := g.Audio().Volume(); v != 0 {
		t.Errorf("volume = %v, want clamp to 0", v)
	}
}

func TestGraphDragPinsNode(t *testing.T) {
	player := newRecordPlayer()
	g := newHeadless(t, Options{Seed: 1, Scene: SceneGraph, Audio: player})
	gs := g.Scene().(*graphScene)

	wx, wy, ok := gs.graph.Position("react")
	if !ok {
		t.Fatal("react node missing")
	}
	sx, sy := gs.cam.WorldToScreen(float32(wx), float32(wy))
	ptr := systems.Pointer{X: sx, Y: sy, Valid: true}
	dt := g.cfg.Derived.FrameStep

	g.step(Input{Pointer: ptr, Pressed: true, Down: true, Dt: dt})

	sel, ok := gs.graph.Selected()
	if !ok || sel.ID != "react" {
		t.Fatalf("selected = %q (%v), want react", sel.ID, ok)
	}
	if !sel.Pinned {
		t.Error("dragged node is not pinned")
	}
	if !slices.Contains(player.cues, audio.CueHover) || !slices.Contains(player.cues, audio.CueClick) {
		t.Errorf("cues = %v, want hover and click", player.cues)
	}

	// Drag 50px right: the pin follows the pointer in graph space
	ptr.X += 50
	g.step(Input{Pointer: ptr, Down: true, Dt: dt})
	x, _, _ := gs.graph.Position("react")
	if math.Abs(x-(wx+50)) > 1e-3 {
		t.Errorf("dragged x = %v, want %v", x, wx+50)
	}

	g.step(Input{Pointer: ptr, Released: true, Dt: dt})
	sel, _ = gs.graph.Selected()
	if sel.Pinned {
		t.Error("node still pinned after release")
	}
}

func TestGraphFilterKey(t *testing.T) {
	g := newHeadless(t, Options{Seed: 1, Scene: SceneGraph})
	gs := g.Scene().(*graphScene)

	g.step(Input{Keys: []int32{'F'}, Dt: g.cfg.Derived.FrameStep})
	if gs.filter != 1 {
		t.Fatalf("filter index = %d, want 1", gs.filter)
	}
	visible := 0
	for _, n := range gs.graph.Nodes() {
		if n.Visible {
			visible++
		}
	}
	if visible != 6 {
		t.Errorf("visible skills = %d, want 6", visible)
	}
}

func TestMeshesSelectAndOrbit(t *testing.T) {
	player := newRecordPlayer()
	g := newHeadless(t, Options{Seed: 1, Scene: SceneMeshes, Width: 800, Height: 600})
	ms := g.Scene().(*meshScene)
	dt := g.cfg.Derived.FrameStep

	html, ok := ms.mesh.Skill("html")
	if !ok {
		t.Fatal("html skill missing")
	}
	p, _, ok := ms.mesh.Camera().Project(html.Pos, g.bounds)
	if !ok {
		t.Fatal("html skill behind camera")
	}
	g.step(Input{Pointer: systems.Pointer{X: p.X, Y: p.Y, Valid: true}, Pressed: true, Down: true, Dt: dt})

	sel, ok := ms.mesh.Selected()
	if !ok || sel.ID != "html" {
		t.Fatalf("selected = %q (%v), want html", sel.ID, ok)
	}
	if !slices.Contains(player.cues, audio.CueHover) || !slices.Contains(player.cues, audio.CueClick) {
		t.Errorf("cues = %v, want hover and click", player.cues)
	}
	g.step(Input{Pointer: systems.Pointer{X: p.X, Y: p.Y, Valid: true}, Released: true, Dt: dt})

	// Pressing empty space clears the selection and drags the camera
	corner := systems.Pointer{X: 2, Y: 2, Valid: true}
	g.step(Input{Pointer: corner, Pressed: true, Down: true, Dt: dt})
	if _, ok := ms.mesh.Selected(); ok {
		t.Error("selection survived a press on empty space")
	}
	before := ms.mesh.Camera().Position
	g.step(Input{Pointer: corner, Delta: systems.Vec2{X: 100}, Down: true, Dt: dt})
	if d := r3.Norm(r3.Sub(ms.mesh.Camera().Position, before)); d < 1 {
		t.Errorf("drag moved camera by %v, want an orbit", d)
	}
	g.step(Input{Pointer: corner, Released: true, Dt: dt})
	if ms.orbiting {
		t.Error("still orbiting after release")
	}

	g.UpdateHeadless()
	rs := g.surface.(*recordSurface)
	if rs.passes == 0 || rs.calls3 == 0 {
		t.Errorf("3D passes = %d, draws = %d", rs.passes, rs.calls3)
	}
}

func TestChartsCaptionPlaysCues(t *testing.T) {
	player := newRecordPlayer()
	g := newHeadless(t, Options{Seed: 1, Scene: SceneCharts, Audio: player})
	cs := g.Scene().(*chartsScene)

	for i := 0; i < 400; i++ {
		g.UpdateHeadless()
	}
	if !cs.caption.Done() {
		t.Fatalf("caption not done: %q", cs.caption.Visible())
	}
	if cs.caption.Visible() != chartCaption {
		t.Errorf("caption = %q", cs.caption.Visible())
	}
	if !slices.Contains(player.cues, audio.CueTypewriter) {
		t.Error("no typewriter cues played")
	}
	if player.cues[len(player.cues)-1] != audio.CueSuccess {
		t.Errorf("last cue = %v, want success", player.cues[len(player.cues)-1])
	}
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	return n
}

func TestHeadlessTelemetryOutput(t *testing.T) {
	cfg := config.Cfg()
	old := cfg.Telemetry.LogInterval
	cfg.Telemetry.LogInterval = 10
	defer func() { cfg.Telemetry.LogInterval = old }()

	root := t.TempDir()
	g, err := NewGameWithOptions(Options{Seed: 1, Scene: SceneParticles, Headless: true, OutputDir: root})
	if err != nil {
		t.Fatal(err)
	}
	dir := g.outputManager.Dir()
	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	if n := countLines(t, filepath.Join(dir, "perf.csv")); n != 4 {
		t.Errorf("perf.csv lines = %d, want header + 3", n)
	}
	if n := countLines(t, filepath.Join(dir, "field.csv")); n != 4 {
		t.Errorf("field.csv lines = %d, want header + 3", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot: %v", err)
	}
}
