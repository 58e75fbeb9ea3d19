package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/resumefx/systems"
	"github.com/pthm-cable/resumefx/telemetry"
	"github.com/pthm-cable/resumefx/ui"
)

const controlsHint = "[1-7/Tab] scene  [S] scenes  [Space] pause  [M] mute  [+/-] volume  [P] perf  [F11] fullscreen"

// Update samples input and advances the active scene by one frame.
func (g *Game) Update() {
	g.perf.StartFrame()
	g.handleInput()
	g.step(g.sampleInput())
}

// Draw renders the active scene into the canvas, presents it, then draws
// the scene overlay and UI on top.
func (g *Game) Draw() {
	if g.mounted {
		surf := g.canvas.Begin()
		g.perf.StartPhase(telemetry.PhaseDraw)
		g.scenes[g.active].Draw(surf)
		g.canvas.End()
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	g.canvas.Present()

	if ov, ok := g.scenes[g.active].(Overlay); ok && g.mounted {
		ov.DrawOverlay()
	}
	g.drawUI()
	rl.EndDrawing()

	g.perf.EndFrame()
	g.perf.RecordPresent()
	g.tick++
	g.flushTelemetry()
}

// drawUI draws the HUD and panels.
func (g *Game) drawUI() {
	data := ui.HUDData{
		Title:        "Resume Analyzer Visuals",
		Scene:        g.scenes[g.active].Name(),
		Tick:         g.tick,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		Muted:        g.audio.Muted(),
		Volume:       g.audio.Volume(),
		ScreenHeight: int32(g.bounds.Height),
	}
	if ps, ok := g.scenes[g.active].(*particleScene); ok && g.mounted {
		data.Particles = ps.field.Len()
		data.Connections = ps.field.LastConnections()
	}
	g.hud.Draw(data)
	g.hud.DrawControls(int32(g.bounds.Height), controlsHint)

	entries := make([]ui.SceneEntry, len(g.scenes))
	for i, s := range g.scenes {
		entries[i] = ui.SceneEntry{Name: s.Name(), KeyLabel: sceneKeyLabels[i]}
	}
	if idx := g.scenePanel.Draw(entries, g.active); idx >= 0 {
		_ = g.SwitchScene(idx)
	}

	g.sound.Draw()

	if g.showPerf {
		g.perfPanel.Draw(g.perf.Stats())
	}

	if !g.mounted {
		msg := "Waiting for a viewport"
		w := rl.MeasureText(msg, 20)
		rl.DrawText(msg, int32(g.bounds.Width)/2-w/2, int32(g.bounds.Height)/2, 20, rl.Gray)
	}
}

// recordSurface is the headless drawing target. It draws nothing and
// counts calls so headless runs and tests can observe scene output.
type recordSurface struct {
	bounds systems.Bounds
	calls  int
	clears int
	passes int // Begin3D calls
	calls3 int // perspective draws
}

func newRecordSurface(b systems.Bounds) *recordSurface {
	return &recordSurface{bounds: b}
}

func (r *recordSurface) Size() systems.Bounds                          { return r.bounds }
func (r *recordSurface) Fade(float64)                                  { r.calls++ }
func (r *recordSurface) Clear(systems.Color)                           { r.clears++ }
func (r *recordSurface) FillRect(_, _, _, _ float32, _ systems.Color)  { r.calls++ }
func (r *recordSurface) FillCircle(_, _, _ float32, _ systems.Color)   { r.calls++ }
func (r *recordSurface) StrokeLine(_, _ systems.Vec2, _ float32, _ systems.Color) {
	r.calls++
}
func (r *recordSurface) FillRadial(_, _, _ float32, _, _ systems.Color) { r.calls++ }
func (r *recordSurface) FillRadialGradient(_, _, _ float32, _ systems.Gradient) {
	r.calls++
}
func (r *recordSurface) FillLinearGradient(_, _, _, _ float32, _ systems.Gradient) {
	r.calls++
}
func (r *recordSurface) FillArea(_ []systems.Vec2, _ float32, _, _ systems.Color) {
	r.calls++
}
func (r *recordSurface) StrokeQuad(_, _, _ systems.Vec2, _ float32, _ systems.Color) {
	r.calls++
}
func (r *recordSurface) StrokeCircle(_, _, _, _ float32, _ systems.Color) { r.calls++ }
func (r *recordSurface) FillSector(_, _, _, _, _ float32, _ systems.Color) {
	r.calls++
}

func (r *recordSurface) Begin3D(systems.Camera3D) { r.passes++ }
func (r *recordSurface) End3D()                   {}
func (r *recordSurface) WireCube(_ systems.MeshPose, _ float64, _ systems.Color) {
	r.calls3++
}
func (r *recordSurface) WireSphere(_ systems.MeshPose, _ float64, _ systems.Color) {
	r.calls3++
}
func (r *recordSurface) Line3D(_, _ r3.Vec, _ systems.Color) { r.calls3++ }
