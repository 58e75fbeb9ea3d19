// Package game hosts the visual scenes, samples input and drives the frame
// loop in graphical and headless modes.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/resumefx/audio"
	"github.com/pthm-cable/resumefx/config"
	"github.com/pthm-cable/resumefx/renderer"
	"github.com/pthm-cable/resumefx/systems"
	"github.com/pthm-cable/resumefx/telemetry"
	"github.com/pthm-cable/resumefx/ui"
)

// volumeStep is the change applied by the +/- keys.
const volumeStep = 0.1

// Options configures a Game.
type Options struct {
	Seed      int64
	Scene     string // initial scene; empty uses the config value
	OutputDir string // telemetry output root; empty disables CSV output
	Headless  bool

	// Audio plays cues; nil uses a silent player.
	Audio audio.Player

	// Viewport size; zero uses the configured screen size.
	Width, Height float32
}

// Game holds the mounted scene and the services shared between scenes.
type Game struct {
	cfg   *config.Config
	rng   *rand.Rand
	audio audio.Player

	scenes  []Scene
	active  int
	mounted bool
	bounds  systems.Bounds
	pointer systems.Pointer

	tick     int64
	paused   bool
	headless bool

	perf          *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	// Headless drawing target
	surface systems.Surface

	// Graphics (nil in headless mode)
	canvas     *renderer.Canvas
	hud        *ui.HUD
	scenePanel *ui.ScenePanel
	sound      *ui.SoundControls
	perfPanel  *ui.PerfPanel
	showPerf   bool
}

// NewGameWithOptions creates a game and mounts the initial scene.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	player := opts.Audio
	if player == nil {
		player = audio.NewSilent(cfg.Audio.Volume)
	}

	w, h := opts.Width, opts.Height
	if w == 0 && h == 0 {
		w, h = cfg.Derived.ScreenW32, cfg.Derived.ScreenH32
	}

	g := &Game{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		audio:    player,
		bounds:   systems.Bounds{Width: w, Height: h},
		headless: opts.Headless,
		perf:     telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}

	deps := sceneDeps{cfg: cfg, rng: g.rng, perf: g.perf, audio: player}
	for _, name := range SceneNames {
		s, err := newScene(name, deps)
		if err != nil {
			return nil, err
		}
		g.scenes = append(g.scenes, s)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if om != nil {
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		slog.Info("telemetry output enabled", "dir", om.Dir(), "run_id", om.RunID())
	}
	g.outputManager = om

	if g.headless {
		g.surface = newRecordSurface(g.bounds)
	} else {
		g.canvas = renderer.NewCanvas(int32(w), int32(h))
		g.hud = ui.NewHUD()
		g.scenePanel = ui.NewScenePanel(10, 120, 200)
		g.sound = ui.NewSoundControls(player, int32(w)-230, int32(h)-110, 220)
		g.perfPanel = ui.NewPerfPanel(int32(w)-260, 10)
	}

	name := opts.Scene
	if name == "" {
		name = cfg.Screen.Scene
	}
	idx, ok := SceneIndex(name)
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	g.active = idx
	g.mountActive()

	return g, nil
}

// Scene returns the active scene.
func (g *Game) Scene() Scene { return g.scenes[g.active] }

// Mounted reports whether the active scene is running.
func (g *Game) Mounted() bool { return g.mounted }

// Tick returns the number of frames advanced.
func (g *Game) Tick() int64 { return g.tick }

// Paused reports whether updates are suspended.
func (g *Game) Paused() bool { return g.paused }

// TogglePause suspends or resumes scene updates.
func (g *Game) TogglePause() bool {
	g.paused = !g.paused
	return g.paused
}

// Audio returns the cue player.
func (g *Game) Audio() audio.Player { return g.audio }

// mountActive starts the active scene if the viewport has area.
func (g *Game) mountActive() {
	s := g.scenes[g.active]
	g.mounted = s.Mount(g.bounds)
	slog.Info("scene mounted",
		"scene", s.Name(),
		"started", g.mounted,
		"width", g.bounds.Width,
		"height", g.bounds.Height,
	)
}

// SwitchScene unmounts the active scene and mounts the scene at idx.
func (g *Game) SwitchScene(idx int) error {
	if idx < 0 || idx >= len(g.scenes) {
		return fmt.Errorf("scene index %d out of range", idx)
	}
	if idx == g.active && g.mounted {
		return nil
	}

	prev := g.scenes[g.active]
	prev.Unmount()
	g.mounted = false
	slog.Info("scene unmounted", "scene", prev.Name(), "tick", g.tick)

	g.active = idx
	g.perf.Reset()
	g.mountActive()
	g.audio.Play(audio.CueWhoosh, audio.UseDefault)
	return nil
}

// NextScene switches to the scene after the active one, wrapping around.
func (g *Game) NextScene() {
	_ = g.SwitchScene((g.active + 1) % len(g.scenes))
}

// Resize propagates a viewport change to the active scene, mounting it if
// it was waiting for a measurable viewport.
func (g *Game) Resize(w, h float32) {
	if w == g.bounds.Width && h == g.bounds.Height {
		return
	}
	g.bounds = systems.Bounds{Width: w, Height: h}
	slog.Info("viewport resized", "width", w, "height", h)

	if g.canvas != nil {
		g.canvas.Resize(int32(w), int32(h))
	}
	if rs, ok := g.surface.(*recordSurface); ok {
		rs.bounds = g.bounds
	}

	if !g.mounted {
		g.mountActive()
		return
	}
	g.scenes[g.active].Resize(g.bounds)
}

// ToggleMute mutes or unmutes audio cues.
func (g *Game) ToggleMute() bool {
	muted := g.audio.ToggleMute()
	if !muted {
		g.audio.Play(audio.CueClick, audio.UseDefault)
	}
	return muted
}

// AdjustVolume changes the player volume by delta.
func (g *Game) AdjustVolume(delta float64) {
	g.audio.SetVolume(g.audio.Volume() + delta)
	g.audio.Play(audio.CueClick, audio.UseDefault)
}

// step advances the active scene by one frame of input.
func (g *Game) step(in Input) {
	if g.mounted && !g.paused {
		g.perf.StartPhase(telemetry.PhaseTick)
		g.scenes[g.active].Update(in)
	}
}

// UpdateHeadless advances and draws one frame against the recording
// surface. No raylib calls are made.
func (g *Game) UpdateHeadless() {
	g.perf.StartFrame()
	g.step(Input{Dt: g.cfg.Derived.FrameStep})
	if g.mounted {
		g.perf.StartPhase(telemetry.PhaseDraw)
		g.scenes[g.active].Draw(g.surface)
	}
	g.perf.EndFrame()
	g.tick++
	g.flushTelemetry()
}

// Unload releases graphics and output resources.
func (g *Game) Unload() {
	if g.mounted {
		g.scenes[g.active].Unmount()
		g.mounted = false
	}
	if g.canvas != nil {
		g.canvas.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
