package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resumefx/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Scene        string
	Tick         int64
	FPS          int32
	Paused       bool
	Muted        bool
	Volume       float64
	Particles    int
	Connections  int
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	t := h.renderer.Theme

	rl.DrawText(data.Title, 10, 10, t.TitleFontSize, rl.White)

	rl.DrawText(
		fmt.Sprintf("Scene: %s | Tick: %d | FPS: %d", data.Scene, data.Tick, data.FPS),
		10, 35, 16, rl.LightGray,
	)

	if data.Particles > 0 {
		rl.DrawText(
			fmt.Sprintf("Particles: %d | Connections: %d", data.Particles, data.Connections),
			10, 55, 16, rl.LightGray,
		)
	}

	sound := fmt.Sprintf("Sound: %.0f%%", data.Volume*100)
	if data.Muted {
		sound = "Sound: muted"
	}
	rl.DrawText(sound, 10, 75, 14, t.MutedColor)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 95, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Avg: %s  p95: %s", stats.AvgFrame.Round(time.Microsecond), stats.P95Frame.Round(time.Microsecond)),
		x, y, 14, rl.Yellow,
	)
	y += 16

	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
