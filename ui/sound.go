package ui

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resumefx/audio"
)

// SoundControls is a small panel with a volume slider and mute button
// bound to a player.
type SoundControls struct {
	renderer *Renderer
	player   audio.Player
	x, y     int32
	width    int32
}

// NewSoundControls creates controls for p.
func NewSoundControls(p audio.Player, x, y, width int32) *SoundControls {
	return &SoundControls{
		renderer: NewRenderer(),
		player:   p,
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition moves the panel.
func (s *SoundControls) SetPosition(x, y int32) {
	s.x, s.y = x, y
}

// Height returns the panel height.
func (s *SoundControls) Height() int32 {
	t := s.renderer.Theme
	return t.Padding*2 + t.LineHeight*3 + 12
}

// Draw renders the panel and applies any interaction to the player.
func (s *SoundControls) Draw() {
	r := s.renderer
	t := r.Theme
	r.DrawPanel(s.x, s.y, s.width, s.Height())

	x := s.x + t.Padding
	y := r.DrawSectionHeader(x, s.y+t.Padding, "Sound")

	muted := s.player.Muted()
	vol := float32(s.player.Volume())
	sliderW := float32(s.width - t.Padding*2 - 44)
	next := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: sliderW, Height: float32(t.LineHeight)},
		"", "", vol, 0, 1,
	)
	rl.DrawText(fmt.Sprintf("%3.0f%%", vol*100), x+int32(sliderW)+6, y+2, t.FontSize, t.ValueColor)
	if next != vol {
		s.player.SetVolume(float64(next))
	}
	y += t.LineHeight + 6

	label := "Mute"
	if muted {
		label = "Unmute"
	}
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 80, Height: float32(t.LineHeight + 4)}, label) {
		if !s.player.ToggleMute() {
			s.player.Play(audio.CueClick, audio.UseDefault)
		}
	}
}

// TypewriterSound returns a key callback that plays the typewriter cue at
// a slightly varied low volume.
func TypewriterSound(p audio.Player, rng *rand.Rand) func(rune) {
	return func(rune) {
		p.Play(audio.CueTypewriter, 0.05+rng.Float64()*0.05)
	}
}
