package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resumefx/systems"
)

// sceneKeys maps number keys to scene indices.
var sceneKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix, rl.KeySeven}

// sceneKeyLabels are the key hints shown in the scene picker.
var sceneKeyLabels = []string{"1", "2", "3", "4", "5", "6", "7"}

// watchedKeys are forwarded to scenes when pressed.
var watchedKeys = []int32{rl.KeyF, rl.KeyR, rl.KeyHome}

// sampleInput reads this frame's raylib input.
func (g *Game) sampleInput() Input {
	mouse := rl.GetMousePosition()
	delta := rl.GetMouseDelta()

	in := Input{
		Delta:    systems.Vec2{X: delta.X, Y: delta.Y},
		Down:     rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Pressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Released: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		Wheel:    rl.GetMouseWheelMove(),
		Dt:       g.cfg.Derived.FrameStep,
	}

	// The last known position persists while the pointer is outside
	if rl.IsCursorOnScreen() {
		g.pointer = systems.Pointer{X: mouse.X, Y: mouse.Y, Valid: true}
	}
	in.Pointer = g.pointer

	for _, k := range watchedKeys {
		if rl.IsKeyPressed(k) {
			in.Keys = append(in.Keys, k)
		}
	}
	return in
}

// handleInput processes game-level keys and window resize.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	for i, k := range sceneKeys {
		if rl.IsKeyPressed(k) {
			_ = g.SwitchScene(i)
		}
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.NextScene()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		g.ToggleMute()
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.AdjustVolume(volumeStep)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.AdjustVolume(-volumeStep)
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.scenePanel.Toggle()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	g.Resize(w, h)

	g.sound.SetPosition(int32(w)-230, int32(h)-110)
	g.perfPanel.SetPosition(int32(w)-260, 10)
}
