package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pthm-cable/resumefx/audio"
	"github.com/pthm-cable/resumefx/config"
	"github.com/pthm-cable/resumefx/systems"
	"github.com/pthm-cable/resumefx/telemetry"
)

// Scene names in key order (1-7).
const (
	SceneParticles = "particles"
	SceneAurora    = "aurora"
	SceneSmooth    = "smooth"
	SceneStarfield = "starfield"
	SceneGraph     = "graph"
	SceneCharts    = "charts"
	SceneMeshes    = "meshes"
)

// SceneNames lists every scene in key order.
var SceneNames = []string{SceneParticles, SceneAurora, SceneSmooth, SceneStarfield, SceneGraph, SceneCharts, SceneMeshes}

// Input is one frame of sampled input.
type Input struct {
	Pointer  systems.Pointer
	Delta    systems.Vec2 // pointer movement since the previous frame
	Down     bool         // primary button held
	Pressed  bool         // primary button went down this frame
	Released bool         // primary button went up this frame
	Wheel    float32
	Keys     []int32 // raylib key codes pressed this frame
	Dt       time.Duration
}

// KeyPressed reports whether key was pressed this frame.
func (in Input) KeyPressed(key int32) bool {
	for _, k := range in.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Scene is one visual hosted by the game. Exactly one scene is mounted at
// a time.
type Scene interface {
	Name() string
	// Mount starts the scene in bounds. It returns false, leaving the scene
	// idle, when bounds has no area.
	Mount(b systems.Bounds) bool
	Unmount()
	Resize(b systems.Bounds)
	Update(in Input)
	Draw(s systems.Surface)
}

// Overlay is implemented by scenes that draw text or widgets on screen
// after their surface is presented.
type Overlay interface {
	DrawOverlay()
}

// Inspector is implemented by scenes that expose particle stats.
type Inspector interface {
	FieldStats(frame int64) telemetry.FieldStats
}

// sceneDeps are the shared services handed to every scene.
type sceneDeps struct {
	cfg   *config.Config
	rng   *rand.Rand
	perf  *telemetry.PerfCollector
	audio audio.Player
}

// newScene constructs the named scene.
func newScene(name string, d sceneDeps) (Scene, error) {
	switch name {
	case SceneParticles:
		return newParticleScene(d), nil
	case SceneAurora:
		return newBackgroundScene(systems.VariantAurora, d), nil
	case SceneSmooth:
		return newBackgroundScene(systems.VariantSmooth, d), nil
	case SceneStarfield:
		return newStarfieldScene(d), nil
	case SceneGraph:
		return newGraphScene(d), nil
	case SceneCharts:
		return newChartsScene(d), nil
	case SceneMeshes:
		return newMeshScene(d), nil
	}
	return nil, fmt.Errorf("unknown scene %q", name)
}

// SceneIndex returns the key-order index of name.
func SceneIndex(name string) (int, bool) {
	for i, n := range SceneNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}
