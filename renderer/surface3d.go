package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/resumefx/systems"
)

// Sphere tessellation for wireframes.
const (
	sphereRings  = 12
	sphereSlices = 16
)

func toVector3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// ToCamera3D converts a systems camera to a raylib perspective camera.
func ToCamera3D(c systems.Camera3D) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(c.Position),
		Target:     toVector3(c.Target),
		Up:         toVector3(c.Up),
		Fovy:       float32(c.FovY),
		Projection: rl.CameraPerspective,
	}
}

// Begin3D starts perspective drawing through cam.
func (s *Surface) Begin3D(cam systems.Camera3D) {
	rl.BeginMode3D(ToCamera3D(cam))
}

// End3D returns to 2D drawing.
func (s *Surface) End3D() {
	rl.EndMode3D()
}

// pushPose applies pose to the model matrix. Callers must PopMatrix.
func pushPose(p systems.MeshPose) {
	const deg = 180 / math.Pi
	rl.PushMatrix()
	rl.Translatef(float32(p.Center.X), float32(p.Center.Y), float32(p.Center.Z))
	rl.Rotatef(float32(p.Rotation.X*deg), 1, 0, 0)
	rl.Rotatef(float32(p.Rotation.Y*deg), 0, 1, 0)
	rl.Rotatef(float32(p.Rotation.Z*deg), 0, 0, 1)
	if p.Scale > 0 && p.Scale != 1 {
		sc := float32(p.Scale)
		rl.Scalef(sc, sc, sc)
	}
}

// WireCube strokes a posed cube.
func (s *Surface) WireCube(pose systems.MeshPose, size float64, c systems.Color) {
	pushPose(pose)
	e := float32(size)
	rl.DrawCubeWires(rl.Vector3{}, e, e, e, ToRaylib(c))
	rl.PopMatrix()
}

// WireSphere strokes a posed sphere.
func (s *Surface) WireSphere(pose systems.MeshPose, r float64, c systems.Color) {
	pushPose(pose)
	rl.DrawSphereWires(rl.Vector3{}, float32(r), sphereRings, sphereSlices, ToRaylib(c))
	rl.PopMatrix()
}

// Line3D strokes a segment in world space.
func (s *Surface) Line3D(a, b r3.Vec, c systems.Color) {
	rl.DrawLine3D(toVector3(a), toVector3(b), ToRaylib(c))
}
