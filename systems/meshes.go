package systems

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/resumefx/config"
)

// MeshKind is the solid a floating mesh is drawn as.
type MeshKind uint8

const (
	MeshCube MeshKind = iota
	MeshSphere
)

// FloatParams controls the bob and wobble layered over a mesh's spin.
type FloatParams struct {
	Speed             float64
	RotationIntensity float64
	FloatIntensity    float64
}

// FloatingMesh is a wireframe solid spinning in place while it bobs.
type FloatingMesh struct {
	Kind  MeshKind
	Base  r3.Vec
	Size  float64 // cube edge or sphere radius
	Spin  r3.Vec  // radians per second around x, y and z
	Float FloatParams
	Color Color

	offset float64 // phase so meshes do not bob in lockstep
}

// MeshPose is a transform at one instant.
type MeshPose struct {
	Center   r3.Vec
	Rotation r3.Vec // Euler angles in radians, applied x, y, z
	Scale    float64
}

// Pose returns the mesh transform t seconds after mount.
func (m *FloatingMesh) Pose(t float64) MeshPose {
	ft := (m.offset + t) / 4 * m.Float.Speed
	wobble := r3.Vec{X: math.Cos(ft) / 8, Y: math.Sin(ft) / 8, Z: math.Sin(ft) / 20}
	lift := math.Sin(ft) / 10 * m.Float.FloatIntensity
	return MeshPose{
		Center:   r3.Add(m.Base, r3.Vec{Y: lift}),
		Rotation: r3.Add(r3.Scale(t, m.Spin), r3.Scale(m.Float.RotationIntensity, wobble)),
		Scale:    1,
	}
}

var (
	cubeColor   = RGBA8(0x8b, 0x5c, 0xf6, 0.6)
	sphereColor = RGBA8(0x3b, 0x82, 0xf6, 0.4)
)

// FloatingMeshes returns the three cubes and three spheres drifting around
// the skill tree.
func FloatingMeshes() []FloatingMesh {
	cube := func(x, y, z float64) FloatingMesh {
		return FloatingMesh{
			Kind: MeshCube, Base: r3.Vec{X: x, Y: y, Z: z}, Size: 0.5,
			Spin:  r3.Vec{X: 0.5, Y: 0.3},
			Float: FloatParams{Speed: 2, RotationIntensity: 1, FloatIntensity: 2},
			Color: cubeColor,
		}
	}
	sphere := func(x, y, z float64) FloatingMesh {
		return FloatingMesh{
			Kind: MeshSphere, Base: r3.Vec{X: x, Y: y, Z: z}, Size: 0.3,
			Spin:  r3.Vec{X: 0.3, Z: 0.2},
			Float: FloatParams{Speed: 1.5, RotationIntensity: 0.5, FloatIntensity: 1},
			Color: sphereColor,
		}
	}
	return []FloatingMesh{
		cube(-2, 1, 0), cube(2, -1, -1), cube(0, 2, -2),
		sphere(-1, -2, 1), sphere(3, 0, 0), sphere(-3, 1, -1),
	}
}

// SkillNode is one node of the 3D skill tree.
type SkillNode struct {
	ID            string
	Name          string
	Category      string
	Description   string
	Level         int
	MaxLevel      int
	Pos           r3.Vec
	Prerequisites []string
	Unlocked      bool
	Color         Color
}

// SkillTree returns the progression tree, centred on the origin.
func SkillTree() []SkillNode {
	nodes := []SkillNode{
		{ID: "html", Name: "HTML", Category: "Frontend", Description: "Markup language for web pages",
			Level: 5, MaxLevel: 5, Pos: r3.Vec{}, Unlocked: true, Color: RGBA8(0xe3, 0x4c, 0x26, 1)},
		{ID: "css", Name: "CSS", Category: "Frontend", Description: "Styling language for web pages",
			Level: 4, MaxLevel: 5, Pos: r3.Vec{X: 2, Y: 1}, Prerequisites: []string{"html"},
			Unlocked: true, Color: RGBA8(0x15, 0x72, 0xb6, 1)},
		{ID: "javascript", Name: "JavaScript", Category: "Frontend", Description: "Programming language for web development",
			Level: 4, MaxLevel: 5, Pos: r3.Vec{Y: 2}, Prerequisites: []string{"html"},
			Unlocked: true, Color: RGBA8(0xf7, 0xdf, 0x1e, 1)},
		{ID: "react", Name: "React", Category: "Frontend", Description: "JavaScript library for building user interfaces",
			Level: 3, MaxLevel: 5, Pos: r3.Vec{X: -2, Y: 3}, Prerequisites: []string{"javascript"},
			Unlocked: true, Color: RGBA8(0x61, 0xda, 0xfb, 1)},
		{ID: "nodejs", Name: "Node.js", Category: "Backend", Description: "JavaScript runtime for server-side development",
			Level: 3, MaxLevel: 5, Pos: r3.Vec{X: 2, Y: 3}, Prerequisites: []string{"javascript"},
			Unlocked: true, Color: RGBA8(0x33, 0x99, 0x33, 1)},
		{ID: "typescript", Name: "TypeScript", Category: "Frontend", Description: "Typed superset of JavaScript",
			Level: 2, MaxLevel: 5, Pos: r3.Vec{Y: 4}, Prerequisites: []string{"javascript"},
			Color: RGBA8(0x31, 0x78, 0xc6, 1)},
		{ID: "nextjs", Name: "Next.js", Category: "Frontend", Description: "React framework for production",
			Level: 1, MaxLevel: 5, Pos: r3.Vec{X: -2, Y: 5}, Prerequisites: []string{"react", "nodejs"},
			Color: RGBA8(0x00, 0x00, 0x00, 1)},
	}
	// The tree spans y in [0, 5]
	for i := range nodes {
		nodes[i].Pos.Y -= 2.5
	}
	return nodes
}

// Camera3D is a perspective camera looking at Target.
type Camera3D struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
	FovY     float64 // vertical field of view in degrees
}

// nearPlane is the closest depth that still projects.
const nearPlane = 0.01

// Project maps p to screen pixels in b. It returns the view depth of p and
// false when p is behind the camera.
func (c Camera3D) Project(p r3.Vec, b Bounds) (Vec2, float64, bool) {
	fwd := r3.Unit(r3.Sub(c.Target, c.Position))
	right := r3.Unit(r3.Cross(fwd, c.Up))
	up := r3.Cross(right, fwd)

	d := r3.Sub(p, c.Position)
	z := r3.Dot(d, fwd)
	if z <= nearPlane {
		return Vec2{}, z, false
	}
	f := c.focal(b)
	return Vec2{
		X: b.Width/2 + float32(r3.Dot(d, right)*f/z),
		Y: b.Height/2 - float32(r3.Dot(d, up)*f/z),
	}, z, true
}

// focal is the distance in pixels from the eye to the image plane.
func (c Camera3D) focal(b Bounds) float64 {
	return float64(b.Height) / 2 / math.Tan(c.FovY*math.Pi/360)
}

// MeshParams configures the 3D scene.
type MeshParams struct {
	FovY           float64
	CameraDistance float64
	OrbitSpeed     float64 // auto-orbit in radians per second
	DragSpeed      float64 // radians per dragged pixel
	NodeRadius     float64
	NodeSpin       float64 // radians per tick
	HoverScale     float64
}

// DefaultMeshParams returns the standard 3D scene settings.
func DefaultMeshParams() MeshParams {
	return MeshParams{
		FovY:           60,
		CameraDistance: math.Sqrt(75), // |(5, 5, 5)|
		OrbitSpeed:     0.15,
		DragSpeed:      0.01,
		NodeRadius:     0.3,
		NodeSpin:       0.01,
		HoverScale:     1.2,
	}
}

// MeshParamsFromConfig builds parameters from the loaded configuration.
func MeshParamsFromConfig(cfg *config.Config) MeshParams {
	p := DefaultMeshParams()
	mc := cfg.Meshes
	if mc.FovY > 0 {
		p.FovY = mc.FovY
	}
	if mc.CameraDistance > 0 {
		p.CameraDistance = mc.CameraDistance
	}
	p.OrbitSpeed = mc.OrbitSpeed
	if mc.DragSpeed > 0 {
		p.DragSpeed = mc.DragSpeed
	}
	return p
}

// Pitch limits keep the orbit camera off the poles.
const (
	minPitch = -1.4
	maxPitch = 1.4
)

var (
	meshBackdrop = Gradient{
		{Offset: 0, Color: RGBA8(0x0f, 0x0a, 0x1f, 1)},
		{Offset: 1, Color: RGBA8(0x02, 0x02, 0x08, 1)},
	}
	lockedColor   = RGBA8(0x66, 0x66, 0x66, 1)
	selectedColor = RGBA8(0xff, 0xff, 0xff, 1)
	unlockedLink  = RGBA8(0x4a, 0xde, 0x80, 1)
)

// MeshScene animates floating wireframe meshes around a rotating skill
// tree viewed by an orbit camera.
type MeshScene struct {
	params MeshParams
	meshes []FloatingMesh
	skills []SkillNode
	links  [][2]int // prerequisite index, skill index

	bounds  Bounds
	mounted bool
	t       float64 // seconds since mount
	spin    float64 // node spin angle
	yaw     float64
	pitch   float64

	hover    int
	selected int
}

// NewMeshScene creates the scene. rng staggers the float phases.
func NewMeshScene(params MeshParams, rng *rand.Rand) *MeshScene {
	s := &MeshScene{
		params:   params,
		meshes:   FloatingMeshes(),
		skills:   SkillTree(),
		hover:    -1,
		selected: -1,
	}
	for i := range s.meshes {
		s.meshes[i].offset = rng.Float64() * 10000
	}
	index := make(map[string]int, len(s.skills))
	for i, n := range s.skills {
		index[n.ID] = i
	}
	for i, n := range s.skills {
		for _, pre := range n.Prerequisites {
			if j, ok := index[pre]; ok {
				s.links = append(s.links, [2]int{j, i})
			}
		}
	}
	s.resetView()
	return s
}

// resetView returns the camera to the (5, 5, 5) vantage point.
func (s *MeshScene) resetView() {
	s.yaw = math.Pi / 4
	s.pitch = math.Asin(1 / math.Sqrt(3))
}

// Mount starts the scene. A zero-sized viewport leaves it unstarted.
func (s *MeshScene) Mount(b Bounds) bool {
	if !b.Valid() {
		return false
	}
	s.bounds = b
	s.t, s.spin = 0, 0
	s.hover, s.selected = -1, -1
	s.resetView()
	s.mounted = true
	return true
}

// Unmount stops the scene.
func (s *MeshScene) Unmount() { s.mounted = false }

// Mounted reports whether the scene is running.
func (s *MeshScene) Mounted() bool { return s.mounted }

// Resize updates the viewport.
func (s *MeshScene) Resize(b Bounds) { s.bounds = b }

// Tick advances the animation by dt.
func (s *MeshScene) Tick(dt time.Duration) {
	if !s.mounted {
		return
	}
	sec := dt.Seconds()
	s.t += sec
	s.spin += s.params.NodeSpin
	s.yaw += s.params.OrbitSpeed * sec
}

// Elapsed returns the animation time in seconds.
func (s *MeshScene) Elapsed() float64 { return s.t }

// Orbit rotates the camera by a pointer drag of (dx, dy) pixels.
func (s *MeshScene) Orbit(dx, dy float32) {
	s.yaw -= float64(dx) * s.params.DragSpeed
	s.pitch = math.Max(minPitch, math.Min(maxPitch, s.pitch+float64(dy)*s.params.DragSpeed))
}

// ResetView restores the default camera angle.
func (s *MeshScene) ResetView() { s.resetView() }

// Camera returns the current orbit camera.
func (s *MeshScene) Camera() Camera3D {
	d := s.params.CameraDistance
	cp := math.Cos(s.pitch)
	return Camera3D{
		Position: r3.Vec{X: d * cp * math.Sin(s.yaw), Y: d * math.Sin(s.pitch), Z: d * cp * math.Cos(s.yaw)},
		Up:       r3.Vec{Y: 1},
		FovY:     s.params.FovY,
	}
}

// Meshes returns the floating meshes with their current poses.
func (s *MeshScene) Meshes() ([]FloatingMesh, []MeshPose) {
	poses := make([]MeshPose, len(s.meshes))
	for i := range s.meshes {
		poses[i] = s.meshes[i].Pose(s.t)
	}
	return s.meshes, poses
}

// Skills returns the skill tree nodes.
func (s *MeshScene) Skills() []SkillNode { return s.skills }

// Links returns prerequisite edges as (prerequisite, skill) index pairs.
func (s *MeshScene) Links() [][2]int { return s.links }

// Skill returns the node with id.
func (s *MeshScene) Skill(id string) (SkillNode, bool) {
	for _, n := range s.skills {
		if n.ID == id {
			return n, true
		}
	}
	return SkillNode{}, false
}

// SkillAt returns the index of the nearest skill node under the screen
// point (sx, sy).
func (s *MeshScene) SkillAt(sx, sy float32) (int, bool) {
	cam := s.Camera()
	f := cam.focal(s.bounds)
	best, bestDepth := -1, math.Inf(1)
	for i, n := range s.skills {
		p, z, ok := cam.Project(n.Pos, s.bounds)
		if !ok {
			continue
		}
		r := s.params.NodeRadius * s.nodeScale(i) * f / z
		if float64(distance(sx, sy, p.X, p.Y)) <= r && z < bestDepth {
			best, bestDepth = i, z
		}
	}
	return best, best >= 0
}

func (s *MeshScene) nodeScale(i int) float64 {
	if i == s.hover {
		return s.params.HoverScale
	}
	return 1
}

// SetHover marks node i as hovered; -1 clears it.
func (s *MeshScene) SetHover(i int) { s.hover = i }

// Hovered returns the hovered node index or -1.
func (s *MeshScene) Hovered() int { return s.hover }

// Select selects node i; -1 clears the selection.
func (s *MeshScene) Select(i int) { s.selected = i }

// Selected returns the selected node.
func (s *MeshScene) Selected() (SkillNode, bool) {
	if s.selected < 0 || s.selected >= len(s.skills) {
		return SkillNode{}, false
	}
	return s.skills[s.selected], true
}

// NodeColor returns the display colour of node i: grey while locked,
// white while selected, its own colour otherwise.
func (s *MeshScene) NodeColor(i int) Color {
	switch {
	case !s.skills[i].Unlocked:
		return lockedColor
	case i == s.selected:
		return selectedColor
	}
	return s.skills[i].Color
}

// LinkColor returns green for edges into unlocked skills.
func (s *MeshScene) LinkColor(l [2]int) Color {
	if s.skills[l[1]].Unlocked {
		return unlockedLink
	}
	return lockedColor
}

// Render paints the backdrop, then the 3D content when s supports it.
func (s *MeshScene) Render(surf Surface) {
	b := surf.Size()
	surf.FillLinearGradient(0, 0, 0, b.Height, meshBackdrop)

	s3, ok := surf.(Surface3D)
	if !ok {
		return
	}
	s3.Begin3D(s.Camera())
	for _, l := range s.links {
		s3.Line3D(s.skills[l[0]].Pos, s.skills[l[1]].Pos, s.LinkColor(l))
	}
	for i, n := range s.skills {
		pose := MeshPose{Center: n.Pos, Rotation: r3.Vec{Y: s.spin}, Scale: s.nodeScale(i)}
		s3.WireSphere(pose, s.params.NodeRadius, s.NodeColor(i))
	}
	meshes, poses := s.Meshes()
	for i, m := range meshes {
		switch m.Kind {
		case MeshCube:
			s3.WireCube(poses[i], m.Size, m.Color)
		case MeshSphere:
			s3.WireSphere(poses[i], m.Size, m.Color)
		}
	}
	s3.End3D()
}
