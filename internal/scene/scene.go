package scene

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RotationStep is the per-frame rotation (radians) applied on X and Y to the focused mesh.
const RotationStep = float32(0.005)

const (
	cameraFovy = 75
	cameraNear = 0.1
	cameraFar  = 1000

	ambientIntensity = 0.4
	keyIntensity     = 0.8

	// objectOffset is the distance of each object from the origin along X.
	objectOffset = 1.5
	shininess    = 30
)

var (
	// defaultCameraPosition sits in front of and above the origin.
	defaultCameraPosition = rl.NewVector3(0, 2, 5)
	keyLightPosition      = rl.NewVector3(5, 5, 5)

	backgroundColor = rl.NewColor(0x11, 0x18, 0x27, 255)
	cubeColor       = rl.NewColor(0x3b, 0x82, 0xf6, 255)
	sphereColor     = rl.NewColor(0xec, 0x48, 0x99, 255)
	specularColor   = rl.NewColor(0x44, 0x44, 0x44, 255)
)

// Shape is the geometry a Mesh is drawn with.
type Shape uint8

const (
	ShapeCube Shape = iota
	ShapeSphere
)

func (s Shape) String() string {
	if s == ShapeSphere {
		return "sphere"
	}
	return "cube"
}

// LightKind distinguishes the ambient term from the positional key light.
type LightKind uint8

const (
	AmbientLight LightKind = iota
	PointLight
)

// Light is either an ambient term (Position unused) or a point light.
type Light struct {
	Kind      LightKind
	Color     rl.Color
	Intensity float32
	Position  rl.Vector3
}

// Material is an opaque, specular (Phong-style) surface.
type Material struct {
	Color     rl.Color
	Specular  rl.Color
	Shininess float32
}

// Mesh is a renderable object: geometry, transform (XYZ Euler rotation) and material.
type Mesh struct {
	Shape    Shape
	Position rl.Vector3
	Rotation rl.Vector3
	Scale    rl.Vector3
	Material Material
}

// Transform returns the model matrix: scale, then rotate, then translate.
func (m *Mesh) Transform() rl.Matrix {
	scaleM := rl.MatrixScale(m.Scale.X, m.Scale.Y, m.Scale.Z)
	rotM := rl.MatrixRotateXYZ(m.Rotation)
	transM := rl.MatrixTranslate(m.Position.X, m.Position.Y, m.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scaleM, rotM), transM)
}

// Scene is everything one activation of the demo panel draws: a camera, two lights,
// the cube and the sphere. It is owned by a single activation and never shared.
type Scene struct {
	Camera     Camera
	Background rl.Color
	Ambient    Light
	Key        Light
	Cube       Mesh
	Sphere     Mesh
}

// Build constructs a fresh scene whose camera uses the given aspect ratio.
// The caller guarantees aspect is finite and positive.
func Build(aspect float32) *Scene {
	s := &Scene{Background: backgroundColor}
	s.Camera = Camera{
		Position: defaultCameraPosition,
		Target:   rl.NewVector3(0, 0, 0),
		Up:       rl.NewVector3(0, 1, 0),
		Fovy:     cameraFovy,
		Near:     cameraNear,
		Far:      cameraFar,
	}
	s.Camera.SetAspect(aspect)

	s.Ambient = Light{Kind: AmbientLight, Color: rl.White, Intensity: ambientIntensity}
	s.Key = Light{Kind: PointLight, Color: rl.White, Intensity: keyIntensity, Position: keyLightPosition}

	s.Cube = Mesh{
		Shape:    ShapeCube,
		Position: rl.NewVector3(-objectOffset, 0, 0),
		Scale:    rl.NewVector3(1, 1, 1),
		Material: Material{Color: cubeColor, Specular: specularColor, Shininess: shininess},
	}
	s.Sphere = Mesh{
		Shape:    ShapeSphere,
		Position: rl.NewVector3(objectOffset, 0, 0),
		Scale:    rl.NewVector3(1, 1, 1),
		Material: Material{Color: sphereColor, Specular: specularColor, Shininess: shininess},
	}
	return s
}

// Focused returns the mesh selected by f. It panics on a value outside the Focus set.
func (s *Scene) Focused(f Focus) *Mesh {
	switch f {
	case CubeFocus:
		return &s.Cube
	case SphereFocus:
		return &s.Sphere
	}
	panic(fmt.Sprintf("scene: unknown focus %d", f))
}

// Spin advances the focused mesh's rotation by RotationStep on X and Y.
// The other mesh is left untouched.
func (s *Scene) Spin(f Focus) {
	m := s.Focused(f)
	m.Rotation.X += RotationStep
	m.Rotation.Y += RotationStep
}

// Meshes returns the drawable objects in draw order.
func (s *Scene) Meshes() []*Mesh {
	return []*Mesh{&s.Cube, &s.Sphere}
}
