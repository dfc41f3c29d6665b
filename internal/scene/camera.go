package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera is a perspective camera looking at Target. Fovy is in degrees.
// Projection is kept in sync with Fovy/Aspect/Near/Far by UpdateProjection.
type Camera struct {
	Position   rl.Vector3
	Target     rl.Vector3
	Up         rl.Vector3
	Fovy       float32
	Aspect     float32
	Near       float32
	Far        float32
	Projection rl.Matrix
}

// SetAspect sets the width/height ratio and recomputes the projection.
func (c *Camera) SetAspect(aspect float32) {
	c.Aspect = aspect
	c.UpdateProjection()
}

// UpdateProjection recomputes the perspective projection matrix.
func (c *Camera) UpdateProjection() {
	c.Projection = rl.MatrixPerspective(c.Fovy*rl.Deg2rad, c.Aspect, c.Near, c.Far)
}

// View returns the view matrix for the current position, target and up vector.
func (c *Camera) View() rl.Matrix {
	return rl.MatrixLookAt(c.Position, c.Target, c.Up)
}

// Distance is the length of the camera-to-target vector.
func (c *Camera) Distance() float32 {
	return rl.Vector3Length(rl.Vector3Subtract(c.Position, c.Target))
}

// Raylib converts to the camera struct raylib's BeginMode3D expects.
func (c *Camera) Raylib() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     c.Target,
		Up:         c.Up,
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
