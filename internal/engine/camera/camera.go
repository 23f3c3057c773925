// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pitch limits keep the view direction away from the up vector.
const (
	MinPitch = -89.0
	MaxPitch = 89.0
)

// WorldUp is the up direction used for the camera basis.
var WorldUp = mgl32.Vec3{0, 1, 0}

// FreeCamera is a fly-through camera described by a position and yaw/pitch
// angles in degrees. Yaw 270 looks down -Z.
type FreeCamera struct {
	Position mgl32.Vec3
	Yaw      float32 // Horizontal angle, wrapped to [0, 360)
	Pitch    float32 // Vertical angle, clamped to [MinPitch, MaxPitch]
}

// NewFreeCamera creates a camera at pos looking down -Z.
func NewFreeCamera(pos mgl32.Vec3) FreeCamera {
	return FreeCamera{
		Position: pos,
		Yaw:      270,
		Pitch:    0,
	}
}

// Front returns the unit view direction.
func (c *FreeCamera) Front() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		float32(gomath.Sin(pitch)),
		float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}.Normalize()
}

// Right returns the unit right direction.
func (c *FreeCamera) Right() mgl32.Vec3 {
	return c.Front().Cross(WorldUp).Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *FreeCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), WorldUp)
}

// Turn changes the view direction by the given angles in degrees.
func (c *FreeCamera) Turn(deltaYaw, deltaPitch float32) {
	c.Yaw = WrapDegrees(c.Yaw + deltaYaw)
	c.Pitch = mgl32.Clamp(c.Pitch+deltaPitch, MinPitch, MaxPitch)
}

// Move translates the camera along its forward and right vectors and the
// world up vector, scaled by step.
func (c *FreeCamera) Move(forward, right, up, step float32) {
	delta := c.Front().Mul(forward).
		Add(c.Right().Mul(right)).
		Add(WorldUp.Mul(up))
	c.Position = c.Position.Add(delta.Mul(step))
}

// WrapDegrees maps an angle into [0, 360).
func WrapDegrees(deg float32) float32 {
	w := float32(gomath.Mod(float64(deg), 360))
	if w < 0 {
		w += 360
	}
	if w >= 360 {
		w = 0
	}
	return w
}
