package viewer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/input"
)

// TransformState is the object pose plus the camera pose.
type TransformState struct {
	Rotation    mgl32.Vec3 // degrees about X, Y and Z, each in [0, 360)
	Translation mgl32.Vec3
	Camera      camera.FreeCamera
}

// RotationMatrix returns Rx * Ry * Rz.
func (s TransformState) RotationMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(s.Rotation.X())).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(s.Rotation.Y()))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(s.Rotation.Z())))
}

// ModelMatrix returns the object transform. With baked rotation the
// vertices already carry the rotation and only the translation remains.
func (s TransformState) ModelMatrix(baked bool) mgl32.Mat4 {
	t := mgl32.Translate3D(s.Translation.X(), s.Translation.Y(), s.Translation.Z())
	if baked {
		return t
	}
	return t.Mul4(s.RotationMatrix())
}

// Steps are the per-frame increments applied while a key is held.
type Steps struct {
	Rotate float32 // object rotation, degrees
	Move   float32 // object and camera translation, world units
	Turn   float32 // camera yaw and pitch, degrees
}

// Controller advances a TransformState from held keys.
type Controller struct {
	initial TransformState
	state   TransformState
	steps   Steps
}

// NewController returns a controller that starts at, and restores to, initial.
func NewController(initial TransformState, steps Steps) *Controller {
	return &Controller{
		initial: initial,
		state:   initial,
		steps:   steps,
	}
}

// State returns the current pose.
func (c *Controller) State() TransformState {
	return c.state
}

// Update applies one frame of held-key motion and reports whether the
// object rotation changed. Holding the modifier routes arrows, WASD and
// the vertical keys to the camera instead of the object.
func (c *Controller) Update(keys input.KeyState) (rotated bool) {
	pitch := keys.Axis(input.ActionRotateUp, input.ActionRotateDown)
	yaw := keys.Axis(input.ActionRotateRight, input.ActionRotateLeft)
	roll := keys.Axis(input.ActionRollRight, input.ActionRollLeft)
	forward := keys.Axis(input.ActionMoveForward, input.ActionMoveBack)
	right := keys.Axis(input.ActionMoveRight, input.ActionMoveLeft)
	up := keys.Axis(input.ActionMoveUp, input.ActionMoveDown)

	if keys.Held(input.ActionModifier) {
		if yaw != 0 || pitch != 0 {
			c.state.Camera.Turn(yaw*c.steps.Turn, pitch*c.steps.Turn)
		}
		vertical := roll + up
		if forward != 0 || right != 0 || vertical != 0 {
			c.state.Camera.Move(forward, right, vertical, c.steps.Move)
		}
		return false
	}

	if pitch != 0 || yaw != 0 || roll != 0 {
		r := c.state.Rotation.Add(mgl32.Vec3{pitch, yaw, roll}.Mul(c.steps.Rotate))
		c.state.Rotation = mgl32.Vec3{
			camera.WrapDegrees(r.X()),
			camera.WrapDegrees(r.Y()),
			camera.WrapDegrees(r.Z()),
		}
		rotated = true
	}

	if right != 0 || forward != 0 || up != 0 {
		c.state.Translation = c.state.Translation.Add(mgl32.Vec3{right, forward, up}.Mul(c.steps.Move))
	}
	return rotated
}

// Restore resets object and camera to the initial pose.
func (c *Controller) Restore() {
	c.state = c.initial
}
