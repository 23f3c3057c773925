package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-5

// near compares component-wise with an absolute tolerance; ApproxEqualThreshold
// is relative and rejects tiny residues against an exact zero.
func near(a, b mgl32.Vec3) bool {
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

func TestNewFreeCamera_LooksDownNegativeZ(t *testing.T) {
	c := NewFreeCamera(mgl32.Vec3{0, 0, 3})

	if f := c.Front(); !near(f, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("front: got %v, want (0,0,-1)", f)
	}
	if r := c.Right(); !near(r, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("right: got %v, want (1,0,0)", r)
	}

	// The origin should end up straight ahead, 3 units away
	p := mgl32.TransformCoordinate(mgl32.Vec3{}, c.ViewMatrix())
	if !near(p, mgl32.Vec3{0, 0, -3}) {
		t.Errorf("origin in view space: got %v, want (0,0,-3)", p)
	}
}

func TestTurn(t *testing.T) {
	c := NewFreeCamera(mgl32.Vec3{})

	c.Turn(100, 0)
	if c.Yaw != 10 {
		t.Errorf("yaw should wrap to 10, got %f", c.Yaw)
	}
	c.Turn(-20, 0)
	if c.Yaw != 350 {
		t.Errorf("yaw should wrap to 350, got %f", c.Yaw)
	}

	c.Turn(0, 200)
	if c.Pitch != MaxPitch {
		t.Errorf("pitch should clamp to %f, got %f", float32(MaxPitch), c.Pitch)
	}
	c.Turn(0, -400)
	if c.Pitch != MinPitch {
		t.Errorf("pitch should clamp to %f, got %f", float32(MinPitch), c.Pitch)
	}
}

func TestMove(t *testing.T) {
	c := NewFreeCamera(mgl32.Vec3{0, 0, 3})

	c.Move(1, 0, 0, 0.5)
	if !near(c.Position, mgl32.Vec3{0, 0, 2.5}) {
		t.Errorf("forward: got %v", c.Position)
	}

	c.Move(0, -1, 0, 0.5)
	if !near(c.Position, mgl32.Vec3{-0.5, 0, 2.5}) {
		t.Errorf("left: got %v", c.Position)
	}

	c.Move(0, 0, 1, 2)
	if !near(c.Position, mgl32.Vec3{-0.5, 2, 2.5}) {
		t.Errorf("up: got %v", c.Position)
	}
}

func TestMove_FollowsYaw(t *testing.T) {
	c := NewFreeCamera(mgl32.Vec3{})
	c.Turn(90, 0) // yaw 0 looks down +X

	c.Move(1, 0, 0, 1)
	if !near(c.Position, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("got %v, want (1,0,0)", c.Position)
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{359, 359},
		{360, 0},
		{362.5, 2.5},
		{-2.5, 357.5},
		{-720, 0},
		{1080 + 45, 45},
	}

	for _, tt := range tests {
		got := WrapDegrees(tt.in)
		if got < 0 || got >= 360 {
			t.Errorf("WrapDegrees(%f) = %f out of range", tt.in, got)
		}
		if mgl32.Abs(got-tt.want) > epsilon {
			t.Errorf("WrapDegrees(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
