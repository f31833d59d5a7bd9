package camera

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestApplyMovesAlongYaw(t *testing.T) {
	c := New(rl.Vector3{})
	c.Yaw = 0
	c.Pitch = 0

	c.Apply(Input{Forward: true}, 0.5)
	assert.InDelta(t, 4, c.Position.X, 1e-5)
	assert.InDelta(t, 0, c.Position.Z, 1e-5)

	c.Apply(Input{Up: true, Boost: true}, 0.5)
	assert.InDelta(t, 12, c.Position.Y, 1e-5)
}

func TestApplyDiagonalIsNormalized(t *testing.T) {
	c := New(rl.Vector3{})
	c.Apply(Input{Forward: true, Left: true, Up: true}, 1)
	assert.InDelta(t, 8, rl.Vector3Length(c.Position), 1e-4)
}

func TestLookOnlyWhileHeld(t *testing.T) {
	c := New(rl.Vector3{})
	yaw, pitch := c.Yaw, c.Pitch

	c.Apply(Input{MouseDelta: rl.Vector2{X: 100, Y: 100}}, 0.016)
	assert.Equal(t, yaw, c.Yaw)
	assert.Equal(t, pitch, c.Pitch)

	c.Apply(Input{Look: true, MouseDelta: rl.Vector2{X: 100, Y: -2000}}, 0.016)
	assert.Equal(t, yaw+10, c.Yaw)
	assert.Equal(t, float32(89), c.Pitch, "pitch is clamped")
}

func TestGetRaylibCameraLooksAlongYaw(t *testing.T) {
	c := New(rl.Vector3{Y: 2})
	c.Yaw = 90
	c.Pitch = 0
	cam := c.GetRaylibCamera()
	assert.Equal(t, c.Position, cam.Position)
	assert.InDelta(t, 1, cam.Target.Z, 1e-5)
	assert.InDelta(t, 2, cam.Target.Y, 1e-5)
}
