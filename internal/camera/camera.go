package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FlyCamera is a free-flying viewer camera. Mouse look is active only while
// the right button is held so the left button stays free for editing.
type FlyCamera struct {
	Position  rl.Vector3
	Yaw       float32
	Pitch     float32
	MoveSpeed float32
	LookSpeed float32
	// BoostFactor multiplies MoveSpeed while shift is held.
	BoostFactor float32
}

// Input is one frame of camera controls.
type Input struct {
	Forward, Back, Left, Right, Up, Down bool
	Boost                                bool
	Look                                 bool
	MouseDelta                           rl.Vector2
}

func New(pos rl.Vector3) *FlyCamera {
	return &FlyCamera{
		Position:    pos,
		Yaw:         -135.0,
		Pitch:       -30.0,
		MoveSpeed:   8.0, // Units per second
		LookSpeed:   0.1,
		BoostFactor: 3.0,
	}
}

// ReadInput samples the keyboard and mouse.
func ReadInput() Input {
	return Input{
		Forward:    rl.IsKeyDown(rl.KeyW),
		Back:       rl.IsKeyDown(rl.KeyS),
		Left:       rl.IsKeyDown(rl.KeyA),
		Right:      rl.IsKeyDown(rl.KeyD),
		Up:         rl.IsKeyDown(rl.KeyE),
		Down:       rl.IsKeyDown(rl.KeyQ),
		Boost:      rl.IsKeyDown(rl.KeyLeftShift),
		Look:       rl.IsMouseButtonDown(rl.MouseRightButton),
		MouseDelta: rl.GetMouseDelta(),
	}
}

func (c *FlyCamera) Update(deltaTime float32) {
	c.Apply(ReadInput(), deltaTime)
}

func (c *FlyCamera) Apply(in Input, deltaTime float32) {
	if in.Look {
		c.Yaw += in.MouseDelta.X * c.LookSpeed
		c.Pitch -= in.MouseDelta.Y * c.LookSpeed
	}

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}

	forward, right := c.getDirections()

	var moveDir rl.Vector3
	if in.Forward {
		moveDir.X += forward.X
		moveDir.Z += forward.Z
	}
	if in.Back {
		moveDir.X -= forward.X
		moveDir.Z -= forward.Z
	}
	if in.Left {
		moveDir.X += right.X
		moveDir.Z += right.Z
	}
	if in.Right {
		moveDir.X -= right.X
		moveDir.Z -= right.Z
	}
	if in.Up {
		moveDir.Y++
	}
	if in.Down {
		moveDir.Y--
	}

	// Normalize diagonal movement so you don't go faster diagonally
	moveLen := rl.Vector3Length(moveDir)
	if moveLen == 0 {
		return
	}
	speed := c.MoveSpeed
	if in.Boost {
		speed *= c.BoostFactor
	}
	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(moveDir, speed*deltaTime/moveLen))
}

func (c *FlyCamera) getDirections() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Y: 0,
		Z: float32(math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(math.Sin(yawRad)),
		Y: 0,
		Z: float32(-math.Cos(yawRad)),
	}
	return
}

func (c *FlyCamera) GetRaylibCamera() rl.Camera3D {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180

	target := rl.Vector3{
		X: c.Position.X + float32(math.Cos(yawRad)*math.Cos(pitchRad)),
		Y: c.Position.Y + float32(math.Sin(pitchRad)),
		Z: c.Position.Z + float32(math.Sin(yawRad)*math.Cos(pitchRad)),
	}

	return rl.Camera3D{
		Position:   c.Position,
		Target:     target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
