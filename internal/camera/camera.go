package camera

import (
	"math"

	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is one frame of the controls the camera reacts to.
type Input struct {
	MouseDelta rl.Vector2
	Orbiting   bool // drag button held
	Wheel      float32
	Pan        rl.Vector2 // keyboard pan, -1..1 per axis
}

// OrbitCamera circles a target point at a fixed distance.
type OrbitCamera struct {
	Target    rl.Vector3
	Distance  float32
	Yaw       float32
	Pitch     float32
	LookSpeed float32
	ZoomSpeed float32
	PanSpeed  float32

	MinDistance float32
	MaxDistance float32
}

func New(target rl.Vector3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Distance:    distance,
		Yaw:         -135.0,
		Pitch:       30.0,
		LookSpeed:   0.3,
		ZoomSpeed:   2.0,
		PanSpeed:    20.0, // Units per second
		MinDistance: 2,
		MaxDistance: 500,
	}
}

func (c *OrbitCamera) Update(in Input, deltaTime float32) {
	if in.Orbiting {
		c.Yaw += in.MouseDelta.X * c.LookSpeed
		c.Pitch += in.MouseDelta.Y * c.LookSpeed
	}
	c.Pitch = primitive.Clamp(c.Pitch, -89, 89)

	c.Distance = primitive.Clamp(c.Distance-in.Wheel*c.ZoomSpeed, c.MinDistance, c.MaxDistance)

	// Pan on the ground plane relative to where the camera looks
	forward, right := c.getDirections()
	step := c.PanSpeed * deltaTime
	c.Target = rl.Vector3Add(c.Target, rl.Vector3Scale(forward, in.Pan.Y*step))
	c.Target = rl.Vector3Add(c.Target, rl.Vector3Scale(right, in.Pan.X*step))
}

func (c *OrbitCamera) getDirections() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(-math.Cos(yawRad)),
		Y: 0,
		Z: float32(-math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(math.Sin(yawRad)),
		Y: 0,
		Z: float32(-math.Cos(yawRad)),
	}
	return
}

// Position is where the eye sits.
func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	offset := rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
	return rl.Vector3Add(c.Target, rl.Vector3Scale(offset, c.Distance))
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
