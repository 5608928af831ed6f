package camera

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestPositionKeepsDistance(t *testing.T) {
	c := New(rl.Vector3{X: 1, Y: 2, Z: 3}, 10)
	for _, yaw := range []float32{-135, 0, 90, 270} {
		c.Yaw = yaw
		d := rl.Vector3Distance(c.Position(), c.Target)
		assert.InDelta(t, 10, d, 1e-3, "yaw %v", yaw)
	}
}

func TestUpdateClamps(t *testing.T) {
	c := New(rl.Vector3{}, 10)

	c.Update(Input{Orbiting: true, MouseDelta: rl.Vector2{Y: 1000}}, 1.0/60)
	assert.Equal(t, float32(89), c.Pitch)

	c.Update(Input{Wheel: 1000}, 1.0/60)
	assert.Equal(t, c.MinDistance, c.Distance)

	c.Update(Input{Wheel: -1000}, 1.0/60)
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestMouseIgnoredWithoutDrag(t *testing.T) {
	c := New(rl.Vector3{}, 10)
	yaw := c.Yaw
	c.Update(Input{MouseDelta: rl.Vector2{X: 50}}, 1.0/60)
	assert.Equal(t, yaw, c.Yaw)
}

func TestPanMovesTargetOnGround(t *testing.T) {
	c := New(rl.Vector3{}, 10)
	c.Update(Input{Pan: rl.Vector2{X: 1, Y: 1}}, 1)
	assert.Equal(t, float32(0), c.Target.Y)
	assert.InDelta(t, c.PanSpeed*1.41421, rl.Vector3Length(c.Target), 1e-2)
}
