package physics

import (
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MoveCollData pairs a shape with the kinematic state that moves it. The
// shape's own anchor is ignored: it is placed at Phys's confirmed position
// at the start of the step and at its tentative position at the end.
type MoveCollData[S primitive.Shape] struct {
	Collision S
	Phys      *Physics
}

// NewMoveCollData wraps shape with a body at the shape's current anchor.
func NewMoveCollData[S primitive.Shape](shape S) MoveCollData[S] {
	return MoveCollData[S]{Collision: shape, Phys: NewPhysics(shape.Anchor())}
}

// Current is the shape where the step starts.
func (d MoveCollData[S]) Current() S {
	return primitive.At(d.Collision, d.Phys.Position())
}

// Predicted is the shape where the step would end without contacts.
func (d MoveCollData[S]) Predicted() S {
	return primitive.At(d.Collision, d.Phys.PrePos())
}

// AtTime is the shape at fraction t of the step.
func (d MoveCollData[S]) AtTime(t float32) S {
	return primitive.At(d.Collision, primitive.Lerp(d.Phys.Position(), d.Phys.PrePos(), t))
}

// Velocity is the displacement over the step.
func (d MoveCollData[S]) Velocity() rl.Vector3 {
	return d.Phys.Displacement()
}

// Generic widens a typed body to the shape sum type.
func (d MoveCollData[S]) Generic() MoveCollData[primitive.Shape] {
	return MoveCollData[primitive.Shape]{Collision: d.Collision, Phys: d.Phys}
}

// narrow converts a body to a concrete shape type. The caller has already
// switched on the kind.
func narrow[S primitive.Shape](d MoveCollData[primitive.Shape]) MoveCollData[S] {
	return MoveCollData[S]{Collision: d.Collision.(S), Phys: d.Phys}
}

// sub builds a body for a derived shape that moves with d, such as a
// capsule's end cap, anchored offset from d's anchor.
func sub[S primitive.Shape, T primitive.Shape](d MoveCollData[S], shape T, offset rl.Vector3) MoveCollData[T] {
	ph := NewPhysics(rl.Vector3Add(d.Phys.Position(), offset))
	ph.SetPrePos(rl.Vector3Add(d.Phys.PrePos(), offset))
	return MoveCollData[T]{Collision: shape, Phys: ph}
}

// still builds a body that does not move over the step.
func still[S primitive.Shape](shape S) MoveCollData[S] {
	return MoveCollData[S]{Collision: shape, Phys: staticPhysics(shape.Anchor())}
}
