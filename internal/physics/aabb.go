package physics

import (
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Bounds is a world-space axis-aligned box used by the broadphase.
type Bounds struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewBoundsFromCenter creates bounds from a center point and full size dimensions.
func NewBoundsFromCenter(center, size rl.Vector3) Bounds {
	half := rl.Vector3Scale(size, 0.5)
	return Bounds{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a Bounds) Intersects(b Bounds) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a Bounds) Union(b Bounds) Bounds {
	return Bounds{Min: rl.Vector3Min(a.Min, b.Min), Max: rl.Vector3Max(a.Max, b.Max)}
}

// Expand grows the bounds by r on every side.
func (a Bounds) Expand(r float32) Bounds {
	d := rl.Vector3{X: r, Y: r, Z: r}
	return Bounds{Min: rl.Vector3Subtract(a.Min, d), Max: rl.Vector3Add(a.Max, d)}
}

func pointBounds(pts ...rl.Vector3) Bounds {
	b := Bounds{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min = rl.Vector3Min(b.Min, p)
		b.Max = rl.Vector3Max(b.Max, p)
	}
	return b
}

// BoundsOf returns the world bounds of s. Lines, planes and cylinders are
// infinite and report false.
func BoundsOf(s primitive.Shape) (Bounds, bool) {
	switch s := s.(type) {
	case primitive.Point:
		return pointBounds(s.P), true
	case primitive.Segment:
		return pointBounds(s.P, s.End()), true
	case primitive.Triangle:
		return pointBounds(s.P[:]...), true
	case primitive.Square:
		return pointBounds(s.P[:]...), true
	case primitive.AABB:
		return Bounds{Min: s.WorldMin(), Max: s.WorldMax()}, true
	case primitive.Sphere:
		return pointBounds(s.Position).Expand(s.Radius), true
	case primitive.Capsule:
		return pointBounds(s.S.P, s.S.End()).Expand(s.Radius), true
	case primitive.Dome:
		return pointBounds(s.Position).Expand(s.MaxRadius), true
	}
	return Bounds{}, false
}

// sweptBounds covers a body over the whole step.
func sweptBounds(d MoveCollData[primitive.Shape]) (Bounds, bool) {
	from, ok := BoundsOf(d.Current())
	if !ok {
		return Bounds{}, false
	}
	to, _ := BoundsOf(d.Predicted())
	return from.Union(to), true
}
