package primitive

import rl "github.com/gen2brain/raylib-go/raylib"

// Kind tags the closed set of collision shapes.
type Kind uint8

const (
	KindPoint Kind = iota
	KindLine
	KindSegment
	KindPlane
	KindTriangle
	KindSquare
	KindAABB
	KindSphere
	KindCylinder
	KindCapsule
	KindDome
)

var kindNames = [...]string{
	KindPoint:    "point",
	KindLine:     "line",
	KindSegment:  "segment",
	KindPlane:    "plane",
	KindTriangle: "triangle",
	KindSquare:   "square",
	KindAABB:     "aabb",
	KindSphere:   "sphere",
	KindCylinder: "cylinder",
	KindCapsule:  "capsule",
	KindDome:     "dome",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Shape is implemented only by the value types in this package.
//
// Anchor is the reference point the shape is positioned by: a sphere's
// center, a line's origin, a segment's start, the first corner of a polygon,
// an AABB's offset. MoveTo returns a copy translated so that its anchor sits
// at p.
type Shape interface {
	Kind() Kind
	Anchor() rl.Vector3
	MoveTo(p rl.Vector3) Shape
}

// At re-anchors s at p keeping its concrete type.
func At[S Shape](s S, p rl.Vector3) S {
	return s.MoveTo(p).(S)
}

// ToCenter returns the offset from a shape's anchor to its center of mass.
func ToCenter(s Shape) rl.Vector3 {
	switch s := s.(type) {
	case Capsule:
		return rl.Vector3Scale(s.S.V, 0.5)
	case Segment:
		return rl.Vector3Scale(s.V, 0.5)
	case AABB:
		return rl.Vector3Scale(rl.Vector3Add(s.Min, s.Max), 0.5)
	default:
		return rl.Vector3Zero()
	}
}

// HitDirection returns the unit direction from the shape, anchored at
// position, toward hitPos. For a capsule this is measured from the nearest
// point of its axis segment.
func HitDirection(s Shape, hitPos, position rl.Vector3) rl.Vector3 {
	switch s := s.(type) {
	case Capsule:
		onLine := CastToLine(Line{P: position, V: s.S.V}, hitPos)
		end := rl.Vector3Add(position, s.S.V)
		d1 := rl.Vector3DotProduct(rl.Vector3Subtract(onLine, position), s.S.V)
		if d1*rl.Vector3DotProduct(rl.Vector3Subtract(onLine, end), s.S.V) <= 0 {
			return rl.Vector3Normalize(rl.Vector3Subtract(hitPos, onLine))
		}
		if d1 < 0 {
			return rl.Vector3Normalize(rl.Vector3Subtract(hitPos, position))
		}
		return rl.Vector3Normalize(rl.Vector3Subtract(hitPos, end))
	case Cylinder:
		onLine := CastToLine(Line{P: position, V: s.Line.V}, hitPos)
		return rl.Vector3Normalize(rl.Vector3Subtract(hitPos, onLine))
	default:
		return rl.Vector3Normalize(rl.Vector3Subtract(hitPos, position))
	}
}

// CastToLine projects p orthogonally onto l. A zero-length direction maps
// every point to the line's origin.
func CastToLine(l Line, p rl.Vector3) rl.Vector3 {
	lenSq := rl.Vector3LengthSqr(l.V)
	if lenSq < Epsilon*Epsilon {
		return l.P
	}
	t := rl.Vector3DotProduct(l.V, rl.Vector3Subtract(p, l.P)) / lenSq
	return rl.Vector3Add(l.P, rl.Vector3Scale(l.V, t))
}

// CastToPlane projects p orthogonally onto pl. The normal is assumed unit length.
func CastToPlane(pl Plane, p rl.Vector3) rl.Vector3 {
	d := rl.Vector3DotProduct(pl.Normal, rl.Vector3Subtract(p, pl.P))
	return rl.Vector3Subtract(p, rl.Vector3Scale(pl.Normal, d))
}
