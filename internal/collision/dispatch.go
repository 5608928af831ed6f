package collision

import (
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type pairKey [2]primitive.Kind

func key(a, b primitive.Kind) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// ordered swaps a and b so the lower kind comes first. Every query below is
// symmetric, so dispatching on the ordered pair gives both argument orders
// the same answer.
func ordered(a, b primitive.Shape) (primitive.Shape, primitive.Shape) {
	if a.Kind() > b.Kind() {
		return b, a
	}
	return a, b
}

var overlapPairs = func() map[pairKey]bool {
	m := map[pairKey]bool{}
	for _, b := range []primitive.Kind{
		primitive.KindPoint, primitive.KindLine, primitive.KindSegment, primitive.KindPlane,
		primitive.KindTriangle, primitive.KindSquare, primitive.KindAABB, primitive.KindSphere,
		primitive.KindCylinder, primitive.KindCapsule, primitive.KindDome,
	} {
		m[key(primitive.KindPoint, b)] = true
	}
	for _, b := range []primitive.Kind{
		primitive.KindLine, primitive.KindSegment, primitive.KindPlane, primitive.KindTriangle,
		primitive.KindSquare, primitive.KindAABB, primitive.KindSphere, primitive.KindCylinder,
		primitive.KindCapsule,
	} {
		m[key(primitive.KindLine, b)] = true
		m[key(primitive.KindSegment, b)] = true
	}
	for _, b := range []primitive.Kind{primitive.KindPlane, primitive.KindSphere, primitive.KindCylinder, primitive.KindCapsule} {
		m[key(primitive.KindPlane, b)] = true
	}
	m[key(primitive.KindTriangle, primitive.KindSphere)] = true
	for _, b := range []primitive.Kind{primitive.KindSphere, primitive.KindCylinder, primitive.KindCapsule} {
		m[key(primitive.KindSquare, b)] = true
		m[key(primitive.KindSphere, b)] = true
	}
	for _, b := range []primitive.Kind{primitive.KindAABB, primitive.KindSphere, primitive.KindCapsule} {
		m[key(primitive.KindAABB, b)] = true
	}
	m[key(primitive.KindCylinder, primitive.KindCylinder)] = true
	m[key(primitive.KindCylinder, primitive.KindCapsule)] = true
	m[key(primitive.KindCapsule, primitive.KindCapsule)] = true
	return m
}()

// Supported reports whether Overlaps has a test for the pair.
func Supported(a, b primitive.Kind) bool {
	return overlapPairs[key(a, b)]
}

// Overlaps reports whether two shapes intersect. Unsupported pairs report false.
func Overlaps(a, b primitive.Shape) bool {
	a, b = ordered(a, b)
	switch a := a.(type) {
	case primitive.Point:
		return overlapPoint(a.P, b)
	case primitive.Line:
		switch b := b.(type) {
		case primitive.Line:
			return OverlapLineLine(a, b)
		case primitive.Segment:
			return OverlapLineSegment(a, b)
		case primitive.Plane:
			return OverlapLinePlane(a, b)
		case primitive.Triangle:
			return OverlapLineTriangle(a, b)
		case primitive.Square:
			return OverlapLineSquare(a, b)
		case primitive.AABB:
			return OverlapLineAABB(a, b)
		case primitive.Sphere:
			return OverlapLineSphere(a, b)
		case primitive.Cylinder:
			return OverlapLineCylinder(a, b)
		case primitive.Capsule:
			return OverlapLineCapsule(a, b)
		}
	case primitive.Segment:
		switch b := b.(type) {
		case primitive.Segment:
			return OverlapSegmentSegment(a, b)
		case primitive.Plane:
			return OverlapSegmentPlane(a, b)
		case primitive.Triangle:
			return OverlapSegmentTriangle(a, b)
		case primitive.Square:
			return OverlapSegmentSquare(a, b)
		case primitive.AABB:
			return OverlapSegmentAABB(a, b)
		case primitive.Sphere:
			return OverlapSegmentSphere(a, b)
		case primitive.Cylinder:
			return OverlapSegmentCylinder(a, b)
		case primitive.Capsule:
			return OverlapSegmentCapsule(a, b)
		}
	case primitive.Plane:
		switch b := b.(type) {
		case primitive.Plane:
			return OverlapPlanePlane(a, b)
		case primitive.Sphere:
			return OverlapPlaneSphere(a, b)
		case primitive.Cylinder:
			return OverlapPlaneCylinder(a, b)
		case primitive.Capsule:
			return OverlapPlaneCapsule(a, b)
		}
	case primitive.Triangle:
		if b, ok := b.(primitive.Sphere); ok {
			return OverlapTriangleSphere(a, b)
		}
	case primitive.Square:
		switch b := b.(type) {
		case primitive.Sphere:
			return OverlapSquareSphere(a, b)
		case primitive.Cylinder:
			return OverlapSquareCylinder(a, b)
		case primitive.Capsule:
			return OverlapSquareCapsule(a, b)
		}
	case primitive.AABB:
		switch b := b.(type) {
		case primitive.AABB:
			return OverlapAABBAABB(a, b)
		case primitive.Sphere:
			return OverlapAABBSphere(a, b)
		case primitive.Capsule:
			return OverlapAABBCapsule(a, b)
		}
	case primitive.Sphere:
		switch b := b.(type) {
		case primitive.Sphere:
			return OverlapSphereSphere(a, b)
		case primitive.Cylinder:
			return OverlapSphereCylinder(a, b)
		case primitive.Capsule:
			return OverlapSphereCapsule(a, b)
		}
	case primitive.Cylinder:
		switch b := b.(type) {
		case primitive.Cylinder:
			return OverlapCylinderCylinder(a, b)
		case primitive.Capsule:
			return OverlapCylinderCapsule(a, b)
		}
	case primitive.Capsule:
		if b, ok := b.(primitive.Capsule); ok {
			return OverlapCapsuleCapsule(a, b)
		}
	}
	return false
}

func overlapPoint(p rl.Vector3, b primitive.Shape) bool {
	switch b := b.(type) {
	case primitive.Point:
		return OverlapPointPoint(p, b.P)
	case primitive.Line:
		return OverlapPointLine(p, b)
	case primitive.Segment:
		return OverlapPointSegment(p, b)
	case primitive.Plane:
		return OverlapPointPlane(p, b)
	case primitive.Triangle:
		return OverlapPointTriangle(p, b)
	case primitive.Square:
		return OverlapPointSquare(p, b)
	case primitive.AABB:
		return OverlapPointAABB(p, b)
	case primitive.Sphere:
		return OverlapPointSphere(p, b)
	case primitive.Cylinder:
		return OverlapPointCylinder(p, b)
	case primitive.Capsule:
		return OverlapPointCapsule(p, b)
	case primitive.Dome:
		return OverlapPointDome(p, b)
	}
	return false
}

// Collide returns a contact point for pairs involving a point, line or
// segment. Other pairs report no hit.
func Collide(a, b primitive.Shape) Contact {
	a, b = ordered(a, b)
	var (
		pos rl.Vector3
		ok  bool
	)
	switch a := a.(type) {
	case primitive.Point:
		pos, ok = a.P, overlapPoint(a.P, b)
	case primitive.Line:
		switch b := b.(type) {
		case primitive.Line:
			pos, ok = CollideLineLine(a, b)
		case primitive.Segment:
			var d float32
			pos, _, _, _, d = ClosestLineSegment(a, b)
			ok = d < eps
		case primitive.Plane:
			pos, ok = CollideLinePlane(a, b)
		case primitive.Triangle:
			pos, ok = CollideLineTriangle(a, b)
		case primitive.Square:
			pos, ok = CollideLineSquare(a, b)
		case primitive.AABB:
			pos, ok = CollideLineAABB(a, b)
		case primitive.Sphere:
			pos, ok = CollideLineSphere(a, b)
		case primitive.Cylinder:
			pos, ok = CollideLineCylinder(a, b)
		case primitive.Capsule:
			pos, ok = CollideLineCapsule(a, b)
		}
	case primitive.Segment:
		switch b := b.(type) {
		case primitive.Segment:
			var d float32
			pos, _, _, _, d = ClosestSegmentSegment(a, b)
			ok = d < eps
		case primitive.Plane:
			pos, ok = CollideSegmentPlane(a, b)
		case primitive.Triangle:
			pos, ok = CollideSegmentTriangle(a, b)
		case primitive.Square:
			pos, ok = CollideSegmentSquare(a, b)
		case primitive.AABB:
			pos, ok = CollideSegmentAABB(a, b)
		case primitive.Sphere:
			pos, ok = CollideSegmentSphere(a, b)
		case primitive.Cylinder:
			pos, ok = CollideSegmentCylinder(a, b)
		case primitive.Capsule:
			pos, ok = CollideSegmentCapsule(a, b)
		}
	}
	if !ok {
		return Contact{}
	}
	return Contact{Hit: true, Position: pos}
}

// DistanceSq measures pairs built from points, lines, segments and flat
// shapes. ok is false for pairs it has no measure for.
func DistanceSq(a, b primitive.Shape) (float32, bool) {
	a, b = ordered(a, b)
	switch a := a.(type) {
	case primitive.Point:
		switch b := b.(type) {
		case primitive.Point:
			return DistanceSqPointPoint(a.P, b.P), true
		case primitive.Line:
			return DistanceSqPointLine(a.P, b), true
		case primitive.Segment:
			return DistanceSqPointSegment(a.P, b), true
		case primitive.Plane:
			d := DistancePointPlane(a.P, b)
			return d * d, true
		case primitive.Triangle:
			return DistanceSqPointTriangle(a.P, b), true
		case primitive.Square:
			return DistanceSqPointSquare(a.P, b), true
		case primitive.AABB:
			return DistanceSqPointAABB(a.P, b), true
		}
	case primitive.Line:
		switch b := b.(type) {
		case primitive.Line:
			return DistanceSqLineLine(a, b), true
		case primitive.Segment:
			return DistanceSqLineSegment(a, b), true
		case primitive.Plane:
			d := DistanceLinePlane(a, b)
			return d * d, true
		}
	case primitive.Segment:
		switch b := b.(type) {
		case primitive.Segment:
			return DistanceSqSegmentSegment(a, b), true
		case primitive.Plane:
			d := DistanceSegmentPlane(a, b)
			return d * d, true
		}
	}
	return 0, false
}

// Distance is the square root of DistanceSq, except for planes which are
// measured directly.
func Distance(a, b primitive.Shape) (float32, bool) {
	a, b = ordered(a, b)
	if pl, ok := b.(primitive.Plane); ok {
		switch a := a.(type) {
		case primitive.Point:
			return DistancePointPlane(a.P, pl), true
		case primitive.Line:
			return DistanceLinePlane(a, pl), true
		case primitive.Segment:
			return DistanceSegmentPlane(a, pl), true
		}
	}
	d, ok := DistanceSq(a, b)
	return primitive.Sqrt(d), ok
}
