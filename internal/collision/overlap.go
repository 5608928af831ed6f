package collision

import (
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Regions are closed: a point on a boundary overlaps. Thin shapes (points,
// lines, segments, planes) touch within eps.

func OverlapPointPoint(a, b rl.Vector3) bool {
	return DistanceSqPointPoint(a, b) < eps*eps
}

func OverlapPointLine(p rl.Vector3, l primitive.Line) bool {
	return DistanceSqPointLine(p, l) < eps
}

func OverlapPointSegment(p rl.Vector3, s primitive.Segment) bool {
	return DistanceSqPointSegment(p, s) < eps
}

func OverlapPointPlane(p rl.Vector3, pl primitive.Plane) bool {
	return DistancePointPlane(p, pl) < eps
}

func OverlapPointTriangle(p rl.Vector3, tri primitive.Triangle) bool {
	n := tri.Normal()
	return primitive.Abs(PlaneDistance(tri.Plane(), p)) < eps && InsideConvex(n, tri.Points(), p)
}

func OverlapPointSquare(p rl.Vector3, sq primitive.Square) bool {
	return primitive.Abs(PlaneDistance(sq.Plane(), p)) < eps && InsideConvex(sq.Normal(), sq.Points(), p)
}

func OverlapPointAABB(p rl.Vector3, box primitive.AABB) bool {
	return box.Contains(p)
}

func OverlapPointSphere(p rl.Vector3, s primitive.Sphere) bool {
	return DistanceSqPointPoint(p, s.Position) <= s.Radius*s.Radius
}

func OverlapPointCylinder(p rl.Vector3, c primitive.Cylinder) bool {
	return DistanceSqPointLine(p, c.Line) <= c.Radius*c.Radius
}

func OverlapPointCapsule(p rl.Vector3, c primitive.Capsule) bool {
	return DistanceSqPointSegment(p, c.S) <= c.Radius*c.Radius
}

// OverlapPointDome reports whether p lies within the dome's shell.
func OverlapPointDome(p rl.Vector3, d primitive.Dome) bool {
	dist := rl.Vector3Length(rl.Vector3Subtract(p, d.Position))
	return dist >= d.MinRadius && dist <= d.MaxRadius
}

func OverlapLineLine(l1, l2 primitive.Line) bool {
	return DistanceSqLineLine(l1, l2) < eps
}

func OverlapLineSegment(l primitive.Line, s primitive.Segment) bool {
	return DistanceSqLineSegment(l, s) < eps
}

func OverlapLinePlane(l primitive.Line, pl primitive.Plane) bool {
	_, _, ok := IntersectLinePlane(l, pl)
	return ok
}

func OverlapLineTriangle(l primitive.Line, tri primitive.Triangle) bool {
	_, ok := CollideLineTriangle(l, tri)
	return ok
}

func OverlapLineSquare(l primitive.Line, sq primitive.Square) bool {
	_, ok := CollideLineSquare(l, sq)
	return ok
}

func OverlapLineAABB(l primitive.Line, box primitive.AABB) bool {
	_, ok := CollideLineAABB(l, box)
	return ok
}

func OverlapLineSphere(l primitive.Line, s primitive.Sphere) bool {
	return DistanceSqPointLine(s.Position, l) <= s.Radius*s.Radius
}

func OverlapLineCylinder(l primitive.Line, c primitive.Cylinder) bool {
	return DistanceSqLineLine(l, c.Line) <= c.Radius*c.Radius
}

func OverlapLineCapsule(l primitive.Line, c primitive.Capsule) bool {
	return DistanceSqLineSegment(l, c.S) <= c.Radius*c.Radius
}

func OverlapSegmentSegment(s1, s2 primitive.Segment) bool {
	return DistanceSqSegmentSegment(s1, s2) < eps
}

func OverlapSegmentPlane(s primitive.Segment, pl primitive.Plane) bool {
	return DistanceSegmentPlane(s, pl) < eps
}

func OverlapSegmentTriangle(s primitive.Segment, tri primitive.Triangle) bool {
	_, ok := CollideSegmentTriangle(s, tri)
	return ok
}

func OverlapSegmentSquare(s primitive.Segment, sq primitive.Square) bool {
	_, ok := CollideSegmentSquare(s, sq)
	return ok
}

func OverlapSegmentAABB(s primitive.Segment, box primitive.AABB) bool {
	if box.Contains(s.P) || box.Contains(s.End()) {
		return true
	}
	_, ok := CollideSegmentAABB(s, box)
	return ok
}

func OverlapSegmentSphere(s primitive.Segment, sp primitive.Sphere) bool {
	return DistanceSqPointSegment(sp.Position, s) <= sp.Radius*sp.Radius
}

func OverlapSegmentCylinder(s primitive.Segment, c primitive.Cylinder) bool {
	return DistanceSqLineSegment(c.Line, s) <= c.Radius*c.Radius
}

func OverlapSegmentCapsule(s primitive.Segment, c primitive.Capsule) bool {
	return DistanceSqSegmentSegment(s, c.S) <= c.Radius*c.Radius
}

func OverlapPlanePlane(p1, p2 primitive.Plane) bool {
	if !primitive.IsParallel(p1.Normal, p2.Normal) {
		return true
	}
	return DistancePointPlane(p2.P, p1) < eps
}

func OverlapPlaneSphere(pl primitive.Plane, s primitive.Sphere) bool {
	return DistancePointPlane(s.Position, pl) <= s.Radius
}

func OverlapPlaneCylinder(pl primitive.Plane, c primitive.Cylinder) bool {
	return DistanceLinePlane(c.Line, pl) <= c.Radius
}

func OverlapPlaneCapsule(pl primitive.Plane, c primitive.Capsule) bool {
	return DistanceSegmentPlane(c.S, pl) <= c.Radius
}

// overlapPolygonSphere tests the plane first, then the projected center,
// then every edge.
func overlapPolygonSphere(normal rl.Vector3, pts []rl.Vector3, s primitive.Sphere) bool {
	pl := primitive.Plane{P: pts[0], Normal: normal}
	if DistancePointPlane(s.Position, pl) > s.Radius {
		return false
	}
	if InsideConvex(normal, pts, primitive.CastToPlane(pl, s.Position)) {
		return true
	}
	rr := s.Radius * s.Radius
	for i := range pts {
		if DistanceSqPointSegment(s.Position, primitive.NewSegment(pts[i], pts[(i+1)%len(pts)])) <= rr {
			return true
		}
	}
	return false
}

func OverlapTriangleSphere(tri primitive.Triangle, s primitive.Sphere) bool {
	return overlapPolygonSphere(tri.Normal(), tri.Points(), s)
}

func OverlapSquareSphere(sq primitive.Square, s primitive.Sphere) bool {
	return overlapPolygonSphere(sq.Normal(), sq.Points(), s)
}

// NearestPolygonSphere returns the point of a convex polygon closest to the
// sphere center when the two overlap.
func NearestPolygonSphere(normal rl.Vector3, pts []rl.Vector3, s primitive.Sphere) (rl.Vector3, bool) {
	pl := primitive.Plane{P: pts[0], Normal: normal}
	if DistancePointPlane(s.Position, pl) > s.Radius {
		return rl.Vector3{}, false
	}
	onPlane := primitive.CastToPlane(pl, s.Position)
	if InsideConvex(normal, pts, onPlane) {
		return onPlane, true
	}
	rr := s.Radius * s.Radius
	var nearest rl.Vector3
	found := false
	for i := range pts {
		foot, _, d := ClosestPointSegment(s.Position, primitive.NewSegment(pts[i], pts[(i+1)%len(pts)]))
		if d <= rr {
			rr = d
			nearest = foot
			found = true
		}
	}
	return nearest, found
}

func NearestSquareSphere(sq primitive.Square, s primitive.Sphere) (rl.Vector3, bool) {
	return NearestPolygonSphere(sq.Normal(), sq.Points(), s)
}

func OverlapSquareCylinder(sq primitive.Square, c primitive.Cylinder) bool {
	if pos, _, ok := IntersectLinePlane(c.Line, sq.Plane()); ok && InsideConvex(sq.Normal(), sq.Points(), pos) {
		return true
	}
	rr := c.Radius * c.Radius
	for _, side := range sq.Sides() {
		if DistanceSqLineSegment(c.Line, side) <= rr {
			return true
		}
	}
	return false
}

func OverlapSquareCapsule(sq primitive.Square, c primitive.Capsule) bool {
	pl := sq.Plane()
	pos, _, dist := ClosestPlaneSegment(pl, c.S)
	if dist > c.Radius {
		return false
	}
	if InsideConvex(pl.Normal, sq.Points(), primitive.CastToPlane(pl, pos)) {
		return true
	}
	for _, side := range sq.Sides() {
		if OverlapSegmentCapsule(side, c) {
			return true
		}
	}
	return false
}

func OverlapAABBAABB(a, b primitive.AABB) bool {
	amn, amx := a.WorldMin(), a.WorldMax()
	bmn, bmx := b.WorldMin(), b.WorldMax()
	return amn.X <= bmx.X && amx.X >= bmn.X &&
		amn.Y <= bmx.Y && amx.Y >= bmn.Y &&
		amn.Z <= bmx.Z && amx.Z >= bmn.Z
}

func OverlapAABBSphere(box primitive.AABB, s primitive.Sphere) bool {
	return DistanceSqPointAABB(s.Position, box) <= s.Radius*s.Radius
}

func OverlapAABBCapsule(box primitive.AABB, c primitive.Capsule) bool {
	if box.Contains(c.S.P) || box.Contains(c.S.End()) {
		return true
	}
	for _, face := range box.Faces() {
		if OverlapSquareCapsule(face, c) {
			return true
		}
	}
	return false
}

func OverlapSphereSphere(a, b primitive.Sphere) bool {
	r := a.Radius + b.Radius
	return DistanceSqPointPoint(a.Position, b.Position) <= r*r
}

func OverlapSphereCylinder(s primitive.Sphere, c primitive.Cylinder) bool {
	r := s.Radius + c.Radius
	return DistanceSqPointLine(s.Position, c.Line) <= r*r
}

func OverlapSphereCapsule(s primitive.Sphere, c primitive.Capsule) bool {
	r := s.Radius + c.Radius
	return DistanceSqPointSegment(s.Position, c.S) <= r*r
}

func OverlapCylinderCylinder(a, b primitive.Cylinder) bool {
	r := a.Radius + b.Radius
	return DistanceSqLineLine(a.Line, b.Line) <= r*r
}

func OverlapCylinderCapsule(cy primitive.Cylinder, c primitive.Capsule) bool {
	r := cy.Radius + c.Radius
	return DistanceSqLineSegment(cy.Line, c.S) <= r*r
}

func OverlapCapsuleCapsule(a, b primitive.Capsule) bool {
	r := a.Radius + b.Radius
	return DistanceSqSegmentSegment(a.S, b.S) <= r*r
}
