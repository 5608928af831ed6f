package collision

import (
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const eps = primitive.Epsilon

// ClosestPointLine returns the foot of p on l, its parameter along l.V and
// the squared distance. A zero-length line degenerates to its origin.
func ClosestPointLine(p rl.Vector3, l primitive.Line) (foot rl.Vector3, t, distSq float32) {
	lenSq := rl.Vector3LengthSqr(l.V)
	if lenSq > eps*eps {
		t = rl.Vector3DotProduct(l.V, rl.Vector3Subtract(p, l.P)) / lenSq
	}
	foot = l.At(t)
	return foot, t, rl.Vector3LengthSqr(rl.Vector3Subtract(p, foot))
}

// ClosestPointSegment is ClosestPointLine with t clamped to [0,1].
func ClosestPointSegment(p rl.Vector3, s primitive.Segment) (foot rl.Vector3, t, distSq float32) {
	_, t, _ = ClosestPointLine(p, s.Line())
	t = primitive.Clamp(t, 0, 1)
	foot = s.At(t)
	return foot, t, rl.Vector3LengthSqr(rl.Vector3Subtract(p, foot))
}

// ClosestLineLine returns the closest points of two infinite lines and their
// parameters. Parallel lines are measured from l1's origin.
func ClosestLineLine(l1, l2 primitive.Line) (p1, p2 rl.Vector3, t1, t2, distSq float32) {
	d22 := rl.Vector3LengthSqr(l2.V)
	if primitive.IsParallel(l1.V, l2.V) {
		p1 = l1.P
		p2, t2, distSq = ClosestPointLine(p1, l2)
		return p1, p2, 0, t2, distSq
	}

	d11 := rl.Vector3LengthSqr(l1.V)
	d12 := rl.Vector3DotProduct(l1.V, l2.V)
	w := rl.Vector3Subtract(l1.P, l2.P)
	t1 = (d12*rl.Vector3DotProduct(l2.V, w) - d22*rl.Vector3DotProduct(l1.V, w)) / (d11*d22 - d12*d12)
	p1 = l1.At(t1)
	t2 = rl.Vector3DotProduct(l2.V, rl.Vector3Subtract(p1, l2.P)) / d22
	p2 = l2.At(t2)
	return p1, p2, t1, t2, rl.Vector3LengthSqr(rl.Vector3Subtract(p2, p1))
}

// ClosestLineSegment returns the closest points between l and s, the second
// parameter clamped to s.
func ClosestLineSegment(l primitive.Line, s primitive.Segment) (p1, p2 rl.Vector3, t1, t2, distSq float32) {
	if primitive.IsParallel(l.V, s.V) {
		p2 = s.P
		p1, t1, distSq = ClosestPointLine(p2, l)
		return p1, p2, t1, 0, distSq
	}
	p1, p2, t1, t2, distSq = ClosestLineLine(l, s.Line())
	if t2 >= 0 && t2 <= 1 {
		return p1, p2, t1, t2, distSq
	}
	t2 = primitive.Clamp(t2, 0, 1)
	p2 = s.At(t2)
	p1, t1, distSq = ClosestPointLine(p2, l)
	return p1, p2, t1, t2, distSq
}

// ClosestSegmentSegment returns the closest points of two segments with both
// parameters in [0,1]. When the unclamped line solution falls outside a
// segment it is clamped to that endpoint and the other side re-projected.
func ClosestSegmentSegment(s1, s2 primitive.Segment) (p1, p2 rl.Vector3, t1, t2, distSq float32) {
	d11 := rl.Vector3LengthSqr(s1.V)
	d22 := rl.Vector3LengthSqr(s2.V)
	w := rl.Vector3Subtract(s1.P, s2.P)
	f := rl.Vector3DotProduct(s2.V, w)

	switch {
	case d11 <= eps*eps && d22 <= eps*eps:
		// both degenerate to points
	case d11 <= eps*eps:
		t2 = primitive.Clamp(f/d22, 0, 1)
	default:
		c := rl.Vector3DotProduct(s1.V, w)
		if d22 <= eps*eps {
			t1 = primitive.Clamp(-c/d11, 0, 1)
			break
		}
		d12 := rl.Vector3DotProduct(s1.V, s2.V)
		denom := d11*d22 - d12*d12
		if denom > eps*eps && !primitive.IsParallel(s1.V, s2.V) {
			t1 = primitive.Clamp((d12*f-c*d22)/denom, 0, 1)
		}
		t2 = (d12*t1 + f) / d22
		if t2 < 0 {
			t2 = 0
			t1 = primitive.Clamp(-c/d11, 0, 1)
		} else if t2 > 1 {
			t2 = 1
			t1 = primitive.Clamp((d12-c)/d11, 0, 1)
		}
	}

	p1 = s1.At(t1)
	p2 = s2.At(t2)
	return p1, p2, t1, t2, rl.Vector3LengthSqr(rl.Vector3Subtract(p2, p1))
}

// ClosestPlaneSegment returns the point of s nearest to pl, its parameter
// and the unsigned distance. A crossing segment reports its intersection at
// distance zero; a parallel one reports its start.
func ClosestPlaneSegment(pl primitive.Plane, s primitive.Segment) (pos rl.Vector3, t, dist float32) {
	bn := rl.Vector3DotProduct(rl.Vector3Subtract(pl.P, s.P), pl.Normal)
	if primitive.Abs(bn) < eps {
		return s.P, 0, 0
	}
	vn := rl.Vector3DotProduct(pl.Normal, s.V)
	if primitive.Abs(vn) < eps {
		return s.P, 0, primitive.Abs(bn)
	}
	t = bn / vn
	switch {
	case t < 0:
		return s.P, 0, primitive.Abs(bn)
	case t > 1:
		end := s.End()
		return end, 1, primitive.Abs(rl.Vector3DotProduct(rl.Vector3Subtract(pl.P, end), pl.Normal))
	}
	return s.At(t), t, 0
}

// IntersectLinePlane returns where l crosses pl. A line lying in the plane
// reports its origin; a parallel line off the plane reports false.
func IntersectLinePlane(l primitive.Line, pl primitive.Plane) (pos rl.Vector3, t float32, ok bool) {
	vn := rl.Vector3DotProduct(pl.Normal, l.V)
	bn := rl.Vector3DotProduct(pl.Normal, rl.Vector3Subtract(pl.P, l.P))
	if primitive.Abs(vn) < eps {
		if primitive.Abs(bn) < eps {
			return l.P, 0, true
		}
		return rl.Vector3{}, 0, false
	}
	t = bn / vn
	return l.At(t), t, true
}

// PlaneDistance is the signed distance of p in front of pl.
func PlaneDistance(pl primitive.Plane, p rl.Vector3) float32 {
	return rl.Vector3DotProduct(pl.Normal, rl.Vector3Subtract(p, pl.P))
}

func DistanceSqPointPoint(a, b rl.Vector3) float32 {
	return rl.Vector3LengthSqr(rl.Vector3Subtract(a, b))
}

func DistanceSqPointLine(p rl.Vector3, l primitive.Line) float32 {
	_, _, d := ClosestPointLine(p, l)
	return d
}

func DistanceSqPointSegment(p rl.Vector3, s primitive.Segment) float32 {
	_, _, d := ClosestPointSegment(p, s)
	return d
}

func DistancePointPlane(p rl.Vector3, pl primitive.Plane) float32 {
	return primitive.Abs(PlaneDistance(pl, p))
}

// DistanceSqPointPolygon measures p against a closed convex planar polygon.
func DistanceSqPointPolygon(p rl.Vector3, normal rl.Vector3, pts []rl.Vector3) float32 {
	pl := primitive.Plane{P: pts[0], Normal: normal}
	if InsideConvex(normal, pts, primitive.CastToPlane(pl, p)) {
		d := PlaneDistance(pl, p)
		return d * d
	}
	best := float32(-1)
	for i := range pts {
		d := DistanceSqPointSegment(p, primitive.NewSegment(pts[i], pts[(i+1)%len(pts)]))
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

func DistanceSqPointSquare(p rl.Vector3, sq primitive.Square) float32 {
	return DistanceSqPointPolygon(p, sq.Normal(), sq.Points())
}

func DistanceSqPointTriangle(p rl.Vector3, tri primitive.Triangle) float32 {
	return DistanceSqPointPolygon(p, tri.Normal(), tri.Points())
}

// DistanceSqPointAABB is zero inside the box.
func DistanceSqPointAABB(p rl.Vector3, box primitive.AABB) float32 {
	mn, mx := box.WorldMin(), box.WorldMax()
	q := rl.Vector3{
		X: primitive.Clamp(p.X, mn.X, mx.X),
		Y: primitive.Clamp(p.Y, mn.Y, mx.Y),
		Z: primitive.Clamp(p.Z, mn.Z, mx.Z),
	}
	return rl.Vector3LengthSqr(rl.Vector3Subtract(p, q))
}

func DistanceSqLineLine(l1, l2 primitive.Line) float32 {
	_, _, _, _, d := ClosestLineLine(l1, l2)
	return d
}

func DistanceSqLineSegment(l primitive.Line, s primitive.Segment) float32 {
	_, _, _, _, d := ClosestLineSegment(l, s)
	return d
}

func DistanceSqSegmentSegment(s1, s2 primitive.Segment) float32 {
	_, _, _, _, d := ClosestSegmentSegment(s1, s2)
	return d
}

func DistanceSegmentPlane(s primitive.Segment, pl primitive.Plane) float32 {
	_, _, d := ClosestPlaneSegment(pl, s)
	return d
}

// DistanceLinePlane is zero unless the line runs parallel to the plane.
func DistanceLinePlane(l primitive.Line, pl primitive.Plane) float32 {
	if primitive.Abs(rl.Vector3DotProduct(pl.Normal, l.V)) < eps {
		return DistancePointPlane(l.P, pl)
	}
	return 0
}
