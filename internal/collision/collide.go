package collision

import (
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Contact is the result of a single-point static collision query.
type Contact struct {
	Hit      bool
	Position rl.Vector3
}

// Lines report their first contact in parameter order; segments report the
// contact nearest their start.

func CollideLineLine(l1, l2 primitive.Line) (rl.Vector3, bool) {
	p1, _, _, _, d := ClosestLineLine(l1, l2)
	return p1, d < eps
}

func CollideLinePlane(l primitive.Line, pl primitive.Plane) (rl.Vector3, bool) {
	pos, _, ok := IntersectLinePlane(l, pl)
	return pos, ok
}

func CollideSegmentPlane(s primitive.Segment, pl primitive.Plane) (rl.Vector3, bool) {
	pos, t, ok := IntersectLinePlane(s.Line(), pl)
	if !ok || t < 0 || t > 1 {
		return rl.Vector3{}, false
	}
	return pos, true
}

func collideLinePolygon(normal rl.Vector3, pts []rl.Vector3, l primitive.Line, lo, hi float32) (rl.Vector3, bool) {
	pl := primitive.Plane{P: pts[0], Normal: normal}
	vn := rl.Vector3DotProduct(normal, l.V)
	if primitive.Abs(vn) < eps {
		if DistancePointPlane(l.P, pl) >= eps {
			return rl.Vector3{}, false
		}
		return clipLineToPolygon(normal, pts, l, lo, hi)
	}
	t := rl.Vector3DotProduct(normal, rl.Vector3Subtract(pl.P, l.P)) / vn
	if t < lo || t > hi {
		return rl.Vector3{}, false
	}
	pos := l.At(t)
	return pos, InsideConvex(normal, pts, pos)
}

func CollideLineTriangle(l primitive.Line, tri primitive.Triangle) (rl.Vector3, bool) {
	return collideLinePolygon(tri.Normal(), tri.Points(), l, infLo, infHi)
}

func CollideSegmentTriangle(s primitive.Segment, tri primitive.Triangle) (rl.Vector3, bool) {
	return collideLinePolygon(tri.Normal(), tri.Points(), s.Line(), 0, 1)
}

func CollideLineSquare(l primitive.Line, sq primitive.Square) (rl.Vector3, bool) {
	return collideLinePolygon(sq.Normal(), sq.Points(), l, infLo, infHi)
}

func CollideSegmentSquare(s primitive.Segment, sq primitive.Square) (rl.Vector3, bool) {
	return collideLinePolygon(sq.Normal(), sq.Points(), s.Line(), 0, 1)
}

// collideLineFaces returns the face hit with the smallest line parameter.
func collideLineFaces(l primitive.Line, box primitive.AABB, lo, hi float32) (rl.Vector3, bool) {
	var best rl.Vector3
	var bestT float32 = infHi
	found := false
	for _, face := range box.Faces() {
		pos, ok := collideLinePolygon(face.Normal(), face.Points(), l, lo, hi)
		if !ok {
			continue
		}
		_, t, _ := ClosestPointLine(pos, l)
		if !found || t < bestT {
			best, bestT, found = pos, t, true
		}
	}
	return best, found
}

func CollideLineAABB(l primitive.Line, box primitive.AABB) (rl.Vector3, bool) {
	return collideLineFaces(l, box, infLo, infHi)
}

// CollideSegmentAABB reports the segment start when it begins inside the box.
func CollideSegmentAABB(s primitive.Segment, box primitive.AABB) (rl.Vector3, bool) {
	if box.Contains(s.P) {
		return s.P, true
	}
	return collideLineFaces(s.Line(), box, 0, 1)
}

// sphereEntry returns the smaller parameter at which p+v*t meets the sphere
// surface.
func sphereEntry(p, v, center rl.Vector3, radius float32) (float32, bool) {
	a := rl.Vector3LengthSqr(v)
	w := rl.Vector3Subtract(p, center)
	c := rl.Vector3LengthSqr(w) - radius*radius
	if a < eps*eps {
		return 0, c <= 0
	}
	b := rl.Vector3DotProduct(v, w)
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	return (-b - primitive.Sqrt(disc)) / a, true
}

func CollideLineSphere(l primitive.Line, s primitive.Sphere) (rl.Vector3, bool) {
	t, ok := sphereEntry(l.P, l.V, s.Position, s.Radius)
	if !ok {
		return rl.Vector3{}, false
	}
	return l.At(t), true
}

// CollideSegmentSphere reports the segment start when it begins inside.
func CollideSegmentSphere(s primitive.Segment, sp primitive.Sphere) (rl.Vector3, bool) {
	if OverlapPointSphere(s.P, sp) {
		return s.P, true
	}
	t, ok := sphereEntry(s.P, s.V, sp.Position, sp.Radius)
	if !ok || t < 0 || t > 1 {
		return rl.Vector3{}, false
	}
	return s.At(t), true
}

// cylinderEntry returns the smaller parameter at which p+v*t meets the
// infinite cylinder around axis through origin.
func cylinderEntry(p, v, origin, axis rl.Vector3, radius float32) (float32, bool) {
	aa := rl.Vector3LengthSqr(axis)
	if aa < eps*eps {
		return 0, false
	}
	perp := func(x rl.Vector3) rl.Vector3 {
		return rl.Vector3Subtract(x, rl.Vector3Scale(axis, rl.Vector3DotProduct(axis, x)/aa))
	}
	vp := perp(v)
	wp := perp(rl.Vector3Subtract(p, origin))
	a := rl.Vector3LengthSqr(vp)
	if a < eps*eps {
		return 0, false
	}
	b := rl.Vector3DotProduct(vp, wp)
	c := rl.Vector3LengthSqr(wp) - radius*radius
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	return (-b - primitive.Sqrt(disc)) / a, true
}

// capsuleEntry is the earliest of the side and both caps, within [lo, hi].
func capsuleEntry(p, v rl.Vector3, c primitive.Capsule, lo, hi float32) (float32, bool) {
	best := hi
	found := false
	try := func(t float32, ok bool, valid bool) {
		if ok && valid && t >= lo && t <= best {
			best, found = t, true
		}
	}
	if t, ok := cylinderEntry(p, v, c.S.P, c.S.V, c.Radius); ok {
		pos := rl.Vector3Add(p, rl.Vector3Scale(v, t))
		try(t, ok, primitive.IsInside(c.S, pos))
	}
	for _, cp := range c.Caps() {
		t, ok := sphereEntry(p, v, cp.Position, cp.Radius)
		try(t, ok, true)
	}
	return best, found
}

func CollideLineCapsule(l primitive.Line, c primitive.Capsule) (rl.Vector3, bool) {
	t, ok := capsuleEntry(l.P, l.V, c, infLo, infHi)
	if !ok {
		return rl.Vector3{}, false
	}
	return l.At(t), true
}

// CollideSegmentCapsule reports the segment start when it begins inside.
func CollideSegmentCapsule(s primitive.Segment, c primitive.Capsule) (rl.Vector3, bool) {
	if OverlapPointCapsule(s.P, c) {
		return s.P, true
	}
	t, ok := capsuleEntry(s.P, s.V, c, 0, 1)
	if !ok {
		return rl.Vector3{}, false
	}
	return s.At(t), true
}

func CollideLineCylinder(l primitive.Line, c primitive.Cylinder) (rl.Vector3, bool) {
	if t, ok := cylinderEntry(l.P, l.V, c.Line.P, c.Line.V, c.Radius); ok {
		return l.At(t), true
	}
	// parallel to the axis, or a degenerate axis
	if DistanceSqLineLine(l, c.Line) <= c.Radius*c.Radius {
		return l.P, true
	}
	return rl.Vector3{}, false
}

func CollideSegmentCylinder(s primitive.Segment, c primitive.Cylinder) (rl.Vector3, bool) {
	if OverlapPointCylinder(s.P, c) {
		return s.P, true
	}
	t, ok := cylinderEntry(s.P, s.V, c.Line.P, c.Line.V, c.Radius)
	if !ok || t < 0 || t > 1 {
		return rl.Vector3{}, false
	}
	return s.At(t), true
}
