package physics

import (
	"collide3d/internal/collision"
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaycastHit is the nearest surface a ray reached. Exactly one of Body and
// Static is set.
type RaycastHit struct {
	Body     *Body
	Static   *Static
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast checks for intersection with all bodies at their confirmed
// positions and all statics and returns the closest hit. A ray starting
// inside a shape hits it at distance 0.
func (p *PhysicsWorld) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	if primitive.NearZero(direction) || maxDistance <= 0 {
		return RaycastHit{}, false
	}
	ray := primitive.Segment{P: origin, V: rl.Vector3Scale(direction, maxDistance)}

	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	try := func(shape primitive.Shape) (RaycastHit, bool) {
		if !collision.Supported(primitive.KindSegment, shape.Kind()) {
			return RaycastHit{}, false
		}
		c := collision.Collide(ray, shape)
		if !c.Hit {
			return RaycastHit{}, false
		}
		d := rl.Vector3Distance(origin, c.Position)
		if hit && d >= closestHit.Distance || d > maxDistance {
			return RaycastHit{}, false
		}
		return RaycastHit{Point: c.Position, Normal: surfaceNormal(shape, c.Position, direction), Distance: d}, true
	}

	for _, b := range p.Bodies {
		if h, ok := try(b.Current()); ok {
			closestHit, hit = h, true
			closestHit.Body = b
		}
	}
	for _, s := range p.Statics {
		if h, ok := try(s.Shape); ok {
			closestHit, hit = h, true
			closestHit.Static = s
		}
	}

	return closestHit, hit
}

// surfaceNormal is the outward normal of s at a point on its surface, turned
// to face against dir for two-sided shapes.
func surfaceNormal(s primitive.Shape, at, dir rl.Vector3) rl.Vector3 {
	var n rl.Vector3
	switch s := s.(type) {
	case primitive.Plane:
		n = s.Normal
	case primitive.Triangle:
		n = s.Normal()
	case primitive.Square:
		n = s.Normal()
	case primitive.AABB:
		n = boxFaceNormal(s, at)
	case primitive.Sphere:
		n = primitive.HitDirection(s, at, s.Position)
	case primitive.Cylinder:
		n = primitive.HitDirection(s, at, s.Line.P)
	case primitive.Capsule:
		n = primitive.HitDirection(s, at, s.S.P)
	}
	if primitive.NearZero(n) {
		return rl.Vector3Negate(dir)
	}
	switch s.(type) {
	case primitive.Plane, primitive.Triangle, primitive.Square:
		if rl.Vector3DotProduct(n, dir) > 0 {
			n = rl.Vector3Negate(n)
		}
	}
	return n
}

// boxFaceNormal picks the face of the box nearest to at.
func boxFaceNormal(b primitive.AABB, at rl.Vector3) rl.Vector3 {
	lo, hi := b.WorldMin(), b.WorldMax()
	type face struct {
		d float32
		n rl.Vector3
	}
	faces := []face{
		{primitive.Abs(at.X - lo.X), rl.Vector3{X: -1}},
		{primitive.Abs(at.X - hi.X), rl.Vector3{X: 1}},
		{primitive.Abs(at.Y - lo.Y), rl.Vector3{Y: -1}},
		{primitive.Abs(at.Y - hi.Y), rl.Vector3{Y: 1}},
		{primitive.Abs(at.Z - lo.Z), rl.Vector3{Z: -1}},
		{primitive.Abs(at.Z - hi.Z), rl.Vector3{Z: 1}},
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.d < best.d {
			best = f
		}
	}
	return best.n
}
