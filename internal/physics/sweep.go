package physics

import (
	"math"

	"collide3d/internal/collision"
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Static sweeps move one body against a shape that stays put. Normals point
// from the static shape toward the body.

func StaticSpherePoint(a MoveCollData[primitive.Sphere], p rl.Vector3) HitData {
	return SphereSphere(a, still(primitive.Sphere{Position: p}))
}

func StaticSphereSphere(a MoveCollData[primitive.Sphere], s primitive.Sphere) HitData {
	return SphereSphere(a, still(s))
}

// StaticSphereLine sweeps the sphere center against the line's reach.
func StaticSphereLine(a MoveCollData[primitive.Sphere], l primitive.Line) HitData {
	s, se := a.Current(), a.Predicted()
	onLine := primitive.CastToLine(l, s.Position)
	w := rl.Vector3Subtract(s.Position, onLine)
	if distSq := rl.Vector3LengthSqr(w); distSq <= s.Radius*s.Radius {
		return overlapping(onLine, rl.Vector3Normalize(w), s.Radius-primitive.Sqrt(distSq))
	}

	start := rl.Vector3Subtract(onLine, s.Position)
	end := rl.Vector3Subtract(primitive.CastToLine(l, se.Position), se.Position)
	t, ok := solveTOI(start, rl.Vector3Subtract(end, start), s.Radius)
	if !ok {
		return HitData{}
	}
	pos := primitive.Lerp(s.Position, se.Position, t)
	hitPos := primitive.CastToLine(l, pos)
	return HitData{
		Hit:       true,
		Time:      t,
		HitPos:    hitPos,
		HitNormal: rl.Vector3Normalize(rl.Vector3Subtract(pos, hitPos)),
	}
}

// StaticSphereSegment sweeps against the segment's line, falling back to
// its endpoints when the contact lies beyond them.
func StaticSphereSegment(a MoveCollData[primitive.Sphere], seg primitive.Segment) HitData {
	s := a.Current()
	foot, _, distSq := collision.ClosestPointSegment(s.Position, seg)
	if distSq <= s.Radius*s.Radius {
		return overlapping(foot, rl.Vector3Normalize(rl.Vector3Subtract(s.Position, foot)), s.Radius-primitive.Sqrt(distSq))
	}
	if h := StaticSphereLine(a, seg.Line()); h.Hit && primitive.IsInside(seg, h.HitPos) {
		return h
	}
	return earliest(StaticSpherePoint(a, seg.P), StaticSpherePoint(a, seg.End()))
}

// StaticSpherePlane treats the plane as the face of a solid half-space: a
// sphere whose center is behind it is pushed back out in front.
func StaticSpherePlane(a MoveCollData[primitive.Sphere], pl primitive.Plane) HitData {
	s, se := a.Current(), a.Predicted()
	if !primitive.IsFront(pl, s.Position) {
		hitPos := primitive.CastToPlane(pl, s.Position)
		return overlapping(hitPos, pl.Normal, rl.Vector3Length(rl.Vector3Subtract(s.Position, hitPos))+s.Radius)
	}
	dist := collision.PlaneDistance(pl, s.Position)
	if dist <= s.Radius {
		return overlapping(primitive.CastToPlane(pl, s.Position), pl.Normal, s.Radius-dist)
	}
	moved := collision.PlaneDistance(pl, se.Position)
	if moved > s.Radius || dist-moved < eps {
		return HitData{}
	}
	t := (dist - s.Radius) / (dist - moved)
	if t > 1 {
		return HitData{}
	}
	return HitData{
		Hit:       true,
		Time:      t,
		HitPos:    primitive.CastToPlane(pl, primitive.Lerp(s.Position, se.Position, t)),
		HitNormal: pl.Normal,
	}
}

func staticSpherePolygon(a MoveCollData[primitive.Sphere], b boundary) HitData {
	s := a.Current()
	b = b.facing(s.Position)
	if nearest, ok := collision.NearestPolygonSphere(b.winding, b.pts, s); ok {
		return overlapping(nearest, b.plane.Normal, s.Radius-rl.Vector3Length(rl.Vector3Subtract(s.Position, nearest)))
	}
	return sweepBoundary(b, StaticSpherePlane(a, b.plane), func(e primitive.Segment) HitData {
		return StaticSphereSegment(a, e)
	})
}

func StaticSphereSquare(a MoveCollData[primitive.Sphere], sq primitive.Square) HitData {
	return staticSpherePolygon(a, squareBoundary(sq))
}

func StaticSphereTriangle(a MoveCollData[primitive.Sphere], tri primitive.Triangle) HitData {
	return staticSpherePolygon(a, triangleBoundary(tri))
}

// StaticSphereAABB resolves an overlap against the nearest face, and sweeps
// only the faces the motion runs into.
func StaticSphereAABB(a MoveCollData[primitive.Sphere], box primitive.AABB) HitData {
	s := a.Current()
	faces := box.Faces()
	if collision.OverlapAABBSphere(box, s) {
		best := faces[0]
		bestDist := float32(math.MaxFloat32)
		for _, f := range faces {
			if d := collision.DistanceSqPointSquare(s.Position, f); d < bestDist {
				best, bestDist = f, d
			}
		}
		pl := best.Plane()
		return overlapping(primitive.CastToPlane(pl, s.Position), pl.Normal,
			s.Radius-collision.PlaneDistance(pl, s.Position))
	}
	vel := a.Velocity()
	var ret HitData
	for _, f := range faces {
		if rl.Vector3DotProduct(f.Normal(), vel) < 0 {
			ret = earliest(ret, StaticSphereSquare(a, f))
		}
	}
	return ret
}

// StaticSphereDome sweeps against the dome's inner sphere from outside, and
// against its inner wall from inside. Inside the dome the normal points back
// toward the center.
func StaticSphereDome(a MoveCollData[primitive.Sphere], d primitive.Dome) HitData {
	s := a.Current()
	w := rl.Vector3Subtract(s.Position, d.Position)
	dist := rl.Vector3Length(w)
	if dist > d.MinRadius {
		return StaticSphereSphere(a, d.Inner())
	}

	reach := d.MinRadius - s.Radius
	if dist >= reach {
		dir := rl.Vector3Normalize(w)
		return overlapping(rl.Vector3Add(d.Position, rl.Vector3Scale(dir, d.MinRadius)),
			rl.Vector3Negate(dir), dist-reach)
	}
	vel := a.Velocity()
	t, ok := solveExit(w, vel, reach)
	if !ok {
		return HitData{}
	}
	dir := rl.Vector3Normalize(rl.Vector3Add(w, rl.Vector3Scale(vel, t)))
	return HitData{
		Hit:       true,
		Time:      t,
		HitPos:    rl.Vector3Add(d.Position, rl.Vector3Scale(dir, d.MinRadius)),
		HitNormal: rl.Vector3Negate(dir),
	}
}

func StaticCylinderPoint(a MoveCollData[primitive.Cylinder], p rl.Vector3) HitData {
	return SphereCylinder(still(primitive.Sphere{Position: p}), a).flipped()
}

func StaticCylinderLine(a MoveCollData[primitive.Cylinder], l primitive.Line) HitData {
	return CylinderCylinder(a, still(primitive.Cylinder{Line: l}))
}

func StaticCylinderSegment(a MoveCollData[primitive.Cylinder], seg primitive.Segment) HitData {
	return CylinderCapsule(a, still(primitive.Capsule{S: seg}))
}

func StaticCylinderSphere(a MoveCollData[primitive.Cylinder], s primitive.Sphere) HitData {
	return SphereCylinder(still(s), a).flipped()
}

// StaticCylinderPlane: a cylinder not parallel to the plane always pierces
// it. A parallel one behaves like a sphere sweeping toward the plane, with
// its contact under the middle of the axis.
func StaticCylinderPlane(a MoveCollData[primitive.Cylinder], pl primitive.Plane) HitData {
	c, ce := a.Current(), a.Predicted()
	if primitive.Abs(rl.Vector3DotProduct(pl.Normal, c.Line.V)) >= eps {
		pos, _, _ := collision.IntersectLinePlane(c.Line, pl)
		return overlapping(pos, pl.Normal, 0)
	}
	half := rl.Vector3Scale(c.Line.V, 0.5)
	dist := collision.PlaneDistance(pl, c.Line.P)
	if dist <= c.Radius {
		return overlapping(rl.Vector3Add(primitive.CastToPlane(pl, c.Line.P), half), pl.Normal, c.Radius-dist)
	}
	moved := collision.PlaneDistance(pl, ce.Line.P)
	if moved > c.Radius || dist-moved < eps {
		return HitData{}
	}
	t := (dist - c.Radius) / (dist - moved)
	if t > 1 {
		return HitData{}
	}
	pos := primitive.Lerp(c.Line.P, ce.Line.P, t)
	return HitData{
		Hit:       true,
		Time:      t,
		HitPos:    rl.Vector3Add(primitive.CastToPlane(pl, pos), half),
		HitNormal: pl.Normal,
	}
}

func StaticCylinderSquare(a MoveCollData[primitive.Cylinder], sq primitive.Square) HitData {
	b := squareBoundary(sq).facing(a.Current().Line.P)
	face := StaticCylinderPlane(a, b.plane)
	if face.Hit {
		l := a.AtTime(face.Time).Line
		face = b.settle(face, l.P, l.V, -math.MaxFloat32, math.MaxFloat32)
	}
	return sweepBoundary(b, face, func(e primitive.Segment) HitData {
		return StaticCylinderSegment(a, e)
	})
}

// touchesBox reports whether a face can take part in a sweep: the motion
// runs into it, or the body already touches it.
func touchesBox(face primitive.Square, vel rl.Vector3, shape primitive.Shape) bool {
	return rl.Vector3DotProduct(face.Normal(), vel) < 0 || collision.Overlaps(face, shape)
}

func StaticCylinderAABB(a MoveCollData[primitive.Cylinder], box primitive.AABB) HitData {
	vel, c := a.Velocity(), a.Current()
	var ret HitData
	for _, f := range box.Faces() {
		if touchesBox(f, vel, c) {
			ret = earliest(ret, StaticCylinderSquare(a, f))
		}
	}
	return ret
}

func StaticCapsulePoint(a MoveCollData[primitive.Capsule], p rl.Vector3) HitData {
	return SphereCapsule(still(primitive.Sphere{Position: p}), a).flipped()
}

func StaticCapsuleLine(a MoveCollData[primitive.Capsule], l primitive.Line) HitData {
	return CylinderCapsule(still(primitive.Cylinder{Line: l}), a).flipped()
}

func StaticCapsuleSegment(a MoveCollData[primitive.Capsule], seg primitive.Segment) HitData {
	return CapsuleCapsule(a, still(primitive.Capsule{S: seg}))
}

func StaticCapsuleSphere(a MoveCollData[primitive.Capsule], s primitive.Sphere) HitData {
	return SphereCapsule(still(s), a).flipped()
}

// StaticCapsulePlane: an axis crossing the plane is an overlap as deep as
// its deepest end; otherwise the caps sweep toward the plane. An axis parallel
// to the plane sweeps like a cylinder.
func StaticCapsulePlane(a MoveCollData[primitive.Capsule], pl primitive.Plane) HitData {
	side, caps := capsuleParts(a)
	c := a.Current()
	if !collision.OverlapLinePlane(c.S.Line(), pl) {
		return StaticCylinderPlane(side, pl)
	}
	if h := StaticCylinderPlane(side, pl); h.Hit && primitive.IsInside(c.S, h.HitPos) {
		d0 := collision.PlaneDistance(pl, c.S.P)
		d1 := collision.PlaneDistance(pl, c.S.End())
		h.Length = c.Radius - min(d0, d1)
		return h
	}
	return earliest(StaticSpherePlane(caps[0], pl), StaticSpherePlane(caps[1], pl))
}

func StaticCapsuleSquare(a MoveCollData[primitive.Capsule], sq primitive.Square) HitData {
	c := a.Current()
	b := squareBoundary(sq).facing(rl.Vector3Add(c.S.P, primitive.ToCenter(c)))
	face := StaticCapsulePlane(a, b.plane)
	if face.Hit {
		s := a.AtTime(face.Time).S
		face = b.settle(face, s.P, s.V, 0, 1)
	}
	return sweepBoundary(b, face, func(e primitive.Segment) HitData {
		return StaticCapsuleSegment(a, e)
	})
}

// StaticCapsuleAABB: a capsule with an end inside the box is pushed out by
// its deeper cap; otherwise the faces it runs into or touches are swept.
func StaticCapsuleAABB(a MoveCollData[primitive.Capsule], box primitive.AABB) HitData {
	c := a.Current()
	_, caps := capsuleParts(a)
	if box.Contains(c.S.P) || box.Contains(c.S.End()) {
		return earliest(StaticSphereAABB(caps[0], box), StaticSphereAABB(caps[1], box))
	}
	vel := a.Velocity()
	var ret HitData
	for _, f := range box.Faces() {
		if touchesBox(f, vel, c) {
			ret = earliest(ret, StaticCapsuleSquare(a, f))
		}
	}
	return ret
}

func StaticCapsuleDome(a MoveCollData[primitive.Capsule], d primitive.Dome) HitData {
	_, caps := capsuleParts(a)
	return earliest(StaticSphereDome(caps[0], d), StaticSphereDome(caps[1], d))
}

var staticTargets = map[primitive.Kind][]primitive.Kind{
	primitive.KindSphere: {
		primitive.KindPoint, primitive.KindLine, primitive.KindSegment, primitive.KindPlane,
		primitive.KindTriangle, primitive.KindSquare, primitive.KindAABB, primitive.KindSphere,
		primitive.KindDome,
	},
	primitive.KindCylinder: {
		primitive.KindPoint, primitive.KindLine, primitive.KindSegment, primitive.KindPlane,
		primitive.KindSquare, primitive.KindAABB, primitive.KindSphere,
	},
	primitive.KindCapsule: {
		primitive.KindPoint, primitive.KindLine, primitive.KindSegment, primitive.KindPlane,
		primitive.KindSquare, primitive.KindAABB, primitive.KindSphere, primitive.KindDome,
	},
}

// StaticSupported reports whether StaticCollision handles a body of kind
// mover against a static shape of kind target.
func StaticSupported(mover, target primitive.Kind) bool {
	for _, k := range staticTargets[mover] {
		if k == target {
			return true
		}
	}
	return false
}

// StaticCollision sweeps a moving body against a static shape. Unsupported
// pairs report no hit.
func StaticCollision(a MoveCollData[primitive.Shape], target primitive.Shape) HitData {
	if !StaticSupported(a.Collision.Kind(), target.Kind()) {
		return HitData{}
	}
	switch a.Collision.(type) {
	case primitive.Sphere:
		s := narrow[primitive.Sphere](a)
		switch t := target.(type) {
		case primitive.Point:
			return StaticSpherePoint(s, t.P)
		case primitive.Line:
			return StaticSphereLine(s, t)
		case primitive.Segment:
			return StaticSphereSegment(s, t)
		case primitive.Plane:
			return StaticSpherePlane(s, t)
		case primitive.Triangle:
			return StaticSphereTriangle(s, t)
		case primitive.Square:
			return StaticSphereSquare(s, t)
		case primitive.AABB:
			return StaticSphereAABB(s, t)
		case primitive.Sphere:
			return StaticSphereSphere(s, t)
		case primitive.Dome:
			return StaticSphereDome(s, t)
		}
	case primitive.Cylinder:
		c := narrow[primitive.Cylinder](a)
		switch t := target.(type) {
		case primitive.Point:
			return StaticCylinderPoint(c, t.P)
		case primitive.Line:
			return StaticCylinderLine(c, t)
		case primitive.Segment:
			return StaticCylinderSegment(c, t)
		case primitive.Plane:
			return StaticCylinderPlane(c, t)
		case primitive.Square:
			return StaticCylinderSquare(c, t)
		case primitive.AABB:
			return StaticCylinderAABB(c, t)
		case primitive.Sphere:
			return StaticCylinderSphere(c, t)
		}
	case primitive.Capsule:
		c := narrow[primitive.Capsule](a)
		switch t := target.(type) {
		case primitive.Point:
			return StaticCapsulePoint(c, t.P)
		case primitive.Line:
			return StaticCapsuleLine(c, t)
		case primitive.Segment:
			return StaticCapsuleSegment(c, t)
		case primitive.Plane:
			return StaticCapsulePlane(c, t)
		case primitive.Square:
			return StaticCapsuleSquare(c, t)
		case primitive.AABB:
			return StaticCapsuleAABB(c, t)
		case primitive.Sphere:
			return StaticCapsuleSphere(c, t)
		case primitive.Dome:
			return StaticCapsuleDome(c, t)
		}
	}
	return HitData{}
}
