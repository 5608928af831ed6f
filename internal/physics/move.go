package physics

import (
	"collide3d/internal/collision"
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SphereSphere sweeps two moving spheres against each other.
func SphereSphere(a, b MoveCollData[primitive.Sphere]) HitData {
	s1, s2 := a.Current(), b.Current()
	rsum := s1.Radius + s2.Radius
	ratio := float32(0)
	if rsum > 0 {
		ratio = s2.Radius / rsum
	}
	start := rl.Vector3Subtract(s1.Position, s2.Position)

	if distSq := rl.Vector3LengthSqr(start); distSq <= rsum*rsum {
		return overlapping(rl.Vector3Add(s2.Position, rl.Vector3Scale(start, ratio)),
			rl.Vector3Normalize(start), rsum-primitive.Sqrt(distSq))
	}

	vel := rl.Vector3Subtract(a.Velocity(), b.Velocity())
	t, ok := solveTOI(start, vel, rsum)
	if !ok {
		return HitData{}
	}
	pos := rl.Vector3Add(s2.Position, rl.Vector3Scale(b.Velocity(), t))
	rel := rl.Vector3Add(start, rl.Vector3Scale(vel, t))
	return HitData{
		Hit:       true,
		Time:      t,
		HitPos:    rl.Vector3Add(pos, rl.Vector3Scale(rel, ratio)),
		HitNormal: rl.Vector3Normalize(rel),
	}
}

// parallelHitPoint is the contact point of two parallel axes touching along
// a run: the middle of the run where the axes overlap, or the nearest
// endpoints when they do not.
func parallelHitPoint(s1, s2 primitive.Segment, r1, r2 float32) rl.Vector3 {
	var p1, p2 rl.Vector3
	lenSq := rl.Vector3LengthSqr(s1.V)
	_, ta, _ := collision.ClosestPointLine(s2.P, s1.Line())
	_, tb, _ := collision.ClosestPointLine(s2.End(), s1.Line())
	lo := max(0, min(ta, tb))
	hi := min(1, max(ta, tb))
	if lenSq > eps*eps && lo <= hi {
		p1 = s1.At((lo + hi) * 0.5)
		p2, _, _ = collision.ClosestPointLine(p1, s2.Line())
	} else {
		p1, p2, _, _, _ = collision.ClosestSegmentSegment(s1, s2)
	}
	if r1+r2 <= 0 {
		return p2
	}
	return rl.Vector3Add(p2, rl.Vector3Scale(rl.Vector3Subtract(p1, p2), r2/(r1+r2)))
}

func axisSegment(l primitive.Line) primitive.Segment {
	return primitive.Segment{P: l.P, V: l.V}
}

// CylinderCylinder sweeps two moving infinite cylinders. The closest points
// of the axes are taken at both ends of the step and their offset
// interpolated linearly.
func CylinderCylinder(a, b MoveCollData[primitive.Cylinder]) HitData {
	c1, c2 := a.Current(), b.Current()
	rsum := c1.Radius + c2.Radius
	parallel := primitive.IsParallel(c1.Line.V, c2.Line.V)
	p1, p2, _, _, distSq := collision.ClosestLineLine(c1.Line, c2.Line)

	hitPoint := func(l1, l2 primitive.Line, p1, p2 rl.Vector3) rl.Vector3 {
		if parallel {
			return parallelHitPoint(axisSegment(l1), axisSegment(l2), c1.Radius, c2.Radius)
		}
		if rsum <= 0 {
			return p2
		}
		return rl.Vector3Add(p2, rl.Vector3Scale(rl.Vector3Subtract(p1, p2), c2.Radius/rsum))
	}

	if distSq <= rsum*rsum {
		return overlapping(hitPoint(c1.Line, c2.Line, p1, p2),
			rl.Vector3Normalize(rl.Vector3Subtract(p1, p2)), rsum-primitive.Sqrt(distSq))
	}

	e1, e2 := a.Predicted(), b.Predicted()
	q1, q2, _, _, _ := collision.ClosestLineLine(e1.Line, e2.Line)
	start := rl.Vector3Subtract(p1, p2)
	vel := rl.Vector3Subtract(rl.Vector3Subtract(q1, q2), start)
	t, ok := solveTOI(start, vel, rsum)
	if !ok {
		return HitData{}
	}
	pos1 := primitive.Lerp(p1, q1, t)
	pos2 := primitive.Lerp(p2, q2, t)
	return HitData{
		Hit:       true,
		Time:      t,
		HitPos:    hitPoint(a.AtTime(t).Line, b.AtTime(t).Line, pos1, pos2),
		HitNormal: rl.Vector3Normalize(rl.Vector3Subtract(pos1, pos2)),
	}
}

// SphereCylinder sweeps a moving sphere against a moving infinite cylinder.
func SphereCylinder(a MoveCollData[primitive.Sphere], b MoveCollData[primitive.Cylinder]) HitData {
	s, c := a.Current(), b.Current()
	rsum := s.Radius + c.Radius
	ratio := float32(0)
	if rsum > 0 {
		ratio = c.Radius / rsum
	}

	onLineStart := primitive.CastToLine(c.Line, s.Position)
	start := rl.Vector3Subtract(s.Position, onLineStart)
	if distSq := rl.Vector3LengthSqr(start); distSq <= rsum*rsum {
		return overlapping(rl.Vector3Add(onLineStart, rl.Vector3Scale(start, ratio)),
			rl.Vector3Normalize(start), rsum-primitive.Sqrt(distSq))
	}

	se, ce := a.Predicted(), b.Predicted()
	onLineEnd := primitive.CastToLine(ce.Line, se.Position)
	vel := rl.Vector3Subtract(rl.Vector3Subtract(se.Position, onLineEnd), start)
	t, ok := solveTOI(start, vel, rsum)
	if !ok {
		return HitData{}
	}
	pos := primitive.Lerp(onLineStart, onLineEnd, t)
	rel := rl.Vector3Add(start, rl.Vector3Scale(vel, t))
	return HitData{
		Hit:       true,
		Time:      t,
		HitPos:    rl.Vector3Add(pos, rl.Vector3Scale(rel, ratio)),
		HitNormal: rl.Vector3Normalize(rel),
	}
}

// capsuleParts splits a moving capsule into its side cylinder and its two
// end caps, all moving with it.
func capsuleParts(d MoveCollData[primitive.Capsule]) (MoveCollData[primitive.Cylinder], [2]MoveCollData[primitive.Sphere]) {
	c := d.Collision
	side := MoveCollData[primitive.Cylinder]{Collision: c.Axis(), Phys: d.Phys}
	head := primitive.Sphere{Radius: c.Radius}
	caps := [2]MoveCollData[primitive.Sphere]{
		{Collision: head, Phys: d.Phys},
		sub(d, head, c.S.V),
	}
	return side, caps
}

// onSpan reports whether hitPos lies alongside the capsule's axis at time t.
func onSpan(d MoveCollData[primitive.Capsule], t float32, hitPos rl.Vector3) bool {
	return primitive.IsInside(d.AtTime(t).S, hitPos)
}

// CylinderCapsule is the earliest of the capsule's caps against the cylinder
// and the two axes against each other, the latter only where the contact
// lies alongside the capsule.
func CylinderCapsule(a MoveCollData[primitive.Cylinder], b MoveCollData[primitive.Capsule]) HitData {
	side, caps := capsuleParts(b)
	ret := SphereCylinder(caps[0], a).flipped()
	ret = earliest(ret, SphereCylinder(caps[1], a).flipped())
	if h := CylinderCylinder(a, side); h.Hit && onSpan(b, h.Time, h.HitPos) {
		ret = earliest(ret, h)
	}
	return ret
}

// SphereCapsule sweeps a sphere against the capsule's side, and against its
// caps when the side contact falls beyond the axis.
func SphereCapsule(a MoveCollData[primitive.Sphere], b MoveCollData[primitive.Capsule]) HitData {
	s, c := a.Current(), b.Current()
	rsum := s.Radius + c.Radius
	foot, _, distSq := collision.ClosestPointSegment(s.Position, c.S)
	if distSq <= rsum*rsum {
		w := rl.Vector3Subtract(s.Position, foot)
		var hitPos rl.Vector3
		if rsum > 0 {
			hitPos = rl.Vector3Add(foot, rl.Vector3Scale(w, c.Radius/rsum))
		} else {
			hitPos = foot
		}
		return overlapping(hitPos, rl.Vector3Normalize(w), rsum-primitive.Sqrt(distSq))
	}

	side, caps := capsuleParts(b)
	if h := SphereCylinder(a, side); h.Hit && onSpan(b, h.Time, h.HitPos) {
		return h
	}
	return earliest(SphereSphere(a, caps[0]), SphereSphere(a, caps[1]))
}

// CapsuleCapsule sweeps the axes first. A contact alongside both capsules is
// final; otherwise the caps of each are swept against the other. When the
// axes never come within reach neither can the capsules.
func CapsuleCapsule(a, b MoveCollData[primitive.Capsule]) HitData {
	sideA, capsA := capsuleParts(a)
	sideB, capsB := capsuleParts(b)
	h := CylinderCylinder(sideA, sideB)
	if !h.Hit {
		return HitData{}
	}
	if onSpan(a, h.Time, h.HitPos) && onSpan(b, h.Time, h.HitPos) {
		return h
	}
	ret := earliest(SphereCapsule(capsA[0], b), SphereCapsule(capsA[1], b))
	ret = earliest(ret, SphereCapsule(capsB[0], a).flipped())
	return earliest(ret, SphereCapsule(capsB[1], a).flipped())
}

// MoveSupported reports whether MoveCollision handles the pair.
func MoveSupported(a, b primitive.Kind) bool {
	return movable(a) && movable(b)
}

func movable(k primitive.Kind) bool {
	return k == primitive.KindSphere || k == primitive.KindCylinder || k == primitive.KindCapsule
}

// MoveCollision sweeps two moving bodies against each other. The normal
// points toward a. Unsupported pairs report no hit.
func MoveCollision(a, b MoveCollData[primitive.Shape]) HitData {
	if !MoveSupported(a.Collision.Kind(), b.Collision.Kind()) {
		return HitData{}
	}
	if a.Collision.Kind() > b.Collision.Kind() {
		return MoveCollision(b, a).flipped()
	}
	switch a.Collision.(type) {
	case primitive.Sphere:
		sa := narrow[primitive.Sphere](a)
		switch b.Collision.(type) {
		case primitive.Sphere:
			return SphereSphere(sa, narrow[primitive.Sphere](b))
		case primitive.Cylinder:
			return SphereCylinder(sa, narrow[primitive.Cylinder](b))
		case primitive.Capsule:
			return SphereCapsule(sa, narrow[primitive.Capsule](b))
		}
	case primitive.Cylinder:
		ca := narrow[primitive.Cylinder](a)
		switch b.Collision.(type) {
		case primitive.Cylinder:
			return CylinderCylinder(ca, narrow[primitive.Cylinder](b))
		case primitive.Capsule:
			return CylinderCapsule(ca, narrow[primitive.Capsule](b))
		}
	case primitive.Capsule:
		return CapsuleCapsule(narrow[primitive.Capsule](a), narrow[primitive.Capsule](b))
	}
	return HitData{}
}
