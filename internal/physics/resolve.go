package physics

import (
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Resolver turns contacts into corrections.
type Resolver struct {
	// Restitution scales the elastic impulse between two bodies.
	Restitution float32
	// Spring scales the push apart of two bodies that already overlap.
	Spring float32
	// Reflection is how much of the velocity into a static shape is
	// removed: 1 stops it, 2 bounces it back.
	Reflection float32
}

func DefaultResolver() Resolver {
	return Resolver{Restitution: 0.1, Spring: 100, Reflection: 2}
}

// CulcFix resolves a contact between two moving bodies with DefaultResolver.
func CulcFix(dt float32, lhs, rhs MoveCollData[primitive.Shape]) HitData {
	return DefaultResolver().CulcFix(dt, lhs, rhs)
}

// CulcMapFix resolves a contact against a static shape with DefaultResolver.
func CulcMapFix(dt float32, body MoveCollData[primitive.Shape], target primitive.Shape) HitData {
	return DefaultResolver().CulcMapFix(dt, body, target)
}

// CulcFix sweeps lhs against rhs and, on contact, accumulates a position and
// velocity fix on both. Nothing is committed until the bodies' PreFix and Fix.
func (r Resolver) CulcFix(dt float32, lhs, rhs MoveCollData[primitive.Shape]) HitData {
	data := MoveCollision(lhs, rhs)
	if !data.Hit {
		return data
	}
	lp, rp := lhs.Phys, rhs.Phys

	v1, v2 := lp.PreVel(), rp.PreVel()
	lhsPos, rhsPos := lp.Position(), rp.Position()
	lhsVel, rhsVel := lp.Displacement(), rp.Displacement()
	hitTime := dt * data.Time

	// direction from each body's center to the contact, where the impulse acts
	lhsAt := rl.Vector3Add(rl.Vector3Add(lhsPos, rl.Vector3Scale(lhsVel, data.Time)), primitive.ToCenter(lhs.Collision))
	rhsAt := rl.Vector3Add(rl.Vector3Add(rhsPos, rl.Vector3Scale(rhsVel, data.Time)), primitive.ToCenter(rhs.Collision))
	lhsToCenter := rl.Vector3Normalize(rl.Vector3Subtract(data.HitPos, lhsAt))
	rhsToCenter := rl.Vector3Normalize(rl.Vector3Subtract(data.HitPos, rhsAt))
	if primitive.NearZero(lhsToCenter) {
		lhsToCenter = rl.Vector3Negate(rhsToCenter)
	}
	if primitive.NearZero(rhsToCenter) {
		rhsToCenter = rl.Vector3Negate(lhsToCenter)
	}

	n := data.HitNormal
	normedV1 := rl.Vector3Scale(n, rl.Vector3DotProduct(n, v1))
	normedV2 := rl.Vector3Scale(n, rl.Vector3DotProduct(n, v2))

	var lhsImpulse, rhsImpulse, lhsSpringFix, rhsSpringFix rl.Vector3
	if data.Time == 0 {
		springPower := rl.Vector3Scale(n, r.Spring*data.Length)
		lhsImpulse = rl.Vector3Scale(lhsToCenter, -primitive.Abs(rl.Vector3DotProduct(springPower, lhsToCenter)))
		rhsImpulse = rl.Vector3Scale(rhsToCenter, -primitive.Abs(rl.Vector3DotProduct(springPower, rhsToCenter)))

		sinking := rl.Vector3Scale(n, data.Length*0.5)
		if rl.Vector3DotProduct(sinking, lhsToCenter) > 0 {
			lhsSpringFix, rhsSpringFix = rl.Vector3Negate(sinking), sinking
		} else {
			lhsSpringFix, rhsSpringFix = sinking, rl.Vector3Negate(sinking)
		}

		// already separating along the contact
		if rl.Vector3DotProduct(normedV1, lhsToCenter) < 0 {
			normedV1 = rl.Vector3Zero()
		}
		if rl.Vector3DotProduct(normedV2, rhsToCenter) < 0 {
			normedV2 = rl.Vector3Zero()
		}
	}

	var impulse rl.Vector3
	if m1, m2 := lp.Mass(), rp.Mass(); m1+m2 > 0 {
		impulse = rl.Vector3Scale(rl.Vector3Subtract(normedV2, normedV1), (1+r.Restitution)*m1*m2/(m1+m2))
	}
	lhsImpulse = rl.Vector3Add(lhsImpulse, rl.Vector3Scale(lhsToCenter, rl.Vector3DotProduct(impulse, lhsToCenter)))
	rhsImpulse = rl.Vector3Add(rhsImpulse, rl.Vector3Scale(rhsToCenter, -rl.Vector3DotProduct(impulse, rhsToCenter)))

	restrict := rl.Vector3Add(lp.RestrictPower(lhsImpulse), rp.RestrictPower(rhsImpulse))
	lhsImpulse = rl.Vector3Add(lhsImpulse, restrict)
	rhsImpulse = rl.Vector3Add(rhsImpulse, restrict)

	lhsDV := rl.Vector3Scale(lhsImpulse, lp.MassRate())
	rhsDV := rl.Vector3Scale(rhsImpulse, rp.MassRate())
	v1 = rl.Vector3Add(v1, lhsDV)
	v2 = rl.Vector3Add(v2, rhsDV)

	// move to the contact, then on with the corrected velocity
	lp.AddFix(fixedPosition(lhsPos, lhsVel, v1, data.Time, dt-hitTime, lp.PrePos(), lhsSpringFix), lhsDV)
	rp.AddFix(fixedPosition(rhsPos, rhsVel, v2, data.Time, dt-hitTime, rp.PrePos(), rhsSpringFix), rhsDV)
	return data
}

// fixedPosition is the correction from prePos to the position reached by
// travelling to the contact at time t then for rest seconds at vel.
func fixedPosition(pos, displacement, vel rl.Vector3, t, rest float32, prePos, spring rl.Vector3) rl.Vector3 {
	target := rl.Vector3Add(pos, rl.Vector3Scale(displacement, t))
	target = rl.Vector3Add(target, rl.Vector3Scale(vel, rest))
	return rl.Vector3Add(rl.Vector3Subtract(target, prePos), spring)
}

// CulcMapFix sweeps body against a static shape and, on contact, rewrites its
// tentative state: the body stops at the contact (pushed out by the
// penetration depth if it started inside), the velocity into the shape is
// reflected, the normal is recorded as a restriction and the remaining motion
// of the step is replayed with the reflected velocity.
//
// Domes are routed to CulcDomeFix.
func (r Resolver) CulcMapFix(dt float32, body MoveCollData[primitive.Shape], target primitive.Shape) HitData {
	if d, ok := target.(primitive.Dome); ok {
		return r.CulcDomeFix(dt, body, d)
	}
	data := StaticCollision(body, target)
	if !data.Hit {
		return data
	}
	ph := body.Phys
	vel := ph.Displacement()
	preVel := ph.PreVel()
	n := data.HitNormal

	posRes := rl.Vector3Add(ph.Position(), rl.Vector3Scale(vel, data.Time))
	if data.Time < eps {
		posRes = rl.Vector3Add(posRes, rl.Vector3Scale(n, data.Length))
	}
	if t := rl.Vector3DotProduct(n, preVel); t < 0 {
		preVel = rl.Vector3Subtract(preVel, rl.Vector3Scale(n, t*r.Reflection))
		vel = rl.Vector3Subtract(vel, rl.Vector3Scale(n, rl.Vector3DotProduct(n, vel)*r.Reflection))
		ph.AddRestrictVector(n)
	}
	posRes = rl.Vector3Add(posRes, rl.Vector3Scale(vel, 1-data.Time))
	ph.SetPrePos(posRes)
	ph.SetPreVel(preVel)
	return data
}

// CulcDomeFix keeps a body inside a dome. The velocity into the wall is
// removed rather than reflected, and a body inside the dome has the rest of
// its motion rotated about the dome center so it slides along the wall.
func (r Resolver) CulcDomeFix(dt float32, body MoveCollData[primitive.Shape], dome primitive.Dome) HitData {
	data := StaticCollision(body, dome)
	if !data.Hit {
		return data
	}
	ph := body.Phys
	vel := ph.Displacement()
	preVel := ph.PreVel()
	n := data.HitNormal

	posRes := rl.Vector3Add(ph.Position(), rl.Vector3Scale(vel, data.Time))
	if data.Time < eps {
		posRes = rl.Vector3Add(posRes, rl.Vector3Scale(n, data.Length))
	}
	if t := rl.Vector3DotProduct(n, preVel); t < 0 {
		preVel = rl.Vector3Subtract(preVel, rl.Vector3Scale(n, t))
		vel = rl.Vector3Subtract(vel, rl.Vector3Scale(n, rl.Vector3DotProduct(n, vel)))
		ph.AddRestrictVector(n)
	}

	center := rl.Vector3Add(ph.Position(), primitive.ToCenter(body.Collision))
	inside := rl.Vector3Length(rl.Vector3Subtract(center, dome.Position)) < dome.MinRadius
	reach := dome.MinRadius - radiusOf(body.Collision)
	toBody := rl.Vector3Subtract(posRes, dome.Position)
	axis := rl.Vector3Normalize(rl.Vector3CrossProduct(toBody, vel))
	if !inside || reach <= eps || primitive.NearZero(axis) {
		posRes = rl.Vector3Add(posRes, rl.Vector3Scale(vel, 1-data.Time))
		ph.SetPrePos(posRes)
		ph.SetPreVel(preVel)
		return data
	}

	angle := rl.Vector3Length(vel) / reach * (1 - data.Time)
	rot := rl.QuaternionFromAxisAngle(axis, angle)
	ph.SetPrePos(rl.Vector3Add(dome.Position, rl.Vector3RotateByQuaternion(toBody, rot)))
	ph.SetPreVel(rl.Vector3RotateByQuaternion(preVel, rot))
	return data
}

func radiusOf(s primitive.Shape) float32 {
	switch s := s.(type) {
	case primitive.Sphere:
		return s.Radius
	case primitive.Cylinder:
		return s.Radius
	case primitive.Capsule:
		return s.Radius
	}
	return 0
}
