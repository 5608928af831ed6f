package physics

import (
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const eps = primitive.Epsilon

// HitData is the result of a time-of-impact query.
//
// Time is the fraction of the step at which contact begins, 0 when the
// shapes already overlap at the start; Length is the penetration depth in
// that case. HitNormal points from the second (reference) operand toward the
// first.
type HitData struct {
	Hit       bool
	Time      float32
	Length    float32
	HitPos    rl.Vector3
	HitNormal rl.Vector3
}

// overlapping builds the result for shapes already in contact.
func overlapping(hitPos, normal rl.Vector3, length float32) HitData {
	return HitData{Hit: true, Time: 0, Length: length, HitPos: hitPos, HitNormal: normal}
}

// earliest returns whichever of a and b hits first. Among simultaneous hits
// the deeper one wins, then a.
func earliest(a, b HitData) HitData {
	if !b.Hit {
		return a
	}
	if !a.Hit || b.Time < a.Time || (b.Time == a.Time && b.Length > a.Length) {
		return b
	}
	return a
}

// flipped reverses the operand order of a result.
func (h HitData) flipped() HitData {
	h.HitNormal = rl.Vector3Negate(h.HitNormal)
	return h
}

// solveTOI finds the first t in [0,1] at which |start + vel*t| == radius.
// The grazing case with a near-zero discriminant has the single root -b/a.
func solveTOI(start, vel rl.Vector3, radius float32) (float32, bool) {
	a := rl.Vector3LengthSqr(vel)
	if a < eps*eps {
		return 0, false
	}
	b := rl.Vector3DotProduct(start, vel)
	c := rl.Vector3LengthSqr(start) - radius*radius
	ans := b*b - a*c
	if ans < 0 {
		return 0, false
	}
	var t float32
	if ans < eps {
		t = -b / a
	} else {
		t = (-b - primitive.Sqrt(ans)) / a
	}
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// solveExit is solveTOI for the larger root: the time a point inside the
// sphere of radius leaves it.
func solveExit(start, vel rl.Vector3, radius float32) (float32, bool) {
	a := rl.Vector3LengthSqr(vel)
	if a < eps*eps {
		return 0, false
	}
	b := rl.Vector3DotProduct(start, vel)
	c := rl.Vector3LengthSqr(start) - radius*radius
	ans := b*b - a*c
	if ans < 0 {
		return 0, false
	}
	t := (-b + primitive.Sqrt(ans)) / a
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}
