package primitive

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/constraints"
)

// Epsilon is the tolerance for every non-exact comparison in the engine.
const Epsilon float32 = 1e-5

func Abs[T constraints.Float | constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func Clamp[T constraints.Float | constraints.Integer](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Sqrt returns 0 for negative inputs, which only appear through rounding.
func Sqrt(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}

// IsParallel reports whether a and b are parallel. A zero vector is parallel
// to everything.
func IsParallel(a, b rl.Vector3) bool {
	return rl.Vector3LengthSqr(rl.Vector3CrossProduct(a, b)) < Epsilon
}

// NearZero reports whether every component of v is within Epsilon of zero.
func NearZero(v rl.Vector3) bool {
	return Abs(v.X) < Epsilon && Abs(v.Y) < Epsilon && Abs(v.Z) < Epsilon
}

// IsFinite reports whether no component of v is NaN or infinite.
func IsFinite(v rl.Vector3) bool {
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Lerp interpolates between a and b at t.
func Lerp(a, b rl.Vector3, t float32) rl.Vector3 {
	return rl.Vector3Add(a, rl.Vector3Scale(rl.Vector3Subtract(b, a), t))
}

// IsSharp reports whether the angle at v2 between v1 and v3 is acute.
func IsSharp(v1, v2, v3 rl.Vector3) bool {
	return rl.Vector3DotProduct(rl.Vector3Subtract(v1, v2), rl.Vector3Subtract(v3, v2)) > 0
}

// IsFront reports whether p lies on the side of pl its normal points to,
// the plane itself included.
func IsFront(pl Plane, p rl.Vector3) bool {
	return rl.Vector3DotProduct(pl.Normal, rl.Vector3Subtract(p, pl.P)) >= 0
}

// IsInside reports whether the projection of p onto the segment's line falls
// within the segment, endpoints included.
func IsInside(s Segment, p rl.Vector3) bool {
	d1 := rl.Vector3DotProduct(rl.Vector3Subtract(p, s.P), s.V)
	d2 := rl.Vector3DotProduct(rl.Vector3Subtract(p, s.End()), s.V)
	return d1*d2 <= 0
}
