package collision

import (
	"math"

	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// InsideConvex reports whether p, assumed to lie in the polygon's plane, is
// inside the closed convex polygon pts wound counter-clockwise about normal.
func InsideConvex(normal rl.Vector3, pts []rl.Vector3, p rl.Vector3) bool {
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		edge := rl.Vector3Subtract(next, pts[i])
		side := rl.Vector3CrossProduct(edge, rl.Vector3Subtract(p, pts[i]))
		if rl.Vector3DotProduct(normal, side) < -eps {
			return false
		}
	}
	return true
}

// ClipConvex clips the parametric line p+v*t, t in [lo, hi], against the
// prism standing on a convex polygon. The line is expected to lie in the
// polygon's plane or be projected onto it first.
func ClipConvex(normal rl.Vector3, pts []rl.Vector3, p, v rl.Vector3, lo, hi float32) (float32, float32, bool) {
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		inward := rl.Vector3CrossProduct(normal, rl.Vector3Subtract(next, pts[i]))
		num := rl.Vector3DotProduct(inward, rl.Vector3Subtract(p, pts[i]))
		den := rl.Vector3DotProduct(inward, v)
		if primitive.Abs(den) < eps {
			if num < -eps {
				return 0, 0, false
			}
			continue
		}
		t := -num / den
		if den > 0 {
			lo = max(lo, t)
		} else {
			hi = min(hi, t)
		}
		if lo > hi+eps {
			return 0, 0, false
		}
	}
	return lo, hi, true
}

// Unbounded parameter limits for ClipConvex on infinite lines.
const (
	infLo = -math.MaxFloat32
	infHi = math.MaxFloat32
)

// clipLineToPolygon finds where a line lying in a polygon's plane enters it.
func clipLineToPolygon(normal rl.Vector3, pts []rl.Vector3, l primitive.Line, lo, hi float32) (rl.Vector3, bool) {
	t0, _, ok := ClipConvex(normal, pts, l.P, l.V, lo, hi)
	if !ok {
		return rl.Vector3{}, false
	}
	return l.At(t0), true
}
