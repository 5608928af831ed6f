package physics

import (
	"collide3d/internal/collision"
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// boundary is a flat convex region a moving body can be swept against:
// a square, a triangle or one face of a box.
//
// winding is the normal the corners wind counter-clockwise about; plane may
// have been flipped to face the body.
type boundary struct {
	plane   primitive.Plane
	winding rl.Vector3
	pts     []rl.Vector3
}

func squareBoundary(sq primitive.Square) boundary {
	return boundary{plane: sq.Plane(), winding: sq.Normal(), pts: sq.Points()}
}

func triangleBoundary(tri primitive.Triangle) boundary {
	return boundary{plane: tri.Plane(), winding: tri.Normal(), pts: tri.Points()}
}

// facing turns the region's plane toward p. Regions are two-sided; the body
// is swept from whichever side it starts on.
func (b boundary) facing(p rl.Vector3) boundary {
	if !primitive.IsFront(b.plane, p) {
		b.plane = b.plane.Flip()
	}
	return b
}

func (b boundary) edges() []primitive.Segment {
	edges := make([]primitive.Segment, len(b.pts))
	for i := range b.pts {
		edges[i] = primitive.NewSegment(b.pts[i], b.pts[(i+1)%len(b.pts)])
	}
	return edges
}

// contains reports whether p projects into the region.
func (b boundary) contains(p rl.Vector3) bool {
	return collision.InsideConvex(b.winding, b.pts, primitive.CastToPlane(b.plane, p))
}

// settle moves the contact of an axis lying flat on the plane to the middle
// of the part of the axis over the region, so a body resting across an edge
// is still caught by the face. Axes crossing the plane are left alone.
func (b boundary) settle(face HitData, p, v rl.Vector3, lo, hi float32) HitData {
	if !face.Hit || primitive.Abs(rl.Vector3DotProduct(b.plane.Normal, v)) >= eps {
		return face
	}
	p = primitive.CastToPlane(b.plane, p)
	t0, t1, ok := collision.ClipConvex(b.winding, b.pts, p, v, lo, hi)
	if !ok {
		return face
	}
	face.HitPos = rl.Vector3Add(p, rl.Vector3Scale(v, (t0+t1)*0.5))
	return face
}

// sweepBoundary resolves a sweep against a convex region. face is the sweep
// against the region's plane: when its contact lies inside the region it is
// the first contact. Otherwise the body can only reach the region across its
// boundary, so the earliest of the per-edge sweeps wins.
func sweepBoundary(b boundary, face HitData, edge func(primitive.Segment) HitData) HitData {
	if face.Hit && b.contains(face.HitPos) {
		return face
	}
	var ret HitData
	for _, e := range b.edges() {
		ret = earliest(ret, edge(e))
	}
	return ret
}
