package main

import (
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// extent is how far infinite shapes are drawn from their anchor.
const extent = 100

func drawShape(s primitive.Shape, c rl.Color) {
	switch s := s.(type) {
	case primitive.Point:
		rl.DrawSphere(s.P, 0.2, c)
	case primitive.Line:
		d := rl.Vector3Scale(rl.Vector3Normalize(s.V), extent)
		rl.DrawLine3D(rl.Vector3Subtract(s.P, d), rl.Vector3Add(s.P, d), c)
	case primitive.Segment:
		rl.DrawLine3D(s.P, s.End(), c)
	case primitive.Plane:
		drawPlane(s, c)
	case primitive.Triangle:
		drawLoop(s.P[:], c)
	case primitive.Square:
		drawLoop(s.P[:], c)
	case primitive.AABB:
		lo, hi := s.WorldMin(), s.WorldMax()
		rl.DrawCubeWiresV(rl.Vector3Scale(rl.Vector3Add(lo, hi), 0.5), rl.Vector3Subtract(hi, lo), c)
	case primitive.Sphere:
		rl.DrawSphereWires(s.Position, s.Radius, 8, 12, c)
	case primitive.Cylinder:
		d := rl.Vector3Scale(rl.Vector3Normalize(s.Line.V), extent)
		rl.DrawCylinderWiresEx(rl.Vector3Subtract(s.Line.P, d), rl.Vector3Add(s.Line.P, d), s.Radius, s.Radius, 12, c)
	case primitive.Capsule:
		rl.DrawCapsuleWires(s.S.P, s.S.End(), s.Radius, 12, 4, c)
	case primitive.Dome:
		rl.DrawSphereWires(s.Position, s.MinRadius, 12, 16, rl.Fade(c, 0.5))
		rl.DrawSphereWires(s.Position, s.MaxRadius, 12, 16, rl.Fade(c, 0.2))
	}
}

func drawLoop(pts []rl.Vector3, c rl.Color) {
	for i := range pts {
		rl.DrawLine3D(pts[i], pts[(i+1)%len(pts)], c)
	}
}

// drawPlane draws a square patch of the plane around its anchor.
func drawPlane(p primitive.Plane, c rl.Color) {
	u := rl.Vector3Perpendicular(p.Normal)
	u = rl.Vector3Scale(rl.Vector3Normalize(u), extent/2)
	w := rl.Vector3Scale(rl.Vector3Normalize(rl.Vector3CrossProduct(p.Normal, u)), extent/2)
	corners := []rl.Vector3{
		rl.Vector3Add(p.P, rl.Vector3Add(u, w)),
		rl.Vector3Add(p.P, rl.Vector3Subtract(u, w)),
		rl.Vector3Subtract(p.P, rl.Vector3Add(u, w)),
		rl.Vector3Subtract(p.P, rl.Vector3Subtract(u, w)),
	}
	drawLoop(corners, rl.Fade(c, 0.5))
}
