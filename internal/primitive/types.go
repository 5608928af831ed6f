package primitive

import rl "github.com/gen2brain/raylib-go/raylib"

type Point struct {
	P rl.Vector3
}

func NewPoint(x, y, z float32) Point { return Point{P: rl.Vector3{X: x, Y: y, Z: z}} }

func (Point) Kind() Kind                   { return KindPoint }
func (p Point) Anchor() rl.Vector3         { return p.P }
func (p Point) MoveTo(to rl.Vector3) Shape { return Point{P: to} }

// Line is infinite through P along V. V is not normalized; its length sets
// the parametrization.
type Line struct {
	P, V rl.Vector3
}

func (Line) Kind() Kind                   { return KindLine }
func (l Line) Anchor() rl.Vector3         { return l.P }
func (l Line) MoveTo(to rl.Vector3) Shape { return Line{P: to, V: l.V} }

// At returns the point at parameter t.
func (l Line) At(t float32) rl.Vector3 {
	return rl.Vector3Add(l.P, rl.Vector3Scale(l.V, t))
}

// Segment is the part of Line{P, V} with parameter in [0,1].
type Segment struct {
	P, V rl.Vector3
}

func NewSegment(from, to rl.Vector3) Segment {
	return Segment{P: from, V: rl.Vector3Subtract(to, from)}
}

func (Segment) Kind() Kind                   { return KindSegment }
func (s Segment) Anchor() rl.Vector3         { return s.P }
func (s Segment) MoveTo(to rl.Vector3) Shape { return Segment{P: to, V: s.V} }

func (s Segment) End() rl.Vector3 { return rl.Vector3Add(s.P, s.V) }
func (s Segment) Line() Line      { return Line{P: s.P, V: s.V} }

func (s Segment) At(t float32) rl.Vector3 {
	return rl.Vector3Add(s.P, rl.Vector3Scale(s.V, t))
}

type Plane struct {
	P      rl.Vector3
	Normal rl.Vector3
}

func (Plane) Kind() Kind                    { return KindPlane }
func (pl Plane) Anchor() rl.Vector3         { return pl.P }
func (pl Plane) MoveTo(to rl.Vector3) Shape { return Plane{P: to, Normal: pl.Normal} }

// Flip returns the same plane facing the other way.
func (pl Plane) Flip() Plane {
	return Plane{P: pl.P, Normal: rl.Vector3Negate(pl.Normal)}
}

type Triangle struct {
	P [3]rl.Vector3
}

func NewTriangle(a, b, c rl.Vector3) Triangle { return Triangle{P: [3]rl.Vector3{a, b, c}} }

func (Triangle) Kind() Kind           { return KindTriangle }
func (t Triangle) Anchor() rl.Vector3 { return t.P[0] }

func (t Triangle) MoveTo(to rl.Vector3) Shape {
	d := rl.Vector3Subtract(to, t.P[0])
	for i := range t.P {
		t.P[i] = rl.Vector3Add(t.P[i], d)
	}
	return t
}

func (t Triangle) Normal() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3CrossProduct(
		rl.Vector3Subtract(t.P[1], t.P[0]), rl.Vector3Subtract(t.P[2], t.P[1])))
}

func (t Triangle) Plane() Plane { return Plane{P: t.P[0], Normal: t.Normal()} }

func (t Triangle) Points() []rl.Vector3 { return t.P[:] }

func (t Triangle) Sides() []Segment {
	return []Segment{
		NewSegment(t.P[0], t.P[1]),
		NewSegment(t.P[1], t.P[2]),
		NewSegment(t.P[2], t.P[0]),
	}
}

// Square is a planar quadrilateral. Corners must be coplanar and wound
// consistently; this is not validated.
type Square struct {
	P      [4]rl.Vector3
	normal rl.Vector3
	cached bool
}

// NewSquare builds a square and caches its normal.
func NewSquare(p0, p1, p2, p3 rl.Vector3) Square {
	s := Square{P: [4]rl.Vector3{p0, p1, p2, p3}}
	s.normal = s.computeNormal()
	s.cached = true
	return s
}

func (Square) Kind() Kind           { return KindSquare }
func (s Square) Anchor() rl.Vector3 { return s.P[0] }

func (s Square) MoveTo(to rl.Vector3) Shape {
	d := rl.Vector3Subtract(to, s.P[0])
	for i := range s.P {
		s.P[i] = rl.Vector3Add(s.P[i], d)
	}
	return s
}

func (s Square) computeNormal() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3CrossProduct(
		rl.Vector3Subtract(s.P[1], s.P[0]), rl.Vector3Subtract(s.P[2], s.P[1])))
}

// Normal returns the cached normal, or computes it for a literal Square.
func (s Square) Normal() rl.Vector3 {
	if s.cached {
		return s.normal
	}
	return s.computeNormal()
}

func (s Square) Plane() Plane { return Plane{P: s.P[0], Normal: s.Normal()} }

func (s Square) Points() []rl.Vector3 { return s.P[:] }

func (s Square) Sides() []Segment {
	return []Segment{
		NewSegment(s.P[0], s.P[1]),
		NewSegment(s.P[1], s.P[2]),
		NewSegment(s.P[2], s.P[3]),
		NewSegment(s.P[3], s.P[0]),
	}
}

// AABB spans [Min+Position, Max+Position] in world space.
type AABB struct {
	Min, Max rl.Vector3
	Position rl.Vector3
}

// NewAABBFromCenter creates a box from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3Scale(size, 0.5)
	return AABB{Min: rl.Vector3Negate(half), Max: half, Position: center}
}

func (AABB) Kind() Kind           { return KindAABB }
func (a AABB) Anchor() rl.Vector3 { return a.Position }
func (a AABB) MoveTo(to rl.Vector3) Shape {
	a.Position = to
	return a
}

func (a AABB) WorldMin() rl.Vector3 { return rl.Vector3Add(a.Min, a.Position) }
func (a AABB) WorldMax() rl.Vector3 { return rl.Vector3Add(a.Max, a.Position) }

// Points returns the eight world-space corners. Faces index into this order.
func (a AABB) Points() [8]rl.Vector3 {
	mn, mx := a.WorldMin(), a.WorldMax()
	return [8]rl.Vector3{
		{X: mn.X, Y: mx.Y, Z: mx.Z},
		{X: mn.X, Y: mn.Y, Z: mx.Z},
		{X: mx.X, Y: mn.Y, Z: mx.Z},
		mx,
		{X: mn.X, Y: mx.Y, Z: mn.Z},
		mn,
		{X: mx.X, Y: mn.Y, Z: mn.Z},
		{X: mx.X, Y: mx.Y, Z: mn.Z},
	}
}

// faceIndex winds every face so its normal points out of the box.
var faceIndex = [6][4]int{
	{0, 1, 2, 3}, // +z
	{3, 2, 6, 7}, // +x
	{7, 6, 5, 4}, // -z
	{4, 5, 1, 0}, // -x
	{4, 0, 3, 7}, // +y
	{1, 5, 6, 2}, // -y
}

// Faces returns the six outward-facing sides of the box.
func (a AABB) Faces() [6]Square {
	p := a.Points()
	var faces [6]Square
	for i, f := range faceIndex {
		faces[i] = NewSquare(p[f[0]], p[f[1]], p[f[2]], p[f[3]])
	}
	return faces
}

// Contains reports whether p is inside the closed box.
func (a AABB) Contains(p rl.Vector3) bool {
	mn, mx := a.WorldMin(), a.WorldMax()
	return p.X >= mn.X && p.X <= mx.X &&
		p.Y >= mn.Y && p.Y <= mx.Y &&
		p.Z >= mn.Z && p.Z <= mx.Z
}

type Sphere struct {
	Radius   float32
	Position rl.Vector3
}

func (Sphere) Kind() Kind           { return KindSphere }
func (s Sphere) Anchor() rl.Vector3 { return s.Position }
func (s Sphere) MoveTo(to rl.Vector3) Shape {
	s.Position = to
	return s
}

// Cylinder is infinite along its line and has no caps.
type Cylinder struct {
	Radius float32
	Line   Line
}

func (Cylinder) Kind() Kind           { return KindCylinder }
func (c Cylinder) Anchor() rl.Vector3 { return c.Line.P }
func (c Cylinder) MoveTo(to rl.Vector3) Shape {
	c.Line.P = to
	return c
}

type Capsule struct {
	Radius float32
	S      Segment
}

func NewCapsule(radius float32, from, to rl.Vector3) Capsule {
	return Capsule{Radius: radius, S: NewSegment(from, to)}
}

func (Capsule) Kind() Kind           { return KindCapsule }
func (c Capsule) Anchor() rl.Vector3 { return c.S.P }
func (c Capsule) MoveTo(to rl.Vector3) Shape {
	c.S.P = to
	return c
}

// Axis returns the infinite cylinder the capsule's side lies on.
func (c Capsule) Axis() Cylinder { return Cylinder{Radius: c.Radius, Line: c.S.Line()} }

// Caps returns the two hemisphere centers as spheres.
func (c Capsule) Caps() [2]Sphere {
	return [2]Sphere{
		{Radius: c.Radius, Position: c.S.P},
		{Radius: c.Radius, Position: c.S.End()},
	}
}

// Dome is a spherical shell. Bodies inside MinRadius are contained by it.
type Dome struct {
	MinRadius float32
	MaxRadius float32
	Position  rl.Vector3
}

func (Dome) Kind() Kind           { return KindDome }
func (d Dome) Anchor() rl.Vector3 { return d.Position }
func (d Dome) MoveTo(to rl.Vector3) Shape {
	d.Position = to
	return d
}

// Inner returns the sphere bounding the dome's hollow.
func (d Dome) Inner() Sphere { return Sphere{Radius: d.MinRadius, Position: d.Position} }
