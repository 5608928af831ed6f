package primitive

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func vec(x, y, z float32) rl.Vector3 { return rl.Vector3{X: x, Y: y, Z: z} }

func TestKindNames(t *testing.T) {
	for k := KindPoint; k <= KindDome; k++ {
		got, ok := ParseKind(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("torus")
	assert.False(t, ok)
}

func TestAABBFacesPointOutward(t *testing.T) {
	box := AABB{Min: vec(-1, -2, -3), Max: vec(1, 2, 3), Position: vec(10, 0, 0)}
	center := vec(10, 0, 0)
	seen := map[rl.Vector3]bool{}
	for _, f := range box.Faces() {
		n := f.Normal()
		out := rl.Vector3Subtract(f.P[0], center)
		assert.Greater(t, rl.Vector3DotProduct(n, out), float32(0), "face normal %v", n)
		assert.InDelta(t, 1, rl.Vector3Length(n), 1e-5)
		seen[n] = true
	}
	assert.Len(t, seen, 6)
}

func TestAABBContainsIsClosed(t *testing.T) {
	box := AABB{Min: vec(-1, -1, -1), Max: vec(1, 1, 1)}
	assert.True(t, box.Contains(vec(1, 0, 0)))
	assert.True(t, box.Contains(vec(-1, -1, -1)))
	assert.False(t, box.Contains(vec(1.001, 0, 0)))
}

func TestSquareNormalCachedAndLiteral(t *testing.T) {
	pts := [4]rl.Vector3{vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(0, 1, 0)}
	cached := NewSquare(pts[0], pts[1], pts[2], pts[3])
	literal := Square{P: pts}
	assert.Equal(t, vec(0, 0, 1), cached.Normal())
	assert.Equal(t, cached.Normal(), literal.Normal())

	sides := cached.Sides()
	assert.Len(t, sides, 4)
	for i, s := range sides {
		assert.Equal(t, pts[i], s.P)
		assert.Equal(t, pts[(i+1)%4], s.End())
	}
}

func TestMoveToTranslatesPolygons(t *testing.T) {
	sq := NewSquare(vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(0, 1, 0))
	moved := At(sq, vec(5, 5, 5))
	assert.Equal(t, vec(6, 6, 5), moved.P[2])
	assert.Equal(t, sq.Normal(), moved.Normal())

	tri := NewTriangle(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0))
	assert.Equal(t, vec(1, 3, 0), At(tri, vec(1, 2, 0)).P[2])
}

func TestToCenter(t *testing.T) {
	assert.Equal(t, vec(0, 2, 0), ToCenter(NewCapsule(1, vec(0, 0, 0), vec(0, 4, 0))))
	assert.Equal(t, vec(1, 0, 0), ToCenter(NewSegment(vec(0, 0, 0), vec(2, 0, 0))))
	assert.Equal(t, vec(0, 0, 0), ToCenter(Sphere{Radius: 1}))
}

func TestHitDirection(t *testing.T) {
	c := NewCapsule(1, vec(0, 0, 0), vec(0, 4, 0))
	tests := []struct {
		name string
		hit  rl.Vector3
		want rl.Vector3
	}{
		{"side", vec(1, 2, 0), vec(1, 0, 0)},
		{"bottom cap", vec(0, -1, 0), vec(0, -1, 0)},
		{"top cap", vec(0, 5, 0), vec(0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HitDirection(c, tt.hit, c.S.P))
		})
	}

	cyl := Cylinder{Radius: 1, Line: Line{V: vec(0, 1, 0)}}
	assert.Equal(t, vec(0, 0, -1), HitDirection(cyl, vec(0, 100, -1), cyl.Line.P))
	assert.Equal(t, vec(0, 1, 0), HitDirection(Sphere{Radius: 1}, vec(0, 1, 0), vec(0, 0, 0)))
}

func TestCastToLineZeroDirection(t *testing.T) {
	l := Line{P: vec(1, 2, 3)}
	assert.Equal(t, l.P, CastToLine(l, vec(9, 9, 9)))
}

func TestMathHelpers(t *testing.T) {
	assert.Equal(t, float32(0), Sqrt(-1))
	assert.Equal(t, 3, Clamp(5, 0, 3))
	assert.Equal(t, float32(2), Abs(float32(-2)))
	assert.True(t, IsParallel(vec(1, 0, 0), vec(-3, 0, 0)))
	assert.True(t, IsParallel(vec(0, 0, 0), vec(0, 1, 0)))
	assert.False(t, IsParallel(vec(1, 0, 0), vec(0, 1, 0)))
	assert.Equal(t, vec(1, 1, 1), Lerp(vec(0, 0, 0), vec(2, 2, 2), 0.5))

	seg := NewSegment(vec(0, 0, 0), vec(1, 0, 0))
	assert.True(t, IsInside(seg, vec(1, 5, 0)))
	assert.False(t, IsInside(seg, vec(1.5, 0, 0)))
}
