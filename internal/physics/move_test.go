package physics

import (
	"math"
	"math/rand"
	"testing"

	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpheresMeetHeadOn(t *testing.T) {
	a := moving(primitive.Sphere{Radius: 1, Position: vec(-3, 0, 0)}, vec(10, 0, 0), 1)
	b := moving(primitive.Sphere{Radius: 1, Position: vec(3, 0, 0)}, vec(-10, 0, 0), 1)

	h := MoveCollision(a, b)
	require.True(t, h.Hit)
	assert.InDelta(t, 0.2, h.Time, 1e-5)
	assertVec(t, vec(-1, 0, 0), h.HitNormal, 1e-5)
	assertVec(t, vec(0, 0, 0), h.HitPos, 1e-4)

	r := MoveCollision(b, a)
	require.True(t, r.Hit)
	assert.InDelta(t, h.Time, r.Time, 1e-6)
	assertVec(t, vec(1, 0, 0), r.HitNormal, 1e-5)
}

func TestSpheresAlreadyOverlapping(t *testing.T) {
	a := moving(primitive.Sphere{Radius: 1, Position: vec(0, 0, 0)}, rl.Vector3Zero(), 1)
	b := moving(primitive.Sphere{Radius: 1, Position: vec(1, 0, 0)}, rl.Vector3Zero(), 1)

	h := MoveCollision(a, b)
	require.True(t, h.Hit)
	assert.Zero(t, h.Time)
	assert.InDelta(t, 1, h.Length, 1e-6)
	assertVec(t, vec(-1, 0, 0), h.HitNormal, 1e-6)
	assertVec(t, vec(0.5, 0, 0), h.HitPos, 1e-6)
}

func TestSpheresMiss(t *testing.T) {
	a := moving(primitive.Sphere{Radius: 1, Position: vec(-3, 0, 0)}, vec(10, 0, 0), 1)
	b := moving(primitive.Sphere{Radius: 1, Position: vec(3, 5, 0)}, vec(-10, 0, 0), 1)
	assert.False(t, MoveCollision(a, b).Hit)

	// moving apart
	a = moving(primitive.Sphere{Radius: 1, Position: vec(-3, 0, 0)}, vec(-10, 0, 0), 1)
	b = moving(primitive.Sphere{Radius: 1, Position: vec(3, 0, 0)}, vec(10, 0, 0), 1)
	assert.False(t, MoveCollision(a, b).Hit)
}

func TestParallelCylinders(t *testing.T) {
	a := moving(primitive.Cylinder{Radius: 1, Line: primitive.Line{P: vec(-5, 0, 0), V: vec(0, 1, 0)}}, vec(10, 0, 0), 1)
	b := moving(primitive.Cylinder{Radius: 1, Line: primitive.Line{P: vec(5, 0, 0), V: vec(0, 1, 0)}}, rl.Vector3Zero(), 1)

	h := MoveCollision(a, b)
	require.True(t, h.Hit)
	assert.InDelta(t, 0.8, h.Time, 1e-5)
	assertVec(t, vec(-1, 0, 0), h.HitNormal, 1e-5)
	assert.InDelta(t, 4, h.HitPos.X, 1e-4)
}

func TestSphereAgainstCapsuleSide(t *testing.T) {
	capsule := primitive.NewCapsule(1, vec(0, 0, -2), vec(0, 0, 2))
	s := moving(primitive.Sphere{Radius: 1, Position: vec(-5, 0, 0)}, vec(10, 0, 0), 1)
	c := moving(capsule, rl.Vector3Zero(), 1)

	h := MoveCollision(s, c)
	require.True(t, h.Hit)
	assert.InDelta(t, 0.3, h.Time, 1e-5)
	assertVec(t, vec(-1, 0, 0), h.HitNormal, 1e-5)
	assertVec(t, vec(-1, 0, 0), h.HitPos, 1e-4)

	r := MoveCollision(c, s)
	require.True(t, r.Hit)
	assertVec(t, vec(1, 0, 0), r.HitNormal, 1e-5)
}

func TestSphereAgainstCapsuleCap(t *testing.T) {
	capsule := primitive.NewCapsule(1, vec(0, 0, 0), vec(0, 0, 2))
	s := moving(primitive.Sphere{Radius: 1, Position: vec(0, 0, -8)}, vec(0, 0, 10), 1)
	c := moving(capsule, rl.Vector3Zero(), 1)

	h := MoveCollision(s, c)
	require.True(t, h.Hit)
	// travels 6 of 10 before touching the cap at the origin
	assert.InDelta(t, 0.6, h.Time, 1e-5)
	assertVec(t, vec(0, 0, -1), h.HitNormal, 1e-5)
	assertVec(t, vec(0, 0, -1), h.HitPos, 1e-4)
}

func TestCapsulesCrossing(t *testing.T) {
	a := moving(primitive.NewCapsule(0.5, vec(-2, 5, 0), vec(2, 5, 0)), vec(0, -10, 0), 1)
	b := moving(primitive.NewCapsule(0.5, vec(0, 0, -2), vec(0, 0, 2)), rl.Vector3Zero(), 1)

	h := MoveCollision(a, b)
	require.True(t, h.Hit)
	assert.InDelta(t, 0.4, h.Time, 1e-4)
	assertVec(t, vec(0, 1, 0), h.HitNormal, 1e-4)
	assertVec(t, vec(0, 0.5, 0), h.HitPos, 1e-3)
}

func TestUnsupportedMovePairs(t *testing.T) {
	s := moving(primitive.Sphere{Radius: 1}, vec(1, 0, 0), 1)
	box := moving(primitive.NewAABBFromCenter(vec(0, 0, 0), vec(2, 2, 2)), rl.Vector3Zero(), 1)
	assert.False(t, MoveSupported(primitive.KindSphere, primitive.KindAABB))
	assert.False(t, MoveCollision(s, box).Hit)
	assert.False(t, MoveCollision(box, s).Hit)
	assert.True(t, MoveSupported(primitive.KindCapsule, primitive.KindCylinder))
}

func TestTimeOfImpactStaysInStep(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	f := func(lo, hi float32) float32 { return lo + rnd.Float32()*(hi-lo) }
	randVec := func(lo, hi float32) rl.Vector3 { return vec(f(lo, hi), f(lo, hi), f(lo, hi)) }

	hits := 0
	for i := 0; i < 500; i++ {
		a := moving(primitive.Sphere{Radius: f(0.2, 2), Position: randVec(-5, 5)}, randVec(-10, 10), 1)
		b := moving(primitive.Sphere{Radius: f(0.2, 2), Position: randVec(-5, 5)}, randVec(-10, 10), 1)
		h := MoveCollision(a, b)
		if !h.Hit {
			continue
		}
		hits++
		require.GreaterOrEqual(t, h.Time, float32(0))
		require.LessOrEqual(t, h.Time, float32(1))
		if h.Time == 0 {
			continue
		}
		sa := a.AtTime(h.Time).(primitive.Sphere)
		sb := b.AtTime(h.Time).(primitive.Sphere)
		gap := rl.Vector3Distance(sa.Position, sb.Position) - sa.Radius - sb.Radius
		assert.InDelta(t, 0, gap, 1e-2, "case %d", i)
	}
	assert.Greater(t, hits, 0)
}

func TestMoveCollisionIsPure(t *testing.T) {
	a := moving(primitive.NewCapsule(0.5, vec(-2, 5, 0), vec(2, 5, 0)), vec(0, -10, 0), 1)
	b := moving(primitive.Cylinder{Radius: 1, Line: primitive.Line{P: vec(0, 0, 0), V: vec(0, 0, 1)}}, vec(1, 0, 0), 1)
	pos, pre := a.Phys.Position(), a.Phys.PrePos()

	first := MoveCollision(a, b)
	second := MoveCollision(a, b)
	assert.Equal(t, first, second)
	assert.Equal(t, pos, a.Phys.Position())
	assert.Equal(t, pre, a.Phys.PrePos())
	assert.Equal(t, 0, a.Phys.Fixes())
}

func finiteHit(t *testing.T, h HitData) {
	t.Helper()
	assert.True(t, primitive.IsFinite(h.HitPos), "hit pos %v", h.HitPos)
	assert.True(t, primitive.IsFinite(h.HitNormal), "normal %v", h.HitNormal)
	assert.False(t, math.IsNaN(float64(h.Time)))
	assert.False(t, math.IsNaN(float64(h.Length)))
}

func TestZeroAxisStaysFinite(t *testing.T) {
	flatCyl := primitive.Cylinder{Radius: 1, Line: primitive.Line{P: vec(0, 0, 0)}}
	flatCap := primitive.Capsule{Radius: 1, S: primitive.Segment{P: vec(4, 0, 0)}}
	shapes := []primitive.Shape{
		primitive.Sphere{Radius: 1, Position: vec(-4, 0, 0)},
		flatCyl,
		flatCap,
	}
	for _, a := range shapes {
		for _, b := range shapes {
			h := MoveCollision(moving(a, vec(3, 0, 0), 1), moving(b, vec(-3, 0, 0), 1))
			finiteHit(t, h)
		}
	}
}
