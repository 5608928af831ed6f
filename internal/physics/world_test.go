package physics

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"collide3d/internal/collision"
	"collide3d/internal/config"
	"collide3d/internal/log"
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestWorld(t *testing.T) *PhysicsWorld {
	t.Helper()
	w := NewPhysicsWorld()
	w.SetLogger(log.NewNop())
	return w
}

func mustBody(t *testing.T, w *PhysicsWorld, name string, shape primitive.Shape) *Body {
	t.Helper()
	b, err := w.AddBody(name, shape, 1)
	require.NoError(t, err)
	return b
}

func mustStatic(t *testing.T, w *PhysicsWorld, name string, shape primitive.Shape) *Static {
	t.Helper()
	s, err := w.AddStatic(name, shape)
	require.NoError(t, err)
	return s
}

func TestAddBodyRejectsFixedShapes(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.AddBody("crate", primitive.NewAABBFromCenter(vec(0, 0, 0), vec(1, 1, 1)), 1)
	assert.True(t, errors.Is(err, ErrUnsupportedBody))
	assert.Empty(t, w.Bodies)

	_, err = w.AddStatic("rod", primitive.Cylinder{Radius: 1, Line: primitive.Line{V: vec(0, 1, 0)}})
	assert.True(t, errors.Is(err, ErrUnsupportedStatic))
	assert.Empty(t, w.Statics)

	b := mustBody(t, w, "ball", primitive.Sphere{Radius: 1})
	assert.True(t, b.UseGravity)
	assert.NotEqual(t, uuid.Nil, b.ID)
}

func TestRemoveBody(t *testing.T) {
	w := newTestWorld(t)
	a := mustBody(t, w, "a", primitive.Sphere{Radius: 1})
	b := mustBody(t, w, "b", primitive.Sphere{Radius: 1, Position: vec(5, 0, 0)})
	floor := mustStatic(t, w, "floor", ground)

	got, ok := w.Body(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)

	assert.True(t, w.RemoveBody(a.ID))
	assert.False(t, w.RemoveBody(a.ID))
	_, ok = w.Body(a.ID)
	assert.False(t, ok)
	assert.Len(t, w.Bodies, 1)

	assert.True(t, w.RemoveBody(floor.ID))
	assert.Empty(t, w.Statics)
	assert.False(t, w.RemoveBody(uuid.New()))
}

func TestBallStaysOnGround(t *testing.T) {
	w := newTestWorld(t)
	ball := mustBody(t, w, "ball", primitive.Sphere{Radius: 1, Position: vec(0, 5, 0)})
	mustStatic(t, w, "ground", ground)

	for i := 0; i < 600; i++ {
		w.Step(DefaultTimeStep)
		require.GreaterOrEqual(t, ball.Phys.Position().Y, float32(1-1e-3), "step %d", i)
	}
	assert.Equal(t, uint64(600), w.Steps())
}

func TestFastBodyDoesNotTunnel(t *testing.T) {
	w := newTestWorld(t)
	ball := mustBody(t, w, "bullet", primitive.Sphere{Radius: 0.5, Position: vec(0, 5, 0)})
	ball.UseGravity = false
	ball.Phys.SetVelocity(vec(0, -600, 0))
	mustStatic(t, w, "pad", primitive.NewSquare(vec(-2, 0, -2), vec(2, 0, -2), vec(2, 0, 2), vec(-2, 0, 2)))

	w.Step(DefaultTimeStep)
	assert.Greater(t, ball.Phys.Position().Y, float32(0.5))
	assert.Greater(t, ball.Phys.Velocity().Y, float32(0))
	require.Len(t, w.Contacts(), 1)
	assert.Equal(t, "pad", w.Contacts()[0].Other())
}

func TestBodiesCollideInWorld(t *testing.T) {
	w := newTestWorld(t)
	w.Gravity = rl.Vector3Zero()
	a := mustBody(t, w, "left", primitive.Sphere{Radius: 1, Position: vec(-3, 0, 0)})
	b := mustBody(t, w, "right", primitive.Sphere{Radius: 1, Position: vec(3, 0, 0)})
	a.Phys.SetVelocity(vec(10, 0, 0))
	b.Phys.SetVelocity(vec(-10, 0, 0))

	w.Step(1)
	assertVec(t, vec(-1, 0, 0), a.Phys.Velocity(), 1e-4)
	assertVec(t, vec(1, 0, 0), b.Phys.Velocity(), 1e-4)
	contacts := w.Contacts()
	require.Len(t, contacts, 1)
	assert.Same(t, a, contacts[0].A)
	assert.Equal(t, "right", contacts[0].Other())
}

func TestRestingBodyStruckFromAbove(t *testing.T) {
	w := newTestWorld(t)
	w.Gravity = vec(0, -10, 0)
	w.Resolver.Reflection = 1
	mustStatic(t, w, "ground", ground)
	rester := mustBody(t, w, "rester", primitive.Sphere{Radius: 1, Position: vec(0, 1, 0)})
	striker := mustBody(t, w, "striker", primitive.Sphere{Radius: 1, Position: vec(0, 4, 0)})
	striker.Phys.SetVelocity(vec(0, -10, 0))

	struck := false
	for i := 0; i < 60 && !struck; i++ {
		w.Step(DefaultTimeStep)
		require.GreaterOrEqual(t, rester.Phys.Position().Y, float32(1-1e-3), "step %d", i)
		for _, c := range w.Contacts() {
			if c.B != nil {
				struck = true
			}
		}
	}
	require.True(t, struck)
	assert.InDelta(t, 0, rester.Phys.Velocity().Y, 1e-3)
	assert.Greater(t, striker.Phys.Velocity().Y, float32(0), "the ground holds the rester, so the striker rebounds")
}

func TestContactEvents(t *testing.T) {
	w := newTestWorld(t)
	ball := mustBody(t, w, "ball", primitive.Sphere{Radius: 1})
	ball.UseGravity = false
	post := mustStatic(t, w, "post", primitive.Sphere{Radius: 1, Position: vec(1.5, 0, 0)})

	var events []string
	w.OnContactEnter.AddListener(func(c Contact) { events = append(events, "enter "+c.Other()) })
	w.OnContactStay.AddListener(func(c Contact) { events = append(events, "stay "+c.Other()) })
	w.OnContactExit.AddListener(func(c Contact) {
		assert.Same(t, post, c.Static)
		events = append(events, "exit "+c.Other())
	})

	w.Step(DefaultTimeStep)
	assertVec(t, vec(-0.5, 0, 0), ball.Phys.Position(), 1e-6)
	w.Step(DefaultTimeStep)
	ball.Phys.SetPosition(vec(-10, 0, 0), false)
	w.Step(DefaultTimeStep)
	w.Step(DefaultTimeStep)

	assert.Equal(t, []string{"enter post", "stay post", "exit post"}, events)
	assert.Empty(t, w.Contacts())
}

func TestUnsupportedStaticPairWarnsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := NewPhysicsWorld()
	w.SetLogger(log.FromZap(zap.New(core)))
	mustBody(t, w, "rod", primitive.Cylinder{Radius: 1, Line: primitive.Line{V: vec(0, 1, 0)}})
	mustStatic(t, w, "ramp", primitive.NewTriangle(vec(0, 0, 0), vec(1, 0, 0), vec(0, 0, 1)))

	w.Step(DefaultTimeStep)
	w.Step(DefaultTimeStep)
	warns := logs.FilterMessage("unsupported shape pair skipped").All()
	require.Len(t, warns, 1)
	assert.Equal(t, "cylinder", warns[0].ContextMap()["a"])
	assert.Equal(t, "triangle", warns[0].ContextMap()["b"])
}

func buildScene(t *testing.T) *PhysicsWorld {
	t.Helper()
	w := newTestWorld(t)
	mustStatic(t, w, "ground", ground)
	mustStatic(t, w, "crate", primitive.NewAABBFromCenter(vec(4, 1, 0), vec(2, 2, 2)))
	for i := 0; i < 4; i++ {
		b := mustBody(t, w, fmt.Sprintf("ball-%d", i), primitive.Sphere{Radius: 0.5, Position: vec(float32(i)-1.5, 3+float32(i), 0)})
		b.Phys.SetVelocity(vec(2, 0, float32(i)*0.5))
	}
	c := mustBody(t, w, "pill", primitive.NewCapsule(0.5, vec(-3, 6, 0), vec(-3, 7, 0)))
	c.Phys.SetVelocity(vec(5, 0, 0))
	return w
}

func TestDigestIsDeterministic(t *testing.T) {
	a, b := buildScene(t), buildScene(t)
	assert.Equal(t, a.Digest(), b.Digest())

	for i := 0; i < 120; i++ {
		a.Step(DefaultTimeStep)
		b.Step(DefaultTimeStep)
	}
	assert.Equal(t, a.Digest(), b.Digest())

	before := a.Digest()
	a.Step(DefaultTimeStep)
	assert.NotEqual(t, before, a.Digest())
}

func TestPairsCoverEveryOverlap(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	w := newTestWorld(t)
	w.CellSize = 3
	for i := 0; i < 60; i++ {
		pos := vec(rnd.Float32()*40-20, rnd.Float32()*40-20, rnd.Float32()*40-20)
		mustBody(t, w, fmt.Sprintf("s%d", i), primitive.Sphere{Radius: 0.5 + rnd.Float32()*3, Position: pos})
	}

	seen := map[[2]string]bool{}
	for _, p := range w.Pairs() {
		key := [2]string{p[0].Name, p[1].Name}
		require.False(t, seen[key], "duplicate pair %v", key)
		seen[key] = true
	}

	overlaps := 0
	for i, a := range w.Bodies {
		for _, b := range w.Bodies[i+1:] {
			if collision.Overlaps(a.Current(), b.Current()) {
				overlaps++
				assert.True(t, seen[[2]string{a.Name, b.Name}], "missed %s-%s", a.Name, b.Name)
			}
		}
	}
	assert.Greater(t, overlaps, 0)
}

func TestUnboundedBodyPairsWithEveryone(t *testing.T) {
	w := newTestWorld(t)
	mustBody(t, w, "near", primitive.Sphere{Radius: 1, Position: vec(-50, 0, 0)})
	mustBody(t, w, "rod", primitive.Cylinder{Radius: 1, Line: primitive.Line{V: vec(0, 1, 0)}})
	mustBody(t, w, "far", primitive.Sphere{Radius: 1, Position: vec(50, 0, 0)})

	pairs := w.Pairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, "near", pairs[0][0].Name)
	assert.Equal(t, "rod", pairs[0][1].Name)
	assert.Equal(t, "rod", pairs[1][0].Name)
	assert.Equal(t, "far", pairs[1][1].Name)
}

func TestRaycast(t *testing.T) {
	w := newTestWorld(t)
	ball := mustBody(t, w, "ball", primitive.Sphere{Radius: 1, Position: vec(0, 5, 0)})
	floor := mustStatic(t, w, "floor", ground)
	down := vec(0, -1, 0)

	hit, ok := w.Raycast(vec(0, 10, 0), down, 100)
	require.True(t, ok)
	assert.Same(t, ball, hit.Body)
	assert.Nil(t, hit.Static)
	assertVec(t, vec(0, 6, 0), hit.Point, 1e-4)
	assertVec(t, vec(0, 1, 0), hit.Normal, 1e-4)
	assert.InDelta(t, 4, hit.Distance, 1e-4)

	hit, ok = w.Raycast(vec(5, 10, 0), down, 100)
	require.True(t, ok)
	assert.Same(t, floor, hit.Static)
	assertVec(t, vec(5, 0, 0), hit.Point, 1e-4)
	assertVec(t, vec(0, 1, 0), hit.Normal, 1e-6)

	// the floor faces the ray from below too
	hit, ok = w.Raycast(vec(5, -3, 0), vec(0, 1, 0), 100)
	require.True(t, ok)
	assertVec(t, vec(0, -1, 0), hit.Normal, 1e-6)

	_, ok = w.Raycast(vec(5, 10, 0), vec(0, 1, 0), 100)
	assert.False(t, ok)
	_, ok = w.Raycast(vec(5, 10, 0), down, 5)
	assert.False(t, ok, "beyond max distance")
	_, ok = w.Raycast(vec(0, 10, 0), rl.Vector3Zero(), 100)
	assert.False(t, ok)
}

func TestRaycastBoxFace(t *testing.T) {
	w := newTestWorld(t)
	mustStatic(t, w, "crate", primitive.NewAABBFromCenter(vec(0, 0, 0), vec(2, 2, 2)))

	hit, ok := w.Raycast(vec(-10, 0.2, 0.3), vec(1, 0, 0), 50)
	require.True(t, ok)
	assertVec(t, vec(-1, 0.2, 0.3), hit.Point, 1e-4)
	assertVec(t, vec(-1, 0, 0), hit.Normal, 1e-6)
	assert.InDelta(t, 9, hit.Distance, 1e-4)
}

func TestNewPhysicsWorldFromConfig(t *testing.T) {
	mass := float32(2)
	floating := false
	cfg := config.Default()
	cfg.World.Gravity = config.Vec3{0, -10, 0}
	cfg.World.MaxVelocity = 50
	cfg.Bodies = []config.BodySpec{
		{
			Name:       "ball",
			Shape:      config.ShapeSpec{Kind: "sphere", Position: config.Vec3{0, 5, 0}, Radius: 1},
			Mass:       &mass,
			Velocity:   config.Vec3{1, 0, 0},
			UseGravity: &floating,
		},
		{
			Name:  "pill",
			Shape: config.ShapeSpec{Kind: "capsule", Position: config.Vec3{3, 1, 0}, Vector: config.Vec3{0, 2, 0}, Radius: 0.5},
		},
	}
	cfg.Statics = []config.StaticSpec{
		{Name: "ground", Shape: config.ShapeSpec{Kind: "plane", Normal: config.Vec3{0, 2, 0}}},
	}

	w, err := NewPhysicsWorldFromConfig(&cfg, log.NewNop())
	require.NoError(t, err)
	assert.Equal(t, vec(0, -10, 0), w.Gravity)
	assert.Equal(t, cfg.World.CellSize, w.CellSize)
	assert.Equal(t, DefaultResolver(), w.Resolver)

	require.Len(t, w.Bodies, 2)
	ball := w.Bodies[0]
	assert.Equal(t, "ball", ball.Name)
	assert.Equal(t, float32(2), ball.Phys.Mass())
	assert.False(t, ball.UseGravity)
	assert.Equal(t, vec(1, 0, 0), ball.Phys.Velocity())
	assert.Equal(t, vec(0, 5, 0), ball.Phys.Position())
	assert.True(t, w.Bodies[1].UseGravity)
	assert.Equal(t, float32(1), w.Bodies[1].Phys.Mass())

	ball.Phys.SetPreVel(vec(500, 0, 0))
	ball.Phys.Fix()
	assertVec(t, vec(50, 0, 0), ball.Phys.Velocity(), 1e-3)

	require.Len(t, w.Statics, 1)
	assertVec(t, vec(0, 1, 0), w.Statics[0].Shape.(primitive.Plane).Normal, 1e-6)
}

func TestNewPhysicsWorldFromConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{
			name:   "bad world",
			mutate: func(c *config.Config) { c.World.TimeStep = 0 },
			want:   config.ErrInvalidWorld,
		},
		{
			name: "box body",
			mutate: func(c *config.Config) {
				c.Bodies = []config.BodySpec{{Name: "crate", Shape: config.ShapeSpec{Kind: "aabb", Size: config.Vec3{1, 1, 1}}}}
			},
			want: ErrUnsupportedBody,
		},
		{
			name: "cylinder static",
			mutate: func(c *config.Config) {
				c.Statics = []config.StaticSpec{{Name: "rod", Shape: config.ShapeSpec{Kind: "cylinder", Vector: config.Vec3{0, 1, 0}, Radius: 1}}}
			},
			want: ErrUnsupportedStatic,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			_, err := NewPhysicsWorldFromConfig(&cfg, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
