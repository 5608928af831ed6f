package config

import (
	"testing"

	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeSpecBuild(t *testing.T) {
	tests := []struct {
		spec ShapeSpec
		kind primitive.Kind
	}{
		{ShapeSpec{Kind: "point", Position: Vec3{1, 2, 3}}, primitive.KindPoint},
		{ShapeSpec{Kind: "line", Vector: Vec3{1, 0, 0}}, primitive.KindLine},
		{ShapeSpec{Kind: "segment", Vector: Vec3{1, 0, 0}}, primitive.KindSegment},
		{ShapeSpec{Kind: "plane", Normal: Vec3{0, 1, 0}}, primitive.KindPlane},
		{ShapeSpec{Kind: "triangle", Points: []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}, primitive.KindTriangle},
		{ShapeSpec{Kind: "square", Points: []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}}, primitive.KindSquare},
		{ShapeSpec{Kind: "aabb", Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}, primitive.KindAABB},
		{ShapeSpec{Kind: "sphere", Radius: 1}, primitive.KindSphere},
		{ShapeSpec{Kind: "cylinder", Vector: Vec3{0, 1, 0}, Radius: 1}, primitive.KindCylinder},
		{ShapeSpec{Kind: "CAPSULE", Vector: Vec3{0, 1, 0}, Radius: 1}, primitive.KindCapsule},
		{ShapeSpec{Kind: "dome", MinRadius: 5, MaxRadius: 6}, primitive.KindDome},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s, err := tt.spec.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.kind, s.Kind())
		})
	}
}

func TestShapeSpecAABBFromSize(t *testing.T) {
	s, err := ShapeSpec{Kind: "aabb", Position: Vec3{1, 1, 1}, Size: Vec3{2, 4, 6}}.Build()
	require.NoError(t, err)
	box := s.(primitive.AABB)
	assert.Equal(t, rl.Vector3{X: 0, Y: -1, Z: -2}, box.WorldMin())
	assert.Equal(t, rl.Vector3{X: 2, Y: 3, Z: 4}, box.WorldMax())
}

func TestShapeSpecRejects(t *testing.T) {
	bad := map[string]ShapeSpec{
		"unknown kind":      {Kind: "torus"},
		"zero radius":       {Kind: "sphere"},
		"zero line":         {Kind: "line"},
		"zero normal":       {Kind: "plane"},
		"short triangle":    {Kind: "triangle", Points: []Vec3{{}, {}}},
		"short square":      {Kind: "square", Points: []Vec3{{}, {}, {}}},
		"inverted box":      {Kind: "aabb", Min: Vec3{1, 0, 0}},
		"axisless cylinder": {Kind: "cylinder", Radius: 1},
		"inverted dome":     {Kind: "dome", MinRadius: 5, MaxRadius: 4},
	}
	for name, spec := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := spec.Build()
			assert.ErrorIs(t, err, ErrInvalidShape)
		})
	}
}
