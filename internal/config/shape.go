package config

import (
	"fmt"
	"strings"

	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ShapeSpec describes any primitive. Which fields matter depends on Kind:
//
//	point              position
//	line, segment      position, vector
//	plane              position, normal
//	triangle, square   points
//	aabb               position, min, max (or size)
//	sphere             position, radius
//	cylinder, capsule  position, vector, radius
//	dome               position, min_radius, max_radius
type ShapeSpec struct {
	Kind      string  `json:"kind" yaml:"kind" toml:"kind"`
	Position  Vec3    `json:"position" yaml:"position" toml:"position"`
	Vector    Vec3    `json:"vector" yaml:"vector" toml:"vector"`
	Normal    Vec3    `json:"normal" yaml:"normal" toml:"normal"`
	Points    []Vec3  `json:"points,omitempty" yaml:"points,omitempty" toml:"points,omitempty"`
	Min       Vec3    `json:"min" yaml:"min" toml:"min"`
	Max       Vec3    `json:"max" yaml:"max" toml:"max"`
	Size      Vec3    `json:"size" yaml:"size" toml:"size"`
	Radius    float32 `json:"radius" yaml:"radius" toml:"radius"`
	MinRadius float32 `json:"min_radius" yaml:"min_radius" toml:"min_radius"`
	MaxRadius float32 `json:"max_radius" yaml:"max_radius" toml:"max_radius"`
}

func (s ShapeSpec) Build() (primitive.Shape, error) {
	kind, ok := primitive.ParseKind(strings.ToLower(s.Kind))
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidShape, s.Kind)
	}
	pos := s.Position.V()
	switch kind {
	case primitive.KindPoint:
		return primitive.Point{P: pos}, nil
	case primitive.KindLine:
		if err := nonZero("vector", s.Vector); err != nil {
			return nil, err
		}
		return primitive.Line{P: pos, V: s.Vector.V()}, nil
	case primitive.KindSegment:
		return primitive.Segment{P: pos, V: s.Vector.V()}, nil
	case primitive.KindPlane:
		if err := nonZero("normal", s.Normal); err != nil {
			return nil, err
		}
		return primitive.Plane{P: pos, Normal: rl.Vector3Normalize(s.Normal.V())}, nil
	case primitive.KindTriangle:
		if len(s.Points) != 3 {
			return nil, fmt.Errorf("%w: triangle needs 3 points, got %d", ErrInvalidShape, len(s.Points))
		}
		return primitive.NewTriangle(s.Points[0].V(), s.Points[1].V(), s.Points[2].V()), nil
	case primitive.KindSquare:
		if len(s.Points) != 4 {
			return nil, fmt.Errorf("%w: square needs 4 points, got %d", ErrInvalidShape, len(s.Points))
		}
		return primitive.NewSquare(s.Points[0].V(), s.Points[1].V(), s.Points[2].V(), s.Points[3].V()), nil
	case primitive.KindAABB:
		if s.Size != (Vec3{}) {
			return primitive.NewAABBFromCenter(pos, s.Size.V()), nil
		}
		for i := range s.Min {
			if s.Min[i] > s.Max[i] {
				return nil, fmt.Errorf("%w: aabb min %v above max %v", ErrInvalidShape, s.Min, s.Max)
			}
		}
		return primitive.AABB{Min: s.Min.V(), Max: s.Max.V(), Position: pos}, nil
	case primitive.KindSphere:
		if err := positive("radius", s.Radius); err != nil {
			return nil, err
		}
		return primitive.Sphere{Radius: s.Radius, Position: pos}, nil
	case primitive.KindCylinder:
		if err := positive("radius", s.Radius); err != nil {
			return nil, err
		}
		if err := nonZero("vector", s.Vector); err != nil {
			return nil, err
		}
		return primitive.Cylinder{Radius: s.Radius, Line: primitive.Line{P: pos, V: s.Vector.V()}}, nil
	case primitive.KindCapsule:
		if err := positive("radius", s.Radius); err != nil {
			return nil, err
		}
		return primitive.Capsule{Radius: s.Radius, S: primitive.Segment{P: pos, V: s.Vector.V()}}, nil
	case primitive.KindDome:
		if err := positive("min_radius", s.MinRadius); err != nil {
			return nil, err
		}
		if s.MaxRadius < s.MinRadius {
			return nil, fmt.Errorf("%w: max_radius %v below min_radius %v", ErrInvalidShape, s.MaxRadius, s.MinRadius)
		}
		return primitive.Dome{MinRadius: s.MinRadius, MaxRadius: s.MaxRadius, Position: pos}, nil
	}
	return nil, fmt.Errorf("%w: unhandled kind %s", ErrInvalidShape, kind)
}

func positive(field string, v float32) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidShape, field, v)
	}
	return nil
}

func nonZero(field string, v Vec3) error {
	if v == (Vec3{}) {
		return fmt.Errorf("%w: %s must not be zero", ErrInvalidShape, field)
	}
	return nil
}
