package physics

import (
	"fmt"

	"collide3d/internal/config"
	"collide3d/internal/log"
)

// NewPhysicsWorldFromConfig builds a world holding every body and static the
// config describes, in file order.
func NewPhysicsWorldFromConfig(cfg *config.Config, logger *log.Logger) (*PhysicsWorld, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := NewPhysicsWorld()
	if logger != nil {
		w.SetLogger(logger)
	}
	w.Gravity = cfg.World.Gravity.V()
	w.CellSize = cfg.World.CellSize
	w.Resolver = Resolver{
		Restitution: cfg.World.Restitution,
		Spring:      cfg.World.Spring,
		Reflection:  cfg.World.Reflection,
	}

	for _, spec := range cfg.Bodies {
		shape, err := spec.Shape.Build()
		if err != nil {
			return nil, fmt.Errorf("body %q: %w", spec.Name, err)
		}
		b, err := w.AddBody(spec.Name, shape, spec.MassOrDefault())
		if err != nil {
			return nil, err
		}
		b.UseGravity = spec.GravityOrDefault()
		b.Phys.SetVelocity(spec.Velocity.V())
		b.Phys.SetMaxVelocity(cfg.World.MaxVelocity)
	}
	for _, spec := range cfg.Statics {
		shape, err := spec.Shape.Build()
		if err != nil {
			return nil, fmt.Errorf("static %q: %w", spec.Name, err)
		}
		if _, err := w.AddStatic(spec.Name, shape); err != nil {
			return nil, err
		}
	}

	w.logger.Info("world loaded",
		log.Int("bodies", len(w.Bodies)),
		log.Int("statics", len(w.Statics)),
		log.Float32("cell_size", w.CellSize))
	return w, nil
}
