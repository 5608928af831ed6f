// Package config loads world descriptions from YAML, TOML or JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFormat = errors.New("config: unknown file format")
	ErrUnknownKeys   = errors.New("config: unknown keys")
	ErrInvalidWorld  = errors.New("config: invalid world")
	ErrInvalidShape  = errors.New("config: invalid shape")
)

// Vec3 is written as a three element list.
type Vec3 [3]float32

func (v Vec3) V() rl.Vector3 { return rl.Vector3{X: v[0], Y: v[1], Z: v[2]} }

type Config struct {
	World   WorldConfig  `json:"world" yaml:"world" toml:"world"`
	Log     LogConfig    `json:"log" yaml:"log" toml:"log"`
	Bodies  []BodySpec   `json:"bodies" yaml:"bodies" toml:"bodies"`
	Statics []StaticSpec `json:"statics" yaml:"statics" toml:"statics"`
}

type WorldConfig struct {
	TimeStep float32 `json:"time_step" yaml:"time_step" toml:"time_step"`
	Gravity  Vec3    `json:"gravity" yaml:"gravity" toml:"gravity"`
	CellSize float32 `json:"cell_size" yaml:"cell_size" toml:"cell_size"`
	// Steps is how many steps a headless run performs.
	Steps       int     `json:"steps" yaml:"steps" toml:"steps"`
	MaxVelocity float32 `json:"max_velocity" yaml:"max_velocity" toml:"max_velocity"`
	Restitution float32 `json:"restitution" yaml:"restitution" toml:"restitution"`
	Spring      float32 `json:"spring" yaml:"spring" toml:"spring"`
	Reflection  float32 `json:"reflection" yaml:"reflection" toml:"reflection"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level" toml:"level"`
}

type BodySpec struct {
	Name  string    `json:"name" yaml:"name" toml:"name"`
	Shape ShapeSpec `json:"shape" yaml:"shape" toml:"shape"`
	// Mass defaults to 1. Zero or less makes the body immune to impulses.
	Mass       *float32 `json:"mass,omitempty" yaml:"mass,omitempty" toml:"mass,omitempty"`
	Velocity   Vec3     `json:"velocity" yaml:"velocity" toml:"velocity"`
	UseGravity *bool    `json:"use_gravity,omitempty" yaml:"use_gravity,omitempty" toml:"use_gravity,omitempty"`
}

func (b BodySpec) MassOrDefault() float32 {
	if b.Mass == nil {
		return 1
	}
	return *b.Mass
}

func (b BodySpec) GravityOrDefault() bool {
	return b.UseGravity == nil || *b.UseGravity
}

type StaticSpec struct {
	Name  string    `json:"name" yaml:"name" toml:"name"`
	Shape ShapeSpec `json:"shape" yaml:"shape" toml:"shape"`
}

// Default returns the settings used for anything a file leaves out.
func Default() Config {
	return Config{
		World: WorldConfig{
			TimeStep:    1.0 / 60.0,
			Gravity:     Vec3{0, -147, 0},
			CellSize:    5,
			Steps:       600,
			MaxVelocity: 1000,
			Restitution: 0.1,
			Spring:      100,
			Reflection:  2,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path, picking the decoder from its extension, and validates
// the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c *Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		c, err = LoadYAML(f)
	case ".toml":
		c, err = LoadTOML(f)
	case ".json":
		c, err = LoadJSON(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// LoadYAML loads config from YAML reader. Unknown keys are an error.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &c, nil
}

// LoadTOML loads config from TOML reader. Unknown keys are an error.
func LoadTOML(r io.Reader) (*Config, error) {
	c := Default()
	meta, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}
	return &c, nil
}

// LoadJSON loads config from JSON reader. Unknown keys are an error.
func LoadJSON(r io.Reader) (*Config, error) {
	c := Default()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the world settings and that every shape builds.
func (c *Config) Validate() error {
	w := c.World
	switch {
	case w.TimeStep <= 0:
		return fmt.Errorf("%w: time_step must be positive, got %v", ErrInvalidWorld, w.TimeStep)
	case w.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive, got %v", ErrInvalidWorld, w.CellSize)
	case w.Steps < 0:
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidWorld, w.Steps)
	case w.MaxVelocity <= 0:
		return fmt.Errorf("%w: max_velocity must be positive, got %v", ErrInvalidWorld, w.MaxVelocity)
	case w.Reflection < 0 || w.Reflection > 2:
		return fmt.Errorf("%w: reflection must be in [0, 2], got %v", ErrInvalidWorld, w.Reflection)
	}

	seen := make(map[string]bool)
	check := func(what, name string, s ShapeSpec) error {
		if name == "" {
			return fmt.Errorf("%w: %s without a name", ErrInvalidWorld, what)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidWorld, name)
		}
		seen[name] = true
		if _, err := s.Build(); err != nil {
			return fmt.Errorf("%s %q: %w", what, name, err)
		}
		return nil
	}
	for _, b := range c.Bodies {
		if err := check("body", b.Name, b.Shape); err != nil {
			return err
		}
	}
	for _, s := range c.Statics {
		if err := check("static", s.Name, s.Shape); err != nil {
			return err
		}
	}
	return nil
}
