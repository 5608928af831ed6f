package physics

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"collide3d/internal/engine"
	"collide3d/internal/log"
	"collide3d/internal/primitive"

	"github.com/cespare/xxhash/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var (
	ErrUnsupportedBody   = errors.New("physics: shape cannot be a moving body")
	ErrUnsupportedStatic = errors.New("physics: no body kind collides with shape")
)

const (
	DefaultTimeStep = float32(1.0 / 60.0)
	// DefaultCellSize is the edge of one broadphase cell.
	DefaultCellSize = float32(5.0)
	// maxCellsPerBody keeps a huge body from flooding the grid; anything
	// larger goes to the overflow list and is tested against everyone.
	maxCellsPerBody = 512
)

// DefaultGravity is in world units per second squared.
var DefaultGravity = rl.Vector3{X: 0, Y: -147, Z: 0}

// Body is a moving shape in the world.
type Body struct {
	ID         uuid.UUID
	Name       string
	UseGravity bool
	MoveCollData[primitive.Shape]
}

// Static is an immovable shape in the world.
type Static struct {
	ID    uuid.UUID
	Name  string
	Shape primitive.Shape
}

// Contact is a hit found during a step. Exactly one of B and Static is set.
type Contact struct {
	A      *Body
	B      *Body
	Static *Static
	Hit    HitData
}

// Other is the name of whatever A touched.
func (c Contact) Other() string {
	if c.Static != nil {
		return c.Static.Name
	}
	return c.B.Name
}

type contactKey struct {
	a, b uuid.UUID
}

// CellKey for spatial hashing
type CellKey struct {
	X, Y, Z int
}

type bodyPair struct {
	i, j int
}

type PhysicsWorld struct {
	Gravity  rl.Vector3
	Resolver Resolver
	CellSize float32
	Bodies   []*Body
	Statics  []*Static

	OnContactEnter engine.EventWithArg[Contact]
	OnContactStay  engine.EventWithArg[Contact]
	OnContactExit  engine.EventWithArg[Contact]

	grid     map[CellKey][]int
	overflow []int

	// contacts from the last step and the one in flight, in detection order
	activeContacts  map[contactKey]Contact
	activeOrder     []contactKey
	currentContacts map[contactKey]Contact
	currentOrder    []contactKey

	logger  *log.Logger
	pairLog *rate.Limiter
	warned  map[[2]primitive.Kind]bool
	steps   uint64
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		Gravity:         DefaultGravity,
		Resolver:        DefaultResolver(),
		CellSize:        DefaultCellSize,
		grid:            make(map[CellKey][]int),
		activeContacts:  make(map[contactKey]Contact),
		currentContacts: make(map[contactKey]Contact),
		logger:          log.Provide(),
		pairLog:         rate.NewLimiter(rate.Every(time.Second), 1),
		warned:          make(map[[2]primitive.Kind]bool),
	}
}

func (p *PhysicsWorld) SetLogger(l *log.Logger) {
	p.logger = l
}

// AddBody adds a moving sphere, cylinder or capsule anchored where the shape
// is. A mass of zero makes the body immune to impulses.
func (p *PhysicsWorld) AddBody(name string, shape primitive.Shape, mass float32) (*Body, error) {
	if !movable(shape.Kind()) {
		return nil, fmt.Errorf("add body %q (%s): %w", name, shape.Kind(), ErrUnsupportedBody)
	}
	b := &Body{
		ID:           uuid.New(),
		Name:         name,
		UseGravity:   true,
		MoveCollData: NewMoveCollData(shape),
	}
	b.Phys.SetMass(mass)
	p.Bodies = append(p.Bodies, b)
	p.logger.Debug("body added",
		log.String("name", name),
		log.String("shape", shape.Kind().String()),
		log.Float32("mass", mass))
	return b, nil
}

func (p *PhysicsWorld) AddStatic(name string, shape primitive.Shape) (*Static, error) {
	ok := false
	for _, k := range []primitive.Kind{primitive.KindSphere, primitive.KindCylinder, primitive.KindCapsule} {
		ok = ok || StaticSupported(k, shape.Kind())
	}
	if !ok {
		return nil, fmt.Errorf("add static %q (%s): %w", name, shape.Kind(), ErrUnsupportedStatic)
	}
	s := &Static{ID: uuid.New(), Name: name, Shape: shape}
	p.Statics = append(p.Statics, s)
	p.logger.Debug("static added",
		log.String("name", name),
		log.String("shape", shape.Kind().String()))
	return s, nil
}

// RemoveBody removes a body or static by id.
func (p *PhysicsWorld) RemoveBody(id uuid.UUID) bool {
	for i, b := range p.Bodies {
		if b.ID == id {
			p.Bodies = append(p.Bodies[:i], p.Bodies[i+1:]...)
			return true
		}
	}
	for i, s := range p.Statics {
		if s.ID == id {
			p.Statics = append(p.Statics[:i], p.Statics[i+1:]...)
			return true
		}
	}
	return false
}

func (p *PhysicsWorld) Body(id uuid.UUID) (*Body, bool) {
	for _, b := range p.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Steps is the number of completed steps.
func (p *PhysicsWorld) Steps() uint64 {
	return p.steps
}

// Contacts returns the contacts of the last step in detection order.
func (p *PhysicsWorld) Contacts() []Contact {
	ret := make([]Contact, 0, len(p.activeOrder))
	for _, k := range p.activeOrder {
		ret = append(ret, p.activeContacts[k])
	}
	return ret
}

// Step advances the world by dt. Corrections are accumulated against the
// tentative state and committed at the end. Resolution is order sensitive:
// body pairs are visited in sorted index order and statics in insertion
// order, so the same world always steps to the same result.
func (p *PhysicsWorld) Step(dt float32) {
	p.currentContacts = make(map[contactKey]Contact, len(p.activeContacts))
	p.currentOrder = nil

	// 1. Predict
	for _, b := range p.Bodies {
		if b.UseGravity && b.Phys.Mass() > 0 {
			b.Phys.AddAcceleration(p.Gravity)
		}
		b.Phys.Update(dt, true)
	}

	// 2. Broad-phase
	pairs := p.candidatePairs()
	if len(pairs) > 0 && p.pairLog.Allow() {
		p.logger.Debug("broadphase",
			log.Int("bodies", len(p.Bodies)),
			log.Int("pairs", len(pairs)),
			log.Int("overflow", len(p.overflow)))
	}

	// 3. Body vs body
	for _, pair := range pairs {
		a, b := p.Bodies[pair.i], p.Bodies[pair.j]
		if !MoveSupported(a.Collision.Kind(), b.Collision.Kind()) {
			p.warnUnsupported(a.Collision.Kind(), b.Collision.Kind())
			continue
		}
		if data := p.Resolver.CulcFix(dt, a.MoveCollData, b.MoveCollData); data.Hit {
			p.record(contactKey{a.ID, b.ID}, Contact{A: a, B: b, Hit: data})
		}
	}

	// 4. Fold body contacts into the tentative state
	for _, b := range p.Bodies {
		b.Phys.PreFix()
	}

	// 5. Body vs static
	for _, b := range p.Bodies {
		swept, bounded := sweptBounds(b.MoveCollData)
		for _, s := range p.Statics {
			if !StaticSupported(b.Collision.Kind(), s.Shape.Kind()) {
				p.warnUnsupported(b.Collision.Kind(), s.Shape.Kind())
				continue
			}
			if bounded && !overlapsStatic(swept, s.Shape) {
				continue
			}
			if data := p.Resolver.CulcMapFix(dt, b.MoveCollData, s.Shape); data.Hit {
				p.record(contactKey{b.ID, s.ID}, Contact{A: b, Static: s, Hit: data})
				// later statics sweep from the corrected motion
				swept, bounded = sweptBounds(b.MoveCollData)
			}
		}
	}

	// 6. Commit
	for _, b := range p.Bodies {
		b.Phys.Fix()
	}

	// 7. Dispatch contact events
	p.dispatchContacts()
	p.steps++
}

// overlapsStatic is a cheap reject against a static's bounds. Unbounded
// statics always pass.
func overlapsStatic(swept Bounds, s primitive.Shape) bool {
	sb, ok := BoundsOf(s)
	if !ok {
		return true
	}
	return swept.Intersects(sb.Expand(eps))
}

func (p *PhysicsWorld) cellOf(v rl.Vector3) CellKey {
	size := float64(p.CellSize)
	return CellKey{
		X: int(math.Floor(float64(v.X) / size)),
		Y: int(math.Floor(float64(v.Y) / size)),
		Z: int(math.Floor(float64(v.Z) / size)),
	}
}

// rebuildGrid clears and repopulates the spatial hash with each body's
// swept bounds.
func (p *PhysicsWorld) rebuildGrid() []Bounds {
	for k := range p.grid {
		delete(p.grid, k)
	}
	p.overflow = p.overflow[:0]
	if p.CellSize <= 0 {
		p.CellSize = DefaultCellSize
	}

	bounds := make([]Bounds, len(p.Bodies))
	for i, b := range p.Bodies {
		bb, ok := sweptBounds(b.MoveCollData)
		if !ok {
			p.overflow = append(p.overflow, i)
			continue
		}
		bounds[i] = bb
		lo, hi := p.cellOf(bb.Min), p.cellOf(bb.Max)
		cells := (hi.X - lo.X + 1) * (hi.Y - lo.Y + 1) * (hi.Z - lo.Z + 1)
		if cells > maxCellsPerBody || cells <= 0 {
			p.overflow = append(p.overflow, i)
			continue
		}
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				for z := lo.Z; z <= hi.Z; z++ {
					key := CellKey{x, y, z}
					p.grid[key] = append(p.grid[key], i)
				}
			}
		}
	}
	return bounds
}

// candidatePairs returns every pair of bodies whose swept bounds share a
// cell, plus every pair involving an overflow body, sorted by index.
func (p *PhysicsWorld) candidatePairs() []bodyPair {
	bounds := p.rebuildGrid()
	unbounded := make(map[int]bool, len(p.overflow))
	for _, i := range p.overflow {
		unbounded[i] = true
	}

	checked := make(map[bodyPair]bool)
	var pairs []bodyPair
	add := func(i, j int) {
		if i == j {
			return
		}
		if i > j {
			i, j = j, i
		}
		key := bodyPair{i, j}
		if checked[key] {
			return
		}
		checked[key] = true
		if !unbounded[i] && !unbounded[j] && !bounds[i].Intersects(bounds[j]) {
			return
		}
		pairs = append(pairs, key)
	}

	for _, members := range p.grid {
		for x := 0; x < len(members); x++ {
			for y := x + 1; y < len(members); y++ {
				add(members[x], members[y])
			}
		}
	}
	for _, i := range p.overflow {
		for j := range p.Bodies {
			add(i, j)
		}
	}

	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].i != pairs[b].i {
			return pairs[a].i < pairs[b].i
		}
		return pairs[a].j < pairs[b].j
	})
	return pairs
}

// Pairs runs the broadphase on the bodies' current motion and returns the
// candidate pairs in index order.
func (p *PhysicsWorld) Pairs() [][2]*Body {
	pairs := p.candidatePairs()
	ret := make([][2]*Body, len(pairs))
	for k, pair := range pairs {
		ret[k] = [2]*Body{p.Bodies[pair.i], p.Bodies[pair.j]}
	}
	return ret
}

func (p *PhysicsWorld) warnUnsupported(a, b primitive.Kind) {
	key := [2]primitive.Kind{a, b}
	if p.warned[key] {
		return
	}
	p.warned[key] = true
	p.logger.Warn("unsupported shape pair skipped",
		log.String("a", a.String()),
		log.String("b", b.String()))
}

// record marks a contact as active this step. A pair hit more than once
// keeps its first hit.
func (p *PhysicsWorld) record(key contactKey, c Contact) {
	if _, ok := p.currentContacts[key]; ok {
		return
	}
	p.currentContacts[key] = c
	p.currentOrder = append(p.currentOrder, key)
}

// dispatchContacts fires enter and stay for this step's contacts and exit
// for the ones that ended.
func (p *PhysicsWorld) dispatchContacts() {
	for _, key := range p.currentOrder {
		c := p.currentContacts[key]
		if _, ok := p.activeContacts[key]; ok {
			p.OnContactStay.Invoke(c)
			continue
		}
		p.OnContactEnter.Invoke(c)
		if p.logger.Enabled(log.LevelDebug) {
			p.logger.Debug("contact enter",
				log.String("a", c.A.Name),
				log.String("b", c.Other()),
				log.Float32("time", c.Hit.Time),
				log.Vec3("hit_pos", c.Hit.HitPos))
		}
	}

	for _, key := range p.activeOrder {
		if _, ok := p.currentContacts[key]; !ok {
			p.OnContactExit.Invoke(p.activeContacts[key])
		}
	}

	// Swap buffers
	p.activeContacts = p.currentContacts
	p.activeOrder = p.currentOrder
}

// Digest hashes every body's name and confirmed state in insertion order.
// Ids are random so they are left out: two worlds built and stepped the same
// way produce the same digest.
func (p *PhysicsWorld) Digest() uint64 {
	h := xxhash.New()
	var buf []byte
	for _, b := range p.Bodies {
		buf = append(buf[:0], b.Name...)
		buf = append(buf, 0)
		pos, vel := b.Phys.Position(), b.Phys.Velocity()
		for _, f := range []float32{pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z} {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}
