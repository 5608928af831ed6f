package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// DefaultMaxVelocity caps the committed speed of a body.
const DefaultMaxVelocity = 1000.0

// Physics is the kinematic state of one dynamic body.
//
// position/velocity/acceleration are the confirmed state. prePos/preVel are
// the tentative state for the step in flight: Update predicts them, contacts
// accumulate corrections through AddFix, PreFix folds those in and Fix
// commits.
type Physics struct {
	position     rl.Vector3
	velocity     rl.Vector3
	acceleration rl.Vector3

	prePos rl.Vector3
	preVel rl.Vector3

	mass     float32
	massRate float32

	posFixes  []rl.Vector3
	velFixes  []rl.Vector3
	posSum    float32
	restricts []rl.Vector3

	maxVelocity float32
}

// NewPhysics returns a body at rest at position with unit mass.
func NewPhysics(position rl.Vector3) *Physics {
	return &Physics{
		position:    position,
		prePos:      position,
		mass:        1,
		massRate:    1,
		maxVelocity: DefaultMaxVelocity,
	}
}

// SetPosition teleports the body and stops it. With smooth set the position
// is left alone and the velocity is aimed at p instead, so the body arrives
// there over one unit of time.
func (p *Physics) SetPosition(pos rl.Vector3, smooth bool) {
	if smooth {
		p.velocity = rl.Vector3Subtract(pos, p.position)
		return
	}
	p.velocity = rl.Vector3Zero()
	p.acceleration = rl.Vector3Zero()
	p.position = pos
	p.prePos = pos
	p.preVel = rl.Vector3Zero()
}

func (p *Physics) SetVelocity(v rl.Vector3)     { p.velocity = v }
func (p *Physics) SetAcceleration(a rl.Vector3) { p.acceleration = a }

// SetMass sets the mass. A non-positive mass makes the body ignore forces
// and impulses.
func (p *Physics) SetMass(m float32) {
	if m <= 0 {
		p.mass, p.massRate = 0, 0
		return
	}
	p.mass = m
	p.massRate = 1 / m
}

func (p *Physics) SetMaxVelocity(v float32) { p.maxVelocity = v }

func (p *Physics) AddPosition(d rl.Vector3)     { p.position = rl.Vector3Add(p.position, d) }
func (p *Physics) AddVelocity(v rl.Vector3)     { p.velocity = rl.Vector3Add(p.velocity, v) }
func (p *Physics) AddAcceleration(a rl.Vector3) { p.acceleration = rl.Vector3Add(p.acceleration, a) }

// AddForce accelerates the body by f over its mass.
func (p *Physics) AddForce(f rl.Vector3) {
	p.acceleration = rl.Vector3Add(p.acceleration, rl.Vector3Scale(f, p.massRate))
}

// AddImpulse changes the velocity by i over the mass.
func (p *Physics) AddImpulse(i rl.Vector3) {
	p.velocity = rl.Vector3Add(p.velocity, rl.Vector3Scale(i, p.massRate))
}

// NewPosition is the position dt from now under constant acceleration.
func (p *Physics) NewPosition(dt float32) rl.Vector3 {
	return rl.Vector3Add(p.position, rl.Vector3Add(
		rl.Vector3Scale(p.velocity, dt),
		rl.Vector3Scale(p.acceleration, 0.5*dt*dt)))
}

func (p *Physics) NewVelocity(dt float32) rl.Vector3 {
	return rl.Vector3Add(p.velocity, rl.Vector3Scale(p.acceleration, dt))
}

// Update predicts the tentative state dt ahead. Forces are single-step, so
// callers normally pass resetAccel.
func (p *Physics) Update(dt float32, resetAccel bool) {
	p.prePos = p.NewPosition(dt)
	p.preVel = p.NewVelocity(dt)
	if resetAccel {
		p.acceleration = rl.Vector3Zero()
	}
}

// AddFix records one contact's position and velocity correction.
func (p *Physics) AddFix(posFix, velFix rl.Vector3) {
	p.posSum += rl.Vector3LengthSqr(posFix)
	p.posFixes = append(p.posFixes, posFix)
	p.velFixes = append(p.velFixes, velFix)
}

// AddRestrictVector forbids further motion along -n this step.
func (p *Physics) AddRestrictVector(n rl.Vector3) {
	p.restricts = append(p.restricts, n)
}

// RestrictPower returns the part of impulse that pushes against a recorded
// restriction, negated so that adding it cancels that part.
func (p *Physics) RestrictPower(impulse rl.Vector3) rl.Vector3 {
	var ret rl.Vector3
	for _, n := range p.restricts {
		if d := rl.Vector3DotProduct(n, impulse); d < 0 {
			ret = rl.Vector3Subtract(ret, rl.Vector3Scale(n, d))
		}
	}
	return ret
}

// PreFix folds the accumulated corrections into the tentative state.
// Position fixes are averaged weighted by their squared length; velocity
// fixes are summed. Restrictions recorded so far are cleared, so only those
// added after PreFix reach the next step's body contacts.
func (p *Physics) PreFix() {
	if p.posSum != 0 {
		for _, fix := range p.posFixes {
			w := rl.Vector3LengthSqr(fix) / p.posSum
			p.prePos = rl.Vector3Add(p.prePos, rl.Vector3Scale(fix, w))
		}
	}
	for _, fix := range p.velFixes {
		p.preVel = rl.Vector3Add(p.preVel, fix)
	}
	p.restricts = p.restricts[:0]
}

// Fix commits the tentative state and clears the accumulated fixes.
// Velocity is clamped by magnitude to the max velocity, keeping its
// direction. Restrictions survive the commit for the next step's CulcFix.
func (p *Physics) Fix() {
	p.position = p.prePos
	p.velocity = rl.Vector3ClampValue(p.preVel, 0, p.maxVelocity)
	p.preVel = p.velocity
	p.ResetFix()
}

func (p *Physics) ResetFix() {
	p.posFixes = p.posFixes[:0]
	p.velFixes = p.velFixes[:0]
	p.posSum = 0
}

func (p *Physics) SetPrePos(v rl.Vector3) { p.prePos = v }
func (p *Physics) SetPreVel(v rl.Vector3) { p.preVel = v }

func (p *Physics) Position() rl.Vector3     { return p.position }
func (p *Physics) Velocity() rl.Vector3     { return p.velocity }
func (p *Physics) Acceleration() rl.Vector3 { return p.acceleration }
func (p *Physics) PrePos() rl.Vector3       { return p.prePos }
func (p *Physics) PreVel() rl.Vector3       { return p.preVel }
func (p *Physics) Mass() float32            { return p.mass }
func (p *Physics) MassRate() float32        { return p.massRate }

// Displacement is the predicted motion over the step in flight.
func (p *Physics) Displacement() rl.Vector3 {
	return rl.Vector3Subtract(p.prePos, p.position)
}

// Fixes returns the number of corrections accumulated since the last commit.
func (p *Physics) Fixes() int { return len(p.posFixes) }

// staticPhysics is a body that sits at pos for the whole step.
func staticPhysics(pos rl.Vector3) *Physics {
	return NewPhysics(pos)
}
