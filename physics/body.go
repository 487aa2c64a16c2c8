// Package physics adapts Chipmunk2D bodies to the rigid-body surface the
// movement controller drives: per-body gravity scale, axis constraints, and a
// kinematic toggle, none of which Chipmunk offers directly.
package physics

import "github.com/jakecoffman/cp"

// Constraints freezes motion along individual axes.
type Constraints uint8

const (
	FreezePositionX Constraints = 1 << iota
	FreezePositionY
	FreezeRotation

	ConstraintsNone Constraints = 0
	FreezePosition              = FreezePositionX | FreezePositionY
	FreezeAll                   = FreezePosition | FreezeRotation
)

func (c Constraints) Has(flag Constraints) bool {
	return c&flag == flag
}

// Body is a dynamic Chipmunk body with gravity scale, constraints, and a
// kinematic flag layered on top.
type Body struct {
	body *cp.Body

	mass   float64
	moment float64

	gravityScale float64
	constraints  Constraints
	kinematic    bool
}

// NewBody creates a dynamic box body centred on pos. Rotation starts frozen.
func NewBody(mass, width, height float64, pos cp.Vector) *Body {
	if mass <= 0 {
		mass = 1
	}
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	moment := cp.MomentForBox(mass, width, height)

	b := &Body{
		body:         cp.NewBody(mass, moment),
		mass:         mass,
		moment:       moment,
		gravityScale: 1,
	}
	b.body.SetPosition(pos)
	b.body.UserData = b
	b.body.SetVelocityUpdateFunc(b.updateVelocity)
	b.body.SetPositionUpdateFunc(b.updatePosition)
	b.SetConstraints(FreezeRotation)
	return b
}

// CP returns the underlying Chipmunk body.
func (b *Body) CP() *cp.Body {
	if b == nil {
		return nil
	}
	return b.body
}

func (b *Body) Mass() float64 {
	return b.mass
}

func (b *Body) Velocity() cp.Vector {
	return b.body.Velocity()
}

func (b *Body) SetVelocity(v cp.Vector) {
	b.body.SetVelocityVector(b.constrain(v))
}

// ApplyImpulse applies an instantaneous impulse at the centre of gravity.
func (b *Body) ApplyImpulse(impulse cp.Vector) {
	if b.kinematic {
		return
	}
	b.body.ApplyImpulseAtWorldPoint(impulse, b.body.Position())
	b.body.SetVelocityVector(b.constrain(b.body.Velocity()))
}

func (b *Body) Position() cp.Vector {
	return b.body.Position()
}

// MovePosition writes the body position directly, bypassing the solver.
func (b *Body) MovePosition(p cp.Vector) {
	b.body.SetPosition(p)
}

func (b *Body) GravityScale() float64 {
	return b.gravityScale
}

func (b *Body) SetGravityScale(scale float64) {
	b.gravityScale = scale
}

func (b *Body) Constraints() Constraints {
	return b.constraints
}

// SetConstraints replaces the constraint set.
func (b *Body) SetConstraints(c Constraints) {
	b.constraints = c
	if !b.kinematic {
		if c.Has(FreezeRotation) {
			b.body.SetMoment(cp.INFINITY)
		} else {
			b.body.SetMoment(b.moment)
		}
	}
	if c.Has(FreezeRotation) {
		b.body.SetAngularVelocity(0)
	}
	b.body.SetVelocityVector(b.constrain(b.body.Velocity()))
}

func (b *Body) Kinematic() bool {
	return b.kinematic
}

// SetKinematic switches the Chipmunk body type. Must not be called while the
// space is stepping.
func (b *Body) SetKinematic(kinematic bool) {
	if b.kinematic == kinematic {
		return
	}
	b.kinematic = kinematic
	if kinematic {
		b.body.SetType(cp.BODY_KINEMATIC)
		return
	}
	b.body.SetType(cp.BODY_DYNAMIC)
	// dynamic bodies re-accumulate mass from their shapes, which carry none
	b.body.SetMass(b.mass)
	b.SetConstraints(b.constraints)
}

func (b *Body) constrain(v cp.Vector) cp.Vector {
	if b.constraints.Has(FreezePositionX) {
		v.X = 0
	}
	if b.constraints.Has(FreezePositionY) {
		v.Y = 0
	}
	return v
}

func (b *Body) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), damping, dt)
	if b.kinematic {
		return
	}
	body.SetVelocityVector(b.constrain(body.Velocity()))
	if b.constraints.Has(FreezeRotation) {
		body.SetAngularVelocity(0)
	}
}

func (b *Body) updatePosition(body *cp.Body, dt float64) {
	before := body.Position()
	angle := body.Angle()
	cp.BodyUpdatePosition(body, dt)

	after := body.Position()
	if b.constraints.Has(FreezePositionX) {
		after.X = before.X
	}
	if b.constraints.Has(FreezePositionY) {
		after.Y = before.Y
	}
	if after != body.Position() {
		body.SetPosition(after)
	}
	if b.constraints.Has(FreezeRotation) && body.Angle() != angle {
		body.SetAngle(angle)
	}
}
