// Package player implements the character movement controller: asymmetric
// jump gravity, impulse travel, the corner push for stacked characters, the
// knockback tween, and the gravity, speed, and kinematic toggles.
package player

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/physics"
)

// Deps are the collaborators a Movement is wired to at construction.
type Deps struct {
	Body        Rigidbody
	Transform   *component.Transform
	Stats       StatsSource
	Sounds      SoundPlayer
	Environment Environment
	State       *component.PlayerMovement
	Tuning      *Tuning
}

// Movement drives one character's rigid body.
type Movement struct {
	body      Rigidbody
	transform *component.Transform
	stats     StatsSource
	sounds    SoundPlayer
	env       Environment
	state     *component.PlayerMovement
	tuning    Tuning

	controller Controller

	knockback  *knockbackTween
	onComplete func()
}

var MovementComponent = component.NewComponent[Movement]()

// NewMovement wires a controller to its collaborators. State and Tuning are
// optional; every other dependency is required.
func NewMovement(deps Deps) (*Movement, error) {
	missing := ""
	switch {
	case deps.Body == nil:
		missing = "rigidbody"
	case deps.Transform == nil:
		missing = "transform"
	case deps.Stats == nil:
		missing = "stats"
	case deps.Sounds == nil:
		missing = "sounds"
	case deps.Environment == nil:
		missing = "environment"
	}
	if missing != "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingCollaborator, missing)
	}

	state := deps.State
	if state == nil {
		state = component.NewPlayerMovement()
	}
	tuning := DefaultTuning()
	if deps.Tuning != nil {
		tuning = *deps.Tuning
	}

	return &Movement{
		body:      deps.Body,
		transform: deps.Transform,
		stats:     deps.Stats,
		sounds:    deps.Sounds,
		env:       deps.Environment,
		state:     state,
		tuning:    tuning,
	}, nil
}

// BindController attaches the input brain. Owners may assign it after the
// character is built.
func (m *Movement) BindController(c Controller) {
	m.controller = c
}

func (m *Movement) Controller() Controller {
	return m.controller
}

// Start reads the initial speed from the stats source.
func (m *Movement) Start() {
	m.state.MovementSpeed = m.stats.WalkSpeed()
}

func (m *Movement) State() *component.PlayerMovement {
	return m.state
}

func (m *Movement) Body() Rigidbody {
	return m.body
}

func (m *Movement) Tuning() Tuning {
	return m.tuning
}

// SetTuning replaces the constants, e.g. after a prefab reload.
func (m *Movement) SetTuning(t Tuning) {
	m.tuning = t
}

// ResetPlayerMovement restores the jump chain and gravity after a respawn.
func (m *Movement) ResetPlayerMovement() {
	m.state.IsGrounded = true
	m.state.CanDoubleJump = true
	m.ResetGravity()
}

// FixedUpdate shapes the jump arc: extra gravity while falling makes the
// descent snappier, a smaller extra while rising shortens the arc.
func (m *Movement) FixedUpdate(dt float64) {
	v := m.body.Velocity()
	g := m.env.Gravity()
	switch {
	case v.Y < 0:
		v.Y += (m.tuning.FallMultiplier - 1) * g.Y * dt
	case v.Y > 0:
		v.Y += (m.tuning.LowJumpMultiplier - 1) * g.Y * dt
	default:
		return
	}
	m.body.SetVelocity(v)
}

// TravelDistance replaces the current velocity with a scaled impulse.
func (m *Movement) TravelDistance(distance cp.Vector) {
	m.body.SetVelocity(cp.Vector{})
	m.body.ApplyImpulse(distance.Mult(m.tuning.ImpulseScale))
}

// GroundedPoint responds to landing on another character. When falling in a
// corner the character is pushed off, away from the way it faces.
func (m *Movement) GroundedPoint(other *component.Transform, point float64) {
	if m.body.Velocity().Y >= 0 || !m.state.IsInCorner {
		return
	}
	facing := m.transform.Facing()
	if facing == 0 {
		return
	}
	m.state.OnTopOfPlayer = true
	m.body.SetVelocity(cp.Vector{})
	m.body.ApplyImpulse(cp.Vector{X: -facing * m.tuning.CornerPushX, Y: m.tuning.CornerPushY})
}

func (m *Movement) GroundedPointExit() {
	m.state.OnTopOfPlayer = false
}

func (m *Movement) OnGrounded() {
	m.state.TouchingGround = true
}

func (m *Movement) OnAir() {
	m.state.TouchingGround = false
}

func (m *Movement) ResetGravity() {
	m.body.SetGravityScale(m.tuning.GravityScale)
}

func (m *Movement) ZeroGravity() {
	m.body.SetGravityScale(m.tuning.ZeroGravityScale)
}

// ResetToWalkSpeed drops a running character back to walking. It is a no-op
// at any other speed.
func (m *Movement) ResetToWalkSpeed() {
	if m.state.MovementSpeed != m.stats.RunSpeed() {
		return
	}
	m.sounds.StopSound(runSound)
	m.state.MovementSpeed = m.stats.WalkSpeed()
}

// SetRunning raises the speed to the run speed and starts the run sound.
func (m *Movement) SetRunning() {
	if m.state.MovementSpeed == m.stats.RunSpeed() {
		return
	}
	m.sounds.PlaySound(runSound)
	m.state.MovementSpeed = m.stats.RunSpeed()
}

// SetRigidbodyKinematic freezes the body completely, or releases it to the
// default free state with rotation frozen. Earlier constraints are not
// restored.
func (m *Movement) SetRigidbodyKinematic(kinematic bool) {
	if kinematic {
		m.body.SetConstraints(physics.FreezeAll)
	} else {
		m.body.SetConstraints(physics.FreezeRotation)
	}
	m.body.SetKinematic(kinematic)
}
