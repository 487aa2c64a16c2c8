package player

import (
	"errors"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/physics"
)

var ErrMissingCollaborator = errors.New("player: missing collaborator")

// Rigidbody is the physics surface the controller drives. *physics.Body
// implements it.
type Rigidbody interface {
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	ApplyImpulse(impulse cp.Vector)
	Position() cp.Vector
	MovePosition(p cp.Vector)
	GravityScale() float64
	SetGravityScale(scale float64)
	Constraints() physics.Constraints
	SetConstraints(c physics.Constraints)
	Kinematic() bool
	SetKinematic(kinematic bool)
}

// StatsSource supplies the two configured speeds.
type StatsSource interface {
	WalkSpeed() float64
	RunSpeed() float64
}

// SoundPlayer plays and stops sounds by name.
type SoundPlayer interface {
	PlaySound(name string)
	StopSound(name string)
}

// Environment exposes simulation-wide values.
type Environment interface {
	Gravity() cp.Vector
}

// Controller is the input brain bound to a character after construction.
// It samples input once per tick and may read the movement flags back.
type Controller interface {
	Input(state *component.PlayerMovement) component.Input
}

const runSound = "Run"
