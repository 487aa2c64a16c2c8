package component

import "github.com/jakecoffman/cp"

// PlayerMovement is the flag set a movement controller owns and other
// systems (controllers, animators, combat) read and write.
type PlayerMovement struct {
	MovementSpeed float64
	MovementInput cp.Vector

	IsGrounded        bool
	IsMovementLocked  bool
	FullyLockMovement bool
	IsCrouching       bool
	IsMoving          bool
	IsDashing         bool

	HasJumped       bool
	HasDoubleJumped bool
	HasAirDashed    bool
	CanDoubleJump   bool

	IsInCorner    bool
	OnTopOfPlayer bool

	// TouchingGround is the physics-reported ground contact, maintained by
	// the grounded/airborne notifications. IsGrounded belongs to the jump
	// chain and is reset explicitly.
	TouchingGround bool
}

// NewPlayerMovement returns the flag set in its spawn state.
func NewPlayerMovement() *PlayerMovement {
	return &PlayerMovement{
		IsGrounded:    true,
		CanDoubleJump: true,
	}
}

var PlayerMovementComponent = NewComponent[PlayerMovement]()
