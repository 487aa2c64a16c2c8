package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/player"
)

const (
	moveDeadzone   = 0.2
	crouchDeadzone = -0.5
)

// LocomotionSystem turns controller input into regular movement: walking and
// running, jumps, the double jump, crouching, and the air dash.
type LocomotionSystem struct{}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{}
}

func (l *LocomotionSystem) Update(w *ecs.World) {
	if l == nil || w == nil {
		return
	}

	for _, e := range w.Query(player.MovementComponent.ID(), component.PlayerStatsComponent.ID()) {
		m, _ := ecs.Get(w, e, player.MovementComponent)
		stats, _ := ecs.Get(w, e, component.PlayerStatsComponent)
		ctrl := m.Controller()
		if ctrl == nil {
			continue
		}

		state := m.State()
		input := ctrl.Input(state)
		if in, ok := ecs.Get(w, e, component.InputComponent); ok {
			*in = input
		}

		l.landed(state, m.Body().Velocity().Y)

		state.MovementInput = cp.Vector{X: input.MoveX, Y: input.MoveY}
		if state.FullyLockMovement || m.Body().Kinematic() {
			state.IsMoving = false
			continue
		}

		state.IsCrouching = state.TouchingGround && (input.Crouch || input.MoveY < crouchDeadzone)
		moving := math.Abs(input.MoveX) > moveDeadzone && !state.IsCrouching
		state.IsMoving = moving

		if input.Run && moving && state.TouchingGround {
			m.SetRunning()
		} else if !input.Run || !moving {
			m.ResetToWalkSpeed()
		}

		if moving {
			if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
				t.ScaleX = math.Abs(t.ScaleX) * common.Sign(input.MoveX)
				if t.ScaleX == 0 {
					t.ScaleX = common.Sign(input.MoveX)
				}
			}
		}

		if state.IsMovementLocked {
			continue
		}

		body := m.Body()
		vel := body.Velocity()
		if !m.KnockbackActive() && !state.OnTopOfPlayer {
			vel.X = 0
			if moving {
				vel.X = input.MoveX * state.MovementSpeed
			}
		}

		if input.JumpPressed {
			switch {
			case state.TouchingGround && !state.HasJumped:
				vel.Y = stats.Jump
				state.HasJumped = true
				state.IsGrounded = false
			case !state.TouchingGround && state.CanDoubleJump && !state.HasDoubleJumped:
				vel.Y = stats.Jump
				state.HasDoubleJumped = true
				state.CanDoubleJump = false
			}
		}
		body.SetVelocity(vel)

		state.IsDashing = false
		if input.DashPressed && !state.TouchingGround && !state.HasAirDashed {
			dir := common.Sign(input.MoveX)
			if dir == 0 {
				if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
					dir = t.Facing()
				}
			}
			if dir != 0 {
				m.TravelDistance(cp.Vector{X: dir * stats.DashDistance})
				state.HasAirDashed = true
				state.IsDashing = true
			}
		}
	}
}

// landed restores the jump chain once the character is back on the ground.
func (l *LocomotionSystem) landed(state *component.PlayerMovement, vy float64) {
	if !state.TouchingGround || state.IsGrounded || vy > 0 {
		return
	}
	state.IsGrounded = true
	state.HasJumped = false
	state.HasDoubleJumped = false
	state.HasAirDashed = false
	state.CanDoubleJump = true
}
