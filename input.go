package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/brawler/ecs/component"
)

const stickDeadzone = 0.2

// keyboardController samples the keyboard and the first standard gamepad.
type keyboardController struct{}

func (keyboardController) Input(state *component.PlayerMovement) component.Input {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)

	in := component.Input{
		Jump:        ebiten.IsKeyPressed(ebiten.KeySpace),
		JumpPressed: inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Run:         ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
		DashPressed: inpututil.IsKeyJustPressed(ebiten.KeyJ),
	}
	if left {
		in.MoveX -= 1
	}
	if right {
		in.MoveX += 1
	}
	if down {
		in.MoveY -= 1
	}
	if up {
		in.MoveY += 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(lx) > stickDeadzone {
			in.MoveX = lx
		}
		// gamepad Y axis grows downward
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(ly) > stickDeadzone {
			in.MoveY = -ly
		}

		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Run = in.Run || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
		in.DashPressed = in.DashPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
	}

	if state != nil && state.IsMovementLocked {
		in.DashPressed = false
	}
	in.Crouch = in.MoveY < -0.5
	return in
}

// knockbackPressed reports the sparring key that shoves the dummy.
func knockbackPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		return true
	}
	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		return inpututil.IsStandardGamepadButtonJustPressed(gamepads[0], ebiten.StandardGamepadButtonRightLeft)
	}
	return false
}
