package system

import (
	"testing"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/ecs/entity"
	"github.com/milk9111/brawler/player"
	"github.com/milk9111/brawler/prefabs"
	"github.com/stretchr/testify/require"
)

const testDT = 1.0 / 60

func testSpec(script string) *prefabs.PlayerSpec {
	return &prefabs.PlayerSpec{
		Name:         "test",
		WalkSpeed:    4,
		RunSpeed:     7,
		JumpSpeed:    10,
		DashDistance: 2,
		Body:         prefabs.BodySpec{Width: 1, Height: 2, Mass: 1, Friction: 0.5},
		Movement:     player.DefaultTuning(),
		Audio:        []prefabs.AudioSpec{{Name: "Run", File: "sfx/run.wav", Volume: 1}},
		Script:       script,
	}
}

type fixedController struct{ in *component.Input }

func (c fixedController) Input(*component.PlayerMovement) component.Input { return *c.in }

type harness struct {
	w       *ecs.World
	physics *PhysicsSystem
	e       ecs.Entity
	m       *player.Movement
}

func newHarness(t *testing.T, x, y float64, ctrl player.Controller, script string) harness {
	t.Helper()
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(DefaultGravity, testDT)

	_, err := entity.NewArena(w, &prefabs.ArenaSpec{Width: 10, Height: 6, WallThickness: 1, Friction: 0.8})
	require.NoError(t, err)

	e, err := entity.NewPlayerFromSpec(w, testSpec(script), entity.PlayerOptions{
		X:           x,
		Y:           y,
		Environment: ps,
		Controller:  ctrl,
	})
	require.NoError(t, err)

	m, ok := ecs.Get(w, e, player.MovementComponent)
	require.True(t, ok)
	return harness{w: w, physics: ps, e: e, m: m}
}
