package entity

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/player"
	"github.com/milk9111/brawler/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flatWorld struct{}

func (flatWorld) Gravity() cp.Vector { return cp.Vector{Y: -9.81} }

func TestNewPlayerFromEmbeddedSpec(t *testing.T) {
	w := ecs.NewWorld()
	var loaded []string
	e, err := NewPlayer(w, "player.yaml", PlayerOptions{
		X:           3,
		Y:           2,
		FacingLeft:  true,
		Environment: flatWorld{},
		LoadSound: func(file string) (component.Sound, error) {
			loaded = append(loaded, file)
			return nil, nil
		},
	})
	require.NoError(t, err)

	for _, has := range []bool{
		ecs.Has(w, e, component.TransformComponent),
		ecs.Has(w, e, component.PhysicsBodyComponent),
		ecs.Has(w, e, component.PlayerStatsComponent),
		ecs.Has(w, e, component.AudioComponent),
		ecs.Has(w, e, component.PlayerMovementComponent),
		ecs.Has(w, e, component.InputComponent),
		ecs.Has(w, e, player.MovementComponent),
	} {
		assert.True(t, has)
	}
	assert.False(t, ecs.Has(w, e, component.MovementScriptComponent))
	assert.Equal(t, []string{"sfx/run.wav"}, loaded)

	m, _ := ecs.Get(w, e, player.MovementComponent)
	tr, _ := ecs.Get(w, e, component.TransformComponent)
	state, _ := ecs.Get(w, e, component.PlayerMovementComponent)
	assert.Same(t, state, m.State(), "the component and the controller share one flag set")
	assert.Equal(t, -1.0, tr.Facing())
	assert.Equal(t, 4.0, m.State().MovementSpeed)
	assert.Equal(t, 2.0, m.Body().GravityScale())
	assert.Equal(t, cp.Vector{X: 3, Y: 2}, m.Body().Position())
}

func TestNewPlayerErrors(t *testing.T) {
	w := ecs.NewWorld()

	_, err := NewPlayerFromSpec(w, nil, PlayerOptions{Environment: flatWorld{}})
	assert.True(t, errors.Is(err, prefabs.ErrInvalidSpec))

	spec, err := prefabs.LoadPlayerSpec("dummy.yaml")
	require.NoError(t, err)
	_, err = NewPlayerFromSpec(w, spec, PlayerOptions{})
	assert.True(t, errors.Is(err, player.ErrMissingCollaborator))
	assert.Equal(t, 0, w.EntityCount(), "nothing is left behind")

	spec, err = prefabs.LoadPlayerSpec("player.yaml")
	require.NoError(t, err)
	_, err = NewPlayerFromSpec(w, spec, PlayerOptions{
		Environment: flatWorld{},
		LoadSound: func(string) (component.Sound, error) {
			return nil, errors.New("no audio device")
		},
	})
	assert.ErrorContains(t, err, "no audio device")
}

func TestDummyCarriesScript(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayer(w, "dummy.yaml", PlayerOptions{Environment: flatWorld{}})
	require.NoError(t, err)

	sc, ok := ecs.Get(w, e, component.MovementScriptComponent)
	require.True(t, ok)
	assert.Equal(t, "dummy.tengo", sc.Path)
}

func TestApplyPlayerSpecKeepsRunState(t *testing.T) {
	w := ecs.NewWorld()
	spec, err := prefabs.LoadPlayerSpec("player.yaml")
	require.NoError(t, err)
	e, err := NewPlayerFromSpec(w, spec, PlayerOptions{Environment: flatWorld{}})
	require.NoError(t, err)
	m, _ := ecs.Get(w, e, player.MovementComponent)

	m.SetRunning()
	reloaded := *spec
	reloaded.RunSpeed = 9
	reloaded.WalkSpeed = 5
	reloaded.Movement.GravityScale = 1.5
	require.NoError(t, ApplyPlayerSpec(w, e, &reloaded))

	assert.Equal(t, 9.0, m.State().MovementSpeed)
	assert.Equal(t, 1.5, m.Body().GravityScale())
	assert.Equal(t, 1.5, m.Tuning().GravityScale)

	m.ResetToWalkSpeed()
	assert.Equal(t, 5.0, m.State().MovementSpeed)

	assert.Error(t, ApplyPlayerSpec(w, e, nil))
	assert.Error(t, ApplyPlayerSpec(w, w.CreateEntity(), &reloaded))
}

func TestNewArenaLayout(t *testing.T) {
	w := ecs.NewWorld()
	ents, err := NewArena(w, &prefabs.ArenaSpec{Width: 20, Height: 10, WallThickness: 2, Friction: 0.7})
	require.NoError(t, err)
	require.Len(t, ents, 3)

	roles := map[component.BodyRole]int{}
	for _, e := range ents {
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		require.True(t, ok)
		assert.True(t, pb.Static)
		assert.Equal(t, 0.7, pb.Friction)
		roles[pb.Role]++
	}
	assert.Equal(t, 1, roles[component.BodyRoleGround])
	assert.Equal(t, 2, roles[component.BodyRoleWall])

	floor, _ := ecs.Get(w, ents[0], component.TransformComponent)
	assert.Equal(t, -1.0, floor.Y, "floor top edge at y=0")

	_, err = NewArena(w, nil)
	assert.Error(t, err)
}

func TestApplyPlayerSpecKeepsScriptedGravity(t *testing.T) {
	tests := []struct {
		name string
		zero bool
		want float64
	}{
		{"default_scale_follows_reload", false, 1.5},
		{"zero_gravity_survives_reload", true, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			spec, err := prefabs.LoadPlayerSpec("player.yaml")
			require.NoError(t, err)
			e, err := NewPlayerFromSpec(w, spec, PlayerOptions{Environment: flatWorld{}})
			require.NoError(t, err)
			m, _ := ecs.Get(w, e, player.MovementComponent)
			if tc.zero {
				m.ZeroGravity()
			}

			reloaded := *spec
			reloaded.Movement.GravityScale = 1.5
			require.NoError(t, ApplyPlayerSpec(w, e, &reloaded))

			assert.Equal(t, tc.want, m.Body().GravityScale())
			assert.Equal(t, 1.5, m.Tuning().GravityScale)

			m.ResetGravity()
			assert.Equal(t, 1.5, m.Body().GravityScale())
		})
	}
}
