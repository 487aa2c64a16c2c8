package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/physics"
	"github.com/milk9111/brawler/player"
	"github.com/milk9111/brawler/prefabs"
)

// PlayerOptions carries what a character needs beyond its prefab spec.
type PlayerOptions struct {
	X, Y        float64
	FacingLeft  bool
	Environment player.Environment
	Controller  player.Controller
	LoadSound   SoundLoader
}

// NewPlayer builds a character from a player spec file and starts its
// movement controller.
func NewPlayer(w *ecs.World, specFile string, opts PlayerOptions) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec(specFile)
	if err != nil {
		return 0, err
	}
	return NewPlayerFromSpec(w, spec, opts)
}

func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec, opts PlayerOptions) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: %w: nil spec", prefabs.ErrInvalidSpec)
	}

	scaleX := 1.0
	if opts.FacingLeft {
		scaleX = -1
	}
	transform := &component.Transform{X: opts.X, Y: opts.Y, ScaleX: scaleX, ScaleY: 1}
	body := physics.NewBody(spec.Body.Mass, spec.Body.Width, spec.Body.Height, cp.Vector{X: opts.X, Y: opts.Y})
	stats := &component.PlayerStats{
		Walk:         spec.WalkSpeed,
		Run:          spec.RunSpeed,
		Jump:         spec.JumpSpeed,
		DashDistance: spec.DashDistance,
	}

	audioComp, err := buildAudioComponent(spec.Audio, opts.LoadSound)
	if err != nil {
		return 0, fmt.Errorf("player %q: %w", spec.Name, err)
	}

	state := component.NewPlayerMovement()
	tuning := spec.Movement
	movement, err := player.NewMovement(player.Deps{
		Body:        body,
		Transform:   transform,
		Stats:       stats,
		Sounds:      audioComp,
		Environment: opts.Environment,
		State:       state,
		Tuning:      &tuning,
	})
	if err != nil {
		return 0, fmt.Errorf("player %q: %w", spec.Name, err)
	}

	e := w.CreateEntity()
	add := func(err error) error {
		if err != nil {
			w.DestroyEntity(e)
			return fmt.Errorf("player %q: %w", spec.Name, err)
		}
		return nil
	}

	if err := add(ecs.Add(w, e, component.TransformComponent, transform)); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Body:     body,
		Width:    spec.Body.Width,
		Height:   spec.Body.Height,
		Mass:     spec.Body.Mass,
		Friction: spec.Body.Friction,
		Role:     component.BodyRoleCharacter,
	})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.PlayerStatsComponent, stats)); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.AudioComponent, audioComp)); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.PlayerMovementComponent, state)); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.InputComponent, &component.Input{})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, player.MovementComponent, movement)); err != nil {
		return 0, err
	}
	if spec.Script != "" {
		if err := add(ecs.Add(w, e, component.MovementScriptComponent, &component.MovementScript{Path: spec.Script})); err != nil {
			return 0, err
		}
	}

	if opts.Controller != nil {
		movement.BindController(opts.Controller)
	}
	movement.Start()
	movement.ResetPlayerMovement()

	return e, nil
}

// ApplyPlayerSpec pushes reloaded spec values into an existing character.
func ApplyPlayerSpec(w *ecs.World, e ecs.Entity, spec *prefabs.PlayerSpec) error {
	if spec == nil {
		return fmt.Errorf("player: %w: nil spec", prefabs.ErrInvalidSpec)
	}
	stats, ok := ecs.Get(w, e, component.PlayerStatsComponent)
	if !ok {
		return fmt.Errorf("player %s: %w: no stats", e, component.ErrNilComponent)
	}
	m, ok := ecs.Get(w, e, player.MovementComponent)
	if !ok {
		return fmt.Errorf("player %s: %w: no movement", e, component.ErrNilComponent)
	}

	wasRunning := m.State().MovementSpeed == stats.Run
	stats.Walk = spec.WalkSpeed
	stats.Run = spec.RunSpeed
	stats.Jump = spec.JumpSpeed
	stats.DashDistance = spec.DashDistance
	if wasRunning {
		m.State().MovementSpeed = stats.Run
	} else {
		m.State().MovementSpeed = stats.Walk
	}

	// a scale set elsewhere, such as ZeroGravity, survives the reload
	restoreGravity := m.Body().GravityScale() == m.Tuning().GravityScale
	m.SetTuning(spec.Movement)
	if restoreGravity {
		m.ResetGravity()
	}
	return nil
}
