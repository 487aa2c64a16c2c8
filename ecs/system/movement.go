package system

import (
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/player"
)

// MovementSystem is the frame driver for movement controllers: the fixed
// gravity shaping and the per-frame knockback tween, once each per tick.
type MovementSystem struct {
	dt float64
}

func NewMovementSystem(dt float64) *MovementSystem {
	return &MovementSystem{dt: dt}
}

func (ms *MovementSystem) Update(w *ecs.World) {
	if ms == nil || w == nil {
		return
	}

	ecs.ForEach(w, player.MovementComponent, func(e ecs.Entity, m *player.Movement) {
		m.FixedUpdate(ms.dt)
		if m.Update(ms.dt) {
			w.Events().Push(ecs.Event{
				Type: ecs.EventKnockbackComplete,
				Data: ecs.KnockbackCompleted{Entity: e},
			})
		}
	})
}
