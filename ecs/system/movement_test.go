package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementSystemPublishesKnockbackComplete(t *testing.T) {
	h := newHarness(t, 5, 1, nil, "")
	ms := NewMovementSystem(testDT)

	fired := 0
	h.m.OnKnockbackComplete(func() { fired++ })
	h.m.Knockback(cp.Vector{X: 1}, 2, 2*testDT)

	var events []ecs.Event
	for i := 0; i < 10; i++ {
		ms.Update(h.w)
		events = append(events, h.w.Events().Drain()...)
	}

	assert.Equal(t, 1, fired)
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventKnockbackComplete, events[0].Type)
	assert.Equal(t, ecs.KnockbackCompleted{Entity: h.e}, events[0].Data)
	assert.InDelta(t, 7.0, h.m.Body().Position().X, 1e-9)
}

func TestMovementSystemAppliesFallMultiplier(t *testing.T) {
	h := newHarness(t, 5, 4, nil, "")
	h.m.Body().SetVelocity(cp.Vector{Y: -1})

	NewMovementSystem(testDT).Update(h.w)

	assert.InDelta(t, -1+3*DefaultGravity.Y*testDT, h.m.Body().Velocity().Y, 1e-9)
}
