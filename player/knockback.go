package player

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/common"
)

// knockbackTween moves the body linearly from start to target over duration,
// one step per frame.
type knockbackTween struct {
	start    cp.Vector
	target   cp.Vector
	duration float64
	elapsed  float64
}

// step advances the tween by one frame and reports whether it finished.
func (k *knockbackTween) step(body Rigidbody, dt float64) bool {
	if k.elapsed < k.duration {
		body.MovePosition(common.LerpVector(k.start, k.target, k.elapsed/k.duration))
		k.elapsed += dt
		return false
	}
	body.MovePosition(k.target)
	return true
}

// Knockback snaps the character force units along X, then tweens it from its
// previous position to force*direction away over duration. A call while a
// tween is in flight replaces that tween; the replaced one never completes.
func (m *Movement) Knockback(direction cp.Vector, force, duration float64) {
	start := m.body.Position()
	m.body.MovePosition(cp.Vector{X: start.X + force, Y: start.Y})
	m.knockback = &knockbackTween{
		start:    start,
		target:   start.Add(direction.Mult(force)),
		duration: duration,
	}
}

// OnKnockbackComplete registers a callback fired once when the active (or
// next) knockback finishes. Registering again replaces the pending callback.
func (m *Movement) OnKnockbackComplete(fn func()) {
	m.onComplete = fn
}

func (m *Movement) KnockbackActive() bool {
	return m.knockback != nil
}

// Update steps the knockback tween once per frame. It returns true on the
// frame the tween completes, after the pending callback has fired.
func (m *Movement) Update(dt float64) bool {
	if m.knockback == nil {
		return false
	}
	if !m.knockback.step(m.body, dt) {
		return false
	}
	m.knockback = nil
	fn := m.onComplete
	m.onComplete = nil
	if fn != nil {
		fn()
	}
	return true
}
