package system

import (
	"errors"
	"testing"

	"github.com/d5/tengo/v2"
	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptsFrom(files map[string]string) func(string) ([]byte, error) {
	return func(path string) ([]byte, error) {
		src, ok := files[scriptBase(path)]
		if !ok {
			return nil, errors.New("no such script")
		}
		return []byte(src), nil
	}
}

func TestScriptDrivesMovement(t *testing.T) {
	h := newHarness(t, 5, 4, nil, "hop.tengo")
	s := NewScriptSystem(5)
	s.loader = scriptsFrom(map[string]string{
		"hop.tengo": `
update := func(engine, state) {
	state.calls = is_undefined(state.calls) ? 1 : state.calls + 1
	if engine.frame == 1 {
		engine.travel_distance(1, 0.5)
	}
	if engine.frame == 2 {
		engine.zero_gravity()
	}
	state.last_x = engine.position().x
}
`,
	})

	s.Update(h.w)
	v := h.m.Body().Velocity()
	assert.InDelta(t, 3.0, v.X, 1e-9)
	assert.InDelta(t, 1.5, v.Y, 1e-9)

	s.Update(h.w)
	assert.Equal(t, 0.0, h.m.Body().GravityScale())

	rt := s.scripts[h.e]
	require.NotNil(t, rt)
	calls, ok := rt.stateData.Value["calls"].(*tengo.Int)
	require.True(t, ok)
	assert.Equal(t, int64(2), calls.Value)
	lastX, ok := rt.stateData.Value["last_x"].(*tengo.Float)
	require.True(t, ok)
	assert.Equal(t, 5.0, lastX.Value)
}

func TestScriptKnockbackAndQueries(t *testing.T) {
	h := newHarness(t, 5, 4, nil, "kb.tengo")
	h.m.State().IsInCorner = true
	s := NewScriptSystem(5)
	s.loader = scriptsFrom(map[string]string{
		"kb.tengo": `
update := func(engine, state) {
	state.corner = engine.in_corner()
	state.grounded = engine.grounded()
	if engine.frame == 1 {
		engine.knockback(-1, 0, 2, 0.5)
	}
	state.active = engine.knockback_active()
}
`,
	})

	s.Update(h.w)

	rt := s.scripts[h.e]
	require.NotNil(t, rt)
	assert.Equal(t, tengo.TrueValue, rt.stateData.Value["corner"])
	assert.Equal(t, tengo.FalseValue, rt.stateData.Value["grounded"])
	assert.Equal(t, tengo.TrueValue, rt.stateData.Value["active"])
	assert.True(t, h.m.KnockbackActive())
	assert.Equal(t, cp.Vector{X: 7, Y: 4}, h.m.Body().Position(), "snapped along X")
}

func TestScriptKinematicToggle(t *testing.T) {
	h := newHarness(t, 5, 4, nil, "freeze.tengo")
	s := NewScriptSystem(5)
	s.loader = scriptsFrom(map[string]string{
		"freeze.tengo": `
update := func(engine, state) {
	engine.kinematic(engine.frame == 1)
}
`,
	})

	s.Update(h.w)
	assert.True(t, h.m.Body().Kinematic())
	s.Update(h.w)
	assert.False(t, h.m.Body().Kinematic())
}

func TestScriptFailuresAreContained(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		loaded bool
	}{
		{"compile_error", "update := func(engine, state) {", false},
		{"bad_argument", `update := func(engine, state) { engine.travel_distance("left", []) }`, true},
		{"wrong_arity", `update := func(engine, state) { engine.knockback(1) }`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, 5, 4, nil, "broken.tengo")
			s := NewScriptSystem(5)
			s.loader = scriptsFrom(map[string]string{"broken.tengo": tc.src})

			s.Update(h.w)
			s.Update(h.w)

			rt, ok := s.scripts[h.e]
			assert.Equal(t, tc.loaded, ok)
			if ok {
				assert.True(t, rt.failed)
			}
			assert.Equal(t, cp.Vector{}, h.m.Body().Velocity())
		})
	}
}

func TestScriptInvalidateRecompiles(t *testing.T) {
	h := newHarness(t, 5, 4, nil, "scripts/hop.tengo")
	files := map[string]string{
		"hop.tengo": `update := func(engine, state) { engine.travel_distance(1, 0) }`,
	}
	s := NewScriptSystem(5)
	s.loader = scriptsFrom(files)

	s.Update(h.w)
	assert.InDelta(t, 3.0, h.m.Body().Velocity().X, 1e-9)

	files["hop.tengo"] = `update := func(engine, state) { engine.travel_distance(-2, 0) }`
	s.Update(h.w)
	assert.InDelta(t, 3.0, h.m.Body().Velocity().X, 1e-9, "cached until invalidated")

	s.Invalidate("prefabs/scripts/hop.tengo")
	s.Update(h.w)
	assert.InDelta(t, -6.0, h.m.Body().Velocity().X, 1e-9)
}

func TestScriptSystemDropsDestroyedEntities(t *testing.T) {
	h := newHarness(t, 5, 4, nil, "noop.tengo")
	s := NewScriptSystem(5)
	s.loader = scriptsFrom(map[string]string{"noop.tengo": `update := func(engine, state) {}`})

	s.Update(h.w)
	require.Len(t, s.scripts, 1)

	h.w.DestroyEntity(h.e)
	s.Update(h.w)
	assert.Empty(t, s.scripts)
}
