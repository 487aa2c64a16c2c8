package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/player"
	"github.com/milk9111/brawler/prefabs"
)

// ScriptSystem runs movement scripts. A script defines
// `update := func(engine, state) {...}`; engine exposes the entity's
// movement operations and state is a map kept across ticks.
type ScriptSystem struct {
	frame   int
	center  float64
	loader  func(path string) ([]byte, error)
	scripts map[ecs.Entity]*scriptRuntime
}

type scriptRuntime struct {
	path      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	failed    bool
}

const scriptDispatch = `
if is_callable(update) {
	update(__engine, __state)
}
`

// NewScriptSystem creates a script runner. arenaCenter is exposed to scripts
// as engine.arena_center.
func NewScriptSystem(arenaCenter float64) *ScriptSystem {
	return &ScriptSystem{
		center:  arenaCenter,
		loader:  prefabs.LoadScript,
		scripts: make(map[ecs.Entity]*scriptRuntime),
	}
}

// Invalidate drops compiled scripts loaded from path, or every script when
// path is empty, so the next tick recompiles them.
func (s *ScriptSystem) Invalidate(path string) {
	if s == nil {
		return
	}
	base := scriptBase(path)
	for e, rt := range s.scripts {
		if base == "" || scriptBase(rt.path) == base {
			delete(s.scripts, e)
		}
	}
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.frame++

	for e := range s.scripts {
		if !w.IsAlive(e) {
			delete(s.scripts, e)
		}
	}

	for _, e := range w.Query(component.MovementScriptComponent.ID(), player.MovementComponent.ID()) {
		sc, _ := ecs.Get(w, e, component.MovementScriptComponent)
		m, _ := ecs.Get(w, e, player.MovementComponent)

		rt, err := s.runtime(e, sc.Path)
		if err != nil {
			log.Printf("script: entity=%s load %q: %v", e, sc.Path, err)
			continue
		}
		if rt.failed {
			continue
		}

		if err := rt.run(s.buildEngine(w, e, m)); err != nil {
			// keep the runtime so a broken script logs once until reloaded
			rt.failed = true
			log.Printf("script: entity=%s run %q: %v", e, sc.Path, err)
		}
	}
}

func (s *ScriptSystem) runtime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if rt, ok := s.scripts[e]; ok && rt.path == path {
		return rt, nil
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}

	src, err := s.loader(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(append(src, []byte(scriptDispatch)...))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &scriptRuntime{
		path:      path,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.scripts[e] = rt
	return rt, nil
}

func (rt *scriptRuntime) run(engine *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func (s *ScriptSystem) buildEngine(w *ecs.World, e ecs.Entity, m *player.Movement) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"frame":        &tengo.Int{Value: int64(s.frame)},
		"arena_center": &tengo.Float{Value: s.center},
	}

	values["travel_distance"] = &tengo.UserFunction{Name: "travel_distance", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := floatArgs("travel_distance", args, 2)
		if err != nil {
			return nil, err
		}
		m.TravelDistance(cp.Vector{X: v[0], Y: v[1]})
		return tengo.UndefinedValue, nil
	}}

	values["knockback"] = &tengo.UserFunction{Name: "knockback", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := floatArgs("knockback", args, 4)
		if err != nil {
			return nil, err
		}
		m.Knockback(cp.Vector{X: v[0], Y: v[1]}, v[2], v[3])
		return tengo.UndefinedValue, nil
	}}

	values["zero_gravity"] = &tengo.UserFunction{Name: "zero_gravity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		m.ZeroGravity()
		return tengo.UndefinedValue, nil
	}}

	values["reset_gravity"] = &tengo.UserFunction{Name: "reset_gravity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		m.ResetGravity()
		return tengo.UndefinedValue, nil
	}}

	values["reset"] = &tengo.UserFunction{Name: "reset", Value: func(args ...tengo.Object) (tengo.Object, error) {
		m.ResetPlayerMovement()
		return tengo.UndefinedValue, nil
	}}

	values["kinematic"] = &tengo.UserFunction{Name: "kinematic", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		on, ok := tengo.ToBool(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "first", Expected: "bool", Found: args[0].TypeName()}
		}
		m.SetRigidbodyKinematic(on)
		return tengo.UndefinedValue, nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(m.State().TouchingGround), nil
	}}

	values["in_corner"] = &tengo.UserFunction{Name: "in_corner", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(m.State().IsInCorner), nil
	}}

	values["knockback_active"] = &tengo.UserFunction{Name: "knockback_active", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(m.KnockbackActive()), nil
	}}

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(m.Body().Velocity()), nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(m.Body().Position()), nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func floatArgs(name string, args []tengo.Object, n int) ([]float64, error) {
	if len(args) != n {
		return nil, tengo.ErrWrongNumArguments
	}
	out := make([]float64, n)
	for i, arg := range args {
		f, ok := tengo.ToFloat64(arg)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{
				Name:     fmt.Sprintf("%s arg %d", name, i+1),
				Expected: "float(compatible)",
				Found:    arg.TypeName(),
			}
		}
		out[i] = f
	}
	return out, nil
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func vectorObject(v cp.Vector) tengo.Object {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x": &tengo.Float{Value: v.X},
		"y": &tengo.Float{Value: v.Y},
	}}
}

func scriptBase(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
