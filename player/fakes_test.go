package player

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/physics"
)

type fakeBody struct {
	velocity     cp.Vector
	position     cp.Vector
	impulses     []cp.Vector
	moves        []cp.Vector
	gravityScale float64
	constraints  physics.Constraints
	kinematic    bool
}

func (b *fakeBody) Velocity() cp.Vector                  { return b.velocity }
func (b *fakeBody) SetVelocity(v cp.Vector)              { b.velocity = v }
func (b *fakeBody) Position() cp.Vector                  { return b.position }
func (b *fakeBody) GravityScale() float64                { return b.gravityScale }
func (b *fakeBody) SetGravityScale(s float64)            { b.gravityScale = s }
func (b *fakeBody) Constraints() physics.Constraints     { return b.constraints }
func (b *fakeBody) SetConstraints(c physics.Constraints) { b.constraints = c }
func (b *fakeBody) Kinematic() bool                      { return b.kinematic }
func (b *fakeBody) SetKinematic(k bool)                  { b.kinematic = k }

// ApplyImpulse treats the body as unit mass.
func (b *fakeBody) ApplyImpulse(j cp.Vector) {
	b.impulses = append(b.impulses, j)
	b.velocity = b.velocity.Add(j)
}

func (b *fakeBody) MovePosition(p cp.Vector) {
	b.moves = append(b.moves, p)
	b.position = p
}

type fakeStats struct{ walk, run float64 }

func (s fakeStats) WalkSpeed() float64 { return s.walk }
func (s fakeStats) RunSpeed() float64  { return s.run }

type fakeSounds struct{ played, stopped []string }

func (s *fakeSounds) PlaySound(name string) { s.played = append(s.played, name) }
func (s *fakeSounds) StopSound(name string) { s.stopped = append(s.stopped, name) }

type fakeEnv struct{ gravity cp.Vector }

func (e fakeEnv) Gravity() cp.Vector { return e.gravity }

type rig struct {
	m         *Movement
	body      *fakeBody
	sounds    *fakeSounds
	transform *component.Transform
}

func newRig() rig {
	body := &fakeBody{gravityScale: 1, constraints: physics.FreezeRotation}
	sounds := &fakeSounds{}
	transform := &component.Transform{ScaleX: 1, ScaleY: 1}
	m, err := NewMovement(Deps{
		Body:        body,
		Transform:   transform,
		Stats:       fakeStats{walk: 4, run: 7},
		Sounds:      sounds,
		Environment: fakeEnv{gravity: cp.Vector{Y: -9.81}},
	})
	if err != nil {
		panic(err)
	}
	m.Start()
	return rig{m: m, body: body, sounds: sounds, transform: transform}
}
