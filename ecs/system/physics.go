package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/player"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeGround
	collisionTypeWall
)

const (
	wallNone  = 0
	wallLeft  = 1
	wallRight = 2
)

// DefaultGravity is Y-up, in world units per second squared.
var DefaultGravity = cp.Vector{X: 0, Y: -9.81}

type PhysicsSystem struct {
	space         *cp.Space
	dt            float64
	handlersReady bool

	// world is only set while Update runs so collision callbacks can reach
	// components.
	world *ecs.World

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts map[ecs.Entity]*contactState
	stacked  map[stackKey]ecs.Entity
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

type contactState struct {
	grounded     bool
	wasGrounded  bool
	wall         int
	stackedCount int
}

type stackKey struct {
	a, b ecs.Entity
}

func makeStackKey(a, b ecs.Entity) stackKey {
	if a > b {
		a, b = b, a
	}
	return stackKey{a: a, b: b}
}

// NewPhysicsSystem creates a space stepped by dt seconds per tick.
func NewPhysicsSystem(gravity cp.Vector, dt float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(gravity)
	return &PhysicsSystem{
		space:    space,
		dt:       dt,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
		contacts: make(map[ecs.Entity]*contactState),
		stacked:  make(map[stackKey]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Gravity implements player.Environment.
func (ps *PhysicsSystem) Gravity() cp.Vector {
	if ps == nil || ps.space == nil {
		return DefaultGravity
	}
	return ps.space.Gravity()
}

func (ps *PhysicsSystem) SetGravity(g cp.Vector) {
	if ps == nil || ps.space == nil {
		return
	}
	ps.space.SetGravity(g)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}

	ps.world = w
	defer func() { ps.world = nil }()

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.resetContacts()

	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeGround)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		e, n, ok := sys.characterContact(arb)
		if !ok {
			return true
		}
		// the normal points from the character into the ground
		if n.Y < -0.5 {
			sys.contactState(e).grounded = true
		}
		return true
	}

	wallHandler := ps.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeWall)
	wallHandler.UserData = ps
	wallHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		e, n, ok := sys.characterContact(arb)
		if !ok {
			return true
		}
		st := sys.contactState(e)
		if n.X < -0.5 {
			st.wall = wallLeft
		} else if n.X > 0.5 {
			st.wall = wallRight
		}
		return true
	}

	stackHandler := ps.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeCharacter)
	stackHandler.UserData = ps
	stackHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		sys.beginStack(arb)
		return true
	}
	stackHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return
		}
		sys.endStack(arb)
	}

	ps.handlersReady = true
}

// characterContact returns the character entity of a character-vs-static
// arbiter and the contact normal pointing away from the character.
func (ps *PhysicsSystem) characterContact(arb *cp.Arbiter) (ecs.Entity, cp.Vector, bool) {
	shapeA, shapeB := arb.Shapes()
	n := arb.Normal()
	if e, ok := ps.dynamicEntity(shapeA); ok {
		return e, n, true
	}
	if e, ok := ps.dynamicEntity(shapeB); ok {
		return e, n.Neg(), true
	}
	return 0, cp.Vector{}, false
}

func (ps *PhysicsSystem) dynamicEntity(shape *cp.Shape) (ecs.Entity, bool) {
	e, ok := ps.shapes[shape]
	if !ok {
		return 0, false
	}
	info := ps.entities[e]
	return e, info != nil && !info.static
}

// beginStack dispatches the landing of one character on another to the
// upper character's movement controller.
func (ps *PhysicsSystem) beginStack(arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	a, okA := ps.shapes[shapeA]
	b, okB := ps.shapes[shapeB]
	if !okA || !okB || ps.world == nil {
		return
	}

	n := arb.Normal()
	var top, bottom ecs.Entity
	switch {
	case n.Y < -0.5:
		top, bottom = a, b
	case n.Y > 0.5:
		top, bottom = b, a
	default:
		return
	}

	ps.stacked[makeStackKey(a, b)] = top
	ps.contactState(top).stackedCount++

	m, ok := ecs.Get(ps.world, top, player.MovementComponent)
	if !ok {
		return
	}
	other, _ := ecs.Get(ps.world, bottom, component.TransformComponent)
	point := 0.0
	if set := arb.ContactPointSet(); set.Count > 0 {
		point = set.Points[0].PointA.X
	}
	m.GroundedPoint(other, point)
}

func (ps *PhysicsSystem) endStack(arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	a, okA := ps.shapes[shapeA]
	b, okB := ps.shapes[shapeB]
	if !okA || !okB {
		return
	}
	key := makeStackKey(a, b)
	top, ok := ps.stacked[key]
	if !ok {
		return
	}
	delete(ps.stacked, key)

	st := ps.contactState(top)
	if st.stackedCount > 0 {
		st.stackedCount--
	}
	if st.stackedCount > 0 || ps.world == nil {
		return
	}
	if m, ok := ecs.Get(ps.world, top, player.MovementComponent); ok {
		m.GroundedPointExit()
	}
}

func (ps *PhysicsSystem) contactState(e ecs.Entity) *contactState {
	st := ps.contacts[e]
	if st == nil {
		st = &contactState{}
		ps.contacts[e] = st
	}
	return st
}

func (ps *PhysicsSystem) resetContacts() {
	for _, st := range ps.contacts {
		st.wasGrounded = st.grounded
		st.grounded = false
		st.wall = wallNone
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.ID(), component.TransformComponent.ID()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)

		info := ps.createBodyInfo(transform, bodyComp)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		ps.shapes[info.shape] = e
		bodyComp.Shape = info.shape
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}

	if bodyComp.Static {
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeFor(bodyComp.Role))
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	if bodyComp.Body == nil {
		log.Printf("physics: dynamic body at (%.2f, %.2f) has no rigidbody", transform.X, transform.Y)
		return nil
	}

	body := bodyComp.Body.CP()
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeFor(bodyComp.Role))

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func collisionTypeFor(role component.BodyRole) cp.CollisionType {
	switch role {
	case component.BodyRoleGround:
		return collisionTypeGround
	case component.BodyRoleWall:
		return collisionTypeWall
	}
	return collisionTypeCharacter
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapes, info.shape)
		}
		if !info.static && info.body != nil {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		delete(ps.contacts, e)
		for key, top := range ps.stacked {
			if key.a == e || key.b == e || top == e {
				delete(ps.stacked, key)
			}
		}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		pos := info.body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = info.body.Angle()
	}
}

// flushContacts turns this step's contacts into grounded/airborne
// transitions and the corner flag.
func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	ecs.ForEach(w, player.MovementComponent, func(e ecs.Entity, m *player.Movement) {
		st := ps.contactState(e)
		m.State().IsInCorner = st.wall != wallNone

		switch {
		case st.grounded && !st.wasGrounded:
			m.OnGrounded()
			w.Events().Push(ecs.Event{Type: ecs.EventLanded, Data: ecs.ContactChanged{Entity: e}})
		case !st.grounded && st.wasGrounded:
			m.OnAir()
			w.Events().Push(ecs.Event{Type: ecs.EventAirborne, Data: ecs.ContactChanged{Entity: e}})
		}
	})
}
