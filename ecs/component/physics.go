package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/physics"
)

// BodyRole selects the collision type a physics body registers with.
type BodyRole int

const (
	BodyRoleCharacter BodyRole = iota
	BodyRoleGround
	BodyRoleWall
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Static bodies leave Body nil and attach their shape to the space's static
// body.
type PhysicsBody struct {
	Body       *physics.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	Role       BodyRole
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
