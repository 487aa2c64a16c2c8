package component

// Input stores per-tick controller input for an entity.
type Input struct {
	MoveX       float64
	MoveY       float64
	Jump        bool
	JumpPressed bool
	Run         bool
	Crouch      bool
	DashPressed bool
}

var InputComponent = NewComponent[Input]()
