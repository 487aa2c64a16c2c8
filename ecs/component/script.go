package component

// MovementScript attaches a tengo script that drives scripted forced
// movement for the entity.
type MovementScript struct {
	Path string
}

var MovementScriptComponent = NewComponent[MovementScript]()
