package component

// Transform is an entity's world-space pose. Y points up. The sign of ScaleX
// is the facing direction.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// Facing returns -1, 0, or 1 from the sign of ScaleX.
func (t *Transform) Facing() float64 {
	switch {
	case t == nil:
		return 0
	case t.ScaleX > 0:
		return 1
	case t.ScaleX < 0:
		return -1
	}
	return 0
}

var TransformComponent = NewComponent[Transform]()
