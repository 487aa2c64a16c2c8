package player

// Tuning names every constant the controller applies.
type Tuning struct {
	// FallMultiplier and LowJumpMultiplier scale gravity while falling and
	// rising; the controller adds (multiplier-1) times gravity each tick.
	FallMultiplier    float64 `yaml:"fall_multiplier"`
	LowJumpMultiplier float64 `yaml:"low_jump_multiplier"`

	ImpulseScale float64 `yaml:"impulse_scale"`

	CornerPushX float64 `yaml:"corner_push_x"`
	CornerPushY float64 `yaml:"corner_push_y"`

	GravityScale     float64 `yaml:"gravity_scale"`
	ZeroGravityScale float64 `yaml:"zero_gravity_scale"`
}

func DefaultTuning() Tuning {
	return Tuning{
		FallMultiplier:    4,
		LowJumpMultiplier: 3,
		ImpulseScale:      3,
		CornerPushX:       8,
		CornerPushY:       -4,
		GravityScale:      2,
		ZeroGravityScale:  0,
	}
}
