package component

// PlayerStats holds the configured speeds. Hot reload rewrites the values in
// place, so holders of the pointer see new numbers on the next read.
type PlayerStats struct {
	Walk         float64
	Run          float64
	Jump         float64
	DashDistance float64
}

func (s *PlayerStats) WalkSpeed() float64 {
	return s.Walk
}

func (s *PlayerStats) RunSpeed() float64 {
	return s.Run
}

var PlayerStatsComponent = NewComponent[PlayerStats]()
