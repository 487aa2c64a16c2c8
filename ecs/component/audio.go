package component

// Sound is the playback surface the audio system drives. *audio.Player from
// ebiten satisfies it.
type Sound interface {
	IsPlaying() bool
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
}

// Audio holds named sounds and per-sound play/stop requests that the audio
// system applies once per tick.
type Audio struct {
	Names   []string
	Players []Sound
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// AddSound appends a named sound.
func (a *Audio) AddSound(name string, player Sound, volume float64) {
	a.Names = append(a.Names, name)
	a.Players = append(a.Players, player)
	a.Volume = append(a.Volume, volume)
	a.Play = append(a.Play, false)
	a.Stop = append(a.Stop, false)
}

func (a *Audio) index(name string) int {
	if a == nil {
		return -1
	}
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// PlaySound requests playback of the named sound. Unknown names are ignored.
func (a *Audio) PlaySound(name string) {
	if i := a.index(name); i >= 0 {
		a.Play[i] = true
		a.Stop[i] = false
	}
}

// StopSound requests the named sound stop. Unknown names are ignored.
func (a *Audio) StopSound(name string) {
	if i := a.index(name); i >= 0 {
		a.Stop[i] = true
		a.Play[i] = false
	}
}

var AudioComponent = NewComponent[Audio]()
