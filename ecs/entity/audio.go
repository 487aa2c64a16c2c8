package entity

import (
	"fmt"

	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/prefabs"
)

// SoundLoader opens a sound file named in a prefab spec.
type SoundLoader func(file string) (component.Sound, error)

func buildAudioComponent(audioSpecs []prefabs.AudioSpec, load SoundLoader) (*component.Audio, error) {
	audioComp := &component.Audio{}
	for i, clip := range audioSpecs {
		var sound component.Sound
		if load != nil {
			s, err := load(clip.File)
			if err != nil {
				return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
			}
			sound = s
		}
		audioComp.AddSound(clip.Name, sound, clip.Volume)
	}
	return audioComp, nil
}
