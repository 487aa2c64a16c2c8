package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/brawler/player"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type BodySpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type PlayerSpec struct {
	Name         string        `yaml:"name"`
	WalkSpeed    float64       `yaml:"walk_speed"`
	RunSpeed     float64       `yaml:"run_speed"`
	JumpSpeed    float64       `yaml:"jump_speed"`
	DashDistance float64       `yaml:"dash_distance"`
	Body         BodySpec      `yaml:"body"`
	Movement     player.Tuning `yaml:"movement"`
	Audio        []AudioSpec   `yaml:"audio"`
	Script       string        `yaml:"script"`
}

// ParsePlayerSpec decodes a player spec. Movement constants missing from the
// document keep their defaults.
func ParsePlayerSpec(data []byte) (*PlayerSpec, error) {
	spec := PlayerSpec{Movement: player.DefaultTuning()}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal player spec: %w", err)
	}
	if spec.WalkSpeed <= 0 || spec.RunSpeed <= 0 {
		return nil, fmt.Errorf("%w: %q needs positive walk_speed and run_speed", ErrInvalidSpec, spec.Name)
	}
	return &spec, nil
}

func LoadPlayerSpec(filename string) (*PlayerSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := ParsePlayerSpec(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return spec, nil
}

type ArenaSpec struct {
	Name          string  `yaml:"name"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
	Friction      float64 `yaml:"friction"`
	Gravity       float64 `yaml:"gravity"`
}

func LoadArenaSpec(filename string) (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("%w: arena %q needs a positive size", ErrInvalidSpec, spec.Name)
	}
	if spec.WallThickness <= 0 {
		spec.WallThickness = 1
	}
	return &spec, nil
}
