// Package config provides YAML-based game configuration loading for flapper.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains all tunables of the simulation.
type GameConfig struct {
	World     World     `yaml:"world"`
	Avatar    Avatar    `yaml:"avatar"`
	Physics   Physics   `yaml:"physics"`
	Obstacles Obstacles `yaml:"obstacles"`
	Round     Round     `yaml:"round"`
}

// World defines the logical play area in pixels.
type World struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Avatar defines the avatar's start point and bounding size.
type Avatar struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	Size   float64 `yaml:"size"`
}

// Physics defines the vertical motion model.
type Physics struct {
	Gravity     float64 `yaml:"gravity"`      // px/s², positive = down
	JumpImpulse float64 `yaml:"jump_impulse"` // px/s, velocity set on jump
}

// Obstacles defines obstacle geometry, cadence and scrolling.
type Obstacles struct {
	Width         float64 `yaml:"width"`
	GapSize       float64 `yaml:"gap_size"`
	GapTopMin     int     `yaml:"gap_top_min"`
	GapTopMax     int     `yaml:"gap_top_max"` // inclusive
	Speed         float64 `yaml:"speed"`       // px/s
	SpawnInterval float64 `yaml:"spawn_interval"`
}

// Round defines the round end behavior.
type Round struct {
	GameOverHold float64 `yaml:"game_over_hold"` // seconds the terminal message stays up
	Message      string  `yaml:"message"`
}

// Validate checks that the configuration describes a playable world.
func (c GameConfig) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"world.width", c.World.Width},
		{"world.height", c.World.Height},
		{"avatar.size", c.Avatar.Size},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.gap_size", c.Obstacles.GapSize},
		{"obstacles.speed", c.Obstacles.Speed},
		{"obstacles.spawn_interval", c.Obstacles.SpawnInterval},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}

	if c.Round.GameOverHold < 0 {
		return fmt.Errorf("%w: round.game_over_hold must not be negative", ErrInvalidConfig)
	}
	if c.Obstacles.GapTopMin < 0 || c.Obstacles.GapTopMax < c.Obstacles.GapTopMin {
		return fmt.Errorf("%w: gap top range [%d, %d] is empty",
			ErrInvalidConfig, c.Obstacles.GapTopMin, c.Obstacles.GapTopMax)
	}
	if float64(c.Obstacles.GapTopMax)+c.Obstacles.GapSize > c.World.Height {
		return fmt.Errorf("%w: gap [%d+%v] does not fit world height %v",
			ErrInvalidConfig, c.Obstacles.GapTopMax, c.Obstacles.GapSize, c.World.Height)
	}
	if c.Avatar.StartY < 0 || c.Avatar.StartY > c.World.Height {
		return fmt.Errorf("%w: avatar start y %v is outside the world", ErrInvalidConfig, c.Avatar.StartY)
	}
	if c.Avatar.StartX < 0 || c.Avatar.StartX > c.World.Width {
		return fmt.Errorf("%w: avatar start x %v is outside the world", ErrInvalidConfig, c.Avatar.StartX)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c GameConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: cannot marshal: %w", err)
	}
	return data, nil
}
