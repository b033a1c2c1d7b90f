package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file cannot be parsed.
func DefaultConfig() GameConfig {
	return GameConfig{
		World: World{
			Width:  800,
			Height: 600,
		},
		Avatar: Avatar{
			StartX: 100,
			StartY: 300,
			Size:   40,
		},
		Physics: Physics{
			Gravity:     800,
			JumpImpulse: -350,
		},
		Obstacles: Obstacles{
			Width:         60,
			GapSize:       150,
			GapTopMin:     100,
			GapTopMax:     400,
			Speed:         200,
			SpawnInterval: 1.5,
		},
		Round: Round{
			GameOverHold: 2,
			Message:      "Game Over!",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
