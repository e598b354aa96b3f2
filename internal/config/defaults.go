package config

import (
	_ "embed"
)

//go:embed defaults/stealth.yaml
var defaultStealthYAML []byte

// DefaultConfig returns the stock configuration.
func DefaultConfig() StealthConfig {
	return StealthConfig{
		Sim: SimConfig{
			TickIntervalMS: 120,
			FrameRate:      30,
		},
		Projectile: ProjectileConfig{
			SubunitsPerTile: 16,
			RangeTiles:      8,
			Capacity:        16,
		},
		Obstacles: ObstacleConfig{
			SpinnerStep: 0.2,
			FinalStage:  6,
			ImmuneHit:   "pass",
		},
		StageClearPauseMS: 1000,
	}
}
