// Package config provides YAML-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-stealth/internal/world"
)

// StealthConfig contains all tunable game constants.
type StealthConfig struct {
	Sim               SimConfig        `yaml:"sim"`
	Projectile        ProjectileConfig `yaml:"projectile"`
	Obstacles         ObstacleConfig   `yaml:"obstacles"`
	StageClearPauseMS int              `yaml:"stage_clear_pause_ms"`
}

// SimConfig defines the timing of the two loops.
type SimConfig struct {
	TickIntervalMS int `yaml:"tick_interval_ms"`
	FrameRate      int `yaml:"frame_rate"`
}

// ProjectileConfig defines projectile flight and pool size.
type ProjectileConfig struct {
	SubunitsPerTile int `yaml:"subunits_per_tile"`
	RangeTiles      int `yaml:"range_tiles"`
	Capacity        int `yaml:"capacity"`
}

// ObstacleConfig defines obstacle parameters.
type ObstacleConfig struct {
	SpinnerStep float64 `yaml:"spinner_step"`
	FinalStage  int     `yaml:"final_stage"`
	ImmuneHit   string  `yaml:"immune_hit"` // "pass" or "absorb"
}

// TickInterval returns the obstacle tick period.
func (c StealthConfig) TickInterval() time.Duration {
	return time.Duration(c.Sim.TickIntervalMS) * time.Millisecond
}

// StageClearPause returns how long the cleared banner stays up.
func (c StealthConfig) StageClearPause() time.Duration {
	return time.Duration(c.StageClearPauseMS) * time.Millisecond
}

// Rules converts the configuration into simulation constants.
func (c StealthConfig) Rules() world.Rules {
	return world.Rules{
		SubunitsPerTile:    c.Projectile.SubunitsPerTile,
		ProjectileRange:    c.Projectile.RangeTiles,
		ProjectileCapacity: c.Projectile.Capacity,
		SpinnerStep:        c.Obstacles.SpinnerStep,
		FinalStage:         c.Obstacles.FinalStage,
		ImmuneHit:          world.ImmunePolicy(c.Obstacles.ImmuneHit),
	}
}

// Validate reports every invalid value at once.
func (c StealthConfig) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}

	positive("sim.tick_interval_ms", c.Sim.TickIntervalMS)
	positive("sim.frame_rate", c.Sim.FrameRate)
	positive("projectile.subunits_per_tile", c.Projectile.SubunitsPerTile)
	positive("projectile.range_tiles", c.Projectile.RangeTiles)
	positive("projectile.capacity", c.Projectile.Capacity)
	positive("obstacles.final_stage", c.Obstacles.FinalStage)

	if c.Obstacles.SpinnerStep <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.spinner_step must be positive, got %g", c.Obstacles.SpinnerStep))
	}
	if c.StageClearPauseMS < 0 {
		errs = append(errs, fmt.Errorf("stage_clear_pause_ms must not be negative, got %d", c.StageClearPauseMS))
	}
	switch world.ImmunePolicy(c.Obstacles.ImmuneHit) {
	case world.ImmunePass, world.ImmuneAbsorb:
	default:
		errs = append(errs, fmt.Errorf("obstacles.immune_hit must be %q or %q, got %q",
			world.ImmunePass, world.ImmuneAbsorb, c.Obstacles.ImmuneHit))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
