package config

import (
	"fmt"
	"time"
)

// SimulationConfig holds playback settings.
type SimulationConfig struct {
	StepMinutes float64 `json:"step_minutes"`
}

// SetDefaults applies sane defaults.
func (c *SimulationConfig) SetDefaults() {
	if c.StepMinutes == 0 {
		c.StepMinutes = 15
	}
}

// Validate rejects non-positive steps.
func (c SimulationConfig) Validate() error {
	if c.StepMinutes <= 0 {
		return fmt.Errorf("step_minutes must be positive, got %v", c.StepMinutes)
	}
	return nil
}

// Step returns the playback step as a duration.
func (c SimulationConfig) Step() time.Duration {
	return time.Duration(c.StepMinutes * float64(time.Minute))
}
