package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score and level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d != nil && d.cfg.Enabled
}

// Level returns the current difficulty level (0.0 to 1.0) based on score or level number.
func (d *DifficultyManager) Level(score int, levelNumber int) float64 {
	if !d.IsEnabled() {
		return 0
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "level":
		progress = float64(levelNumber-1) / maxAt
	default:
		return d.initialLevel
	}

	// Clamp progress to [0, 1]
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// GhostSpeedFactor returns the multiplier applied to ghost speeds.
func (d *DifficultyManager) GhostSpeedFactor(score int, levelNumber int) float64 {
	if !d.IsEnabled() {
		return 1
	}
	return 1.0 + d.Level(score, levelNumber)*d.cfg.Scaling.GhostSpeedBonus
}

// PowerFactor returns the multiplier applied to Pac's power duration.
func (d *DifficultyManager) PowerFactor(score int, levelNumber int) float64 {
	if !d.IsEnabled() {
		return 1
	}
	return clampF(1.0-d.Level(score, levelNumber)*d.cfg.Scaling.PowerReduction, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
