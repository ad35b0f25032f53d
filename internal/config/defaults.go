package config

import (
	_ "embed"
)

//go:embed defaults/pacman.yaml
var defaultPacmanYAML []byte

// DefaultPacmanConfig returns the default configuration.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Gameplay: GameplayConfig{
			Lives:          3,
			ExtraLifeScore: 10000,
			MaxCredits:     99,
			StartLevel:     1,
			CutScenes:      true,
		},
		Bonus: BonusConfig{
			Thresholds:   []int{70, 170},
			EdibleMinSec: 9,
			EdibleMaxSec: 10,
			EatenSec:     2,
		},
		Maps: MapsConfig{
			Selection: "custom_maps_first",
			CustomDir: "~/.pacman/maps",
			Watch:     true,
		},
		Timing: TimingConfig{
			IntroSec:         10,
			ReadySec:         2,
			ReadyNewGameSec:  4,
			GhostDyingSec:    1,
			PacDyingSec:      2.5,
			LevelCompleteSec: 4,
			IntermissionSec:  8,
			GameOverSec:      3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 21,
			},
			Scaling: ScalingConfig{
				GhostSpeedBonus: 0.1,
				PowerReduction:  0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPacmanYAML
}
