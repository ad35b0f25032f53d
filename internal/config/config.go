// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

// PacmanConfig contains all configuration of the game.
type PacmanConfig struct {
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Bonus      BonusConfig      `yaml:"bonus"`
	Maps       MapsConfig       `yaml:"maps"`
	AI         AIConfig         `yaml:"ai"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GameplayConfig defines lives, credits and scoring rules.
type GameplayConfig struct {
	Lives          int  `yaml:"lives"`
	ExtraLifeScore int  `yaml:"extra_life_score"` // 0 disables the extra life
	MaxCredits     int  `yaml:"max_credits"`
	StartLevel     int  `yaml:"start_level"`
	PacImmune      bool `yaml:"pac_immune"` // ghosts cannot kill Pac
	CutScenes      bool `yaml:"cut_scenes"`
}

// BonusConfig defines when the bonus fruit appears and how long it stays.
type BonusConfig struct {
	Thresholds   []int   `yaml:"thresholds"` // eaten food counts
	EdibleMinSec float64 `yaml:"edible_min_sec"`
	EdibleMaxSec float64 `yaml:"edible_max_sec"`
	EatenSec     float64 `yaml:"eaten_sec"`
}

// MapsConfig defines where custom mazes come from and how levels pick them.
type MapsConfig struct {
	Selection string `yaml:"selection"` // no_custom_maps, custom_maps_first, all_random
	CustomDir string `yaml:"custom_dir"`
	Watch     bool   `yaml:"watch"` // reload custom mazes when files change
}

// AIConfig defines ghost and autopilot behavior.
type AIConfig struct {
	ChaseScript string `yaml:"chase_script"` // optional Tengo chase target script
	Autopilot   bool   `yaml:"autopilot"`
}

// TimingConfig defines the durations of the game states in seconds.
type TimingConfig struct {
	IntroSec         float64 `yaml:"intro_sec"` // attract screen before the demo level
	ReadySec         float64 `yaml:"ready_sec"`
	ReadyNewGameSec  float64 `yaml:"ready_new_game_sec"`
	GhostDyingSec    float64 `yaml:"ghost_dying_sec"`
	PacDyingSec      float64 `yaml:"pac_dying_sec"`
	LevelCompleteSec float64 `yaml:"level_complete_sec"`
	IntermissionSec  float64 `yaml:"intermission_sec"`
	GameOverSec      float64 `yaml:"game_over_sec"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "level", or "none"
	MaxAt int    `yaml:"max_at"` // Score or level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	GhostSpeedBonus float64 `yaml:"ghost_speed_bonus"` // Added to ghost speed at max difficulty (0.1 = +10%)
	PowerReduction  float64 `yaml:"power_reduction"`   // Fraction of power time removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
