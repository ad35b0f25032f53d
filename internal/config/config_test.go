package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg PacmanConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("parse embedded defaults: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultPacmanConfig()) {
		t.Fatalf("embedded defaults differ:\n got %+v\nwant %+v", cfg, DefaultPacmanConfig())
	}
}

func TestLoadPacmanCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("gameplay:\n  lives: 7\nbonus:\n  thresholds: [50]\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPacman(path)
	if err != nil {
		t.Fatalf("LoadPacman: %v", err)
	}
	if cfg.Gameplay.Lives != 7 {
		t.Errorf("lives = %d, want 7", cfg.Gameplay.Lives)
	}
	if !reflect.DeepEqual(cfg.Bonus.Thresholds, []int{50}) {
		t.Errorf("thresholds = %v, want [50]", cfg.Bonus.Thresholds)
	}
	// Unset keys keep their defaults.
	if cfg.Gameplay.ExtraLifeScore != 10000 {
		t.Errorf("extra life score = %d, want 10000", cfg.Gameplay.ExtraLifeScore)
	}
}

func TestLoadPacmanErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadPacman(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file: expected error")
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("gameplay: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPacman(bad); err == nil {
		t.Error("bad yaml: expected error")
	}
}

func TestApplyPacmanPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		enabled   bool
		lives     int
		initLevel float64
	}{
		{DifficultyEasy, true, 5, 0.0},
		{DifficultyNormal, true, 3, 0.3},
		{DifficultyHard, true, 2, 0.7},
		{DifficultyFixed, false, 3, 0.0},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultPacmanConfig()
			ApplyPacmanPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Gameplay.Lives != tt.lives {
				t.Errorf("lives = %d, want %d", cfg.Gameplay.Lives, tt.lives)
			}
			if cfg.Difficulty.InitialLevel != tt.initLevel {
				t.Errorf("initial level = %v, want %v", cfg.Difficulty.InitialLevel, tt.initLevel)
			}
		})
	}
}

func TestDifficultyManager(t *testing.T) {
	disabled := NewDifficultyManager(DefaultPacmanConfig().Difficulty)
	if disabled.GhostSpeedFactor(5000, 10) != 1 || disabled.PowerFactor(5000, 10) != 1 {
		t.Fatal("disabled manager must not scale")
	}

	cfg := DefaultPacmanConfig().Difficulty
	cfg.Enabled = true
	cfg.Progression = ProgressionConfig{Type: "level", MaxAt: 10}
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(0, 1); got != 0 {
		t.Errorf("Level at level 1 = %v, want 0", got)
	}
	if got := dm.Level(0, 100); got != 1 {
		t.Errorf("Level past max = %v, want 1", got)
	}
	if got := dm.GhostSpeedFactor(0, 11); got != 1.1 {
		t.Errorf("GhostSpeedFactor at max = %v, want 1.1", got)
	}
	if got := dm.PowerFactor(0, 11); got != 0.5 {
		t.Errorf("PowerFactor at max = %v, want 0.5", got)
	}

	var nilManager *DifficultyManager
	if nilManager.IsEnabled() {
		t.Error("nil manager reports enabled")
	}
}
