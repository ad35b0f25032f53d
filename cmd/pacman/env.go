package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/platform/tui"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

// stderrLogger is used by commands that keep the normal screen.
func stderrLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel,
	})
}

// loadConfig reads pacman.yaml and applies the --difficulty preset.
func loadConfig() (config.PacmanConfig, error) {
	cfg, err := config.LoadPacman(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		switch preset {
		case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
			config.ApplyPacmanPreset(&cfg, preset)
		default:
			return cfg, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
	}
	return cfg, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// gameSetup hands configuration, score store and logger to new games.
func gameSetup(cfg config.PacmanConfig, store *storage.Store, logger *log.Logger) tui.GameSetup {
	return func(g registry.Game) {
		env := pacman.Env{Config: &cfg, Logger: logger}
		if store != nil {
			env.Store = store
		}
		pacman.Configure(g, env)
	}
}

// openTerminalHost prepares what the full-screen commands share: the
// config, a file logger and the score store. The returned func releases them.
func openTerminalHost() (config.PacmanConfig, *log.Logger, *storage.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, nil, nil, err
	}

	logger, logFile, err := tui.OpenLogFile(tui.DefaultLogPath, logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, logging disabled\n", err)
		logger = log.New(io.Discard)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "db", flagDBPath, "err", err)
		store = nil
	}

	logger.Info("starting", "db", flagDBPath, "config", flagConfig, "difficulty", flagDifficulty)
	cleanup := func() {
		if store != nil {
			store.Close()
		}
		if logFile != nil {
			logFile.Close()
		}
	}
	return cfg, logger, store, cleanup, nil
}
