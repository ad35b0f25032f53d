package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/platform/tui"
	"github.com/vovakirdan/tui-pacman/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: pacman).

Controls:
  Arrows/WASD  - Steer Pac-Man
  5            - Insert coin
  Enter/Space  - Start game
  Tab          - Options (XXL)
  Ctrl+A       - Toggle autopilot
  P            - Pause
  Esc/B        - Back (when paused or after game over)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, more lives
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, fewer lives
  fixed  - No progression, arcade speeds

Examples:
  pacman play
  pacman play pacman_xxl
  pacman play --difficulty hard
  pacman play --config ./my-pacman.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "pacman"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'pacman list' to see available variants", gameID)
	}

	cfg, logger, store, cleanup, err := openTerminalHost()
	if err != nil {
		return err
	}
	defer cleanup()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	gameSetup(cfg, store, logger)(game)

	_, err = tui.Run(game, store, runtimeConfig(), logger)
	return err
}
