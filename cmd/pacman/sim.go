package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/event"
	"github.com/vovakirdan/tui-pacman/internal/game"
	"github.com/vovakirdan/tui-pacman/internal/maps"
	"github.com/vovakirdan/tui-pacman/internal/sim"
)

var (
	flagSimTicks    int64
	flagSimPlay     bool
	flagSimVariant  string
	flagSimKinds    []string
	flagSimGameOver bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless and print the event log",
	Long: `Run the simulation without a terminal and print one line per event.
Two runs with the same --seed print the same log.

Examples:
  pacman sim --ticks 3600
  pacman sim --play --seed 42 --until-game-over
  pacman sim --play --kinds GHOST_EATEN,PAC_DYING`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().Int64Var(&flagSimTicks, "ticks", 60*60, "Number of ticks to simulate")
	simCmd.Flags().BoolVar(&flagSimPlay, "play", false, "Insert a coin and play on autopilot")
	simCmd.Flags().StringVar(&flagSimVariant, "variant", game.Arcade.ID, "Variant to simulate")
	simCmd.Flags().StringSliceVar(&flagSimKinds, "kinds", nil, "Only print these event kinds")
	simCmd.Flags().BoolVar(&flagSimGameOver, "until-game-over", false, "Stop when the game is over")
}

func runSim(cmd *cobra.Command, _ []string) error {
	var variant game.Variant
	found := false
	for _, v := range game.Variants() {
		if v.ID == flagSimVariant {
			variant, found = v, true
		}
	}
	if !found {
		return fmt.Errorf("unknown variant %q", flagSimVariant)
	}

	kinds, err := parseKinds(flagSimKinds)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := stderrLogger("pacman-sim")

	opts := []game.Option{game.WithLogger(logger), game.WithSeed(flagSeed)}
	if variant.CustomMaps {
		lib, err := maps.NewLibrary(cfg.Maps.CustomDir, logger)
		if err != nil {
			return err
		}
		opts = append(opts, game.WithMaps(game.LibraryMaps{Library: lib}))
	}
	c := game.NewController(variant, cfg, opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := sim.Run(ctx, c, cmd.OutOrStdout(), sim.Options{
		Ticks:          flagSimTicks,
		Play:           flagSimPlay,
		StopAtGameOver: flagSimGameOver,
		Kinds:          kinds,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	s := res.Snapshot
	fmt.Fprintf(cmd.ErrOrStderr(), "ticks=%d events=%d state=%s level=%d points=%d lives=%d food=%d\n",
		res.Ticks, res.Events, s.State, s.Level, s.Points, s.Lives, s.UneatenFood)
	return nil
}

// parseKinds maps event kind names to kinds.
func parseKinds(names []string) ([]event.Kind, error) {
	var kinds []event.Kind
	for _, name := range names {
		name = strings.ToUpper(strings.TrimSpace(name))
		k, ok := event.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown event kind %q", name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
