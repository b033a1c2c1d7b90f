package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/platform/gui"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open an 800x600 window titled "Flappy Bird" and play there.

Controls:
  Space/Up/W - Jump
  Esc/Q      - Quit (closing the window works too)

Examples:
  flapper window
  flapper window --fps 120 --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func runWindow(_ *cobra.Command, _ []string) {
	logger, release, err := newLogger(os.Stderr, "flapper")
	if err != nil {
		fatal("%v", err)
	}
	defer release()

	rt := runtimeConfig(0, 0)
	game, store, err := newGame(rt, "window", logger)
	if err != nil {
		fatal("%v", err)
	}

	runErr := gui.Run(game, gui.Options{Title: game.Title(), TickRate: rt.TickRate}, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		release()
		fatal("running window: %v", runErr)
	}
}
