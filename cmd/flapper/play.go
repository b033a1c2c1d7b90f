package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flapper/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start playing in the terminal. The 800x600 world is scaled to fit the
terminal window.

Controls:
  Space/Up/W - Jump
  Ctrl+S     - Save a text screenshot to ~/.flapper/screenshots
  Q/Ctrl+C   - Quit

After a crash the "Game Over!" message is held for two seconds and the next
round starts on its own.

The terminal is taken over by the game, so logs are discarded unless
--log-file is given.

Examples:
  flapper play
  flapper play --seed 42
  flapper play --config ./my-flappy.yaml --log-file flapper.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, release, err := newLogger(io.Discard, "flapper")
	if err != nil {
		fatal("%v", err)
	}
	defer release()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rt := runtimeConfig(width, height)

	game, store, err := newGame(rt, "terminal", logger)
	if err != nil {
		fatal("%v", err)
	}

	runErr := tui.Run(game, rt, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		release()
		fatal("running game: %v", runErr)
	}
}
