// flapper is a Flappy Bird-style avoidance game for the terminal, the
// desktop and SSH.
//
// Usage:
//
//	flapper play             - Play in the terminal
//	flapper window           - Play in an 800x600 desktop window
//	flapper serve            - Start SSH server for remote play
//	flapper rounds           - Show the round journal
//	flapper config           - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gap placement
//	--db <path>          - Set round journal path (default: ~/.flapper/rounds.db)
//	--config <path>      - Load game configuration from a YAML file
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/games/flappy"
	"github.com/vovakirdan/flapper/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flapper",
	Short: "Flapper - keep the bird in the air and out of the pipes",
	Long: `Flapper is a Flappy Bird-style avoidance game. Jump to fight gravity,
fly through the gaps between scrolling pipes and stay on screen.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  rounds   - View the round journal
  config   - Print the effective configuration

Examples:
  flapper play
  flapper window --seed 42
  flapper serve --ssh :2222
  flapper rounds --limit 20
  flapper config --config ./my-flappy.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flapper/rounds.db", "Path to round journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(configCmd)
}

// fatal prints an error and exits with status 1.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the logger for a command. Logs go to --log-file when set,
// otherwise to fallback. The returned func releases the log file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w := fallback
	release := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		release = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, release, nil
}

// runtimeConfig builds the host parameters from the global flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// newGame loads the configuration and creates a game journaled under host.
// The returned store is nil when the journal cannot be opened; the game
// works without it.
func newGame(rt core.RuntimeConfig, host string, logger *log.Logger) (*flappy.Game, *storage.Store, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	game := flappy.New(cfg, rt, logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open round journal", "error", err)
		return game, nil, nil
	}
	game.Simulation().OnRoundEnd(store.Recorder(host, logger))
	return game, store, nil
}
