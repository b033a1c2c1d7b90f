package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays its own game, sized to the client's terminal.
Every finished round is appended to the server's round journal (--db).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flapper/host_key

Examples:
  flapper serve                           # Listen on :23234 with auto-generated key
  flapper serve --ssh :2222               # Listen on port 2222
  flapper serve --host-key ./my_host_key  # Use specific host key
  flapper serve --db ./rounds.db          # Use specific journal

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, release, err := newLogger(os.Stderr, "flapper-ssh")
	if err != nil {
		fatal("%v", err)
	}
	defer release()

	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fatal("%v", err)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Game = gameCfg
	cfg.Seed = flagSeed
	cfg.Logger = logger
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fatal("creating server: %v", err)
	}

	fmt.Printf("Starting flapper SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		release()
		fatal("server: %v", err)
	}
}
