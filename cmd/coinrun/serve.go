package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coinrun/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeVar    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the coinrun SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own run of the chosen variant.
Finished runs are recorded in the server's journal under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.coinrun/host_key

Examples:
  coinrun serve                           # Listen on :23234 with auto-generated key
  coinrun serve --ssh :2222               # Listen on port 2222
  coinrun serve --variant spaced          # Serve the spaced-platform variant
  coinrun serve --db ./runs.db            # Use specific journal
  coinrun serve --config ./runner.yaml    # Custom config for every session

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeVar, "variant", "classic", "Variant every session plays")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	applyConfigFlags()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.Variant = flagServeVar
	cfg.TickRate = flagFPS
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	logger := newLogger(os.Stderr, "coinrun-ssh")

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		exitErr("creating server: %v", err)
	}

	fmt.Printf("Starting coinrun SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		exitErr("server: %v", err)
	}
}
