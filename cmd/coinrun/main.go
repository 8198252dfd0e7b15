// coinrun is a side-scrolling coin runner for the terminal.
//
// Usage:
//
//	coinrun list             - List game variants
//	coinrun play [variant]   - Play a run
//	coinrun serve            - Start SSH server for remote play
//	coinrun runs             - Browse the run journal
//	coinrun replay <id>      - Re-simulate a recorded run and check its score
//	coinrun config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set journal path (default: ~/.coinrun/runs.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import the runner to register its variants
	_ "github.com/vovakirdan/coinrun/internal/runner"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coinrun",
	Short: "Coin Runner - a side-scrolling platform runner in your terminal",
	Long: `Coin Runner scrolls platforms, coins and enemies toward you.
Stay on the platforms, grab the coins and dodge the enemies.

Available commands:
  list     - Show game variants
  play     - Play a run
  serve    - Start SSH server for remote play
  runs     - Browse recorded runs
  replay   - Verify a recorded run
  config   - Print the effective configuration

Examples:
  coinrun play
  coinrun play spaced --difficulty hard
  coinrun serve --ssh :2222
  coinrun replay 3f2a9c1e`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.coinrun/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile opens ~/.coinrun/coinrun.log for appending. The terminal is
// owned by the game while playing, so play logs go to a file.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".coinrun")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "coinrun.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// exitErr prints err the way every command reports failures and exits.
func exitErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
