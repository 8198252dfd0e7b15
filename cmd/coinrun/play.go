package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/coinrun/internal/config"
	"github.com/vovakirdan/coinrun/internal/core"
	"github.com/vovakirdan/coinrun/internal/platform/tui"
	"github.com/vovakirdan/coinrun/internal/registry"
	"github.com/vovakirdan/coinrun/internal/runner"
	"github.com/vovakirdan/coinrun/internal/storage"
)

var (
	flagConfig      string
	flagDifficulty  string
	flagWatchConfig bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a run",
	Long: `Start a run of the given variant (default: classic).

Controls:
  Left/A, Right/D  - Move
  Space/Up/W       - Jump
  Enter            - Start
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start, gentler speed ramp
  normal - Config as written
  hard   - Faster start, enemies spawn sooner
  fixed  - No speed or spawn ramp

Examples:
  coinrun play
  coinrun play spaced
  coinrun play --difficulty hard
  coinrun play --config ./my-runner.yaml --watch-config`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWatchConfig, "watch-config", false, "Reload the config file when it changes")
}

func runPlay(cmd *cobra.Command, args []string) {
	variant := runner.VariantClassic
	if len(args) > 0 {
		variant = args[0]
	}

	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'coinrun list' to see available variants.")
		os.Exit(1)
	}

	applyConfigFlags()

	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	} else {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger := newLogger(logOut, "coinrun")

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   localPlayer(),
	}

	game, err := registry.Create(variant)
	if err != nil {
		exitErr("creating game: %v", err)
	}

	opts := tui.Options{Logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		logger.Warn("run journal unavailable", "path", flagDBPath, "error", err)
	} else {
		opts.Store = store
	}

	if flagWatchConfig {
		opts.Watcher = startWatcher(logger)
	}

	runErr := tui.Run(game, cfg, opts)

	if opts.Watcher != nil {
		opts.Watcher.Close()
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitErr("running game: %v", runErr)
	}
}

// applyConfigFlags checks --config and --difficulty and hands them to the
// runner. A broken custom config is reported here rather than silently
// replaced by the defaults.
func applyConfigFlags() {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		exitErr("%v", err)
	}
	if flagConfig != "" {
		if _, err := config.Load(flagConfig); err != nil {
			exitErr("%v", err)
		}
	}
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)
}

// startWatcher watches the config file play would load, or returns nil.
func startWatcher(logger *log.Logger) *config.Watcher {
	path := config.ResolvePath(flagConfig)
	if path == "" {
		fmt.Fprintln(os.Stderr, "Warning: no config file to watch, using embedded defaults")
		return nil
	}
	w, err := config.Watch(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return nil
	}
	logger.Info("watching config", "path", w.Path())
	return w
}

// localPlayer names the person at the terminal.
func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
