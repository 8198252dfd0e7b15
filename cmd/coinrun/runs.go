package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/coinrun/internal/platform/tui"
	"github.com/vovakirdan/coinrun/internal/storage"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse the run journal",
	Long: `Browse recorded runs, newest first.

Controls:
  Up/Down      - Move
  Tab/S-Tab    - Filter by variant
  Enter/V      - Replay the run and check its score
  X            - Delete the run
  Q/Esc        - Quit

Examples:
  coinrun runs
  coinrun runs --db ./runs.db`,
	Run: runRuns,
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening run journal: %v", err)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunRuns(store, width, height); err != nil {
		store.Close()
		exitErr("%v", err)
	}
}
