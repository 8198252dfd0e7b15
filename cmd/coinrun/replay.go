package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coinrun/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Verify a recorded run",
	Long: `Re-simulate a recorded run from its seed, config snapshot and inputs,
and check that it ends with the stored score. Any unique ID prefix works.

Exits with status 1 when the replay does not match.

Examples:
  coinrun replay 3f2a9c1e`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening run journal: %v", err)
	}
	defer store.Close()

	rec, err := store.LoadRun(args[0])
	if err != nil {
		store.Close()
		exitErr("%v", err)
	}

	run, err := rec.Run()
	if err != nil {
		store.Close()
		exitErr("%v", err)
	}

	fmt.Printf("Run %s\n", rec.ID)
	fmt.Printf("  Variant:  %s\n", rec.Variant)
	fmt.Printf("  Player:   %s\n", rec.Player)
	fmt.Printf("  Seed:     %d\n", rec.Seed)
	fmt.Printf("  Recorded: score %d, %d frames, ended by %s\n", rec.Score, rec.Frames, rec.EndReason)

	got, ok := run.Verify()
	fmt.Printf("  Replayed: score %d, %d frames, ended by %s\n", got.Score, got.Stats.Frames, got.EndReason)

	if !ok {
		store.Close()
		fmt.Fprintln(os.Stderr, "Error: replay does not match the recorded run")
		os.Exit(1)
	}
	fmt.Println("Replay OK")
}
