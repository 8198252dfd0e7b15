package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coinrun/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game variants",
	Long:  `Shows every registered variant of the runner.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Description)
	}

	fmt.Println()
	fmt.Println("Run 'coinrun play <id>' to play.")
}
