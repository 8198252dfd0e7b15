package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coinrun/internal/config"
)

var (
	flagConfigPath     string
	flagConfigDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the runner configuration play would use, as YAML.

Search order: --config, ~/.coinrun/configs/runner.yaml, ./configs/runner.yaml,
then the built-in defaults. Redirect the output to start a custom config.

Examples:
  coinrun config
  coinrun config --defaults > ~/.coinrun/configs/runner.yaml
  coinrun config --config ./my-runner.yaml`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigPath, "config", "", "Path to custom runner config YAML")
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, source, err := config.LoadSource(flagConfigPath)
	if err != nil {
		exitErr("%v", err)
	}
	data, err := config.Encode(cfg)
	if err != nil {
		exitErr("%v", err)
	}

	switch path := config.ResolvePath(flagConfigPath); {
	case source != "":
		fmt.Fprintf(os.Stderr, "# loaded from %s\n", source)
	case path != "":
		fmt.Fprintf(os.Stderr, "# %s is invalid, using built-in defaults\n", path)
	default:
		fmt.Fprintln(os.Stderr, "# built-in defaults")
	}
	os.Stdout.Write(data)
}
