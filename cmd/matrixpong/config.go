package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/matrix-pong/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the search path, the difficulty preset
and the command-line overrides have been applied. The output is valid
input for --config.

Search order:
  --config <path>
  ~/.matrixpong/config.yaml
  ./configs/matrixpong.yaml
  built-in defaults

Examples:
  matrixpong config > ~/.matrixpong/config.yaml
  matrixpong config --difficulty hard`,
	Run: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, source, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("# source: %s\n", source)
	os.Stdout.Write(data)
}
