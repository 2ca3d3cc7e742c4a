// matrixpong plays two-player pong on a 64x32 HUB75 LED matrix, or on a
// virtual matrix in the terminal.
//
// Usage:
//
//	matrixpong run         - Drive the panel, sliders and buttons over GPIO
//	matrixpong play        - Play on a virtual matrix in the terminal
//	matrixpong serve       - Attract-mode game for SSH spectators
//	matrixpong history     - Browse the point log
//	matrixpong config      - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Configuration file
//	--difficulty <name>   - easy, normal, hard or fixed
//	--seed <value>        - RNG seed (0 = from hardware noise or time)
//	--log-level <level>   - debug, info, warn or error
//	--db <path>           - Point log database (empty = disabled)
//	--metrics <addr>      - Prometheus listener address (empty = disabled)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagLogLevel   string
	flagDBPath     string
	flagMetrics    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "matrixpong",
	Short: "Pong for a 64x32 RGB LED matrix",
	Long: `matrixpong is two-player pong for a 64x32 HUB75 LED matrix driven
straight from GPIO, with slide potentiometers as paddles and three buttons
(reset, start/pause, practice).

Available commands:
  run      - Drive the real panel
  play     - Virtual matrix in the terminal
  serve    - Attract-mode game for SSH spectators
  history  - Browse the point log
  config   - Print the effective configuration

Examples:
  matrixpong run --metrics :9100
  matrixpong play --difficulty hard
  matrixpong play --db ~/.matrixpong/points.db
  matrixpong serve
  matrixpong history --db ~/.matrixpong/points.db`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from hardware noise or time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to point log database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagMetrics, "metrics", "", "Prometheus listen address (overrides config)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
