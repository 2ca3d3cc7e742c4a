package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/matrix-pong/internal/platform/tui"
	"github.com/vovakirdan/matrix-pong/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the point log",
	Long: `Show the matches and points recorded in the point log.

The log is only written when a database is configured (storage.path or
--db). Tab switches between matches and single points.

Examples:
  matrixpong history --db ~/.matrixpong/points.db
  matrixpong history --plain --limit 20
  matrixpong history --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the log instead of opening the browser")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Rows to print with --plain")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all logged points and matches")
}

func runHistory(_ *cobra.Command, _ []string) {
	if err := showHistory(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showHistory() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Storage.Path == "" {
		return errors.New("no point log configured, pass --db or set storage.path")
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearPoints(); err != nil {
			return err
		}
		fmt.Println("Point log cleared.")
		return nil
	}

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)
	}
	return printHistory(store, flagLimit)
}

// printHistory prints the most recent matches as plain text.
func printHistory(store *storage.Store, limit int) error {
	matches, err := store.RecentMatches(limit)
	if err != nil {
		return err
	}
	totals, err := store.Totals()
	if err != nil {
		return err
	}

	fmt.Println("Matrix Pong - Recent Matches")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No points logged yet.")
		return nil
	}

	fmt.Printf("  %-6s  %-6s  %-16s  %-7s  %-6s  %s\n", "Match", "Source", "Started", "Score", "Points", "Rally")
	fmt.Printf("  %-6s  %-6s  %-16s  %-7s  %-6s  %s\n", "-----", "------", "-------", "-----", "------", "-----")
	for _, m := range matches {
		fmt.Printf("  %-6d  %-6s  %-16s  %-7s  %-6d  %d\n",
			m.ID, m.Source, m.StartedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d-%d", m.LeftScore, m.RightScore), m.Points, m.LongestHit)
	}

	fmt.Println()
	fmt.Println(tui.TotalsLine(totals))
	return nil
}
