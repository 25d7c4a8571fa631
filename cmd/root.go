// Package cmd implements the nextstep CLI commands.
package cmd

import (
	"fmt"
	"os"

	"nextstep/internal/config"
	"nextstep/internal/model"
	"nextstep/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDBPath string
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "nextstep",
	Short: "Personal study-session tracker",
	Long:  "Track study sessions per subject, keep a streak, and get a priority-ranked suggestion for what to study next.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite database (default: XDG data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// say prints a confirmation line unless --quiet is set.
func say(format string, args ...interface{}) {
	if flagQuiet {
		return
	}
	fmt.Printf(format, args...)
}

// openStore opens the database using the flag override or the configured
// data directory. Callers own the returned store and must close it.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}

	path := flagDBPath
	if path == "" {
		path = config.DBPath(cfg)
	}

	s, err := store.Open(path)
	if err != nil {
		return nil, cfg, fmt.Errorf("opening database: %w", err)
	}
	return s, cfg, nil
}

// loadState is the shared load path: open the store and read everything.
func loadState() (*store.Store, config.Config, *model.State, error) {
	s, cfg, err := openStore()
	if err != nil {
		return nil, cfg, nil, err
	}

	st, err := s.LoadState()
	if err != nil {
		_ = s.Close()
		return nil, cfg, nil, fmt.Errorf("loading data: %w", err)
	}
	return s, cfg, st, nil
}
