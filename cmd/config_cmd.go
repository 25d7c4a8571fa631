// Package cmd implements the nextstep CLI commands.
package cmd

import (
	"fmt"

	"nextstep/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default session:   %d mins\n", cfg.General.DefaultSessionMins)
	fmt.Printf("    Sessions limit:    %d\n", cfg.General.SessionsLimit)
	if cfg.General.DataDir != "" {
		fmt.Printf("    Data directory:    %s\n", cfg.General.DataDir)
	}
	fmt.Printf("    Database:          %s\n", config.DBPath(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  Run `nextstep setup` to reconfigure.")
	return nil
}
