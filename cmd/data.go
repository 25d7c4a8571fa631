package cmd

import (
	"fmt"

	"nextstep/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataSubjects string
	flagDataLog      string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import subjects and sessions from JSON files, replacing the database",
	RunE:  runDataImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the database to JSON files",
	RunE:  runDataExport,
}

func init() {
	for _, c := range []*cobra.Command{importCmd, exportCmd} {
		c.Flags().StringVar(&flagDataSubjects, "subjects", "study_data.json", "Subjects JSON file")
		c.Flags().StringVar(&flagDataLog, "log", "study_log.json", "Session log JSON file")
	}
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func runDataImport(_ *cobra.Command, _ []string) error {
	st, err := store.ImportJSON(flagDataSubjects, flagDataLog)
	if err != nil {
		return fmt.Errorf("importing: %w", err)
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.ReplaceState(st); err != nil {
		return fmt.Errorf("writing database: %w", err)
	}
	say("\n  Imported %d subjects and %d sessions.\n", len(st.Subjects), len(st.Log))
	return nil
}

func runDataExport(_ *cobra.Command, _ []string) error {
	s, _, st, err := loadState()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := store.ExportJSON(st, flagDataSubjects, flagDataLog); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	say("\n  Wrote %s and %s.\n", flagDataSubjects, flagDataLog)
	return nil
}
