package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"time"

	"nextstep/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagLogSubject string
	flagLogMins    int
	flagLogTask    string
	flagLogRating  int
	flagLogConf    int
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a completed study session",
	RunE:  runLog,
}

func init() {
	logCmd.Flags().StringVarP(&flagLogSubject, "subject", "s", "", "Subject studied")
	logCmd.Flags().IntVarP(&flagLogMins, "minutes", "t", 0, "Session length in minutes")
	logCmd.Flags().StringVar(&flagLogTask, "task", "", "Task type (e.g. flashcards, past paper)")
	logCmd.Flags().IntVar(&flagLogRating, "effectiveness", 0, "Effectiveness rating (1-10)")
	logCmd.Flags().IntVar(&flagLogConf, "confidence", 0, "New confidence for the subject (1-10)")
	rootCmd.AddCommand(logCmd)
}

func runLog(_ *cobra.Command, _ []string) error {
	s, cfg, st, err := loadState()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if len(st.Subjects) == 0 {
		fmt.Println("\n  No subjects yet. Run `nextstep subjects add <name>` first.")
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	in := pipeline.SessionInput{
		Subject:       flagLogSubject,
		DurationMins:  flagLogMins,
		TaskType:      flagLogTask,
		Effectiveness: flagLogRating,
	}
	if in.Subject == "" {
		fmt.Println("\n  Subjects:")
		for _, name := range st.SubjectNames() {
			fmt.Printf("    - %s\n", name)
		}
		fmt.Println()
		in.Subject = promptLine(reader, "Which subject did you study?", "")
	}
	if in.DurationMins <= 0 {
		in.DurationMins = promptInt(reader, "How long was the session? (minutes)", cfg.General.DefaultSessionMins)
	}
	if in.TaskType == "" {
		in.TaskType = promptLine(reader, "What did you work on?", "revision")
	}
	if in.Effectiveness == 0 {
		in.Effectiveness = promptInt(reader, "How effective was it? (1-10)", 5)
	}
	if flagLogConf != 0 {
		conf := flagLogConf
		in.NewConfidence = &conf
	} else if flagLogSubject == "" {
		// Only prompt in interactive runs.
		if confStr := promptLine(reader, "Update your confidence? (1-10 or leave blank)", ""); confStr != "" {
			conf, err := strconv.Atoi(confStr)
			if err != nil {
				return &pipeline.ValidationError{Field: "confidence", Reason: "must be a number between 1 and 10"}
			}
			in.NewConfidence = &conf
		}
	}

	rec, err := pipeline.RecordSession(st, in, time.Now())
	if err != nil {
		return err
	}
	if err := s.AppendSession(rec); err != nil {
		return err
	}
	if in.NewConfidence != nil {
		if err := s.UpsertSubject(*st.Subjects[rec.Subject]); err != nil {
			return err
		}
	}
	say("\n  Logged %d mins of %s for %s.\n", rec.DurationMins, rec.TaskType, rec.Subject)
	return nil
}
