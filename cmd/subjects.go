package cmd

import (
	"fmt"
	"time"

	"nextstep/internal/cli"
	"nextstep/internal/pipeline"

	"github.com/spf13/cobra"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List and manage subjects",
	RunE:  runSubjectsList,
}

var subjectsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectsAdd,
}

var subjectsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a subject (its logged sessions are kept)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectsRemove,
}

var subjectsSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Set confidence and/or exam date for a subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectsSet,
}

var (
	flagSetConfidence int
	flagSetExamDate   string
)

func init() {
	subjectsSetCmd.Flags().IntVarP(&flagSetConfidence, "confidence", "c", 0, "Confidence rating (1-10)")
	subjectsSetCmd.Flags().StringVarP(&flagSetExamDate, "exam", "x", "", "Exam date (YYYY-MM-DD)")
	subjectsCmd.AddCommand(subjectsAddCmd)
	subjectsCmd.AddCommand(subjectsRemoveCmd)
	subjectsCmd.AddCommand(subjectsSetCmd)
	rootCmd.AddCommand(subjectsCmd)
}

func runSubjectsList(_ *cobra.Command, _ []string) error {
	s, _, st, err := loadState()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if len(st.Subjects) == 0 {
		fmt.Println("\n  No subjects yet. Run `nextstep subjects add <name>` first.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SUBJECTS"))
	fmt.Println()

	now := time.Now()
	for _, name := range st.SubjectNames() {
		sub := st.Subjects[name]
		exam := "exam not set"
		if !sub.ExamDate.IsZero() {
			exam = fmt.Sprintf("%s, %s", cli.FormatDate(sub.ExamDate), cli.FormatDaysLeft(sub.DaysUntilExam(now)))
		}
		fmt.Printf("  %-20s %s %-8s  %s\n",
			cli.Truncate(name, 20),
			cli.RenderMeter(sub.Confidence, 10, 10),
			cli.FormatConfidence(sub.Confidence),
			exam)
	}
	fmt.Println()

	return nil
}

func runSubjectsAdd(_ *cobra.Command, args []string) error {
	s, _, st, err := loadState()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	sub, err := pipeline.AddSubject(st, args[0])
	if err != nil {
		return err
	}
	if err := s.UpsertSubject(*sub); err != nil {
		return err
	}
	say("\n  Added %s. Run `nextstep setup` to enter confidence and exam date.\n", sub.Name)
	return nil
}

func runSubjectsRemove(_ *cobra.Command, args []string) error {
	s, _, st, err := loadState()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := pipeline.RemoveSubject(st, args[0]); err != nil {
		return err
	}
	if err := s.DeleteSubject(args[0]); err != nil {
		return err
	}
	say("\n  Removed %s. Logged sessions were kept.\n", args[0])
	return nil
}

func runSubjectsSet(_ *cobra.Command, args []string) error {
	s, _, st, err := loadState()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	name := args[0]
	if flagSetConfidence == 0 && flagSetExamDate == "" {
		return &pipeline.ValidationError{Field: "flags", Reason: "provide --confidence and/or --exam"}
	}
	if flagSetConfidence != 0 {
		if err := pipeline.SetConfidence(st, name, flagSetConfidence); err != nil {
			return err
		}
	}
	if flagSetExamDate != "" {
		exam, err := time.ParseInLocation("2006-01-02", flagSetExamDate, time.Local)
		if err != nil {
			return &pipeline.ValidationError{Field: "exam_date", Reason: "must be YYYY-MM-DD"}
		}
		if err := pipeline.SetExamDate(st, name, exam); err != nil {
			return err
		}
	}
	if err := s.UpsertSubject(*st.Subjects[name]); err != nil {
		return err
	}
	say("\n  Updated %s.\n", name)
	return nil
}
