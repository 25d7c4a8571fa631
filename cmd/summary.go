package cmd

import (
	"fmt"
	"sort"
	"time"

	"nextstep/internal/cli"
	"nextstep/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Study summary: totals, per-subject breakdown, and streak",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	s, _, st, err := loadState()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	now := time.Now()

	fmt.Println()
	fmt.Println(cli.RenderTitle("NEXTSTEP  Study Summary"))
	fmt.Println()

	if len(st.Log) == 0 {
		fmt.Println("  No sessions logged yet.")
		fmt.Println("  Run `nextstep log` after your next study session.")
	} else {
		stats := pipeline.Aggregate(st.Log, now)

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Sessions", cli.FormatNumber(int64(stats.TotalSessions))},
				{"Time studied", cli.FormatMinutes(stats.TotalMinutes)},
				{"Active days", cli.FormatNumber(int64(stats.ActiveDays))},
				{"Avg session", fmt.Sprintf("%.0fm", stats.AvgSessionMins)},
				{"Streak", cli.FormatStreak(stats.StreakDays)},
			},
		}))
		fmt.Println()

		rows := make([][]string, 0, len(stats.PerSubject))
		for _, name := range st.SubjectNames() {
			ss, ok := stats.PerSubject[name]
			if !ok {
				continue
			}
			rows = append(rows, []string{
				cli.Truncate(name, 18),
				cli.FormatNumber(int64(ss.Sessions)),
				cli.FormatMinutes(ss.TotalMinutes),
				fmt.Sprintf("%.1f", ss.AvgEffectiveness),
			})
		}
		// Orphaned subjects (logged, then deleted) still show in the breakdown.
		var orphans []string
		for subject := range stats.PerSubject {
			if _, ok := st.Subjects[subject]; !ok {
				orphans = append(orphans, subject)
			}
		}
		sort.Strings(orphans)
		for _, subject := range orphans {
			ss := stats.PerSubject[subject]
			rows = append(rows, []string{
				cli.Truncate(subject, 18) + " *",
				cli.FormatNumber(int64(ss.Sessions)),
				cli.FormatMinutes(ss.TotalMinutes),
				fmt.Sprintf("%.1f", ss.AvgEffectiveness),
			})
		}
		if len(rows) > 0 {
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   "By Subject",
				Headers: []string{"Subject", "Sessions", "Time", "Avg Eff."},
				Rows:    rows,
			}))
			fmt.Println()
		}
	}

	if len(st.Subjects) > 0 {
		rows := make([][]string, 0, len(st.Subjects))
		for _, name := range st.SubjectNames() {
			subj := st.Subjects[name]
			exam := "not set"
			if !subj.ExamDate.IsZero() {
				exam = fmt.Sprintf("%s (%s)", subj.ExamDate.Format("Jan 02"),
					cli.FormatDaysLeft(subj.DaysUntilExam(now)))
			}
			rows = append(rows, []string{
				cli.Truncate(name, 18),
				cli.FormatConfidence(subj.Confidence),
				exam,
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Subjects",
			Headers: []string{"Subject", "Confidence", "Exam"},
			Rows:    rows,
		}))
	}

	return nil
}
