package cmd

import (
	"fmt"
	"strconv"
	"time"

	"nextstep/internal/cli"
	"nextstep/internal/pipeline"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Session history with details",
	RunE:  runSessions,
}

var (
	sessionsLimit   int
	sessionsSubject string
	sessionsDays    int
)

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "l", 0, "Number of sessions to show (0 = config default)")
	sessionsCmd.Flags().StringVarP(&sessionsSubject, "subject", "s", "", "Only show sessions for this subject")
	sessionsCmd.Flags().IntVarP(&sessionsDays, "days", "d", 0, "Only show sessions from the last N days")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
	s, cfg, st, err := loadState()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if len(st.Log) == 0 {
		fmt.Println("\n  No sessions logged yet.")
		return nil
	}

	records := st.Log
	if sessionsSubject != "" {
		records = pipeline.FilterBySubject(records, sessionsSubject)
	}
	titleRange := "All time"
	if sessionsDays > 0 {
		since := time.Now().AddDate(0, 0, -sessionsDays)
		records = pipeline.FilterSince(records, since)
		titleRange = fmt.Sprintf("Last %dd", sessionsDays)
	}
	if len(records) == 0 {
		fmt.Println("\n  No sessions match the selected filters.")
		return nil
	}

	records = pipeline.SortByTimeDesc(records)

	limit := sessionsLimit
	if limit <= 0 {
		limit = cfg.General.SessionsLimit
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SESSIONS  %s (showing %d)", titleRange, len(records))))
	fmt.Println()

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			cli.FormatDateTime(rec.Timestamp),
			cli.Truncate(rec.Subject, 14),
			cli.Truncate(rec.TaskType, 18),
			cli.FormatMinutes(rec.DurationMins),
			strconv.Itoa(rec.Effectiveness) + "/10",
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"When", "Subject", "Task", "Length", "Rating"},
		Rows:    rows,
	}))

	return nil
}
