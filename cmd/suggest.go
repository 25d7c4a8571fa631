package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"nextstep/internal/cli"
	"nextstep/internal/model"
	"nextstep/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagSuggestMins   int
	flagSuggestEnergy string
	flagSuggestYes    bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Instant mode: get a priority-ranked study suggestion",
	Long: "Ranks subjects by exam urgency, confidence (with decay), and recent\n" +
		"repetition, then walks the ranking until you accept one.",
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVarP(&flagSuggestMins, "minutes", "t", 0, "Minutes available")
	suggestCmd.Flags().StringVarP(&flagSuggestEnergy, "energy", "e", "", "Energy level (low/medium/high)")
	suggestCmd.Flags().BoolVarP(&flagSuggestYes, "yes", "y", false, "Accept the top-ranked subject without asking")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(_ *cobra.Command, _ []string) error {
	s, cfg, st, err := loadState()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if len(st.Subjects) == 0 {
		fmt.Println("\n  No subjects yet. Run `nextstep subjects add <name>` first.")
		return nil
	}

	now := time.Now()
	ranked, err := pipeline.Rank(st, now, now)
	if err != nil {
		var incomplete *pipeline.IncompleteSetupError
		if errors.As(err, &incomplete) {
			fmt.Printf("\n  %v\n", incomplete)
			fmt.Println("  Run `nextstep setup` to enter confidence and exam dates.")
			return nil
		}
		return err
	}

	reader := bufio.NewReader(os.Stdin)

	mins := flagSuggestMins
	if mins <= 0 {
		mins = promptInt(reader, "How many minutes do you have?", cfg.General.DefaultSessionMins)
	}

	energyStr := flagSuggestEnergy
	if energyStr == "" {
		energyStr = promptLine(reader, "Energy level? (low / medium / high)", "medium")
	}
	energy, err := pipeline.ParseEnergy(energyStr)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("INSTANT MODE"))
	fmt.Println()

	rows := make([][]string, 0, len(ranked))
	for i, sc := range ranked {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			cli.Truncate(sc.Subject, 18),
			cli.FormatScore(sc.Score),
			cli.FormatDaysLeft(sc.DaysLeft),
			strconv.Itoa(sc.RecentSessions),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Subject", "Score", "Exam", "Recent"},
		Rows:    rows,
	}))
	fmt.Println()

	rejectedAll := true
	chosen, _ := pipeline.Select(ranked, func(sc model.SubjectScore) bool {
		if flagSuggestYes {
			rejectedAll = false
			return true
		}
		answer := promptLine(reader, fmt.Sprintf("Revise %s? (yes/no)", sc.Subject), "")
		if strings.HasPrefix(strings.ToLower(answer), "y") {
			rejectedAll = false
			return true
		}
		return false
	})
	if rejectedAll {
		fmt.Printf("\n  You said no to everything. Defaulting to the top priority: %s\n", chosen.Subject)
	}

	task := pipeline.TaskForEnergy(energy)
	fmt.Println()
	fmt.Printf("  You'll be revising: %s\n", chosen.Subject)
	fmt.Printf("  Suggested task: %s\n", task)
	fmt.Printf("  Time available: %d mins\n", mins)
	fmt.Println()

	done := promptLine(reader, "Did you complete the session? (yes/no)", "no")
	if !strings.HasPrefix(strings.ToLower(done), "y") {
		fmt.Println("  Session not logged.")
		return nil
	}

	in := pipeline.SessionInput{
		Subject:      chosen.Subject,
		DurationMins: mins,
		TaskType:     task,
	}
	in.Effectiveness = promptInt(reader, "How effective was it? (1-10)", 5)

	if confStr := promptLine(reader, "Update your confidence? (1-10 or leave blank)", ""); confStr != "" {
		conf, err := strconv.Atoi(confStr)
		if err != nil {
			return &pipeline.ValidationError{Field: "confidence", Reason: "must be a number between 1 and 10"}
		}
		in.NewConfidence = &conf
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
		fmt.Println("  Confidence updated.")
	}
	fmt.Println("  Session logged.")
	return nil
}

func promptLine(reader *bufio.Reader, prompt, fallback string) string {
	fmt.Printf("  %s ", prompt)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func promptInt(reader *bufio.Reader, prompt string, fallback int) int {
	for {
		line := promptLine(reader, prompt, "")
		if line == "" {
			return fallback
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n
		}
		fmt.Println("  Invalid input. Please enter a number.")
	}
}
