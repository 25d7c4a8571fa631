package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"nextstep/internal/config"
	"nextstep/internal/pipeline"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Guided setup: subjects, confidence, and exam dates",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	s, cfg, st, err := loadState()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Println("  Welcome to NextStep!")
	fmt.Println()

	// 1. Subjects
	if len(st.Subjects) == 0 {
		fmt.Println("  1. Which subjects are you studying?")
		fmt.Println("     Enter one per line; leave blank to finish.")
		for {
			fmt.Print("     > ")
			line, _ := reader.ReadString('\n')
			line = strings.TrimSpace(line)
			if line == "" {
				break
			}
			if _, err := pipeline.AddSubject(st, line); err != nil {
				fmt.Printf("     %v\n", err)
			}
		}
		fmt.Println()
	}
	if len(st.Subjects) == 0 {
		fmt.Println("  No subjects entered. Nothing to set up.")
		return nil
	}

	// 2. Per-subject confidence and exam date
	fmt.Println("  2. For each subject, rate your confidence and enter the exam date.")
	fmt.Println()
	for _, name := range st.SubjectNames() {
		sub := st.Subjects[name]
		fmt.Printf("  %s\n", name)

		conf := sub.Confidence
		for {
			current := ""
			if conf != 0 {
				current = fmt.Sprintf(" [current: %d]", conf)
			}
			line := promptLine(reader, fmt.Sprintf("  Confidence 1-10%s:", current), "")
			if line == "" && conf != 0 {
				break
			}
			if err := pipeline.SetConfidence(st, name, atoiOrZero(line)); err != nil {
				fmt.Printf("     %v\n", err)
				continue
			}
			break
		}

		for {
			current := ""
			if !sub.ExamDate.IsZero() {
				current = fmt.Sprintf(" [current: %s]", sub.ExamDate.Format("2006-01-02"))
			}
			line := promptLine(reader, fmt.Sprintf("  Exam date YYYY-MM-DD%s:", current), "")
			if line == "" && !sub.ExamDate.IsZero() {
				break
			}
			exam, err := time.ParseInLocation("2006-01-02", line, time.Local)
			if err != nil {
				fmt.Println("     Invalid date. Use YYYY-MM-DD, e.g. 2026-05-20.")
				continue
			}
			if err := pipeline.SetExamDate(st, name, exam); err != nil {
				fmt.Printf("     %v\n", err)
				continue
			}
			break
		}

		if err := s.UpsertSubject(*sub); err != nil {
			return err
		}
		fmt.Println()
	}

	// 3. Default session length
	fmt.Printf("  3. Default session length in minutes [current: %d]\n", cfg.General.DefaultSessionMins)
	fmt.Print("     > ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if n := atoiOrZero(line); n > 0 {
		cfg.General.DefaultSessionMins = n
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `nextstep setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
