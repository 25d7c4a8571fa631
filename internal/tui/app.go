// Package tui provides the interactive Bubble Tea dashboard for nextstep.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"nextstep/internal/model"
	"nextstep/internal/pipeline"
	"nextstep/internal/store"
	"nextstep/internal/tui/components"
	"nextstep/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// StateLoadedMsg is sent when the database load finishes.
type StateLoadedMsg struct {
	State *model.State
	Err   error
}

// sessionSavedMsg is sent after a logged session is written to the database.
type sessionSavedMsg struct {
	Err error
}

// App is the root Bubble Tea model.
type App struct {
	store *store.Store
	st    *model.State

	loaded  bool
	loadErr error

	// Pre-computed on every state change
	stats   model.SummaryStats
	recent  []model.SessionRecord
	daily   []float64
	ranked  []model.SubjectScore
	rankErr error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	notice    string

	// Per-tab cursors
	subjCursor int
	sessCursor int

	// Suggest tab: accept/reject walk
	suggestIdx      int
	suggestPick     string
	suggestFellBack bool
	suggestEnergy   int // index into energyOptions

	// Session log form (huh)
	logForm *huh.Form
	logVals logValues

	// First-run setup form (huh), shown when a subject is missing its
	// confidence or exam date
	setupForm *huh.Form
	setupVals setupValues

	spinner     spinner.Model
	defaultMins int
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 120
	minContentHeight = 5
	sparklineDays    = 14
)

var energyOptions = []pipeline.Energy{pipeline.EnergyLow, pipeline.EnergyMedium, pipeline.EnergyHigh}

// NewApp creates a new TUI app model. The store stays open for the lifetime
// of the program; the App owns persistence of logged sessions.
func NewApp(s *store.Store, defaultMins int) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		store:         s,
		spinner:       sp,
		defaultMins:   defaultMins,
		suggestEnergy: 1,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadStateCmd(a.store),
		a.spinner.Tick,
	)
}

func loadStateCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		st, err := s.LoadState()
		return StateLoadedMsg{State: st, Err: err}
	}
}

func (a *App) recompute() {
	now := time.Now()
	a.stats = pipeline.Aggregate(a.st.Log, now)
	a.recent = pipeline.SortByTimeDesc(a.st.Log)

	mins := pipeline.DailyMinutes(a.st.Log, now, sparklineDays)
	a.daily = make([]float64, len(mins))
	for i, m := range mins {
		a.daily[i] = float64(m)
	}

	a.ranked, a.rankErr = pipeline.Rank(a.st, now, now)
	if a.suggestIdx >= len(a.ranked) {
		a.suggestIdx = 0
	}
	if a.subjCursor >= len(a.st.Subjects) {
		a.subjCursor = len(a.st.Subjects) - 1
	}
	if a.subjCursor < 0 {
		a.subjCursor = 0
	}
	if a.sessCursor >= len(a.recent) {
		a.sessCursor = len(a.recent) - 1
	}
	if a.sessCursor < 0 {
		a.sessCursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.logForm != nil {
			a.logForm = a.logForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.logForm != nil || a.setupForm != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case StateLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.st = msg.State
			a.recompute()

			// First run: collect confidence and exam dates before anything else
			if _, incomplete := a.isIncompleteSetup(); incomplete {
				a.setupForm = newSetupForm(a.st, &a.setupVals)
				if a.width > 0 {
					a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
				}
				return a, a.setupForm.Init()
			}
		}
		return a, nil

	case subjectsSavedMsg:
		if msg.Err != nil {
			a.notice = fmt.Sprintf("save failed: %v", msg.Err)
		} else {
			a.notice = "Subjects saved."
		}
		return a, nil

	case sessionSavedMsg:
		if msg.Err != nil {
			a.notice = fmt.Sprintf("save failed: %v", msg.Err)
		} else {
			a.notice = "Session logged."
		}
		a.recompute()
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to open forms (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.logForm != nil {
		return a.updateLogForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}
	if a.loadErr != nil {
		if key == "q" {
			return a, tea.Quit
		}
		return a, nil
	}

	// Open forms intercept all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.logForm != nil {
		return a.updateLogForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if key == "q" {
		return a, tea.Quit
	}

	// Open the session log form from any tab
	if key == "l" {
		return a.openLogForm("")
	}

	// Per-tab keys
	switch a.activeTab {
	case 1:
		switch key {
		case "j", "down":
			if a.subjCursor < len(a.st.Subjects)-1 {
				a.subjCursor++
			}
			return a, nil
		case "k", "up":
			if a.subjCursor > 0 {
				a.subjCursor--
			}
			return a, nil
		}
	case 2:
		switch key {
		case "j", "down":
			if a.sessCursor < len(a.recent)-1 {
				a.sessCursor++
			}
			return a, nil
		case "k", "up":
			if a.sessCursor > 0 {
				a.sessCursor--
			}
			return a, nil
		}
	case 3:
		if m, cmd, handled := a.updateSuggestKey(key); handled {
			return m, cmd
		}
	}

	// Tab navigation
	if idx := components.TabIdxByKey(keyRune(key)); idx >= 0 {
		a.activeTab = idx
		return a, nil
	}
	switch key {
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	}
	return a, nil
}

func keyRune(key string) rune {
	if len(key) != 1 {
		return 0
	}
	return rune(key[0])
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols, need %d)\n", a.width, minTerminalWidth)
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return fmt.Sprintf("\n  Could not load data: %v\n\n  Press q to quit.\n", a.loadErr)
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.logForm != nil {
		return a.logForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(a.spinner.View() + " Loading study data...")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	bindings := []struct{ key, desc string }{
		{"o b s g", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"y / n", "Accept / reject a suggestion"},
		{"e", "Cycle energy level (Suggest tab)"},
		{"l", "Log a session"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.stats.StreakDays)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderSubjectsTab(cw)
	case 2:
		content = a.renderSessionsTab(cw, contentH)
	case 3:
		content = a.renderSuggestTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2 // two-space separator
	}
	return -1
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// isIncompleteSetup reports whether the ranking failed because a subject is
// missing its confidence or exam date.
func (a App) isIncompleteSetup() (*pipeline.IncompleteSetupError, bool) {
	var incomplete *pipeline.IncompleteSetupError
	if errors.As(a.rankErr, &incomplete) {
		return incomplete, true
	}
	return nil, false
}
