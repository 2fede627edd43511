package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/tracker"
)

type todayModel struct {
	session *tracker.Session
	width   int
	height  int

	date     string
	day      model.PlanDay
	days     []model.PlanDay
	log      model.DayLog
	settings model.Settings
	tips     []string
	cursor   int

	editor logForm
}

func newTodayModel(s *tracker.Session) todayModel {
	return todayModel{
		session: s,
		date:    s.Today(),
		editor:  newLogForm(),
	}
}

func (t *todayModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type todayDataMsg struct {
	date     string
	day      model.PlanDay
	days     []model.PlanDay
	log      model.DayLog
	settings model.Settings
	tips     []string
}

func (t todayModel) load() tea.Msg {
	date := t.session.Today()
	day, err := t.session.PlanForDate(date)
	if err != nil {
		return errStatus("Plan error", err)
	}
	cycle, err := t.session.PlanCycle()
	if err != nil {
		return errStatus("Plan error", err)
	}
	l, _ := t.session.GetLog(date)
	tips, err := t.session.CoachTips(date)
	if err != nil {
		return errStatus("Tips error", err)
	}
	return todayDataMsg{
		date:     date,
		day:      day,
		days:     cycle.Days,
		log:      l,
		settings: t.session.Settings(),
		tips:     tips,
	}
}

func (t todayModel) refresh() tea.Cmd {
	return t.load
}

func (t todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	if msg, ok := msg.(todayDataMsg); ok {
		t.date = msg.date
		t.day = msg.day
		t.days = msg.days
		t.log = msg.log
		t.settings = msg.settings
		t.tips = msg.tips
		if t.cursor >= len(t.day.Exercises) {
			t.cursor = max(0, len(t.day.Exercises)-1)
		}
		return t, nil
	}

	if t.editor.active {
		var cmd tea.Cmd
		t.editor, cmd = t.editor.update(msg, t.session)
		return t, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.day.Exercises)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if len(t.day.Exercises) == 0 {
				return t, nil
			}
			return t, t.toggleExercise(t.cursor)
		case key.Matches(msg, keys.Workout):
			return t, t.toggleWorkout()
		case key.Matches(msg, keys.PrevDay):
			return t, t.switchDay(-1)
		case key.Matches(msg, keys.NextDay):
			return t, t.switchDay(1)
		case key.Matches(msg, keys.New), key.Matches(msg, keys.Enter):
			var cmd tea.Cmd
			t.editor, cmd = t.editor.open(t.date, t.log, false)
			return t, cmd
		}
	}
	return t, nil
}

func (t todayModel) toggleExercise(idx int) tea.Cmd {
	return func() tea.Msg {
		if _, err := t.session.ToggleExercise(t.date, idx); err != nil {
			return errStatus("Update failed", err)
		}
		return t.load()
	}
}

// switchDay trains a different day of the cycle than the weekday suggests.
func (t todayModel) switchDay(delta int) tea.Cmd {
	n := len(t.days)
	if n == 0 {
		return nil
	}
	cur := 0
	for i, d := range t.days {
		if d.ID == t.day.ID {
			cur = i
			break
		}
	}
	next := t.days[((cur+delta)%n+n)%n]
	return func() tea.Msg {
		if _, err := t.session.UpsertLog(t.date, model.DayLog{PlanDayID: model.Ptr(next.ID)}); err != nil {
			return errStatus("Update failed", err)
		}
		return dataChangedMsg{text: "Training " + next.Title}
	}
}

func (t todayModel) toggleWorkout() tea.Cmd {
	patch := model.DayLog{WorkoutDone: model.Ptr(!t.log.Done())}
	if t.day.ID != "" {
		patch.PlanDayID = model.Ptr(t.day.ID)
	}
	return func() tea.Msg {
		if _, err := t.session.UpsertLog(t.date, patch); err != nil {
			return errStatus("Update failed", err)
		}
		return dataChangedMsg{text: "Workout updated"}
	}
}

func (t todayModel) view() string {
	if t.width < 20 {
		return "Terminal too small"
	}
	w := t.width - 4

	if t.editor.active {
		return activePanelStyle.Width(w).Render(t.editor.view())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		t.renderDayPanel(w),
		t.renderMetricsPanel(w),
		t.renderTipsPanel(w),
	)
}

func (t todayModel) renderDayPanel(w int) string {
	total := len(t.day.Exercises)
	done := t.log.CompletedCount(total)

	banner := dayTitleStyle
	switch {
	case t.log.Done():
		banner = doneDayStyle
	case t.day.IsRest():
		banner = restDayStyle
	}

	var rows []string
	rows = append(rows, fmt.Sprintf("%s  %s", banner.Render(t.day.Title), mutedStyle.Render(formatDay(t.date))))
	status := fmt.Sprintf("%s  ·  %d/%d done", t.day.Focus, done, total)
	if t.log.Done() {
		status += "  " + successStyle.Render("✓ workout complete")
	}
	rows = append(rows, subtitleStyle.Render(status), "")

	if total == 0 {
		rows = append(rows, mutedStyle.Render("  No exercises planned"))
	}
	for i, e := range t.day.Exercises {
		cursor := "  "
		if i == t.cursor {
			cursor = "> "
		}
		box := "[ ]"
		style := normalItemStyle
		if t.log.IsCompleted(i) {
			box = "[x]"
			style = checkedItemStyle
		}
		if i == t.cursor && !t.log.IsCompleted(i) {
			style = selectedItemStyle
		}
		line := fmt.Sprintf("%s%s %s", cursor, box, style.Render(e.Name))
		if e.Sets != "" {
			line += "  " + highlightStyle.Render(e.Sets)
		}
		if e.Notes != "" {
			line += "  " + mutedStyle.Render(truncate(e.Notes, max(10, w-lipgloss.Width(line)-8)))
		}
		rows = append(rows, line)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t todayModel) renderMetricsPanel(w int) string {
	s := t.settings
	label := lipgloss.NewStyle().Width(12)

	rows := []string{
		titleStyle.Render("Metrics"),
		fmt.Sprintf("  %s %s", label.Render("Weight"), highlightStyle.Render(formatWeight(t.log.WeightKg))),
		fmt.Sprintf("  %s %s / %s", label.Render("Steps"),
			goalStyle(t.log.Steps, s.StepGoal).Render(formatCount(t.log.Steps)), formatCount(&s.StepGoal)),
		fmt.Sprintf("  %s %s / %s", label.Render("Calories"),
			highlightStyle.Render(formatCount(t.log.Calories)), formatCount(&s.CalorieTarget)),
		fmt.Sprintf("  %s %s / %d g", label.Render("Protein"),
			goalStyle(t.log.ProteinG, s.ProteinTarget).Render(formatCount(t.log.ProteinG)), s.ProteinTarget),
	}
	if t.log.Note != nil && *t.log.Note != "" {
		rows = append(rows, fmt.Sprintf("  %s %s", label.Render("Note"), mutedStyle.Render(truncate(*t.log.Note, w-20))))
	}
	rows = append(rows, "", mutedStyle.Render("  n: log metrics  space: check exercise  w: toggle workout  [/]: switch plan day"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t todayModel) renderTipsPanel(w int) string {
	rows := []string{titleStyle.Render("Coach")}
	if len(t.tips) == 0 {
		rows = append(rows, successStyle.Render("  On track. Keep it up."))
	}
	for _, tip := range t.tips {
		rows = append(rows, "  "+accentStyle.Render("•")+" "+tip)
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
