package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/tracker"
)

type settingsValues struct {
	stepGoal      string
	calorieTarget string
	proteinTarget string
	shuffleDays   string
	custom        string
}

type settingsModel struct {
	session *tracker.Session
	width   int
	height  int

	settings model.Settings
	custom   []string
	cycle    *model.PlanCycle

	formActive bool
	form       *huh.Form

	// Form values behind a pointer (survive value copies)
	values *settingsValues
}

func newSettingsModel(s *tracker.Session) settingsModel {
	return settingsModel{
		session: s,
		values:  &settingsValues{},
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings model.Settings
	custom   []string
	cycle    *model.PlanCycle
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		doc := s.session.Load()
		return settingsDataMsg{
			settings: doc.Settings.Apply(model.DefaultSettings()),
			custom:   doc.CustomExercises,
			cycle:    doc.PlanCycle,
		}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(settingsDataMsg); ok {
		s.settings = msg.settings
		s.custom = msg.custom
		s.cycle = msg.cycle
		return s, nil
	}

	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	shuffle := ""
	if s.settings.ShuffleEveryDays > 0 {
		shuffle = strconv.Itoa(s.settings.ShuffleEveryDays)
	}
	*s.values = settingsValues{
		stepGoal:      strconv.Itoa(s.settings.StepGoal),
		calorieTarget: strconv.Itoa(s.settings.CalorieTarget),
		proteinTarget: strconv.Itoa(s.settings.ProteinTarget),
		shuffleDays:   shuffle,
		custom:        strings.Join(s.custom, "\n"),
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Daily step goal").Value(&s.values.stepGoal),
			huh.NewInput().Title("Calorie target (kcal)").Value(&s.values.calorieTarget),
			huh.NewInput().Title("Protein target (g)").Value(&s.values.proteinTarget),
		).Title("Targets"),
		huh.NewGroup(
			huh.NewInput().Title("Reshuffle plan every (days)").
				Description("Blank leaves it unchanged").
				Value(&s.values.shuffleDays),
			huh.NewText().Title("Custom exercises").
				Description("One per line or comma separated; replaces the accessory pool").
				Value(&s.values.custom),
		).Title("Plan"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		s.formActive = false
		return s, s.saveSettings()
	case huh.StateAborted:
		s.formActive = false
		return s, nil
	}

	return s, cmd
}

// overrides turns the form into a settings patch. Blank or invalid fields
// are left out.
func (v settingsValues) overrides() model.SettingsOverrides {
	return model.SettingsOverrides{
		StepGoal:         model.ParseCount(v.stepGoal),
		CalorieTarget:    model.ParseCount(v.calorieTarget),
		ProteinTarget:    model.ParseCount(v.proteinTarget),
		ShuffleEveryDays: model.ParseCount(v.shuffleDays),
	}
}

func (s settingsModel) saveSettings() tea.Cmd {
	v := *s.values
	return func() tea.Msg {
		if _, err := s.session.UpdateSettings(v.overrides()); err != nil {
			return errStatus("Save failed", err)
		}
		if err := s.session.UpdateCustomExercises(model.SplitNames(v.custom)); err != nil {
			return errStatus("Save failed", err)
		}
		return dataChangedMsg{text: "Settings saved"}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	label := lipgloss.NewStyle().Width(26)
	row := func(name, value string) string {
		return fmt.Sprintf("  %s %s", label.Render(name), highlightStyle.Render(value))
	}

	shuffle := "default"
	if s.settings.ShuffleEveryDays > 0 {
		shuffle = fmt.Sprintf("%d days", s.settings.ShuffleEveryDays)
	}

	rows := []string{
		title, "",
		row("Daily step goal", formatCount(&s.settings.StepGoal)),
		row("Calorie target", formatCount(&s.settings.CalorieTarget)+" kcal"),
		row("Protein target", fmt.Sprintf("%d g", s.settings.ProteinTarget)),
		row("Reshuffle plan every", shuffle),
	}
	if s.cycle != nil {
		rows = append(rows, row("Active plan", fmt.Sprintf("%s (since %s, %d-day cadence)", s.cycle.Name, s.cycle.StartDate, s.cycle.CadenceDays)))
	}

	rows = append(rows, "", titleStyle.Render("Custom exercises"))
	if len(s.custom) == 0 {
		rows = append(rows, mutedStyle.Render("  none"))
	}
	for _, name := range s.custom {
		rows = append(rows, "  • "+name)
	}

	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
