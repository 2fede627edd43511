package tui

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/tracker"
)

// logFormValues is shared by pointer so huh bindings survive value copies
// of the owning model.
type logFormValues struct {
	date     string
	weight   string
	steps    string
	calories string
	protein  string
	note     string
}

// logForm edits the metrics of one day. Blank or unparseable fields leave
// the stored value alone.
type logForm struct {
	active   bool
	askDate  bool
	date     string
	prevNote string
	form     *huh.Form
	values   *logFormValues
}

func newLogForm() logForm {
	return logForm{values: &logFormValues{}}
}

func (f logForm) open(date string, cur model.DayLog, askDate bool) (logForm, tea.Cmd) {
	f.date = date
	f.askDate = askDate
	f.prevNote = ""
	if cur.Note != nil {
		f.prevNote = *cur.Note
	}
	*f.values = logFormValues{
		date:     date,
		weight:   weightInput(cur.WeightKg),
		steps:    countInput(cur.Steps),
		calories: countInput(cur.Calories),
		protein:  countInput(cur.ProteinG),
		note:     f.prevNote,
	}

	var fields []huh.Field
	if askDate {
		fields = append(fields, huh.NewInput().Title("Date (YYYY-MM-DD)").Value(&f.values.date).Validate(validateDate))
	}
	fields = append(fields,
		huh.NewInput().Title("Weight (kg)").Value(&f.values.weight),
		huh.NewInput().Title("Steps").Value(&f.values.steps),
		huh.NewInput().Title("Calories").Value(&f.values.calories),
		huh.NewInput().Title("Protein (g)").Value(&f.values.protein),
		huh.NewInput().Title("Note").Value(&f.values.note),
	)

	title := "Log " + formatDay(date)
	if askDate {
		title = "New entry"
	}
	f.form = huh.NewForm(huh.NewGroup(fields...).Title(title)).WithShowHelp(true).WithShowErrors(true)
	f.active = true
	return f, f.form.Init()
}

func (f logForm) update(msg tea.Msg, s *tracker.Session) (logForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			f.active = false
			f.form = nil
			return f, nil
		}
	}

	form, cmd := f.form.Update(msg)
	if ff, ok := form.(*huh.Form); ok {
		f.form = ff
	}

	switch f.form.State {
	case huh.StateCompleted:
		f.active = false
		return f, saveLogCmd(s, f.targetDate(), f.patch())
	case huh.StateAborted:
		f.active = false
		return f, nil
	}
	return f, cmd
}

func (f logForm) view() string {
	if f.form == nil {
		return ""
	}
	return f.form.View()
}

func (f logForm) targetDate() string {
	if f.askDate {
		return strings.TrimSpace(f.values.date)
	}
	return f.date
}

func (f logForm) patch() model.DayLog {
	p := model.DayLog{
		WeightKg: model.ParseWeight(f.values.weight),
		Steps:    model.ParseCount(f.values.steps),
		Calories: model.ParseCount(f.values.calories),
		ProteinG: model.ParseCount(f.values.protein),
	}
	if note := strings.TrimSpace(f.values.note); note != f.prevNote {
		p.Note = model.Ptr(note)
	}
	return p
}

func saveLogCmd(s *tracker.Session, date string, patch model.DayLog) tea.Cmd {
	return func() tea.Msg {
		if _, err := s.UpsertLog(date, patch); err != nil {
			return errStatus("Save failed", err)
		}
		return dataChangedMsg{text: "Saved " + date}
	}
}

func weightInput(w *float64) string {
	if w == nil {
		return ""
	}
	return strconv.FormatFloat(*w, 'f', -1, 64)
}

func countInput(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func validateDate(s string) error {
	if _, err := model.ParseDate(strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}
