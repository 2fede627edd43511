package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/plan"
	"github.com/sadopc/fittrack/internal/tracker"
)

type planModel struct {
	session *tracker.Session
	width   int
	height  int

	cycle  model.PlanCycle
	today  string
	cursor int
	loaded bool
}

func newPlanModel(s *tracker.Session) planModel {
	return planModel{session: s}
}

func (p *planModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type planDataMsg struct {
	cycle model.PlanCycle
	today string
}

func (p planModel) refresh() tea.Cmd {
	return func() tea.Msg {
		cycle, err := p.session.PlanCycle()
		if err != nil {
			return errStatus("Plan error", err)
		}
		return planDataMsg{cycle: cycle, today: p.session.Today()}
	}
}

// todayIndex is the position of today's day within the cycle, or -1.
func (p planModel) todayIndex() int {
	day := plan.SelectForDate(p.today, p.cycle)
	for i, d := range p.cycle.Days {
		if d.ID == day.ID {
			return i
		}
	}
	return -1
}

func (p planModel) update(msg tea.Msg) (planModel, tea.Cmd) {
	switch msg := msg.(type) {
	case planDataMsg:
		regenerated := msg.cycle.ID != p.cycle.ID
		p.cycle = msg.cycle
		p.today = msg.today
		if !p.loaded || regenerated {
			p.cursor = max(0, p.todayIndex())
			p.loaded = true
		}
		if p.cursor >= len(p.cycle.Days) {
			p.cursor = max(0, len(p.cycle.Days)-1)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up), key.Matches(msg, keys.Left):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down), key.Matches(msg, keys.Right):
			if p.cursor < len(p.cycle.Days)-1 {
				p.cursor++
			}
		}
	}
	return p, nil
}

func (p planModel) nextShuffle() string {
	start, err := model.ParseDate(p.cycle.StartDate)
	if err != nil {
		return "?"
	}
	return model.DateKey(start.AddDate(0, 0, p.cycle.CadenceDays))
}

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (p planModel) view() string {
	w := p.width - 4
	if len(p.cycle.Days) == 0 {
		return panelStyle.Width(w).Render(mutedStyle.Render("No plan yet"))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(p.cycle.Name), "  ",
		mutedStyle.Render(fmt.Sprintf("since %s · reshuffles %s", p.cycle.StartDate, p.nextShuffle())),
	)

	todayIdx := p.todayIndex()
	var list []string
	for i, d := range p.cycle.Days {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		marker := " "
		if i == todayIdx {
			marker = successStyle.Render("●")
		}
		wd := ""
		if i < len(weekdays) {
			wd = weekdays[i]
		}
		list = append(list, fmt.Sprintf("%s%s %s %s", cursor, marker, mutedStyle.Render(wd), style.Render(d.Title)))
	}
	listWidth := min(36, w/2)
	left := lipgloss.NewStyle().Width(listWidth).Render(strings.Join(list, "\n"))

	right := lipgloss.NewStyle().Width(max(20, w-listWidth-4)).Render(p.renderDay(p.cycle.Days[p.cursor]))

	nav := mutedStyle.Render("  ↑/↓: select day")
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right),
			"", nav,
		),
	)
}

func (p planModel) renderDay(d model.PlanDay) string {
	style := dayTitleStyle
	if d.IsRest() {
		style = restDayStyle
	}
	rows := []string{style.Render(d.Title), subtitleStyle.Render(d.Focus), ""}
	for i, e := range d.Exercises {
		line := fmt.Sprintf("%d. %s", i+1, normalItemStyle.Render(e.Name))
		if e.Sets != "" {
			line += "  " + highlightStyle.Render(e.Sets)
		}
		rows = append(rows, line)
		if e.Notes != "" {
			rows = append(rows, "   "+mutedStyle.Render(e.Notes))
		}
		if len(e.Equipment) > 0 {
			rows = append(rows, "   "+accentStyle.Render(strings.Join(e.Equipment, " · ")))
		}
	}
	return strings.Join(rows, "\n")
}
