package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/tracker"
)

type historyModel struct {
	session *tracker.Session
	width   int
	height  int

	logs   []model.DayLog // newest first
	cycle  model.PlanCycle
	cursor int
	offset int

	editor logForm
}

func newHistoryModel(s *tracker.Session) historyModel {
	return historyModel{
		session: s,
		editor:  newLogForm(),
	}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

type historyDataMsg struct {
	logs  []model.DayLog
	cycle model.PlanCycle
}

func (h historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		logs := h.session.ListLogs()
		slices.Reverse(logs)
		doc := h.session.Load()
		var cycle model.PlanCycle
		if doc.PlanCycle != nil {
			cycle = *doc.PlanCycle
		}
		return historyDataMsg{logs: logs, cycle: cycle}
	}
}

// visibleRows is how many log rows fit below the panel chrome.
func (h historyModel) visibleRows() int {
	return max(3, h.height-10)
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if msg, ok := msg.(historyDataMsg); ok {
		h.logs = msg.logs
		h.cycle = msg.cycle
		if h.cursor >= len(h.logs) {
			h.cursor = max(0, len(h.logs)-1)
		}
		h.clampOffset()
		return h, nil
	}

	if h.editor.active {
		var cmd tea.Cmd
		h.editor, cmd = h.editor.update(msg, h.session)
		return h, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.logs)-1 {
				h.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(h.logs) > 0 {
				l := h.logs[h.cursor]
				var cmd tea.Cmd
				h.editor, cmd = h.editor.open(l.Date, l, false)
				return h, cmd
			}
		case key.Matches(msg, keys.New):
			var cmd tea.Cmd
			h.editor, cmd = h.editor.open(h.session.Today(), model.DayLog{}, true)
			return h, cmd
		}
		h.clampOffset()
	}
	return h, nil
}

func (h *historyModel) clampOffset() {
	rows := h.visibleRows()
	if h.cursor < h.offset {
		h.offset = h.cursor
	}
	if h.cursor >= h.offset+rows {
		h.offset = h.cursor - rows + 1
	}
	h.offset = max(0, h.offset)
}

func (h historyModel) view() string {
	w := h.width - 4

	if h.editor.active {
		return activePanelStyle.Width(w).Render(h.editor.view())
	}

	title := titleStyle.Render(fmt.Sprintf("History  %s", mutedStyle.Render(fmt.Sprintf("(%d days)", len(h.logs)))))
	var rows []string
	rows = append(rows, title, "")

	if len(h.logs) == 0 {
		rows = append(rows, mutedStyle.Render("  No entries yet. Press n to add one."))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %10s %8s %8s %8s %-8s %s",
		"Date", "Weight", "Steps", "Kcal", "Protein", "Workout", "Note")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 80))))

	end := min(len(h.logs), h.offset+h.visibleRows())
	for i := h.offset; i < end; i++ {
		l := h.logs[i]
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-12s %10s %8s %8s %8s %-8s %s",
			cursor, l.Date,
			formatWeight(l.WeightKg),
			formatCount(l.Steps),
			formatCount(l.Calories),
			formatCount(l.ProteinG),
			h.workoutCell(l),
			truncate(noteOf(l), max(0, w-70)),
		)))
	}

	rows = append(rows, "", mutedStyle.Render("  enter: edit  n: new entry"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (h historyModel) workoutCell(l model.DayLog) string {
	if l.Done() {
		return "✓"
	}
	if l.PlanDayID != nil {
		if d, ok := h.cycle.Day(*l.PlanDayID); ok && len(d.Exercises) > 0 {
			return fmt.Sprintf("%d/%d", l.CompletedCount(len(d.Exercises)), len(d.Exercises))
		}
	}
	return ""
}

func noteOf(l model.DayLog) string {
	if l.Note == nil {
		return ""
	}
	return *l.Note
}
