package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/fittrack/internal/model"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewPlan
	viewHistory
	viewProgress
	viewSettings
)

var viewNames = []string{"Today", "Plan", "History", "Progress", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// dataChangedMsg is sent after any write so every view reloads.
type dataChangedMsg struct {
	text string
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

func errStatus(prefix string, err error) tea.Msg {
	return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
}

// --- Helpers ---

const blank = "—"

func formatWeight(w *float64) string {
	if w == nil {
		return blank
	}
	return fmt.Sprintf("%.1f kg", *w)
}

func formatCount(n *int) string {
	if n == nil {
		return blank
	}
	return humanize.Comma(int64(*n))
}

func formatRate(r *float64) string {
	if r == nil {
		return blank
	}
	return fmt.Sprintf("%.2f kg/week", *r)
}

func formatDay(date string) string {
	t, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 02 2006")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
