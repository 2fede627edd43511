package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/tracker"
)

type progressMetric int

const (
	metricWeight progressMetric = iota
	metricSteps
	metricProtein
)

var metricNames = []string{"Weight", "Steps", "Protein"}

// chartDays is how many of the most recent entries are charted.
const chartDays = 14

type progressModel struct {
	session *tracker.Session
	width   int
	height  int

	metric   progressMetric
	logs     []model.DayLog
	summary  model.Summary
	settings model.Settings

	chart barchart.Model
}

func newProgressModel(s *tracker.Session) progressModel {
	return progressModel{
		session: s,
		chart:   barchart.New(60, 12),
	}
}

func (p *progressModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.buildChart()
}

type progressDataMsg struct {
	logs     []model.DayLog
	summary  model.Summary
	settings model.Settings
}

func (p progressModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return progressDataMsg{
			logs:     p.session.ListLogs(),
			summary:  p.session.Summary(),
			settings: p.session.Settings(),
		}
	}
}

func (p progressModel) update(msg tea.Msg) (progressModel, tea.Cmd) {
	switch msg := msg.(type) {
	case progressDataMsg:
		p.logs = msg.logs
		p.summary = msg.summary
		p.settings = msg.settings
		p.buildChart()
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			p.metric = (p.metric + progressMetric(len(metricNames)) - 1) % progressMetric(len(metricNames))
			p.buildChart()
		case key.Matches(msg, keys.Right):
			p.metric = (p.metric + 1) % progressMetric(len(metricNames))
			p.buildChart()
		}
	}
	return p, nil
}

// series returns the charted entries, oldest first, with their values.
func (p progressModel) series() ([]model.DayLog, []float64) {
	var logs []model.DayLog
	var values []float64
	for _, l := range p.logs {
		switch p.metric {
		case metricWeight:
			if l.WeightKg != nil {
				logs = append(logs, l)
				values = append(values, *l.WeightKg)
			}
		case metricSteps:
			if l.Steps != nil {
				logs = append(logs, l)
				values = append(values, float64(*l.Steps))
			}
		case metricProtein:
			if l.ProteinG != nil {
				logs = append(logs, l)
				values = append(values, float64(*l.ProteinG))
			}
		}
	}
	if n := len(logs); n > chartDays {
		logs, values = logs[n-chartDays:], values[n-chartDays:]
	}
	return logs, values
}

func (p progressModel) target() (float64, bool) {
	switch p.metric {
	case metricSteps:
		return float64(p.settings.StepGoal), true
	case metricProtein:
		return float64(p.settings.ProteinTarget), true
	}
	return 0, false
}

func (p *progressModel) buildChart() {
	chartWidth := p.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if p.height > 34 {
		chartHeight = 16
	}

	p.chart = barchart.New(chartWidth, chartHeight)

	logs, values := p.series()
	target, hasTarget := p.target()

	var bars []barchart.BarData
	for i, l := range logs {
		label := l.Date
		if t, err := model.ParseDate(l.Date); err == nil {
			label = t.Format("01/02")
		}
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if hasTarget {
			style = lipgloss.NewStyle().Foreground(colorWarning)
			if values[i] >= target {
				style = lipgloss.NewStyle().Foreground(colorSuccess)
			}
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  metricNames[p.metric],
				Value: values[i],
				Style: style,
			}},
		})
	}

	if len(bars) > 0 {
		p.chart.PushAll(bars)
	}
	p.chart.Draw()
}

func (p progressModel) view() string {
	w := p.width - 4

	var tabs []string
	for i, name := range metricNames {
		if progressMetric(i) == p.metric {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Progress"), "  ", lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
	)

	logs, _ := p.series()
	chartView := mutedStyle.Render(fmt.Sprintf("  No %s entries yet", strings.ToLower(metricNames[p.metric])))
	if len(logs) > 0 {
		chartView = p.chart.View()
	}

	nav := mutedStyle.Render("  ←/→: switch metric")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", p.renderSummary(), "", chartView, "", nav,
		),
	)
}

func (p progressModel) renderSummary() string {
	s := p.summary
	label := lipgloss.NewStyle().Width(22)

	streak := fmt.Sprintf("%d days", s.Streak)
	if s.Streak == 1 {
		streak = "1 day"
	}
	workouts := fmt.Sprintf("%d", s.Workouts7)

	rows := []string{
		fmt.Sprintf("  %s %s", label.Render("Latest weight"), highlightStyle.Render(formatWeight(s.LatestWeight))),
		fmt.Sprintf("  %s %s", label.Render("Weekly loss rate"), highlightStyle.Render(formatRate(s.LossRate))),
		fmt.Sprintf("  %s %s", label.Render("Avg steps (last 7)"), goalStyle(s.AvgSteps7, p.settings.StepGoal).Render(formatCount(s.AvgSteps7))),
		fmt.Sprintf("  %s %s", label.Render("Workouts (last 7)"), highlightStyle.Render(workouts)),
		fmt.Sprintf("  %s %s", label.Render("Workout streak"), successStyle.Render(streak)),
	}
	return strings.Join(rows, "\n")
}
