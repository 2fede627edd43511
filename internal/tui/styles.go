package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("#F97316") // orange
	colorRest      = lipgloss.Color("#38BDF8")
	colorAccent    = lipgloss.Color("#FACC15")
	colorMuted     = lipgloss.Color("#6B7280")
	colorSuccess   = lipgloss.Color("#22C55E")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorFg        = lipgloss.Color("#E5E7EB")
	colorBorder    = lipgloss.Color("#374151")
	colorHighlight = lipgloss.Color("#A3E635")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func bold(c lipgloss.Color) lipgloss.Style { return fg(c).Bold(true) }

func panel(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2)
}

var (
	activeTabStyle = bold(colorPrimary).
			Border(lipgloss.ThickBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)
	inactiveTabStyle = fg(colorMuted).Padding(0, 2)

	panelStyle       = panel(colorBorder)
	activePanelStyle = panel(colorPrimary)

	dayTitleStyle = bold(colorPrimary)
	restDayStyle  = bold(colorRest)
	doneDayStyle  = bold(colorSuccess)

	titleStyle     = bold(colorFg)
	subtitleStyle  = fg(colorMuted).Italic(true)
	accentStyle    = fg(colorAccent)
	successStyle   = fg(colorSuccess)
	warningStyle   = fg(colorWarning)
	errorStyle     = bold(colorError)
	mutedStyle     = fg(colorMuted)
	highlightStyle = fg(colorHighlight)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = fg(colorMuted).Padding(0, 1)

	selectedItemStyle = bold(colorPrimary)
	normalItemStyle   = fg(colorFg)
	checkedItemStyle  = fg(colorSuccess).Strikethrough(true)
)

// goalStyle colors a value against its target: green once reached,
// amber below 70%.
func goalStyle(value *int, target int) lipgloss.Style {
	switch {
	case value == nil:
		return mutedStyle
	case *value >= target:
		return successStyle
	case float64(*value) < float64(target)*0.7:
		return warningStyle
	default:
		return highlightStyle
	}
}
