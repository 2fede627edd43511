package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/sadopc/fittrack/internal/export"
	"github.com/sadopc/fittrack/internal/tracker"
)

// tickInterval is how often the app checks for a new calendar day.
const tickInterval = time.Minute

type exportFormat struct {
	name, file string
}

var exportFormats = []exportFormat{
	{"JSON backup", "fittrack-backup-%s.json"},
	{"CSV log", "fittrack-logs-%s.csv"},
}

// App is the root Bubble Tea model.
type App struct {
	session *tracker.Session
	width   int
	height  int
	date    string

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	today    todayModel
	plan     planModel
	history  historyModel
	progress progressModel
	settings settingsModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(s *tracker.Session) App {
	h := help.New()
	h.ShowAll = false

	return App{
		session:    s,
		date:       s.Today(),
		activeView: viewToday,
		today:      newTodayModel(s),
		plan:       newPlanModel(s),
		history:    newHistoryModel(s),
		progress:   newProgressModel(s),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.refreshAll(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		for _, v := range []interface{ setSize(w, h int) }{&a.today, &a.plan, &a.history, &a.progress, &a.settings} {
			v.setSize(a.width, contentHeight)
		}
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}
		for i, b := range keys.tabs() {
			if key.Matches(msg, b) {
				a.activeView = viewState(i)
				return a, a.refreshCurrentView()
			}
		}

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if today := a.session.Today(); today != a.date {
			log.Infof("day rolled over: %s -> %s", a.date, today)
			a.date = today
			a.status = "New day: " + formatDay(today)
			a.statusError = false
			cmds = append(cmds, a.refreshAll())
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case dataChangedMsg:
		a.status = msg.text
		a.statusError = false
		return a, a.refreshAll()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusError = false
		a.exportPicking = false
		return a, nil

	// Data messages go to their owner regardless of the active view.
	case todayDataMsg:
		a.today, _ = a.today.update(msg)
		return a, nil
	case planDataMsg:
		a.plan, _ = a.plan.update(msg)
		return a, nil
	case historyDataMsg:
		a.history, _ = a.history.update(msg)
		return a, nil
	case progressDataMsg:
		a.progress, _ = a.progress.update(msg)
		return a, nil
	case settingsDataMsg:
		a.settings, _ = a.settings.update(msg)
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewPlan:
		a.plan, cmd = a.plan.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewProgress:
		a.progress, cmd = a.progress.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewToday:
		return a.today.editor.active
	case viewHistory:
		return a.history.editor.active
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

// refreshers returns each view's reload command in view order.
func (a App) refreshers() []tea.Cmd {
	return []tea.Cmd{
		a.today.refresh(),
		a.plan.refresh(),
		a.history.refresh(),
		a.progress.refresh(),
		a.settings.refresh(),
	}
}

func (a App) refreshCurrentView() tea.Cmd {
	return a.refreshers()[a.activeView]
}

// refreshAll reloads every view. The plan view goes first so a
// regenerated cycle is persisted before the others read it.
func (a App) refreshAll() tea.Cmd {
	cmds := a.refreshers()
	rest := append([]tea.Cmd{cmds[viewToday]}, cmds[viewHistory:]...)
	return tea.Sequence(cmds[viewPlan], tea.Batch(rest...))
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()
	body := a.activeContent()
	if a.exportPicking {
		body = a.renderExportPicker()
	}

	height := max(1, a.height-lipgloss.Height(header)-lipgloss.Height(footer))
	body = lipgloss.NewStyle().Width(a.width).Height(height).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a App) activeContent() string {
	switch a.activeView {
	case viewPlan:
		return a.plan.view()
	case viewHistory:
		return a.history.view()
	case viewProgress:
		return a.progress.view()
	case viewSettings:
		return a.settings.view()
	}
	return a.today.view()
}

// spread places left and right at the edges of a width-wide line.
func spread(width int, left, right string) string {
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func (a App) renderHeader() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		style := inactiveTabStyle
		if viewState(i) == a.activeView {
			style = activeTabStyle
		}
		tabs[i] = style.Render(fmt.Sprintf("%d %s", i+1, name))
	}

	brand := dayTitleStyle.Render("fittrack") + "  " + mutedStyle.Render(formatDay(a.date))
	return headerStyle.Render(spread(a.width-2, brand, lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)))
}

func (a App) renderFooter() string {
	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusError {
			style = errorStyle
		}
		status = style.Render(a.status)
	}
	return footerStyle.Render(spread(a.width-2, a.help.View(keys), status))
}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export"), ""}
	for i, f := range exportFormats {
		cursor, style := "  ", normalItemStyle
		if i == a.exportCursor {
			cursor, style = "> ", selectedItemStyle
		}
		target := mutedStyle.Render("~/" + fmt.Sprintf(f.file, a.date))
		rows = append(rows, style.Render(fmt.Sprintf("%s%-12s", cursor, f.name))+" "+target)
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))
	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return errStatus("Export error", err)
		}
		path, err := exportTo(a.session, home, format)
		if err != nil {
			return errStatus("Export error", err)
		}
		return exportDoneMsg{path: path}
	}
}

// exportTo writes the chosen format into dir and returns the file path.
func exportTo(s *tracker.Session, dir string, format int) (string, error) {
	format = min(max(format, 0), len(exportFormats)-1)
	path := filepath.Join(dir, fmt.Sprintf(exportFormats[format].file, s.Today()))
	if format == 0 {
		if err := export.ToJSON(s.Load(), s.Settings(), path); err != nil {
			return "", err
		}
		return path, nil
	}
	cycle, err := s.PlanCycle()
	if err != nil {
		return "", err
	}
	if err := export.ToCSV(s.ListLogs(), &cycle, path); err != nil {
		return "", err
	}
	return path, nil
}
