package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/sadopc/fittrack/internal/config"
	"github.com/sadopc/fittrack/internal/export"
	"github.com/sadopc/fittrack/internal/logging"
	"github.com/sadopc/fittrack/internal/store"
	"github.com/sadopc/fittrack/internal/tracker"
	"github.com/sadopc/fittrack/internal/tui"
)

const usage = `usage: fittrack [-config path] [command]

commands:
  (none)          start the terminal UI
  export [file]   write a JSON backup to file or stdout
  import <file>   replace all data with a JSON backup
  csv [file]      write the log as CSV to file or stdout
  summary         print progress and today's coaching tips
`

func main() {
	defaultConfig, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	configPath := flag.String("config", defaultConfig, "path to the TOML config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	cliMode := len(args) > 0

	closer := logging.Setup(loggingParams(cfg, filepath.Dir(defaultConfig), cliMode))
	defer closer.Close()

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	sess := tracker.NewSession(s,
		tracker.WithCadence(cfg.Plan.CadenceDays),
		tracker.WithKey(tracker.ProfileKey(cfg.Profile)),
	)
	log.WithFields(log.Fields{"db": dbPath, "profile": cfg.Profile}).Debug("session opened")

	if cliMode {
		if err := run(sess, args, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			s.Close()
			os.Exit(1)
		}
		return
	}

	app := tui.NewApp(sess)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		s.Close()
		os.Exit(1)
	}
}

// loggingParams always logs to a file. CLI commands may mirror it to
// stderr; the TUI owns the terminal and never does.
func loggingParams(cfg config.Config, configDir string, cliMode bool) logging.LoggerSetupParams {
	logsPath := cfg.LogsPath
	if logsPath == "" {
		logsPath = filepath.Join(configDir, "fittrack")
	}
	return logging.LoggerSetupParams{
		LogFileName:   logsPath,
		LogToStderr:   cliMode && cfg.LogToStderr,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
	}
}

// run executes one CLI command against the session.
func run(sess *tracker.Session, args []string, out io.Writer) error {
	switch args[0] {
	case "export":
		text, err := sess.ExportJSON()
		if err != nil {
			return err
		}
		return writeOut(args[1:], out, text+"\n")

	case "import":
		if len(args) < 2 {
			return fmt.Errorf("import needs a file argument")
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}
		if err := sess.ImportJSON(string(data)); err != nil {
			return err
		}
		fmt.Fprintf(out, "imported %d entries from %s\n", len(sess.ListLogs()), args[1])
		return nil

	case "csv":
		cycle, err := sess.PlanCycle()
		if err != nil {
			return err
		}
		if len(args) > 1 {
			return export.ToCSV(sess.ListLogs(), &cycle, args[1])
		}
		return export.WriteCSV(out, sess.ListLogs(), &cycle)

	case "summary":
		return printSummary(sess, out)

	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q (try help)", args[0])
}

func writeOut(args []string, out io.Writer, text string) error {
	if len(args) == 0 {
		_, err := io.WriteString(out, text)
		return err
	}
	if err := os.WriteFile(args[0], []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	return nil
}

func printSummary(sess *tracker.Session, out io.Writer) error {
	sum := sess.Summary()
	today := sess.Today()
	day, err := sess.PlanForDate(today)
	if err != nil {
		return err
	}
	tips, err := sess.CoachTips(today)
	if err != nil {
		return err
	}

	orBlank := func(ok bool, s string) string {
		if !ok {
			return "-"
		}
		return s
	}
	fmt.Fprintf(out, "Today            %s (%s)\n", today, day.Title)
	fmt.Fprintf(out, "Latest weight    %s\n", orBlank(sum.LatestWeight != nil, fmt.Sprintf("%.1f kg", deref(sum.LatestWeight))))
	fmt.Fprintf(out, "Weekly loss rate %s\n", orBlank(sum.LossRate != nil, fmt.Sprintf("%.2f kg/week", deref(sum.LossRate))))
	fmt.Fprintf(out, "Avg steps (7)    %s\n", orBlank(sum.AvgSteps7 != nil, fmt.Sprintf("%d", deref(sum.AvgSteps7))))
	fmt.Fprintf(out, "Workouts (7)     %d\n", sum.Workouts7)
	fmt.Fprintf(out, "Streak           %d\n", sum.Streak)
	if at, ok := sess.LastSaved(); ok {
		fmt.Fprintf(out, "Last saved       %s\n", at.Local().Format("2006-01-02 15:04"))
	}
	if len(tips) > 0 {
		fmt.Fprintf(out, "\nTips\n  %s\n", strings.Join(tips, "\n  "))
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
