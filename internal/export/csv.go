package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sadopc/fittrack/internal/model"
)

// ToCSV writes one row per log entry. cycle resolves plan day titles and
// may be nil.
func ToCSV(logs []model.DayLog, cycle *model.PlanCycle, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	return WriteCSV(f, logs, cycle)
}

// WriteCSV is ToCSV against an arbitrary writer.
func WriteCSV(out io.Writer, logs []model.DayLog, cycle *model.PlanCycle) error {
	w := csv.NewWriter(out)

	// Header
	if err := w.Write([]string{"Date", "Weight (kg)", "Steps", "Calories", "Protein (g)", "Workout", "Plan Day", "Completed", "Note"}); err != nil {
		return err
	}

	for _, l := range logs {
		planDay := ""
		completed := ""
		if l.PlanDayID != nil {
			planDay = *l.PlanDayID
			if cycle != nil {
				if d, ok := cycle.Day(*l.PlanDayID); ok {
					planDay = d.Title
					completed = fmt.Sprintf("%d/%d", l.CompletedCount(len(d.Exercises)), len(d.Exercises))
				}
			}
		}
		workout := ""
		if l.WorkoutDone != nil {
			workout = "no"
			if *l.WorkoutDone {
				workout = "yes"
			}
		}
		note := ""
		if l.Note != nil {
			note = *l.Note
		}

		row := []string{
			l.Date,
			formatWeight(l.WeightKg),
			formatCount(l.Steps),
			formatCount(l.Calories),
			formatCount(l.ProteinG),
			workout,
			planDay,
			completed,
			note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatWeight(w *float64) string {
	if w == nil {
		return ""
	}
	return strconv.FormatFloat(*w, 'f', 1, 64)
}

func formatCount(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
