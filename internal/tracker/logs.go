package tracker

import (
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/sadopc/fittrack/internal/model"
)

// ListLogs returns every entry sorted by date.
func (s *Session) ListLogs() []model.DayLog {
	return s.Load().SortedLogs()
}

func (s *Session) GetLog(date string) (model.DayLog, bool) {
	l, ok := s.Load().LogsByDate[date]
	return l, ok
}

// UpsertLog merges the present fields of patch into the entry for date,
// creating it if needed. Invalid values in patch are dropped.
func (s *Session) UpsertLog(date string, patch model.DayLog) (model.DayLog, error) {
	if err := validDate(date); err != nil {
		return model.DayLog{}, err
	}
	doc := s.Load()
	cur, ok := doc.LogsByDate[date]
	if !ok {
		cur = model.DayLog{Date: date}
	}
	next := cur.Merge(patch.Sanitized())
	next.Date = date
	doc.LogsByDate[date] = next
	if err := s.Save(doc); err != nil {
		return model.DayLog{}, err
	}
	log.Tracef("upserted log %s", date)
	return next, nil
}

// ToggleExercise flips exercise idx of the plan day for date. The workout
// is marked done once every exercise of that day is checked. Unchecking
// undoes it only when the full set had been checked; adding a check never
// clears a workout marked done by hand.
func (s *Session) ToggleExercise(date string, idx int) (model.DayLog, error) {
	if err := validDate(date); err != nil {
		return model.DayLog{}, err
	}
	day, err := s.PlanForDate(date)
	if err != nil {
		return model.DayLog{}, err
	}
	cur, _ := s.GetLog(date)

	completed := slices.Clone(cur.CompletedExerciseIdx)
	removed := false
	if i := slices.Index(completed, idx); i >= 0 {
		completed = slices.Delete(completed, i, i+1)
		removed = true
	} else {
		completed = append(completed, idx)
	}
	if completed == nil {
		completed = []int{}
	}

	patch := model.DayLog{
		CompletedExerciseIdx: completed,
		PlanDayID:            model.Ptr(day.ID),
	}
	total := len(day.Exercises)
	allDone := total > 0 && model.DayLog{CompletedExerciseIdx: completed}.CompletedCount(total) == total
	wasAllDone := total > 0 && cur.CompletedCount(total) == total
	switch {
	case allDone:
		patch.WorkoutDone = model.Ptr(true)
	case removed && wasAllDone && cur.Done():
		patch.WorkoutDone = model.Ptr(false)
	}
	return s.UpsertLog(date, patch)
}
