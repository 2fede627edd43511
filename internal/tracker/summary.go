package tracker

import (
	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/stats"
)

// Summary folds the whole log into the headline figures.
func (s *Session) Summary() model.Summary {
	return stats.Summarize(s.ListLogs(), s.now())
}

// CoachTips returns at most stats.MaxTips tips for date.
func (s *Session) CoachTips(date string) ([]string, error) {
	day, err := s.PlanForDate(date)
	if err != nil {
		return nil, err
	}
	doc := s.Load()
	logs := doc.SortedLogs()
	var today *model.DayLog
	if l, ok := doc.LogsByDate[date]; ok {
		today = &l
	}
	settings := doc.Settings.Apply(model.DefaultSettings())
	return stats.CoachTips(logs, today, settings, day, stats.Summarize(logs, s.now())), nil
}
