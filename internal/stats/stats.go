// Package stats folds a day log collection into progress figures. Every
// function here is pure; callers pass the current date explicitly.
package stats

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/sadopc/fittrack/internal/model"
)

// WindowSize is the number of trailing log entries the 7-day figures use.
const WindowSize = 7

// MaxStreak caps how far back CompletionStreak walks.
const MaxStreak = 365

func sorted(logs []model.DayLog) []model.DayLog {
	if slices.IsSortedFunc(logs, byDate) {
		return logs
	}
	out := slices.Clone(logs)
	slices.SortFunc(out, byDate)
	return out
}

func byDate(a, b model.DayLog) int {
	return strings.Compare(a.Date, b.Date)
}

// WeeklyLossRate returns kg lost per 7 days between the first and last
// weigh-in. It needs two weigh-ins at least a week apart.
func WeeklyLossRate(logs []model.DayLog) (float64, bool) {
	var weighed []model.DayLog
	for _, l := range sorted(logs) {
		if l.WeightKg != nil {
			weighed = append(weighed, l)
		}
	}
	if len(weighed) < 2 {
		return 0, false
	}
	first, last := weighed[0], weighed[len(weighed)-1]
	a, err := model.ParseDate(first.Date)
	if err != nil {
		return 0, false
	}
	b, err := model.ParseDate(last.Date)
	if err != nil {
		return 0, false
	}
	days := math.Round(b.Sub(a).Hours() / 24)
	if days < 7 {
		return 0, false
	}
	delta := *last.WeightKg - *first.WeightKg
	return -(delta / (days / 7)), true
}

// CompletionStreak counts consecutive days ending today with a completed
// workout. A day without a log entry breaks the streak.
func CompletionStreak(logs []model.DayLog, today time.Time) int {
	byKey := make(map[string]model.DayLog, len(logs))
	for _, l := range logs {
		byKey[l.Date] = l
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	streak := 0
	for i := 0; i < MaxStreak; i++ {
		l, ok := byKey[model.DateKey(day.AddDate(0, 0, -i))]
		if !ok || !l.Done() {
			break
		}
		streak++
	}
	return streak
}

// Summarize computes the headline figures. The 7-day window is the last
// seven log entries, not the last seven calendar days.
func Summarize(logs []model.DayLog, today time.Time) model.Summary {
	logs = sorted(logs)
	var s model.Summary

	for i := len(logs) - 1; i >= 0; i-- {
		if logs[i].WeightKg != nil {
			w := *logs[i].WeightKg
			s.LatestWeight = &w
			break
		}
	}

	window := logs[max(0, len(logs)-WindowSize):]
	var steps, counted int
	for _, l := range window {
		if l.Steps != nil {
			steps += *l.Steps
			counted++
		}
		if l.Done() {
			s.Workouts7++
		}
	}
	if counted > 0 {
		avg := int(math.Round(float64(steps) / float64(counted)))
		s.AvgSteps7 = &avg
	}

	s.Streak = CompletionStreak(logs, today)
	if rate, ok := WeeklyLossRate(logs); ok {
		s.LossRate = &rate
	}
	return s
}
