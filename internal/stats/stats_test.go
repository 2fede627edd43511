package stats_test

import (
	"testing"
	"time"

	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/stats"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC)

func day(offset int) string {
	return model.DateKey(today.AddDate(0, 0, offset))
}

func done(date string) model.DayLog {
	return model.DayLog{Date: date, WorkoutDone: model.Ptr(true)}
}

func TestWeeklyLossRate(t *testing.T) {
	logs := []model.DayLog{
		{Date: "2026-01-01", WeightKg: model.Ptr(90.0)},
		{Date: "2026-01-08", Steps: model.Ptr(4000)},
		{Date: "2026-01-15", WeightKg: model.Ptr(88.0)},
	}
	rate, ok := stats.WeeklyLossRate(logs)
	require.True(t, ok)
	assert.InDelta(t, 1.0, rate, 1e-9)
}

func TestWeeklyLossRate_Gaining(t *testing.T) {
	logs := []model.DayLog{
		{Date: "2026-01-01", WeightKg: model.Ptr(80.0)},
		{Date: "2026-01-08", WeightKg: model.Ptr(80.5)},
	}
	rate, ok := stats.WeeklyLossRate(logs)
	require.True(t, ok)
	assert.InDelta(t, -0.5, rate, 1e-9)
}

func TestWeeklyLossRate_UsesEndpointsOnly(t *testing.T) {
	logs := []model.DayLog{
		{Date: "2026-01-15", WeightKg: model.Ptr(88.0)},
		{Date: "2026-01-01", WeightKg: model.Ptr(90.0)},
		{Date: "2026-01-05", WeightKg: model.Ptr(120.0)},
	}
	rate, ok := stats.WeeklyLossRate(logs)
	require.True(t, ok)
	assert.InDelta(t, 1.0, rate, 1e-9)
}

func TestWeeklyLossRate_NotEnoughData(t *testing.T) {
	_, ok := stats.WeeklyLossRate(nil)
	assert.False(t, ok)

	_, ok = stats.WeeklyLossRate([]model.DayLog{{Date: "2026-01-01", WeightKg: model.Ptr(90.0)}})
	assert.False(t, ok)

	_, ok = stats.WeeklyLossRate([]model.DayLog{
		{Date: "2026-01-01", WeightKg: model.Ptr(90.0)},
		{Date: "2026-01-07", WeightKg: model.Ptr(89.0)},
	})
	assert.False(t, ok, "six days apart is under a week")

	_, ok = stats.WeeklyLossRate([]model.DayLog{
		{Date: "2026-01-01", WeightKg: model.Ptr(90.0)},
		{Date: "not-a-date", WeightKg: model.Ptr(89.0)},
	})
	assert.False(t, ok)
}

func TestCompletionStreak(t *testing.T) {
	logs := []model.DayLog{done(day(0)), done(day(-1)), done(day(-3))}
	assert.Equal(t, 2, stats.CompletionStreak(logs, today))
}

func TestCompletionStreak_TodayNotDone(t *testing.T) {
	logs := []model.DayLog{{Date: day(0), Steps: model.Ptr(5000)}, done(day(-1))}
	assert.Equal(t, 0, stats.CompletionStreak(logs, today))
	assert.Equal(t, 0, stats.CompletionStreak(nil, today))
}

func TestCompletionStreak_Capped(t *testing.T) {
	var logs []model.DayLog
	for i := 0; i < 400; i++ {
		logs = append(logs, done(day(-i)))
	}
	assert.Equal(t, stats.MaxStreak, stats.CompletionStreak(logs, today))
}

func TestSummarize_Empty(t *testing.T) {
	s := stats.Summarize(nil, today)
	assert.Nil(t, s.LatestWeight)
	assert.Nil(t, s.AvgSteps7)
	assert.Nil(t, s.LossRate)
	assert.Zero(t, s.Workouts7)
	assert.Zero(t, s.Streak)
}

func TestSummarize_WindowIsLastSevenEntries(t *testing.T) {
	var logs []model.DayLog
	// Ten entries, every other day, so the last seven span thirteen days.
	for i := 9; i >= 0; i-- {
		l := model.DayLog{Date: day(-2 * i), Steps: model.Ptr(1000 * (10 - i))}
		if i%3 == 0 {
			l.WorkoutDone = model.Ptr(true)
		}
		logs = append(logs, l)
	}
	logs[len(logs)-1].Steps = nil
	logs[2].WeightKg = model.Ptr(91.2)
	logs[5].WeightKg = model.Ptr(90.4)

	s := stats.Summarize(logs, today)

	require.NotNil(t, s.LatestWeight)
	assert.Equal(t, 90.4, *s.LatestWeight)

	// Window holds entries with steps 4000..9000 plus the steps-less last one.
	require.NotNil(t, s.AvgSteps7)
	assert.Equal(t, 6500, *s.AvgSteps7)

	// i = 6, 3, 0 fall in the window.
	assert.Equal(t, 3, s.Workouts7)
	assert.Equal(t, 1, s.Streak)
}

func TestSummarize_AvgStepsRounds(t *testing.T) {
	logs := []model.DayLog{
		{Date: "2026-01-01", Steps: model.Ptr(1000)},
		{Date: "2026-01-02", Steps: model.Ptr(1001)},
	}
	s := stats.Summarize(logs, today)
	require.NotNil(t, s.AvgSteps7)
	assert.Equal(t, 1001, *s.AvgSteps7)
}

func TestSummarize_RandomLogsStayInBounds(t *testing.T) {
	faker := gofakeit.New(7)
	for run := 0; run < 50; run++ {
		var logs []model.DayLog
		n := faker.Number(0, 40)
		for i := 0; i < n; i++ {
			l := model.DayLog{Date: day(-faker.Number(0, 60))}
			if faker.Bool() {
				l.Steps = model.Ptr(faker.Number(0, 25000))
			}
			if faker.Bool() {
				l.WeightKg = model.Ptr(faker.Float64Range(60, 120))
			}
			if faker.Bool() {
				l.WorkoutDone = model.Ptr(faker.Bool())
			}
			logs = append(logs, l)
		}

		s := stats.Summarize(logs, today)
		assert.GreaterOrEqual(t, s.Workouts7, 0)
		assert.LessOrEqual(t, s.Workouts7, stats.WindowSize)
		assert.LessOrEqual(t, s.Streak, 61)
		if s.AvgSteps7 != nil {
			assert.GreaterOrEqual(t, *s.AvgSteps7, 0)
			assert.LessOrEqual(t, *s.AvgSteps7, 25000)
		}
	}
}
