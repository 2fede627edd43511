package plan_test

import (
	"testing"

	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseNames(c model.PlanCycle) [][]string {
	var out [][]string
	for _, d := range c.Days {
		var names []string
		for _, e := range d.Exercises {
			names = append(names, e.Name)
		}
		out = append(out, names)
	}
	return out
}

func TestGenerate_Shape(t *testing.T) {
	c := plan.Generate(nil, "2026-01-05", 14)

	require.Len(t, c.Days, 7)
	assert.Equal(t, "2026-01-05", c.StartDate)
	assert.Equal(t, 14, c.CadenceDays)
	assert.NotEmpty(t, c.ID)

	ids := make(map[string]bool)
	for i, d := range c.Days {
		assert.False(t, ids[d.ID], "duplicate day id %s", d.ID)
		ids[d.ID] = true
		assert.NotEmpty(t, d.Exercises, "day %d has no exercises", i)

		seen := make(map[string]bool)
		for _, e := range d.Exercises {
			assert.False(t, seen[e.Name], "day %s repeats %s", d.ID, e.Name)
			seen[e.Name] = true
		}
	}
	assert.True(t, c.Days[5].IsRest())
	assert.True(t, c.Days[6].IsRest())
	assert.False(t, c.Days[0].IsRest())
}

func TestGenerate_DefaultCadence(t *testing.T) {
	c := plan.Generate(nil, "2026-01-05", 0)
	assert.Equal(t, plan.DefaultCadenceDays, c.CadenceDays)
}

func TestGenerate_DeterministicForStartDate(t *testing.T) {
	a := plan.Generate(nil, "2026-02-10", 7)
	b := plan.Generate(nil, "2026-02-10", 7)

	assert.Equal(t, exerciseNames(a), exerciseNames(b))
	assert.NotEqual(t, a.ID, b.ID, "each generated cycle gets its own id")
}

func TestGenerate_VariesAcrossStartDates(t *testing.T) {
	base := exerciseNames(plan.Generate(nil, "2026-01-01", 7))
	differs := false
	for _, d := range []string{"2026-01-08", "2026-01-15", "2026-01-22", "2026-01-29"} {
		if !assert.ObjectsAreEqual(base, exerciseNames(plan.Generate(nil, d, 7))) {
			differs = true
		}
	}
	assert.True(t, differs, "plans should rotate over time")
}

func TestGenerate_CustomExercises(t *testing.T) {
	custom := []string{"Kettlebell swing", " ", "Farmer carry", "kettlebell swing"}
	c := plan.Generate(custom, "2026-01-05", 7)

	assert.Contains(t, c.Name, "custom")

	found := make(map[string]bool)
	for _, d := range c.Days {
		for _, e := range d.Exercises {
			if e.Notes == "Custom" {
				found[e.Name] = true
			}
		}
	}
	assert.True(t, found["Kettlebell swing"])
	assert.True(t, found["Farmer carry"])
	assert.Len(t, found, 2)
}

func TestSelectForDate(t *testing.T) {
	c := plan.Generate(nil, "2026-01-05", 7)

	tests := []struct {
		date string
		idx  int
	}{
		{"2026-01-05", 0}, // Monday
		{"2026-01-06", 1},
		{"2026-01-10", 5}, // Saturday
		{"2026-01-11", 6}, // Sunday
		{"garbage", 0},
	}
	for _, tt := range tests {
		got := plan.SelectForDate(tt.date, c)
		assert.Equal(t, c.Days[tt.idx].ID, got.ID, "date %s", tt.date)
	}
}

func TestSelectForDate_ShortCycle(t *testing.T) {
	c := model.PlanCycle{Days: []model.PlanDay{{ID: "only"}}}
	assert.Equal(t, "only", plan.SelectForDate("2026-01-11", c).ID)
	assert.Empty(t, plan.SelectForDate("2026-01-11", model.PlanCycle{}).ID)
}

func TestDaysBetween(t *testing.T) {
	n, err := plan.DaysBetween("2026-02-27", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = plan.DaysBetween("2026-03-02", "2026-02-27")
	require.NoError(t, err)
	assert.Equal(t, -3, n)

	_, err = plan.DaysBetween("2026-13-01", "2026-01-01")
	assert.Error(t, err)
}

func TestNeedsRegeneration(t *testing.T) {
	c := plan.Generate(nil, "2026-01-05", 7)

	assert.True(t, plan.NeedsRegeneration(nil, "2026-01-05"))
	assert.False(t, plan.NeedsRegeneration(&c, "2026-01-05"))
	assert.False(t, plan.NeedsRegeneration(&c, "2026-01-11"))
	assert.True(t, plan.NeedsRegeneration(&c, "2026-01-12"))
	assert.False(t, plan.NeedsRegeneration(&c, "2025-12-30"), "dates before the start keep the cycle")

	broken := c
	broken.StartDate = "???"
	assert.True(t, plan.NeedsRegeneration(&broken, "2026-01-06"))

	short := c
	short.Days = c.Days[:3]
	assert.True(t, plan.NeedsRegeneration(&short, "2026-01-06"))
}
