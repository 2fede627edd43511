package plan

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/sadopc/fittrack/internal/model"
)

// DefaultCadenceDays is how long a cycle lives when nothing else is configured.
const DefaultCadenceDays = 7

const customSets = "3×10–12"

// Generate builds a 7-day cycle: five training days followed by two rest
// days. Exercise selection is seeded from startDate, so the same inputs
// always give the same days. Custom names, when given, replace the
// accessory pool.
func Generate(custom []string, startDate string, cadenceDays int) model.PlanCycle {
	if cadenceDays <= 0 {
		cadenceDays = DefaultCadenceDays
	}
	custom = model.CleanNames(custom)
	rng := rand.New(rand.NewPCG(seedFor(startDate), uint64(len(custom))))

	available := make(map[slot]pool, len(pools))
	for s, p := range pools {
		available[s] = p
	}
	if len(custom) > 0 {
		var cp pool
		for _, name := range custom {
			cp = append(cp, model.Exercise{Name: name, Sets: customSets, Notes: "Custom"})
		}
		available[slotAccessory] = cp
	}

	// Each slot walks its own shuffled order so consecutive days vary.
	orders := make(map[slot][]int, len(available))
	cursors := make(map[slot]int, len(available))
	for _, s := range []slot{slotSquat, slotHinge, slotPush, slotOverhead, slotPull, slotAccessory, slotCore, slotCardio} {
		orders[s] = rng.Perm(len(available[s]))
	}

	days := make([]model.PlanDay, 0, 7)
	for i, tpl := range trainingDays {
		used := make(map[string]bool)
		var exercises []model.Exercise
		for _, s := range tpl.slots {
			p := available[s]
			for tries := 0; tries < len(p); tries++ {
				e := p[orders[s][cursors[s]%len(p)]]
				cursors[s]++
				if used[e.Name] {
					continue
				}
				used[e.Name] = true
				exercises = append(exercises, e)
				break
			}
		}
		days = append(days, model.PlanDay{
			ID:        fmt.Sprintf("d%d", i+1),
			Title:     fmt.Sprintf("Day %d — %s", i+1, tpl.title),
			Focus:     tpl.focus,
			Exercises: exercises,
		})
	}
	for i := len(days); i < 7; i++ {
		days = append(days, model.PlanDay{
			ID:        fmt.Sprintf("d%d", i+1),
			Title:     fmt.Sprintf("Day %d — Off", i+1),
			Focus:     "Rest",
			Exercises: restDay,
		})
	}

	name := "5-Day Full Body"
	if len(custom) > 0 {
		name = "5-Day Full Body (custom)"
	}
	return model.PlanCycle{
		ID:          uuid.NewString(),
		Name:        name,
		StartDate:   startDate,
		CadenceDays: cadenceDays,
		Days:        days,
	}
}

func seedFor(startDate string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(startDate))
	return h.Sum64()
}

// SelectForDate returns the plan day for date's weekday, Monday first.
// Unparseable dates and short cycles fall back to the first day.
func SelectForDate(date string, cycle model.PlanCycle) model.PlanDay {
	if len(cycle.Days) == 0 {
		return model.PlanDay{}
	}
	t, err := model.ParseDate(date)
	if err != nil {
		return cycle.Days[0]
	}
	idx := (int(t.Weekday()) + 6) % 7
	if idx >= len(cycle.Days) {
		return cycle.Days[0]
	}
	return cycle.Days[idx]
}

// DaysBetween returns the calendar-day distance from one date key to another.
func DaysBetween(from, to string) (int, error) {
	a, err := model.ParseDate(from)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", from, err)
	}
	b, err := model.ParseDate(to)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", to, err)
	}
	return int(math.Round(b.Sub(a).Hours() / 24)), nil
}

// NeedsRegeneration reports whether a cycle has expired by date.
func NeedsRegeneration(cycle *model.PlanCycle, date string) bool {
	if cycle == nil || len(cycle.Days) != 7 {
		return true
	}
	cadence := cycle.CadenceDays
	if cadence <= 0 {
		cadence = DefaultCadenceDays
	}
	age, err := DaysBetween(cycle.StartDate, date)
	if err != nil {
		return true
	}
	return age >= cadence
}
