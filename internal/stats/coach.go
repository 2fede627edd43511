package stats

import (
	"fmt"

	"github.com/sadopc/fittrack/internal/model"
)

// MaxTips is the most tips CoachTips returns.
const MaxTips = 3

const onboardingTip = "Start with a quick log (weight, steps, protein) to personalize tips."

// CoachTips runs the heuristics in priority order and keeps the first
// MaxTips that fire. todayLog may be nil.
func CoachTips(logs []model.DayLog, todayLog *model.DayLog, settings model.Settings, planDay model.PlanDay, summary model.Summary) []string {
	var today model.DayLog
	if todayLog != nil {
		today = *todayLog
	}
	protein := deref(today.ProteinG)
	steps := deref(today.Steps)
	calories := deref(today.Calories)
	total := len(planDay.Exercises)

	var tips []string
	if len(logs) == 0 {
		tips = append(tips, onboardingTip)
	}

	if !today.Done() && total > 0 {
		tips = append(tips, fmt.Sprintf("Finish today’s workout (%d/%d done).", today.CompletedCount(total), total))
	}
	if float64(protein) < float64(settings.ProteinTarget)*0.7 {
		tips = append(tips, fmt.Sprintf("Protein is low — aim for %d g today.", settings.ProteinTarget))
	}
	if float64(steps) < float64(settings.StepGoal)*0.7 {
		tips = append(tips, fmt.Sprintf("Steps are low — push toward %d today.", settings.StepGoal))
	}

	if calories > 0 && float64(calories) > float64(settings.CalorieTarget)*1.1 {
		tips = append(tips, "Calories are running high — tighten portions for fat loss.")
	} else if calories > 0 && float64(calories) < float64(settings.CalorieTarget)*0.7 {
		tips = append(tips, "Calories are very low — don’t under‑fuel workouts.")
	}

	if summary.AvgSteps7 != nil && float64(*summary.AvgSteps7) < float64(settings.StepGoal)*0.8 {
		tips = append(tips, "Last 7‑day steps average is low — add a 20–30 min walk.")
	}
	if summary.Workouts7 < 3 {
		tips = append(tips, "Only a few workouts in the last 7 days — aim for 3–4 this week.")
	}

	switch {
	case summary.LossRate == nil:
		tips = append(tips, "Log weight 2×/week so I can track fat‑loss pace.")
	case *summary.LossRate > 1:
		tips = append(tips, "Weight loss is fast — consider a small calorie increase.")
	case *summary.LossRate < 0.1 && calories > 0:
		tips = append(tips, "Fat loss is slow — consider trimming 100–200 kcal/day.")
	}

	if summary.Workouts7 >= 5 {
		tips = append(tips, "Nice volume — prioritize sleep and a light recovery walk.")
	}

	if len(tips) > MaxTips {
		tips = tips[:MaxTips]
	}
	return tips
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
