package model

import (
	"slices"
	"time"
)

// DocumentVersion is the schema tag written into every persisted document.
const DocumentVersion = 1

// DateLayout is the calendar date format used for log keys.
const DateLayout = "2006-01-02"

// DayLog holds one calendar day's metrics. Nil fields were never recorded.
type DayLog struct {
	Date                 string   `json:"date"`
	WeightKg             *float64 `json:"weightKg,omitempty"`
	Steps                *int     `json:"steps,omitempty"`
	Calories             *int     `json:"calories,omitempty"`
	ProteinG             *int     `json:"proteinG,omitempty"`
	WorkoutDone          *bool    `json:"workoutDone,omitempty"`
	PlanDayID            *string  `json:"planDayId,omitempty"`
	CompletedExerciseIdx []int    `json:"completedExerciseIdx,omitempty"`
	Note                 *string  `json:"note,omitempty"`
}

// Done reports whether the workout was marked complete.
func (l DayLog) Done() bool {
	return l.WorkoutDone != nil && *l.WorkoutDone
}

// CompletedCount counts distinct completed indices that fall inside an
// exercise list of length n. Indices left over from an older plan shape
// are ignored.
func (l DayLog) CompletedCount(n int) int {
	seen := make(map[int]bool, len(l.CompletedExerciseIdx))
	for _, i := range l.CompletedExerciseIdx {
		if i >= 0 && i < n {
			seen[i] = true
		}
	}
	return len(seen)
}

// IsCompleted reports whether exercise idx is checked off.
func (l DayLog) IsCompleted(idx int) bool {
	return slices.Contains(l.CompletedExerciseIdx, idx)
}

// Merge overlays the present fields of patch onto l. The date of l is kept.
func (l DayLog) Merge(patch DayLog) DayLog {
	out := l
	if patch.WeightKg != nil {
		out.WeightKg = patch.WeightKg
	}
	if patch.Steps != nil {
		out.Steps = patch.Steps
	}
	if patch.Calories != nil {
		out.Calories = patch.Calories
	}
	if patch.ProteinG != nil {
		out.ProteinG = patch.ProteinG
	}
	if patch.WorkoutDone != nil {
		out.WorkoutDone = patch.WorkoutDone
	}
	if patch.PlanDayID != nil {
		out.PlanDayID = patch.PlanDayID
	}
	if patch.CompletedExerciseIdx != nil {
		out.CompletedExerciseIdx = slices.Clone(patch.CompletedExerciseIdx)
	}
	if patch.Note != nil {
		out.Note = patch.Note
	}
	return out
}

type Settings struct {
	StepGoal         int `json:"stepGoal"`
	CalorieTarget    int `json:"calorieTarget"`
	ProteinTarget    int `json:"proteinTarget"`
	ShuffleEveryDays int `json:"shuffleEveryDays,omitempty"` // 0 = use configured cadence
}

// DefaultSettings are the targets used until the user overrides them.
func DefaultSettings() Settings {
	return Settings{
		StepGoal:      10000,
		CalorieTarget: 2200,
		ProteinTarget: 160,
	}
}

// SettingsOverrides is the stored, partial form of Settings.
type SettingsOverrides struct {
	StepGoal         *int `json:"stepGoal,omitempty"`
	CalorieTarget    *int `json:"calorieTarget,omitempty"`
	ProteinTarget    *int `json:"proteinTarget,omitempty"`
	ShuffleEveryDays *int `json:"shuffleEveryDays,omitempty"`
}

// Apply returns base with every stored override applied.
func (o SettingsOverrides) Apply(base Settings) Settings {
	if o.StepGoal != nil {
		base.StepGoal = *o.StepGoal
	}
	if o.CalorieTarget != nil {
		base.CalorieTarget = *o.CalorieTarget
	}
	if o.ProteinTarget != nil {
		base.ProteinTarget = *o.ProteinTarget
	}
	if o.ShuffleEveryDays != nil {
		base.ShuffleEveryDays = *o.ShuffleEveryDays
	}
	return base
}

// Merge overlays the positive fields of patch. Non-positive values count as
// absent.
func (o SettingsOverrides) Merge(patch SettingsOverrides) SettingsOverrides {
	pick := func(cur, next *int) *int {
		if next != nil && *next > 0 {
			v := *next
			return &v
		}
		return cur
	}
	return SettingsOverrides{
		StepGoal:         pick(o.StepGoal, patch.StepGoal),
		CalorieTarget:    pick(o.CalorieTarget, patch.CalorieTarget),
		ProteinTarget:    pick(o.ProteinTarget, patch.ProteinTarget),
		ShuffleEveryDays: pick(o.ShuffleEveryDays, patch.ShuffleEveryDays),
	}
}

type Exercise struct {
	Name      string   `json:"name"`
	Sets      string   `json:"sets,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
}

type PlanDay struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

// IsRest reports whether the day carries no training workload.
func (d PlanDay) IsRest() bool {
	return d.Focus == "Rest"
}

type PlanCycle struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	StartDate   string    `json:"startDate"`
	CadenceDays int       `json:"cadenceDays"`
	Days        []PlanDay `json:"days"`
}

// Day looks up a plan day by id.
func (c PlanCycle) Day(id string) (PlanDay, bool) {
	for _, d := range c.Days {
		if d.ID == id {
			return d, true
		}
	}
	return PlanDay{}, false
}

// Document is the persisted root. It is always written as a whole.
type Document struct {
	Version         int               `json:"version"`
	LogsByDate      map[string]DayLog `json:"logsByDate"`
	Settings        SettingsOverrides `json:"settings"`
	PlanCycle       *PlanCycle        `json:"planCycle,omitempty"`
	CustomExercises []string          `json:"customExercises,omitempty"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{
		Version:    DocumentVersion,
		LogsByDate: make(map[string]DayLog),
	}
}

// SortedLogs returns the log entries ordered by date.
func (d *Document) SortedLogs() []DayLog {
	logs := make([]DayLog, 0, len(d.LogsByDate))
	for _, l := range d.LogsByDate {
		logs = append(logs, l)
	}
	slices.SortFunc(logs, func(a, b DayLog) int {
		switch {
		case a.Date < b.Date:
			return -1
		case a.Date > b.Date:
			return 1
		}
		return 0
	})
	return logs
}

// Summary is the folded view of the log collection.
type Summary struct {
	LatestWeight *float64
	AvgSteps7    *int
	Workouts7    int
	Streak       int
	LossRate     *float64 // kg lost per week, positive means losing
}

// ParseDate parses a yyyy-mm-dd key as a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateKey formats t as a calendar date key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

func Ptr[T any](v T) *T {
	return &v
}
