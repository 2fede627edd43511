package model

import (
	"testing"
)

func TestMergePreservesAbsentFields(t *testing.T) {
	base := DayLog{Date: "2026-01-05", WeightKg: Ptr(90.5), Steps: Ptr(8000)}
	got := base.Merge(DayLog{Steps: Ptr(9000), Note: Ptr("legs sore")})

	if got.Date != "2026-01-05" {
		t.Fatalf("date changed: %q", got.Date)
	}
	if got.WeightKg == nil || *got.WeightKg != 90.5 {
		t.Fatalf("weight should be preserved, got %v", got.WeightKg)
	}
	if *got.Steps != 9000 {
		t.Fatalf("steps = %d, want 9000", *got.Steps)
	}
	if *got.Note != "legs sore" {
		t.Fatalf("note = %q", *got.Note)
	}
}

func TestMergeDoesNotAliasIndices(t *testing.T) {
	idx := []int{0, 1}
	got := DayLog{}.Merge(DayLog{CompletedExerciseIdx: idx})
	idx[0] = 7
	if got.CompletedExerciseIdx[0] != 0 {
		t.Fatal("merge should copy the index slice")
	}
}

func TestCompletedCountClampsStaleIndices(t *testing.T) {
	l := DayLog{CompletedExerciseIdx: []int{0, 2, 2, 5, 9, -1}}
	if got := l.CompletedCount(3); got != 2 {
		t.Fatalf("CompletedCount(3) = %d, want 2", got)
	}
	if got := l.CompletedCount(0); got != 0 {
		t.Fatalf("CompletedCount(0) = %d, want 0", got)
	}
}

func TestSettingsOverrides(t *testing.T) {
	var o SettingsOverrides
	s := o.Apply(DefaultSettings())
	if s != DefaultSettings() {
		t.Fatalf("empty overrides changed defaults: %+v", s)
	}

	o = o.Merge(SettingsOverrides{StepGoal: Ptr(12000), ProteinTarget: Ptr(0), CalorieTarget: Ptr(-5)})
	s = o.Apply(DefaultSettings())
	if s.StepGoal != 12000 {
		t.Fatalf("StepGoal = %d, want 12000", s.StepGoal)
	}
	if s.ProteinTarget != 160 || s.CalorieTarget != 2200 {
		t.Fatalf("non-positive values should be ignored: %+v", s)
	}
}

func TestSortedLogs(t *testing.T) {
	d := NewDocument()
	for _, k := range []string{"2026-03-02", "2025-12-31", "2026-01-15"} {
		d.LogsByDate[k] = DayLog{Date: k}
	}
	logs := d.SortedLogs()
	want := []string{"2025-12-31", "2026-01-15", "2026-03-02"}
	for i, w := range want {
		if logs[i].Date != w {
			t.Fatalf("logs[%d] = %s, want %s", i, logs[i].Date, w)
		}
	}
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"82.4", 82.4, true},
		{" 82,4 ", 82.4, true},
		{"", 0, false},
		{"abc", 0, false},
		{"0", 0, false},
		{"-3", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		got := ParseWeight(tt.in)
		if (got != nil) != tt.ok {
			t.Errorf("ParseWeight(%q) = %v, want ok=%v", tt.in, got, tt.ok)
			continue
		}
		if got != nil && *got != tt.want {
			t.Errorf("ParseWeight(%q) = %v, want %v", tt.in, *got, tt.want)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"10000", 10000, true},
		{"10_000", 10000, true},
		{"0", 0, true},
		{"152.6", 153, true},
		{"-1", 0, false},
		{"lots", 0, false},
		{"", 0, false},
		{"2147483647", MaxCount, true},
		{"2147483648", 0, false},
		{"99999999999999999999", 0, false},
		{"1e30", 0, false},
		{"+Inf", 0, false},
	}
	for _, tt := range tests {
		got := ParseCount(tt.in)
		if (got != nil) != tt.ok {
			t.Errorf("ParseCount(%q) = %v, want ok=%v", tt.in, got, tt.ok)
			continue
		}
		if got != nil && *got != tt.want {
			t.Errorf("ParseCount(%q) = %d, want %d", tt.in, *got, tt.want)
		}
	}
}

func TestSplitNames(t *testing.T) {
	got := SplitNames("Kettlebell swing, , farmer carry\nkettlebell SWING,Sled push")
	want := []string{"Kettlebell swing", "farmer carry", "Sled push"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSanitized(t *testing.T) {
	l := DayLog{
		Date:                 "2026-01-05",
		WeightKg:             Ptr(-1.0),
		Steps:                Ptr(-20),
		Calories:             Ptr(1800),
		ProteinG:             Ptr(-3),
		CompletedExerciseIdx: []int{3, -1, 0, 3},
	}.Sanitized()

	if l.WeightKg != nil || l.Steps != nil || l.ProteinG != nil {
		t.Fatalf("invalid values should be dropped: %+v", l)
	}
	if l.Calories == nil || *l.Calories != 1800 {
		t.Fatalf("valid calories dropped: %v", l.Calories)
	}
	if len(l.CompletedExerciseIdx) != 2 || l.CompletedExerciseIdx[0] != 0 || l.CompletedExerciseIdx[1] != 3 {
		t.Fatalf("indices = %v, want [0 3]", l.CompletedExerciseIdx)
	}
}

func TestSanitizedDropsHugeCounts(t *testing.T) {
	huge := MaxCount
	huge++
	l := DayLog{Steps: &huge, Calories: Ptr(MaxCount)}.Sanitized()
	if l.Steps != nil {
		t.Fatalf("steps above MaxCount kept: %d", *l.Steps)
	}
	if l.Calories == nil || *l.Calories != MaxCount {
		t.Fatal("MaxCount itself is valid")
	}
}
