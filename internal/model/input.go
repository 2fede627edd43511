package model

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// ParseWeight turns form text into a weight. Anything that is not a positive
// finite number yields nil.
func ParseWeight(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil
	}
	return &v
}

// MaxCount bounds steps, calories and protein so sums over a log cannot
// overflow.
const MaxCount = math.MaxInt32

// ParseCount turns form text into an integer in [0, MaxCount], or nil.
func ParseCount(s string) *int {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) || f < 0 || f > MaxCount {
			return nil
		}
		v = int(math.Round(f))
	}
	if v < 0 || v > MaxCount {
		return nil
	}
	return &v
}

// SplitNames parses a comma or newline separated list, dropping blanks and
// case-insensitive duplicates.
func SplitNames(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' })
	return CleanNames(fields)
}

// CleanNames trims names and removes blanks and duplicates, keeping order.
func CleanNames(names []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range names {
		n = strings.TrimSpace(n)
		k := strings.ToLower(n)
		if n == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, n)
	}
	return out
}

// Sanitized drops values no form could have produced: non-positive or
// non-finite weights, counts outside [0, MaxCount] and negative exercise
// indices.
// Remaining indices are de-duplicated and sorted.
func (l DayLog) Sanitized() DayLog {
	if l.WeightKg != nil && (math.IsNaN(*l.WeightKg) || math.IsInf(*l.WeightKg, 0) || *l.WeightKg <= 0) {
		l.WeightKg = nil
	}
	for _, p := range []**int{&l.Steps, &l.Calories, &l.ProteinG} {
		if *p != nil && (**p < 0 || **p > MaxCount) {
			*p = nil
		}
	}
	if l.CompletedExerciseIdx != nil {
		idx := make([]int, 0, len(l.CompletedExerciseIdx))
		for _, i := range l.CompletedExerciseIdx {
			if i >= 0 {
				idx = append(idx, i)
			}
		}
		slices.Sort(idx)
		l.CompletedExerciseIdx = slices.Compact(idx)
	}
	return l
}
