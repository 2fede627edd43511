package plan

import (
	"strings"

	"github.com/sadopc/fittrack/internal/model"
)

// ex builds an exercise, folding rest time into the notes.
func ex(name, sets, rest, notes string, equipment ...string) model.Exercise {
	var parts []string
	if rest != "" {
		parts = append(parts, "Rest "+rest)
	}
	if notes != "" {
		parts = append(parts, notes)
	}
	return model.Exercise{
		Name:      name,
		Sets:      sets,
		Notes:     strings.Join(parts, " · "),
		Equipment: equipment,
	}
}

type pool []model.Exercise

var (
	squatPool = pool{
		ex("Goblet squat", "3×8–12", "1 min 30 sec", "", "dumbbells"),
		ex("Leg press", "3×10–12", "1 min 30 sec", "", "leg press"),
		ex("Bulgarian split squat", "3×8–10/side", "1 min 30 sec", "", "dumbbells"),
		ex("Lunges", "2×10/side", "1 min 30 sec", "", "dumbbells", "bodyweight"),
	}
	hingePool = pool{
		ex("Romanian deadlift (DB)", "3×8–10", "1 min 30 sec", "", "dumbbells"),
		ex("Hip thrust", "3×10–12", "1 min 30 sec", "", "barbell"),
		ex("Back extension", "3×12–15", "1 min", "", "bodyweight"),
	}
	pushPool = pool{
		ex("Incline dumbbell press", "3×8–12", "1 min", "", "dumbbells"),
		ex("Flat dumbbell press", "3×8–12", "1 min", "", "dumbbells"),
		ex("Butterfly machine", "2×12–15", "1 min", "", "butterfly"),
		ex("Push-ups", "3×AMRAP", "1 min", "Stop 2 reps short of failure", "bodyweight"),
	}
	overheadPool = pool{
		ex("Dumbbell shoulder press", "3×8–12", "1 min", "", "dumbbells"),
		ex("Dumbbell lateral raises", "3×12–15", "1 min", "", "dumbbells"),
	}
	pullPool = pool{
		ex("Overhead pulldown (long bar)", "3×8–12", "1 min", "", "pulldown", "cables"),
		ex("Cable row (short bar/diamond handle)", "3×8–12", "1 min", "", "cables"),
		ex("Dumbbell row", "3×8–12", "1 min", "", "dumbbells"),
		ex("Face pulls (rope)", "2×12–15", "1 min", "", "cables"),
	}
	accessoryPool = pool{
		ex("DB curls", "3×10–15", "1 min", "", "dumbbells"),
		ex("Hammer curls", "2×10–12", "1 min", "", "dumbbells"),
		ex("Calf raises (DB)", "3×12–15", "1 min", "", "dumbbells"),
		ex("Tricep pushdowns", "3×12–15", "1 min", "", "cables"),
	}
	corePool = pool{
		ex("Plank", "3×30–60s", "1 min", "", "bodyweight"),
		ex("Side plank", "3×30s/side", "1 min", "", "bodyweight"),
		ex("Hanging leg raises", "3×10–12", "1 min", "", "bodyweight"),
		ex("Crunches", "3×12–15", "1 min", "", "bodyweight"),
	}
	cardioPool = pool{
		ex("Incline treadmill walk", "20–30 min", "", "Zone 2", "treadmill"),
		ex("Elliptical / cross‑walker", "20–30 min", "", "Zone 2", "elliptical"),
		ex("Pool swim / walk", "20–30 min", "", "Easy pace", "pool"),
		ex("Treadmill walk", "20–30 min", "", "Zone 2", "treadmill"),
	}
)

// slot names a pool; the accessory slot is where custom exercises go.
type slot int

const (
	slotSquat slot = iota
	slotHinge
	slotPush
	slotOverhead
	slotPull
	slotAccessory
	slotCore
	slotCardio
)

var pools = map[slot]pool{
	slotSquat:     squatPool,
	slotHinge:     hingePool,
	slotPush:      pushPool,
	slotOverhead:  overheadPool,
	slotPull:      pullPool,
	slotAccessory: accessoryPool,
	slotCore:      corePool,
	slotCardio:    cardioPool,
}

type template struct {
	title string
	focus string
	slots []slot
}

var trainingDays = []template{
	{"Full Body A", "Push/Pull/Legs + Cardio", []slot{slotSquat, slotPush, slotPull, slotOverhead, slotHinge, slotCore, slotCardio}},
	{"Full Body B", "Legs + Upper + Cardio", []slot{slotSquat, slotPush, slotPull, slotOverhead, slotAccessory, slotCore, slotCardio}},
	{"Full Body C", "Upper + Core + Cardio", []slot{slotPull, slotPush, slotSquat, slotPull, slotAccessory, slotCore, slotCardio}},
	{"Full Body D", "Strength + Cardio", []slot{slotSquat, slotPush, slotPull, slotOverhead, slotAccessory, slotCore, slotCardio}},
	{"Full Body E", "Posterior chain + Upper + Cardio", []slot{slotHinge, slotPush, slotPull, slotOverhead, slotAccessory, slotCore, slotCardio}},
}

var restDay = []model.Exercise{
	{Name: "Steps + light stretching", Sets: "optional", Equipment: []string{"bodyweight"}},
}
