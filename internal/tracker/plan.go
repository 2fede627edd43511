package tracker

import (
	log "github.com/sirupsen/logrus"

	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/plan"
)

// EnsureCycle returns the active plan cycle for date. A missing or expired
// cycle is regenerated anchored at date and persisted, so this read may
// write.
func (s *Session) EnsureCycle(date string) (model.PlanCycle, error) {
	if err := validDate(date); err != nil {
		return model.PlanCycle{}, err
	}
	doc := s.Load()
	if !plan.NeedsRegeneration(doc.PlanCycle, date) {
		return *doc.PlanCycle, nil
	}
	s.regenerate(doc, date)
	if err := s.Save(doc); err != nil {
		return model.PlanCycle{}, err
	}
	return *doc.PlanCycle, nil
}

// PlanCycle is EnsureCycle for today.
func (s *Session) PlanCycle() (model.PlanCycle, error) {
	return s.EnsureCycle(s.Today())
}

// PlanForDate picks the plan day for date. A day already recorded on the
// log entry wins over the weekday mapping while it exists in the cycle.
func (s *Session) PlanForDate(date string) (model.PlanDay, error) {
	cycle, err := s.EnsureCycle(date)
	if err != nil {
		return model.PlanDay{}, err
	}
	if l, ok := s.GetLog(date); ok && l.PlanDayID != nil {
		if d, ok := cycle.Day(*l.PlanDayID); ok {
			return d, nil
		}
	}
	return plan.SelectForDate(date, cycle), nil
}

func (s *Session) regenerate(doc *model.Document, date string) {
	settings := doc.Settings.Apply(model.DefaultSettings())
	cycle := plan.Generate(doc.CustomExercises, date, s.cadenceFor(settings))
	doc.PlanCycle = &cycle
	log.WithFields(log.Fields{
		"cycle":   cycle.ID,
		"start":   cycle.StartDate,
		"cadence": cycle.CadenceDays,
	}).Info("plan cycle generated")
}
