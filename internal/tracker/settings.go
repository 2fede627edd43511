package tracker

import (
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/sadopc/fittrack/internal/model"
)

// Settings returns the defaults with stored overrides applied.
func (s *Session) Settings() model.Settings {
	return s.Load().Settings.Apply(model.DefaultSettings())
}

// UpdateSettings merges patch into the stored overrides. Non-positive values
// are ignored. A changed shuffle cadence also moves the active cycle's expiry.
func (s *Session) UpdateSettings(patch model.SettingsOverrides) (model.Settings, error) {
	doc := s.Load()
	doc.Settings = doc.Settings.Merge(patch)
	settings := doc.Settings.Apply(model.DefaultSettings())
	if doc.PlanCycle != nil {
		doc.PlanCycle.CadenceDays = s.cadenceFor(settings)
	}
	if err := s.Save(doc); err != nil {
		return model.Settings{}, err
	}
	log.Debugf("settings updated: %+v", settings)
	return settings, nil
}

func (s *Session) CustomExercises() []string {
	return s.Load().CustomExercises
}

// UpdateCustomExercises stores the cleaned name list. When the list changes
// the plan cycle is regenerated from today.
func (s *Session) UpdateCustomExercises(names []string) error {
	doc := s.Load()
	names = model.CleanNames(names)
	if slices.Equal(names, doc.CustomExercises) && doc.PlanCycle != nil {
		return nil
	}
	doc.CustomExercises = names
	s.regenerate(doc, s.Today())
	if err := s.Save(doc); err != nil {
		return err
	}
	log.Infof("custom exercises updated (%d), plan regenerated", len(names))
	return nil
}
