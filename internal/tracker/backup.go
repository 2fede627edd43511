package tracker

import (
	log "github.com/sirupsen/logrus"

	"github.com/sadopc/fittrack/internal/export"
	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/plan"
)

// ExportJSON renders the current document as a backup.
func (s *Session) ExportJSON() (string, error) {
	doc := s.Load()
	data, err := export.MarshalBackup(doc, doc.Settings.Apply(model.DefaultSettings()), s.now())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ImportJSON replaces the whole document with a parsed backup. Nothing is
// written unless the backup validates.
func (s *Session) ImportJSON(text string) error {
	doc, err := export.ParseBackup([]byte(text))
	if err != nil {
		log.Warnf("import rejected: %s", err)
		return err
	}
	if doc.PlanCycle != nil && len(doc.PlanCycle.Days) != 7 {
		doc.PlanCycle = nil
	}
	if doc.PlanCycle == nil {
		s.regenerate(doc, s.Today())
	} else if doc.PlanCycle.CadenceDays <= 0 {
		doc.PlanCycle.CadenceDays = plan.DefaultCadenceDays
	}
	if err := s.Save(doc); err != nil {
		return err
	}
	log.Infof("imported %d log entries", len(doc.LogsByDate))
	return nil
}
