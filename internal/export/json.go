package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/fittrack/internal/model"
	"go.uber.org/multierr"
)

// ErrInvalidFormat marks a backup that cannot be imported.
var ErrInvalidFormat = errors.New("invalid backup format")

type jsonBackup struct {
	Version         int                     `json:"version"`
	ExportedAt      string                  `json:"exportedAt"`
	LogsByDate      map[string]model.DayLog `json:"logsByDate"`
	Settings        model.Settings          `json:"settings"`
	PlanCycle       *model.PlanCycle        `json:"planCycle,omitempty"`
	CustomExercises []string                `json:"customExercises,omitempty"`
}

// MarshalBackup renders doc as an indented JSON backup. settings are the
// effective values, so the backup is readable without knowing the defaults.
func MarshalBackup(doc *model.Document, settings model.Settings, now time.Time) ([]byte, error) {
	logs := doc.LogsByDate
	if logs == nil {
		logs = map[string]model.DayLog{}
	}
	backup := jsonBackup{
		Version:         model.DocumentVersion,
		ExportedAt:      now.UTC().Format(time.RFC3339),
		LogsByDate:      logs,
		Settings:        settings,
		PlanCycle:       doc.PlanCycle,
		CustomExercises: doc.CustomExercises,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFormat, fmt.Sprintf(format, args...))
}

// ParseBackup validates a backup and rebuilds the document it describes.
// Every log key must be a calendar date; all offending keys are reported.
// Both the logsByDate object and the older logs array are accepted.
func ParseBackup(data []byte) (*model.Document, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil || root == nil {
		return nil, invalid("root is not a JSON object")
	}

	rawVersion, ok := root["version"]
	if !ok {
		return nil, invalid("missing version")
	}
	var version int
	if err := json.Unmarshal(rawVersion, &version); err != nil {
		return nil, invalid("version is not an integer")
	}
	if version != model.DocumentVersion {
		return nil, invalid("unsupported version %d", version)
	}

	doc := model.NewDocument()
	var errs error
	switch {
	case root["logsByDate"] != nil:
		var byDate map[string]json.RawMessage
		if err := json.Unmarshal(root["logsByDate"], &byDate); err != nil || byDate == nil {
			return nil, invalid("logsByDate is not an object")
		}
		for key, raw := range byDate {
			if err := addLog(doc, key, raw); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	case root["logs"] != nil:
		var list []json.RawMessage
		if err := json.Unmarshal(root["logs"], &list); err != nil || list == nil {
			return nil, invalid("logs is not an array")
		}
		for i, raw := range list {
			var probe struct {
				Date string `json:"date"`
			}
			if err := json.Unmarshal(raw, &probe); err != nil {
				errs = multierr.Append(errs, invalid("log %d is not an object", i))
				continue
			}
			if _, dup := doc.LogsByDate[probe.Date]; dup {
				errs = multierr.Append(errs, invalid("duplicate date in backup: %q", probe.Date))
				continue
			}
			if err := addLog(doc, probe.Date, raw); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	default:
		return nil, invalid("missing logs")
	}
	if errs != nil {
		return nil, errs
	}

	if raw, ok := root["settings"]; ok && string(raw) != "null" {
		var patch model.SettingsOverrides
		if err := json.Unmarshal(raw, &patch); err != nil {
			return nil, invalid("settings: %v", err)
		}
		doc.Settings = doc.Settings.Merge(patch)
	}

	if raw, ok := root["planCycle"]; ok && string(raw) != "null" {
		var cycle model.PlanCycle
		if err := json.Unmarshal(raw, &cycle); err != nil {
			return nil, invalid("planCycle: %v", err)
		}
		doc.PlanCycle = &cycle
	}

	if raw, ok := root["customExercises"]; ok && string(raw) != "null" {
		var names []string
		if err := json.Unmarshal(raw, &names); err != nil {
			return nil, invalid("customExercises: %v", err)
		}
		doc.CustomExercises = model.CleanNames(names)
	}

	return doc, nil
}

func addLog(doc *model.Document, key string, raw json.RawMessage) error {
	if _, err := model.ParseDate(key); err != nil {
		return invalid("invalid date key in backup: %q", key)
	}
	var l model.DayLog
	if err := json.Unmarshal(raw, &l); err != nil {
		return invalid("log %s: %v", key, err)
	}
	l.Date = key
	doc.LogsByDate[key] = l.Sanitized()
	return nil
}

// ToJSON writes a backup of doc to path.
func ToJSON(doc *model.Document, settings model.Settings, path string) error {
	data, err := MarshalBackup(doc, settings, time.Now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
