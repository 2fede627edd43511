// Package tracker is the application core: a Session owns the persisted
// document and exposes the log, settings, plan and backup operations.
//
// Every operation reloads the document from the backend, changes it in
// memory and writes the whole document back. There is no locking: two
// processes sharing one backend will overwrite each other's last write.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/plan"
	"github.com/sadopc/fittrack/internal/store"
)

// StateKey is the backend key the document lives under.
const StateKey = "fittrack.state.v1"

var ErrInvalidDate = errors.New("invalid date")

// ProfileKey is the state key for a named profile. The empty profile is
// StateKey itself.
func ProfileKey(profile string) string {
	if profile == "" {
		return StateKey
	}
	return StateKey + ":" + profile
}

type Session struct {
	backend     store.Backend
	key         string
	now         func() time.Time
	cadenceDays int
}

type Option func(*Session)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithCadence sets the plan cadence used when settings leave it unset.
func WithCadence(days int) Option {
	return func(s *Session) {
		if days > 0 {
			s.cadenceDays = days
		}
	}
}

func WithKey(key string) Option {
	return func(s *Session) { s.key = key }
}

func NewSession(b store.Backend, opts ...Option) *Session {
	s := &Session{
		backend:     b,
		key:         StateKey,
		now:         time.Now,
		cadenceDays: plan.DefaultCadenceDays,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Today is the current calendar date key.
func (s *Session) Today() string {
	return model.DateKey(s.now())
}

// Now returns the session clock.
func (s *Session) Now() time.Time {
	return s.now()
}

// LastSaved reports when the document was last written, if the backend
// records it.
func (s *Session) LastSaved() (time.Time, bool) {
	ts, ok := s.backend.(store.Timestamped)
	if !ok {
		return time.Time{}, false
	}
	at, err := ts.UpdatedAt(s.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warnf("read last saved time: %s", err)
		}
		return time.Time{}, false
	}
	return at, true
}

// Load reads the document. Missing, unreadable or foreign-version data
// yields a fresh document; Load never fails.
func (s *Session) Load() *model.Document {
	data, err := s.backend.Get(s.key)
	if errors.Is(err, store.ErrNotFound) {
		log.Debugf("no stored document under %q, starting fresh", s.key)
		return model.NewDocument()
	}
	if err != nil {
		log.Warnf("read document: %s", err)
		return model.NewDocument()
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warnf("stored document is malformed, starting fresh: %s", err)
		return model.NewDocument()
	}
	if doc.Version != model.DocumentVersion {
		log.Warnf("stored document has version %d, want %d; starting fresh", doc.Version, model.DocumentVersion)
		return model.NewDocument()
	}
	if doc.LogsByDate == nil {
		doc.LogsByDate = make(map[string]model.DayLog)
	}
	for k, l := range doc.LogsByDate {
		l.Date = k
		doc.LogsByDate[k] = l
	}
	return &doc
}

// Save writes the whole document under the state key.
func (s *Session) Save(doc *model.Document) error {
	doc.Version = model.DocumentVersion
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := s.backend.Set(s.key, data); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (s *Session) cadenceFor(settings model.Settings) int {
	if settings.ShuffleEveryDays > 0 {
		return settings.ShuffleEveryDays
	}
	return s.cadenceDays
}

func validDate(date string) error {
	if _, err := model.ParseDate(date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}
