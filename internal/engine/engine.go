// Package engine implements the activity tracking state machine: activities,
// completed sessions, and in-flight timers, plus the operations that keep the
// three collections mutually consistent.
package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haeunlee/ofter/internal/constants"
	"github.com/haeunlee/ofter/internal/icons"
	"github.com/haeunlee/ofter/internal/logger"
	"github.com/haeunlee/ofter/internal/models"
	"github.com/haeunlee/ofter/internal/storage"
)

// Engine owns the three state collections. All mutations are serialized by a
// single mutex; callers never observe a session without its matching activity
// totals update.
//
// Timer policy: one independent timer per distinct activity, concurrent
// timers across activities allowed.
type Engine struct {
	mu         sync.Mutex
	activities []models.Activity
	sessions   []models.Session
	timers     []models.ActiveTimer

	store storage.Provider
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore attaches a persistence collaborator. Saves happen after every
// mutating operation and are best-effort: failures are logged and never roll
// back the in-memory mutation.
func WithStore(p storage.Provider) Option {
	return func(e *Engine) { e.store = p }
}

// WithNow overrides the engine clock. Tests use this to pin "today".
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSnapshot seeds the engine collections from a persisted snapshot.
func WithSnapshot(snap models.Snapshot) Option {
	return func(e *Engine) {
		e.activities = append([]models.Activity(nil), snap.Activities...)
		e.sessions = append([]models.Session(nil), snap.Sessions...)
		e.timers = append([]models.ActiveTimer(nil), snap.ActiveTimers...)
	}
}

// New creates an empty engine.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) nowMilli() int64 {
	return e.now().UnixMilli()
}

func (e *Engine) today() string {
	return e.now().Format(constants.DateFormat)
}

// persistLocked pushes the current state to the persistence collaborator.
// Must be called with e.mu held.
func (e *Engine) persistLocked() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(e.snapshotLocked()); err != nil {
		logger.Warn("Failed to persist state", "error", err)
	}
}

func (e *Engine) snapshotLocked() models.Snapshot {
	return models.Snapshot{
		Activities:   append([]models.Activity(nil), e.activities...),
		Sessions:     append([]models.Session(nil), e.sessions...),
		ActiveTimers: append([]models.ActiveTimer(nil), e.timers...),
	}
}

// Snapshot returns a copy of the full engine state.
func (e *Engine) Snapshot() models.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// AddActivity creates a new activity. Duplicate names are permitted; the id
// is the identity. An empty icon is resolved from keywords in the name.
func (e *Engine) AddActivity(name, icon string, color models.Color) (models.Activity, error) {
	if icon == "" {
		icon = icons.Resolve(name)
	}
	activity := models.Activity{
		ID:                  uuid.New().String(),
		Name:                strings.TrimSpace(name),
		Icon:                icon,
		Color:               color,
		CreatedAt:           e.nowMilli(),
		NotificationEnabled: true,
	}
	if err := activity.Validate(); err != nil {
		return models.Activity{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.activities = append(e.activities, activity)
	e.persistLocked()
	return activity, nil
}

// RemoveActivity deletes an activity and cascades to its sessions and any
// active timer. The in-flight timer is discarded without producing a session.
// Unknown ids are a silent no-op.
func (e *Engine) RemoveActivity(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	found := false
	activities := e.activities[:0]
	for _, a := range e.activities {
		if a.ID == id {
			found = true
			continue
		}
		activities = append(activities, a)
	}
	if !found {
		return
	}
	e.activities = activities

	sessions := e.sessions[:0]
	for _, s := range e.sessions {
		if s.ActivityID != id {
			sessions = append(sessions, s)
		}
	}
	e.sessions = sessions

	timers := e.timers[:0]
	for _, t := range e.timers {
		if t.ActivityID != id {
			timers = append(timers, t)
		}
	}
	e.timers = timers

	e.persistLocked()
}

// UpdateActivity merges only the provided patch fields into the existing
// record. Unknown ids are a silent no-op. Derived totals are not recomputed
// here; callers overriding them are expected to resynchronize the session set
// themselves.
func (e *Engine) UpdateActivity(id string, patch models.ActivityPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.activities {
		if e.activities[i].ID != id {
			continue
		}
		a := &e.activities[i]
		if patch.Name != nil {
			a.Name = *patch.Name
		}
		if patch.Icon != nil {
			a.Icon = *patch.Icon
		}
		if patch.Color != nil {
			a.Color = *patch.Color
		}
		if patch.TotalCount != nil {
			a.TotalCount = *patch.TotalCount
		}
		if patch.TotalDuration != nil {
			a.TotalDuration = *patch.TotalDuration
		}
		if patch.NotificationEnabled != nil {
			a.NotificationEnabled = *patch.NotificationEnabled
		}
		e.persistLocked()
		return
	}
}

// Activities returns a copy of the activity collection.
func (e *Engine) Activities() []models.Activity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Activity(nil), e.activities...)
}

// Activity returns the activity with the given id.
func (e *Engine) Activity(id string) (models.Activity, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, a := range e.activities {
		if a.ID == id {
			return a, true
		}
	}
	return models.Activity{}, false
}

// ActivityByName returns the first activity with the given name. Names are
// not unique; this is a convenience for CLI lookups.
func (e *Engine) ActivityByName(name string) (models.Activity, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, a := range e.activities {
		if a.Name == name {
			return a, true
		}
	}
	return models.Activity{}, false
}

// Sessions returns a copy of the session collection.
func (e *Engine) Sessions() []models.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Session(nil), e.sessions...)
}

// ActiveTimers returns a copy of the active timer collection.
func (e *Engine) ActiveTimers() []models.ActiveTimer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.ActiveTimer(nil), e.timers...)
}
