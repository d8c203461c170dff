package engine

import (
	"github.com/google/uuid"

	"github.com/haeunlee/ofter/internal/models"
)

// StartTimer toggles the timer for an activity: if a timer is already running
// for activityID it is committed to a session (equivalent to StopTimer);
// otherwise a new independent timer starts, leaving other activities' timers
// untouched. Unknown activity ids are a silent no-op. When the toggle ends a
// running timer, the committed session is returned with ok=true.
func (e *Engine) StartTimer(activityID string) (models.Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasActivityLocked(activityID) {
		return models.Session{}, false
	}

	for i, t := range e.timers {
		if t.ActivityID == activityID {
			session := e.commitTimerLocked(i)
			e.persistLocked()
			return session, true
		}
	}

	e.timers = append(e.timers, models.ActiveTimer{
		ActivityID: activityID,
		StartTime:  e.nowMilli(),
	})
	e.persistLocked()
	return models.Session{}, false
}

// StopTimer commits the running timer for an activity to a session and
// updates the owning activity's totals in the same step. No-op, returning
// ok=false, when no matching timer exists.
func (e *Engine) StopTimer(activityID string) (models.Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, t := range e.timers {
		if t.ActivityID == activityID {
			session := e.commitTimerLocked(i)
			e.persistLocked()
			return session, true
		}
	}
	return models.Session{}, false
}

// commitTimerLocked resolves the timer at index i into a session and applies
// the activity totals update. The session append, totals update, and timer
// removal form one transaction under e.mu.
func (e *Engine) commitTimerLocked(i int) models.Session {
	timer := e.timers[i]
	endTime := e.nowMilli()
	duration := (endTime - timer.StartTime) / 1000

	session := models.Session{
		ID:         uuid.New().String(),
		ActivityID: timer.ActivityID,
		Date:       e.today(),
		StartTime:  timer.StartTime,
		EndTime:    endTime,
		Duration:   duration,
	}
	e.sessions = append(e.sessions, session)

	for j := range e.activities {
		if e.activities[j].ID == timer.ActivityID {
			e.activities[j].TotalCount++
			e.activities[j].TotalDuration += duration
			break
		}
	}

	e.timers = append(e.timers[:i], e.timers[i+1:]...)
	return session
}

func (e *Engine) hasActivityLocked(id string) bool {
	for _, a := range e.activities {
		if a.ID == id {
			return true
		}
	}
	return false
}

// IsTimerActive reports whether a timer is running for the activity.
func (e *Engine) IsTimerActive(activityID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range e.timers {
		if t.ActivityID == activityID {
			return true
		}
	}
	return false
}

// ActiveTimerCount returns the number of running timers.
func (e *Engine) ActiveTimerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.timers)
}

// ElapsedSeconds returns the running duration of an activity's timer. This is
// a read-only poll; calling it on any schedule never affects engine state.
func (e *Engine) ElapsedSeconds(activityID string) (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range e.timers {
		if t.ActivityID == activityID {
			return (e.nowMilli() - t.StartTime) / 1000, true
		}
	}
	return 0, false
}
