package engine

import (
	"encoding/json"
	"time"

	"github.com/haeunlee/ofter/internal/constants"
	"github.com/haeunlee/ofter/internal/models"
)

// Export snapshots the current activities and sessions for backup. Active
// timers are excluded: in-flight state is not portable.
func (e *Engine) Export() models.ExportData {
	e.mu.Lock()
	defer e.mu.Unlock()

	return models.ExportData{
		Version:    constants.ExportVersion,
		ExportedAt: e.now().Format(time.RFC3339),
		Activities: append([]models.Activity(nil), e.activities...),
		Sessions:   append([]models.Session(nil), e.sessions...),
	}
}

// Import replaces the entire activity and session collections with the
// imported data and clears all active timers. This is a full overwrite, not a
// merge. Returns false without mutating state when activities or sessions are
// absent.
func (e *Engine) Import(data models.ExportData) bool {
	if data.Activities == nil || data.Sessions == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.activities = append([]models.Activity(nil), data.Activities...)
	e.sessions = append([]models.Session(nil), data.Sessions...)
	e.timers = nil
	e.persistLocked()
	return true
}

// ImportJSON decodes a raw export payload and imports it. Malformed JSON and
// payloads whose activities/sessions fields are missing or not array-typed
// fail without any state change.
func (e *Engine) ImportJSON(raw []byte) bool {
	var data models.ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return false
	}
	return e.Import(data)
}

// ClearAll unconditionally empties activities, sessions, and active timers.
// Irreversible.
func (e *Engine) ClearAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.activities = nil
	e.sessions = nil
	e.timers = nil
	e.persistLocked()
}
