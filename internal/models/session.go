package models

// Session is one completed timed interval attributed to an activity and a
// calendar day. Sessions are immutable once created; they disappear only when
// the owning activity is removed or all data is cleared.
type Session struct {
	ID         string `json:"id"`
	ActivityID string `json:"activityId"`
	Date       string `json:"date"`      // YYYY-MM-DD, local day the timer was stopped
	StartTime  int64  `json:"startTime"` // Unix milliseconds
	EndTime    int64  `json:"endTime"`   // Unix milliseconds
	Duration   int64  `json:"duration"`  // seconds, floor((end-start)/1000)
}

// ActiveTimer is a running, not-yet-committed interval. It is never part of
// exported history.
type ActiveTimer struct {
	ActivityID string `json:"activityId"`
	StartTime  int64  `json:"startTime"` // Unix milliseconds
}

// Snapshot is the unit of persistence: the full state of the three engine
// collections.
type Snapshot struct {
	Activities   []Activity    `json:"activities"`
	Sessions     []Session     `json:"sessions"`
	ActiveTimers []ActiveTimer `json:"activeTimers"`
}

// ExportData is the user-facing backup file shape. Active timers are
// deliberately absent: in-flight state is not portable.
type ExportData struct {
	Version    string     `json:"version"`
	ExportedAt string     `json:"exportedAt"` // RFC 3339
	Activities []Activity `json:"activities"`
	Sessions   []Session  `json:"sessions"`
}
