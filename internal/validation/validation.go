// Package validation checks a loaded snapshot for internal consistency:
// dangling references, malformed records, and totals that have drifted from
// the session history.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/haeunlee/ofter/internal/constants"
	"github.com/haeunlee/ofter/internal/models"
)

// ConflictType classifies an integrity finding.
type ConflictType string

const (
	ConflictOrphanedSession   ConflictType = "orphaned_session"
	ConflictOrphanedTimer     ConflictType = "orphaned_timer"
	ConflictDuplicateTimer    ConflictType = "duplicate_timer"
	ConflictInvalidActivity   ConflictType = "invalid_activity"
	ConflictInvalidSession    ConflictType = "invalid_session"
	ConflictTotalsDrift       ConflictType = "totals_drift"
	ConflictDuplicateIdentity ConflictType = "duplicate_id"
)

// Conflict is a single integrity finding.
type Conflict struct {
	Type        ConflictType
	EntityID    string
	Description string
}

// Result collects the findings of one validation run.
type Result struct {
	Conflicts []Conflict
}

func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all findings.
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No integrity problems found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d integrity problem(s):\n", len(r.Conflicts))
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "  [%s] %s\n", c.Type, c.Description)
	}
	return b.String()
}

func (r *Result) add(t ConflictType, id, format string, args ...any) {
	r.Conflicts = append(r.Conflicts, Conflict{
		Type:        t,
		EntityID:    id,
		Description: fmt.Sprintf(format, args...),
	})
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateSnapshot runs all integrity checks over a snapshot.
func (v *Validator) ValidateSnapshot(snap models.Snapshot) Result {
	var result Result

	ids := make(map[string]bool, len(snap.Activities))
	for _, a := range snap.Activities {
		if ids[a.ID] {
			result.add(ConflictDuplicateIdentity, a.ID, "duplicate activity id %s", a.ID)
		}
		ids[a.ID] = true

		if err := a.Validate(); err != nil {
			result.add(ConflictInvalidActivity, a.ID, "activity %q (%s): %v", a.Name, a.ID, err)
		}
		if a.TotalCount < 0 || a.TotalDuration < 0 {
			result.add(ConflictInvalidActivity, a.ID, "activity %q (%s) has negative totals", a.Name, a.ID)
		}
	}

	sessionIDs := make(map[string]bool, len(snap.Sessions))
	for _, s := range snap.Sessions {
		if sessionIDs[s.ID] {
			result.add(ConflictDuplicateIdentity, s.ID, "duplicate session id %s", s.ID)
		}
		sessionIDs[s.ID] = true

		if !ids[s.ActivityID] {
			result.add(ConflictOrphanedSession, s.ID, "session %s references missing activity %s", s.ID, s.ActivityID)
		}
		if s.EndTime < s.StartTime {
			result.add(ConflictInvalidSession, s.ID, "session %s ends before it starts", s.ID)
		}
		if s.Duration < 0 {
			result.add(ConflictInvalidSession, s.ID, "session %s has negative duration", s.ID)
		}
		if _, err := time.Parse(constants.DateFormat, s.Date); err != nil {
			result.add(ConflictInvalidSession, s.ID, "session %s has a malformed date %q", s.ID, s.Date)
		}
	}

	timerOwners := make(map[string]bool, len(snap.ActiveTimers))
	for _, t := range snap.ActiveTimers {
		if !ids[t.ActivityID] {
			result.add(ConflictOrphanedTimer, t.ActivityID, "active timer references missing activity %s", t.ActivityID)
		}
		if timerOwners[t.ActivityID] {
			result.add(ConflictDuplicateTimer, t.ActivityID, "activity %s has more than one active timer", t.ActivityID)
		}
		timerOwners[t.ActivityID] = true
	}

	v.checkTotals(snap, &result)

	return result
}

// checkTotals compares each activity's denormalized totals against the sums
// of its sessions. Drift indicates a past write that bypassed the engine.
func (v *Validator) checkTotals(snap models.Snapshot, result *Result) {
	counts := make(map[string]int)
	durations := make(map[string]int64)
	for _, s := range snap.Sessions {
		counts[s.ActivityID]++
		durations[s.ActivityID] += s.Duration
	}

	for _, a := range snap.Activities {
		if counts[a.ID] != a.TotalCount {
			result.add(ConflictTotalsDrift, a.ID,
				"activity %q (%s): totalCount is %d but has %d sessions", a.Name, a.ID, a.TotalCount, counts[a.ID])
		}
		if durations[a.ID] != a.TotalDuration {
			result.add(ConflictTotalsDrift, a.ID,
				"activity %q (%s): totalDuration is %d but sessions sum to %d", a.Name, a.ID, a.TotalDuration, durations[a.ID])
		}
	}
}
