package validation

import (
	"testing"

	"github.com/haeunlee/ofter/internal/models"
)

func cleanSnapshot() models.Snapshot {
	return models.Snapshot{
		Activities: []models.Activity{
			{ID: "a1", Name: "Reading", Icon: "book", Color: models.ColorBlue, TotalCount: 2, TotalDuration: 150, CreatedAt: 1000},
			{ID: "a2", Name: "Running", Icon: "running", Color: models.ColorGreen, CreatedAt: 2000},
		},
		Sessions: []models.Session{
			{ID: "s1", ActivityID: "a1", Date: "2025-06-15", StartTime: 1000, EndTime: 101000, Duration: 100},
			{ID: "s2", ActivityID: "a1", Date: "2025-06-15", StartTime: 200000, EndTime: 250000, Duration: 50},
		},
		ActiveTimers: []models.ActiveTimer{
			{ActivityID: "a2", StartTime: 300000},
		},
	}
}

func TestValidateSnapshotClean(t *testing.T) {
	result := New().ValidateSnapshot(cleanSnapshot())
	if result.HasConflicts() {
		t.Errorf("expected clean snapshot, got: %s", result.FormatReport())
	}
}

func TestValidateSnapshotOrphanedSession(t *testing.T) {
	snap := cleanSnapshot()
	snap.Sessions = append(snap.Sessions, models.Session{
		ID: "s3", ActivityID: "gone", Date: "2025-06-15", StartTime: 1, EndTime: 2, Duration: 0,
	})

	result := New().ValidateSnapshot(snap)
	if !hasConflictType(result, ConflictOrphanedSession) {
		t.Errorf("expected orphaned session conflict, got: %s", result.FormatReport())
	}
}

func TestValidateSnapshotOrphanedTimer(t *testing.T) {
	snap := cleanSnapshot()
	snap.ActiveTimers = append(snap.ActiveTimers, models.ActiveTimer{ActivityID: "gone", StartTime: 1})

	result := New().ValidateSnapshot(snap)
	if !hasConflictType(result, ConflictOrphanedTimer) {
		t.Errorf("expected orphaned timer conflict, got: %s", result.FormatReport())
	}
}

func TestValidateSnapshotDuplicateTimer(t *testing.T) {
	snap := cleanSnapshot()
	snap.ActiveTimers = append(snap.ActiveTimers, models.ActiveTimer{ActivityID: "a2", StartTime: 400000})

	result := New().ValidateSnapshot(snap)
	if !hasConflictType(result, ConflictDuplicateTimer) {
		t.Errorf("expected duplicate timer conflict, got: %s", result.FormatReport())
	}
}

func TestValidateSnapshotTotalsDrift(t *testing.T) {
	snap := cleanSnapshot()
	snap.Activities[0].TotalDuration = 999

	result := New().ValidateSnapshot(snap)
	if !hasConflictType(result, ConflictTotalsDrift) {
		t.Errorf("expected totals drift conflict, got: %s", result.FormatReport())
	}
}

func TestValidateSnapshotInvalidSession(t *testing.T) {
	snap := cleanSnapshot()
	snap.Sessions[0].EndTime = snap.Sessions[0].StartTime - 1

	result := New().ValidateSnapshot(snap)
	if !hasConflictType(result, ConflictInvalidSession) {
		t.Errorf("expected invalid session conflict, got: %s", result.FormatReport())
	}
}

func TestValidateSnapshotMalformedDate(t *testing.T) {
	snap := cleanSnapshot()
	snap.Sessions[1].Date = "June 15, 2025"

	result := New().ValidateSnapshot(snap)
	if !hasConflictType(result, ConflictInvalidSession) {
		t.Errorf("expected invalid session conflict, got: %s", result.FormatReport())
	}
}

func TestValidateSnapshotInvalidColor(t *testing.T) {
	snap := cleanSnapshot()
	snap.Activities[1].Color = "magenta"

	result := New().ValidateSnapshot(snap)
	if !hasConflictType(result, ConflictInvalidActivity) {
		t.Errorf("expected invalid activity conflict, got: %s", result.FormatReport())
	}
}

func hasConflictType(r Result, ct ConflictType) bool {
	for _, c := range r.Conflicts {
		if c.Type == ct {
			return true
		}
	}
	return false
}
