package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/haeunlee/ofter/internal/models"
)

// fakeClock lets tests advance the engine's notion of now.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestEngine(t *testing.T) (*Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	return New(WithNow(clock.Now)), clock
}

// recordingStore captures Save calls and can be told to fail.
type recordingStore struct {
	saves    []models.Snapshot
	saveErr  error
	loadSnap models.Snapshot
	loadErr  error
}

func (s *recordingStore) Init() error  { return nil }
func (s *recordingStore) Close() error { return nil }

func (s *recordingStore) Load() (models.Snapshot, error) {
	return s.loadSnap, s.loadErr
}

func (s *recordingStore) Save(snap models.Snapshot) error {
	s.saves = append(s.saves, snap)
	return s.saveErr
}

func (s *recordingStore) GetConfigPath() string { return "test" }

func TestAddActivity(t *testing.T) {
	eng, _ := newTestEngine(t)

	a, err := eng.AddActivity("  Reading  ", "", models.ColorBlue)
	if err != nil {
		t.Fatalf("AddActivity() failed: %v", err)
	}
	if a.Name != "Reading" {
		t.Errorf("name = %q, want trimmed %q", a.Name, "Reading")
	}
	if a.Icon != "reading" {
		t.Errorf("icon = %q, want keyword-resolved %q", a.Icon, "reading")
	}
	if !a.NotificationEnabled {
		t.Error("new activities should have notifications enabled")
	}
	if a.TotalCount != 0 || a.TotalDuration != 0 {
		t.Error("new activities should start with zero totals")
	}
	if a.ID == "" {
		t.Error("id should be generated")
	}
}

func TestAddActivityValidation(t *testing.T) {
	eng, _ := newTestEngine(t)

	if _, err := eng.AddActivity("   ", "", models.ColorBlue); err == nil {
		t.Error("expected error for blank name")
	}
	if _, err := eng.AddActivity("a very long activity name", "", models.ColorBlue); err == nil {
		t.Error("expected error for name over 20 characters")
	}
	if _, err := eng.AddActivity("Reading", "", models.Color("magenta")); err == nil {
		t.Error("expected error for color outside the palette")
	}
	if got := len(eng.Activities()); got != 0 {
		t.Errorf("rejected adds must not mutate state, have %d activities", got)
	}
}

func TestAddActivityDefaultIcon(t *testing.T) {
	eng, _ := newTestEngine(t)

	a, err := eng.AddActivity("Something unusual", "", models.ColorGreen)
	if err != nil {
		t.Fatalf("AddActivity() failed: %v", err)
	}
	if a.Icon != "target" {
		t.Errorf("icon = %q, want default %q", a.Icon, "target")
	}
}

func TestTimerToggleProducesSingleSession(t *testing.T) {
	eng, clock := newTestEngine(t)
	a, _ := eng.AddActivity("Reading", "", models.ColorBlue)

	if _, committed := eng.StartTimer(a.ID); committed {
		t.Fatal("first toggle should start, not commit")
	}
	if !eng.IsTimerActive(a.ID) {
		t.Fatal("timer should be running")
	}

	clock.Advance(125500 * time.Millisecond)

	session, committed := eng.StartTimer(a.ID)
	if !committed {
		t.Fatal("second toggle should commit the session")
	}
	if session.Duration != 125 {
		t.Errorf("duration = %d, want 125 (floor of 125.5s)", session.Duration)
	}
	if eng.IsTimerActive(a.ID) {
		t.Error("timer should be cleared after commit")
	}

	sessions := eng.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("have %d sessions, want exactly 1", len(sessions))
	}
	if sessions[0].ActivityID != a.ID {
		t.Errorf("session owner = %q, want %q", sessions[0].ActivityID, a.ID)
	}
	if sessions[0].Date != "2025-06-15" {
		t.Errorf("session date = %q, want %q", sessions[0].Date, "2025-06-15")
	}

	updated, _ := eng.Activity(a.ID)
	if updated.TotalCount != 1 {
		t.Errorf("totalCount = %d, want 1", updated.TotalCount)
	}
	if updated.TotalDuration != 125 {
		t.Errorf("totalDuration = %d, want 125", updated.TotalDuration)
	}
}

func TestStartTimerUnknownActivity(t *testing.T) {
	eng, _ := newTestEngine(t)

	eng.StartTimer("nope")

	if eng.ActiveTimerCount() != 0 {
		t.Error("unknown activity id must not start a timer")
	}
	if len(eng.Sessions()) != 0 {
		t.Error("unknown activity id must not create sessions")
	}
}

func TestStopTimerWithoutTimer(t *testing.T) {
	eng, _ := newTestEngine(t)
	a, _ := eng.AddActivity("Reading", "", models.ColorBlue)

	if _, stopped := eng.StopTimer(a.ID); stopped {
		t.Error("stop without a running timer must be a no-op")
	}
	if len(eng.Sessions()) != 0 {
		t.Error("no session should be recorded")
	}
}

func TestConcurrentTimers(t *testing.T) {
	eng, clock := newTestEngine(t)
	a, _ := eng.AddActivity("Reading", "", models.ColorBlue)
	b, _ := eng.AddActivity("Running", "", models.ColorGreen)

	eng.StartTimer(a.ID)
	clock.Advance(10 * time.Second)
	eng.StartTimer(b.ID)

	if eng.ActiveTimerCount() != 2 {
		t.Fatalf("have %d timers, want 2", eng.ActiveTimerCount())
	}

	clock.Advance(20 * time.Second)
	session, stopped := eng.StopTimer(a.ID)
	if !stopped {
		t.Fatal("timer for first activity should stop")
	}
	if session.Duration != 30 {
		t.Errorf("first session duration = %d, want 30", session.Duration)
	}
	if !eng.IsTimerActive(b.ID) {
		t.Error("stopping one activity must not touch the other's timer")
	}
}

func TestElapsedSecondsIsReadOnly(t *testing.T) {
	eng, clock := newTestEngine(t)
	a, _ := eng.AddActivity("Reading", "", models.ColorBlue)
	eng.StartTimer(a.ID)

	clock.Advance(42 * time.Second)
	for i := 0; i < 5; i++ {
		elapsed, ok := eng.ElapsedSeconds(a.ID)
		if !ok || elapsed != 42 {
			t.Fatalf("elapsed = %d ok=%v, want 42 true", elapsed, ok)
		}
	}

	if len(eng.Sessions()) != 0 {
		t.Error("polling elapsed time must not commit sessions")
	}
	if !eng.IsTimerActive(a.ID) {
		t.Error("polling elapsed time must not stop the timer")
	}
}

func TestTotalsMatchSessionSums(t *testing.T) {
	eng, clock := newTestEngine(t)
	a, _ := eng.AddActivity("Reading", "", models.ColorBlue)

	for _, seconds := range []int64{10, 20, 30} {
		eng.StartTimer(a.ID)
		clock.Advance(time.Duration(seconds) * time.Second)
		eng.StopTimer(a.ID)
	}

	count, duration, ok := eng.TotalsFor(a.ID)
	if !ok {
		t.Fatal("TotalsFor() should find the activity")
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if duration != 60 {
		t.Errorf("duration = %d, want 60", duration)
	}

	var sum int64
	for _, s := range eng.Sessions() {
		sum += s.Duration
	}
	if sum != duration {
		t.Errorf("session sum %d differs from activity total %d", sum, duration)
	}
}

func TestRemoveActivityCascades(t *testing.T) {
	eng, clock := newTestEngine(t)
	a, _ := eng.AddActivity("Reading", "", models.ColorBlue)
	b, _ := eng.AddActivity("Running", "", models.ColorGreen)

	eng.StartTimer(a.ID)
	clock.Advance(5 * time.Second)
	eng.StopTimer(a.ID)
	eng.StartTimer(a.ID)
	eng.StartTimer(b.ID)
	clock.Advance(5 * time.Second)
	eng.StopTimer(b.ID)

	eng.RemoveActivity(a.ID)

	if _, ok := eng.Activity(a.ID); ok {
		t.Error("activity should be gone")
	}
	for _, s := range eng.Sessions() {
		if s.ActivityID == a.ID {
			t.Error("sessions of the removed activity should be gone")
		}
	}
	if eng.IsTimerActive(a.ID) {
		t.Error("the removed activity's timer should be discarded")
	}

	// The other activity keeps its history.
	if _, ok := eng.Activity(b.ID); !ok {
		t.Error("unrelated activity should survive")
	}
	if len(eng.TodaySessions(b.ID)) != 1 {
		t.Error("unrelated activity's sessions should survive")
	}
}

func TestRemoveActivityUnknownID(t *testing.T) {
	eng, _ := newTestEngine(t)
	a, _ := eng.AddActivity("Reading", "", models.ColorBlue)

	eng.RemoveActivity("nope")

	if _, ok := eng.Activity(a.ID); !ok {
		t.Error("unknown-id removal must not touch existing activities")
	}
}

func TestUpdateActivityPartialPatch(t *testing.T) {
	eng, clock := newTestEngine(t)
	a, _ := eng.AddActivity("Reading", "", models.ColorBlue)

	eng.StartTimer(a.ID)
	clock.Advance(10 * time.Second)
	eng.StopTimer(a.ID)

	newName := "Deep reading"
	eng.UpdateActivity(a.ID, models.ActivityPatch{Name: &newName})

	updated, _ := eng.Activity(a.ID)
	if updated.Name != "Deep reading" {
		t.Errorf("name = %q, want %q", updated.Name, "Deep reading")
	}
	if updated.Icon != a.Icon || updated.Color != a.Color {
		t.Error("fields not in the patch must be unchanged")
	}
	if updated.TotalCount != 1 || updated.TotalDuration != 10 {
		t.Error("update must not recompute totals")
	}
}

func TestTodayQueriesUseQueryTimeDate(t *testing.T) {
	eng, clock := newTestEngine(t)
	a, _ := eng.AddActivity("Reading", "", models.ColorBlue)

	eng.StartTimer(a.ID)
	clock.Advance(10 * time.Second)
	eng.StopTimer(a.ID)

	if eng.TodayCount(a.ID) != 1 {
		t.Errorf("TodayCount = %d, want 1", eng.TodayCount(a.ID))
	}

	// Cross midnight: yesterday's session no longer counts as today.
	clock.Advance(24 * time.Hour)
	if eng.TodayCount(a.ID) != 0 {
		t.Errorf("TodayCount after midnight = %d, want 0", eng.TodayCount(a.ID))
	}
	if len(eng.TodaySessions(a.ID)) != 0 {
		t.Error("TodaySessions after midnight should be empty")
	}
}

func TestStreakDays(t *testing.T) {
	eng, clock := newTestEngine(t)
	a, _ := eng.AddActivity("Reading", "", models.ColorBlue)

	if eng.StreakDays(a.ID) != 0 {
		t.Error("no sessions means no streak")
	}

	// Three consecutive days ending today.
	for day := 0; day < 3; day++ {
		eng.StartTimer(a.ID)
		clock.Advance(10 * time.Second)
		eng.StopTimer(a.ID)
		if day < 2 {
			clock.Advance(24 * time.Hour)
		}
	}

	if got := eng.StreakDays(a.ID); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}

	// A missed day breaks the streak: without a session today, streak is 0.
	clock.Advance(48 * time.Hour)
	if got := eng.StreakDays(a.ID); got != 0 {
		t.Errorf("streak after gap = %d, want 0", got)
	}
}

func TestStreakDaysUnknownActivity(t *testing.T) {
	eng, _ := newTestEngine(t)
	if eng.StreakDays("nope") != 0 {
		t.Error("unknown activity has no streak")
	}
}

func TestPersistOnEveryMutation(t *testing.T) {
	store := &recordingStore{}
	clock := &fakeClock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	eng := New(WithStore(store), WithNow(clock.Now))

	a, _ := eng.AddActivity("Reading", "", models.ColorBlue)
	eng.StartTimer(a.ID)
	clock.Advance(10 * time.Second)
	eng.StopTimer(a.ID)

	if len(store.saves) != 3 {
		t.Fatalf("have %d saves, want 3 (add, start, stop)", len(store.saves))
	}

	last := store.saves[len(store.saves)-1]
	if len(last.Activities) != 1 || len(last.Sessions) != 1 || len(last.ActiveTimers) != 0 {
		t.Errorf("last snapshot = %d activities, %d sessions, %d timers; want 1, 1, 0",
			len(last.Activities), len(last.Sessions), len(last.ActiveTimers))
	}
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	store := &recordingStore{saveErr: errors.New("disk full")}
	clock := &fakeClock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	eng := New(WithStore(store), WithNow(clock.Now))

	a, err := eng.AddActivity("Reading", "", models.ColorBlue)
	if err != nil {
		t.Fatalf("AddActivity() failed: %v", err)
	}

	if _, ok := eng.Activity(a.ID); !ok {
		t.Error("a failed save must not roll back the in-memory mutation")
	}
}

func TestWithSnapshotRestoresState(t *testing.T) {
	snap := models.Snapshot{
		Activities: []models.Activity{
			{ID: "a1", Name: "Reading", Icon: "reading", Color: models.ColorBlue, TotalCount: 2, TotalDuration: 100, CreatedAt: 1000, NotificationEnabled: true},
		},
		Sessions: []models.Session{
			{ID: "s1", ActivityID: "a1", Date: "2025-06-14", StartTime: 1000, EndTime: 51000, Duration: 50},
			{ID: "s2", ActivityID: "a1", Date: "2025-06-14", StartTime: 60000, EndTime: 110000, Duration: 50},
		},
		ActiveTimers: []models.ActiveTimer{
			{ActivityID: "a1", StartTime: 120000},
		},
	}

	eng := New(WithSnapshot(snap))

	if len(eng.Activities()) != 1 || len(eng.Sessions()) != 2 {
		t.Error("snapshot state should be restored")
	}
	if !eng.IsTimerActive("a1") {
		t.Error("active timers should be restored")
	}
}
