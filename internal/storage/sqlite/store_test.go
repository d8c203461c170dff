package sqlite

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/haeunlee/ofter/internal/models"
)

func initStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "ofter.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := initStore(t)

	want := models.Snapshot{
		Activities: []models.Activity{
			{ID: "a1", Name: "Reading", Icon: "reading", Color: models.ColorBlue, TotalCount: 2, TotalDuration: 155, CreatedAt: 1000, NotificationEnabled: true},
			{ID: "a2", Name: "달리기", Icon: "running", Color: models.ColorGreen, CreatedAt: 2000, NotificationEnabled: false},
		},
		Sessions: []models.Session{
			{ID: "s1", ActivityID: "a1", Date: "2025-06-15", StartTime: 1000, EndTime: 126500, Duration: 125},
			{ID: "s2", ActivityID: "a1", Date: "2025-06-15", StartTime: 130000, EndTime: 160000, Duration: 30},
		},
		ActiveTimers: []models.ActiveTimer{
			{ActivityID: "a2", StartTime: 170000},
		},
	}

	if err := store.Save(want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(got.Activities) != 2 || len(got.Sessions) != 2 || len(got.ActiveTimers) != 1 {
		t.Fatalf("loaded %d activities, %d sessions, %d timers; want 2, 2, 1",
			len(got.Activities), len(got.Sessions), len(got.ActiveTimers))
	}
	for i := range want.Activities {
		if got.Activities[i] != want.Activities[i] {
			t.Errorf("activity %d mismatch:\n got %+v\nwant %+v", i, got.Activities[i], want.Activities[i])
		}
	}
	for i := range want.Sessions {
		if got.Sessions[i] != want.Sessions[i] {
			t.Errorf("session %d mismatch:\n got %+v\nwant %+v", i, got.Sessions[i], want.Sessions[i])
		}
	}
	if got.ActiveTimers[0] != want.ActiveTimers[0] {
		t.Errorf("timer mismatch: %+v", got.ActiveTimers[0])
	}
}

func TestSaveReplacesPreviousState(t *testing.T) {
	store := initStore(t)

	first := models.Snapshot{
		Activities: []models.Activity{
			{ID: "a1", Name: "Reading", Icon: "reading", Color: models.ColorBlue, CreatedAt: 1000},
		},
	}
	if err := store.Save(first); err != nil {
		t.Fatal(err)
	}

	second := models.Snapshot{
		Activities: []models.Activity{
			{ID: "a2", Name: "Running", Icon: "running", Color: models.ColorGreen, CreatedAt: 2000},
		},
	}
	if err := store.Save(second); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Activities) != 1 || got.Activities[0].ID != "a2" {
		t.Errorf("save should fully replace state, got %+v", got.Activities)
	}
}

func TestOpenWithoutInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))

	err := store.Open()
	if err == nil {
		t.Fatal("expected error for missing database file")
	}
	if !strings.Contains(err.Error(), "ofter init") {
		t.Errorf("error should point at init, got: %v", err)
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	store := initStore(t)

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(snap.Activities) != 0 || len(snap.Sessions) != 0 || len(snap.ActiveTimers) != 0 {
		t.Error("freshly initialized store should be empty")
	}
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ofter.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	store.Close()

	again := NewStore(path)
	if err := again.Init(); err != nil {
		t.Errorf("re-running Init() on an existing database failed: %v", err)
	}
	again.Close()
}
