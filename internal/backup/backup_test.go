package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/haeunlee/ofter/internal/constants"
)

// seedDatabase creates a small tracking database with two activities.
func seedDatabase(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "ofter.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE activities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		total_duration INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		t.Fatalf("failed to create activities table: %v", err)
	}

	for _, row := range []struct {
		id, name string
		duration int64
	}{
		{"a1", "Reading", 125},
		{"a2", "Running", 300},
	} {
		if _, err := db.Exec("INSERT INTO activities (id, name, total_duration) VALUES ($1, $2, $3)",
			row.id, row.name, row.duration); err != nil {
			t.Fatalf("failed to seed activity: %v", err)
		}
	}

	return dbPath
}

func countActivities(t *testing.T, dbPath string) int {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM activities").Scan(&count); err != nil {
		t.Fatalf("failed to count activities: %v", err)
	}
	return count
}

func TestCreateBackup(t *testing.T) {
	dbPath := seedDatabase(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Fatalf("backup file was not created: %s", backupPath)
	}
	if got := countActivities(t, backupPath); got != 2 {
		t.Errorf("backup has %d activities, want 2", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup should fail when the database does not exist")
	}
}

func TestListBackupsNewestFirst(t *testing.T) {
	dbPath := seedDatabase(t)
	mgr := NewManager(dbPath)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups initially, got %d", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Error("backups should be sorted newest first")
		}
	}
	for _, b := range backups {
		if b.Path == "" || b.Size == 0 || b.Timestamp.IsZero() {
			t.Errorf("backup info incomplete: %+v", b)
		}
	}
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	dbPath := seedDatabase(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	for _, name := range []string{"notes.txt", "random.db", constants.BackupFilePrefix + "garbage" + BackupFileSuffix} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := seedDatabase(t)
	mgr := NewManager(dbPath)

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := seedDatabase(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Grow the live database past the backed-up state.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO activities (id, name) VALUES ('a3', 'Yoga')"); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	db.Close()

	if got := countActivities(t, dbPath); got != 3 {
		t.Fatalf("expected 3 activities before restore, got %d", got)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	if got := countActivities(t, dbPath); got != 2 {
		t.Errorf("expected 2 activities after restore, got %d", got)
	}
}

func TestRestoreBackupSafetyCopy(t *testing.T) {
	dbPath := seedDatabase(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	before, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	after, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("restore should back up the current database first: %d -> %d backups", len(before), len(after))
	}
}

func TestRestoreBackupRejectsCorruptFile(t *testing.T) {
	dbPath := seedDatabase(t)
	mgr := NewManager(dbPath)

	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	corrupt := filepath.Join(mgr.GetBackupDir(), "corrupt.db")
	if err := os.WriteFile(corrupt, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := mgr.RestoreBackup(corrupt); err == nil {
		t.Error("RestoreBackup should reject a file that is not a SQLite database")
	}
	if got := countActivities(t, dbPath); got != 2 {
		t.Errorf("a rejected restore must not touch the database, got %d activities", got)
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := seedDatabase(t)
	mgr := NewManager(dbPath)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		name := filepath.Base(backupPath)
		if seen[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		seen[name] = true
	}
}
