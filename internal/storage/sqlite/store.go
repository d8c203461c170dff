// Package sqlite implements the storage Provider on a local SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/haeunlee/ofter/internal/migration"
	"github.com/haeunlee/ofter/internal/models"
	"github.com/haeunlee/ofter/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Open connects without initializing. Fails when the database file does not
// exist yet.
func (s *Store) Open() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'ofter init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) migrationFS() (fs.FS, error) {
	return fs.Sub(migrations.FS, "sqlite")
}

func (s *Store) runMigrations() error {
	subFS, err := s.migrationFS()
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.Apply(nil)
	return err
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := s.migrationFS()
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS).ValidateVersion()
}

// Load reads the full persisted snapshot.
func (s *Store) Load() (models.Snapshot, error) {
	if err := s.Open(); err != nil {
		return models.Snapshot{}, err
	}

	var snap models.Snapshot

	rows, err := s.db.Query(`
		SELECT id, name, icon, color, total_count, total_duration, created_at, notification_enabled
		FROM activities ORDER BY created_at`)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load activities: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.Icon, &a.Color, &a.TotalCount, &a.TotalDuration, &a.CreatedAt, &a.NotificationEnabled); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to scan activity: %w", err)
		}
		snap.Activities = append(snap.Activities, a)
	}
	if err := rows.Err(); err != nil {
		return models.Snapshot{}, err
	}

	sessRows, err := s.db.Query(`
		SELECT id, activity_id, date, start_time, end_time, duration
		FROM sessions ORDER BY start_time`)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load sessions: %w", err)
	}
	defer sessRows.Close()
	for sessRows.Next() {
		var sess models.Session
		if err := sessRows.Scan(&sess.ID, &sess.ActivityID, &sess.Date, &sess.StartTime, &sess.EndTime, &sess.Duration); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to scan session: %w", err)
		}
		snap.Sessions = append(snap.Sessions, sess)
	}
	if err := sessRows.Err(); err != nil {
		return models.Snapshot{}, err
	}

	timerRows, err := s.db.Query(`SELECT activity_id, start_time FROM active_timers`)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load active timers: %w", err)
	}
	defer timerRows.Close()
	for timerRows.Next() {
		var t models.ActiveTimer
		if err := timerRows.Scan(&t.ActivityID, &t.StartTime); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to scan active timer: %w", err)
		}
		snap.ActiveTimers = append(snap.ActiveTimers, t)
	}
	if err := timerRows.Err(); err != nil {
		return models.Snapshot{}, err
	}

	return snap, nil
}

// Save replaces the persisted state with the snapshot in one transaction so
// readers never observe activities without their sessions or vice versa.
func (s *Store) Save(snap models.Snapshot) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"active_timers", "sessions", "activities"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, a := range snap.Activities {
		_, err := tx.Exec(`
			INSERT INTO activities (id, name, icon, color, total_count, total_duration, created_at, notification_enabled)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			a.ID, a.Name, a.Icon, string(a.Color), a.TotalCount, a.TotalDuration, a.CreatedAt, a.NotificationEnabled)
		if err != nil {
			return fmt.Errorf("failed to insert activity %s: %w", a.ID, err)
		}
	}

	for _, sess := range snap.Sessions {
		_, err := tx.Exec(`
			INSERT INTO sessions (id, activity_id, date, start_time, end_time, duration)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			sess.ID, sess.ActivityID, sess.Date, sess.StartTime, sess.EndTime, sess.Duration)
		if err != nil {
			return fmt.Errorf("failed to insert session %s: %w", sess.ID, err)
		}
	}

	for _, t := range snap.ActiveTimers {
		_, err := tx.Exec(`
			INSERT INTO active_timers (activity_id, start_time)
			VALUES ($1, $2)`,
			t.ActivityID, t.StartTime)
		if err != nil {
			return fmt.Errorf("failed to insert active timer for %s: %w", t.ActivityID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB exposes the underlying connection for diagnostics. Nil until Init or
// Open has been called.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
