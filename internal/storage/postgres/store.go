// Package postgres implements the storage Provider on a remote PostgreSQL
// database. Connection strings must not embed a password; credentials are
// resolved from the OS keyring or PGPASSWORD.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/haeunlee/ofter/internal/constants"
	"github.com/haeunlee/ofter/internal/logger"
	"github.com/haeunlee/ofter/internal/migration"
	"github.com/haeunlee/ofter/internal/models"
	"github.com/haeunlee/ofter/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

func (s *Store) ensureSearchPath() {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else {
		if !hasParam(s.connStr, "search_path") {
			s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
		}
	}
}

// hasParam reports whether a DSN-style connection string contains the given
// parameter key (case-insensitive).
func hasParam(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// hasSSLMode checks both URL-style and DSN-style connection strings for an
// sslmode parameter.
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasParam(connStr, "sslmode")
}

// ValidateConnString checks that a connection string is a valid PostgreSQL
// URI or DSN and does not embed a password. Credentials belong in the OS
// keyring or PGPASSWORD, never in the stored connection string.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	_, err := pq.NewConnector(connStr)
	if err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}

		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}

		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
	} else {
		for _, pair := range strings.Fields(connStr) {
			parts := strings.SplitN(pair, "=", 2)
			if len(parts) == 2 && strings.ToLower(strings.TrimSpace(parts[0])) == "password" {
				return false, ErrEmbeddedCredentials
			}
		}
	}

	return true, nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return nil, fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func (s *Store) Init() error {
	db, err := s.open()
	if err != nil {
		return err
	}

	// The schema must exist before the migration runner can create its
	// schema_version table under the configured search_path.
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Open connects without initializing the schema.
func (s *Store) Open() error {
	if s.db != nil {
		return nil
	}

	db, err := s.open()
	if err != nil {
		return err
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

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.Apply(func(msg string) {
		fmt.Println(msg)
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
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

// Save replaces the persisted state with the snapshot in one transaction.
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
	// Never surface the connection string, it may identify internal hosts.
	return "postgresql"
}

// GetDB exposes the underlying connection for diagnostics.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
