package storage

import (
	"errors"
	"strings"

	"github.com/haeunlee/ofter/internal/storage/postgres"
	"github.com/haeunlee/ofter/internal/storage/sqlite"
)

// NewSQLiteStore creates a SQLite-backed provider.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}

// NewPostgresStore creates a PostgreSQL-backed provider.
func NewPostgresStore(connStr string) Provider {
	return postgres.New(connStr)
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries an inline password.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := postgres.ValidateConnString(connStr)
	return errors.Is(err, postgres.ErrEmbeddedCredentials)
}

// NewProvider selects a provider from the --db value: postgres:// and
// postgresql:// select PostgreSQL, a .json path selects the plain JSON file
// store, anything else is treated as a SQLite database path.
func NewProvider(dbPath string) Provider {
	switch {
	case strings.HasPrefix(dbPath, "postgres://") || strings.HasPrefix(dbPath, "postgresql://"):
		return NewPostgresStore(dbPath)
	case strings.HasSuffix(dbPath, ".json"):
		return NewJSONStore(dbPath)
	default:
		return NewSQLiteStore(dbPath)
	}
}
