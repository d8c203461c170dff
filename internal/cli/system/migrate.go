package system

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/haeunlee/ofter/internal/cli"
	"github.com/haeunlee/ofter/internal/migration"
	"github.com/haeunlee/ofter/migrations"
)

// dbProvider is satisfied by the SQL-backed stores.
type dbProvider interface {
	Open() error
	GetDB() *sql.DB
	GetConfigPath() string
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	store, ok := ctx.Store.(dbProvider)
	if !ok {
		return fmt.Errorf("migrate requires a SQLite or PostgreSQL store, the JSON store has no schema")
	}

	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer ctx.Store.Close()

	db := store.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	dir := "sqlite"
	if store.GetConfigPath() == "postgresql" {
		dir = "postgres"
	}
	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("failed to access migrations: %w", err)
	}

	count, err := migration.NewRunner(db, subFS).Apply(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
