package system

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/haeunlee/ofter/internal/backup"
	"github.com/haeunlee/ofter/internal/cli"
	"github.com/haeunlee/ofter/internal/migration"
	"github.com/haeunlee/ofter/internal/validation"
	"github.com/haeunlee/ofter/migrations"
)

type DoctorCmd struct{}

type doctorCheck struct {
	name     string
	run      func(ctx *cli.Context) error
	needsDB  bool
	warnOnly bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	checks := []doctorCheck{
		{name: "Storage reachable", run: checkStoreReachable},
		{name: "Schema version", run: checkSchemaVersion, needsDB: true},
		{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
		{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
		{name: "Snapshot integrity", run: checkSnapshotIntegrity},
		{name: "Clock sanity", run: func(*cli.Context) error { return checkClock() }},
	}

	hasError := false
	storeReachable := true

	for _, check := range checks {
		if check.needsDB && !storeReachable {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", check.name)
			continue
		}

		err := check.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", check.name)
		case check.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n   %v\n", check.name, err)
		default:
			fmt.Printf("❌ %s: FAIL\n   Error: %v\n", check.name, err)
			hasError = true
			if check.name == "Storage reachable" {
				storeReachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	_, err := ctx.Store.Load()
	return err
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(dbProvider)
	if !ok {
		// The JSON store has no schema to version.
		return nil
	}
	if err := store.Open(); err != nil {
		return err
	}

	runner, err := runnerFor(store)
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	store, ok := ctx.Store.(dbProvider)
	if !ok {
		return nil
	}
	if err := store.Open(); err != nil {
		return err
	}

	runner, err := runnerFor(store)
	if err != nil {
		return err
	}

	current, err := runner.CurrentVersion()
	if err != nil {
		return err
	}
	latest, err := runner.LatestVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind latest %d, run 'ofter migrate'", current, latest)
	}
	return nil
}

func runnerFor(store dbProvider) (*migration.Runner, error) {
	dir := "sqlite"
	if store.GetConfigPath() == "postgresql" {
		dir = "postgres"
	}
	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations: %w", err)
	}
	return migration.NewRunner(store.GetDB(), subFS), nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Store.GetConfigPath() == "postgresql" {
		// Remote databases are backed up server-side.
		return nil
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'ofter backup create'")
	}
	if time.Since(backups[0].Timestamp) > 7*24*time.Hour {
		return fmt.Errorf("most recent backup is older than 7 days")
	}
	return nil
}

// checkSnapshotIntegrity runs the full validation pass: dangling references,
// duplicate timers, malformed sessions, and totals drift.
func checkSnapshotIntegrity(ctx *cli.Context) error {
	snap, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	result := validation.New().ValidateSnapshot(snap)
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reports %s, which looks wrong", now.Format(time.RFC3339))
	}
	return nil
}
