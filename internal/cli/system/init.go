// Package system implements lifecycle and diagnostic commands: init,
// migrate, doctor, config, tui, and the hidden notify hook.
package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/haeunlee/ofter/internal/cli"
	"github.com/haeunlee/ofter/internal/storage"
	"github.com/haeunlee/ofter/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.deleteExisting(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized ofter storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("data copy failed: %w", err)
		}
		fmt.Println("Data copy completed successfully.")
	}

	return nil
}

func (c *InitCmd) deleteExisting(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyData loads the full snapshot from another provider and saves it into
// the freshly initialized store. All three provider types are valid sources.
func (c *InitCmd) copyData(ctx *cli.Context, sourcePath string) error {
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("source connection string contains embedded credentials, use the OS keyring or PGPASSWORD instead")
			}
			return err
		}
	}
	sourceStore := storage.NewProvider(sourcePath)

	snap, err := sourceStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	if err := ctx.Store.Save(snap); err != nil {
		return fmt.Errorf("failed to save data to destination: %w", err)
	}

	fmt.Printf("  Copied %d activities, %d sessions, %d active timers\n",
		len(snap.Activities), len(snap.Sessions), len(snap.ActiveTimers))
	return nil
}
