package storage

import "github.com/haeunlee/ofter/internal/models"

// Provider is the persistence collaborator contract. The engine keeps the
// in-memory state authoritative; providers persist full snapshots best-effort.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Load returns the persisted snapshot. Called once at startup.
	Load() (models.Snapshot, error)

	// Save persists a full snapshot, replacing whatever was stored before.
	Save(models.Snapshot) error

	// Utils
	GetConfigPath() string
}
