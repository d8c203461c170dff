package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/haeunlee/ofter/internal/models"
)

// fileState is the on-disk shape of the JSON store.
type fileState struct {
	Version      int                  `json:"version"`
	Activities   []models.Activity    `json:"activities"`
	Sessions     []models.Session     `json:"sessions"`
	ActiveTimers []models.ActiveTimer `json:"activeTimers"`
}

// JSONStore persists snapshots to a single JSON file. It is the local
// persisted-store flavor of the Provider contract.
type JSONStore struct {
	path string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	return s.write(fileState{Version: 1})
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Load() (models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Snapshot{}, fmt.Errorf("storage not initialized, run 'ofter init' first")
		}
		return models.Snapshot{}, fmt.Errorf("failed to read storage: %w", err)
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to parse storage: %w", err)
	}

	return models.Snapshot{
		Activities:   state.Activities,
		Sessions:     state.Sessions,
		ActiveTimers: state.ActiveTimers,
	}, nil
}

func (s *JSONStore) Save(snap models.Snapshot) error {
	return s.write(fileState{
		Version:      1,
		Activities:   snap.Activities,
		Sessions:     snap.Sessions,
		ActiveTimers: snap.ActiveTimers,
	})
}

func (s *JSONStore) write(state fileState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
