// Package localstore persists the application state bundle as a JSON file
// on disk, the server-side analog of the front end's key-value storage.
package localstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"studymesh-backend/application/ports"
	apperrors "studymesh-backend/pkg/errors"
)

const stateFileName = "studymesh-state.json"

// Store writes the state bundle to a single JSON file. Writes go through
// a temp file rename so a crash mid-write never corrupts existing state.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewStore creates a store rooted at dir, creating it if needed. An
// unusable directory is not fatal; Save will report errors and callers
// degrade to memory-only operation.
func NewStore(dir string, logger *zap.Logger) *Store {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("state directory unavailable",
			zap.String("dir", dir),
			zap.Error(err),
		)
	}
	return &Store{
		path:   filepath.Join(dir, stateFileName),
		logger: logger,
	}
}

// Save writes the bundle to disk.
func (s *Store) Save(_ context.Context, bundle *ports.StateBundle) error {
	if bundle == nil {
		return apperrors.NewValidationError("bundle cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("marshal state", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperrors.NewStorageError("write state", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return apperrors.NewStorageError("commit state", err)
	}
	return nil
}

// Load reads the bundle from disk. A missing file yields an empty bundle;
// unreadable or corrupt state is logged and also degrades to empty rather
// than failing startup.
func (s *Store) Load(_ context.Context) (*ports.StateBundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("state file unreadable, starting empty",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return &ports.StateBundle{}, nil
	}

	var bundle ports.StateBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		s.logger.Warn("state file corrupt, starting empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return &ports.StateBundle{}, nil
	}
	return &bundle, nil
}
