// Package store persists a versioned snapshot of session progress under a
// single fixed key in a local key-value medium. Load is fail-open: anything
// absent, unreadable, or from another schema version reads as "no saved
// state" so the user is never blocked by a stale snapshot.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/disckocrip/retro-backend/internal/entity"
	"go.uber.org/zap"
)

const (
	// StorageKey is the one slot the store writes. There is exactly one
	// session per device, so there is exactly one key.
	StorageKey = "retrospective_state_v1"

	// CurrentVersion gates restores. Snapshots from any other version are
	// discarded, not migrated.
	CurrentVersion = 1
)

// Medium is the underlying key-value storage. Put returns an error wrapping
// entity.ErrQuotaExceeded when the value is rejected for size reasons.
type Medium interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store serializes snapshots to and from the medium.
type Store struct {
	medium Medium
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Store over the given medium.
func New(medium Medium, logger *zap.Logger) *Store {
	return &Store{
		medium: medium,
		logger: logger,
		now:    time.Now,
	}
}

// Save wraps the snapshot into a SessionState stamped with the current time
// and schema version and overwrites the storage slot. A quota rejection is
// returned as-is so the caller can surface a transient notice; any other
// medium failure is logged and re-raised.
func (s *Store) Save(ctx context.Context, snap entity.Snapshot) error {
	state := entity.SessionState{
		CurrentStep: snap.Step,
		Answers:     snap.Answers,
		UIFlags:     snap.UIFlags,
		Meta: entity.Meta{
			LastSaved: s.now().UnixMilli(),
			Version:   CurrentVersion,
		},
	}

	serialized, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("failed to serialize session state", zap.Error(err))
		return fmt.Errorf("serialize session state: %w", err)
	}

	if err := s.medium.Put(ctx, StorageKey, string(serialized)); err != nil {
		if errors.Is(err, entity.ErrQuotaExceeded) {
			return err
		}
		s.logger.Error("failed to save session state", zap.Error(err))
		return fmt.Errorf("save session state: %w", err)
	}

	return nil
}

// Load reads the storage slot. It returns nil when the slot is empty,
// unreadable, structurally invalid, or from another schema version. It never
// returns an error: a broken snapshot must not block a fresh session.
func (s *Store) Load(ctx context.Context) *entity.SessionState {
	serialized, ok, err := s.medium.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Warn("failed to read session state, starting fresh", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var state entity.SessionState
	if err := json.Unmarshal([]byte(serialized), &state); err != nil {
		s.logger.Warn("stored session state is unreadable, starting fresh", zap.Error(err))
		return nil
	}

	if !compatible(&state) {
		s.logger.Warn("stored session state is outdated, starting fresh",
			zap.Int("stored_version", state.Meta.Version),
			zap.Int("current_version", CurrentVersion),
		)
		return nil
	}

	return &state
}

// Clear removes the storage slot. Best effort: failures are logged, never
// raised, and a missing slot is not an error.
func (s *Store) Clear(ctx context.Context) {
	if err := s.medium.Delete(ctx, StorageKey); err != nil {
		s.logger.Warn("failed to clear session state", zap.Error(err))
	}
}

// compatible is the schema-version gate, kept as a pure predicate.
func compatible(state *entity.SessionState) bool {
	return state != nil && state.Meta.Version == CurrentVersion
}
