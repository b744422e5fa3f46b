package driven

import (
	"context"
	"time"

	"github.com/melioro/connectai/internal/core/domain"
)

// SnapshotStore caches the last successful CRM load so the assistant can
// build its index without a network round-trip. Snapshots are whole-load
// units: one provider maps to one snapshot, replaced atomically on save.
type SnapshotStore interface {
	// Save replaces the provider's snapshot with the given tables.
	Save(ctx context.Context, provider string, tables map[string]domain.TableData) error

	// Load returns the provider's cached tables and when they were saved.
	// Returns domain.ErrNotFound when no snapshot exists.
	Load(ctx context.Context, provider string) (map[string]domain.TableData, time.Time, error)

	// Delete removes the provider's snapshot.
	Delete(ctx context.Context, provider string) error

	// Close releases resources.
	Close() error
}
