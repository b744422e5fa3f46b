package driven

import (
	"context"

	"github.com/melioro/connectai/internal/core/domain"
)

// CRMConnector fetches record tables from a CRM vendor.
// Each provider (tabidoo, hubspot, ...) implements this interface.
type CRMConnector interface {
	// Provider returns the provider name this connector serves.
	Provider() string

	// Connect verifies credentials and establishes the session.
	// Idempotent: calling Connect on a connected connector is a no-op.
	Connect(ctx context.Context) error

	// LoadData fetches all configured tables. Tables that fail to load
	// are skipped, not fatal; the returned mapping holds what succeeded.
	LoadData(ctx context.Context, opts LoadOptions) (map[string]domain.TableData, error)

	// TestConnection performs a lightweight credential check without
	// loading data. A non-nil result is returned even on failure so the
	// caller can report what was reachable.
	TestConnection(ctx context.Context) (*TestResult, error)

	// Close releases resources.
	Close() error
}

// LoadOptions configures a CRM data load.
type LoadOptions struct {
	// Limit caps records fetched per table. Zero uses the connector
	// default.
	Limit int
}

// TestResult reports the outcome of a connection test.
type TestResult struct {
	// Success is true when the credentials were accepted.
	Success bool

	// Message describes the outcome for the user.
	Message string
}
