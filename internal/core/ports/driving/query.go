// Package driving provides interfaces for use-case entry points
// (primary/inbound ports) consumed by the CLI and chat adapters.
package driving

import (
	"context"

	"github.com/melioro/connectai/internal/core/domain"
)

// QueryService answers natural-language queries against the indexed CRM
// data.
type QueryService interface {
	// Process classifies and answers one query. It never returns an
	// error for malformed or unanswerable queries; failures surface as a
	// Result of type "error".
	Process(ctx context.Context, query string) *domain.Result
}

// IndexService owns the lifecycle of the in-memory index.
type IndexService interface {
	// BuildIndex discards the current index and rebuilds it from the
	// given tables.
	BuildIndex(tables map[string]domain.TableData)

	// Statistics returns a snapshot of the current index statistics.
	Statistics() domain.Statistics
}
