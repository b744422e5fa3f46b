package driven

import (
	"context"

	"github.com/melioro/connectai/internal/core/domain"
)

// AIService narrates processor results flagged with UseAI.
// This is an optional service - when nil, results fall back to their plain
// text response. The core never calls it; the driving layer does, after
// Process returns.
type AIService interface {
	// FormatAnswer turns a processor result into a conversational answer.
	// The result's Response field is the fallback the caller should use
	// when this fails.
	FormatAnswer(ctx context.Context, query string, result *domain.Result) (string, error)

	// ModelName returns the model identifier in use.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
