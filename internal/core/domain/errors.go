package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedProvider indicates an unknown AI or CRM provider name.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrProviderDisabled indicates the provider exists but is not enabled
	// in configuration.
	ErrProviderDisabled = errors.New("provider disabled")

	// ErrMissingCredentials indicates a provider is missing a required
	// credential (API token, app id).
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrAIUnavailable indicates no AI service is configured.
	// Results flagged for AI narration fall back to their plain text.
	ErrAIUnavailable = errors.New("AI service unavailable")

	// ErrCRMUnavailable indicates the CRM connector is not reachable and
	// no cached snapshot exists.
	ErrCRMUnavailable = errors.New("CRM data unavailable")

	// ErrRateLimited indicates the vendor API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
