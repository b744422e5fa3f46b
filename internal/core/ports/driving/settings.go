package driving

import "github.com/melioro/connectai/internal/core/domain"

// SettingsService manages provider configuration with validation.
type SettingsService interface {
	// AISettings returns the current AI provider settings.
	AISettings() domain.AISettings

	// CRMSettings returns the current CRM provider settings.
	CRMSettings() domain.CRMSettings

	// SetAIProvider validates and persists the AI provider selection.
	SetAIProvider(provider, model, apiKey string) error

	// SetCRMProvider validates and persists the CRM provider selection.
	SetCRMProvider(provider, apiToken, appID string, recordsLimit int) error

	// Providers lists known providers of the given kind.
	Providers(kind domain.ProviderKind) []domain.ProviderInfo

	// Validate checks that the configured providers are known and
	// implemented.
	Validate() error

	// ExampleQueries returns the configured example queries.
	ExampleQueries() []string
}
