package driven

import "github.com/melioro/connectai/internal/core/domain"

// SettingsStore persists user-editable provider settings.
type SettingsStore interface {
	// AISettings returns the current AI provider settings.
	AISettings() domain.AISettings

	// SetAISettings persists AI provider settings.
	SetAISettings(settings domain.AISettings) error

	// CRMSettings returns the current CRM provider settings.
	CRMSettings() domain.CRMSettings

	// SetCRMSettings persists CRM provider settings.
	SetCRMSettings(settings domain.CRMSettings) error

	// ExampleQueries returns the configured example queries shown in
	// the chat greeting.
	ExampleQueries() []string
}
