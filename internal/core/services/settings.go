package services

import (
	"fmt"

	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
	"github.com/melioro/connectai/internal/core/ports/driving"
)

// Ensure SettingsService implements the driving interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages provider configuration, validating provider
// names against the registry before persisting.
type SettingsService struct {
	store    driven.SettingsStore
	registry *ProviderRegistry
}

// NewSettingsService creates a settings service backed by the given store.
func NewSettingsService(store driven.SettingsStore, registry *ProviderRegistry) *SettingsService {
	return &SettingsService{store: store, registry: registry}
}

// AISettings returns the current AI provider settings.
func (s *SettingsService) AISettings() domain.AISettings {
	return s.store.AISettings()
}

// CRMSettings returns the current CRM provider settings.
func (s *SettingsService) CRMSettings() domain.CRMSettings {
	return s.store.CRMSettings()
}

// SetAIProvider validates and persists the AI provider selection.
func (s *SettingsService) SetAIProvider(provider, model, apiKey string) error {
	if err := s.checkProvider(provider, domain.ProviderKindAI); err != nil {
		return err
	}
	if apiKey == "" {
		return fmt.Errorf("settings: %w: API key", domain.ErrMissingCredentials)
	}

	return s.store.SetAISettings(domain.AISettings{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	})
}

// SetCRMProvider validates and persists the CRM provider selection.
func (s *SettingsService) SetCRMProvider(provider, apiToken, appID string, recordsLimit int) error {
	if err := s.checkProvider(provider, domain.ProviderKindCRM); err != nil {
		return err
	}
	if apiToken == "" {
		return fmt.Errorf("settings: %w: API token", domain.ErrMissingCredentials)
	}

	return s.store.SetCRMSettings(domain.CRMSettings{
		Provider:     provider,
		APIToken:     apiToken,
		AppID:        appID,
		RecordsLimit: recordsLimit,
	})
}

// Providers lists known providers of the given kind.
func (s *SettingsService) Providers(kind domain.ProviderKind) []domain.ProviderInfo {
	return s.registry.Providers(kind)
}

// Validate checks that the configured providers are known and implemented.
// An unconfigured AI provider is not an error; answering works without AI.
func (s *SettingsService) Validate() error {
	crm := s.store.CRMSettings()
	if crm.Provider != "" {
		if err := s.checkProvider(crm.Provider, domain.ProviderKindCRM); err != nil {
			return err
		}
	}

	ai := s.store.AISettings()
	if ai.Provider != "" {
		if err := s.checkProvider(ai.Provider, domain.ProviderKindAI); err != nil {
			return err
		}
	}
	return nil
}

// ExampleQueries returns the configured example queries.
func (s *SettingsService) ExampleQueries() []string {
	return s.store.ExampleQueries()
}

// checkProvider verifies the provider exists, has the expected kind and
// is implemented.
func (s *SettingsService) checkProvider(name string, kind domain.ProviderKind) error {
	info, err := s.registry.Lookup(name)
	if err != nil {
		return err
	}
	if info.Kind != kind {
		return fmt.Errorf("settings: %w: %q is not a %s provider", domain.ErrUnsupportedProvider, name, kind)
	}
	if !info.Implemented {
		return fmt.Errorf("settings: %w: %q", domain.ErrProviderDisabled, name)
	}
	return nil
}
