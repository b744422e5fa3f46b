package services

import (
	"fmt"

	"github.com/melioro/connectai/internal/core/domain"
)

// registeredProviders is the static provider catalog. The JS ancestor of
// this system discovered providers by dynamic import; here the catalog is
// compile-time data and selection happens by name.
var registeredProviders = []domain.ProviderInfo{
	{Name: domain.ProviderOpenAI, Kind: domain.ProviderKindAI, RequiredCredentials: []string{"apiKey"}, Implemented: true},
	{Name: domain.ProviderClaude, Kind: domain.ProviderKindAI, RequiredCredentials: []string{"apiKey"}, Implemented: true},
	{Name: domain.ProviderGemini, Kind: domain.ProviderKindAI, RequiredCredentials: []string{"apiKey"}, Implemented: true},
	{Name: domain.ProviderTabidoo, Kind: domain.ProviderKindCRM, RequiredCredentials: []string{"apiToken", "appId"}, Implemented: true},
	{Name: domain.ProviderHubSpot, Kind: domain.ProviderKindCRM, RequiredCredentials: []string{"apiToken"}, Implemented: true},
	{Name: domain.ProviderSalesforce, Kind: domain.ProviderKindCRM, RequiredCredentials: []string{"apiToken"}, Implemented: false},
}

// ProviderRegistry answers questions about known AI and CRM providers.
type ProviderRegistry struct {
	byName map[string]domain.ProviderInfo
}

// NewProviderRegistry creates a registry over the static catalog.
func NewProviderRegistry() *ProviderRegistry {
	byName := make(map[string]domain.ProviderInfo, len(registeredProviders))
	for _, info := range registeredProviders {
		byName[info.Name] = info
	}
	return &ProviderRegistry{byName: byName}
}

// Providers returns all providers of a kind, in catalog order.
func (r *ProviderRegistry) Providers(kind domain.ProviderKind) []domain.ProviderInfo {
	var infos []domain.ProviderInfo
	for _, info := range registeredProviders {
		if info.Kind == kind {
			infos = append(infos, info)
		}
	}
	return infos
}

// Lookup returns the provider info for a name.
func (r *ProviderRegistry) Lookup(name string) (domain.ProviderInfo, error) {
	info, ok := r.byName[name]
	if !ok {
		return domain.ProviderInfo{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, name)
	}
	return info, nil
}

// RequiredCredentials returns the credential keys a provider needs.
func (r *ProviderRegistry) RequiredCredentials(name string) ([]string, error) {
	info, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(info.RequiredCredentials))
	copy(keys, info.RequiredCredentials)
	return keys, nil
}

// IsImplemented reports whether a provider has a working connector.
func (r *ProviderRegistry) IsImplemented(name string) bool {
	info, ok := r.byName[name]
	return ok && info.Implemented
}
