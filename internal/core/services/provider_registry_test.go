package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melioro/connectai/internal/core/domain"
)

func TestProviderRegistry_ProvidersByKind(t *testing.T) {
	registry := NewProviderRegistry()

	ai := registry.Providers(domain.ProviderKindAI)
	crm := registry.Providers(domain.ProviderKindCRM)

	assert.Len(t, ai, 3)
	assert.Len(t, crm, 3)
	for _, p := range ai {
		assert.Equal(t, domain.ProviderKindAI, p.Kind)
	}
}

func TestProviderRegistry_Lookup(t *testing.T) {
	registry := NewProviderRegistry()

	info, err := registry.Lookup(domain.ProviderTabidoo)

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderKindCRM, info.Kind)
	assert.True(t, info.Implemented)
}

func TestProviderRegistry_LookupUnknown(t *testing.T) {
	registry := NewProviderRegistry()

	_, err := registry.Lookup("pipedrive")

	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}

func TestProviderRegistry_RequiredCredentials(t *testing.T) {
	registry := NewProviderRegistry()

	keys, err := registry.RequiredCredentials(domain.ProviderTabidoo)

	require.NoError(t, err)
	assert.Equal(t, []string{"apiToken", "appId"}, keys)
}

func TestProviderRegistry_IsImplemented(t *testing.T) {
	registry := NewProviderRegistry()

	assert.True(t, registry.IsImplemented(domain.ProviderOpenAI))
	assert.False(t, registry.IsImplemented(domain.ProviderSalesforce))
	assert.False(t, registry.IsImplemented("pipedrive"))
}
