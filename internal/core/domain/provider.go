package domain

// ProviderKind distinguishes AI providers from CRM providers.
type ProviderKind string

// Provider kinds.
const (
	ProviderKindAI  ProviderKind = "ai"
	ProviderKindCRM ProviderKind = "crm"
)

// Provider names known to the registry.
const (
	ProviderOpenAI     = "openai"
	ProviderClaude     = "claude"
	ProviderGemini     = "gemini"
	ProviderTabidoo    = "tabidoo"
	ProviderHubSpot    = "hubspot"
	ProviderSalesforce = "salesforce"
)

// ProviderInfo describes one registered provider.
type ProviderInfo struct {
	// Name is the registry key ("openai", "tabidoo", ...).
	Name string

	// Kind is ai or crm.
	Kind ProviderKind

	// RequiredCredentials lists the credential keys the provider needs
	// before it can connect.
	RequiredCredentials []string

	// Implemented is false for providers that are registered but have no
	// working connector yet (salesforce).
	Implemented bool
}
