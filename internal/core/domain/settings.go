package domain

// TableConfig is the routing metadata for one CRM table, supplied by
// configuration. The analyzer uses Keywords, the engine uses SearchFields
// and EntityType.
type TableConfig struct {
	// ID is the vendor-side table identifier.
	ID string

	// Name is the human-readable table name.
	Name string

	// EntityType tags records from this table (company, contact, ...).
	EntityType string

	// Keywords are the query words that select this entity type
	// ("firma", "firmy", "firem", ...).
	Keywords []string

	// SearchFields are the field names prioritized when building search
	// text for records of this table.
	SearchFields []string
}

// DisplaySettings controls how much the processor renders in plain text.
type DisplaySettings struct {
	// MaxRecordsToShow caps list output length.
	MaxRecordsToShow int
}

// DefaultDisplaySettings returns the display defaults (20 records).
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{MaxRecordsToShow: 20}
}

// AISettings selects and configures the optional AI formatting provider.
type AISettings struct {
	// Provider is the AI provider name (openai, claude, gemini).
	// Empty disables AI narration.
	Provider string

	// APIKey is the provider API key.
	APIKey string

	// Model overrides the provider's default model when non-empty.
	Model string
}

// IsConfigured reports whether the settings select a usable provider.
func (s AISettings) IsConfigured() bool {
	return s.Provider != "" && s.APIKey != ""
}

// CRMSettings selects and configures the CRM data source.
type CRMSettings struct {
	// Provider is the CRM provider name (tabidoo, hubspot).
	Provider string

	// APIToken is the bearer token for the vendor API.
	APIToken string

	// AppID is the vendor application/portal identifier, where required.
	AppID string

	// RecordsLimit caps records fetched per table. Zero means the
	// connector default.
	RecordsLimit int
}

// IsConfigured reports whether the settings select a usable provider.
func (s CRMSettings) IsConfigured() bool {
	return s.Provider != "" && s.APIToken != ""
}

// AppInfo identifies the application for the version intent.
type AppInfo struct {
	Name    string
	Version string
}
