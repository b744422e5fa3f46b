package domain

// Intent is the classified purpose of a user query.
type Intent string

// Known intents, in classification priority order.
const (
	IntentCount   Intent = "count"
	IntentList    Intent = "list"
	IntentSearch  Intent = "search"
	IntentDetail  Intent = "detail"
	IntentRelated Intent = "related"
	IntentSystem  Intent = "system"
	IntentGeneral Intent = "general"
	IntentError   Intent = "error"
)

// QueryAnalysis is the ephemeral result of classifying one raw query.
// Produced fresh per query, never persisted.
type QueryAnalysis struct {
	// OriginalQuery is the query exactly as the user typed it.
	OriginalQuery string

	// NormalizedQuery is the lowercased, trimmed query used for matching.
	NormalizedQuery string

	// Type is the classified intent.
	Type Intent

	// Entity is the resolved entity type (company, contact, ...), if any.
	Entity string

	// EntityName is the extracted proper name ("Alza Online"), if any.
	EntityName string

	// Parameters holds rule-specific extracted values (relatedEntity,
	// free-text target, system action).
	Parameters map[string]string

	// Confidence is the matching rule's confidence, 0 when nothing matched.
	Confidence float64
}

// Result is the processor's answer to one query. Type-specific payload
// fields are populated only for the matching intent.
type Result struct {
	// Type mirrors the intent that produced this result, or "error".
	Type Intent

	// Response is the human-readable answer text (also the AI fallback).
	Response string

	// UseAI marks the result as a hand-off point for AI narration.
	UseAI bool

	// Confidence carries the analysis confidence through to the caller.
	Confidence float64

	// Found is false when a search/detail/related lookup came up empty.
	Found bool

	// Query is the effective search term, for search/general results.
	Query string

	// Entity is the resolved entity type, where applicable.
	Entity string

	// Count is the record count for count results.
	Count int

	// Records holds the listed records for list results.
	Records []Record

	// Results holds scored hits for search/general results.
	Results []SearchResult

	// Record is the single matched record for detail results.
	Record Record

	// MainRecord is the anchor record for related results.
	MainRecord Record

	// RelatedRecords are the resolved related records.
	RelatedRecords []Record

	// RelatedType is the requested related entity type, if any.
	RelatedType string

	// Action is the system sub-action (help, version, stats).
	Action string

	// Stats is the engine statistics snapshot for system stats results.
	Stats *Statistics
}
