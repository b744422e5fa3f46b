package domain

import "time"

// SearchOptions configures a search against the index.
type SearchOptions struct {
	// Type restricts the candidate pool to one entity type.
	// Empty searches every indexed record.
	Type string

	// Fuzzy enables edit-distance token matching.
	Fuzzy bool

	// Limit is the maximum number of results.
	Limit int

	// MinScore excludes candidates scoring below this threshold.
	MinScore float64
}

// DefaultSearchOptions returns the options used when the caller leaves
// everything unset: fuzzy on, 10 results, 0.3 minimum score.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Fuzzy:    true,
		Limit:    10,
		MinScore: 0.3,
	}
}

// SearchResult is a single scored hit.
type SearchResult struct {
	// Record is the matched record.
	Record Record

	// Type is the record's entity type.
	Type string

	// Score is the relevance score in (0, 1].
	Score float64

	// Matches lists the fields where query tokens appeared, for
	// highlighting.
	Matches []FieldMatch
}

// FieldMatch records one query token found inside one field value.
type FieldMatch struct {
	// Field is the field name.
	Field string

	// Value is the field's original value.
	Value any

	// Token is the query token that matched.
	Token string
}

// Statistics is the engine's indexing snapshot.
type Statistics struct {
	// Total is the number of indexed records.
	Total int

	// ByType maps entity type to record count.
	ByType map[string]int

	// ByTable maps table name to record count.
	ByTable map[string]int

	// IndexingTime is how long the last BuildIndex took.
	IndexingTime time.Duration
}
