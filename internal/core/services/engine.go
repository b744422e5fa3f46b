package services

import (
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
	"github.com/melioro/connectai/internal/logger"
)

// defaultSearchFields are used when a table has no configured search
// fields.
var defaultSearchFields = []string{"name", "email", "title", "description"}

// fuzzyThreshold is the minimum similarity for a fuzzy token match.
const fuzzyThreshold = 0.7

// fuzzyPenalty scales fuzzy match scores so they always rank below exact
// matches.
const fuzzyPenalty = 0.8

// allTokensBoost rewards candidates that matched every query token.
const allTokensBoost = 1.2

// SearchEngine owns the in-memory index over the loaded CRM tables.
// The index is immutable between BuildIndex calls: reads need no locking
// among themselves, and a reload replaces the whole index at once.
type SearchEngine struct {
	config driven.TableConfigSource

	byType        map[string][]*domain.IndexedRecord
	typeOrder     []string
	byID          map[string]*domain.IndexedRecord
	postings      map[string]map[string]struct{}
	relationships map[string][]domain.Relationship

	stats domain.Statistics
}

// NewSearchEngine creates an empty search engine. Calling Search or
// AllRecords before BuildIndex yields empty results, never an error.
func NewSearchEngine(config driven.TableConfigSource) *SearchEngine {
	e := &SearchEngine{config: config}
	e.clear()
	return e
}

// clear resets the index and statistics.
func (e *SearchEngine) clear() {
	e.byType = make(map[string][]*domain.IndexedRecord)
	e.typeOrder = nil
	e.byID = make(map[string]*domain.IndexedRecord)
	e.postings = make(map[string]map[string]struct{})
	e.relationships = make(map[string][]domain.Relationship)
	e.stats = domain.Statistics{
		ByType:  make(map[string]int),
		ByTable: make(map[string]int),
	}
}

// BuildIndex discards the current index and rebuilds it from the given
// tables. Tables are processed in sorted id order so repeated builds over
// the same data produce the same index. Relationships are linked in a
// second pass, after every table is indexed, because reference fields may
// point into tables not yet seen.
func (e *SearchEngine) BuildIndex(tables map[string]domain.TableData) {
	logger.Section("Index Build")
	start := time.Now()

	e.clear()

	tableIDs := make([]string, 0, len(tables))
	for id := range tables {
		tableIDs = append(tableIDs, id)
	}
	sort.Strings(tableIDs)

	for _, tableID := range tableIDs {
		e.indexTable(tableID, tables[tableID])
	}

	e.buildRelationships()

	e.stats.IndexingTime = time.Since(start)
	logger.Info("Index built: %d records, %d types, %d relationship sources in %s",
		e.stats.Total, len(e.byType), len(e.relationships), e.stats.IndexingTime)
}

// indexTable indexes a single table's records.
func (e *SearchEngine) indexTable(tableID string, table domain.TableData) {
	records := ExtractRecords(table.Data)
	entityType := e.resolveEntityType(tableID, table)

	logger.Debug("Indexing table %q (%s): %d records", tableID, entityType, len(records))

	if _, seen := e.byType[entityType]; !seen {
		e.typeOrder = append(e.typeOrder, entityType)
	}

	for _, record := range records {
		indexed := &domain.IndexedRecord{
			ID:         record.ID(),
			EntityType: entityType,
			TableID:    tableID,
			Record:     record,
			SearchText: e.buildSearchText(record, entityType),
		}
		if indexed.ID == "" {
			indexed.ID = "gen_" + uuid.NewString()
		}
		indexed.Tokens = TokenSet(indexed.SearchText)

		e.byType[entityType] = append(e.byType[entityType], indexed)
		// Colliding ids across tables silently overwrite; the CRM vendors
		// guarantee per-table uniqueness only.
		e.byID[indexed.ID] = indexed

		for token := range indexed.Tokens {
			ids, ok := e.postings[token]
			if !ok {
				ids = make(map[string]struct{})
				e.postings[token] = ids
			}
			ids[indexed.ID] = struct{}{}
		}

		e.stats.Total++
		e.stats.ByType[entityType]++
	}

	tableName := table.Name
	if tableName == "" {
		tableName = tableID
	}
	e.stats.ByTable[tableName] = len(records)
}

// resolveEntityType picks the table's entity type: the explicit tag, then
// the configured type for the table id, then "unknown".
func (e *SearchEngine) resolveEntityType(tableID string, table domain.TableData) string {
	if table.EntityType != "" {
		return table.EntityType
	}
	if e.config != nil {
		if cfg, ok := e.config.TableByID(tableID); ok && cfg.EntityType != "" {
			return cfg.EntityType
		}
	}
	return "unknown"
}

// buildSearchText concatenates the configured search-field values with all
// scalar string field values as a fallback, lowercased.
func (e *SearchEngine) buildSearchText(record domain.Record, entityType string) string {
	fields := record.Fields()
	var parts []string

	searchFields := defaultSearchFields
	if e.config != nil {
		if cfg, ok := e.config.TableByType(entityType); ok && len(cfg.SearchFields) > 0 {
			searchFields = cfg.SearchFields
		}
	}

	for _, name := range searchFields {
		if value, ok := fields[name]; ok {
			if s := domain.FieldString(value); s != "" {
				parts = append(parts, strings.ToLower(s))
			}
		}
	}

	for key, value := range fields {
		if strings.HasPrefix(key, "_") {
			continue
		}
		if s, ok := value.(string); ok && s != "" {
			parts = append(parts, strings.ToLower(s))
		}
	}

	return strings.Join(parts, " ")
}

// buildRelationships scans every indexed record's fields for
// reference-shaped values and records a directed edge per reference.
// One level deep only: references inside referenced records are not
// chased.
func (e *SearchEngine) buildRelationships() {
	for _, entityType := range e.typeOrder {
		for _, indexed := range e.byType[entityType] {
			for fieldName, value := range indexed.Record.Fields() {
				if !domain.IsReference(value) {
					continue
				}
				targetID := domain.ReferenceID(value)
				if targetID == "" {
					continue
				}
				e.relationships[indexed.ID] = append(e.relationships[indexed.ID], domain.Relationship{
					TargetID: targetID,
					Field:    fieldName,
				})
			}
		}
	}
}

// Search scores every candidate record against the tokenized query and
// returns hits above MinScore, best first, truncated to Limit.
func (e *SearchEngine) Search(query string, opts domain.SearchOptions) []domain.SearchResult {
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	if opts.MinScore <= 0 {
		opts.MinScore = 0.3
	}

	tokens := Tokenize(query)
	logger.Debug("Search %q: tokens=%v type=%q fuzzy=%t limit=%d minScore=%.2f",
		query, tokens, opts.Type, opts.Fuzzy, opts.Limit, opts.MinScore)

	var candidates []*domain.IndexedRecord
	if opts.Type != "" {
		candidates = e.byType[opts.Type]
	} else {
		for _, t := range e.typeOrder {
			candidates = append(candidates, e.byType[t]...)
		}
	}

	var results []domain.SearchResult
	for _, indexed := range candidates {
		score := e.score(indexed, tokens, opts.Fuzzy)
		if score < opts.MinScore {
			continue
		}
		results = append(results, domain.SearchResult{
			Record:  indexed.Record,
			Type:    indexed.EntityType,
			Score:   score,
			Matches: e.matches(indexed, tokens),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	logger.Debug("Search %q: %d results", query, len(results))
	return results
}

// score computes the query/candidate relevance: exact token membership
// scores 1.0 per token, fuzzy matches score the best similarity above the
// threshold scaled down below exact, the per-token scores are averaged,
// and a candidate matching every token gets a boost. Clamped to 1.0.
func (e *SearchEngine) score(indexed *domain.IndexedRecord, queryTokens []string, fuzzy bool) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	var total float64
	matched := 0

	for _, qt := range queryTokens {
		var tokenScore float64

		if _, exact := indexed.Tokens[qt]; exact {
			tokenScore = 1.0
			matched++
		} else if fuzzy {
			for rt := range indexed.Tokens {
				sim := Similarity(qt, rt)
				if sim > fuzzyThreshold && sim*fuzzyPenalty > tokenScore {
					tokenScore = sim * fuzzyPenalty
				}
			}
			if tokenScore > 0 {
				matched++
			}
		}

		total += tokenScore
	}

	score := total / float64(len(queryTokens))
	if matched == len(queryTokens) {
		score *= allTokensBoost
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// matches records which fields contain which query tokens, for
// highlighting.
func (e *SearchEngine) matches(indexed *domain.IndexedRecord, queryTokens []string) []domain.FieldMatch {
	var found []domain.FieldMatch
	for fieldName, fieldValue := range indexed.Record.Fields() {
		value := strings.ToLower(domain.FieldString(fieldValue))
		if value == "" {
			continue
		}
		for _, token := range queryTokens {
			if strings.Contains(value, token) {
				found = append(found, domain.FieldMatch{
					Field: fieldName,
					Value: fieldValue,
					Token: token,
				})
			}
		}
	}
	return found
}

// AllRecords returns every record of the given type, or of every type when
// the type is empty, in index insertion order.
func (e *SearchEngine) AllRecords(entityType string) []domain.Record {
	if entityType != "" {
		indexed := e.byType[entityType]
		records := make([]domain.Record, 0, len(indexed))
		for _, ir := range indexed {
			records = append(records, ir.Record)
		}
		return records
	}

	var records []domain.Record
	for _, t := range e.typeOrder {
		for _, ir := range e.byType[t] {
			records = append(records, ir.Record)
		}
	}
	return records
}

// FindRelated returns the records linked to the given record through the
// relationship graph, in either direction, optionally filtered to one
// entity type. Results are deduplicated by target id.
func (e *SearchEngine) FindRelated(record domain.Record, relatedType string) []domain.Record {
	recordID := e.findRecordID(record)
	if recordID == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var ordered []string

	add := func(id string) {
		if _, dup := seen[id]; dup {
			return
		}
		if relatedType != "" {
			indexed, ok := e.byID[id]
			if !ok || indexed.EntityType != relatedType {
				return
			}
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}

	for _, rel := range e.relationships[recordID] {
		add(rel.TargetID)
	}

	for sourceID, rels := range e.relationships {
		for _, rel := range rels {
			if rel.TargetID == recordID {
				add(sourceID)
			}
		}
	}

	var related []domain.Record
	for _, id := range ordered {
		if indexed, ok := e.byID[id]; ok {
			related = append(related, indexed.Record)
		}
	}

	logger.Debug("FindRelated %q (%s): %d records", recordID, relatedType, len(related))
	return related
}

// findRecordID resolves a record's index id: exact identity lookup over
// the indexed records first, explicit id fields as fallback.
func (e *SearchEngine) findRecordID(record domain.Record) string {
	ptr := reflect.ValueOf(record).Pointer()
	for id, indexed := range e.byID {
		if reflect.ValueOf(indexed.Record).Pointer() == ptr {
			return id
		}
	}
	return record.ID()
}

// Statistics returns a snapshot copy of the index statistics.
func (e *SearchEngine) Statistics() domain.Statistics {
	snapshot := domain.Statistics{
		Total:        e.stats.Total,
		ByType:       make(map[string]int, len(e.stats.ByType)),
		ByTable:      make(map[string]int, len(e.stats.ByTable)),
		IndexingTime: e.stats.IndexingTime,
	}
	for k, v := range e.stats.ByType {
		snapshot.ByType[k] = v
	}
	for k, v := range e.stats.ByTable {
		snapshot.ByTable[k] = v
	}
	return snapshot
}

// ExtractRecords normalizes a vendor record collection: a bare slice is
// taken as-is, a wrapper object is unwrapped via the first matching key of
// "items", "data", "records", "results". Anything else yields no records.
func ExtractRecords(data any) []domain.Record {
	switch v := data.(type) {
	case []domain.Record:
		return v
	case []map[string]any:
		records := make([]domain.Record, 0, len(v))
		for _, m := range v {
			records = append(records, domain.Record(m))
		}
		return records
	case []any:
		var records []domain.Record
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				records = append(records, domain.Record(m))
			}
		}
		return records
	case map[string]any:
		for _, key := range []string{"items", "data", "records", "results"} {
			if wrapped, ok := v[key]; ok {
				return ExtractRecords(wrapped)
			}
		}
	}
	return nil
}
