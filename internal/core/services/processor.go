package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
	"github.com/melioro/connectai/internal/core/ports/driving"
	"github.com/melioro/connectai/internal/logger"
)

// Ensure QueryProcessor implements the interfaces.
var (
	_ driving.QueryService = (*QueryProcessor)(nil)
	_ driving.IndexService = (*QueryProcessor)(nil)
)

// previewFields are tried, in order, when building a one-line record
// preview for lists.
var previewFields = []string{"email", "telefon", "company", "value", "status"}

// QueryProcessor orchestrates the analyzer and the search engine: it
// dispatches on the classified intent, formats a plain-text response, and
// decides whether the result warrants an AI formatting pass. It is the
// single recovery seam: nothing below it retries and no error or panic
// escapes Process.
type QueryProcessor struct {
	analyzer *QueryAnalyzer
	engine   *SearchEngine
	config   driven.DisplayConfigSource
}

// NewQueryProcessor creates a processor over the given analyzer and
// engine. config supplies display limits and app identity; nil falls back
// to defaults.
func NewQueryProcessor(analyzer *QueryAnalyzer, engine *SearchEngine, config driven.DisplayConfigSource) *QueryProcessor {
	return &QueryProcessor{
		analyzer: analyzer,
		engine:   engine,
		config:   config,
	}
}

// BuildIndex rebuilds the engine's index from the given tables.
func (p *QueryProcessor) BuildIndex(tables map[string]domain.TableData) {
	p.engine.BuildIndex(tables)
}

// Statistics returns the engine's statistics snapshot.
func (p *QueryProcessor) Statistics() domain.Statistics {
	return p.engine.Statistics()
}

// Process classifies and answers one query. Failures of any kind come
// back as an error-typed Result, never as a panic or error value.
func (p *QueryProcessor) Process(ctx context.Context, query string) (result *domain.Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Query processing panic: %v", r)
			result = &domain.Result{
				Type:     domain.IntentError,
				Response: msgError,
				UseAI:    false,
			}
		}
	}()

	_ = ctx // Processing is synchronous; ctx is part of the port contract.

	analysis := p.analyzer.Analyze(query)
	logger.Debug("Process %q: intent=%s", query, analysis.Type)

	switch analysis.Type {
	case domain.IntentCount:
		return p.handleCount(analysis)
	case domain.IntentList:
		return p.handleList(analysis)
	case domain.IntentSearch:
		return p.handleSearch(analysis)
	case domain.IntentDetail:
		return p.handleDetail(analysis)
	case domain.IntentRelated:
		return p.handleRelated(analysis)
	case domain.IntentSystem:
		return p.handleSystem(analysis)
	default:
		return p.handleGeneral(analysis)
	}
}

// handleCount answers with the entity count, or the grand total when the
// entity is missing or unknown.
func (p *QueryProcessor) handleCount(analysis domain.QueryAnalysis) *domain.Result {
	stats := p.engine.Statistics()

	count := stats.Total
	label := entityLabel("", count)
	if analysis.Entity != "" {
		if typed, ok := stats.ByType[analysis.Entity]; ok {
			count = typed
			label = entityLabel(analysis.Entity, count)
		}
	}

	return &domain.Result{
		Type:       domain.IntentCount,
		Entity:     analysis.Entity,
		Count:      count,
		Found:      true,
		Response:   fmt.Sprintf("V databázi je celkem **%d %s**.", count, label),
		UseAI:      false,
		Confidence: analysis.Confidence,
	}
}

// handleList lists all records of the entity type, capped by the display
// limit.
func (p *QueryProcessor) handleList(analysis domain.QueryAnalysis) *domain.Result {
	records := p.engine.AllRecords(analysis.Entity)
	maxRecords := p.maxRecordsToShow()

	return &domain.Result{
		Type:       domain.IntentList,
		Entity:     analysis.Entity,
		Records:    records,
		Found:      len(records) > 0,
		Response:   p.formatRecordsList(records, analysis.Entity, maxRecords),
		UseAI:      false,
		Confidence: analysis.Confidence,
	}
}

// handleSearch runs a fuzzy search; a single hit is promoted to a detail
// result for AI narration, multiple hits become a ranked list.
func (p *QueryProcessor) handleSearch(analysis domain.QueryAnalysis) *domain.Result {
	term := analysis.EntityName
	if term == "" {
		term = analysis.Parameters["query"]
	}

	results := p.engine.Search(term, domain.SearchOptions{
		Type:  analysis.Entity,
		Fuzzy: true,
		Limit: 10,
	})

	if len(results) == 0 {
		return &domain.Result{
			Type:       domain.IntentSearch,
			Query:      term,
			Found:      false,
			Response:   fmt.Sprintf("Nenašel jsem žádné výsledky pro \"%s\".", term),
			UseAI:      false,
			Confidence: analysis.Confidence,
		}
	}

	// A single match is presumably what the user wanted; promote it to a
	// detail result and let the AI narrate it.
	if len(results) == 1 {
		return &domain.Result{
			Type:       domain.IntentDetail,
			Entity:     analysis.Entity,
			Record:     results[0].Record,
			Found:      true,
			Response:   formatDetailedRecord(results[0].Record),
			UseAI:      true,
			Confidence: analysis.Confidence,
		}
	}

	return &domain.Result{
		Type:       domain.IntentSearch,
		Query:      term,
		Results:    results,
		Found:      true,
		Response:   formatSearchResults(results, term),
		UseAI:      len(results) > 3,
		Confidence: analysis.Confidence,
	}
}

// handleDetail fetches the best match for the extracted name and hands the
// raw field payload to the AI, with a plain-text fallback.
func (p *QueryProcessor) handleDetail(analysis domain.QueryAnalysis) *domain.Result {
	term := analysis.EntityName
	results := p.engine.Search(term, domain.SearchOptions{
		Type:  analysis.Entity,
		Fuzzy: true,
		Limit: 1,
	})

	if len(results) == 0 {
		return &domain.Result{
			Type:       domain.IntentDetail,
			Found:      false,
			Response:   fmt.Sprintf("Nenašel jsem žádné informace o \"%s\".", term),
			UseAI:      false,
			Confidence: analysis.Confidence,
		}
	}

	return &domain.Result{
		Type:       domain.IntentDetail,
		Entity:     analysis.Entity,
		Record:     results[0].Record,
		Found:      true,
		Response:   formatDetailedRecord(results[0].Record),
		UseAI:      true,
		Confidence: analysis.Confidence,
	}
}

// handleRelated resolves the anchor record and walks the relationship
// graph for it.
func (p *QueryProcessor) handleRelated(analysis domain.QueryAnalysis) *domain.Result {
	term := analysis.EntityName
	mainResults := p.engine.Search(term, domain.SearchOptions{
		Type:  analysis.Entity,
		Fuzzy: true,
		Limit: 1,
	})

	if len(mainResults) == 0 {
		return &domain.Result{
			Type:       domain.IntentRelated,
			Found:      false,
			Response:   fmt.Sprintf("Nenašel jsem \"%s\" pro zobrazení souvisejících dat.", term),
			UseAI:      false,
			Confidence: analysis.Confidence,
		}
	}

	mainRecord := mainResults[0].Record
	relatedType := p.resolveRelatedType(analysis.Parameters["relatedEntity"])
	relatedRecords := p.engine.FindRelated(mainRecord, relatedType)

	summary := fmt.Sprintf("%s má %d %s.",
		mainRecord.Name(), len(relatedRecords), entityLabel(relatedType, len(relatedRecords)))

	return &domain.Result{
		Type:           domain.IntentRelated,
		MainRecord:     mainRecord,
		RelatedType:    relatedType,
		RelatedRecords: relatedRecords,
		Found:          true,
		Response:       summary,
		UseAI:          true,
		Confidence:     analysis.Confidence,
	}
}

// resolveRelatedType maps the query's related word ("kontakty") onto a
// configured entity type ("contact") via the keyword lists. Unmapped words
// pass through unchanged.
func (p *QueryProcessor) resolveRelatedType(word string) string {
	if word == "" {
		return ""
	}
	if mapped := p.analyzer.extractEntityType(strings.ToLower(word)); mapped != "" {
		return mapped
	}
	return word
}

// handleSystem sub-dispatches on the extracted action.
func (p *QueryProcessor) handleSystem(analysis domain.QueryAnalysis) *domain.Result {
	switch analysis.Parameters["action"] {
	case "help":
		return &domain.Result{
			Type:       domain.IntentSystem,
			Action:     "help",
			Found:      true,
			Response:   helpText,
			UseAI:      false,
			Confidence: 1.0,
		}
	case "version":
		app := p.appInfo()
		return &domain.Result{
			Type:       domain.IntentSystem,
			Action:     "version",
			Found:      true,
			Response:   fmt.Sprintf("Používáte **%s v%s**", app.Name, app.Version),
			UseAI:      false,
			Confidence: 1.0,
		}
	case "stats":
		stats := p.engine.Statistics()
		return &domain.Result{
			Type:       domain.IntentSystem,
			Action:     "stats",
			Stats:      &stats,
			Found:      true,
			Response:   formatStatistics(stats),
			UseAI:      false,
			Confidence: 1.0,
		}
	default:
		return p.handleGeneral(analysis)
	}
}

// handleGeneral falls back to a fuzzy full-text search over every type
// with the raw query.
func (p *QueryProcessor) handleGeneral(analysis domain.QueryAnalysis) *domain.Result {
	results := p.engine.Search(analysis.OriginalQuery, domain.SearchOptions{
		Fuzzy: true,
		Limit: 10,
	})

	if len(results) > 0 {
		return &domain.Result{
			Type:       domain.IntentGeneral,
			Query:      analysis.OriginalQuery,
			Results:    results,
			Found:      true,
			Response:   formatSearchResults(results, analysis.OriginalQuery),
			UseAI:      true,
			Confidence: 0.5,
		}
	}

	return &domain.Result{
		Type:       domain.IntentGeneral,
		Found:      false,
		Response:   msgNotUnderstood,
		UseAI:      false,
		Confidence: 0.1,
	}
}

// maxRecordsToShow reads the display limit from configuration.
func (p *QueryProcessor) maxRecordsToShow() int {
	if p.config != nil {
		if limit := p.config.Display().MaxRecordsToShow; limit > 0 {
			return limit
		}
	}
	return domain.DefaultDisplaySettings().MaxRecordsToShow
}

// appInfo reads the application identity from configuration.
func (p *QueryProcessor) appInfo() domain.AppInfo {
	if p.config != nil {
		if app := p.config.App(); app.Name != "" {
			return app
		}
	}
	return domain.AppInfo{Name: "ConnectAI", Version: "2.0.0"}
}

// formatRecordsList renders a numbered list with name and a short
// preview, with a "+N more" footer when truncated.
func (p *QueryProcessor) formatRecordsList(records []domain.Record, entityType string, maxRecords int) string {
	if len(records) == 0 {
		return msgNoRecords
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Nalezeno %d %s:**\n\n", len(records), entityLabel(entityType, len(records)))

	display := records
	if len(display) > maxRecords {
		display = display[:maxRecords]
	}

	for i, record := range display {
		fmt.Fprintf(&b, "%d. **%s**", i+1, record.Name())
		if preview := recordPreview(record); preview != "" {
			fmt.Fprintf(&b, " - %s", preview)
		}
		b.WriteString("\n")
	}

	if len(records) > maxRecords {
		fmt.Fprintf(&b, "\n... a dalších %d záznamů.", len(records)-maxRecords)
	}

	return b.String()
}

// formatSearchResults renders a ranked list with similarity percentages.
func formatSearchResults(results []domain.SearchResult, query string) string {
	if len(results) == 0 {
		return fmt.Sprintf("Nenašel jsem žádné výsledky pro \"%s\".", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Výsledky vyhledávání pro \"%s\":**\n\n", query)

	for i, result := range results {
		score := int(math.Round(result.Score * 100))
		fmt.Fprintf(&b, "%d. **%s** (%s, shoda: %d%%)\n",
			i+1, result.Record.Name(), entityLabel(result.Type, 1), score)
	}

	return b.String()
}

// formatDetailedRecord renders the raw field payload for AI narration;
// the JSON doubles as the plain-text fallback.
func formatDetailedRecord(record domain.Record) string {
	data, err := json.MarshalIndent(record.Fields(), "", "  ")
	if err != nil {
		return record.Name()
	}
	return string(data)
}

// formatStatistics renders the global and per-type counts.
func formatStatistics(stats domain.Statistics) string {
	var b strings.Builder
	b.WriteString("**Statistiky systému:**\n\n")
	fmt.Fprintf(&b, "Celkem záznamů: **%d**\n\n", stats.Total)
	b.WriteString("Podle typu:\n")

	types := make([]string, 0, len(stats.ByType))
	for t := range stats.ByType {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		count := stats.ByType[t]
		fmt.Fprintf(&b, "- %s: **%d**\n", entityLabel(t, count), count)
	}

	return b.String()
}

// recordPreview joins the first two populated preview fields.
func recordPreview(record domain.Record) string {
	fields := record.Fields()
	var previews []string
	for _, name := range previewFields {
		if value, ok := fields[name]; ok {
			if s := domain.FieldString(value); s != "" {
				previews = append(previews, s)
				if len(previews) >= 2 {
					break
				}
			}
		}
	}
	return strings.Join(previews, ", ")
}
