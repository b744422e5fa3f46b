package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
	"github.com/melioro/connectai/internal/logger"
)

// queryRule is one ordered pattern rule inside an intent category.
type queryRule struct {
	re              *regexp.Regexp
	confidence      float64
	needsEntityName bool
	extract         func(m []string) map[string]string
}

// ruleCategory groups rules under one intent. Categories are tried in
// slice order; within a category, rules in definition order. The first
// match across the whole catalog wins.
type ruleCategory struct {
	intent domain.Intent
	rules  []queryRule
}

// actionWords is the stoplist removed before name extraction.
var actionWords = []string{
	"najdi", "vyhledej", "zobraz", "ukaž", "vypiš",
	"hledám", "jaké", "kolik", "detail", "informace",
}

// quoted extracts a double-quoted substring; quoting takes priority over
// the capitalized-run heuristic.
var quoted = regexp.MustCompile(`"([^"]+)"`)

// capitalizedRun matches a run of capitalized words, Czech diacritics
// included.
var capitalizedRun = regexp.MustCompile(
	`[A-ZÁČĎĚÉÍŇÓŘŠŤÚŮÝŽ][a-záčďěéíňóřšťúůýž]+(\s+[A-ZÁČĎĚÉÍŇÓŘŠŤÚŮÝŽ][a-záčďěéíňóřšťúůýž]+)*`)

// QueryAnalyzer classifies raw queries into intents with extracted
// parameters. Table configuration drives entity-type recognition; the rule
// catalog itself is fixed.
type QueryAnalyzer struct {
	config     driven.TableConfigSource
	categories []ruleCategory
}

// NewQueryAnalyzer creates an analyzer backed by the given table
// configuration.
func NewQueryAnalyzer(config driven.TableConfigSource) *QueryAnalyzer {
	return &QueryAnalyzer{
		config:     config,
		categories: buildRuleCatalog(),
	}
}

// buildRuleCatalog defines the intent rules in priority order.
func buildRuleCatalog() []ruleCategory {
	return []ruleCategory{
		{
			intent: domain.IntentCount,
			rules: []queryRule{
				{
					re:         regexp.MustCompile(`kolik\s+(\w+)\s*(je|máme|existuje|je v systému)`),
					confidence: 0.9,
					extract:    func(m []string) map[string]string { return map[string]string{"entity": m[1]} },
				},
				{
					re:         regexp.MustCompile(`počet\s+(\w+)`),
					confidence: 0.9,
					extract:    func(m []string) map[string]string { return map[string]string{"entity": m[1]} },
				},
				{
					re:         regexp.MustCompile(`jaký je počet\s+(\w+)`),
					confidence: 0.9,
					extract:    func(m []string) map[string]string { return map[string]string{"entity": m[1]} },
				},
			},
		},
		{
			intent: domain.IntentList,
			rules: []queryRule{
				{
					re:         regexp.MustCompile(`vypiš\s+(všechny\s+)?(\w+)`),
					confidence: 0.9,
					extract: func(m []string) map[string]string {
						return map[string]string{"all": "true", "entity": m[2]}
					},
				},
				{
					re:         regexp.MustCompile(`zobraz\s+(seznam\s+)?(\w+)`),
					confidence: 0.9,
					extract:    func(m []string) map[string]string { return map[string]string{"entity": m[2]} },
				},
				{
					re:         regexp.MustCompile(`ukaž\s+(mi\s+)?(všechny\s+)?(\w+)`),
					confidence: 0.9,
					extract:    func(m []string) map[string]string { return map[string]string{"entity": m[3]} },
				},
				{
					re:         regexp.MustCompile(`jaké\s+(\w+)\s+(to\s+)?jsou`),
					confidence: 0.8,
					extract:    func(m []string) map[string]string { return map[string]string{"entity": m[1]} },
				},
			},
		},
		{
			intent: domain.IntentSearch,
			rules: []queryRule{
				{
					re:              regexp.MustCompile(`najdi\s+(\w+)\s+(.+)`),
					confidence:      0.9,
					needsEntityName: true,
					extract: func(m []string) map[string]string {
						return map[string]string{"entity": m[1], "query": m[2]}
					},
				},
				{
					re:              regexp.MustCompile(`vyhledej\s+(\w+)\s+(.+)`),
					confidence:      0.9,
					needsEntityName: true,
					extract: func(m []string) map[string]string {
						return map[string]string{"entity": m[1], "query": m[2]}
					},
				},
				{
					re:              regexp.MustCompile(`hledám\s+(\w+)\s+(.+)`),
					confidence:      0.8,
					needsEntityName: true,
					extract: func(m []string) map[string]string {
						return map[string]string{"entity": m[1], "query": m[2]}
					},
				},
			},
		},
		{
			intent: domain.IntentDetail,
			rules: []queryRule{
				{
					re:              regexp.MustCompile(`(detaily?|informace|údaje)\s+o\s+(.+)`),
					confidence:      0.9,
					needsEntityName: true,
					extract:         func(m []string) map[string]string { return map[string]string{"query": m[2]} },
				},
				{
					re:              regexp.MustCompile(`co víš o\s+(.+)`),
					confidence:      0.8,
					needsEntityName: true,
					extract:         func(m []string) map[string]string { return map[string]string{"query": m[1]} },
				},
			},
		},
		{
			intent: domain.IntentRelated,
			rules: []queryRule{
				{
					re:              regexp.MustCompile(`jaké\s+(\w+)\s+má\s+(.+)`),
					confidence:      0.9,
					needsEntityName: true,
					extract: func(m []string) map[string]string {
						return map[string]string{"relatedEntity": m[1], "query": m[2]}
					},
				},
				{
					re:              regexp.MustCompile(`zobraz\s+(\w+)\s+(?:firmy|osoby|kontaktu)\s+(.+)`),
					confidence:      0.9,
					needsEntityName: true,
					extract: func(m []string) map[string]string {
						return map[string]string{"relatedEntity": m[1], "query": m[2]}
					},
				},
			},
		},
		{
			intent: domain.IntentSystem,
			rules: []queryRule{
				{
					re:         regexp.MustCompile(`jak\s+(systém\s+)?funguje`),
					confidence: 0.9,
					extract:    func([]string) map[string]string { return map[string]string{"action": "help"} },
				},
				{
					re:         regexp.MustCompile(`jakou\s+verzi`),
					confidence: 0.9,
					extract:    func([]string) map[string]string { return map[string]string{"action": "version"} },
				},
				{
					re:         regexp.MustCompile(`zobraz\s+statistiky`),
					confidence: 0.9,
					extract:    func([]string) map[string]string { return map[string]string{"action": "stats"} },
				},
			},
		},
	}
}

// Analyze classifies one raw query. The first rule to match, in category
// priority order, decides the intent. When nothing matches but a name can
// be recovered from the query, the intent degrades to a low-confidence
// search; otherwise the analysis stays "general".
func (a *QueryAnalyzer) Analyze(query string) domain.QueryAnalysis {
	normalized := strings.ToLower(strings.TrimSpace(query))

	analysis := domain.QueryAnalysis{
		OriginalQuery:   query,
		NormalizedQuery: normalized,
		Type:            domain.IntentGeneral,
		Parameters:      map[string]string{},
	}

	analysis.Entity = a.extractEntityType(normalized)

	for _, category := range a.categories {
		for _, rule := range category.rules {
			m := rule.re.FindStringSubmatch(normalized)
			if m == nil {
				continue
			}

			analysis.Type = category.intent
			analysis.Confidence = rule.confidence
			if analysis.Confidence == 0 {
				analysis.Confidence = 0.8
			}
			if rule.extract != nil {
				analysis.Parameters = rule.extract(m)
			}
			if rule.needsEntityName {
				// Name extraction works on the original query: the
				// capitalized-run heuristic needs the original casing.
				analysis.EntityName = a.extractEntityName(query, analysis.Entity)
			}

			logger.Debug("Analyze %q: intent=%s confidence=%.2f entity=%q name=%q",
				query, analysis.Type, analysis.Confidence, analysis.Entity, analysis.EntityName)
			return analysis
		}
	}

	// No pattern matched; a recoverable name still suggests a search.
	analysis.EntityName = a.extractEntityName(query, analysis.Entity)
	if analysis.EntityName != "" {
		analysis.Type = domain.IntentSearch
		analysis.Confidence = 0.6
	}

	logger.Debug("Analyze %q: fallback intent=%s confidence=%.2f name=%q",
		query, analysis.Type, analysis.Confidence, analysis.EntityName)
	return analysis
}

// extractEntityType resolves an entity type by scanning the configured
// keyword lists for substring containment, in table definition order.
func (a *QueryAnalyzer) extractEntityType(normalized string) string {
	if a.config == nil {
		return ""
	}
	for _, table := range a.config.Tables() {
		for _, keyword := range table.Keywords {
			if strings.Contains(normalized, keyword) {
				return table.EntityType
			}
		}
	}
	return ""
}

// extractEntityName recovers a proper name from the original query:
// entity keywords and action words are removed, then a quoted substring
// wins, then a run of capitalized words, then the trimmed remainder when
// longer than one character.
func (a *QueryAnalyzer) extractEntityName(query, entityType string) string {
	clean := query

	if a.config != nil {
		if table, ok := a.config.TableByType(entityType); ok {
			for _, keyword := range table.Keywords {
				clean = removeAllFold(clean, keyword)
			}
		}
	}

	for _, word := range actionWords {
		clean = removeAllFold(clean, word)
	}

	if m := quoted.FindStringSubmatch(clean); m != nil {
		return m[1]
	}

	if m := capitalizedRun.FindString(clean); m != "" {
		return m
	}

	clean = strings.TrimSpace(clean)
	if utf8.RuneCountInString(clean) > 1 {
		return clean
	}
	return ""
}

// removeAllFold removes every case-insensitive occurrence of word from s.
func removeAllFold(s, word string) string {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(word))
	if err != nil {
		return s
	}
	return re.ReplaceAllString(s, "")
}
