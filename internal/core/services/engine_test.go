package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melioro/connectai/internal/core/domain"
)

func newTestEngine(t *testing.T) *SearchEngine {
	t.Helper()
	engine := NewSearchEngine(newFakeConfig())
	engine.BuildIndex(fixtureTables())
	return engine
}

func TestSearchEngine_BuildIndex_Statistics(t *testing.T) {
	engine := newTestEngine(t)

	stats := engine.Statistics()

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.ByType["company"])
	assert.Equal(t, 2, stats.ByType["contact"])
	assert.Equal(t, 3, stats.ByTable["Zákazníci"])
	assert.Equal(t, 2, stats.ByTable["Kontakty"])
}

func TestSearchEngine_BuildIndex_Rebuild(t *testing.T) {
	engine := newTestEngine(t)

	// A second build over the same data must not accumulate records.
	engine.BuildIndex(fixtureTables())

	assert.Equal(t, 5, engine.Statistics().Total)
}

func TestSearchEngine_EmptyBeforeBuild(t *testing.T) {
	engine := NewSearchEngine(newFakeConfig())

	assert.Empty(t, engine.Search("alza", domain.DefaultSearchOptions()))
	assert.Empty(t, engine.AllRecords(""))
	assert.Equal(t, 0, engine.Statistics().Total)
}

func TestSearchEngine_Search_ExactMatch(t *testing.T) {
	engine := newTestEngine(t)

	results := engine.Search("Microsoft", domain.SearchOptions{Type: "company", Fuzzy: true})

	require.Len(t, results, 1)
	assert.Equal(t, "Microsoft", results[0].Record.Name())
	assert.Equal(t, "company", results[0].Type)
	assert.Equal(t, 1.0, results[0].Score)
}

func TestSearchEngine_Search_FuzzyTypo(t *testing.T) {
	engine := newTestEngine(t)

	results := engine.Search("Alzza", domain.SearchOptions{Type: "company", Fuzzy: true})

	require.NotEmpty(t, results)
	assert.Equal(t, "Alza", results[0].Record.Name())
	// similarity 0.8, fuzzy penalty 0.8, all-tokens boost 1.2.
	assert.InDelta(t, 0.768, results[0].Score, 1e-9)
}

func TestSearchEngine_Search_FuzzyDisabled(t *testing.T) {
	engine := newTestEngine(t)

	results := engine.Search("Alzza", domain.SearchOptions{Type: "company", Fuzzy: false})

	assert.Empty(t, results)
}

func TestSearchEngine_Search_MinScoreFilters(t *testing.T) {
	engine := newTestEngine(t)

	results := engine.Search("Alzza", domain.SearchOptions{Type: "company", Fuzzy: true, MinScore: 0.8})

	assert.Empty(t, results)
}

func TestSearchEngine_Search_ExactOutranksFuzzy(t *testing.T) {
	engine := newTestEngine(t)

	// "alza" appears exactly in the company Alza and in Jan Novák's email.
	results := engine.Search("alza", domain.SearchOptions{Fuzzy: true})

	require.NotEmpty(t, results)
	for _, r := range results[1:] {
		assert.LessOrEqual(t, r.Score, results[0].Score)
	}
	assert.Equal(t, 1.0, results[0].Score)
}

func TestSearchEngine_Search_TypeFilter(t *testing.T) {
	engine := newTestEngine(t)

	results := engine.Search("alza", domain.SearchOptions{Type: "contact", Fuzzy: true})

	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, "contact", r.Type)
	}
}

func TestSearchEngine_Search_Limit(t *testing.T) {
	engine := newTestEngine(t)

	results := engine.Search("cz", domain.SearchOptions{Fuzzy: true, Limit: 1})

	assert.Len(t, results, 1)
}

func TestSearchEngine_Search_EmptyQuery(t *testing.T) {
	engine := newTestEngine(t)

	assert.Empty(t, engine.Search("", domain.SearchOptions{Fuzzy: true}))
}

func TestSearchEngine_Search_Matches(t *testing.T) {
	engine := newTestEngine(t)

	results := engine.Search("Microsoft", domain.SearchOptions{Type: "company", Fuzzy: true})

	require.Len(t, results, 1)
	require.NotEmpty(t, results[0].Matches)
	fields := make([]string, 0, len(results[0].Matches))
	for _, m := range results[0].Matches {
		fields = append(fields, m.Field)
	}
	assert.Contains(t, fields, "name")
}

func TestSearchEngine_AllRecords_ByType(t *testing.T) {
	engine := newTestEngine(t)

	companies := engine.AllRecords("company")
	contacts := engine.AllRecords("contact")
	all := engine.AllRecords("")

	assert.Len(t, companies, 3)
	assert.Len(t, contacts, 2)
	assert.Len(t, all, 5)
}

func TestSearchEngine_FindRelated_Outgoing(t *testing.T) {
	engine := newTestEngine(t)

	contacts := engine.AllRecords("contact")
	require.NotEmpty(t, contacts)

	var jan domain.Record
	for _, c := range contacts {
		if c.ID() == "p1" {
			jan = c
		}
	}
	require.NotNil(t, jan)

	related := engine.FindRelated(jan, "company")

	require.Len(t, related, 1)
	assert.Equal(t, "Alza", related[0].Name())
}

func TestSearchEngine_FindRelated_Incoming(t *testing.T) {
	engine := newTestEngine(t)

	results := engine.Search("Alza", domain.SearchOptions{Type: "company", Fuzzy: false})
	require.NotEmpty(t, results)

	related := engine.FindRelated(results[0].Record, "contact")

	require.Len(t, related, 1)
	assert.Equal(t, "p1", related[0].ID())
}

func TestSearchEngine_FindRelated_TypeFilterExcludes(t *testing.T) {
	engine := newTestEngine(t)

	results := engine.Search("Alza", domain.SearchOptions{Type: "company", Fuzzy: false})
	require.NotEmpty(t, results)

	related := engine.FindRelated(results[0].Record, "deal")

	assert.Empty(t, related)
}

func TestSearchEngine_FindRelated_UnknownRecord(t *testing.T) {
	engine := newTestEngine(t)

	related := engine.FindRelated(domain.Record{"name": "Nikdo"}, "")

	assert.Empty(t, related)
}

func TestExtractRecords_Shapes(t *testing.T) {
	records := []domain.Record{{"id": "a"}}

	assert.Equal(t, records, ExtractRecords(records))

	fromMaps := ExtractRecords([]map[string]any{{"id": "b"}})
	require.Len(t, fromMaps, 1)
	assert.Equal(t, "b", fromMaps[0].ID())

	fromAny := ExtractRecords([]any{map[string]any{"id": "c"}, "garbage"})
	require.Len(t, fromAny, 1)
	assert.Equal(t, "c", fromAny[0].ID())

	wrapped := ExtractRecords(map[string]any{"data": []any{map[string]any{"id": "d"}}})
	require.Len(t, wrapped, 1)
	assert.Equal(t, "d", wrapped[0].ID())

	assert.Nil(t, ExtractRecords(42))
	assert.Nil(t, ExtractRecords(nil))
}

func TestSearchEngine_SynthesizesMissingIDs(t *testing.T) {
	engine := NewSearchEngine(newFakeConfig())
	engine.BuildIndex(map[string]domain.TableData{
		"customers": {
			EntityType: "company",
			Data:       []map[string]any{{"name": "Bez ID"}},
		},
	})

	assert.Equal(t, 1, engine.Statistics().Total)
	results := engine.Search("bez", domain.SearchOptions{Fuzzy: false})
	assert.NotEmpty(t, results)
}
