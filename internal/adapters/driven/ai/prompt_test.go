package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/melioro/connectai/internal/core/domain"
)

func TestBuildPrompt_IncludesQueryAndRecords(t *testing.T) {
	result := &domain.Result{
		Type:  domain.IntentList,
		Count: 2,
		Records: []domain.Record{
			{"id": "c1", "fields": map[string]any{"name": "Alza"}},
			{"id": "c2", "fields": map[string]any{"name": "Microsoft"}},
		},
	}

	prompt := BuildPrompt("Vypiš všechny firmy", result)

	assert.Contains(t, prompt, "Vypiš všechny firmy")
	assert.Contains(t, prompt, "Alza")
	assert.Contains(t, prompt, "Microsoft")
	assert.Contains(t, prompt, "2")
}

func TestBuildPrompt_SingleRecordWins(t *testing.T) {
	result := &domain.Result{
		Type:   domain.IntentDetail,
		Record: domain.Record{"id": "c1", "fields": map[string]any{"name": "Alza"}},
		Records: []domain.Record{
			{"id": "c2", "fields": map[string]any{"name": "Jiná"}},
		},
	}

	prompt := BuildPrompt("detaily o Alze", result)

	assert.Contains(t, prompt, "Alza")
	assert.NotContains(t, prompt, "Jiná")
}

func TestBuildPrompt_RelatedRecords(t *testing.T) {
	result := &domain.Result{
		Type:           domain.IntentRelated,
		MainRecord:     domain.Record{"id": "c1", "fields": map[string]any{"name": "Alza"}},
		RelatedRecords: []domain.Record{{"id": "p1", "fields": map[string]any{"name": "Jan"}}},
	}

	prompt := BuildPrompt("jaké kontakty má Alza", result)

	assert.Contains(t, prompt, "Alza")
	assert.Contains(t, prompt, "Jan")
}

func TestBuildPrompt_TruncatesLongRecordLists(t *testing.T) {
	var records []domain.Record
	for i := 0; i < 15; i++ {
		records = append(records, domain.Record{"name": "Firma"})
	}
	result := &domain.Result{Type: domain.IntentList, Records: records}

	prompt := BuildPrompt("vypiš firmy", result)

	assert.Contains(t, prompt, "a dalších 5 záznamů")
}

func TestBuildPrompt_NoRecords(t *testing.T) {
	result := &domain.Result{Type: domain.IntentGeneral}

	prompt := BuildPrompt("něco", result)

	assert.Contains(t, prompt, "něco")
	assert.NotContains(t, prompt, "Data:")
}
