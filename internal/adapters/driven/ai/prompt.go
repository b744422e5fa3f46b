// Package ai provides shared plumbing for AI service adapters.
package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/melioro/connectai/internal/core/domain"
)

// SystemPrompt instructs the model to answer in Czech using only the
// supplied CRM data.
const SystemPrompt = `Jsi asistent pro CRM systém. Odpovídej česky, stručně a přátelsky.
Odpovídej POUZE na základě dodaných dat. Pokud data odpověď neobsahují, řekni to.
Nevymýšlej si žádné údaje.`

// maxContextRecords caps how many records are serialised into the prompt.
const maxContextRecords = 10

// BuildPrompt renders the user query and the processor result into a
// single prompt for answer formatting.
func BuildPrompt(query string, result *domain.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dotaz uživatele: %s\n\n", query)
	fmt.Fprintf(&b, "Typ dotazu: %s\n", result.Type)
	if result.Entity != "" {
		fmt.Fprintf(&b, "Entita: %s\n", result.Entity)
	}
	if result.Count > 0 {
		fmt.Fprintf(&b, "Počet nalezených záznamů: %d\n", result.Count)
	}

	records := contextRecords(result)
	if len(records) > 0 {
		b.WriteString("\nData:\n")
		for i, record := range records {
			if i >= maxContextRecords {
				fmt.Fprintf(&b, "... a dalších %d záznamů\n", len(records)-maxContextRecords)
				break
			}
			fields, err := json.Marshal(record.Fields())
			if err != nil {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s\n", record.Name(), fields)
		}
	}

	b.WriteString("\nOdpověz na dotaz na základě těchto dat.")
	return b.String()
}

// contextRecords collects whichever record payload the result carries.
func contextRecords(result *domain.Result) []domain.Record {
	switch {
	case result.Record != nil:
		return []domain.Record{result.Record}
	case result.MainRecord != nil:
		records := []domain.Record{result.MainRecord}
		return append(records, result.RelatedRecords...)
	case len(result.Records) > 0:
		return result.Records
	case len(result.Results) > 0:
		records := make([]domain.Record, 0, len(result.Results))
		for _, res := range result.Results {
			records = append(records, res.Record)
		}
		return records
	}
	return nil
}
