package services

// User-facing strings. The assistant answers in a single fixed locale
// (Czech, matching the CRM data); swapping locale is a configuration
// concern outside the core.
const (
	msgError         = "Omlouvám se, nastala chyba při zpracování dotazu."
	msgNotUnderstood = "Nerozuměl jsem vašemu dotazu. Zkuste se zeptat konkrétněji nebo použijte příklady z nápovědy."
	msgNoRecords     = "Nenašel jsem žádné záznamy."
)

// helpText is the static answer to the help intent.
const helpText = `**Co umím:**

📊 **Počítání** - "Kolik firem je v systému?"
📋 **Výpisy** - "Vypiš všechny kontakty"
🔍 **Vyhledávání** - "Najdi firmu Alza"
🔗 **Související data** - "Jaké kontakty má firma Microsoft?"
📈 **Statistiky** - "Jak systém funguje?"

**Tipy:**
- Používejte jména s velkým počátečním písmenem
- Pro přesné vyhledávání dejte text do uvozovek
- Můžete kombinovat různé typy dotazů`

// entityLabels holds the grammatical forms per entity type:
// one (1), few (2-4) and many (5+), per Czech plural rules.
type labelForms struct {
	one, few, many string
}

var entityLabels = map[string]labelForms{
	"company":  {"firma", "firmy", "firem"},
	"contact":  {"kontakt", "kontakty", "kontaktů"},
	"activity": {"aktivita", "aktivity", "aktivit"},
	"deal":     {"obchodní případ", "obchodní případy", "obchodních případů"},
}

var genericLabels = labelForms{"záznam", "záznamy", "záznamů"}

// entityLabel returns the correctly pluralized noun for an entity type.
func entityLabel(entityType string, count int) string {
	forms, ok := entityLabels[entityType]
	if !ok {
		forms = genericLabels
	}
	switch {
	case count == 1:
		return forms.one
	case count >= 2 && count <= 4:
		return forms.few
	default:
		return forms.many
	}
}
