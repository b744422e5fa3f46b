package services

import (
	"github.com/melioro/connectai/internal/core/domain"
)

// fakeConfig is a static in-memory table and display configuration used
// across the service tests.
type fakeConfig struct {
	tables  []domain.TableConfig
	display domain.DisplaySettings
	app     domain.AppInfo
}

func newFakeConfig() *fakeConfig {
	return &fakeConfig{
		tables: []domain.TableConfig{
			{
				ID:           "customers",
				Name:         "Zákazníci",
				EntityType:   "company",
				Keywords:     []string{"firma", "firmy", "firem", "firmu", "společnost", "zákazník", "zákazníci"},
				SearchFields: []string{"name", "email", "ico"},
			},
			{
				ID:           "contacts",
				Name:         "Kontakty",
				EntityType:   "contact",
				Keywords:     []string{"kontakt", "kontakty", "kontaktů", "osoba", "osoby", "lidi"},
				SearchFields: []string{"jmeno", "prijmeni", "email"},
			},
			{
				ID:         "deals",
				Name:       "Obchodní případy",
				EntityType: "deal",
				Keywords:   []string{"obchod", "obchody", "případ", "případy", "deal"},
			},
		},
		display: domain.DisplaySettings{MaxRecordsToShow: 20},
		app:     domain.AppInfo{Name: "ConnectAI", Version: "2.0.0"},
	}
}

func (c *fakeConfig) Tables() []domain.TableConfig { return c.tables }

func (c *fakeConfig) TableByID(id string) (domain.TableConfig, bool) {
	for _, t := range c.tables {
		if t.ID == id {
			return t, true
		}
	}
	return domain.TableConfig{}, false
}

func (c *fakeConfig) TableByType(entityType string) (domain.TableConfig, bool) {
	for _, t := range c.tables {
		if t.EntityType == entityType {
			return t, true
		}
	}
	return domain.TableConfig{}, false
}

func (c *fakeConfig) Display() domain.DisplaySettings { return c.display }

func (c *fakeConfig) App() domain.AppInfo { return c.app }

// fixtureTables is a small CRM data set with one cross-table reference:
// the contact Jan Novák points at the company Alza.
func fixtureTables() map[string]domain.TableData {
	return map[string]domain.TableData{
		"customers": {
			Name:       "Zákazníci",
			EntityType: "company",
			Data: []map[string]any{
				{"id": "c1", "fields": map[string]any{"name": "Alza", "email": "info@alza.cz"}},
				{"id": "c2", "fields": map[string]any{"name": "Alzaplus", "email": "sales@alzaplus.cz"}},
				{"id": "c3", "fields": map[string]any{"name": "Microsoft", "email": "contact@microsoft.com"}},
			},
		},
		"contacts": {
			Name:       "Kontakty",
			EntityType: "contact",
			Data: []map[string]any{
				{
					"id": "p1",
					"fields": map[string]any{
						"jmeno":    "Jan",
						"prijmeni": "Novák",
						"email":    "jan.novak@alza.cz",
						"firma":    map[string]any{"id": "c1", "fields": map[string]any{"name": "Alza"}},
					},
				},
				{
					"id": "p2",
					"fields": map[string]any{
						"jmeno":    "Petra",
						"prijmeni": "Svobodová",
						"email":    "petra@microsoft.com",
						"firma":    map[string]any{"id": "c3", "fields": map[string]any{"name": "Microsoft"}},
					},
				},
			},
		},
	}
}
