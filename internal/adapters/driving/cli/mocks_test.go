package cli

import (
	"context"
	"time"

	"github.com/melioro/connectai/internal/core/domain"
)

// mockQueryService returns a canned result for every query.
type mockQueryService struct {
	result    *domain.Result
	lastQuery string
}

func (m *mockQueryService) Process(_ context.Context, query string) *domain.Result {
	m.lastQuery = query
	return m.result
}

// mockIndexService records index builds.
type mockIndexService struct {
	built bool
	stats domain.Statistics
}

func (m *mockIndexService) BuildIndex(map[string]domain.TableData) { m.built = true }

func (m *mockIndexService) Statistics() domain.Statistics { return m.stats }

// mockSettingsService serves fixed settings.
type mockSettingsService struct {
	ai  domain.AISettings
	crm domain.CRMSettings
}

func (m *mockSettingsService) AISettings() domain.AISettings   { return m.ai }
func (m *mockSettingsService) CRMSettings() domain.CRMSettings { return m.crm }

func (m *mockSettingsService) SetAIProvider(provider, model, apiKey string) error {
	m.ai = domain.AISettings{Provider: provider, Model: model, APIKey: apiKey}
	return nil
}

func (m *mockSettingsService) SetCRMProvider(provider, apiToken, appID string, recordsLimit int) error {
	m.crm = domain.CRMSettings{Provider: provider, APIToken: apiToken, AppID: appID, RecordsLimit: recordsLimit}
	return nil
}

func (m *mockSettingsService) Providers(domain.ProviderKind) []domain.ProviderInfo { return nil }
func (m *mockSettingsService) Validate() error                                     { return nil }
func (m *mockSettingsService) ExampleQueries() []string                            { return nil }

// mockSnapshotStore serves one in-memory snapshot.
type mockSnapshotStore struct {
	tables  map[string]domain.TableData
	savedAt time.Time
	err     error
}

func (m *mockSnapshotStore) Save(_ context.Context, _ string, tables map[string]domain.TableData) error {
	m.tables = tables
	return nil
}

func (m *mockSnapshotStore) Load(context.Context, string) (map[string]domain.TableData, time.Time, error) {
	if m.err != nil {
		return nil, time.Time{}, m.err
	}
	return m.tables, m.savedAt, nil
}

func (m *mockSnapshotStore) Delete(context.Context, string) error { return nil }
func (m *mockSnapshotStore) Close() error                         { return nil }
