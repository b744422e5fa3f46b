package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
)

type mockConnector struct {
	connected bool
	tables    map[string]domain.TableData
	lastLimit int
}

func (m *mockConnector) Provider() string { return "tabidoo" }

func (m *mockConnector) Connect(context.Context) error {
	m.connected = true
	return nil
}

func (m *mockConnector) LoadData(_ context.Context, opts driven.LoadOptions) (map[string]domain.TableData, error) {
	m.lastLimit = opts.Limit
	return m.tables, nil
}

func (m *mockConnector) TestConnection(context.Context) (*driven.TestResult, error) {
	return &driven.TestResult{Success: true, Message: "ok"}, nil
}

func (m *mockConnector) Close() error { return nil }

func TestSyncCmd_SavesSnapshotAndBuildsIndex(t *testing.T) {
	connector := &mockConnector{tables: map[string]domain.TableData{
		"customers": {EntityType: "company", RecordCount: 3},
		"contacts":  {EntityType: "contact", RecordCount: 2},
	}}
	index := &mockIndexService{stats: domain.Statistics{
		Total:  5,
		ByType: map[string]int{"company": 3, "contact": 2},
	}}
	store := &mockSnapshotStore{}
	setTestServices(t, Services{
		Query:     &mockQueryService{result: &domain.Result{}},
		Index:     index,
		Settings:  &mockSettingsService{crm: domain.CRMSettings{Provider: "tabidoo", APIToken: "t", RecordsLimit: 50}},
		Snapshots: store,
		NewCRMConnector: func(domain.CRMSettings) (driven.CRMConnector, error) {
			return connector, nil
		},
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"sync"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, connector.connected)
	assert.Equal(t, 50, connector.lastLimit)
	assert.Len(t, store.tables, 2)
	assert.True(t, index.built)
	assert.Contains(t, buf.String(), "Synchronised 5 records across 2 tables.")
	assert.Contains(t, buf.String(), "company: 3")
	assert.Contains(t, buf.String(), "contact: 2")
}

func TestSyncCmd_UnconfiguredCRM(t *testing.T) {
	setTestServices(t, Services{
		Query:     &mockQueryService{result: &domain.Result{}},
		Index:     &mockIndexService{},
		Settings:  &mockSettingsService{},
		Snapshots: &mockSnapshotStore{},
		NewCRMConnector: func(domain.CRMSettings) (driven.CRMConnector, error) {
			return &mockConnector{}, nil
		},
	})

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"sync"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings crm")
}

func TestStatsCmd_PrintsBreakdown(t *testing.T) {
	index := &mockIndexService{stats: domain.Statistics{
		Total:        5,
		IndexingTime: 3 * time.Millisecond,
		ByType:       map[string]int{"company": 3, "contact": 2},
	}}
	setTestServices(t, Services{
		Query:    &mockQueryService{result: &domain.Result{}},
		Index:    index,
		Settings: &mockSettingsService{crm: domain.CRMSettings{Provider: "tabidoo", APIToken: "t"}},
		Snapshots: &mockSnapshotStore{tables: map[string]domain.TableData{
			"customers": {EntityType: "company"},
		}},
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, index.built)
	assert.Contains(t, buf.String(), "Indexed records: 5")
	assert.Contains(t, buf.String(), "company")
	assert.Contains(t, buf.String(), "contact")
}
