package hubspot

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
)

func newTestServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/crm/v3/objects/companies":
			fmt.Fprint(w, `{"results": [{"id": "1", "properties": {"name": "Alza", "domain": "alza.cz"}}], "total": 1}`)
		case "/crm/v3/objects/contacts":
			fmt.Fprint(w, `{"results": [{"id": "2", "properties": {"firstname": "Jan", "lastname": "Novák"}}], "total": 1}`)
		case "/crm/v3/objects/deals":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestNewConnector_RequiresToken(t *testing.T) {
	_, err := NewConnector(Config{})
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestConnector_Provider(t *testing.T) {
	conn, err := NewConnector(Config{APIToken: "token"})
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderHubSpot, conn.Provider())
}

func TestConnector_LoadData_FlattensProperties(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	conn, err := NewConnector(Config{APIToken: "token", BaseURL: server.URL})
	require.NoError(t, err)

	tables, err := conn.LoadData(context.Background(), driven.LoadOptions{Limit: 10})
	require.NoError(t, err)

	// Deals fails with a 500 and is skipped.
	require.Len(t, tables, 2)

	companies := tables["companies"]
	assert.Equal(t, "company", companies.EntityType)
	records, ok := companies.Data.([]map[string]any)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0]["id"])
	assert.Equal(t, "Alza", records[0]["name"])
}

func TestConnector_Connect_BadToken(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	conn, err := NewConnector(Config{APIToken: "wrong", BaseURL: server.URL})
	require.NoError(t, err)

	assert.ErrorIs(t, conn.Connect(context.Background()), domain.ErrMissingCredentials)
}

func TestConnector_TestConnection(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	conn, err := NewConnector(Config{APIToken: "token", BaseURL: server.URL})
	require.NoError(t, err)

	result, err := conn.TestConnection(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
}
