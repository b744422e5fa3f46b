package claude

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melioro/connectai/internal/core/domain"
)

func TestNewService_RequiresAPIKey(t *testing.T) {
	_, err := NewService(Config{})
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestService_FormatAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		fmt.Fprint(w, `{"content": [{"type": "text", "text": "Firma Alza má 1 kontakt."}]}`)
	}))
	defer server.Close()

	service, err := NewService(Config{APIKey: "sk-ant-test", BaseURL: server.URL})
	require.NoError(t, err)

	result := &domain.Result{Type: domain.IntentRelated}
	answer, err := service.FormatAnswer(context.Background(), "Jaké kontakty má Alza?", result)

	require.NoError(t, err)
	assert.Equal(t, "Firma Alza má 1 kontakt.", answer)
}

func TestService_FormatAnswer_ConcatenatesTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"content": [{"type": "text", "text": "Část jedna. "}, {"type": "text", "text": "Část dvě."}]}`)
	}))
	defer server.Close()

	service, err := NewService(Config{APIKey: "sk-ant-test", BaseURL: server.URL})
	require.NoError(t, err)

	answer, err := service.FormatAnswer(context.Background(), "q", &domain.Result{})

	require.NoError(t, err)
	assert.Equal(t, "Část jedna. Část dvě.", answer)
}

func TestService_FormatAnswer_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"type": "invalid_request_error", "message": "bad request"}}`)
	}))
	defer server.Close()

	service, err := NewService(Config{APIKey: "sk-ant-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = service.FormatAnswer(context.Background(), "q", &domain.Result{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad request")
}
