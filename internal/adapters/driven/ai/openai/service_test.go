package openai

import (
	"context"
	"encoding/json"
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

func TestNewService_Defaults(t *testing.T) {
	service, err := NewService(Config{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, service.ModelName())
}

func TestService_FormatAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[1].Content, "Kolik firem")

		fmt.Fprint(w, `{"choices": [{"message": {"content": "V systému jsou 3 firmy."}}]}`)
	}))
	defer server.Close()

	service, err := NewService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	result := &domain.Result{Type: domain.IntentCount, Count: 3}
	answer, err := service.FormatAnswer(context.Background(), "Kolik firem je v systému?", result)

	require.NoError(t, err)
	assert.Equal(t, "V systému jsou 3 firmy.", answer)
}

func TestService_FormatAnswer_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`)
	}))
	defer server.Close()

	service, err := NewService(Config{APIKey: "sk-bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = service.FormatAnswer(context.Background(), "q", &domain.Result{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestService_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		fmt.Fprint(w, `{"data": []}`)
	}))
	defer server.Close()

	service, err := NewService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	assert.NoError(t, service.Ping(context.Background()))
}

func TestService_Ping_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	service, err := NewService(Config{APIKey: "sk-bad", BaseURL: server.URL})
	require.NoError(t, err)

	assert.Error(t, service.Ping(context.Background()))
}
