package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aislehq/pantry/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.AIConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "meta-llama/llama-3.1-8b-instruct:free",
		TopP:        0.5,
		Temperature: 0.5,
		Timeout:     5 * time.Second,
	}, zap.NewNop())
}

func TestComplete(t *testing.T) {
	t.Run("SendsExpectedWireFormat", func(t *testing.T) {
		var captured chatCompletionRequest
		var authHeader, contentType string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/chat/completions", r.URL.Path)
			authHeader = r.Header.Get("Authorization")
			contentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			json.NewEncoder(w).Encode(chatCompletionResponse{
				Choices: []choice{{Message: message{Role: "assistant", Content: "A recipe."}}},
			})
		}))
		defer srv.Close()

		text, err := newTestClient(srv.URL).Complete(context.Background(), "make something")

		require.NoError(t, err)
		assert.Equal(t, "A recipe.", text)
		assert.Equal(t, "Bearer test-key", authHeader)
		assert.Equal(t, "application/json", contentType)
		assert.Equal(t, "meta-llama/llama-3.1-8b-instruct:free", captured.Model)
		assert.Equal(t, 0.5, captured.TopP)
		assert.Equal(t, 0.5, captured.Temperature)
		require.Len(t, captured.Messages, 1)
		assert.Equal(t, "user", captured.Messages[0].Role)
		assert.Equal(t, "make something", captured.Messages[0].Content)
	})

	t.Run("MissingChoices_IsProtocolError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"gen-1"}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Complete(context.Background(), "prompt")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no choices")
	})

	t.Run("EmptyContent_IsProtocolError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":""}}]}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Complete(context.Background(), "prompt")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty message content")
	})

	t.Run("NonOKStatus_IsError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Complete(context.Background(), "prompt")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("InvalidJSON_IsError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Complete(context.Background(), "prompt")

		require.Error(t, err)
	})

	t.Run("TransportFailure_IsError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse connections

		_, err := newTestClient(srv.URL).Complete(context.Background(), "prompt")

		require.Error(t, err)
	})
}
