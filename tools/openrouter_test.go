package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okResponse(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5},
	}
}

func TestTryModelsFallsBackToNextCandidate(t *testing.T) {
	// model-a e model-b falham, model-c responde
	var attempts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Model string `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		attempts = append(attempts, payload.Model)

		if payload.Model != "test/model-c" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(okResponse("resposta do c"))
	}))
	defer srv.Close()

	c := NewOpenRouterClient(srv.URL, "key", "", "", 5*time.Second)
	result, err := c.TryModels(context.Background(),
		[]string{"test/model-a", "test/model-b", "test/model-c"},
		[]ChatMessage{{Role: "user", Content: "oi"}}, ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, "test/model-c", result.Model)
	assert.Equal(t, "resposta do c", result.Content)
	assert.Equal(t, []string{"test/model-a", "test/model-b", "test/model-c"}, attempts)
}

func TestTryModelsExhaustedIsFatal(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewOpenRouterClient(srv.URL, "key", "", "", 5*time.Second)
	_, err := c.TryModels(context.Background(),
		[]string{"a", "b", "c"},
		[]ChatMessage{{Role: "user", Content: "oi"}}, ChatOptions{})

	require.ErrorIs(t, err, ErrAllModelsFailed)
	// passada única: cada candidato tentado exatamente uma vez
	assert.Equal(t, 3, calls)
}

func TestTryModelsEmptyContentCountsAsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(okResponse("   "))
	}))
	defer srv.Close()

	c := NewOpenRouterClient(srv.URL, "key", "", "", 5*time.Second)
	_, err := c.TryModels(context.Background(), []string{"a"},
		[]ChatMessage{{Role: "user", Content: "oi"}}, ChatOptions{})

	require.ErrorIs(t, err, ErrAllModelsFailed)
}

func TestChatCompletionSendsContractHeadersAndPayload(t *testing.T) {
	var got struct {
		Model          string            `json:"model"`
		MaxTokens      int               `json:"max_tokens"`
		Temperature    float64           `json:"temperature"`
		ResponseFormat map[string]string `json:"response_format"`
		Messages       []ChatMessage     `json:"messages"`
	}
	var auth, referer, title string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		referer = r.Header.Get("HTTP-Referer")
		title = r.Header.Get("X-Title")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(okResponse("{}"))
	}))
	defer srv.Close()

	c := NewOpenRouterClient(srv.URL, "minha-chave", "https://app.exemplo.gov.br", "AuroraGov", 5*time.Second)
	result, err := c.ChatCompletion(context.Background(), "test/model-a",
		[]ChatMessage{{Role: "system", Content: "instrução"}, {Role: "user", Content: "doc"}},
		ChatOptions{MaxTokens: 4000, Temperature: 0.15, JSONMode: true})

	require.NoError(t, err)
	assert.Equal(t, "Bearer minha-chave", auth)
	assert.Equal(t, "https://app.exemplo.gov.br", referer)
	assert.Equal(t, "AuroraGov", title)
	assert.Equal(t, "test/model-a", got.Model)
	assert.Equal(t, 4000, got.MaxTokens)
	assert.InDelta(t, 0.15, got.Temperature, 0.001)
	assert.Equal(t, map[string]string{"type": "json_object"}, got.ResponseFormat)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, int64(10), result.Usage.PromptTokens)
	assert.Equal(t, int64(5), result.Usage.CompletionTokens)
}

func TestChatCompletionRespectsAttemptTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode(okResponse("tarde demais"))
	}))
	defer srv.Close()

	c := NewOpenRouterClient(srv.URL, "key", "", "", 50*time.Millisecond)
	_, err := c.ChatCompletion(context.Background(), "a",
		[]ChatMessage{{Role: "user", Content: "oi"}}, ChatOptions{})
	require.Error(t, err)
}
