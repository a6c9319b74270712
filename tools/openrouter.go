package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"auroragov/metrics"

	"github.com/rs/zerolog/log"
)

// ErrAllModelsFailed indica que o loop de fallback esgotou a lista de
// candidatos sem nenhuma resposta utilizável. É um erro "tente de novo":
// cada invocação recomeça a lista do zero.
var ErrAllModelsFailed = errors.New("todos os modelos falharam, tente novamente em instantes")

type ChatMessage struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

type ChatOptions struct {
	MaxTokens   int
	Temperature float64
	// JSONMode pede ao agregador response_format json_object (contrato estrito).
	JSONMode bool
}

type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
}

type ChatResult struct {
	Content string
	Model   string
	Usage   Usage
}

// OpenRouterClient fala com o endpoint de chat-completions do agregador.
// AttemptTimeout limita CADA tentativa do fallback, independente do
// deadline da request que chegou no servidor.
type OpenRouterClient struct {
	BaseURL        string
	ApiKey         string
	Referer        string
	Title          string
	AttemptTimeout time.Duration
	HTTPClient     *http.Client
}

func NewOpenRouterClient(baseURL, apiKey, referer, title string, attemptTimeout time.Duration) *OpenRouterClient {
	if attemptTimeout <= 0 {
		attemptTimeout = 45 * time.Second
	}
	return &OpenRouterClient{
		BaseURL:        strings.TrimSuffix(baseURL, "/"),
		ApiKey:         apiKey,
		Referer:        referer,
		Title:          title,
		AttemptTimeout: attemptTimeout,
		HTTPClient:     &http.Client{},
	}
}

// ChatCompletion faz UMA chamada ao agregador. Status não-2xx ou resposta
// sem conteúdo contam como erro - o chamador decide se tenta outro modelo.
func (c *OpenRouterClient) ChatCompletion(ctx context.Context, model string, msgs []ChatMessage, opts ChatOptions) (ChatResult, error) {
	payload := map[string]any{
		"model":    model,
		"messages": msgs,
	}
	if opts.MaxTokens > 0 {
		payload["max_tokens"] = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		payload["temperature"] = opts.Temperature
	}
	if opts.JSONMode {
		payload["response_format"] = map[string]string{"type": "json_object"}
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return ChatResult{}, fmt.Errorf("marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.AttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return ChatResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.ApiKey)
	if c.Referer != "" {
		req.Header.Set("HTTP-Referer", c.Referer)
	}
	if c.Title != "" {
		req.Header.Set("X-Title", c.Title)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return ChatResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return ChatResult{}, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ChatResult{}, fmt.Errorf("agregador respondeu %d: %s", resp.StatusCode, TruncateText(string(body), 200))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage Usage `json:"usage"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ChatResult{}, fmt.Errorf("decode chat completion response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return ChatResult{}, fmt.Errorf("resposta sem conteúdo do modelo %s", model)
	}

	return ChatResult{
		Content: parsed.Choices[0].Message.Content,
		Model:   model,
		Usage:   parsed.Usage,
	}, nil
}

// TryModels percorre a lista ordenada de candidatos e devolve o primeiro
// sucesso. Falha individual (erro de rede, não-2xx, conteúdo vazio) é
// logada e não-fatal; só o esgotamento da lista vira erro. Uma passada
// única, sem backoff - a resiliência vem da troca de modelo, não da espera.
func (c *OpenRouterClient) TryModels(ctx context.Context, candidates []string, msgs []ChatMessage, opts ChatOptions) (ChatResult, error) {
	if len(candidates) == 0 {
		return ChatResult{}, ErrAllModelsFailed
	}

	for i, model := range candidates {
		metrics.Global().LLMAttempts.Inc()

		result, err := c.ChatCompletion(ctx, model, msgs, opts)
		if err == nil {
			return result, nil
		}

		metrics.Global().LLMFailures.Inc()
		log.Warn().Err(err).
			Str("model", model).
			Int("attempt", i+1).
			Int("candidates", len(candidates)).
			Msg("tentativa de modelo falhou")

		// deadline geral estourado: não adianta tentar o próximo
		if ctx.Err() != nil {
			break
		}
	}

	return ChatResult{}, ErrAllModelsFailed
}
