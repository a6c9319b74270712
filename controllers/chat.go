package controllers

import (
	"net/http"
	"time"

	dbpkg "auroragov/db"
	"auroragov/metrics"
	"auroragov/models"
	"auroragov/tools"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Quantos turnos anteriores entram como contexto de cada resposta.
const chatContextWindow = 20

type ChatWithAgentRequest struct {
	ConversationID int64  `json:"conversationId" form:"conversationId"`
	Message        string `json:"message" form:"message"`
	AgentID        int64  `json:"agentId" form:"agentId"`
	ModelID        string `json:"modelId" form:"modelId"`
	Stream         bool   `json:"stream" form:"stream"`
}

type ChatWithAgentResponse struct {
	Message          string  `json:"message"`
	Response         string  `json:"response"`
	ModelUsed        string  `json:"model_used"`
	TokensInput      int64   `json:"tokens_input"`
	TokensOutput     int64   `json:"tokens_output"`
	CostUSD          float64 `json:"cost_usd"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
}

// ChatWithAgent processa um turno de conversa. Ordem das verificações:
// validação -> conversa existe (404) -> conversa é do caller (403) ->
// chamada ao modelo -> persistência dos dois turnos -> uso best-effort.
// Nada é gravado antes da checagem de posse.
func ChatWithAgent(c *gin.Context) {
	start := time.Now()

	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req ChatWithAgentRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ConversationID <= 0 {
		RespondError(c, "Faltando campo conversationId", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		RespondError(c, "Faltando campo message", http.StatusBadRequest)
		return
	}
	if req.Stream {
		RespondError(c, "streaming não suportado", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var conv models.Conversation
	if err := db.First(&conv, req.ConversationID).Error; err != nil {
		RespondError(c, "conversa não encontrada", http.StatusNotFound)
		return
	}
	if conv.UserID != user.ID {
		RespondError(c, "conversa pertence a outro usuário", http.StatusForbidden)
		return
	}

	// agente define system prompt e modelo default; ambos têm fallback
	systemPrompt := tools.ChatDefaultSystemPrompt
	modelID := conf.OpenRouter.DefaultModel
	agentID := req.AgentID
	if agentID == 0 {
		agentID = conv.AgentID
	}
	if agentID > 0 {
		var agent models.Agent
		if err := db.First(&agent, agentID).Error; err != nil {
			RespondError(c, "agente não encontrado", http.StatusNotFound)
			return
		}
		if agent.SystemPrompt != "" {
			systemPrompt = agent.SystemPrompt
		}
		if agent.DefaultModelID != "" {
			modelID = agent.DefaultModelID
		}
	}
	if req.ModelID != "" {
		modelID = req.ModelID
	}

	// contexto: últimos N turnos em ordem cronológica
	var history []models.Message
	if err := db.Where("conversation_id = ?", conv.ID).
		Order("id desc").
		Limit(chatContextWindow).
		Find(&history).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	msgs := make([]tools.ChatMessage, 0, len(history)+2)
	msgs = append(msgs, tools.ChatMessage{Role: "system", Content: systemPrompt})
	for i := len(history) - 1; i >= 0; i-- {
		msgs = append(msgs, tools.ChatMessage{Role: history[i].Role, Content: history[i].Content})
	}
	msgs = append(msgs, tools.ChatMessage{Role: models.MESSAGE_ROLE_USER, Content: req.Message})

	result, err := llmClient.TryModels(c.Request.Context(), []string{modelID}, msgs, tools.ChatOptions{
		MaxTokens:   2000,
		Temperature: 0.4,
	})
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	cost := lookupModelCost(db, result.Model, result.Usage)

	// grava os dois turnos na mesma transação - a resposta sem a pergunta
	// (ou vice-versa) deixaria a conversa inconsistente
	tx := db.Begin()
	userMsg := models.Message{
		ConversationID: conv.ID,
		ExternalID:     uuid.NewString(),
		Role:           models.MESSAGE_ROLE_USER,
		Content:        req.Message,
	}
	if err := tx.Create(&userMsg).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	assistantMsg := models.Message{
		ConversationID: conv.ID,
		ExternalID:     uuid.NewString(),
		Role:           models.MESSAGE_ROLE_ASSISTANT,
		Content:        result.Content,
		ModelID:        result.Model,
		TokensInput:    result.Usage.PromptTokens,
		TokensOutput:   result.Usage.CompletionTokens,
		CostUSD:        cost,
	}
	if err := tx.Create(&assistantMsg).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	metrics.Global().ChatTurnsTotal.Inc()
	RegisterUsageBestEffort(db, user.ID, agentID, result.Model, result.Usage, cost)

	RespondSuccess(c, ChatWithAgentResponse{
		Message:          req.Message,
		Response:         result.Content,
		ModelUsed:        result.Model,
		TokensInput:      result.Usage.PromptTokens,
		TokensOutput:     result.Usage.CompletionTokens,
		CostUSD:          cost,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}
