package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"auroragov/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatWithAgentHappyPath(t *testing.T) {
	env := setupTestEnv(t)
	fakeLLM(t, "A Lei 14.133/2021 exige estudo técnico preliminar na fase preparatória.")

	conv := models.Conversation{UserID: env.User.ID, Title: "Dúvidas de licitação"}
	require.NoError(t, env.DB.Create(&conv).Error)

	w := env.doJSON(t, http.MethodPost, "/api/chat-with-agent", map[string]any{
		"conversationId": conv.ID,
		"message":        "Preciso de ETP para pregão?",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ChatWithAgentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Preciso de ETP para pregão?", resp.Message)
	assert.Contains(t, resp.Response, "14.133/2021")
	assert.Equal(t, "test/model-a", resp.ModelUsed)
	assert.Equal(t, int64(100), resp.TokensInput)
	assert.Equal(t, int64(50), resp.TokensOutput)
	assert.GreaterOrEqual(t, resp.ProcessingTimeMs, int64(0))

	// os dois turnos gravados, na ordem, com external id preenchido
	var msgs []models.Message
	require.NoError(t, env.DB.Where("conversation_id = ?", conv.ID).Order("id").Find(&msgs).Error)
	require.Len(t, msgs, 2)
	assert.Equal(t, models.MESSAGE_ROLE_USER, msgs[0].Role)
	assert.Equal(t, models.MESSAGE_ROLE_ASSISTANT, msgs[1].Role)
	assert.NotEmpty(t, msgs[0].ExternalID)
	assert.NotEmpty(t, msgs[1].ExternalID)
	assert.Equal(t, "test/model-a", msgs[1].ModelID)
	assert.Equal(t, int64(100), msgs[1].TokensInput)
}

func TestChatWithAgentForeignConversationForbidden(t *testing.T) {
	env := setupTestEnv(t)
	fakeLLM(t, "não deveria chegar aqui")

	outro := models.User{Name: "Outro", Email: "outro@prefeitura.gov.br", Password: "x",
		Role: models.USER_ROLE_USUARIO, Status: models.USER_STATUS_ATIVO}
	require.NoError(t, env.DB.Create(&outro).Error)
	conv := models.Conversation{UserID: outro.ID}
	require.NoError(t, env.DB.Create(&conv).Error)

	w := env.doJSON(t, http.MethodPost, "/api/chat-with-agent", map[string]any{
		"conversationId": conv.ID,
		"message":        "oi",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// nada gravado na conversa alheia
	var count int64
	env.DB.Model(&models.Message{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestChatWithAgentUnknownConversationNotFound(t *testing.T) {
	env := setupTestEnv(t)
	fakeLLM(t, "x")

	w := env.doJSON(t, http.MethodPost, "/api/chat-with-agent", map[string]any{
		"conversationId": 12345,
		"message":        "oi",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatWithAgentStreamUnsupported(t *testing.T) {
	env := setupTestEnv(t)
	_, calls := fakeLLM(t, "x")

	conv := models.Conversation{UserID: env.User.ID}
	require.NoError(t, env.DB.Create(&conv).Error)

	w := env.doJSON(t, http.MethodPost, "/api/chat-with-agent", map[string]any{
		"conversationId": conv.ID,
		"message":        "oi",
		"stream":         true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "streaming não suportado")
	assert.Zero(t, *calls)
}

func TestChatWithAgentValidatesRequiredFields(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/chat-with-agent", map[string]any{"message": "oi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/chat-with-agent", map[string]any{"conversationId": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatWithAgentUsesAgentPromptAndModel(t *testing.T) {
	env := setupTestEnv(t)
	fakeLLM(t, "resposta do agente")

	agent := models.Agent{
		Name:           "Consultor de Licitações",
		SystemPrompt:   "Você é um consultor de licitações.",
		DefaultModelID: "test/model-b",
		IsActive:       true,
	}
	require.NoError(t, env.DB.Create(&agent).Error)
	conv := models.Conversation{UserID: env.User.ID, AgentID: agent.ID}
	require.NoError(t, env.DB.Create(&conv).Error)

	w := env.doJSON(t, http.MethodPost, "/api/chat-with-agent", map[string]any{
		"conversationId": conv.ID,
		"message":        "oi",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ChatWithAgentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// modelo default do agente vence o default global
	assert.Equal(t, "test/model-b", resp.ModelUsed)

	// uso atribuído ao agente da conversa
	var usage models.UsageDaily
	require.NoError(t, env.DB.First(&usage).Error)
	assert.Equal(t, agent.ID, usage.AgentID)
	assert.Equal(t, "test/model-b", usage.ModelID)
}
