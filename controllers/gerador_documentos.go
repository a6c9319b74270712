package controllers

import (
	"net/http"

	dbpkg "auroragov/db"
	"auroragov/tools"

	"github.com/gin-gonic/gin"
)

type GeradorDocumentosRequest struct {
	TipoDocumento string `json:"tipoDocumento" form:"tipoDocumento"`
	Conteudo      string `json:"conteudo" form:"conteudo"`
	Contexto      string `json:"contexto" form:"contexto"`
}

type GeradorDocumentosResponse struct {
	TextoMelhorado string `json:"texto_melhorado"`
	TokensUsados   int64  `json:"tokens_usados"`
}

// GeradorDocumentos melhora a redação de um texto oficial. Resposta é
// texto corrido (sem contrato JSON), temperatura mais alta que a auditoria.
func GeradorDocumentos(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req GeradorDocumentosRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.TipoDocumento == "" {
		RespondError(c, "Faltando campo tipoDocumento", http.StatusBadRequest)
		return
	}
	if req.Conteudo == "" {
		RespondError(c, "Faltando campo conteudo", http.StatusBadRequest)
		return
	}

	msgs := []tools.ChatMessage{
		{Role: "system", Content: tools.GeradorSystemPrompt},
		{Role: "user", Content: tools.BuildGeradorUserPrompt(req.TipoDocumento, req.Contexto, req.Conteudo)},
	}

	result, err := llmClient.TryModels(c.Request.Context(), []string{conf.OpenRouter.DefaultModel}, msgs, tools.ChatOptions{
		MaxTokens:   3000,
		Temperature: 0.4,
	})
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	if db := dbpkg.DBInstance(c); db != nil {
		cost := lookupModelCost(db, result.Model, result.Usage)
		RegisterUsageBestEffort(db, user.ID, 0, result.Model, result.Usage, cost)
	}

	RespondSuccess(c, GeradorDocumentosResponse{
		TextoMelhorado: result.Content,
		TokensUsados:   result.Usage.PromptTokens + result.Usage.CompletionTokens,
	})
}
