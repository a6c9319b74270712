package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	dbpkg "auroragov/db"
	"auroragov/metrics"
	"auroragov/models"
	"auroragov/tools"

	"github.com/gin-gonic/gin"
)

// AnaliseResultado é o contrato do fluxo simples de análise.
type AnaliseResultado struct {
	Resumo              string          `json:"resumo"`
	PontosCriticos      []PontoCritico  `json:"pontos_criticos"`
	Checklist           []ChecklistItem `json:"checklist"`
	RiscosIdentificados []string        `json:"riscos_identificados"`
}

func (r *AnaliseResultado) Normalize() {
	if r.PontosCriticos == nil {
		r.PontosCriticos = []PontoCritico{}
	}
	if r.Checklist == nil {
		r.Checklist = []ChecklistItem{}
	}
	if r.RiscosIdentificados == nil {
		r.RiscosIdentificados = []string{}
	}
}

func ParseAnaliseResultado(raw string) (AnaliseResultado, error) {
	var result AnaliseResultado
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &result); err != nil {
		return AnaliseResultado{}, NewAPIError(http.StatusInternalServerError,
			"resposta da IA fora do formato JSON esperado")
	}
	result.Normalize()
	return result, nil
}

type AnaliseDocumentosRequest struct {
	TipoDocumento string `json:"tipoDocumento" form:"tipoDocumento"`
	Titulo        string `json:"titulo" form:"titulo"`
	Conteudo      string `json:"conteudo" form:"conteudo"`
}

type AnaliseDocumentosResponse struct {
	Resumo              string          `json:"resumo"`
	PontosCriticos      []PontoCritico  `json:"pontos_criticos"`
	Checklist           []ChecklistItem `json:"checklist"`
	RiscosIdentificados []string        `json:"riscos_identificados"`
	TokensUsados        int64           `json:"tokens_usados"`
}

// AnaliseDocumentos é o fluxo simples: modelo único configurado (sem
// lista de fallback), corpo truncado em 8000 caracteres.
func AnaliseDocumentos(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req AnaliseDocumentosRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Titulo == "" {
		RespondError(c, "Faltando campo titulo", http.StatusBadRequest)
		return
	}
	if req.Conteudo == "" {
		RespondError(c, "Faltando campo conteudo", http.StatusBadRequest)
		return
	}
	if !models.IsValidTipoDocumento(req.TipoDocumento) {
		RespondError(c, "tipoDocumento inválido", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	msgs := []tools.ChatMessage{
		{Role: "system", Content: tools.AnaliseSystemPrompt},
		{Role: "user", Content: tools.BuildAnaliseUserPrompt(req.TipoDocumento, req.Titulo, req.Conteudo)},
	}

	result, err := llmClient.TryModels(c.Request.Context(), []string{conf.OpenRouter.DefaultModel}, msgs, tools.ChatOptions{
		MaxTokens:   2500,
		Temperature: 0.2,
		JSONMode:    true,
	})
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	parsed, err := ParseAnaliseResultado(result.Content)
	if err != nil {
		RespondErr(c, err)
		return
	}

	resultadoJSON, _ := json.Marshal(parsed)
	analise := models.DocumentoAnalise{
		UserID:        user.ID,
		TipoDocumento: req.TipoDocumento,
		Titulo:        req.Titulo,
		Resultado:     string(resultadoJSON),
		ModeloID:      result.Model,
		TokensInput:   result.Usage.PromptTokens,
		TokensOutput:  result.Usage.CompletionTokens,
	}
	if err := db.Create(&analise).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	metrics.Global().AnalisesTotal.Inc()

	cost := lookupModelCost(db, result.Model, result.Usage)
	RegisterUsageBestEffort(db, user.ID, 0, result.Model, result.Usage, cost)

	RespondSuccess(c, AnaliseDocumentosResponse{
		Resumo:              parsed.Resumo,
		PontosCriticos:      parsed.PontosCriticos,
		Checklist:           parsed.Checklist,
		RiscosIdentificados: parsed.RiscosIdentificados,
		TokensUsados:        result.Usage.PromptTokens + result.Usage.CompletionTokens,
	})
}
