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

/************************************************
/**** MARK: CONTRATO DE RESPOSTA DA IA ****/
/************************************************/

type PontoCritico struct {
	Item           string `json:"item"`
	Problema       string `json:"problema"`
	BaseLegal      string `json:"base_legal"`
	RiscoJuridico  string `json:"risco_juridico"` // Baixo|Médio|Alto
	SugestaoAjuste string `json:"sugestao_ajuste"`
}

type PontoDefensavel struct {
	Item       string `json:"item"`
	Fundamento string `json:"fundamento"`
	BaseLegal  string `json:"base_legal"`
}

type ChecklistItem struct {
	Item       string `json:"item"`
	Status     string `json:"status"` // conforme|atencao|nao_conforme
	Observacao string `json:"observacao"`
	BaseLegal  string `json:"base_legal,omitempty"`
}

type DiagnosticoGeral struct {
	RiscoImpugnacao     string   `json:"risco_impugnacao"`
	RiscoNulidade       string   `json:"risco_nulidade"`
	ResumoExecutivo     string   `json:"resumo_executivo"`
	PrincipaisProblemas []string `json:"principais_problemas"`
}

type ScoreSection struct {
	Nome  string `json:"nome"`
	Score int    `json:"score"`
	Peso  int    `json:"peso"`
}

type ScoreImpugnacao struct {
	Sections   []ScoreSection `json:"sections"`
	ScoreTotal int            `json:"score_total"` // 0-100
	RiscoGeral string         `json:"risco_geral"`
}

// AuditoriaResultado é o contrato estrito que o modelo deve devolver.
type AuditoriaResultado struct {
	DiagnosticoGeral  DiagnosticoGeral  `json:"diagnostico_geral"`
	PontosCriticos    []PontoCritico    `json:"pontos_criticos"`
	PontosDefensaveis []PontoDefensavel `json:"pontos_defensaveis"`
	Checklist         []ChecklistItem   `json:"checklist"`
	ScoreImpugnacao   ScoreImpugnacao   `json:"score_impugnacao"`
}

// Normalize garante que nenhuma lista esperada chegue nil ao cliente -
// campo ausente na resposta do modelo vira lista vazia.
func (r *AuditoriaResultado) Normalize() {
	if r.PontosCriticos == nil {
		r.PontosCriticos = []PontoCritico{}
	}
	if r.PontosDefensaveis == nil {
		r.PontosDefensaveis = []PontoDefensavel{}
	}
	if r.Checklist == nil {
		r.Checklist = []ChecklistItem{}
	}
	if r.DiagnosticoGeral.PrincipaisProblemas == nil {
		r.DiagnosticoGeral.PrincipaisProblemas = []string{}
	}
	if r.ScoreImpugnacao.Sections == nil {
		r.ScoreImpugnacao.Sections = []ScoreSection{}
	}
}

// ParseAuditoriaResultado desserializa a resposta crua do modelo.
// JSON malformado é falha dura - melhor devolver erro do que apresentar
// uma análise vazia fabricada.
func ParseAuditoriaResultado(raw string) (AuditoriaResultado, error) {
	var result AuditoriaResultado
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &result); err != nil {
		return AuditoriaResultado{}, NewAPIError(http.StatusInternalServerError,
			"resposta da IA fora do formato JSON esperado")
	}
	result.Normalize()
	return result, nil
}

/************************************************
/**** MARK: HANDLER ****/
/************************************************/

type AuditarEditalRequest struct {
	TipoDocumento string `json:"tipoDocumento" form:"tipoDocumento"`
	Titulo        string `json:"titulo" form:"titulo"`
	Conteudo      string `json:"conteudo" form:"conteudo"`
	Modalidade    string `json:"modalidade" form:"modalidade"`
	EditalID      int64  `json:"editalId" form:"editalId"`
}

type AuditarEditalResponse struct {
	DiagnosticoGeral  DiagnosticoGeral  `json:"diagnostico_geral"`
	PontosCriticos    []PontoCritico    `json:"pontos_criticos"`
	PontosDefensaveis []PontoDefensavel `json:"pontos_defensaveis"`
	Checklist         []ChecklistItem   `json:"checklist"`
	ScoreImpugnacao   ScoreImpugnacao   `json:"score_impugnacao"`
	ModeloUtilizado   string            `json:"modelo_utilizado"`
	TokensUsados      int64             `json:"tokens_usados"`
}

// AuditarEdital é o fluxo rico: prompt com rubrica completa, lista de
// modelos gratuitos com fallback sequencial, contrato JSON estrito e
// persistência do resultado vinculada ao caller.
func AuditarEdital(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req AuditarEditalRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	// validação ANTES de qualquer chamada externa
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

	// edital pai (quando informado) precisa existir e ser do caller
	if req.EditalID > 0 {
		var edital models.Edital
		if err := db.First(&edital, req.EditalID).Error; err != nil {
			RespondError(c, "edital não encontrado", http.StatusNotFound)
			return
		}
		if edital.UserID != user.ID {
			RespondError(c, "edital pertence a outro usuário", http.StatusForbidden)
			return
		}
	}

	msgs := []tools.ChatMessage{
		{Role: "system", Content: tools.AuditSystemPrompt},
		{Role: "user", Content: tools.BuildAuditUserPrompt(req.TipoDocumento, req.Titulo, req.Modalidade, req.Conteudo)},
	}

	result, err := llmClient.TryModels(c.Request.Context(), conf.OpenRouter.AuditModels, msgs, tools.ChatOptions{
		MaxTokens:   4000,
		Temperature: 0.15,
		JSONMode:    true,
	})
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	parsed, err := ParseAuditoriaResultado(result.Content)
	if err != nil {
		RespondErr(c, err)
		return
	}

	resultadoJSON, _ := json.Marshal(parsed)
	auditoria := models.EditalAuditoria{
		EditalID:        req.EditalID,
		UserID:          user.ID,
		TipoDocumento:   req.TipoDocumento,
		Titulo:          req.Titulo,
		Modalidade:      req.Modalidade,
		ModeloUtilizado: result.Model,
		Resultado:       string(resultadoJSON),
		ScoreTotal:      parsed.ScoreImpugnacao.ScoreTotal,
		RiscoGeral:      parsed.ScoreImpugnacao.RiscoGeral,
		TokensInput:     result.Usage.PromptTokens,
		TokensOutput:    result.Usage.CompletionTokens,
	}
	if err := db.Create(&auditoria).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	metrics.Global().AuditsTotal.Inc()

	cost := lookupModelCost(db, result.Model, result.Usage)
	RegisterUsageBestEffort(db, user.ID, 0, result.Model, result.Usage, cost)

	RespondSuccess(c, AuditarEditalResponse{
		DiagnosticoGeral:  parsed.DiagnosticoGeral,
		PontosCriticos:    parsed.PontosCriticos,
		PontosDefensaveis: parsed.PontosDefensaveis,
		Checklist:         parsed.Checklist,
		ScoreImpugnacao:   parsed.ScoreImpugnacao,
		ModeloUtilizado:   result.Model,
		TokensUsados:      result.Usage.PromptTokens + result.Usage.CompletionTokens,
	})
}
