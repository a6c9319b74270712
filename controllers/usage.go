package controllers

import (
	"time"

	"auroragov/metrics"
	"auroragov/models"
	"auroragov/tools"

	"github.com/jinzhu/gorm"
	"github.com/rs/zerolog/log"
)

// RegisterUsage incrementa o agregado diário de uso para a chave
// (usuário, agente, modelo, dia). O incremento é feito no banco
// (coluna = coluna + ?), nunca read-then-write no processo - duas
// requests concorrentes para a mesma chave não perdem contagem.
// Se ainda não existe linha para a chave, insere; se o insert colidir
// com outra request que inseriu primeiro, repete o update uma vez.
func RegisterUsage(db *gorm.DB, userID, agentID int64, modelID string, tokensIn, tokensOut int64, costUSD float64) error {
	date := models.UsageDate(time.Now())

	increment := func() (int64, error) {
		res := db.Model(&models.UsageDaily{}).
			Where("user_id = ? AND agent_id = ? AND model_id = ? AND date = ?", userID, agentID, modelID, date).
			Updates(map[string]any{
				"total_messages":      gorm.Expr("total_messages + 1"),
				"total_tokens_input":  gorm.Expr("total_tokens_input + ?", tokensIn),
				"total_tokens_output": gorm.Expr("total_tokens_output + ?", tokensOut),
				"total_cost_usd":      gorm.Expr("total_cost_usd + ?", costUSD),
			})
		return res.RowsAffected, res.Error
	}

	rows, err := increment()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	row := models.UsageDaily{
		UserID:            userID,
		AgentID:           agentID,
		ModelID:           modelID,
		Date:              date,
		TotalMessages:     1,
		TotalTokensInput:  tokensIn,
		TotalTokensOutput: tokensOut,
		TotalCostUSD:      costUSD,
	}
	if err := db.Create(&row).Error; err != nil {
		// corrida: outra request inseriu a linha entre o update e o create
		if rows, err2 := increment(); err2 == nil && rows > 0 {
			return nil
		}
		return err
	}
	return nil
}

// RegisterUsageBestEffort engole a falha (logando e contando) - uso é
// contabilidade secundária e nunca bloqueia a resposta ao usuário.
func RegisterUsageBestEffort(db *gorm.DB, userID, agentID int64, modelID string, usage tools.Usage, costUSD float64) {
	if err := RegisterUsage(db, userID, agentID, modelID, usage.PromptTokens, usage.CompletionTokens, costUSD); err != nil {
		metrics.Global().UsageWriteFailures.Inc()
		log.Warn().Err(err).
			Int64("user_id", userID).
			Str("model_id", modelID).
			Msg("falha ao gravar agregado de uso")
	}
}

// lookupModelCost calcula o custo do turno pelo preço publicado no
// catálogo. Modelo fora do catálogo custa zero (modelos :free).
func lookupModelCost(db *gorm.DB, modelID string, usage tools.Usage) float64 {
	var m models.AIModel
	if err := db.Where("id = ?", modelID).First(&m).Error; err != nil {
		return 0
	}
	return m.Cost(usage.PromptTokens, usage.CompletionTokens)
}
