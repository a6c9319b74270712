package models

import "time"

// UsageDaily agrega o consumo de um usuário por (agente, modelo, dia).
// Invariante: os contadores são a soma exata de todos os turnos daquele
// dia - nunca duplicados, nunca perdidos. A escrita é feita exclusivamente
// por controllers.RegisterUsage com incremento atômico no banco.
type UsageDaily struct {
	ID                int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID            int64      `gorm:"not null;unique_index:idx_usage_key" json:"user_id"`
	AgentID           int64      `gorm:"not null;default:0;unique_index:idx_usage_key" json:"agent_id"`
	ModelID           string     `gorm:"not null;unique_index:idx_usage_key" json:"model_id"`
	Date              string     `gorm:"not null;unique_index:idx_usage_key" json:"date"` // YYYY-MM-DD
	TotalMessages     int64      `gorm:"not null;default:0" json:"total_messages"`
	TotalTokensInput  int64      `gorm:"not null;default:0" json:"total_tokens_input"`
	TotalTokensOutput int64      `gorm:"not null;default:0" json:"total_tokens_output"`
	TotalCostUSD      float64    `gorm:"not null;default:0" json:"total_cost_usd"`
	CreatedAt         *time.Time `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

// UsageDate formata a data de negócio usada como chave do agregado.
func UsageDate(t time.Time) string {
	return t.Format("2006-01-02")
}
