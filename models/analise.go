package models

import "time"

// DocumentoAnalise guarda o resultado do fluxo simples de análise de
// documentos (resumo, pontos críticos, checklist, riscos).
type DocumentoAnalise struct {
	ID            int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID        int64      `gorm:"not null;index" json:"user_id"`
	TipoDocumento string     `gorm:"not null" json:"tipo_documento"`
	Titulo        string     `gorm:"not null" json:"titulo"`
	Resultado     string     `gorm:"type:text" json:"resultado"` // JSON do AnaliseResultado
	ModeloID      string     `gorm:"default:''" json:"modelo_id"`
	TokensInput   int64      `gorm:"not null;default:0" json:"tokens_input"`
	TokensOutput  int64      `gorm:"not null;default:0" json:"tokens_output"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}
