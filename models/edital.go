package models

import "time"

/************************************************
/**** MARK: TIPOS DE DOCUMENTO ****/
/************************************************/
const DOC_TIPO_EDITAL = "edital"
const DOC_TIPO_TERMO_REFERENCIA = "termo_referencia"
const DOC_TIPO_ESTUDO_TECNICO = "estudo_tecnico"

func IsValidTipoDocumento(tipo string) bool {
	switch tipo {
	case DOC_TIPO_EDITAL, DOC_TIPO_TERMO_REFERENCIA, DOC_TIPO_ESTUDO_TECNICO:
		return true
	}
	return false
}

// Edital representa um processo licitatório cadastrado pelo usuário.
// As auditorias de IA referenciam esse registro por FK (quando informado).
type Edital struct {
	ID         int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID     int64      `gorm:"not null;index" json:"user_id"`
	Titulo     string     `gorm:"not null" json:"titulo" form:"titulo"`
	Modalidade string     `gorm:"default:''" json:"modalidade" form:"modalidade"` // pregao|concorrencia|dispensa...
	Objeto     string     `gorm:"type:text" json:"objeto" form:"objeto"`
	Status     string     `gorm:"not null;default:'rascunho'" json:"status" form:"status"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// EditalAuditoria guarda o resultado estruturado de uma auditoria de IA.
// O payload completo (diagnóstico, pontos críticos, checklist, score) fica
// em Resultado como JSON; score e risco ficam em colunas próprias para
// facilitar listagens sem desserializar tudo.
type EditalAuditoria struct {
	ID              int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	EditalID        int64      `gorm:"index" json:"edital_id"` // 0 = auditoria avulsa
	UserID          int64      `gorm:"not null;index" json:"user_id"`
	TipoDocumento   string     `gorm:"not null" json:"tipo_documento"`
	Titulo          string     `gorm:"not null" json:"titulo"`
	Modalidade      string     `gorm:"default:''" json:"modalidade"`
	ModeloUtilizado string     `gorm:"not null" json:"modelo_utilizado"`
	Resultado       string     `gorm:"type:text" json:"resultado"` // JSON do AuditoriaResultado
	ScoreTotal      int        `gorm:"not null;default:0" json:"score_total"`
	RiscoGeral      string     `gorm:"default:''" json:"risco_geral"`
	TokensInput     int64      `gorm:"not null;default:0" json:"tokens_input"`
	TokensOutput    int64      `gorm:"not null;default:0" json:"tokens_output"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}
