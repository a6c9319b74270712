package models

import "time"

/************************************************
/**** MARK: MESSAGE ROLES ****/
/************************************************/
const MESSAGE_ROLE_USER = "user"
const MESSAGE_ROLE_ASSISTANT = "assistant"

// Conversation agrupa as mensagens de um usuário com um agente.
type Conversation struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	AgentID   int64      `gorm:"index" json:"agent_id"`
	Title     string     `gorm:"default:''" json:"title" form:"title"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Message é um turno da conversa. Mensagens do assistente carregam
// o modelo usado, os tokens e o custo estimado daquele turno.
type Message struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ConversationID int64      `gorm:"not null;index" json:"conversation_id"`
	ExternalID     string     `gorm:"default:''" json:"external_id"`
	Role           string     `gorm:"not null" json:"role"`
	Content        string     `gorm:"type:text" json:"content"`
	ModelID        string     `gorm:"default:''" json:"model_id"`
	TokensInput    int64      `gorm:"not null;default:0" json:"tokens_input"`
	TokensOutput   int64      `gorm:"not null;default:0" json:"tokens_output"`
	CostUSD        float64    `gorm:"not null;default:0" json:"cost_usd"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
