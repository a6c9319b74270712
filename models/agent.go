package models

import "time"

// Agent representa um assistente configurável (ex: "Consultor de Licitações").
// O SystemPrompt é injetado como primeira mensagem de cada conversa.
type Agent struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name           string     `gorm:"not null" json:"name" form:"name"`
	Description    string     `gorm:"type:text" json:"description" form:"description"`
	SystemPrompt   string     `gorm:"type:text" json:"system_prompt" form:"system_prompt"`
	DefaultModelID string     `gorm:"default:''" json:"default_model_id" form:"default_model_id"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active" form:"is_active"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
