package models

import "time"

// Organization representa um órgão/prefeitura cliente.
type Organization struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name      string     `gorm:"not null;unique" json:"name" form:"name"`
	CNPJ      string     `gorm:"default:''" json:"cnpj" form:"cnpj"`
	City      string     `gorm:"default:''" json:"city" form:"city"`
	State     string     `gorm:"default:''" json:"state" form:"state"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active" form:"is_active"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
