package models

import (
	"strings"
	"time"
)

// AIModel é o catálogo de modelos disponíveis no agregador, com o preço
// publicado por milhão de tokens. O custo de cada turno é calculado a
// partir desses valores.
type AIModel struct {
	ID                 string     `gorm:"primary_key" json:"id"` // slug, ex: "openai/gpt-4o-mini"
	Name               string     `gorm:"not null" json:"name"`
	Provider           string     `gorm:"not null;index" json:"provider"`
	Tags               string     `gorm:"default:''" json:"tags"` // csv, ex: "free,rapido"
	ContextWindow      int        `gorm:"not null;default:0" json:"context_window"`
	PriceInputPerMTok  float64    `gorm:"not null;default:0" json:"price_input_per_mtok"`
	PriceOutputPerMTok float64    `gorm:"not null;default:0" json:"price_output_per_mtok"`
	IsAvailable        bool       `gorm:"not null;default:true" json:"is_available"`
	IsRecommended      bool       `gorm:"not null;default:false" json:"is_recommended"`
	CreatedAt          *time.Time `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

func (m AIModel) HasTag(tag string) bool {
	for _, t := range strings.Split(m.Tags, ",") {
		if strings.TrimSpace(t) == tag {
			return true
		}
	}
	return false
}

// Cost estima o custo em USD de um turno dado o uso de tokens.
func (m AIModel) Cost(tokensInput, tokensOutput int64) float64 {
	return float64(tokensInput)/1_000_000*m.PriceInputPerMTok +
		float64(tokensOutput)/1_000_000*m.PriceOutputPerMTok
}
