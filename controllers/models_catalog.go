package controllers

import (
	"fmt"
	"net/http"
	"strings"

	dbpkg "auroragov/db"
	"auroragov/models"

	"github.com/gin-gonic/gin"
)

type AvailableModelsResponse struct {
	Models            []models.AIModel            `json:"models"`
	Total             int                         `json:"total"`
	GroupedByProvider map[string][]models.AIModel `json:"grouped_by_provider"`
	Recommended       []models.AIModel            `json:"recommended"`
}

// GetAvailableModels lista o catálogo de modelos com filtros opcionais
// (provider, tags, recommended, available). O resultado é cacheado em
// redis por alguns minutos - o catálogo muda raramente e essa rota é
// chamada a cada abertura do seletor de modelos no front.
func GetAvailableModels(c *gin.Context) {
	provider := strings.TrimSpace(c.Query("provider"))
	tags := strings.TrimSpace(c.Query("tags"))
	recommended := c.Query("recommended") == "true"
	availableOnly := c.Query("available") != "false" // default: só disponíveis

	cacheKey := fmt.Sprintf("models:%s:%s:%t:%t", provider, tags, recommended, availableOnly)
	var cached AvailableModelsResponse
	if modelCache.GetJSON(c.Request.Context(), cacheKey, &cached) {
		RespondSuccess(c, cached)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	q := db.Model(&models.AIModel{})
	if provider != "" {
		q = q.Where("provider = ?", provider)
	}
	if recommended {
		q = q.Where("is_recommended = ?", true)
	}
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}

	var all []models.AIModel
	if err := q.Order("provider asc, id asc").Find(&all).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	// filtro de tags em memória (tags é csv na coluna)
	filtered := all
	if tags != "" {
		filtered = filtered[:0]
		wanted := strings.Split(tags, ",")
		for _, m := range all {
			ok := true
			for _, tag := range wanted {
				if !m.HasTag(strings.TrimSpace(tag)) {
					ok = false
					break
				}
			}
			if ok {
				filtered = append(filtered, m)
			}
		}
	}
	if filtered == nil {
		filtered = []models.AIModel{}
	}

	grouped := map[string][]models.AIModel{}
	recommendedList := []models.AIModel{}
	for _, m := range filtered {
		grouped[m.Provider] = append(grouped[m.Provider], m)
		if m.IsRecommended {
			recommendedList = append(recommendedList, m)
		}
	}

	resp := AvailableModelsResponse{
		Models:            filtered,
		Total:             len(filtered),
		GroupedByProvider: grouped,
		Recommended:       recommendedList,
	}
	modelCache.SetJSON(c.Request.Context(), cacheKey, resp)
	RespondSuccess(c, resp)
}
