package controllers

import (
	"net/http"

	dbpkg "auroragov/db"
	"auroragov/models"

	"github.com/gin-gonic/gin"
)

type CreateConversationRequest struct {
	AgentID int64  `json:"agentId" form:"agentId"`
	Title   string `json:"title" form:"title"`
}

func CreateConversation(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if req.AgentID > 0 {
		var agent models.Agent
		if err := db.First(&agent, req.AgentID).Error; err != nil {
			RespondError(c, "agente não encontrado", http.StatusNotFound)
			return
		}
	}

	conv := models.Conversation{
		UserID:  user.ID,
		AgentID: req.AgentID,
		Title:   req.Title,
	}
	if err := db.Create(&conv).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, conv)
}

func GetConversations(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	var convs []models.Conversation
	if err := db.Where("user_id = ?", user.ID).Order("updated_at desc").Find(&convs).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"conversations": convs})
}

// GetConversationMessages lista os turnos de uma conversa do caller.
func GetConversationMessages(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	var conv models.Conversation
	if err := db.First(&conv, id).Error; err != nil {
		RespondError(c, "conversa não encontrada", http.StatusNotFound)
		return
	}
	if conv.UserID != user.ID {
		RespondError(c, "conversa pertence a outro usuário", http.StatusForbidden)
		return
	}

	var msgs []models.Message
	if err := db.Where("conversation_id = ?", conv.ID).Order("id asc").Find(&msgs).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"conversation": conv, "messages": msgs})
}
