package controllers

import (
	"net/http"

	dbpkg "auroragov/db"
	"auroragov/models"

	"github.com/gin-gonic/gin"
)

func CreateEdital(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var edital models.Edital
	if err := c.Bind(&edital); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if edital.Titulo == "" {
		RespondError(c, "Faltando campo titulo", http.StatusBadRequest)
		return
	}

	edital.ID = 0
	edital.UserID = user.ID
	if edital.Status == "" {
		edital.Status = "rascunho"
	}

	db := dbpkg.DBInstance(c)
	if err := db.Create(&edital).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, edital)
}

func GetEditais(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	var editais []models.Edital
	if err := db.Where("user_id = ?", user.ID).Order("updated_at desc").Find(&editais).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"editais": editais})
}

// GetEditalAuditorias lista o histórico de auditorias de um edital do caller.
func GetEditalAuditorias(c *gin.Context) {
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
	var edital models.Edital
	if err := db.First(&edital, id).Error; err != nil {
		RespondError(c, "edital não encontrado", http.StatusNotFound)
		return
	}
	if edital.UserID != user.ID {
		RespondError(c, "edital pertence a outro usuário", http.StatusForbidden)
		return
	}

	var auditorias []models.EditalAuditoria
	if err := db.Where("edital_id = ?", edital.ID).Order("id desc").Find(&auditorias).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"edital": edital, "auditorias": auditorias})
}
