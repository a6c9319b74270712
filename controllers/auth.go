package controllers

import (
	"net/http"

	dbpkg "auroragov/db"
	"auroragov/models"
	"auroragov/tools"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, "email e password são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}

	// valida senha (mesma regra usada no create_user do manage-users)
	if user.Password != encodePassword(user.Email, req.Password) {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}

	if user.Status == models.USER_STATUS_BLOQUEADO {
		RespondError(c, "usuário bloqueado", http.StatusForbidden)
		return
	}

	signed, err := signAuthToken(user.ID, user.Email)
	if err != nil {
		RespondError(c, "erro ao assinar token", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	RespondSuccess(c, LoginResponse{Token: signed, User: user})
}

// encodePassword aplica o mesmo esquema de digest do cadastro:
// sha512(email + ":" + sha512(senha)).
func encodePassword(email, password string) string {
	digest := tools.EncryptTextSHA512(password)
	return tools.EncryptTextSHA512(email + ":" + digest)
}
