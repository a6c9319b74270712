package controllers

import (
	"net/http"
	"strings"

	dbpkg "auroragov/db"
	"auroragov/models"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "auth_user"

// AuthRequired valida o Bearer token e carrega o perfil do usuário no
// contexto. Credencial ausente/inválida é sempre 401 explícito - nunca
// degrada para "anônimo".
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			RespondError(c, "credencial ausente", http.StatusUnauthorized)
			c.Abort()
			return
		}
		token := strings.TrimSpace(h[len("Bearer "):])
		userID, _, err := parseAuthToken(token)
		if err != nil {
			RespondError(c, "credencial inválida ou expirada", http.StatusUnauthorized)
			c.Abort()
			return
		}

		db := dbpkg.DBInstance(c)
		if db == nil {
			RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
			c.Abort()
			return
		}
		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			RespondError(c, "usuário não encontrado", http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// RoleRequired é a variante estrita do gate: além do token, exige que o
// perfil tenha um dos papéis listados. Perfil sem papel = 403.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserLogged(c)
		if !ok {
			RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if user.Role == "" {
			RespondError(c, "nenhum papel atribuído", http.StatusForbidden)
			c.Abort()
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		RespondError(c, "papel insuficiente", http.StatusForbidden)
		c.Abort()
	}
}

// GetUserLogged returns the user loaded by AuthRequired.
func GetUserLogged(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
