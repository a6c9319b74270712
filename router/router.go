package router

import (
	"auroragov/config"
	"auroragov/controllers"
	"auroragov/middleware"
	"auroragov/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Initialize wires all routes and middlewares.
// Público -> autenticado (token) -> validado (usuário ativo) -> admin (papel).
func Initialize(r *gin.Engine, cfg config.Configuration) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// operacional (sem auth)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Public (no auth)
	api.POST("/login", Logger(), controllers.Login)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())
	auth.GET("/me", Logger(), controllers.Me)

	// Validated routes (token + active user)
	validated := auth.Group("")
	validated.Use(Authorizer())

	// Fluxos de IA
	validated.POST("/analise-documentos", Logger(), controllers.AnaliseDocumentos)
	validated.POST("/auditar-edital", Logger(), controllers.AuditarEdital)
	validated.POST("/gerador-documentos", Logger(), controllers.GeradorDocumentos)
	validated.POST("/chat-with-agent", Logger(), controllers.ChatWithAgent)

	// Catálogo de modelos (o front chama via GET; POST mantido por
	// compatibilidade com clientes antigos)
	validated.GET("/get-available-models", Logger(), controllers.GetAvailableModels)
	validated.POST("/get-available-models", Logger(), controllers.GetAvailableModels)

	// Conversas
	validated.GET("/conversations", Logger(), controllers.GetConversations)
	validated.POST("/conversations", Logger(), controllers.CreateConversation)
	validated.GET("/conversations/:id/messages", Logger(), controllers.GetConversationMessages)

	// Editais
	validated.GET("/editais", Logger(), controllers.GetEditais)
	validated.POST("/editais", Logger(), controllers.CreateEdital)
	validated.GET("/editais/:id/auditorias", Logger(), controllers.GetEditalAuditorias)

	// Admin routes (gestão de usuários e organizações)
	admin := validated.Group("")
	admin.Use(controllers.RoleRequired(models.USER_ROLE_SUPER_ADMIN, models.USER_ROLE_GESTOR))
	admin.POST("/manage-users", Logger(), controllers.ManageUsers)

	log.Info().Msg("routes initialized")
}
