package main

import (
	"os"
	"time"

	"auroragov/cache"
	"auroragov/config"
	"auroragov/controllers"
	"auroragov/db"
	"auroragov/router"
	"auroragov/tools"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// =====================
// ENV esperadas
// =====================
//
// Server
// - PORT                    (ex: 8080)
// - CONFIG_PATH             (default: config.json; o arquivo é opcional)
// - JWT_SECRET
// - ALLOWED_ORIGINS         (csv de origens do front; default: localhosts de dev)
// - AUTOMIGRATE             (1 habilita automigrate no boot)
// - LOG_LEVEL               (debug|info|warn|error)
//
// Banco
// - DATABASE                (sqlite3 ou postgres)
// - DB_HOST / DB_PORT / DB_USER / DB_NAME / DB_PASS
//
// OpenRouter
// - OPENROUTER_API_KEY
// - OPENROUTER_BASE_URL     (default: https://openrouter.ai/api/v1)
// - OPENROUTER_MODEL        (modelo dos fluxos simples)
// - OPENROUTER_REFERER / OPENROUTER_TITLE (identificação do site)
// - OPENROUTER_ATTEMPT_TIMEOUT (segundos por tentativa do fallback)
//
// Redis (opcional - cache do catálogo de modelos)
// - REDIS_ADDR
//
// =====================

func main() {
	// .env local em dev; em produção as envs vêm do ambiente
	_ = godotenv.Load()

	setupLogger(os.Getenv("LOG_LEVEL"))

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}
	conf := config.Get(configPath)

	log.Info().
		Str("port", conf.ApiPort).
		Str("database", conf.Database).
		Int("audit_models", len(conf.OpenRouter.AuditModels)).
		Msg("starting auroragov")

	db.SetConfigurations(conf)
	controllers.SetConfigurations(conf)

	database, err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("erro ao conectar no banco")
	}
	defer database.Close()

	llm := tools.NewOpenRouterClient(
		conf.OpenRouter.BaseURL,
		conf.OpenRouter.ApiKey,
		conf.OpenRouter.Referer,
		conf.OpenRouter.Title,
		conf.AttemptTimeout(),
	)
	controllers.SetLLMClient(llm)

	modelCache := cache.New(
		conf.Redis.Addr,
		conf.Redis.Password,
		conf.Redis.DB,
		time.Duration(conf.Redis.ModelCacheTTLSeconds)*time.Second,
	)
	if modelCache != nil {
		log.Info().Str("addr", conf.Redis.Addr).Msg("cache redis habilitado")
		defer modelCache.Close()
	}
	controllers.SetModelCache(modelCache)

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	router.Initialize(r, conf)

	log.Info().Str("port", conf.ApiPort).Msg("auroragov listening")
	if err := r.Run(":" + conf.ApiPort); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
