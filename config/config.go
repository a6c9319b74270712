package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Modelos gratuitos usados como fallback na auditoria de editais.
// A ordem importa: tentamos do primeiro ao último.
var DefaultAuditModels = []string{
	"meta-llama/llama-3.3-70b-instruct:free",
	"google/gemini-2.0-flash-exp:free",
	"mistralai/mistral-small-3.1-24b-instruct:free",
	"qwen/qwen-2.5-72b-instruct:free",
}

type Configuration struct {
	ApiPort string `json:"api_port"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Security struct {
		JwtSecret     string `json:"jwt_secret"`
		TokenTTLHours int    `json:"token_ttl_hours"`
	} `json:"security"`

	// CORS: lista de origens permitidas; vazio usa defaults de dev.
	AllowedOrigins []string `json:"allowed_origins"`

	OpenRouter struct {
		BaseURL string `json:"base_url"`
		ApiKey  string `json:"api_key"`
		// Cabeçalhos de identificação do site exigidos pelo agregador.
		Referer string `json:"referer"`
		Title   string `json:"title"`

		// Modelo único usado nos fluxos simples (análise, gerador, chat).
		DefaultModel string `json:"default_model"`
		// Lista ordenada de candidatos do fluxo de auditoria.
		AuditModels []string `json:"audit_models"`

		AttemptTimeoutSeconds int `json:"attempt_timeout_seconds"`
	} `json:"openrouter"`

	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`

		ModelCacheTTLSeconds int `json:"model_cache_ttl_seconds"`
	} `json:"redis"`
}

// Get carrega a configuração do arquivo JSON e aplica fallbacks de env/default.
// O arquivo pode não existir (ex: deploy só com env vars) - nesse caso partimos
// de uma Configuration zerada e confiamos nas envs.
func Get(path string) Configuration {
	var c Configuration

	b, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(b, &c); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("config inválido")
		}
	} else if !os.IsNotExist(err) {
		log.Fatal().Err(err).Str("path", path).Msg("erro ao ler config")
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = getenv("PORT", "8080")
	}
	if c.Database == "" {
		c.Database = getenv("DATABASE", "sqlite3")
	}
	if c.DbHost == "" {
		c.DbHost = os.Getenv("DB_HOST")
	}
	if c.DbPort == "" {
		c.DbPort = getenv("DB_PORT", "5432")
	}
	if c.DbUser == "" {
		c.DbUser = os.Getenv("DB_USER")
	}
	if c.DbName == "" {
		c.DbName = os.Getenv("DB_NAME")
	}
	if c.DbPass == "" {
		c.DbPass = os.Getenv("DB_PASS")
	}

	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = getenv("JWT_SECRET", "CHANGE_ME")
	}
	if c.Security.TokenTTLHours <= 0 {
		c.Security.TokenTTLHours = 24
	}

	if len(c.AllowedOrigins) == 0 {
		if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
			for _, o := range strings.Split(env, ",") {
				if o = strings.TrimSpace(o); o != "" {
					c.AllowedOrigins = append(c.AllowedOrigins, o)
				}
			}
		}
	}
	if len(c.AllowedOrigins) == 0 {
		// conveniência de dev: front local em vite ou CRA
		c.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}

	if c.OpenRouter.BaseURL == "" {
		c.OpenRouter.BaseURL = getenv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	}
	if c.OpenRouter.ApiKey == "" {
		c.OpenRouter.ApiKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if c.OpenRouter.Referer == "" {
		c.OpenRouter.Referer = getenv("OPENROUTER_REFERER", "https://auroragov.com.br")
	}
	if c.OpenRouter.Title == "" {
		c.OpenRouter.Title = getenv("OPENROUTER_TITLE", "AuroraGov")
	}
	if c.OpenRouter.DefaultModel == "" {
		c.OpenRouter.DefaultModel = getenv("OPENROUTER_MODEL", "meta-llama/llama-3.3-70b-instruct:free")
	}
	if len(c.OpenRouter.AuditModels) == 0 {
		c.OpenRouter.AuditModels = DefaultAuditModels
	}
	if c.OpenRouter.AttemptTimeoutSeconds <= 0 {
		c.OpenRouter.AttemptTimeoutSeconds = getenvInt("OPENROUTER_ATTEMPT_TIMEOUT", 45)
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = os.Getenv("REDIS_ADDR") // vazio = cache desligado
	}
	if c.Redis.ModelCacheTTLSeconds <= 0 {
		c.Redis.ModelCacheTTLSeconds = 300
	}

	return c
}

// AttemptTimeout devolve o timeout por tentativa do loop de fallback.
func (c Configuration) AttemptTimeout() time.Duration {
	return time.Duration(c.OpenRouter.AttemptTimeoutSeconds) * time.Second
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	s := os.Getenv(k)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
